package gotemplate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-fileview/pkg/files"
	"github.com/goliatone/go-fileview/pkg/format"
)

var registerFilters sync.Once

func registerDefaultFilters() {
	registerFilters.Do(func() {
		for name, filter := range map[string]pongo2.FilterFunction{
			"capitalize": filterCapitalize,
			"timestamp":  filterTimestamp,
			"filesize":   filterFileSize,
			"isdir":      filterIsDir,
			"trim":       filterTrim,
			"lowerfirst": filterLowerFirst,
		} {
			if !pongo2.FilterExists(name) {
				_ = pongo2.RegisterFilter(name, filter)
			}
		}
	})
}

func filterCapitalize(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(format.Capitalize(in.String())), nil
}

// filterTimestamp formats epoch milliseconds. Values that are not numbers or
// fall outside the representable range render as "Invalid Date".
func filterTimestamp(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	number, ok := numericValue(in.Interface())
	if !ok || math.IsNaN(number) || math.IsInf(number, 0) || math.Abs(number) > float64(format.MaxTimestamp) {
		return pongo2.AsValue(format.InvalidDate), nil
	}
	return pongo2.AsValue(format.FormatTimestampOr(int64(number), format.InvalidDate)), nil
}

func filterFileSize(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	number, ok := numericValue(in.Interface())
	if !ok {
		return nil, &pongo2.Error{
			Sender:    "filter:filesize",
			OrigError: fmt.Errorf("gotemplate: filesize expects a number, got %T", in.Interface()),
		}
	}
	return pongo2.AsValue(format.FormatSize(number)), nil
}

// filterIsDir accepts a file record (as a map with file_type), a files.Record
// or a bare type name.
func filterIsDir(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	switch v := in.Interface().(type) {
	case nil:
		return pongo2.AsValue(false), nil
	case files.Record:
		return pongo2.AsValue(files.IsDir(v)), nil
	case map[string]any:
		fileType, _ := v["file_type"].(string)
		return pongo2.AsValue(files.IsDir(files.TypeName(fileType))), nil
	case string:
		return pongo2.AsValue(files.IsDir(files.TypeName(v))), nil
	default:
		return pongo2.AsValue(false), nil
	}
}

func numericValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint32:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterLowerFirst lower-cases the first non-whitespace rune.
func filterLowerFirst(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	t := in.String()

	for i, r := range t {
		if strings.ContainsRune(" \t\n\r", r) {
			continue
		}
		_, size := utf8.DecodeRuneInString(t[i:])
		return pongo2.AsValue(t[:i] + strings.ToLower(string(r)) + t[i+size:]), nil
	}
	return pongo2.AsValue(t), nil
}
