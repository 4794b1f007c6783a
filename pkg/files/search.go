package files

import (
	"path"
	"sort"
	"strings"
)

// MatchKeywords reports whether an entry named name satisfies every keyword.
// Keywords match case-insensitively anywhere in the name. A keyword starting
// with "." also acts as an extension filter: directories never match it and
// the entry's extension must equal the lower-cased keyword exactly, so ".js"
// matches neither "data.json" nor "APP.JS". Dotfiles such as ".bashrc" have
// no extension. Blank keywords are ignored; no keywords matches everything.
func MatchKeywords(name string, isDir bool, keywords []string) bool {
	loweredName := lower(name)
	for _, keyword := range keywords {
		keyword = lower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		if !strings.Contains(loweredName, keyword) {
			return false
		}
		if strings.HasPrefix(keyword, ".") {
			if isDir {
				return false
			}
			ext, ok := extension(name)
			if !ok || ext != keyword {
				return false
			}
		}
	}
	return true
}

// extension returns the dotted extension of the final path element. Names
// whose only dot is the leading one have none.
func extension(name string) (string, bool) {
	base := path.Base(name)
	idx := strings.LastIndexByte(base, '.')
	if idx <= 0 {
		return "", false
	}
	return base[idx:], true
}

// SplitKeywords splits a search query on whitespace and "+" the way the search
// endpoint receives it.
func SplitKeywords(query string) []string {
	return strings.FieldsFunc(query, func(r rune) bool {
		return r == '+' || r == ' ' || r == '\t' || r == '\n'
	})
}

// Filter returns the records whose name satisfies MatchKeywords.
func Filter(records []File, keywords []string) []File {
	var out []File
	for _, record := range records {
		if MatchKeywords(record.Name, record.IsDir(), keywords) {
			out = append(out, record)
		}
	}
	return out
}

// SortForDisplay orders records in place: directories first, then by
// case-insensitive name, then by path to keep the order stable.
func SortForDisplay(records []File) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if aDir, bDir := a.IsDir(), b.IsDir(); aDir != bDir {
			return aDir
		}
		if an, bn := lower(a.Name), lower(b.Name); an != bn {
			return an < bn
		}
		return a.Path < b.Path
	})
}
