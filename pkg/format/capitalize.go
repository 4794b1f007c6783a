package format

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Capitalize upper-cases the first character of input and leaves the rest
// untouched. The full Unicode mapping is applied, so a single character may
// expand ("ß" becomes "SS").
func Capitalize(input string) string {
	if input == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(input)
	if r == utf8.RuneError && size <= 1 {
		return input
	}
	// Casers carry state and must not be shared between goroutines.
	return cases.Upper(language.Und).String(input[:size]) + input[size:]
}
