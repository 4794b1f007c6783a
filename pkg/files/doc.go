// Package files describes the file records the file manager backend returns
// and the display-side rules applied to them: directory classification,
// type detection by extension, keyword filtering and display ordering.
package files
