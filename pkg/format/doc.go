// Package format holds the display helpers the file manager views use to turn
// raw record values into text: labels, timestamps and byte sizes. Every helper
// is a pure function and safe for concurrent use.
package format
