package files

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FileType tags a File record. Values are compared case-insensitively.
type FileType string

const (
	FileTypeRoot  FileType = "root"
	FileTypeDir   FileType = "dir"
	FileTypeFile  FileType = "file"
	FileTypeText  FileType = "text"
	FileTypeImage FileType = "image"
	FileTypeVideo FileType = "video"
	FileTypeAudio FileType = "audio"
)

// Record is the only part of a file entry the directory classifier reads.
type Record interface {
	FileType() string
}

// File mirrors the JSON entries returned by the directory listing and search
// endpoints. LastModified is milliseconds since the Unix epoch.
type File struct {
	Name         string   `json:"name"`
	Path         string   `json:"path"`
	Type         FileType `json:"file_type"`
	Size         int64    `json:"size"`
	LastModified int64    `json:"last_modified"`
}

var _ Record = File{}

// FileType implements Record.
func (f File) FileType() string {
	return string(f.Type)
}

// IsDir reports whether the record's type is a directory.
func (f File) IsDir() bool {
	return IsDir(f)
}

// TypeName is a bare file_type value usable wherever a Record is expected.
type TypeName string

// FileType implements Record.
func (t TypeName) FileType() string {
	return string(t)
}

// IsDir reports whether record describes a directory: its file type,
// lower-cased, is exactly "root" or "dir". Any other value, including unknown
// or empty types, is not a directory. A nil record is not a directory.
func IsDir(record Record) bool {
	if record == nil {
		return false
	}
	switch FileType(lower(record.FileType())) {
	case FileTypeRoot, FileTypeDir:
		return true
	default:
		return false
	}
}

func lower(value string) string {
	return cases.Lower(language.Und).String(value)
}
