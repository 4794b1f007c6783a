package files

import (
	"io/fs"
	"mime"
	"path"
	"strings"
)

var extensionTypes = map[string]FileType{
	".txt": FileTypeText, ".md": FileTypeText, ".log": FileTypeText, ".csv": FileTypeText,
	".json": FileTypeText, ".yaml": FileTypeText, ".yml": FileTypeText, ".toml": FileTypeText,
	".xml": FileTypeText, ".html": FileTypeText, ".css": FileTypeText, ".js": FileTypeText,
	".ts": FileTypeText, ".go": FileTypeText, ".rs": FileTypeText, ".py": FileTypeText,
	".sh": FileTypeText, ".srt": FileTypeText, ".vtt": FileTypeText, ".ass": FileTypeText,

	".png": FileTypeImage, ".jpg": FileTypeImage, ".jpeg": FileTypeImage, ".gif": FileTypeImage,
	".webp": FileTypeImage, ".svg": FileTypeImage, ".bmp": FileTypeImage, ".avif": FileTypeImage,

	".mp4": FileTypeVideo, ".mkv": FileTypeVideo, ".webm": FileTypeVideo, ".mov": FileTypeVideo,
	".avi": FileTypeVideo, ".m4v": FileTypeVideo,

	".mp3": FileTypeAudio, ".flac": FileTypeAudio, ".wav": FileTypeAudio, ".ogg": FileTypeAudio,
	".m4a": FileTypeAudio, ".aac": FileTypeAudio,
}

// TypeForName classifies an entry by name. Directories are FileTypeDir; files
// are matched by extension against the built-in table, then by the MIME type
// registered for the extension, and default to FileTypeFile.
func TypeForName(name string, isDir bool) FileType {
	if isDir {
		return FileTypeDir
	}
	ext := lower(path.Ext(name))
	if ext == "" {
		return FileTypeFile
	}
	if kind, ok := extensionTypes[ext]; ok {
		return kind
	}

	major, _, _ := strings.Cut(mime.TypeByExtension(ext), "/")
	switch major {
	case "text":
		return FileTypeText
	case "image":
		return FileTypeImage
	case "video":
		return FileTypeVideo
	case "audio":
		return FileTypeAudio
	default:
		return FileTypeFile
	}
}

// FromFileInfo builds a File from metadata the caller already holds. The
// entry path is kept as given, slash separated. Directories report a zero
// size.
func FromFileInfo(info fs.FileInfo, entryPath string) File {
	if info == nil {
		return File{}
	}
	file := File{
		Name:         info.Name(),
		Path:         path.Clean("/" + strings.TrimLeft(entryPath, "/")),
		Type:         TypeForName(info.Name(), info.IsDir()),
		LastModified: info.ModTime().UnixMilli(),
	}
	if !info.IsDir() {
		file.Size = info.Size()
	}
	return file
}

// Root returns the record representing the top of the storage tree.
func Root() File {
	return File{Name: "/", Path: "/", Type: FileTypeRoot}
}
