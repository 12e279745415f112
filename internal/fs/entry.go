package fs

import (
	"os"
	"strings"
	"time"

	"github.com/kk-code-lab/raider/internal/inode"
)

// ContentType is the coarse classification used to pick a previewer.
type ContentType int

const (
	TypeUnknown ContentType = iota
	TypeText
	TypeDocument
	TypeImage
	TypeVideo
	TypeArchive

	NumTypes
)

var typeNames = [NumTypes]string{
	TypeUnknown:  "unknown",
	TypeText:     "text",
	TypeDocument: "document",
	TypeImage:    "image",
	TypeVideo:    "video",
	TypeArchive:  "archive",
}

func (t ContentType) String() string {
	if t < 0 || t >= NumTypes {
		return "unknown"
	}
	return typeNames[t]
}

var extensionTypes = map[string]ContentType{
	"txt":  TypeText,
	"org":  TypeText,
	"pdf":  TypeDocument,
	"djvu": TypeDocument,
	"png":  TypeImage,
	"jpg":  TypeImage,
	"jpeg": TypeImage,
	"avi":  TypeVideo,
	"mkv":  TypeVideo,
	"mov":  TypeVideo,
	"mp4":  TypeVideo,
	"mpg":  TypeVideo,
	"mpeg": TypeVideo,
	"wmv":  TypeVideo,
	"webm": TypeVideo,
	"tar":  TypeArchive,
	"tgz":  TypeArchive,
	"zip":  TypeArchive,
	"rar":  TypeArchive,
}

// TypeOf classifies a lower-case extension without the leading dot.
func TypeOf(ext string) ContentType {
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return TypeUnknown
}

// Extension returns the lower-cased extension of name without the dot.
// Dot-files without a further dot have no extension.
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// Stat is the subset of the OS status record the browser shows or keys on.
type Stat struct {
	Dev   uint64
	Ino   uint64
	Rdev  uint64
	Nlink uint64
	Uid   uint32
	Gid   uint32
	Atime time.Time
	Mtime time.Time
	Ctime time.Time
}

// Entry represents a single file or directory on disk.
type Entry struct {
	Name      string
	Ext       string
	Path      string
	Type      ContentType
	IsDir     bool
	IsSymlink bool
	Size      int64
	Mode      os.FileMode
	Stat      Stat
	// Sniffed is set once the content of an unknown entry was inspected.
	Sniffed bool
}

// Key returns the identity key of the object the entry resolves to.
func (e Entry) Key() inode.Key {
	return inode.Of(e.Stat.Dev, e.Stat.Ino)
}

// IsExecutable reports whether any execute bit is set on a non-directory.
func (e Entry) IsExecutable() bool {
	return !e.IsDir && e.Mode.IsRegular() && e.Mode.Perm()&0o111 != 0
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.Name)
}

// IsHidden checks for the Unix dot-file convention.
func IsHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
