package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kk-code-lab/raider/internal/inode"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidPath = errors.New("invalid path")

	ErrPathEmpty       = fmt.Errorf("%w: empty path", ErrInvalidPath)
	ErrPathNotAbsolute = fmt.Errorf("%w: path is not absolute", ErrInvalidPath)
	ErrPathSpecial     = fmt.Errorf("%w: neither a directory nor a regular file", ErrInvalidPath)
)

// ListDir reads dir and returns its entries in directory order.
// Entries whose status cannot be read are skipped.
func ListDir(dir string, showHidden bool) ([]Entry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("cannot read directory %s: %w", dir, ErrNotFound)
		}
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		rawName := d.Name()
		if !showHidden && IsHidden(rawName) {
			continue
		}
		entry, err := ReadEntry(filepath.Join(dir, rawName))
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ReadEntry builds the Entry for a single path. Symlinks are followed; a
// dangling link is described by its own status.
func ReadEntry(path string) (Entry, error) {
	link, err := lstatPath(path)
	if err != nil {
		return Entry{}, err
	}

	target := link
	isSymlink := link.mode&os.ModeSymlink != 0
	if isSymlink {
		if followed, err := statPath(path); err == nil {
			target = followed
		}
	}

	name := norm.NFC.String(filepath.Base(path))
	ext := Extension(name)
	isDir := target.mode.IsDir()

	typ := TypeUnknown
	if !isDir {
		typ = TypeOf(ext)
	}

	return Entry{
		Name:      name,
		Ext:       ext,
		Path:      path,
		Type:      typ,
		IsDir:     isDir,
		IsSymlink: isSymlink,
		Size:      target.size,
		Mode:      target.mode,
		Stat:      target.stat,
	}, nil
}

// DirKey returns the identity key of a directory.
func DirKey(dir string) (inode.Key, error) {
	st, err := statPath(dir)
	if err != nil {
		return 0, err
	}
	return inode.Of(st.stat.Dev, st.stat.Ino), nil
}

// SplitPath resolves a user-supplied absolute path into the directory to
// open and, when path names a regular file, the entry to select in it.
func SplitPath(path string) (dir, name string, err error) {
	if path == "" {
		return "", "", ErrPathEmpty
	}
	if !filepath.IsAbs(path) {
		return "", "", ErrPathNotAbsolute
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", "", fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return "", "", fmt.Errorf("%s: %w", path, err)
	}

	switch {
	case info.IsDir():
		return path, "", nil
	case info.Mode().IsRegular():
		return filepath.Dir(path), filepath.Base(path), nil
	default:
		return "", "", fmt.Errorf("%s: %w", path, ErrPathSpecial)
	}
}

// NearestExistingDir walks up from dir until it finds a directory that
// still exists. The root is returned when nothing else does.
func NearestExistingDir(dir string) string {
	dir = filepath.Clean(dir)
	for {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
