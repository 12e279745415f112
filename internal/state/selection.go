package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kk-code-lab/raider/internal/inode"
)

// SelectionFile returns the per-process selection file location.
func SelectionFile(home string, pid int) string {
	return filepath.Join(home, fmt.Sprintf(".raider-sel-%d", pid))
}

// Selection is the set of entries marked for batch operations, keyed by
// identity so that a marked file stays marked under any name or listing.
type Selection struct {
	items *inode.Cache[string]
	file  string
}

func NewSelection(file string) *Selection {
	return &Selection{items: inode.NewCache[string](), file: file}
}

// Path returns the selection file location.
func (s *Selection) Path() string {
	return s.file
}

// Toggle selects key with its absolute path, or deselects it when it is
// already selected. It reports whether key is selected afterwards.
func (s *Selection) Toggle(key inode.Key, path string) bool {
	if s.items.Contains(key) {
		s.items.Delete(key)
		return false
	}
	s.items.Set(key, path)
	return true
}

func (s *Selection) Contains(key inode.Key) bool {
	return s.items.Contains(key)
}

func (s *Selection) Len() int {
	return s.items.Len()
}

// Paths returns the selected paths in key order.
func (s *Selection) Paths() []string {
	paths := make([]string, 0, s.items.Len())
	s.items.ForEach(func(_ inode.Key, p string) (string, bool) {
		paths = append(paths, p)
		return p, true
	})
	return paths
}

// Save writes one absolute path per line to the selection file.
func (s *Selection) Save() error {
	paths := s.Paths()
	var b strings.Builder
	for _, p := range paths {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(s.file, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("save selection: %w", err)
	}
	return nil
}

// Purge drops selected paths that no longer exist and saves the rest.
func (s *Selection) Purge() error {
	s.items.ForEach(func(_ inode.Key, p string) (string, bool) {
		if _, err := os.Lstat(p); err != nil && errors.Is(err, os.ErrNotExist) {
			return "", false
		}
		return p, true
	})
	return s.Save()
}

// RemoveFile deletes the selection file if it was written.
func (s *Selection) RemoveFile() error {
	if err := os.Remove(s.file); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove selection file: %w", err)
	}
	return nil
}
