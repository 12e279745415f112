package state

import (
	"errors"
	"path/filepath"

	"golang.org/x/text/unicode/norm"

	"github.com/kk-code-lab/raider/internal/fs"
)

// Notices shown in the list pane instead of entries.
const (
	NoticeNotFound    = "[Not Found]"
	NoticeEmpty       = "[Empty]"
	NoticeInvalidPath = "[Invalid Path]"
)

// Session is the browsing context: where we are, what is listed there and
// what is marked.
type Session struct {
	CurrentDir string
	Entries    []fs.Entry
	View       *Viewport
	Selection  *Selection
	ShowHidden bool

	// Notice replaces the listing when set.
	Notice string
	// Err is a one-shot message for the status line.
	Err string
}

// NewSession returns a session with a list pane of the given height.
func NewSession(height int, selectionFile string, showHidden bool) *Session {
	return &Session{
		View:       NewViewport(height),
		Selection:  NewSelection(selectionFile),
		ShowHidden: showHidden,
	}
}

// Current returns the entry under the cursor.
func (s *Session) Current() (fs.Entry, bool) {
	e := s.CurrentEntry()
	if e == nil {
		return fs.Entry{}, false
	}
	return *e, true
}

// CurrentEntry returns the listed entry under the cursor for in-place
// updates, or nil.
func (s *Session) CurrentEntry() *fs.Entry {
	if s.Notice != "" || len(s.Entries) == 0 {
		return nil
	}
	pos := s.View.State().Pos
	if pos < 0 || pos >= len(s.Entries) {
		return nil
	}
	return &s.Entries[pos]
}

// Goto lists dir and activates its view state, placing the cursor on name
// when it is listed. A directory that cannot be read leaves CurrentDir
// unchanged and shows a notice.
func (s *Session) Goto(dir, name string) error {
	entries, err := fs.ListDir(dir, s.ShowHidden)
	if err != nil {
		s.Entries = nil
		s.View.Reset()
		s.Notice = NoticeNotFound
		return err
	}

	s.CurrentDir = dir
	s.Entries = entries

	// Listed names are NFC; name may come straight from a path.
	key, keyErr := fs.DirKey(dir)
	s.View.Goto(key, keyErr == nil, s.Entries, norm.NFC.String(name), s.View.Height())

	s.Notice = ""
	if len(entries) == 0 {
		s.Notice = NoticeEmpty
	}
	return nil
}

// GotoPath opens an absolute path: a directory is entered, a regular file
// is selected inside its directory.
func (s *Session) GotoPath(path string) error {
	dir, name, err := fs.SplitPath(path)
	if err != nil {
		s.Entries = nil
		s.View.Reset()
		if errors.Is(err, fs.ErrNotFound) {
			s.Notice = NoticeNotFound
		} else {
			s.Notice = NoticeInvalidPath
		}
		return err
	}
	return s.Goto(dir, name)
}

// Refresh re-lists the current directory keeping the cursor on the same
// entry when it still exists.
func (s *Session) Refresh() error {
	var name string
	if e, ok := s.Current(); ok {
		name = e.Name
	}
	return s.Goto(s.CurrentDir, name)
}

// Back goes to the parent directory with the cursor on the one we left.
// It reports false at the root.
func (s *Session) Back() (bool, error) {
	parent := filepath.Dir(s.CurrentDir)
	if parent == s.CurrentDir {
		return false, nil
	}
	return true, s.Goto(parent, filepath.Base(s.CurrentDir))
}

// ToggleSelect marks or unmarks the current entry and moves down.
func (s *Session) ToggleSelect() bool {
	e, ok := s.Current()
	if !ok {
		return false
	}
	s.Selection.Toggle(e.Key(), e.Path)
	s.View.Down()
	return true
}

// IsSelected reports whether e is marked.
func (s *Session) IsSelected(e fs.Entry) bool {
	return s.Selection.Contains(e.Key())
}

// Reorder re-sorts the listing.
func (s *Session) Reorder(order Order) bool {
	if len(s.Entries) == 0 {
		return false
	}
	return s.View.Reorder(order, s.Entries)
}
