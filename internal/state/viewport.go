package state

import (
	"github.com/kk-code-lab/raider/internal/fs"
	"github.com/kk-code-lab/raider/internal/inode"
)

// scrollMargin is how close the cursor may get to a window edge before
// single-row moves start sliding the window.
const scrollMargin = 4

// ViewState is the cursor memory of one directory. EndPos is inclusive.
type ViewState struct {
	StartPos int
	Pos      int
	EndPos   int
	FilesN   int
	Order    Order
}

func defaultViewState(n, height int, order Order) ViewState {
	end := n - 1
	if n > height {
		end = height - 1
	}
	if end < 0 {
		end = 0
	}
	return ViewState{EndPos: end, FilesN: n, Order: order}
}

// fit re-establishes the window invariant for a list height.
func (s *ViewState) fit(height int) {
	if s.FilesN <= 0 {
		s.StartPos, s.Pos, s.EndPos = 0, 0, 0
		return
	}
	last := s.FilesN - 1
	s.Pos = clamp(s.Pos, 0, last)
	s.StartPos = clamp(s.StartPos, 0, s.Pos)

	end := min(s.StartPos+height-1, last)
	if s.Pos > end {
		end = s.Pos
		s.StartPos = max(0, end-height+1)
	}
	if end-s.StartPos+1 < height {
		s.StartPos = max(0, end-height+1)
	}
	s.EndPos = end
}

// Viewport tracks the cursor and visible window over the current listing
// and remembers both per directory.
type Viewport struct {
	history *inode.Cache[*ViewState]
	cur     *ViewState
	height  int
}

// NewViewport returns a viewport for a list pane of the given height.
func NewViewport(height int) *Viewport {
	v := &Viewport{
		history: inode.NewCache[*ViewState](),
		height:  max(height, 1),
	}
	v.Reset()
	return v
}

// Reset detaches the viewport from any directory.
func (v *Viewport) Reset() {
	st := defaultViewState(0, v.height, DefaultOrder)
	v.cur = &st
}

// Height returns the list pane height.
func (v *Viewport) Height() int {
	return v.height
}

// State returns a copy of the active view state.
func (v *Viewport) State() ViewState {
	return *v.cur
}

// Remembered returns the stored view state for a directory.
func (v *Viewport) Remembered(dirKey inode.Key) (ViewState, bool) {
	st, ok := v.history.Get(dirKey)
	if !ok {
		return ViewState{}, false
	}
	return *st, true
}

// Goto activates the view state of a freshly listed directory and sorts
// entries in place by its order. A remembered state is reused when the entry
// count still matches; otherwise the cursor and window are reset and the
// order kept. When haveKey is false the state is not remembered.
// A non-empty name moves the cursor onto the first entry with that name.
func (v *Viewport) Goto(dirKey inode.Key, haveKey bool, entries []fs.Entry, name string, height int) {
	v.height = max(height, 1)
	n := len(entries)
	dflt := defaultViewState(n, v.height, DefaultOrder)

	var st *ViewState
	if haveKey {
		if cached, ok := v.history.Get(dirKey); ok {
			st = cached
			if st.FilesN != n {
				order := st.Order
				*st = dflt
				st.Order = order
			}
		} else {
			st = &dflt
			v.history.Set(dirKey, st)
		}
	} else {
		st = &dflt
	}

	st.fit(v.height)
	v.cur = st

	SortEntries(entries, st.Order)

	if name == "" {
		return
	}
	for i := range entries {
		if entries[i].Name == name {
			v.MoveTo(i)
			break
		}
	}
}

// SetHeight adapts the window to a new list height.
func (v *Viewport) SetHeight(height int) {
	v.height = max(height, 1)
	v.cur.fit(v.height)
}

// MoveBy moves the cursor by delta. A move that would leave the list is
// ignored as a whole.
func (v *Viewport) MoveBy(delta int) {
	s := v.cur
	switch {
	case delta < 0:
		if s.Pos < -delta {
			return
		}
		s.Pos += delta
		if s.StartPos < -delta {
			s.EndPos -= s.StartPos
			s.StartPos = 0
		} else {
			s.StartPos += delta
			s.EndPos += delta
		}
	case delta > 0:
		if s.Pos+delta > s.FilesN-1 {
			return
		}
		s.Pos += delta
		if s.EndPos+delta >= s.FilesN-1 {
			s.StartPos += s.FilesN - s.EndPos - 1
			s.EndPos = s.FilesN - 1
		} else {
			s.StartPos += delta
			s.EndPos += delta
		}
	}
}

// MoveTo places the cursor on index i.
func (v *Viewport) MoveTo(i int) {
	v.MoveBy(i - v.cur.Pos)
}

// Up moves one row up, sliding the window inside the scroll margin.
func (v *Viewport) Up() bool {
	s := v.cur
	if s.FilesN == 0 || s.Pos == 0 {
		return false
	}
	if s.StartPos > 0 && s.Pos <= s.StartPos+scrollMargin {
		s.StartPos--
		s.EndPos--
	}
	s.Pos--
	return true
}

// Down moves one row down, sliding the window inside the scroll margin.
func (v *Viewport) Down() bool {
	s := v.cur
	if s.FilesN == 0 || s.Pos == s.FilesN-1 {
		return false
	}
	if s.EndPos < s.FilesN-1 && s.Pos >= s.EndPos-scrollMargin {
		s.StartPos++
		s.EndPos++
	}
	s.Pos++
	return true
}

func (v *Viewport) PageUp() {
	v.MoveBy(-(v.height / 2))
}

func (v *Viewport) PageDown() {
	v.MoveBy(v.height / 2)
}

func (v *Viewport) Home() {
	v.MoveTo(0)
}

func (v *Viewport) End() {
	if v.cur.FilesN > 0 {
		v.MoveTo(v.cur.FilesN - 1)
	}
}

// Reorder sorts entries by order and keeps the cursor on the entry it was
// on. It reports false when order is already active or unknown.
func (v *Viewport) Reorder(order Order, entries []fs.Entry) bool {
	s := v.cur
	if order == s.Order || !order.Valid() {
		return false
	}

	var current string
	if s.Pos < len(entries) {
		current = entries[s.Pos].Name
	}

	SortEntries(entries, order)
	s.Order = order

	for i := range entries {
		if entries[i].Name == current {
			v.MoveTo(i)
			break
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
