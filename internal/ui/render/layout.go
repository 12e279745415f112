package render

// Layout splits the screen into a top bar, the entry list on the left, the
// preview on the right and a status line at the bottom.
type Layout struct {
	Width, Height int
	ListWidth     int
	PreviewX      int
	PreviewWidth  int
	// Body rows are 1..BodyHeight.
	BodyHeight int
}

// ComputeLayout returns the pane geometry for a screen size.
func ComputeLayout(w, h int) Layout {
	list := w / 2
	return Layout{
		Width:        w,
		Height:       h,
		ListWidth:    list,
		PreviewX:     list,
		PreviewWidth: max(w-list, 0),
		BodyHeight:   max(h-2, 0),
	}
}
