package state

// Action is the base interface for everything the input layer asks the
// session loop to do.
type Action interface{}

// ===== NAVIGATION ACTIONS =====

// Held-capable moves carry whether the preview should be redrawn now.
type MoveUpAction struct{ UpdatePreview bool }
type MoveDownAction struct{ UpdatePreview bool }
type PageUpAction struct{ UpdatePreview bool }
type PageDownAction struct{ UpdatePreview bool }

type HomeAction struct{}
type EndAction struct{}
type ForwardAction struct{}  // enter directory or open file
type BackwardAction struct{} // parent directory
type GoHomeAction struct{}
type RefreshAction struct{}

// ===== SELECTION & VIEW ACTIONS =====

type SelectAction struct{}
type InfoAction struct{}

// PreviewAction redraws the preview of the current entry. Deferred is set
// when it comes from the end of a key repeat.
type PreviewAction struct{ Deferred bool }

type ReorderAction struct{ Order Order }

type ResizeAction struct {
	Width  int
	Height int
}

// ===== EXTERNAL PROGRAM ACTIONS =====

type OpenShellAction struct{}
type OpenEditorAction struct{}
type FuzzyFindAction struct{}

// ===== APPLICATION ACTIONS =====

type QuitAction struct{}
type SuspendAction struct{}
