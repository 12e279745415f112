package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/raider/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	debouncer  KeyDebouncer
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// Tick feeds an input-less step to the debouncer. When a held key was just
// released the deferred preview refresh is emitted.
func (ih *InputHandler) Tick() {
	if _, fire := ih.debouncer.Feed(KeyCode{}, false); fire {
		ih.actionChan <- statepkg.PreviewAction{Deferred: true}
	}
}

// ProcessEvent converts a tcell event into an Action. It returns false once
// the user asked to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	ks, _ := ih.debouncer.Feed(CodeOf(ev), true)
	// Moves are let through while held but skip the preview until release.
	update := ks.Phase != PhaseHeld
	tap := ks.Phase == PhaseDown

	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case tcell.KeyCtrlZ:
		if tap {
			ih.actionChan <- statepkg.SuspendAction{}
		}
	case tcell.KeyUp:
		ih.actionChan <- statepkg.MoveUpAction{UpdatePreview: update}
	case tcell.KeyDown:
		ih.actionChan <- statepkg.MoveDownAction{UpdatePreview: update}
	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.PageUpAction{UpdatePreview: update}
	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.PageDownAction{UpdatePreview: update}
	case tcell.KeyHome:
		if tap {
			ih.actionChan <- statepkg.HomeAction{}
		}
	case tcell.KeyEnd:
		if tap {
			ih.actionChan <- statepkg.EndAction{}
		}
	case tcell.KeyRight, tcell.KeyEnter:
		if tap {
			ih.actionChan <- statepkg.ForwardAction{}
		}
	case tcell.KeyLeft:
		if tap {
			ih.actionChan <- statepkg.BackwardAction{}
		}
	case tcell.KeyRune:
		return ih.processRune(ev.Rune(), update, tap)
	}
	return true
}

func (ih *InputHandler) processRune(r rune, update, tap bool) bool {
	switch r {
	case 'q':
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case 'r':
		ih.actionChan <- statepkg.RefreshAction{}
	case 'H':
		ih.actionChan <- statepkg.GoHomeAction{}
	case 'k':
		ih.actionChan <- statepkg.MoveUpAction{UpdatePreview: update}
	case 'j':
		ih.actionChan <- statepkg.MoveDownAction{UpdatePreview: update}
	}

	if !tap {
		return true
	}

	switch r {
	case 'l':
		ih.actionChan <- statepkg.ForwardAction{}
	case 'h':
		ih.actionChan <- statepkg.BackwardAction{}
	case ' ':
		ih.actionChan <- statepkg.SelectAction{}
	case 'i':
		ih.actionChan <- statepkg.InfoAction{}
	case 'p':
		ih.actionChan <- statepkg.PreviewAction{}
	case 'n', 'N', 'z', 'Z', 't', 'T':
		ih.actionChan <- statepkg.ReorderAction{Order: statepkg.Order(r)}
	case 's':
		ih.actionChan <- statepkg.OpenShellAction{}
	case 'e':
		ih.actionChan <- statepkg.OpenEditorAction{}
	case '/':
		ih.actionChan <- statepkg.FuzzyFindAction{}
	}
	return true
}
