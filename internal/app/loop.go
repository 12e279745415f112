package app

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/raider/internal/fs"
	"github.com/kk-code-lab/raider/internal/logging"
	statepkg "github.com/kk-code-lab/raider/internal/state"
	"github.com/kk-code-lab/raider/internal/watch"
)

// Run drives the session until the user quits. Each tick services, in
// order: keyboard input, queued actions, the directory watcher, finished
// thumbnails, and finally the redraw.
func (app *Application) Run() {
	done := make(chan struct{})
	defer close(done)

	eventCh := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				close(eventCh)
				return
			}
			select {
			case eventCh <- ev:
			case <-done:
				return
			}
		}
	}()

	app.needsRender = true
	app.previewReq = previewFull
	app.flush()

	timer := time.NewTimer(app.keyTimeout)
	defer timer.Stop()

	for !app.shouldQuit {
		app.tick(eventCh, timer)
	}
}

func (app *Application) tick(events <-chan tcell.Event, timer *time.Timer) {
	timer.Reset(app.keyTimeout)
	select {
	case ev, ok := <-events:
		if !ok {
			app.shouldQuit = true
			return
		}
		app.handleEvent(ev)
	case <-timer.C:
		app.input.Tick()
	}

	app.processActions()
	if app.shouldQuit {
		return
	}
	app.pollWatcher()
	app.pollSignals()
	app.flush()
}

func (app *Application) handleEvent(ev tcell.Event) {
	switch ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventInterrupt:
		app.needsRender = true
	}
}

func (app *Application) processActions() {
	for {
		select {
		case action := <-app.actionCh:
			app.handleAction(action)
		default:
			return
		}
	}
}

func (app *Application) pollWatcher() {
	switch app.watcher.Poll(app.watchTimeout) {
	case watch.Changed:
		app.refresh()
	case watch.Unavailable:
		dir := fs.NearestExistingDir(app.session.CurrentDir)
		logging.L().Info("current directory went away",
			logging.String("path", app.session.CurrentDir), logging.String("fallback", dir))
		app.gotoDir(dir, "")
	}
}

func (app *Application) pollSignals() {
	select {
	case <-app.readyCh:
		// A redraw requested in this tick replaces whatever was pending.
		if app.previewReq == previewNone {
			app.preview.RefreshPending(app.renderer.PreviewPane())
		}
	default:
	}

	select {
	case <-app.contCh:
		app.resumeAfterStop()
	default:
	}
}

// flush redraws what the tick changed. The preview goes last since some
// modes draw straight to the terminal over the grid.
func (app *Application) flush() {
	if app.needsRender {
		app.renderer.Render(app.session)
		app.needsRender = false
	}

	switch app.previewReq {
	case previewFull:
		app.showPreview(true)
	case previewSummary:
		app.showPreview(false)
	}
	app.previewReq = previewNone
}

func (app *Application) showPreview(full bool) {
	pane := app.renderer.PreviewPane()
	e := app.session.CurrentEntry()
	if e == nil {
		app.preview.Clear(pane)
		return
	}
	app.preview.Show(pane, e, full)
}

func (app *Application) requestPreview(full bool) {
	if full {
		app.previewReq = previewFull
	} else {
		app.previewReq = previewSummary
	}
}

func (app *Application) handleAction(action statepkg.Action) {
	if action == nil {
		return
	}
	s := app.session
	if a, ok := action.(statepkg.PreviewAction); !ok || !a.Deferred {
		if s.Err != "" {
			s.Err = ""
			app.needsRender = true
		}
	}

	switch a := action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
	case statepkg.MoveUpAction:
		app.move(func() { s.View.Up() }, a.UpdatePreview)
	case statepkg.MoveDownAction:
		app.move(func() { s.View.Down() }, a.UpdatePreview)
	case statepkg.PageUpAction:
		app.move(s.View.PageUp, a.UpdatePreview)
	case statepkg.PageDownAction:
		app.move(s.View.PageDown, a.UpdatePreview)
	case statepkg.HomeAction:
		app.move(s.View.Home, true)
	case statepkg.EndAction:
		app.move(s.View.End, true)
	case statepkg.ForwardAction:
		app.forward()
	case statepkg.BackwardAction:
		if ok, err := s.Back(); ok {
			app.afterNavigate(err)
		}
	case statepkg.GoHomeAction:
		app.gotoDir(app.home, "")
	case statepkg.RefreshAction:
		app.refresh()
	case statepkg.SelectAction:
		if s.ToggleSelect() {
			app.needsRender = true
			app.requestPreview(true)
		}
	case statepkg.InfoAction:
		app.requestPreview(false)
	case statepkg.PreviewAction:
		app.requestPreview(true)
	case statepkg.ReorderAction:
		if s.Reorder(a.Order) {
			app.needsRender = true
			app.requestPreview(true)
		}
	case statepkg.ResizeAction:
		app.resize()
	case statepkg.OpenShellAction:
		app.openShell()
	case statepkg.OpenEditorAction:
		app.openEditor()
	case statepkg.FuzzyFindAction:
		app.fuzzyFind()
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
	}
}

// move applies a cursor step and schedules a redraw if it moved.
func (app *Application) move(step func(), updatePreview bool) {
	before := app.session.View.State()
	step()
	if app.session.View.State() == before {
		return
	}
	app.needsRender = true
	app.requestPreview(updatePreview)
}

func (app *Application) gotoDir(dir, name string) {
	app.afterNavigate(app.session.Goto(dir, name))
}

func (app *Application) gotoPath(path string) {
	err := app.session.GotoPath(path)
	if err != nil && app.session.CurrentDir == "" {
		app.session.CurrentDir = path
	}
	app.afterNavigate(err)
}

func (app *Application) afterNavigate(err error) {
	app.needsRender = true
	app.requestPreview(true)
	if err != nil {
		logging.L().Debug("cannot open directory", logging.Err(err))
		return
	}
	_ = app.watcher.Subscribe(app.session.CurrentDir)
	app.screen.SetTitle(windowTitle(app.session.CurrentDir, app.pid))
}

func (app *Application) refresh() {
	if err := app.session.Refresh(); err != nil {
		logging.L().Debug("refresh failed", logging.String("path", app.session.CurrentDir), logging.Err(err))
	}
	app.needsRender = true
	app.requestPreview(true)
}

func (app *Application) resize() {
	app.screen.Sync()
	app.session.View.SetHeight(app.renderer.ListHeight())
	app.preview.RefreshPixels()
	app.needsRender = true
	app.requestPreview(true)
}
