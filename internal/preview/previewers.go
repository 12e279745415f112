package preview

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/kk-code-lab/raider/internal/fs"
	"github.com/kk-code-lab/raider/internal/logging"
	"github.com/kk-code-lab/raider/internal/textutil"
)

const (
	textPreviewLimit = 64 * 1024
	tabWidth         = 8
)

const mediainfoTemplate = `General;Title:     %Movie%\nType:      %ContentType%\nGenre:     %Genre%\nPerformer: %Performer%\n\nFormat:    %Format%\nSize:      %FileSize/String%\nDuration:  %Duration/String%\nBit Rate:  %OverallBitRate/String%\n`

// writeLines fills the pane with text, one line per row.
func writeLines(pane Pane, text string) int {
	_, rows := pane.Size()
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 4096), textPreviewLimit)

	n := 0
	for n < rows && sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		pane.SetLine(n, textutil.PaneText(line, tabWidth))
		n++
	}
	return n
}

func previewText(d *Dispatcher, pane Pane, e fs.Entry) {
	data, err := fs.ReadFileHead(e.Path, textPreviewLimit)
	if err != nil {
		d.Clear(pane)
		pane.SetAlert(0, notFoundMessage)
		return
	}
	writeLines(pane, fs.NormalizeTextContent(data))
}

// showCommand draws the output of an extraction tool, falling back to the
// summary when the tool fails.
func showCommand(d *Dispatcher, pane Pane, e fs.Entry, name string, args ...string) {
	out, err := d.runCommand("", name, args...)
	if err != nil && len(out) == 0 {
		logging.L().Debug("preview command failed",
			logging.String("command", name), logging.String("path", e.Path), logging.Err(err))
		Summary(pane, e)
		return
	}
	writeLines(pane, string(out))
}

func previewDocumentText(d *Dispatcher, pane Pane, e fs.Entry) {
	if !d.exists(e.Path) {
		d.Clear(pane)
		pane.SetAlert(0, notFoundMessage)
		return
	}

	switch {
	case e.Ext == "pdf" && d.caps.Pdftotext:
		showCommand(d, pane, e, "pdftotext", "-f", "0", "-l", "0", e.Path, "-")
	case e.Ext == "djvu" && d.caps.Djvutxt:
		showCommand(d, pane, e, "djvutxt", "--page=0", e.Path)
	default:
		Summary(pane, e)
	}
}

func previewVideoText(d *Dispatcher, pane Pane, e fs.Entry) {
	if !d.exists(e.Path) {
		d.Clear(pane)
		pane.SetAlert(0, notFoundMessage)
		return
	}
	showCommand(d, pane, e, "mediainfo", "--Output="+mediainfoTemplate, e.Path)
}

func previewImage(d *Dispatcher, pane Pane, e fs.Entry) {
	d.Clear(pane)
	if !d.exists(e.Path) {
		pane.SetAlert(0, notFoundMessage)
		return
	}
	d.backend.display(d, pane, e.Path)
}

// previewDirectory lists the visible children of a directory in directory
// order.
func previewDirectory(pane Pane, e fs.Entry) {
	f, err := os.Open(e.Path)
	if err != nil {
		pane.SetAlert(0, notFoundMessage)
		return
	}
	defer func() {
		_ = f.Close()
	}()

	_, rows := pane.Size()
	n := 0
	for n < rows {
		names, err := f.Readdirnames(256)
		for _, name := range names {
			if n >= rows {
				break
			}
			if fs.IsHidden(name) {
				continue
			}
			pane.SetLine(n, textutil.PaneText(name, tabWidth))
			n++
		}
		if err != nil {
			if err != io.EOF {
				logging.L().Debug("directory preview truncated", logging.String("path", e.Path), logging.Err(err))
			}
			return
		}
	}
}
