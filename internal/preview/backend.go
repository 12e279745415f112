package preview

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/kk-code-lab/raider/internal/logging"
)

// backend draws image files for a mode and removes what it drew.
type backend interface {
	display(d *Dispatcher, pane Pane, path string)
	// clear erases out-of-band output; it reports whether that succeeded.
	clear(d *Dispatcher, pane Pane) bool
}

type noneBackend struct{}

func (noneBackend) display(*Dispatcher, Pane, string) {}

func (noneBackend) clear(*Dispatcher, Pane) bool { return true }

// moveCursor positions the terminal cursor on a zero-based cell.
func moveCursor(w io.Writer, x, y int) {
	fmt.Fprintf(w, "\x1b[%d;%dH", y+1, x+1)
}

// blankRaw overwrites the pane cells directly on the terminal, which also
// removes sixel and character-art output the screen library does not know
// about.
func blankRaw(d *Dispatcher, pane Pane) bool {
	x, y := pane.Origin()
	cols, rows := pane.Size()
	blank := bytes.Repeat([]byte{' '}, max(cols, 0))

	for i := 0; i < rows; i++ {
		moveCursor(d.tty, x, y+i)
		_, _ = d.tty.Write(blank)
	}
	moveCursor(d.tty, x, y)
	return true
}

// sixelBackend copies pre-rendered sixel files to the terminal.
type sixelBackend struct{}

func (sixelBackend) display(d *Dispatcher, pane Pane, path string) {
	f, err := os.Open(path)
	if err != nil {
		logging.L().Debug("cannot open sixel thumbnail", logging.String("path", path), logging.Err(err))
		return
	}
	defer func() {
		_ = f.Close()
	}()

	x, y := pane.Origin()
	moveCursor(d.tty, x, y)
	_, _ = io.Copy(d.tty, f)
	moveCursor(d.tty, x, y)
	d.needsClearing = true
}

func (sixelBackend) clear(d *Dispatcher, pane Pane) bool {
	return blankRaw(d, pane)
}

// chafaBackend renders images as character art and writes it line by line.
type chafaBackend struct{}

func (chafaBackend) display(d *Dispatcher, pane Pane, path string) {
	cols, rows := pane.Size()
	size := fmt.Sprintf("%dx%d", cols/2, rows/2)

	out, err := d.runCommand("", "chafa", "--view-size", size, path)
	if err != nil && len(out) == 0 {
		logging.L().Debug("chafa failed", logging.String("path", path), logging.Err(err))
		return
	}

	x, y := pane.Origin()
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for n := 0; n < rows && sc.Scan(); n++ {
		moveCursor(d.tty, x+1, y+n)
		_, _ = d.tty.Write(sc.Bytes())
	}
	moveCursor(d.tty, x, y)
	d.needsClearing = true
}

func (chafaBackend) clear(d *Dispatcher, pane Pane) bool {
	return blankRaw(d, pane)
}

// x11Backend hands images to w3mimgdisplay, which paints into the
// terminal's X window using pixel coordinates.
type x11Backend struct{}

func (x11Backend) display(d *Dispatcher, pane Pane, path string) {
	pw, ph := d.caps.PixelWidth, d.caps.PixelHeight
	_, rows := pane.Size()
	if pw <= 0 || ph <= 0 || rows <= 0 {
		return
	}

	x := 100 + pw/2
	y := ph / rows
	maxW := pw/2 - 200
	maxH := ph - y
	if maxW <= 0 || maxH <= 0 {
		return
	}

	out, err := d.runCommand("5;"+path+"\n", d.caps.W3mImgDisplay)
	if err != nil {
		logging.L().Debug("w3mimgdisplay size query failed", logging.String("path", path), logging.Err(err))
		return
	}
	var sw, sh int
	if n, _ := fmt.Sscan(string(out), &sw, &sh); n != 2 || sw <= 0 || sh <= 0 {
		return
	}

	w, h := sw, sh
	if w > maxW {
		h = h * maxW / w
		w = maxW
	}
	if h > maxH {
		w = w * maxH / h
		h = maxH
	}

	cmd := "6;" + ints(x, y, maxW, maxH) + ";\n" +
		"0;1;" + ints(x, y, w, h) + ";;;" + ints(sw, sh) + ";" + path + "\n" +
		"4;\n3;\n"
	if _, err := d.runCommand(cmd, d.caps.W3mImgDisplay); err == nil {
		d.needsClearing = true
	}
}

func (x11Backend) clear(d *Dispatcher, _ Pane) bool {
	pw, ph := d.caps.PixelWidth, d.caps.PixelHeight
	cmd := "6;" + ints(pw/2, 0, pw/2, ph) + ";\n4;\n3;\n"
	_, err := d.runCommand(cmd, d.caps.W3mImgDisplay)
	return err == nil
}

func ints(vals ...int) string {
	var b []byte
	for i, v := range vals {
		if i > 0 {
			b = append(b, ';')
		}
		b = strconv.AppendInt(b, int64(v), 10)
	}
	return string(b)
}
