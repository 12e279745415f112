package preview

import (
	"fmt"
	"os"

	"github.com/kk-code-lab/raider/internal/fs"
	"github.com/kk-code-lab/raider/internal/textutil"
)

const summaryColumn = 21

func twoColumns(left, right string) string {
	return fmt.Sprintf("%-*s%s", summaryColumn, left, right)
}

// SummaryLines describes e the way stat(1) would.
func SummaryLines(e fs.Entry) []string {
	name := textutil.SanitizeTerminalText(e.Name)
	lines := make([]string, 8)

	switch {
	case e.IsSymlink:
		lines[0] = "  Link: " + name
		if target, err := os.Readlink(e.Path); err == nil {
			lines[1] = "        -> " + textutil.SanitizeTerminalText(target)
		}
	case e.IsDir:
		lines[0] = "   Dir: " + name
	case e.Mode.IsRegular():
		lines[0] = "  File: " + name
	default:
		lines[0] = "  Node: " + name
	}

	st := e.Stat
	lines[2] = twoColumns("  Size: "+fs.SizeLine(e.Size),
		fmt.Sprintf("FileType: %s (%s)", e.Type, e.Ext))
	lines[3] = twoColumns("  Mode: ("+fs.ModeLine(e.Mode)+")",
		fmt.Sprintf("Uid: (%d/%s) Gid: (%d/%s)", st.Uid, fs.OwnerName(st.Uid), st.Gid, fs.GroupName(st.Gid)))

	major, minor := fs.DeviceNumbers(st.Dev)
	lines[4] = twoColumns(fmt.Sprintf("Device: %d,%d", major, minor),
		fmt.Sprintf("Inode: %d  Links: %d", st.Ino, st.Nlink))
	if e.Mode&os.ModeDevice != 0 {
		rmaj, rmin := fs.DeviceNumbers(st.Rdev)
		lines[4] += fmt.Sprintf("  Device type: %d,%d", rmaj, rmin)
	}

	lines[5] = "Access: " + fs.TimeLine(st.Atime)
	lines[6] = "Modify: " + fs.TimeLine(st.Mtime)
	lines[7] = "Change: " + fs.TimeLine(st.Ctime)
	return lines
}

// Summary draws the metadata summary of e.
func Summary(pane Pane, e fs.Entry) {
	_, rows := pane.Size()
	for i, line := range SummaryLines(e) {
		if i >= rows {
			return
		}
		pane.SetLine(i, line)
	}
}
