package app

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode"
)

var lookPath = exec.LookPath

// tools are the external programs the browser hands work to.
type tools struct {
	opener string   // desktop file opener
	editor []string // editor command without the file argument
	lister []string // lists paths below "." for fzf
	fzf    string
	shell  string
}

func detectTools(goos string, getenv func(string) string, lookPath func(string) (string, error)) tools {
	found := func(candidates ...string) string {
		for _, c := range candidates {
			if c == "" {
				continue
			}
			if p, err := lookPath(c); err == nil && p != "" {
				return p
			}
		}
		return ""
	}

	var t tools
	if strings.EqualFold(goos, "darwin") {
		t.opener = found("open")
	} else {
		t.opener = found("xdg-open")
	}

	t.editor = detectEditorCommand(getenv, lookPath)

	t.fzf = found("fzf")
	if fd := found("fd", "fdfind"); fd != "" {
		t.lister = []string{fd, "."}
	} else if find := found("find"); find != "" {
		t.lister = []string{find, "."}
	}

	t.shell = getenv("SHELL")
	if t.shell == "" {
		t.shell = "/bin/sh"
	}
	return t
}

// detectEditorCommand prefers $VISUAL and $EDITOR, then emacsclient in the
// terminal, then vim.
func detectEditorCommand(getenv func(string) string, lookPath func(string) (string, error)) []string {
	for _, env := range []string{getenv("VISUAL"), getenv("EDITOR")} {
		args := splitCommand(env)
		if len(args) == 0 {
			continue
		}
		if p, err := lookPath(expandUserPath(args[0])); err == nil {
			args[0] = p
			return args
		}
	}

	for _, def := range [][]string{{"emacsclient", "-nw"}, {"vim"}} {
		if p, err := lookPath(def[0]); err == nil {
			return append([]string{p}, def[1:]...)
		}
	}
	return nil
}

// splitCommand splits a command line on spaces, honouring single and
// double quotes.
func splitCommand(line string) []string {
	var (
		args   []string
		cur    strings.Builder
		quote  rune
		inWord bool
	)
	for _, r := range strings.TrimSpace(line) {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			cur.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case unicode.IsSpace(r):
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		args = append(args, cur.String())
	}
	return args
}

func expandUserPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}
