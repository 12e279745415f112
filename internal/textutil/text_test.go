package textutil

import "testing"

func TestSanitizeTerminalText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "safe-file.txt", "safe-file.txt"},
		{"escape and newline", "bad\x1b[31m\npath", "bad?[31m path"},
		{"tab", "a\tb", "a b"},
		{"delete", "x\x7fy", "x?y"},
		{"bidi override", "evil" + string(rune(0x202E)) + "txt.exe", "evil⟪RLO⟫txt.exe"},
		{"zero width space", "a" + string(rune(0x200B)) + "b", "a⟪ZWSP⟫b"},
		{"wide runes untouched", "日本語", "日本語"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTerminalText(tt.in); got != tt.want {
				t.Fatalf("SanitizeTerminalText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		in   string
		tab  int
		want string
	}{
		{"first\tline", 8, "first   line"},
		{"\tx", 4, "    x"},
		{"ab\tc", 4, "ab  c"},
		{"日\tx", 4, "日  x"},
		{"no tabs", 8, "no tabs"},
		{"a\tb", 0, "a\tb"},
	}
	for _, tt := range tests {
		if got := ExpandTabs(tt.in, tt.tab); got != tt.want {
			t.Fatalf("ExpandTabs(%q, %d) = %q, want %q", tt.in, tt.tab, got, tt.want)
		}
	}
}

func TestPaneText(t *testing.T) {
	if got := PaneText("k\tv\x1b", 4); got != "k   v?" {
		t.Fatalf("PaneText = %q", got)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 4, "abc~"},
		{"日本語", 4, "日~ "},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		got := Fit(tt.in, tt.width)
		if got != tt.want {
			t.Fatalf("Fit(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
		if tt.width > 0 && DisplayWidth(got) != tt.width {
			t.Fatalf("Fit(%q, %d) width %d", tt.in, tt.width, DisplayWidth(got))
		}
	}
}
