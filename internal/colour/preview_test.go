package colour

import (
	"strings"
	"testing"
)

func TestPreview(t *testing.T) {
	got := Preview(RGB(255, 128, 0), 4)
	want := "\033[48;2;255;128;0m    \033[0m"
	if got != want {
		t.Errorf("Preview() = %q, want %q", got, want)
	}

	if got := Preview(RGB(0, 0, 0), 0); strings.Count(got, " ") != defaultWidth {
		t.Errorf("Preview() with width 0 = %q, want %d spaces", got, defaultWidth)
	}
}

func TestPreviewWithText(t *testing.T) {
	tests := []struct {
		name   string
		c      Color
		text   string
		width  int
		wantFg string
		wantIn string
	}{
		{name: "dark background", c: RGB(0, 0, 0), text: "ab", width: 6, wantFg: "38;2;255;255;255m", wantIn: "  ab  "},
		{name: "light background", c: RGB(255, 255, 255), text: "ab", width: 5, wantFg: "38;2;0;0;0m", wantIn: " ab  "},
		{name: "truncated", c: RGB(0, 0, 0), text: "abcdef", width: 3, wantFg: "38;2;255;255;255m", wantIn: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PreviewWithText(tt.c, tt.text, tt.width)
			if !strings.Contains(got, tt.wantFg) {
				t.Errorf("PreviewWithText() = %q, want foreground %q", got, tt.wantFg)
			}
			if !strings.Contains(got, tt.wantIn) {
				t.Errorf("PreviewWithText() = %q, want text %q", got, tt.wantIn)
			}
			if !strings.HasSuffix(got, ansiReset) {
				t.Errorf("PreviewWithText() = %q, want reset suffix", got)
			}
		})
	}
}
