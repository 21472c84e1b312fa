package ui

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello world", 6, "hello…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
		{"日本語テキスト", 5, "日本…"},
	}
	for _, tc := range tests {
		if got := Truncate(tc.in, tc.max); got != tc.want {
			t.Fatalf("Truncate(%q, %d): got %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestFit(t *testing.T) {
	for _, s := range []string{"", "ab", "a much longer value", "文本文本文本"} {
		for _, w := range []int{1, 4, 7} {
			if got := runewidth.StringWidth(Fit(s, w)); got != w {
				t.Fatalf("Fit(%q, %d) is %d cells wide", s, w, got)
			}
			if got := runewidth.StringWidth(FitRight(s, w)); got != w {
				t.Fatalf("FitRight(%q, %d) is %d cells wide", s, w, got)
			}
		}
	}
}

func TestContrast(t *testing.T) {
	tests := []struct {
		bg   string
		want string
	}{
		{"#ffffff", string(inkDark)},
		{"#f9e2af", string(inkDark)},
		{"#000000", string(inkLight)},
		{"#1e1e2e", string(inkLight)},
		{"not-a-color", string(inkLight)},
	}
	for _, tc := range tests {
		if got := string(Contrast(tc.bg)); got != tc.want {
			t.Fatalf("Contrast(%s): got %s, want %s", tc.bg, got, tc.want)
		}
	}
}
