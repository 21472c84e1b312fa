package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestWriteFallsBackToOSC52(t *testing.T) {
	t.Setenv("TMUX", "")
	var out bytes.Buffer
	s := &System{
		out:   &out,
		write: func(string) error { return errors.New("no xclip") },
	}
	if err := s.WriteText("a\tb"); err != nil {
		t.Fatal(err)
	}
	want := base64.StdEncoding.EncodeToString([]byte("a\tb"))
	if !strings.Contains(out.String(), want) || !strings.HasPrefix(out.String(), "\x1b]52;") {
		t.Fatalf("got %q, want OSC 52 sequence carrying %s", out.String(), want)
	}
}

func TestWriteNativeSkipsFallback(t *testing.T) {
	var out bytes.Buffer
	var got string
	s := &System{out: &out, write: func(text string) error { got = text; return nil }}
	if err := s.WriteText("x"); err != nil {
		t.Fatal(err)
	}
	if got != "x" || out.Len() != 0 {
		t.Fatalf("native write %q, fallback output %q", got, out.String())
	}
}

func TestWriteWithoutFallbackReportsError(t *testing.T) {
	s := &System{write: func(string) error { return errors.New("no xclip") }}
	if err := s.WriteText("x"); err == nil {
		t.Fatal("expected error without fallback writer")
	}
}
