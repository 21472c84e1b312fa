package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write", fsnotify.Event{Name: "/d/t.json", Op: fsnotify.Write}, true},
		{"rename over", fsnotify.Event{Name: "/d/t.json", Op: fsnotify.Create}, true},
		{"removed", fsnotify.Event{Name: "/d/t.json", Op: fsnotify.Remove}, true},
		{"chmod", fsnotify.Event{Name: "/d/t.json", Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: "/d/u.json", Op: fsnotify.Write}, false},
		{"save temp", fsnotify.Event{Name: "/d/.t.json.123.tmp", Op: fsnotify.Create}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := relevant(tc.ev, "t.json"); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWatchCoalescesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	ch, stop, err := Watch(path, 20*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer stop()

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte(`{"rows":[]}`), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no event after writing the watched file")
	}
	select {
	case <-ch:
		t.Fatal("burst produced more than one event")
	case <-time.After(150 * time.Millisecond):
	}
}
