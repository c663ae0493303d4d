package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestNewRequiresFiles(t *testing.T) {
	if _, err := New(nil, 0); err == nil {
		t.Fatal("expected error for empty file list")
	}
}

func TestWatcherReportsTrackedWrites(t *testing.T) {
	dir := t.TempDir()
	tracked := filepath.Join(dir, "main.tm")
	other := filepath.Join(dir, "notes.txt")
	for _, f := range []string{tracked, other} {
		if err := os.WriteFile(f, []byte("x = 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	w, err := New([]string{tracked}, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(other, []byte("ignored\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(tracked, []byte("x = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	want, _ := filepath.Abs(tracked)
	select {
	case ev := <-w.Events():
		if ev.Path != want {
			t.Fatalf("event path = %q, want %q", ev.Path, want)
		}
		if ev.Op&OpWrite == 0 && ev.Op&OpCreate == 0 {
			t.Errorf("event op = %s, want WRITE or CREATE", ev.Op)
		}
	case err := <-w.Errors():
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestCloseClosesEvents(t *testing.T) {
	f := filepath.Join(t.TempDir(), "a.tm")
	if err := os.WriteFile(f, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := New([]string{f}, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	select {
	case _, ok := <-w.Events():
		if ok {
			t.Fatal("expected closed events channel")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		in   fsnotify.Op
		want Op
	}{
		{fsnotify.Create, OpCreate},
		{fsnotify.Write, OpWrite},
		{fsnotify.Remove | fsnotify.Rename, OpRemove | OpRename},
		{fsnotify.Chmod, 0},
	}
	for _, tt := range tests {
		if got := translate(tt.in); got != tt.want {
			t.Errorf("translate(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestOpString(t *testing.T) {
	if got := (OpCreate | OpWrite).String(); got != "CREATE|WRITE" {
		t.Errorf("got %q", got)
	}
	if got := Op(0).String(); got != "NONE" {
		t.Errorf("got %q", got)
	}
}
