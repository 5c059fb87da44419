package uploads

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) record(kind, filename string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, kind+":"+filename)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func waitFor(t *testing.T, rec *recorder, want string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		for _, e := range rec.snapshot() {
			if e == want {
				return
			}
		}
		select {
		case <-deadline:
			t.Fatalf("event %q not observed; got %v", want, rec.snapshot())
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestWatchReportsCreateAndDelete(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = Watch(ctx, dir, logger, rec.record)
		close(done)
	}()
	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "image.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, rec, "created:image.png")

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	waitFor(t, rec, "deleted:image.png")

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

func TestWatchIgnoresHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = Watch(ctx, dir, logger, rec.record) }()
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, ".tmp-upload"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	if events := rec.snapshot(); len(events) != 0 {
		t.Errorf("hidden file produced events: %v", events)
	}
}
