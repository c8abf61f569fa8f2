package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherHandlesNewXMLFile(t *testing.T) {
	dir := t.TempDir()
	handled := make(chan string, 4)

	directoryWatcher, err := NewDirectoryWatcher(dir, 50*time.Millisecond, func(path string) {
		handled <- path
	})
	if err != nil {
		t.Fatalf("NewDirectoryWatcher failed: %v", err)
	}
	if err := directoryWatcher.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer directoryWatcher.Stop()

	xmlPath := filepath.Join(dir, "1999_3312.xml")
	if err := os.WriteFile(xmlPath, []byte("<root/>"), 0644); err != nil {
		t.Fatalf("failed to write watched file: %v", err)
	}

	select {
	case path := <-handled:
		if path != xmlPath {
			t.Errorf("handled path: got %q, want %q", path, xmlPath)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not invoked for new XML file")
	}
}

func TestWatcherIgnoresNonXMLFiles(t *testing.T) {
	dir := t.TempDir()
	handled := make(chan string, 4)

	directoryWatcher, err := NewDirectoryWatcher(dir, 50*time.Millisecond, func(path string) {
		handled <- path
	})
	if err != nil {
		t.Fatalf("NewDirectoryWatcher failed: %v", err)
	}
	if err := directoryWatcher.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer directoryWatcher.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not xml"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	select {
	case path := <-handled:
		t.Errorf("handler invoked for non-XML file %q", path)
	case <-time.After(300 * time.Millisecond):
		// Expected: nothing handled.
	}
}

func TestWatcherDebouncesWriteBursts(t *testing.T) {
	dir := t.TempDir()
	handled := make(chan string, 16)

	directoryWatcher, err := NewDirectoryWatcher(dir, 200*time.Millisecond, func(path string) {
		handled <- path
	})
	if err != nil {
		t.Fatalf("NewDirectoryWatcher failed: %v", err)
	}
	if err := directoryWatcher.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer directoryWatcher.Stop()

	xmlPath := filepath.Join(dir, "doc.xml")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(xmlPath, []byte("<root/>"), 0644); err != nil {
			t.Fatalf("failed to write watched file: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case <-handled:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not invoked after write burst")
	}

	// The burst must have collapsed into a single invocation.
	select {
	case path := <-handled:
		t.Errorf("handler invoked more than once for burst on %q", path)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherRejectsInvalidSetup(t *testing.T) {
	if _, err := NewDirectoryWatcher(filepath.Join(t.TempDir(), "missing"), 0, func(string) {}); err == nil {
		t.Error("expected error for missing directory")
	}

	if _, err := NewDirectoryWatcher(t.TempDir(), 0, nil); err == nil {
		t.Error("expected error for nil handler")
	}
}
