package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"mines-casino/internal/config"
)

func TestFileWriterKeepsOneBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mines.log")
	w := newFileWriter(path, 1)
	defer w.Close()

	chunk := make([]byte, 512*1024)
	for i := 0; i < 3; i++ {
		if _, err := w.Write(chunk); err != nil {
			t.Fatalf("write chunk %d: %v", i, err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat log: %v", err)
	}
	if info.Size() != 512*1024 {
		t.Fatalf("log size = %d, want %d", info.Size(), 512*1024)
	}
	backups, err := filepath.Glob(filepath.Join(dir, "mines-*.log"))
	if err != nil {
		t.Fatalf("glob backups: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected one backup, got %v", backups)
	}
	backup, err := os.Stat(backups[0])
	if err != nil {
		t.Fatalf("stat backup: %v", err)
	}
	if backup.Size() != 1024*1024 {
		t.Fatalf("backup size = %d, want %d", backup.Size(), 1024*1024)
	}
}

func TestFileWriterReopensAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mines.log")
	w := newFileWriter(path, 1)
	if _, err := w.Write([]byte("a\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := w.Write([]byte("b\n")); err != nil {
		t.Fatalf("write after close: %v", err)
	}
	_ = w.Close()

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !bytes.Equal(got, []byte("a\nb\n")) {
		t.Fatalf("log contents = %q", got)
	}
}

func TestFileWriterDefaultsMaxSize(t *testing.T) {
	w := newFileWriter(filepath.Join(t.TempDir(), "mines.log"), 0)
	if w.MaxSize != 10 || w.MaxBackups != 1 {
		t.Fatalf("MaxSize=%d MaxBackups=%d, want 10 and 1", w.MaxSize, w.MaxBackups)
	}
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mines.log")
	if err := Init(config.LogConfig{Level: "debug", File: path, MaxMB: 1, Service: "test"}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	if _, err := Writer().Write([]byte(`{"msg":"hello"}` + "\n")); err != nil {
		t.Fatalf("write via Writer(): %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !bytes.Contains(got, []byte("hello")) {
		t.Fatalf("log file missing record: %q", got)
	}
}
