package audio

import (
	"os"
	"strings"
	"testing"
)

func TestStore_SaveAndRemove(t *testing.T) {
	s := NewStoreAt(t.TempDir())

	clip := &Clip{Data: []byte("fake-audio"), Format: "mp3"}
	if err := s.Save(clip); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	if clip.Path == "" {
		t.Fatal("Expected clip path to be set")
	}
	if !strings.HasSuffix(clip.Path, ".mp3") {
		t.Errorf("Expected .mp3 suffix, got %s", clip.Path)
	}

	data, err := os.ReadFile(clip.Path)
	if err != nil {
		t.Fatalf("Failed to read stored clip: %v", err)
	}
	if string(data) != "fake-audio" {
		t.Errorf("Unexpected file contents: %q", data)
	}

	if err := s.Remove(clip.Path); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if _, err := os.Stat(clip.Path); !os.IsNotExist(err) {
		t.Error("Expected clip file to be removed")
	}
}

func TestStore_RemoveMissing(t *testing.T) {
	s := NewStoreAt(t.TempDir())

	if err := s.Remove("/nonexistent/clip.mp3"); err != nil {
		t.Errorf("Remove() of missing file should not error, got %v", err)
	}
	if err := s.Remove(""); err != nil {
		t.Errorf("Remove() of empty path should not error, got %v", err)
	}
}
