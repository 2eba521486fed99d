package textproc

import (
	"testing"
)

func TestSentences_SplitsOnBoundaries(t *testing.T) {
	s := newTestSegmenter(t)

	got := s.Sentences("Hello world. How are you today? I am fine.")
	if len(got) != 3 {
		t.Fatalf("Expected 3 sentences, got %d: %v", len(got), got)
	}
	if got[0] != "Hello world." {
		t.Errorf("Expected 'Hello world.', got '%s'", got[0])
	}
}

func TestSentences_SingleSentence(t *testing.T) {
	s := newTestSegmenter(t)

	got := s.Sentences("Hello world")
	if len(got) != 1 {
		t.Fatalf("Expected 1 sentence, got %d: %v", len(got), got)
	}
	if got[0] != "Hello world" {
		t.Errorf("Expected 'Hello world', got '%s'", got[0])
	}
}

func TestSentences_AbbreviationsDoNotSplit(t *testing.T) {
	s := newTestSegmenter(t)

	got := s.Sentences("Dr. Smith arrived at 3 p.m. on Tuesday.")
	if len(got) != 1 {
		t.Errorf("Expected abbreviations to stay in one sentence, got %d: %v", len(got), got)
	}
}

func TestSentences_Empty(t *testing.T) {
	s := newTestSegmenter(t)

	if got := s.Sentences(""); len(got) != 0 {
		t.Errorf("Expected no sentences for empty input, got %v", got)
	}

	if got := s.Sentences("   . "); len(got) != 0 {
		t.Errorf("Expected bare punctuation dropped, got %v", got)
	}
}

func newTestSegmenter(t *testing.T) *Segmenter {
	t.Helper()
	s, err := NewSegmenter()
	if err != nil {
		t.Fatalf("NewSegmenter() failed: %v", err)
	}
	return s
}
