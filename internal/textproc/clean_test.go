package textproc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestClean_NormalizesWhitespace(t *testing.T) {
	c := NewCleaner(nil)

	got := c.Clean("hello   world\t foo ")
	if got != "hello world foo" {
		t.Errorf("Expected 'hello world foo', got '%s'", got)
	}
}

func TestClean_NewlineBeforeCapital(t *testing.T) {
	c := NewCleaner(nil)

	got := c.Clean("first line\nSecond line")
	if got != "first line. Second line" {
		t.Errorf("Expected sentence break at newline, got '%s'", got)
	}
}

func TestClean_NewlineBeforeLowercaseKept(t *testing.T) {
	c := NewCleaner(nil)

	// A wrapped line continuing in lowercase is the same sentence
	got := c.Clean("first line\ncontinues here")
	if got != "first line continues here" {
		t.Errorf("Expected joined line, got '%s'", got)
	}
}

func TestClean_ReplacementRules(t *testing.T) {
	c := NewCleaner([]ReplacementRule{
		{From: "e.g.", To: "for example"},
		{From: "&", To: "and"},
	})

	got := c.Clean("use e.g. salt & pepper")
	if got != "use for example salt and pepper" {
		t.Errorf("Unexpected result: '%s'", got)
	}
}

func TestClean_SpellsOutLongNumbers(t *testing.T) {
	c := NewCleaner(nil)

	got := c.Clean("the year 2026 was long")
	if strings.Contains(got, "2026") {
		t.Errorf("Expected long number spelled out, got '%s'", got)
	}
	if !strings.Contains(got, "thousand") {
		t.Errorf("Expected word form of 2026, got '%s'", got)
	}
}

func TestClean_KeepsShortNumbers(t *testing.T) {
	c := NewCleaner(nil)

	got := c.Clean("chapter 12 of 999")
	if !strings.Contains(got, "12") || !strings.Contains(got, "999") {
		t.Errorf("Expected short numbers kept, got '%s'", got)
	}
}

func TestClean_StripsEmoji(t *testing.T) {
	c := NewCleaner(nil)

	got := c.Clean("great job \U0001F389 team")
	if got != "great job team" {
		t.Errorf("Expected emoji stripped, got '%s'", got)
	}
}

func TestClean_Empty(t *testing.T) {
	c := NewCleaner(nil)

	if got := c.Clean("   \n\t "); got != "" {
		t.Errorf("Expected empty result, got '%s'", got)
	}
}

func TestLoadReplacementRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	content := `{"replacements": [{"from": "Dr.", "to": "Doctor"}, {"from": "vs.", "to": "versus"}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write rules file: %v", err)
	}

	rules, err := LoadReplacementRules(path)
	if err != nil {
		t.Fatalf("LoadReplacementRules() failed: %v", err)
	}

	if len(rules) != 2 {
		t.Fatalf("Expected 2 rules, got %d", len(rules))
	}
	if rules[0].From != "Dr." || rules[0].To != "Doctor" {
		t.Errorf("Unexpected first rule: %+v", rules[0])
	}
}

func TestLoadReplacementRules_Missing(t *testing.T) {
	_, err := LoadReplacementRules(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Error("Expected error for missing rules file")
	}
}

func TestLoadReplacementRules_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("Failed to write rules file: %v", err)
	}

	_, err := LoadReplacementRules(path)
	if err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestLoadReplacementRules_EmptyFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	content := `{"replacements": [{"from": "", "to": "x"}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write rules file: %v", err)
	}

	_, err := LoadReplacementRules(path)
	if err == nil {
		t.Error("Expected error for rule with empty 'from'")
	}
}
