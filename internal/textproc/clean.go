package textproc

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/divan/num2words"
	"github.com/forPelevin/gomoji"
)

// ReplacementRule rewrites one literal substring before synthesis, e.g.
// {"from": "e.g.", "to": "for example"}.
type ReplacementRule struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type rulesFile struct {
	Replacements []ReplacementRule `json:"replacements"`
}

// LoadReplacementRules reads replacement rules from a JSON config file.
func LoadReplacementRules(path string) ([]ReplacementRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read replacement rules: %w", err)
	}

	var f rulesFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse replacement rules: %w", err)
	}

	for _, r := range f.Replacements {
		if r.From == "" {
			return nil, fmt.Errorf("replacement rule with empty 'from' in %s", path)
		}
	}

	return f.Replacements, nil
}

// newlineBeforeCapital turns a newline directly followed by a capital letter
// into a sentence break, so list items read as separate sentences.
var newlineBeforeCapital = regexp.MustCompile(`\n(?:\s*\n)*([A-Z])`)

// Cleaner normalizes raw input text for speech synthesis.
type Cleaner struct {
	rules []ReplacementRule
}

// NewCleaner creates a Cleaner with the given replacement rules (may be nil).
func NewCleaner(rules []ReplacementRule) *Cleaner {
	return &Cleaner{rules: rules}
}

// Clean normalizes whitespace, applies replacement rules, spells out long
// digit runs and strips emoji. The result is what gets synthesized.
func (c *Cleaner) Clean(text string) string {
	text = newlineBeforeCapital.ReplaceAllString(text, ". $1")
	text = gomoji.RemoveEmojis(text)

	for _, r := range c.rules {
		text = strings.ReplaceAll(text, r.From, r.To)
	}

	// Fields collapse also normalizes whitespace left by emoji removal
	text = strings.Join(strings.Fields(text), " ")
	text = spellOutLongNumbers(text)

	return strings.TrimSpace(text)
}

// spellOutLongNumbers replaces standalone digit runs longer than three digits
// with their word form; TTS voices tend to misread long digit strings.
func spellOutLongNumbers(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		if len(w) <= 3 || !isDigits(w) {
			continue
		}
		n, err := strconv.Atoi(w)
		if err != nil {
			continue // too large for int, leave as-is
		}
		words[i] = num2words.Convert(n)
	}
	return strings.Join(words, " ")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
