// Package clipboard reads the text to speak from the system clipboard, the
// source used by interactive hotkey mode.
package clipboard

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"

	"github.com/lexiqai/readaloud/internal/resilience"
)

// ErrEmpty means the clipboard held no text after retries. It fails the
// current trigger only; the process stays ready for the next one.
var ErrEmpty = errors.New("clipboard is empty")

// readRetry bounds clipboard reads: managers can lag briefly after a copy,
// so one short backoff is worth it. This is the only retry in the tool.
var readRetry = &resilience.RetryConfig{
	MaxAttempts:       2,
	InitialBackoff:    100 * time.Millisecond,
	MaxBackoff:        300 * time.Millisecond,
	BackoffMultiplier: 2.0,
	Jitter:            false,
}

// Read returns the current clipboard text.
func Read(ctx context.Context) (string, error) {
	var text string

	err := resilience.Retry(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		s, err := clipboard.ReadAll()
		if err != nil {
			return err
		}
		if s == "" {
			return ErrEmpty
		}
		text = s
		return nil
	}, readRetry, func(err error) bool {
		return !errors.Is(err, context.Canceled)
	})
	if err != nil {
		return "", err
	}

	return text, nil
}

// Source adapts Read to the player's text source contract.
func Source() func(ctx context.Context) (string, error) {
	return Read
}
