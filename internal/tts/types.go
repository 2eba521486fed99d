package tts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lexiqai/readaloud/internal/audio"
)

// Input validation errors, raised before any network call is made.
var (
	ErrEmptyText    = errors.New("text is empty")
	ErrInvalidSpeed = errors.New("speed must be > 0")
)

// Request is a single synthesis request. Created per invocation and
// discarded after use.
type Request struct {
	Text  string  // Text to synthesize, must be non-empty
	Voice string  // Provider voice name or voice ID
	Model string  // Provider model identifier
	Speed float64 // Speed multiplier, must be > 0
}

// Validate checks the request before it reaches the network.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyText
	}
	if r.Speed <= 0 {
		return ErrInvalidSpeed
	}
	return nil
}

// Client defines the interface for a text-to-speech client
type Client interface {
	// Synthesize converts text to an audio clip or fails with *SynthesisError
	Synthesize(ctx context.Context, req Request) (*audio.Clip, error)

	// Name returns the provider name
	Name() string
}

// SynthesisError covers network failure, an invalid API key and service-side
// rejection of the input. A single failed call surfaces to the user; there is
// no automatic retry.
type SynthesisError struct {
	Provider   string
	StatusCode int // 0 when the request never got a response
	Err        error
}

func (e *SynthesisError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s synthesis failed (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s synthesis failed: %v", e.Provider, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}
