package player

import (
	"context"
	"fmt"
)

// State of the playback controller.
// Transitions: idle → generating → playing → {stopped | idle}.
type State int32

const (
	StateIdle State = iota
	StateGenerating
	StatePlaying
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerating:
		return "generating"
	case StatePlaying:
		return "playing"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Command is a signal from the keyboard listener to the controller,
// delivered over a channel rather than shared flags.
type Command int

const (
	CmdStart Command = iota
	CmdStop
	CmdToggle
)

func (c Command) String() string {
	switch c {
	case CmdStart:
		return "start"
	case CmdStop:
		return "stop"
	case CmdToggle:
		return "toggle"
	default:
		return "unknown"
	}
}

// Backend plays one stored clip. Play blocks until playback completes
// naturally or ctx is cancelled; cancellation must halt audio within a
// bounded, short delay.
type Backend interface {
	Play(ctx context.Context, path string, ratio float64) error
	Close() error
}

// TextSource supplies the text for a session trigger (literal, file or
// clipboard contents).
type TextSource func(ctx context.Context) (string, error)

// PlaybackError covers audio device and clip file I/O failures.
type PlaybackError struct {
	Path string
	Err  error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("playback of %s failed: %v", e.Path, e.Err)
}

func (e *PlaybackError) Unwrap() error {
	return e.Err
}
