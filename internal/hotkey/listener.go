// Package hotkey turns terminal key presses into playback commands. The
// listener is scoped to the controlling terminal (raw mode), not an OS-wide
// hook; the tool must have focus to receive the toggle key.
package hotkey

import (
	"context"
	"fmt"
	"strings"

	"github.com/eiannone/keyboard"
	"github.com/rs/zerolog"

	"github.com/lexiqai/readaloud/internal/observability"
)

// Controller is the surface the listener drives. It never touches playback
// state directly.
type Controller interface {
	Toggle()
	Stop()
}

var functionKeys = map[string]keyboard.Key{
	"f1":  keyboard.KeyF1,
	"f2":  keyboard.KeyF2,
	"f3":  keyboard.KeyF3,
	"f4":  keyboard.KeyF4,
	"f5":  keyboard.KeyF5,
	"f6":  keyboard.KeyF6,
	"f7":  keyboard.KeyF7,
	"f8":  keyboard.KeyF8,
	"f9":  keyboard.KeyF9,
	"f10": keyboard.KeyF10,
	"f11": keyboard.KeyF11,
	"f12": keyboard.KeyF12,
}

// ParseKey resolves a configured key name to either a special key or a rune.
// Accepts f1..f12, space, enter, tab, or any single character.
func ParseKey(name string) (keyboard.Key, rune, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); {
	case functionKeys[n] != 0:
		return functionKeys[n], 0, nil
	case n == "space":
		return keyboard.KeySpace, 0, nil
	case n == "enter":
		return keyboard.KeyEnter, 0, nil
	case n == "tab":
		return keyboard.KeyTab, 0, nil
	case len([]rune(n)) == 1:
		return 0, []rune(n)[0], nil
	default:
		return 0, 0, fmt.Errorf("unknown hotkey %q", name)
	}
}

// Listener subscribes to keyboard events and forwards the configured toggle
// key to the controller. Esc and Ctrl+C end the listener.
type Listener struct {
	toggleKey  keyboard.Key
	toggleRune rune
	ctrl       Controller
	log        zerolog.Logger
}

// NewListener creates a Listener for the given key name.
func NewListener(keyName string, ctrl Controller) (*Listener, error) {
	key, r, err := ParseKey(keyName)
	if err != nil {
		return nil, err
	}
	return &Listener{
		toggleKey:  key,
		toggleRune: r,
		ctrl:       ctrl,
		log:        observability.GetLogger().With().Str("component", "hotkey").Logger(),
	}, nil
}

// Run opens the keyboard and consumes key events until ctx is cancelled or
// a quit key is pressed. It returns nil on a clean quit so main can treat
// the return as a shutdown request.
func (l *Listener) Run(ctx context.Context) error {
	events, err := keyboard.GetKeys(8)
	if err != nil {
		return fmt.Errorf("failed to open keyboard: %w", err)
	}
	defer keyboard.Close()

	// Close the keyboard when ctx ends so the event channel unblocks.
	go func() {
		<-ctx.Done()
		keyboard.Close()
	}()

	l.log.Info().Msg("listening for hotkeys (toggle to read, Esc to quit)")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("keyboard read failed: %w", ev.Err)
			}

			switch {
			case l.matches(ev):
				l.log.Debug().Msg("toggle key pressed")
				l.ctrl.Toggle()
			case ev.Key == keyboard.KeyEsc || ev.Key == keyboard.KeyCtrlC:
				l.log.Info().Msg("quit key pressed")
				l.ctrl.Stop()
				return nil
			}
		}
	}
}

func (l *Listener) matches(ev keyboard.KeyEvent) bool {
	if l.toggleRune != 0 {
		return ev.Rune == l.toggleRune
	}
	return ev.Key == l.toggleKey
}
