package player

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexiqai/readaloud/internal/audio"
	"github.com/lexiqai/readaloud/internal/observability"
	"github.com/lexiqai/readaloud/internal/textproc"
	"github.com/lexiqai/readaloud/internal/tts"
)

// Options wires a Controller together.
type Options struct {
	Client    tts.Client
	Backend   Backend
	Store     *audio.Store
	Cache     *audio.Cache
	Cleaner   *textproc.Cleaner
	Segmenter *textproc.Segmenter
	Source    TextSource

	Voice string
	Model string
	Speed float64
}

// Controller owns the single active playback session. The keyboard listener
// only calls Start, Stop and Toggle; those post commands on a channel
// consumed by the Run loop, which is the sole writer of controller state.
type Controller struct {
	client    tts.Client
	backend   Backend
	store     *audio.Store
	cache     *audio.Cache
	cleaner   *textproc.Cleaner
	segmenter *textproc.Segmenter
	source    TextSource

	voice string
	model string
	speed float64

	log   zerolog.Logger
	cmds  chan Command
	state atomic.Int32
}

// session is one read-aloud run. Its ctx cancels generation and playback;
// done reports the pipeline outcome.
type session struct {
	id     string
	cancel context.CancelFunc
	done   chan error
}

// NewController creates a Controller. Speed must be > 0.
func NewController(opts Options) *Controller {
	return &Controller{
		client:    opts.Client,
		backend:   opts.Backend,
		store:     opts.Store,
		cache:     opts.Cache,
		cleaner:   opts.Cleaner,
		segmenter: opts.Segmenter,
		source:    opts.Source,
		voice:     opts.Voice,
		model:     opts.Model,
		speed:     opts.Speed,
		log:       observability.GetLogger().With().Str("component", "player").Logger(),
		cmds:      make(chan Command, 8),
	}
}

// State returns the current controller state.
func (c *Controller) State() State {
	return State(c.state.Load())
}

func (c *Controller) setState(s State) {
	old := State(c.state.Swap(int32(s)))
	if old != s {
		c.log.Debug().Str("from", old.String()).Str("to", s.String()).Msg("state transition")
	}
}

// Start requests a new read-aloud session. Ignored while one is active.
func (c *Controller) Start() { c.send(CmdStart) }

// Stop requests the active session to halt. A no-op while idle.
func (c *Controller) Stop() { c.send(CmdStop) }

// Toggle starts when idle and stops otherwise.
func (c *Controller) Toggle() { c.send(CmdToggle) }

// send never blocks the caller; the listener must stay responsive even if
// the loop is busy tearing a session down.
func (c *Controller) send(cmd Command) {
	select {
	case c.cmds <- cmd:
	default:
		c.log.Warn().Str("command", cmd.String()).Msg("command channel full, dropping")
	}
}

// Run consumes commands until ctx is cancelled. Cancellation stops any
// in-flight session before returning, so no playback outlives the loop.
func (c *Controller) Run(ctx context.Context) {
	var cur *session

	for {
		// nil channel when idle so the select ignores it
		var curDone chan error
		if cur != nil {
			curDone = cur.done
		}

		select {
		case <-ctx.Done():
			if cur != nil {
				c.stopSession(cur)
				cur = nil
			}
			c.setState(StateIdle)
			return

		case err := <-curDone:
			// Natural completion or pipeline failure. A synthesis failure
			// aborts the session but leaves the loop ready for the next start.
			c.finishSession(cur, err)
			cur = nil
			c.setState(StateIdle)

		case cmd := <-c.cmds:
			switch cmd {
			case CmdToggle:
				if cur == nil {
					cur = c.startSession(ctx)
				} else {
					c.stopSession(cur)
					cur = nil
					c.setState(StateIdle)
				}
			case CmdStart:
				if cur != nil {
					c.log.Debug().Msg("session already active, ignoring start")
					continue
				}
				cur = c.startSession(ctx)
			case CmdStop:
				if cur == nil {
					c.log.Debug().Msg("stop while idle is a no-op")
					continue
				}
				c.stopSession(cur)
				cur = nil
				c.setState(StateIdle)
			}
		}
	}
}

// startSession transitions to generating and launches the pipeline.
func (c *Controller) startSession(parent context.Context) *session {
	sctx, cancel := context.WithCancel(parent)
	s := &session{
		id:     observability.NewSessionID(),
		cancel: cancel,
		done:   make(chan error, 1),
	}

	c.setState(StateGenerating)
	observability.SessionStarted()
	c.log.Info().Str("session_id", s.id).Msg("session started")

	go func() {
		s.done <- c.runPipeline(sctx, s.id)
	}()

	return s
}

// stopSession cancels the session and waits for the pipeline to unwind.
// The backend interrupts within its buffer interval, so the wait is short.
func (c *Controller) stopSession(s *session) {
	c.setState(StateStopped)
	s.cancel()
	err := <-s.done

	if err != nil && !errors.Is(err, context.Canceled) {
		c.log.Error().Err(err).Str("session_id", s.id).Msg("session ended with error")
		observability.SessionEnded("failed")
	} else {
		c.log.Info().Str("session_id", s.id).Msg("session stopped")
		observability.SessionEnded("stopped")
	}
}

// finishSession records the outcome of a session that ended on its own.
func (c *Controller) finishSession(s *session, err error) {
	s.cancel()
	switch {
	case err == nil:
		c.log.Info().Str("session_id", s.id).Msg("session completed")
		observability.SessionEnded("completed")
	case errors.Is(err, context.Canceled):
		observability.SessionEnded("stopped")
	default:
		c.log.Error().Err(err).Str("session_id", s.id).Msg("session failed")
		observability.SessionEnded("failed")
	}
}

// RunOnce speaks the given text synchronously: one session, no command loop.
// Used by one-shot mode.
func (c *Controller) RunOnce(ctx context.Context, text string) error {
	c.setState(StateGenerating)
	observability.SessionStarted()
	defer c.setState(StateIdle)

	err := c.speak(ctx, observability.NewSessionID(), text)
	switch {
	case err == nil:
		observability.SessionEnded("completed")
	case errors.Is(err, context.Canceled):
		observability.SessionEnded("stopped")
		return nil
	default:
		observability.SessionEnded("failed")
	}
	return err
}

// runPipeline fetches text from the source and speaks it.
func (c *Controller) runPipeline(ctx context.Context, sessionID string) error {
	text, err := c.source(ctx)
	if err != nil {
		return err
	}
	return c.speak(ctx, sessionID, text)
}

// clipItem moves one playable clip from the synthesis goroutine to the
// playback loop. ephemeral clips are deleted after playing.
type clipItem struct {
	clip      *audio.Clip
	ephemeral bool
	err       error
}

// speak cleans and segments text, then synthesizes and plays it sentence by
// sentence. Synthesis runs one sentence ahead of playback.
func (c *Controller) speak(ctx context.Context, sessionID, text string) error {
	log := observability.WithSession(sessionID)

	// Scoped cancel releases the synthesis goroutine if playback bails early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	text = c.cleaner.Clean(text)
	if strings.TrimSpace(text) == "" {
		return tts.ErrEmptyText
	}

	sents := c.segmenter.Sentences(text)
	if len(sents) == 0 {
		return tts.ErrEmptyText
	}
	log.Debug().Int("sentences", len(sents)).Msg("text segmented")

	clips := make(chan clipItem, 1)
	go func() {
		defer close(clips)
		for _, sent := range sents {
			item := c.clipFor(ctx, log, sent)
			select {
			case clips <- item:
			case <-ctx.Done():
				return
			}
			if item.err != nil {
				return
			}
		}
	}()

	first := true
	for item := range clips {
		if item.err != nil {
			return item.err
		}
		if first {
			c.setState(StatePlaying)
			first = false
		}

		ratio := c.speed
		if item.clip.SpeedApplied {
			ratio = 1.0
		}

		start := time.Now()
		err := c.backend.Play(ctx, item.clip.Path, ratio)
		observability.RecordPlayback(time.Since(start))

		if item.ephemeral {
			if rmErr := c.store.Remove(item.clip.Path); rmErr != nil {
				log.Warn().Err(rmErr).Str("path", item.clip.Path).Msg("failed to remove clip file")
			}
		}

		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &PlaybackError{Path: item.clip.Path, Err: err}
		}
	}

	return ctx.Err()
}

// clipFor returns a stored clip for the sentence, from cache when possible.
func (c *Controller) clipFor(ctx context.Context, log zerolog.Logger, sentence string) clipItem {
	key := audio.CacheKey(c.client.Name(), sentence, c.voice, c.model, c.speed)

	if clip, ok := c.cache.Get(key); ok {
		observability.RecordCacheHit()
		log.Debug().Str("path", clip.Path).Msg("clip cache hit")
		return clipItem{clip: clip}
	}
	observability.RecordCacheMiss()

	clip, err := c.client.Synthesize(ctx, tts.Request{
		Text:  sentence,
		Voice: c.voice,
		Model: c.model,
		Speed: c.speed,
	})
	if err != nil {
		return clipItem{err: err}
	}

	if err := c.store.Save(clip); err != nil {
		return clipItem{err: &PlaybackError{Err: err}}
	}

	if c.cache.Enabled() {
		c.cache.Add(key, clip)
		return clipItem{clip: clip}
	}
	return clipItem{clip: clip, ephemeral: true}
}
