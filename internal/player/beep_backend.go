package player

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// Speaker is initialized once at a fixed rate; every clip is resampled to
// it. The buffer length is also the stop-latency bound.
const (
	speakerRate     = beep.SampleRate(44100)
	speakerBufLen   = 100 * time.Millisecond
	resampleQuality = 4
)

// BeepBackend plays stored clips through the system audio device using the
// beep speaker. Speed factors are applied with a resampler, which shifts
// pitch along with tempo.
type BeepBackend struct {
	initOnce sync.Once
	initErr  error
	inited   bool
}

// NewBeepBackend creates a BeepBackend. The audio device is opened lazily
// on the first Play call.
func NewBeepBackend() *BeepBackend {
	return &BeepBackend{}
}

// Play decodes the clip file and blocks until playback completes or ctx is
// cancelled. Cancellation clears the speaker, halting audio within the
// buffer interval.
func (b *BeepBackend) Play(ctx context.Context, path string, ratio float64) error {
	b.initOnce.Do(func() {
		b.initErr = speaker.Init(speakerRate, speakerRate.N(speakerBufLen))
		b.inited = b.initErr == nil
	})
	if b.initErr != nil {
		return fmt.Errorf("failed to open audio device: %w", b.initErr)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open clip file: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return fmt.Errorf("unsupported audio format %q", ext)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to decode clip: %w", err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != speakerRate {
		s = beep.Resample(resampleQuality, format.SampleRate, speakerRate, s)
	}
	if ratio != 1.0 {
		s = beep.ResampleRatio(resampleQuality, ratio, s)
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(s, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}

// Close clears any queued audio.
func (b *BeepBackend) Close() error {
	if b.inited {
		speaker.Clear()
	}
	return nil
}
