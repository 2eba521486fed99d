package tts

import (
	"context"
	"errors"
	"time"

	"github.com/haguro/elevenlabs-go"

	"github.com/lexiqai/readaloud/internal/audio"
	"github.com/lexiqai/readaloud/internal/config"
	"github.com/lexiqai/readaloud/internal/observability"
)

const elevenLabsTimeout = 60 * time.Second

// ElevenLabsClient implements Client using the ElevenLabs TTS API. The API
// has no speed parameter, so clips come back with SpeedApplied unset and
// playback applies the factor.
type ElevenLabsClient struct {
	apiKey string
}

// NewElevenLabsClient creates a new ElevenLabs TTS client
func NewElevenLabsClient(cfg *config.Config) *ElevenLabsClient {
	return &ElevenLabsClient{
		apiKey: cfg.ElevenLabsAPIKey,
	}
}

// Name returns the provider name
func (c *ElevenLabsClient) Name() string {
	return config.ProviderElevenLabs
}

// Synthesize converts text to an mp3 clip via the ElevenLabs API. Voice in
// the request is an ElevenLabs voice ID.
func (c *ElevenLabsClient) Synthesize(ctx context.Context, req Request) (*audio.Clip, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	// A fresh client per call ties the request lifetime to ctx.
	client := elevenlabs.NewClient(ctx, c.apiKey, elevenLabsTimeout)

	data, err := client.TextToSpeech(req.Voice, elevenlabs.TextToSpeechRequest{
		Text:    req.Text,
		ModelID: req.Model,
	})
	if err != nil {
		observability.RecordSynthesis(c.Name(), "error", time.Since(start))
		return nil, &SynthesisError{
			Provider: c.Name(),
			Err:      err,
		}
	}

	if len(data) == 0 {
		observability.RecordSynthesis(c.Name(), "error", time.Since(start))
		return nil, &SynthesisError{
			Provider: c.Name(),
			Err:      errors.New("empty audio payload"),
		}
	}

	observability.RecordSynthesis(c.Name(), "success", time.Since(start))
	observability.RecordSynthesisBytes(len(data))

	return &audio.Clip{
		Data:         data,
		Format:       "mp3",
		SpeedApplied: false,
	}, nil
}
