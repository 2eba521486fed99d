package tts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/lexiqai/readaloud/internal/audio"
	"github.com/lexiqai/readaloud/internal/config"
	"github.com/lexiqai/readaloud/internal/observability"
)

// OpenAIClient implements Client using the OpenAI speech endpoint. The
// provider renders audio at the requested speed, so clips come back with
// SpeedApplied set.
type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient creates a new OpenAI TTS client
func NewOpenAIClient(cfg *config.Config) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(cfg.OpenAIAPIKey),
	}
}

// newOpenAIClientWithConfig is used by tests to point the client at a stub server.
func newOpenAIClientWithConfig(clientCfg openai.ClientConfig) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientCfg),
	}
}

// Name returns the provider name
func (c *OpenAIClient) Name() string {
	return config.ProviderOpenAI
}

// Synthesize converts text to an mp3 clip via the OpenAI speech API.
func (c *OpenAIClient) Synthesize(ctx context.Context, req Request) (*audio.Clip, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	resp, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(req.Model),
		Input:          req.Text,
		Voice:          openai.SpeechVoice(req.Voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          req.Speed,
	})
	if err != nil {
		observability.RecordSynthesis(c.Name(), "error", time.Since(start))
		return nil, &SynthesisError{
			Provider:   c.Name(),
			StatusCode: apiStatusCode(err),
			Err:        err,
		}
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		observability.RecordSynthesis(c.Name(), "error", time.Since(start))
		return nil, &SynthesisError{
			Provider: c.Name(),
			Err:      fmt.Errorf("failed to read audio response: %w", err),
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
		SpeedApplied: true,
	}, nil
}

// apiStatusCode extracts the HTTP status from an OpenAI API error, if any.
func apiStatusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
