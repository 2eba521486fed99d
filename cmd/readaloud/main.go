package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lexiqai/readaloud/internal/audio"
	"github.com/lexiqai/readaloud/internal/clipboard"
	"github.com/lexiqai/readaloud/internal/config"
	"github.com/lexiqai/readaloud/internal/hotkey"
	"github.com/lexiqai/readaloud/internal/observability"
	"github.com/lexiqai/readaloud/internal/player"
	"github.com/lexiqai/readaloud/internal/textproc"
	"github.com/lexiqai/readaloud/internal/tts"
)

func main() {
	verbose := flag.Bool("verbose", false, "debug logging with pretty output")
	textFlag := flag.String("text", "", "text to speak (one-shot mode)")
	fileFlag := flag.String("file", "", "file to read aloud (one-shot mode)")
	speedFlag := flag.Float64("speed", 0, "playback speed multiplier, overrides TTS_SPEED when > 0")
	voiceFlag := flag.String("voice", "", "voice name or voice ID, overrides the configured voice")
	once := flag.Bool("once", false, "read stdin once and exit instead of listening for hotkeys")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Use fmt for fatal errors before logger is initialized
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if *speedFlag > 0 {
		cfg.Speed = *speedFlag
	}
	if *verbose {
		cfg.LogLevel = "debug"
		cfg.LogPretty = true
	}

	// Initialize structured logger
	observability.InitLogger(cfg.LogLevel, cfg.LogPretty)
	logger := observability.GetLogger()

	logger.Info().
		Str("provider", cfg.Provider).
		Float64("speed", cfg.Speed).
		Str("log_level", cfg.LogLevel).
		Bool("metrics_enabled", cfg.MetricsEnabled).
		Msg("readaloud starting")

	// Synthesis client and the voice/model it speaks with
	var client tts.Client
	voice, model := cfg.Voice, cfg.SpeechModel()
	switch cfg.Provider {
	case config.ProviderOpenAI:
		client = tts.NewOpenAIClient(cfg)
	case config.ProviderElevenLabs:
		client = tts.NewElevenLabsClient(cfg)
		voice, model = cfg.ElevenLabsVoiceID, cfg.ElevenLabsModelID
	}
	if *voiceFlag != "" {
		voice = *voiceFlag
	}

	// Text processing
	var rules []textproc.ReplacementRule
	if cfg.ReplacementsFile != "" {
		rules, err = textproc.LoadReplacementRules(cfg.ReplacementsFile)
		if err != nil {
			// Bad rules degrade cleaning, they don't stop speech
			logger.Warn().Err(err).Str("path", cfg.ReplacementsFile).Msg("ignoring replacement rules")
			rules = nil
		}
	}
	segmenter, err := textproc.NewSegmenter()
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize sentence segmenter")
		os.Exit(1)
	}

	cache, err := audio.NewCache(cfg.CacheSize)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize clip cache")
		os.Exit(1)
	}
	defer cache.Purge()

	backend := player.NewBeepBackend()
	defer backend.Close()

	oneShot, isOneShot, err := oneShotText(*textFlag, *fileFlag, *once)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read input")
		os.Exit(1)
	}

	opts := player.Options{
		Client:    client,
		Backend:   backend,
		Store:     audio.NewStore(),
		Cache:     cache,
		Cleaner:   textproc.NewCleaner(rules),
		Segmenter: segmenter,
		Source:    clipboard.Source(),
		Voice:     voice,
		Model:     model,
		Speed:     cfg.Speed,
	}
	ctrl := player.NewController(opts)

	if isOneShot {
		runOnce(ctrl, cache, backend, oneShot)
		return
	}

	runInteractive(cfg, ctrl, cache, backend)
}

// runOnce speaks the given text and exits. Interrupt stops playback and
// exits 0; synthesis or playback failure exits 1.
func runOnce(ctrl *player.Controller, cache *audio.Cache, backend *player.BeepBackend, text string) {
	logger := observability.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := ctrl.RunOnce(ctx, text)
	cache.Purge()
	backend.Close()

	if err != nil {
		logger.Error().Err(err).Msg("read-aloud failed")
		os.Exit(1)
	}
}

// runInteractive listens for the toggle hotkey until a quit key or signal.
func runInteractive(cfg *config.Config, ctrl *player.Controller, cache *audio.Cache, backend *player.BeepBackend) {
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Controller loop
	ctrlDone := make(chan struct{})
	go func() {
		ctrl.Run(ctx)
		close(ctrlDone)
	}()

	// Keyboard listener
	listener, err := hotkey.NewListener(cfg.Hotkey, ctrl)
	if err != nil {
		logger.Error().Err(err).Msg("invalid hotkey configuration")
		os.Exit(1)
	}
	listenerDone := make(chan error, 1)
	go func() {
		listenerDone <- listener.Run(ctx)
	}()

	// Metrics listener (optional)
	var metricsServer *http.Server
	if cfg.MetricsEnabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/health", observability.HealthCheckHandler())
		metricsServer = &http.Server{
			Addr:         cfg.MetricsAddr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		}
		go func() {
			logger.Info().Str("addr", cfg.MetricsAddr).Msg("Prometheus metrics enabled")
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error().Err(err).Msg("metrics listener failed")
			}
		}()
	}

	logger.Info().Str("hotkey", cfg.Hotkey).Msg("press the hotkey to read the clipboard aloud")

	// Wait for interrupt signal or listener exit
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case <-quit:
		logger.Info().Msg("signal received, shutting down")
	case err := <-listenerDone:
		if err != nil {
			logger.Error().Err(err).Msg("keyboard listener failed")
			exitCode = 1
		}
	}

	// Graceful shutdown: stop any in-flight session, then clean up
	cancel()
	select {
	case <-ctrlDone:
	case <-time.After(5 * time.Second):
		logger.Warn().Msg("controller did not stop in time")
	}

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("metrics listener forced to shutdown")
		}
	}

	cache.Purge()
	backend.Close()

	logger.Info().Msg("exited gracefully")
	os.Exit(exitCode)
}

// oneShotText resolves the one-shot input: --text, then --file, then stdin
// when piped or --once is set. Empty result with ok=false selects
// interactive mode.
func oneShotText(textFlag, fileFlag string, once bool) (string, bool, error) {
	if textFlag != "" {
		return textFlag, true, nil
	}

	if fileFlag != "" {
		data, err := os.ReadFile(fileFlag)
		if err != nil {
			return "", true, fmt.Errorf("failed to read %s: %w", fileFlag, err)
		}
		return string(data), true, nil
	}

	if once || stdinPiped() {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", true, fmt.Errorf("failed to read stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return "", true, tts.ErrEmptyText
		}
		return string(data), true, nil
	}

	return "", false, nil
}

// stdinPiped reports whether stdin is a pipe or file rather than a terminal.
func stdinPiped() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice == 0
}
