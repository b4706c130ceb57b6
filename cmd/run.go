package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minqi/vocadrill/internal/api"
	"github.com/minqi/vocadrill/internal/app"
	"github.com/minqi/vocadrill/internal/audio"
	"github.com/minqi/vocadrill/internal/config"
	"github.com/minqi/vocadrill/internal/explain"
	"github.com/minqi/vocadrill/internal/logging"
	"github.com/minqi/vocadrill/internal/screens"
	"github.com/minqi/vocadrill/internal/store"
)

// runApp loads configuration, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	client := api.NewClient(cfg.Backend.URL,
		api.WithToken(cfg.Backend.Token),
		api.WithLogger(log),
	)

	// Narration is optional: without a working player the app runs
	// silent and the audio toggle stays disabled.
	var player audio.Player
	if cfg.Audio.Player != "" {
		if p := audio.ParsePlayerCommand(cfg.Audio.Player); p != nil {
			player = p
		}
	} else if p := audio.DetectPlayer(); p != nil {
		player = p
	}
	if player == nil {
		fmt.Fprintln(os.Stderr, "No audio player found; narration will be unavailable.")
	}
	controller := audio.NewController(client, player, log)
	defer controller.Stop()

	var explainer explain.Explainer
	if cfg.OpenAI.APIKey != "" {
		oe, err := explain.NewOpenAIExplainer(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		if err != nil {
			log.WithError(err).Warn("explanation provider unavailable")
		} else {
			explainer = oe
		}
	}

	deps := screens.Deps{
		Config:  cfg,
		Log:     log,
		Store:   st,
		API:     client,
		Audio:   controller,
		Explain: explain.NewService(explainer, client, log),
	}
	return app.Run(deps)
}
