package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"stagehand/cmd/stagehand/wizard"
	"stagehand/internal/event"
	"stagehand/internal/eventsapi"
	"stagehand/internal/extraction"
	"stagehand/internal/logging"
)

// runWizard launches the interactive wizard, optionally hydrated from an
// existing event.
func runWizard(eventID string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var api *eventsapi.Client
	if cfg.Backend.BaseURL != "" {
		api = eventsapi.NewClient(eventsapi.Config{
			BaseURL: cfg.Backend.BaseURL,
			Timeout: cfg.BackendTimeout(),
		})
	}

	store := event.NewStore()
	resumed := false
	if eventID != "" {
		if api == nil {
			return fmt.Errorf("resuming requires a backend (set backend.base_url or STAGEHAND_BACKEND_URL)")
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.BackendTimeout())
		rec, err := api.GetEvent(ctx, eventID)
		cancel()
		if err != nil {
			return fmt.Errorf("resuming event %s: %w", eventID, err)
		}
		store = event.NewStoreFrom(rec)
		resumed = true
		logging.Wizard("resumed event %s", eventID)
	}

	extractor, err := buildExtractor()
	if err != nil {
		return err
	}

	m := wizard.New(wizard.Options{
		Store:          store,
		Extractor:      extractor,
		API:            api,
		HistoryWindow:  cfg.Extraction.HistoryWindow,
		ExtractTimeout: cfg.ExtractionTimeout(),
		Resumed:        resumed,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("wizard crashed: %w", err)
	}
	return nil
}

func buildExtractor() (extraction.Extractor, error) {
	switch cfg.ResolveProvider() {
	case "backend":
		return extraction.NewBackendExtractor(extraction.BackendConfig{
			BaseURL: cfg.Backend.BaseURL,
			Timeout: cfg.ExtractionTimeout(),
		}), nil
	case "gemini":
		return extraction.NewGeminiExtractor(context.Background(),
			cfg.Extraction.GeminiAPIKey, cfg.Extraction.GeminiModel)
	}
	return nil, fmt.Errorf("unknown extraction provider %q", cfg.Extraction.Provider)
}
