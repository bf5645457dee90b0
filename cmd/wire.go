package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"
	"github.com/voicepizza/pv/internal/adapters/pizzeria"
	summaryadapter "github.com/voicepizza/pv/internal/adapters/render/summary"
	tomlrepo "github.com/voicepizza/pv/internal/adapters/repo/toml"
	"github.com/voicepizza/pv/internal/application"
	"github.com/voicepizza/pv/internal/ports"
)

type app struct {
	backend         *pizzeria.Client
	sessions        ports.SessionRepository
	aggregator      *application.SummaryAggregator
	summaryRenderer func(application.OrderView, summaryadapter.RenderOptions) (string, error)
	feedURL         string
}

const (
	backendURLKey     = "backend.base_url"
	feedURLKey        = "transcript.feed_url"
	defaultBackendURL = "http://localhost:8005"
)

func wireApp() (*app, error) {
	cfg := viper.New()
	cfg.SetDefault(backendURLKey, defaultBackendURL)

	sessions, err := tomlrepo.NewSessionRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	backend := &pizzeria.Client{
		BaseURL:        envOrDefault("PV_BACKEND_URL", cfg.GetString(backendURLKey)),
		HTTPClient:     http.DefaultClient,
		RequestTimeout: 30 * time.Second,
		Clock:          ports.SystemClock{},
	}

	return &app{
		backend:         backend,
		sessions:        sessions,
		aggregator:      application.NewSummaryAggregator(backend),
		summaryRenderer: summaryadapter.Render,
		feedURL:         envOrDefault("PV_FEED_URL", cfg.GetString(feedURLKey)),
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
