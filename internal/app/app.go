// Package app wires together configuration, the catalog client, and other
// dependencies into a single Deps struct that commands receive at runtime.
package app

import (
	"github.com/derickschaefer/reel/internal/catalog"
	"github.com/derickschaefer/reel/internal/config"
	"github.com/derickschaefer/reel/internal/tmdb"
)

// Deps holds all runtime dependencies injected into command Run functions.
type Deps struct {
	Config *config.Config
	Client *tmdb.Client
}

// New builds a Deps from resolved config.
func New(cfg *config.Config) *Deps {
	client := tmdb.NewClient(tmdb.Options{
		APIKey:      cfg.APIKey,
		AccessToken: cfg.AccessToken,
		BaseURL:     cfg.BaseURL,
		Timeout:     cfg.Timeout,
		Rate:        cfg.Rate,
		Debug:       cfg.Debug,
	})
	return &Deps{
		Config: cfg,
		Client: client,
	}
}

// Builder returns the request builder for the configured language.
func (d *Deps) Builder() catalog.RequestBuilder {
	return catalog.RequestBuilder{Language: d.Config.Language}
}
