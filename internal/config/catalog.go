package config

import (
	"context"
	"errors"
	"os"

	"go.uber.org/zap"

	"github.com/peterkuimelis/gwentx/internal/catalog"
)

// OpenCatalog returns the card catalog selected by Source.
func (c CatalogConfig) OpenCatalog(ctx context.Context, logger *zap.Logger) (*catalog.Catalog, error) {
	if c.Source != SourceCache {
		return catalog.Builtin(), nil
	}
	client := catalog.NewClient(c.URL, logger)
	return catalog.NewCache(c.Cache, client, logger).Load(ctx)
}

// Decks reads the configured deck file, falling back to the starter decks
// when it does not exist.
func (c Config) Decks() (catalog.DeckFile, error) {
	df, err := catalog.ReadDeckFile(c.DecksFile)
	if errors.Is(err, os.ErrNotExist) {
		return catalog.StarterDecks(), nil
	}
	return df, err
}
