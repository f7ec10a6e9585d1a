package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/peterkuimelis/gwentx/internal/game"
)

// DefaultCacheFile is the cache file name used when none is configured.
const DefaultCacheFile = "gwent_cards.json"

// Cache keeps a fetched catalog on disk so later runs skip the network.
type Cache struct {
	Path    string
	Fetcher Fetcher
	Logger  *zap.Logger
}

// NewCache returns a cache at path backed by fetcher.
func NewCache(path string, fetcher Fetcher, logger *zap.Logger) *Cache {
	if path == "" {
		path = DefaultCacheFile
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{Path: path, Fetcher: fetcher, Logger: logger}
}

// Read loads the cached cards. A missing file returns an error matching
// os.ErrNotExist.
func (c *Cache) Read() ([]game.Card, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, err
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse card cache %s: %w", c.Path, err)
	}
	cards := make([]game.Card, len(records))
	for i, r := range records {
		cards[i] = r.Card()
	}
	return cards, nil
}

// Write replaces the cache contents.
func (c *Cache) Write(cards []game.Card) error {
	data, err := json.MarshalIndent(Records(cards), "", "  ")
	if err != nil {
		return fmt.Errorf("encode card cache: %w", err)
	}
	if dir := filepath.Dir(c.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cache dir: %w", err)
		}
	}
	tmp := c.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write card cache: %w", err)
	}
	return os.Rename(tmp, c.Path)
}

// Load returns the cached catalog, fetching and saving it when the cache is
// missing or empty.
func (c *Cache) Load(ctx context.Context) (*Catalog, error) {
	cards, err := c.Read()
	switch {
	case err == nil && len(cards) > 0:
		c.Logger.Info("loaded card cache", zap.String("path", c.Path), zap.Int("cards", len(cards)))
		return New(cards), nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		c.Logger.Warn("ignoring unreadable card cache", zap.String("path", c.Path), zap.Error(err))
	}
	return c.Refresh(ctx)
}

// Refresh fetches the remote catalog and rewrites the cache.
func (c *Cache) Refresh(ctx context.Context) (*Catalog, error) {
	if c.Fetcher == nil {
		return nil, fmt.Errorf("refresh card cache: no fetcher configured")
	}
	cards, err := c.Fetcher.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh card cache: %w", err)
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("refresh card cache: %w", ErrEmptyCatalog)
	}
	if err := c.Write(cards); err != nil {
		// A read-only cache location still leaves a usable catalog.
		c.Logger.Warn("could not save card cache", zap.String("path", c.Path), zap.Error(err))
	}
	return New(cards), nil
}
