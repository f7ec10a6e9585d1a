package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/peterkuimelis/gwentx/internal/config"
	gwentmcp "github.com/peterkuimelis/gwentx/internal/mcp"
)

func main() {
	cfgFile := flag.String("config", "", "config file (default ./gwentx.yaml if present)")
	decks := flag.String("decks", "", "path to decks YAML file")
	source := flag.String("catalog", "", "card catalog source: builtin or cache")
	seed := flag.Int64("seed", 0, "default RNG seed for new games (0 for random)")
	flag.Parse()

	v := config.New()
	if *decks != "" {
		v.Set(config.KeyDecksFile, *decks)
	}
	if *source != "" {
		v.Set(config.KeyCatalogSrc, *source)
	}
	if *seed != 0 {
		v.Set(config.KeySeed, *seed)
	}
	// stdout carries the protocol; logs go to stderr as JSON.
	v.Set(config.KeyLogFormat, "json")

	if err := run(v, *cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(v *viper.Viper, cfgFile string) error {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	logger, err := cfg.Log.Build()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cat, err := cfg.Catalog.OpenCatalog(context.Background(), logger)
	if err != nil {
		return err
	}
	decks, err := cfg.Decks()
	if err != nil {
		return err
	}

	tools := &gwentmcp.Tools{
		Catalog:      cat,
		Decks:        decks,
		Seed:         cfg.Seed,
		AIPlayChance: cfg.AI.PlayChance,
		Logger:       logger,
	}
	defer tools.Close()

	s := server.NewMCPServer("gwentx", "1.0.0")
	tools.RegisterTools(s)

	logger.Info("serving MCP over stdio", zap.Int("cards", cat.Len()), zap.Int("decks", len(decks.Decks)))
	return server.ServeStdio(s)
}
