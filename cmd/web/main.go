package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/peterkuimelis/gwentx/internal/config"
	"github.com/peterkuimelis/gwentx/internal/web"
)

func main() {
	cfgFile := flag.String("config", "", "config file (default ./gwentx.yaml if present)")
	port := flag.Int("port", 0, "HTTP port to listen on (default from config, 8080)")
	artDir := flag.String("art", "./card_art", "path to card art directory")
	decksFile := flag.String("decks", "", "path to decks YAML file")
	flag.Parse()

	v := config.New()
	if *port != 0 {
		v.Set(config.KeyWebPort, *port)
	}
	if *decksFile != "" {
		v.Set(config.KeyDecksFile, *decksFile)
	}

	if err := run(v, *cfgFile, *artDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(v *viper.Viper, cfgFile, artDir string) error {
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

	srv := web.NewServer(web.Options{
		Catalog: cat,
		Decks:   decks,
		ArtDir:  artDir,
		Logger:  logger,
	})

	addr := fmt.Sprintf(":%d", cfg.WebPort)
	logger.Info("gwentx web API listening",
		zap.String("url", fmt.Sprintf("http://localhost:%d", cfg.WebPort)),
		zap.Int("cards", cat.Len()))
	return srv.ListenAndServe(addr)
}
