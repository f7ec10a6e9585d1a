// Package cmd holds the gwentx command tree.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/peterkuimelis/gwentx/internal/catalog"
	"github.com/peterkuimelis/gwentx/internal/config"
	gnet "github.com/peterkuimelis/gwentx/internal/net"
)

// app carries what every subcommand needs once flags and config are read.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
}

// NewRootCmd creates the gwentx root command. It is called once in main.
func NewRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:           "gwentx",
		Short:         "Gwent-style card battles against an AI",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			logger, err := cfg.Log.Build()
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			a.cfg, a.logger = cfg, logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./gwentx.yaml if present)")
	pf.String("decks", "decks.yaml", "path to decks YAML file")
	pf.String("catalog", config.SourceBuiltin, "card catalog source: builtin or cache")
	pf.String("cache", catalog.DefaultCacheFile, "card cache file")
	pf.Int64("seed", 0, "RNG seed (0 for random)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")
	mustBind(a.v, pf, map[string]string{
		config.KeyDecksFile:    "decks",
		config.KeyCatalogSrc:   "catalog",
		config.KeyCatalogCache: "cache",
		config.KeySeed:         "seed",
		config.KeyLogLevel:     "log-level",
		config.KeyLogFormat:    "log-format",
	})

	rootCmd.AddCommand(
		newPlayCmd(a),
		newServeCmd(a),
		newJoinCmd(a),
		newCardsCmd(a),
		newFetchCmd(a),
	)
	return rootCmd
}

// mustBind binds config keys to flags. Binding only fails for a nil flag,
// which is a programming error.
func mustBind(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func (a *app) catalog(ctx context.Context) (*catalog.Catalog, error) {
	return a.cfg.Catalog.OpenCatalog(ctx, a.logger)
}

// gameServer builds a server from config; aiDeck 0 means automatic.
func (a *app) gameServer(ctx context.Context, aiDeck int) (*gnet.Server, error) {
	cat, err := a.catalog(ctx)
	if err != nil {
		return nil, err
	}
	decks, err := a.cfg.Decks()
	if err != nil {
		return nil, err
	}
	return &gnet.Server{
		Catalog:      cat,
		Decks:        decks,
		Port:         a.cfg.Port,
		AIDeck:       aiDeck,
		Seed:         a.cfg.Seed,
		AIPlayChance: a.cfg.AI.PlayChance,
		Logger:       a.logger,
	}, nil
}
