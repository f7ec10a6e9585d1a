// Package config loads gwentx settings from defaults, an optional
// gwentx.yaml and GWENTX_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/peterkuimelis/gwentx/internal/catalog"
	"github.com/peterkuimelis/gwentx/internal/game"
)

const (
	EnvPrefix = "GWENTX"
	FileName  = "gwentx"
)

// Keys, usable with viper.Set and for binding flags.
const (
	KeyDecksFile    = "decks_file"
	KeyCatalogSrc   = "catalog.source"
	KeyCatalogCache = "catalog.cache"
	KeyCatalogURL   = "catalog.url"
	KeySeed         = "seed"
	KeyAIPlayChance = "ai.play_chance"
	KeyPort         = "port"
	KeyWebPort      = "web_port"
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"
)

// Catalog sources.
const (
	SourceBuiltin = "builtin" // compiled-in starter set
	SourceCache   = "cache"   // on-disk cache, fetched from the API when missing
)

type Config struct {
	DecksFile string        `mapstructure:"decks_file"`
	Catalog   CatalogConfig `mapstructure:"catalog"`
	Seed      int64         `mapstructure:"seed"`
	AI        AIConfig      `mapstructure:"ai"`
	Port      string        `mapstructure:"port"`
	WebPort   int           `mapstructure:"web_port"`
	Log       LogConfig     `mapstructure:"log"`
}

type CatalogConfig struct {
	Source string `mapstructure:"source"`
	Cache  string `mapstructure:"cache"`
	URL    string `mapstructure:"url"`
}

type AIConfig struct {
	PlayChance float64 `mapstructure:"play_chance"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDecksFile, "decks.yaml")
	v.SetDefault(KeyCatalogSrc, SourceBuiltin)
	v.SetDefault(KeyCatalogCache, catalog.DefaultCacheFile)
	v.SetDefault(KeyCatalogURL, catalog.DefaultURL)
	v.SetDefault(KeySeed, 0)
	v.SetDefault(KeyAIPlayChance, game.DefaultAIPlayPct)
	v.SetDefault(KeyPort, "9000")
	v.SetDefault(KeyWebPort, 8080)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file and decodes the result. An empty path searches
// the working directory for gwentx.yaml and tolerates its absence; an
// explicit path must exist.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	return Decode(v)
}

// Decode unmarshals and validates the current settings of v.
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.AI.PlayChance < 0 || c.AI.PlayChance > 1 {
		return fmt.Errorf("%s must be within [0,1], got %v", KeyAIPlayChance, c.AI.PlayChance)
	}
	if p, err := strconv.Atoi(c.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid %s %q", KeyPort, c.Port)
	}
	if c.WebPort <= 0 || c.WebPort > 65535 {
		return fmt.Errorf("invalid %s %d", KeyWebPort, c.WebPort)
	}
	switch c.Catalog.Source {
	case SourceBuiltin, SourceCache:
	default:
		return fmt.Errorf("unknown %s %q", KeyCatalogSrc, c.Catalog.Source)
	}
	return c.Log.validate()
}
