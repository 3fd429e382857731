package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Enrich  EnrichConfig  `yaml:"enrich" mapstructure:"enrich"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the item store backend.
type StoreConfig struct {
	// Driver selects the store implementation: file, sqlite or postgres.
	Driver string `yaml:"driver" mapstructure:"driver"`
	// Path is the db.json location for the file driver, or the database
	// file for the sqlite driver.
	Path string `yaml:"path" mapstructure:"path"`
	// DatabaseURL is the connection string for the postgres driver.
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// CatalogConfig configures the external reference catalog sources.
// Source identifiers and endpoint paths are configuration, not algorithm:
// each entry is a full first-page URL and the client follows pagination
// cursors from there.
type CatalogConfig struct {
	// ItemSources are fetched and concatenated in order; on duplicate
	// normalized names the earlier source wins, so the preferred catalog
	// generation must come first.
	ItemSources   []string `yaml:"item_sources" mapstructure:"item_sources"`
	WeaponsSource string   `yaml:"weapons_source" mapstructure:"weapons_source"`
	ArmorSource   string   `yaml:"armor_source" mapstructure:"armor_source"`
	UserAgent     string   `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs   int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries    int      `yaml:"max_retries" mapstructure:"max_retries"`
	RateLimit     float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// EnrichConfig configures the enrichment pipeline.
type EnrichConfig struct {
	// AliasesPath points at an optional YAML file of extra alias entries
	// merged over the built-in table.
	AliasesPath string `yaml:"aliases_path" mapstructure:"aliases_path"`
}

// ServerConfig configures the item API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SHOPKEEP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "file")
	v.SetDefault("store.path", "db.json")
	v.SetDefault("catalog.item_sources", []string{
		"https://api.open5e.com/v2/items/?document__slug=srd-2024&limit=500",
		"https://api.open5e.com/v2/items/?document__slug=wotc-srd&limit=500",
	})
	v.SetDefault("catalog.weapons_source", "https://api.open5e.com/v1/weapons/?document__slug=wotc-srd&limit=200")
	v.SetDefault("catalog.armor_source", "https://api.open5e.com/v2/armor/?limit=200")
	v.SetDefault("catalog.user_agent", "shopkeep/1.0")
	v.SetDefault("catalog.timeout_secs", 30)
	v.SetDefault("catalog.max_retries", 3)
	v.SetDefault("catalog.rate_limit", 4.0)
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
