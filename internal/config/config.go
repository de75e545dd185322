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
	Extract ExtractConfig `yaml:"extract" mapstructure:"extract"`
	Enrich  EnrichConfig  `yaml:"enrich" mapstructure:"enrich"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DBPath      string `yaml:"db_path" mapstructure:"db_path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ExtractConfig configures the PDF extraction pass.
type ExtractConfig struct {
	PDFDir        string `yaml:"pdf_dir" mapstructure:"pdf_dir"`
	PdfToTextPath string `yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
	MaxPages      int    `yaml:"max_pages" mapstructure:"max_pages"`
	Workers       int    `yaml:"workers" mapstructure:"workers"`
	SynonymsFile  string `yaml:"synonyms_file" mapstructure:"synonyms_file"`
}

// EnrichConfig configures the DrillingEdge enrichment sweep.
type EnrichConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	State       string  `yaml:"state" mapstructure:"state"`
	DelaySecs   float64 `yaml:"delay_secs" mapstructure:"delay_secs"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int     `yaml:"max_retries" mapstructure:"max_retries"`
}

// ServerConfig configures the read API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
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
	v.SetEnvPrefix("WELLBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.db_path", "oil_wells.db")
	v.SetDefault("extract.pdf_dir", "pdfs")
	v.SetDefault("extract.pdftotext_path", "pdftotext")
	v.SetDefault("extract.max_pages", 0)
	v.SetDefault("extract.workers", 1)
	v.SetDefault("enrich.base_url", "https://www.drillingedge.com")
	v.SetDefault("enrich.state", "north-dakota")
	v.SetDefault("enrich.delay_secs", 1.0)
	v.SetDefault("enrich.timeout_secs", 10)
	v.SetDefault("enrich.max_retries", 3)
	v.SetDefault("server.port", 5000)
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
