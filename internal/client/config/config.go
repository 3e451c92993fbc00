package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/tcgexchange/internal/flagx"
)

// Config holds runtime settings for the tcgexchange CLI.
//
// Units: SyncDelay and RequestTimeout are time.Duration values;
// RequestsPerSecond of 0 disables the outbound rate limit.
type Config struct {
	ServerURL         string        `env:"SERVER_URL"`
	DataDir           string        `env:"DATA_DIR"`
	SyncDelay         time.Duration `env:"SYNC_DELAY"`
	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT"`
	RequestsPerSecond float64       `env:"REQUESTS_PER_SECOND"`
	CatalogPath       string        `env:"CATALOG_PATH"`
	LogLevel          string        `env:"LOG_LEVEL"`
	LogFormat         string        `env:"LOG_FORMAT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "https://api.pokemon-tcg.exchange"
	c.DataDir = ".tcgexchange"
	c.SyncDelay = time.Second
	c.RequestTimeout = 15 * time.Second
	c.RequestsPerSecond = 5
	c.CatalogPath = ""
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// configFlags lists every command-line flag owned by this package.
var configFlags = []string{"-c", "-config", "--config", "-a", "-d", "-s", "-t", "-catalog"}

// LoadConfig builds a Config from defaults, the optional JSON file, the
// environment (including a .env file) and finally args. Later sources take
// precedence over earlier ones. The returned slice holds args without the
// flags consumed here.
func LoadConfig(args []string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, nil, err
	}
	if err := parseEnv(cfg, nil); err != nil {
		return nil, nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return cfg, flagx.RemoveArgs(args, configFlags), nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server url %q", c.ServerURL)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data dir must not be empty")
	}
	if c.SyncDelay < 0 {
		return fmt.Errorf("sync delay must not be negative: %s", c.SyncDelay)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive: %s", c.RequestTimeout)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second must not be negative: %v", c.RequestsPerSecond)
	}
	return nil
}
