package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/tcgexchange/internal/flagx"
	"github.com/dmitrijs2005/tcgexchange/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds.
type JsonConfig struct {
	ServerURL         string         `json:"server_url"`
	DataDir           string         `json:"data_dir"`
	SyncDelay         timex.Duration `json:"sync_delay"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
	RequestsPerSecond *float64       `json:"requests_per_second"`
	CatalogPath       string         `json:"catalog_path"`
	LogLevel          string         `json:"log_level"`
	LogFormat         string         `json:"log_format"`
}

// parseJson overlays cfg with the JSON file named by -c or -config in args.
// Keys missing from the file keep their previous values.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.SyncDelay.Duration != 0 {
		cfg.SyncDelay = jc.SyncDelay.Duration
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *jc.RequestsPerSecond
	}
	if jc.CatalogPath != "" {
		cfg.CatalogPath = jc.CatalogPath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
	return nil
}
