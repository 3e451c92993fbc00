// Package config loads runtime configuration for the tcgexchange CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables prefixed with TCGX_, after loading .env from the
//     working directory (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the marketplace API
//	-d string   local data directory
//	-s int      sync debounce delay (seconds)
//	-t int      request timeout (seconds)
//	-catalog    card catalog JSON file
//
// Environment
//
//	TCGX_SERVER_URL, TCGX_DATA_DIR, TCGX_SYNC_DELAY ("1s"),
//	TCGX_REQUEST_TIMEOUT ("15s"), TCGX_REQUESTS_PER_SECOND, TCGX_CATALOG_PATH,
//	TCGX_LOG_LEVEL, TCGX_LOG_FORMAT
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "1s"
// or integer nanoseconds:
//
//	{
//	  "server_url": "https://api.pokemon-tcg.exchange",
//	  "data_dir": ".tcgexchange",
//	  "sync_delay": "1s",
//	  "request_timeout": "15s",
//	  "requests_per_second": 5,
//	  "catalog_path": "cards.json",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
