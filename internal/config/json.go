package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/lnbridge/internal/flagx"
	"github.com/dmitrijs2005/lnbridge/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "30s" or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	RPCHost      string         `json:"rpc_host"`
	TLSCertPath  string         `json:"tls_cert_path"`
	MacaroonPath string         `json:"macaroon_path"`
	SchemaPath   string         `json:"schema_path"`
	CallTimeout  timex.Duration `json:"call_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Only keys present in the file override defaults. Panics on read or
// unmarshal errors; a broken config file should stop the program early.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.RPCHost != "" {
		config.RPCHost = c.RPCHost
	}
	if c.TLSCertPath != "" {
		config.TLSCertPath = c.TLSCertPath
	}
	if c.MacaroonPath != "" {
		config.MacaroonPath = c.MacaroonPath
	}
	if c.SchemaPath != "" {
		config.SchemaPath = c.SchemaPath
	}
	if c.CallTimeout.Duration != 0 {
		config.CallTimeout = time.Duration(c.CallTimeout.Duration)
	}
}
