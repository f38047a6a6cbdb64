package config

import "time"

// Config holds runtime settings for the lncall CLI and the underlying node
// connection.
//
// Fields:
//   - RPCHost: host:port of the node's gRPC endpoint.
//   - TLSCertPath: path to the node's TLS certificate.
//   - MacaroonPath: optional path to the macaroon; empty disables per-call
//     bearer metadata.
//   - SchemaPath: path to the .proto file describing the node's RPC service.
//   - CallTimeout: per-call deadline applied by the CLI.
type Config struct {
	RPCHost      string
	TLSCertPath  string
	MacaroonPath string
	SchemaPath   string
	CallTimeout  time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.RPCHost = "localhost:10009"
	c.TLSCertPath = "tls.cert"
	c.MacaroonPath = ""
	c.SchemaPath = "proto/lightning.proto"
	c.CallTimeout = 30 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
