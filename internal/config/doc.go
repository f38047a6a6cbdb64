// Package config loads runtime configuration for the lncall CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   host:port of the node's gRPC endpoint
//	-t string   path to the TLS certificate
//	-m string   path to the macaroon file
//	-s string   path to the RPC schema (.proto)
//	-w int      per-call timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "30s" or integer nanoseconds:
//
//	{
//	  "rpc_host": "localhost:10009",
//	  "tls_cert_path": "/home/user/.lnd/tls.cert",
//	  "macaroon_path": "/home/user/.lnd/admin.macaroon",
//	  "schema_path": "proto/lightning.proto",
//	  "call_timeout": "30s"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
