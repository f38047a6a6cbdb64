package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/lnbridge/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   host:port of the node's gRPC endpoint
//	-t string   path to the TLS certificate
//	-m string   path to the macaroon (empty disables macaroon metadata)
//	-s string   path to the RPC schema (.proto)
//	-w int      per-call timeout, seconds
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with the positional call arguments.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-m", "-s", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.RPCHost, "a", config.RPCHost, "host:port of the node RPC endpoint")
	fs.StringVar(&config.TLSCertPath, "t", config.TLSCertPath, "path to TLS certificate")
	fs.StringVar(&config.MacaroonPath, "m", config.MacaroonPath, "path to macaroon file")
	fs.StringVar(&config.SchemaPath, "s", config.SchemaPath, "path to RPC schema (.proto)")

	callTimeout := fs.Int("w", int(config.CallTimeout.Seconds()), "call timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.CallTimeout = time.Duration(*callTimeout) * time.Second
}
