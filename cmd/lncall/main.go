package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/dmitrijs2005/lnbridge/internal/cli"
	"github.com/dmitrijs2005/lnbridge/internal/config"
	"github.com/dmitrijs2005/lnbridge/internal/flagx"
	"github.com/dmitrijs2005/lnbridge/internal/lnd"
	"github.com/dmitrijs2005/lnbridge/internal/logging"
)

// knownFlags lists every flag owned by the config layer, so the remaining
// positional arguments (method name and JSON params) can be recovered.
var knownFlags = []string{"-a", "-t", "-m", "-s", "-w", "-c", "-config"}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <method> [json-params]\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Example: lncall -a localhost:10009 -t tls.cert getInfo")
}

func main() {
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	args := flagx.StripArgs(os.Args[1:], knownFlags)
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	method := args[0]
	params := "{}"
	if len(args) > 1 {
		params = args[1]
	}

	conn, err := lnd.New(lnd.Config{
		SchemaPath:   cfg.SchemaPath,
		RPCHost:      cfg.RPCHost,
		TLSCertPath:  cfg.TLSCertPath,
		MacaroonPath: cfg.MacaroonPath,
	}, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer conn.Close()

	app := cli.NewApp(conn, os.Stdout, logger, cfg.CallTimeout)

	if err := app.Run(context.Background(), method, params); err != nil {
		if errors.Is(err, lnd.ErrUnknownMethod) {
			fmt.Fprintf(os.Stderr, "unknown method %q; available: %s\n",
				method, strings.Join(conn.Schema().Methods(), ", "))
			os.Exit(2)
		}
		log.Fatalf("%v", err)
	}
}
