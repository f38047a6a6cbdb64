// Package cli implements the one-shot lncall application: it dispatches a
// single named RPC against the node and prints the JSON response. Retry
// policy lives here, not in the connection manager: unreachable nodes are
// retried with exponential backoff, and a locked wallet triggers an
// interactive unlock before the original call is re-dispatched.
package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/lnbridge/internal/lnd"
	"github.com/dmitrijs2005/lnbridge/internal/logging"
)

// getPassword and newBackoff are indirections used to facilitate testing.
var getPassword = GetPassword

var newBackoff = func() retry.Backoff {
	return retry.WithMaxRetries(4, retry.NewExponential(500*time.Millisecond))
}

// Caller is the slice of *lnd.Conn the app needs.
type Caller interface {
	Call(ctx context.Context, method string, params json.RawMessage) (json.RawMessage, error)
	Close() error
}

type App struct {
	conn    Caller
	out     io.Writer
	log     logging.Logger
	timeout time.Duration
}

func NewApp(conn Caller, out io.Writer, log logging.Logger, timeout time.Duration) *App {
	return &App{conn: conn, out: out, log: log, timeout: timeout}
}

// Run dispatches method with the given JSON parameters and writes the
// indented response to the app's output.
//
// ErrNodeUnreachable is retried with exponential backoff (bounded).
// ErrWalletLocked prompts for the wallet password, unlocks, and retries the
// original call. Everything else fails immediately.
func (a *App) Run(ctx context.Context, method string, params string) error {
	var resp json.RawMessage

	err := retry.Do(ctx, newBackoff(), func(ctx context.Context) error {
		callCtx := ctx
		if a.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, a.timeout)
			defer cancel()
		}

		res, err := a.conn.Call(callCtx, method, json.RawMessage(params))

		switch {
		case errors.Is(err, lnd.ErrNodeUnreachable):
			a.log.Warn(ctx, "node unreachable, will retry", "method", method)
			return retry.RetryableError(err)
		case errors.Is(err, lnd.ErrWalletLocked):
			if uerr := a.unlockWallet(ctx); uerr != nil {
				return fmt.Errorf("unlock wallet: %w", uerr)
			}
			return retry.RetryableError(err)
		case err != nil:
			return err
		}

		resp = res
		return nil
	})
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, resp, "", "    "); err != nil {
		// not valid JSON? print as-is
		fmt.Fprintln(a.out, string(resp))
		return nil
	}
	fmt.Fprintln(a.out, pretty.String())
	return nil
}

// unlockWallet prompts for the wallet password and calls the node's
// unlockWallet RPC. The password travels base64-encoded, which is how
// protojson represents bytes fields.
func (a *App) unlockWallet(ctx context.Context) error {
	pw, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(pw)

	params, err := json.Marshal(map[string]string{
		"wallet_password": base64.StdEncoding.EncodeToString(pw),
	})
	if err != nil {
		return err
	}

	if _, err := a.conn.Call(ctx, "unlockWallet", params); err != nil {
		return err
	}
	a.log.Info(ctx, "wallet unlocked")
	return nil
}
