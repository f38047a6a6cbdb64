package lnd

import "errors"

var (
	// Call-time errors. Callers should match these with errors.Is and decide
	// their own retry policy; Call never retries on its own.

	// ErrWalletLocked means the node rejected the call because its wallet is
	// not unlocked yet (surfaced by the node as an unimplemented method).
	ErrWalletLocked = errors.New("wallet locked")

	// ErrNodeUnreachable means the node could not be reached at the
	// transport level (refused, unreachable, timed out).
	ErrNodeUnreachable = errors.New("node unreachable")

	// ErrUncategorized covers every other transport failure. The underlying
	// error is logged before being reduced to this value.
	ErrUncategorized = errors.New("uncategorized rpc error")

	// ErrUnknownMethod means the method name does not exist in the loaded
	// RPC schema. This is a caller error, not a transport condition.
	ErrUnknownMethod = errors.New("unknown rpc method")

	// ErrConnClosed is returned by calls issued after Close.
	ErrConnClosed = errors.New("connection closed")

	// ErrBadConfig wraps construction-time configuration failures (missing
	// certificate, missing macaroon, unparseable schema). These indicate a
	// broken deployment and should abort startup.
	ErrBadConfig = errors.New("invalid configuration")
)
