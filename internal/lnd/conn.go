// Package lnd wraps the gRPC interface of a Lightning node with lazy
// connection management, per-call macaroon authentication and a small stable
// error taxonomy. It implements no retry policy of its own; callers decide
// what to do with ErrWalletLocked and ErrNodeUnreachable.
package lnd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/dmitrijs2005/lnbridge/internal/logging"
)

// Config holds the construction-time settings of a Conn. All fields are
// immutable after New.
//
// Fields:
//   - SchemaPath: path to the .proto file describing the node's RPC service.
//   - RPCHost: host:port of the node's gRPC endpoint.
//   - TLSCertPath: path to the node's TLS certificate.
//   - MacaroonPath: optional; when set, the macaroon is re-read from this
//     path and attached to every call as hex-encoded metadata.
type Config struct {
	SchemaPath   string
	RPCHost      string
	TLSCertPath  string
	MacaroonPath string
}

// cipherSuitesOnce guards the process-wide TLS cipher preference. The node's
// certificate uses an ECDSA key, which the gRPC C core rejects unless this
// class is selected.
var cipherSuitesOnce sync.Once

// rpcConn is the slice of *grpc.ClientConn the manager needs. Tests provide
// fakes.
type rpcConn interface {
	Invoke(ctx context.Context, method string, args, reply any, opts ...grpc.CallOption) error
	Close() error
}

// dialNode is a test seam for constructing the underlying client conn.
var dialNode = func(host string, tc credentials.TransportCredentials, perRPC credentials.PerRPCCredentials) (rpcConn, error) {
	opts := []grpc.DialOption{grpc.WithTransportCredentials(tc)}
	if perRPC != nil {
		opts = append(opts, grpc.WithPerRPCCredentials(perRPC))
	}
	return grpc.NewClient(host, opts...)
}

// handle is a refcounted wrapper around the underlying client conn. A failed
// call retires the handle; the conn is closed once the last in-flight call
// releases it, so concurrent calls on a stale handle run to their own
// completion.
type handle struct {
	conn rpcConn

	mu      sync.Mutex
	refs    int
	retired bool
}

func (h *handle) acquire() {
	h.mu.Lock()
	h.refs++
	h.mu.Unlock()
}

func (h *handle) release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.refs--
	if h.retired && h.refs == 0 {
		_ = h.conn.Close()
	}
}

func (h *handle) retire() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.retired {
		return
	}
	h.retired = true
	if h.refs == 0 {
		_ = h.conn.Close()
	}
}

// Conn manages the connection to a single Lightning node. It owns the
// credential material and the one live client handle; the handle is created
// on first use and discarded on any call failure.
type Conn struct {
	cfg     Config
	certPEM []byte
	schema  *Schema
	log     logging.Logger

	mu     sync.Mutex
	active *handle
	closed bool
}

// New validates the configuration and prepares a Conn. No connection is
// opened and no credentials are built yet; both happen on the first Call.
//
// A missing certificate, a configured-but-missing macaroon and an
// unparseable schema all return errors wrapping ErrBadConfig. They indicate
// a broken deployment; callers should abort startup rather than retry.
func New(cfg Config, log logging.Logger) (*Conn, error) {
	cipherSuitesOnce.Do(func() {
		_ = os.Setenv("GRPC_SSL_CIPHER_SUITES", "HIGH+ECDSA")
	})

	certPEM, err := os.ReadFile(cfg.TLSCertPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read tls certificate %s: %v", ErrBadConfig, cfg.TLSCertPath, err)
	}
	if _, err := transportCredentials(certPEM); err != nil {
		return nil, fmt.Errorf("%w: tls certificate %s: %v", ErrBadConfig, cfg.TLSCertPath, err)
	}

	if cfg.MacaroonPath != "" {
		if _, err := os.Stat(cfg.MacaroonPath); err != nil {
			return nil, fmt.Errorf("%w: macaroon file %s: %v", ErrBadConfig, cfg.MacaroonPath, err)
		}
	}

	schema, err := LoadSchema(cfg.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}

	return &Conn{cfg: cfg, certPEM: certPEM, schema: schema, log: log}, nil
}

// activeHandle returns the cached handle, creating one when absent.
func (c *Conn) activeHandle(ctx context.Context) (*handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrConnClosed
	}
	if c.active != nil {
		return c.active, nil
	}

	// Credentials are rebuilt on every recreation even though the cert bytes
	// and macaroon path never change. Macaroon rotation is already observed
	// per call, so this keeps a single creation path at no correctness cost.
	tc, err := transportCredentials(c.certPEM)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	var perRPC credentials.PerRPCCredentials
	if c.cfg.MacaroonPath != "" {
		perRPC = NewMacaroonCredential(c.cfg.MacaroonPath)
	}

	conn, err := dialNode(c.cfg.RPCHost, tc, perRPC)
	if err != nil {
		return nil, fmt.Errorf("create client for %s: %w", c.cfg.RPCHost, err)
	}

	c.active = &handle{conn: conn}
	handleCreations.Inc()
	c.log.Debug(ctx, "created client handle", "host", c.cfg.RPCHost)

	return c.active, nil
}

// invalidate discards h as the cached handle. The next call constructs a
// fresh one; calls still in flight on h keep running until they release it.
func (c *Conn) invalidate(h *handle) {
	c.mu.Lock()
	if c.active == h {
		c.active = nil
	}
	c.mu.Unlock()
	h.retire()
}

// Call invokes the named RPC with the given JSON parameters and returns the
// node's response as JSON. The method name is matched against the schema
// case-insensitively ("getInfo" and "GetInfo" are the same method).
//
// On any transport failure the cached handle is discarded before the error
// is surfaced, then the failure is reduced to ErrWalletLocked,
// ErrNodeUnreachable or ErrUncategorized. Call never retries.
func (c *Conn) Call(ctx context.Context, method string, params json.RawMessage) (json.RawMessage, error) {
	m, err := c.schema.Lookup(method)
	if err != nil {
		return nil, err
	}

	h, err := c.activeHandle(ctx)
	if err != nil {
		return nil, err
	}
	h.acquire()
	defer h.release()

	req := dynamicpb.NewMessage(m.input)
	if len(params) > 0 {
		if err := protojson.Unmarshal(params, req); err != nil {
			return nil, fmt.Errorf("encode %s request: %w", method, err)
		}
	}
	reply := dynamicpb.NewMessage(m.output)

	log := c.log.With("method", method, "call_id", uuid.NewString())

	if err := h.conn.Invoke(ctx, m.fullPath, req, reply); err != nil {
		// The stale handle must be gone before the error escapes so the
		// next call gets a fresh one.
		c.invalidate(h)
		return nil, c.classify(ctx, log, err)
	}
	callsTotal.WithLabelValues(outcomeOK).Inc()

	out, err := protojson.MarshalOptions{UseProtoNames: true}.Marshal(reply)
	if err != nil {
		return nil, fmt.Errorf("decode %s response: %w", method, err)
	}
	return out, nil
}

// classify maps a transport error to the taxonomy. An unimplemented method
// means the node's wallet is still locked and only the unlocker service is
// up. Everything outside the two known conditions is logged in full, since
// the caller only sees the generic kind.
func (c *Conn) classify(ctx context.Context, log logging.Logger, err error) error {
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unimplemented:
		callsTotal.WithLabelValues(outcomeWalletLocked).Inc()
		return ErrWalletLocked
	case codes.Unavailable, codes.DeadlineExceeded:
		callsTotal.WithLabelValues(outcomeUnreachable).Inc()
		return ErrNodeUnreachable
	default:
		callsTotal.WithLabelValues(outcomeUncategorized).Inc()
		log.Error(ctx, "uncategorized rpc failure", "code", st.Code().String(), "err", err)
		return ErrUncategorized
	}
}

// Schema exposes the loaded dispatch table, mainly so the calling layer can
// report which methods are available.
func (c *Conn) Schema() *Schema {
	return c.schema
}

// Close releases the active handle. Calls already in flight finish on their
// own; subsequent calls fail with ErrConnClosed.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	h := c.active
	c.active = nil
	c.mu.Unlock()

	if h != nil {
		h.retire()
	}
	return nil
}
