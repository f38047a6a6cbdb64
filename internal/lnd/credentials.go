package lnd

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"fmt"
	"os"

	"google.golang.org/grpc/credentials"
)

// MacaroonHeaderName is the metadata key the node expects the hex-encoded
// macaroon under.
const MacaroonHeaderName = "macaroon"

// MacaroonCredential attaches the node's macaroon to every outgoing call.
// The file is re-read on each call so that an externally rotated macaroon is
// picked up without reconnecting.
type MacaroonCredential struct {
	path string
}

func NewMacaroonCredential(path string) MacaroonCredential {
	return MacaroonCredential{path: path}
}

func (m MacaroonCredential) GetRequestMetadata(ctx context.Context, uri ...string) (map[string]string, error) {
	b, err := os.ReadFile(m.path)
	if err != nil {
		return nil, fmt.Errorf("read macaroon: %w", err)
	}
	return map[string]string{MacaroonHeaderName: hex.EncodeToString(b)}, nil
}

func (m MacaroonCredential) RequireTransportSecurity() bool {
	return true
}

// transportCredentials builds TLS credentials trusting exactly the node's
// certificate. certPEM is the PEM blob retained at construction time.
func transportCredentials(certPEM []byte) (credentials.TransportCredentials, error) {
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(certPEM) {
		return nil, fmt.Errorf("certificate is not valid PEM")
	}
	return credentials.NewTLS(&tls.Config{RootCAs: pool}), nil
}
