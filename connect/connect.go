// Package connect provides the transports a chat session runs over.
package connect

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"time"
)

// Default Twitch chat endpoints.
const (
	DefaultSecureAddr = "irc.chat.twitch.tv:6697"
	DefaultPlainAddr  = "irc.chat.twitch.tv:6667"
)

// Connector opens the stream a client session runs over. Open is called
// once per session and the client closes the returned stream when the
// session ends, so a Connector can be reused across reconnects.
type Connector interface {
	Open(ctx context.Context) (io.ReadWriteCloser, error)
}

// Func adapts a plain function to the Connector interface.
type Func func(ctx context.Context) (io.ReadWriteCloser, error)

// Open calls f.
func (f Func) Open(ctx context.Context) (io.ReadWriteCloser, error) {
	return f(ctx)
}

// TCP dials a plaintext connection.
type TCP struct {
	// Addr is the host:port to dial. Defaults to DefaultPlainAddr.
	Addr string
	// Timeout bounds the dial in addition to ctx. Zero means no bound.
	Timeout time.Duration
}

// Open dials the configured address.
func (t TCP) Open(ctx context.Context) (io.ReadWriteCloser, error) {
	addr := t.Addr
	if addr == "" {
		addr = DefaultPlainAddr
	}
	d := net.Dialer{Timeout: t.Timeout}
	return d.DialContext(ctx, "tcp", addr)
}

// TLS dials an encrypted connection.
type TLS struct {
	// Addr is the host:port to dial. Defaults to DefaultSecureAddr.
	Addr string
	// Config optionally overrides the TLS configuration. When nil the
	// server name is taken from Addr.
	Config *tls.Config
	// Timeout bounds the dial in addition to ctx. Zero means no bound.
	Timeout time.Duration
}

// Open dials the configured address and completes the TLS handshake.
func (t TLS) Open(ctx context.Context) (io.ReadWriteCloser, error) {
	addr := t.Addr
	if addr == "" {
		addr = DefaultSecureAddr
	}
	d := tls.Dialer{
		NetDialer: &net.Dialer{Timeout: t.Timeout},
		Config:    t.Config,
	}
	return d.DialContext(ctx, "tcp", addr)
}

// Default returns the standard secure connector.
func Default() Connector {
	return TLS{}
}
