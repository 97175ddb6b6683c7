// Copyright (c) 2026 Canonical Ltd
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/opengvm/gvm-go/internal/certutil"
	"github.com/opengvm/gvm-go/pkg/gvmerr"
)

const (
	DefaultTLSHostname = "127.0.0.1"
	DefaultTLSPort     = 9390
)

// TLSConfig describes a TLS connection. The server certificate is verified
// against CAFile only when CertFile, CAFile and KeyFile are all set, and even
// then the server host name is not checked. Otherwise the connection is
// encrypted but not verified.
type TLSConfig struct {
	Hostname    string `yaml:"hostname"`
	Port        int    `yaml:"port"`
	CertFile    string `yaml:"certfile"`
	CAFile      string `yaml:"cafile"`
	KeyFile     string `yaml:"keyfile"`
	KeyPassword string `yaml:"password"`
}

func (c TLSConfig) withDefaults() TLSConfig {
	if c.Hostname == "" {
		c.Hostname = DefaultTLSHostname
	}

	if c.Port == 0 {
		c.Port = DefaultTLSPort
	}

	return c
}

// Verified reports whether the server certificate will be verified.
func (c TLSConfig) Verified() bool {
	return c.CertFile != "" && c.CAFile != "" && c.KeyFile != ""
}

// TLS connects to gvmd or an OSP scanner over TLS.
type TLS struct {
	stream
	cfg    TLSConfig
	fs     afero.Fs
	logger zerolog.Logger
	// raw and tls are guarded by stream.mu.
	raw net.Conn
	tls *tls.Conn
}

// NewTLS returns a TLS transport for cfg.
func NewTLS(cfg TLSConfig, opts ...Option) *TLS {
	o := newOptions(opts)
	cfg = cfg.withDefaults()

	return &TLS{
		stream: stream{timeout: EffectiveTimeout(o.timeout)},
		cfg:    cfg,
		fs:     o.fs,
		logger: o.logger.With().Str("transport", "tls").
			Str("host", cfg.Hostname).Int("port", cfg.Port).Logger(),
	}
}

// Address returns host:port of the server.
func (t *TLS) Address() string {
	return net.JoinHostPort(t.cfg.Hostname, strconv.Itoa(t.cfg.Port))
}

func (t *TLS) tlsConfig() (*tls.Config, error) {
	cfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		ServerName: t.cfg.Hostname,
	}

	if !t.cfg.Verified() {
		t.logger.Debug().Msg("Server certificate will not be verified")

		//nolint:gosec // verification needs client certificate, key and CA
		cfg.InsecureSkipVerify = true

		return cfg, nil
	}

	pair, err := certutil.LoadX509KeyPair(t.fs, t.cfg.CertFile, t.cfg.KeyFile, t.cfg.KeyPassword)
	if err != nil {
		return nil, gvmerr.Wrap(gvmerr.Auth, err, "could not load client certificate")
	}

	roots, err := certutil.LoadCAPool(t.fs, t.cfg.CAFile)
	if err != nil {
		return nil, gvmerr.Wrap(gvmerr.Auth, err, "could not load CA certificate")
	}

	cfg.Certificates = []tls.Certificate{pair}
	//nolint:gosec // verification happens in VerifyPeerCertificate
	cfg.InsecureSkipVerify = true
	cfg.VerifyPeerCertificate = func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		return certutil.VerifyChain(rawCerts, roots)
	}

	return cfg, nil
}

func (t *TLS) Connect(ctx context.Context) error {
	if t.current() != nil {
		return nil
	}

	cfg, err := t.tlsConfig()
	if err != nil {
		return err
	}

	d := net.Dialer{Timeout: t.timeout}

	raw, err := d.DialContext(ctx, "tcp", t.Address())
	if err != nil {
		return ioError(err, "could not connect to %s", t.Address())
	}

	hctx := ctx

	if t.timeout > 0 {
		var cancel context.CancelFunc

		hctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	conn := tls.Client(raw, cfg)

	if err := conn.HandshakeContext(hctx); err != nil {
		//nolint:errcheck,gosec // handshake error is more important
		raw.Close()

		if hctx.Err() != nil {
			return ioError(hctx.Err(), "TLS handshake with %s", t.Address())
		}

		return gvmerr.Wrap(gvmerr.Auth, err, "TLS handshake with %s failed", t.Address())
	}

	t.mu.Lock()
	t.raw = raw
	t.tls = conn
	t.conn = conn
	t.mu.Unlock()

	t.logger.Debug().Uint16("version", conn.ConnectionState().Version).Msg("Connected")

	return nil
}

func (t *TLS) Disconnect() error {
	t.mu.Lock()
	conn := t.tls
	t.tls = nil
	t.raw = nil
	t.conn = nil
	t.mu.Unlock()

	if conn == nil {
		return nil
	}

	// Best effort close_notify, the peer may already be gone.
	_ = conn.SetWriteDeadline(time.Now().Add(time.Second))
	_ = conn.CloseWrite()

	if err := conn.Close(); err != nil {
		t.logger.Debug().Err(err).Msg("Close failed")
	}

	return nil
}

func (t *TLS) Send(data []byte) error {
	return t.send(data)
}

func (t *TLS) Recv() ([]byte, error) {
	return t.recv()
}

// FinishSend sends close_notify and half-closes the TCP connection.
func (t *TLS) FinishSend() error {
	t.mu.Lock()
	conn, raw := t.tls, t.raw
	t.mu.Unlock()

	if conn == nil {
		return errNotConnected
	}

	if err := conn.CloseWrite(); err != nil {
		return gvmerr.Wrap(gvmerr.Transport, err, "close_notify")
	}

	if tcp, ok := raw.(*net.TCPConn); ok {
		if err := tcp.CloseWrite(); err != nil {
			return gvmerr.Wrap(gvmerr.Transport, err, "shutdown write")
		}
	}

	return nil
}
