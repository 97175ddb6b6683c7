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

// Package transport moves request and response bytes between a client and a
// GMP or OSP server. Three transports are provided: a Unix domain socket, a
// TLS socket and an SSH exec channel. All of them are blocking and are owned
// by a single caller.
package transport

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/opengvm/gvm-go/pkg/gvmerr"
)

const (
	// DefaultTimeout is used when a timeout of zero is configured.
	DefaultTimeout = 60 * time.Second
	// NoTimeout disables all timeouts.
	NoTimeout time.Duration = -1
	// RecvBufferSize is the maximum number of bytes returned by one Recv.
	RecvBufferSize = 16 * 1024
)

// Transport is a bidirectional byte stream to a server.
type Transport interface {
	// Connect establishes the connection. It is a no-op when already connected.
	Connect(ctx context.Context) error
	// Disconnect releases the connection. It is safe to call more than once,
	// and from another goroutine to abort a blocked Send or Recv.
	Disconnect() error
	// Send writes all of data.
	Send(data []byte) error
	// Recv returns the next chunk of at most RecvBufferSize bytes, or io.EOF
	// once the server closed the stream.
	Recv() ([]byte, error)
	// FinishSend signals the server that no more data will be sent.
	FinishSend() error
}

// Option configures a transport.
type Option func(*options)

type options struct {
	logger   zerolog.Logger
	fs       afero.Fs
	timeout  time.Duration
	decision HostKeyDecision
}

func newOptions(opts []Option) options {
	o := options{
		logger: zerolog.Nop(),
		fs:     afero.NewOsFs(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithLogger sets the logger used by the transport.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFs sets the filesystem used to read certificates and known_hosts.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithTimeout sets the dial and I/O timeout. Zero selects DefaultTimeout and
// a negative value (NoTimeout) waits indefinitely.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithHostKeyDecision sets how the SSH transport treats unknown host keys.
// It takes precedence over SSHConfig.AutoAcceptHost.
func WithHostKeyDecision(d HostKeyDecision) Option {
	return func(o *options) {
		o.decision = d
	}
}

// EffectiveTimeout maps a configured timeout to the one that is applied.
// The result is zero when there is no timeout.
func EffectiveTimeout(d time.Duration) time.Duration {
	switch {
	case d == 0:
		return DefaultTimeout
	case d < 0:
		return 0
	default:
		return d
	}
}

// deadline returns the absolute deadline for an operation starting now, or
// the zero time when there is no timeout.
func deadline(timeout time.Duration) time.Time {
	if timeout <= 0 {
		return time.Time{}
	}

	return time.Now().Add(timeout)
}

var errNotConnected = gvmerr.New(gvmerr.Transport, "not connected")

// ioError maps an error of a network operation to the module's error kinds.
func ioError(err error, format string, args ...any) error {
	var netErr net.Error

	switch {
	case errors.Is(err, os.ErrDeadlineExceeded),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return gvmerr.Wrap(gvmerr.Timeout, err, format, args...)
	default:
		return gvmerr.Wrap(gvmerr.Transport, err, format, args...)
	}
}

// stream implements Send and Recv on top of a net.Conn using per call
// deadlines.
type stream struct {
	mu      sync.Mutex
	conn    net.Conn
	timeout time.Duration
}

func (s *stream) current() net.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn
}

func (s *stream) set(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn = conn
}

// take detaches and returns the connection.
func (s *stream) take() net.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn := s.conn
	s.conn = nil

	return conn
}

func (s *stream) send(data []byte) error {
	conn := s.current()
	if conn == nil {
		return errNotConnected
	}

	if err := conn.SetWriteDeadline(deadline(s.timeout)); err != nil {
		return ioError(err, "set write deadline")
	}

	for len(data) > 0 {
		n, err := conn.Write(data)
		if err != nil {
			return ioError(err, "send")
		}

		data = data[n:]
	}

	return nil
}

func (s *stream) recv() ([]byte, error) {
	conn := s.current()
	if conn == nil {
		return nil, errNotConnected
	}

	if err := conn.SetReadDeadline(deadline(s.timeout)); err != nil {
		return nil, ioError(err, "set read deadline")
	}

	buf := make([]byte, RecvBufferSize)

	n, err := conn.Read(buf)
	if n > 0 || err == nil {
		return buf[:n], nil
	}

	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}

	return nil, ioError(err, "recv")
}
