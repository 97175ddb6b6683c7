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
	"net"

	"github.com/rs/zerolog"

	"github.com/opengvm/gvm-go/pkg/gvmerr"
)

// DefaultSocketPath is the Unix socket gvmd listens on.
const DefaultSocketPath = "/run/gvmd/gvmd.sock"

// UnixSocket connects to a local gvmd through a Unix domain socket.
type UnixSocket struct {
	stream
	path   string
	logger zerolog.Logger
}

// NewUnixSocket returns a transport for the socket at path. An empty path
// selects DefaultSocketPath.
func NewUnixSocket(path string, opts ...Option) *UnixSocket {
	o := newOptions(opts)

	if path == "" {
		path = DefaultSocketPath
	}

	return &UnixSocket{
		stream: stream{timeout: EffectiveTimeout(o.timeout)},
		path:   path,
		logger: o.logger.With().Str("transport", "unix").Str("path", path).Logger(),
	}
}

// Path returns the socket path.
func (u *UnixSocket) Path() string {
	return u.path
}

func (u *UnixSocket) Connect(ctx context.Context) error {
	if u.current() != nil {
		return nil
	}

	d := net.Dialer{Timeout: u.timeout}

	conn, err := d.DialContext(ctx, "unix", u.path)
	if err != nil {
		return ioError(err, "could not connect to socket %s", u.path)
	}

	u.set(conn)

	u.logger.Debug().Msg("Connected")

	return nil
}

func (u *UnixSocket) Disconnect() error {
	conn := u.take()
	if conn == nil {
		return nil
	}

	if err := conn.Close(); err != nil {
		u.logger.Debug().Err(err).Msg("Close failed")
	}

	return nil
}

func (u *UnixSocket) Send(data []byte) error {
	return u.send(data)
}

func (u *UnixSocket) Recv() ([]byte, error) {
	return u.recv()
}

func (u *UnixSocket) FinishSend() error {
	conn, ok := u.current().(*net.UnixConn)
	if !ok {
		return errNotConnected
	}

	if err := conn.CloseWrite(); err != nil {
		return gvmerr.Wrap(gvmerr.Transport, err, "shutdown write")
	}

	return nil
}
