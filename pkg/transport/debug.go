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

	"github.com/rs/zerolog"
)

// Debug wraps a Transport and logs every call and the bytes that pass
// through it at debug level.
type Debug struct {
	inner  Transport
	logger zerolog.Logger
}

// NewDebug returns inner wrapped in a Debug transport.
func NewDebug(inner Transport, logger zerolog.Logger) *Debug {
	return &Debug{inner: inner, logger: logger}
}

// Unwrap returns the wrapped transport.
func (d *Debug) Unwrap() Transport {
	return d.inner
}

func (d *Debug) Connect(ctx context.Context) error {
	err := d.inner.Connect(ctx)
	d.logger.Debug().Err(err).Msg("Connect")

	return err
}

func (d *Debug) Disconnect() error {
	err := d.inner.Disconnect()
	d.logger.Debug().Err(err).Msg("Disconnect")

	return err
}

func (d *Debug) Send(data []byte) error {
	err := d.inner.Send(data)
	d.logger.Debug().Err(err).Int("bytes", len(data)).Bytes("data", data).Msg("Send")

	return err
}

func (d *Debug) Recv() ([]byte, error) {
	data, err := d.inner.Recv()
	d.logger.Debug().Err(err).Int("bytes", len(data)).Bytes("data", data).Msg("Recv")

	return data, err
}

func (d *Debug) FinishSend() error {
	err := d.inner.FinishSend()
	d.logger.Debug().Err(err).Msg("FinishSend")

	return err
}
