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

// Package osp talks the Open Scanner Protocol to ospd scanners.
//
// ospd reads a command until the client stops writing, so every command runs
// on a fresh connection that is half-closed after the request and closed
// once the response arrived.
package osp

import (
	"context"

	"github.com/opengvm/gvm-go/pkg/gmp/requests"
	"github.com/opengvm/gvm-go/pkg/gvm"
	"github.com/opengvm/gvm-go/pkg/transport"
)

// OSP sends OSP commands over a transport.
type OSP struct {
	ch *gvm.Channel
}

// New returns an OSP client. The options configure the channel used for
// every command.
func New(t transport.Transport, opts ...gvm.Option) *OSP {
	opts = append(opts[:len(opts):len(opts)], gvm.WithFinishSend())

	return &OSP{ch: gvm.NewChannel(t, opts...)}
}

// Channel returns the underlying channel.
func (o *OSP) Channel() *gvm.Channel {
	return o.ch
}

// Send builds r and runs it on its own connection.
func (o *OSP) Send(ctx context.Context, r requests.Builder) (*gvm.Response, error) {
	cmd, err := r.Build()
	if err != nil {
		return nil, err
	}

	if err := o.ch.Connect(ctx); err != nil {
		return nil, err
	}

	//nolint:errcheck // the response is already read
	defer o.ch.Disconnect()

	return o.ch.Send(ctx, cmd)
}

// SendCommand runs a serialised XML request as is.
func (o *OSP) SendCommand(ctx context.Context, xml string) (*gvm.Response, error) {
	if err := o.ch.Connect(ctx); err != nil {
		return nil, err
	}

	//nolint:errcheck // the response is already read
	defer o.ch.Disconnect()

	return o.ch.SendRaw(ctx, xml)
}

func (o *OSP) GetVersion(ctx context.Context) (*gvm.Response, error) {
	return o.Send(ctx, GetVersion{})
}

func (o *OSP) Help(ctx context.Context) (*gvm.Response, error) {
	return o.Send(ctx, Help{})
}

func (o *OSP) GetScannerDetails(ctx context.Context) (*gvm.Response, error) {
	return o.Send(ctx, GetScannerDetails{})
}

func (o *OSP) GetScans(ctx context.Context, r GetScans) (*gvm.Response, error) {
	return o.Send(ctx, r)
}

func (o *OSP) DeleteScan(ctx context.Context, r DeleteScan) (*gvm.Response, error) {
	return o.Send(ctx, r)
}

// GetVTs lists the vulnerability tests known to the scanner. The list can be
// very large, consider gvm.WithMaxResponseSize.
func (o *OSP) GetVTs(ctx context.Context, r GetVTs) (*gvm.Response, error) {
	return o.Send(ctx, r)
}

// StartScan starts a scan. The response carries the scan id.
func (o *OSP) StartScan(ctx context.Context, r StartScan) (*gvm.Response, error) {
	return o.Send(ctx, r)
}

func (o *OSP) StopScan(ctx context.Context, r StopScan) (*gvm.Response, error) {
	return o.Send(ctx, r)
}

// VersionResponse is the decoded get_version response.
type VersionResponse struct {
	Status     string `xml:"status,attr"`
	StatusText string `xml:"status_text,attr"`
	Protocol   struct {
		Name    string `xml:"name"`
		Version string `xml:"version"`
	} `xml:"protocol"`
	Daemon struct {
		Name    string `xml:"name"`
		Version string `xml:"version"`
	} `xml:"daemon"`
	Scanner struct {
		Name    string `xml:"name"`
		Version string `xml:"version"`
	} `xml:"scanner"`
}
