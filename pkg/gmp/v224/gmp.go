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

// Package v224 implements GMP 22.4.
package v224

import (
	"context"

	"github.com/opengvm/gvm-go/pkg/gmp/requests"
	"github.com/opengvm/gvm-go/pkg/gvm"
	"github.com/opengvm/gvm-go/pkg/gvmerr"
)

const (
	Major = 22
	Minor = 4
)

// GMP sends GMP 22.4 commands over a channel. Every command method validates
// its request before anything is written and returns the response after the
// channel transform was applied.
type GMP struct {
	ch *gvm.Channel
}

// New binds the dialect to ch. The channel is not connected.
func New(ch *gvm.Channel) *GMP {
	return &GMP{ch: ch}
}

func (g *GMP) ProtocolVersion() (int, int) {
	return Major, Minor
}

// Channel returns the underlying channel.
func (g *GMP) Channel() *gvm.Channel {
	return g.ch
}

// Send builds r and sends it.
func (g *GMP) Send(ctx context.Context, r requests.Builder) (*gvm.Response, error) {
	cmd, err := r.Build()
	if err != nil {
		return nil, err
	}

	return g.ch.Send(ctx, cmd)
}

// SendCommand sends a serialised XML request as is.
func (g *GMP) SendCommand(ctx context.Context, xml string) (*gvm.Response, error) {
	return g.ch.SendRaw(ctx, xml)
}

// Authenticate logs in. Rejected credentials are reported as an Auth error
// and the session stays unauthenticated.
func (g *GMP) Authenticate(ctx context.Context, username, password string) (*gvm.Response, error) {
	cmd, err := requests.Authenticate{Username: username, Password: password}.Build()
	if err != nil {
		return nil, err
	}

	resp, err := g.ch.SendWith(ctx, cmd, gvm.TransformChecked)
	if err != nil {
		if gvmerr.IsKind(err, gvmerr.Response) {
			return nil, gvmerr.Wrap(gvmerr.Auth, err, "authentication failed for %s", username)
		}

		return nil, err
	}

	g.ch.MarkAuthenticated()

	return resp, nil
}

func (g *GMP) IsAuthenticated() bool {
	return g.ch.IsAuthenticated()
}

func (g *GMP) Disconnect() error {
	return g.ch.Disconnect()
}

func (g *GMP) GetVersion(ctx context.Context) (*gvm.Response, error) {
	return g.Send(ctx, requests.GetVersion{})
}

// DescribeAuth returns the configured authentication methods.
func (g *GMP) DescribeAuth(ctx context.Context) (*gvm.Response, error) {
	return g.Send(ctx, requests.DescribeAuth{})
}

func (g *GMP) GetFeeds(ctx context.Context) (*gvm.Response, error) {
	return g.Send(ctx, requests.GetFeeds{})
}

func (g *GMP) EmptyTrashcan(ctx context.Context) (*gvm.Response, error) {
	return g.Send(ctx, requests.EmptyTrashcan{})
}
