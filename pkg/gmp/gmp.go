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

// Package gmp selects the GMP dialect that matches the server.
//
//	ch := gvm.NewChannel(transport.NewUnixSocket(transport.DefaultSocketPath))
//	dialect, err := gmp.Connect(ctx, ch)
//	if err != nil {
//		return err
//	}
//	defer dialect.Disconnect()
//
//	g := dialect.(*v225.GMP)
package gmp

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/opengvm/gvm-go/pkg/gmp/requests"
	"github.com/opengvm/gvm-go/pkg/gmp/v224"
	"github.com/opengvm/gvm-go/pkg/gmp/v225"
	"github.com/opengvm/gvm-go/pkg/gvm"
	"github.com/opengvm/gvm-go/pkg/gvmerr"
)

// Dialect is the part of the command surface that every GMP version shares.
// Type assert to a concrete version for the full command set.
type Dialect interface {
	ProtocolVersion() (int, int)
	GetVersion(ctx context.Context) (*gvm.Response, error)
	Authenticate(ctx context.Context, username, password string) (*gvm.Response, error)
	IsAuthenticated() bool
	Disconnect() error
	SendCommand(ctx context.Context, xml string) (*gvm.Response, error)
}

// Factory binds a dialect to a channel.
type Factory func(ch *gvm.Channel) Dialect

// Version is a MAJOR.MINOR protocol version.
type Version struct {
	Major int
	Minor int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compare returns -1, 0 or 1 when v is lower, equal or greater than o.
func (v Version) Compare(o Version) int {
	if c := cmp.Compare(v.Major, o.Major); c != 0 {
		return c
	}

	return cmp.Compare(v.Minor, o.Minor)
}

// ParseVersion parses MAJOR.MINOR. Anything after the minor number, like
// a patch level, is ignored.
func ParseVersion(s string) (Version, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ".", 3)
	if len(parts) < 2 {
		return Version{}, gvmerr.New(gvmerr.GenericProtocol, "invalid version %q", s)
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, gvmerr.Wrap(gvmerr.GenericProtocol, err, "invalid version %q", s)
	}

	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, gvmerr.Wrap(gvmerr.GenericProtocol, err, "invalid version %q", s)
	}

	return Version{Major: major, Minor: minor}, nil
}

var (
	registryMu sync.RWMutex
	registry   = map[Version]Factory{
		{v224.Major, v224.Minor}: func(ch *gvm.Channel) Dialect { return v224.New(ch) },
		{v225.Major, v225.Minor}: func(ch *gvm.Channel) Dialect { return v225.New(ch) },
	}
)

// Register adds or replaces the dialect for v.
func Register(v Version, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry[v] = f
}

// Versions returns the registered versions in ascending order.
func Versions() []Version {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]Version, 0, len(registry))
	for v := range registry {
		out = append(out, v)
	}

	slices.SortFunc(out, Version.Compare)

	return out
}

// Select returns the dialect registered for server, or the newest one below
// it.
func Select(server Version) (Version, Factory, error) {
	versions := Versions()

	registryMu.RLock()
	defer registryMu.RUnlock()

	for i := len(versions) - 1; i >= 0; i-- {
		if versions[i].Compare(server) <= 0 {
			return versions[i], registry[versions[i]], nil
		}
	}

	return Version{}, nil, gvmerr.New(gvmerr.GenericProtocol, "unsupported server version %s", server)
}

// Latest binds the newest registered dialect without asking the server.
func Latest(ch *gvm.Channel) Dialect {
	versions := Versions()

	registryMu.RLock()
	defer registryMu.RUnlock()

	return registry[versions[len(versions)-1]](ch)
}

// VersionResponse is the decoded get_version response.
type VersionResponse struct {
	Status     string `xml:"status,attr"`
	StatusText string `xml:"status_text,attr"`
	Version    string `xml:"version"`
}

// Option configures Connect.
type Option func(*options)

type options struct {
	logger zerolog.Logger
}

// WithLogger sets the logger used to report the negotiated version.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Connect opens ch, asks the server for its protocol version and returns the
// matching dialect. The channel is disconnected when no dialect fits.
func Connect(ctx context.Context, ch *gvm.Channel, opts ...Option) (Dialect, error) {
	o := options{logger: zerolog.Nop()}

	for _, opt := range opts {
		opt(&o)
	}

	if err := ch.Connect(ctx); err != nil {
		return nil, err
	}

	d, err := negotiate(ctx, ch, o.logger)
	if err != nil {
		//nolint:errcheck // the negotiation error is more useful
		ch.Disconnect()

		return nil, err
	}

	return d, nil
}

func negotiate(ctx context.Context, ch *gvm.Channel, logger zerolog.Logger) (Dialect, error) {
	cmd, err := requests.GetVersion{}.Build()
	if err != nil {
		return nil, err
	}

	resp, err := ch.SendWith(ctx, cmd, gvm.TransformChecked)
	if err != nil {
		return nil, err
	}

	var vr VersionResponse
	if err := resp.Decode(&vr); err != nil {
		return nil, err
	}

	if vr.Version == "" {
		return nil, gvmerr.New(gvmerr.GenericProtocol, "no version in get_version response")
	}

	server, err := ParseVersion(vr.Version)
	if err != nil {
		return nil, err
	}

	selected, factory, err := Select(server)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("server", server.String()).Str("dialect", selected.String()).
		Msg("Negotiated GMP version")

	return factory(ch), nil
}
