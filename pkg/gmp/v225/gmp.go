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

// Package v225 implements GMP 22.5, which adds resource name lookups to 22.4.
package v225

import (
	"context"

	"github.com/opengvm/gvm-go/pkg/gmp/requests"
	"github.com/opengvm/gvm-go/pkg/gmp/v224"
	"github.com/opengvm/gvm-go/pkg/gvm"
)

const (
	Major = 22
	Minor = 5
)

type GMP struct {
	*v224.GMP
}

func New(ch *gvm.Channel) *GMP {
	return &GMP{GMP: v224.New(ch)}
}

func (g *GMP) ProtocolVersion() (int, int) {
	return Major, Minor
}

// GetResourceNames lists the ids and names of all resources of a type.
func (g *GMP) GetResourceNames(ctx context.Context, r requests.GetResourceNames) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetResourceName(ctx context.Context, r requests.GetResourceName) (*gvm.Response, error) {
	return g.Send(ctx, r)
}
