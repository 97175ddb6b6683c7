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

package v224

import (
	"context"

	"github.com/opengvm/gvm-go/pkg/gmp/requests"
	"github.com/opengvm/gvm-go/pkg/gvm"
)

// GetAggregates returns statistics grouped by a column.
func (g *GMP) GetAggregates(ctx context.Context, r requests.GetAggregates) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetInfoList(ctx context.Context, r requests.GetInfoList) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetInfo(ctx context.Context, r requests.GetInfo) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetFeed(ctx context.Context, r requests.GetFeed) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetSystemReports(ctx context.Context, r requests.GetSystemReports) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) Help(ctx context.Context, r requests.Help) (*gvm.Response, error) {
	return g.Send(ctx, r)
}
