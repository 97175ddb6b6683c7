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

func (g *GMP) CreateTarget(ctx context.Context, r requests.CreateTarget) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetTargets(ctx context.Context, r requests.GetTargets) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetTarget(ctx context.Context, r requests.GetTarget) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) ModifyTarget(ctx context.Context, r requests.ModifyTarget) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) CloneTarget(ctx context.Context, r requests.CloneTarget) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) DeleteTarget(ctx context.Context, r requests.DeleteTarget) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) CreateCredential(ctx context.Context, r requests.CreateCredential) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetCredentials(ctx context.Context, r requests.GetCredentials) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetCredential(ctx context.Context, r requests.GetCredential) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) DeleteCredential(ctx context.Context, r requests.DeleteCredential) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) CreatePortList(ctx context.Context, r requests.CreatePortList) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetPortLists(ctx context.Context, r requests.GetPortLists) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetPortList(ctx context.Context, r requests.GetPortList) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) DeletePortList(ctx context.Context, r requests.DeletePortList) (*gvm.Response, error) {
	return g.Send(ctx, r)
}
