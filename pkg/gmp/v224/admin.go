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

func (g *GMP) CreateTag(ctx context.Context, r requests.CreateTag) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetTags(ctx context.Context, r requests.GetTags) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetTag(ctx context.Context, r requests.GetTag) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) ModifyTag(ctx context.Context, r requests.ModifyTag) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) DeleteTag(ctx context.Context, r requests.DeleteTag) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) CreateScanner(ctx context.Context, r requests.CreateScanner) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetScanners(ctx context.Context, r requests.GetScanners) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetScanner(ctx context.Context, r requests.GetScanner) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

// VerifyScanner checks that gvmd can talk to the scanner.
func (g *GMP) VerifyScanner(ctx context.Context, r requests.VerifyScanner) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) DeleteScanner(ctx context.Context, r requests.DeleteScanner) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) CreatePermission(ctx context.Context, r requests.CreatePermission) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetPermissions(ctx context.Context, r requests.GetPermissions) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetPermission(ctx context.Context, r requests.GetPermission) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) DeletePermission(ctx context.Context, r requests.DeletePermission) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) CreateUser(ctx context.Context, r requests.CreateUser) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetUsers(ctx context.Context, r requests.GetUsers) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetUser(ctx context.Context, r requests.GetUser) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) DeleteUser(ctx context.Context, r requests.DeleteUser) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetSettings(ctx context.Context, r requests.GetSettings) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetSetting(ctx context.Context, r requests.GetSetting) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) ModifyUserSetting(ctx context.Context, r requests.ModifyUserSetting) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) RestoreFromTrashcan(ctx context.Context, r requests.RestoreFromTrashcan) (*gvm.Response, error) {
	return g.Send(ctx, r)
}
