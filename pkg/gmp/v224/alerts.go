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

func (g *GMP) CreateAlert(ctx context.Context, r requests.CreateAlert) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetAlerts(ctx context.Context, r requests.GetAlerts) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetAlert(ctx context.Context, r requests.GetAlert) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) DeleteAlert(ctx context.Context, r requests.DeleteAlert) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

// TestAlert runs the alert once with dummy data.
func (g *GMP) TestAlert(ctx context.Context, r requests.TestAlert) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

// TriggerAlert runs the alert for the given report.
func (g *GMP) TriggerAlert(ctx context.Context, r requests.TriggerAlert) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetReports(ctx context.Context, r requests.GetReports) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetReport(ctx context.Context, r requests.GetReport) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) DeleteReport(ctx context.Context, r requests.DeleteReport) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) ImportReport(ctx context.Context, r requests.ImportReport) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) CreateTicket(ctx context.Context, r requests.CreateTicket) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetTickets(ctx context.Context, r requests.GetTickets) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetTicket(ctx context.Context, r requests.GetTicket) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) ModifyTicket(ctx context.Context, r requests.ModifyTicket) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) DeleteTicket(ctx context.Context, r requests.DeleteTicket) (*gvm.Response, error) {
	return g.Send(ctx, r)
}
