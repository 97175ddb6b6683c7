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

// CreateTask creates a scan task.
func (g *GMP) CreateTask(ctx context.Context, r requests.CreateTask) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetTasks(ctx context.Context, r requests.GetTasks) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetTask(ctx context.Context, r requests.GetTask) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) ModifyTask(ctx context.Context, r requests.ModifyTask) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) CloneTask(ctx context.Context, r requests.CloneTask) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) DeleteTask(ctx context.Context, r requests.DeleteTask) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

// StartTask queues a task. The response carries the report id.
func (g *GMP) StartTask(ctx context.Context, r requests.StartTask) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) StopTask(ctx context.Context, r requests.StopTask) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) ResumeTask(ctx context.Context, r requests.ResumeTask) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) CreateAudit(ctx context.Context, r requests.CreateAudit) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetAudits(ctx context.Context, r requests.GetAudits) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) GetAudit(ctx context.Context, r requests.GetAudit) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

// ModifyAudit changes an audit. An empty, non-nil AlertIDs removes all alerts.
func (g *GMP) ModifyAudit(ctx context.Context, r requests.ModifyAudit) (*gvm.Response, error) {
	return g.Send(ctx, r)
}

func (g *GMP) DeleteAudit(ctx context.Context, r requests.DeleteAudit) (*gvm.Response, error) {
	return g.Send(ctx, r)
}
