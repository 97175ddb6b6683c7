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

package requests

import (
	"github.com/opengvm/gvm-go/pkg/xmlcmd"
)

// Audits are compliance tasks. They share the task commands and differ by
// usage type and by running a policy instead of a scan config.

type CreateAudit struct {
	Name      string
	PolicyID  string
	TargetID  string
	ScannerID string
	Comment   string
	TaskSettings
}

func (r CreateAudit) Build() (*xmlcmd.Command, error) {
	return createTask("create_audit", usageAudit, "policy_id",
		r.Name, r.PolicyID, r.TargetID, r.ScannerID, r.Comment, r.TaskSettings)
}

type ModifyAudit struct {
	AuditID   string
	Name      string
	PolicyID  string
	TargetID  string
	ScannerID string
	Comment   string
	TaskSettings
}

func (r ModifyAudit) Build() (*xmlcmd.Command, error) {
	return modifyTask("modify_audit", "audit_id", r.AuditID,
		r.PolicyID, r.Name, r.TargetID, r.ScannerID, r.Comment, r.TaskSettings)
}

type GetAudits struct {
	Filter
	Trash            bool
	Details          bool
	SchedulesOnly    bool
	IgnorePagination bool
}

func (r GetAudits) Build() (*xmlcmd.Command, error) {
	return getTasks(usageAudit, r.Filter, r.Trash, r.Details, r.SchedulesOnly, r.IgnorePagination), nil
}

type GetAudit struct {
	AuditID string
}

func (r GetAudit) Build() (*xmlcmd.Command, error) {
	return getTask("get_audit", "audit_id", r.AuditID, usageAudit)
}

type DeleteAudit struct {
	AuditID  string
	Ultimate bool
}

func (r DeleteAudit) Build() (*xmlcmd.Command, error) {
	if err := Require("delete_audit", "audit_id", r.AuditID); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New("delete_task")
	cmd.SetAttribute("task_id", r.AuditID)
	cmd.SetAttribute("ultimate", boolString(r.Ultimate))

	return cmd, nil
}
