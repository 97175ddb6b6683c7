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
	"github.com/opengvm/gvm-go/pkg/gmp/types"
	"github.com/opengvm/gvm-go/pkg/gvmerr"
	"github.com/opengvm/gvm-go/pkg/xmlcmd"
)

// CreatePermission grants the permission Name to a user, group or role.
// ResourceID and ResourceType restrict it to a single resource and must be
// given together.
type CreatePermission struct {
	Name         string
	SubjectID    string
	SubjectType  types.PermissionSubjectType
	ResourceID   string
	ResourceType types.EntityType
	Comment      string
}

func (r CreatePermission) Build() (*xmlcmd.Command, error) {
	const function = "create_permission"

	if err := RequireAll(function, "name", r.Name, "subject_id", r.SubjectID); err != nil {
		return nil, err
	}

	if err := requireEnum(function, "subject_type", r.SubjectType); err != nil {
		return nil, err
	}

	if err := checkEnum(function, "resource_type", r.ResourceType); err != nil {
		return nil, err
	}

	switch {
	case r.ResourceID != "" && r.ResourceType == "":
		return nil, gvmerr.Required(function, "resource_type")
	case r.ResourceID == "" && r.ResourceType != "":
		return nil, gvmerr.Required(function, "resource_id")
	}

	cmd := xmlcmd.New(function)
	cmd.AddElement("name", r.Name)

	subject := cmd.AddElement("subject").SetAttribute("id", r.SubjectID)
	subject.AddElement("type", string(r.SubjectType))

	if r.ResourceID != "" {
		resource := cmd.AddElement("resource").SetAttribute("id", r.ResourceID)
		resource.AddElement("type", string(r.ResourceType))
	}

	optText(cmd, "comment", r.Comment)

	return cmd, nil
}

type GetPermissions struct {
	Filter
	Trash bool
}

func (r GetPermissions) Build() (*xmlcmd.Command, error) {
	cmd := xmlcmd.New("get_permissions")
	r.apply(cmd)
	flag(cmd, "trash", r.Trash)

	return cmd, nil
}

type GetPermission struct {
	PermissionID string
}

func (r GetPermission) Build() (*xmlcmd.Command, error) {
	if err := Require("get_permission", "permission_id", r.PermissionID); err != nil {
		return nil, err
	}

	return xmlcmd.New("get_permissions").SetAttribute("permission_id", r.PermissionID), nil
}

type DeletePermission struct {
	PermissionID string
	Ultimate     bool
}

func (r DeletePermission) Build() (*xmlcmd.Command, error) {
	return deleteByID("delete_permission", "permission_id", r.PermissionID, r.Ultimate)
}
