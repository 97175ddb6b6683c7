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
	"github.com/opengvm/gvm-go/pkg/xmlcmd"
)

// GetResourceNames lists id and name of resources of one type. It requires
// GMP 22.5.
type GetResourceNames struct {
	ResourceType types.ResourceType
	Filter
}

func (r GetResourceNames) Build() (*xmlcmd.Command, error) {
	if err := requireEnum("get_resource_names", "resource_type", r.ResourceType); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New("get_resource_names").SetAttribute("type", string(r.ResourceType))
	r.apply(cmd)

	return cmd, nil
}

type GetResourceName struct {
	ResourceID   string
	ResourceType types.ResourceType
}

func (r GetResourceName) Build() (*xmlcmd.Command, error) {
	const function = "get_resource_name"

	if err := Require(function, "resource_id", r.ResourceID); err != nil {
		return nil, err
	}

	if err := requireEnum(function, "resource_type", r.ResourceType); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New("get_resource_names")
	cmd.SetAttribute("resource_id", r.ResourceID)
	cmd.SetAttribute("type", string(r.ResourceType))

	return cmd, nil
}
