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

type CreatePortList struct {
	Name string
	// PortRange is a comma separated list of ranges, e.g. "T:1-1024,U:53".
	PortRange string
	Comment   string
}

func (r CreatePortList) Build() (*xmlcmd.Command, error) {
	const function = "create_port_list"

	if err := RequireAll(function, "name", r.Name, "port_range", r.PortRange); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New(function)
	cmd.AddElement("name", r.Name)
	cmd.AddElement("port_range", r.PortRange)
	optText(cmd, "comment", r.Comment)

	return cmd, nil
}

type GetPortLists struct {
	Filter
	Details bool
	Targets bool
	Trash   bool
}

func (r GetPortLists) Build() (*xmlcmd.Command, error) {
	cmd := xmlcmd.New("get_port_lists")
	r.apply(cmd)
	flag(cmd, "details", r.Details)
	flag(cmd, "targets", r.Targets)
	flag(cmd, "trash", r.Trash)

	return cmd, nil
}

type GetPortList struct {
	PortListID string
}

func (r GetPortList) Build() (*xmlcmd.Command, error) {
	if err := Require("get_port_list", "port_list_id", r.PortListID); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New("get_port_lists")
	cmd.SetAttribute("port_list_id", r.PortListID)
	cmd.SetAttribute("details", "1")

	return cmd, nil
}

type DeletePortList struct {
	PortListID string
	Ultimate   bool
}

func (r DeletePortList) Build() (*xmlcmd.Command, error) {
	return deleteByID("delete_port_list", "port_list_id", r.PortListID, r.Ultimate)
}
