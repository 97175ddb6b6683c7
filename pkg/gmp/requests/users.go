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
	"encoding/base64"
	"strings"

	"github.com/opengvm/gvm-go/pkg/gvmerr"
	"github.com/opengvm/gvm-go/pkg/xmlcmd"
)

type CreateUser struct {
	Name     string
	Password string
	// Hosts restricts which hosts the user may scan. HostsAllow inverts the
	// list into an allow list.
	Hosts      []string
	HostsAllow bool
	RoleIDs    []string
}

func (r CreateUser) Build() (*xmlcmd.Command, error) {
	const function = "create_user"

	if err := Require(function, "name", r.Name); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New(function)
	cmd.AddElement("name", r.Name)
	optText(cmd, "password", r.Password)

	if len(r.Hosts) > 0 {
		cmd.AddElement("hosts", strings.Join(r.Hosts, ",")).
			SetAttribute("allow", boolString(r.HostsAllow))
	}

	for _, id := range r.RoleIDs {
		cmd.AddElement("role").SetAttribute("id", id)
	}

	return cmd, nil
}

type GetUsers struct {
	Filter
}

func (r GetUsers) Build() (*xmlcmd.Command, error) {
	cmd := xmlcmd.New("get_users")
	r.apply(cmd)

	return cmd, nil
}

type GetUser struct {
	UserID string
}

func (r GetUser) Build() (*xmlcmd.Command, error) {
	if err := Require("get_user", "user_id", r.UserID); err != nil {
		return nil, err
	}

	return xmlcmd.New("get_users").SetAttribute("user_id", r.UserID), nil
}

// DeleteUser deletes a user selected by id or name. Resources owned by the
// user are handed to the inheritor when one is given.
type DeleteUser struct {
	UserID        string
	Name          string
	InheritorID   string
	InheritorName string
}

func (r DeleteUser) Build() (*xmlcmd.Command, error) {
	if r.UserID == "" && r.Name == "" {
		return nil, gvmerr.Required("delete_user", "user_id or name")
	}

	cmd := xmlcmd.New("delete_user")

	for _, a := range [...][2]string{
		{"user_id", r.UserID},
		{"name", r.Name},
		{"inheritor_id", r.InheritorID},
		{"inheritor_name", r.InheritorName},
	} {
		if a[1] != "" {
			cmd.SetAttribute(a[0], a[1])
		}
	}

	return cmd, nil
}

type GetSettings struct {
	Filter string
}

func (r GetSettings) Build() (*xmlcmd.Command, error) {
	cmd := xmlcmd.New("get_settings")

	if r.Filter != "" {
		cmd.SetAttribute("filter", r.Filter)
	}

	return cmd, nil
}

type GetSetting struct {
	SettingID string
}

func (r GetSetting) Build() (*xmlcmd.Command, error) {
	if err := Require("get_setting", "setting_id", r.SettingID); err != nil {
		return nil, err
	}

	return xmlcmd.New("get_settings").SetAttribute("setting_id", r.SettingID), nil
}

// ModifyUserSetting changes a setting of the current user, selected by id or
// by name. The value is sent base64 encoded.
type ModifyUserSetting struct {
	SettingID string
	Name      string
	Value     *string
}

func (r ModifyUserSetting) Build() (*xmlcmd.Command, error) {
	const function = "modify_user_setting"

	if r.SettingID == "" && r.Name == "" {
		return nil, gvmerr.Required(function, "setting_id or name")
	}

	if r.Value == nil {
		return nil, gvmerr.Required(function, "value")
	}

	cmd := xmlcmd.New("modify_setting")

	if r.SettingID != "" {
		cmd.SetAttribute("setting_id", r.SettingID)
	} else {
		cmd.AddElement("name", r.Name)
	}

	cmd.AddElement("value", base64.StdEncoding.EncodeToString([]byte(*r.Value)))

	return cmd, nil
}

type EmptyTrashcan struct{}

func (EmptyTrashcan) Build() (*xmlcmd.Command, error) {
	return xmlcmd.New("empty_trashcan"), nil
}

type RestoreFromTrashcan struct {
	EntityID string
}

func (r RestoreFromTrashcan) Build() (*xmlcmd.Command, error) {
	if err := Require("restore_from_trashcan", "entity_id", r.EntityID); err != nil {
		return nil, err
	}

	return xmlcmd.New("restore").SetAttribute("id", r.EntityID), nil
}
