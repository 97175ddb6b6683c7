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

type Authenticate struct {
	Username string
	Password string
}

func (r Authenticate) Build() (*xmlcmd.Command, error) {
	if err := RequireAll("authenticate", "username", r.Username, "password", r.Password); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New("authenticate")
	creds := cmd.AddElement("credentials")
	creds.AddElement("username", r.Username)
	creds.AddElement("password", r.Password)

	return cmd, nil
}

type DescribeAuth struct{}

func (DescribeAuth) Build() (*xmlcmd.Command, error) {
	return xmlcmd.New("describe_auth"), nil
}

type GetVersion struct{}

func (GetVersion) Build() (*xmlcmd.Command, error) {
	return xmlcmd.New("get_version"), nil
}

type Help struct {
	Format types.HelpFormat
	// Brief requests a short listing of commands.
	Brief bool
}

func (r Help) Build() (*xmlcmd.Command, error) {
	if err := checkEnum("help", "help_format", r.Format); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New("help")

	if r.Format != "" {
		cmd.SetAttribute("format", string(r.Format))
	}

	if r.Brief {
		cmd.SetAttribute("type", "brief")
	}

	return cmd, nil
}
