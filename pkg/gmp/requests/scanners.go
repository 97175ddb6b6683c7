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

type CreateScanner struct {
	Name         string
	Host         string
	Port         string
	Type         types.ScannerType
	CredentialID string
	// CAPub is the PEM encoded certificate of the CA that signed the
	// scanner certificate.
	CAPub   string
	Comment string
}

func (r CreateScanner) Build() (*xmlcmd.Command, error) {
	const function = "create_scanner"

	err := RequireAll(function,
		"name", r.Name,
		"host", r.Host,
		"port", r.Port,
	)
	if err != nil {
		return nil, err
	}

	if err := requireEnum(function, "scanner_type", r.Type); err != nil {
		return nil, err
	}

	if err := Require(function, "credential_id", r.CredentialID); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New(function)
	cmd.AddElement("name", r.Name)
	cmd.AddElement("host", r.Host)
	cmd.AddElement("port", r.Port)
	cmd.AddElement("type", string(r.Type))
	optRef(cmd, "credential", r.CredentialID)
	optText(cmd, "ca_pub", r.CAPub)
	optText(cmd, "comment", r.Comment)

	return cmd, nil
}

type GetScanners struct {
	Filter
	Trash   bool
	Details bool
}

func (r GetScanners) Build() (*xmlcmd.Command, error) {
	cmd := xmlcmd.New("get_scanners")
	r.apply(cmd)
	flag(cmd, "trash", r.Trash)
	flag(cmd, "details", r.Details)

	return cmd, nil
}

type GetScanner struct {
	ScannerID string
}

func (r GetScanner) Build() (*xmlcmd.Command, error) {
	if err := Require("get_scanner", "scanner_id", r.ScannerID); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New("get_scanners")
	cmd.SetAttribute("scanner_id", r.ScannerID)
	cmd.SetAttribute("details", "1")

	return cmd, nil
}

type VerifyScanner struct {
	ScannerID string
}

func (r VerifyScanner) Build() (*xmlcmd.Command, error) {
	return byID("verify_scanner", "scanner_id", r.ScannerID)
}

type DeleteScanner struct {
	ScannerID string
	Ultimate  bool
}

func (r DeleteScanner) Build() (*xmlcmd.Command, error) {
	return deleteByID("delete_scanner", "scanner_id", r.ScannerID, r.Ultimate)
}
