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

package osp

import (
	"sort"
	"strconv"

	"github.com/opengvm/gvm-go/pkg/gmp/requests"
	"github.com/opengvm/gvm-go/pkg/gvmerr"
	"github.com/opengvm/gvm-go/pkg/xmlcmd"
)

type GetVersion struct{}

func (GetVersion) Build() (*xmlcmd.Command, error) {
	return xmlcmd.New("get_version"), nil
}

type Help struct{}

func (Help) Build() (*xmlcmd.Command, error) {
	return xmlcmd.New("help"), nil
}

type GetScannerDetails struct{}

func (GetScannerDetails) Build() (*xmlcmd.Command, error) {
	return xmlcmd.New("get_scanner_details"), nil
}

// GetScans lists scans, or one scan when ScanID is set.
type GetScans struct {
	ScanID string
	// Details defaults to true.
	Details *bool
	// PopResults removes the returned results from the scanner.
	PopResults bool
	MaxResults *int
}

func (r GetScans) Build() (*xmlcmd.Command, error) {
	cmd := xmlcmd.New("get_scans")

	if r.ScanID != "" {
		cmd.SetAttribute("scan_id", r.ScanID)
	}

	details := r.Details == nil || *r.Details
	cmd.SetAttribute("details", boolString(details))
	cmd.SetAttribute("pop_results", boolString(r.PopResults))

	if r.MaxResults != nil {
		if *r.MaxResults < 0 {
			return nil, gvmerr.Invalid("get_scans", "max_results", "")
		}

		cmd.SetAttribute("max_results", strconv.Itoa(*r.MaxResults))
	}

	return cmd, nil
}

type DeleteScan struct {
	ScanID string
}

func (r DeleteScan) Build() (*xmlcmd.Command, error) {
	return scanByID("delete_scan", r.ScanID)
}

type StopScan struct {
	ScanID string
}

func (r StopScan) Build() (*xmlcmd.Command, error) {
	return scanByID("stop_scan", r.ScanID)
}

func scanByID(function, id string) (*xmlcmd.Command, error) {
	if err := requests.Require(function, "scan_id", id); err != nil {
		return nil, err
	}

	return xmlcmd.New(function).SetAttribute("scan_id", id), nil
}

// GetVTs lists all vulnerability tests, or one when VTID is set.
type GetVTs struct {
	VTID string
}

func (r GetVTs) Build() (*xmlcmd.Command, error) {
	cmd := xmlcmd.New("get_vts")

	if r.VTID != "" {
		cmd.SetAttribute("vt_id", r.VTID)
	}

	return cmd, nil
}

// Credential authenticates the scanner against one service of a target.
type Credential struct {
	Type     string
	Port     string
	Username string
	Password string
}

// Target is one entry of the targets list of a scan.
type Target struct {
	Hosts string
	Ports string
	// Credentials are keyed by service, e.g. "ssh" or "smb".
	Credentials map[string]Credential
}

// VT selects a single test with optional preference values keyed by id.
type VT struct {
	ID     string
	Values map[string]string
}

type VTSelection struct {
	// Groups are family filters, e.g. "family=debian".
	Groups []string
	Single []VT
}

// StartScan starts a scan on Targets. The legacy form with a single Target
// string and Ports is used only when Targets is empty.
type StartScan struct {
	ScanID string
	// Parallel defaults to 1.
	Parallel      int
	Targets       []Target
	Target        string
	Ports         string
	ScannerParams map[string]string
	VTSelection   *VTSelection
}

func (r StartScan) Build() (*xmlcmd.Command, error) {
	cmd := xmlcmd.New("start_scan")

	if r.ScanID != "" {
		cmd.SetAttribute("scan_id", r.ScanID)
	}

	parallel := r.Parallel
	if parallel == 0 {
		parallel = 1
	}

	if parallel < 0 {
		return nil, gvmerr.Invalid("start_scan", "parallel", "")
	}

	cmd.SetAttribute("parallel", strconv.Itoa(parallel))

	// ospd rejects a start_scan without scanner_params, even an empty one.
	params := cmd.AddElement("scanner_params")
	for _, k := range sortedKeys(r.ScannerParams) {
		params.AddElement(k, r.ScannerParams[k])
	}

	switch {
	case len(r.Targets) > 0:
		targets := cmd.AddElement("targets")
		for _, t := range r.Targets {
			addTarget(targets, t)
		}
	case r.Target != "":
		cmd.SetAttribute("target", r.Target)

		if r.Ports != "" {
			cmd.SetAttribute("ports", r.Ports)
		}
	default:
		return nil, gvmerr.Required("start_scan", "targets")
	}

	if r.VTSelection != nil {
		addVTSelection(cmd, r.VTSelection)
	}

	return cmd, nil
}

func addTarget(parent *xmlcmd.Command, t Target) {
	target := parent.AddElement("target")
	target.AddElement("hosts", t.Hosts)
	target.AddElement("ports", t.Ports)

	if len(t.Credentials) == 0 {
		return
	}

	creds := target.AddElement("credentials")

	for _, service := range sortedKeys(t.Credentials) {
		c := t.Credentials[service]

		cred := creds.AddElement("credential")
		cred.SetAttribute("type", c.Type)
		cred.SetAttribute("port", c.Port)
		cred.SetAttribute("service", service)
		cred.AddElement("username", c.Username)
		cred.AddElement("password", c.Password)
	}
}

func addVTSelection(parent *xmlcmd.Command, s *VTSelection) {
	sel := parent.AddElement("vt_selection")

	for _, g := range s.Groups {
		sel.AddElement("vt_group").SetAttribute("filter", g)
	}

	for _, vt := range s.Single {
		single := sel.AddElement("vt_single").SetAttribute("id", vt.ID)

		for _, id := range sortedKeys(vt.Values) {
			single.AddElement("vt_value", vt.Values[id]).SetAttribute("id", id)
		}
	}
}

func boolString(v bool) string {
	if v {
		return "1"
	}

	return "0"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
