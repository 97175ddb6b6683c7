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
	"strings"

	"github.com/opengvm/gvm-go/pkg/gmp/types"
	"github.com/opengvm/gvm-go/pkg/gvmerr"
	"github.com/opengvm/gvm-go/pkg/xmlcmd"
)

// TargetCredentials are the login credentials used when scanning a target.
type TargetCredentials struct {
	SSHCredentialID   string
	SSHCredentialPort *int
	SMBCredentialID   string
	ESXiCredentialID  string
	SNMPCredentialID  string
}

func (c TargetCredentials) add(cmd *xmlcmd.Command) {
	if c.SSHCredentialID != "" {
		ssh := cmd.AddElement("ssh_credential").SetAttribute("id", c.SSHCredentialID)
		if c.SSHCredentialPort != nil {
			ssh.AddElement("port", itoa(*c.SSHCredentialPort))
		}
	}

	optRef(cmd, "smb_credential", c.SMBCredentialID)
	optRef(cmd, "esxi_credential", c.ESXiCredentialID)
	optRef(cmd, "snmp_credential", c.SNMPCredentialID)
}

// TargetOptions are the optional scan settings of a target.
type TargetOptions struct {
	AliveTest            types.AliveTest
	AllowSimultaneousIPs *bool
	ReverseLookupOnly    *bool
	ReverseLookupUnify   *bool
	PortListID           string
}

func (o TargetOptions) add(cmd *xmlcmd.Command) {
	if o.AliveTest != "" {
		cmd.AddElement("alive_tests", string(o.AliveTest))
	}

	optBoolElement(cmd, "allow_simultaneous_ips", o.AllowSimultaneousIPs)
	optBoolElement(cmd, "reverse_lookup_only", o.ReverseLookupOnly)
	optBoolElement(cmd, "reverse_lookup_unify", o.ReverseLookupUnify)
}

type CreateTarget struct {
	Name string
	// Hosts or AssetHostsFilter selects the hosts. AssetHostsFilter wins when
	// both are set.
	Hosts            []string
	AssetHostsFilter string
	ExcludeHosts     []string
	Comment          string
	PortRange        string
	TargetCredentials
	TargetOptions
}

func (r CreateTarget) Build() (*xmlcmd.Command, error) {
	const function = "create_target"

	if err := Require(function, "name", r.Name); err != nil {
		return nil, err
	}

	if err := checkEnum(function, "alive_test", r.AliveTest); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New(function)
	cmd.AddElement("name", r.Name)

	switch {
	case r.AssetHostsFilter != "":
		cmd.AddElement("asset_hosts").SetAttribute("filter", r.AssetHostsFilter)
	case len(r.Hosts) > 0:
		cmd.AddElement("hosts", strings.Join(r.Hosts, ","))
	default:
		return nil, gvmerr.Required(function, "hosts or asset_hosts_filter")
	}

	optText(cmd, "comment", r.Comment)
	optList(cmd, "exclude_hosts", r.ExcludeHosts)
	r.TargetCredentials.add(cmd)
	r.TargetOptions.add(cmd)
	optText(cmd, "port_range", r.PortRange)
	optRef(cmd, "port_list", r.PortListID)

	return cmd, nil
}

type ModifyTarget struct {
	TargetID     string
	Name         string
	Comment      string
	Hosts        []string
	ExcludeHosts []string
	TargetCredentials
	TargetOptions
}

func (r ModifyTarget) Build() (*xmlcmd.Command, error) {
	const function = "modify_target"

	if err := Require(function, "target_id", r.TargetID); err != nil {
		return nil, err
	}

	if err := checkEnum(function, "alive_test", r.AliveTest); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New(function).SetAttribute("target_id", r.TargetID)
	optText(cmd, "comment", r.Comment)
	optText(cmd, "name", r.Name)

	if len(r.Hosts) > 0 {
		cmd.AddElement("hosts", strings.Join(r.Hosts, ","))

		// gvmd keeps the old exclusions unless they are sent along.
		cmd.AddElement("exclude_hosts", strings.Join(r.ExcludeHosts, ","))
	} else {
		optList(cmd, "exclude_hosts", r.ExcludeHosts)
	}

	r.TargetCredentials.add(cmd)
	r.TargetOptions.add(cmd)
	optRef(cmd, "port_list", r.PortListID)

	return cmd, nil
}

type GetTargets struct {
	Filter
	Trash bool
	Tasks bool
}

func (r GetTargets) Build() (*xmlcmd.Command, error) {
	cmd := xmlcmd.New("get_targets")
	r.apply(cmd)
	flag(cmd, "trash", r.Trash)
	flag(cmd, "tasks", r.Tasks)

	return cmd, nil
}

type GetTarget struct {
	TargetID string
	Tasks    bool
}

func (r GetTarget) Build() (*xmlcmd.Command, error) {
	if err := Require("get_target", "target_id", r.TargetID); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New("get_targets").SetAttribute("target_id", r.TargetID)
	flag(cmd, "tasks", r.Tasks)

	return cmd, nil
}

type CloneTarget struct {
	TargetID string
}

func (r CloneTarget) Build() (*xmlcmd.Command, error) {
	return clone("clone_target", "create_target", "target_id", r.TargetID)
}

type DeleteTarget struct {
	TargetID string
	Ultimate bool
}

func (r DeleteTarget) Build() (*xmlcmd.Command, error) {
	return deleteByID("delete_target", "target_id", r.TargetID, r.Ultimate)
}
