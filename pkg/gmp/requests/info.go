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

type GetInfoList struct {
	InfoType types.InfoType
	Filter
	// Name selects a single entry by name, e.g. a CVE id.
	Name    string
	Details bool
}

func (r GetInfoList) Build() (*xmlcmd.Command, error) {
	if err := requireEnum("get_info_list", "info_type", r.InfoType); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New("get_info").SetAttribute("type", string(r.InfoType))
	r.apply(cmd)

	if r.Name != "" {
		cmd.SetAttribute("name", r.Name)
	}

	flag(cmd, "details", r.Details)

	return cmd, nil
}

type GetInfo struct {
	InfoID   string
	InfoType types.InfoType
}

func (r GetInfo) Build() (*xmlcmd.Command, error) {
	const function = "get_info"

	if err := Require(function, "info_id", r.InfoID); err != nil {
		return nil, err
	}

	if err := requireEnum(function, "info_type", r.InfoType); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New(function)
	cmd.SetAttribute("type", string(r.InfoType))
	cmd.SetAttribute("info_id", r.InfoID)
	cmd.SetAttribute("details", "1")

	return cmd, nil
}

type GetFeeds struct{}

func (GetFeeds) Build() (*xmlcmd.Command, error) {
	return xmlcmd.New("get_feeds"), nil
}

type GetFeed struct {
	FeedType types.FeedType
}

func (r GetFeed) Build() (*xmlcmd.Command, error) {
	if err := requireEnum("get_feed", "feed_type", r.FeedType); err != nil {
		return nil, err
	}

	return xmlcmd.New("get_feeds").SetAttribute("type", string(r.FeedType)), nil
}

// GetSystemReports fetches performance graphs of the manager or of a
// remote sensor.
type GetSystemReports struct {
	Name string
	// Duration is the time span in seconds.
	Duration  *int
	StartTime string
	EndTime   string
	Brief     bool
	SlaveID   string
}

func (r GetSystemReports) Build() (*xmlcmd.Command, error) {
	if err := nonNegative("get_system_reports", "duration", r.Duration); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New("get_system_reports")

	if r.Name != "" {
		cmd.SetAttribute("name", r.Name)
	}

	if r.Duration != nil {
		cmd.SetAttribute("duration", itoa(*r.Duration))
	}

	if r.StartTime != "" {
		cmd.SetAttribute("start_time", r.StartTime)
	}

	if r.EndTime != "" {
		cmd.SetAttribute("end_time", r.EndTime)
	}

	flag(cmd, "brief", r.Brief)

	if r.SlaveID != "" {
		cmd.SetAttribute("slave_id", r.SlaveID)
	}

	return cmd, nil
}
