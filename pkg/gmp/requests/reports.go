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
	"github.com/opengvm/gvm-go/pkg/gvmerr"
	"github.com/opengvm/gvm-go/pkg/xmlcmd"
)

type GetReports struct {
	// Filter applies to the reports. The result filter of each report is
	// taken from the filter term.
	Filter
	NoteDetails      bool
	OverrideDetails  bool
	IgnorePagination bool
	Details          bool
}

func (r GetReports) Build() (*xmlcmd.Command, error) {
	cmd := xmlcmd.New("get_reports")

	if r.Filter.Filter != "" {
		cmd.SetAttribute("report_filter", r.Filter.Filter)
	}

	if r.FilterID != "" {
		cmd.SetAttribute("report_filt_id", r.FilterID)
	}

	flag(cmd, "note_details", r.NoteDetails)
	flag(cmd, "override_details", r.OverrideDetails)
	flag(cmd, "details", r.Details)
	flag(cmd, "ignore_pagination", r.IgnorePagination)

	return cmd, nil
}

type GetReport struct {
	ReportID string
	Filter
	DeltaReportID    string
	ReportFormatID   string
	IgnorePagination bool
	// Details defaults to true.
	Details *bool
}

func (r GetReport) Build() (*xmlcmd.Command, error) {
	if err := Require("get_report", "report_id", r.ReportID); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New("get_reports").SetAttribute("report_id", r.ReportID)
	r.apply(cmd)

	if r.DeltaReportID != "" {
		cmd.SetAttribute("delta_report_id", r.DeltaReportID)
	}

	if r.ReportFormatID != "" {
		cmd.SetAttribute("format_id", r.ReportFormatID)
	}

	flag(cmd, "ignore_pagination", r.IgnorePagination)

	details := true
	if r.Details != nil {
		details = *r.Details
	}

	cmd.SetAttribute("details", boolString(details))

	return cmd, nil
}

type DeleteReport struct {
	ReportID string
}

func (r DeleteReport) Build() (*xmlcmd.Command, error) {
	return byID("delete_report", "report_id", r.ReportID)
}

// ImportReport uploads a report document into a container task.
type ImportReport struct {
	// Report is the serialised <report> element.
	Report   string
	TaskID   string
	InAssets *bool
}

func (r ImportReport) Build() (*xmlcmd.Command, error) {
	const function = "import_report"

	if err := RequireAll(function, "report", r.Report, "task_id", r.TaskID); err != nil {
		return nil, err
	}

	report, err := xmlcmd.ParseCommand(r.Report)
	if err != nil {
		return nil, &gvmerr.Error{
			Kind:     gvmerr.InvalidArgument,
			Function: function,
			Argument: "report",
			Msg:      "Invalid xml passed as report to import_report",
			Err:      err,
		}
	}

	cmd := xmlcmd.New("create_report")
	optRef(cmd, "task", r.TaskID)
	optBoolElement(cmd, "in_assets", r.InAssets)
	cmd.AppendCommand(report)

	return cmd, nil
}
