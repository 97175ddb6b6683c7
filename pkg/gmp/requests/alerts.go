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
	"fmt"
	"slices"

	"github.com/opengvm/gvm-go/pkg/gmp/types"
	"github.com/opengvm/gvm-go/pkg/gvmerr"
	"github.com/opengvm/gvm-go/pkg/xmlcmd"
)

var (
	taskRunConditions = []types.AlertCondition{
		types.AlertConditionAlways,
		types.AlertConditionFilterCountChanged,
		types.AlertConditionFilterCountAtLeast,
		types.AlertConditionSeverityAtLeast,
		types.AlertConditionSeverityChanged,
	}
	secInfoMethods = []types.AlertMethod{
		types.AlertMethodSCP,
		types.AlertMethodSend,
		types.AlertMethodSMB,
		types.AlertMethodSNMP,
		types.AlertMethodSyslog,
		types.AlertMethodEmail,
	}
	ticketMethods = []types.AlertMethod{
		types.AlertMethodEmail,
		types.AlertMethodStartTask,
		types.AlertMethodSyslog,
	}
)

// checkAlertEvent rejects condition and method combinations that gvmd does
// not support for event.
func checkAlertEvent(function string, event types.AlertEvent, condition types.AlertCondition,
	method types.AlertMethod,
) error {
	invalid := func(argument string, v any) error {
		return gvmerr.Invalid(function, argument,
			fmt.Sprintf("Invalid %s %q for event %q", argument, v, event))
	}

	switch event {
	case types.AlertEventTaskRunStatusChanged:
		if !slices.Contains(taskRunConditions, condition) {
			return invalid("condition", condition)
		}
	case types.AlertEventNewSecInfoArrived, types.AlertEventUpdatedSecInfoArrived:
		if condition != types.AlertConditionAlways {
			return invalid("condition", condition)
		}

		if !slices.Contains(secInfoMethods, method) {
			return invalid("method", method)
		}
	case types.AlertEventTicketReceived, types.AlertEventOwnedTicketChanged,
		types.AlertEventAssignedTicketChanged:
		if condition != types.AlertConditionAlways {
			return invalid("condition", condition)
		}

		if !slices.Contains(ticketMethods, method) {
			return invalid("method", method)
		}
	}

	return nil
}

// addData appends <data>value<name>key</name></data> per entry.
func addData(cmd *xmlcmd.Command, data map[string]string) {
	for _, k := range sortedKeys(data) {
		d := cmd.AddElement("data", data[k])
		d.AddElement("name", k)
	}
}

type CreateAlert struct {
	Name          string
	Condition     types.AlertCondition
	Event         types.AlertEvent
	Method        types.AlertMethod
	ConditionData map[string]string
	EventData     map[string]string
	MethodData    map[string]string
	FilterID      string
	Comment       string
}

func (r CreateAlert) Build() (*xmlcmd.Command, error) {
	const function = "create_alert"

	if err := Require(function, "name", r.Name); err != nil {
		return nil, err
	}

	if err := requireEnum(function, "condition", r.Condition); err != nil {
		return nil, err
	}

	if err := requireEnum(function, "event", r.Event); err != nil {
		return nil, err
	}

	if err := requireEnum(function, "method", r.Method); err != nil {
		return nil, err
	}

	if err := checkAlertEvent(function, r.Event, r.Condition, r.Method); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New(function)
	cmd.AddElement("name", r.Name)

	condition := cmd.AddElement("condition", string(r.Condition))
	addData(condition, r.ConditionData)

	event := cmd.AddElement("event", string(r.Event))
	addData(event, r.EventData)

	method := cmd.AddElement("method", string(r.Method))
	addData(method, r.MethodData)

	optRef(cmd, "filter", r.FilterID)
	optText(cmd, "comment", r.Comment)

	return cmd, nil
}

type GetAlerts struct {
	Filter
	Trash bool
	Tasks bool
}

func (r GetAlerts) Build() (*xmlcmd.Command, error) {
	cmd := xmlcmd.New("get_alerts")
	r.apply(cmd)
	flag(cmd, "trash", r.Trash)
	flag(cmd, "tasks", r.Tasks)

	return cmd, nil
}

type GetAlert struct {
	AlertID string
	Tasks   bool
}

func (r GetAlert) Build() (*xmlcmd.Command, error) {
	if err := Require("get_alert", "alert_id", r.AlertID); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New("get_alerts").SetAttribute("alert_id", r.AlertID)
	flag(cmd, "tasks", r.Tasks)

	return cmd, nil
}

type DeleteAlert struct {
	AlertID  string
	Ultimate bool
}

func (r DeleteAlert) Build() (*xmlcmd.Command, error) {
	return deleteByID("delete_alert", "alert_id", r.AlertID, r.Ultimate)
}

type TestAlert struct {
	AlertID string
}

func (r TestAlert) Build() (*xmlcmd.Command, error) {
	return byID("test_alert", "alert_id", r.AlertID)
}

// TriggerAlert runs an alert for an existing report.
type TriggerAlert struct {
	AlertID        string
	ReportID       string
	ReportFormatID string
	DeltaReportID  string
	Filter
}

func (r TriggerAlert) Build() (*xmlcmd.Command, error) {
	if err := RequireAll("trigger_alert", "alert_id", r.AlertID, "report_id", r.ReportID); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New("get_reports")
	cmd.SetAttribute("report_id", r.ReportID)
	cmd.SetAttribute("alert_id", r.AlertID)
	r.apply(cmd)

	if r.ReportFormatID != "" {
		cmd.SetAttribute("format_id", r.ReportFormatID)
	}

	if r.DeltaReportID != "" {
		cmd.SetAttribute("delta_report_id", r.DeltaReportID)
	}

	return cmd, nil
}
