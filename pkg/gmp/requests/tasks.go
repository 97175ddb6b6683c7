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

const (
	usageScan  = "scan"
	usageAudit = "audit"
)

// TaskSettings are the optional fields shared by task and audit commands.
type TaskSettings struct {
	Alterable       *bool
	HostsOrdering   types.HostsOrdering
	ScheduleID      string
	SchedulePeriods *int
	// AlertIDs attaches alerts. On modify, a non-nil empty slice removes
	// all alerts.
	AlertIDs []string
	// Observers are user names, group or role ids allowed to see the task.
	Observers []string
	// Preferences are scanner preferences keyed by name.
	Preferences map[string]string
}

func (s TaskSettings) check(function string) error {
	if err := checkEnum(function, "hosts_ordering", s.HostsOrdering); err != nil {
		return err
	}

	return nonNegative(function, "schedule_periods", s.SchedulePeriods)
}

func (s TaskSettings) addSchedule(cmd *xmlcmd.Command) {
	optRef(cmd, "schedule", s.ScheduleID)

	if s.SchedulePeriods != nil {
		cmd.AddElement("schedule_periods", itoa(*s.SchedulePeriods))
	}
}

func (s TaskSettings) addAlerts(cmd *xmlcmd.Command, modify bool) {
	if modify && s.AlertIDs != nil && len(s.AlertIDs) == 0 {
		cmd.AddElement("alert").SetAttribute("id", "0")
		return
	}

	for _, id := range s.AlertIDs {
		cmd.AddElement("alert").SetAttribute("id", id)
	}
}

func (s TaskSettings) addTail(cmd *xmlcmd.Command) {
	optList(cmd, "observers", s.Observers)

	if len(s.Preferences) == 0 {
		return
	}

	prefs := cmd.AddElement("preferences")

	for _, name := range sortedKeys(s.Preferences) {
		pref := prefs.AddElement("preference")
		pref.AddElement("scanner_name", name)
		pref.AddElement("value", s.Preferences[name])
	}
}

func createTask(function, usage, configArg, name, configID, targetID, scannerID, comment string,
	s TaskSettings,
) (*xmlcmd.Command, error) {
	err := RequireAll(function,
		"name", name,
		configArg, configID,
		"target_id", targetID,
		"scanner_id", scannerID,
	)
	if err != nil {
		return nil, err
	}

	if err := s.check(function); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New("create_task")
	cmd.AddElement("name", name)
	cmd.AddElement("usage_type", usage)
	optRef(cmd, "config", configID)
	optRef(cmd, "target", targetID)
	optRef(cmd, "scanner", scannerID)
	optText(cmd, "comment", comment)
	optBoolElement(cmd, "alterable", s.Alterable)

	if s.HostsOrdering != "" {
		cmd.AddElement("hosts_ordering", string(s.HostsOrdering))
	}

	s.addAlerts(cmd, false)
	s.addSchedule(cmd)
	s.addTail(cmd)

	return cmd, nil
}

func modifyTask(function, idArg, id, configID, name, targetID, scannerID, comment string,
	s TaskSettings,
) (*xmlcmd.Command, error) {
	if err := Require(function, idArg, id); err != nil {
		return nil, err
	}

	if err := s.check(function); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New("modify_task").SetAttribute("task_id", id)
	optText(cmd, "name", name)
	optText(cmd, "comment", comment)
	optRef(cmd, "config", configID)
	optRef(cmd, "target", targetID)
	optBoolElement(cmd, "alterable", s.Alterable)

	if s.HostsOrdering != "" {
		cmd.AddElement("hosts_ordering", string(s.HostsOrdering))
	}

	optRef(cmd, "scanner", scannerID)
	s.addSchedule(cmd)
	s.addAlerts(cmd, true)
	s.addTail(cmd)

	return cmd, nil
}

type CreateTask struct {
	Name      string
	ConfigID  string
	TargetID  string
	ScannerID string
	Comment   string
	TaskSettings
}

func (r CreateTask) Build() (*xmlcmd.Command, error) {
	return createTask("create_task", usageScan, "config_id",
		r.Name, r.ConfigID, r.TargetID, r.ScannerID, r.Comment, r.TaskSettings)
}

type ModifyTask struct {
	TaskID    string
	Name      string
	ConfigID  string
	TargetID  string
	ScannerID string
	Comment   string
	TaskSettings
}

func (r ModifyTask) Build() (*xmlcmd.Command, error) {
	return modifyTask("modify_task", "task_id", r.TaskID,
		r.ConfigID, r.Name, r.TargetID, r.ScannerID, r.Comment, r.TaskSettings)
}

type GetTasks struct {
	Filter
	Trash            bool
	Details          bool
	SchedulesOnly    bool
	IgnorePagination bool
}

func (r GetTasks) Build() (*xmlcmd.Command, error) {
	return getTasks(usageScan, r.Filter, r.Trash, r.Details, r.SchedulesOnly, r.IgnorePagination), nil
}

func getTasks(usage string, f Filter, trash, details, schedulesOnly, ignorePagination bool) *xmlcmd.Command {
	cmd := xmlcmd.New("get_tasks").SetAttribute("usage_type", usage)
	f.apply(cmd)
	flag(cmd, "trash", trash)
	flag(cmd, "details", details)
	flag(cmd, "schedules_only", schedulesOnly)
	flag(cmd, "ignore_pagination", ignorePagination)

	return cmd
}

type GetTask struct {
	TaskID string
}

func (r GetTask) Build() (*xmlcmd.Command, error) {
	return getTask("get_task", "task_id", r.TaskID, usageScan)
}

func getTask(function, argument, id, usage string) (*xmlcmd.Command, error) {
	if err := Require(function, argument, id); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New("get_tasks")
	cmd.SetAttribute("task_id", id)
	cmd.SetAttribute("usage_type", usage)

	return cmd, nil
}

type CloneTask struct {
	TaskID string
}

func (r CloneTask) Build() (*xmlcmd.Command, error) {
	return clone("clone_task", "create_task", "task_id", r.TaskID)
}

type DeleteTask struct {
	TaskID   string
	Ultimate bool
}

func (r DeleteTask) Build() (*xmlcmd.Command, error) {
	return deleteByID("delete_task", "task_id", r.TaskID, r.Ultimate)
}

type StartTask struct {
	TaskID string
}

func (r StartTask) Build() (*xmlcmd.Command, error) {
	return byID("start_task", "task_id", r.TaskID)
}

type StopTask struct {
	TaskID string
}

func (r StopTask) Build() (*xmlcmd.Command, error) {
	return byID("stop_task", "task_id", r.TaskID)
}

type ResumeTask struct {
	TaskID string
}

func (r ResumeTask) Build() (*xmlcmd.Command, error) {
	return byID("resume_task", "task_id", r.TaskID)
}
