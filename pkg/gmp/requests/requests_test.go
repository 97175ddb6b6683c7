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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengvm/gvm-go/pkg/gmp/types"
	"github.com/opengvm/gvm-go/pkg/gvmerr"
)

func TestBuild(t *testing.T) {
	testcases := map[string]struct {
		in  Builder
		out string
	}{
		"authenticate": {
			in: Authenticate{Username: "admin", Password: "<secret>"},
			out: "<authenticate><credentials><username>admin</username>" +
				"<password>&lt;secret&gt;</password></credentials></authenticate>",
		},
		"get version": {
			in:  GetVersion{},
			out: "<get_version/>",
		},
		"help brief": {
			in:  Help{Format: types.HelpFormatXML, Brief: true},
			out: `<help format="xml" type="brief"/>`,
		},
		"create task": {
			in: CreateTask{
				Name: "scan", ConfigID: "c1", TargetID: "t1", ScannerID: "s1",
				TaskSettings: TaskSettings{
					Alterable:       Bool(true),
					HostsOrdering:   types.HostsOrderingReverse,
					AlertIDs:        []string{"a1", "a2"},
					ScheduleID:      "sch",
					SchedulePeriods: Int(3),
					Observers:       []string{"alice", "bob"},
					Preferences:     map[string]string{"max_hosts": "5", "auto_delete": "keep"},
				},
			},
			out: `<create_task><name>scan</name><usage_type>scan</usage_type>` +
				`<config id="c1"/><target id="t1"/><scanner id="s1"/>` +
				`<alterable>1</alterable><hosts_ordering>reverse</hosts_ordering>` +
				`<alert id="a1"/><alert id="a2"/><schedule id="sch"/><schedule_periods>3</schedule_periods>` +
				`<observers>alice,bob</observers><preferences>` +
				`<preference><scanner_name>auto_delete</scanner_name><value>keep</value></preference>` +
				`<preference><scanner_name>max_hosts</scanner_name><value>5</value></preference>` +
				`</preferences></create_task>`,
		},
		"get tasks": {
			in:  GetTasks{Filter: Filter{Filter: "name=foo", FilterID: "f1"}, Details: true},
			out: `<get_tasks usage_type="scan" filter="name=foo" filt_id="f1" details="1"/>`,
		},
		"get task": {
			in:  GetTask{TaskID: "t1"},
			out: `<get_tasks task_id="t1" usage_type="scan"/>`,
		},
		"modify task keeps alerts": {
			in:  ModifyTask{TaskID: "t1", Name: "renamed"},
			out: `<modify_task task_id="t1"><name>renamed</name></modify_task>`,
		},
		"clone task": {
			in:  CloneTask{TaskID: "t1"},
			out: "<create_task><copy>t1</copy></create_task>",
		},
		"delete task": {
			in:  DeleteTask{TaskID: "t1", Ultimate: true},
			out: `<delete_task task_id="t1" ultimate="1"/>`,
		},
		"start task": {
			in:  StartTask{TaskID: "t1"},
			out: `<start_task task_id="t1"/>`,
		},
		"create audit": {
			in: CreateAudit{Name: "audit", PolicyID: "p1", TargetID: "t1", ScannerID: "s1"},
			out: `<create_task><name>audit</name><usage_type>audit</usage_type>` +
				`<config id="p1"/><target id="t1"/><scanner id="s1"/></create_task>`,
		},
		"modify audit clears alerts": {
			in: ModifyAudit{
				AuditID:      "a1",
				TaskSettings: TaskSettings{AlertIDs: []string{}},
			},
			out: `<modify_task task_id="a1"><alert id="0"/></modify_task>`,
		},
		"modify audit sets alerts": {
			in: ModifyAudit{
				AuditID:      "a1",
				PolicyID:     "p2",
				TaskSettings: TaskSettings{AlertIDs: []string{"x"}},
			},
			out: `<modify_task task_id="a1"><config id="p2"/><alert id="x"/></modify_task>`,
		},
		"delete audit": {
			in:  DeleteAudit{AuditID: "a1"},
			out: `<delete_task task_id="a1" ultimate="0"/>`,
		},
		"create target with hosts": {
			in: CreateTarget{
				Name:         "net",
				Hosts:        []string{"10.0.0.1", "10.0.0.2"},
				ExcludeHosts: []string{"10.0.0.3"},
				TargetCredentials: TargetCredentials{
					SSHCredentialID:   "ssh",
					SSHCredentialPort: Int(2222),
				},
				TargetOptions: TargetOptions{
					AliveTest:         types.AliveTestConsiderAlive,
					ReverseLookupOnly: Bool(false),
					PortListID:        "pl",
				},
			},
			out: `<create_target><name>net</name><hosts>10.0.0.1,10.0.0.2</hosts>` +
				`<exclude_hosts>10.0.0.3</exclude_hosts>` +
				`<ssh_credential id="ssh"><port>2222</port></ssh_credential>` +
				`<alive_tests>Consider Alive</alive_tests><reverse_lookup_only>0</reverse_lookup_only>` +
				`<port_list id="pl"/></create_target>`,
		},
		"create target with asset filter": {
			in:  CreateTarget{Name: "net", AssetHostsFilter: "severity>5", Hosts: []string{"ignored"}},
			out: `<create_target><name>net</name><asset_hosts filter="severity&gt;5"/></create_target>`,
		},
		"modify target resets exclusions": {
			in: ModifyTarget{TargetID: "t1", Hosts: []string{"a"}},
			out: `<modify_target target_id="t1"><hosts>a</hosts>` +
				`<exclude_hosts/></modify_target>`,
		},
		"create credential usk": {
			in: CreateCredential{
				Name: "key", Type: types.CredentialTypeUsernameSSHKey,
				Login: "root", PrivateKey: "PK", KeyPhrase: "pp",
			},
			out: `<create_credential><name>key</name><type>usk</type><login>root</login>` +
				`<key><phrase>pp</phrase><private>PK</private></key></create_credential>`,
		},
		"create credential snmp": {
			in: CreateCredential{
				Name: "snmp", Type: types.CredentialTypeSNMP, AuthAlgorithm: types.SnmpAuthAlgorithmSHA1,
				Community: "public", PrivacyAlgorithm: types.SnmpPrivacyAlgorithmAES, PrivacyPassword: "pw",
			},
			out: `<create_credential><name>snmp</name><type>snmp</type>` +
				`<auth_algorithm>sha1</auth_algorithm><community>public</community>` +
				`<privacy><algorithm>aes</algorithm><password>pw</password></privacy></create_credential>`,
		},
		"get credential": {
			in:  GetCredential{CredentialID: "c1", Format: types.CredentialFormatPEM},
			out: `<get_credentials credential_id="c1" format="pem"/>`,
		},
		"create alert": {
			in: CreateAlert{
				Name:          "mail",
				Condition:     types.AlertConditionSeverityAtLeast,
				Event:         types.AlertEventTaskRunStatusChanged,
				Method:        types.AlertMethodEmail,
				ConditionData: map[string]string{"severity": "5.0"},
				EventData:     map[string]string{"status": "Done"},
				MethodData:    map[string]string{"to_address": "a@b.c", "from_address": "x@y.z"},
			},
			out: `<create_alert><name>mail</name>` +
				`<condition>Severity at least<data>5.0<name>severity</name></data></condition>` +
				`<event>Task run status changed<data>Done<name>status</name></data></event>` +
				`<method>Email<data>x@y.z<name>from_address</name></data>` +
				`<data>a@b.c<name>to_address</name></data></method></create_alert>`,
		},
		"trigger alert": {
			in:  TriggerAlert{AlertID: "a1", ReportID: "r1", ReportFormatID: "f1"},
			out: `<get_reports report_id="r1" alert_id="a1" format_id="f1"/>`,
		},
		"get reports": {
			in:  GetReports{Filter: Filter{Filter: "rows=5"}, NoteDetails: true},
			out: `<get_reports report_filter="rows=5" note_details="1"/>`,
		},
		"get report default details": {
			in:  GetReport{ReportID: "r1"},
			out: `<get_reports report_id="r1" details="1"/>`,
		},
		"get report without details": {
			in:  GetReport{ReportID: "r1", Details: Bool(false)},
			out: `<get_reports report_id="r1" details="0"/>`,
		},
		"import report": {
			in: ImportReport{Report: `<report id="x"><results/></report>`, TaskID: "t1", InAssets: Bool(true)},
			out: `<create_report><task id="t1"/><in_assets>1</in_assets>` +
				`<report id="x"><results/></report></create_report>`,
		},
		"create tag with ids": {
			in: CreateTag{
				Name: "env", Value: "prod",
				TagResources: TagResources{ResourceType: types.EntityTypeTarget, ResourceIDs: []string{"t1", "t2"}},
			},
			out: `<create_tag><name>env</name><resources><resource id="t1"/><resource id="t2"/>` +
				`<type>target</type></resources><value>prod</value></create_tag>`,
		},
		"modify tag resources": {
			in: ModifyTag{
				TagID: "g1", ResourceAction: TagResourceRemove,
				TagResources: TagResources{ResourceType: types.EntityTypeTask, ResourceFilter: "name=x"},
			},
			out: `<modify_tag tag_id="g1"><resources action="remove" filter="name=x">` +
				`<type>task</type></resources></modify_tag>`,
		},
		"create ticket": {
			in: CreateTicket{ResultID: "r1", AssignedToUserID: "u1", Note: "fix it"},
			out: `<create_ticket><result id="r1"/><assigned_to><user id="u1"/></assigned_to>` +
				`<open_note>fix it</open_note></create_ticket>`,
		},
		"modify ticket status": {
			in: ModifyTicket{TicketID: "k1", Status: types.TicketStatusFixed, Note: "done"},
			out: `<modify_ticket ticket_id="k1"><status>Fixed</status>` +
				`<fixed_note>done</fixed_note></modify_ticket>`,
		},
		"create port list": {
			in:  CreatePortList{Name: "web", PortRange: "T:80,T:443"},
			out: `<create_port_list><name>web</name><port_range>T:80,T:443</port_range></create_port_list>`,
		},
		"create scanner": {
			in: CreateScanner{
				Name: "remote", Host: "10.0.0.9", Port: "9391",
				Type: types.ScannerTypeOpenVAS, CredentialID: "c1",
			},
			out: `<create_scanner><name>remote</name><host>10.0.0.9</host><port>9391</port>` +
				`<type>2</type><credential id="c1"/></create_scanner>`,
		},
		"verify scanner": {
			in:  VerifyScanner{ScannerID: "s1"},
			out: `<verify_scanner scanner_id="s1"/>`,
		},
		"create permission": {
			in: CreatePermission{
				Name: "get_tasks", SubjectID: "u1", SubjectType: types.PermissionSubjectTypeUser,
				ResourceID: "t1", ResourceType: types.EntityTypeTask,
			},
			out: `<create_permission><name>get_tasks</name><subject id="u1"><type>user</type></subject>` +
				`<resource id="t1"><type>task</type></resource></create_permission>`,
		},
		"get aggregates for audits": {
			in: GetAggregates{
				ResourceType: types.EntityTypeAudit,
				SortCriteria: []SortCriterion{{
					Field: "name", Stat: types.AggregateStatisticCount, Order: types.SortOrderDescending,
				}},
				DataColumns: []string{"severity"},
				GroupColumn: "status",
				FirstGroup:  Int(0),
			},
			out: `<get_aggregates usage_type="audit" type="task" first_group="0" group_column="status">` +
				`<sort field="name" stat="count" order="descending"/>` +
				`<data_column>severity</data_column></get_aggregates>`,
		},
		"get info": {
			in:  GetInfo{InfoID: "CVE-2024-1", InfoType: types.InfoTypeCVE},
			out: `<get_info type="CVE" info_id="CVE-2024-1" details="1"/>`,
		},
		"get feed": {
			in:  GetFeed{FeedType: types.FeedTypeSCAP},
			out: `<get_feeds type="SCAP"/>`,
		},
		"get system reports": {
			in:  GetSystemReports{Name: "proc", Duration: Int(3600), Brief: true},
			out: `<get_system_reports name="proc" duration="3600" brief="1"/>`,
		},
		"create user": {
			in: CreateUser{
				Name: "bob", Password: "pw", Hosts: []string{"10.0.0.0/24"}, HostsAllow: true,
				RoleIDs: []string{"r1"},
			},
			out: `<create_user><name>bob</name><password>pw</password>` +
				`<hosts allow="1">10.0.0.0/24</hosts><role id="r1"/></create_user>`,
		},
		"delete user by name": {
			in:  DeleteUser{Name: "bob", InheritorName: "alice"},
			out: `<delete_user name="bob" inheritor_name="alice"/>`,
		},
		"modify user setting": {
			in:  ModifyUserSetting{Name: "Timezone", Value: new(string)},
			out: `<modify_setting><name>Timezone</name><value/></modify_setting>`,
		},
		"restore": {
			in:  RestoreFromTrashcan{EntityID: "e1"},
			out: `<restore id="e1"/>`,
		},
		"get resource names": {
			in:  GetResourceNames{ResourceType: types.ResourceTypeTLSCertificate, Filter: Filter{Filter: "rows=-1"}},
			out: `<get_resource_names type="tls_certificate" filter="rows=-1"/>`,
		},
		"get resource name": {
			in:  GetResourceName{ResourceID: "x", ResourceType: types.ResourceTypeCVE},
			out: `<get_resource_names resource_id="x" type="cve"/>`,
		},
	}

	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cmd, err := tc.in.Build()
			require.NoError(t, err)

			assert.Equal(t, tc.out, cmd.String())
		})
	}
}

func TestModifyUserSettingEncodesValue(t *testing.T) {
	value := "Europe/Berlin"

	cmd, err := ModifyUserSetting{SettingID: "s1", Value: &value}.Build()
	require.NoError(t, err)

	assert.Equal(t, `<modify_setting setting_id="s1"><value>RXVyb3BlL0Jlcmxpbg==</value></modify_setting>`,
		cmd.String())
}

func TestBuildErrors(t *testing.T) {
	testcases := map[string]struct {
		in   Builder
		kind gvmerr.Kind
		msg  string
	}{
		"authenticate without password": {
			in:   Authenticate{Username: "admin"},
			kind: gvmerr.RequiredArgument,
			msg:  "authenticate requires a password argument",
		},
		"create task without target": {
			in:   CreateTask{Name: "n", ConfigID: "c", ScannerID: "s"},
			kind: gvmerr.RequiredArgument,
			msg:  "create_task requires a target_id argument",
		},
		"create audit without policy": {
			in:   CreateAudit{Name: "n", TargetID: "t", ScannerID: "s"},
			kind: gvmerr.RequiredArgument,
			msg:  "create_audit requires a policy_id argument",
		},
		"bad hosts ordering": {
			in: CreateTask{
				Name: "n", ConfigID: "c", TargetID: "t", ScannerID: "s",
				TaskSettings: TaskSettings{HostsOrdering: "sideways"},
			},
			kind: gvmerr.InvalidArgumentType,
		},
		"negative schedule periods": {
			in:   ModifyTask{TaskID: "t", TaskSettings: TaskSettings{SchedulePeriods: Int(-1)}},
			kind: gvmerr.InvalidArgument,
			msg:  "schedule_periods must be an integer greater or equal than 0",
		},
		"target without hosts": {
			in:   CreateTarget{Name: "n"},
			kind: gvmerr.RequiredArgument,
		},
		"credential without type": {
			in:   CreateCredential{Name: "n"},
			kind: gvmerr.RequiredArgument,
			msg:  "create_credential requires a credential_type argument",
		},
		"cc credential without certificate": {
			in:   CreateCredential{Name: "n", Type: types.CredentialTypeClientCertificate},
			kind: gvmerr.RequiredArgument,
			msg:  "create_credential requires a certificate argument",
		},
		"snmp credential without algorithm": {
			in:   CreateCredential{Name: "n", Type: types.CredentialTypeSNMP},
			kind: gvmerr.RequiredArgument,
			msg:  "create_credential requires a auth_algorithm argument",
		},
		"secinfo alert with bad condition": {
			in: CreateAlert{
				Name:      "n",
				Condition: types.AlertConditionSeverityAtLeast,
				Event:     types.AlertEventNewSecInfoArrived,
				Method:    types.AlertMethodEmail,
			},
			kind: gvmerr.InvalidArgument,
		},
		"ticket alert with bad method": {
			in: CreateAlert{
				Name:      "n",
				Condition: types.AlertConditionAlways,
				Event:     types.AlertEventTicketReceived,
				Method:    types.AlertMethodSCP,
			},
			kind: gvmerr.InvalidArgument,
		},
		"unknown alert method": {
			in: CreateAlert{
				Name:      "n",
				Condition: types.AlertConditionAlways,
				Event:     types.AlertEventTaskRunStatusChanged,
				Method:    "Pigeon",
			},
			kind: gvmerr.InvalidArgumentType,
		},
		"invalid report xml": {
			in:   ImportReport{Report: "<report>", TaskID: "t"},
			kind: gvmerr.InvalidArgument,
		},
		"tag with filter and ids": {
			in: CreateTag{Name: "n", TagResources: TagResources{
				ResourceType: types.EntityTypeTask, ResourceFilter: "x", ResourceIDs: []string{"y"},
			}},
			kind: gvmerr.InvalidArgument,
			msg:  "create_tag accepts either resource_filter or resource_ids argument",
		},
		"modify tag action without type": {
			in:   ModifyTag{TagID: "g", ResourceAction: TagResourceAdd},
			kind: gvmerr.RequiredArgument,
			msg:  "modify_tag requires a resource_type argument",
		},
		"ticket status without note": {
			in:   ModifyTicket{TicketID: "k", Status: types.TicketStatusClosed},
			kind: gvmerr.RequiredArgument,
			msg:  "modify_ticket requires a note argument",
		},
		"ticket note without status": {
			in:   ModifyTicket{TicketID: "k", Note: "n"},
			kind: gvmerr.RequiredArgument,
			msg:  "modify_ticket requires a status argument",
		},
		"permission resource without type": {
			in:   CreatePermission{Name: "n", SubjectID: "s", SubjectType: types.PermissionSubjectTypeRole, ResourceID: "r"},
			kind: gvmerr.RequiredArgument,
			msg:  "create_permission requires a resource_type argument",
		},
		"subgroup without group": {
			in:   GetAggregates{ResourceType: types.EntityTypeResult, SubgroupColumn: "x"},
			kind: gvmerr.InvalidArgument,
		},
		"info without type": {
			in:   GetInfo{InfoID: "x"},
			kind: gvmerr.RequiredArgument,
			msg:  "get_info requires a info_type argument",
		},
		"delete user without selector": {
			in:   DeleteUser{},
			kind: gvmerr.RequiredArgument,
		},
		"setting without value": {
			in:   ModifyUserSetting{SettingID: "s"},
			kind: gvmerr.RequiredArgument,
			msg:  "modify_user_setting requires a value argument",
		},
		"resource names without type": {
			in:   GetResourceNames{},
			kind: gvmerr.RequiredArgument,
		},
		"get report without id": {
			in:   GetReport{},
			kind: gvmerr.RequiredArgument,
			msg:  "get_report requires a report_id argument",
		},
	}

	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cmd, err := tc.in.Build()
			require.Error(t, err)
			assert.Nil(t, cmd)

			assert.Equal(t, tc.kind, gvmerr.KindOf(err))

			if tc.msg != "" {
				assert.EqualError(t, err, tc.msg)
			}
		})
	}
}
