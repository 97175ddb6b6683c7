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

package types

// AlertCondition is the condition that must hold for an alert to fire.
type AlertCondition string

const (
	AlertConditionAlways             AlertCondition = "Always"
	AlertConditionFilterCountAtLeast AlertCondition = "Filter count at least"
	AlertConditionFilterCountChanged AlertCondition = "Filter count changed"
	AlertConditionSeverityAtLeast    AlertCondition = "Severity at least"
	AlertConditionSeverityChanged    AlertCondition = "Severity changed"
)

var alertConditions = newEnum("condition",
	AlertConditionAlways,
	AlertConditionFilterCountAtLeast,
	AlertConditionFilterCountChanged,
	AlertConditionSeverityAtLeast,
	AlertConditionSeverityChanged,
)

func ParseAlertCondition(s string) (AlertCondition, error) {
	return alertConditions.parse("ParseAlertCondition", s)
}

func (a AlertCondition) Valid() bool {
	return alertConditions.contains(a)
}

// AlertEvent is the event an alert listens for.
type AlertEvent string

const (
	AlertEventTaskRunStatusChanged  AlertEvent = "Task run status changed"
	AlertEventUpdatedSecInfoArrived AlertEvent = "Updated SecInfo arrived"
	AlertEventNewSecInfoArrived     AlertEvent = "New SecInfo arrived"
	AlertEventTicketReceived        AlertEvent = "Ticket received"
	AlertEventAssignedTicketChanged AlertEvent = "Assigned ticket changed"
	AlertEventOwnedTicketChanged    AlertEvent = "Owned ticket changed"
)

var alertEvents = newEnum("event",
	AlertEventTaskRunStatusChanged,
	AlertEventUpdatedSecInfoArrived,
	AlertEventNewSecInfoArrived,
	AlertEventTicketReceived,
	AlertEventAssignedTicketChanged,
	AlertEventOwnedTicketChanged,
)

func ParseAlertEvent(s string) (AlertEvent, error) {
	return alertEvents.parse("ParseAlertEvent", s)
}

func (a AlertEvent) Valid() bool {
	return alertEvents.contains(a)
}

// AlertMethod is how an alert delivers its notification.
type AlertMethod string

const (
	AlertMethodSCP                 AlertMethod = "SCP"
	AlertMethodSend                AlertMethod = "Send"
	AlertMethodSMB                 AlertMethod = "SMB"
	AlertMethodSNMP                AlertMethod = "SNMP"
	AlertMethodSyslog              AlertMethod = "Syslog"
	AlertMethodEmail               AlertMethod = "Email"
	AlertMethodStartTask           AlertMethod = "Start Task"
	AlertMethodHTTPGet             AlertMethod = "HTTP Get"
	AlertMethodSourcefireConnector AlertMethod = "Sourcefire Connector"
	AlertMethodVeriniceConnector   AlertMethod = "verinice Connector"
	AlertMethodTippingPointSMS     AlertMethod = "TippingPoint SMS"
	AlertMethodAlembaVfire         AlertMethod = "Alemba vFire"
)

var alertMethods = newEnum("method",
	AlertMethodSCP,
	AlertMethodSend,
	AlertMethodSMB,
	AlertMethodSNMP,
	AlertMethodSyslog,
	AlertMethodEmail,
	AlertMethodStartTask,
	AlertMethodHTTPGet,
	AlertMethodSourcefireConnector,
	AlertMethodVeriniceConnector,
	AlertMethodTippingPointSMS,
	AlertMethodAlembaVfire,
)

func ParseAlertMethod(s string) (AlertMethod, error) {
	return alertMethods.parse("ParseAlertMethod", s)
}

func (a AlertMethod) Valid() bool {
	return alertMethods.contains(a)
}
