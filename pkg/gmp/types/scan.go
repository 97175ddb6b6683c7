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

// AliveTest selects how hosts of a target are probed before a scan.
type AliveTest string

const (
	AliveTestScanConfigDefault           AliveTest = "Scan Config Default"
	AliveTestICMPPing                    AliveTest = "ICMP Ping"
	AliveTestTCPAckServicePing           AliveTest = "TCP-ACK Service Ping"
	AliveTestTCPSynServicePing           AliveTest = "TCP-SYN Service Ping"
	AliveTestARPPing                     AliveTest = "ARP Ping"
	AliveTestICMPAndTCPAckServicePing    AliveTest = "ICMP & TCP-ACK Service Ping"
	AliveTestICMPAndARPPing              AliveTest = "ICMP & ARP Ping"
	AliveTestTCPAckServiceAndARPPing     AliveTest = "TCP-ACK Service & ARP Ping"
	AliveTestICMPTCPAckServiceAndARPPing AliveTest = "ICMP, TCP-ACK Service & ARP Ping"
	AliveTestConsiderAlive               AliveTest = "Consider Alive"
)

var aliveTests = newEnum("alive_test",
	AliveTestScanConfigDefault,
	AliveTestICMPPing,
	AliveTestTCPAckServicePing,
	AliveTestTCPSynServicePing,
	AliveTestARPPing,
	AliveTestICMPAndTCPAckServicePing,
	AliveTestICMPAndARPPing,
	AliveTestTCPAckServiceAndARPPing,
	AliveTestICMPTCPAckServiceAndARPPing,
	AliveTestConsiderAlive,
).
	alias("ICMP_AND_TCP_ACK_SERVICE_PING", AliveTestICMPAndTCPAckServicePing).
	alias("ICMP_AND_ARP_PING", AliveTestICMPAndARPPing).
	alias("TCP_ACK_SERVICE_AND_ARP_PING", AliveTestTCPAckServiceAndARPPing).
	alias("ICMP_TCP_ACK_SERVICE_AND_ARP_PING", AliveTestICMPTCPAckServiceAndARPPing)

func ParseAliveTest(s string) (AliveTest, error) {
	return aliveTests.parse("ParseAliveTest", s)
}

func (a AliveTest) Valid() bool {
	return aliveTests.contains(a)
}

// HostsOrdering is the order in which the hosts of a task are scanned.
type HostsOrdering string

const (
	HostsOrderingSequential HostsOrdering = "sequential"
	HostsOrderingRandom     HostsOrdering = "random"
	HostsOrderingReverse    HostsOrdering = "reverse"
)

var hostsOrderings = newEnum("hosts_ordering",
	HostsOrderingSequential,
	HostsOrderingRandom,
	HostsOrderingReverse,
)

func ParseHostsOrdering(s string) (HostsOrdering, error) {
	return hostsOrderings.parse("ParseHostsOrdering", s)
}

func (o HostsOrdering) Valid() bool {
	return hostsOrderings.contains(o)
}

// ScannerType identifies the protocol spoken by a scanner.
type ScannerType string

const (
	ScannerTypeOpenVAS         ScannerType = "2"
	ScannerTypeCVE             ScannerType = "3"
	ScannerTypeGreenboneSensor ScannerType = "5"
)

var scannerTypes = newEnum("scanner_type",
	ScannerTypeOpenVAS,
	ScannerTypeCVE,
	ScannerTypeGreenboneSensor,
).
	alias("openvas", ScannerTypeOpenVAS).
	alias("openvas_scanner", ScannerTypeOpenVAS).
	alias("openvas_scanner_type", ScannerTypeOpenVAS).
	alias("cve", ScannerTypeCVE).
	alias("cve_scanner", ScannerTypeCVE).
	alias("cve_scanner_type", ScannerTypeCVE).
	alias("greenbone", ScannerTypeGreenboneSensor).
	alias("greenbone_sensor", ScannerTypeGreenboneSensor).
	alias("greenbone_sensor_scanner", ScannerTypeGreenboneSensor).
	alias("greenbone_sensor_scanner_type", ScannerTypeGreenboneSensor)

func ParseScannerType(s string) (ScannerType, error) {
	return scannerTypes.parse("ParseScannerType", s)
}

func (s ScannerType) Valid() bool {
	return scannerTypes.contains(s)
}

// SeverityLevel is a named severity band.
type SeverityLevel string

const (
	SeverityLevelHigh   SeverityLevel = "High"
	SeverityLevelMedium SeverityLevel = "Medium"
	SeverityLevelLow    SeverityLevel = "Low"
	SeverityLevelLog    SeverityLevel = "Log"
	SeverityLevelAlarm  SeverityLevel = "Alarm"
)

var severityLevels = newEnum("severity_level",
	SeverityLevelHigh,
	SeverityLevelMedium,
	SeverityLevelLow,
	SeverityLevelLog,
	SeverityLevelAlarm,
)

func ParseSeverityLevel(s string) (SeverityLevel, error) {
	return severityLevels.parse("ParseSeverityLevel", s)
}

func (l SeverityLevel) Valid() bool {
	return severityLevels.contains(l)
}
