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

// AggregateStatistic is a statistic computed by get_aggregates.
type AggregateStatistic string

const (
	AggregateStatisticCount  AggregateStatistic = "count"
	AggregateStatisticCCount AggregateStatistic = "c_count"
	AggregateStatisticCSum   AggregateStatistic = "c_sum"
	AggregateStatisticMax    AggregateStatistic = "max"
	AggregateStatisticMean   AggregateStatistic = "mean"
	AggregateStatisticMin    AggregateStatistic = "min"
	AggregateStatisticSum    AggregateStatistic = "sum"
	AggregateStatisticText   AggregateStatistic = "text"
	AggregateStatisticValue  AggregateStatistic = "value"
)

var aggregateStatistics = newEnum("stat",
	AggregateStatisticCount,
	AggregateStatisticCCount,
	AggregateStatisticCSum,
	AggregateStatisticMax,
	AggregateStatisticMean,
	AggregateStatisticMin,
	AggregateStatisticSum,
	AggregateStatisticText,
	AggregateStatisticValue,
)

func ParseAggregateStatistic(s string) (AggregateStatistic, error) {
	return aggregateStatistics.parse("ParseAggregateStatistic", s)
}

func (s AggregateStatistic) Valid() bool {
	return aggregateStatistics.contains(s)
}

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortOrderAscending  SortOrder = "ascending"
	SortOrderDescending SortOrder = "descending"
)

var sortOrders = newEnum("sort_order",
	SortOrderAscending,
	SortOrderDescending,
)

func ParseSortOrder(s string) (SortOrder, error) {
	return sortOrders.parse("ParseSortOrder", s)
}

func (o SortOrder) Valid() bool {
	return sortOrders.contains(o)
}

// FeedType names one of the synchronised feeds.
type FeedType string

const (
	FeedTypeNVT      FeedType = "NVT"
	FeedTypeCERT     FeedType = "CERT"
	FeedTypeSCAP     FeedType = "SCAP"
	FeedTypeGVMDData FeedType = "GVMD_DATA"
)

var feedTypes = newEnum("feed_type",
	FeedTypeNVT,
	FeedTypeCERT,
	FeedTypeSCAP,
	FeedTypeGVMDData,
)

func ParseFeedType(s string) (FeedType, error) {
	return feedTypes.parse("ParseFeedType", s)
}

func (f FeedType) Valid() bool {
	return feedTypes.contains(f)
}

// HelpFormat is the output format of the help command.
type HelpFormat string

const (
	HelpFormatHTML HelpFormat = "html"
	HelpFormatRNC  HelpFormat = "rnc"
	HelpFormatText HelpFormat = "text"
	HelpFormatXML  HelpFormat = "xml"
)

var helpFormats = newEnum("help_format",
	HelpFormatHTML,
	HelpFormatRNC,
	HelpFormatText,
	HelpFormatXML,
)

func ParseHelpFormat(s string) (HelpFormat, error) {
	return helpFormats.parse("ParseHelpFormat", s)
}

func (f HelpFormat) Valid() bool {
	return helpFormats.contains(f)
}

// InfoType is a SecInfo category.
type InfoType string

const (
	InfoTypeCertBundAdv InfoType = "CERT_BUND_ADV"
	InfoTypeCPE         InfoType = "CPE"
	InfoTypeCVE         InfoType = "CVE"
	InfoTypeDFNCertAdv  InfoType = "DFN_CERT_ADV"
	InfoTypeNVT         InfoType = "NVT"
)

var infoTypes = newEnum("info_type",
	InfoTypeCertBundAdv,
	InfoTypeCPE,
	InfoTypeCVE,
	InfoTypeDFNCertAdv,
	InfoTypeNVT,
)

func ParseInfoType(s string) (InfoType, error) {
	return infoTypes.parse("ParseInfoType", s)
}

func (t InfoType) Valid() bool {
	return infoTypes.contains(t)
}

// PermissionSubjectType is who a permission is granted to.
type PermissionSubjectType string

const (
	PermissionSubjectTypeUser  PermissionSubjectType = "user"
	PermissionSubjectTypeGroup PermissionSubjectType = "group"
	PermissionSubjectTypeRole  PermissionSubjectType = "role"
)

var permissionSubjectTypes = newEnum("subject_type",
	PermissionSubjectTypeUser,
	PermissionSubjectTypeGroup,
	PermissionSubjectTypeRole,
)

func ParsePermissionSubjectType(s string) (PermissionSubjectType, error) {
	return permissionSubjectTypes.parse("ParsePermissionSubjectType", s)
}

func (t PermissionSubjectType) Valid() bool {
	return permissionSubjectTypes.contains(t)
}

// TicketStatus is the state of a remediation ticket.
type TicketStatus string

const (
	TicketStatusOpen   TicketStatus = "Open"
	TicketStatusFixed  TicketStatus = "Fixed"
	TicketStatusClosed TicketStatus = "Closed"
)

var ticketStatuses = newEnum("status",
	TicketStatusOpen,
	TicketStatusFixed,
	TicketStatusClosed,
)

func ParseTicketStatus(s string) (TicketStatus, error) {
	return ticketStatuses.parse("ParseTicketStatus", s)
}

func (s TicketStatus) Valid() bool {
	return ticketStatuses.contains(s)
}

// UserAuthType is the source of truth for a user password.
type UserAuthType string

const (
	UserAuthTypeFile          UserAuthType = "file"
	UserAuthTypeLDAPConnect   UserAuthType = "ldap_connect"
	UserAuthTypeRadiusConnect UserAuthType = "radius_connect"
)

var userAuthTypes = newEnum("auth_type",
	UserAuthTypeFile,
	UserAuthTypeLDAPConnect,
	UserAuthTypeRadiusConnect,
)

func ParseUserAuthType(s string) (UserAuthType, error) {
	return userAuthTypes.parse("ParseUserAuthType", s)
}

func (t UserAuthType) Valid() bool {
	return userAuthTypes.contains(t)
}
