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

// EntityType names a kind of resource managed by gvmd.
type EntityType string

const (
	EntityTypeAlert           EntityType = "alert"
	EntityTypeAudit           EntityType = "audit"
	EntityTypeCredential      EntityType = "credential"
	EntityTypeFilter          EntityType = "filter"
	EntityTypeGroup           EntityType = "group"
	EntityTypeHost            EntityType = "host"
	EntityTypeInfo            EntityType = "info"
	EntityTypeNote            EntityType = "note"
	EntityTypeOperatingSystem EntityType = "os"
	EntityTypeOverride        EntityType = "override"
	EntityTypePermission      EntityType = "permission"
	EntityTypePolicy          EntityType = "policy"
	EntityTypePortList        EntityType = "port_list"
	EntityTypeReport          EntityType = "report"
	EntityTypeReportConfig    EntityType = "report_config"
	EntityTypeReportFormat    EntityType = "report_format"
	EntityTypeResult          EntityType = "result"
	EntityTypeRole            EntityType = "role"
	EntityTypeScanConfig      EntityType = "config"
	EntityTypeScanner         EntityType = "scanner"
	EntityTypeSchedule        EntityType = "schedule"
	EntityTypeTag             EntityType = "tag"
	EntityTypeTarget          EntityType = "target"
	EntityTypeTask            EntityType = "task"
	EntityTypeTicket          EntityType = "ticket"
	EntityTypeTLSCertificate  EntityType = "tls_certificate"
	EntityTypeUser            EntityType = "user"
	EntityTypeVulnerability   EntityType = "vuln"
)

var entityTypes = newEnum("resource_type",
	EntityTypeAlert,
	EntityTypeAudit,
	EntityTypeCredential,
	EntityTypeFilter,
	EntityTypeGroup,
	EntityTypeHost,
	EntityTypeInfo,
	EntityTypeNote,
	EntityTypeOperatingSystem,
	EntityTypeOverride,
	EntityTypePermission,
	EntityTypePolicy,
	EntityTypePortList,
	EntityTypeReport,
	EntityTypeReportConfig,
	EntityTypeReportFormat,
	EntityTypeResult,
	EntityTypeRole,
	EntityTypeScanConfig,
	EntityTypeScanner,
	EntityTypeSchedule,
	EntityTypeTag,
	EntityTypeTarget,
	EntityTypeTask,
	EntityTypeTicket,
	EntityTypeTLSCertificate,
	EntityTypeUser,
	EntityTypeVulnerability,
).
	alias("operating_system", EntityTypeOperatingSystem).
	alias("scan_config", EntityTypeScanConfig).
	alias("vulnerability", EntityTypeVulnerability)

func ParseEntityType(s string) (EntityType, error) {
	return entityTypes.parse("ParseEntityType", s)
}

func (t EntityType) Valid() bool {
	return entityTypes.contains(t)
}

// FilterType is the resource kind a filter applies to.
type FilterType string

const (
	FilterTypeAlert           FilterType = "alert"
	FilterTypeAsset           FilterType = "asset"
	FilterTypeCredential      FilterType = "credential"
	FilterTypeFilter          FilterType = "filter"
	FilterTypeGroup           FilterType = "group"
	FilterTypeHost            FilterType = "host"
	FilterTypeNote            FilterType = "note"
	FilterTypeOperatingSystem FilterType = "os"
	FilterTypeOverride        FilterType = "override"
	FilterTypePermission      FilterType = "permission"
	FilterTypePortList        FilterType = "port_list"
	FilterTypeReport          FilterType = "report"
	FilterTypeReportFormat    FilterType = "report_format"
	FilterTypeResult          FilterType = "result"
	FilterTypeRole            FilterType = "role"
	FilterTypeScanConfig      FilterType = "config"
	FilterTypeSchedule        FilterType = "schedule"
	FilterTypeAllSecInfo      FilterType = "secinfo"
	FilterTypeTag             FilterType = "tag"
	FilterTypeTarget          FilterType = "target"
	FilterTypeTask            FilterType = "task"
	FilterTypeTicket          FilterType = "ticket"
	FilterTypeTLSCertificate  FilterType = "tls_certificate"
	FilterTypeUser            FilterType = "user"
	FilterTypeVulnerability   FilterType = "vuln"
)

var filterTypes = newEnum("filter_type",
	FilterTypeAlert,
	FilterTypeAsset,
	FilterTypeCredential,
	FilterTypeFilter,
	FilterTypeGroup,
	FilterTypeHost,
	FilterTypeNote,
	FilterTypeOperatingSystem,
	FilterTypeOverride,
	FilterTypePermission,
	FilterTypePortList,
	FilterTypeReport,
	FilterTypeReportFormat,
	FilterTypeResult,
	FilterTypeRole,
	FilterTypeScanConfig,
	FilterTypeSchedule,
	FilterTypeAllSecInfo,
	FilterTypeTag,
	FilterTypeTarget,
	FilterTypeTask,
	FilterTypeTicket,
	FilterTypeTLSCertificate,
	FilterTypeUser,
	FilterTypeVulnerability,
).
	alias("operating_system", FilterTypeOperatingSystem).
	alias("scan_config", FilterTypeScanConfig).
	alias("all_secinfo", FilterTypeAllSecInfo).
	alias("vulnerability", FilterTypeVulnerability)

func ParseFilterType(s string) (FilterType, error) {
	return filterTypes.parse("ParseFilterType", s)
}

func (t FilterType) Valid() bool {
	return filterTypes.contains(t)
}

// ResourceType is a resource kind accepted by get_resource_names.
type ResourceType string

const (
	ResourceTypeAlert          ResourceType = "alert"
	ResourceTypeCertBundAdv    ResourceType = "cert_bund_adv"
	ResourceTypeConfig         ResourceType = "config"
	ResourceTypeCPE            ResourceType = "cpe"
	ResourceTypeCredential     ResourceType = "credential"
	ResourceTypeCVE            ResourceType = "cve"
	ResourceTypeDFNCertAdv     ResourceType = "dfn_cert_adv"
	ResourceTypeFilter         ResourceType = "filter"
	ResourceTypeGroup          ResourceType = "group"
	ResourceTypeHost           ResourceType = "host"
	ResourceTypeNVT            ResourceType = "nvt"
	ResourceTypeNote           ResourceType = "note"
	ResourceTypeOS             ResourceType = "os"
	ResourceTypeOverride       ResourceType = "override"
	ResourceTypePermission     ResourceType = "permission"
	ResourceTypePortList       ResourceType = "port_list"
	ResourceTypeReportFormat   ResourceType = "report_format"
	ResourceTypeReport         ResourceType = "report"
	ResourceTypeReportConfig   ResourceType = "report_config"
	ResourceTypeResult         ResourceType = "result"
	ResourceTypeRole           ResourceType = "role"
	ResourceTypeScanner        ResourceType = "scanner"
	ResourceTypeSchedule       ResourceType = "schedule"
	ResourceTypeTarget         ResourceType = "target"
	ResourceTypeTask           ResourceType = "task"
	ResourceTypeTLSCertificate ResourceType = "tls_certificate"
	ResourceTypeUser           ResourceType = "user"
)

var resourceTypes = newEnum("resource_type",
	ResourceTypeAlert,
	ResourceTypeCertBundAdv,
	ResourceTypeConfig,
	ResourceTypeCPE,
	ResourceTypeCredential,
	ResourceTypeCVE,
	ResourceTypeDFNCertAdv,
	ResourceTypeFilter,
	ResourceTypeGroup,
	ResourceTypeHost,
	ResourceTypeNVT,
	ResourceTypeNote,
	ResourceTypeOS,
	ResourceTypeOverride,
	ResourceTypePermission,
	ResourceTypePortList,
	ResourceTypeReportFormat,
	ResourceTypeReport,
	ResourceTypeReportConfig,
	ResourceTypeResult,
	ResourceTypeRole,
	ResourceTypeScanner,
	ResourceTypeSchedule,
	ResourceTypeTarget,
	ResourceTypeTask,
	ResourceTypeTLSCertificate,
	ResourceTypeUser,
)

func ParseResourceType(s string) (ResourceType, error) {
	return resourceTypes.parse("ParseResourceType", s)
}

func (t ResourceType) Valid() bool {
	return resourceTypes.contains(t)
}
