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
	"github.com/opengvm/gvm-go/pkg/gvmerr"
	"github.com/opengvm/gvm-go/pkg/xmlcmd"
)

// SortCriterion orders the groups returned by get_aggregates.
type SortCriterion struct {
	Field string
	Stat  types.AggregateStatistic
	Order types.SortOrder
}

type GetAggregates struct {
	ResourceType types.EntityType
	Filter
	SortCriteria   []SortCriterion
	DataColumns    []string
	GroupColumn    string
	SubgroupColumn string
	TextColumns    []string
	FirstGroup     *int
	MaxGroups      *int
	Mode           string
}

func (r GetAggregates) Build() (*xmlcmd.Command, error) {
	const function = "get_aggregates"

	if err := requireEnum(function, "resource_type", r.ResourceType); err != nil {
		return nil, err
	}

	if r.SubgroupColumn != "" && r.GroupColumn == "" {
		return nil, gvmerr.Invalid(function, "subgroup_column",
			"get_aggregates requires group_column argument if subgroup_column is given")
	}

	for _, s := range r.SortCriteria {
		if err := checkEnum(function, "sort_criteria", s.Stat); err != nil {
			return nil, err
		}

		if err := checkEnum(function, "sort_criteria", s.Order); err != nil {
			return nil, err
		}
	}

	cmd := xmlcmd.New(function)

	// Audits and policies are stored as tasks and scan configs.
	resourceType := r.ResourceType

	switch resourceType {
	case types.EntityTypeAudit:
		resourceType = types.EntityTypeTask
		cmd.SetAttribute("usage_type", "audit")
	case types.EntityTypePolicy:
		resourceType = types.EntityTypeScanConfig
		cmd.SetAttribute("usage_type", "policy")
	case types.EntityTypeScanConfig, types.EntityTypeTask:
		cmd.SetAttribute("usage_type", "scan")
	}

	cmd.SetAttribute("type", string(resourceType))
	r.apply(cmd)

	if r.FirstGroup != nil {
		cmd.SetAttribute("first_group", itoa(*r.FirstGroup))
	}

	if r.MaxGroups != nil {
		cmd.SetAttribute("max_groups", itoa(*r.MaxGroups))
	}

	for _, s := range r.SortCriteria {
		sort := cmd.AddElement("sort")

		if s.Field != "" {
			sort.SetAttribute("field", s.Field)
		}

		if s.Stat != "" {
			sort.SetAttribute("stat", string(s.Stat))
		}

		if s.Order != "" {
			sort.SetAttribute("order", string(s.Order))
		}
	}

	for _, c := range r.DataColumns {
		cmd.AddElement("data_column", c)
	}

	if r.GroupColumn != "" {
		cmd.SetAttribute("group_column", r.GroupColumn)
	}

	if r.SubgroupColumn != "" {
		cmd.SetAttribute("subgroup_column", r.SubgroupColumn)
	}

	for _, c := range r.TextColumns {
		cmd.AddElement("text_column", c)
	}

	if r.Mode != "" {
		cmd.SetAttribute("mode", r.Mode)
	}

	return cmd, nil
}
