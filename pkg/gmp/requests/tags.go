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

// TagResourceAction selects how ModifyTag changes the tagged resources.
type TagResourceAction string

const (
	TagResourceAdd    TagResourceAction = "add"
	TagResourceSet    TagResourceAction = "set"
	TagResourceRemove TagResourceAction = "remove"
)

// TagResources selects the resources a tag is attached to, either by filter
// or by ids.
type TagResources struct {
	ResourceType   types.EntityType
	ResourceFilter string
	ResourceIDs    []string
}

func (t TagResources) check(function string) error {
	if t.ResourceFilter != "" && len(t.ResourceIDs) > 0 {
		return gvmerr.Invalid(function, "resource_filter",
			function+" accepts either resource_filter or resource_ids argument")
	}

	return checkEnum(function, "resource_type", t.ResourceType)
}

func (t TagResources) add(cmd *xmlcmd.Command, action TagResourceAction) {
	resources := cmd.AddElement("resources")

	if action != "" {
		resources.SetAttribute("action", string(action))
	}

	if t.ResourceFilter != "" {
		resources.SetAttribute("filter", t.ResourceFilter)
	}

	for _, id := range t.ResourceIDs {
		resources.AddElement("resource").SetAttribute("id", id)
	}

	resources.AddElement("type", string(t.ResourceType))
}

type CreateTag struct {
	Name    string
	Value   string
	Comment string
	Active  *bool
	TagResources
}

func (r CreateTag) Build() (*xmlcmd.Command, error) {
	const function = "create_tag"

	if err := Require(function, "name", r.Name); err != nil {
		return nil, err
	}

	if err := requireEnum(function, "resource_type", r.ResourceType); err != nil {
		return nil, err
	}

	if err := r.check(function); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New(function)
	cmd.AddElement("name", r.Name)
	r.add(cmd, "")
	optText(cmd, "comment", r.Comment)
	optText(cmd, "value", r.Value)
	optBoolElement(cmd, "active", r.Active)

	return cmd, nil
}

type ModifyTag struct {
	TagID          string
	Name           string
	Value          string
	Comment        string
	Active         *bool
	ResourceAction TagResourceAction
	TagResources
}

func (r ModifyTag) Build() (*xmlcmd.Command, error) {
	const function = "modify_tag"

	if err := Require(function, "tag_id", r.TagID); err != nil {
		return nil, err
	}

	if err := r.check(function); err != nil {
		return nil, err
	}

	switch r.ResourceAction {
	case "", TagResourceAdd, TagResourceSet, TagResourceRemove:
	default:
		return nil, gvmerr.Invalid(function, "resource_action", "")
	}

	touchesResources := r.ResourceAction != "" || r.ResourceFilter != "" || len(r.ResourceIDs) > 0
	if touchesResources && r.ResourceType == "" {
		return nil, gvmerr.Required(function, "resource_type")
	}

	cmd := xmlcmd.New(function).SetAttribute("tag_id", r.TagID)
	optText(cmd, "comment", r.Comment)
	optText(cmd, "name", r.Name)
	optText(cmd, "value", r.Value)
	optBoolElement(cmd, "active", r.Active)

	if touchesResources {
		r.add(cmd, r.ResourceAction)
	}

	return cmd, nil
}

type GetTags struct {
	Filter
	Trash     bool
	NamesOnly bool
}

func (r GetTags) Build() (*xmlcmd.Command, error) {
	cmd := xmlcmd.New("get_tags")
	r.apply(cmd)
	flag(cmd, "trash", r.Trash)
	flag(cmd, "names_only", r.NamesOnly)

	return cmd, nil
}

type GetTag struct {
	TagID string
}

func (r GetTag) Build() (*xmlcmd.Command, error) {
	if err := Require("get_tag", "tag_id", r.TagID); err != nil {
		return nil, err
	}

	return xmlcmd.New("get_tags").SetAttribute("tag_id", r.TagID), nil
}

type DeleteTag struct {
	TagID    string
	Ultimate bool
}

func (r DeleteTag) Build() (*xmlcmd.Command, error) {
	return deleteByID("delete_tag", "tag_id", r.TagID, r.Ultimate)
}
