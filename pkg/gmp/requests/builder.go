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

// Package requests builds GMP request documents. Each request is a struct
// whose Build method validates the arguments and returns the command tree;
// nothing is sent until a dialect passes the tree to its channel.
//
// Optional flags that the server treats differently when absent and when
// false are pointers. Use Bool and Int to fill them inline.
package requests

import (
	"sort"
	"strconv"
	"strings"

	"github.com/opengvm/gvm-go/pkg/gvmerr"
	"github.com/opengvm/gvm-go/pkg/xmlcmd"
)

// Builder is implemented by every request.
type Builder interface {
	Build() (*xmlcmd.Command, error)
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}

// Require returns a RequiredArgument error when value is empty.
func Require(function, argument, value string) error {
	if value == "" {
		return gvmerr.Required(function, argument)
	}

	return nil
}

// RequireAll checks argument/value pairs in order and reports the first
// empty value.
func RequireAll(function string, pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := Require(function, pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}

	return nil
}

type validator interface {
	~string
	Valid() bool
}

// checkEnum rejects values outside of the enum. The empty value is accepted
// since optional arguments are left unset that way.
func checkEnum[T validator](function, argument string, v T) error {
	if v != "" && !v.Valid() {
		return gvmerr.InvalidType(function, argument, "")
	}

	return nil
}

// requireEnum is checkEnum for mandatory arguments.
func requireEnum[T validator](function, argument string, v T) error {
	if v == "" {
		return gvmerr.Required(function, argument)
	}

	return checkEnum(function, argument, v)
}

// Filter selects resources of list commands.
type Filter struct {
	// Filter is a filter term, e.g. "name=foo rows=10".
	Filter string
	// FilterID is the id of a stored filter.
	FilterID string
}

func (f Filter) apply(cmd *xmlcmd.Command) {
	if f.Filter != "" {
		cmd.SetAttribute("filter", f.Filter)
	}

	if f.FilterID != "" {
		cmd.SetAttribute("filt_id", f.FilterID)
	}
}

func boolString(v bool) string {
	if v {
		return "1"
	}

	return "0"
}

// flag sets a "1" attribute when v is true.
func flag(cmd *xmlcmd.Command, name string, v bool) {
	if v {
		cmd.SetAttribute(name, "1")
	}
}

// optFlag sets a boolean attribute when v is not nil.
func optFlag(cmd *xmlcmd.Command, name string, v *bool) {
	if v != nil {
		cmd.SetAttribute(name, boolString(*v))
	}
}

func optBoolElement(cmd *xmlcmd.Command, name string, v *bool) {
	if v != nil {
		cmd.AddElement(name, boolString(*v))
	}
}

func optText(cmd *xmlcmd.Command, name, v string) {
	if v != "" {
		cmd.AddElement(name, v)
	}
}

func optRef(cmd *xmlcmd.Command, name, id string) {
	if id != "" {
		cmd.AddElement(name).SetAttribute("id", id)
	}
}

func optList(cmd *xmlcmd.Command, name string, vs []string) {
	if len(vs) > 0 {
		cmd.AddElement(name, strings.Join(vs, ","))
	}
}

func nonNegative(function, argument string, v *int) error {
	if v != nil && *v < 0 {
		return gvmerr.Invalid(function, argument,
			argument+" must be an integer greater or equal than 0")
	}

	return nil
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// byID builds <name attr="id"/>, the shape of most single resource commands.
func byID(function, attr, id string) (*xmlcmd.Command, error) {
	if err := Require(function, attr, id); err != nil {
		return nil, err
	}

	return xmlcmd.New(function).SetAttribute(attr, id), nil
}

// deleteByID builds a delete command with the ultimate flag.
func deleteByID(function, attr, id string, ultimate bool) (*xmlcmd.Command, error) {
	cmd, err := byID(function, attr, id)
	if err != nil {
		return nil, err
	}

	cmd.SetAttribute("ultimate", boolString(ultimate))

	return cmd, nil
}

// clone builds <name><copy>id</copy></name>.
func clone(function, name, argument, id string) (*xmlcmd.Command, error) {
	if err := Require(function, argument, id); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New(name)
	cmd.AddElement("copy", id)

	return cmd, nil
}
