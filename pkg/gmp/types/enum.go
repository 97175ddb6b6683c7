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

// Package types holds the closed value sets accepted by GMP commands. Every
// type has a Parse function that accepts the wire value or the constant name,
// case insensitive and with spaces, dashes and underscores treated alike.
package types

import (
	"fmt"
	"strings"

	"github.com/opengvm/gvm-go/pkg/gvmerr"
)

type enum[T ~string] struct {
	argument string
	values   map[string]T
	valid    map[T]struct{}
}

func newEnum[T ~string](argument string, values ...T) *enum[T] {
	e := &enum[T]{
		argument: argument,
		values:   make(map[string]T, len(values)),
		valid:    make(map[T]struct{}, len(values)),
	}

	for _, v := range values {
		e.values[normalize(string(v))] = v
		e.valid[v] = struct{}{}
	}

	return e
}

// alias makes name parse to v in addition to v's own value.
func (e *enum[T]) alias(name string, v T) *enum[T] {
	e.values[normalize(name)] = v
	return e
}

func (e *enum[T]) parse(function, s string) (T, error) {
	if v, ok := e.values[normalize(s)]; ok {
		return v, nil
	}

	var zero T

	return zero, gvmerr.Invalid(function, e.argument,
		fmt.Sprintf("Invalid argument %s %q", e.argument, s))
}

func (e *enum[T]) contains(v T) bool {
	_, ok := e.valid[v]
	return ok
}

func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-':
			return '_'
		default:
			return r
		}
	}, strings.ToUpper(strings.TrimSpace(s)))
}
