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

package xmlcmd

import (
	"io"

	"github.com/beevik/etree"
	"github.com/opengvm/gvm-go/pkg/gvmerr"
)

// Parse parses a single XML document and returns its root element.
func Parse(data []byte) (*etree.Element, error) {
	doc := etree.NewDocument()

	if err := doc.ReadFromBytes(data); err != nil {
		return nil, gvmerr.Wrap(gvmerr.Framing, err, "invalid XML")
	}

	root := doc.Root()
	if root == nil {
		return nil, gvmerr.New(gvmerr.Framing, "invalid XML: no root element")
	}

	return root, nil
}

// PrettyPrint writes data to w indented by two spaces per level.
func PrettyPrint(w io.Writer, data []byte) error {
	doc := etree.NewDocument()

	if err := doc.ReadFromBytes(data); err != nil {
		return gvmerr.Wrap(gvmerr.Framing, err, "invalid XML")
	}

	doc.Indent(2)

	_, err := doc.WriteTo(w)

	return err
}

// FromElement converts a parsed element into a Command. Comments, directives
// and processing instructions are dropped.
func FromElement(e *etree.Element) *Command {
	cmd := New(e.FullTag())

	for _, a := range e.Attr {
		cmd.SetAttribute(a.FullKey(), a.Value)
	}

	for _, t := range e.Child {
		switch t := t.(type) {
		case *etree.Element:
			cmd.AppendCommand(FromElement(t))
		case *etree.CharData:
			cmd.AppendText(t.Data)
		}
	}

	return cmd
}

// ParseCommand parses a serialised XML element into a Command.
func ParseCommand(data string) (*Command, error) {
	root, err := Parse([]byte(data))
	if err != nil {
		return nil, err
	}

	return FromElement(root), nil
}
