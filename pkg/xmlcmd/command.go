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

// Package xmlcmd builds the XML request documents sent over GMP and OSP.
//
// A Command is a plain tree of elements. It is built once by a request
// function, serialised with Bytes and then discarded:
//
//	cmd := xmlcmd.New("get_tasks")
//	cmd.SetAttribute("filter", "name=foo")
//	cmd.AddElement("details", "1")
//	cmd.String() // <get_tasks filter="name=foo"><details>1</details></get_tasks>
package xmlcmd

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/opengvm/gvm-go/pkg/gvmerr"
)

type attribute struct {
	name  string
	value string
}

// node is either a text run or a child element.
type node struct {
	text string
	elem *Command
}

// Command is an XML element with ordered attributes and ordered mixed content.
type Command struct {
	name     string
	attrs    []attribute
	children []node
}

// New returns an empty element named name.
func New(name string) *Command {
	return &Command{name: name}
}

// Name returns the element name.
func (c *Command) Name() string {
	return c.name
}

// SetAttribute sets an attribute. Setting an existing attribute replaces its
// value and keeps its original position.
func (c *Command) SetAttribute(name, value string) *Command {
	for i := range c.attrs {
		if c.attrs[i].name == name {
			c.attrs[i].value = value
			return c
		}
	}

	c.attrs = append(c.attrs, attribute{name: name, value: value})

	return c
}

// SetAttributes sets all attributes from m, in key order.
func (c *Command) SetAttributes(m map[string]string) *Command {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		c.SetAttribute(k, m[k])
	}

	return c
}

// Attribute returns the value of the named attribute.
func (c *Command) Attribute(name string) (string, bool) {
	for _, a := range c.attrs {
		if a.name == name {
			return a.value, true
		}
	}

	return "", false
}

// AddElement appends a child element and returns it. Optional text arguments
// are concatenated into the child's text.
func (c *Command) AddElement(name string, text ...string) *Command {
	child := New(name)
	if len(text) > 0 {
		child.SetText(strings.Join(text, ""))
	}

	c.children = append(c.children, node{elem: child})

	return child
}

// AddValue appends a child element whose text is v formatted with
// FormatValue.
func (c *Command) AddValue(name string, v any) (*Command, error) {
	s, err := FormatValue(v)
	if err != nil {
		return nil, err
	}

	return c.AddElement(name, s), nil
}

// AppendCommand grafts an already built command as the last child.
func (c *Command) AppendCommand(other *Command) *Command {
	if other != nil {
		c.children = append(c.children, node{elem: other})
	}

	return c
}

// SetText replaces the leading text of the element.
func (c *Command) SetText(text string) *Command {
	if len(c.children) > 0 && c.children[0].elem == nil {
		c.children[0].text = text
		return c
	}

	if text == "" {
		return c
	}

	c.children = append([]node{{text: text}}, c.children...)

	return c
}

// AppendText appends a text run after the current content.
func (c *Command) AppendText(text string) *Command {
	if text != "" {
		c.children = append(c.children, node{text: text})
	}

	return c
}

// Text returns the concatenated text runs directly under the element.
func (c *Command) Text() string {
	var b strings.Builder

	for _, n := range c.children {
		if n.elem == nil {
			b.WriteString(n.text)
		}
	}

	return b.String()
}

// Children returns the child elements in document order.
func (c *Command) Children() []*Command {
	var out []*Command

	for _, n := range c.children {
		if n.elem != nil {
			out = append(out, n.elem)
		}
	}

	return out
}

// Bytes serialises the command as UTF-8 XML without a declaration.
func (c *Command) Bytes() []byte {
	var buf bytes.Buffer

	c.write(&buf)

	return buf.Bytes()
}

func (c *Command) String() string {
	return string(c.Bytes())
}

func (c *Command) write(buf *bytes.Buffer) {
	buf.WriteByte('<')
	buf.WriteString(c.name)

	for _, a := range c.attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.name)
		buf.WriteString(`="`)
		escape(buf, a.value, true)
		buf.WriteByte('"')
	}

	if !c.hasContent() {
		buf.WriteString("/>")
		return
	}

	buf.WriteByte('>')

	for _, n := range c.children {
		if n.elem != nil {
			n.elem.write(buf)
		} else {
			escape(buf, n.text, false)
		}
	}

	buf.WriteString("</")
	buf.WriteString(c.name)
	buf.WriteByte('>')
}

func (c *Command) hasContent() bool {
	for _, n := range c.children {
		if n.elem != nil || n.text != "" {
			return true
		}
	}

	return false
}

// escape writes s with markup characters replaced. Carriage returns, and in
// attribute values also newlines and tabs, become character references so a
// parser does not normalise them away.
func escape(buf *bytes.Buffer, s string, attr bool) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&apos;")
		case '\r':
			buf.WriteString("&#13;")
		case '\n':
			if attr {
				buf.WriteString("&#10;")
			} else {
				buf.WriteByte('\n')
			}
		case '\t':
			if attr {
				buf.WriteString("&#9;")
			} else {
				buf.WriteByte('\t')
			}
		default:
			buf.WriteByte(s[i])
		}
	}
}

// Validate reports text or attribute values holding characters that XML 1.0
// cannot carry, such as most control characters or invalid UTF-8.
func (c *Command) Validate() error {
	for _, a := range c.attrs {
		if !validChars(a.value) {
			return gvmerr.Invalid(c.name, a.name, fmt.Sprintf("Invalid character in attribute %s of %s", a.name, c.name))
		}
	}

	for _, n := range c.children {
		if n.elem != nil {
			if err := n.elem.Validate(); err != nil {
				return err
			}

			continue
		}

		if !validChars(n.text) {
			return gvmerr.Invalid(c.name, "text", fmt.Sprintf("Invalid character in text of %s", c.name))
		}
	}

	return nil
}

func validChars(s string) bool {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return false
			}
		}

		switch {
		case r == '\t', r == '\n', r == '\r':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return false
		}
	}

	return true
}

// Escape returns s escaped for use as element text.
func Escape(s string) string {
	var buf bytes.Buffer

	escape(&buf, s, false)

	return buf.String()
}

