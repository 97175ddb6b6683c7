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

package gvm

import (
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/beevik/etree"

	"github.com/opengvm/gvm-go/pkg/gvmerr"
	"github.com/opengvm/gvm-go/pkg/xmlcmd"
)

// Response is one complete XML response read from the server.
type Response struct {
	raw  []byte
	text string

	root     *etree.Element
	parseErr error
	parsed   bool
}

// NewResponse wraps raw response bytes. Invalid UTF-8 sequences are replaced
// by U+FFFD in the text form.
func NewResponse(raw []byte) *Response {
	return &Response{
		raw:  raw,
		text: strings.ToValidUTF8(string(raw), "�"),
	}
}

// Bytes returns the response as received.
func (r *Response) Bytes() []byte {
	return r.raw
}

func (r *Response) String() string {
	return r.text
}

// Root parses the response on first use and returns its root element.
func (r *Response) Root() (*etree.Element, error) {
	if !r.parsed {
		r.root, r.parseErr = xmlcmd.Parse([]byte(r.text))
		r.parsed = true
	}

	return r.root, r.parseErr
}

// Name returns the name of the root element, or an empty string if the
// response cannot be parsed.
func (r *Response) Name() string {
	root, err := r.Root()
	if err != nil {
		return ""
	}

	return root.Tag
}

// Status returns the status attribute of the root element.
func (r *Response) Status() string {
	return r.attr("status")
}

// StatusText returns the status_text attribute of the root element.
func (r *Response) StatusText() string {
	return r.attr("status_text")
}

func (r *Response) attr(name string) string {
	root, err := r.Root()
	if err != nil {
		return ""
	}

	return root.SelectAttrValue(name, "")
}

// Find returns the first element matching an etree path below the root.
func (r *Response) Find(path string) *etree.Element {
	root, err := r.Root()
	if err != nil {
		return nil
	}

	return root.FindElement(path)
}

// Decode unmarshals the response into v with encoding/xml.
func (r *Response) Decode(v any) error {
	if err := xml.Unmarshal([]byte(r.text), v); err != nil {
		return gvmerr.Wrap(gvmerr.Framing, err, "could not decode %s", r.Name())
	}

	return nil
}

// Pretty returns the response indented by two spaces per level.
func (r *Response) Pretty() (string, error) {
	var buf bytes.Buffer

	if err := xmlcmd.PrettyPrint(&buf, []byte(r.text)); err != nil {
		return "", err
	}

	return buf.String(), nil
}
