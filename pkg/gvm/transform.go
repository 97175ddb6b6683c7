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
	"github.com/opengvm/gvm-go/pkg/gvmerr"
)

// Transform post-processes a framed response before it is handed to the
// caller.
type Transform func(*Response) (*Response, error)

var (
	// TransformRaw returns the response untouched.
	TransformRaw Transform = func(r *Response) (*Response, error) {
		return r, nil
	}

	// TransformParsed parses the response and fails on malformed XML.
	TransformParsed Transform = func(r *Response) (*Response, error) {
		if _, err := r.Root(); err != nil {
			return nil, err
		}

		return r, nil
	}

	// TransformChecked parses the response and turns a non 2xx status into
	// an error.
	TransformChecked Transform = func(r *Response) (*Response, error) {
		if err := CheckStatus(r); err != nil {
			return nil, err
		}

		return r, nil
	}
)

// CheckStatus classifies the status attribute of the response root:
// 2xx is success, 4xx a Response error, 5xx a Server error and anything else
// a GenericProtocol error. A missing status is a Server error.
func CheckStatus(r *Response) error {
	root, err := r.Root()
	if err != nil {
		return err
	}

	status := root.SelectAttrValue("status", "")
	text := root.SelectAttrValue("status_text", "")

	if status == "" {
		return gvmerr.New(gvmerr.Server, "No status in response")
	}

	switch status[0] {
	case '2':
		return nil
	case '4':
		return gvmerr.NewResponse(status, text)
	case '5':
		return gvmerr.NewServer(status, text)
	default:
		return &gvmerr.Error{
			Kind:       gvmerr.GenericProtocol,
			Status:     status,
			StatusText: text,
			Msg:        "Error in response. " + text,
		}
	}
}
