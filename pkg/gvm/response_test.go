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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengvm/gvm-go/pkg/gvmerr"
)

func TestCheckStatus(t *testing.T) {
	testcases := map[string]struct {
		in   string
		kind gvmerr.Kind
		out  string
	}{
		"ok": {
			in: `<get_tasks_response status="200" status_text="OK"/>`,
		},
		"created": {
			in: `<create_task_response status="201" status_text="OK, resource created" id="x"/>`,
		},
		"response error": {
			in:   `<get_tasks_response status="400" status_text="Bogus command name"/>`,
			kind: gvmerr.Response,
			out:  "Response Error 400. Bogus command name",
		},
		"server error": {
			in:   `<get_tasks_response status="503" status_text="Service temporarily down"/>`,
			kind: gvmerr.Server,
			out:  "Server Error 503. Service temporarily down",
		},
		"no status": {
			in:   `<get_tasks_response/>`,
			kind: gvmerr.Server,
			out:  "No status in response",
		},
		"other status": {
			in:   `<get_tasks_response status="302" status_text="Moved"/>`,
			kind: gvmerr.GenericProtocol,
			out:  "Error in response. Moved",
		},
		"malformed": {
			in:   `<get_tasks_response status="200">`,
			kind: gvmerr.Framing,
		},
	}

	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := CheckStatus(NewResponse([]byte(tc.in)))
			if tc.kind == gvmerr.KindUnknown {
				assert.NoError(t, err)
				return
			}

			assert.Equal(t, tc.kind, gvmerr.KindOf(err))

			if tc.out != "" {
				assert.EqualError(t, err, tc.out)
			}
		})
	}
}

func TestResponseAccessors(t *testing.T) {
	resp := NewResponse([]byte(`<get_version_response status="200" status_text="OK">` +
		`<version>22.5</version></get_version_response>`))

	assert.Equal(t, "get_version_response", resp.Name())
	assert.Equal(t, "200", resp.Status())
	assert.Equal(t, "OK", resp.StatusText())
	assert.Equal(t, "22.5", resp.Find("version").Text())
	assert.Nil(t, resp.Find("missing"))

	var v struct {
		Status  string `xml:"status,attr"`
		Version string `xml:"version"`
	}

	require.NoError(t, resp.Decode(&v))
	assert.Equal(t, "200", v.Status)
	assert.Equal(t, "22.5", v.Version)

	pretty, err := resp.Pretty()
	require.NoError(t, err)
	assert.Contains(t, pretty, "\n  <version>22.5</version>\n")
}

func TestResponseMalformed(t *testing.T) {
	resp := NewResponse([]byte("<a><b></a>"))

	assert.Empty(t, resp.Name())
	assert.Empty(t, resp.Status())
	assert.ErrorIs(t, resp.Decode(&struct{}{}), gvmerr.ErrFraming)

	_, err := resp.Pretty()
	assert.ErrorIs(t, err, gvmerr.ErrFraming)
}
