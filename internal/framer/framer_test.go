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

package framer

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengvm/gvm-go/pkg/gvmerr"
)

var frames = map[string]string{
	"self closing root": `<get_version_response status="200" status_text="OK"/>`,
	"nested": `<get_version_response status="200" status_text="OK">` +
		`<version>22.5</version></get_version_response>`,
	"root name inside attribute value": `<r a="</r>" b='<r>'><x/></r>`,
	"root name inside comment":         `<r><!-- </r> --><x/></r>`,
	"root name inside cdata":           `<r><![CDATA[</r>]]]></r>`,
	"same name nested":                 `<a><a><a/></a></a>`,
	"declaration and doctype": `<?xml version="1.0"?>` + "\n" +
		`<!DOCTYPE r [<!ELEMENT r (#PCDATA)> <!ATTLIST r a CDATA "x>y">]><r>text</r>`,
	"processing instruction inside": `<r><?pi </r> ?></r>`,
	"whitespace everywhere":         "\n  <r >\n<s\t/>\n</r\n>",
	"text with gt":                  `<r>a > b</r>`,
}

func TestFeedWholeFrame(t *testing.T) {
	for name, in := range frames {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := New()

			n, done, err := f.Feed([]byte(in))
			require.NoError(t, err)
			assert.True(t, done)
			assert.Equal(t, len(in), n)
			assert.Zero(t, f.Depth())
		})
	}
}

func TestFeedByteByByte(t *testing.T) {
	for name, in := range frames {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := New()

			for i := 0; i < len(in); i++ {
				n, done, err := f.Feed([]byte{in[i]})
				require.NoError(t, err)
				assert.Equal(t, 1, n)
				assert.Equal(t, i == len(in)-1, done, "byte %d", i)
			}
		})
	}
}

func TestFeedRandomChunks(t *testing.T) {
	//nolint:gosec // deterministic chunking is all we need
	rnd := rand.New(rand.NewPCG(1, 2))

	for name, in := range frames {
		for range 20 {
			f := New()
			data := []byte(in)
			total := 0

			var done bool

			for len(data) > 0 {
				size := 1 + rnd.IntN(len(data))

				n, d, err := f.Feed(data[:size])
				require.NoError(t, err, name)

				total += n
				data = data[size:]
				done = d
			}

			assert.True(t, done, name)
			assert.Equal(t, len(in), total, name)
		}
	}
}

func TestFeedReportsFrameEnd(t *testing.T) {
	f := New()

	n, done, err := f.Feed([]byte(`<a><b/></a><c/>`))
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, len(`<a><b/></a>`), n)
	assert.Equal(t, "a", f.Root())

	n, done, err = f.Feed([]byte(`<d/>`))
	require.NoError(t, err)
	assert.True(t, done)
	assert.Zero(t, n)
}

func TestFeedIncomplete(t *testing.T) {
	f := New()

	n, done, err := f.Feed([]byte(`<a status="200"><b>`))
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 19, n)
	assert.Equal(t, "a", f.Root())
	assert.Equal(t, 2, f.Depth())
}

func TestRootIsNotOverwritten(t *testing.T) {
	f := New()

	_, _, err := f.Feed([]byte(`<a><b><c>`))
	require.NoError(t, err)
	assert.Equal(t, "a", f.Root())
}

func TestFeedMalformed(t *testing.T) {
	testcases := map[string]struct {
		in  string
		err error
	}{
		"mismatched end tag": {
			in:  `<a><b></a>`,
			err: ErrMismatchedTag,
		},
		"end tag first": {
			in:  `</a>`,
			err: ErrUnexpectedEndTag,
		},
		"junk before root": {
			in:  `HTTP/1.1 400`,
			err: ErrContentBeforeRoot,
		},
		"bad name": {
			in:  `<1a/>`,
			err: ErrInvalidMarkup,
		},
		"broken comment": {
			in:  `<a><!-x--></a>`,
			err: ErrInvalidMarkup,
		},
		"slash inside tag": {
			in:  `<a / b>`,
			err: ErrInvalidMarkup,
		},
	}

	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := New()

			_, done, err := f.Feed([]byte(tc.in))
			assert.False(t, done)
			assert.ErrorIs(t, err, tc.err)
			assert.ErrorIs(t, err, gvmerr.ErrFraming)
		})
	}
}

func TestFeedErrorCarriesContext(t *testing.T) {
	f := New()

	_, _, err := f.Feed([]byte(`<response><item></response>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `<response><item></response>`)
	assert.Contains(t, err.Error(), "expected </item>")
}

func TestMaxSize(t *testing.T) {
	f := New(WithMaxSize(8))

	_, _, err := f.Feed([]byte(`<a>0123456789</a>`))
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.ErrorIs(t, err, gvmerr.ErrFraming)
}

func TestReset(t *testing.T) {
	f := New()

	_, done, err := f.Feed([]byte(`<a/>`))
	require.NoError(t, err)
	require.True(t, done)

	f.Reset()

	assert.False(t, f.Done())
	assert.Empty(t, f.Root())

	_, done, err = f.Feed([]byte(`<b></b>`))
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, "b", f.Root())
}
