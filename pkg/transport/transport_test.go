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

package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengvm/gvm-go/pkg/gvmerr"
)

func TestEffectiveTimeout(t *testing.T) {
	testcases := map[string]struct {
		in  time.Duration
		out time.Duration
	}{
		"zero selects default": {in: 0, out: DefaultTimeout},
		"negative disables":    {in: NoTimeout, out: 0},
		"explicit":             {in: 5 * time.Second, out: 5 * time.Second},
	}

	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.out, EffectiveTimeout(tc.in))
		})
	}
}

func TestNew(t *testing.T) {
	testcases := map[string]struct {
		in   Config
		kind any
		err  error
	}{
		"default is unix": {
			in:   Config{},
			kind: &UnixSocket{},
		},
		"unix": {
			in:   Config{Kind: KindUnix, Unix: UnixConfig{Path: "/tmp/gvmd.sock"}},
			kind: &UnixSocket{},
		},
		"tls": {
			in:   Config{Kind: KindTLS},
			kind: &TLS{},
		},
		"ssh": {
			in:   Config{Kind: KindSSH},
			kind: &SSH{},
		},
		"unknown": {
			in:  Config{Kind: "carrier-pigeon"},
			err: gvmerr.ErrInvalidArgument,
		},
	}

	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tr, err := New(tc.in)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			assert.IsType(t, tc.kind, tr)
		})
	}
}

func TestDefaults(t *testing.T) {
	t.Setenv("HOME", "/home/user")

	u := NewUnixSocket("")
	assert.Equal(t, DefaultSocketPath, u.Path())
	assert.Equal(t, DefaultTimeout, u.timeout)

	tl := NewTLS(TLSConfig{}, WithTimeout(NoTimeout))
	assert.Equal(t, "127.0.0.1:9390", tl.Address())
	assert.Zero(t, tl.timeout)

	s := NewSSH(SSHConfig{})
	assert.Equal(t, "127.0.0.1:22", s.Address())
	assert.Equal(t, "gmp", s.cfg.Username)
	assert.Equal(t, "/home/user/.ssh/known_hosts", s.cfg.KnownHostsFile)
	assert.IsType(t, RejectUnknown{}, s.decision)

	s = NewSSH(SSHConfig{AutoAcceptHost: true, KnownHostsFile: "~/kh"})
	assert.IsType(t, AutoAccept{}, s.decision)
	assert.Equal(t, "/home/user/kh", s.cfg.KnownHostsFile)

	s = NewSSH(SSHConfig{AutoAcceptHost: true}, WithHostKeyDecision(RejectUnknown{}))
	assert.IsType(t, RejectUnknown{}, s.decision)
}

type recordingWriter struct {
	writes [][]byte
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.writes = append(w.writes, append([]byte(nil), p...))
	return len(p), nil
}

func TestWriteChunks(t *testing.T) {
	testcases := map[string]struct {
		size  int
		sizes []int
	}{
		"empty":          {size: 0},
		"one chunk":      {size: 100, sizes: []int{100}},
		"exact boundary": {size: SSHMaxChunk, sizes: []int{SSHMaxChunk}},
		"split":          {size: 10000, sizes: []int{SSHMaxChunk, SSHMaxChunk, 10000 - 2*SSHMaxChunk}},
	}

	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			data := bytes.Repeat([]byte("x"), tc.size)
			w := &recordingWriter{}

			require.NoError(t, writeChunks(w, data, SSHMaxChunk))

			var sizes []int
			for _, c := range w.writes {
				sizes = append(sizes, len(c))
			}

			assert.Equal(t, tc.sizes, sizes)
			assert.Equal(t, data, bytes.Join(w.writes, nil))
		})
	}
}

type fakeTransport struct {
	recv [][]byte
	sent [][]byte
}

func (f *fakeTransport) Connect(context.Context) error { return nil }
func (f *fakeTransport) Disconnect() error             { return nil }
func (f *fakeTransport) FinishSend() error             { return errors.New("not supported") }

func (f *fakeTransport) Send(data []byte) error {
	f.sent = append(f.sent, data)
	return nil
}

func (f *fakeTransport) Recv() ([]byte, error) {
	if len(f.recv) == 0 {
		return nil, io.EOF
	}

	data := f.recv[0]
	f.recv = f.recv[1:]

	return data, nil
}

func TestDebug(t *testing.T) {
	var buf bytes.Buffer

	inner := &fakeTransport{recv: [][]byte{[]byte("<ok/>")}}
	d := NewDebug(inner, zerolog.New(&buf).Level(zerolog.DebugLevel))

	require.NoError(t, d.Connect(context.Background()))
	require.NoError(t, d.Send([]byte("<get_version/>")))

	data, err := d.Recv()
	require.NoError(t, err)
	assert.Equal(t, "<ok/>", string(data))

	_, err = d.Recv()
	assert.ErrorIs(t, err, io.EOF)

	assert.Error(t, d.FinishSend())
	require.NoError(t, d.Disconnect())

	assert.Same(t, inner, d.Unwrap())
	assert.Equal(t, [][]byte{[]byte("<get_version/>")}, inner.sent)

	out := buf.String()
	for _, s := range []string{
		`"message":"Connect"`,
		`"data":"<get_version/>"`,
		`"data":"<ok/>"`,
		`"error":"EOF"`,
		`"error":"not supported"`,
		`"message":"Disconnect"`,
	} {
		assert.Contains(t, out, s)
	}
}
