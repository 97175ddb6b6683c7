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
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"github.com/opengvm/gvm-go/internal/testing/sshtest"
	"github.com/opengvm/gvm-go/pkg/gvmerr"
)

const knownHostsPath = "/home/user/.ssh/known_hosts"

func newSSH(srv *sshtest.Server, fs afero.Fs, password string, opts ...Option) *SSH {
	opts = append([]Option{WithFs(fs), WithTimeout(5 * time.Second)}, opts...)

	return NewSSH(SSHConfig{
		Hostname:       srv.Host,
		Port:           srv.Port,
		Username:       "gmp",
		Password:       password,
		KnownHostsFile: knownHostsPath,
	}, opts...)
}

func TestSSHKnownHost(t *testing.T) {
	srv := sshtest.NewServer(t, "gmp", "secret", sshtest.Echo)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, knownHostsPath, []byte(srv.KnownHostsLine()+"\n"), 0o600))

	tr := newSSH(srv, fs, "secret")

	require.NoError(t, tr.Connect(context.Background()))
	require.NoError(t, tr.Connect(context.Background()))

	// Larger than one SSH write to exercise chunking.
	request := "<get_tasks>" + strings.Repeat("x", 3*SSHMaxChunk) + "</get_tasks>"
	assert.Equal(t, request, exchange(t, tr, request))

	assert.Equal(t, []string{""}, srv.Commands())

	require.NoError(t, tr.Disconnect())
	require.NoError(t, tr.Disconnect())
}

func TestSSHUnknownHostRejected(t *testing.T) {
	srv := sshtest.NewServer(t, "gmp", "secret", sshtest.Echo)
	fs := afero.NewMemMapFs()

	tr := newSSH(srv, fs, "secret")

	err := tr.Connect(context.Background())
	assert.ErrorIs(t, err, gvmerr.ErrAuth)

	exists, err := afero.Exists(fs, knownHostsPath)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, srv.Commands())
}

func TestSSHAutoAccept(t *testing.T) {
	srv := sshtest.NewServer(t, "gmp", "secret", sshtest.Echo)
	fs := afero.NewMemMapFs()

	var logs bytes.Buffer

	tr := NewSSH(SSHConfig{
		Hostname:       srv.Host,
		Port:           srv.Port,
		Password:       "secret",
		KnownHostsFile: knownHostsPath,
		AutoAcceptHost: true,
	}, WithFs(fs), WithTimeout(5*time.Second), WithLogger(zerolog.New(&logs)))

	require.NoError(t, tr.Connect(context.Background()))
	assert.Equal(t, "<a/>", exchange(t, tr, "<a/>"))
	require.NoError(t, tr.Disconnect())

	hosts, err := LoadKnownHosts(fs, knownHostsPath)
	require.NoError(t, err)

	keys := hosts.Lookup(CanonicalHost(srv.Host, srv.Port))
	require.Len(t, keys, 1)
	assert.Equal(t, srv.HostKey.PublicKey().Marshal(), keys[0].Marshal())
	assert.Contains(t, logs.String(), "Permanently added")

	// Second connection uses the stored key without asking.
	again := newSSH(srv, fs, "secret")
	require.NoError(t, again.Connect(context.Background()))
	require.NoError(t, again.Disconnect())
}

func TestSSHInteractiveAcceptOnce(t *testing.T) {
	srv := sshtest.NewServer(t, "gmp", "secret", sshtest.Echo)
	fs := afero.NewMemMapFs()

	var out bytes.Buffer

	prompt := InteractivePrompt{In: strings.NewReader("yes\nno\n"), Out: &out}
	tr := newSSH(srv, fs, "secret", WithHostKeyDecision(prompt))

	require.NoError(t, tr.Connect(context.Background()))
	require.NoError(t, tr.Disconnect())

	assert.Contains(t, out.String(), ssh.FingerprintSHA256(srv.HostKey.PublicKey()))

	exists, err := afero.Exists(fs, knownHostsPath)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSSHInteractiveReject(t *testing.T) {
	srv := sshtest.NewServer(t, "gmp", "secret", sshtest.Echo)

	prompt := InteractivePrompt{In: strings.NewReader("no\n"), Out: io.Discard}
	tr := newSSH(srv, afero.NewMemMapFs(), "secret", WithHostKeyDecision(prompt))

	err := tr.Connect(context.Background())
	assert.ErrorIs(t, err, gvmerr.ErrAuth)
}

func TestSSHHostKeyMismatch(t *testing.T) {
	srv := sshtest.NewServer(t, "gmp", "secret", sshtest.Echo)
	impostor := sshtest.NewServer(t, "gmp", "secret", sshtest.Echo)

	// known_hosts holds the key of impostor for the address of srv.
	line := strings.Replace(impostor.KnownHostsLine(),
		CanonicalHost(impostor.Host, impostor.Port), CanonicalHost(srv.Host, srv.Port), 1)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, knownHostsPath, []byte(line+"\n"), 0o600))

	tr := newSSH(srv, fs, "secret", WithHostKeyDecision(AutoAccept{}))

	err := tr.Connect(context.Background())
	assert.ErrorIs(t, err, gvmerr.ErrAuth)
	assert.ErrorContains(t, err, ErrHostKeyMismatch.Error())
}

func TestSSHWrongPassword(t *testing.T) {
	srv := sshtest.NewServer(t, "gmp", "secret", sshtest.Echo)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, knownHostsPath, []byte(srv.KnownHostsLine()+"\n"), 0o600))

	tr := newSSH(srv, fs, "wrong")

	err := tr.Connect(context.Background())
	assert.ErrorIs(t, err, gvmerr.ErrAuth)
}

func TestSSHRecvTimeout(t *testing.T) {
	release := make(chan struct{})

	srv := sshtest.NewServer(t, "gmp", "secret", func(io.ReadWriter) {
		<-release
	})

	defer close(release)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, knownHostsPath, []byte(srv.KnownHostsLine()+"\n"), 0o600))

	tr := newSSH(srv, fs, "secret", WithTimeout(50*time.Millisecond))
	require.NoError(t, tr.Connect(context.Background()))

	defer tr.Disconnect()

	_, err := tr.Recv()
	assert.ErrorIs(t, err, gvmerr.ErrTimeout)
}

func TestSSHSendTimeout(t *testing.T) {
	release := make(chan struct{})

	srv := sshtest.NewServer(t, "gmp", "secret", func(io.ReadWriter) {
		<-release
	})

	defer close(release)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, knownHostsPath, []byte(srv.KnownHostsLine()+"\n"), 0o600))

	tr := newSSH(srv, fs, "secret", WithTimeout(200*time.Millisecond))
	require.NoError(t, tr.Connect(context.Background()))

	defer tr.Disconnect()

	// Larger than the remote channel window, which nobody drains.
	start := time.Now()
	err := tr.Send(bytes.Repeat([]byte("x"), 8<<20))

	assert.ErrorIs(t, err, gvmerr.ErrTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestSSHNotConnected(t *testing.T) {
	tr := NewSSH(SSHConfig{})

	assert.ErrorIs(t, tr.Send([]byte("x")), gvmerr.ErrTransport)

	_, err := tr.Recv()
	assert.ErrorIs(t, err, gvmerr.ErrTransport)

	assert.ErrorIs(t, tr.FinishSend(), gvmerr.ErrTransport)
	assert.NoError(t, tr.Disconnect())
}
