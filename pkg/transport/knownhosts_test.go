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
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

func newTestKey(t *testing.T) ssh.PublicKey {
	t.Helper()

	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	key, err := ssh.NewPublicKey(pub)
	require.NoError(t, err)

	return key
}

func TestCanonicalHost(t *testing.T) {
	testcases := map[string]struct {
		host string
		port int
		out  string
	}{
		"default port": {host: "gvm.example.com", port: 22, out: "gvm.example.com"},
		"custom port":  {host: "gvm.example.com", port: 2222, out: "[gvm.example.com]:2222"},
		"ipv4":         {host: "127.0.0.1", port: 22, out: "127.0.0.1"},
		"ipv6":         {host: "::1", port: 2222, out: "[::1]:2222"},
		"ipv6 default": {host: "::1", port: 22, out: "::1"},
	}

	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.out, CanonicalHost(tc.host, tc.port))
		})
	}
}

func TestKnownHostsLookup(t *testing.T) {
	key := newTestKey(t)
	other := newTestKey(t)
	authorized := string(ssh.MarshalAuthorizedKey(key))
	authorized = strings.TrimSpace(authorized)

	testcases := map[string]struct {
		content string
		host    string
		found   bool
	}{
		"plain": {
			content: "gvm.example.com " + authorized,
			host:    "gvm.example.com",
			found:   true,
		},
		"list of hosts": {
			content: "a.example.com,gvm.example.com " + authorized,
			host:    "gvm.example.com",
			found:   true,
		},
		"custom port": {
			content: "[gvm.example.com]:2222 " + authorized,
			host:    "[gvm.example.com]:2222",
			found:   true,
		},
		"port does not match": {
			content: "[gvm.example.com]:2222 " + authorized,
			host:    "gvm.example.com",
		},
		"hashed": {
			content: knownhosts.HashHostname("gvm.example.com") + " " + authorized,
			host:    "gvm.example.com",
			found:   true,
		},
		"hashed other host": {
			content: knownhosts.HashHostname("other.example.com") + " " + authorized,
			host:    "gvm.example.com",
		},
		"wildcard": {
			content: "*.example.com " + authorized,
			host:    "gvm.example.com",
			found:   true,
		},
		"brackets are literal": {
			content: "[gvm.example.com]:2222 " + authorized,
			host:    "g:2222",
		},
		"wildcard with port": {
			content: "[*.example.com]:2222 " + authorized,
			host:    "[gvm.example.com]:2222",
			found:   true,
		},
		"single character wildcard": {
			content: "gvm?.example.com " + authorized,
			host:    "gvm1.example.com",
			found:   true,
		},
		"negated": {
			content: "*.example.com,!gvm.example.com " + authorized,
			host:    "gvm.example.com",
		},
		"revoked is ignored": {
			content: "@revoked gvm.example.com " + authorized,
			host:    "gvm.example.com",
		},
		"comments and garbage": {
			content: "# comment\n\nnot a key line\ngvm.example.com " + authorized,
			host:    "gvm.example.com",
			found:   true,
		},
	}

	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/known_hosts", []byte(tc.content), 0o600))

			hosts, err := LoadKnownHosts(fs, "/known_hosts")
			require.NoError(t, err)

			keys := hosts.Lookup(tc.host)
			if !tc.found {
				assert.Empty(t, keys)
				return
			}

			require.Len(t, keys, 1)
			assert.Equal(t, key.Marshal(), keys[0].Marshal())
			assert.NotEqual(t, other.Marshal(), keys[0].Marshal())
		})
	}
}

func TestWildcard(t *testing.T) {
	testcases := map[string]struct {
		pattern string
		host    string
		match   bool
	}{
		"exact":             {pattern: "gvm.example.com", host: "gvm.example.com", match: true},
		"different":         {pattern: "gvm.example.com", host: "gmp.example.com"},
		"star":              {pattern: "*", host: "anything", match: true},
		"star prefix":       {pattern: "*.example.com", host: "a.b.example.com", match: true},
		"star backtracks":   {pattern: "*a*b", host: "xxaxxab", match: true},
		"star needs suffix": {pattern: "*.example.com", host: "example.org"},
		"question mark":     {pattern: "10.0.0.?", host: "10.0.0.7", match: true},
		"question mark one": {pattern: "10.0.0.?", host: "10.0.0.17"},
		"bracket literal":   {pattern: "[10.0.0.1]:22", host: "[10.0.0.1]:22", match: true},
		"bracket no class":  {pattern: "[ab]", host: "a"},
		"backslash literal": {pattern: `a\b`, host: `a\b`, match: true},
		"trailing stars":    {pattern: "gvm**", host: "gvm", match: true},
		"empty pattern":     {pattern: "", host: "gvm"},
	}

	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.match, wildcard(tc.pattern, tc.host))
		})
	}
}

func TestKnownHostsMissingFile(t *testing.T) {
	hosts, err := LoadKnownHosts(afero.NewMemMapFs(), "/home/user/.ssh/known_hosts")
	require.NoError(t, err)
	assert.Empty(t, hosts.Lookup("gvm.example.com"))
}

func TestKnownHostsAddSave(t *testing.T) {
	fs := afero.NewMemMapFs()
	existing := "# keep me\nold.example.com " +
		strings.TrimSpace(string(ssh.MarshalAuthorizedKey(newTestKey(t)))) + "\n"
	require.NoError(t, afero.WriteFile(fs, "/kh", []byte(existing), 0o600))

	hosts, err := LoadKnownHosts(fs, "/kh")
	require.NoError(t, err)

	key := newTestKey(t)
	hosts.Add("[gvm.example.com]:2222", key)
	require.NoError(t, hosts.Save())

	data, err := afero.ReadFile(fs, "/kh")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), existing))
	assert.Contains(t, string(data), "[gvm.example.com]:2222 ssh-ed25519 ")

	reloaded, err := LoadKnownHosts(fs, "/kh")
	require.NoError(t, err)
	require.Len(t, reloaded.Lookup("[gvm.example.com]:2222"), 1)
	assert.Len(t, reloaded.Lookup("old.example.com"), 1)
}
