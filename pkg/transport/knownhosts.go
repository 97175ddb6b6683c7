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
	"bufio"
	"bytes"
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // known_hosts hashing is defined with SHA-1
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/opengvm/gvm-go/internal/atomicfile"
)

// KnownHosts is an OpenSSH known_hosts file. Lines are kept verbatim so
// rewriting the file preserves entries that are not understood.
type KnownHosts struct {
	fs    afero.Fs
	path  string
	lines []string
}

// LoadKnownHosts reads path from fsys. A missing file yields an empty set.
func LoadKnownHosts(fsys afero.Fs, path string) (*KnownHosts, error) {
	k := &KnownHosts{fs: fsys, path: path}

	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return k, nil
	} else if err != nil {
		return nil, fmt.Errorf("reading known hosts: %w", err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		k.lines = append(k.lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading known hosts: %w", err)
	}

	return k, nil
}

// Path returns the file the set was loaded from.
func (k *KnownHosts) Path() string {
	return k.path
}

// Lookup returns the keys stored for host, which must be in canonical form
// (see CanonicalHost). Revoked and certificate authority entries are ignored.
func (k *KnownHosts) Lookup(host string) []ssh.PublicKey {
	var keys []ssh.PublicKey

	for _, line := range k.lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed[0] == '#' {
			continue
		}

		marker, hosts, key, _, _, err := ssh.ParseKnownHosts([]byte(trimmed))
		if err != nil || marker != "" {
			continue
		}

		if matchHosts(hosts, host) {
			keys = append(keys, key)
		}
	}

	return keys
}

// Add appends an entry for host.
func (k *KnownHosts) Add(host string, key ssh.PublicKey) {
	k.lines = append(k.lines, knownhosts.Line([]string{host}, key))
}

// Save rewrites the whole file atomically.
func (k *KnownHosts) Save() error {
	var buf bytes.Buffer

	for _, line := range k.lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	if err := atomicfile.WriteFileWithFs(k.fs, k.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing known hosts: %w", err)
	}

	return nil
}

// CanonicalHost returns the known_hosts form of hostname and port: the bare
// host on port 22 and [host]:port otherwise.
func CanonicalHost(hostname string, port int) string {
	return knownhosts.Normalize(fmt.Sprintf("[%s]:%d", strings.Trim(hostname, "[]"), port))
}

// matchHosts applies the pattern list of a known_hosts line to host.
// A matching negated pattern excludes the line.
func matchHosts(patterns []string, host string) bool {
	matched := false

	for _, p := range patterns {
		negate := strings.HasPrefix(p, "!")
		p = strings.TrimPrefix(p, "!")

		if !matchHost(p, host) {
			continue
		}

		if negate {
			return false
		}

		matched = true
	}

	return matched
}

func matchHost(pattern, host string) bool {
	if strings.HasPrefix(pattern, "|1|") {
		return matchHashed(pattern, host)
	}

	return wildcard(pattern, host)
}

// wildcard matches s against an OpenSSH host pattern, where only * and ?
// are special. Brackets are literal, as in [host]:port.
func wildcard(pattern, s string) bool {
	p, i := 0, 0
	star, next := -1, 0

	for i < len(s) {
		switch {
		case p < len(pattern) && pattern[p] == '*':
			star, next = p, i
			p++
		case p < len(pattern) && (pattern[p] == '?' || pattern[p] == s[i]):
			p++
			i++
		case star >= 0:
			next++
			p, i = star+1, next
		default:
			return false
		}
	}

	for p < len(pattern) && pattern[p] == '*' {
		p++
	}

	return p == len(pattern)
}

func matchHashed(entry, host string) bool {
	parts := strings.Split(entry, "|")
	if len(parts) != 4 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return false
	}

	want, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil {
		return false
	}

	mac := hmac.New(sha1.New, salt)
	mac.Write([]byte(host))

	return hmac.Equal(mac.Sum(nil), want)
}
