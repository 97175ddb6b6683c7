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
	"fmt"
	"time"

	"github.com/opengvm/gvm-go/pkg/gvmerr"
)

// Kind selects the transport variant of a Config.
type Kind string

const (
	KindUnix Kind = "unix"
	KindTLS  Kind = "tls"
	KindSSH  Kind = "ssh"
)

// Config describes one transport. Only the section matching Kind is used.
type Config struct {
	Kind    Kind          `yaml:"kind"`
	Timeout time.Duration `yaml:"timeout"`
	Unix    UnixConfig    `yaml:"unix"`
	TLS     TLSConfig     `yaml:"tls"`
	SSH     SSHConfig     `yaml:"ssh"`
}

// UnixConfig describes a Unix socket connection.
type UnixConfig struct {
	Path string `yaml:"path"`
}

// New builds the transport selected by cfg.Kind. Options given here take
// precedence over cfg.Timeout.
func New(cfg Config, opts ...Option) (Transport, error) {
	opts = append([]Option{WithTimeout(cfg.Timeout)}, opts...)

	switch cfg.Kind {
	case KindUnix, "":
		return NewUnixSocket(cfg.Unix.Path, opts...), nil
	case KindTLS:
		return NewTLS(cfg.TLS, opts...), nil
	case KindSSH:
		return NewSSH(cfg.SSH, opts...), nil
	default:
		return nil, gvmerr.Invalid("", "kind", fmt.Sprintf("unknown transport kind %q", cfg.Kind))
	}
}
