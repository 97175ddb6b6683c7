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

// Package config reads the gvm-cli configuration file.
package config

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strings"
	"text/template"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/opengvm/gvm-go/internal/atomicfile"
	"github.com/opengvm/gvm-go/pkg/transport"
)

const configTemplateName = "config.yaml.tmpl"

//go:embed config.yaml.tmpl
var configFS embed.FS

var configTmpl = template.Must(
	template.New(configTemplateName).ParseFS(configFS, configTemplateName),
)

var (
	ErrInvalidProtocol = errors.New("invalid protocol")
	ErrInvalidLogLevel = errors.New("invalid log level")
)

type Protocol string

const (
	ProtocolGMP Protocol = "GMP"
	ProtocolOSP Protocol = "OSP"
)

// ParseProtocol accepts GMP or OSP in any case.
func ParseProtocol(s string) (Protocol, error) {
	switch p := Protocol(strings.ToUpper(strings.TrimSpace(s))); p {
	case ProtocolGMP, ProtocolOSP:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidProtocol, s)
	}
}

type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// Config holds everything gvm-cli reads from its configuration file.
type Config struct {
	Connection      transport.Config `yaml:"connection"`
	Protocol        Protocol         `yaml:"protocol"`
	GMP             GMPConfig        `yaml:"gmp"`
	Logging         LoggingConfig    `yaml:"logging"`
	MaxResponseSize ByteSize[int64]  `yaml:"max_response_size"`
}

// GMPConfig holds the credentials used to authenticate before the first
// command. Authentication is skipped when Username is empty.
type GMPConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type LoggingConfig struct {
	// Level defines the minimum logging severity level (debug, info, warn, error).
	Level LogLevel `yaml:"level"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Connection: transport.Config{
			Kind: transport.KindUnix,
			Unix: transport.UnixConfig{Path: transport.DefaultSocketPath},
		},
		Protocol: ProtocolGMP,
		Logging:  LoggingConfig{Level: WarnLevel},
	}
}

// Validate normalises Protocol and checks the enumerated fields.
func (c *Config) Validate() error {
	p, err := ParseProtocol(string(c.Protocol))
	if err != nil {
		return err
	}

	c.Protocol = p

	switch c.Logging.Level {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	return nil
}

// Load reads file on top of Default. A missing file is not an error.
func Load(fsys afero.Fs, file string) (*Config, error) {
	cfg := Default()

	data, err := afero.ReadFile(fsys, file)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

type initOptions struct {
	SocketPath string
	TLSPort    int
	SSHPort    int
}

// Init writes a commented default configuration to file and returns it
// parsed. The file may hold passwords, so it is created with mode 0600.
func Init(fsys afero.Fs, file string) (*Config, error) {
	var buf bytes.Buffer

	opts := initOptions{
		SocketPath: transport.DefaultSocketPath,
		TLSPort:    transport.DefaultTLSPort,
		SSHPort:    transport.DefaultSSHPort,
	}

	if err := configTmpl.Execute(&buf, opts); err != nil {
		return nil, fmt.Errorf("render config template: %w", err)
	}

	if err := atomicfile.WriteFileWithFs(fsys, file, buf.Bytes(), 0o600); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(buf.Bytes(), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

type Integeric interface {
	~int | ~int64 | ~uint64
}

// ByteSize is a size in bytes written in human readable form, e.g. "512MB".
type ByteSize[T Integeric] struct {
	Bytes T
	Raw   string
}

// String returns the size without spaces, e.g. "20GB".
func (x ByteSize[T]) String() string {
	return strings.ReplaceAll(humanize.Bytes(uint64(x.Bytes)), " ", "")
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (x *ByteSize[T]) UnmarshalYAML(value *yaml.Node) error {
	return x.Set(value.Value)
}

// Set parses s, so ByteSize can also back a command line flag.
func (x *ByteSize[T]) Set(s string) error {
	parsed, err := humanize.ParseBytes(s)
	if err != nil {
		return err
	}

	switch any(x.Bytes).(type) {
	case int, int64:
		if parsed > math.MaxInt64 {
			return fmt.Errorf("value %d exceeds int64 capacity", parsed)
		}
	}

	x.Raw = s
	x.Bytes = T(parsed)

	return nil
}

// Type implements pflag.Value.
func (x *ByteSize[T]) Type() string {
	return "size"
}
