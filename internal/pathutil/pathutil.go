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

package pathutil

import (
	"os"
	"path/filepath"
)

const appName = "gvm-go"

// homeDir returns $HOME, falling back to os.UserHomeDir and then to "/".
func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Clean(home)
	}

	if home, err := os.UserHomeDir(); err == nil {
		return home
	}

	return "/"
}

// ConfigPath returns the gvm-go config path ($XDG_CONFIG_HOME or ~/.config)
// with the given relative path appended.
func ConfigPath(path string) string {
	path = filepath.Clean(path)

	base := filepath.Join(homeDir(), ".config")
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		base = filepath.Clean(dir)
	}

	return filepath.Join(base, appName, path)
}

// ConfigDir returns the root gvm-go config directory.
func ConfigDir() string {
	return ConfigPath("")
}

// ConfigFile returns GVM_GO_CONFIG if set, or config.yaml in ConfigDir.
func ConfigFile() string {
	if file := os.Getenv("GVM_GO_CONFIG"); file != "" {
		return filepath.Clean(file)
	}

	return ConfigPath("config.yaml")
}

// KnownHostsFile returns the OpenSSH known_hosts file of the current user.
func KnownHostsFile() string {
	return filepath.Join(homeDir(), ".ssh", "known_hosts")
}

// ExpandHome replaces a leading "~/" with the home directory.
func ExpandHome(path string) string {
	if path == "~" {
		return homeDir()
	}

	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(homeDir(), path[2:])
	}

	return path
}
