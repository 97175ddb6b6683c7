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

package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/opengvm/gvm-go/internal/config"
)

// commonFlags are shared by all connection subcommands.
type commonFlags struct {
	configFile      string
	logLevel        string
	timeout         time.Duration
	protocol        string
	xml             string
	pretty          bool
	duration        bool
	raw             bool
	gmpUsername     string
	gmpPassword     string
	maxResponseSize config.ByteSize[int64]
}

func (f *commonFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()

	pf.StringVarP(&f.configFile, "config", "c", "",
		"Configuration file (default $XDG_CONFIG_HOME/gvm-go/config.yaml, or $GVM_GO_CONFIG)")
	pf.StringVar(&f.logLevel, "log-level", "",
		"Log level (debug, info, warn, error)")
	pf.DurationVar(&f.timeout, "timeout", 0,
		"Response timeout, 0 for the default of 60s and -1s to wait forever")
	pf.StringVar(&f.protocol, "protocol", "",
		"Protocol spoken by the server (GMP or OSP)")
	pf.StringVarP(&f.xml, "xml", "X", "",
		"XML request to send")
	pf.BoolVar(&f.pretty, "pretty", false,
		"Pretty print the response")
	pf.BoolVar(&f.duration, "duration", false,
		"Print how long the command took")
	pf.BoolVar(&f.raw, "raw", false,
		"Print error responses instead of failing on them")
	pf.StringVar(&f.gmpUsername, "gmp-username", "",
		"GMP user to authenticate as before sending the request")
	pf.StringVar(&f.gmpPassword, "gmp-password", "",
		"Password of the GMP user, prompted for when missing on a terminal")
	pf.Var(&f.maxResponseSize, "max-response-size",
		"Reject responses larger than this, e.g. 512MB")
}

// apply overrides cfg with the flags given on the command line.
func (f *commonFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed

	if changed("log-level") {
		cfg.Logging.Level = config.LogLevel(f.logLevel)
	}

	if changed("timeout") {
		cfg.Connection.Timeout = f.timeout
	}

	if changed("protocol") {
		cfg.Protocol = config.Protocol(f.protocol)
	}

	if changed("gmp-username") {
		cfg.GMP.Username = f.gmpUsername
	}

	if changed("gmp-password") {
		cfg.GMP.Password = f.gmpPassword
	}

	if changed("max-response-size") {
		cfg.MaxResponseSize = f.maxResponseSize
	}

	return cfg.Validate()
}
