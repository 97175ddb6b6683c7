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

// Package cli implements the gvm-cli command line.
package cli

import (
	"context"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type Option func(*app)

// WithFs sets the filesystem used for the config file, XML input files,
// certificates and known_hosts.
func WithFs(fs afero.Fs) Option {
	return func(a *app) {
		a.fs = fs
	}
}

func RootCmd(ctx context.Context, opts ...Option) *cobra.Command {
	a := &app{fs: afero.NewOsFs()}

	for _, opt := range opts {
		opt(a)
	}

	cmd := &cobra.Command{
		Use:   "gvm-cli",
		Short: "Send raw GMP and OSP commands to gvmd and ospd scanners.",
		Long: `Send raw GMP and OSP commands to gvmd and ospd scanners.

The XML request is taken from --xml, from the files given as arguments or
from standard input, in this order.`,
		// Silence because we want to use our logger instead
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolP("help", "h", false,
		"Help information about a command")

	a.flags.register(cmd)

	cmd.AddCommand(socketCmd(ctx, a))
	cmd.AddCommand(tlsCmd(ctx, a))
	cmd.AddCommand(sshCmd(ctx, a))
	cmd.AddCommand(configCmd(a))

	cmd.InitDefaultHelpCmd()

	return cmd
}
