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
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/opengvm/gvm-go/internal/config"
	"github.com/opengvm/gvm-go/internal/pathutil"
)

func configCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the gvm-cli configuration file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var force bool

	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Write a configuration file with the default settings.",
		Example:      "gvm-cli config init",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			file := a.flags.configFile
			if file == "" {
				file = pathutil.ConfigFile()
			}

			file = pathutil.ExpandHome(file)

			exists, err := afero.Exists(a.fs, file)
			if err != nil {
				return err
			}

			if exists && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite it", file)
			}

			if _, err := config.Init(a.fs, file); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", file)

			return nil
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.AddCommand(initCmd)

	return cmd
}
