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
	"context"

	"github.com/spf13/cobra"

	"github.com/opengvm/gvm-go/pkg/transport"
)

func socketCmd(ctx context.Context, a *app) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:          "socket [FILE...]",
		Short:        "Connect to gvmd or ospd through a Unix socket.",
		Example:      "gvm-cli socket --xml '<get_version/>'",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(ctx, cmd, args, func(c *transport.Config) {
				c.Kind = transport.KindUnix

				if cmd.Flags().Changed("socketpath") {
					c.Unix.Path = path
				}
			})
		},
	}

	cmd.Flags().StringVar(&path, "socketpath", transport.DefaultSocketPath,
		"Path to the Unix socket")

	return cmd
}

func tlsCmd(ctx context.Context, a *app) *cobra.Command {
	var cfg transport.TLSConfig

	cmd := &cobra.Command{
		Use:          "tls [FILE...]",
		Short:        "Connect to gvmd or ospd over TLS.",
		Example:      "gvm-cli tls --hostname scanner --port 9390 --protocol OSP --xml '<get_version/>'",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(ctx, cmd, args, func(c *transport.Config) {
				c.Kind = transport.KindTLS
				changed := cmd.Flags().Changed

				if changed("hostname") {
					c.TLS.Hostname = cfg.Hostname
				}

				if changed("port") {
					c.TLS.Port = cfg.Port
				}

				if changed("certfile") {
					c.TLS.CertFile = cfg.CertFile
				}

				if changed("keyfile") {
					c.TLS.KeyFile = cfg.KeyFile
				}

				if changed("cafile") {
					c.TLS.CAFile = cfg.CAFile
				}

				if changed("key-password") {
					c.TLS.KeyPassword = cfg.KeyPassword
				}
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Hostname, "hostname", transport.DefaultTLSHostname, "Hostname or IP address")
	f.IntVar(&cfg.Port, "port", transport.DefaultTLSPort, "Port")
	f.StringVar(&cfg.CertFile, "certfile", "", "Client certificate")
	f.StringVar(&cfg.KeyFile, "keyfile", "", "Client private key")
	f.StringVar(&cfg.CAFile, "cafile", "", "CA certificate the server certificate must chain to")
	f.StringVar(&cfg.KeyPassword, "key-password", "", "Password of an encrypted private key")

	return cmd
}

func sshCmd(ctx context.Context, a *app) *cobra.Command {
	var cfg transport.SSHConfig

	cmd := &cobra.Command{
		Use:          "ssh [FILE...]",
		Short:        "Connect to gvmd through SSH.",
		Example:      "gvm-cli ssh --hostname gvm.example.com --ssh-username gmp --xml '<get_version/>'",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(ctx, cmd, args, func(c *transport.Config) {
				c.Kind = transport.KindSSH
				changed := cmd.Flags().Changed

				if changed("hostname") {
					c.SSH.Hostname = cfg.Hostname
				}

				if changed("port") {
					c.SSH.Port = cfg.Port
				}

				if changed("ssh-username") {
					c.SSH.Username = cfg.Username
				}

				if changed("ssh-password") {
					c.SSH.Password = cfg.Password
				}

				if changed("known-hosts") {
					c.SSH.KnownHostsFile = cfg.KnownHostsFile
				}

				if changed("auto-accept-host") {
					c.SSH.AutoAcceptHost = cfg.AutoAcceptHost
				}
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Hostname, "hostname", transport.DefaultSSHHostname, "Hostname or IP address")
	f.IntVar(&cfg.Port, "port", transport.DefaultSSHPort, "Port")
	f.StringVar(&cfg.Username, "ssh-username", transport.DefaultSSHUsername, "SSH user")
	f.StringVar(&cfg.Password, "ssh-password", "", "SSH password")
	f.StringVar(&cfg.KnownHostsFile, "known-hosts", "", "known_hosts file (default ~/.ssh/known_hosts)")
	f.BoolVar(&cfg.AutoAcceptHost, "auto-accept-host", false,
		"Trust and store unknown host keys without asking")

	return cmd
}
