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
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/opengvm/gvm-go/internal/config"
	"github.com/opengvm/gvm-go/internal/pathutil"
	"github.com/opengvm/gvm-go/pkg/gmp"
	"github.com/opengvm/gvm-go/pkg/gvm"
	"github.com/opengvm/gvm-go/pkg/osp"
	"github.com/opengvm/gvm-go/pkg/transport"
)

var (
	ErrNoInput    = errors.New("no XML request given, use --xml, a file argument or stdin")
	ErrNoPassword = errors.New("--gmp-password must be specified")
)

type app struct {
	fs    afero.Fs
	flags commonFlags
}

func (a *app) run(ctx context.Context, cmd *cobra.Command, args []string,
	override func(*transport.Config)) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	override(&cfg.Connection)

	logger, err := setupLogger(cmd.ErrOrStderr(), string(cfg.Logging.Level))
	if err != nil {
		return err
	}

	xml, err := a.readInput(cmd, args)
	if err != nil {
		return err
	}

	t, err := a.transport(cmd, cfg, logger)
	if err != nil {
		return err
	}

	chOpts := []gvm.Option{
		gvm.WithLogger(logger),
		gvm.WithTimeout(cfg.Connection.Timeout),
		gvm.WithMaxResponseSize(cfg.MaxResponseSize.Bytes),
	}

	if a.flags.raw {
		chOpts = append(chOpts, gvm.WithTransform(gvm.TransformRaw))
	}

	start := time.Now()

	resp, err := a.send(ctx, cmd, cfg, t, chOpts, xml, logger)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	out := resp.String()
	if a.flags.pretty {
		if out, err = resp.Pretty(); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, strings.TrimRight(out, "\n"))

	if a.flags.duration {
		fmt.Fprintf(w, "Elapsed time: %.3f seconds\n", elapsed.Seconds())
	}

	return nil
}

func (a *app) send(ctx context.Context, cmd *cobra.Command, cfg *config.Config, t transport.Transport,
	opts []gvm.Option, xml string, logger zerolog.Logger) (*gvm.Response, error) {
	if cfg.Protocol == config.ProtocolOSP {
		return osp.New(t, opts...).SendCommand(ctx, xml)
	}

	ch := gvm.NewChannel(t, opts...)

	d, err := gmp.Connect(ctx, ch, gmp.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	//nolint:errcheck // the response is already read
	defer d.Disconnect()

	if cfg.GMP.Username != "" {
		if err := a.authenticate(ctx, cmd, d, cfg.GMP); err != nil {
			return nil, err
		}
	}

	return d.SendCommand(ctx, xml)
}

func (a *app) authenticate(ctx context.Context, cmd *cobra.Command, d gmp.Dialect, creds config.GMPConfig) error {
	password := creds.Password

	if password == "" {
		fd, ok := terminal(cmd.InOrStdin())
		if !ok {
			return ErrNoPassword
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Enter password for %s: ", creds.Username)

		b, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())

		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		password = string(b)
	}

	_, err := d.Authenticate(ctx, creds.Username, password)

	return err
}

func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file := a.flags.configFile
	if file == "" {
		file = pathutil.ConfigFile()
	}

	cfg, err := config.Load(a.fs, pathutil.ExpandHome(file))
	if err != nil {
		return nil, err
	}

	if err := a.flags.apply(cmd, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// readInput returns the request from --xml, the file arguments or stdin.
// Standard input is not read when it is a terminal.
func (a *app) readInput(cmd *cobra.Command, args []string) (string, error) {
	if a.flags.xml != "" {
		return a.flags.xml, nil
	}

	if len(args) > 0 {
		var b strings.Builder

		for _, name := range args {
			data, err := afero.ReadFile(a.fs, name)
			if err != nil {
				return "", fmt.Errorf("reading %s: %w", name, err)
			}

			b.Write(data)
		}

		return strings.TrimSpace(b.String()), nil
	}

	in := cmd.InOrStdin()
	if _, ok := terminal(in); ok {
		return "", ErrNoInput
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read request from stdin: %w", err)
	}

	xml := strings.TrimSpace(string(data))
	if xml == "" {
		return "", ErrNoInput
	}

	return xml, nil
}

func (a *app) transport(cmd *cobra.Command, cfg *config.Config, logger zerolog.Logger) (transport.Transport, error) {
	opts := []transport.Option{
		transport.WithLogger(logger),
		transport.WithFs(a.fs),
	}

	// Unknown SSH host keys are asked about only when someone can answer.
	if _, ok := terminal(cmd.InOrStdin()); ok && !cfg.Connection.SSH.AutoAcceptHost {
		opts = append(opts, transport.WithHostKeyDecision(transport.InteractivePrompt{
			In:  cmd.InOrStdin(),
			Out: cmd.ErrOrStderr(),
		}))
	}

	t, err := transport.New(cfg.Connection, opts...)
	if err != nil {
		return nil, err
	}

	if cfg.Logging.Level == config.DebugLevel {
		return transport.NewDebug(t, logger), nil
	}

	return t, nil
}

// terminal returns the file descriptor of r when r is an interactive
// terminal.
func terminal(r io.Reader) (int, bool) {
	f, ok := r.(*os.File)
	if !ok {
		return 0, false
	}

	fd := int(f.Fd()) //nolint:gosec // file descriptors fit into int

	return fd, term.IsTerminal(fd)
}
