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
	"io"

	"github.com/rs/zerolog"
)

// setupLogger returns a console logger writing to out with the provided
// level. An empty level selects warn.
func setupLogger(out io.Writer, level string) (zerolog.Logger, error) {
	// No timestamps, the output is read by humans right away.
	consoleWriter := zerolog.ConsoleWriter{Out: out, NoColor: true}
	consoleWriter.PartsOrder = []string{
		zerolog.LevelFieldName,
		zerolog.CallerFieldName,
		zerolog.MessageFieldName,
	}

	if level == "" {
		level = zerolog.WarnLevel.String()
	}

	ll, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	logger := zerolog.New(consoleWriter).Level(ll)
	logger.Debug().Msgf("Logger is configured with log level %q", ll.String())

	return logger, nil
}
