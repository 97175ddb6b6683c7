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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengvm/gvm-go/pkg/gvmerr"
)

func TestParse(t *testing.T) {
	testcases := map[string]struct {
		parse func(string) (string, error)
		in    string
		out   string
	}{
		"alert condition by value": {
			parse: wrap(ParseAlertCondition),
			in:    "Severity at least",
			out:   "Severity at least",
		},
		"alert condition by name": {
			parse: wrap(ParseAlertCondition),
			in:    "severity_at_least",
			out:   "Severity at least",
		},
		"alert method with space": {
			parse: wrap(ParseAlertMethod),
			in:    "start task",
			out:   "Start Task",
		},
		"alive test alias": {
			parse: wrap(ParseAliveTest),
			in:    "ICMP_TCP_ACK_SERVICE_AND_ARP_PING",
			out:   "ICMP, TCP-ACK Service & ARP Ping",
		},
		"alive test dashes": {
			parse: wrap(ParseAliveTest),
			in:    "tcp-syn service ping",
			out:   "TCP-SYN Service Ping",
		},
		"scanner type by id": {
			parse: wrap(ParseScannerType),
			in:    "2",
			out:   "2",
		},
		"scanner type by name": {
			parse: wrap(ParseScannerType),
			in:    "greenbone_sensor_scanner_type",
			out:   "5",
		},
		"credential type by name": {
			parse: wrap(ParseCredentialType),
			in:    "USERNAME_PASSWORD",
			out:   "up",
		},
		"entity type os": {
			parse: wrap(ParseEntityType),
			in:    "operating system",
			out:   "os",
		},
		"entity type scan config": {
			parse: wrap(ParseEntityType),
			in:    "scan_config",
			out:   "config",
		},
		"feed type": {
			parse: wrap(ParseFeedType),
			in:    "gvmd_data",
			out:   "GVMD_DATA",
		},
		"info type": {
			parse: wrap(ParseInfoType),
			in:    "cert_bund_adv",
			out:   "CERT_BUND_ADV",
		},
		"resource type": {
			parse: wrap(ParseResourceType),
			in:    "TLS_CERTIFICATE",
			out:   "tls_certificate",
		},
		"surrounding space": {
			parse: wrap(ParseSortOrder),
			in:    "  Descending ",
			out:   "descending",
		},
	}

	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, err := tc.parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.out, out)
		})
	}
}

func wrap[T ~string](parse func(string) (T, error)) func(string) (string, error) {
	return func(s string) (string, error) {
		v, err := parse(s)
		return string(v), err
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := ParseAlertEvent("foo")
	assert.ErrorIs(t, err, gvmerr.ErrInvalidArgument)
	assert.EqualError(t, err, `Invalid argument event "foo"`)

	_, err = ParseTicketStatus("")
	assert.ErrorIs(t, err, gvmerr.ErrInvalidArgument)
}

func TestValid(t *testing.T) {
	assert.True(t, AlertMethodEmail.Valid())
	assert.True(t, TicketStatusFixed.Valid())
	assert.False(t, AlertMethod("Pigeon").Valid())
	assert.False(t, EntityType("").Valid())
}
