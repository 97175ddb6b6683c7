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

package osp

import (
	"context"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengvm/gvm-go/internal/testing/gvmdtest"
	"github.com/opengvm/gvm-go/pkg/gmp/requests"
	"github.com/opengvm/gvm-go/pkg/gvm"
	"github.com/opengvm/gvm-go/pkg/gvmerr"
	"github.com/opengvm/gvm-go/pkg/transport"
)

func TestBuild(t *testing.T) {
	testcases := map[string]struct {
		in  requests.Builder
		out string
	}{
		"get version": {
			in:  GetVersion{},
			out: `<get_version/>`,
		},
		"get scans defaults": {
			in:  GetScans{},
			out: `<get_scans details="1" pop_results="0"/>`,
		},
		"get scans": {
			in: GetScans{
				ScanID:     "s1",
				Details:    requests.Bool(false),
				PopResults: true,
				MaxResults: requests.Int(10),
			},
			out: `<get_scans scan_id="s1" details="0" pop_results="1" max_results="10"/>`,
		},
		"get vts": {
			in:  GetVTs{VTID: "1.3.6.1"},
			out: `<get_vts vt_id="1.3.6.1"/>`,
		},
		"stop scan": {
			in:  StopScan{ScanID: "s1"},
			out: `<stop_scan scan_id="s1"/>`,
		},
		"start scan legacy target": {
			in:  StartScan{Target: "localhost", Ports: "80"},
			out: `<start_scan parallel="1" target="localhost" ports="80"><scanner_params/></start_scan>`,
		},
		"start scan": {
			in: StartScan{
				ScanID:   "s1",
				Parallel: 2,
				Targets: []Target{{
					Hosts: "10.0.0.1",
					Ports: "22,80",
					Credentials: map[string]Credential{
						"ssh": {Type: "up", Port: "22", Username: "root", Password: "pw"},
					},
				}, {
					Hosts: "10.0.0.2",
				}},
				ScannerParams: map[string]string{"b": "2", "a": "1"},
				VTSelection: &VTSelection{
					Groups: []string{"family=debian"},
					Single: []VT{{ID: "1.3.6", Values: map[string]string{"2": "yes", "1": "no"}}},
				},
			},
			out: `<start_scan scan_id="s1" parallel="2">` +
				`<scanner_params><a>1</a><b>2</b></scanner_params>` +
				`<targets>` +
				`<target><hosts>10.0.0.1</hosts><ports>22,80</ports>` +
				`<credentials><credential type="up" port="22" service="ssh">` +
				`<username>root</username><password>pw</password>` +
				`</credential></credentials></target>` +
				`<target><hosts>10.0.0.2</hosts><ports/></target>` +
				`</targets>` +
				`<vt_selection><vt_group filter="family=debian"/>` +
				`<vt_single id="1.3.6"><vt_value id="1">no</vt_value><vt_value id="2">yes</vt_value></vt_single>` +
				`</vt_selection></start_scan>`,
		},
	}

	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cmd, err := tc.in.Build()
			require.NoError(t, err)
			assert.Equal(t, tc.out, cmd.String())
		})
	}
}

func TestBuildErrors(t *testing.T) {
	testcases := map[string]struct {
		in  requests.Builder
		err error
	}{
		"start scan without target": {in: StartScan{}, err: gvmerr.ErrRequiredArgument},
		"negative parallel":         {in: StartScan{Target: "h", Parallel: -1}, err: gvmerr.ErrInvalidArgument},
		"delete scan without id":    {in: DeleteScan{}, err: gvmerr.ErrRequiredArgument},
		"stop scan without id":      {in: StopScan{}, err: gvmerr.ErrRequiredArgument},
		"negative max results":      {in: GetScans{MaxResults: requests.Int(-1)}, err: gvmerr.ErrInvalidArgument},
	}

	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := tc.in.Build()
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestConnectionPerCommand(t *testing.T) {
	srv := gvmdtest.NewServer(t,
		gvmdtest.WithCloseAfterResponse(),
		gvmdtest.WithHandler("get_version", func(req *etree.Element) string {
			protocol := etree.NewElement("protocol")
			protocol.AddChild(gvmdtest.Element("name", "OSP"))
			protocol.AddChild(gvmdtest.Element("version", "21.4"))

			return gvmdtest.Reply(req.Tag, "200", "OK", protocol)
		}),
		gvmdtest.WithHandler("start_scan", func(req *etree.Element) string {
			return gvmdtest.Reply(req.Tag, "200", "OK", gvmdtest.Element("id", req.SelectAttrValue("scan_id", "")))
		}),
		gvmdtest.WithHandler("stop_scan", func(req *etree.Element) string {
			return gvmdtest.Reply(req.Tag, "404", "Failed to find scan")
		}))

	o := New(transport.NewUnixSocket(srv.Path))
	ctx := context.Background()

	resp, err := o.GetVersion(ctx)
	require.NoError(t, err)

	var v VersionResponse

	require.NoError(t, resp.Decode(&v))
	assert.Equal(t, "OSP", v.Protocol.Name)
	assert.Equal(t, "21.4", v.Protocol.Version)
	assert.Equal(t, gvm.Closed, o.Channel().State())

	resp, err = o.StartScan(ctx, StartScan{ScanID: "s1", Target: "localhost"})
	require.NoError(t, err)
	assert.Equal(t, "s1", resp.Find("id").Text())

	_, err = o.StopScan(ctx, StopScan{ScanID: "s1"})
	assert.ErrorIs(t, err, gvmerr.ErrResponse)

	_, err = o.StopScan(ctx, StopScan{})
	assert.ErrorIs(t, err, gvmerr.ErrRequiredArgument)

	resp, err = o.SendCommand(ctx, `<get_scanner_details/>`)
	require.NoError(t, err)
	assert.Equal(t, "get_scanner_details_response", resp.Name())

	assert.Equal(t, []string{
		`<get_version/>`,
		`<start_scan scan_id="s1" parallel="1" target="localhost"><scanner_params/></start_scan>`,
		`<stop_scan scan_id="s1"/>`,
		`<get_scanner_details/>`,
	}, srv.Requests())
}

func TestConnectFailure(t *testing.T) {
	o := New(transport.NewUnixSocket(t.TempDir() + "/missing.sock"))

	_, err := o.Help(context.Background())
	assert.ErrorIs(t, err, gvmerr.ErrTransport)
}
