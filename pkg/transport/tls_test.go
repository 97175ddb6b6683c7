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

package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"io"
	"net"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	certtest "github.com/opengvm/gvm-go/internal/testing/cert"
	"github.com/opengvm/gvm-go/pkg/gvmerr"
)

// serveTLS accepts one TLS connection, echoes everything until the client
// finishes sending and closes.
func serveTLS(t *testing.T, cfg *tls.Config) (string, int) {
	t.Helper()

	ln, err := tls.Listen("tcp", "127.0.0.1:0", cfg)
	require.NoError(t, err)

	var g errgroup.Group

	g.Go(func() error {
		conn, err := ln.Accept()
		if err != nil {
			return nil
		}

		defer conn.Close()

		//nolint:errcheck // handshake failures are observed by the client
		conn.(*tls.Conn).Handshake()

		data, err := io.ReadAll(conn)
		if err != nil {
			return nil
		}

		//nolint:errcheck // observed by the client
		conn.Write(data)

		return nil
	})

	t.Cleanup(func() {
		ln.Close()
		//nolint:errcheck // handler never fails
		g.Wait()
	})

	addr := ln.Addr().(*net.TCPAddr) //nolint:forcetypeassert // tcp listener

	return addr.IP.String(), addr.Port
}

func exchange(t *testing.T, tr Transport, request string) string {
	t.Helper()

	require.NoError(t, tr.Send([]byte(request)))
	require.NoError(t, tr.FinishSend())

	var got []byte

	for {
		chunk, err := tr.Recv()
		if err == io.EOF {
			break
		}

		require.NoError(t, err)

		got = append(got, chunk...)
	}

	return string(got)
}

func TestTLSVerified(t *testing.T) {
	ca := certtest.GenerateTestCA(t)
	server := certtest.GenerateTestCertificate(t, certtest.WithCA(ca),
		certtest.WithCommonName("scanner.invalid"))
	client := certtest.GenerateTestCertificate(t, certtest.WithCA(ca))

	clientCAs := x509.NewCertPool()
	clientCAs.AddCert(ca.Leaf)

	host, port := serveTLS(t, &tls.Config{
		Certificates: []tls.Certificate{server},
		ClientAuth:   tls.RequireAndVerifyClientCert,
		ClientCAs:    clientCAs,
		MinVersion:   tls.VersionTLS12,
	})

	fs := afero.NewMemMapFs()
	files := certtest.WriteFiles(t, fs, "/certs", client, ca)

	tr := NewTLS(TLSConfig{
		Hostname: host,
		Port:     port,
		CertFile: files.Cert,
		CAFile:   files.CA,
		KeyFile:  files.Key,
	}, WithFs(fs), WithTimeout(5*time.Second))

	require.NoError(t, tr.Connect(context.Background()))
	require.NoError(t, tr.Connect(context.Background()))

	assert.Equal(t, "<get_scans/>", exchange(t, tr, "<get_scans/>"))

	require.NoError(t, tr.Disconnect())
	require.NoError(t, tr.Disconnect())
}

func TestTLSUnknownCA(t *testing.T) {
	ca := certtest.GenerateTestCA(t)
	otherCA := certtest.GenerateTestCA(t)
	server := certtest.GenerateTestCertificate(t, certtest.WithCA(otherCA))
	client := certtest.GenerateTestCertificate(t, certtest.WithCA(ca))

	host, port := serveTLS(t, &tls.Config{
		Certificates: []tls.Certificate{server},
		MinVersion:   tls.VersionTLS12,
	})

	fs := afero.NewMemMapFs()
	files := certtest.WriteFiles(t, fs, "/certs", client, ca)

	tr := NewTLS(TLSConfig{
		Hostname: host,
		Port:     port,
		CertFile: files.Cert,
		CAFile:   files.CA,
		KeyFile:  files.Key,
	}, WithFs(fs), WithTimeout(5*time.Second))

	err := tr.Connect(context.Background())
	assert.ErrorIs(t, err, gvmerr.ErrAuth)
}

func TestTLSUnverified(t *testing.T) {
	server := certtest.GenerateTestCertificate(t)

	host, port := serveTLS(t, &tls.Config{
		Certificates: []tls.Certificate{server},
		MinVersion:   tls.VersionTLS12,
	})

	// A CA alone is not enough to enable verification.
	tr := NewTLS(TLSConfig{Hostname: host, Port: port, CAFile: "/missing/ca.pem"},
		WithFs(afero.NewMemMapFs()), WithTimeout(5*time.Second))

	require.NoError(t, tr.Connect(context.Background()))

	defer tr.Disconnect()

	assert.Equal(t, "<help/>", exchange(t, tr, "<help/>"))
}

func TestTLSOldProtocolRejected(t *testing.T) {
	server := certtest.GenerateTestCertificate(t)

	host, port := serveTLS(t, &tls.Config{
		Certificates: []tls.Certificate{server},
		MinVersion:   tls.VersionTLS10,
		MaxVersion:   tls.VersionTLS11,
	})

	tr := NewTLS(TLSConfig{Hostname: host, Port: port}, WithTimeout(5*time.Second))

	err := tr.Connect(context.Background())
	assert.ErrorIs(t, err, gvmerr.ErrAuth)
}

func TestTLSMissingCertificateFiles(t *testing.T) {
	tr := NewTLS(TLSConfig{
		CertFile: "/c.pem",
		CAFile:   "/ca.pem",
		KeyFile:  "/c.key",
	}, WithFs(afero.NewMemMapFs()))

	err := tr.Connect(context.Background())
	assert.ErrorIs(t, err, gvmerr.ErrAuth)
	assert.ErrorContains(t, err, "could not load client certificate")
}

func TestTLSConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := ln.Addr().(*net.TCPAddr) //nolint:forcetypeassert // tcp listener
	ln.Close()

	tr := NewTLS(TLSConfig{Hostname: "127.0.0.1", Port: addr.Port})

	err = tr.Connect(context.Background())
	assert.ErrorIs(t, err, gvmerr.ErrTransport)
}
