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

// Package cert generates throw-away certificates for TLS tests.
package cert

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
)

type certOptions struct {
	template *x509.Certificate
	parent   *x509.Certificate
	priv     any
}

// CertificateOption customises a generated certificate.
type CertificateOption func(tb testing.TB, o *certOptions)

// WithCommonName overrides the certificate's Common Name.
func WithCommonName(cn string) CertificateOption {
	return func(_ testing.TB, o *certOptions) {
		o.template.Subject.CommonName = cn
	}
}

// WithIPAddresses adds IP Subject Alternative Names.
func WithIPAddresses(ips ...net.IP) CertificateOption {
	return func(_ testing.TB, o *certOptions) {
		o.template.IPAddresses = append(o.template.IPAddresses, ips...)
	}
}

// WithCA signs the certificate with ca. By default it is self-signed.
func WithCA(ca tls.Certificate) CertificateOption {
	return func(tb testing.TB, o *certOptions) {
		parent, err := x509.ParseCertificate(ca.Certificate[0])
		if err != nil {
			tb.Fatalf("invalid CA certificate: %v", err)
		}

		o.parent = parent
		o.priv = ca.PrivateKey
	}
}

var serial atomic.Int64

func generate(tb testing.TB, template *x509.Certificate, opts ...CertificateOption) tls.Certificate {
	tb.Helper()

	//nolint:gosec // 1024 bits is enough for testing
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		tb.Fatalf("failed to generate private key: %v", err)
	}

	template.SerialNumber = big.NewInt(serial.Add(1))
	template.NotBefore = time.Now().Add(-time.Minute)
	template.NotAfter = time.Now().Add(24 * time.Hour)

	co := &certOptions{template: template, parent: template, priv: key}

	for _, opt := range opts {
		opt(tb, co)
	}

	der, err := x509.CreateCertificate(rand.Reader, template, co.parent, &key.PublicKey, co.priv)
	if err != nil {
		tb.Fatalf("failed to create certificate: %v", err)
	}

	leaf, err := x509.ParseCertificate(der)
	if err != nil {
		tb.Fatalf("failed to parse certificate: %v", err)
	}

	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key, Leaf: leaf}
}

// GenerateTestCA returns a self-signed CA certificate.
func GenerateTestCA(tb testing.TB) tls.Certificate {
	tb.Helper()

	return generate(tb, &x509.Certificate{
		Subject:               pkix.Name{CommonName: tb.Name() + " CA"},
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
	})
}

// GenerateTestCertificate returns a certificate usable for both client and
// server authentication.
func GenerateTestCertificate(tb testing.TB, opts ...CertificateOption) tls.Certificate {
	tb.Helper()

	return generate(tb, &x509.Certificate{
		Subject:  pkix.Name{CommonName: tb.Name()},
		KeyUsage: x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{
			x509.ExtKeyUsageClientAuth,
			x509.ExtKeyUsageServerAuth,
		},
	}, opts...)
}

// EncodePEM returns the PEM encoded certificate chain and PKCS#8 private key.
func EncodePEM(tb testing.TB, cert tls.Certificate) ([]byte, []byte) {
	tb.Helper()

	var certPEM []byte
	for _, der := range cert.Certificate {
		certPEM = append(certPEM, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})...)
	}

	keyDER, err := x509.MarshalPKCS8PrivateKey(cert.PrivateKey)
	if err != nil {
		tb.Fatalf("failed to marshal private key: %v", err)
	}

	return certPEM, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})
}

// Files holds the paths written by WriteFiles.
type Files struct {
	Cert string
	Key  string
	CA   string
}

// WriteFiles writes cert, its key and the CA certificate as PEM files below
// dir on fs.
func WriteFiles(tb testing.TB, fs afero.Fs, dir string, cert, ca tls.Certificate) Files {
	tb.Helper()

	certPEM, keyPEM := EncodePEM(tb, cert)
	caPEM, _ := EncodePEM(tb, ca)

	files := Files{
		Cert: filepath.Join(dir, "client.pem"),
		Key:  filepath.Join(dir, "client.key"),
		CA:   filepath.Join(dir, "cacert.pem"),
	}

	for path, data := range map[string][]byte{
		files.Cert: certPEM,
		files.Key:  keyPEM,
		files.CA:   caPEM,
	} {
		if err := afero.WriteFile(fs, path, data, 0o600); err != nil {
			tb.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return files
}
