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

// Package certutil loads the PEM material used by the TLS transport.
package certutil

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/youmark/pkcs8"
)

var ErrNoPrivateKey = errors.New("no private key found")

// LoadX509KeyPair works like tls.LoadX509KeyPair but reads through afero.Fs
// and decrypts the private key with password if it is encrypted. Both legacy
// encrypted PEM (Proc-Type headers) and encrypted PKCS#8 keys are supported.
func LoadX509KeyPair(fs afero.Fs, certFile, keyFile, password string) (tls.Certificate, error) {
	keyPEM, err := afero.ReadFile(fs, keyFile)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to read private key: %w", err)
	}

	certPEM, err := afero.ReadFile(fs, certFile)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to read certificate: %w", err)
	}

	keyPEM, err = DecryptKeyPEM(keyPEM, password)
	if err != nil {
		return tls.Certificate{}, err
	}

	return tls.X509KeyPair(certPEM, keyPEM)
}

// DecryptKeyPEM returns the first private key block of data as an
// unencrypted PEM block. Unencrypted keys are returned unchanged.
func DecryptKeyPEM(data []byte, password string) ([]byte, error) {
	rest := data

	for {
		block, next := pem.Decode(rest)
		if block == nil {
			return nil, ErrNoPrivateKey
		}

		rest = next

		if !strings.HasSuffix(block.Type, "PRIVATE KEY") {
			continue
		}

		switch {
		case block.Type == "ENCRYPTED PRIVATE KEY":
			key, err := pkcs8.ParsePKCS8PrivateKey(block.Bytes, []byte(password))
			if err != nil {
				return nil, fmt.Errorf("decrypt PKCS#8 private key: %w", err)
			}

			der, err := x509.MarshalPKCS8PrivateKey(key)
			if err != nil {
				return nil, fmt.Errorf("marshal private key: %w", err)
			}

			return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
		//nolint:staticcheck // legacy encrypted PEM is still produced by openssl
		case x509.IsEncryptedPEMBlock(block):
			//nolint:staticcheck // see above
			der, err := x509.DecryptPEMBlock(block, []byte(password))
			if err != nil {
				return nil, fmt.Errorf("decrypt private key: %w", err)
			}

			return pem.EncodeToMemory(&pem.Block{Type: block.Type, Bytes: der}), nil
		default:
			return pem.EncodeToMemory(block), nil
		}
	}
}

// LoadCAPool returns a pool that contains only the certificates of caFile.
func LoadCAPool(fs afero.Fs, caFile string) (*x509.CertPool, error) {
	caPEM, err := afero.ReadFile(fs, caFile)
	if err != nil {
		return nil, fmt.Errorf("read CA file: %w", err)
	}

	pool := x509.NewCertPool()

	if ok := pool.AppendCertsFromPEM(caPEM); !ok {
		return nil, fmt.Errorf("no certificates found in %s", caFile)
	}

	return pool, nil
}

// VerifyChain checks rawCerts, leaf first, against roots. The host name is
// not checked.
func VerifyChain(rawCerts [][]byte, roots *x509.CertPool) error {
	if len(rawCerts) == 0 {
		return errors.New("peer presented no certificate")
	}

	certs := make([]*x509.Certificate, 0, len(rawCerts))

	for i, raw := range rawCerts {
		cert, err := x509.ParseCertificate(raw)
		if err != nil {
			return fmt.Errorf("parse peer certificate %d: %w", i, err)
		}

		certs = append(certs, cert)
	}

	intermediates := x509.NewCertPool()
	for _, cert := range certs[1:] {
		intermediates.AddCert(cert)
	}

	_, err := certs[0].Verify(x509.VerifyOptions{
		Roots:         roots,
		Intermediates: intermediates,
		KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	})

	return err
}
