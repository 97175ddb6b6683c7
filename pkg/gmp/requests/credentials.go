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

package requests

import (
	"github.com/opengvm/gvm-go/pkg/gmp/types"
	"github.com/opengvm/gvm-go/pkg/xmlcmd"
)

// CreateCredential creates a credential. Which of the optional fields are
// required depends on Type:
//
//	cc, smime  Certificate
//	up         Login
//	usk        Login, PrivateKey
//	snmp       AuthAlgorithm
//	pgp        PublicKey
//	pw         Password
type CreateCredential struct {
	Name             string
	Type             types.CredentialType
	Comment          string
	AllowInsecure    *bool
	Certificate      string
	KeyPhrase        string
	PrivateKey       string
	Login            string
	Password         string
	AuthAlgorithm    types.SnmpAuthAlgorithm
	Community        string
	PrivacyAlgorithm types.SnmpPrivacyAlgorithm
	PrivacyPassword  string
	PublicKey        string
}

func (r CreateCredential) Build() (*xmlcmd.Command, error) {
	const function = "create_credential"

	if err := Require(function, "name", r.Name); err != nil {
		return nil, err
	}

	if err := requireEnum(function, "credential_type", r.Type); err != nil {
		return nil, err
	}

	if err := checkEnum(function, "auth_algorithm", r.AuthAlgorithm); err != nil {
		return nil, err
	}

	if err := checkEnum(function, "privacy_algorithm", r.PrivacyAlgorithm); err != nil {
		return nil, err
	}

	var err error

	switch r.Type {
	case types.CredentialTypeClientCertificate, types.CredentialTypeSMIMECertificate:
		err = Require(function, "certificate", r.Certificate)
	case types.CredentialTypeUsernamePassword:
		err = Require(function, "login", r.Login)
	case types.CredentialTypeUsernameSSHKey:
		err = RequireAll(function, "login", r.Login, "private_key", r.PrivateKey)
	case types.CredentialTypeSNMP:
		err = requireEnum(function, "auth_algorithm", r.AuthAlgorithm)
	case types.CredentialTypePGPEncryptionKey:
		err = Require(function, "public_key", r.PublicKey)
	case types.CredentialTypePasswordOnly:
		err = Require(function, "password", r.Password)
	}

	if err != nil {
		return nil, err
	}

	cmd := xmlcmd.New(function)
	cmd.AddElement("name", r.Name)
	cmd.AddElement("type", string(r.Type))
	optText(cmd, "comment", r.Comment)
	optBoolElement(cmd, "allow_insecure", r.AllowInsecure)

	switch r.Type {
	case types.CredentialTypeClientCertificate, types.CredentialTypeSMIMECertificate:
		cmd.AddElement("certificate", r.Certificate)

		if r.PrivateKey != "" {
			cmd.AddElement("key").AddElement("private", r.PrivateKey)
		}
	case types.CredentialTypeUsernamePassword, types.CredentialTypeUsernameSSHKey,
		types.CredentialTypeSNMP:
		optText(cmd, "login", r.Login)
	}

	if r.Type == types.CredentialTypePasswordOnly || r.Type == types.CredentialTypeUsernamePassword ||
		r.Type == types.CredentialTypeSNMP {
		optText(cmd, "password", r.Password)
	}

	switch r.Type {
	case types.CredentialTypeUsernameSSHKey:
		key := cmd.AddElement("key")
		optText(key, "phrase", r.KeyPhrase)
		key.AddElement("private", r.PrivateKey)
	case types.CredentialTypeSNMP:
		cmd.AddElement("auth_algorithm", string(r.AuthAlgorithm))
		optText(cmd, "community", r.Community)

		if r.PrivacyAlgorithm != "" || r.PrivacyPassword != "" {
			privacy := cmd.AddElement("privacy")
			optText(privacy, "algorithm", string(r.PrivacyAlgorithm))
			optText(privacy, "password", r.PrivacyPassword)
		}
	case types.CredentialTypePGPEncryptionKey:
		cmd.AddElement("key").AddElement("public", r.PublicKey)
	}

	return cmd, nil
}

type GetCredentials struct {
	Filter
	Scanners bool
	Trash    bool
	Targets  bool
}

func (r GetCredentials) Build() (*xmlcmd.Command, error) {
	cmd := xmlcmd.New("get_credentials")
	r.apply(cmd)
	flag(cmd, "scanners", r.Scanners)
	flag(cmd, "trash", r.Trash)
	flag(cmd, "targets", r.Targets)

	return cmd, nil
}

type GetCredential struct {
	CredentialID string
	Scanners     bool
	Targets      bool
	Format       types.CredentialFormat
}

func (r GetCredential) Build() (*xmlcmd.Command, error) {
	const function = "get_credential"

	if err := Require(function, "credential_id", r.CredentialID); err != nil {
		return nil, err
	}

	if err := checkEnum(function, "credential_format", r.Format); err != nil {
		return nil, err
	}

	cmd := xmlcmd.New("get_credentials").SetAttribute("credential_id", r.CredentialID)

	if r.Format != "" {
		cmd.SetAttribute("format", string(r.Format))
	}

	flag(cmd, "scanners", r.Scanners)
	flag(cmd, "targets", r.Targets)

	return cmd, nil
}

type DeleteCredential struct {
	CredentialID string
	Ultimate     bool
}

func (r DeleteCredential) Build() (*xmlcmd.Command, error) {
	return deleteByID("delete_credential", "credential_id", r.CredentialID, r.Ultimate)
}
