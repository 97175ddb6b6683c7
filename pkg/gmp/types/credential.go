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

// CredentialType is the kind of secret a credential stores.
type CredentialType string

const (
	CredentialTypeClientCertificate CredentialType = "cc"
	CredentialTypeSNMP              CredentialType = "snmp"
	CredentialTypeUsernamePassword  CredentialType = "up"
	CredentialTypeUsernameSSHKey    CredentialType = "usk"
	CredentialTypeSMIMECertificate  CredentialType = "smime"
	CredentialTypePGPEncryptionKey  CredentialType = "pgp"
	CredentialTypePasswordOnly      CredentialType = "pw"
)

var credentialTypes = newEnum("credential_type",
	CredentialTypeClientCertificate,
	CredentialTypeSNMP,
	CredentialTypeUsernamePassword,
	CredentialTypeUsernameSSHKey,
	CredentialTypeSMIMECertificate,
	CredentialTypePGPEncryptionKey,
	CredentialTypePasswordOnly,
).
	alias("client_certificate", CredentialTypeClientCertificate).
	alias("username_password", CredentialTypeUsernamePassword).
	alias("username_ssh_key", CredentialTypeUsernameSSHKey).
	alias("smime_certificate", CredentialTypeSMIMECertificate).
	alias("pgp_encryption_key", CredentialTypePGPEncryptionKey).
	alias("password_only", CredentialTypePasswordOnly)

func ParseCredentialType(s string) (CredentialType, error) {
	return credentialTypes.parse("ParseCredentialType", s)
}

func (t CredentialType) Valid() bool {
	return credentialTypes.contains(t)
}

// CredentialFormat selects how get_credential exports a credential.
type CredentialFormat string

const (
	CredentialFormatKey CredentialFormat = "key"
	CredentialFormatRPM CredentialFormat = "rpm"
	CredentialFormatDeb CredentialFormat = "deb"
	CredentialFormatExe CredentialFormat = "exe"
	CredentialFormatPEM CredentialFormat = "pem"
)

var credentialFormats = newEnum("credential_format",
	CredentialFormatKey,
	CredentialFormatRPM,
	CredentialFormatDeb,
	CredentialFormatExe,
	CredentialFormatPEM,
)

func ParseCredentialFormat(s string) (CredentialFormat, error) {
	return credentialFormats.parse("ParseCredentialFormat", s)
}

func (f CredentialFormat) Valid() bool {
	return credentialFormats.contains(f)
}

// SnmpAuthAlgorithm is the SNMPv3 authentication algorithm.
type SnmpAuthAlgorithm string

const (
	SnmpAuthAlgorithmSHA1 SnmpAuthAlgorithm = "sha1"
	SnmpAuthAlgorithmMD5  SnmpAuthAlgorithm = "md5"
)

var snmpAuthAlgorithms = newEnum("auth_algorithm",
	SnmpAuthAlgorithmSHA1,
	SnmpAuthAlgorithmMD5,
)

func ParseSnmpAuthAlgorithm(s string) (SnmpAuthAlgorithm, error) {
	return snmpAuthAlgorithms.parse("ParseSnmpAuthAlgorithm", s)
}

func (a SnmpAuthAlgorithm) Valid() bool {
	return snmpAuthAlgorithms.contains(a)
}

// SnmpPrivacyAlgorithm is the SNMPv3 privacy algorithm.
type SnmpPrivacyAlgorithm string

const (
	SnmpPrivacyAlgorithmAES SnmpPrivacyAlgorithm = "aes"
	SnmpPrivacyAlgorithmDES SnmpPrivacyAlgorithm = "des"
)

var snmpPrivacyAlgorithms = newEnum("privacy_algorithm",
	SnmpPrivacyAlgorithmAES,
	SnmpPrivacyAlgorithmDES,
)

func ParseSnmpPrivacyAlgorithm(s string) (SnmpPrivacyAlgorithm, error) {
	return snmpPrivacyAlgorithms.parse("ParseSnmpPrivacyAlgorithm", s)
}

func (a SnmpPrivacyAlgorithm) Valid() bool {
	return snmpPrivacyAlgorithms.contains(a)
}
