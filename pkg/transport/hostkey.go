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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/ssh"
)

// HostKeyVerdict is the outcome of a HostKeyDecision.
type HostKeyVerdict int

const (
	// Reject aborts the connection.
	Reject HostKeyVerdict = iota
	// AcceptOnce trusts the key for this connection only.
	AcceptOnce
	// AcceptAndPersist trusts the key and stores it in known_hosts.
	AcceptAndPersist
)

func (v HostKeyVerdict) String() string {
	switch v {
	case AcceptOnce:
		return "accept once"
	case AcceptAndPersist:
		return "accept and persist"
	default:
		return "reject"
	}
}

// HostKeyDecision decides whether to trust a host key that is not in
// known_hosts yet.
type HostKeyDecision interface {
	Decide(ctx context.Context, host string, key ssh.PublicKey) (HostKeyVerdict, error)
}

// HostKeyDecisionFunc adapts a function to HostKeyDecision.
type HostKeyDecisionFunc func(ctx context.Context, host string, key ssh.PublicKey) (HostKeyVerdict, error)

func (f HostKeyDecisionFunc) Decide(ctx context.Context, host string,
	key ssh.PublicKey) (HostKeyVerdict, error) {
	return f(ctx, host, key)
}

// RejectUnknown refuses every unknown host key.
type RejectUnknown struct{}

func (RejectUnknown) Decide(context.Context, string, ssh.PublicKey) (HostKeyVerdict, error) {
	return Reject, nil
}

// AutoAccept trusts and stores every unknown host key.
type AutoAccept struct{}

func (AutoAccept) Decide(context.Context, string, ssh.PublicKey) (HostKeyVerdict, error) {
	return AcceptAndPersist, nil
}

// InteractivePrompt asks on Out and reads the answers from In, the way
// OpenSSH does. Answers other than yes and no are asked again.
type InteractivePrompt struct {
	In  io.Reader
	Out io.Writer
}

var errNoAnswer = errors.New("no answer to host key prompt")

func (p InteractivePrompt) Decide(ctx context.Context, host string,
	key ssh.PublicKey) (HostKeyVerdict, error) {
	in := bufio.NewReader(p.In)

	fmt.Fprintf(p.Out, "The authenticity of host '%s' can't be established.\n", host)
	fmt.Fprintf(p.Out, "%s key fingerprint is %s.\n", keyTypeName(key), ssh.FingerprintSHA256(key))

	accept, err := p.ask(ctx, in, "Are you sure you want to continue connecting (yes/no)? ")
	if err != nil || !accept {
		return Reject, err
	}

	persist, err := p.ask(ctx, in, fmt.Sprintf("Do you want to add %s to known_hosts (yes/no)? ", host))
	if err != nil {
		return Reject, err
	}

	if persist {
		return AcceptAndPersist, nil
	}

	return AcceptOnce, nil
}

func (p InteractivePrompt) ask(ctx context.Context, in *bufio.Reader, question string) (bool, error) {
	fmt.Fprint(p.Out, question)

	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		line, err := in.ReadString('\n')

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "yes":
			return true, nil
		case "no":
			return false, nil
		}

		if err != nil {
			return false, errNoAnswer
		}

		fmt.Fprint(p.Out, "Please type 'yes' or 'no': ")
	}
}

// keyTypeName returns the short name OpenSSH prints for a key type.
func keyTypeName(key ssh.PublicKey) string {
	switch key.Type() {
	case ssh.KeyAlgoRSA:
		return "RSA"
	case ssh.KeyAlgoED25519:
		return "ED25519"
	case ssh.KeyAlgoECDSA256, ssh.KeyAlgoECDSA384, ssh.KeyAlgoECDSA521:
		return "ECDSA"
	default:
		return strings.ToUpper(key.Type())
	}
}
