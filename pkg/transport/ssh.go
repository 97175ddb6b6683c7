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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/crypto/ssh"

	"github.com/opengvm/gvm-go/internal/pathutil"
	"github.com/opengvm/gvm-go/pkg/gvmerr"
)

const (
	DefaultSSHHostname = "127.0.0.1"
	DefaultSSHPort     = 22
	DefaultSSHUsername = "gmp"
	// SSHMaxChunk is the largest write sent to the exec channel at once.
	SSHMaxChunk = 4095
)

var (
	ErrHostKeyMismatch = errors.New("remote host identification has changed")
	errProbed          = errors.New("host key probed")
)

// SSHConfig describes an SSH connection. Only password authentication is
// used, no agent and no key files.
type SSHConfig struct {
	Hostname       string `yaml:"hostname"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	KnownHostsFile string `yaml:"known_hosts_file"`
	AutoAcceptHost bool   `yaml:"auto_accept_host"`
}

func (c SSHConfig) withDefaults() SSHConfig {
	if c.Hostname == "" {
		c.Hostname = DefaultSSHHostname
	}

	if c.Port == 0 {
		c.Port = DefaultSSHPort
	}

	if c.Username == "" {
		c.Username = DefaultSSHUsername
	}

	if c.KnownHostsFile == "" {
		c.KnownHostsFile = pathutil.KnownHostsFile()
	} else {
		c.KnownHostsFile = pathutil.ExpandHome(c.KnownHostsFile)
	}

	return c
}

type readResult struct {
	data []byte
	err  error
}

// SSH talks to gvmd through the stdin and stdout of an exec channel. Hosts
// missing from known_hosts are handled by a HostKeyDecision.
type SSH struct {
	cfg      SSHConfig
	timeout  time.Duration
	fs       afero.Fs
	logger   zerolog.Logger
	decision HostKeyDecision

	mu      sync.Mutex
	client  *ssh.Client
	session *ssh.Session
	stdin   io.WriteCloser
	chunks  chan readResult
	done    chan struct{}
}

// NewSSH returns an SSH transport for cfg. Unknown host keys are rejected
// unless cfg.AutoAcceptHost is set or WithHostKeyDecision is given.
func NewSSH(cfg SSHConfig, opts ...Option) *SSH {
	o := newOptions(opts)
	cfg = cfg.withDefaults()

	decision := o.decision
	if decision == nil {
		if cfg.AutoAcceptHost {
			decision = AutoAccept{}
		} else {
			decision = RejectUnknown{}
		}
	}

	return &SSH{
		cfg:      cfg,
		timeout:  EffectiveTimeout(o.timeout),
		fs:       o.fs,
		decision: decision,
		logger: o.logger.With().Str("transport", "ssh").
			Str("host", cfg.Hostname).Int("port", cfg.Port).Logger(),
	}
}

// Address returns host:port of the server.
func (s *SSH) Address() string {
	return net.JoinHostPort(s.cfg.Hostname, strconv.Itoa(s.cfg.Port))
}

func (s *SSH) connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.client != nil
}

func (s *SSH) Connect(ctx context.Context) error {
	if s.connected() {
		return nil
	}

	keys, err := s.trustedKeys(ctx)
	if err != nil {
		return err
	}

	conn, err := s.dial(ctx)
	if err != nil {
		return err
	}

	client, err := s.handshake(ctx, conn, &ssh.ClientConfig{
		User:              s.cfg.Username,
		Auth:              []ssh.AuthMethod{ssh.Password(s.cfg.Password)},
		HostKeyCallback:   pinnedHostKeys(CanonicalHost(s.cfg.Hostname, s.cfg.Port), keys),
		HostKeyAlgorithms: hostKeyAlgorithms(keys),
	})
	if err != nil {
		return err
	}

	session, err := client.NewSession()
	if err != nil {
		//nolint:errcheck,gosec // session error is more important
		client.Close()

		return gvmerr.Wrap(gvmerr.Transport, err, "could not open session")
	}

	stdin, stdout, err := startExec(session)
	if err != nil {
		//nolint:errcheck,gosec // exec error is more important
		client.Close()

		return err
	}

	chunks := make(chan readResult)
	done := make(chan struct{})

	go readLoop(stdout, chunks, done)

	s.mu.Lock()
	s.client = client
	s.session = session
	s.stdin = stdin
	s.chunks = chunks
	s.done = done
	s.mu.Unlock()

	s.logger.Debug().Str("user", s.cfg.Username).Msg("Connected")

	return nil
}

func startExec(session *ssh.Session) (io.WriteCloser, io.Reader, error) {
	stdin, err := session.StdinPipe()
	if err != nil {
		return nil, nil, gvmerr.Wrap(gvmerr.Transport, err, "stdin pipe")
	}

	stdout, err := session.StdoutPipe()
	if err != nil {
		return nil, nil, gvmerr.Wrap(gvmerr.Transport, err, "stdout pipe")
	}

	// gvmd is the login shell of the account, so an empty command is enough.
	if err := session.Start(""); err != nil {
		return nil, nil, gvmerr.Wrap(gvmerr.Transport, err, "could not start exec channel")
	}

	return stdin, stdout, nil
}

// trustedKeys returns the host keys the server has to present, asking the
// HostKeyDecision when known_hosts has none.
func (s *SSH) trustedKeys(ctx context.Context) ([]ssh.PublicKey, error) {
	host := CanonicalHost(s.cfg.Hostname, s.cfg.Port)

	hosts, err := LoadKnownHosts(s.fs, s.cfg.KnownHostsFile)
	if err != nil {
		return nil, gvmerr.Wrap(gvmerr.Transport, err, "could not load known hosts")
	}

	if keys := hosts.Lookup(host); len(keys) > 0 {
		return keys, nil
	}

	key, err := s.probe(ctx)
	if err != nil {
		return nil, err
	}

	verdict, err := s.decision.Decide(ctx, host, key)
	if err != nil {
		return nil, gvmerr.Wrap(gvmerr.Auth, err, "host key of %s not accepted", host)
	}

	s.logger.Debug().Str("verdict", verdict.String()).
		Str("fingerprint", ssh.FingerprintSHA256(key)).Msg("Unknown host key")

	switch verdict {
	case AcceptAndPersist:
		hosts.Add(host, key)

		if err := hosts.Save(); err != nil {
			return nil, gvmerr.Wrap(gvmerr.Transport, err, "could not store host key")
		}

		s.logger.Warn().Str("known_hosts", hosts.Path()).Str("key_type", key.Type()).
			Msgf("Permanently added '%s' to the list of known hosts", host)
	case AcceptOnce:
	default:
		return nil, gvmerr.New(gvmerr.Auth, "host key of %s rejected", host)
	}

	return []ssh.PublicKey{key}, nil
}

// probe runs a key exchange only to learn the server's host key.
func (s *SSH) probe(ctx context.Context) (ssh.PublicKey, error) {
	conn, err := s.dial(ctx)
	if err != nil {
		return nil, err
	}

	var key ssh.PublicKey

	client, err := s.handshake(ctx, conn, &ssh.ClientConfig{
		User: s.cfg.Username,
		HostKeyCallback: func(_ string, _ net.Addr, k ssh.PublicKey) error {
			key = k
			return errProbed
		},
	})
	if client != nil {
		//nolint:errcheck,gosec // probe connection is never used
		client.Close()
	}

	if key != nil {
		return key, nil
	}

	return nil, err
}

func (s *SSH) dial(ctx context.Context) (net.Conn, error) {
	d := net.Dialer{Timeout: s.timeout}

	conn, err := d.DialContext(ctx, "tcp", s.Address())
	if err != nil {
		return nil, ioError(err, "could not connect to %s", s.Address())
	}

	return conn, nil
}

func (s *SSH) handshake(ctx context.Context, conn net.Conn, cfg *ssh.ClientConfig) (*ssh.Client, error) {
	stop := context.AfterFunc(ctx, func() {
		//nolint:errcheck,gosec // aborts the handshake
		conn.Close()
	})
	defer stop()

	if err := conn.SetDeadline(deadline(s.timeout)); err != nil {
		return nil, ioError(err, "set deadline")
	}

	c, chans, reqs, err := ssh.NewClientConn(conn, s.Address(), cfg)
	if err != nil {
		//nolint:errcheck,gosec // handshake error is more important
		conn.Close()

		var netErr net.Error

		switch {
		case ctx.Err() != nil:
			return nil, ioError(ctx.Err(), "SSH handshake with %s", s.Address())
		case errors.As(err, &netErr) && netErr.Timeout():
			return nil, ioError(err, "SSH handshake with %s", s.Address())
		default:
			return nil, gvmerr.Wrap(gvmerr.Auth, err, "SSH handshake with %s failed", s.Address())
		}
	}

	if err := conn.SetDeadline(time.Time{}); err != nil {
		return nil, ioError(err, "clear deadline")
	}

	return ssh.NewClient(c, chans, reqs), nil
}

// pinnedHostKeys accepts only one of keys.
func pinnedHostKeys(host string, keys []ssh.PublicKey) ssh.HostKeyCallback {
	return func(_ string, _ net.Addr, key ssh.PublicKey) error {
		for _, k := range keys {
			if bytes.Equal(k.Marshal(), key.Marshal()) {
				return nil
			}
		}

		return fmt.Errorf("%w: %s offered %s key %s", ErrHostKeyMismatch,
			host, key.Type(), ssh.FingerprintSHA256(key))
	}
}

// hostKeyAlgorithms restricts negotiation to the types of the pinned keys so
// the server presents a key that can match.
func hostKeyAlgorithms(keys []ssh.PublicKey) []string {
	var algos []string

	seen := map[string]bool{}
	add := func(names ...string) {
		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				algos = append(algos, n)
			}
		}
	}

	for _, k := range keys {
		if k.Type() == ssh.KeyAlgoRSA {
			add(ssh.KeyAlgoRSASHA512, ssh.KeyAlgoRSASHA256, ssh.KeyAlgoRSA)
		} else {
			add(k.Type())
		}
	}

	return algos
}

func readLoop(r io.Reader, out chan<- readResult, done <-chan struct{}) {
	defer close(out)

	for {
		buf := make([]byte, RecvBufferSize)

		n, err := r.Read(buf)
		if n > 0 {
			select {
			case out <- readResult{data: buf[:n]}:
			case <-done:
				return
			}
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				select {
				case out <- readResult{err: gvmerr.Wrap(gvmerr.Transport, err, "recv")}:
				case <-done:
				}
			}

			return
		}
	}
}

// writeChunks writes data in pieces of at most size bytes.
func writeChunks(w io.Writer, data []byte, size int) error {
	for len(data) > 0 {
		n := min(size, len(data))

		written, err := w.Write(data[:n])
		if err != nil {
			return err
		}

		data = data[written:]
	}

	return nil
}

func (s *SSH) Send(data []byte) error {
	s.mu.Lock()
	stdin := s.stdin
	s.mu.Unlock()

	if stdin == nil {
		return errNotConnected
	}

	if s.timeout <= 0 {
		if err := writeChunks(stdin, data, SSHMaxChunk); err != nil {
			return ioError(err, "send")
		}

		return nil
	}

	// A full remote window blocks the write, only closing the client frees it.
	timer := time.AfterFunc(s.timeout, func() {
		_ = s.Disconnect() //nolint:errcheck // the write reports the failure
	})

	err := writeChunks(stdin, data, SSHMaxChunk)

	if !timer.Stop() {
		return gvmerr.New(gvmerr.Timeout, "could not send within %s", s.timeout)
	}

	if err != nil {
		return ioError(err, "send")
	}

	return nil
}

func (s *SSH) Recv() ([]byte, error) {
	s.mu.Lock()
	chunks := s.chunks
	s.mu.Unlock()

	if chunks == nil {
		return nil, errNotConnected
	}

	var expired <-chan time.Time

	if s.timeout > 0 {
		timer := time.NewTimer(s.timeout)
		defer timer.Stop()

		expired = timer.C
	}

	select {
	case r, ok := <-chunks:
		if !ok {
			return nil, io.EOF
		}

		return r.data, r.err
	case <-expired:
		return nil, gvmerr.New(gvmerr.Timeout, "no data received within %s", s.timeout)
	}
}

// FinishSend closes stdin of the remote command, which sends EOF.
func (s *SSH) FinishSend() error {
	s.mu.Lock()
	stdin := s.stdin
	s.mu.Unlock()

	if stdin == nil {
		return errNotConnected
	}

	if err := stdin.Close(); err != nil {
		return gvmerr.Wrap(gvmerr.Transport, err, "close stdin")
	}

	return nil
}

func (s *SSH) Disconnect() error {
	s.mu.Lock()
	client, session, done := s.client, s.session, s.done
	s.client, s.session, s.stdin, s.chunks, s.done = nil, nil, nil, nil, nil
	s.mu.Unlock()

	if client == nil {
		return nil
	}

	close(done)

	//nolint:errcheck,gosec // the client is closed right after
	session.Close()

	if err := client.Close(); err != nil {
		s.logger.Debug().Err(err).Msg("Close failed")
	}

	return nil
}
