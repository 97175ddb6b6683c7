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

// Package sshtest runs an in-process SSH server that hands the stdin and
// stdout of every exec request to a handler.
package sshtest

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"testing"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
	"golang.org/x/sync/errgroup"
)

// Handler serves one exec channel. rw reads the client's stdin and writes to
// its stdout. The channel is closed when Handler returns.
type Handler func(rw io.ReadWriter)

// Echo copies stdin back to stdout until the client closes stdin.
func Echo(rw io.ReadWriter) {
	//nolint:errcheck // the test observes the result on the client side
	io.Copy(rw, rw)
}

// Server is an SSH server listening on 127.0.0.1.
type Server struct {
	Host    string
	Port    int
	HostKey ssh.Signer

	listener net.Listener
	group    errgroup.Group

	mu       sync.Mutex
	closed   bool
	conns    []net.Conn
	commands []string
}

// NewServer starts a server that accepts user with password and runs handler
// for every exec request. It is stopped when the test ends.
func NewServer(tb testing.TB, user, password string, handler Handler) *Server {
	tb.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		tb.Fatalf("failed to generate host key: %v", err)
	}

	signer, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		tb.Fatalf("failed to create signer: %v", err)
	}

	config := &ssh.ServerConfig{
		PasswordCallback: func(c ssh.ConnMetadata, pass []byte) (*ssh.Permissions, error) {
			if c.User() == user && string(pass) == password {
				return nil, nil
			}

			return nil, fmt.Errorf("password rejected for %q", c.User())
		},
	}
	config.AddHostKey(signer)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		tb.Fatalf("failed to listen: %v", err)
	}

	addr, ok := ln.Addr().(*net.TCPAddr)
	if !ok {
		tb.Fatalf("unexpected listener address %v", ln.Addr())
	}

	s := &Server{
		Host:     addr.IP.String(),
		Port:     addr.Port,
		HostKey:  signer,
		listener: ln,
	}

	s.group.Go(func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return nil
			}

			s.mu.Lock()
			if s.closed {
				s.mu.Unlock()
				//nolint:errcheck // server is shutting down
				conn.Close()

				return nil
			}

			s.conns = append(s.conns, conn)
			s.mu.Unlock()

			s.group.Go(func() error {
				s.serve(conn, config, handler)
				return nil
			})
		}
	})

	tb.Cleanup(s.Close)

	return s
}

// Addr returns host:port of the server.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// KnownHostsLine returns a known_hosts entry for the server's host key.
func (s *Server) KnownHostsLine() string {
	return knownhosts.Line([]string{s.Addr()}, s.HostKey.PublicKey())
}

// Commands returns the commands of all exec requests received so far.
func (s *Server) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.commands...)
}

// Close stops the server and waits for all connections to end.
func (s *Server) Close() {
	//nolint:errcheck // closing twice is fine
	s.listener.Close()

	s.mu.Lock()
	s.closed = true

	for _, c := range s.conns {
		//nolint:errcheck // connection may already be closed
		c.Close()
	}
	s.mu.Unlock()

	//nolint:errcheck // goroutines never return errors
	s.group.Wait()
}

func (s *Server) serve(conn net.Conn, config *ssh.ServerConfig, handler Handler) {
	_, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		return
	}

	go ssh.DiscardRequests(reqs)

	var wg sync.WaitGroup

	for newCh := range chans {
		if newCh.ChannelType() != "session" {
			//nolint:errcheck // client gets the rejection
			newCh.Reject(ssh.UnknownChannelType, "only sessions are supported")
			continue
		}

		ch, requests, err := newCh.Accept()
		if err != nil {
			continue
		}

		wg.Add(1)

		go func() {
			defer wg.Done()
			s.session(ch, requests, handler)
		}()
	}

	wg.Wait()
}

func (s *Server) session(ch ssh.Channel, requests <-chan *ssh.Request, handler Handler) {
	defer ch.Close()

	for req := range requests {
		if req.Type != "exec" {
			if req.WantReply {
				//nolint:errcheck // client gets the reply
				req.Reply(false, nil)
			}

			continue
		}

		var payload struct{ Command string }

		if err := ssh.Unmarshal(req.Payload, &payload); err != nil {
			//nolint:errcheck // client gets the reply
			req.Reply(false, nil)
			continue
		}

		s.mu.Lock()
		s.commands = append(s.commands, payload.Command)
		s.mu.Unlock()

		//nolint:errcheck // client gets the reply
		req.Reply(true, nil)

		go ssh.DiscardRequests(requests)

		handler(ch)

		//nolint:errcheck // the session ends either way
		ch.CloseWrite()
		//nolint:errcheck // the session ends either way
		ch.SendRequest("exit-status", false, ssh.Marshal(struct{ Status uint32 }{0}))

		return
	}
}
