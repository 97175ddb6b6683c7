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

// Package gvmdtest runs a scripted gvmd lookalike on a Unix socket. It frames
// requests with the same framer as the client, answers get_version and
// authenticate itself and defers every other command to registered handlers.
package gvmdtest

import (
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/opengvm/gvm-go/internal/framer"
)

// DefaultVersion is the protocol version announced by get_version.
const DefaultVersion = "22.5"

// Handler answers one request. It returns the raw bytes written back to the
// client. An empty reply writes nothing.
type Handler func(req *etree.Element) string

// Option configures a Server.
type Option func(*Server)

// WithVersion sets the version announced by get_version.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// WithUser adds an account. Once any account exists, every command other
// than get_version and authenticate requires a prior authenticate on the same
// connection.
func WithUser(name, password string) Option {
	return func(s *Server) {
		s.users[name] = password
	}
}

// WithHandler answers commands named cmd with h.
func WithHandler(cmd string, h Handler) Option {
	return func(s *Server) {
		s.handlers[cmd] = h
	}
}

// WithCloseAfterResponse closes each connection after the first reply, the
// way ospd does.
func WithCloseAfterResponse() Option {
	return func(s *Server) {
		s.closeAfterResponse = true
	}
}

// Server is a fake gvmd listening on a Unix socket.
type Server struct {
	Path string

	version            string
	users              map[string]string
	handlers           map[string]Handler
	closeAfterResponse bool

	listener net.Listener
	group    errgroup.Group

	mu       sync.Mutex
	closed   bool
	conns    []net.Conn
	requests []string
}

type session struct {
	authenticated bool
}

// NewServer starts a Server. It is stopped when the test ends.
func NewServer(tb testing.TB, opts ...Option) *Server {
	tb.Helper()

	// t.TempDir paths can exceed the sun_path limit of Unix sockets.
	dir, err := os.MkdirTemp("", "gvmd")
	if err != nil {
		tb.Fatalf("failed to create socket dir: %v", err)
	}

	tb.Cleanup(func() {
		//nolint:errcheck // best effort
		os.RemoveAll(dir)
	})

	s := &Server{
		Path:     filepath.Join(dir, "gvmd.sock"),
		version:  DefaultVersion,
		users:    make(map[string]string),
		handlers: make(map[string]Handler),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.listener, err = net.Listen("unix", s.Path)
	if err != nil {
		tb.Fatalf("failed to listen on %s: %v", s.Path, err)
	}

	s.group.Go(func() error {
		for {
			conn, err := s.listener.Accept()
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
				s.serve(conn)
				return nil
			})
		}
	})

	tb.Cleanup(s.Close)

	return s
}

// Requests returns the raw requests received so far, in order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.requests...)
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

func (s *Server) serve(conn net.Conn) {
	defer conn.Close()

	var (
		sess    session
		pending []byte
		buf     = make([]byte, 4096)
		f       = framer.New()
	)

	for {
		n, err := conn.Read(buf)
		data := buf[:n]

		for len(data) > 0 {
			used, done, ferr := f.Feed(data)
			pending = append(pending, data[:used]...)
			data = data[used:]

			if ferr != nil {
				return
			}

			if !done {
				break
			}

			reply := s.handle(&sess, pending)
			pending = pending[:0]

			f.Reset()

			if reply != "" {
				if _, werr := conn.Write([]byte(reply)); werr != nil {
					return
				}
			}

			if s.closeAfterResponse {
				return
			}
		}

		if err != nil {
			return
		}
	}
}

func (s *Server) handle(sess *session, raw []byte) string {
	s.mu.Lock()
	s.requests = append(s.requests, string(raw))
	s.mu.Unlock()

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil || doc.Root() == nil {
		return Reply("gmp", "400", "Invalid XML")
	}

	req := doc.Root()

	switch req.Tag {
	case "get_version":
		if h, ok := s.handlers[req.Tag]; ok {
			return h(req)
		}

		return Reply(req.Tag, "200", "OK", Element("version", s.version))
	case "authenticate":
		return s.authenticate(sess, req)
	}

	if len(s.users) > 0 && !sess.authenticated {
		return Reply(req.Tag, "400", "Only command GET_VERSION is allowed before AUTHENTICATE")
	}

	if h, ok := s.handlers[req.Tag]; ok {
		return h(req)
	}

	if strings.HasPrefix(req.Tag, "create_") {
		return Created(req.Tag)
	}

	return Reply(req.Tag, "200", "OK")
}

func (s *Server) authenticate(sess *session, req *etree.Element) string {
	name := req.FindElement("credentials/username")
	password := req.FindElement("credentials/password")

	if name == nil || password == nil {
		return Reply(req.Tag, "400", "Missing credentials")
	}

	if want, ok := s.users[name.Text()]; !ok || want != password.Text() {
		return Reply(req.Tag, "400", "Authentication failed")
	}

	sess.authenticated = true

	return Reply(req.Tag, "200", "OK",
		Element("role", "Admin"),
		Element("timezone", "UTC"))
}

// Element returns an element with text content for use with Reply.
func Element(tag, text string) *etree.Element {
	e := etree.NewElement(tag)
	e.SetText(text)

	return e
}

// Reply returns the serialised <cmd_response> with the given status and
// children.
func Reply(cmd, status, text string, children ...*etree.Element) string {
	return NewReply(cmd, status, text, children...).String()
}

// NewReply is Reply returning the root for further modification.
func NewReply(cmd, status, text string, children ...*etree.Element) *Doc {
	root := etree.NewElement(cmd + "_response")
	root.CreateAttr("status", status)
	root.CreateAttr("status_text", text)

	for _, c := range children {
		root.AddChild(c)
	}

	return &Doc{root}
}

// Created returns a 201 reply carrying a fresh resource id.
func Created(cmd string) string {
	doc := NewReply(cmd, "201", "OK, resource created")
	doc.CreateAttr("id", uuid.NewString())

	return doc.String()
}

// Doc is a reply root element.
type Doc struct {
	*etree.Element
}

func (d *Doc) String() string {
	doc := etree.NewDocument()
	doc.SetRoot(d.Element.Copy())

	s, err := doc.WriteToString()
	if err != nil {
		panic(err)
	}

	return s
}
