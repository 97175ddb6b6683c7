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

// Package gvmerr provides the single error type returned by every package of
// this module. Callers distinguish failures by Kind, either with IsKind or
// with errors.Is against one of the Err* sentinels:
//
//	if errors.Is(err, gvmerr.ErrTimeout) {
//		...
//	}
package gvmerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an Error.
type Kind int

const (
	KindUnknown Kind = iota
	// InvalidArgument is raised when an argument has a wrong value.
	InvalidArgument
	// RequiredArgument is raised when a mandatory argument is missing.
	RequiredArgument
	// InvalidArgumentType is raised when an argument has a wrong type.
	InvalidArgumentType
	// Response is a 4xx status returned by the server.
	Response
	// Server is a 5xx status returned by the server, or a response without
	// any status at all.
	Server
	// GenericProtocol covers status codes outside of 2xx/4xx/5xx and version
	// negotiation failures.
	GenericProtocol
	// Transport is an I/O failure or an unexpected close of the connection.
	Transport
	// Framing is raised for malformed or oversized XML on the wire.
	Framing
	// Auth is a rejected TLS/SSH handshake, host key or GMP credentials.
	Auth
	// Timeout is raised when no complete response arrived in time.
	Timeout
)

var kindNames = map[Kind]string{
	KindUnknown:         "unknown",
	InvalidArgument:     "invalid argument",
	RequiredArgument:    "required argument",
	InvalidArgumentType: "invalid argument type",
	Response:            "response error",
	Server:              "server error",
	GenericProtocol:     "protocol error",
	Transport:           "transport error",
	Framing:             "framing error",
	Auth:                "authentication error",
	Timeout:             "timeout",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinels usable as errors.Is targets. They match any Error of the same Kind.
var (
	ErrInvalidArgument     = &Error{Kind: InvalidArgument}
	ErrRequiredArgument    = &Error{Kind: RequiredArgument}
	ErrInvalidArgumentType = &Error{Kind: InvalidArgumentType}
	ErrResponse            = &Error{Kind: Response}
	ErrServer              = &Error{Kind: Server}
	ErrGenericProtocol     = &Error{Kind: GenericProtocol}
	ErrTransport           = &Error{Kind: Transport}
	ErrFraming             = &Error{Kind: Framing}
	ErrAuth                = &Error{Kind: Auth}
	ErrTimeout             = &Error{Kind: Timeout}
)

// Error is the error type used across the module.
type Error struct {
	Kind Kind
	// Status and StatusText are set for Response and Server errors.
	Status     string
	StatusText string
	// Argument and Function are set for the argument errors.
	Argument string
	Function string
	Msg      string
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder

	switch e.Kind {
	case Response, Server:
		prefix := "Response Error"
		if e.Kind == Server {
			prefix = "Server Error"
		}

		if e.Status != "" {
			fmt.Fprintf(&b, "%s %s. %s", prefix, e.Status, e.StatusText)
		} else {
			b.WriteString(e.Msg)
		}
	case RequiredArgument:
		switch {
		case e.Msg != "":
			b.WriteString(e.Msg)
		case e.Function != "":
			fmt.Fprintf(&b, "%s requires a %s argument", e.Function, e.Argument)
		default:
			fmt.Fprintf(&b, "Required argument %s", e.Argument)
		}
	case InvalidArgument, InvalidArgumentType:
		switch {
		case e.Msg != "":
			b.WriteString(e.Msg)
		case e.Function != "":
			fmt.Fprintf(&b, "Invalid argument %s for %s", e.Argument, e.Function)
		default:
			fmt.Fprintf(&b, "Invalid argument %s", e.Argument)
		}
	default:
		b.WriteString(e.Msg)
	}

	if b.Len() == 0 {
		b.WriteString(e.Kind.String())
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind && t.Msg == "" && t.Status == "" &&
		t.Argument == "" && t.Err == nil
}

// New returns an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error of the given kind that wraps err.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// NewResponse returns a 4xx Response error.
func NewResponse(status, text string) *Error {
	return &Error{Kind: Response, Status: status, StatusText: text}
}

// NewServer returns a 5xx Server error.
func NewServer(status, text string) *Error {
	return &Error{Kind: Server, Status: status, StatusText: text}
}

// Required returns a RequiredArgument error for argument of function.
func Required(function, argument string) *Error {
	return &Error{Kind: RequiredArgument, Function: function, Argument: argument}
}

// Invalid returns an InvalidArgument error. msg may be empty.
func Invalid(function, argument, msg string) *Error {
	return &Error{Kind: InvalidArgument, Function: function, Argument: argument, Msg: msg}
}

// InvalidType returns an InvalidArgumentType error. msg may be empty.
func InvalidType(function, argument, msg string) *Error {
	return &Error{Kind: InvalidArgumentType, Function: function, Argument: argument, Msg: msg}
}

// KindOf returns the Kind of the first Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}

// IsKind reports whether err carries an Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
