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

// Package framer detects the end of an XML response on a byte stream that
// has no length prefix.
//
// Bytes are pushed in arbitrarily sized chunks. The first start tag at depth
// zero becomes the root, and the response is complete when the matching end
// tag is seen at depth zero. Markup that can hide a closing root tag
// (comments, CDATA sections, processing instructions, DOCTYPE and quoted
// attribute values) is tokenised so it never completes a frame.
package framer

import (
	"errors"
	"fmt"

	"github.com/opengvm/gvm-go/pkg/gvmerr"
)

var (
	ErrMismatchedTag     = errors.New("mismatched end tag")
	ErrUnexpectedEndTag  = errors.New("end tag without start tag")
	ErrContentBeforeRoot = errors.New("content before root element")
	ErrInvalidMarkup     = errors.New("invalid markup")
	ErrTooLarge          = errors.New("response exceeds size limit")
)

// contextSize is how many trailing bytes are kept for error messages.
const contextSize = 64

const (
	stText int = iota
	stLt
	stStartName
	stInTag
	stAttrValue
	stSelfClose
	stEndName
	stEndTail
	stBang
	stCommentOpen
	stComment
	stCDATAOpen
	stCDATA
	stDecl
	stDeclValue
	stPI
)

const cdataOpen = "[CDATA["

// Option configures a Framer.
type Option func(*Framer)

// WithMaxSize limits the number of bytes a single frame may span.
// Zero or a negative value disables the limit.
func WithMaxSize(n int64) Option {
	return func(f *Framer) {
		f.maxSize = n
	}
}

// Framer is a push style XML tokenizer that tracks element nesting.
// A Framer is not safe for concurrent use. The zero value is not usable,
// use New.
type Framer struct {
	state int
	root  string
	stack []string
	name  []byte
	quote byte
	// run counts consecutive '-' in comments, ']' in CDATA, '?' in PIs and
	// matched characters of the CDATA opener.
	run int
	// nesting of '[' inside a DOCTYPE declaration.
	declDepth int
	consumed  int64
	maxSize   int64
	tail      []byte
	done      bool
}

// New returns a Framer ready for the first chunk.
func New(opts ...Option) *Framer {
	f := &Framer{}

	for _, opt := range opts {
		opt(f)
	}

	f.Reset()

	return f
}

// Reset prepares the Framer for a new response, keeping its options.
func (f *Framer) Reset() {
	f.state = stText
	f.root = ""
	f.stack = f.stack[:0]
	f.name = f.name[:0]
	f.quote = 0
	f.run = 0
	f.declDepth = 0
	f.consumed = 0
	f.tail = f.tail[:0]
	f.done = false
}

// Root returns the name of the root element, or an empty string if no start
// tag was seen yet.
func (f *Framer) Root() string {
	return f.root
}

// Done reports whether a complete response was framed.
func (f *Framer) Done() bool {
	return f.done
}

// Depth returns the number of currently open elements.
func (f *Framer) Depth() int {
	return len(f.stack)
}

// Consumed returns the number of bytes that belong to the current frame.
func (f *Framer) Consumed() int64 {
	return f.consumed
}

// Feed pushes the next chunk of the stream. It returns how many bytes of
// chunk belong to the frame, which is the whole chunk unless the frame
// completed inside it, and whether the frame is complete. Once complete,
// further calls consume nothing until Reset.
func (f *Framer) Feed(chunk []byte) (int, bool, error) {
	if f.done {
		return 0, true, nil
	}

	for i, c := range chunk {
		f.consumed++
		f.remember(c)

		if f.maxSize > 0 && f.consumed > f.maxSize {
			return i, false, f.fail(fmt.Errorf("%w: more than %d bytes", ErrTooLarge, f.maxSize))
		}

		if err := f.step(c); err != nil {
			return i, false, f.fail(err)
		}

		if f.done {
			return i + 1, true, nil
		}
	}

	return len(chunk), false, nil
}

func (f *Framer) remember(c byte) {
	if len(f.tail) == contextSize {
		copy(f.tail, f.tail[1:])
		f.tail = f.tail[:contextSize-1]
	}

	f.tail = append(f.tail, c)
}

func (f *Framer) fail(err error) error {
	return gvmerr.Wrap(gvmerr.Framing, err, "malformed response at byte %d near %q",
		f.consumed, f.tail)
}

//nolint:gocyclo,cyclop,funlen // state machine
func (f *Framer) step(c byte) error {
	switch f.state {
	case stText:
		switch {
		case c == '<':
			f.state = stLt
		case f.root == "" && !isSpace(c) && !f.isBOM(c):
			return ErrContentBeforeRoot
		}
	case stLt:
		switch {
		case c == '/':
			f.name = f.name[:0]
			f.state = stEndName
		case c == '!':
			f.state = stBang
		case c == '?':
			f.run = 0
			f.state = stPI
		case isNameStart(c):
			f.name = append(f.name[:0], c)
			f.state = stStartName
		default:
			return fmt.Errorf("%w: unexpected %q after '<'", ErrInvalidMarkup, c)
		}
	case stStartName:
		switch {
		case isNameChar(c):
			f.name = append(f.name, c)
		case isSpace(c):
			f.state = stInTag
		case c == '/':
			f.state = stSelfClose
		case c == '>':
			f.start()
			f.state = stText
		default:
			return fmt.Errorf("%w: unexpected %q in element name", ErrInvalidMarkup, c)
		}
	case stInTag:
		switch c {
		case '"', '\'':
			f.quote = c
			f.state = stAttrValue
		case '/':
			f.state = stSelfClose
		case '>':
			f.start()
			f.state = stText
		case '<':
			return fmt.Errorf("%w: unexpected '<' in start tag", ErrInvalidMarkup)
		}
	case stAttrValue:
		if c == f.quote {
			f.state = stInTag
		}
	case stSelfClose:
		if c != '>' {
			return fmt.Errorf("%w: expected '>' after '/'", ErrInvalidMarkup)
		}

		f.start()
		f.state = stText

		return f.end(f.stack[len(f.stack)-1])
	case stEndName:
		switch {
		case len(f.name) == 0 && isNameStart(c), len(f.name) > 0 && isNameChar(c):
			f.name = append(f.name, c)
		case isSpace(c) && len(f.name) > 0:
			f.state = stEndTail
		case c == '>' && len(f.name) > 0:
			f.state = stText
			return f.end(string(f.name))
		default:
			return fmt.Errorf("%w: unexpected %q in end tag", ErrInvalidMarkup, c)
		}
	case stEndTail:
		switch {
		case isSpace(c):
		case c == '>':
			f.state = stText
			return f.end(string(f.name))
		default:
			return fmt.Errorf("%w: unexpected %q in end tag", ErrInvalidMarkup, c)
		}
	case stBang:
		switch {
		case c == '-':
			f.state = stCommentOpen
		case c == '[':
			f.run = 1
			f.state = stCDATAOpen
		case isNameStart(c):
			f.declDepth = 0
			f.state = stDecl
		default:
			return fmt.Errorf("%w: unexpected %q after '<!'", ErrInvalidMarkup, c)
		}
	case stCommentOpen:
		if c != '-' {
			return fmt.Errorf("%w: expected '<!--'", ErrInvalidMarkup)
		}

		f.run = 0
		f.state = stComment
	case stComment:
		switch {
		case c == '-':
			f.run++
		case c == '>' && f.run >= 2:
			f.state = stText
		default:
			f.run = 0
		}
	case stCDATAOpen:
		if c != cdataOpen[f.run] {
			return fmt.Errorf("%w: expected '<![CDATA['", ErrInvalidMarkup)
		}

		f.run++
		if f.run == len(cdataOpen) {
			f.run = 0
			f.state = stCDATA
		}
	case stCDATA:
		switch {
		case c == ']':
			f.run++
		case c == '>' && f.run >= 2:
			f.state = stText
		default:
			f.run = 0
		}
	case stDecl:
		switch c {
		case '"', '\'':
			f.quote = c
			f.state = stDeclValue
		case '[':
			f.declDepth++
		case ']':
			f.declDepth--
		case '>':
			if f.declDepth <= 0 {
				f.state = stText
			}
		}
	case stDeclValue:
		if c == f.quote {
			f.state = stDecl
		}
	case stPI:
		switch {
		case c == '?':
			f.run = 1
		case c == '>' && f.run == 1:
			f.state = stText
		default:
			f.run = 0
		}
	}

	return nil
}

func (f *Framer) start() {
	name := string(f.name)

	if f.root == "" {
		f.root = name
	}

	f.stack = append(f.stack, name)
}

func (f *Framer) end(name string) error {
	if len(f.stack) == 0 {
		return fmt.Errorf("%w: </%s>", ErrUnexpectedEndTag, name)
	}

	top := f.stack[len(f.stack)-1]
	if top != name {
		return fmt.Errorf("%w: </%s>, expected </%s>", ErrMismatchedTag, name, top)
	}

	f.stack = f.stack[:len(f.stack)-1]

	if len(f.stack) == 0 && name == f.root {
		f.done = true
	}

	return nil
}

// isBOM accepts the UTF-8 byte order mark at the very start of the stream.
func (f *Framer) isBOM(c byte) bool {
	bom := [...]byte{0xEF, 0xBB, 0xBF}

	return f.consumed <= int64(len(bom)) && c == bom[f.consumed-1]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == ':' || c >= 0x80
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9' || c == '-' || c == '.'
}
