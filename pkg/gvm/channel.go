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

// Package gvm implements the request channel shared by the GMP and OSP
// dialects. A Channel owns one transport, writes a request, reads the stream
// until one complete XML response is framed and classifies it.
package gvm

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/opengvm/gvm-go/internal/framer"
	"github.com/opengvm/gvm-go/pkg/gvmerr"
	"github.com/opengvm/gvm-go/pkg/transport"
	"github.com/opengvm/gvm-go/pkg/xmlcmd"
)

const tracerName = "github.com/opengvm/gvm-go/pkg/gvm"

// State is the lifecycle state of a Channel.
type State int

const (
	Disconnected State = iota
	Connected
	Authenticated
	Closed
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connected:
		return "connected"
	case Authenticated:
		return "authenticated"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Option configures a Channel.
type Option func(*Channel)

// WithLogger sets the logger used by the channel.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Channel) {
		c.logger = logger
	}
}

// WithTracer sets the tracer used to record one span per request.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Channel) {
		c.tracer = tracer
	}
}

// WithTimeout sets the wall clock limit for reading one response. Zero
// selects transport.DefaultTimeout and transport.NoTimeout disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Channel) {
		c.timeout = transport.EffectiveTimeout(d)
	}
}

// WithTransform sets the transform applied by Send and SendRaw.
func WithTransform(t Transform) Option {
	return func(c *Channel) {
		if t != nil {
			c.transform = t
		}
	}
}

// WithMaxResponseSize limits the size of a single response. Zero disables
// the limit.
func WithMaxResponseSize(n int64) Option {
	return func(c *Channel) {
		c.maxSize = n
	}
}

// WithFinishSend half-closes the transport after every request. Servers that
// read a command until end of stream, like ospd, need it.
func WithFinishSend() Option {
	return func(c *Channel) {
		c.finishSend = true
	}
}

// Channel sends requests over a transport and reads back framed responses.
// A Channel is owned by a single goroutine.
type Channel struct {
	transport  transport.Transport
	state      State
	timeout    time.Duration
	transform  Transform
	maxSize    int64
	finishSend bool
	logger     zerolog.Logger
	tracer     trace.Tracer
	stats      channelStats
}

// NewChannel returns a disconnected Channel on top of t. The default
// transform is TransformChecked.
func NewChannel(t transport.Transport, opts ...Option) *Channel {
	c := &Channel{
		transport: t,
		timeout:   transport.DefaultTimeout,
		transform: TransformChecked,
		logger:    zerolog.Nop(),
		tracer:    otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Transport returns the underlying transport.
func (c *Channel) Transport() transport.Transport {
	return c.transport
}

// State returns the current lifecycle state.
func (c *Channel) State() State {
	return c.state
}

// Timeout returns the effective response timeout, zero meaning none.
func (c *Channel) Timeout() time.Duration {
	return c.timeout
}

// Connect opens the transport. A failed connect leaves the channel in its
// previous state. Connecting an open channel is a no-op.
func (c *Channel) Connect(ctx context.Context) error {
	if c.isOpen() {
		return nil
	}

	if err := c.transport.Connect(ctx); err != nil {
		return err
	}

	c.state = Connected

	return nil
}

// Disconnect closes the transport. It can be called in any state and more
// than once.
func (c *Channel) Disconnect() error {
	prev := c.state
	c.state = Closed

	if prev == Closed {
		return nil
	}

	return c.transport.Disconnect()
}

// MarkAuthenticated records a successful GMP authentication.
func (c *Channel) MarkAuthenticated() {
	if c.state == Connected {
		c.state = Authenticated
	}
}

// IsAuthenticated reports whether MarkAuthenticated was called on the open
// channel.
func (c *Channel) IsAuthenticated() bool {
	return c.state == Authenticated
}

func (c *Channel) isOpen() bool {
	return c.state == Connected || c.state == Authenticated
}

// Send serialises cmd, invokes it and applies the channel transform.
func (c *Channel) Send(ctx context.Context, cmd *xmlcmd.Command) (*Response, error) {
	return c.SendWith(ctx, cmd, c.transform)
}

// SendWith is Send with an explicit transform. Commands that cannot be
// serialised as XML are rejected before anything is written.
func (c *Channel) SendWith(ctx context.Context, cmd *xmlcmd.Command, t Transform) (*Response, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return c.send(ctx, cmd.Name(), cmd.Bytes(), t)
}

// SendRaw sends an already serialised request and applies the channel
// transform.
func (c *Channel) SendRaw(ctx context.Context, data string) (*Response, error) {
	return c.send(ctx, "", []byte(data), c.transform)
}

func (c *Channel) send(ctx context.Context, name string, data []byte, t Transform) (*Response, error) {
	resp, err := c.invoke(ctx, name, data)
	if err != nil {
		return nil, err
	}

	if t == nil {
		c.stats.ok.Add(1)
		return resp, nil
	}

	resp, err = t(resp)
	if err != nil {
		c.stats.rejected.Add(1)
		return nil, err
	}

	c.stats.ok.Add(1)

	return resp, nil
}

// Invoke writes data and reads exactly one complete response. Transport,
// framing and timeout errors close the channel.
func (c *Channel) Invoke(ctx context.Context, data []byte) (*Response, error) {
	resp, err := c.invoke(ctx, "", data)
	if err == nil {
		c.stats.ok.Add(1)
	}

	return resp, err
}

func (c *Channel) invoke(ctx context.Context, name string, data []byte) (*Response, error) {
	if !c.isOpen() {
		return nil, gvmerr.New(gvmerr.Transport, "channel is %s", c.state)
	}

	ctx, span := c.tracer.Start(ctx, "gvm.invoke", trace.WithAttributes(
		attribute.String("gvm.command", name),
		attribute.Int("gvm.request.size", len(data)),
	))
	defer span.End()

	if c.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var once sync.Once

	abort := func() {
		once.Do(func() {
			_ = c.transport.Disconnect() //nolint:errcheck // the read loop reports the failure
		})
	}

	// Closing the transport is the only way to abort a blocked send or read.
	stop := context.AfterFunc(ctx, abort)
	defer stop()

	resp, err := c.exchange(ctx, data)
	if err == nil && !stop() {
		err = ctx.Err()
	}

	if err != nil {
		if ctx.Err() != nil {
			err = contextError(ctx, err)
		}

		c.fail(abort)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		c.logger.Debug().Err(err).Str("command", name).Msg("Request failed")

		return nil, err
	}

	span.SetAttributes(attribute.Int("gvm.response.size", len(resp.Bytes())))

	return resp, nil
}

func (c *Channel) exchange(ctx context.Context, data []byte) (*Response, error) {
	if err := c.transport.Send(data); err != nil {
		return nil, err
	}

	c.stats.sent.Add(int64(len(data)))
	c.logger.Debug().Str("size", humanize.Bytes(uint64(len(data)))).Msg("Request sent")

	if c.finishSend {
		if err := c.transport.FinishSend(); err != nil {
			return nil, err
		}
	}

	f := framer.New(framer.WithMaxSize(c.maxSize))

	var buf bytes.Buffer

	for {
		chunk, err := c.transport.Recv()

		switch {
		case errors.Is(err, io.EOF), err == nil && len(chunk) == 0:
			return nil, gvmerr.New(gvmerr.Transport, "Remote closed the connection")
		case err != nil:
			return nil, err
		}

		c.stats.received.Add(int64(len(chunk)))

		n, done, err := f.Feed(chunk)
		buf.Write(chunk[:n])

		if err != nil {
			return nil, err
		}

		if done {
			break
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	c.logger.Debug().Str("size", humanize.Bytes(uint64(buf.Len()))).
		Str("root", f.Root()).Msg("Response received")

	return NewResponse(buf.Bytes()), nil
}

func (c *Channel) fail(disconnect func()) {
	c.stats.failed.Add(1)

	if c.state != Closed {
		c.state = Closed
		disconnect()
	}
}

func contextError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return gvmerr.Wrap(gvmerr.Timeout, ctx.Err(), "no complete response in time")
	}

	if gvmerr.IsKind(err, gvmerr.Transport) || gvmerr.KindOf(err) == gvmerr.KindUnknown {
		return gvmerr.Wrap(gvmerr.Transport, ctx.Err(), "request aborted")
	}

	return err
}
