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

package gvm

import (
	"context"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type channelStats struct {
	ok       atomic.Int64
	failed   atomic.Int64
	rejected atomic.Int64
	sent     atomic.Int64
	received atomic.Int64
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}

	return v
}

// WithMetricMeter registers the channel counters with meter.
func WithMetricMeter(meter metric.Meter) Option {
	return func(c *Channel) {
		ok := attribute.String("result", "ok")
		failed := attribute.String("result", "error")
		rejected := attribute.String("result", "rejected")

		must(meter.Int64ObservableCounter("gvm.channel.requests",
			metric.WithUnit("{count}"),
			metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
				o.Observe(c.stats.ok.Load(), metric.WithAttributes(ok))
				o.Observe(c.stats.failed.Load(), metric.WithAttributes(failed))
				o.Observe(c.stats.rejected.Load(), metric.WithAttributes(rejected))

				return nil
			})))

		sent := attribute.String("direction", "sent")
		received := attribute.String("direction", "received")

		must(meter.Int64ObservableCounter("gvm.channel.bytes",
			metric.WithUnit("By"),
			metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
				o.Observe(c.stats.sent.Load(), metric.WithAttributes(sent))
				o.Observe(c.stats.received.Load(), metric.WithAttributes(received))

				return nil
			})))
	}
}
