// Package metrics counts dashboard and marketplace traffic for the /metrics
// endpoint.
package metrics

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

type Metrics struct {
	requests        atomic.Int64
	upstreamCalls   atomic.Int64
	upstreamErrors  atomic.Int64
	sessionsOpened  atomic.Int64
	rateLimited     atomic.Int64
	exportsRendered atomic.Int64

	clock     clockwork.Clock
	startTime time.Time
}

func New(clock clockwork.Clock) *Metrics {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Metrics{clock: clock, startTime: clock.Now()}
}

func (m *Metrics) RecordRequest() { m.requests.Add(1) }

// RecordUpstream counts one marketplace call and whether it failed.
func (m *Metrics) RecordUpstream(err error) {
	m.upstreamCalls.Add(1)
	if err != nil {
		m.upstreamErrors.Add(1)
	}
}

func (m *Metrics) RecordSession()     { m.sessionsOpened.Add(1) }
func (m *Metrics) RecordRateLimited() { m.rateLimited.Add(1) }
func (m *Metrics) RecordExport()      { m.exportsRendered.Add(1) }

type Snapshot struct {
	Requests        int64         `json:"requests"`
	UpstreamCalls   int64         `json:"upstream_calls"`
	UpstreamErrors  int64         `json:"upstream_errors"`
	SessionsOpened  int64         `json:"sessions_opened"`
	RateLimited     int64         `json:"rate_limited"`
	ExportsRendered int64         `json:"exports_rendered"`
	Uptime          time.Duration `json:"uptime"`
}

func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		Requests:        m.requests.Load(),
		UpstreamCalls:   m.upstreamCalls.Load(),
		UpstreamErrors:  m.upstreamErrors.Load(),
		SessionsOpened:  m.sessionsOpened.Load(),
		RateLimited:     m.rateLimited.Load(),
		ExportsRendered: m.exportsRendered.Load(),
		Uptime:          m.clock.Since(m.startTime),
	}
}

// WriteText renders the snapshot in the Prometheus text exposition format.
func (s Snapshot) WriteText(w io.Writer) error {
	counters := []struct {
		name  string
		help  string
		value int64
	}{
		{"associates_http_requests_total", "Dashboard API requests served", s.Requests},
		{"associates_paapi_calls_total", "Product Advertising API calls made", s.UpstreamCalls},
		{"associates_paapi_errors_total", "Product Advertising API calls that failed", s.UpstreamErrors},
		{"associates_sessions_opened_total", "Dashboard sessions opened", s.SessionsOpened},
		{"associates_rate_limited_total", "Requests rejected by the rate limiter", s.RateLimited},
		{"associates_exports_total", "CSV exports rendered", s.ExportsRendered},
	}

	for _, c := range counters {
		if _, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s counter\n%s %d\n", c.name, c.help, c.name, c.name, c.value); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "# HELP associates_uptime_seconds Seconds since start\n# TYPE associates_uptime_seconds gauge\nassociates_uptime_seconds %.0f\n", s.Uptime.Seconds())
	return err
}
