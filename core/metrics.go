package core

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK          = "ok"
	outcomeTransport   = "transport_error"
	outcomeDecode      = "decode_error"
	outcomeApplication = "application_error"
	outcomeOther       = "error"
)

// Metrics records call counts and latencies. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "monero_rpc",
			Name:      "calls_total",
			Help:      "Number of RPC calls by method, convention and outcome.",
		}, []string{"method", "convention", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "monero_rpc",
			Name:      "call_duration_seconds",
			Help:      "RPC call latency by method and convention.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "convention"}),
	}

	if err := reg.Register(m.calls); err != nil {
		return nil, errors.Wrap(err, "register calls counter")
	}

	if err := reg.Register(m.duration); err != nil {
		return nil, errors.Wrap(err, "register duration histogram")
	}

	return m, nil
}

func (m *Metrics) Count(method, convention string, err error) {
	if m == nil {
		return
	}

	m.calls.WithLabelValues(method, convention, outcome(err)).Inc()
}

func (m *Metrics) Time(method, convention string, d time.Duration) {
	if m == nil {
		return
	}

	m.duration.WithLabelValues(method, convention).Observe(d.Seconds())
}

func outcome(err error) string {
	var transportErr *TransportError
	var decodeErr *DecodeError
	var appErr *ApplicationError

	switch {
	case err == nil:
		return outcomeOK
	case errors.As(err, &transportErr):
		return outcomeTransport
	case errors.As(err, &decodeErr):
		return outcomeDecode
	case errors.As(err, &appErr):
		return outcomeApplication
	default:
		return outcomeOther
	}
}
