package wehttp

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/weegigs/wee-commands-go/we"
)

const (
	outcomeAccepted   = "accepted"
	outcomeBadRequest = "bad_request"
	outcomeNotHandled = "not_handled"
	outcomeFailed     = "failed"
)

const unknownCommand = "unknown"

// CommandMetrics counts command requests by outcome and times dispatches. A nil
// *CommandMetrics records nothing.
type CommandMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewCommandMetrics(registerer prometheus.Registerer) (*CommandMetrics, error) {
	m := &CommandMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "we_commands",
				Name:      "requests_total",
				Help:      "Count of command requests by command and outcome.",
			},
			[]string{"command", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "we_commands",
				Name:      "dispatch_duration_seconds",
				Help:      "Time spent dispatching commands to their handlers.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"command"},
		),
	}

	if registerer != nil {
		if err := registerer.Register(m.requests); err != nil {
			return nil, err
		}
		if err := registerer.Register(m.duration); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *CommandMetrics) record(command we.CommandName, outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(label(command), outcome).Inc()
}

func (m *CommandMetrics) observe(command we.CommandName, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(label(command)).Observe(elapsed.Seconds())
}

func label(command we.CommandName) string {
	if command == "" {
		return unknownCommand
	}
	return string(command)
}
