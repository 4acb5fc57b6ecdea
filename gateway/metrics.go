package gateway

import (
	"time"

	"github.com/poiesic/knograph/core"
)

// CallMetrics summarizes one finished extraction call.
type CallMetrics struct {
	RequestId    string
	Attempts     int
	UsedFallback bool
	TrustTier    core.TrustTier
	Duration     time.Duration
	Err          error
}

// MetricsSink provides hooks to observe gateway calls.
// Implement this interface to track attempts, retries and outcomes.
type MetricsSink interface {
	CallStarted(requestId string, textLen int)
	CallRetried(requestId string, attempt int, wait time.Duration, err error)
	CallFellBack(requestId string, err error)
	CallFinished(metrics CallMetrics)
}

// noopSink is a no-op implementation of MetricsSink
type noopSink struct{}

var _ MetricsSink = (*noopSink)(nil)

func (n *noopSink) CallStarted(_ string, _ int)                          {}
func (n *noopSink) CallRetried(_ string, _ int, _ time.Duration, _ error) {}
func (n *noopSink) CallFellBack(_ string, _ error)                       {}
func (n *noopSink) CallFinished(_ CallMetrics)                           {}
