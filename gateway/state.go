package gateway

import "time"

// CallState is the phase of a single extraction call.
type CallState int

const (
	// StateIdle means the call has not started.
	StateIdle CallState = iota
	// StateCalling means a provider attempt is in flight.
	StateCalling
	// StateRetryWait means the call is backing off before another attempt.
	StateRetryWait
	// StateFallbackCalling means the heuristic fallback is in flight.
	StateFallbackCalling
	// StateDone means the call produced a result.
	StateDone
	// StateFailed means the call is exhausted without a result.
	StateFailed
)

// String returns the state name.
func (s CallState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCalling:
		return "calling"
	case StateRetryWait:
		return "retry-wait"
	case StateFallbackCalling:
		return "fallback-calling"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// callMachine tracks the retry and fallback progression of one call.
// The gateway performs the actual attempts and feeds outcomes in; the
// machine only decides what happens next. It is not safe for concurrent
// use and is owned by a single worker.
type callMachine struct {
	cfg     Config
	state   CallState
	attempt int
	lastErr error
}

func newCallMachine(cfg Config) *callMachine {
	return &callMachine{cfg: cfg, state: StateIdle}
}

// State returns the current state.
func (m *callMachine) State() CallState {
	return m.state
}

// Attempt returns the number of provider attempts started so far.
func (m *callMachine) Attempt() int {
	return m.attempt
}

// LastErr returns the error from the most recent attempt.
func (m *callMachine) LastErr() error {
	return m.lastErr
}

// Begin starts the first provider attempt.
func (m *callMachine) Begin() {
	m.state = StateCalling
	m.attempt = 1
}

// Observe records the outcome of a provider attempt and transitions.
func (m *callMachine) Observe(err error) {
	if err == nil {
		m.state = StateDone
		return
	}
	m.lastErr = err
	if !isTransient(err) {
		// Auth failures and malformed requests will not improve on
		// retry, and the fallback must not mask them.
		m.state = StateFailed
		return
	}
	if m.attempt < m.cfg.RetryCount {
		m.state = StateRetryWait
		return
	}
	if m.cfg.EnableFallback {
		m.state = StateFallbackCalling
		return
	}
	m.state = StateFailed
}

// ObserveFallback records the outcome of a fallback attempt.
func (m *callMachine) ObserveFallback(err error) {
	if err == nil {
		m.state = StateDone
		return
	}
	m.lastErr = err
	m.state = StateFailed
}

// Resume leaves the backoff wait and starts the next attempt.
func (m *callMachine) Resume() {
	m.state = StateCalling
	m.attempt++
}

// RetryDelay returns the backoff wait before the next attempt: the base
// delay doubled per completed attempt, capped at the configured maximum.
func (m *callMachine) RetryDelay() time.Duration {
	delay := m.cfg.RetryBaseDelay
	for i := 1; i < m.attempt; i++ {
		delay *= 2
		if delay >= m.cfg.RetryMaxDelay {
			return m.cfg.RetryMaxDelay
		}
	}
	if delay > m.cfg.RetryMaxDelay {
		delay = m.cfg.RetryMaxDelay
	}
	return delay
}
