package gateway

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.RetryBaseDelay = 2 * time.Millisecond
	cfg.RetryMaxDelay = 10 * time.Millisecond
	return cfg
}

func TestCallMachineSuccessFirstAttempt(t *testing.T) {
	m := newCallMachine(testConfig())
	assert.Equal(t, StateIdle, m.State())

	m.Begin()
	assert.Equal(t, StateCalling, m.State())
	assert.Equal(t, 1, m.Attempt())

	m.Observe(nil)
	assert.Equal(t, StateDone, m.State())
}

func TestCallMachineRetriesTransientErrors(t *testing.T) {
	cfg := testConfig()
	cfg.RetryCount = 3
	m := newCallMachine(cfg)
	m.Begin()

	transient := &TransientError{Err: errors.New("timeout")}

	m.Observe(transient)
	assert.Equal(t, StateRetryWait, m.State())
	m.Resume()
	assert.Equal(t, 2, m.Attempt())

	m.Observe(transient)
	assert.Equal(t, StateRetryWait, m.State())
	m.Resume()
	assert.Equal(t, 3, m.Attempt())

	// Third attempt exhausts the budget, fallback is next
	m.Observe(transient)
	assert.Equal(t, StateFallbackCalling, m.State())
}

func TestCallMachinePermanentErrorFailsImmediately(t *testing.T) {
	m := newCallMachine(testConfig())
	m.Begin()

	// Fallback is enabled in the default config but must not run for a
	// permanent error.
	m.Observe(&PermanentError{Err: errors.New("bad request")})
	assert.Equal(t, StateFailed, m.State())
	assert.Equal(t, 1, m.Attempt())
}

func TestCallMachineNoFallbackFails(t *testing.T) {
	cfg := testConfig()
	cfg.EnableFallback = false
	m := newCallMachine(cfg)
	m.Begin()

	m.Observe(&PermanentError{Err: errors.New("bad request")})
	assert.Equal(t, StateFailed, m.State())
}

func TestCallMachineFallbackOutcomes(t *testing.T) {
	cfg := testConfig()
	cfg.RetryCount = 1

	m := newCallMachine(cfg)
	m.Begin()
	m.Observe(&TransientError{Err: errors.New("timeout")})
	assert.Equal(t, StateFallbackCalling, m.State())
	m.ObserveFallback(nil)
	assert.Equal(t, StateDone, m.State())

	m = newCallMachine(cfg)
	m.Begin()
	m.Observe(&TransientError{Err: errors.New("timeout")})
	m.ObserveFallback(errors.New("fallback broke"))
	assert.Equal(t, StateFailed, m.State())
}

func TestRetryDelayDoublesAndCaps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RetryBaseDelay = 2 * time.Second
	cfg.RetryMaxDelay = 30 * time.Second
	cfg.RetryCount = 10
	m := newCallMachine(cfg)
	m.Begin()

	expected := []time.Duration{
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		30 * time.Second,
		30 * time.Second,
	}
	transient := &TransientError{Err: errors.New("timeout")}
	for _, want := range expected {
		assert.Equal(t, want, m.RetryDelay())
		m.Observe(transient)
		m.Resume()
	}
}

func TestIsTransientClassification(t *testing.T) {
	assert.True(t, isTransient(errors.New("connection reset")))
	assert.True(t, isTransient(&TransientError{Err: errors.New("x")}))
	assert.False(t, isTransient(&PermanentError{Err: errors.New("x")}))
}

func TestCallStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "calling", StateCalling.String())
	assert.Equal(t, "retry-wait", StateRetryWait.String())
	assert.Equal(t, "fallback-calling", StateFallbackCalling.String())
	assert.Equal(t, "done", StateDone.String())
	assert.Equal(t, "failed", StateFailed.String())
}
