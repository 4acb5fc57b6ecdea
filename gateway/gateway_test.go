package gateway

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/knograph/ai"
	"github.com/poiesic/knograph/ai/mock"
	"github.com/poiesic/knograph/core"
)

type recordingSink struct {
	mutex    sync.Mutex
	started  int
	retried  int
	fellBack int
	finished []CallMetrics
}

var _ MetricsSink = (*recordingSink)(nil)

func (r *recordingSink) CallStarted(_ string, _ int) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.started++
}

func (r *recordingSink) CallRetried(_ string, _ int, _ time.Duration, _ error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.retried++
}

func (r *recordingSink) CallFellBack(_ string, _ error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.fellBack++
}

func (r *recordingSink) CallFinished(metrics CallMetrics) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.finished = append(r.finished, metrics)
}

func TestGatewayRequiresExtractor(t *testing.T) {
	_, err := NewGateway(nil)
	assert.ErrorIs(t, err, ErrExtractorRequired)
}

func TestGatewaySuccessFirstAttempt(t *testing.T) {
	extractor := &mock.MockExtractor{}
	sink := &recordingSink{}

	gw, err := NewGateway(extractor,
		WithConfig(testConfig()),
		WithMetricsSink(sink))
	require.NoError(t, err)
	defer gw.Release()

	raw, err := gw.Extract(context.Background(), "张三主演电影《A》", ai.ExtractOptions{})
	require.NoError(t, err)
	assert.Equal(t, core.TrustTierProvider, raw.TrustTier)
	assert.Equal(t, 1, extractor.CallCount())
	assert.Equal(t, 1, sink.started)
	assert.Len(t, sink.finished, 1)
	assert.Equal(t, 1, sink.finished[0].Attempts)
	assert.False(t, sink.finished[0].UsedFallback)
}

func TestGatewayRetriesThenSucceeds(t *testing.T) {
	var calls int
	var mutex sync.Mutex
	extractor := &mock.MockExtractor{
		ExtractFunc: func(ctx context.Context, text string, opts ai.ExtractOptions) (*ai.RawExtraction, error) {
			mutex.Lock()
			calls++
			n := calls
			mutex.Unlock()
			if n < 3 {
				return nil, &TransientError{Err: errors.New("connection reset")}
			}
			return &ai.RawExtraction{Payload: mock.DefaultPayload, TrustTier: core.TrustTierProvider}, nil
		},
	}
	sink := &recordingSink{}

	gw, err := NewGateway(extractor,
		WithConfig(testConfig()),
		WithMetricsSink(sink))
	require.NoError(t, err)
	defer gw.Release()

	raw, err := gw.Extract(context.Background(), "some text", ai.ExtractOptions{})
	require.NoError(t, err)
	assert.Equal(t, core.TrustTierProvider, raw.TrustTier)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, sink.retried)
	assert.Equal(t, 0, sink.fellBack)
}

func TestGatewayFallsBackWhenExhausted(t *testing.T) {
	primary := &mock.MockExtractor{
		ExtractFunc: func(ctx context.Context, text string, opts ai.ExtractOptions) (*ai.RawExtraction, error) {
			return nil, &TransientError{Err: errors.New("timeout")}
		},
	}
	fallback := &mock.MockExtractor{
		ExtractFunc: func(ctx context.Context, text string, opts ai.ExtractOptions) (*ai.RawExtraction, error) {
			return &ai.RawExtraction{Payload: mock.DefaultPayload, TrustTier: core.TrustTierFallback, Model: "fallback"}, nil
		},
	}
	sink := &recordingSink{}

	cfg := testConfig()
	cfg.RetryCount = 2
	gw, err := NewGateway(primary,
		WithConfig(cfg),
		WithFallback(fallback),
		WithMetricsSink(sink))
	require.NoError(t, err)
	defer gw.Release()

	raw, err := gw.Extract(context.Background(), "some text", ai.ExtractOptions{})
	require.NoError(t, err)
	assert.Equal(t, core.TrustTierFallback, raw.TrustTier)
	assert.Equal(t, 2, primary.CallCount())
	assert.Equal(t, 1, fallback.CallCount())
	assert.Equal(t, 1, sink.fellBack)
	require.Len(t, sink.finished, 1)
	assert.True(t, sink.finished[0].UsedFallback)
}

func TestGatewayPermanentErrorBypassesFallback(t *testing.T) {
	primary := &mock.MockExtractor{
		ExtractFunc: func(ctx context.Context, text string, opts ai.ExtractOptions) (*ai.RawExtraction, error) {
			return nil, &PermanentError{Err: errors.New("auth failed")}
		},
	}
	fallback := &mock.MockExtractor{}
	sink := &recordingSink{}

	gw, err := NewGateway(primary,
		WithConfig(testConfig()),
		WithFallback(fallback),
		WithMetricsSink(sink))
	require.NoError(t, err)
	defer gw.Release()

	_, err = gw.Extract(context.Background(), "some text", ai.ExtractOptions{})
	assert.ErrorIs(t, err, ErrExtractionFailed)
	assert.Equal(t, 1, primary.CallCount())
	assert.Equal(t, 0, fallback.CallCount())
	assert.Equal(t, 0, sink.fellBack)
}

func TestGatewayFailsWithoutFallback(t *testing.T) {
	primary := &mock.MockExtractor{
		ExtractFunc: func(ctx context.Context, text string, opts ai.ExtractOptions) (*ai.RawExtraction, error) {
			return nil, &PermanentError{Err: errors.New("bad request")}
		},
	}

	cfg := testConfig()
	cfg.EnableFallback = false
	gw, err := NewGateway(primary, WithConfig(cfg))
	require.NoError(t, err)
	defer gw.Release()

	_, err = gw.Extract(context.Background(), "some text", ai.ExtractOptions{})
	assert.ErrorIs(t, err, ErrExtractionFailed)
	assert.Equal(t, 1, primary.CallCount())
}

func TestGatewayOverloadFailsFast(t *testing.T) {
	release := make(chan struct{})
	primary := &mock.MockExtractor{
		ExtractFunc: func(ctx context.Context, text string, opts ai.ExtractOptions) (*ai.RawExtraction, error) {
			<-release
			return &ai.RawExtraction{Payload: mock.DefaultPayload, TrustTier: core.TrustTierProvider}, nil
		},
	}

	cfg := testConfig()
	cfg.MaxConcurrent = 1
	cfg.QueueCapacity = 1
	gw, err := NewGateway(primary, WithConfig(cfg))
	require.NoError(t, err)
	defer gw.Release()

	var wg sync.WaitGroup
	errs := make(chan error, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := gw.Extract(context.Background(), "text", ai.ExtractOptions{})
			errs <- err
		}()
	}

	// Give the first call time to occupy the worker and the second to queue
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	var overloaded, succeeded int
	for err := range errs {
		switch {
		case errors.Is(err, ErrOverloaded):
			overloaded++
		case err == nil:
			succeeded++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, overloaded)
	assert.Equal(t, 2, succeeded)
}

func TestGatewayAttemptSurvivesCallerCancel(t *testing.T) {
	var completed atomic.Bool
	primary := &mock.MockExtractor{
		ExtractFunc: func(ctx context.Context, text string, opts ai.ExtractOptions) (*ai.RawExtraction, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(50 * time.Millisecond):
				completed.Store(true)
				return &ai.RawExtraction{Payload: mock.DefaultPayload, TrustTier: core.TrustTierProvider}, nil
			}
		},
	}

	gw, err := NewGateway(primary, WithConfig(testConfig()))
	require.NoError(t, err)
	defer gw.Release()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	// The caller stops waiting but the in-flight attempt runs to completion
	_, err = gw.Extract(ctx, "some text", ai.ExtractOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Eventually(t, func() bool { return completed.Load() },
		time.Second, 10*time.Millisecond)
}

func TestGatewayCancelDuringBackoff(t *testing.T) {
	primary := &mock.MockExtractor{
		ExtractFunc: func(ctx context.Context, text string, opts ai.ExtractOptions) (*ai.RawExtraction, error) {
			return nil, &TransientError{Err: errors.New("timeout")}
		},
	}

	cfg := testConfig()
	cfg.RetryBaseDelay = 10 * time.Second
	cfg.RetryMaxDelay = 10 * time.Second
	gw, err := NewGateway(primary, WithConfig(cfg))
	require.NoError(t, err)
	defer gw.Release()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err = gw.Extract(ctx, "some text", ai.ExtractOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTimeoutForScalesWithLength(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10*time.Second, cfg.TimeoutFor(0))
	assert.Equal(t, 12*time.Second, cfg.TimeoutFor(500))
	assert.Equal(t, 12*time.Second, cfg.TimeoutFor(1000))
	assert.Equal(t, 14*time.Second, cfg.TimeoutFor(1001))
	// Capped at MaxTimeout
	assert.Equal(t, 60*time.Second, cfg.TimeoutFor(100000))
}
