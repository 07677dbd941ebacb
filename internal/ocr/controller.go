package ocr

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds each recognition call.
	DefaultTimeout = 30 * time.Second
	// DefaultMinTextLength is the threshold under which recognized text is
	// treated as no readable text rather than returned as near-empty noise.
	DefaultMinTextLength = 10
)

// Controller serializes access to a single lazily-created OCR engine. At most
// one recognition call is in flight at any instant regardless of caller
// concurrency. A creation failure is not cached: the next call retries the
// factory. A timed-out call abandons its engine instance so the next call
// cannot race a recognition still running in the background.
type Controller struct {
	factory    EngineFactory
	timeout    time.Duration
	minTextLen int
	logger     *zap.Logger

	mu     sync.Mutex
	engine Engine
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithTimeout overrides the per-call recognition timeout.
func WithTimeout(d time.Duration) ControllerOption {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMinTextLength overrides the minimum recognized text length.
func WithMinTextLength(n int) ControllerOption {
	return func(c *Controller) {
		if n > 0 {
			c.minTextLen = n
		}
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) ControllerOption {
	return func(c *Controller) { c.logger = l }
}

// NewController creates a controller around factory. The engine is not
// created until the first Recognize call.
func NewController(factory EngineFactory, opts ...ControllerOption) *Controller {
	c := &Controller{
		factory:    factory,
		timeout:    DefaultTimeout,
		minTextLen: DefaultMinTextLength,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Recognize runs OCR on image under the controller's lock and timeout.
// Returns ErrTimeout if the call exceeds the timeout, ErrNoText if the
// recovered text is shorter than the minimum length, or the engine's error.
func (c *Controller) Recognize(ctx context.Context, image []byte) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.engine == nil {
		eng, err := c.factory()
		if err != nil {
			return "", fmt.Errorf("create OCR engine: %w", err)
		}
		c.engine = eng
	}
	engine := c.engine

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := engine.Recognize(callCtx, image)
		done <- result{text, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}
		if len(r.text) < c.minTextLen {
			return "", ErrNoText
		}
		return r.text, nil
	case <-callCtx.Done():
		// The recognition goroutine may still be running against this engine
		// instance. Abandon it: close the engine once the call returns, and
		// force the next caller onto a fresh instance.
		c.engine = nil
		go func() {
			<-done
			_ = engine.Close()
		}()
		c.logger.Warn("OCR call abandoned", zap.Duration("timeout", c.timeout))
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", ErrTimeout
	}
}

// Close releases the engine, if one was created.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.engine == nil {
		return nil
	}
	err := c.engine.Close()
	c.engine = nil
	return err
}
