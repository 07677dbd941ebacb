package ocr

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeEngine records execution windows and can be told to hang or fail.
type fakeEngine struct {
	mu       sync.Mutex
	inFlight int32
	overlap  bool
	text     string
	err      error
	delay    time.Duration
	closed   bool
}

func (f *fakeEngine) Recognize(ctx context.Context, _ []byte) (string, error) {
	if atomic.AddInt32(&f.inFlight, 1) > 1 {
		f.mu.Lock()
		f.overlap = true
		f.mu.Unlock()
	}
	defer atomic.AddInt32(&f.inFlight, -1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
		}
	}
	return f.text, f.err
}

func (f *fakeEngine) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func TestRecognize_ok(t *testing.T) {
	engine := &fakeEngine{text: "IN THE HIGH COURT OF SINDH"}
	c := NewController(func() (Engine, error) { return engine, nil })
	got, err := c.Recognize(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if got != "IN THE HIGH COURT OF SINDH" {
		t.Errorf("got %q", got)
	}
}

func TestRecognize_noText(t *testing.T) {
	engine := &fakeEngine{text: "ab"}
	c := NewController(func() (Engine, error) { return engine, nil })
	_, err := c.Recognize(context.Background(), nil)
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("want ErrNoText, got %v", err)
	}
}

func TestRecognize_creationFailureNotCached(t *testing.T) {
	calls := 0
	engine := &fakeEngine{text: "recovered text here"}
	c := NewController(func() (Engine, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("model not found")
		}
		return engine, nil
	})

	if _, err := c.Recognize(context.Background(), nil); err == nil {
		t.Fatal("want creation error on first call")
	}
	got, err := c.Recognize(context.Background(), nil)
	if err != nil {
		t.Fatalf("second call should retry creation: %v", err)
	}
	if got != "recovered text here" {
		t.Errorf("got %q", got)
	}
	if calls != 2 {
		t.Errorf("factory called %d times, want 2", calls)
	}
}

func TestRecognize_serialized(t *testing.T) {
	engine := &fakeEngine{text: "serialized recognition output", delay: 10 * time.Millisecond}
	c := NewController(func() (Engine, error) { return engine, nil })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Recognize(context.Background(), nil); err != nil {
				t.Errorf("Recognize: %v", err)
			}
		}()
	}
	wg.Wait()
	if engine.overlap {
		t.Error("recognition calls overlapped; engine access must be serialized")
	}
}

func TestRecognize_timeoutDoesNotPoisonQueue(t *testing.T) {
	hanging := &fakeEngine{text: "never returned", delay: time.Hour}
	healthy := &fakeEngine{text: "healthy engine output"}
	calls := 0
	c := NewController(func() (Engine, error) {
		calls++
		if calls == 1 {
			return hanging, nil
		}
		return healthy, nil
	}, WithTimeout(30*time.Millisecond))

	start := time.Now()
	_, err := c.Recognize(context.Background(), nil)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("want ErrTimeout, got %v", err)
	}

	got, err := c.Recognize(context.Background(), nil)
	if err != nil {
		t.Fatalf("next call after timeout: %v", err)
	}
	if got != "healthy engine output" {
		t.Errorf("got %q", got)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("next call served too late after timeout: %v", elapsed)
	}
}
