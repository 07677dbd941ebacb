// Package ocr provides image text recognition behind a serialized,
// timeout-bounded controller. The engine itself is not safe for concurrent
// use; all access goes through the Controller.
package ocr

import (
	"context"
	"errors"
)

// ErrNoText is returned when recognition succeeds but the recovered text is
// too short to be meaningful.
var ErrNoText = errors.New("ocr: no readable text detected")

// ErrTimeout is returned when a recognition call exceeds the per-call timeout.
// Only the timed-out call fails; the controller stays available.
var ErrTimeout = errors.New("ocr: recognition timed out")

// Engine performs text recognition on a single image. Implementations are not
// required to be safe for concurrent use.
type Engine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
	Close() error
}

// EngineFactory creates the process-wide engine. It is invoked lazily on the
// first recognition call and again on later calls if creation failed.
type EngineFactory func() (Engine, error)

// ONNXFactory returns a factory producing the ONNX recognition engine for the
// model at modelPath. With CGO disabled the factory always fails, which the
// image extraction boundary degrades to a placeholder.
func ONNXFactory(modelPath string) EngineFactory {
	return func() (Engine, error) {
		eng, err := NewONNXEngine(modelPath)
		if err != nil {
			return nil, err
		}
		return eng, nil
	}
}
