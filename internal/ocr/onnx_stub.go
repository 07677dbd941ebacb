//go:build !cgo
// +build !cgo

package ocr

import (
	"context"
	"errors"
)

// ONNXEngine stub type when built without CGO (see onnx.go for the real implementation).
type ONNXEngine struct{}

// NewONNXEngine returns an error when built without CGO (ONNX not available).
// The controller does not cache this failure, so a later rebuild with CGO
// would pick the engine up on the next call.
func NewONNXEngine(_ string) (*ONNXEngine, error) {
	return nil, errors.New("OCR engine requires CGO; build with CGO_ENABLED=1 and onnxruntime")
}

// Recognize is never reachable on the stub; NewONNXEngine always fails.
func (e *ONNXEngine) Recognize(_ context.Context, _ []byte) (string, error) {
	return "", errors.New("OCR engine not available")
}

// Close is never reachable on the stub.
func (e *ONNXEngine) Close() error { return nil }
