//go:build cgo
// +build cgo

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	ort "github.com/yalue/onnxruntime_go"
)

// Fixed input geometry of the recognition model: one grayscale line image.
const (
	onnxInputHeight = 32
	onnxInputWidth  = 320
)

// onnxCharset is the model's output alphabet; index 0 is the CTC blank.
const onnxCharset = " 0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ.,;:!?'\"()[]-/&"

// ONNXEngine runs text recognition with ONNX Runtime. It requires CGO and the
// onnxruntime shared library. Not safe for concurrent use; the Controller
// serializes access.
type ONNXEngine struct {
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
	steps        int
}

// NewONNXEngine creates a recognition engine from the model at modelPath.
// InitializeEnvironment is called if not already done.
func NewONNXEngine(modelPath string) (*ONNXEngine, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX runtime: %w", err)
	}

	inputData := make([]float32, onnxInputHeight*onnxInputWidth)
	inputTensor, err := ort.NewTensor(ort.NewShape(1, 1, onnxInputHeight, onnxInputWidth), inputData)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	steps := onnxInputWidth / 4
	outputData := make([]float32, steps*len(onnxCharset))
	outputTensor, err := ort.NewTensor(ort.NewShape(1, int64(steps), int64(len(onnxCharset))), outputData)
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{"input"},
		[]string{"output"},
		[]ort.ArbitraryTensor{inputTensor},
		[]ort.ArbitraryTensor{outputTensor},
		nil,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ONNXEngine{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
		steps:        steps,
	}, nil
}

// Recognize decodes img, normalizes it into the input tensor, runs the model,
// and greedy-decodes the CTC output.
func (e *ONNXEngine) Recognize(ctx context.Context, img []byte) (string, error) {
	decoded, _, err := image.Decode(bytes.NewReader(img))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	fillGrayscale(e.inputTensor.GetData(), decoded)

	if err := e.session.Run(); err != nil {
		return "", fmt.Errorf("inference failed: %w", err)
	}
	return ctcDecode(e.outputTensor.GetData(), e.steps), nil
}

// Close destroys the session and tensors.
func (e *ONNXEngine) Close() error {
	var err error
	if e.session != nil {
		err = e.session.Destroy()
		e.session = nil
	}
	if e.inputTensor != nil {
		_ = e.inputTensor.Destroy()
		e.inputTensor = nil
	}
	if e.outputTensor != nil {
		_ = e.outputTensor.Destroy()
		e.outputTensor = nil
	}
	return err
}

// fillGrayscale samples img into dst as normalized grayscale at the model's
// fixed geometry (nearest neighbor).
func fillGrayscale(dst []float32, img image.Image) {
	b := img.Bounds()
	for y := 0; y < onnxInputHeight; y++ {
		sy := b.Min.Y + y*b.Dy()/onnxInputHeight
		for x := 0; x < onnxInputWidth; x++ {
			sx := b.Min.X + x*b.Dx()/onnxInputWidth
			r, g, bl, _ := img.At(sx, sy).RGBA()
			gray := float32(r+r+g+g+g+bl) / 6 / 65535
			dst[y*onnxInputWidth+x] = (gray - 0.5) / 0.5
		}
	}
}

// ctcDecode collapses repeated argmax indices and drops blanks (index 0).
func ctcDecode(logits []float32, steps int) string {
	var b strings.Builder
	classes := len(onnxCharset)
	prev := -1
	for t := 0; t < steps; t++ {
		best, bestScore := 0, float32(-1e30)
		for c := 0; c < classes; c++ {
			if s := logits[t*classes+c]; s > bestScore {
				best, bestScore = c, s
			}
		}
		if best != prev && best != 0 {
			b.WriteByte(onnxCharset[best])
		}
		prev = best
	}
	return strings.TrimSpace(b.String())
}
