// Package ocr defines the text recognition contract used by the pipeline and
// its Tesseract-backed implementation.
package ocr

import "context"

// Input encapsulates a single image submitted for recognition.
type Input struct {
	// ID is an optional caller-provided identifier echoed back in the Result.
	ID string
	// Image is the encoded image payload (PNG).
	Image []byte
	// Language is the trained-data language hint (e.g. "mal").
	Language string
	// DPI carries the effective dots-per-inch of the image; zero means unknown.
	DPI int
}

// Result captures recognition output for a single input image.
type Result struct {
	InputID   string
	PlainText string
}

// Engine is the recognition contract: one image in, one result out. Calls are
// synchronous and block until the engine finishes.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, input Input) (Result, error)
}
