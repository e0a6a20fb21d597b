// Package ocr defines the text recognition collaborator used on captured
// frames.
package ocr

import (
	"context"

	"plate-service/internal/model"
)

// Engine reads text from an encoded image and reports one Detection per text
// line, in reading order.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, image []byte) (*model.DetectionSet, error)
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(ctx context.Context, image []byte) (*model.DetectionSet, error)

func (f EngineFunc) Name() string { return "func" }

func (f EngineFunc) Recognize(ctx context.Context, image []byte) (*model.DetectionSet, error) {
	return f(ctx, image)
}
