// Package tesseract implements ocr.Engine with the gosseract bindings.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"plate-service/internal/model"
)

type Engine struct {
	clientFactory func() *gosseract.Client
	languages     []string
	pageSegMode   gosseract.PageSegMode
}

// NewEngine constructs a Tesseract-backed engine. pageSegMode follows the
// tesseract --psm numbering.
func NewEngine(languages []string, pageSegMode int) *Engine {
	return &Engine{
		clientFactory: gosseract.NewClient,
		languages:     append([]string(nil), languages...),
		pageSegMode:   gosseract.PageSegMode(pageSegMode),
	}
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize runs one Tesseract pass over image and returns its text lines as
// detections. A frame with no text yields an empty, non-nil set.
func (e *Engine) Recognize(ctx context.Context, image []byte) (*model.DetectionSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := e.clientFactory()
	defer c.Close()

	if len(e.languages) > 0 {
		if err := c.SetLanguage(e.languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	if e.pageSegMode > 0 {
		if err := c.SetPageSegMode(e.pageSegMode); err != nil {
			return nil, fmt.Errorf("set page segmentation mode: %w", err)
		}
	}
	if err := c.SetImageFromBytes(image); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("recognize text lines: %w", err)
	}

	return toDetections(boxes), nil
}

func toDetections(boxes []gosseract.BoundingBox) *model.DetectionSet {
	set := &model.DetectionSet{Detections: make([]model.Detection, 0, len(boxes))}
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		set.Detections = append(set.Detections, model.Detection{
			Text:       text,
			Confidence: b.Confidence / 100.0,
			Box:        b.Box,
		})
	}
	return set
}
