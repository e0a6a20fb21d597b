// Package capture acquires a single still frame from a file or a camera.
package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"plate-service/internal/config"
)

// ErrNoFrame is returned when the source has nothing usable to offer.
var ErrNoFrame = errors.New("no frame available")

type Frame struct {
	Data   []byte
	Format string
	Width  int
	Height int
	Source string
}

type Source interface {
	Capture(ctx context.Context) (*Frame, error)
}

// NewSource builds the source selected by cfg.Capture.Mode.
func NewSource(cfg *config.Config) (Source, error) {
	switch cfg.Capture.Mode {
	case config.InputModeFile:
		return NewFileSource(cfg.Capture.ImagePath), nil
	case config.InputModeCamera:
		return NewCameraSource(cfg.Capture.CameraSnapshotURL, &http.Client{Timeout: cfg.Capture.Timeout}), nil
	default:
		return nil, fmt.Errorf("unsupported input mode %q", cfg.Capture.Mode)
	}
}

// DecodeFrame checks that data is an image in a registered format. Data that
// does not decode is reported as ErrNoFrame.
func DecodeFrame(data []byte, source string) (*Frame, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrNoFrame, source)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrNoFrame, source, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("%w: %s has no pixels", ErrNoFrame, source)
	}
	return &Frame{
		Data:   data,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Source: source,
	}, nil
}
