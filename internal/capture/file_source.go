package capture

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Capture(ctx context.Context) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: image %s not found", ErrNoFrame, s.path)
		}
		return nil, fmt.Errorf("read image %s: %w", s.path, err)
	}

	return DecodeFrame(data, "file:"+s.path)
}
