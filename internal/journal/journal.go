// Package journal appends accepted plates to a plain text log, one per line.
package journal

import (
	"fmt"
	"os"
	"sync"
)

type Journal struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Journal {
	return &Journal{path: path}
}

func (j *Journal) Path() string {
	return j.path
}

// Append writes plate followed by a newline. The file is created on first use
// and never truncated.
func (j *Journal) Append(plate string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open plate log: %w", err)
	}

	if _, err := f.WriteString(plate + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("append plate log: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close plate log: %w", err)
	}
	return nil
}
