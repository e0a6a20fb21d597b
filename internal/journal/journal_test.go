package journal

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plate_log.txt")
	require.NoError(t, os.WriteFile(path, []byte("KA05MN0001\n"), 0o644))

	j := New(path)
	require.NoError(t, j.Append("MH12AB1234"))
	require.NoError(t, j.Append("MH12AB1234"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "KA05MN0001\nMH12AB1234\nMH12AB1234\n", string(data), "existing lines are kept and duplicates are not collapsed")
}

func TestJournal_ConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plate_log.txt")
	j := New(path)

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, j.Append("DL1C4567"))
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, data, writers*len("DL1C4567\n"))
}

func TestJournal_AppendToMissingDirectory(t *testing.T) {
	j := New(filepath.Join(t.TempDir(), "missing", "plate_log.txt"))
	assert.Error(t, j.Append("MH12AB1234"))
}
