package digest

import (
	"fmt"
	"os"
	"sync"
)

// Writer appends product blocks to the shared all_content.txt file.
// It is safe for concurrent use; each block lands in one piece.
type Writer struct {
	mu   sync.Mutex
	file *os.File
}

// Open creates path, truncating any content left over from a previous run.
func Open(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open digest file: %w", err)
	}
	return &Writer{file: f}, nil
}

// Append writes block as a single write.
func (w *Writer) Append(block string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.file.WriteString(block); err != nil {
		return fmt.Errorf("append to digest: %w", err)
	}
	return w.file.Sync()
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
