package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// FileSource loads a saved batch document from disk, the format written by
// history exports and used for replays and tests.
type FileSource struct {
	path string
}

var _ TransactionSource = (*FileSource)(nil)

// NewFileSource builds a source reading the given batch file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and decodes the batch. Any read or decode failure, or a batch
// missing its chain or subject address, is fatal for the batch.
func (s *FileSource) Load(ctx context.Context) (*Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}

	var batch Batch
	if err := json.Unmarshal(raw, &batch); err != nil {
		return nil, fmt.Errorf("decode batch %s: %w", s.path, err)
	}
	if strings.TrimSpace(batch.Chain) == "" {
		return nil, fmt.Errorf("batch %s: chain is required", s.path)
	}
	if strings.TrimSpace(batch.Address) == "" {
		return nil, fmt.Errorf("batch %s: address is required", s.path)
	}
	return &batch, nil
}
