package sheets

import (
	"context"
	"fmt"
	"os"
)

// FileSource serves a workbook export previously saved to disk.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read workbook file %q: %w", s.Path, err)
	}
	return data, nil
}
