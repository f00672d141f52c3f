package sheets

import (
	"context"
	"errors"
	"sync"
)

// StaticSource returns fixed export bytes and counts fetches.
// Stands in for a remote spreadsheet in tests.
type StaticSource struct {
	mu    sync.Mutex
	data  []byte
	err   error
	calls int
}

func NewStaticSource(data []byte) *StaticSource {
	return &StaticSource{data: data}
}

// Set swaps the bytes (or error) returned by subsequent fetches.
func (s *StaticSource) Set(data []byte, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.err = err
}

func (s *StaticSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *StaticSource) Fetch(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.data == nil {
		return nil, errors.New("static source: no data")
	}
	return s.data, nil
}
