package repositories

import (
	"context"
	"errors"
	"slices"
	"sync"
	"water-quality-dashboard/internal/domain"
)

// In-memory implementation of the ReadingRepository port.
// Holds the most recent workbook snapshot; reads return copies.
type MemoryReadingRepository struct {
	mu sync.RWMutex
	wb *domain.Workbook
}

func NewMemoryReadingRepository() *MemoryReadingRepository {
	return &MemoryReadingRepository{}
}

func (m *MemoryReadingRepository) ListSheets(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.wb == nil {
		return []string{}, nil
	}
	return slices.Clone(m.wb.Sheets), nil
}

func (m *MemoryReadingRepository) ListReadings(ctx context.Context, sheet string) ([]domain.Reading, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.wb == nil {
		return []domain.Reading{}, nil
	}

	readings := m.wb.Readings[sheet]
	out := make([]domain.Reading, len(readings))
	copy(out, readings)
	return out, nil
}

func (m *MemoryReadingRepository) ReplaceAll(ctx context.Context, wb *domain.Workbook) error {
	if wb == nil {
		return errors.New("replace readings: workbook is nil")
	}

	snapshot := &domain.Workbook{
		Sheets:   slices.Clone(wb.Sheets),
		Readings: make(map[string][]domain.Reading, len(wb.Readings)),
	}
	for sheet, readings := range wb.Readings {
		snapshot.Readings[sheet] = slices.Clone(readings)
	}

	m.mu.Lock()
	m.wb = snapshot
	m.mu.Unlock()

	return nil
}
