package ports

import "water-quality-dashboard/internal/domain"

// Decodes raw export bytes into a parsed workbook.
type WorkbookDecoder func(data []byte) (*domain.Workbook, error)
