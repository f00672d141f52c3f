package sheets

import (
	"context"
	"fmt"
	"log"
	"water-quality-dashboard/internal/ports"
)

// CachedSource consults an ExportCache before fetching from the wrapped source.
// Cache failures are logged and never fail the fetch.
type CachedSource struct {
	Source ports.WorkbookSource
	Cache  ports.ExportCache
	Key    string
}

func NewCachedSource(source ports.WorkbookSource, cache ports.ExportCache, key string) *CachedSource {
	return &CachedSource{Source: source, Cache: cache, Key: key}
}

func (c *CachedSource) Fetch(ctx context.Context) ([]byte, error) {
	if c.Cache != nil {
		data, ok, err := c.Cache.Get(ctx, c.Key)
		if err != nil {
			log.Printf("export cache read failed key=%s: %v", c.Key, err)
		} else if ok {
			return data, nil
		}
	}

	return c.FetchFresh(ctx)
}

// FetchFresh bypasses the cache read and stores the new export.
func (c *CachedSource) FetchFresh(ctx context.Context) ([]byte, error) {
	data, err := c.Source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("cached source: %w", err)
	}

	if c.Cache != nil {
		if err := c.Cache.Put(ctx, c.Key, data); err != nil {
			log.Printf("export cache write failed key=%s: %v", c.Key, err)
		}
	}

	return data, nil
}
