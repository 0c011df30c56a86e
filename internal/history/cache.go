package history

import (
	"context"
	"log"
	"sync"

	"github.com/epicabdou/hse-inspector/internal/client"
	"github.com/epicabdou/hse-inspector/internal/hazard"
)

// Lister fetches one page of recent inspections.
type Lister interface {
	List(ctx context.Context, page, pageSize int) (*client.ListResult, error)
}

// Cache holds the most recently fetched page of inspections. It is
// supplementary to the main pipeline: refresh failures are swallowed
// here (and logged), never surfaced as pipeline errors.
type Cache struct {
	lister   Lister
	pageSize int

	mu          sync.RWMutex
	inspections []hazard.Inspection
	page        int
	totalCount  int
}

func NewCache(lister Lister, pageSize int) *Cache {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Cache{
		lister:   lister,
		pageSize: pageSize,
	}
}

// Refresh replaces the held list with the requested page. On failure the
// cache is left unchanged. A cached inspection's processingStatus never
// regresses: if the server echoes an earlier status for a known id, the
// cached record is kept.
func (c *Cache) Refresh(ctx context.Context, page int) {
	if page <= 0 {
		page = 1
	}

	res, err := c.lister.List(ctx, page, c.pageSize)
	if err != nil {
		log.Printf("[HISTORY] refresh failed: %v", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	known := make(map[string]hazard.Inspection, len(c.inspections))
	for _, ins := range c.inspections {
		known[ins.ID] = ins
	}

	next := make([]hazard.Inspection, 0, len(res.Inspections))
	for _, ins := range res.Inspections {
		if prev, ok := known[ins.ID]; ok && !ins.Supersedes(&prev) {
			next = append(next, prev)
			continue
		}
		next = append(next, ins)
	}

	c.inspections = next
	c.page = res.Page
	c.totalCount = res.TotalCount
}

// Snapshot returns a copy of the cached inspections.
func (c *Cache) Snapshot() []hazard.Inspection {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]hazard.Inspection, len(c.inspections))
	copy(out, c.inspections)
	return out
}

// TotalCount reports the server-side total from the last successful
// refresh.
func (c *Cache) TotalCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.totalCount
}

// Page reports which page the cache currently holds.
func (c *Cache) Page() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.page
}
