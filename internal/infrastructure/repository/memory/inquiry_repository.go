package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pitchmap/lnp-importer/internal/domain/inquiry"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

type InquiryRepository struct {
	mu       sync.RWMutex
	requests map[int64]inquiry.Request
	nextID   int64
}

func NewInquiryRepository(seed ...inquiry.Request) *InquiryRepository {
	r := &InquiryRepository{requests: make(map[int64]inquiry.Request)}
	for _, item := range seed {
		r.nextID++
		if item.ID == 0 {
			item.ID = r.nextID
		}
		r.requests[item.ID] = item
	}

	return r
}

func (r *InquiryRepository) ListByCategories(_ context.Context, categories ...inquiry.Category) ([]inquiry.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[inquiry.Category]struct{}, len(categories))
	for _, category := range categories {
		wanted[category] = struct{}{}
	}

	out := make([]inquiry.Request, 0, len(r.requests))
	for _, itemID := range sortedIDs(r.requests) {
		if _, ok := wanted[r.requests[itemID].Category]; ok {
			out = append(out, r.requests[itemID])
		}
	}

	return out, nil
}

func (r *InquiryRepository) Update(_ context.Context, item inquiry.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[item.ID]; !ok {
		return fmt.Errorf("%w: inquiry id=%d", usecase.ErrNotFound, item.ID)
	}
	r.requests[item.ID] = item

	return nil
}
