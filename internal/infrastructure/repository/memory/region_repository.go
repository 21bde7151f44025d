package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pitchmap/lnp-importer/internal/domain/region"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

type RegionRepository struct {
	mu      sync.RWMutex
	regions map[int64]region.Region
	nextID  int64
}

func NewRegionRepository() *RegionRepository {
	return &RegionRepository{regions: make(map[int64]region.Region)}
}

func (r *RegionRepository) GetByID(_ context.Context, regionID int64) (region.Region, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.regions[regionID]
	return item, ok, nil
}

func (r *RegionRepository) GetByName(_ context.Context, name string) (region.Region, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, itemID := range sortedIDs(r.regions) {
		if r.regions[itemID].Name == name {
			return r.regions[itemID], true, nil
		}
	}

	return region.Region{}, false, nil
}

func (r *RegionRepository) List(_ context.Context) ([]region.Region, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]region.Region, 0, len(r.regions))
	for _, itemID := range sortedIDs(r.regions) {
		out = append(out, r.regions[itemID])
	}

	return out, nil
}

func (r *RegionRepository) Create(_ context.Context, name string) (region.Region, error) {
	if name == "" {
		return region.Region{}, fmt.Errorf("%w: region name is required", usecase.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.regions {
		if item.Name == name {
			return region.Region{}, fmt.Errorf("%w: region %q exists", usecase.ErrRepositoryConstraint, name)
		}
	}

	r.nextID++
	item := region.Region{ID: r.nextID, Name: name}
	r.regions[item.ID] = item

	return item, nil
}
