package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pitchmap/lnp-importer/internal/domain/club"
	"github.com/pitchmap/lnp-importer/internal/platform/id"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

type ClubRepository struct {
	mu      sync.RWMutex
	clubs   map[int64]club.Club
	editors map[int64][]int64
	ids     id.Generator
	nextID  int64
}

func NewClubRepository() *ClubRepository {
	return &ClubRepository{
		clubs:   make(map[int64]club.Club),
		editors: make(map[int64][]int64),
		ids:     id.NewRandomGenerator(),
	}
}

func (r *ClubRepository) GetByID(_ context.Context, clubID int64) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.clubs[clubID]
	return item, ok, nil
}

func (r *ClubRepository) GetByMapper(_ context.Context, mapperID int64) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, itemID := range sortedIDs(r.clubs) {
		if r.clubs[itemID].MapperID == mapperID {
			return r.clubs[itemID], true, nil
		}
	}

	return club.Club{}, false, nil
}

func (r *ClubRepository) FindByName(_ context.Context, name string) ([]club.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]club.Club, 0, 1)
	for _, itemID := range sortedIDs(r.clubs) {
		if r.clubs[itemID].Name == name {
			out = append(out, r.clubs[itemID])
		}
	}

	return out, nil
}

func (r *ClubRepository) ListNameContains(_ context.Context, fragment string) ([]club.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(fragment)
	out := make([]club.Club, 0, 2)
	for _, itemID := range sortedIDs(r.clubs) {
		if strings.Contains(strings.ToLower(r.clubs[itemID].Name), needle) {
			out = append(out, r.clubs[itemID])
		}
	}

	return out, nil
}

func (r *ClubRepository) List(_ context.Context) ([]club.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]club.Club, 0, len(r.clubs))
	for _, itemID := range sortedIDs(r.clubs) {
		out = append(out, r.clubs[itemID])
	}

	return out, nil
}

func (r *ClubRepository) ListUnmanaged(_ context.Context) ([]club.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]club.Club, 0, 2)
	for _, itemID := range sortedIDs(r.clubs) {
		item := r.clubs[itemID]
		if item.ManagerID == 0 && len(r.editors[item.ID]) == 0 {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *ClubRepository) Create(_ context.Context, item club.Club) (club.Club, error) {
	if err := item.Validate(); err != nil {
		return club.Club{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if item.PublicID == "" {
		publicID, err := r.ids.NewID()
		if err != nil {
			return club.Club{}, fmt.Errorf("generate club public id: %w", err)
		}
		item.PublicID = publicID
	}

	r.nextID++
	item.ID = r.nextID
	r.clubs[item.ID] = item

	return item, nil
}

func (r *ClubRepository) Update(_ context.Context, item club.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clubs[item.ID]; !ok {
		return fmt.Errorf("%w: club id=%d", usecase.ErrNotFound, item.ID)
	}
	r.clubs[item.ID] = item

	return nil
}

func (r *ClubRepository) Delete(_ context.Context, clubID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.clubs, clubID)
	delete(r.editors, clubID)

	return nil
}

func (r *ClubRepository) ListEditors(_ context.Context, clubID int64) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]int64, len(r.editors[clubID]))
	copy(out, r.editors[clubID])

	return out, nil
}

func (r *ClubRepository) AddEditor(_ context.Context, clubID, editorID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clubs[clubID]; !ok {
		return fmt.Errorf("%w: club id=%d", usecase.ErrNotFound, clubID)
	}
	for _, existing := range r.editors[clubID] {
		if existing == editorID {
			return nil
		}
	}
	r.editors[clubID] = append(r.editors[clubID], editorID)

	return nil
}

func sortedIDs[T any](items map[int64]T) []int64 {
	ids := make([]int64, 0, len(items))
	for itemID := range items {
		ids = append(ids, itemID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}
