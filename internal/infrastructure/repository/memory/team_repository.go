package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pitchmap/lnp-importer/internal/domain/team"
	"github.com/pitchmap/lnp-importer/internal/platform/id"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

type TeamRepository struct {
	mu      sync.RWMutex
	teams   map[int64]team.Team
	editors map[int64][]int64
	ids     id.Generator
	nextID  int64
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{
		teams:   make(map[int64]team.Team),
		editors: make(map[int64][]int64),
		ids:     id.NewRandomGenerator(),
	}
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	return item, ok, nil
}

func (r *TeamRepository) GetByMapper(_ context.Context, mapperID int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, itemID := range sortedIDs(r.teams) {
		if r.teams[itemID].MapperID == mapperID {
			return r.teams[itemID], true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) FindByName(_ context.Context, name string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, 1)
	for _, itemID := range sortedIDs(r.teams) {
		if r.teams[itemID].Name == name {
			out = append(out, r.teams[itemID])
		}
	}

	return out, nil
}

func (r *TeamRepository) ListByClub(_ context.Context, clubID int64) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, 2)
	for _, itemID := range sortedIDs(r.teams) {
		if r.teams[itemID].ClubID == clubID {
			out = append(out, r.teams[itemID])
		}
	}

	return out, nil
}

func (r *TeamRepository) ListUnmanaged(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, 2)
	for _, itemID := range sortedIDs(r.teams) {
		item := r.teams[itemID]
		if item.ManagerID == 0 && len(r.editors[item.ID]) == 0 {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) (team.Team, error) {
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if item.PublicID == "" {
		publicID, err := r.ids.NewID()
		if err != nil {
			return team.Team{}, fmt.Errorf("generate team public id: %w", err)
		}
		item.PublicID = publicID
	}

	r.nextID++
	item.ID = r.nextID
	r.teams[item.ID] = item

	return item, nil
}

func (r *TeamRepository) Update(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[item.ID]; !ok {
		return fmt.Errorf("%w: team id=%d", usecase.ErrNotFound, item.ID)
	}
	r.teams[item.ID] = item

	return nil
}

func (r *TeamRepository) Delete(_ context.Context, teamID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.teams, teamID)
	delete(r.editors, teamID)

	return nil
}

func (r *TeamRepository) ListEditors(_ context.Context, teamID int64) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]int64, len(r.editors[teamID]))
	copy(out, r.editors[teamID])

	return out, nil
}

func (r *TeamRepository) AddEditor(_ context.Context, teamID, editorID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[teamID]; !ok {
		return fmt.Errorf("%w: team id=%d", usecase.ErrNotFound, teamID)
	}
	for _, existing := range r.editors[teamID] {
		if existing == editorID {
			return nil
		}
	}
	r.editors[teamID] = append(r.editors[teamID], editorID)

	return nil
}
