package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pitchmap/lnp-importer/internal/domain/league"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

type LeagueRepository struct {
	mu      sync.RWMutex
	leagues map[int64]league.League
	nextID  int64
}

func NewLeagueRepository() *LeagueRepository {
	return &LeagueRepository{leagues: make(map[int64]league.League)}
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID int64) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.leagues[leagueID]
	return item, ok, nil
}

func (r *LeagueRepository) GetByName(_ context.Context, name string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, itemID := range sortedIDs(r.leagues) {
		if r.leagues[itemID].Name == name {
			return r.leagues[itemID], true, nil
		}
	}

	return league.League{}, false, nil
}

func (r *LeagueRepository) GetChild(_ context.Context, parentID int64, name string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, itemID := range sortedIDs(r.leagues) {
		item := r.leagues[itemID]
		if item.ParentID == parentID && item.Name == name {
			return item, true, nil
		}
	}

	return league.League{}, false, nil
}

func (r *LeagueRepository) Create(_ context.Context, item league.League) (league.League, error) {
	if err := item.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	item.ID = r.nextID
	r.leagues[item.ID] = item

	return item, nil
}

type SeasonRepository struct {
	mu      sync.RWMutex
	seasons map[int64]league.Season
	nextID  int64
}

func NewSeasonRepository() *SeasonRepository {
	return &SeasonRepository{seasons: make(map[int64]league.Season)}
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID int64) (league.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.seasons[seasonID]
	return item, ok, nil
}

func (r *SeasonRepository) GetByName(_ context.Context, name string) (league.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, itemID := range sortedIDs(r.seasons) {
		if r.seasons[itemID].Name == name {
			return r.seasons[itemID], true, nil
		}
	}

	return league.Season{}, false, nil
}

func (r *SeasonRepository) Create(_ context.Context, name string) (league.Season, error) {
	if name == "" {
		return league.Season{}, fmt.Errorf("%w: season name is required", usecase.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.seasons {
		if item.Name == name {
			return league.Season{}, fmt.Errorf("%w: season %q exists", usecase.ErrRepositoryConstraint, name)
		}
	}

	r.nextID++
	item := league.Season{ID: r.nextID, Name: name}
	r.seasons[item.ID] = item

	return item, nil
}
