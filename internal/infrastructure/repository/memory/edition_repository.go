package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/pitchmap/lnp-importer/internal/domain/edition"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

type EditionRepository struct {
	mu       sync.RWMutex
	editions map[int64]edition.LeagueEdition
	nextID   int64
}

func NewEditionRepository() *EditionRepository {
	return &EditionRepository{editions: make(map[int64]edition.LeagueEdition)}
}

func (r *EditionRepository) GetByMapper(_ context.Context, mapperID int64) (edition.LeagueEdition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, itemID := range sortedIDs(r.editions) {
		if r.editions[itemID].MapperID == mapperID {
			return r.editions[itemID], true, nil
		}
	}

	return edition.LeagueEdition{}, false, nil
}

func (r *EditionRepository) GetByLeagueSeason(_ context.Context, leagueID, seasonID int64) (edition.LeagueEdition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, itemID := range sortedIDs(r.editions) {
		item := r.editions[itemID]
		if item.LeagueID == leagueID && item.SeasonID == seasonID {
			return item, true, nil
		}
	}

	return edition.LeagueEdition{}, false, nil
}

func (r *EditionRepository) Create(_ context.Context, item edition.LeagueEdition) (edition.LeagueEdition, error) {
	if err := item.Validate(); err != nil {
		return edition.LeagueEdition{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.editions {
		if existing.LeagueID == item.LeagueID && existing.SeasonID == item.SeasonID {
			return edition.LeagueEdition{}, fmt.Errorf(
				"%w: edition for league=%d season=%d exists",
				usecase.ErrRepositoryConstraint, item.LeagueID, item.SeasonID,
			)
		}
	}

	r.nextID++
	item.ID = r.nextID
	r.editions[item.ID] = item

	return item, nil
}

func (r *EditionRepository) Update(_ context.Context, item edition.LeagueEdition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.editions[item.ID]; !ok {
		return fmt.Errorf("%w: edition id=%d", usecase.ErrNotFound, item.ID)
	}
	r.editions[item.ID] = item

	return nil
}

type TeamHistoryRepository struct {
	mu        sync.RWMutex
	histories map[int64]edition.TeamHistory
	nextID    int64
}

func NewTeamHistoryRepository() *TeamHistoryRepository {
	return &TeamHistoryRepository{histories: make(map[int64]edition.TeamHistory)}
}

func (r *TeamHistoryRepository) GetByMapper(_ context.Context, mapperID int64) (edition.TeamHistory, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, itemID := range sortedIDs(r.histories) {
		if r.histories[itemID].MapperID == mapperID {
			return r.histories[itemID], true, nil
		}
	}

	return edition.TeamHistory{}, false, nil
}

func (r *TeamHistoryRepository) ListByEdition(_ context.Context, editionID int64) ([]edition.TeamHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]edition.TeamHistory, 0, 4)
	for _, itemID := range sortedIDs(r.histories) {
		if r.histories[itemID].EditionID == editionID {
			out = append(out, r.histories[itemID])
		}
	}

	return out, nil
}

func (r *TeamHistoryRepository) Create(_ context.Context, item edition.TeamHistory) (edition.TeamHistory, error) {
	if err := item.Validate(); err != nil {
		return edition.TeamHistory{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	item.ID = r.nextID
	r.histories[item.ID] = item

	return item, nil
}
