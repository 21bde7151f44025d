package edition

import "context"

// Repository describes league-edition persistence needs from use cases.
type Repository interface {
	GetByMapper(ctx context.Context, mapperID int64) (LeagueEdition, bool, error)
	GetByLeagueSeason(ctx context.Context, leagueID, seasonID int64) (LeagueEdition, bool, error)
	Create(ctx context.Context, item LeagueEdition) (LeagueEdition, error)
	Update(ctx context.Context, item LeagueEdition) error
}

// TeamHistoryRepository describes team-history persistence needs from use cases.
type TeamHistoryRepository interface {
	GetByMapper(ctx context.Context, mapperID int64) (TeamHistory, bool, error)
	ListByEdition(ctx context.Context, editionID int64) ([]TeamHistory, error)
	Create(ctx context.Context, item TeamHistory) (TeamHistory, error)
}
