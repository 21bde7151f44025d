package usecase

import "context"

// SourceProvider is the read-only contract against the external scraper
// service. Both the live HTTP client and the snapshot-file client satisfy it.
type SourceProvider interface {
	ListLeagues(ctx context.Context) ([]SourceLeague, error)
	ListTeamHistories(ctx context.Context) ([]SourceTeamHistory, error)
	GetClubDetails(ctx context.Context, clubID string) (SourceClub, bool, error)
	ListTeamPlays(ctx context.Context, teamID string) ([]SourcePlay, error)
	ListPlayTeams(ctx context.Context, playID string) ([]SourceTeam, error)
}

// SourceLeague is one scraped competition for one season, together with its
// regional plays (divisions/groups).
type SourceLeague struct {
	ExternalID string
	Name       string
	Gender     string
	Seniority  string
	Season     string
	PMID       int
	Plays      []SourcePlay
}

// SourcePlay is one concrete division/group inside a league.
type SourcePlay struct {
	ExternalID string
	Name       string
	Region     string
}

// SourceTeamHistory groups all season-teams the source knows under one club.
// ExternalID stays stable between scrapes while team and play ids may not.
type SourceTeamHistory struct {
	ExternalID string
	Club       SourceClubRef
	Teams      []SourceTeam
}

// SourceClubRef is the shallow club reference embedded in a team history.
type SourceClubRef struct {
	ExternalID string
	Name       string
}

// SourceTeam is one team in one season.
type SourceTeam struct {
	ExternalID       string
	Name             string
	Abbreviation     string
	Season           string
	LeagueExternalID string
	LeagueName       string
}

// SourceClub is the full club detail document.
type SourceClub struct {
	ExternalID   string
	Name         string
	Abbreviation string
	Address      string
	Region       string
}
