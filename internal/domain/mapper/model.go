package mapper

import (
	"fmt"
	"time"
)

// RelatedType names the kind of canonical record a cross-reference points at.
type RelatedType string

const (
	RelatedTeam          RelatedType = "team"
	RelatedPlayer        RelatedType = "player"
	RelatedCoach         RelatedType = "coach"
	RelatedClub          RelatedType = "club"
	RelatedTeamHistory   RelatedType = "team-history"
	RelatedLeague        RelatedType = "league"
	RelatedLeagueEdition RelatedType = "league-edition"
)

// DatabaseSource names the class of upstream store an external id came from.
type DatabaseSource string

const (
	SourceExternalDB DatabaseSource = "external-db"
	SourceLegacyDB   DatabaseSource = "legacy-db"
	SourceImportFile DatabaseSource = "import-file"
)

// Mapper is an opaque identity anchor. All external references to one
// canonical record hang off a single mapper.
type Mapper struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Source is a named origin system, e.g. "LNP". Immutable reference data.
type Source struct {
	ID   int64
	Name string
}

// Entity is one (source, external id) fact attached to a mapper. A mapper
// holds at most one entity per (related type, database source) pair.
type Entity struct {
	ID             int64
	TargetID       int64
	SourceID       int64
	ExternalID     string
	RelatedType    RelatedType
	DatabaseSource DatabaseSource
	Description    string
	URL            string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (e Entity) Validate() error {
	if e.TargetID <= 0 {
		return fmt.Errorf("mapper entity target id is required")
	}
	if e.ExternalID == "" {
		return fmt.Errorf("mapper entity external id is required")
	}
	if e.RelatedType == "" {
		return fmt.Errorf("mapper entity related type is required")
	}
	if e.DatabaseSource == "" {
		return fmt.Errorf("mapper entity database source is required")
	}

	return nil
}
