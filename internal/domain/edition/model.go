package edition

import "fmt"

// LeagueEdition binds a league-tree node to a season. RawName keeps the
// unparsed upstream play name for auditing.
type LeagueEdition struct {
	ID       int64
	LeagueID int64
	SeasonID int64
	MapperID int64
	RawName  string
}

func (e LeagueEdition) Validate() error {
	if e.LeagueID <= 0 {
		return fmt.Errorf("league edition league id is required")
	}
	if e.SeasonID <= 0 {
		return fmt.Errorf("league edition season id is required")
	}

	return nil
}

// TeamHistory binds a team to the league edition it played in.
type TeamHistory struct {
	ID        int64
	TeamID    int64
	EditionID int64
	MapperID  int64
	RawName   string
	Visible   bool
}

func (h TeamHistory) Validate() error {
	if h.TeamID <= 0 {
		return fmt.Errorf("team history team id is required")
	}
	if h.EditionID <= 0 {
		return fmt.Errorf("team history edition id is required")
	}

	return nil
}
