package team

import (
	"fmt"
	"strings"
)

const (
	SenioritySenior = "seniorzy"
	SeniorityJunior = "juniorzy"

	GenderMale   = "mężczyźni"
	GenderFemale = "kobiety"
)

// Team is a canonical team inside a club. Auto-created teams start invisible
// until an operator reviews them.
type Team struct {
	ID          int64
	PublicID    string
	Name        string
	ClubID      int64
	LeagueID    int64
	Seniority   string
	Gender      string
	Aliases     string
	MapperID    int64
	ManagerID   int64
	Visible     bool
	AutoCreated bool
}

func (t Team) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.ClubID <= 0 {
		return fmt.Errorf("team club id is required")
	}

	return nil
}

// HasAlias reports whether the raw name variant was already recorded.
func (t Team) HasAlias(raw string) bool {
	return raw != "" && strings.Contains(t.Aliases, raw)
}
