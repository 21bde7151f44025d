package lnp

import (
	"github.com/go-playground/validator/v10"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

// Wire documents as the scraper service serves them. Every payload goes
// through the shared validator before it is mapped to usecase types, so a
// malformed document fails the fetch instead of poisoning the run.
var validate = validator.New()

type voivodeshipDocument struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type playDocument struct {
	ID          string               `json:"id" validate:"required"`
	Name        string               `json:"name" validate:"required"`
	Voivodeship *voivodeshipDocument `json:"voivodeship"`
}

type leagueDocument struct {
	ID        string         `json:"id" validate:"required"`
	Name      string         `json:"name" validate:"required"`
	Gender    string         `json:"gender"`
	Seniority string         `json:"seniority"`
	Season    string         `json:"season" validate:"required"`
	PMID      int            `json:"pm_id"`
	Plays     []playDocument `json:"plays" validate:"dive"`
}

type baseClubDocument struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type teamDocument struct {
	ID           string            `json:"id" validate:"required"`
	Name         string            `json:"name" validate:"required"`
	Abbreviation string            `json:"abbreviation"`
	Logo         string            `json:"logo"`
	Season       string            `json:"season"`
	League       *baseClubDocument `json:"league"`
}

type teamHistoryDocument struct {
	ObjID string           `json:"obj_id" validate:"required"`
	Club  baseClubDocument `json:"club" validate:"required"`
	Teams []teamDocument   `json:"teams" validate:"dive"`
}

type clubDocument struct {
	ID           string               `json:"id" validate:"required"`
	Name         string               `json:"name" validate:"required"`
	Abbreviation string               `json:"abbreviation"`
	Address      string               `json:"address"`
	Voivodeship  *voivodeshipDocument `json:"voivodeship"`
	Teams        []teamDocument       `json:"teams" validate:"dive"`
}

func (d playDocument) toSource() usecase.SourcePlay {
	out := usecase.SourcePlay{
		ExternalID: d.ID,
		Name:       d.Name,
	}
	if d.Voivodeship != nil {
		out.Region = d.Voivodeship.Name
	}
	return out
}

func (d leagueDocument) toSource() usecase.SourceLeague {
	plays := make([]usecase.SourcePlay, 0, len(d.Plays))
	for _, play := range d.Plays {
		plays = append(plays, play.toSource())
	}
	return usecase.SourceLeague{
		ExternalID: d.ID,
		Name:       d.Name,
		Gender:     d.Gender,
		Seniority:  d.Seniority,
		Season:     d.Season,
		PMID:       d.PMID,
		Plays:      plays,
	}
}

func (d teamDocument) toSource() usecase.SourceTeam {
	out := usecase.SourceTeam{
		ExternalID:   d.ID,
		Name:         d.Name,
		Abbreviation: d.Abbreviation,
		Season:       d.Season,
	}
	if d.League != nil {
		out.LeagueExternalID = d.League.ID
		out.LeagueName = d.League.Name
	}
	return out
}

func (d teamHistoryDocument) toSource() usecase.SourceTeamHistory {
	teams := make([]usecase.SourceTeam, 0, len(d.Teams))
	for _, item := range d.Teams {
		teams = append(teams, item.toSource())
	}
	return usecase.SourceTeamHistory{
		ExternalID: d.ObjID,
		Club: usecase.SourceClubRef{
			ExternalID: d.Club.ID,
			Name:       d.Club.Name,
		},
		Teams: teams,
	}
}

func (d clubDocument) toSource() usecase.SourceClub {
	out := usecase.SourceClub{
		ExternalID:   d.ID,
		Name:         d.Name,
		Abbreviation: d.Abbreviation,
		Address:      d.Address,
	}
	if d.Voivodeship != nil {
		out.Region = d.Voivodeship.Name
	}
	return out
}

func validateSlice[T any](items []T) error {
	for i := range items {
		if err := validate.Struct(items[i]); err != nil {
			return err
		}
	}
	return nil
}
