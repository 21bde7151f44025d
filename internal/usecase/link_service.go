package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	ants "github.com/panjf2000/ants/v2"
	"github.com/valyala/bytebufferpool"

	"github.com/pitchmap/lnp-importer/internal/domain/club"
	"github.com/pitchmap/lnp-importer/internal/domain/edition"
	"github.com/pitchmap/lnp-importer/internal/domain/league"
	"github.com/pitchmap/lnp-importer/internal/domain/mapper"
	"github.com/pitchmap/lnp-importer/internal/domain/region"
	"github.com/pitchmap/lnp-importer/internal/domain/team"
	"github.com/pitchmap/lnp-importer/internal/platform/logging"
)

// Dropdowns names the filter widgets the upstream site needs on a league page.
// It decides which query parameters a composed deep link must carry.
type Dropdowns string

const (
	DropdownsNone                Dropdowns = "None"
	DropdownsPlay                Dropdowns = "Play"
	DropdownsLeagueAndPlay       Dropdowns = "LeagueAndPlay"
	DropdownsZpnAndLeagueAndPlay Dropdowns = "ZpnAndLeagueAndPlay"
)

// GroupLeague is one selectable league inside an upstream site group.
type GroupLeague struct {
	ExternalID string
	Name       string
}

// LeagueGroup is one top-level entry of the upstream site's competition menu.
type LeagueGroup struct {
	ExternalID string
	Name       string
	SubTitle   string
	Dropdowns  Dropdowns
	Leagues    []GroupLeague
}

// LinkTables is the static upstream-site data deep links are composed from.
type LinkTables struct {
	ClubURLFormat string
	TeamURLFormat string
	LeagueBaseURL string

	MaleGroups   []LeagueGroup
	FemaleGroups []LeagueGroup

	MaleDivisionIDs   map[string]string
	FemaleDivisionIDs map[string]string

	MaleFallbackDivisionID   string
	FemaleFallbackDivisionID string

	// RegionZPNs maps region names to upstream federation uuids.
	RegionZPNs map[string]string
}

// LinkService writes upstream deep links back onto mapper entities, so the
// canonical records can link out to their source pages.
type LinkService struct {
	mappers   mapper.Repository
	editions  edition.Repository
	histories edition.TeamHistoryRepository
	teams     team.Repository
	clubs     club.Repository
	seasons   league.SeasonRepository
	regions   region.Repository
	tables    LinkTables
	workers   int
	logger    *logging.Logger
}

func NewLinkService(
	mappers mapper.Repository,
	editions edition.Repository,
	histories edition.TeamHistoryRepository,
	teams team.Repository,
	clubs club.Repository,
	seasons league.SeasonRepository,
	regions region.Repository,
	tables LinkTables,
	workers int,
	logger *logging.Logger,
) *LinkService {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &LinkService{
		mappers:   mappers,
		editions:  editions,
		histories: histories,
		teams:     teams,
		clubs:     clubs,
		seasons:   seasons,
		regions:   regions,
		tables:    tables,
		workers:   workers,
		logger:    logger,
	}
}

// ComposeAll recomputes every club, team and league deep link. Returns the
// number of entities written.
func (s *LinkService) ComposeAll(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "LinkService.ComposeAll")
	defer span.End()

	written, err := s.composeEntityLinks(ctx)
	if err != nil {
		return written, err
	}

	maleWritten, err := s.composeLeagueLinks(ctx, s.tables.MaleGroups, "Male")
	written += maleWritten
	if err != nil {
		return written, err
	}

	femaleWritten, err := s.composeLeagueLinks(ctx, s.tables.FemaleGroups, "Female")
	written += femaleWritten
	return written, err
}

// composeEntityLinks handles the flat club and team links. The work is pure
// per-entity string formatting, so it fans out on a worker pool.
func (s *LinkService) composeEntityLinks(ctx context.Context) (int, error) {
	entities, err := s.mappers.ListEntitiesByTypes(ctx, mapper.RelatedClub, mapper.RelatedTeamHistory)
	if err != nil {
		return 0, fmt.Errorf("list club/team mapper entities: %w", err)
	}
	if len(entities) == 0 {
		return 0, nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var written atomic.Int32
	var firstErr atomic.Value
	var workers sync.WaitGroup

	for _, entity := range entities {
		entity := entity
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			format := s.tables.ClubURLFormat
			if entity.RelatedType == mapper.RelatedTeamHistory {
				format = s.tables.TeamURLFormat
			}
			url := fmt.Sprintf(format, entity.ExternalID)
			if entity.URL == url {
				return
			}
			entity.URL = url
			if err := s.mappers.UpdateEntity(ctx, entity); err != nil {
				firstErr.CompareAndSwap(nil, fmt.Errorf("update entity id=%d url: %w", entity.ID, err))
				return
			}
			written.Add(1)
		}); err != nil {
			workers.Done()
			return int(written.Load()), fmt.Errorf("submit link task: %w", err)
		}
	}

	workers.Wait()
	if err, ok := firstErr.Load().(error); ok && err != nil {
		return int(written.Load()), err
	}
	return int(written.Load()), nil
}

func (s *LinkService) composeLeagueLinks(ctx context.Context, groups []LeagueGroup, gender string) (int, error) {
	written := 0
	for _, group := range groups {
		for _, groupLeague := range group.Leagues {
			entities, err := s.mappers.ListEntitiesByExternalID(ctx, groupLeague.ExternalID)
			if err != nil {
				return written, fmt.Errorf("list entities external_id=%s: %w", groupLeague.ExternalID, err)
			}
			for _, entity := range entities {
				if entity.RelatedType != mapper.RelatedLeague {
					continue
				}
				count, err := s.composeLeagueLink(ctx, entity, group, groupLeague, gender)
				if err != nil {
					return written, err
				}
				written += count
			}
		}
	}
	return written, nil
}

// composeLeagueLink builds one league deep link and writes it onto both the
// league entity and its sibling play entity.
func (s *LinkService) composeLeagueLink(ctx context.Context, entity mapper.Entity, group LeagueGroup, groupLeague GroupLeague, gender string) (int, error) {
	playEntity, ok, err := s.mappers.GetEntity(ctx, mapper.EntityFilter{
		TargetID:       entity.TargetID,
		RelatedType:    mapper.RelatedLeagueEdition,
		DatabaseSource: mapper.SourceExternalDB,
	})
	if err != nil {
		return 0, fmt.Errorf("get play entity mapper=%d: %w", entity.TargetID, err)
	}
	if !ok {
		return 0, nil
	}

	ed, ok, err := s.editions.GetByMapper(ctx, entity.TargetID)
	if err != nil {
		return 0, fmt.Errorf("get edition mapper=%d: %w", entity.TargetID, err)
	}
	if !ok {
		return 0, nil
	}
	season, ok, err := s.seasons.GetByID(ctx, ed.SeasonID)
	if err != nil {
		return 0, fmt.Errorf("get season id=%d: %w", ed.SeasonID, err)
	}
	if !ok {
		return 0, nil
	}

	divisionID := s.divisionID(group.Name, gender)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(s.tables.LeagueBaseURL)
	appendParam(buf, "season", strings.ReplaceAll(season.Name, "/", "%2F"))
	appendParam(buf, "leagueGroup", group.ExternalID)
	appendParam(buf, "leagueId", divisionID)
	appendParam(buf, "enumType", string(group.Dropdowns))
	appendParam(buf, "isAdvanceMode", "true")
	appendParam(buf, "gender", gender)

	switch group.Dropdowns {
	case DropdownsLeagueAndPlay:
		appendParam(buf, "subLeague", groupLeague.ExternalID)
		appendParam(buf, "group", playEntity.ExternalID)
	case DropdownsZpnAndLeagueAndPlay:
		appendParam(buf, "subLeague", groupLeague.ExternalID)
		appendParam(buf, "group", playEntity.ExternalID)
		zpn, ok, err := s.editionZPN(ctx, ed)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, nil
		}
		appendParam(buf, "voivodeship", zpn)
	case DropdownsPlay:
		appendParam(buf, "group", playEntity.ExternalID)
	}

	url := buf.String()
	written := 0
	for _, target := range []mapper.Entity{entity, playEntity} {
		if target.URL == url {
			continue
		}
		target.URL = url
		if err := s.mappers.UpdateEntity(ctx, target); err != nil {
			return written, fmt.Errorf("update entity id=%d url: %w", target.ID, err)
		}
		written++
	}
	return written, nil
}

func (s *LinkService) divisionID(groupName, gender string) string {
	if gender == "Male" {
		if id, ok := s.tables.MaleDivisionIDs[groupName]; ok {
			return id
		}
		return s.tables.MaleFallbackDivisionID
	}
	if id, ok := s.tables.FemaleDivisionIDs[groupName]; ok {
		return id
	}
	return s.tables.FemaleFallbackDivisionID
}

// editionZPN finds the federation uuid for the edition through the region of
// the first participating club that has one.
func (s *LinkService) editionZPN(ctx context.Context, ed edition.LeagueEdition) (string, bool, error) {
	items, err := s.histories.ListByEdition(ctx, ed.ID)
	if err != nil {
		return "", false, fmt.Errorf("list team histories edition=%d: %w", ed.ID, err)
	}

	for _, item := range items {
		teamObj, ok, err := s.teams.GetByID(ctx, item.TeamID)
		if err != nil {
			return "", false, fmt.Errorf("get team id=%d: %w", item.TeamID, err)
		}
		if !ok {
			continue
		}
		clubObj, ok, err := s.clubs.GetByID(ctx, teamObj.ClubID)
		if err != nil {
			return "", false, fmt.Errorf("get club id=%d: %w", teamObj.ClubID, err)
		}
		if !ok || clubObj.RegionID == 0 {
			continue
		}
		regionObj, ok, err := s.regions.GetByID(ctx, clubObj.RegionID)
		if err != nil {
			return "", false, fmt.Errorf("get region id=%d: %w", clubObj.RegionID, err)
		}
		if !ok {
			continue
		}
		if zpn, ok := s.tables.RegionZPNs[regionObj.Name]; ok {
			return zpn, true, nil
		}
	}
	return "", false, nil
}

// appendParam assumes the base URL ends with "?".
func appendParam(buf *bytebufferpool.ByteBuffer, key, value string) {
	if n := buf.Len(); n > 0 && buf.B[n-1] != '?' {
		_ = buf.WriteByte('&')
	}
	_, _ = buf.WriteString(key)
	_ = buf.WriteByte('=')
	_, _ = buf.WriteString(value)
}
