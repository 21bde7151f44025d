package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/pitchmap/lnp-importer/internal/domain/club"
	"github.com/pitchmap/lnp-importer/internal/domain/edition"
	"github.com/pitchmap/lnp-importer/internal/domain/inquiry"
	"github.com/pitchmap/lnp-importer/internal/domain/league"
	"github.com/pitchmap/lnp-importer/internal/domain/mapper"
	"github.com/pitchmap/lnp-importer/internal/domain/region"
	"github.com/pitchmap/lnp-importer/internal/domain/team"
	"github.com/pitchmap/lnp-importer/internal/normalize"
	"github.com/pitchmap/lnp-importer/internal/platform/cache"
	"github.com/pitchmap/lnp-importer/internal/platform/logging"
)

// SourceName is the mapper source every imported fact is recorded under.
const SourceName = "LNP"

var defaultSeasons = []string{
	"2022/2023",
	"2021/2022",
	"2020/2021",
}

// voivodeshipNames seeds the region table on an empty database.
var voivodeshipNames = []string{
	"Dolnośląskie", "Kujawsko-pomorskie", "Lubelskie", "Lubuskie",
	"Łódzkie", "Małopolskie", "Mazowieckie", "Opolskie",
	"Podkarpackie", "Podlaskie", "Pomorskie", "Śląskie",
	"Świętokrzyskie", "Warmińsko-mazurskie", "Wielkopolskie",
	"Zachodniopomorskie",
}

// RunReport summarizes one reconciliation pass.
type RunReport struct {
	InquiriesReset int
	TeamsDeleted   int
	ClubsDeleted   int
	ClubsMerged    int
	Editions       int
	TeamHistories  int
	ClubsCreated   int
	TeamsCreated   int
	Skipped        int
}

// ImportDeps wires the orchestrator. All repositories are required; Seasons
// (the allowlist) and DetailsTTL-backed cache fall back to defaults.
type ImportDeps struct {
	Source    SourceProvider
	Clubs     club.Repository
	Teams     team.Repository
	Leagues   league.Repository
	Seasons   league.SeasonRepository
	Editions  edition.Repository
	Histories edition.TeamHistoryRepository
	Inquiries inquiry.Repository
	Regions   region.Repository
	Mappers   *MapperService
	Hierarchy *HierarchyService
	Merger    ClubMerger
	Tables    Classification

	SeasonAllowlist []string
	Details         *cache.Store
	Logger          *logging.Logger
}

// ImportService runs the full reconciliation pass: cleanup, duplicate merge,
// league-edition mapping, then team-history mapping. Every step is idempotent;
// re-running against the same source data changes nothing.
type ImportService struct {
	source    SourceProvider
	clubs     club.Repository
	teams     team.Repository
	leagues   league.Repository
	seasons   league.SeasonRepository
	editions  edition.Repository
	histories edition.TeamHistoryRepository
	inquiries inquiry.Repository
	regions   region.Repository
	mappers   *MapperService
	hierarchy *HierarchyService
	merger    ClubMerger
	tables    Classification

	allow   []string
	details *cache.Store
	logger  *logging.Logger
}

func NewImportService(deps ImportDeps) *ImportService {
	if deps.Logger == nil {
		deps.Logger = logging.Default()
	}
	if len(deps.SeasonAllowlist) == 0 {
		deps.SeasonAllowlist = defaultSeasons
	}
	if deps.Details == nil {
		deps.Details = cache.NewStore(0)
	}

	return &ImportService{
		source:    deps.Source,
		clubs:     deps.Clubs,
		teams:     deps.Teams,
		leagues:   deps.Leagues,
		seasons:   deps.Seasons,
		editions:  deps.Editions,
		histories: deps.Histories,
		inquiries: deps.Inquiries,
		regions:   deps.Regions,
		mappers:   deps.Mappers,
		hierarchy: deps.Hierarchy,
		merger:    deps.Merger,
		tables:    deps.Tables,
		allow:     deps.SeasonAllowlist,
		details:   deps.Details,
		logger:    deps.Logger,
	}
}

// Run executes one full pass against the source.
func (s *ImportService) Run(ctx context.Context) (RunReport, error) {
	ctx, span := startUsecaseSpan(ctx, "ImportService.Run")
	defer span.End()

	var (
		report        RunReport
		leagues       []SourceLeague
		teamHistories []SourceTeamHistory
	)

	fetch := pool.New().WithContext(ctx).WithCancelOnError()
	fetch.Go(func(ctx context.Context) error {
		var err error
		if leagues, err = s.source.ListLeagues(ctx); err != nil {
			return fmt.Errorf("fetch source leagues: %w", err)
		}
		return nil
	})
	fetch.Go(func(ctx context.Context) error {
		var err error
		if teamHistories, err = s.source.ListTeamHistories(ctx); err != nil {
			return fmt.Errorf("fetch source team histories: %w", err)
		}
		return nil
	})
	if err := fetch.Wait(); err != nil {
		return report, err
	}

	if err := s.ensureRegions(ctx); err != nil {
		return report, err
	}
	if err := s.resetInquiries(ctx, &report); err != nil {
		return report, err
	}
	if err := s.clearTeams(ctx, &report); err != nil {
		return report, err
	}
	if err := s.clearClubs(ctx, &report); err != nil {
		return report, err
	}

	merged, err := s.merger.MergeDuplicates(ctx)
	if err != nil {
		return report, fmt.Errorf("merge duplicate clubs: %w", err)
	}
	report.ClubsMerged = merged

	if err := s.mapLeagueEditions(ctx, leagues, &report); err != nil {
		return report, err
	}
	if err := s.mapTeamHistories(ctx, teamHistories, &report); err != nil {
		return report, err
	}

	s.logger.InfoContext(ctx, "import pass finished",
		"editions", report.Editions,
		"team_histories", report.TeamHistories,
		"clubs_created", report.ClubsCreated,
		"teams_created", report.TeamsCreated,
		"clubs_merged", report.ClubsMerged,
		"skipped", report.Skipped,
	)
	return report, nil
}

func (s *ImportService) ensureRegions(ctx context.Context) error {
	existing, err := s.regions.List(ctx)
	if err != nil {
		return fmt.Errorf("list regions: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, name := range voivodeshipNames {
		if _, err := s.regions.Create(ctx, name); err != nil {
			return fmt.Errorf("seed region %s: %w", name, err)
		}
	}
	return nil
}

// resetInquiries hands club/team inquiries back to the user queue, since the
// records they point at are about to be rebuilt.
func (s *ImportService) resetInquiries(ctx context.Context, report *RunReport) error {
	requests, err := s.inquiries.ListByCategories(ctx, inquiry.CategoryClub, inquiry.CategoryTeam)
	if err != nil {
		return fmt.Errorf("list inquiries: %w", err)
	}
	for _, request := range requests {
		request.Category = inquiry.CategoryUser
		if err := s.inquiries.Update(ctx, request); err != nil {
			return fmt.Errorf("reset inquiry id=%d: %w", request.ID, err)
		}
		report.InquiriesReset++
	}
	return nil
}

// clearTeams drops never-adopted placeholders: teams nobody manages or edits
// and which no import anchored to a mapper. Mapper-anchored rows stay so the
// next pass resolves them instead of recreating them.
func (s *ImportService) clearTeams(ctx context.Context, report *RunReport) error {
	teams, err := s.teams.ListUnmanaged(ctx)
	if err != nil {
		return fmt.Errorf("list unmanaged teams: %w", err)
	}
	for _, item := range teams {
		if item.MapperID != 0 {
			continue
		}
		if err := s.teams.Delete(ctx, item.ID); err != nil {
			return fmt.Errorf("delete team id=%d: %w", item.ID, err)
		}
		report.TeamsDeleted++
	}
	return nil
}

// clearClubs drops unmanaged, mapper-less clubs once their last team is gone.
func (s *ImportService) clearClubs(ctx context.Context, report *RunReport) error {
	clubs, err := s.clubs.ListUnmanaged(ctx)
	if err != nil {
		return fmt.Errorf("list unmanaged clubs: %w", err)
	}
	for _, item := range clubs {
		if item.MapperID != 0 {
			continue
		}
		teams, err := s.teams.ListByClub(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("list teams club=%d: %w", item.ID, err)
		}
		if len(teams) > 0 {
			continue
		}
		if err := s.clubs.Delete(ctx, item.ID); err != nil {
			return fmt.Errorf("delete club id=%d: %w", item.ID, err)
		}
		report.ClubsDeleted++
	}
	return nil
}

func (s *ImportService) ensureSeason(ctx context.Context, name string) (league.Season, error) {
	season, ok, err := s.seasons.GetByName(ctx, name)
	if err != nil {
		return league.Season{}, fmt.Errorf("get season %s: %w", name, err)
	}
	if ok {
		return season, nil
	}
	season, err = s.seasons.Create(ctx, name)
	if err != nil {
		return league.Season{}, fmt.Errorf("create season %s: %w", name, err)
	}
	return season, nil
}

func (s *ImportService) mapLeagueEditions(ctx context.Context, leagues []SourceLeague, report *RunReport) error {
	ctx, span := startUsecaseSpan(ctx, "ImportService.mapLeagueEditions")
	defer span.End()

	for _, seasonName := range s.allow {
		season, err := s.ensureSeason(ctx, seasonName)
		if err != nil {
			return err
		}

		for _, lg := range leagues {
			if lg.Season != seasonName {
				continue
			}
			for _, play := range lg.Plays {
				err := s.mapEdition(ctx, lg, play, season, report)
				switch {
				case errors.Is(err, ErrSkippableEntity):
					report.Skipped++
				case errors.Is(err, ErrRepositoryConstraint):
					s.logger.WarnContext(ctx, "edition rejected by constraint, skipping",
						"play", play.Name, "error", err)
					report.Skipped++
				case err != nil:
					return err
				}
			}
		}
	}
	return nil
}

func (s *ImportService) mapEdition(ctx context.Context, lg SourceLeague, play SourcePlay, season league.Season, report *RunReport) error {
	branch, err := s.hierarchy.Classify(lg, play)
	if err != nil {
		return err
	}

	leaf, err := s.hierarchy.EnsureBranch(ctx, branch)
	if err != nil {
		return err
	}

	if round := branch.Round(); round != "" {
		if err := s.hierarchy.RelocateOppositeRound(ctx, round, leaf, season.ID); err != nil {
			return err
		}
	}

	ed, ok, err := s.findEdition(ctx, play.ExternalID, leaf.ID, season.ID)
	if err != nil {
		return err
	}
	if !ok {
		target, err := s.mappers.NewMapper(ctx,
			AttachInput{
				Source:         SourceName,
				ExternalID:     play.ExternalID,
				RelatedType:    mapper.RelatedLeagueEdition,
				DatabaseSource: mapper.SourceExternalDB,
				Description:    "LNP play uuid",
			},
			AttachInput{
				Source:         SourceName,
				ExternalID:     lg.ExternalID,
				RelatedType:    mapper.RelatedLeague,
				DatabaseSource: mapper.SourceExternalDB,
				Description:    "LNP league uuid (highest parent)",
			},
		)
		if err != nil {
			return err
		}
		if _, err := s.editions.Create(ctx, edition.LeagueEdition{
			LeagueID: leaf.ID,
			SeasonID: season.ID,
			MapperID: target.ID,
			RawName:  play.Name,
		}); err != nil {
			return fmt.Errorf("create edition league=%d season=%d: %w", leaf.ID, season.ID, err)
		}
		report.Editions++
		return nil
	}

	return s.repointEdition(ctx, ed, lg, play)
}

// findEdition resolves the edition first through the play cross-reference and
// only then by (league, season), so a renamed play still finds its record.
func (s *ImportService) findEdition(ctx context.Context, playExternalID string, leagueID, seasonID int64) (edition.LeagueEdition, bool, error) {
	target, ok, err := s.mappers.ResolveCanonical(ctx, playExternalID)
	if err != nil {
		return edition.LeagueEdition{}, false, err
	}
	if ok {
		ed, found, err := s.editions.GetByMapper(ctx, target.ID)
		if err != nil {
			return edition.LeagueEdition{}, false, fmt.Errorf("get edition mapper=%d: %w", target.ID, err)
		}
		if found {
			return ed, true, nil
		}
	}

	ed, found, err := s.editions.GetByLeagueSeason(ctx, leagueID, seasonID)
	if err != nil {
		return edition.LeagueEdition{}, false, fmt.Errorf("get edition league=%d season=%d: %w", leagueID, seasonID, err)
	}
	return ed, found, nil
}

// repointEdition moves an existing edition's cross-reference to a re-issued
// play id. The source sometimes re-publishes a shrunken play under a new id;
// comparing roster sizes keeps the richer one.
func (s *ImportService) repointEdition(ctx context.Context, ed edition.LeagueEdition, lg SourceLeague, play SourcePlay) error {
	entity, ok, err := s.mappers.GetEntity(ctx, mapper.EntityFilter{
		TargetID:       ed.MapperID,
		RelatedType:    mapper.RelatedLeagueEdition,
		DatabaseSource: mapper.SourceExternalDB,
	})
	if err != nil {
		return err
	}
	if !ok || entity.ExternalID == play.ExternalID {
		return nil
	}

	currentTeams, err := s.source.ListPlayTeams(ctx, entity.ExternalID)
	if err != nil {
		return fmt.Errorf("count teams of play %s: %w", entity.ExternalID, err)
	}
	newTeams, err := s.source.ListPlayTeams(ctx, play.ExternalID)
	if err != nil {
		return fmt.Errorf("count teams of play %s: %w", play.ExternalID, err)
	}
	if len(newTeams) < len(currentTeams) {
		s.logger.InfoContext(ctx, "keeping edition on larger play roster",
			"edition_id", ed.ID,
			"current_play", entity.ExternalID,
			"offered_play", play.ExternalID,
		)
		return nil
	}

	if _, err := s.mappers.Attach(ctx, AttachInput{
		MapperID:       ed.MapperID,
		Source:         SourceName,
		ExternalID:     play.ExternalID,
		RelatedType:    mapper.RelatedLeagueEdition,
		DatabaseSource: mapper.SourceExternalDB,
		Description:    "LNP play uuid",
	}); err != nil {
		return err
	}

	if s.tables.IsStable(s.tables.TopDivisions[lg.Name]) {
		if _, err := s.mappers.Attach(ctx, AttachInput{
			MapperID:       ed.MapperID,
			Source:         SourceName,
			ExternalID:     lg.ExternalID,
			RelatedType:    mapper.RelatedLeague,
			DatabaseSource: mapper.SourceExternalDB,
			Description:    "LNP league uuid (highest parent)",
		}); err != nil {
			return err
		}
	}

	ed.RawName = play.Name
	if err := s.editions.Update(ctx, ed); err != nil {
		return fmt.Errorf("update edition id=%d: %w", ed.ID, err)
	}
	return nil
}

func (s *ImportService) mapTeamHistories(ctx context.Context, teamHistories []SourceTeamHistory, report *RunReport) error {
	ctx, span := startUsecaseSpan(ctx, "ImportService.mapTeamHistories")
	defer span.End()

	allowed := make(map[string]struct{}, len(s.allow))
	for _, name := range s.allow {
		allowed[name] = struct{}{}
	}

	for _, history := range teamHistories {
		for _, tm := range history.Teams {
			if _, ok := allowed[tm.Season]; !ok {
				continue
			}
			if strings.Contains(tm.Name, "PAUZ") {
				report.Skipped++
				continue
			}

			err := s.mapSeasonTeam(ctx, history, tm, report)
			switch {
			case errors.Is(err, ErrSkippableEntity):
				report.Skipped++
			case errors.Is(err, ErrRepositoryConstraint):
				s.logger.WarnContext(ctx, "team rejected by constraint, skipping",
					"team", tm.Name, "error", err)
				report.Skipped++
			case err != nil:
				return err
			}
		}
	}
	return nil
}

func (s *ImportService) mapSeasonTeam(ctx context.Context, history SourceTeamHistory, tm SourceTeam, report *RunReport) error {
	topDivision, ok := s.tables.TopDivisions[tm.LeagueName]
	if !ok {
		return fmt.Errorf("%w: unknown top division %q", ErrSkippableEntity, tm.LeagueName)
	}

	teamName := normalize.Unify(tm.Name, false)
	clubName := normalize.Unify(history.Club.Name, true)

	seniority := team.SenioritySenior
	if s.tables.IsJunior(tm.LeagueName) {
		seniority = team.SeniorityJunior
	}
	gender := team.GenderMale
	if strings.HasSuffix(topDivision, "K") {
		gender = team.GenderFemale
	}

	details, err := s.clubDetails(ctx, history.Club.ExternalID)
	if err != nil {
		return err
	}
	regionID, err := s.lookupRegion(ctx, details.Region)
	if err != nil {
		return err
	}

	teamObj, teamFound, err := s.findTeam(ctx, teamName, topDivision, history.ExternalID)
	if err != nil {
		return err
	}

	if !teamFound {
		clubObj, err := s.ensureClub(ctx, clubName, history.Club, details, regionID, report)
		if err != nil {
			return err
		}
		teamObj, err = s.teams.Create(ctx, team.Team{
			Name:        teamName,
			ClubID:      clubObj.ID,
			Seniority:   seniority,
			Gender:      gender,
			Aliases:     tm.Name + ";",
			Visible:     false,
			AutoCreated: true,
		})
		if err != nil {
			return fmt.Errorf("create team %s: %w", teamName, err)
		}
		report.TeamsCreated++
	} else {
		if !teamObj.HasAlias(tm.Name) {
			teamObj.Aliases += tm.Name
		}
		teamObj.Seniority = seniority
		teamObj.Gender = gender
		if err := s.teams.Update(ctx, teamObj); err != nil {
			return fmt.Errorf("update team id=%d: %w", teamObj.ID, err)
		}
		if _, err := s.ensureClub(ctx, clubName, history.Club, details, regionID, report); err != nil {
			return err
		}
	}

	if teamObj.MapperID == 0 {
		target, err := s.mappers.NewMapper(ctx, AttachInput{
			Source:         SourceName,
			ExternalID:     history.ExternalID,
			RelatedType:    mapper.RelatedTeam,
			DatabaseSource: mapper.SourceExternalDB,
			Description:    "LNP team-history uuid, stable between seasons",
		})
		if err != nil {
			return err
		}
		teamObj.MapperID = target.ID
		if err := s.teams.Update(ctx, teamObj); err != nil {
			return fmt.Errorf("attach mapper to team id=%d: %w", teamObj.ID, err)
		}
	}

	return s.linkTeamHistories(ctx, teamObj, tm, report)
}

// linkTeamHistories creates the team-history rows binding the team to every
// edition its season plays resolve to.
func (s *ImportService) linkTeamHistories(ctx context.Context, teamObj team.Team, tm SourceTeam, report *RunReport) error {
	plays, err := s.source.ListTeamPlays(ctx, tm.ExternalID)
	if err != nil {
		return fmt.Errorf("list plays of team %s: %w", tm.ExternalID, err)
	}

	for _, play := range plays {
		target, ok, err := s.mappers.ResolveCanonical(ctx, play.ExternalID)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		ed, ok, err := s.editions.GetByMapper(ctx, target.ID)
		if err != nil {
			return fmt.Errorf("get edition mapper=%d: %w", target.ID, err)
		}
		if !ok {
			continue
		}

		if _, ok, err := s.findTeamHistory(ctx, tm.ExternalID); err != nil {
			return err
		} else if ok {
			continue
		}

		historyMapper, err := s.mappers.NewMapper(ctx, AttachInput{
			Source:         SourceName,
			ExternalID:     tm.ExternalID,
			RelatedType:    mapper.RelatedTeamHistory,
			DatabaseSource: mapper.SourceExternalDB,
			Description:    "LNP team uuid",
		})
		if err != nil {
			return err
		}
		if _, err := s.histories.Create(ctx, edition.TeamHistory{
			TeamID:    teamObj.ID,
			EditionID: ed.ID,
			MapperID:  historyMapper.ID,
			RawName:   tm.Name,
			Visible:   false,
		}); err != nil {
			return fmt.Errorf("create team history team=%d edition=%d: %w", teamObj.ID, ed.ID, err)
		}
		report.TeamHistories++
	}
	return nil
}

func (s *ImportService) findTeamHistory(ctx context.Context, teamExternalID string) (edition.TeamHistory, bool, error) {
	target, ok, err := s.mappers.ResolveCanonical(ctx, teamExternalID)
	if err != nil {
		return edition.TeamHistory{}, false, err
	}
	if !ok {
		return edition.TeamHistory{}, false, nil
	}
	item, ok, err := s.histories.GetByMapper(ctx, target.ID)
	if err != nil {
		return edition.TeamHistory{}, false, fmt.Errorf("get team history mapper=%d: %w", target.ID, err)
	}
	return item, ok, nil
}

// findTeam tries the cross-reference first, then falls back to a name search
// narrowed by the team's top division.
func (s *ImportService) findTeam(ctx context.Context, name, topDivision, externalID string) (team.Team, bool, error) {
	target, ok, err := s.mappers.ResolveCanonical(ctx, externalID)
	if err != nil {
		return team.Team{}, false, err
	}
	if ok {
		item, found, err := s.teams.GetByMapper(ctx, target.ID)
		if err != nil {
			return team.Team{}, false, fmt.Errorf("get team mapper=%d: %w", target.ID, err)
		}
		if found {
			return item, true, nil
		}
	}

	candidates, err := s.teams.FindByName(ctx, name)
	if err != nil {
		return team.Team{}, false, fmt.Errorf("find teams named %s: %w", name, err)
	}
	if len(candidates) == 1 {
		return candidates[0], true, nil
	}
	if len(candidates) == 0 {
		return team.Team{}, false, nil
	}

	narrowed := make([]team.Team, 0, len(candidates))
	for _, candidate := range candidates {
		root, ok, err := s.rootDivision(ctx, candidate.LeagueID)
		if err != nil {
			return team.Team{}, false, err
		}
		if ok && root == topDivision {
			narrowed = append(narrowed, candidate)
		}
	}
	if len(narrowed) > 0 {
		return narrowed[0], true, nil
	}
	return team.Team{}, false, nil
}

func (s *ImportService) rootDivision(ctx context.Context, leagueID int64) (string, bool, error) {
	if leagueID <= 0 {
		return "", false, nil
	}
	node, ok, err := s.leagues.GetByID(ctx, leagueID)
	if err != nil {
		return "", false, fmt.Errorf("get league id=%d: %w", leagueID, err)
	}
	if !ok {
		return "", false, nil
	}
	if node.IsRoot() {
		return node.Name, true, nil
	}
	root, ok, err := s.leagues.GetByID(ctx, node.HighestParentID)
	if err != nil {
		return "", false, fmt.Errorf("get league id=%d: %w", node.HighestParentID, err)
	}
	if !ok {
		return "", false, nil
	}
	return root.Name, true, nil
}

// ensureClub finds the canonical club for the source reference, creating and
// configuring it when missing. Configuration is idempotent: aliases append
// once, address backfills only when empty, region overwrites when known.
func (s *ImportService) ensureClub(ctx context.Context, name string, ref SourceClubRef, details SourceClub, regionID int64, report *RunReport) (club.Club, error) {
	obj, found, err := s.findClub(ctx, name, ref.ExternalID)
	if err != nil {
		return club.Club{}, err
	}

	if !found {
		target, err := s.mappers.NewMapper(ctx, AttachInput{
			Source:         SourceName,
			ExternalID:     ref.ExternalID,
			RelatedType:    mapper.RelatedClub,
			DatabaseSource: mapper.SourceExternalDB,
			Description:    "LNP club uuid",
		})
		if err != nil {
			return club.Club{}, err
		}
		obj, err = s.clubs.Create(ctx, club.Club{
			Name:        name,
			Aliases:     ref.Name,
			Address:     details.Address,
			RegionID:    regionID,
			MapperID:    target.ID,
			AutoCreated: true,
		})
		if err != nil {
			return club.Club{}, fmt.Errorf("create club %s: %w", name, err)
		}
		report.ClubsCreated++
		return obj, nil
	}

	if obj.MapperID == 0 {
		target, err := s.mappers.NewMapper(ctx)
		if err != nil {
			return club.Club{}, err
		}
		obj.MapperID = target.ID
	}
	if _, err := s.mappers.Attach(ctx, AttachInput{
		MapperID:       obj.MapperID,
		Source:         SourceName,
		ExternalID:     ref.ExternalID,
		RelatedType:    mapper.RelatedClub,
		DatabaseSource: mapper.SourceExternalDB,
		Description:    "LNP club uuid",
	}); err != nil {
		return club.Club{}, err
	}

	if !obj.HasAlias(ref.Name) {
		obj.Aliases += ref.Name
	}
	if obj.Address == "" {
		obj.Address = details.Address
	}
	if regionID > 0 {
		obj.RegionID = regionID
	}
	if err := s.clubs.Update(ctx, obj); err != nil {
		return club.Club{}, fmt.Errorf("update club id=%d: %w", obj.ID, err)
	}
	return obj, nil
}

func (s *ImportService) findClub(ctx context.Context, name, externalID string) (club.Club, bool, error) {
	target, ok, err := s.mappers.ResolveCanonical(ctx, externalID)
	if err != nil {
		return club.Club{}, false, err
	}
	if ok {
		item, found, err := s.clubs.GetByMapper(ctx, target.ID)
		if err != nil {
			return club.Club{}, false, fmt.Errorf("get club mapper=%d: %w", target.ID, err)
		}
		if found {
			return item, true, nil
		}
	}

	candidates, err := s.clubs.FindByName(ctx, name)
	if err != nil {
		return club.Club{}, false, fmt.Errorf("find clubs named %s: %w", name, err)
	}
	if len(candidates) > 0 {
		return candidates[0], true, nil
	}
	return club.Club{}, false, nil
}

type clubDetail struct {
	club  SourceClub
	found bool
}

// clubDetails memoizes the per-club detail fetch; histories repeat clubs many
// times within one pass.
func (s *ImportService) clubDetails(ctx context.Context, clubExternalID string) (SourceClub, error) {
	value, err := s.details.GetOrLoad(ctx, "lnp:club:"+clubExternalID, func(ctx context.Context) (any, error) {
		loaded, found, err := s.source.GetClubDetails(ctx, clubExternalID)
		if err != nil {
			return nil, err
		}
		return clubDetail{club: loaded, found: found}, nil
	})
	if err != nil {
		return SourceClub{}, fmt.Errorf("fetch club details %s: %w", clubExternalID, err)
	}

	detail, ok := value.(clubDetail)
	if !ok || !detail.found {
		return SourceClub{}, nil
	}
	return detail.club, nil
}

func (s *ImportService) lookupRegion(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, nil
	}
	item, ok, err := s.regions.GetByName(ctx, normalize.Capitalized(name))
	if err != nil {
		return 0, fmt.Errorf("get region %s: %w", name, err)
	}
	if !ok {
		return 0, nil
	}
	return item.ID, nil
}
