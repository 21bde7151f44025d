package usecase_test

import (
	"strings"
	"testing"

	"github.com/pitchmap/lnp-importer/external/lnp"
	"github.com/pitchmap/lnp-importer/internal/domain/club"
	"github.com/pitchmap/lnp-importer/internal/domain/edition"
	"github.com/pitchmap/lnp-importer/internal/domain/mapper"
	"github.com/pitchmap/lnp-importer/internal/domain/team"
	"github.com/pitchmap/lnp-importer/internal/infrastructure/repository/memory"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

type linkFixture struct {
	svc       *usecase.LinkService
	mappers   *memory.MapperRepository
	editions  *memory.EditionRepository
	histories *memory.TeamHistoryRepository
	teams     *memory.TeamRepository
	clubs     *memory.ClubRepository
	seasons   *memory.SeasonRepository
	regions   *memory.RegionRepository
}

func newLinkFixture(t *testing.T) *linkFixture {
	t.Helper()

	f := &linkFixture{
		mappers:   memory.NewMapperRepository(),
		editions:  memory.NewEditionRepository(),
		histories: memory.NewTeamHistoryRepository(),
		teams:     memory.NewTeamRepository(),
		clubs:     memory.NewClubRepository(),
		seasons:   memory.NewSeasonRepository(),
		regions:   memory.NewRegionRepository(),
	}
	f.svc = usecase.NewLinkService(
		f.mappers, f.editions, f.histories, f.teams, f.clubs,
		f.seasons, f.regions, lnp.DefaultLinkTables(), 2, nil,
	)

	return f
}

func (f *linkFixture) newAnchoredMapper(t *testing.T, facts ...usecase.AttachInput) mapper.Mapper {
	t.Helper()
	svc := usecase.NewMapperService(f.mappers, nil)
	target, err := svc.NewMapper(t.Context(), facts...)
	if err != nil {
		t.Fatalf("seed mapper failed: %v", err)
	}

	return target
}

func TestLinkService_ComposeAll_ClubAndTeamLinks(t *testing.T) {
	f := newLinkFixture(t)

	clubMapper := f.newAnchoredMapper(t, usecase.AttachInput{
		Source:         usecase.SourceName,
		ExternalID:     "club-1",
		RelatedType:    mapper.RelatedClub,
		DatabaseSource: mapper.SourceExternalDB,
	})
	teamMapper := f.newAnchoredMapper(t, usecase.AttachInput{
		Source:         usecase.SourceName,
		ExternalID:     "th-1",
		RelatedType:    mapper.RelatedTeamHistory,
		DatabaseSource: mapper.SourceExternalDB,
	})

	written, err := f.svc.ComposeAll(t.Context())
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	if written != 2 {
		t.Fatalf("written = %d, want 2", written)
	}

	clubEntities, _ := f.mappers.ListEntitiesByTarget(t.Context(), clubMapper.ID)
	if got := clubEntities[0].URL; got != "https://www.laczynaspilka.pl/rozgrywki/klub/club-1" {
		t.Fatalf("club url = %q", got)
	}
	teamEntities, _ := f.mappers.ListEntitiesByTarget(t.Context(), teamMapper.ID)
	if got := teamEntities[0].URL; got != "https://www.laczynaspilka.pl/rozgrywki/druzyna/th-1" {
		t.Fatalf("team url = %q", got)
	}

	// Second pass finds nothing to change.
	written, err = f.svc.ComposeAll(t.Context())
	if err != nil {
		t.Fatalf("repeat compose failed: %v", err)
	}
	if written != 0 {
		t.Fatalf("repeat written = %d, want 0", written)
	}
}

func TestLinkService_ComposeAll_TopDivisionLeagueLink(t *testing.T) {
	f := newLinkFixture(t)

	season, err := f.seasons.Create(t.Context(), "2022/2023")
	if err != nil {
		t.Fatalf("seed season failed: %v", err)
	}

	// Ekstraklasa needs no dropdown filters on the upstream site.
	target := f.newAnchoredMapper(t,
		usecase.AttachInput{
			Source:         usecase.SourceName,
			ExternalID:     "20505afb-3cb6-4e59-9bb1-ed56e8201bb8",
			RelatedType:    mapper.RelatedLeague,
			DatabaseSource: mapper.SourceExternalDB,
		},
		usecase.AttachInput{
			Source:         usecase.SourceName,
			ExternalID:     "play-77",
			RelatedType:    mapper.RelatedLeagueEdition,
			DatabaseSource: mapper.SourceExternalDB,
		},
	)
	if _, err := f.editions.Create(t.Context(), edition.LeagueEdition{
		LeagueID: 1,
		SeasonID: season.ID,
		MapperID: target.ID,
	}); err != nil {
		t.Fatalf("seed edition failed: %v", err)
	}

	if _, err := f.svc.ComposeAll(t.Context()); err != nil {
		t.Fatalf("compose failed: %v", err)
	}

	entities, _ := f.mappers.ListEntitiesByTarget(t.Context(), target.ID)
	var leagueURL, playURL string
	for _, entity := range entities {
		switch entity.RelatedType {
		case mapper.RelatedLeague:
			leagueURL = entity.URL
		case mapper.RelatedLeagueEdition:
			playURL = entity.URL
		}
	}

	want := "https://www.laczynaspilka.pl/rozgrywki?" +
		"season=2022%2F2023" +
		"&leagueGroup=48f9a6d6-d38d-46cc-982b-084fede4ba0a" +
		"&leagueId=20505afb-3cb6-4e59-9bb1-ed56e8201bb8" +
		"&enumType=None&isAdvanceMode=true&gender=Male"
	if leagueURL != want {
		t.Fatalf("league url = %q, want %q", leagueURL, want)
	}
	if playURL != want {
		t.Fatal("play entity must carry the same url")
	}
}

func TestLinkService_ComposeAll_RegionalLeagueLink(t *testing.T) {
	f := newLinkFixture(t)

	season, err := f.seasons.Create(t.Context(), "2022/2023")
	if err != nil {
		t.Fatalf("seed season failed: %v", err)
	}
	opolskie, err := f.regions.Create(t.Context(), "Opolskie")
	if err != nil {
		t.Fatalf("seed region failed: %v", err)
	}

	target := f.newAnchoredMapper(t,
		usecase.AttachInput{
			Source:         usecase.SourceName,
			ExternalID:     "1bbf167f-ec17-4d1f-91f2-6ef0e4b8fc18", // Czwarta liga
			RelatedType:    mapper.RelatedLeague,
			DatabaseSource: mapper.SourceExternalDB,
		},
		usecase.AttachInput{
			Source:         usecase.SourceName,
			ExternalID:     "play-4",
			RelatedType:    mapper.RelatedLeagueEdition,
			DatabaseSource: mapper.SourceExternalDB,
		},
	)
	ed, err := f.editions.Create(t.Context(), edition.LeagueEdition{
		LeagueID: 9,
		SeasonID: season.ID,
		MapperID: target.ID,
	})
	if err != nil {
		t.Fatalf("seed edition failed: %v", err)
	}

	clubObj, err := f.clubs.Create(t.Context(), club.Club{Name: "Przykład", RegionID: opolskie.ID})
	if err != nil {
		t.Fatalf("seed club failed: %v", err)
	}
	teamObj, err := f.teams.Create(t.Context(), team.Team{Name: "Przykład", ClubID: clubObj.ID})
	if err != nil {
		t.Fatalf("seed team failed: %v", err)
	}
	if _, err := f.histories.Create(t.Context(), edition.TeamHistory{
		TeamID:    teamObj.ID,
		EditionID: ed.ID,
	}); err != nil {
		t.Fatalf("seed team history failed: %v", err)
	}

	if _, err := f.svc.ComposeAll(t.Context()); err != nil {
		t.Fatalf("compose failed: %v", err)
	}

	entities, _ := f.mappers.ListEntitiesByTarget(t.Context(), target.ID)
	var leagueURL string
	for _, entity := range entities {
		if entity.RelatedType == mapper.RelatedLeague {
			leagueURL = entity.URL
		}
	}

	for _, fragment := range []string{
		"enumType=ZpnAndLeagueAndPlay",
		"subLeague=1bbf167f-ec17-4d1f-91f2-6ef0e4b8fc18",
		"group=play-4",
		"voivodeship=39757eb2-3c41-47fa-b80b-8deea71e5a3e",
	} {
		if !strings.Contains(leagueURL, fragment) {
			t.Fatalf("league url %q missing %q", leagueURL, fragment)
		}
	}
}
