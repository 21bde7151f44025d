package usecase_test

import (
	"context"
	"testing"

	"github.com/pitchmap/lnp-importer/internal/domain/inquiry"
	"github.com/pitchmap/lnp-importer/internal/domain/mapper"
	"github.com/pitchmap/lnp-importer/internal/infrastructure/repository/memory"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

// stubSource is an in-memory SourceProvider with hand-written documents.
type stubSource struct {
	leagues   []usecase.SourceLeague
	histories []usecase.SourceTeamHistory
	clubs     map[string]usecase.SourceClub
	playTeams map[string][]usecase.SourceTeam
}

func (s *stubSource) ListLeagues(context.Context) ([]usecase.SourceLeague, error) {
	return s.leagues, nil
}

func (s *stubSource) ListTeamHistories(context.Context) ([]usecase.SourceTeamHistory, error) {
	return s.histories, nil
}

func (s *stubSource) GetClubDetails(_ context.Context, clubID string) (usecase.SourceClub, bool, error) {
	item, ok := s.clubs[clubID]
	return item, ok, nil
}

func (s *stubSource) ListTeamPlays(_ context.Context, teamID string) ([]usecase.SourcePlay, error) {
	var out []usecase.SourcePlay
	for playID, teams := range s.playTeams {
		for _, item := range teams {
			if item.ExternalID == teamID {
				out = append(out, usecase.SourcePlay{ExternalID: playID})
				break
			}
		}
	}
	return out, nil
}

func (s *stubSource) ListPlayTeams(_ context.Context, playID string) ([]usecase.SourceTeam, error) {
	return s.playTeams[playID], nil
}

type importFixture struct {
	svc       *usecase.ImportService
	source    *stubSource
	mappers   *memory.MapperRepository
	clubs     *memory.ClubRepository
	teams     *memory.TeamRepository
	leagues   *memory.LeagueRepository
	seasons   *memory.SeasonRepository
	editions  *memory.EditionRepository
	histories *memory.TeamHistoryRepository
	inquiries *memory.InquiryRepository
	regions   *memory.RegionRepository
}

func newImportFixture(t *testing.T, source *stubSource, requests ...inquiry.Request) *importFixture {
	t.Helper()

	f := &importFixture{
		source:    source,
		mappers:   memory.NewMapperRepository(),
		clubs:     memory.NewClubRepository(),
		teams:     memory.NewTeamRepository(),
		leagues:   memory.NewLeagueRepository(),
		seasons:   memory.NewSeasonRepository(),
		editions:  memory.NewEditionRepository(),
		histories: memory.NewTeamHistoryRepository(),
		inquiries: memory.NewInquiryRepository(requests...),
		regions:   memory.NewRegionRepository(),
	}

	tables := usecase.DefaultClassification()
	mappers := usecase.NewMapperService(f.mappers, nil)
	hierarchy := usecase.NewHierarchyService(f.leagues, f.editions, tables, nil)
	merger := usecase.NewSubstringMergeStrategy(f.clubs, f.teams, mappers, nil)

	f.svc = usecase.NewImportService(usecase.ImportDeps{
		Source:          source,
		Clubs:           f.clubs,
		Teams:           f.teams,
		Leagues:         f.leagues,
		Seasons:         f.seasons,
		Editions:        f.editions,
		Histories:       f.histories,
		Inquiries:       f.inquiries,
		Regions:         f.regions,
		Mappers:         mappers,
		Hierarchy:       hierarchy,
		Merger:          merger,
		Tables:          tables,
		SeasonAllowlist: []string{"2022/2023"},
	})

	return f
}

func basicSource() *stubSource {
	return &stubSource{
		leagues: []usecase.SourceLeague{
			{
				ExternalID: "league-a",
				Name:       "Klasa A",
				Season:     "2022/2023",
				Plays: []usecase.SourcePlay{
					{ExternalID: "play-1", Name: "Klasa A gr. 1", Region: "Opolskie"},
				},
			},
		},
		histories: []usecase.SourceTeamHistory{
			{
				ExternalID: "history-1",
				Club:       usecase.SourceClubRef{ExternalID: "club-1", Name: "KS Przykład Opole S.A."},
				Teams: []usecase.SourceTeam{
					{
						ExternalID: "team-1",
						Name:       "KS Przykład Opole",
						Season:     "2022/2023",
						LeagueName: "Klasa A",
					},
				},
			},
		},
		clubs: map[string]usecase.SourceClub{
			"club-1": {
				ExternalID: "club-1",
				Name:       "KS Przykład Opole S.A.",
				Address:    "ul. Sportowa 1, Opole",
				Region:     "opolskie",
			},
		},
		playTeams: map[string][]usecase.SourceTeam{
			"play-1": {{ExternalID: "team-1", Name: "KS Przykład Opole"}},
		},
	}
}

func TestImportService_Run_CreatesCanonicalRecords(t *testing.T) {
	f := newImportFixture(t, basicSource())

	report, err := f.svc.Run(t.Context())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if report.Editions != 1 {
		t.Fatalf("editions created = %d, want 1", report.Editions)
	}
	if report.ClubsCreated != 1 || report.TeamsCreated != 1 {
		t.Fatalf("clubs=%d teams=%d, want 1/1", report.ClubsCreated, report.TeamsCreated)
	}
	if report.TeamHistories != 1 {
		t.Fatalf("team histories = %d, want 1", report.TeamHistories)
	}

	clubs, _ := f.clubs.List(t.Context())
	if len(clubs) != 1 {
		t.Fatalf("club count = %d, want 1", len(clubs))
	}
	if clubs[0].Name != "Przykład Opole" {
		t.Fatalf("club name = %q, want unified name", clubs[0].Name)
	}
	if clubs[0].Address == "" || clubs[0].RegionID == 0 {
		t.Fatalf("club details not backfilled: %+v", clubs[0])
	}
	if !clubs[0].AutoCreated {
		t.Fatal("imported club must be flagged auto-created")
	}

	teams, _ := f.teams.ListByClub(t.Context(), clubs[0].ID)
	if len(teams) != 1 {
		t.Fatalf("team count = %d, want 1", len(teams))
	}
	if teams[0].Visible {
		t.Fatal("auto-created team must start invisible")
	}
	if teams[0].Seniority != "seniorzy" || teams[0].Gender != "mężczyźni" {
		t.Fatalf("unexpected classification: %+v", teams[0])
	}
}

func TestImportService_Run_IsIdempotent(t *testing.T) {
	f := newImportFixture(t, basicSource())

	if _, err := f.svc.Run(t.Context()); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := f.svc.Run(t.Context())
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if second.Editions != 0 || second.ClubsCreated != 0 || second.TeamsCreated != 0 || second.TeamHistories != 0 {
		t.Fatalf("second run must create nothing, got %+v", second)
	}

	clubs, _ := f.clubs.List(t.Context())
	if len(clubs) != 1 {
		t.Fatalf("club count after rerun = %d, want 1", len(clubs))
	}
}

func TestImportService_Run_SkipsUnknownDivision(t *testing.T) {
	source := basicSource()
	source.leagues[0].Name = "Liga Widmo"
	source.histories[0].Teams[0].LeagueName = "Liga Widmo"
	f := newImportFixture(t, source)

	report, err := f.svc.Run(t.Context())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if report.Editions != 0 || report.TeamsCreated != 0 {
		t.Fatalf("unknown division must be skipped, got %+v", report)
	}
	if report.Skipped == 0 {
		t.Fatal("expected skip counter to move")
	}
}

func TestImportService_Run_SkipsWithdrawnTeams(t *testing.T) {
	source := basicSource()
	source.histories[0].Teams[0].Name = "KS Przykład Opole PAUZ"
	f := newImportFixture(t, source)

	report, err := f.svc.Run(t.Context())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if report.TeamsCreated != 0 || report.TeamHistories != 0 {
		t.Fatalf("withdrawn team must be skipped, got %+v", report)
	}
}

func TestImportService_Run_SkipsOutOfSeasonTeams(t *testing.T) {
	source := basicSource()
	source.histories[0].Teams[0].Season = "2019/2020"
	f := newImportFixture(t, source)

	report, err := f.svc.Run(t.Context())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if report.TeamsCreated != 0 {
		t.Fatalf("out-of-season team must be skipped, got %+v", report)
	}
}

func TestImportService_Run_ResetsInquiries(t *testing.T) {
	f := newImportFixture(t, basicSource(),
		inquiry.Request{Category: inquiry.CategoryClub},
		inquiry.Request{Category: inquiry.CategoryTeam},
		inquiry.Request{Category: inquiry.CategoryUser},
	)

	report, err := f.svc.Run(t.Context())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if report.InquiriesReset != 2 {
		t.Fatalf("inquiries reset = %d, want 2", report.InquiriesReset)
	}

	remaining, _ := f.inquiries.ListByCategories(t.Context(), inquiry.CategoryClub, inquiry.CategoryTeam)
	if len(remaining) != 0 {
		t.Fatalf("club/team inquiries remain: %d", len(remaining))
	}
}

func TestImportService_Run_RepointsReissuedPlay(t *testing.T) {
	source := basicSource()
	f := newImportFixture(t, source)

	if _, err := f.svc.Run(t.Context()); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// Source re-publishes the same division under a new play id with a
	// roster at least as large.
	source.leagues[0].Plays[0].ExternalID = "play-2"
	source.playTeams["play-2"] = source.playTeams["play-1"]

	if _, err := f.svc.Run(t.Context()); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	entities, _ := f.mappers.ListEntitiesByExternalID(t.Context(), "play-2")
	found := false
	for _, entity := range entities {
		if entity.RelatedType == mapper.RelatedLeagueEdition {
			found = true
		}
	}
	if !found {
		t.Fatal("edition entity was not repointed to the new play id")
	}
	if stale, _ := f.mappers.ListEntitiesByExternalID(t.Context(), "play-1"); len(stale) != 0 {
		t.Fatalf("stale play entity remains: %d", len(stale))
	}
}

func TestImportService_Run_KeepsLargerRosterOnRepoint(t *testing.T) {
	source := basicSource()
	f := newImportFixture(t, source)

	if _, err := f.svc.Run(t.Context()); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// New play id arrives with a smaller roster than the recorded one.
	source.leagues[0].Plays[0].ExternalID = "play-2"
	source.playTeams["play-2"] = nil

	if _, err := f.svc.Run(t.Context()); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	entities, _ := f.mappers.ListEntitiesByExternalID(t.Context(), "play-1")
	if len(entities) == 0 {
		t.Fatal("edition must keep the larger original play")
	}
}

func TestImportService_Run_SplitsSeasonRounds(t *testing.T) {
	source := basicSource()
	f := newImportFixture(t, source)

	if _, err := f.svc.Run(t.Context()); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// The division splits into winners/losers rounds mid-season; the source
	// re-publishes the winners bracket under the old group.
	source.leagues[0].Plays[0] = usecase.SourcePlay{
		ExternalID: "play-rw",
		Name:       "Klasa A gr. 1 (RW)",
		Region:     "Opolskie",
	}
	source.playTeams["play-rw"] = source.playTeams["play-1"]

	if _, err := f.svc.Run(t.Context()); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	root, ok, _ := f.leagues.GetByName(t.Context(), "A Klasa")
	if !ok {
		t.Fatal("root division missing")
	}
	regionNode, ok, _ := f.leagues.GetChild(t.Context(), root.ID, "opolskie")
	if !ok {
		t.Fatal("region node missing")
	}
	groupNode, ok, _ := f.leagues.GetChild(t.Context(), regionNode.ID, "Grupa 1")
	if !ok {
		t.Fatal("group node missing")
	}

	rwNode, ok, _ := f.leagues.GetChild(t.Context(), groupNode.ID, "RW")
	if !ok {
		t.Fatal("winners round node missing")
	}
	rjNode, ok, _ := f.leagues.GetChild(t.Context(), groupNode.ID, "RJ")
	if !ok {
		t.Fatal("losers round node missing")
	}

	season, ok, _ := f.seasons.GetByName(t.Context(), "2022/2023")
	if !ok {
		t.Fatal("season missing")
	}

	// The pre-split edition moved to the losers bracket, the winners bracket
	// got a fresh edition.
	if _, ok, _ := f.editions.GetByLeagueSeason(t.Context(), rjNode.ID, season.ID); !ok {
		t.Fatal("pre-split edition was not relocated to the losers round")
	}
	if _, ok, _ := f.editions.GetByLeagueSeason(t.Context(), rwNode.ID, season.ID); !ok {
		t.Fatal("winners round edition missing")
	}
	if _, ok, _ := f.editions.GetByLeagueSeason(t.Context(), groupNode.ID, season.ID); ok {
		t.Fatal("edition still attached to the split group node")
	}
}
