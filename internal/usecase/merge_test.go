package usecase_test

import (
	"testing"

	"github.com/pitchmap/lnp-importer/internal/domain/club"
	"github.com/pitchmap/lnp-importer/internal/domain/mapper"
	"github.com/pitchmap/lnp-importer/internal/domain/team"
	"github.com/pitchmap/lnp-importer/internal/infrastructure/repository/memory"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

func newMergeFixture(t *testing.T) (*usecase.SubstringMergeStrategy, *memory.ClubRepository, *memory.TeamRepository, *usecase.MapperService) {
	t.Helper()
	clubs := memory.NewClubRepository()
	teams := memory.NewTeamRepository()
	mappers := usecase.NewMapperService(memory.NewMapperRepository(), nil)
	merger := usecase.NewSubstringMergeStrategy(clubs, teams, mappers, nil)

	return merger, clubs, teams, mappers
}

func TestSubstringMergeStrategy_UnionsTeamsAndEditors(t *testing.T) {
	merger, clubs, teams, _ := newMergeFixture(t)

	sparta, err := clubs.Create(t.Context(), club.Club{Name: "Sparta"})
	if err != nil {
		t.Fatalf("seed club failed: %v", err)
	}
	warszawa, err := clubs.Create(t.Context(), club.Club{Name: "Sparta Warszawa", ManagerID: 44})
	if err != nil {
		t.Fatalf("seed club failed: %v", err)
	}

	if _, err := teams.Create(t.Context(), team.Team{Name: "Sparta I", ClubID: sparta.ID}); err != nil {
		t.Fatalf("seed team failed: %v", err)
	}
	if _, err := teams.Create(t.Context(), team.Team{Name: "Sparta Warszawa II", ClubID: warszawa.ID}); err != nil {
		t.Fatalf("seed team failed: %v", err)
	}
	if err := clubs.AddEditor(t.Context(), sparta.ID, 11); err != nil {
		t.Fatalf("seed editor failed: %v", err)
	}
	if err := clubs.AddEditor(t.Context(), warszawa.ID, 22); err != nil {
		t.Fatalf("seed editor failed: %v", err)
	}

	merged, err := merger.MergeDuplicates(t.Context())
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if merged != 1 {
		t.Fatalf("merged = %d, want 1", merged)
	}

	remaining, _ := clubs.List(t.Context())
	if len(remaining) != 1 {
		t.Fatalf("club count = %d, want 1", len(remaining))
	}
	survivor := remaining[0]

	survivorTeams, _ := teams.ListByClub(t.Context(), survivor.ID)
	if len(survivorTeams) != 2 {
		t.Fatalf("survivor team count = %d, want 2", len(survivorTeams))
	}

	editors, _ := clubs.ListEditors(t.Context(), survivor.ID)
	got := make(map[int64]bool, len(editors))
	for _, editor := range editors {
		got[editor] = true
	}
	// Union of both editor sets plus the losing manager.
	for _, want := range []int64{11, 22, 44} {
		if survivor.ManagerID == want {
			continue
		}
		if !got[want] {
			t.Fatalf("editor %d missing from survivor, got %v", want, editors)
		}
	}
}

func TestSubstringMergeStrategy_PrefersMapperAnchoredSurvivor(t *testing.T) {
	merger, clubs, _, mappers := newMergeFixture(t)

	if _, err := clubs.Create(t.Context(), club.Club{Name: "Orzeł"}); err != nil {
		t.Fatalf("seed club failed: %v", err)
	}

	anchor, err := mappers.NewMapper(t.Context(), usecase.AttachInput{
		Source:         usecase.SourceName,
		ExternalID:     "club-9",
		RelatedType:    mapper.RelatedClub,
		DatabaseSource: mapper.SourceExternalDB,
	})
	if err != nil {
		t.Fatalf("seed mapper failed: %v", err)
	}
	anchored, err := clubs.Create(t.Context(), club.Club{Name: "Orzeł Biały", MapperID: anchor.ID})
	if err != nil {
		t.Fatalf("seed club failed: %v", err)
	}

	if _, err := merger.MergeDuplicates(t.Context()); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	remaining, _ := clubs.List(t.Context())
	if len(remaining) != 1 {
		t.Fatalf("club count = %d, want 1", len(remaining))
	}
	if remaining[0].ID != anchored.ID {
		t.Fatalf("survivor = %q, want the mapper-anchored club", remaining[0].Name)
	}
}

func TestSubstringMergeStrategy_LeavesDistinctClubsAlone(t *testing.T) {
	merger, clubs, _, _ := newMergeFixture(t)

	if _, err := clubs.Create(t.Context(), club.Club{Name: "Polonia"}); err != nil {
		t.Fatalf("seed club failed: %v", err)
	}
	if _, err := clubs.Create(t.Context(), club.Club{Name: "Wisła"}); err != nil {
		t.Fatalf("seed club failed: %v", err)
	}

	merged, err := merger.MergeDuplicates(t.Context())
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if merged != 0 {
		t.Fatalf("merged = %d, want 0", merged)
	}

	remaining, _ := clubs.List(t.Context())
	if len(remaining) != 2 {
		t.Fatalf("club count = %d, want 2", len(remaining))
	}
}
