package usecase_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pitchmap/lnp-importer/internal/domain/edition"
	"github.com/pitchmap/lnp-importer/internal/infrastructure/repository/memory"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

func newHierarchy(t *testing.T) (*usecase.HierarchyService, *memory.LeagueRepository, *memory.EditionRepository) {
	t.Helper()
	leagues := memory.NewLeagueRepository()
	editions := memory.NewEditionRepository()
	svc := usecase.NewHierarchyService(leagues, editions, usecase.DefaultClassification(), nil)

	return svc, leagues, editions
}

func TestHierarchyService_Classify_UnknownDivision(t *testing.T) {
	svc, _, _ := newHierarchy(t)

	_, err := svc.Classify(
		usecase.SourceLeague{Name: "Liga Widmo"},
		usecase.SourcePlay{Name: "Liga Widmo gr. 1"},
	)
	if !errors.Is(err, usecase.ErrSkippableEntity) {
		t.Fatalf("expected skippable entity, got %v", err)
	}
}

func TestHierarchyService_Classify_Qualifiers(t *testing.T) {
	svc, _, _ := newHierarchy(t)

	cases := []struct {
		name   string
		league usecase.SourceLeague
		play   usecase.SourcePlay
		want   usecase.Branch
	}{
		{
			name:   "region and group",
			league: usecase.SourceLeague{Name: "Klasa A"},
			play:   usecase.SourcePlay{Name: "Klasa A gr. 2", Region: "Kujawsko-Pomorskie"},
			want: usecase.Branch{
				TopDivision: "A Klasa",
				Qualifiers:  []string{"kujawskopomorskie", "Grupa 2"},
			},
		},
		{
			name:   "roman group number",
			league: usecase.SourceLeague{Name: "Klasa B"},
			play:   usecase.SourcePlay{Name: "Klasa B grupa III", Region: "Śląskie"},
			want: usecase.Branch{
				TopDivision: "B Klasa",
				Qualifiers:  []string{"śląskie", "Grupa 3"},
			},
		},
		{
			name:   "regional sub-group",
			league: usecase.SourceLeague{Name: "A1", PMID: 15},
			play:   usecase.SourcePlay{Name: "I liga wojewódzka grupa 1", Region: "Mazowieckie"},
			want: usecase.Branch{
				TopDivision: "Junior A1",
				Qualifiers:  []string{"mazowieckie", "1 liga wojewódzka", "Grupa 1"},
			},
		},
		{
			name:   "compass direction",
			league: usecase.SourceLeague{Name: "Trzecia liga"},
			play:   usecase.SourcePlay{Name: "III liga zach."},
			want: usecase.Branch{
				TopDivision: "3 Liga",
				Qualifiers:  []string{"Zachód"},
			},
		},
		{
			name:   "colon label",
			league: usecase.SourceLeague{Name: "Czwarta liga"},
			play:   usecase.SourcePlay{Name: "Wschód: IV liga"},
			want: usecase.Branch{
				TopDivision: "4 Liga",
				Qualifiers:  []string{"Wschód"},
			},
		},
		{
			name:   "phase and round",
			league: usecase.SourceLeague{Name: "Klasa okręgowa"},
			play:   usecase.SourcePlay{Name: "Klasa okręgowa gr. 1 baraż (RW)", Region: "Opolskie"},
			want: usecase.Branch{
				TopDivision: "Klasa Okręgowa",
				Qualifiers:  []string{"opolskie", "Grupa 1", "baraż", "RW"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Classify(tc.league, tc.play)
			if err != nil {
				t.Fatalf("classify failed: %v", err)
			}
			if got.TopDivision != tc.want.TopDivision {
				t.Fatalf("top division = %q, want %q", got.TopDivision, tc.want.TopDivision)
			}
			if !reflect.DeepEqual(got.Qualifiers, tc.want.Qualifiers) {
				t.Fatalf("qualifiers = %v, want %v", got.Qualifiers, tc.want.Qualifiers)
			}
		})
	}
}

func TestHierarchyService_Classify_RoundDetection(t *testing.T) {
	svc, _, _ := newHierarchy(t)

	cases := []struct {
		play string
		want string
	}{
		{`Klasa A gr. 1 "RW"`, "RW"},
		{"Klasa A gr. 1 (RW)", "RW"},
		{"Klasa A gr. 1 WIOSNA", "RW"},
		{"Klasa A gr. 1 (RJ)", "RJ"},
		{"Klasa A gr. 1 JESIEŃ", "RJ"},
		{"Klasa A gr. 1", ""},
	}

	for _, tc := range cases {
		branch, err := svc.Classify(
			usecase.SourceLeague{Name: "Klasa A"},
			usecase.SourcePlay{Name: tc.play},
		)
		if err != nil {
			t.Fatalf("classify %q failed: %v", tc.play, err)
		}
		if branch.Round() != tc.want {
			t.Fatalf("round of %q = %q, want %q", tc.play, branch.Round(), tc.want)
		}
	}
}

func TestHierarchyService_EnsureBranch_BuildsPath(t *testing.T) {
	svc, leagues, _ := newHierarchy(t)

	branch := usecase.Branch{
		TopDivision: "A Klasa",
		Qualifiers:  []string{"opolskie", "Grupa 1"},
	}
	leaf, err := svc.EnsureBranch(t.Context(), branch)
	if err != nil {
		t.Fatalf("ensure branch failed: %v", err)
	}
	if leaf.Name != "Grupa 1" {
		t.Fatalf("leaf = %q, want Grupa 1", leaf.Name)
	}

	root, ok, _ := leagues.GetByName(t.Context(), "A Klasa")
	if !ok {
		t.Fatal("root division missing")
	}
	if leaf.HighestParentID != root.ID {
		t.Fatalf("leaf highest parent = %d, want %d", leaf.HighestParentID, root.ID)
	}

	again, err := svc.EnsureBranch(t.Context(), branch)
	if err != nil {
		t.Fatalf("repeat ensure failed: %v", err)
	}
	if again.ID != leaf.ID {
		t.Fatalf("ensure branch is not idempotent: %d vs %d", again.ID, leaf.ID)
	}
}

func TestHierarchyService_EnsureBranch_StableDivisionStaysFlat(t *testing.T) {
	svc, leagues, _ := newHierarchy(t)

	leaf, err := svc.EnsureBranch(t.Context(), usecase.Branch{
		TopDivision: "Ekstraklasa",
		Qualifiers:  []string{"Grupa 1"},
	})
	if err != nil {
		t.Fatalf("ensure branch failed: %v", err)
	}
	if !leaf.IsRoot() || leaf.Name != "Ekstraklasa" {
		t.Fatalf("stable division must resolve to its root, got %+v", leaf)
	}
	if _, ok, _ := leagues.GetChild(t.Context(), leaf.ID, "Grupa 1"); ok {
		t.Fatal("stable division must not grow children")
	}
}

func TestHierarchyService_RelocateOppositeRound(t *testing.T) {
	svc, leagues, editions := newHierarchy(t)

	leaf, err := svc.EnsureBranch(t.Context(), usecase.Branch{
		TopDivision: "A Klasa",
		Qualifiers:  []string{"opolskie", "Grupa 1", "RW"},
	})
	if err != nil {
		t.Fatalf("ensure branch failed: %v", err)
	}

	parent, ok, _ := leagues.GetByID(t.Context(), leaf.ParentID)
	if !ok {
		t.Fatal("leaf parent missing")
	}
	ed, err := editions.Create(t.Context(), edition.LeagueEdition{
		LeagueID: parent.ID,
		SeasonID: 7,
		RawName:  "Klasa A gr. 1",
	})
	if err != nil {
		t.Fatalf("seed edition failed: %v", err)
	}

	if err := svc.RelocateOppositeRound(t.Context(), "RW", leaf, 7); err != nil {
		t.Fatalf("relocate failed: %v", err)
	}

	sibling, ok, _ := leagues.GetChild(t.Context(), parent.ID, "RJ")
	if !ok {
		t.Fatal("opposite round sibling was not created")
	}
	moved, ok, _ := editions.GetByLeagueSeason(t.Context(), sibling.ID, 7)
	if !ok || moved.ID != ed.ID {
		t.Fatalf("edition was not relocated to the opposite round, got %+v ok=%v", moved, ok)
	}
	if _, ok, _ := editions.GetByLeagueSeason(t.Context(), parent.ID, 7); ok {
		t.Fatal("edition still attached to the split parent")
	}
}
