package lnp

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pitchmap/lnp-importer/internal/platform/logging"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

func writeSnapshotDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func fullSnapshotDir(t *testing.T) string {
	t.Helper()
	return writeSnapshotDir(t, map[string]string{
		leaguesFile: `[
			{
				"id": "league-1",
				"name": "Klasa Okregowa",
				"season": "2022/2023",
				"plays": [
					{"id": "play-1", "name": "Klasa Okregowa gr. 1", "voivodeship": {"id": "v1", "name": "Opolskie"}},
					{"id": "play-2", "name": "Klasa Okregowa gr. 2"}
				]
			}
		]`,
		teamHistoriesFile: `[
			{
				"obj_id": "hist-1",
				"club": {"id": "club-1", "name": "KS Przyklad"},
				"teams": [{"id": "team-1", "name": "Przyklad", "season": "2022/2023"}]
			}
		]`,
		clubsFile: `[
			{"id": "club-1", "name": "KS Przyklad", "address": "ul. Sportowa 1"}
		]`,
		playTeamsFile: `{
			"play-1": [{"id": "team-1", "name": "Przyklad"}],
			"play-2": [{"id": "team-2", "name": "Inny"}]
		}`,
	})
}

func TestSnapshot_ListLeagues(t *testing.T) {
	snap := NewSnapshot(fullSnapshotDir(t), logging.NewNop())

	leagues, err := snap.ListLeagues(t.Context())
	if err != nil {
		t.Fatalf("list leagues failed: %v", err)
	}
	if len(leagues) != 1 {
		t.Fatalf("league count = %d, want 1", len(leagues))
	}
	if len(leagues[0].Plays) != 2 || leagues[0].Plays[0].Region != "Opolskie" {
		t.Fatalf("unexpected plays: %+v", leagues[0].Plays)
	}
}

func TestSnapshot_ListTeamHistories(t *testing.T) {
	snap := NewSnapshot(fullSnapshotDir(t), logging.NewNop())

	histories, err := snap.ListTeamHistories(t.Context())
	if err != nil {
		t.Fatalf("list team histories failed: %v", err)
	}
	if len(histories) != 1 {
		t.Fatalf("history count = %d, want 1", len(histories))
	}
	hist := histories[0]
	if hist.ExternalID != "hist-1" || hist.Club.ExternalID != "club-1" || len(hist.Teams) != 1 {
		t.Fatalf("unexpected history: %+v", hist)
	}
}

func TestSnapshot_GetClubDetails(t *testing.T) {
	snap := NewSnapshot(fullSnapshotDir(t), logging.NewNop())

	details, found, err := snap.GetClubDetails(t.Context(), "club-1")
	if err != nil {
		t.Fatalf("get club details failed: %v", err)
	}
	if !found || details.Address != "ul. Sportowa 1" {
		t.Fatalf("unexpected details: found=%v %+v", found, details)
	}

	_, found, err = snap.GetClubDetails(t.Context(), "club-unknown")
	if err != nil {
		t.Fatalf("get missing club failed: %v", err)
	}
	if found {
		t.Fatal("expected unknown club to be missing")
	}
}

func TestSnapshot_ListTeamPlays_Inversion(t *testing.T) {
	snap := NewSnapshot(fullSnapshotDir(t), logging.NewNop())

	plays, err := snap.ListTeamPlays(t.Context(), "team-1")
	if err != nil {
		t.Fatalf("list team plays failed: %v", err)
	}
	if len(plays) != 1 || plays[0].ExternalID != "play-1" {
		t.Fatalf("unexpected plays: %+v", plays)
	}

	plays, err = snap.ListTeamPlays(t.Context(), "team-nowhere")
	if err != nil {
		t.Fatalf("list plays for unrostered team failed: %v", err)
	}
	if len(plays) != 0 {
		t.Fatalf("play count = %d, want 0", len(plays))
	}
}

func TestSnapshot_ListPlayTeams(t *testing.T) {
	snap := NewSnapshot(fullSnapshotDir(t), logging.NewNop())

	teams, err := snap.ListPlayTeams(t.Context(), "play-2")
	if err != nil {
		t.Fatalf("list play teams failed: %v", err)
	}
	if len(teams) != 1 || teams[0].ExternalID != "team-2" {
		t.Fatalf("unexpected teams: %+v", teams)
	}
}

func TestSnapshot_MissingFile(t *testing.T) {
	dir := writeSnapshotDir(t, map[string]string{leaguesFile: "[]"})
	snap := NewSnapshot(dir, logging.NewNop())

	_, err := snap.ListLeagues(t.Context())
	if !errors.Is(err, usecase.ErrSourceUnavailable) {
		t.Fatalf("expected source unavailable, got %v", err)
	}
}

func TestSnapshot_EmptyDocuments(t *testing.T) {
	dir := writeSnapshotDir(t, map[string]string{
		leaguesFile:       "null",
		teamHistoriesFile: "[]",
		clubsFile:         "",
		playTeamsFile:     "{}",
	})
	snap := NewSnapshot(dir, logging.NewNop())

	leagues, err := snap.ListLeagues(t.Context())
	if err != nil {
		t.Fatalf("list leagues failed: %v", err)
	}
	if len(leagues) != 0 {
		t.Fatalf("league count = %d, want 0", len(leagues))
	}
}
