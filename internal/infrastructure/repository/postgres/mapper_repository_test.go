package postgres

import (
	"testing"

	"github.com/pitchmap/lnp-importer/internal/domain/mapper"
)

func TestUpdateEntityQuery(t *testing.T) {
	entity := mapper.Entity{
		ID:         7,
		SourceID:   2,
		ExternalID: "play-new",
	}

	query, args, err := updateEntityQuery(entity)
	if err != nil {
		t.Fatalf("build query failed: %v", err)
	}

	want := "UPDATE mapper_entities SET source_id = $1, external_id = $2, description = $3, url = $4, updated_at = NOW() WHERE id = $5"
	if query != want {
		t.Fatalf("unexpected query:\n got %q\nwant %q", query, want)
	}
	if len(args) != 5 || args[0] != int64(2) || args[1] != "play-new" || args[4] != int64(7) {
		t.Fatalf("unexpected args: %#v", args)
	}
}
