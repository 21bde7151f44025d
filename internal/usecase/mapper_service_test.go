package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pitchmap/lnp-importer/internal/domain/mapper"
	"github.com/pitchmap/lnp-importer/internal/infrastructure/repository/memory"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

func clubFact(externalID string) usecase.AttachInput {
	return usecase.AttachInput{
		Source:         usecase.SourceName,
		ExternalID:     externalID,
		RelatedType:    mapper.RelatedClub,
		DatabaseSource: mapper.SourceExternalDB,
	}
}

func TestMapperService_AttachCreatesSingleEntity(t *testing.T) {
	repo := memory.NewMapperRepository()
	svc := usecase.NewMapperService(repo, nil)

	target, err := svc.NewMapper(t.Context(), clubFact("club-1"))
	if err != nil {
		t.Fatalf("new mapper failed: %v", err)
	}

	entities, err := repo.ListEntitiesByTarget(t.Context(), target.ID)
	if err != nil {
		t.Fatalf("list entities failed: %v", err)
	}
	if len(entities) != 1 {
		t.Fatalf("expected one entity, got %d", len(entities))
	}
	if entities[0].ExternalID != "club-1" {
		t.Fatalf("unexpected external id: %s", entities[0].ExternalID)
	}
}

func TestMapperService_AttachIsIdempotent(t *testing.T) {
	repo := memory.NewMapperRepository()
	svc := usecase.NewMapperService(repo, nil)

	target, err := svc.NewMapper(t.Context(), clubFact("club-1"))
	if err != nil {
		t.Fatalf("new mapper failed: %v", err)
	}

	fact := clubFact("club-1")
	fact.MapperID = target.ID
	if _, err := svc.Attach(t.Context(), fact); err != nil {
		t.Fatalf("repeat attach failed: %v", err)
	}

	entities, _ := repo.ListEntitiesByTarget(t.Context(), target.ID)
	if len(entities) != 1 {
		t.Fatalf("expected one entity after repeat attach, got %d", len(entities))
	}
}

func TestMapperService_AttachRepointsChangedExternalID(t *testing.T) {
	repo := memory.NewMapperRepository()
	svc := usecase.NewMapperService(repo, nil)

	target, err := svc.NewMapper(t.Context(), clubFact("club-old"))
	if err != nil {
		t.Fatalf("new mapper failed: %v", err)
	}

	fact := clubFact("club-new")
	fact.MapperID = target.ID
	updated, err := svc.Attach(t.Context(), fact)
	if err != nil {
		t.Fatalf("repoint attach failed: %v", err)
	}
	if updated.ExternalID != "club-new" {
		t.Fatalf("expected repointed external id, got %s", updated.ExternalID)
	}

	entities, _ := repo.ListEntitiesByTarget(t.Context(), target.ID)
	if len(entities) != 1 {
		t.Fatalf("repoint must update in place, got %d entities", len(entities))
	}
}

func TestMapperRepository_CreateEntityKeyConflict(t *testing.T) {
	repo := memory.NewMapperRepository()

	target, err := repo.CreateMapper(t.Context())
	if err != nil {
		t.Fatalf("create mapper failed: %v", err)
	}
	src, err := repo.CreateSource(t.Context(), usecase.SourceName)
	if err != nil {
		t.Fatalf("create source failed: %v", err)
	}

	entity := mapper.Entity{
		TargetID:       target.ID,
		SourceID:       src.ID,
		ExternalID:     "club-1",
		RelatedType:    mapper.RelatedClub,
		DatabaseSource: mapper.SourceExternalDB,
	}
	if _, err := repo.CreateEntity(t.Context(), entity); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	entity.ExternalID = "club-2"
	if _, err := repo.CreateEntity(t.Context(), entity); !errors.Is(err, usecase.ErrDataConflict) {
		t.Fatalf("expected data conflict on duplicate entity key, got %v", err)
	}
}

// racingMapperRepo makes the next read miss, so an attach hits the entity key
// with its insert the way a concurrent writer would.
type racingMapperRepo struct {
	*memory.MapperRepository
	skipReads int
}

func (r *racingMapperRepo) GetEntity(ctx context.Context, filter mapper.EntityFilter) (mapper.Entity, bool, error) {
	if r.skipReads > 0 {
		r.skipReads--
		return mapper.Entity{}, false, nil
	}
	return r.MapperRepository.GetEntity(ctx, filter)
}

func TestMapperService_AttachRecoversFromInsertConflict(t *testing.T) {
	repo := &racingMapperRepo{MapperRepository: memory.NewMapperRepository()}
	svc := usecase.NewMapperService(repo, nil)

	target, err := svc.NewMapper(t.Context(), clubFact("club-old"))
	if err != nil {
		t.Fatalf("new mapper failed: %v", err)
	}

	repo.skipReads = 1
	fact := clubFact("club-new")
	fact.MapperID = target.ID
	updated, err := svc.Attach(t.Context(), fact)
	if err != nil {
		t.Fatalf("attach must convert the conflict to an update, got %v", err)
	}
	if updated.ExternalID != "club-new" {
		t.Fatalf("unexpected external id after recovery: %s", updated.ExternalID)
	}

	entities, _ := repo.ListEntitiesByTarget(t.Context(), target.ID)
	if len(entities) != 1 {
		t.Fatalf("expected one entity after recovery, got %d", len(entities))
	}
	if entities[0].ExternalID != "club-new" {
		t.Fatalf("stored entity not updated in place: %s", entities[0].ExternalID)
	}
}

func TestMapperService_ResolveCanonical(t *testing.T) {
	repo := memory.NewMapperRepository()
	svc := usecase.NewMapperService(repo, nil)

	target, err := svc.NewMapper(t.Context(), clubFact("club-1"))
	if err != nil {
		t.Fatalf("new mapper failed: %v", err)
	}

	resolved, ok, err := svc.ResolveCanonical(t.Context(), "club-1")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !ok || resolved.ID != target.ID {
		t.Fatalf("expected mapper %d, got %+v ok=%v", target.ID, resolved, ok)
	}

	if _, ok, _ := svc.ResolveCanonical(t.Context(), "missing"); ok {
		t.Fatal("expected no mapper for unknown external id")
	}
}

func TestMapperService_HasEntities(t *testing.T) {
	repo := memory.NewMapperRepository()
	svc := usecase.NewMapperService(repo, nil)

	empty, err := svc.NewMapper(t.Context())
	if err != nil {
		t.Fatalf("new mapper failed: %v", err)
	}
	anchored, err := svc.NewMapper(t.Context(), clubFact("club-1"))
	if err != nil {
		t.Fatalf("new mapper failed: %v", err)
	}

	if ok, _ := svc.HasEntities(t.Context(), empty.ID); ok {
		t.Fatal("empty mapper must report no entities")
	}
	if ok, _ := svc.HasEntities(t.Context(), anchored.ID); !ok {
		t.Fatal("anchored mapper must report entities")
	}
}
