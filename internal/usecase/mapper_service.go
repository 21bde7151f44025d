package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/pitchmap/lnp-importer/internal/domain/mapper"
	"github.com/pitchmap/lnp-importer/internal/platform/logging"
)

// MapperService is the identity cross-reference layer. It resolves external
// ids to canonical mappers and keeps the (target, related type, database
// source) facts attached to them.
type MapperService struct {
	repo   mapper.Repository
	logger *logging.Logger
}

func NewMapperService(repo mapper.Repository, logger *logging.Logger) *MapperService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MapperService{repo: repo, logger: logger}
}

// ResolveCanonical returns the mapper any entity with the given external id
// points at, regardless of source or related type. Multiple distinct mappers
// sharing one external id is a data smell, not an expected state; it is
// logged and the first match wins.
func (s *MapperService) ResolveCanonical(ctx context.Context, externalID string) (mapper.Mapper, bool, error) {
	if externalID == "" {
		return mapper.Mapper{}, false, nil
	}

	entities, err := s.repo.ListEntitiesByExternalID(ctx, externalID)
	if err != nil {
		return mapper.Mapper{}, false, fmt.Errorf("list mapper entities external_id=%s: %w", externalID, err)
	}
	if len(entities) == 0 {
		return mapper.Mapper{}, false, nil
	}

	first := entities[0].TargetID
	for _, entity := range entities[1:] {
		if entity.TargetID != first {
			s.logger.WarnContext(ctx,
				"external id is attached to multiple mappers, using first match",
				"external_id", externalID,
				"mapper_id", first,
				"conflicting_mapper_id", entity.TargetID,
			)
			break
		}
	}

	target, ok, err := s.repo.GetMapper(ctx, first)
	if err != nil {
		return mapper.Mapper{}, false, fmt.Errorf("get mapper id=%d: %w", first, err)
	}
	return target, ok, nil
}

// AttachInput describes one external fact to record against a mapper.
type AttachInput struct {
	MapperID       int64
	Source         string
	ExternalID     string
	RelatedType    mapper.RelatedType
	DatabaseSource mapper.DatabaseSource
	Description    string
	URL            string
}

// Attach records the fact, creating or updating the single entity allowed per
// (target, related type, database source). A changed external id overwrites
// the stored one in place; that is how editions are repointed when the source
// re-issues ids between scrapes.
func (s *MapperService) Attach(ctx context.Context, in AttachInput) (mapper.Entity, error) {
	if in.MapperID <= 0 {
		return mapper.Entity{}, fmt.Errorf("%w: mapper id is required", ErrInvalidInput)
	}
	if in.ExternalID == "" {
		return mapper.Entity{}, fmt.Errorf("%w: external id is required", ErrInvalidInput)
	}

	src, err := s.ensureSource(ctx, in.Source)
	if err != nil {
		return mapper.Entity{}, err
	}

	filter := mapper.EntityFilter{
		TargetID:       in.MapperID,
		RelatedType:    in.RelatedType,
		DatabaseSource: in.DatabaseSource,
	}
	existing, ok, err := s.repo.GetEntity(ctx, filter)
	if err != nil {
		return mapper.Entity{}, fmt.Errorf("get mapper entity target=%d: %w", in.MapperID, err)
	}
	if ok {
		return s.repoint(ctx, existing, in, src.ID)
	}

	created, err := s.repo.CreateEntity(ctx, mapper.Entity{
		TargetID:       in.MapperID,
		SourceID:       src.ID,
		ExternalID:     in.ExternalID,
		RelatedType:    in.RelatedType,
		DatabaseSource: in.DatabaseSource,
		Description:    in.Description,
		URL:            in.URL,
	})
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, ErrDataConflict) {
		return mapper.Entity{}, fmt.Errorf("create mapper entity target=%d type=%s: %w", in.MapperID, in.RelatedType, err)
	}

	// The entity key got taken between the read and the insert; fall back to
	// the same update-in-place a plain repoint does.
	existing, ok, err = s.repo.GetEntity(ctx, filter)
	if err != nil {
		return mapper.Entity{}, fmt.Errorf("get mapper entity target=%d: %w", in.MapperID, err)
	}
	if !ok {
		return mapper.Entity{}, fmt.Errorf("%w: entity vanished for mapper %d %s/%s",
			ErrDataConflict, in.MapperID, in.RelatedType, in.DatabaseSource)
	}
	return s.repoint(ctx, existing, in, src.ID)
}

// repoint overwrites the stored external id in place. No-op when the fact is
// already recorded.
func (s *MapperService) repoint(ctx context.Context, existing mapper.Entity, in AttachInput, sourceID int64) (mapper.Entity, error) {
	if existing.ExternalID == in.ExternalID && existing.SourceID == sourceID {
		return existing, nil
	}
	existing.SourceID = sourceID
	existing.ExternalID = in.ExternalID
	if in.Description != "" {
		existing.Description = in.Description
	}
	if in.URL != "" {
		existing.URL = in.URL
	}
	if err := s.repo.UpdateEntity(ctx, existing); err != nil {
		return mapper.Entity{}, fmt.Errorf("update mapper entity id=%d: %w", existing.ID, err)
	}
	return existing, nil
}

// GetEntity reads back the currently attached entity for the filter, so
// callers can decide whether a repoint is needed before attaching.
func (s *MapperService) GetEntity(ctx context.Context, filter mapper.EntityFilter) (mapper.Entity, bool, error) {
	return s.repo.GetEntity(ctx, filter)
}

// NewMapper creates an empty mapper to anchor a freshly reconciled canonical
// record, optionally attaching the given facts to it.
func (s *MapperService) NewMapper(ctx context.Context, facts ...AttachInput) (mapper.Mapper, error) {
	target, err := s.repo.CreateMapper(ctx)
	if err != nil {
		return mapper.Mapper{}, fmt.Errorf("create mapper: %w", err)
	}

	for _, fact := range facts {
		fact.MapperID = target.ID
		if _, err := s.Attach(ctx, fact); err != nil {
			return mapper.Mapper{}, err
		}
	}
	return target, nil
}

// HasEntities reports whether any external fact is attached to the mapper.
func (s *MapperService) HasEntities(ctx context.Context, mapperID int64) (bool, error) {
	if mapperID <= 0 {
		return false, nil
	}
	entities, err := s.repo.ListEntitiesByTarget(ctx, mapperID)
	if err != nil {
		return false, fmt.Errorf("list mapper entities target=%d: %w", mapperID, err)
	}
	return len(entities) > 0, nil
}

func (s *MapperService) ensureSource(ctx context.Context, name string) (mapper.Source, error) {
	if name == "" {
		return mapper.Source{}, fmt.Errorf("%w: mapper source name is required", ErrInvalidInput)
	}

	src, ok, err := s.repo.GetSourceByName(ctx, name)
	if err != nil {
		return mapper.Source{}, fmt.Errorf("get mapper source %s: %w", name, err)
	}
	if ok {
		return src, nil
	}

	created, err := s.repo.CreateSource(ctx, name)
	if err != nil {
		return mapper.Source{}, fmt.Errorf("create mapper source %s: %w", name, err)
	}
	return created, nil
}
