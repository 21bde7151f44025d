package usecase

import (
	"context"
	"fmt"

	"github.com/pitchmap/lnp-importer/internal/domain/club"
	"github.com/pitchmap/lnp-importer/internal/domain/team"
	"github.com/pitchmap/lnp-importer/internal/platform/logging"
)

// ClubMerger detects duplicate canonical clubs and folds them into a single
// survivor. It sits behind an interface so the coarse substring matcher can
// be swapped for a stricter one without touching the import orchestrator.
type ClubMerger interface {
	MergeDuplicates(ctx context.Context) (int, error)
}

// SubstringMergeStrategy groups clubs whose names contain one another and
// merges each group into its anchor: the first member holding mapper
// entities, else simply the first member. Teams are reparented, editors and
// managers unioned, the rest deleted. Deliberately conservative toward
// over-merging when names are prefixes of one another.
type SubstringMergeStrategy struct {
	clubs   club.Repository
	teams   team.Repository
	mappers *MapperService
	logger  *logging.Logger
}

func NewSubstringMergeStrategy(
	clubs club.Repository,
	teams team.Repository,
	mappers *MapperService,
	logger *logging.Logger,
) *SubstringMergeStrategy {
	if logger == nil {
		logger = logging.Default()
	}

	return &SubstringMergeStrategy{
		clubs:   clubs,
		teams:   teams,
		mappers: mappers,
		logger:  logger,
	}
}

func (s *SubstringMergeStrategy) MergeDuplicates(ctx context.Context) (int, error) {
	all, err := s.clubs.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list clubs for merge: %w", err)
	}

	merged := 0
	for _, candidate := range all {
		// Earlier groups may have deleted this club already.
		current, ok, err := s.clubs.GetByID(ctx, candidate.ID)
		if err != nil {
			return merged, fmt.Errorf("get club id=%d: %w", candidate.ID, err)
		}
		if !ok {
			continue
		}

		group, err := s.clubs.ListNameContains(ctx, current.Name)
		if err != nil {
			return merged, fmt.Errorf("search clubs containing %q: %w", current.Name, err)
		}
		if len(group) < 2 {
			continue
		}

		survivor, err := s.pickSurvivor(ctx, group)
		if err != nil {
			return merged, err
		}

		count, err := s.mergeGroup(ctx, survivor, group)
		if err != nil {
			return merged, err
		}
		merged += count
	}

	return merged, nil
}

// pickSurvivor prefers the member already anchored to external identities.
func (s *SubstringMergeStrategy) pickSurvivor(ctx context.Context, group []club.Club) (club.Club, error) {
	for _, member := range group {
		if member.MapperID <= 0 {
			continue
		}
		anchored, err := s.mappers.HasEntities(ctx, member.MapperID)
		if err != nil {
			return club.Club{}, err
		}
		if anchored {
			return member, nil
		}
	}
	return group[0], nil
}

func (s *SubstringMergeStrategy) mergeGroup(ctx context.Context, survivor club.Club, group []club.Club) (int, error) {
	editors := make([]int64, 0, 4)
	deleted := 0

	for _, member := range group {
		memberTeams, err := s.teams.ListByClub(ctx, member.ID)
		if err != nil {
			return deleted, fmt.Errorf("list teams club=%d: %w", member.ID, err)
		}
		for _, item := range memberTeams {
			if item.ClubID == survivor.ID {
				continue
			}
			item.ClubID = survivor.ID
			if err := s.teams.Update(ctx, item); err != nil {
				return deleted, fmt.Errorf("reparent team id=%d: %w", item.ID, err)
			}
		}

		memberEditors, err := s.clubs.ListEditors(ctx, member.ID)
		if err != nil {
			return deleted, fmt.Errorf("list editors club=%d: %w", member.ID, err)
		}
		editors = append(editors, memberEditors...)
		if member.ManagerID > 0 {
			editors = append(editors, member.ManagerID)
		}
	}

	survivorEditors, err := s.clubs.ListEditors(ctx, survivor.ID)
	if err != nil {
		return deleted, fmt.Errorf("list editors club=%d: %w", survivor.ID, err)
	}
	known := make(map[int64]struct{}, len(survivorEditors))
	for _, editor := range survivorEditors {
		known[editor] = struct{}{}
	}
	for _, editor := range editors {
		if _, ok := known[editor]; ok {
			continue
		}
		known[editor] = struct{}{}
		if err := s.clubs.AddEditor(ctx, survivor.ID, editor); err != nil {
			return deleted, fmt.Errorf("add editor %d to club %d: %w", editor, survivor.ID, err)
		}
	}

	for _, member := range group {
		if member.ID == survivor.ID {
			continue
		}
		if err := s.clubs.Delete(ctx, member.ID); err != nil {
			return deleted, fmt.Errorf("delete merged club id=%d: %w", member.ID, err)
		}
		s.logger.Info("merged duplicate club",
			"club", member.Name,
			"club_id", member.ID,
			"survivor", survivor.Name,
			"survivor_id", survivor.ID,
		)
		deleted++
	}

	return deleted, nil
}
