package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitchmap/lnp-importer/internal/domain/edition"
	"github.com/pitchmap/lnp-importer/internal/domain/league"
	"github.com/pitchmap/lnp-importer/internal/normalize"
	"github.com/pitchmap/lnp-importer/internal/platform/logging"
)

// HierarchyService turns free-text play names into a canonical league tree:
// top division at the root, then region, sub-group, compass, group and
// competition-phase qualifiers as descendants.
type HierarchyService struct {
	leagues  league.Repository
	editions edition.Repository
	tables   Classification
	logger   *logging.Logger
}

func NewHierarchyService(
	leagues league.Repository,
	editions edition.Repository,
	tables Classification,
	logger *logging.Logger,
) *HierarchyService {
	if logger == nil {
		logger = logging.Default()
	}

	return &HierarchyService{
		leagues:  leagues,
		editions: editions,
		tables:   tables,
		logger:   logger,
	}
}

const (
	RoundWinners = "RW"
	RoundLosers  = "RJ"
)

// Branch is a classified play: the canonical top division and the ordered
// qualifier path below it.
type Branch struct {
	TopDivision string
	Qualifiers  []string
}

// Round returns which half of a split season the branch belongs to, if any.
func (b Branch) Round() string {
	for _, q := range b.Qualifiers {
		if q == RoundWinners || q == RoundLosers {
			return q
		}
	}
	return ""
}

// Classify parses a play name against the classification tables. An upstream
// league name missing from the top-division table makes the whole play
// skippable rather than guessed at.
func (s *HierarchyService) Classify(lg SourceLeague, play SourcePlay) (Branch, error) {
	topDivision, ok := s.tables.TopDivisions[lg.Name]
	if !ok {
		return Branch{}, fmt.Errorf("%w: unknown top division %q", ErrSkippableEntity, lg.Name)
	}

	tokens := strings.Fields(strings.ReplaceAll(play.Name, `"`, ""))
	qualifiers := make([]string, 0, 4)

	if play.Region != "" {
		qualifiers = append(qualifiers, normalize.VoivodeshipKey(play.Region))
	}

	qualifiers = appendSubGroup(qualifiers, tokens, lg.PMID, s.tables)
	qualifiers = appendColonLabel(qualifiers, tokens)

	for i, token := range tokens {
		if token == "gr." || token == "grupa" || token == "GRUPA" {
			tokens[i] = "Grupa"
		}
	}

	qualifiers = appendCompass(qualifiers, tokens)

	for i, token := range tokens {
		if token == "Grupa" && i+1 < len(tokens) {
			qualifiers = append(qualifiers, normalize.RomanToArabic(token+" "+tokens[i+1]))
		}
	}

	lower := strings.ToLower(play.Name)
	switch {
	case strings.Contains(lower, "baraż"):
		qualifiers = append(qualifiers, "baraż")
	case strings.Contains(lower, "puchar"):
		qualifiers = append(qualifiers, "puchar")
	case strings.Contains(lower, "mistrz"):
		qualifiers = append(qualifiers, "mistrzowska")
	case strings.Contains(lower, "spad"):
		qualifiers = append(qualifiers, "spadkowa")
	}

	if round := detectRound(play.Name); round != "" {
		qualifiers = append(qualifiers, round)
	}

	return Branch{TopDivision: topDivision, Qualifiers: dedupe(qualifiers)}, nil
}

// appendSubGroup picks up "klasa okręgowa II" style sub-groups, but only for
// upstream division ids known to carry regional splits.
func appendSubGroup(qualifiers []string, tokens []string, pmID int, tables Classification) []string {
	if !tables.hasRegionalSubGroups(pmID) {
		return qualifiers
	}
	for _, marker := range []string{"okręgowa", "wojewódzka"} {
		idx := indexOf(tokens, marker)
		if idx < 0 {
			continue
		}
		start := idx - 2
		if start < 0 {
			start = 0
		}
		return append(qualifiers, normalize.RomanToArabic(strings.Join(tokens[start:idx+1], " ")))
	}
	return qualifiers
}

// appendColonLabel keeps a leading "Something:" label as its own qualifier.
func appendColonLabel(qualifiers []string, tokens []string) []string {
	if len(tokens) > 0 && strings.HasSuffix(tokens[0], ":") {
		return append(qualifiers, strings.TrimSuffix(tokens[0], ":"))
	}
	if len(tokens) > 1 && strings.HasSuffix(tokens[1], ":") {
		return append(qualifiers, tokens[0]+" "+strings.TrimSuffix(tokens[1], ":"))
	}
	return qualifiers
}

func appendCompass(qualifiers []string, tokens []string) []string {
	switch {
	case containsAny(tokens, "zach.", "zachodnia"):
		return append(qualifiers, "Zachód")
	case containsAny(tokens, "wsch.", "wschodnia"):
		return append(qualifiers, "Wschód")
	case containsAny(tokens, "płd.", "południowa"):
		return append(qualifiers, "Południe")
	case containsAny(tokens, "płn.", "północna"):
		return append(qualifiers, "Północ")
	}
	return qualifiers
}

// detectRound matches the quoted, parenthesized and seasonal spellings the
// source uses for winners/losers round splits.
func detectRound(name string) string {
	switch {
	case strings.Contains(name, `"RW"`), strings.Contains(name, `"RW `),
		strings.Contains(name, "(RW)"), strings.Contains(name, "WIOSNA"),
		strings.Contains(name, "WIOSENNA"):
		return RoundWinners
	case strings.Contains(name, `"RJ"`), strings.Contains(name, `"RJ `),
		strings.Contains(name, "(RJ)"), strings.Contains(name, "JESIEŃ"):
		return RoundLosers
	}
	return ""
}

// EnsureBranch resolves the branch to a concrete league node, get-or-creating
// the whole qualifier path. Stable top divisions stay flat regardless of
// qualifiers.
func (s *HierarchyService) EnsureBranch(ctx context.Context, branch Branch) (league.League, error) {
	root, ok, err := s.leagues.GetByName(ctx, branch.TopDivision)
	if err != nil {
		return league.League{}, fmt.Errorf("get league %s: %w", branch.TopDivision, err)
	}
	if !ok {
		root, err = s.leagues.Create(ctx, league.League{
			Name:        branch.TopDivision,
			AutoCreated: true,
		})
		if err != nil {
			return league.League{}, fmt.Errorf("create league %s: %w", branch.TopDivision, err)
		}
	}

	if s.tables.IsStable(branch.TopDivision) {
		return root, nil
	}

	current := root
	for _, qualifier := range branch.Qualifiers {
		child, ok, err := s.leagues.GetChild(ctx, current.ID, qualifier)
		if err != nil {
			return league.League{}, fmt.Errorf("get league child %s: %w", qualifier, err)
		}
		if !ok {
			child, err = s.leagues.Create(ctx, league.League{
				Name:            qualifier,
				ParentID:        current.ID,
				HighestParentID: root.ID,
				AutoCreated:     true,
			})
			if err != nil {
				return league.League{}, fmt.Errorf("create league child %s: %w", qualifier, err)
			}
		}
		current = child
	}

	return current, nil
}

// RelocateOppositeRound handles a season splitting into winners/losers
// brackets: the edition currently attached to the leaf's parent for this
// season moves to a sibling node named after the round not observed now, so
// its history survives the split.
func (s *HierarchyService) RelocateOppositeRound(ctx context.Context, observedRound string, leaf league.League, seasonID int64) error {
	opposite := RoundLosers
	if observedRound == RoundLosers {
		opposite = RoundWinners
	}

	if leaf.IsRoot() {
		s.logger.Warn("round qualifier on a root league, nothing to relocate", "league", leaf.Name)
		return nil
	}

	parent, ok, err := s.leagues.GetByID(ctx, leaf.ParentID)
	if err != nil {
		return fmt.Errorf("get parent league id=%d: %w", leaf.ParentID, err)
	}
	if !ok {
		return nil
	}

	sibling, ok, err := s.leagues.GetChild(ctx, parent.ID, opposite)
	if err != nil {
		return fmt.Errorf("get round sibling %s: %w", opposite, err)
	}
	if !ok {
		sibling, err = s.leagues.Create(ctx, league.League{
			Name:            opposite,
			ParentID:        parent.ID,
			HighestParentID: parent.HighestParentID,
			AutoCreated:     true,
		})
		if err != nil {
			return fmt.Errorf("create round sibling %s: %w", opposite, err)
		}
	}

	current, ok, err := s.editions.GetByLeagueSeason(ctx, parent.ID, seasonID)
	if err != nil {
		return fmt.Errorf("get edition league=%d season=%d: %w", parent.ID, seasonID, err)
	}
	if !ok {
		return nil
	}

	current.LeagueID = sibling.ID
	if err := s.editions.Update(ctx, current); err != nil {
		return fmt.Errorf("relocate edition id=%d: %w", current.ID, err)
	}
	return nil
}

func indexOf(tokens []string, want string) int {
	for i, token := range tokens {
		if token == want {
			return i
		}
	}
	return -1
}

func containsAny(tokens []string, wanted ...string) bool {
	for _, token := range tokens {
		for _, want := range wanted {
			if token == want {
				return true
			}
		}
	}
	return false
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
