package lnp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	sonic "github.com/bytedance/sonic"

	"github.com/pitchmap/lnp-importer/internal/platform/logging"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

const (
	leaguesFile       = "leagues.json"
	teamHistoriesFile = "team_histories.json"
	clubsFile         = "clubs.json"
	playTeamsFile     = "play_teams.json"
)

// Snapshot serves the same contract as Client from four static JSON documents
// in a local directory. Used for offline imports and as a deterministic test
// double. Documents are loaded once and filtered in memory.
type Snapshot struct {
	dir    string
	logger *logging.Logger

	once    sync.Once
	loadErr error

	leagues       []leagueDocument
	teamHistories []teamHistoryDocument
	clubs         []clubDocument
	playTeams     map[string][]teamDocument
}

func NewSnapshot(dir string, logger *logging.Logger) *Snapshot {
	if logger == nil {
		logger = logging.Default()
	}
	return &Snapshot{dir: dir, logger: logger}
}

func (s *Snapshot) load() error {
	s.once.Do(func() {
		if err := s.readDocument(leaguesFile, &s.leagues); err != nil {
			s.loadErr = err
			return
		}
		if err := s.readDocument(teamHistoriesFile, &s.teamHistories); err != nil {
			s.loadErr = err
			return
		}
		if err := s.readDocument(clubsFile, &s.clubs); err != nil {
			s.loadErr = err
			return
		}
		if err := s.readDocument(playTeamsFile, &s.playTeams); err != nil {
			s.loadErr = err
			return
		}

		for _, err := range []error{
			validateSlice(s.leagues),
			validateSlice(s.teamHistories),
			validateSlice(s.clubs),
		} {
			if err != nil {
				s.loadErr = wrapMalformed(err)
				return
			}
		}

		s.logger.Info("source snapshot loaded",
			"dir", s.dir,
			"leagues", len(s.leagues),
			"team_histories", len(s.teamHistories),
			"clubs", len(s.clubs),
			"plays", len(s.playTeams),
		)
	})
	return s.loadErr
}

func (s *Snapshot) readDocument(name string, target any) error {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return fmt.Errorf("%w: read snapshot %s: %v", usecase.ErrSourceUnavailable, name, err)
	}
	if emptyBody(raw) {
		return nil
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode snapshot %s: %v", usecase.ErrSourceUnavailable, name, err)
	}
	return nil
}

func wrapMalformed(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: malformed snapshot document: %v", usecase.ErrSourceUnavailable, err)
}

func (s *Snapshot) ListLeagues(_ context.Context) ([]usecase.SourceLeague, error) {
	if err := s.load(); err != nil {
		return nil, err
	}

	out := make([]usecase.SourceLeague, 0, len(s.leagues))
	for _, doc := range s.leagues {
		out = append(out, doc.toSource())
	}
	return out, nil
}

func (s *Snapshot) ListTeamHistories(_ context.Context) ([]usecase.SourceTeamHistory, error) {
	if err := s.load(); err != nil {
		return nil, err
	}

	out := make([]usecase.SourceTeamHistory, 0, len(s.teamHistories))
	for _, doc := range s.teamHistories {
		out = append(out, doc.toSource())
	}
	return out, nil
}

func (s *Snapshot) GetClubDetails(_ context.Context, clubID string) (usecase.SourceClub, bool, error) {
	if strings.TrimSpace(clubID) == "" {
		return usecase.SourceClub{}, false, fmt.Errorf("%w: club id is required", usecase.ErrInvalidInput)
	}
	if err := s.load(); err != nil {
		return usecase.SourceClub{}, false, err
	}

	for _, doc := range s.clubs {
		if doc.ID == clubID {
			return doc.toSource(), true, nil
		}
	}
	return usecase.SourceClub{}, false, nil
}

// ListTeamPlays inverts the play-teams document: a team's plays are every
// play whose roster contains the team.
func (s *Snapshot) ListTeamPlays(_ context.Context, teamID string) ([]usecase.SourcePlay, error) {
	if strings.TrimSpace(teamID) == "" {
		return nil, fmt.Errorf("%w: team id is required", usecase.ErrInvalidInput)
	}
	if err := s.load(); err != nil {
		return nil, err
	}

	out := make([]usecase.SourcePlay, 0, 2)
	for _, lg := range s.leagues {
		for _, play := range lg.Plays {
			for _, member := range s.playTeams[play.ID] {
				if member.ID == teamID {
					out = append(out, play.toSource())
					break
				}
			}
		}
	}
	return out, nil
}

func (s *Snapshot) ListPlayTeams(_ context.Context, playID string) ([]usecase.SourceTeam, error) {
	if strings.TrimSpace(playID) == "" {
		return nil, fmt.Errorf("%w: play id is required", usecase.ErrInvalidInput)
	}
	if err := s.load(); err != nil {
		return nil, err
	}

	docs := s.playTeams[playID]
	out := make([]usecase.SourceTeam, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toSource())
	}
	return out, nil
}
