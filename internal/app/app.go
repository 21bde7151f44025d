package app

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/pitchmap/lnp-importer/external/lnp"
	"github.com/pitchmap/lnp-importer/internal/config"
	"github.com/pitchmap/lnp-importer/internal/infrastructure/repository/postgres"
	"github.com/pitchmap/lnp-importer/internal/platform/cache"
	"github.com/pitchmap/lnp-importer/internal/platform/logging"
	"github.com/pitchmap/lnp-importer/internal/platform/resilience"
	"github.com/pitchmap/lnp-importer/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
)

// App bundles the wired services behind the importer CLI.
type App struct {
	Config   config.Config
	Logger   *logging.Logger
	Importer *usecase.ImportService
	Links    *usecase.LinkService
	Merger   usecase.ClubMerger

	db *sqlx.DB
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	mapperRepo := postgres.NewMapperRepository(db)
	clubRepo := postgres.NewClubRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	leagueRepo := postgres.NewLeagueRepository(db)
	seasonRepo := postgres.NewSeasonRepository(db)
	editionRepo := postgres.NewEditionRepository(db)
	historyRepo := postgres.NewTeamHistoryRepository(db)
	inquiryRepo := postgres.NewInquiryRepository(db)
	regionRepo := postgres.NewRegionRepository(db)

	mappers := usecase.NewMapperService(mapperRepo, logger)
	tables := usecase.DefaultClassification()
	hierarchy := usecase.NewHierarchyService(leagueRepo, editionRepo, tables, logger)
	merger := usecase.NewSubstringMergeStrategy(clubRepo, teamRepo, mappers, logger)
	source := newSource(cfg, logger)

	importer := usecase.NewImportService(usecase.ImportDeps{
		Source:          source,
		Clubs:           clubRepo,
		Teams:           teamRepo,
		Leagues:         leagueRepo,
		Seasons:         seasonRepo,
		Editions:        editionRepo,
		Histories:       historyRepo,
		Inquiries:       inquiryRepo,
		Regions:         regionRepo,
		Mappers:         mappers,
		Hierarchy:       hierarchy,
		Merger:          merger,
		Tables:          tables,
		SeasonAllowlist: cfg.SeasonAllowlist,
		Details:         cache.NewStore(cfg.CacheTTL),
		Logger:          logger,
	})

	links := usecase.NewLinkService(
		mapperRepo, editionRepo, historyRepo, teamRepo, clubRepo,
		seasonRepo, regionRepo, lnp.DefaultLinkTables(), cfg.LinkWorkers, logger,
	)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Importer: importer,
		Links:    links,
		Merger:   merger,
		db:       db,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	return db, nil
}

func newSource(cfg config.Config, logger *logging.Logger) usecase.SourceProvider {
	if cfg.UseSnapshot() {
		return lnp.NewSnapshot(cfg.LNPSnapshotDir, logger)
	}

	return lnp.NewClient(lnp.ClientConfig{
		HTTPClient: &http.Client{Timeout: cfg.LNPTimeout},
		BaseURL:    cfg.LNPBaseURL,
		Token:      cfg.LNPToken,
		Timeout:    cfg.LNPTimeout,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.LNPCircuitEnabled,
			FailureThreshold: cfg.LNPCircuitFailureCount,
			OpenTimeout:      cfg.LNPCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.LNPCircuitHalfOpenMaxReq,
		},
	})
}
