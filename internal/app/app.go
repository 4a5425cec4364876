package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/futstats/team-manager/internal/config"
	"github.com/futstats/team-manager/internal/domain/match"
	"github.com/futstats/team-manager/internal/domain/player"
	"github.com/futstats/team-manager/internal/domain/season"
	"github.com/futstats/team-manager/internal/domain/team"
	"github.com/futstats/team-manager/internal/infrastructure/repository/memory"
	"github.com/futstats/team-manager/internal/infrastructure/repository/postgres"
	"github.com/futstats/team-manager/internal/interfaces/httpapi"
	"github.com/futstats/team-manager/internal/platform/cache"
	idgen "github.com/futstats/team-manager/internal/platform/id"
	"github.com/futstats/team-manager/internal/platform/logging"
	"github.com/futstats/team-manager/internal/usecase"
)

type repositories struct {
	teams   team.Repository
	players player.Repository
	seasons season.Repository
	matches match.Repository
}

// NewHTTPServer wires repositories, services and the router. The returned
// cleanup stops the cache sweeper and closes the database connection; call
// it after the server has shut down.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	cleanups := make([]func(), 0, 2)
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	repos, dbClose, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if dbClose != nil {
		cleanups = append(cleanups, dbClose)
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
		store.StartSweeper(cfg.CacheSweepInterval)
		cleanups = append(cleanups, store.Close)
	}

	invalidator := usecase.NewInvalidator(store, logger)
	gen := idgen.NewRandomGenerator()

	teamSvc := usecase.NewTeamService(repos.teams, invalidator)
	playerSvc := usecase.NewPlayerService(repos.players, repos.seasons, gen, invalidator, logger)
	seasonSvc := usecase.NewSeasonService(repos.seasons, repos.players, gen, invalidator)
	matchSvc := usecase.NewMatchService(repos.seasons, repos.matches, repos.players, gen, invalidator)
	dashboardSvc := usecase.NewDashboardService(repos.seasons, repos.matches, store)
	refreshSvc := usecase.NewRefreshService(dashboardSvc, invalidator, logger)

	handler := httpapi.NewHandler(teamSvc, playerSvc, seasonSvc, matchSvc, dashboardSvc, refreshSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, store)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

// buildRepositories opens postgres when DB_URL is set and falls back to the
// seeded in-memory fixtures otherwise, which keeps local development free of
// infrastructure.
func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func(), error) {
	dbURL := strings.TrimSpace(cfg.DBURL)
	if dbURL == "" {
		logger.Info("using in-memory repositories", "reason", "DB_URL is empty")

		teamRepo := memory.NewTeamRepository(memory.SeedTeams())
		playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
		seasonRepo := memory.NewSeasonRepository(memory.SeedSeasons(), playerRepo)
		memory.SeedRoster(seasonRepo)
		matchRepo := memory.NewMatchRepository(playerRepo)

		return repositories{
			teams:   teamRepo,
			players: playerRepo,
			seasons: seasonRepo,
			matches: matchRepo,
		}, nil, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("open database: %w", err)
	}
	logger.Info("connected to postgres", "db", dbNameFromURL(dbURL))

	return repositories{
		teams:   postgres.NewTeamRepository(db),
		players: postgres.NewPlayerRepository(db),
		seasons: postgres.NewSeasonRepository(db),
		matches: postgres.NewMatchRepository(db),
	}, func() { _ = db.Close() }, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return db, nil
}
