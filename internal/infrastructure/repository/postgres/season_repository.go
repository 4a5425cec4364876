package postgres

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/futstats/team-manager/internal/domain/season"
	qb "github.com/futstats/team-manager/internal/platform/querybuilder"
)

type seasonTableModel struct {
	ID        string    `db:"id"`
	TeamID    string    `db:"team_id"`
	Year      int       `db:"year"`
	Name      string    `db:"name"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m seasonTableModel) toDomain() season.Season {
	return season.Season{
		ID:       m.ID,
		TeamID:   m.TeamID,
		Year:     m.Year,
		Name:     m.Name,
		IsActive: m.IsActive,
	}
}

var seasonColumns = []string{"id", "team_id", "year", "name", "is_active", "created_at", "updated_at"}

type rosterRowModel struct {
	SeasonID string `db:"season_id"`
	PlayerID string `db:"player_id"`
}

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) GetByID(ctx context.Context, teamID, seasonID string) (season.Season, bool, error) {
	query, args, err := qb.Select(seasonColumns...).
		From("seasons").
		Where(qb.Eq("id", seasonID), qb.Eq("team_id", teamID)).
		ToSQL()
	if err != nil {
		return season.Season{}, false, errors.Wrap(err, "build select season query")
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, errors.Wrap(err, "select season")
	}

	return row.toDomain(), true, nil
}

func (r *SeasonRepository) FindActive(ctx context.Context, teamID string) (season.Season, bool, error) {
	query, args, err := qb.Select(seasonColumns...).
		From("seasons").
		Where(qb.Eq("team_id", teamID), qb.Eq("is_active", true)).
		Limit(1).
		ToSQL()
	if err != nil {
		return season.Season{}, false, errors.Wrap(err, "build select active season query")
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, errors.Wrap(err, "select active season")
	}

	return row.toDomain(), true, nil
}

func (r *SeasonRepository) ListByTeam(ctx context.Context, teamID string) ([]season.Season, error) {
	query, args, err := qb.Select(seasonColumns...).
		From("seasons").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("year DESC", "created_at DESC").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select seasons query")
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select seasons")
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SeasonRepository) Create(ctx context.Context, s season.Season) error {
	query, args, err := qb.InsertInto("seasons").
		Columns("id", "team_id", "year", "name", "is_active").
		Values(s.ID, s.TeamID, s.Year, s.Name, s.IsActive).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build insert season query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "insert season")
	}
	return nil
}

func (r *SeasonRepository) Update(ctx context.Context, s season.Season) error {
	query, args, err := qb.Update("seasons").
		Set("year", s.Year).
		Set("name", s.Name).
		Set("is_active", s.IsActive).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", s.ID), qb.Eq("team_id", s.TeamID)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build update season query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "update season")
	}
	return nil
}

func (r *SeasonRepository) Delete(ctx context.Context, teamID, seasonID string) error {
	query, args, err := qb.DeleteFrom("seasons").
		Where(qb.Eq("id", seasonID), qb.Eq("team_id", teamID)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete season query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "delete season")
	}
	return nil
}

func (r *SeasonRepository) DeactivateAll(ctx context.Context, teamID string) error {
	query, args, err := qb.Update("seasons").
		Set("is_active", false).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("team_id", teamID), qb.Eq("is_active", true)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build deactivate seasons query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "deactivate seasons")
	}
	return nil
}

func (r *SeasonRepository) ListRoster(ctx context.Context, seasonID string) ([]season.RosterEntry, error) {
	query, args, err := qb.Select("season_id", "player_id").
		From("season_players").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("created_at", "player_id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select roster query")
	}

	var rows []rosterRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select roster")
	}
	if len(rows) == 0 {
		return []season.RosterEntry{}, nil
	}

	playerIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		playerIDs = append(playerIDs, row.PlayerID)
	}

	players, err := selectPlayersByIDs(ctx, r.db, playerIDs)
	if err != nil {
		return nil, err
	}

	out := make([]season.RosterEntry, 0, len(rows))
	for _, row := range rows {
		entry := season.RosterEntry{SeasonID: row.SeasonID, PlayerID: row.PlayerID}
		if p, ok := players[row.PlayerID]; ok {
			entry.Player = p.toDomain()
		}
		out = append(out, entry)
	}
	return out, nil
}

func (r *SeasonRepository) AddRosterEntry(ctx context.Context, seasonID, playerID string) error {
	query, args, err := qb.InsertInto("season_players").
		Columns("season_id", "player_id").
		Values(seasonID, playerID).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build insert roster entry query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "insert roster entry")
	}
	return nil
}

func (r *SeasonRepository) RemoveRosterEntry(ctx context.Context, seasonID, playerID string) error {
	query, args, err := qb.DeleteFrom("season_players").
		Where(qb.Eq("season_id", seasonID), qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete roster entry query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "delete roster entry")
	}
	return nil
}
