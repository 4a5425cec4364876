package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/futstats/team-manager/internal/domain/player"
	qb "github.com/futstats/team-manager/internal/platform/querybuilder"
)

type playerTableModel struct {
	ID        string         `db:"id"`
	TeamID    string         `db:"team_id"`
	Name      string         `db:"name"`
	Nickname  sql.NullString `db:"nickname"`
	Position  sql.NullString `db:"position"`
	Number    sql.NullInt64  `db:"number"`
	Photo     sql.NullString `db:"photo"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:       m.ID,
		TeamID:   m.TeamID,
		Name:     m.Name,
		Nickname: m.Nickname.String,
		Position: m.Position.String,
		Number:   int(m.Number.Int64),
		Photo:    m.Photo.String,
	}
}

var playerColumns = []string{"id", "team_id", "name", "nickname", "position", "number", "photo", "created_at", "updated_at"}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, teamID, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerColumns...).
		From("players").
		Where(qb.Eq("id", playerID), qb.Eq("team_id", teamID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, errors.Wrap(err, "build select player query")
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, errors.Wrap(err, "select player")
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	query, args, err := qb.Select(playerColumns...).
		From("players").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select players query")
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select players")
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// selectPlayersByIDs is shared by repositories resolving player joins in Go.
func selectPlayersByIDs(ctx context.Context, db *sqlx.DB, playerIDs []string) (map[string]playerTableModel, error) {
	if len(playerIDs) == 0 {
		return map[string]playerTableModel{}, nil
	}

	query, args, err := qb.Select(playerColumns...).
		From("players").
		Where(qb.In("id", toAnySlice(playerIDs))).
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select players by ids query")
	}

	var rows []playerTableModel
	if err := db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select players by ids")
	}

	out := make(map[string]playerTableModel, len(rows))
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	query, args, err := qb.InsertInto("players").
		Columns("id", "team_id", "name", "nickname", "position", "number", "photo").
		Values(p.ID, p.TeamID, p.Name, nullString(p.Nickname), nullString(p.Position), p.Number, nullString(p.Photo)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build insert player query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "insert player")
	}
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	query, args, err := qb.Update("players").
		Set("name", p.Name).
		Set("nickname", nullString(p.Nickname)).
		Set("position", nullString(p.Position)).
		Set("number", p.Number).
		Set("photo", nullString(p.Photo)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", p.ID), qb.Eq("team_id", p.TeamID)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build update player query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "update player")
	}
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, teamID, playerID string) error {
	query, args, err := qb.DeleteFrom("players").
		Where(qb.Eq("id", playerID), qb.Eq("team_id", teamID)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete player query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "delete player")
	}
	return nil
}
