package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/futstats/team-manager/internal/domain/match"
	qb "github.com/futstats/team-manager/internal/platform/querybuilder"
)

type matchTableModel struct {
	ID         string         `db:"id"`
	TeamID     string         `db:"team_id"`
	SeasonID   string         `db:"season_id"`
	Date       time.Time      `db:"date"`
	Location   string         `db:"location"`
	Opponent   sql.NullString `db:"opponent"`
	Notes      sql.NullString `db:"notes"`
	OurScore   int            `db:"our_score"`
	TheirScore int            `db:"their_score"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:         m.ID,
		TeamID:     m.TeamID,
		SeasonID:   m.SeasonID,
		Date:       m.Date,
		Location:   m.Location,
		Opponent:   m.Opponent.String,
		Notes:      m.Notes.String,
		OurScore:   m.OurScore,
		TheirScore: m.TheirScore,
	}
}

var matchColumns = []string{"id", "team_id", "season_id", "date", "location", "opponent", "notes", "our_score", "their_score", "created_at", "updated_at"}

type goalTableModel struct {
	ID        string         `db:"id"`
	MatchID   string         `db:"match_id"`
	PlayerID  sql.NullString `db:"player_id"`
	Minute    sql.NullInt64  `db:"minute"`
	OwnGoal   bool           `db:"own_goal"`
	FreeKick  bool           `db:"free_kick"`
	Penalty   bool           `db:"penalty"`
	CreatedAt time.Time      `db:"created_at"`
}

func (m goalTableModel) toDomain() match.Goal {
	return match.Goal{
		ID:        m.ID,
		MatchID:   m.MatchID,
		PlayerID:  stringPtr(m.PlayerID),
		Minute:    intPtr(m.Minute),
		OwnGoal:   m.OwnGoal,
		FreeKick:  m.FreeKick,
		Penalty:   m.Penalty,
		CreatedAt: m.CreatedAt,
	}
}

var goalColumns = []string{"id", "match_id", "player_id", "minute", "own_goal", "free_kick", "penalty", "created_at"}

type presenceRowModel struct {
	MatchID  string `db:"match_id"`
	PlayerID string `db:"player_id"`
	Present  bool   `db:"present"`
}

type presentCountRowModel struct {
	MatchID string `db:"match_id"`
	Count   int    `db:"present_count"`
}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListBySeason(ctx context.Context, teamID, seasonID string) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns...).
		From("matches").
		Where(qb.Eq("team_id", teamID), qb.Eq("season_id", seasonID)).
		OrderBy("date DESC", "id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select matches query")
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select matches")
	}
	if len(rows) == 0 {
		return []match.Match{}, nil
	}

	matchIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		matchIDs = append(matchIDs, row.ID)
	}

	goalsByMatch, err := r.goalsByMatchIDs(ctx, matchIDs)
	if err != nil {
		return nil, err
	}
	counts, err := r.presentCounts(ctx, matchIDs)
	if err != nil {
		return nil, err
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		m := row.toDomain()
		m.Goals = goalsByMatch[row.ID]
		m.PresentCount = counts[row.ID]
		out = append(out, m)
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, teamID, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select(matchColumns...).
		From("matches").
		Where(qb.Eq("id", matchID), qb.Eq("team_id", teamID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, errors.Wrap(err, "build select match query")
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, errors.Wrap(err, "select match")
	}

	goalsByMatch, err := r.goalsByMatchIDs(ctx, []string{row.ID})
	if err != nil {
		return match.Match{}, false, err
	}
	counts, err := r.presentCounts(ctx, []string{row.ID})
	if err != nil {
		return match.Match{}, false, err
	}

	m := row.toDomain()
	m.Goals = goalsByMatch[row.ID]
	m.PresentCount = counts[row.ID]
	return m, true, nil
}

func (r *MatchRepository) FindNextUnplayed(ctx context.Context, teamID, seasonID string, from time.Time) (match.Match, bool, error) {
	query, args, err := qb.Select(matchColumns...).
		From("matches").
		Where(qb.Eq("team_id", teamID), qb.Eq("season_id", seasonID), qb.Gte("date", from)).
		OrderBy("date", "id").
		ToSQL()
	if err != nil {
		return match.Match{}, false, errors.Wrap(err, "build select upcoming matches query")
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return match.Match{}, false, errors.Wrap(err, "select upcoming matches")
	}
	if len(rows) == 0 {
		return match.Match{}, false, nil
	}

	matchIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		matchIDs = append(matchIDs, row.ID)
	}
	counts, err := r.presentCounts(ctx, matchIDs)
	if err != nil {
		return match.Match{}, false, err
	}

	for _, row := range rows {
		if counts[row.ID] == 0 {
			return row.toDomain(), true, nil
		}
	}
	return match.Match{}, false, nil
}

func (r *MatchRepository) ListGoalsByMatchIDs(ctx context.Context, matchIDs []string) ([]match.Goal, error) {
	goalsByMatch, err := r.goalsByMatchIDs(ctx, matchIDs)
	if err != nil {
		return nil, err
	}

	out := make([]match.Goal, 0)
	for _, matchID := range matchIDs {
		out = append(out, goalsByMatch[matchID]...)
	}
	return out, nil
}

func (r *MatchRepository) ListPresentByMatchIDs(ctx context.Context, matchIDs []string) ([]match.Presence, error) {
	if len(matchIDs) == 0 {
		return []match.Presence{}, nil
	}

	query, args, err := qb.Select("match_id", "player_id", "present").
		From("presences").
		Where(qb.In("match_id", toAnySlice(matchIDs)), qb.Eq("present", true)).
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select presences query")
	}

	var rows []presenceRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select presences")
	}

	out := make([]match.Presence, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.Presence{MatchID: row.MatchID, PlayerID: row.PlayerID, Present: row.Present})
	}
	return out, nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	query, args, err := qb.InsertInto("matches").
		Columns("id", "team_id", "season_id", "date", "location", "opponent", "notes", "our_score", "their_score").
		Values(m.ID, m.TeamID, m.SeasonID, m.Date, m.Location, nullString(m.Opponent), nullString(m.Notes), m.OurScore, m.TheirScore).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build insert match query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "insert match")
	}
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, m match.Match) error {
	query, args, err := qb.Update("matches").
		Set("date", m.Date).
		Set("location", m.Location).
		Set("opponent", nullString(m.Opponent)).
		Set("notes", nullString(m.Notes)).
		Set("our_score", m.OurScore).
		Set("their_score", m.TheirScore).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", m.ID), qb.Eq("team_id", m.TeamID)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build update match query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "update match")
	}
	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, teamID, matchID string) error {
	// goals and presences go with the match via ON DELETE CASCADE
	query, args, err := qb.DeleteFrom("matches").
		Where(qb.Eq("id", matchID), qb.Eq("team_id", teamID)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete match query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "delete match")
	}
	return nil
}

func (r *MatchRepository) AddGoal(ctx context.Context, g match.Goal) error {
	query, args, err := qb.InsertInto("goals").
		Columns("id", "match_id", "player_id", "minute", "own_goal", "free_kick", "penalty", "created_at").
		Values(g.ID, g.MatchID, nullStringPtr(g.PlayerID), nullInt(g.Minute), g.OwnGoal, g.FreeKick, g.Penalty, g.CreatedAt).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build insert goal query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "insert goal")
	}
	return nil
}

func (r *MatchRepository) DeleteGoal(ctx context.Context, matchID, goalID string) error {
	query, args, err := qb.DeleteFrom("goals").
		Where(qb.Eq("id", goalID), qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build delete goal query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "delete goal")
	}
	return nil
}

func (r *MatchRepository) UpsertPresence(ctx context.Context, p match.Presence) error {
	query, args, err := qb.InsertInto("presences").
		Columns("match_id", "player_id", "present").
		Values(p.MatchID, p.PlayerID, p.Present).
		Suffix("ON CONFLICT (match_id, player_id) DO UPDATE SET present = EXCLUDED.present").
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build upsert presence query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "upsert presence")
	}
	return nil
}

// goalsByMatchIDs loads goals in creation order and resolves the player join
// in Go, same pattern as the roster read.
func (r *MatchRepository) goalsByMatchIDs(ctx context.Context, matchIDs []string) (map[string][]match.Goal, error) {
	if len(matchIDs) == 0 {
		return map[string][]match.Goal{}, nil
	}

	query, args, err := qb.Select(goalColumns...).
		From("goals").
		Where(qb.In("match_id", toAnySlice(matchIDs))).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select goals query")
	}

	var rows []goalTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select goals")
	}

	playerIDs := make([]string, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if !row.PlayerID.Valid {
			continue
		}
		if _, ok := seen[row.PlayerID.String]; ok {
			continue
		}
		seen[row.PlayerID.String] = struct{}{}
		playerIDs = append(playerIDs, row.PlayerID.String)
	}

	players, err := selectPlayersByIDs(ctx, r.db, playerIDs)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]match.Goal, len(matchIDs))
	for _, row := range rows {
		g := row.toDomain()
		if g.PlayerID != nil {
			if p, ok := players[*g.PlayerID]; ok {
				joined := p.toDomain()
				g.Player = &joined
			}
		}
		out[row.MatchID] = append(out[row.MatchID], g)
	}
	return out, nil
}

func (r *MatchRepository) presentCounts(ctx context.Context, matchIDs []string) (map[string]int, error) {
	query, args, err := qb.Select("match_id", "COUNT(*) AS present_count").
		From("presences").
		Where(qb.In("match_id", toAnySlice(matchIDs)), qb.Eq("present", true)).
		GroupBy("match_id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select presence counts query")
	}

	var rows []presentCountRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select presence counts")
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.MatchID] = row.Count
	}
	return out, nil
}
