package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/playperu/bingohall/internal/bingo"
)

// SQLite is a bingo.Store on a migrated libSQL database.
type SQLite struct {
	db *sql.DB
}

var _ bingo.Store = (*SQLite)(nil)

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

const gameColumns = `id, name, status, round, drawn_numbers, started_at, finished_at, created_at`

const boardColumns = `id, game_id, round, numbers, visibility_offset, winner, won_at, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// timeLayout has a fixed-width fraction so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanGame(row rowScanner) (*bingo.Game, error) {
	var (
		g                     bingo.Game
		status, drawnJSON     string
		createdAt             string
		startedAt, finishedAt sql.NullString
	)
	if err := row.Scan(&g.ID, &g.Name, &status, &g.Round, &drawnJSON, &startedAt, &finishedAt, &createdAt); err != nil {
		return nil, err
	}
	g.Status = bingo.Status(status)

	var drawn []int
	if err := json.Unmarshal([]byte(drawnJSON), &drawn); err != nil {
		return nil, fmt.Errorf("decoding drawn numbers of game %s: %w", g.ID, err)
	}
	g.Draws = bingo.NewDrawSequence(drawn)

	var err error
	if g.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if g.StartedAt, err = parseNullTime(startedAt); err != nil {
		return nil, err
	}
	if g.FinishedAt, err = parseNullTime(finishedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

func scanBoard(row rowScanner) (*bingo.Board, error) {
	var (
		b                      bingo.Board
		numbersJSON, createdAt string
		winner                 int
		wonAt                  sql.NullString
	)
	if err := row.Scan(&b.ID, &b.GameID, &b.Round, &numbersJSON, &b.Offset, &winner, &wonAt, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(numbersJSON), &b.Numbers); err != nil {
		return nil, fmt.Errorf("decoding numbers of board %s: %w", b.ID, err)
	}
	b.Winner = winner == 1

	var err error
	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if b.WonAt, err = parseNullTime(wonAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *SQLite) CreateGame(ctx context.Context, g *bingo.Game) error {
	drawn, err := json.Marshal(g.Draws.Numbers())
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO games (`+gameColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, g.ID, g.Name, string(g.Status), g.Round, string(drawn),
		nullTime(g.StartedAt), nullTime(g.FinishedAt), formatTime(g.CreatedAt))
	return err
}

func (s *SQLite) GetGame(ctx context.Context, id string) (*bingo.Game, error) {
	g, err := scanGame(s.db.QueryRowContext(ctx, `
		SELECT `+gameColumns+` FROM games WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, bingo.ErrNotFound
	}
	return g, err
}

func (s *SQLite) ListGames(ctx context.Context) ([]*bingo.Game, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+gameColumns+` FROM games ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []*bingo.Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (s *SQLite) ActiveGame(ctx context.Context) (*bingo.Game, error) {
	g, err := scanGame(s.db.QueryRowContext(ctx, `
		SELECT `+gameColumns+` FROM games
		WHERE status = ?
		ORDER BY started_at DESC
		LIMIT 1
	`, string(bingo.StatusStarted)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, bingo.ErrNoActiveGame
	}
	return g, err
}

func (s *SQLite) SaveGame(ctx context.Context, g *bingo.Game) error {
	drawn, err := json.Marshal(g.Draws.Numbers())
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE games
		SET name = ?, status = ?, round = ?, drawn_numbers = ?, started_at = ?, finished_at = ?
		WHERE id = ?
	`, g.Name, string(g.Status), g.Round, string(drawn),
		nullTime(g.StartedAt), nullTime(g.FinishedAt), g.ID)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return bingo.ErrNotFound
	}
	return nil
}

func (s *SQLite) CreateBoard(ctx context.Context, b *bingo.Board) error {
	numbers, err := json.Marshal(b.Numbers)
	if err != nil {
		return err
	}
	winner := 0
	if b.Winner {
		winner = 1
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO boards (`+boardColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.GameID, b.Round, string(numbers), b.Offset, winner,
		nullTime(b.WonAt), formatTime(b.CreatedAt))
	return err
}

func (s *SQLite) GetBoard(ctx context.Context, id string) (*bingo.Board, error) {
	b, err := scanBoard(s.db.QueryRowContext(ctx, `
		SELECT `+boardColumns+` FROM boards WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, bingo.ErrUnknownBoard
	}
	return b, err
}

func (s *SQLite) MarkWinner(ctx context.Context, boardID string, at time.Time) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var winner int
	err = tx.QueryRowContext(ctx, `SELECT winner FROM boards WHERE id = ?`, boardID).Scan(&winner)
	if errors.Is(err, sql.ErrNoRows) {
		return bingo.ErrUnknownBoard
	}
	if err != nil {
		return err
	}
	if winner == 1 {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE boards SET winner = 1, won_at = ? WHERE id = ?
	`, formatTime(at), boardID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLite) ListWinners(ctx context.Context, gameID string, round int) ([]*bingo.Board, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+boardColumns+` FROM boards
		WHERE game_id = ? AND round = ? AND winner = 1
		ORDER BY won_at
	`, gameID, round)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []*bingo.Board{}
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}
