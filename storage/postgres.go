package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/AnkitNITA23/SketchVerse/domain"
)

type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(ctx context.Context, connString string) (*PostgresRepo, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	return &PostgresRepo{pool: pool}, nil
}

func (pgr *PostgresRepo) Close() {
	pgr.pool.Close()
}

// SaveGameResult records a finished game and its final standings in one
// transaction.
func (pgr *PostgresRepo) SaveGameResult(ctx context.Context, result domain.GameResult) error {
	tx, err := pgr.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		"INSERT INTO games(room_code, rounds_played, finished_at) VALUES($1, $2, $3) RETURNING id",
		result.RoomCode, result.RoundsPlayed, result.FinishedAt)

	var gameId int64
	if err := row.Scan(&gameId); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}

	for _, p := range result.Players {
		_, err := tx.Exec(ctx,
			"INSERT INTO game_players(game_id, player_id, name, score, winner) VALUES($1, $2, $3, $4, $5)",
			gameId, p.PlayerId, p.Name, p.Score, p.Winner)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}
	return nil
}

// TopScores returns the all-time best single-game scores, one row per
// player name.
func (pgr *PostgresRepo) TopScores(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := pgr.pool.Query(ctx,
		`SELECT name, MAX(score) AS best, COUNT(*) FILTER (WHERE winner) AS wins
		 FROM game_players
		 GROUP BY name
		 ORDER BY best DESC
		 LIMIT $1`, limit)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
	}
	defer rows.Close()

	entries := make([]domain.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.Name, &e.Score, &e.Wins); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
		}
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, rows.Err())
	}

	return entries, nil
}

// Generate implements the game.RandomWordsGenerator interface.
// It fetches 'count' random words from the words table.
// Returns an empty slice if the table is empty or the query fails,
// letting the caller fall back to the built-in list.
func (pgr *PostgresRepo) Generate(count int) []string {
	ctx := context.Background()

	rows, err := pgr.pool.Query(ctx, "SELECT word FROM words ORDER BY RANDOM() LIMIT $1", count)
	if err != nil {
		log.Warn().Err(err).Msg("word query failed, using built-in list")
		return []string{}
	}
	defer rows.Close()

	words := make([]string, 0, count)
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			continue
		}
		words = append(words, word)
	}

	return words
}
