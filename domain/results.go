package domain

import "time"

// PlayerResult is one player's final standing in a finished game.
type PlayerResult struct {
	PlayerId string
	Name     string
	Score    int
	Winner   bool
}

// GameResult is what gets persisted when a room reaches the ended state.
type GameResult struct {
	RoomCode     string
	RoundsPlayed int
	FinishedAt   time.Time
	Players      []PlayerResult
}

// LeaderboardEntry is a row of the global top-scores listing.
type LeaderboardEntry struct {
	Name  string
	Score int
	Wins  int
}
