package game

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/AnkitNITA23/SketchVerse/domain"
	"github.com/rs/zerolog/log"
)

const (
	DefaultMaxPlayers   = 5
	DefaultTotalRounds  = 5
	DefaultTurnDuration = 90 * time.Second

	baseGuessPoints      = 50
	maxTimeBonus         = 50
	drawerPointsPerGuess = 25
)

// guessAward scales the time bonus linearly over the turn, a guess in
// the first instant is worth baseGuessPoints+maxTimeBonus, a guess at
// the deadline is worth baseGuessPoints.
func guessAward(remaining, duration time.Duration) int {
	if duration <= 0 {
		return baseGuessPoints
	}
	if remaining < 0 {
		remaining = 0
	}
	if remaining > duration {
		remaining = duration
	}
	bonus := int(math.Floor(remaining.Seconds() / duration.Seconds() * maxTimeBonus))
	return baseGuessPoints + bonus
}

func (r *room) allGuessed() bool {
	guessers := 0
	for _, s := range r.seats {
		if s.player.Id() == r.currentDrawerId {
			continue
		}
		if _, ok := r.correctGuessers[s.player.Id()]; !ok {
			return false
		}
		guessers++
	}
	return guessers > 0
}

func (r *room) drawerIndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, s := range r.seats {
		if s.player.Id() == id {
			return i
		}
	}
	return -1
}

// advanceTurn rotates the drawer in join order. Wrapping past the last
// seat closes the round, running out of rounds ends the game. A drawer
// that already left resolves to index -1, so the next drawer is the
// first seat and the round is not touched.
func (r *room) advanceTurn(at time.Time) {
	if len(r.seats) == 0 {
		r.finished = true
		return
	}

	i := r.drawerIndexOf(r.currentDrawerId)
	next := (i + 1) % len(r.seats)
	if next <= i {
		r.round++
	}
	if r.round > r.totalRounds {
		r.endGame(at)
		return
	}
	r.startTurn(next, at)
}

func (r *room) startTurn(drawerIdx int, at time.Time) {
	drawer := r.seats[drawerIdx]

	r.correctGuessers = make(map[string]struct{})
	r.drawing = r.drawing[:0]

	word := ""
	if words := r.wordsGen.Generate(1); len(words) > 0 {
		word = words[0]
	}
	r.currentWord = word
	r.currentDrawerId = drawer.player.Id()
	r.turnStartedAt = at
	r.turnEndsAt = at.Add(r.turnDuration)

	r.broadcast(MakePacketTurnStarted(drawer.player.Id(), drawer.name, r.round, r.turnEndsAt, len(word)))
	r.sendTo(drawer.player, MakePacketYourTurn(word))

	// Clients wipe their canvas and see who picked up the pencil.
	r.broadcast(MakePacketDrawEvent(DrawingPoint{Type: DRAW_CLEAR}))
	announcement := r.appendMessage(Message{
		Kind:   MESSAGE_SYSTEM,
		Text:   fmt.Sprintf("%s is drawing now!", drawer.name),
		SentAt: at.UnixMilli(),
	})
	r.broadcast(MakePacketMessage(announcement))
}

// endGame leaves the final turn state (word, drawer, deadline) in
// place so late snapshots still describe the last turn played.
func (r *room) endGame(at time.Time) {
	r.status = STATUS_ENDED

	standings := r.playerStates()
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})
	winnerId := ""
	if len(standings) > 0 && standings[0].Score > 0 {
		winnerId = standings[0].Id
	}

	r.broadcast(MakePacketGameEnded(winnerId, standings))
	r.persistResult(at, standings)
	r.finished = true
}

func (r *room) persistResult(at time.Time, standings []PlayerState) {
	if r.results == nil || len(standings) == 0 {
		return
	}

	roundsPlayed := r.round
	if roundsPlayed > r.totalRounds {
		roundsPlayed = r.totalRounds
	}

	topScore := standings[0].Score
	players := make([]domain.PlayerResult, 0, len(standings))
	for _, state := range standings {
		players = append(players, domain.PlayerResult{
			PlayerId: state.Id,
			Name:     state.Name,
			Score:    state.Score,
			Winner:   topScore > 0 && state.Score == topScore,
		})
	}

	result := domain.GameResult{
		RoomCode:     r.id,
		RoundsPlayed: roundsPlayed,
		FinishedAt:   at,
		Players:      players,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := r.results.SaveGameResult(ctx, result); err != nil {
			log.Error().Err(err).Str("room", result.RoomCode).Msg("Failed to persist game result")
		}
	}()
}
