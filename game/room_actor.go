package game

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AnkitNITA23/SketchVerse/domain"
)

const maxPlayerNameLength = 24

// GameLoop is the room's actor. It owns all room state, every mutation
// goes through the channels consumed here.
func (r *room) GameLoop() {
	if len(r.seats) > 0 {
		host := r.seats[0]
		r.sendTo(host.player, MakePacketRoomSnapshot(r.snapshot(host.player.Id())))
		r.flushSendTasks()
	}

	for {
		select {
		case <-r.closed:
			return
		case envelope := <-r.inbox:
			r.handleClientPacket(envelope)
		case jreq := <-r.joinRequests:
			r.handleJoinRequest(jreq)
		case player := <-r.playerRemovalRequests:
			r.handleRemovePlayer(player, time.Now())
		case now := <-r.ticks:
			r.handleTick(now)
		case <-r.pingPlayers:
			r.handlePingPlayers()
		case hr := <-r.hintResults:
			r.handleHintResult(hr)
		}

		r.flushSendTasks()

		if r.finished {
			r.lobby.RemoveRoom(r.id)
			r.rejectPendingJoins()
			return
		}
	}
}

// rejectPendingJoins keeps answering join requests between the moment
// the loop finishes and the moment the lobby closes the room, so no
// joining handler is left blocked on its errChan.
func (r *room) rejectPendingJoins() {
	for {
		select {
		case jreq := <-r.joinRequests:
			jreq.errChan <- domain.ErrRoomNotFound
		case <-r.closed:
			return
		}
	}
}

func (r *room) handleClientPacket(envelope ClientPacketEnvelope) {
	from, _ := r.seatOf(envelope.from.Id())
	if from == nil || from.player != envelope.from {
		return
	}

	switch envelope.clientPacket.Type {
	case PACKET_START_GAME:
		r.handleStartGame(from, envelope.at)
	case PACKET_GUESS:
		r.handleGuess(from, envelope.clientPacket.Message, envelope.at)
	case PACKET_DRAW:
		if envelope.clientPacket.Point != nil {
			r.handleDraw(from, *envelope.clientPacket.Point)
		}
	case PACKET_CLEAR_CANVAS:
		r.handleDraw(from, DrawingPoint{Type: DRAW_CLEAR})
	case PACKET_PROFILE_UPDATE:
		r.handleProfileUpdate(from, envelope.clientPacket.Name, envelope.clientPacket.Avatar)
	case PACKET_REQUEST_HINT:
		r.handleHintRequest(from)
	}
}

func (r *room) handleJoinRequest(jreq roomJoinRequest) {
	if r.status == STATUS_ENDED {
		jreq.errChan <- domain.ErrRoomNotFound
		return
	}

	// Rejoin with the same identity replaces the stale connection and
	// keeps the seat, score included.
	if existing, _ := r.seatOf(jreq.player.Id()); existing != nil {
		old := existing.player
		existing.player = jreq.player
		existing.name = jreq.player.Name()
		existing.avatar = jreq.player.Avatar()
		jreq.player.SetRoom(r)
		jreq.errChan <- nil
		old.CancelAndRelease()
		r.sendTo(jreq.player, MakePacketRoomSnapshot(r.snapshot(jreq.player.Id())))
		return
	}

	if len(r.seats) >= r.maxPlayers {
		jreq.errChan <- domain.ErrRoomFull
		return
	}

	newSeat := &seat{
		player: jreq.player,
		name:   jreq.player.Name(),
		avatar: jreq.player.Avatar(),
		isHost: len(r.seats) == 0,
	}
	r.seats = append(r.seats, newSeat)
	jreq.player.SetRoom(r)
	jreq.errChan <- nil

	r.broadcastExcept(jreq.player.Id(), MakePacketPlayerJoined(r.playerState(newSeat)))
	r.sendTo(jreq.player, MakePacketRoomSnapshot(r.snapshot(jreq.player.Id())))
	r.lobby.RequestUpdateDescription(r.Description())
}

func (r *room) handleRemovePlayer(p Player, at time.Time) {
	removed, idx := r.seatOf(p.Id())
	if removed == nil || removed.player != p {
		// Stale handle from before a rejoin.
		p.CancelAndRelease()
		return
	}

	r.seats = append(r.seats[:idx], r.seats[idx+1:]...)
	delete(r.correctGuessers, p.Id())
	p.CancelAndRelease()

	if len(r.seats) == 0 {
		r.finished = true
		return
	}

	newHostId := ""
	if removed.isHost {
		// Host succession follows join order.
		r.seats[0].isHost = true
		newHostId = r.seats[0].player.Id()
	}

	r.broadcast(MakePacketPlayerLeft(p.Id(), removed.name, newHostId))
	r.lobby.RequestUpdateDescription(r.Description())

	if r.status != STATUS_PLAYING {
		return
	}
	if len(r.seats) < 2 {
		r.endGame(at)
		return
	}
	if r.currentDrawerId == p.Id() {
		r.advanceTurn(at)
		return
	}
	if r.allGuessed() {
		r.advanceTurn(at)
	}
}

func (r *room) handleTick(now time.Time) {
	if r.status == STATUS_PLAYING && now.After(r.turnEndsAt) {
		r.advanceTurn(now)
	}
}

func (r *room) handlePingPlayers() {
	for _, s := range r.seats {
		r.pingSendTasks = append(r.pingSendTasks, pingSendTask{to: s.player})
	}
}

func (r *room) handleStartGame(from *seat, at time.Time) {
	if !from.isHost || r.status != STATUS_WAITING || len(r.seats) < 2 {
		return
	}

	r.status = STATUS_PLAYING
	r.round = 1
	r.broadcast(MakePacketGameStarted())
	r.startTurn(0, at)
	r.lobby.RequestUpdateDescription(r.Description())
}

func (r *room) handleGuess(from *seat, text string, at time.Time) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if len(text) > maxMessageLength {
		cut := maxMessageLength
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	if r.status != STATUS_PLAYING || r.currentWord == "" {
		msg := r.appendMessage(Message{
			Kind:       MESSAGE_GUESS,
			AuthorId:   from.player.Id(),
			AuthorName: from.name,
			Text:       text,
			SentAt:     at.UnixMilli(),
		})
		r.broadcast(MakePacketMessage(msg))
		return
	}

	// The drawer knows the word, nothing it types leaves the server.
	if from.player.Id() == r.currentDrawerId {
		return
	}

	if !strings.EqualFold(text, r.currentWord) {
		msg := r.appendMessage(Message{
			Kind:       MESSAGE_GUESS,
			AuthorId:   from.player.Id(),
			AuthorName: from.name,
			Text:       text,
			SentAt:     at.UnixMilli(),
		})
		r.broadcast(MakePacketMessage(msg))
		return
	}

	if _, already := r.correctGuessers[from.player.Id()]; already {
		return
	}
	r.correctGuessers[from.player.Id()] = struct{}{}

	from.score += guessAward(r.turnEndsAt.Sub(at), r.turnDuration)

	drawerScore := 0
	if drawer, _ := r.seatOf(r.currentDrawerId); drawer != nil {
		drawer.score += drawerPointsPerGuess
		drawerScore = drawer.score
	}

	announcement := r.appendMessage(Message{
		Kind:       MESSAGE_CORRECT,
		AuthorId:   from.player.Id(),
		AuthorName: from.name,
		Text:       fmt.Sprintf("%s guessed the word!", from.name),
		SentAt:     at.UnixMilli(),
	})
	r.broadcast(MakePacketMessage(announcement))
	r.broadcast(MakePacketScoreUpdate(from.player.Id(), from.score, r.currentDrawerId, drawerScore))

	if r.allGuessed() {
		r.advanceTurn(at)
	}
}

func (r *room) handleDraw(from *seat, point DrawingPoint) {
	if r.status != STATUS_PLAYING || from.player.Id() != r.currentDrawerId {
		return
	}
	if !validDrawingType(point.Type) {
		return
	}
	r.appendDrawingPoint(point)
	r.broadcast(MakePacketDrawEvent(point))
}

func (r *room) handleProfileUpdate(from *seat, name, avatar string) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxPlayerNameLength {
		return
	}
	from.name = name
	if avatar != "" {
		from.avatar = avatar
	}
	r.broadcast(MakePacketProfileUpdated(from.player.Id(), from.name, from.avatar))
}

func (r *room) handleHintRequest(from *seat) {
	if r.hints == nil || r.status != STATUS_PLAYING || from.player.Id() == r.currentDrawerId {
		return
	}

	guesses := r.recentGuesses(5)
	description := fmt.Sprintf("A drawing of a %d-letter word, %d strokes on the canvas so far",
		len(r.currentWord), len(r.drawing))
	turnStartedAt := r.turnStartedAt

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		hint := r.hints.Analyze(ctx, description, guesses)
		select {
		case r.hintResults <- hintResult{hint: hint, turnStartedAt: turnStartedAt}:
		case <-r.closed:
		}
	}()
}

// Hints land in the shared chat log, everyone sees them. A result from
// a turn that has already ended is dropped.
func (r *room) handleHintResult(hr hintResult) {
	if r.status != STATUS_PLAYING || !hr.turnStartedAt.Equal(r.turnStartedAt) {
		return
	}
	msg := r.appendMessage(Message{
		Kind:       MESSAGE_HINT,
		AuthorName: "SketchBot",
		Text:       hr.hint,
		SentAt:     time.Now().UnixMilli(),
	})
	r.broadcast(MakePacketMessage(msg))
}
