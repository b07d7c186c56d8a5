package game

import (
	"context"
	"encoding/json"
	"time"

	"github.com/AnkitNITA23/SketchVerse/domain"
)

type GameStatus string

const (
	STATUS_WAITING GameStatus = "waiting"
	STATUS_PLAYING GameStatus = "playing"
	STATUS_ENDED   GameStatus = "ended"
)

// seat is a player's slot in the room. The slice order is join order,
// which drives both drawer rotation and host succession.
type seat struct {
	player Player
	name   string
	avatar string
	score  int
	isHost bool
}

type room struct {
	id     string
	status GameStatus
	lobby  Lobby

	maxPlayers   int
	totalRounds  int
	turnDuration time.Duration

	round           int
	currentWord     string
	currentDrawerId string
	turnStartedAt   time.Time
	turnEndsAt      time.Time

	seats           []*seat
	correctGuessers map[string]struct{}
	messages        []Message
	drawing         []DrawingPoint
	nextMessageId   int64
	finished        bool

	wordsGen RandomWordsGenerator
	hints    HintProvider
	results  ResultSaver

	inbox                 chan ClientPacketEnvelope
	joinRequests          chan roomJoinRequest
	playerRemovalRequests chan Player
	ticks                 chan time.Time
	pingPlayers           chan struct{}
	hintResults           chan hintResult
	closed                chan struct{}

	dataSendTasks []dataSendTask
	pingSendTasks []pingSendTask
}

func NewRoom(host Player, maxPlayers, totalRounds int, turnDuration time.Duration, wordsGen RandomWordsGenerator, hints HintProvider, results ResultSaver) *room {
	r := &room{
		status:                STATUS_WAITING,
		maxPlayers:            maxPlayers,
		totalRounds:           totalRounds,
		turnDuration:          turnDuration,
		seats:                 make([]*seat, 0, maxPlayers),
		correctGuessers:       make(map[string]struct{}),
		messages:              make([]Message, 0, 64),
		drawing:               make([]DrawingPoint, 0, 256),
		wordsGen:              wordsGen,
		hints:                 hints,
		results:               results,
		inbox:                 make(chan ClientPacketEnvelope, 1024),
		joinRequests:          make(chan roomJoinRequest, 16),
		playerRemovalRequests: make(chan Player, 64),
		ticks:                 make(chan time.Time, 24),
		pingPlayers:           make(chan struct{}, 4),
		hintResults:           make(chan hintResult, 16),
		closed:                make(chan struct{}),
		dataSendTasks:         make([]dataSendTask, 0, 64),
	}
	if host != nil {
		r.seats = append(r.seats, &seat{
			player: host,
			name:   host.Name(),
			avatar: host.Avatar(),
			isHost: true,
		})
		host.SetRoom(r)
	}
	return r
}

func (r *room) SetId(id string) {
	r.id = id
}

func (r *room) SetParentLobby(l Lobby) {
	r.lobby = l
}

func (r *room) Description() roomDescription {
	return roomDescription{
		id:           r.id,
		playersCount: len(r.seats),
		maxPlayers:   r.maxPlayers,
		started:      r.status != STATUS_WAITING,
	}
}

func (r *room) Send(ctx context.Context, e ClientPacketEnvelope) {
	select {
	case r.inbox <- e:
	case <-r.closed:
	case <-ctx.Done():
	}
}

func (r *room) RemoveMe(ctx context.Context, p Player) {
	select {
	case r.playerRemovalRequests <- p:
	case <-r.closed:
	case <-ctx.Done():
	}
}

func (r *room) RequestJoin(jreq roomJoinRequest) {
	select {
	case r.joinRequests <- jreq:
	case <-r.closed:
		jreq.errChan <- domain.ErrRoomNotFound
	}
}

func (r *room) Tick(now time.Time) {
	select {
	case r.ticks <- now:
	default:
	}
}

func (r *room) PingPlayers() {
	select {
	case r.pingPlayers <- struct{}{}:
	default:
	}
}

func (r *room) CloseAndRelease() {
	select {
	case <-r.closed:
		return
	default:
	}
	close(r.closed)
	for _, s := range r.seats {
		s.player.CancelAndRelease()
	}
}

func (r *room) seatOf(playerId string) (*seat, int) {
	for i, s := range r.seats {
		if s.player.Id() == playerId {
			return s, i
		}
	}
	return nil, -1
}

func (r *room) playerState(s *seat) PlayerState {
	_, guessed := r.correctGuessers[s.player.Id()]
	return PlayerState{
		Id:      s.player.Id(),
		Name:    s.name,
		Avatar:  s.avatar,
		Score:   s.score,
		IsHost:  s.isHost,
		Guessed: guessed,
	}
}

func (r *room) playerStates() []PlayerState {
	states := make([]PlayerState, 0, len(r.seats))
	for _, s := range r.seats {
		states = append(states, r.playerState(s))
	}
	return states
}

// snapshot builds the full room state for one recipient. The current
// word is only included when the recipient already knows it, as the
// drawer or as a guesser who solved it this turn.
func (r *room) snapshot(forPlayerId string) RoomSnapshotData {
	data := RoomSnapshotData{
		RoomCode:        r.id,
		Status:          r.status,
		Round:           r.round,
		TotalRounds:     r.totalRounds,
		CurrentDrawerId: r.currentDrawerId,
		Players:         r.playerStates(),
		Messages:        append([]Message{}, r.messages...),
		Drawing:         append([]DrawingPoint{}, r.drawing...),
	}
	if r.status == STATUS_PLAYING {
		data.TurnEndsAt = r.turnEndsAt.UnixMilli()
		_, solved := r.correctGuessers[forPlayerId]
		if forPlayerId == r.currentDrawerId || solved {
			data.CurrentWord = r.currentWord
		}
	}
	return data
}

func (r *room) sendTo(p Player, packet *ServerPacket) {
	r.dataSendTasks = append(r.dataSendTasks, dataSendTask{to: p, packet: packet})
}

func (r *room) broadcast(packet *ServerPacket) {
	for _, s := range r.seats {
		r.sendTo(s.player, packet)
	}
}

func (r *room) broadcastExcept(exceptId string, packet *ServerPacket) {
	for _, s := range r.seats {
		if s.player.Id() == exceptId {
			continue
		}
		r.sendTo(s.player, packet)
	}
}

func (r *room) flushSendTasks() {
	now := time.Now().UnixMilli()
	for _, task := range r.dataSendTasks {
		task.packet.ServerTimestamp = now
		data, err := json.Marshal(task.packet)
		if err != nil {
			continue
		}
		task.to.Send(data)
	}
	r.dataSendTasks = r.dataSendTasks[:0]

	for _, task := range r.pingSendTasks {
		task.to.Ping()
	}
	r.pingSendTasks = r.pingSendTasks[:0]
}
