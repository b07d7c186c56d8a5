package game

import "time"

// Wire format: JSON text frames, one packet per frame. Server packets are
// a typed envelope; the ServerTimestamp is stamped when the frame is
// written, not when the packet is built.

type ServerPacket struct {
	Type            string `json:"type"`
	Data            any    `json:"data,omitempty"`
	ServerTimestamp int64  `json:"serverTimestamp,omitempty"`
}

type ClientPacket struct {
	Type    string        `json:"type"`
	Message string        `json:"message,omitempty"`
	Point   *DrawingPoint `json:"point,omitempty"`
	Name    string        `json:"name,omitempty"`
	Avatar  string        `json:"avatar,omitempty"`
}

// Client packet types.
const (
	PACKET_START_GAME     = "start_game"
	PACKET_GUESS          = "guess"
	PACKET_DRAW           = "draw"
	PACKET_CLEAR_CANVAS   = "clear_canvas"
	PACKET_PROFILE_UPDATE = "profile_update"
	PACKET_REQUEST_HINT   = "request_hint"
)

// Server packet types.
const (
	PACKET_ROOM_SNAPSHOT   = "room_snapshot"
	PACKET_PLAYER_JOINED   = "player_joined"
	PACKET_PLAYER_LEFT     = "player_left"
	PACKET_PROFILE_UPDATED = "profile_updated"
	PACKET_GAME_STARTED    = "game_started"
	PACKET_TURN_STARTED    = "turn_started"
	PACKET_YOUR_TURN       = "your_turn"
	PACKET_MESSAGE         = "message"
	PACKET_SCORE_UPDATE    = "score_update"
	PACKET_DRAW_EVENT      = "draw_event"
	PACKET_GAME_ENDED      = "game_ended"
)

type PlayerState struct {
	Id      string `json:"id"`
	Name    string `json:"name"`
	Avatar  string `json:"avatar"`
	Score   int    `json:"score"`
	IsHost  bool   `json:"isHost"`
	Guessed bool   `json:"guessed"`
}

type RoomSnapshotData struct {
	RoomCode        string         `json:"roomCode"`
	Status          GameStatus     `json:"status"`
	Round           int            `json:"round"`
	TotalRounds     int            `json:"totalRounds"`
	CurrentDrawerId string         `json:"currentDrawerId,omitempty"`
	TurnEndsAt      int64          `json:"turnEndsAt,omitempty"`
	CurrentWord     string         `json:"currentWord,omitempty"`
	Players         []PlayerState  `json:"players"`
	Messages        []Message      `json:"messages"`
	Drawing         []DrawingPoint `json:"drawing"`
}

type PlayerJoinedData struct {
	Player PlayerState `json:"player"`
}

type PlayerLeftData struct {
	PlayerId  string `json:"playerId"`
	Name      string `json:"name"`
	NewHostId string `json:"newHostId,omitempty"`
}

type ProfileUpdatedData struct {
	PlayerId string `json:"playerId"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

type TurnStartedData struct {
	DrawerId   string `json:"drawerId"`
	DrawerName string `json:"drawerName"`
	Round      int    `json:"round"`
	TurnEndsAt int64  `json:"turnEndsAt"`
	WordLength int    `json:"wordLength"`
}

type YourTurnData struct {
	Word string `json:"word"`
}

type ScoreUpdateData struct {
	PlayerId    string `json:"playerId"`
	Score       int    `json:"score"`
	DrawerId    string `json:"drawerId"`
	DrawerScore int    `json:"drawerScore"`
}

type GameEndedData struct {
	WinnerId  string        `json:"winnerId,omitempty"`
	Standings []PlayerState `json:"standings"`
}

func MakePacketRoomSnapshot(data RoomSnapshotData) *ServerPacket {
	return &ServerPacket{Type: PACKET_ROOM_SNAPSHOT, Data: data}
}

func MakePacketPlayerJoined(player PlayerState) *ServerPacket {
	return &ServerPacket{Type: PACKET_PLAYER_JOINED, Data: PlayerJoinedData{Player: player}}
}

func MakePacketPlayerLeft(playerId, name, newHostId string) *ServerPacket {
	return &ServerPacket{Type: PACKET_PLAYER_LEFT, Data: PlayerLeftData{PlayerId: playerId, Name: name, NewHostId: newHostId}}
}

func MakePacketProfileUpdated(playerId, name, avatar string) *ServerPacket {
	return &ServerPacket{Type: PACKET_PROFILE_UPDATED, Data: ProfileUpdatedData{PlayerId: playerId, Name: name, Avatar: avatar}}
}

func MakePacketGameStarted() *ServerPacket {
	return &ServerPacket{Type: PACKET_GAME_STARTED}
}

func MakePacketTurnStarted(drawerId, drawerName string, round int, turnEndsAt time.Time, wordLength int) *ServerPacket {
	return &ServerPacket{Type: PACKET_TURN_STARTED, Data: TurnStartedData{
		DrawerId:   drawerId,
		DrawerName: drawerName,
		Round:      round,
		TurnEndsAt: turnEndsAt.UnixMilli(),
		WordLength: wordLength,
	}}
}

func MakePacketYourTurn(word string) *ServerPacket {
	return &ServerPacket{Type: PACKET_YOUR_TURN, Data: YourTurnData{Word: word}}
}

func MakePacketMessage(msg Message) *ServerPacket {
	return &ServerPacket{Type: PACKET_MESSAGE, Data: msg}
}

func MakePacketScoreUpdate(playerId string, score int, drawerId string, drawerScore int) *ServerPacket {
	return &ServerPacket{Type: PACKET_SCORE_UPDATE, Data: ScoreUpdateData{
		PlayerId:    playerId,
		Score:       score,
		DrawerId:    drawerId,
		DrawerScore: drawerScore,
	}}
}

func MakePacketDrawEvent(point DrawingPoint) *ServerPacket {
	return &ServerPacket{Type: PACKET_DRAW_EVENT, Data: point}
}

func MakePacketGameEnded(winnerId string, standings []PlayerState) *ServerPacket {
	return &ServerPacket{Type: PACKET_GAME_ENDED, Data: GameEndedData{WinnerId: winnerId, Standings: standings}}
}
