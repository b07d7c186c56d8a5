package game

import (
	"context"
	"time"

	"github.com/AnkitNITA23/SketchVerse/domain"
)

type WebsocketConnection interface {
	Close(errCode string)
	Write(data []byte) error
	Read() ([]byte, error)
	Ping() error
}

type Player interface {
	Id() string
	Name() string
	Avatar() string
	Send(data []byte) error
	Ping() error
	SetRoom(r Room)
	CancelAndRelease()
}

type Room interface {
	Send(ctx context.Context, e ClientPacketEnvelope)
	RemoveMe(ctx context.Context, p Player)
	RequestJoin(jreq roomJoinRequest)
	Tick(now time.Time)
	PingPlayers()
	GameLoop()
	CloseAndRelease()
	Description() roomDescription
	SetParentLobby(l Lobby)
	SetId(id string)
}

type Lobby interface {
	RequestAddAndRunRoom(ctx context.Context, r Room)
	ForwardPlayerJoinRequestToRoom(ctx context.Context, jreq roomJoinRequest)
	RequestUpdateDescription(desc roomDescription)
	RemoveRoom(roomId string)
	GetPublicGames(ctx context.Context) []roomDescription
}

type UniqueIdGenerator interface {
	Generate() string
	Dispose(id string)
}

type PeriodicTickerChannelCreator interface {
	Create(duration time.Duration) <-chan time.Time
}

type RandomWordsGenerator interface {
	Generate(count int) []string
}

type HintProvider interface {
	Analyze(ctx context.Context, drawingDescription string, recentGuesses []string) string
}

type ResultSaver interface {
	SaveGameResult(ctx context.Context, result domain.GameResult) error
}

type ClientPacketEnvelope struct {
	clientPacket ClientPacket
	from         Player
	at           time.Time
}

type roomJoinRequest struct {
	roomId  string
	player  Player
	errChan chan error
}

func newRoomJoinRequest(roomId string, player Player) roomJoinRequest {
	return roomJoinRequest{roomId: roomId, player: player, errChan: make(chan error, 1)}
}

type roomDescription struct {
	id           string
	playersCount int
	maxPlayers   int
	started      bool
}

type dataSendTask struct {
	to     Player
	packet *ServerPacket
}

type pingSendTask struct {
	to Player
}

type hintResult struct {
	hint          string
	turnStartedAt time.Time
}
