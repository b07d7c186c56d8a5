package game

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type playerActor struct {
	id     string
	name   string
	avatar string

	rateLimiter *rate.Limiter
	socket      WebsocketConnection
	room        Room

	inbox    chan []byte
	pingChan chan struct{}

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func NewPlayer(id, name, avatar string, socket WebsocketConnection) *playerActor {
	ctx, cancel := context.WithCancel(context.Background())
	return &playerActor{
		id:          id,
		name:        name,
		avatar:      avatar,
		rateLimiter: rate.NewLimiter(10, 30),
		socket:      socket,
		inbox:       make(chan []byte, 256),
		pingChan:    make(chan struct{}, 1),
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (p *playerActor) Id() string     { return p.id }
func (p *playerActor) Name() string   { return p.name }
func (p *playerActor) Avatar() string { return p.avatar }

func (p *playerActor) SetRoom(r Room) {
	p.room = r
}

// Send queues an outgoing frame. A client too slow to drain its buffer
// gets frames dropped rather than stalling the room actor.
func (p *playerActor) Send(data []byte) error {
	if p.ctx.Err() != nil {
		return p.ctx.Err()
	}
	select {
	case p.inbox <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (p *playerActor) Ping() error {
	if p.ctx.Err() != nil {
		return p.ctx.Err()
	}
	select {
	case p.pingChan <- struct{}{}:
	default:
	}
	return nil
}

func (p *playerActor) CancelAndRelease() {
	p.closeOnce.Do(func() {
		p.cancel()
		p.socket.Close("")
	})
}

func (p *playerActor) ReadPump() {
	room := p.room

	for {
		data, err := p.socket.Read()
		if err != nil {
			break
		}

		if !p.rateLimiter.Allow() {
			continue
		}

		var packet ClientPacket
		if err := json.Unmarshal(data, &packet); err != nil {
			continue
		}

		room.Send(p.ctx, ClientPacketEnvelope{
			clientPacket: packet,
			from:         p,
			at:           time.Now(),
		})
	}

	room.RemoveMe(context.Background(), p)
}

func (p *playerActor) WritePump() {
loop:
	for {
		select {
		case <-p.ctx.Done():
			break loop
		case data := <-p.inbox:
			if err := p.socket.Write(data); err != nil {
				break loop
			}
		case <-p.pingChan:
			if err := p.socket.Ping(); err != nil {
				break loop
			}
		}
	}
	p.CancelAndRelease()
}
