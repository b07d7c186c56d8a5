package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AnkitNITA23/SketchVerse/domain"
)

func TestLobby(t *testing.T) {
	mockTickerCreator := &MockPeriodicTickerChannelCreator{}
	mockIdgenerator := &MockUniqueIdGenerator{}

	ticker := make(chan time.Time)
	pingTicker := make(chan time.Time)
	mockTickerCreator.On("Create", time.Second).Return(ticker)
	mockTickerCreator.On("Create", time.Second*30).Return(pingTicker)

	lobby := NewLobby(mockIdgenerator, mockTickerCreator)
	startedSignal := make(chan struct{})
	go lobby.LobbyActor(startedSignal)
	<-startedSignal

	// Ticks with no rooms around are harmless.
	ticker <- time.Now()
	pingTicker <- time.Now()

	room := &MockRoom{}
	ticked := make(chan time.Time, 1)
	pinged := make(chan struct{}, 1)
	closedChan := make(chan struct{})

	mockIdgenerator.On("Generate").Return("ROOM01").Once()
	room.On("SetParentLobby", lobby).Return().Once()
	room.On("SetId", "ROOM01").Return().Once()
	room.On("Description").Return(roomDescription{id: "ROOM01", playersCount: 1, maxPlayers: 5}).Once()
	room.On("GameLoop").Return()
	room.On("Tick", mock.Anything).Run(func(args mock.Arguments) {
		ticked <- args.Get(0).(time.Time)
	}).Return()
	room.On("PingPlayers").Run(func(mock.Arguments) {
		pinged <- struct{}{}
	}).Return()

	t.Run("add room", func(t *testing.T) {
		lobby.RequestAddAndRunRoom(context.Background(), room)

		assert.Eventually(t, func() bool {
			return len(lobby.GetPublicGames(context.Background())) == 1
		}, time.Second*5, time.Millisecond*10)

		descs := lobby.GetPublicGames(context.Background())
		require.Len(t, descs, 1)
		assert.Equal(t, "ROOM01", descs[0].id)
	})

	t.Run("ticks reach the room", func(t *testing.T) {
		tick := time.Now()
		ticker <- tick
		select {
		case got := <-ticked:
			assert.Equal(t, tick, got)
		case <-time.After(time.Second * 5):
			t.Fatal("room never ticked")
		}

		pingTicker <- time.Now()
		select {
		case <-pinged:
		case <-time.After(time.Second * 5):
			t.Fatal("room was never pinged")
		}
	})

	t.Run("description updates are published", func(t *testing.T) {
		lobby.RequestUpdateDescription(roomDescription{id: "ROOM01", playersCount: 3, maxPlayers: 5, started: true})

		assert.Eventually(t, func() bool {
			descs := lobby.GetPublicGames(context.Background())
			return len(descs) == 1 && descs[0].playersCount == 3 && descs[0].started
		}, time.Second*5, time.Millisecond*10)
	})

	t.Run("join request is forwarded to the room", func(t *testing.T) {
		jreq := newRoomJoinRequest("ROOM01", nil)
		forwarded := make(chan struct{})
		room.On("RequestJoin", jreq).Run(func(mock.Arguments) {
			close(forwarded)
		}).Return().Once()

		lobby.ForwardPlayerJoinRequestToRoom(context.Background(), jreq)
		select {
		case <-forwarded:
		case <-time.After(time.Second * 5):
			t.Fatal("join request never reached the room")
		}
	})

	t.Run("join request to an unknown room fails", func(t *testing.T) {
		jreq := newRoomJoinRequest("NOSUCH", nil)
		lobby.ForwardPlayerJoinRequestToRoom(context.Background(), jreq)

		select {
		case err := <-jreq.errChan:
			assert.ErrorIs(t, err, domain.ErrRoomNotFound)
		case <-time.After(time.Second * 5):
			t.Fatal("no error for unknown room")
		}
	})

	t.Run("remove room", func(t *testing.T) {
		room.On("CloseAndRelease").Run(func(mock.Arguments) {
			close(closedChan)
		}).Return().Once()
		mockIdgenerator.On("Dispose", "ROOM01").Return().Once()

		lobby.RemoveRoom("ROOM01")

		select {
		case <-closedChan:
		case <-time.After(time.Second * 5):
			t.Fatal("room was never closed")
		}
		assert.Empty(t, lobby.GetPublicGames(context.Background()))
	})

	room.AssertExpectations(t)
	mockIdgenerator.AssertExpectations(t)
	mockTickerCreator.AssertExpectations(t)
}
