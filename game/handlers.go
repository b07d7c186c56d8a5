package game

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/AnkitNITA23/SketchVerse/domain"
)

const (
	ErrUnknownStr           = "unknown-error"
	ErrUnauthenticatedStr   = "unauthenticated"
	ErrInvalidRoomCodeStr   = "invalid-room-code"
	ErrInvalidNameStr       = "invalid-name"
	ErrInvalidRoomConfigStr = "invalid-room-config"
	ErrRoomNotFoundStr      = "room-not-found"
	ErrRoomFullStr          = "room-full"
)

const (
	minTotalRounds = 1
	maxTotalRounds = 10
	minTurnSeconds = 30
	maxTurnSeconds = 180
	minMaxPlayers  = 2
	maxMaxPlayers  = 10
)

var roomCodePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

type LeaderboardProvider interface {
	TopScores(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

type Handler struct {
	lobby       Lobby
	wordsGen    RandomWordsGenerator
	hints       HintProvider
	results     ResultSaver
	leaderboard LeaderboardProvider
	upgrader    websocket.Upgrader
}

func NewHandler(lobby Lobby, wordsGen RandomWordsGenerator, hints HintProvider, results ResultSaver, leaderboard LeaderboardProvider, allowedOrigins []string) *Handler {
	return &Handler{
		lobby:       lobby,
		wordsGen:    wordsGen,
		hints:       hints,
		results:     results,
		leaderboard: leaderboard,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowedOrigins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, allowed := range allowedOrigins {
			if strings.EqualFold(origin, allowed) {
				return true
			}
		}
		return false
	}
}

func (h *Handler) RegisterRoutes(router gin.IRouter, requireIdentity gin.HandlerFunc) {
	router.GET("/room/create", requireIdentity, h.CreateRoomHandler)
	router.GET("/room/join/:code", requireIdentity, h.JoinRoomHandler)
	router.GET("/rooms", h.ListRoomsHandler)
	router.GET("/leaderboard", h.LeaderboardHandler)
}

func (h *Handler) playerProfile(ctx *gin.Context) (name, avatar string, ok bool) {
	name = strings.TrimSpace(ctx.Query("name"))
	if name == "" {
		name = GenerateUsername()
	}
	if len(name) > maxPlayerNameLength {
		return "", "", false
	}
	avatar = ctx.Query("avatar")
	if avatar == "" {
		avatar = RandomAvatar()
	}
	return name, avatar, true
}

// roomConfig reads the optional room overrides from the query string.
// Absent values fall back to the defaults, out-of-bounds values reject
// the request.
func roomConfig(ctx *gin.Context) (maxPlayers, totalRounds int, turnDuration time.Duration, ok bool) {
	maxPlayers, ok = boundedIntQuery(ctx, "maxPlayers", DefaultMaxPlayers, minMaxPlayers, maxMaxPlayers)
	if !ok {
		return 0, 0, 0, false
	}
	totalRounds, ok = boundedIntQuery(ctx, "rounds", DefaultTotalRounds, minTotalRounds, maxTotalRounds)
	if !ok {
		return 0, 0, 0, false
	}
	turnSeconds, ok := boundedIntQuery(ctx, "turnSeconds", int(DefaultTurnDuration.Seconds()), minTurnSeconds, maxTurnSeconds)
	if !ok {
		return 0, 0, 0, false
	}
	return maxPlayers, totalRounds, time.Duration(turnSeconds) * time.Second, true
}

func boundedIntQuery(ctx *gin.Context, key string, fallback, min, max int) (int, bool) {
	raw := ctx.Query(key)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < min || value > max {
		return 0, false
	}
	return value, true
}

// CreateRoomHandler upgrades to a websocket and spins up a fresh room
// with the caller as host. The room code arrives in the first snapshot
// packet.
func (h *Handler) CreateRoomHandler(ctx *gin.Context) {
	id := ctx.GetString("id")
	if id == "" {
		log.Error().
			Str("ip", ctx.ClientIP()).
			Str("user_agent", ctx.Request.UserAgent()).
			Msg("Unexpected error, id not found. What is the middleware doing?")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": ErrUnknownStr})
		return
	}

	name, avatar, ok := h.playerProfile(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidNameStr})
		return
	}

	maxPlayers, totalRounds, turnDuration, ok := roomConfig(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRoomConfigStr})
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("ip", ctx.ClientIP()).Msg("Websocket upgrade failed")
		return
	}

	player := NewPlayer(id, name, avatar, NewWebsocketConnection(conn))
	room := NewRoom(player, maxPlayers, totalRounds, turnDuration, h.wordsGen, h.hints, h.results)

	h.lobby.RequestAddAndRunRoom(ctx.Request.Context(), room)

	go player.ReadPump()
	go player.WritePump()
}

// JoinRoomHandler upgrades first, so join failures surface as a
// websocket close code instead of an HTTP status.
func (h *Handler) JoinRoomHandler(ctx *gin.Context) {
	id := ctx.GetString("id")
	if id == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrUnauthenticatedStr})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(ctx.Param("code")))
	if !roomCodePattern.MatchString(code) {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidRoomCodeStr})
		return
	}

	name, avatar, ok := h.playerProfile(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ErrInvalidNameStr})
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("ip", ctx.ClientIP()).Msg("Websocket upgrade failed")
		return
	}
	socket := NewWebsocketConnection(conn)

	player := NewPlayer(id, name, avatar, socket)
	jreq := newRoomJoinRequest(code, player)
	h.lobby.ForwardPlayerJoinRequestToRoom(ctx.Request.Context(), jreq)

	select {
	case err := <-jreq.errChan:
		if err != nil {
			socket.Close(joinErrorCode(err))
			return
		}
	case <-ctx.Request.Context().Done():
		socket.Close(ErrUnknownStr)
		return
	}

	go player.ReadPump()
	go player.WritePump()
}

func joinErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		return ErrRoomNotFoundStr
	case errors.Is(err, domain.ErrRoomFull):
		return ErrRoomFullStr
	default:
		return ErrUnknownStr
	}
}

type roomListEntry struct {
	RoomCode     string `json:"roomCode"`
	PlayersCount int    `json:"playersCount"`
	MaxPlayers   int    `json:"maxPlayers"`
	Started      bool   `json:"started"`
}

func (h *Handler) ListRoomsHandler(ctx *gin.Context) {
	descriptions := h.lobby.GetPublicGames(ctx.Request.Context())
	entries := make([]roomListEntry, 0, len(descriptions))
	for _, desc := range descriptions {
		entries = append(entries, roomListEntry{
			RoomCode:     desc.id,
			PlayersCount: desc.playersCount,
			MaxPlayers:   desc.maxPlayers,
			Started:      desc.started,
		})
	}
	ctx.JSON(http.StatusOK, gin.H{"rooms": entries})
}

func (h *Handler) LeaderboardHandler(ctx *gin.Context) {
	if h.leaderboard == nil {
		ctx.JSON(http.StatusOK, gin.H{"leaderboard": []domain.LeaderboardEntry{}})
		return
	}

	entries, err := h.leaderboard.TopScores(ctx.Request.Context(), 10)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load leaderboard")
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": ErrUnknownStr})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
