package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/AnkitNITA23/SketchVerse/config"
	"github.com/AnkitNITA23/SketchVerse/crypto"
	"github.com/AnkitNITA23/SketchVerse/game"
	"github.com/AnkitNITA23/SketchVerse/hint"
	"github.com/AnkitNITA23/SketchVerse/identity"
	"github.com/AnkitNITA23/SketchVerse/logger"
	"github.com/AnkitNITA23/SketchVerse/migrations"
	"github.com/AnkitNITA23/SketchVerse/storage"
)

const tokenMaxAge = time.Hour * 24 * 30

func main() {
	logger.Setup(config.Envs.LOG_LEVEL)

	migrations.Migrate(config.Envs.POSTGRES_URL)

	repo, err := storage.NewPostgresRepo(context.Background(), config.Envs.POSTGRES_URL)
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't connect to postgres")
	}
	defer repo.Close()

	allowedOrigins := strings.Split(config.Envs.ALLOWED_ORIGINS, ",")
	for i := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(allowedOrigins[i])
	}

	jwtManager := crypto.NewJWTManager(config.Envs.JWT_KEY, tokenMaxAge)
	identityService := identity.NewService(jwtManager)
	identityHandler := identity.NewHandler(identityService, tokenMaxAge)

	lobby := game.NewLobby(game.NewIdgen(), game.TickerChannelCreator{})
	lobbyStarted := make(chan struct{})
	go lobby.LobbyActor(lobbyStarted)
	<-lobbyStarted

	var hints game.HintProvider
	if config.Envs.HINT_URL != "" {
		hints = hint.NewClient(config.Envs.HINT_URL)
	}

	gameHandler := game.NewHandler(
		lobby,
		game.NewFallbackWordsGenerator(repo),
		hints,
		repo,
		repo,
		allowedOrigins,
	)

	if config.Envs.GIN_MODE != "" {
		gin.SetMode(config.Envs.GIN_MODE)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     []string{"Content-Type", "Origin"},
	}))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/identity", identityHandler.CreateIdentityHandler)
	gameHandler.RegisterRoutes(r, identityHandler.RequireIdentityMiddleware())

	port := config.Envs.PORT
	if port == "" {
		port = "5000"
	}

	log.Info().Str("port", port).Msg("api listening")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Couldn't start server")
	}
}
