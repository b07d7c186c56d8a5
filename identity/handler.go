package identity

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/AnkitNITA23/SketchVerse/domain"
)

var (
	ErrMissingTokenStr         = "missing-token"
	ErrExpiredTokenStr         = "expired-token"
	ErrInvalidTokenStr         = "invalid-token"
	ErrUnknownStr              = "unknown-error"
	ErrTokenNotIssuedStr       = "token-not-issued"
	ErrInvalidRequestFormatStr = "bad-request-format"
)

type handler struct {
	service      *Service
	cookieMaxAge time.Duration
}

func NewHandler(service *Service, cookieMaxAge time.Duration) *handler {
	return &handler{service: service, cookieMaxAge: cookieMaxAge}
}

// CreateIdentityHandler hands out a fresh anonymous identity. An existing
// valid token is kept as is, so reloading the page never forks a player
// into two identities.
func (h *handler) CreateIdentityHandler(ctx *gin.Context) {
	if token, err := ctx.Cookie("token"); err == nil {
		if id, err := h.service.Verify(token); err == nil {
			ctx.JSON(http.StatusOK, gin.H{"id": id})
			return
		}
	}

	id, token, err := h.service.Issue(time.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to issue identity token")
		ctx.String(http.StatusInternalServerError, ErrTokenNotIssuedStr)
		return
	}

	ctx.SetSameSite(http.SameSiteNoneMode)
	ctx.SetCookie("token", token, int(h.cookieMaxAge.Seconds()), "/", "", true, true)
	ctx.JSON(http.StatusCreated, gin.H{"id": id})
}

// RequireIdentityMiddleware resolves the identity cookie and stores the
// player id under "id" for downstream handlers.
func (h *handler) RequireIdentityMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie("token")
		if err != nil {
			ctx.String(http.StatusUnauthorized, ErrMissingTokenStr)
			ctx.Abort()
			return
		}

		id, err := h.service.Verify(token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrExpiredToken):
				ctx.String(http.StatusUnauthorized, ErrExpiredTokenStr)
			case errors.Is(err, domain.ErrInvalidSigningAlg),
				errors.Is(err, domain.ErrInvalidTokenSignature),
				errors.Is(err, domain.ErrCorruptedToken):
				ctx.String(http.StatusUnauthorized, ErrInvalidTokenStr)
			default:
				log.Error().Err(err).Msg("unexpected token verification failure")
				ctx.String(http.StatusInternalServerError, ErrUnknownStr)
			}
			ctx.Abort()
			return
		}

		ctx.Set("id", id)
		ctx.Next()
	}
}
