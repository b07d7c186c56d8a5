package domain

import "errors"

var (
	UnexpectedDatabaseError = errors.New("database-error")
	ErrRoomNotFound         = errors.New("room-not-found")
	ErrRoomFull             = errors.New("room-full")
	ErrGameNotFound         = errors.New("game-not-found")
)

var (
	UnexpectedTokenGenerationError   = errors.New("token-generation-error")
	UnexpectedTokenVerificationError = errors.New("token-verification-error")
	ErrInvalidSigningAlg             = errors.New("invalid-signing-alg")
	ErrExpiredToken                  = errors.New("expired-token")
	ErrInvalidTokenSignature         = errors.New("invalid-token-signature")
	ErrCorruptedToken                = errors.New("corrupted-token")
)
