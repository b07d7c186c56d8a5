package config

import "os"

var Envs = struct {
	PORT            string
	ALLOWED_ORIGINS string
	JWT_KEY         string
	POSTGRES_URL    string
	HINT_URL        string
	LOG_LEVEL       string
	GIN_MODE        string
}{
	PORT:            os.Getenv("PORT"),
	ALLOWED_ORIGINS: os.Getenv("ALLOWED_ORIGINS"),
	JWT_KEY:         os.Getenv("JWT_KEY"),
	POSTGRES_URL:    os.Getenv("POSTGRES_URL"),
	HINT_URL:        os.Getenv("HINT_URL"),
	LOG_LEVEL:       os.Getenv("LOG_LEVEL"),
	GIN_MODE:        os.Getenv("GIN_MODE"),
}
