package identity

import (
	"time"

	"github.com/google/uuid"
)

// Service issues and verifies anonymous player identities. There are no
// accounts: an identity is a random uuid wrapped in a signed token, and a
// returning client presenting the same token keeps the same id.
type Service struct {
	tokenManager TokenManager
}

func NewService(tokenManager TokenManager) *Service {
	return &Service{tokenManager: tokenManager}
}

func (s *Service) Issue(now time.Time) (id string, token string, err error) {
	id = uuid.NewString()
	token, err = s.tokenManager.Generate(id, now)
	if err != nil {
		return "", "", err
	}
	return id, token, nil
}

func (s *Service) Verify(token string) (string, error) {
	return s.tokenManager.Verify(token)
}
