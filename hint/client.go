package hint

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// Returned without calling the service when there is nothing to
	// analyze yet.
	NoGuessesHint = "Make a few guesses first and then I can give you a hint!"
	// Returned on any failure. The caller never sees an error.
	FallbackHint = "Sorry, I couldn't think of a hint right now. Try guessing again!"
)

const requestTimeout = 10 * time.Second

type hintRequest struct {
	DrawingDescription string   `json:"drawingDescription"`
	RecentGuesses      []string `json:"recentGuesses"`
}

type hintResponse struct {
	Hint string `json:"hint"`
}

// Client talks to an external text-generation endpoint that turns recent
// guesses into a nudge toward the answer. The endpoint is opaque: its
// failures always degrade to FallbackHint.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) Analyze(ctx context.Context, drawingDescription string, recentGuesses []string) string {
	if len(recentGuesses) == 0 {
		return NoGuessesHint
	}

	body, err := json.Marshal(hintRequest{
		DrawingDescription: drawingDescription,
		RecentGuesses:      recentGuesses,
	})
	if err != nil {
		return FallbackHint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return FallbackHint
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("hint service unreachable")
		return FallbackHint
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn().Int("status", resp.StatusCode).Msg("hint service returned non-2xx")
		return FallbackHint
	}

	var parsed hintResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return FallbackHint
	}
	if strings.TrimSpace(parsed.Hint) == "" {
		return FallbackHint
	}

	return parsed.Hint
}
