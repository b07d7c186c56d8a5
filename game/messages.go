package game

// Message kinds.
const (
	MESSAGE_GUESS   = "guess"
	MESSAGE_SYSTEM  = "system"
	MESSAGE_HINT    = "hint"
	MESSAGE_CORRECT = "correct"
)

// Message is a single chat entry. Correct guesses show up as a
// correct-kind announcement, never as the guessed word itself.
type Message struct {
	Id         int64  `json:"id"`
	Kind       string `json:"kind"`
	AuthorId   string `json:"authorId,omitempty"`
	AuthorName string `json:"authorName,omitempty"`
	Text       string `json:"text"`
	SentAt     int64  `json:"sentAt"`
}

const maxStoredMessages = 128
const maxMessageLength = 200

func (r *room) appendMessage(msg Message) Message {
	r.nextMessageId++
	msg.Id = r.nextMessageId
	r.messages = append(r.messages, msg)
	if len(r.messages) > maxStoredMessages {
		r.messages = r.messages[len(r.messages)-maxStoredMessages:]
	}
	return msg
}

// recentGuesses walks the chat log backwards collecting the last few
// plain guesses sent during the current turn, whoever sent them.
func (r *room) recentGuesses(limit int) []string {
	guesses := make([]string, 0, limit)
	for i := len(r.messages) - 1; i >= 0 && len(guesses) < limit; i-- {
		msg := r.messages[i]
		if msg.SentAt < r.turnStartedAt.UnixMilli() {
			break
		}
		if msg.Kind == MESSAGE_GUESS {
			guesses = append(guesses, msg.Text)
		}
	}
	for i, j := 0, len(guesses)-1; i < j; i, j = i+1, j-1 {
		guesses[i], guesses[j] = guesses[j], guesses[i]
	}
	return guesses
}
