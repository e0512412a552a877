// Package session holds the per-browser-session state the storefront UI
// needs between requests: the chat transcript and the shopping cart. Nothing
// here is persisted; sessions live in memory and expire after a TTL.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	OriginUser      = "user"
	OriginAssistant = "assistant"
)

const welcomeMessage = "Hi! I'm your LuxeStore AI assistant. How can I help you today?"

const agentRequestedMessage = "I've notified our support team. A live agent will be with you shortly. " +
	"Average wait time is 2-3 minutes. In the meantime, feel free to describe your issue and I'll pass it along!"

// ChatMessage is one entry in a session's transcript. Immutable once
// appended; ids increment per session starting at 1.
type ChatMessage struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Origin    string    `json:"origin"`
	Timestamp time.Time `json:"timestamp"`
}

type Session struct {
	ID string

	mu             sync.Mutex
	messages       []ChatMessage
	nextMessageID  int
	cart           *Cart
	agentRequested bool
	lastSeen       time.Time
}

func newSession() *Session {
	s := &Session{
		ID:            uuid.NewString(),
		nextMessageID: 1,
		cart:          NewCart(),
		lastSeen:      time.Now(),
	}
	// Seed the transcript with the assistant greeting, as the widget shows
	// before the first user message.
	s.appendLocked(OriginAssistant, welcomeMessage)
	return s
}

func (s *Session) appendLocked(origin, text string) ChatMessage {
	msg := ChatMessage{
		ID:        s.nextMessageID,
		Text:      text,
		Origin:    origin,
		Timestamp: time.Now(),
	}
	s.nextMessageID++
	s.messages = append(s.messages, msg)
	return msg
}

// Append adds a message to the transcript and returns it.
func (s *Session) Append(origin, text string) ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(origin, text)
}

// Messages returns a copy of the transcript in append order.
func (s *Session) Messages() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) Cart() *Cart {
	return s.cart
}

// RequestAgent marks the session as waiting for a live agent and appends the
// canned notice. Repeat requests return the notice again without duplicating
// it in the transcript; the second return reports whether this call was the
// first request.
func (s *Session) RequestAgent() (ChatMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.agentRequested {
		return ChatMessage{Text: agentRequestedMessage, Origin: OriginAssistant, Timestamp: time.Now()}, false
	}
	s.agentRequested = true
	return s.appendLocked(OriginAssistant, agentRequestedMessage), true
}

func (s *Session) AgentRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agentRequested
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) expired(ttl time.Duration, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) > ttl
}
