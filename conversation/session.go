// Package conversation holds the multi-turn dialogue state owned by a chat
// node instance.
package conversation

import (
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/promptkit/llm"
)

// Separator is the line written after every rendered message.
var Separator = strings.Repeat("-", 40)

// Session manages the message log of one conversation. The log holds at
// most one system message, always first, followed by alternating user and
// assistant turns. A failed call leaves a trailing user message that the
// next turn extends.
//
// Sessions are safe for concurrent use by multiple goroutines.
type Session struct {
	id       string
	messages []llm.Message
	mu       sync.RWMutex
}

// NewSession creates an empty session with a unique ID.
func NewSession() *Session {
	return &Session{
		id:       uuid.New().String(),
		messages: make([]llm.Message, 0),
	}
}

// ID returns the unique identifier for this session.
func (s *Session) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// Reset clears the log. Calling it on an empty session is a no-op.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = make([]llm.Message, 0)
}

// AppendUser adds prompt as a user message. On an empty log a non-empty
// systemMessage is written first; once the log has content systemMessage
// is ignored.
func (s *Session) AppendUser(systemMessage, prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.messages) == 0 && systemMessage != "" {
		s.messages = append(s.messages, llm.Message{Role: llm.RoleSystem, Content: systemMessage})
	}
	s.messages = append(s.messages, llm.Message{Role: llm.RoleUser, Content: prompt})
}

// CompleteTurn records the outcome of the call made with Messages. Only a
// successful call appends, as an assistant message.
func (s *Session) CompleteTurn(text string, err error) {
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, llm.Message{Role: llm.RoleAssistant, Content: text})
}

// Messages returns a copy of the log in backend order.
func (s *Session) Messages() []llm.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.messages)
}

// Len returns the number of messages in the log.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Render yields "role: content" followed by Separator for every message.
// The sequence snapshots the log when iteration starts and can be ranged
// over any number of times.
func (s *Session) Render() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, m := range s.Messages() {
			if !yield(string(m.Role) + ": " + m.Content) {
				return
			}
			if !yield(Separator) {
				return
			}
		}
	}
}

// Transcript joins the rendered lines with newlines.
func (s *Session) Transcript() string {
	return strings.Join(slices.Collect(s.Render()), "\n")
}
