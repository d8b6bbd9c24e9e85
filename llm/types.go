package llm

import (
	"slices"

	"github.com/kbukum/promptkit/errors"
	"github.com/kbukum/promptkit/validation"
)

// Role identifies the author of a Message.
type Role string

// Message roles understood by every backend.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single chat message.
type Message struct {
	Role    Role   `json:"role" yaml:"role" validate:"oneof=system user assistant"`
	Content string `json:"content" yaml:"content"`
}

// GenerationRequest is the universal input for all providers. Either
// Messages or Prompt carries the input; providers pick the endpoint that
// matches.
type GenerationRequest struct {
	// Model is the backend model identifier.
	Model string `json:"model" validate:"required"`
	// Messages is the ordered conversation sent to chat endpoints.
	Messages []Message `json:"messages,omitempty" validate:"omitempty,dive"`
	// Prompt is a single raw prompt for completion endpoints.
	Prompt string `json:"prompt,omitempty"`
	// Temperature controls randomness, 0 to 2.
	Temperature float64 `json:"temperature" validate:"gte=0,lte=2"`
	// MaxTokens limits the response length.
	MaxTokens int `json:"max_tokens" validate:"gte=1"`
	// Seed makes sampling reproducible when the backend supports it.
	Seed *uint64 `json:"seed,omitempty"`
}

// Validate checks the request bounds and that some input is present.
func (r GenerationRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	if len(r.Messages) == 0 && r.Prompt == "" {
		return errors.InvalidInput("messages", "messages or prompt is required")
	}
	return nil
}

// Clone returns a deep copy so the caller's slice and seed are never shared
// with a provider.
func (r GenerationRequest) Clone() GenerationRequest {
	out := r
	out.Messages = slices.Clone(r.Messages)
	if r.Seed != nil {
		s := *r.Seed
		out.Seed = &s
	}
	return out
}

// HasMessages reports whether the request targets a chat endpoint.
func (r GenerationRequest) HasMessages() bool {
	return len(r.Messages) > 0
}
