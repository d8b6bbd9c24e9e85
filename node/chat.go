package node

import (
	"context"
	"slices"
	"sync"

	"github.com/kbukum/promptkit/conversation"
	"github.com/kbukum/promptkit/errors"
	"github.com/kbukum/promptkit/llm"
	"github.com/kbukum/promptkit/logger"
	"github.com/kbukum/promptkit/validation"
)

// ChatParams are the inputs shared by the chat nodes.
type ChatParams struct {
	Prompt        string  `json:"prompt"`
	Model         string  `json:"model" validate:"required"`
	Temperature   float64 `json:"temperature" validate:"gte=0,lte=2"`
	MaxTokens     int     `json:"max_tokens" validate:"gte=1,lte=128000"`
	SystemMessage string  `json:"system_message,omitempty"`
}

// DefaultChatParams returns ChatParams holding the schema defaults. Decode
// host input over it so absent fields keep their defaults.
func DefaultChatParams() ChatParams {
	return ChatParams{Temperature: DefaultChatTemperature, MaxTokens: DefaultMaxTokens}
}

func (p ChatParams) request(messages []llm.Message) llm.GenerationRequest {
	return llm.GenerationRequest{
		Model:       p.Model,
		Messages:    messages,
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
	}
}

// ChatResult is the single chat output.
type ChatResult struct {
	// Response is the model text or the "Error: ..." rendering of Err.
	Response string `json:"response"`
	Err      error  `json:"-"`
}

// SingleChat answers one prompt with no memory between invocations.
type SingleChat struct {
	provider llm.Provider
	models   []string
	opts     options
}

// NewSingleChat creates a single chat node offering models.
func NewSingleChat(p llm.Provider, models []string, opts ...Option) *SingleChat {
	return &SingleChat{provider: p, models: slices.Clone(models), opts: buildOptions(ClassSingleChat, opts)}
}

// Describe returns the node metadata.
func (n *SingleChat) Describe() Descriptor {
	return Descriptor{
		ClassName:   ClassSingleChat,
		DisplayName: "🌙Moonshot Single Chat",
		Category:    CategoryChat,
		Inputs:      ChatInputs(n.models),
		Outputs:     []string{"response"},
	}
}

// Run sends [system?, user] and returns the answer.
func (n *SingleChat) Run(ctx context.Context, params ChatParams) ChatResult {
	r := startRun(ctx, ClassSingleChat, n.opts.log)
	fields := logger.Fields(logger.FieldModel, params.Model)

	if err := precheck(n.provider, n.models, params); err != nil {
		r.finish(err, fields)
		return ChatResult{Response: errors.Text(err), Err: err}
	}

	var messages []llm.Message
	if params.SystemMessage != "" {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: params.SystemMessage})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: params.Prompt})

	res := llm.Generate(r.ctx, n.provider, params.request(messages))
	r.finish(res.Err, fields)
	return ChatResult{Response: res.Output(), Err: res.Err}
}

// precheck runs the checks that need no network call. An empty models
// list accepts any model and leaves the check to the backend.
func precheck(p llm.Provider, models []string, params ChatParams) error {
	if p == nil {
		return errors.Configuration("no provider configured")
	}
	if err := llm.CheckCredential(p); err != nil {
		return err
	}
	if err := validation.Validate(params); err != nil {
		return err
	}
	if len(models) > 0 && !slices.Contains(models, params.Model) {
		return errors.UnknownModel(params.Model)
	}
	return nil
}

// MultiChatParams extends ChatParams with the reset switch.
type MultiChatParams struct {
	ChatParams
	ResetConversation bool `json:"reset_conversation"`
}

// DefaultMultiChatParams returns MultiChatParams holding the schema defaults.
func DefaultMultiChatParams() MultiChatParams {
	return MultiChatParams{ChatParams: DefaultChatParams()}
}

// MultiChatResult is the multi chat output.
type MultiChatResult struct {
	// ChatHistory is the rendered transcript or the "Error: ..." rendering
	// of Err.
	ChatHistory string `json:"chat_history"`
	SessionID   string `json:"session_id"`
	Messages    int    `json:"messages"`
	Err         error  `json:"-"`
}

// MultiChat keeps one conversation across invocations. Runs are
// serialised so concurrent callers see whole turns.
type MultiChat struct {
	provider llm.Provider
	models   []string
	opts     options

	mu      sync.Mutex
	session *conversation.Session
}

// NewMultiChat creates a multi chat node with an empty conversation.
func NewMultiChat(p llm.Provider, models []string, opts ...Option) *MultiChat {
	return &MultiChat{
		provider: p,
		models:   slices.Clone(models),
		opts:     buildOptions(ClassMultiChat, opts),
		session:  conversation.NewSession(),
	}
}

// Inputs is ChatInputs plus reset_conversation.
func (n *MultiChat) Inputs() InputSchema {
	return ChatInputs(n.models).With(Input{Name: "reset_conversation", Kind: KindBoolean, Default: false})
}

// Describe returns the node metadata.
func (n *MultiChat) Describe() Descriptor {
	return Descriptor{
		ClassName:   ClassMultiChat,
		DisplayName: "🌙Moonshot Multi Chat",
		Category:    CategoryChat,
		Inputs:      n.Inputs(),
		Outputs:     []string{"chat_history"},
	}
}

// Session returns the conversation owned by the node.
func (n *MultiChat) Session() *conversation.Session { return n.session }

// Reset clears the conversation.
func (n *MultiChat) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.session.Reset()
}

// Run applies one turn: optional reset, the user message, one call, and on
// success the assistant message. The reset is applied first, even when the
// turn then fails. A configuration or input error appends nothing.
func (n *MultiChat) Run(ctx context.Context, params MultiChatParams) MultiChatResult {
	n.mu.Lock()
	defer n.mu.Unlock()

	r := startRun(ctx, ClassMultiChat, n.opts.log)
	fields := logger.Fields(
		logger.FieldModel, params.Model,
		logger.FieldSessionID, n.session.ID(),
		"reset", params.ResetConversation,
	)

	if params.ResetConversation {
		n.session.Reset()
	}
	if err := precheck(n.provider, n.models, params.ChatParams); err != nil {
		r.finish(err, fields)
		return n.result(errors.Text(err), err)
	}

	n.session.AppendUser(params.SystemMessage, params.Prompt)

	res := llm.Generate(r.ctx, n.provider, params.request(n.session.Messages()))
	n.session.CompleteTurn(res.Text, res.Err)

	fields[logger.FieldMessages] = n.session.Len()
	r.finish(res.Err, fields)
	if res.Err != nil {
		return n.result(res.Output(), res.Err)
	}
	return n.result(n.session.Transcript(), nil)
}

func (n *MultiChat) result(history string, err error) MultiChatResult {
	return MultiChatResult{
		ChatHistory: history,
		SessionID:   n.session.ID(),
		Messages:    n.session.Len(),
		Err:         err,
	}
}
