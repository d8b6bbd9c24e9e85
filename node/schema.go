package node

import (
	"math"
	"slices"
)

// InputKind is the widget type a host renders for an input.
type InputKind string

// Input kinds understood by workflow hosts.
const (
	KindString  InputKind = "STRING"
	KindInt     InputKind = "INT"
	KindFloat   InputKind = "FLOAT"
	KindBoolean InputKind = "BOOLEAN"
	KindChoice  InputKind = "CHOICE"
)

// Input describes one named node parameter.
type Input struct {
	Name      string    `json:"name"`
	Kind      InputKind `json:"type"`
	Required  bool      `json:"required"`
	Multiline bool      `json:"multiline,omitempty"`
	Default   any       `json:"default,omitempty"`
	Min       any       `json:"min,omitempty"`
	Max       any       `json:"max,omitempty"`
	Step      any       `json:"step,omitempty"`
	Choices   []string  `json:"choices,omitempty"`
}

// InputSchema is the ordered parameter list of a node.
type InputSchema struct {
	Inputs []Input `json:"inputs"`
}

// With returns a copy of s extended with inputs.
func (s InputSchema) With(inputs ...Input) InputSchema {
	return InputSchema{Inputs: append(slices.Clone(s.Inputs), inputs...)}
}

// Lookup returns the input called name.
func (s InputSchema) Lookup(name string) (Input, bool) {
	for _, in := range s.Inputs {
		if in.Name == name {
			return in, true
		}
	}
	return Input{}, false
}

// Names returns the input names in order.
func (s InputSchema) Names() []string {
	out := make([]string, len(s.Inputs))
	for i, in := range s.Inputs {
		out[i] = in.Name
	}
	return out
}

// Chat parameter defaults and bounds.
const (
	DefaultChatTemperature = 0.3
	DefaultMaxTokens       = 1000
	MaxChatTokens          = 128000
)

// Prompt extractor defaults and bounds.
const (
	DefaultExtractorTemperature = 0.7
	MaxExtractorTokens          = 32768
	NoExtraModel                = "none"
)

// NoModelsFound is offered as the only model choice when discovery fails.
const NoModelsFound = "No models found"

// ChatInputs is the schema shared by the chat nodes.
func ChatInputs(models []string) InputSchema {
	return InputSchema{Inputs: []Input{
		{Name: "prompt", Kind: KindString, Required: true, Multiline: true},
		{Name: "model", Kind: KindChoice, Required: true, Choices: slices.Clone(models)},
		{Name: "temperature", Kind: KindFloat, Required: true, Default: DefaultChatTemperature, Min: 0.0, Max: 2.0, Step: 0.1},
		{Name: "max_tokens", Kind: KindInt, Required: true, Default: DefaultMaxTokens, Min: 1, Max: MaxChatTokens},
		{Name: "system_message", Kind: KindString, Multiline: true},
	}}
}

// ExtractorInputs is the prompt extractor schema. An empty model list is
// replaced by NoModelsFound.
func ExtractorInputs(models, promptTypes []string) InputSchema {
	if len(models) == 0 {
		models = []string{NoModelsFound}
	}
	return InputSchema{Inputs: []Input{
		{Name: "model", Kind: KindChoice, Required: true, Choices: slices.Clone(models)},
		{Name: "extra_model", Kind: KindString, Required: true, Default: NoExtraModel},
		{Name: "theme", Kind: KindString, Required: true, Multiline: true},
		{Name: "max_tokens", Kind: KindInt, Required: true, Default: DefaultMaxTokens, Min: 1, Max: MaxExtractorTokens},
		{Name: "temperature", Kind: KindFloat, Required: true, Default: DefaultExtractorTemperature, Min: 0.0, Max: 2.0, Step: 0.1},
		{Name: "prompt_type", Kind: KindChoice, Required: true, Choices: slices.Clone(promptTypes)},
		{Name: "seed", Kind: KindInt, Required: true, Default: -1, Min: -1, Max: uint64(math.MaxUint64)},
	}}
}
