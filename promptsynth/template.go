// Package promptsynth turns a theme into positive and negative prompts for
// image-generation pipelines: it selects the instruction template for a
// domain tag and splits the model's raw answer into typed fields.
package promptsynth

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/kbukum/promptkit/errors"
)

// Tag names a target image model family.
type Tag string

// Supported domain tags.
const (
	TagSDXL   Tag = "sdxl"
	TagKolors Tag = "kolors"
	TagFlux   Tag = "flux"
)

var knownTags = []Tag{TagSDXL, TagKolors, TagFlux}

// Tags returns the supported tags in display order.
func Tags() []string {
	out := make([]string, len(knownTags))
	for i, t := range knownTags {
		out[i] = string(t)
	}
	return out
}

// Shape describes the fields a template's output is split into.
type Shape int

const (
	// SingleText yields one trimmed text field.
	SingleText Shape = iota
	// PositiveNegativePair yields a positive and a negative prompt.
	PositiveNegativePair
)

func (s Shape) String() string {
	switch s {
	case SingleText:
		return "single"
	case PositiveNegativePair:
		return "pair"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// UnmarshalYAML reads "single" or "pair".
func (s *Shape) UnmarshalYAML(node *yaml.Node) error {
	switch node.Value {
	case "single":
		*s = SingleText
	case "pair":
		*s = PositiveNegativePair
	default:
		return fmt.Errorf("line %d: unknown shape %q", node.Line, node.Value)
	}
	return nil
}

// Template is the instruction and output contract for one domain tag.
type Template struct {
	Tag Tag `yaml:"-"`
	// Instruction is sent ahead of the user turn. Opaque text.
	Instruction string `yaml:"instruction"`
	// Shape is the output shape.
	Shape Shape `yaml:"shape"`
	// FallbackNegative is used when the output carries no usable markers.
	FallbackNegative string `yaml:"fallback_negative"`
	// Markers reports whether the instruction asks for "Prompt:" and
	// "Negative Prompt:" sections.
	Markers bool `yaml:"markers"`
	// Subject names the target model in the user turn.
	Subject string `yaml:"subject"`
}

// UserPrompt composes the user turn for theme.
func (t Template) UserPrompt(theme string) string {
	return "根据以下主题生成" + t.Subject + "提示词：" + theme
}

// Compose renders the single completion prompt sent to a raw-prompt
// endpoint.
func (t Template) Compose(theme string) string {
	return t.Instruction + "\n\nHuman: " + t.UserPrompt(theme) + "\n\nAssistant:"
}

// Catalog is an immutable set of templates keyed by tag.
type Catalog struct {
	templates map[Tag]Template
}

type catalogFile struct {
	Templates map[Tag]Template `yaml:"templates"`
}

// ParseCatalog decodes a YAML template document. Every supported tag must
// be present and no other tag is accepted.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("promptsynth: decode templates: %w", err)
	}
	out := make(map[Tag]Template, len(file.Templates))
	for tag, tmpl := range file.Templates {
		if !slices.Contains(knownTags, tag) {
			return nil, fmt.Errorf("promptsynth: unsupported tag %q", tag)
		}
		if tmpl.Instruction == "" || tmpl.Subject == "" {
			return nil, fmt.Errorf("promptsynth: template %q needs instruction and subject", tag)
		}
		if tmpl.Markers && tmpl.Shape != PositiveNegativePair {
			return nil, fmt.Errorf("promptsynth: template %q: markers require the pair shape", tag)
		}
		tmpl.Tag = tag
		out[tag] = tmpl
	}
	for _, tag := range knownTags {
		if _, ok := out[tag]; !ok {
			return nil, fmt.Errorf("promptsynth: missing template %q", tag)
		}
	}
	return &Catalog{templates: out}, nil
}

// Select returns the template for tag.
func (c *Catalog) Select(tag string) (Template, error) {
	t, ok := c.templates[Tag(tag)]
	if !ok {
		return Template{}, errors.UnknownTag(tag)
	}
	return t, nil
}

//go:embed templates.yaml
var templatesYAML []byte

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return ParseCatalog(templatesYAML)
})

// DefaultCatalog returns the catalog built from the embedded templates.
func DefaultCatalog() *Catalog {
	c, err := defaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// Select returns the embedded template for tag. Unknown tags yield a
// configuration error.
func Select(tag string) (Template, error) {
	return DefaultCatalog().Select(tag)
}
