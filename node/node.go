// Package node implements the workflow nodes a host invokes: single-turn
// chat, multi-turn chat and the image prompt extractor.
//
// Nodes never fail out of band. Every problem, from a missing credential
// to a transport timeout, comes back as "Error: ..." text in the node's
// primary output, with the typed error kept alongside for hosts that want
// it.
package node

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/promptkit/logger"
	"github.com/kbukum/promptkit/observability"
)

// Node class names as registered with workflow hosts.
const (
	ClassSingleChat      = "MoonshotSingleChatNode"
	ClassMultiChat       = "MoonshotMultiChatNode"
	ClassPromptExtractor = "OllamaPromptExtractor"
)

// Host categories.
const (
	CategoryChat        = "🌙DW/moonshotChat"
	CategoryPromptUtils = "🌙DW/prompt_utils"
)

// Descriptor is the metadata a host needs to render a node.
type Descriptor struct {
	ClassName   string      `json:"class_name"`
	DisplayName string      `json:"display_name"`
	Category    string      `json:"category"`
	Inputs      InputSchema `json:"inputs"`
	Outputs     []string    `json:"outputs"`
}

// Node is implemented by every node type.
type Node interface {
	Describe() Descriptor
}

// Catalog lists the nodes a process exposes, in registration order.
type Catalog struct {
	nodes []Node
}

// NewCatalog creates a catalog of nodes.
func NewCatalog(nodes ...Node) *Catalog {
	return &Catalog{nodes: nodes}
}

// Descriptors returns every node's descriptor.
func (c *Catalog) Descriptors() []Descriptor {
	out := make([]Descriptor, len(c.nodes))
	for i, n := range c.nodes {
		out[i] = n.Describe()
	}
	return out
}

// Lookup returns the node registered under className.
func (c *Catalog) Lookup(className string) (Node, bool) {
	for _, n := range c.nodes {
		if n.Describe().ClassName == className {
			return n, true
		}
	}
	return nil, false
}

// Option configures a node.
type Option func(*options)

type options struct {
	log *logger.Logger
}

// WithLogger sets the node's logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

func buildOptions(class string, opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.GetGlobalLogger()
	}
	o.log = o.log.WithComponent("node").WithFields(logger.Fields(logger.FieldNode, class))
	return o
}

// run is one traced, logged node invocation.
type run struct {
	ctx   context.Context
	span  trace.Span
	log   *logger.Logger
	start time.Time
}

func startRun(ctx context.Context, class string, log *logger.Logger) *run {
	ctx, span := observability.StartSpan(ctx, observability.SpanNode)
	observability.SetSpanAttribute(ctx, observability.AttrNode, class)
	return &run{ctx: ctx, span: span, log: log.WithContext(ctx), start: time.Now()}
}

// finish logs at debug on success and error on failure, then ends the span.
func (r *run) finish(err error, fields map[string]interface{}) {
	defer r.span.End()
	fields = logger.MergeWithDuration(fields, time.Since(r.start))
	if err != nil {
		observability.SetSpanError(r.ctx, err)
		r.log.WithError(err).Error("node run failed", fields)
		return
	}
	r.log.Debug("node run ok", fields)
}
