package endpoint

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/promptkit/node"
)

// Catalog lists every node with its input schema.
func Catalog(catalog *node.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		RespondOK(c, catalog.Descriptors())
	}
}

// ModelSource lists the models one backend offers.
type ModelSource struct {
	Provider string
	List     func(ctx context.Context) []string
}

// Models reports the model list of every source, keyed by provider.
func Models(sources ...ModelSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		out := make(map[string][]string, len(sources))
		for _, s := range sources {
			out[s.Provider] = s.List(c.Request.Context())
		}
		RespondOK(c, out)
	}
}

// SingleChat runs the single chat node.
func SingleChat(n *node.SingleChat) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := node.DefaultChatParams()
		if !bindJSON(c, &params) {
			return
		}
		res := n.Run(c.Request.Context(), params)
		RespondNode(c, res, res.Err)
	}
}

// MultiChat runs one turn of the multi chat node.
func MultiChat(n *node.MultiChat) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := node.DefaultMultiChatParams()
		if !bindJSON(c, &params) {
			return
		}
		res := n.Run(c.Request.Context(), params)
		RespondNode(c, res, res.Err)
	}
}

// ResetConversation clears the multi chat conversation.
func ResetConversation(n *node.MultiChat) gin.HandlerFunc {
	return func(c *gin.Context) {
		n.Reset()
		RespondOK(c, gin.H{"session_id": n.Session().ID(), "messages": 0})
	}
}

// PromptExtractor runs the prompt extractor node.
func PromptExtractor(n *node.PromptExtractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := node.DefaultExtractorParams()
		if !bindJSON(c, &params) {
			return
		}
		res := n.Run(c.Request.Context(), params)
		RespondNode(c, res, res.Err)
	}
}
