package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/promptkit/auth"
	"github.com/kbukum/promptkit/node"
	"github.com/kbukum/promptkit/server/endpoint"
	"github.com/kbukum/promptkit/server/middleware"
)

// Routes is everything the HTTP surface exposes.
type Routes struct {
	Service string
	Version string
	Health  endpoint.HealthChecker

	Catalog   *node.Catalog
	Single    *node.SingleChat
	Multi     *node.MultiChat
	Extractor *node.PromptExtractor
	Models    []endpoint.ModelSource

	// Validator guards /v1 when set.
	Validator auth.TokenValidator
}

// RegisterRoutes mounts the system endpoints and the /v1 node API. Nil
// nodes are not mounted.
func (s *Server) RegisterRoutes(r Routes) {
	s.engine.GET("/health", endpoint.Health(r.Service, r.Version, r.Health))
	s.engine.GET("/version", endpoint.Version())
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	v1 := s.engine.Group("/v1")
	if r.Validator != nil {
		v1.Use(middleware.Auth(middleware.AuthConfig{Validator: r.Validator}))
	}
	if s.config.RateLimit > 0 {
		v1.Use(middleware.RateLimit(middleware.RateLimitConfig{RequestsPerMinute: s.config.RateLimit}))
	}

	if r.Catalog != nil {
		v1.GET("/nodes", endpoint.Catalog(r.Catalog))
	}
	v1.GET("/models", endpoint.Models(r.Models...))
	if r.Single != nil {
		v1.POST("/nodes/single-chat", endpoint.SingleChat(r.Single))
	}
	if r.Multi != nil {
		v1.POST("/nodes/multi-chat", endpoint.MultiChat(r.Multi))
		v1.DELETE("/nodes/multi-chat/session", endpoint.ResetConversation(r.Multi))
	}
	if r.Extractor != nil {
		v1.POST("/nodes/prompt-extractor", endpoint.PromptExtractor(r.Extractor))
	}

	for _, route := range s.engine.Routes() {
		s.log.Debug("Route registered", map[string]interface{}{
			"method": route.Method,
			"path":   route.Path,
		})
	}
}
