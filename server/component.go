package server

import (
	"context"
	"sync/atomic"

	"github.com/kbukum/promptkit/component"
	"github.com/kbukum/promptkit/observability"
)

const componentName = "http-server"

var (
	_ component.Component         = (*Component)(nil)
	_ observability.HealthChecker = (*Component)(nil)
)

// Component adapts Server to the component lifecycle.
type Component struct {
	server  *Server
	started atomic.Bool
}

// NewComponent returns a lifecycle component backed by s.
func NewComponent(s *Server) *Component {
	return &Component{server: s}
}

func (c *Component) Name() string { return componentName }

func (c *Component) Start(ctx context.Context) error {
	if err := c.server.Start(ctx); err != nil {
		return err
	}
	c.started.Store(true)
	return nil
}

func (c *Component) Stop(ctx context.Context) error {
	c.started.Store(false)
	return c.server.Stop(ctx)
}

// CheckHealth reports the server up once it is listening.
func (c *Component) CheckHealth(context.Context) observability.Health {
	if !c.started.Load() {
		return observability.Health{Name: componentName, Status: observability.HealthStatusDown, Message: "not listening"}
	}
	return observability.Health{
		Name:    componentName,
		Status:  observability.HealthStatusUp,
		Details: map[string]string{"addr": c.server.Addr()},
	}
}
