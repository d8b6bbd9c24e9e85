package provider_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/kbukum/promptkit/provider"
)

type testProvider struct {
	name      string
	available bool
}

func (p *testProvider) Name() string                         { return p.name }
func (p *testProvider) IsAvailable(ctx context.Context) bool { return p.available }

func TestRegistryRegisterAndCreate(t *testing.T) {
	reg := provider.NewRegistry[*testProvider]()
	reg.RegisterFactory("ollama", func(cfg map[string]any) (*testProvider, error) {
		return &testProvider{name: "ollama", available: cfg["up"] == true}, nil
	})

	p, err := reg.Create("ollama", map[string]any{"up": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "ollama" || !p.IsAvailable(context.Background()) {
		t.Errorf("unexpected provider %+v", p)
	}
}

func TestRegistryCreateUnregistered(t *testing.T) {
	reg := provider.NewRegistry[*testProvider]()
	if _, err := reg.Create("missing", nil); err == nil {
		t.Fatal("expected error for unregistered factory")
	}
}

func TestRegistryCreateFactoryError(t *testing.T) {
	reg := provider.NewRegistry[*testProvider]()
	reg.RegisterFactory("broken", func(map[string]any) (*testProvider, error) {
		return nil, fmt.Errorf("no api key")
	})
	if _, err := reg.Create("broken", nil); err == nil {
		t.Fatal("expected factory error to propagate")
	}
}

func TestRegistryList(t *testing.T) {
	reg := provider.NewRegistry[*testProvider]()
	for _, name := range []string{"ollama", "moonshot"} {
		reg.RegisterFactory(name, func(map[string]any) (*testProvider, error) { return nil, nil })
	}
	names := reg.List()
	if len(names) != 2 || names[0] != "moonshot" || names[1] != "ollama" {
		t.Errorf("expected sorted [moonshot ollama], got %v", names)
	}
}

func TestRegistryGetSet(t *testing.T) {
	reg := provider.NewRegistry[*testProvider]()
	if _, ok := reg.Get("moonshot"); ok {
		t.Fatal("expected empty registry")
	}
	reg.Set("moonshot", &testProvider{name: "moonshot"})
	p, ok := reg.Get("moonshot")
	if !ok || p.Name() != "moonshot" {
		t.Errorf("expected cached moonshot, got %v, %v", p, ok)
	}
	if got := reg.Instances(); len(got) != 1 || got[0] != "moonshot" {
		t.Errorf("expected instance names [moonshot], got %v", got)
	}
}
