package main

import (
	"context"
	"fmt"

	"github.com/kbukum/promptkit/llm/moonshot"
	"github.com/kbukum/promptkit/llm/ollama"
	"github.com/kbukum/promptkit/node"
)

// ModelsCmd lists the Moonshot models and the models the Ollama daemon has
// pulled.
type ModelsCmd struct {
	JSON bool `help:"Print as JSON"`
}

// Run executes the models command.
func (m *ModelsCmd) Run(cli *CLI) error {
	ctx := context.Background()
	app, err := cli.NewApp(ctx, true)
	if err != nil {
		return err
	}
	return app.RunTask(ctx, func(ctx context.Context) error {
		models := map[string][]string{
			moonshot.ProviderName: app.Cfg.Moonshot.Models,
			ollama.ProviderName:   node.DiscoverModels(ctx, app.Provider(ollama.ProviderName), app.Logger),
		}
		if m.JSON {
			return cli.printJSON(models)
		}
		out := cli.stdout()
		for _, name := range []string{moonshot.ProviderName, ollama.ProviderName} {
			fmt.Fprintf(out, "%s:\n", name)
			for _, model := range models[name] {
				fmt.Fprintf(out, "  %s\n", model)
			}
		}
		return nil
	})
}
