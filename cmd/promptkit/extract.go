package main

import (
	"context"
	"fmt"

	"github.com/kbukum/promptkit/node"
	"github.com/kbukum/promptkit/seed"
)

// ExtractCmd asks an Ollama model for positive and negative image prompts.
type ExtractCmd struct {
	Theme       string    `arg:"" help:"Theme to write prompts for"`
	Model       string    `short:"m" help:"Ollama model (default: first discovered)"`
	ExtraModel  string    `help:"Model that overrides --model unless \"none\"" default:"none"`
	Type        string    `short:"t" help:"Prompt template" enum:"sdxl,kolors,flux" default:"sdxl"`
	Seed        seed.Seed `help:"Seed sent to the backend; -1 picks one" default:"-1"`
	Temperature float64   `help:"Sampling temperature (0-2)" default:"0.7"`
	MaxTokens   int       `help:"Maximum tokens to generate" default:"1000"`
	JSON        bool      `help:"Print the full result as JSON"`
}

// Run executes the extract command.
func (e *ExtractCmd) Run(cli *CLI) error {
	ctx := context.Background()
	app, err := cli.NewApp(ctx, true)
	if err != nil {
		return err
	}
	return app.RunTask(ctx, func(ctx context.Context) error {
		params := e.params()
		if params.Model == "" {
			if models := defaultModels(app.Extractor); len(models) > 0 {
				params.Model = models[0]
			}
		}

		res := app.Extractor.Run(ctx, params)
		if e.JSON {
			if err := cli.printJSON(res); err != nil {
				return err
			}
			return res.Err
		}
		out := cli.stdout()
		fmt.Fprintf(out, "Prompt: %s\n", res.PositivePrompt)
		fmt.Fprintf(out, "Negative Prompt: %s\n", res.NegativePrompt)
		fmt.Fprintf(out, "Seed: %d\n", res.Seed)
		return res.Err
	})
}

func (e *ExtractCmd) params() node.ExtractorParams {
	return node.ExtractorParams{
		Model:       e.Model,
		ExtraModel:  e.ExtraModel,
		Theme:       e.Theme,
		MaxTokens:   e.MaxTokens,
		Temperature: e.Temperature,
		PromptType:  e.Type,
		Seed:        e.Seed,
	}
}

// defaultModels returns the extractor's model choices.
func defaultModels(n *node.PromptExtractor) []string {
	if in, ok := n.Describe().Inputs.Lookup("model"); ok {
		return in.Choices
	}
	return nil
}
