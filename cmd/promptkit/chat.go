package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kbukum/promptkit/bootstrap"
	"github.com/kbukum/promptkit/llm"
	"github.com/kbukum/promptkit/node"
)

// ChatCmd sends prompts to Moonshot, once or as a conversation.
type ChatCmd struct {
	Prompt      string  `arg:"" optional:"" help:"Prompt to send (ignored with --interactive)"`
	Model       string  `short:"m" help:"Moonshot model" default:"moonshot-v1-8k"`
	System      string  `short:"s" help:"System message"`
	Temperature float64 `help:"Sampling temperature (0-2)" default:"0.3"`
	MaxTokens   int     `help:"Maximum tokens to generate" default:"1000"`
	Interactive bool    `short:"i" help:"Read turns from stdin and keep the history; /reset clears it, /history prints it"`

	in io.Reader
}

// Run executes the chat command.
func (c *ChatCmd) Run(cli *CLI) error {
	if !c.Interactive && strings.TrimSpace(c.Prompt) == "" {
		return fmt.Errorf("a prompt is required unless --interactive is set")
	}
	ctx := context.Background()
	app, err := cli.NewApp(ctx, true)
	if err != nil {
		return err
	}
	return app.RunTask(ctx, func(ctx context.Context) error {
		if c.Interactive {
			return c.converse(ctx, app, cli.stdout())
		}
		res := app.Single.Run(ctx, c.params(c.Prompt))
		fmt.Fprintln(cli.stdout(), res.Response)
		return res.Err
	})
}

func (c *ChatCmd) params(prompt string) node.ChatParams {
	return node.ChatParams{
		Prompt:        prompt,
		Model:         c.Model,
		Temperature:   c.Temperature,
		MaxTokens:     c.MaxTokens,
		SystemMessage: c.System,
	}
}

// converse runs one multi chat turn per input line until EOF or ctx is
// canceled. A failed turn is printed and the loop continues.
func (c *ChatCmd) converse(ctx context.Context, app *bootstrap.App, out io.Writer) error {
	in := c.in
	if in == nil {
		in = os.Stdin
	}
	sc := bufio.NewScanner(in)
	for ctx.Err() == nil && sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "/reset":
			app.Multi.Reset()
			fmt.Fprintln(out, "conversation reset")
			continue
		case "/history":
			fmt.Fprint(out, app.Multi.Session().Transcript())
			continue
		}

		res := app.Multi.Run(ctx, node.MultiChatParams{ChatParams: c.params(line)})
		if res.Err != nil {
			fmt.Fprintln(out, res.ChatHistory)
			continue
		}
		fmt.Fprintln(out, lastReply(app.Multi.Session().Messages()))
	}
	return sc.Err()
}

func lastReply(msgs []llm.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == llm.RoleAssistant {
			return msgs[i].Content
		}
	}
	return ""
}
