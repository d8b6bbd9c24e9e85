// promptkit serves the Moonshot chat and Ollama prompt extractor nodes over
// HTTP and runs them from the command line.
package main

import (
	"github.com/alecthomas/kong"

	"github.com/kbukum/promptkit/version"
)

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name(version.Name),
		kong.Description("LLM workflow nodes: Moonshot chat and Ollama image prompt extraction"),
		kong.UsageOnError(),
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
