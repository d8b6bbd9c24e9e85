package main

import (
	"fmt"

	"github.com/kbukum/promptkit/version"
)

// VersionCmd prints the build identity.
type VersionCmd struct {
	JSON bool `help:"Print as JSON"`
}

// Run executes the version command.
func (v *VersionCmd) Run(cli *CLI) error {
	info := version.GetVersionInfo()
	if v.JSON {
		return cli.printJSON(info)
	}
	fmt.Fprintf(cli.stdout(), "%s %s (%s)\n", info.Name, info.String(), info.GoVersion)
	return nil
}
