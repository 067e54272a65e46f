package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/folio/tools"
	"github.com/google/subcommands"
)

type toolsCmd struct {
	json bool
}

func (*toolsCmd) Name() string     { return "tools" }
func (*toolsCmd) Synopsis() string { return "print the tool catalog" }
func (*toolsCmd) Usage() string {
	return `tools [-json]

Print the tools the assistant can call, with their parameters.
`
}

func (c *toolsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "print the catalog as JSON")
}

func (c *toolsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tools.Catalog); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding catalog: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(catalogMarkdown(tools.Catalog))
	return subcommands.ExitSuccess
}
