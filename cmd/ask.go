package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/folio"
	"github.com/google/subcommands"
)

type askCmd struct {
	source  string
	session string
}

func (*askCmd) Name() string     { return "ask" }
func (*askCmd) Synopsis() string { return "answer one question about the portfolio" }
func (*askCmd) Usage() string {
	return `ask [-data-source mock|ghostfolio_api] [-session <id>] <question>

Answer one question and print the verification of the answer.
With -session, the question follows up on the previous turns of that session.
`
}

func (c *askCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "data-source", "", "data source, defaults to GHOSTFOLIO_DEFAULT_DATA_SOURCE")
	f.StringVar(&c.session, "session", "", "session to read the history from and append to")
}

func (c *askCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	question := strings.Join(f.Args(), " ")
	if strings.TrimSpace(question) == "" {
		fmt.Fprintln(os.Stderr, "a question is required")
		return subcommands.ExitUsageError
	}

	a, err := loadApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close(context.Background())

	ag, err := a.agent(c.source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var history folio.History
	if c.session != "" {
		if history, err = a.store.History(ctx, c.session); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading session %q: %v\n", c.session, err)
			return subcommands.ExitFailure
		}
	}

	resp := ag.Ask(ctx, question, history)

	if c.session != "" {
		err := a.store.Append(ctx, c.session,
			folio.Turn{Role: folio.User, Content: question},
			folio.Turn{Role: folio.Assistant, Content: resp.Response, Tool: resp.SelectedTool},
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error saving session %q: %v\n", c.session, err)
		}
	}

	printMarkdown(responseMarkdown(resp))
	return subcommands.ExitSuccess
}
