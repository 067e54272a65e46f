package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/folio"
	"github.com/etnz/folio/server"
	"github.com/etnz/folio/session"
	"github.com/google/subcommands"
)

type assistCmd struct {
	source  string
	session string
	verbose bool
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the assistant" }
func (*assistCmd) Usage() string {
	return `assist [-data-source mock|ghostfolio_api] [-session <id>] [-v] [<question>]

Start an interactive session with the assistant. Follow-up questions use the
previous turns of the session. Type "bye" to leave.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "data-source", "", "data source, defaults to GHOSTFOLIO_DEFAULT_DATA_SOURCE")
	f.StringVar(&c.session, "session", server.DefaultSession, "session to keep the history in")
	f.BoolVar(&c.verbose, "v", false, "print the verification of each answer")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	fmt.Printf("Ask about your portfolio (%s routing). Type \"bye\" to leave.\n", ag.Mode())
	initial := strings.Join(f.Args(), " ")
	err = converse(ctx, ag, a.store, c.session, os.Stdin, initial, func(resp folio.Response) {
		if c.verbose {
			printMarkdown(responseMarkdown(resp))
			return
		}
		printMarkdown(resp.Response)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Session failed: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// converse answers the questions read from in, one per line, until "bye" or
// the end of input. initial, when not empty, is asked first.
func converse(ctx context.Context, ag server.Asker, store session.Store, id string, in io.Reader, initial string, show func(folio.Response)) error {
	scanner := bufio.NewScanner(in)
	next := func() (string, bool) {
		if initial != "" {
			q := initial
			initial = ""
			return q, true
		}
		fmt.Print("> ")
		if !scanner.Scan() {
			return "", false
		}
		return scanner.Text(), true
	}

	for {
		question, ok := next()
		if !ok {
			return scanner.Err()
		}
		question = strings.TrimSpace(question)
		if question == "" {
			continue
		}
		if strings.EqualFold(question, "bye") {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		history, err := store.History(ctx, id)
		if err != nil {
			return err
		}
		resp := ag.Ask(ctx, question, history)
		err = store.Append(ctx, id,
			folio.Turn{Role: folio.User, Content: question},
			folio.Turn{Role: folio.Assistant, Content: resp.Response, Tool: resp.SelectedTool},
		)
		if err != nil {
			return err
		}
		show(resp)
	}
}
