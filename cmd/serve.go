package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/folio/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the chat API over HTTP" }
func (*serveCmd) Usage() string {
	return `serve [-addr <host:port>]

Serve the chat API: GET /health, POST /chat and GET /metrics.
The address defaults to LISTEN_ADDR.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "listen address, overrides LISTEN_ADDR")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := loadApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close(context.Background())

	askers := make(map[string]server.Asker, len(a.agents))
	for source, ag := range a.agents {
		askers[source] = ag
	}
	addr := c.addr
	if addr == "" {
		addr = a.cfg.ListenAddr
	}

	s := server.New(askers, a.cfg.DefaultDataSource, a.store, a.logger)
	if err := s.Run(ctx, addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error serving: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
