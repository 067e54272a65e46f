// Package cmd implements the gfa command line: the HTTP server, one-shot and
// interactive questions, and the documentation.
package cmd

import (
	"github.com/google/subcommands"
)

// Commands lists the subcommands of gfa, in help order.
var Commands = []subcommands.Command{
	&serveCmd{},
	&askCmd{},
	&assistCmd{},
	&toolsCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&serveCmd{}, "server")
	c.Register(&askCmd{}, "assistant")
	c.Register(&assistCmd{}, "assistant")
	c.Register(&toolsCmd{}, "documentation")
	c.Register(&topicCmd{}, "documentation")
}
