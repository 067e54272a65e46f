package cmd

import (
	"flag"
	"io"

	"github.com/etnz/folio/config"
	"github.com/etnz/folio/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of gfa: subcommands, their flags,
// and the arguments that can be predicted.
func Completion() *complete.Command {
	sources := predict.Set{config.Mock, config.GhostfolioAPI}
	topics, _ := docs.GetAllTopics()
	topics = append(topics, "readme")

	root := &complete.Command{Sub: map[string]*complete.Command{
		"help":     {Args: predict.Set(names())},
		"flags":    {Args: predict.Set(names())},
		"commands": {},
	}}
	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		c.SetFlags(fs)

		sub := &complete.Command{Flags: map[string]complete.Predictor{}}
		fs.VisitAll(func(f *flag.Flag) {
			switch {
			case f.Name == "data-source":
				sub.Flags[f.Name] = sources
			case isBool(f):
				sub.Flags[f.Name] = predict.Nothing
			default:
				sub.Flags[f.Name] = predict.Something
			}
		})
		if c.Name() == "topic" {
			sub.Args = predict.Set(topics)
		}
		root.Sub[c.Name()] = sub
	}
	return root
}

func names() []string {
	res := make([]string, len(Commands))
	for i, c := range Commands {
		res[i] = c.Name()
	}
	return res
}

func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
