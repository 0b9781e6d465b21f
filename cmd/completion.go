package cmd

import (
	"flag"
	"io"

	"github.com/etnz/capgains/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors are the predictors of the flags taking a file, by name.
var flagPredictors = map[string]complete.Predictor{
	"l":      predict.Files("*.jsonl"),
	"prices": predict.Files("*.json"),
}

// flagsOf returns the predictors of all the flags visited by visit.
func flagsOf(visit func(func(*flag.Flag))) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	visit(func(f *flag.Flag) {
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}

// Completion returns the shell completion of the commander's subcommands and
// their flags.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagsOf(c.VisitAll),
	}

	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		fs := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		sub.SetFlags(fs)

		cmd := &complete.Command{Flags: flagsOf(fs.VisitAll)}
		if sub.Name() == "topic" {
			topics, _ := docs.GetAllTopics()
			cmd.Args = predict.Set(topics)
		}
		root.Sub[sub.Name()] = cmd
	})
	return root
}
