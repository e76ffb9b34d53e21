package cmd

import (
	"flag"
	"io"
	"slices"

	"github.com/etnz/waterfall/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete runs the shell completion of the 'name' program when the shell
// asks for it, and exits. It returns immediately otherwise.
//
// Set COMP_INSTALL=1 to install the completion in the user's shell.
func Complete(name string) {
	completionCommand().Complete(name)
}

// completionCommand describes the commands and their flags for completion.
func completionCommand() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, c := range commands {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		f.SetOutput(io.Discard)
		c.SetFlags(f)
		root.Sub[c.Name()] = &complete.Command{Flags: flagPredictors(f)}
	}
	root.Sub["topic"].Args = complete.PredictFunc(func(prefix string) []string {
		topics, _ := docs.GetAllTopics()
		return topics
	})
	return root
}

// flagPredictors returns the completion of every flag in 'f'.
func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	predictors := map[string]complete.Predictor{}
	f.VisitAll(func(fl *flag.Flag) {
		predictors[fl.Name] = flagPredictor(fl)
	})
	return predictors
}

func flagPredictor(fl *flag.Flag) complete.Predictor {
	switch fl.Name {
	case "presets":
		return predict.Or(predict.Files("*.json"), predict.Files("*.yaml"), predict.Files("*.yml"))
	case "scenario":
		return complete.PredictFunc(func(prefix string) []string {
			p, err := LoadPresets()
			if err != nil {
				return nil
			}
			return p.Scenarios()
		})
	case "round":
		return complete.PredictFunc(func(prefix string) []string {
			p, err := LoadPresets()
			if err != nil {
				return nil
			}
			var rounds []string
			for _, s := range p.Scenarios() {
				rounds = append(rounds, p.Rounds(s)...)
			}
			slices.Sort(rounds)
			return slices.Compact(rounds)
		})
	case "currency":
		return predict.Set{"USD", "EUR", "GBP", "CHF", "JPY"}
	}
	if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	return predict.Something
}
