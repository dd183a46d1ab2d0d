package cmd

import (
	"flag"

	"github.com/etnz/eportfolio/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictors of flag values, by command and flag name. Other flags take
// anything, boolean flags take nothing.
var predictors = map[string]map[string]complete.Predictor{
	"": {
		"file":      predict.Files("*"),
		"currency":  predict.Set{"USD", "EUR", "GBP", "CHF", "JPY", "CAD"},
		"log-level": predict.Set{"debug", "info", "warn", "error"},
	},
	"buy": {
		"k": predict.Set{"stock", "fund"},
	},
	"update": {
		"quotes": predict.Files("*.json"),
	},
	"list": {
		"html": predict.Files("*.html"),
	},
}

// Completion describes the epf command line for shell completion.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors("", flag.CommandLine),
	}
	var names predict.Set
	for _, c := range commands() {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		root.Sub[c.Name()] = &complete.Command{
			Flags: flagPredictors(c.Name(), fs),
			Args:  predict.Nothing,
		}
		names = append(names, c.Name())
	}
	// builtin commands of the commander.
	root.Sub["help"] = &complete.Command{Args: names}
	root.Sub["flags"] = &complete.Command{Args: predict.Nothing}
	root.Sub["commands"] = &complete.Command{Args: predict.Nothing}
	if topics, err := docs.GetAllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(append(topics, "*"))
	}
	return root
}

// flagPredictors returns the predictors of every flag in fs.
func flagPredictors(name string, fs *flag.FlagSet) map[string]complete.Predictor {
	res := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := predictors[name][f.Name]; ok {
			res[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			res[f.Name] = predict.Nothing
			return
		}
		res[f.Name] = predict.Something
	})
	return res
}
