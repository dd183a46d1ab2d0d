package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/etnz/eportfolio/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show the epf documentation" }
func (*topicCmd) Usage() string {
	topics, _ := docs.GetAllTopics()
	return fmt.Sprintf(`epf topic [<topic>...|*]

  Shows the documentation of the given topics, or of all of them with '*'.
  Without a topic it shows the introduction to epf.

  Topics: %s
`, strings.Join(topics, ", "))
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{docs.Readme}
	}

	known, err := docs.GetAllTopics()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	for _, topic := range topics {
		if topic != "*" && topic != docs.Readme && !slices.Contains(known, topic) {
			fmt.Fprintf(os.Stderr, "unknown topic %q, available topics are: %s\n", topic, strings.Join(known, ", "))
			return subcommands.ExitUsageError
		}
	}

	doc, err := docs.GetTopics(topics...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
