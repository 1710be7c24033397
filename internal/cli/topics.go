package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pagequiz/internal/app"
	"pagequiz/internal/domain"
)

// NewTopicsCmd builds the subcommand that shows a quiz's topics and
// requests generation from a subset, non-interactively.
func NewTopicsCmd() *cobra.Command {
	var selectIDs []string
	var generate bool

	cmd := &cobra.Command{
		Use:   "topics <quiz-id>",
		Short: "List extracted topics and generate a quiz from a subset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return runTopics(cmd.Context(), e, args[0], selectIDs, generate, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringSliceVar(&selectIDs, "select", nil, "topic ids to keep selected (default all)")
	cmd.Flags().BoolVar(&generate, "generate", false, "request generation from the selection")
	cmd.Flags().StringVar(&difficulty, "difficulty", string(domain.DifficultyMedium), "generation difficulty (easy, medium, hard)")
	return cmd
}

func runTopics(ctx context.Context, e *env, quizID string, selectIDs []string, generate bool, out io.Writer) error {
	list, err := e.client.GetTopics(ctx, quizID)
	if err != nil {
		return err
	}
	if len(list.Topics) == 0 {
		fmt.Fprintln(out, "No topics available.")
		return nil
	}

	selection := app.NewTopicSelection()
	selection.Observe(quizID, list.Topics)

	if len(selectIDs) > 0 {
		keep := make(map[string]struct{}, len(selectIDs))
		for _, id := range selectIDs {
			keep[id] = struct{}{}
		}
		for _, topic := range list.Topics {
			if _, ok := keep[topic.ID]; !ok {
				selection.Toggle(topic.ID)
			}
		}
	}

	printTopics(out, list.Topics, selection)
	fmt.Fprintf(out, "\n%d of %d topics selected.\n", selection.Count(), len(list.Topics))

	if !generate {
		return nil
	}
	if err := selection.Generate(ctx, e.client, quizID, domain.Difficulty(difficulty)); err != nil {
		return err
	}
	fmt.Fprintln(out, "Generating quiz from selected topics…")
	return nil
}
