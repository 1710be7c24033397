package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pagequiz/internal/app"
	"pagequiz/internal/domain"
)

// NewResultsCmd builds the subcommand that redisplays a stored
// submission result without resubmitting.
func NewResultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results <quiz-id>",
		Short: "Show graded results for a quiz you already submitted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return runResults(cmd.Context(), e, args[0], cmd.OutOrStdout())
		},
	}
}

func runResults(ctx context.Context, e *env, quizID string, out io.Writer) error {
	result, err := e.store.Load(ctx, quizID)
	if errors.Is(err, domain.ErrNoResult) {
		fmt.Fprintln(out, "No results available. Please complete this quiz to see your results.")
		fmt.Fprintf(out, "Run \"pagequiz take %s\" to take it.\n", quizID)
		return nil
	}
	if err != nil {
		return err
	}

	quiz, err := e.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return err
	}

	review := app.BuildReview(quiz, result)
	printReview(out, review, e.shareBase)
	return nil
}
