package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pagequiz/internal/domain"
)

// NewListCmd builds the subcommand that lists the caller's quizzes.
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your quizzes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return runList(cmd.Context(), e, cmd.OutOrStdout())
		},
	}
}

func runList(ctx context.Context, e *env, out io.Writer) error {
	quizzes, err := e.client.ListUserQuizzes(ctx)
	if errors.Is(err, domain.ErrAuthRequired) {
		fmt.Fprintln(out, "Please sign in to continue: set PAGEQUIZ_TOKEN or auth.token in the config.")
		return nil
	}
	if err != nil {
		return err
	}
	if len(quizzes) == 0 {
		fmt.Fprintln(out, "No quizzes yet. Create one with \"pagequiz create <url>\".")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tQUESTIONS\tCREATED\tSOURCE")
	for _, quiz := range quizzes {
		title := quiz.Title
		if title == "" {
			title = "(untitled)"
		}
		created := ""
		if !quiz.CreatedAt.IsZero() {
			created = quiz.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			quiz.ID, title, quiz.Status.Label(), len(quiz.Questions), created, quiz.SourceURL)
	}
	return w.Flush()
}
