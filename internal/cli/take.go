package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"pagequiz/internal/app"
	"pagequiz/internal/domain"
)

// NewTakeCmd builds the subcommand that administers a ready quiz.
func NewTakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "take <quiz-id>",
		Short: "Answer a ready quiz and submit it for grading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			in := bufio.NewReader(cmd.InOrStdin())
			return runTake(cmd.Context(), e, args[0], in, cmd.OutOrStdout())
		},
	}
}

func runTake(ctx context.Context, e *env, quizID string, in *bufio.Reader, out io.Writer) error {
	quiz, err := e.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return err
	}

	switch quiz.Status {
	case domain.StatusReady:
	case domain.StatusFailed:
		return fmt.Errorf("quiz %s failed to generate", quizID)
	case domain.StatusProcessing, domain.StatusProcessingTopics:
		return fmt.Errorf("quiz %s is not ready yet (%s)", quizID, quiz.Status.Label())
	default:
		return fmt.Errorf("quiz %s is in an unknown state %q", quizID, quiz.Status)
	}

	session, err := app.NewTakeSession(quiz, e.client, e.store, e.notifier)
	if err != nil {
		return err
	}

	if quiz.Title != "" {
		fmt.Fprintf(out, "\n%s\n", quiz.Title)
	}

	for session.Phase() == app.PhaseViewing {
		printQuestion(out, session)
		fmt.Fprint(out, "> ")

		line, readErr := in.ReadString('\n')
		line = strings.ToLower(strings.TrimSpace(line))

		switch {
		case line == "q":
			fmt.Fprintln(out, "Leaving quiz; your answers are not saved.")
			return nil
		case line == "p":
			if !session.Previous() {
				fmt.Fprintln(out, "Already at the first question.")
			}
		case line == "n":
			if !session.CurrentAnswered() {
				fmt.Fprintln(out, "Answer this question first.")
			} else if !session.Next() {
				fmt.Fprintln(out, "This is the last question. Enter s to submit.")
			}
		case line == "s":
			if !session.CanSubmit() {
				answered := countAnswered(session)
				fmt.Fprintf(out, "Answer all questions before submitting (%d of %d answered).\n",
					answered, len(session.Quiz().Questions))
				continue
			}
			result, err := session.Submit(ctx)
			if err != nil {
				// Answers are intact; the user can retry with s.
				continue
			}
			review := app.BuildReview(session.Quiz(), result)
			printReview(out, review, e.shareBase)
			return nil
		case len(line) == 1 && line[0] >= 'a' && line[0] <= 'd':
			option := int(line[0] - 'a')
			if session.SelectOption(option) {
				session.Next()
			} else {
				fmt.Fprintln(out, "That option isn't available for this question.")
			}
		default:
			fmt.Fprintln(out, "Enter a letter to answer, p/n to move, s to submit, q to quit.")
		}

		if readErr != nil {
			return fmt.Errorf("input closed before the quiz was submitted")
		}
	}
	return nil
}

func printQuestion(out io.Writer, session *app.TakeSession) {
	quiz := session.Quiz()
	index := session.Current()
	total := len(quiz.Questions)
	question := session.Question()
	answered := countAnswered(session)

	fmt.Fprintf(out, "\nQuestion %d of %d (%d answered)\n\n", index+1, total, answered)
	fmt.Fprintf(out, "%s\n\n", question.Prompt)
	selected := session.Answer(index)
	for i, option := range question.Options {
		marker := " "
		if i == selected {
			marker = "*"
		}
		fmt.Fprintf(out, " %s %c. %s\n", marker, 'A'+i, option)
	}
	fmt.Fprintln(out, "\n[A-D] answer · p previous · n next · s submit · q quit")
}

func countAnswered(session *app.TakeSession) int {
	total := len(session.Quiz().Questions)
	answered := 0
	for i := 0; i < total; i++ {
		if session.Answer(i) != app.Unanswered {
			answered++
		}
	}
	return answered
}
