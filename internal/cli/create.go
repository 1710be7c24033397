package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pagequiz/internal/app"
	"pagequiz/internal/domain"
)

// NewCreateCmd builds the subcommand that submits a source URL and
// follows the quiz through its lifecycle.
func NewCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <url>",
		Short: "Create a quiz from a web page and follow it until ready",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			in := bufio.NewReader(cmd.InOrStdin())
			return runCreate(cmd.Context(), e, args[0], in, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&difficulty, "difficulty", string(domain.DifficultyMedium), "generation difficulty (easy, medium, hard)")
	return cmd
}

func runCreate(ctx context.Context, e *env, sourceURL string, in *bufio.Reader, out io.Writer) error {
	resp, err := e.client.CreateQuiz(ctx, sourceURL)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Quiz %s created.\n", resp.QuizID)

	quiz, err := followQuiz(ctx, e, resp.QuizID, in, out)
	if err != nil {
		return err
	}

	switch quiz.Status {
	case domain.StatusReady:
		fmt.Fprintf(out, "Quiz ready: %d questions.\n", len(quiz.Questions))
		if promptYes(in, out, "Take it now? [Y/n] ") {
			return runTake(ctx, e, quiz.ID, in, out)
		}
		fmt.Fprintf(out, "Run \"pagequiz take %s\" when you are.\n", quiz.ID)
		return nil
	case domain.StatusFailed:
		return errors.New("we couldn't generate a quiz from the provided URL, please try again with a different website")
	default:
		return fmt.Errorf("quiz %s stopped in state %s", quiz.ID, quiz.Status.Label())
	}
}

// followQuiz drives the lifecycle tracker until the quiz reaches a
// terminal status, walking the user through topic selection when the
// backend asks for it.
func followQuiz(ctx context.Context, e *env, quizID string, in *bufio.Reader, out io.Writer) (domain.Quiz, error) {
	tracker := app.NewTracker(e.client, e.interval)
	defer tracker.Stop()

	updates, cancelUpdates := tracker.Subscribe()
	defer cancelUpdates()
	go func() {
		var last domain.QuizStatus
		for quiz := range updates {
			if quiz.Status != last {
				fmt.Fprintf(out, "… %s\n", quiz.Status.Label())
				last = quiz.Status
			}
		}
	}()

	for {
		tracker.Track(ctx, quizID)
		<-tracker.Done()
		if ctx.Err() != nil {
			return domain.Quiz{}, ctx.Err()
		}

		quiz, ok := tracker.Snapshot()
		if !ok {
			if err := tracker.Err(); err != nil {
				return domain.Quiz{}, err
			}
			return domain.Quiz{}, fmt.Errorf("quiz %s: no snapshot available", quizID)
		}

		switch quiz.Status {
		case domain.StatusReady, domain.StatusFailed:
			return quiz, nil
		case domain.StatusProcessingTopics:
			if err := selectTopics(ctx, e, quizID, in, out); err != nil {
				return domain.Quiz{}, err
			}
			// Resume polling now that generation is underway.
		case domain.StatusProcessing:
			// Done fired without leaving processing: a fetch error
			// suspended the loop. Surface it rather than spinning.
			if err := tracker.Err(); err != nil {
				return domain.Quiz{}, err
			}
			return quiz, nil
		}
	}
}

// selectTopics runs the interactive topic picker and issues the
// generation request.
func selectTopics(ctx context.Context, e *env, quizID string, in *bufio.Reader, out io.Writer) error {
	list, err := e.client.GetTopics(ctx, quizID)
	if err != nil {
		return err
	}
	if len(list.Topics) == 0 {
		return fmt.Errorf("no topics available for quiz %s", quizID)
	}

	selection := app.NewTopicSelection()
	selection.Observe(quizID, list.Topics)

	for {
		printTopics(out, list.Topics, selection)
		fmt.Fprintf(out, "Toggle a topic by number, or press Enter to generate (%d selected): ", selection.Count())

		line, readErr := in.ReadString('\n')
		line = strings.TrimSpace(line)

		if line == "" {
			err := selection.Generate(ctx, e.client, quizID, domain.Difficulty(difficulty))
			if errors.Is(err, domain.ErrEmptySelection) {
				fmt.Fprintln(out, "Select at least one topic.")
				if readErr != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "Generating quiz from selected topics…")
			return nil
		}

		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(list.Topics) {
			fmt.Fprintf(out, "Enter a number between 1 and %d.\n", len(list.Topics))
		} else {
			selection.Toggle(list.Topics[n-1].ID)
		}
		if readErr != nil {
			return fmt.Errorf("input closed before generation was requested")
		}
	}
}

func printTopics(out io.Writer, topics []domain.Topic, selection *app.TopicSelection) {
	fmt.Fprintln(out, "\nSelect Topics")
	for i, topic := range topics {
		marker := " "
		if selection.IsSelected(topic.ID) {
			marker = "x"
		}
		indent := strings.Repeat("  ", topic.Level)
		fmt.Fprintf(out, "%3d. [%s] %s%s", i+1, marker, indent, topic.Title)
		if topic.TokenEstimate > 0 {
			fmt.Fprintf(out, " (~%d tokens)", topic.TokenEstimate)
		}
		fmt.Fprintln(out)
		if topic.Summary != "" {
			fmt.Fprintf(out, "         %s%s\n", indent, topic.Summary)
		}
	}
}

func promptYes(in *bufio.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "" || line == "y" || line == "yes"
}
