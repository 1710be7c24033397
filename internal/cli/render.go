package cli

import (
	"fmt"
	"io"

	"pagequiz/internal/app"
)

// printReview renders a reconciled submission review.
func printReview(out io.Writer, review app.Review, shareBase string) {
	title := review.Title
	if title == "" {
		title = "Quiz " + review.QuizID
	}
	fmt.Fprintf(out, "\n%s Results\n\n", title)
	fmt.Fprintf(out, "Correct answers: %d/%d\n", review.CorrectCount, review.TotalQuestions)
	fmt.Fprintf(out, "Score: %d%%\n\n", review.Percentage)
	fmt.Fprintf(out, "%s %s\n", review.Band.Heading(), review.Band.Message())

	if len(review.Items) > 0 {
		fmt.Fprintln(out, "\nQuestion Review")
	}
	for _, item := range review.Items {
		verdict := "✗ Incorrect"
		if item.Correct {
			verdict = "✓ Correct"
		}
		fmt.Fprintf(out, "\nQuestion %d: %s  [%s]\n", item.Number, item.Question.Prompt, verdict)
		for i, option := range item.Question.Options {
			var note string
			switch {
			case i == item.CorrectAnswer && i == item.UserAnswer:
				note = "  ← your answer (correct)"
			case i == item.CorrectAnswer:
				note = "  ← correct answer"
			case i == item.UserAnswer:
				note = "  ← your answer"
			}
			fmt.Fprintf(out, "   %c. %s%s\n", 'A'+i, option, note)
		}
	}

	if review.Skipped > 0 {
		fmt.Fprintf(out, "\n%d result(s) could not be matched to a question and were omitted.\n", review.Skipped)
	}
	if shareBase != "" {
		fmt.Fprintf(out, "\nShare this quiz: %s/quiz/%s\n", shareBase, review.QuizID)
	}
}
