package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/studyhall/studyhall/pkg/studysdk"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "List and take quizzes",
}

var quizListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quizzes available to you",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, jar, err := authedClient(cmd.Context())
		if err != nil {
			return err
		}
		defer persistSession(jar)

		quizzes, err := c.AvailableQuizzes(cmd.Context())
		if err != nil {
			return err
		}
		if len(quizzes) == 0 {
			fmt.Println("No quizzes available.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tQUESTIONS")
		for _, q := range quizzes {
			fmt.Fprintf(w, "%s\t%s\t%d\n", q.ID, q.Title, q.QuestionCount)
		}
		return w.Flush()
	},
}

var quizTakeCmd = &cobra.Command{
	Use:   "take QUIZ_ID",
	Short: "Take a quiz interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, jar, err := authedClient(cmd.Context())
		if err != nil {
			return err
		}
		defer persistSession(jar)

		attempt, err := c.StartAttempt(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if attempt.NumAnswered > 0 {
			fmt.Printf("Resuming attempt: %d answered, %d correct so far.\n",
				attempt.NumAnswered, attempt.NumCorrect)
		}

		reader := bufio.NewReader(os.Stdin)
		question := attempt.Question
		total := attempt.NumAnswered

		for question != nil {
			total++
			fmt.Printf("\nQuestion %d [%s]\n%s\n", total, question.Difficulty, question.Prompt)
			for i, choice := range question.Choices {
				fmt.Printf("  %d) %s\n", i+1, choice)
			}

			idx, err := readChoice(reader, len(question.Choices))
			if err != nil {
				return err
			}

			res, err := c.SubmitAnswer(cmd.Context(), attempt.ID, question.ID, idx)
			if err != nil {
				return err
			}

			if res.Correct {
				fmt.Println("Correct!")
			} else {
				fmt.Printf("Incorrect. The answer was %d) %s\n",
					res.CorrectIndex+1, question.Choices[res.CorrectIndex])
			}

			attempt = &res.Attempt
			question = res.NextQuestion
		}

		printScore(attempt)
		return nil
	},
}

// readChoice prompts until the user enters a number between 1 and n.
func readChoice(reader *bufio.Reader, n int) (int, error) {
	for {
		fmt.Printf("Your answer (1-%d): ", n)
		line, err := reader.ReadString('\n')
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && v >= 1 && v <= n {
			return v - 1, nil
		}
		fmt.Println("Please enter a valid choice.")
	}
}

func printScore(a *studysdk.AttemptResponse) {
	fmt.Printf("\nQuiz complete: %d/%d correct", a.NumCorrect, a.NumAnswered)
	if a.NumAnswered > 0 {
		fmt.Printf(" (%.0f%%)", float64(a.NumCorrect)/float64(a.NumAnswered)*100)
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(quizCmd)
	quizCmd.AddCommand(quizListCmd)
	quizCmd.AddCommand(quizTakeCmd)
}
