package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/housing-advisor/internal/config"
	"github.com/iwvelando/housing-advisor/internal/ctdecision"
	"github.com/iwvelando/housing-advisor/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type ctOptions struct {
	answers     string
	interactive bool
}

func newCTCommand(root *rootOptions) *cobra.Command {
	opts := &ctOptions{}

	cmd := &cobra.Command{
		Use:   "ct",
		Short: "Walk the head injury CT indication decision tree",
		Long: "Answers are given in the order the questions are asked, for example\n" +
			"--answers no,no,yes. Evaluation stops at the first outcome. With\n" +
			"--interactive the questions are asked one by one on standard input.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := initializeLogger(config.LoggingConfig{}, root.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			tree := ctdecision.Default()
			var result ctdecision.Result
			if opts.interactive {
				result, err = askInteractively(cmd.InOrStdin(), cmd.ErrOrStderr(), tree)
			} else {
				result, err = evaluateAnswerList(tree, opts.answers)
			}
			if err != nil {
				return err
			}

			logger.Debug("decision tree evaluated",
				zap.String("op", "cli.ct"),
				zap.Stringer("outcome", result.Outcome),
				zap.Int("answered", len(result.Path)),
			)
			return report.CTResult(cmd.OutOrStdout(), tree, result)
		},
	}

	cmd.Flags().StringVar(&opts.answers, "answers", "", "comma-separated yes/no answers in question order")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "ask the questions on standard input")
	return cmd
}

func parseAnswerList(list string) ([]ctdecision.Answer, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	fields := strings.Split(list, ",")
	answers := make([]ctdecision.Answer, 0, len(fields))
	for i, field := range fields {
		a, err := ctdecision.ParseAnswer(field)
		if err != nil {
			return nil, fmt.Errorf("answer %d: %w", i+1, err)
		}
		answers = append(answers, a)
	}
	return answers, nil
}

func evaluateAnswerList(tree *ctdecision.Tree, list string) (ctdecision.Result, error) {
	answers, err := parseAnswerList(list)
	if err != nil {
		return ctdecision.Result{}, err
	}
	return tree.Evaluate(answers), nil
}

// askInteractively prompts on out and reads one answer per line from in,
// repeating a question until it gets a yes or no. End of input leaves the
// result pending.
func askInteractively(in io.Reader, out io.Writer, tree *ctdecision.Tree) (ctdecision.Result, error) {
	scanner := bufio.NewScanner(in)
	var answers []ctdecision.Answer

	for {
		result := tree.Evaluate(answers)
		if result.Done() {
			return result, nil
		}
		q, err := tree.Question(result.Next)
		if err != nil {
			return result, err
		}
		if q.Help != "" {
			fmt.Fprintf(out, "  (%s)\n", q.Help)
		}
		fmt.Fprintf(out, "%s? [yes/no] ", q.Prompt)

		if !scanner.Scan() {
			fmt.Fprintln(out)
			return result, scanner.Err()
		}
		answer, err := ctdecision.ParseAnswer(scanner.Text())
		if err != nil || answer == ctdecision.Unanswered {
			fmt.Fprintln(out, "Please answer yes or no.")
			continue
		}
		answers = append(answers, answer)
	}
}
