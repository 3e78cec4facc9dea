// Command evals checks an evaluation suite against the tool table and
// scores the lexical baseline on it.
//
// Usage:
//
//	go run ./cmd/evals --suite ./evals/tool_selection.json
//
// To score a model, implement evals.Selector in an LLM harness and call
// evals.Evaluate with the same suite.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/olgasafonova/chemdata-mcp-server/evals"
	"github.com/olgasafonova/chemdata-mcp-server/tools"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		suitePath string
		minScore  float64
		verbose   bool
	)
	cmd := &cobra.Command{
		Use:          "evals",
		Short:        "Lint a tool selection suite and score the lexical baseline",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			suite, err := evals.LoadSuite(suitePath)
			if err != nil {
				return fmt.Errorf("loading suite: %w", err)
			}
			fmt.Fprintf(out, "Suite: %s (version %s, %d cases)\n", suite.Name, suite.Version, len(suite.Cases))

			if problems := evals.Lint(suite, tools.AllTools); len(problems) > 0 {
				for _, p := range problems {
					fmt.Fprintf(out, "  lint: %s\n", p)
				}
				return fmt.Errorf("suite has %d lint problems", len(problems))
			}

			// The baseline returns no arguments, so only tool choice is scored.
			toolOnly := *suite
			toolOnly.Cases = make([]evals.Case, len(suite.Cases))
			for i, c := range suite.Cases {
				c.ExpectedArgs = nil
				toolOnly.Cases[i] = c
			}

			m, results := evals.Evaluate(&toolOnly, evals.NewLexicalSelector(tools.AllTools))
			fmt.Fprint(out, evals.FormatMetrics(m, "Lexical baseline"))

			if verbose {
				fmt.Fprintln(out, "\nAll Cases:")
				for _, r := range results {
					status := "PASS"
					if !r.Passed {
						status = "FAIL"
					}
					fmt.Fprintf(out, "  %s %-10s expected=%s actual=%s\n", status, r.CaseID, r.ExpectedTool, r.ActualTool)
				}
			}

			if m.Accuracy < minScore {
				return fmt.Errorf("baseline accuracy %.2f below %.2f", m.Accuracy, minScore)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&suitePath, "suite", "./evals/tool_selection.json", "suite JSON file")
	cmd.Flags().Float64Var(&minScore, "min-accuracy", 0, "fail when baseline accuracy is below this ratio")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list every case")
	return cmd
}
