package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"iotplatform/internal/gen"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var source bool

	cmd := &cobra.Command{
		Use:   "validate <workspace.xml|->",
		Short: "Generate a workspace and check the result is well-formed",
		Long: `Generate a workspace and check the generated program is well-formed.

With --source the input is taken as program text and checked directly.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			var valid bool
			var problems []string
			if source {
				report := gen.Validate(input, rootOpts.language())
				valid, problems = report.Valid, report.Diagnostics
			} else {
				result := gen.ValidateRequest(gen.Request{Document: input, Language: rootOpts.language()})
				valid, problems = result.Valid, result.Errors
				for _, w := range result.Warnings {
					fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
				}
			}

			out := cmd.OutOrStdout()
			if valid {
				fmt.Fprintln(out, "valid")
				return nil
			}
			fmt.Fprintln(out, "invalid")
			for _, p := range problems {
				fmt.Fprintf(out, "  %s\n", p)
			}
			return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d problem(s)", len(problems)))
		},
	}

	cmd.Flags().BoolVar(&source, "source", false, "treat the input as program text")
	return cmd
}
