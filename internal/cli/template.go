package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"iotplatform/internal/gen"
)

// NewTemplateCommand creates the template command.
func NewTemplateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "template [name]",
		Short:         "Print a starter program, or list them without a name",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, name := range gen.TemplateNames() {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			tmpl, err := gen.LookupTemplate(args[0], rootOpts.language())
			switch {
			case errors.Is(err, gen.ErrTemplateNotFound):
				return NewExitError(ExitCommandError, fmt.Sprintf("template %q not found", args[0]))
			case err != nil:
				return NewExitError(ExitCommandError, err.Error())
			}
			fmt.Fprint(out, tmpl.Code)
			return nil
		},
	}
	return cmd
}
