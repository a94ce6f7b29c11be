package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"iotplatform/internal/gen"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	var device string

	cmd := &cobra.Command{
		Use:           "generate <workspace.xml|->",
		Short:         "Generate source code from a workspace",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			result, err := gen.Generate(gen.Request{Document: doc, Language: rootOpts.language(), TargetDevice: device})
			if err != nil {
				return WrapExitError(ExitFailure, "code generation failed", err)
			}

			for _, w := range result.Warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
			}
			fmt.Fprint(cmd.OutOrStdout(), result.Code)
			return nil
		},
	}

	cmd.Flags().StringVarP(&device, "device", "d", "", "target device (arduino, esp32, raspberry-pi)")
	return cmd
}
