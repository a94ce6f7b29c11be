// Package cli implements blockgen, the offline front end of the block generator.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"iotplatform/internal/blockly"
	"iotplatform/internal/gen"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Language string
}

// NewRootCommand creates the blockgen root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "blockgen",
		Short:         "Turn Blockly workspaces into Python, Arduino C++ or JavaScript",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := gen.ParseLanguage(opts.Language); err != nil {
				return NewExitError(ExitCommandError, err.Error())
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Language, "language", "l", gen.DefaultLanguage.String(), "target language (python|cpp|javascript)")

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTemplateCommand(opts))

	return cmd
}

func (o *RootOptions) language() gen.Language {
	lang, _ := gen.ParseLanguage(o.Language)
	return lang
}

// readInput reads a workspace file, or stdin when path is "-", as text in the
// charset its XML declaration names
func readInput(cmd *cobra.Command, path string) (string, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", WrapExitError(ExitCommandError, "cannot open input", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", WrapExitError(ExitCommandError, fmt.Sprintf("cannot read %s", path), err)
	}
	text, err := blockly.DecodeDocument(data)
	if err != nil {
		return "", WrapExitError(ExitCommandError, fmt.Sprintf("cannot decode %s", path), err)
	}
	return text, nil
}
