// Package cli implements the stylecheck command line tool.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version of the stylecheck tool and the style checker service.
var Version = "1.0.0"

// NewStylecheckCmd returns the root command with all subcommands attached.
func NewStylecheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stylecheck",
		Version: Version,
		Short:   "stylecheck flags dictionary terms in a document and suggests corrections",
		Long: `stylecheck flags dictionary terms in a document and suggests corrections.

Each wrong term of the dictionary is matched as a whole word, ignoring case.
The annotated text is printed to the terminal and reports can be written as
plain text, DOCX or CSV.`,
	}

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewCheckCmd(NewCheckOptions()))
	cmd.AddCommand(NewVersionCmd())
	return cmd
}

// NewVersionCmd prints the tool version.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "stylecheck version %s\n", Version)
			return err
		},
	}
}
