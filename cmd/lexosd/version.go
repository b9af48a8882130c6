package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/LexOS/backend/internal/shared/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lexosd version %s\n", version.String())
		},
	}
}
