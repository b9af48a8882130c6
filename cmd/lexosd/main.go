package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lexosd",
		Short: "LexOS desktop backend",
		Long: `lexosd serves the LexOS desktop shell: the window manager, the app
launcher catalog and the taskbar, over REST and a WebSocket event stream.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newAppsCmd(), newVersionCmd())
	return root
}
