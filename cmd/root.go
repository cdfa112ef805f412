package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/designpatterns/internal/config"
)

// NewRootCmd builds the command tree.
func NewRootCmd(cfg *config.AppConfig) *cobra.Command {
	root := &cobra.Command{
		Use:           "designpatterns",
		Short:         "Observer and Factory pattern demonstrations",
		Long:          "Run an editor whose open and save actions notify subscribed listeners, or parse documents through a parser factory.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(NewObserveCmd(cfg))
	root.AddCommand(NewParseCmd())
	root.AddCommand(NewVersionCmd())
	return root
}

// Execute runs the root command.
func Execute(cfg *config.AppConfig) {
	if err := NewRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
