package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/stylecast/wardrobe/cmd/do/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "do",
		Short:        "Operator tools for the wardrobe API",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.TablesCmd())
	rootCmd.AddCommand(cmd.TokenCmd())
	rootCmd.AddCommand(cmd.UsageCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
