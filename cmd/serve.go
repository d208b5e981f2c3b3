package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sam1-khan/Simple-Invoice-Generator/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Run: func(cmd *cobra.Command, args []string) {
		app.Run(cfgFile)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
