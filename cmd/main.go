package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tnp-quickview",
	Short: "TNP Quick View: Japanese economic news and attention stocks",
	Long: `TNP Quick View serves a dashboard of Japanese economic headlines and
attention stocks, with likes and comments persisted to Redis and a local store.

Binaries:
  dashboard-service serve -c configs/config-dashboard.yaml
  migrate up|down -c configs/config-dashboard.yaml`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
