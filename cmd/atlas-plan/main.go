// README: Command-line front end; generates one itinerary locally without the HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "atlas-plan",
	Short: "Generate travel itineraries from the command line",
	Long: `atlas-plan builds an itinerary for a destination using live weather,
exchange rate and emergency data, then prints it as Markdown, JSON or PDF.

Configuration is read from the environment (and .env when present), the same
way the API server reads it.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newResolveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
