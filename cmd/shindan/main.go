// Command shindan is the predictive vehicle diagnostics engine: a Bayesian
// reasoner over a failure-mode knowledge base, served over HTTP and MCP or
// run as a one-shot CLI diagnosis.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "shindan",
	Short: "Predictive vehicle diagnostics engine",
	Long: `Shindan diagnoses vehicle failures from sensor readings, trouble codes,
and symptom descriptions using Bayesian reasoning over a failure-mode
knowledge base.

Run "shindan serve" to start the HTTP/MCP server, or "shindan diagnose"
for a one-shot diagnosis from the command line.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("shindan %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
