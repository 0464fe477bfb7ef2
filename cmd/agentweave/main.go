package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version set via ldflags during build
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "agentweave",
	Short:   "Multi-agent orchestration over a conversational query engine",
	Version: version,
	Long: `agentweave composes multiple conversational agents into sequential
chains, parallel fan-outs, voting ensembles, transforming pipelines and
supervisor/delegate setups, with per-agent session continuity and streaming
output.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runCmd)
}
