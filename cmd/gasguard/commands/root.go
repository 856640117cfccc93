package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	baseURL string
	apiKey  string
	format  string
	quiet   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gasguard",
	Short: "CLI for the gasguard mixture safety service",
	Long: `Gasguard is a command-line tool for the anesthesia gas-mixture safety
service. It evaluates fresh-gas flow settings against patient context and
manages the clinical thresholds the server classifies with.

Examples:
  gasguard evaluate --o2 1.0 --age 30 --asa 2 --weight 70
  gasguard evaluate --o2 0.1 --air 0.9 --age 70 --asa 2 --weight 60
  gasguard batch scenarios.yaml
  gasguard thresholds get
  gasguard thresholds set --elderly-age 70 --api-key <admin-key>`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Base URL of the gasguard API")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Admin API key for threshold updates")
	rootCmd.PersistentFlags().StringVar(&format, "format", "table", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress output")
}
