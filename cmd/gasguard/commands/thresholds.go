package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gasguard/gasguard/internal/cli"
	"github.com/gasguard/gasguard/internal/client"
)

var (
	setElderlyAge    int
	setHighRiskASA   int
	setHighRiskFiO2  float64
	setLowFlowMin    float64
	setAgentMax      float64
	setAgentSens     float64
	setLowWeight     float64
	setLowCompliance float64
)

var thresholdsCmd = &cobra.Command{
	Use:   "thresholds",
	Short: "Inspect or update the clinical thresholds",
}

var thresholdsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the active thresholds",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolvedURL, resolvedKey, err := cli.Resolve(baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(resolvedURL, resolvedKey)
		view, err := c.GetThresholds(context.Background())
		if err != nil {
			return fmt.Errorf("failed to fetch thresholds: %w", err)
		}
		return cli.PrintThresholds(view, cli.OutputFormat(format))
	},
}

var thresholdsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update thresholds (admin)",
	Long: `Update one or more clinical thresholds. Only flags you pass are changed.
The 25% hypoxic floor is fixed and cannot be updated.

Examples:
  gasguard thresholds set --elderly-age 70
  gasguard thresholds set --high-risk-fio2 32 --low-flow-min 0.6`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolvedURL, resolvedKey, err := cli.Resolve(baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		var update client.ThresholdsUpdate
		changed := false
		if cmd.Flags().Changed("elderly-age") {
			update.ElderlyAgeYears = &setElderlyAge
			changed = true
		}
		if cmd.Flags().Changed("high-risk-asa") {
			update.HighRiskASA = &setHighRiskASA
			changed = true
		}
		if cmd.Flags().Changed("high-risk-fio2") {
			update.HighRiskFiO2Pct = &setHighRiskFiO2
			changed = true
		}
		if cmd.Flags().Changed("low-flow-min") {
			update.LowFlowTotalLPM = &setLowFlowMin
			changed = true
		}
		if cmd.Flags().Changed("agent-max") {
			update.AgentMaxPct = &setAgentMax
			changed = true
		}
		if cmd.Flags().Changed("agent-sensitive") {
			update.AgentSensitivePct = &setAgentSens
			changed = true
		}
		if cmd.Flags().Changed("low-weight") {
			update.LowWeightKg = &setLowWeight
			changed = true
		}
		if cmd.Flags().Changed("low-compliance") {
			update.LowComplianceMLPerCmH2O = &setLowCompliance
			changed = true
		}
		if !changed {
			return fmt.Errorf("no threshold flags provided")
		}

		c := client.NewClient(resolvedURL, resolvedKey)
		etag, err := c.UpdateThresholds(context.Background(), update)
		if err != nil {
			return fmt.Errorf("failed to update thresholds: %w", err)
		}

		if !quiet {
			fmt.Printf("Thresholds updated (etag %s)\n", etag)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(thresholdsCmd)
	thresholdsCmd.AddCommand(thresholdsGetCmd)
	thresholdsCmd.AddCommand(thresholdsSetCmd)

	thresholdsSetCmd.Flags().IntVar(&setElderlyAge, "elderly-age", 0, "Elderly age threshold (years)")
	thresholdsSetCmd.Flags().IntVar(&setHighRiskASA, "high-risk-asa", 0, "High-risk ASA class threshold (1-5)")
	thresholdsSetCmd.Flags().Float64Var(&setHighRiskFiO2, "high-risk-fio2", 0, "High-risk FiO2 minimum (%)")
	thresholdsSetCmd.Flags().Float64Var(&setLowFlowMin, "low-flow-min", 0, "Low-flow threshold (L/min)")
	thresholdsSetCmd.Flags().Float64Var(&setAgentMax, "agent-max", 0, "Agent concentration maximum (%)")
	thresholdsSetCmd.Flags().Float64Var(&setAgentSens, "agent-sensitive", 0, "Agent sensitivity threshold (%)")
	thresholdsSetCmd.Flags().Float64Var(&setLowWeight, "low-weight", 0, "Low-weight threshold (kg)")
	thresholdsSetCmd.Flags().Float64Var(&setLowCompliance, "low-compliance", 0, "Low-compliance threshold (mL/cmH2O)")
}
