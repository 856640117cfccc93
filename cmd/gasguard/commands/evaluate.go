package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gasguard/gasguard/internal/cli"
	"github.com/gasguard/gasguard/internal/client"
	"github.com/gasguard/gasguard/internal/mixture"
)

var (
	evalO2         float64
	evalN2O        float64
	evalAir        float64
	evalAgent      float64
	evalAge        int
	evalASA        int
	evalWeight     float64
	evalCompliance float64
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a gas mixture for a patient",
	Long: `Evaluate fresh-gas flow settings (L/min) against a patient context and
print the FiO2 and safety classification.

Examples:
  gasguard evaluate --o2 1.0 --age 30 --asa 2 --weight 70
  gasguard evaluate --o2 0.2 --air 0.8 --age 70 --asa 3 --weight 55 --agent 2.5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolvedURL, resolvedKey, err := cli.Resolve(baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		c := client.NewClient(resolvedURL, resolvedKey)
		outcome, err := c.Evaluate(context.Background(), client.EvaluateParams{
			Flows: mixture.FlowInputs{
				O2:       evalO2,
				N2O:      evalN2O,
				Air:      evalAir,
				AgentPct: evalAgent,
			},
			Patient: mixture.PatientContext{
				Age:                  evalAge,
				ASA:                  evalASA,
				WeightKg:             evalWeight,
				ComplianceMLPerCmH2O: evalCompliance,
			},
		})
		if err != nil {
			return fmt.Errorf("evaluation failed: %w", err)
		}

		if quiet {
			fmt.Println(outcome.Classification)
			return nil
		}
		return cli.PrintOutcome(outcome, cli.OutputFormat(format))
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().Float64Var(&evalO2, "o2", 0, "O2 flow (L/min)")
	evaluateCmd.Flags().Float64Var(&evalN2O, "n2o", 0, "N2O flow (L/min)")
	evaluateCmd.Flags().Float64Var(&evalAir, "air", 0, "Air flow (L/min)")
	evaluateCmd.Flags().Float64Var(&evalAgent, "agent", 0, "Vaporizer agent concentration (%)")
	evaluateCmd.Flags().IntVar(&evalAge, "age", 0, "Patient age (years)")
	evaluateCmd.Flags().IntVar(&evalASA, "asa", 1, "ASA physical status class (1-5)")
	evaluateCmd.Flags().Float64Var(&evalWeight, "weight", 0, "Patient weight (kg)")
	evaluateCmd.Flags().Float64Var(&evalCompliance, "compliance", 0, "Lung compliance (mL/cmH2O), omit if not measured")

	_ = evaluateCmd.MarkFlagRequired("age")
	_ = evaluateCmd.MarkFlagRequired("weight")
}
