package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gasguard/gasguard/internal/cli"
	"github.com/gasguard/gasguard/internal/client"
	"github.com/gasguard/gasguard/internal/mixture"
)

// batchScenario is one named evaluation in a scenarios file.
type batchScenario struct {
	Name  string `yaml:"name"`
	Flows struct {
		O2    float64 `yaml:"o2"`
		N2O   float64 `yaml:"n2o"`
		Air   float64 `yaml:"air"`
		Agent float64 `yaml:"agent"`
	} `yaml:"flows"`
	Patient struct {
		Age        int     `yaml:"age"`
		ASA        int     `yaml:"asa"`
		Weight     float64 `yaml:"weight"`
		Compliance float64 `yaml:"compliance"`
	} `yaml:"patient"`
}

var batchCmd = &cobra.Command{
	Use:   "batch <scenarios.yaml>",
	Short: "Evaluate a YAML file of scenarios",
	Long: `Evaluate every scenario in a YAML file and print a summary.

File format:
  - name: room-air
    flows: {o2: 0.0, n2o: 0.0, air: 2.0}
    patient: {age: 30, asa: 1, weight: 70}
  - name: elderly-low-fio2
    flows: {o2: 0.1, air: 0.9}
    patient: {age: 70, asa: 2, weight: 60}`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolvedURL, resolvedKey, err := cli.Resolve(baseURL, apiKey)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read scenarios file: %w", err)
		}

		var scenarios []batchScenario
		if err := yaml.Unmarshal(data, &scenarios); err != nil {
			return fmt.Errorf("failed to parse scenarios file: %w", err)
		}
		if len(scenarios) == 0 {
			return fmt.Errorf("no scenarios in %s", args[0])
		}

		c := client.NewClient(resolvedURL, resolvedKey)
		ctx := context.Background()

		results := make([]cli.BatchResult, 0, len(scenarios))
		for i, sc := range scenarios {
			name := sc.Name
			if name == "" {
				name = fmt.Sprintf("scenario-%d", i+1)
			}
			outcome, err := c.Evaluate(ctx, client.EvaluateParams{
				Flows: mixture.FlowInputs{
					O2:       sc.Flows.O2,
					N2O:      sc.Flows.N2O,
					Air:      sc.Flows.Air,
					AgentPct: sc.Flows.Agent,
				},
				Patient: mixture.PatientContext{
					Age:                  sc.Patient.Age,
					ASA:                  sc.Patient.ASA,
					WeightKg:             sc.Patient.Weight,
					ComplianceMLPerCmH2O: sc.Patient.Compliance,
				},
			})
			if err != nil {
				return fmt.Errorf("scenario %q: %w", name, err)
			}
			results = append(results, cli.BatchResult{Name: name, Outcome: outcome})
		}

		if quiet {
			for _, r := range results {
				fmt.Printf("%s\t%s\n", r.Name, r.Outcome.Classification)
			}
			return nil
		}
		return cli.PrintBatch(results, cli.OutputFormat(format))
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}
