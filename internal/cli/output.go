package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/gasguard/gasguard/internal/client"
)

// OutputFormat specifies the output format for CLI commands
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// PrintOutcome outputs a single evaluation outcome in the specified format
func PrintOutcome(outcome *client.Outcome, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(outcome)
	case FormatYAML:
		return printYAML(outcome)
	case FormatTable:
		return printOutcomeTable([]outcomeRow{{Name: "-", Outcome: outcome}})
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// BatchResult pairs a scenario name with its evaluation outcome.
type BatchResult struct {
	Name    string          `json:"name" yaml:"name"`
	Outcome *client.Outcome `json:"result" yaml:"result"`
}

// PrintBatch outputs a set of named evaluation outcomes
func PrintBatch(results []BatchResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(results)
	case FormatYAML:
		return printYAML(results)
	case FormatTable:
		rows := make([]outcomeRow, len(results))
		for i, r := range results {
			rows[i] = outcomeRow{Name: r.Name, Outcome: r.Outcome}
		}
		return printOutcomeTable(rows)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// PrintThresholds outputs the active threshold snapshot
func PrintThresholds(view *client.ThresholdsView, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return printJSON(view)
	case FormatYAML:
		return printYAML(view)
	case FormatTable:
		t := view.Thresholds
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Threshold", "Value")
		table.Append("Elderly age (years)", fmt.Sprintf("%d", t.ElderlyAgeYears))
		table.Append("High-risk ASA", fmt.Sprintf("%d", t.HighRiskASA))
		table.Append("High-risk FiO2 min (%)", fmt.Sprintf("%.1f", t.HighRiskFiO2Pct))
		table.Append("Low-flow min (L/min)", fmt.Sprintf("%.2f", t.LowFlowTotalLPM))
		table.Append("Agent max (%)", fmt.Sprintf("%.1f", t.AgentMaxPct))
		table.Append("Agent sensitive (%)", fmt.Sprintf("%.1f", t.AgentSensitivePct))
		table.Append("Low weight (kg)", fmt.Sprintf("%.1f", t.LowWeightKg))
		table.Append("Low compliance (mL/cmH2O)", fmt.Sprintf("%.1f", t.LowComplianceMLPerCmH2O))
		if err := table.Render(); err != nil {
			return err
		}
		fmt.Printf("ETag: %s\n", view.ETag)
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

type outcomeRow struct {
	Name    string
	Outcome *client.Outcome
}

func printOutcomeTable(rows []outcomeRow) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Scenario", "FiO2 (%)", "Total Flow (L/min)", "Classification", "Indicator", "Explanation")

	for _, row := range rows {
		o := row.Outcome
		explanation := o.Explanation
		if len(explanation) > 60 {
			explanation = explanation[:57] + "..."
		}
		table.Append(
			row.Name,
			fmt.Sprintf("%.1f", o.FiO2Pct),
			fmt.Sprintf("%.1f", o.TotalFlow),
			o.Classification,
			o.Indicator,
			explanation,
		)
	}

	return table.Render()
}

func printJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func printYAML(data interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(data)
}
