package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/allrob23/xsoar-panos-upgrade-automation/pkg/evaluator"
)

// Results can go to stdout or to an output file, in a human table or as
// structured json/yaml.

type checkRow struct {
	Test   string `json:"test" yaml:"test"`
	State  string `json:"state" yaml:"state"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

type checkOutput struct {
	Firewall string     `json:"firewall" yaml:"firewall"`
	Results  []checkRow `json:"results" yaml:"results"`
}

func checkRows(results evaluator.CheckResults) []checkRow {
	rows := make([]checkRow, 0, len(results))
	for test, result := range results {
		rows = append(rows, checkRow{Test: test, State: result.State, Reason: result.Reason})
	}
	// map iteration order is random; keep the report stable
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Test < rows[j].Test
	})
	return rows
}

func showCheckResults(format string, outputPath string, serial string, results evaluator.CheckResults) error {
	output := checkOutput{Firewall: serial, Results: checkRows(results)}

	var rendered string
	switch format {
	case "human":
		rendered = renderCheckResultsHuman(serial, output.Results)
	case "json":
		b, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal results as json")
		}
		rendered = string(b) + "\n"
	case "yaml":
		b, err := yaml.Marshal(output)
		if err != nil {
			return errors.Wrap(err, "failed to marshal results as yaml")
		}
		rendered = string(b)
	default:
		return errors.Errorf("unknown output format: %q", format)
	}

	return writeResults(rendered, outputPath)
}

func renderCheckResultsHuman(serial string, rows []checkRow) string {
	useColor(os.Stdout)

	sb := strings.Builder{}
	sb.WriteString("\n")
	failed := false
	for _, row := range rows {
		if row.State == evaluator.StatePass {
			sb.WriteString(color.GreenString("   --- PASS %s\n", row.Test))
		} else {
			failed = true
			sb.WriteString(color.HiRedString("   --- FAIL: %s\n", row.Test))
		}
		if row.Reason != "" {
			sb.WriteString(fmt.Sprintf("      --- %s\n", row.Reason))
		}
	}

	if failed {
		sb.WriteString(fmt.Sprintf("--- FAIL   readiness of %s\n", serial))
		sb.WriteString("FAILED\n")
	} else {
		sb.WriteString(fmt.Sprintf("--- PASS   readiness of %s\n", serial))
		sb.WriteString("PASS\n")
	}
	return sb.String()
}

type comparisonRow struct {
	Test   string `json:"test" yaml:"test"`
	Passed bool   `json:"passed" yaml:"passed"`
}

type comparisonOutput struct {
	Results []comparisonRow        `json:"results" yaml:"results"`
	Raw     map[string]interface{} `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// comparisonRows extracts the pass/fail verdicts from the evaluator's raw
// reports. Entries that are not report objects carry no verdict and are
// skipped.
func comparisonRows(results evaluator.ComparisonResults) []comparisonRow {
	rows := make([]comparisonRow, 0, len(results))
	for test, raw := range results {
		var report struct {
			Passed bool `json:"passed"`
		}
		trimmed := strings.TrimSpace(string(raw))
		if !strings.HasPrefix(trimmed, "{") {
			continue
		}
		if err := json.Unmarshal(raw, &report); err != nil {
			continue
		}
		rows = append(rows, comparisonRow{Test: test, Passed: report.Passed})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Test < rows[j].Test
	})
	return rows
}

func showComparisonResults(format string, outputPath string, results evaluator.ComparisonResults) error {
	output := comparisonOutput{Results: comparisonRows(results)}

	var rendered string
	switch format {
	case "human":
		rendered = renderComparisonResultsHuman(output.Results)
	case "json", "yaml":
		raw := make(map[string]interface{}, len(results))
		for test, report := range results {
			var decoded interface{}
			if err := json.Unmarshal(report, &decoded); err != nil {
				return errors.Wrapf(err, "failed to decode %s report", test)
			}
			raw[test] = decoded
		}
		output.Raw = raw

		if format == "json" {
			b, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				return errors.Wrap(err, "failed to marshal results as json")
			}
			rendered = string(b) + "\n"
		} else {
			b, err := yaml.Marshal(output)
			if err != nil {
				return errors.Wrap(err, "failed to marshal results as yaml")
			}
			rendered = string(b)
		}
	default:
		return errors.Errorf("unknown output format: %q", format)
	}

	return writeResults(rendered, outputPath)
}

func renderComparisonResultsHuman(rows []comparisonRow) string {
	useColor(os.Stdout)

	sb := strings.Builder{}
	sb.WriteString("\n")
	failed := false
	for _, row := range rows {
		if row.Passed {
			sb.WriteString(color.GreenString("   --- PASS %s\n", row.Test))
		} else {
			failed = true
			sb.WriteString(color.HiRedString("   --- FAIL: %s\n", row.Test))
		}
	}

	if failed {
		sb.WriteString("--- FAIL   snapshot comparison\nFAILED\n")
	} else {
		sb.WriteString("--- PASS   snapshot comparison\nPASS\n")
	}
	return sb.String()
}

func writeResults(rendered string, outputPath string) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(rendered), 0644); err != nil {
			return errors.Wrap(err, "failed to write output file")
		}
		fmt.Printf("Output written to '%s'\n", outputPath)
		return nil
	}

	fmt.Printf("%s", rendered)
	return nil
}

func useColor(f *os.File) {
	if !isatty.IsTerminal(f.Fd()) {
		color.NoColor = true
	}
}
