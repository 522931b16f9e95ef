package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	shindan "github.com/wrenchworks-ai/shindan"
	"github.com/wrenchworks-ai/shindan/internal/classifier"
)

var (
	diagnoseSensors  []string
	diagnoseDTCs     []string
	diagnoseSymptoms []string
	diagnoseOverlay  string
	diagnoseModel    string
	diagnoseJSON     bool
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Run a one-shot diagnosis from the command line",
	Long: `Run a one-shot diagnosis from sensor readings, trouble codes, and
symptom descriptions.

Examples:
  shindan diagnose --sensor coolant_temp=118 --dtc P0217 --symptom "engine overheating"
  shindan diagnose --sensor stft=15 --sensor ltft=12 --dtc P0171 --json
  shindan diagnose --symptom "rough idle" --model model.json`,
	RunE: runDiagnose,
}

func init() {
	diagnoseCmd.Flags().StringArrayVar(&diagnoseSensors, "sensor", nil, "Sensor reading as name=value (repeatable)")
	diagnoseCmd.Flags().StringArrayVar(&diagnoseDTCs, "dtc", nil, "Diagnostic trouble code (repeatable)")
	diagnoseCmd.Flags().StringArrayVar(&diagnoseSymptoms, "symptom", nil, "Symptom description (repeatable)")
	diagnoseCmd.Flags().StringVar(&diagnoseOverlay, "overlay", "", "YAML knowledge overlay to merge into the catalog")
	diagnoseCmd.Flags().StringVar(&diagnoseModel, "model", "", "Trained classifier model (JSON) to seed priors")
	diagnoseCmd.Flags().BoolVar(&diagnoseJSON, "json", false, "Output the result as JSON")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	sensors, err := parseSensorFlags(diagnoseSensors)
	if err != nil {
		return err
	}
	if len(sensors) == 0 && len(diagnoseDTCs) == 0 && len(diagnoseSymptoms) == 0 {
		return fmt.Errorf("nothing to diagnose: provide at least one --sensor, --dtc, or --symptom")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	opts := []shindan.Option{shindan.WithLogger(logger)}
	if diagnoseOverlay != "" {
		opts = append(opts, shindan.WithKnowledgeOverlay(diagnoseOverlay))
	}
	if diagnoseModel != "" {
		opts = append(opts, shindan.WithClassifierModel(diagnoseModel))
	}
	engine, err := shindan.New(opts...)
	if err != nil {
		return err
	}

	result := engine.Diagnose(shindan.Input{
		Sensors:  sensors,
		DTCs:     diagnoseDTCs,
		Symptoms: diagnoseSymptoms,
	})

	if diagnoseJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printResult(result)
	return nil
}

func parseSensorFlags(raw []string) ([]shindan.SensorReading, error) {
	out := make([]shindan.SensorReading, 0, len(raw))
	for _, s := range raw {
		name, valueStr, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --sensor %q: expected name=value", s)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --sensor %q: %w", s, err)
		}
		out = append(out, shindan.SensorReading{Name: strings.TrimSpace(name), Value: value})
	}
	return out, nil
}

func printResult(r *shindan.Result) {
	bold := color.New(color.Bold)
	dim := color.New(color.FgHiBlack)

	phaseColor := map[shindan.Phase]*color.Color{
		shindan.PhaseInitial:       color.New(color.FgHiBlack),
		shindan.PhaseInvestigating: color.New(color.FgYellow),
		shindan.PhaseConfident:     color.New(color.FgGreen),
	}[r.Phase]

	fmt.Println()
	phaseColor.Printf("  [%s]", r.Phase)
	bold.Printf("  %s", r.Diagnosis)
	fmt.Printf("  (%.0f%%)\n", r.Confidence*100)
	if r.Description != "" {
		fmt.Printf("  %s\n", r.Description)
	}

	if len(r.Evidence) > 0 {
		fmt.Println()
		dim.Println("  Evidence:")
		for _, e := range r.Evidence {
			fmt.Printf("    + %s\n", e)
		}
	}
	for _, code := range r.UnknownDTCs {
		color.Yellow("    ? %s (not in the code table, ignored)", code)
	}

	if len(r.Alternatives) > 0 {
		fmt.Println()
		dim.Println("  Also considered:")
		for _, a := range r.Alternatives {
			fmt.Printf("    - %s (%.0f%%)\n", a.Failure, a.Probability*100)
		}
	}

	if r.MLScores != nil && len(r.MLScores.Systems) > 0 {
		fmt.Println()
		dim.Println("  Classifier, by system:")
		for _, system := range classifier.SortedKeys(r.MLScores.Systems) {
			fmt.Printf("    %-14s %4.0f%%\n", system, r.MLScores.Systems[system]*100)
		}
	}

	if len(r.RecommendedActions) > 0 {
		fmt.Println()
		bold.Println("  Recommended actions:")
		for i, action := range r.RecommendedActions {
			fmt.Printf("    %d. %s\n", i+1, action)
		}
	}
	if len(r.DiscriminatingTests) > 0 {
		fmt.Println()
		dim.Println("  Confirming tests:")
		for _, test := range r.DiscriminatingTests {
			fmt.Printf("    - %s\n", test)
		}
	}
	if r.RepairEstimate != "" {
		fmt.Printf("\n  Estimated repair cost: %s\n", r.RepairEstimate)
	}

	if r.NextTest != nil {
		fmt.Println()
		bold.Println("  Suggested next test:")
		fmt.Printf("    %s: %s\n", r.NextTest.Test, r.NextTest.Description)
	}
	fmt.Println()
}
