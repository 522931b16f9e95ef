package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	shindan "github.com/wrenchworks-ai/shindan"
)

var (
	sessionMake     string
	sessionModel    string
	sessionYear     int
	sessionSymptoms []string
	sessionOverlay  string
	sessionModelKey string
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Run an interactive diagnostic session",
	Long: `Run an interactive diagnostic session in the terminal. The engine keeps a
belief state across observations and recommends the most informative next
test after each one.

Commands at the prompt:
  yes <test>      record the recommended (or named) test as observed
  no <test>       record it as absent
  dtc <code>      record a trouble code, e.g. dtc P0480
  symptom <text>  record a free-text symptom
  ruleout <id>    eliminate a failure hypothesis
  status          show the current hypothesis ranking
  conclude        finalize and print the report
  explain         print the reasoning walkthrough
  quit            exit without concluding`,
	RunE: runSession,
}

func init() {
	sessionCmd.Flags().StringVar(&sessionMake, "make", "", "Vehicle make")
	sessionCmd.Flags().StringVar(&sessionModel, "model", "", "Vehicle model")
	sessionCmd.Flags().IntVar(&sessionYear, "year", 0, "Vehicle year")
	sessionCmd.Flags().StringArrayVar(&sessionSymptoms, "symptom", nil, "Initial symptom description (repeatable)")
	sessionCmd.Flags().StringVar(&sessionOverlay, "overlay", "", "YAML knowledge overlay to merge into the catalog")
	sessionCmd.Flags().StringVar(&sessionModelKey, "ml-model", "", "Trained classifier model (JSON) to seed priors")
}

func runSession(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	opts := []shindan.Option{shindan.WithLogger(logger)}
	if sessionOverlay != "" {
		opts = append(opts, shindan.WithKnowledgeOverlay(sessionOverlay))
	}
	if sessionModelKey != "" {
		opts = append(opts, shindan.WithClassifierModel(sessionModelKey))
	}
	engine, err := shindan.New(opts...)
	if err != nil {
		return err
	}

	vehicle := shindan.VehicleInfo{Make: sessionMake, Model: sessionModel, Year: sessionYear}
	sess := engine.StartSession(vehicle, sessionSymptoms, nil)

	bold := color.New(color.Bold)
	dim := color.New(color.FgHiBlack)

	bold.Printf("session %s\n", sess.ID())
	printStatus(engine, sess)
	printRecommendation(engine, sess)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		dim.Print("> ")
		if !scanner.Scan() {
			break
		}
		verb, rest, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		rest = strings.TrimSpace(rest)

		switch verb {
		case "":
			continue
		case "yes", "no":
			test := rest
			if test == "" {
				if rec := engine.RecommendTest(sess); rec != nil {
					test = rec.Test
				}
			}
			if test == "" {
				color.Yellow("no test named and nothing recommended")
				continue
			}
			engine.Observe(sess, test, verb == "yes", "")
		case "dtc":
			if !engine.ObserveDTC(sess, rest) {
				color.Yellow("%s is not in the code table", rest)
				continue
			}
		case "symptom":
			if !engine.ObserveSymptom(sess, rest) {
				color.Yellow("no known symptom pattern matches %q", rest)
				continue
			}
		case "ruleout":
			engine.RuleOut(sess, rest)
		case "status":
			printStatus(engine, sess)
			continue
		case "conclude":
			c := engine.Conclude(sess)
			fmt.Println()
			fmt.Println(c.Report)
			return nil
		case "explain":
			fmt.Println()
			fmt.Println(engine.Explain(sess))
			continue
		case "quit", "exit":
			return nil
		default:
			color.Yellow("unknown command %q", verb)
			continue
		}

		printStatus(engine, sess)
		snap := engine.Snapshot(sess)
		if snap.Concluded {
			bold.Println("\nsession concluded:")
			fmt.Println(snap.Conclusion.Report)
			return nil
		}
		printRecommendation(engine, sess)
	}
	return scanner.Err()
}

func printStatus(engine *shindan.Engine, sess *shindan.Session) {
	snap := engine.Snapshot(sess)
	dim := color.New(color.FgHiBlack)
	fmt.Println()
	dim.Printf("  entropy %.2f bits\n", snap.EntropyBits)
	for _, h := range snap.TopHypotheses {
		fmt.Printf("  %5.1f%%  %s\n", h.Probability*100, h.Failure)
	}
}

func printRecommendation(engine *shindan.Engine, sess *shindan.Session) {
	if rec := engine.RecommendTest(sess); rec != nil {
		bold := color.New(color.Bold)
		bold.Printf("\n  next test: %s", rec.Test)
		fmt.Printf("  (gain %.2f bits)\n", rec.ExpectedInfoGain)
		if rec.Description != "" {
			fmt.Printf("  %s\n", rec.Description)
		}
	}
	fmt.Println()
}
