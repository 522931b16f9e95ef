// Command trainmodel fits a Gaussian naive-Bayes model from labeled sensor
// data and writes it as model JSON for the engine's -model / SHINDAN_MODEL_PATH
// option.
//
// Usage:
//
//	go run ./scripts/trainmodel -in readings.csv -out model.json
//
// The CSV's first column is the failure label; remaining columns are named
// sensor features, for example:
//
//	label,coolant_temp,stft,ltft,fan_duty
//	cooling_fan_not_operating,117,2.1,1.4,0
//	vacuum_leak,92,14.8,11.2,35
//	normal,90,1.2,0.8,30
//
// Class priors come from label frequency in the data. Per-class variance is
// floored so a constant column cannot produce a degenerate Gaussian.
package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"

	"github.com/wrenchworks-ai/shindan/internal/classifier"
)

const varianceFloor = 1e-6

func main() {
	inPath := flag.String("in", "", "labeled CSV of sensor readings (required)")
	outPath := flag.String("out", "model.json", "output model path")
	version := flag.String("version", "1", "model version string")
	flag.Parse()

	if *inPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	features, samples, err := readSamples(*inPath)
	if err != nil {
		log.Fatalf("read %s: %v", *inPath, err)
	}
	if len(samples) == 0 {
		log.Fatalf("read %s: no data rows", *inPath)
	}

	m := fit(features, samples)
	m.Version = *version
	if err := m.Validate(); err != nil {
		log.Fatalf("trained model invalid: %v", err)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("create %s: %v", *outPath, err)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		log.Fatalf("write model: %v", err)
	}
	if err := out.Close(); err != nil {
		log.Fatalf("close %s: %v", *outPath, err)
	}

	fmt.Printf("trained %d classes over %d features from %d samples -> %s\n",
		len(m.Classes), len(m.Features), len(samples), *outPath)
}

type sample struct {
	label  string
	values []float64
}

func readSamples(path string) ([]string, []sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 {
		return nil, nil, fmt.Errorf("need a label column and at least one feature column")
	}
	features := header[1:]

	var samples []sample
	line := 1
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		line++
		if len(record) != len(header) {
			return nil, nil, fmt.Errorf("line %d: %d fields, want %d", line, len(record), len(header))
		}
		s := sample{label: record[0], values: make([]float64, len(features))}
		if s.label == "" {
			return nil, nil, fmt.Errorf("line %d: empty label", line)
		}
		for i, raw := range record[1:] {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d, column %s: %w", line, features[i], err)
			}
			s.values[i] = v
		}
		samples = append(samples, s)
	}
	return features, samples, nil
}

// fit computes per-class feature means and variances plus frequency priors.
func fit(features []string, samples []sample) classifier.Model {
	byClass := make(map[string][]sample)
	for _, s := range samples {
		byClass[s.label] = append(byClass[s.label], s)
	}

	names := make([]string, 0, len(byClass))
	for name := range byClass {
		names = append(names, name)
	}
	sort.Strings(names)

	m := classifier.Model{Features: features}
	for _, name := range names {
		group := byClass[name]
		n := float64(len(group))

		mean := make([]float64, len(features))
		for _, s := range group {
			for i, v := range s.values {
				mean[i] += v
			}
		}
		for i := range mean {
			mean[i] /= n
		}

		variance := make([]float64, len(features))
		for _, s := range group {
			for i, v := range s.values {
				d := v - mean[i]
				variance[i] += d * d
			}
		}
		for i := range variance {
			variance[i] /= n
			if variance[i] < varianceFloor {
				variance[i] = varianceFloor
			}
		}

		m.Classes = append(m.Classes, classifier.ClassModel{
			Name:     name,
			Prior:    n / float64(len(samples)),
			Mean:     mean,
			Variance: variance,
		})
	}
	return m
}
