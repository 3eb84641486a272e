package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppopth/rs-listdecode/rs"
	"github.com/ppopth/rs-listdecode/sweep"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/pflag"
)

func main() {
	configFile := pflag.StringP("config", "c", "", "YAML sweep configuration (built-in defaults when empty)")
	outDir := pflag.StringP("out", "o", "sweep-out", "Directory for the report, charts, metrics and failing transcripts")
	workers := pflag.IntP("workers", "w", 0, "Number of concurrent trials (overrides the configuration when positive)")
	seed := pflag.Int64("seed", 0, "Random seed (overrides the configuration when non-zero)")
	logLevel := pflag.String("log-level", "info", "Log level: debug, info, warn or error")
	pflag.Parse()

	if err := logging.SetLogLevel("*", *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q: %v\n", *logLevel, err)
		os.Exit(1)
	}

	cfg := sweep.DefaultConfig()
	if *configFile != "" {
		var err error
		cfg, err = sweep.LoadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create %s: %v\n", *outDir, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	metrics := sweep.NewMetrics()
	start := time.Now()
	report, err := sweep.Run(ctx, cfg, metrics)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: sweep failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Sweep finished in %v\n", time.Since(start).Round(time.Millisecond))

	if err := writeReport(filepath.Join(*outDir, "report.json"), report); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := writeCharts(filepath.Join(*outDir, "charts.html"), report); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := metrics.WriteTextfile(filepath.Join(*outDir, "metrics.prom")); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write metrics: %v\n", err)
		os.Exit(1)
	}
	if err := writeFailures(filepath.Join(*outDir, "failures"), report.Failures); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printSummary(report)
	fmt.Printf("\nResults written to %s\n", *outDir)
}

func writeReport(path string, report *sweep.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func writeCharts(path string, report *sweep.Report) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create charts: %w", err)
	}
	if err := sweep.WriteCharts(report, out); err != nil {
		out.Close()
		return fmt.Errorf("failed to render charts: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write charts: %w", err)
	}
	return nil
}

// writeFailures stores each failing transcript so it can be replayed with
// rs-decode
func writeFailures(dir string, failures []sweep.Failure) error {
	if len(failures) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	for i, fail := range failures {
		data, err := rs.MarshalCodeword(fail.Transcript)
		if err != nil {
			return fmt.Errorf("failed to encode failure %d: %w", i, err)
		}
		name := fmt.Sprintf("%03d-%s-%s.pb", i, fail.Scenario, strings.Join(fail.Decoders, "-"))
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return fmt.Errorf("failed to write failure %d: %w", i, err)
		}
	}
	return nil
}

func printSummary(report *sweep.Report) {
	type totals struct{ runs, unique, list, infeasible int }
	var order []string
	byScenario := make(map[string]*totals)
	for _, row := range report.Rows {
		t, ok := byScenario[row.Scenario]
		if !ok {
			t = &totals{}
			byScenario[row.Scenario] = t
			order = append(order, row.Scenario)
		}
		t.runs += row.Runs
		t.unique += row.Unique
		t.list += row.List
		t.infeasible += row.ListInfeasible
	}

	fmt.Printf("\n%-24s %8s %10s %10s %12s\n", "scenario", "runs", "unique", "list", "infeasible")
	for _, name := range order {
		t := byScenario[name]
		fmt.Printf("%-24s %8d %9.1f%% %9.1f%% %12d\n", name, t.runs,
			100*float64(t.unique)/float64(t.runs), 100*float64(t.list)/float64(t.runs), t.infeasible)
	}
}
