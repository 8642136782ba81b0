// Package main provides a performance benchmarking tool for the Qualens CLI.
// It measures execution times across different store sizes and command types,
// running each test multiple times, treating the first successful run as cold
// and averaging the rest as warm, generating CSV output for performance
// analysis and documentation.
//
// Prerequisites:
// - qualens binary installed and available in PATH
// - A writable temp directory for the seeded SQLite stores
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory to hold the seeded store databases
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset  string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir  string
	Timeout  time.Duration
	Runs     int
	Owner    string
	Datasets map[string]int // dataset name -> record count
	Commands []string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir: workDir,
		Timeout: 2 * time.Minute,
		Runs:    4,
		Owner:   "bench-owner",
		Datasets: map[string]int{
			"small":  1000,
			"medium": 20000,
			"large":  100000,
		},
		Commands: []string{
			"metrics", "trends", "compare-periods", "compare-models",
			"tool-impact", "anomalies", "predict", "risk",
			"sentiment", "categories", "error-patterns", "temporal",
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	dbPaths, err := seedDatasets(config)
	if err != nil {
		fmt.Printf("Failed to seed datasets: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config, dbPaths)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the qualens binary and work dir exist.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("qualens"); err != nil {
		return fmt.Errorf("qualens binary not found in PATH")
	}
	if _, err := os.Stat(config.WorkDir); os.IsNotExist(err) {
		return fmt.Errorf("work dir %s not found", config.WorkDir)
	}
	return nil
}

// seedDatasets seeds one SQLite store per dataset size and returns the paths.
func seedDatasets(config BenchmarkConfig) (map[string]string, error) {
	dbPaths := make(map[string]string, len(config.Datasets))
	for name, count := range config.Datasets {
		dbPath := filepath.Join(config.WorkDir, fmt.Sprintf("qualens_bench_%s.db", name))
		_ = os.Remove(dbPath)

		fmt.Printf("Seeding %s dataset (%d records)...\n", name, count)
		cmd := exec.Command("qualens", "store", "seed", config.Owner,
			"--store-db-connect", dbPath,
			"--count", fmt.Sprintf("%d", count),
			"--days", "90",
			"--seed", "42")
		if output, err := cmd.CombinedOutput(); err != nil {
			return nil, fmt.Errorf("seeding %s failed: %v\nOutput: %s", name, err, string(output))
		}
		dbPaths[name] = dbPath
	}
	return dbPaths, nil
}

// runBenchmarks executes all benchmark tests across configured datasets.
func runBenchmarks(config BenchmarkConfig, dbPaths map[string]string) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %d commands, %v timeout, %d runs each\n",
		len(config.Datasets), len(config.Commands), config.Timeout, config.Runs)

	for dataset, dbPath := range dbPaths {
		fmt.Printf("Benchmarking %s dataset\n", dataset)
		for _, command := range config.Commands {
			results = append(results, runBenchmarkSuite(config, dataset, dbPath, command))
		}
	}

	return results
}

// runBenchmarkSuite runs one command against one dataset and folds the
// timings into a result row.
func runBenchmarkSuite(config BenchmarkConfig, dataset, dbPath, command string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, dataset)

	cold, times := runBenchmark(config, dbPath, command)

	coldStr := "TIMEOUT"
	if cold > 0 {
		coldStr = fmt.Sprintf("%.3fs", cold)
	}

	warmStr := "TIMEOUT"
	if len(times) > 0 {
		var sum float64
		for _, t := range times {
			sum += t
		}
		warmStr = fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldStr, warmStr)

	return BenchmarkResult{
		Dataset:  dataset,
		Command:  command,
		ColdTime: coldStr,
		WarmTime: warmStr,
	}
}

// runBenchmark executes a qualens command multiple times and returns the
// cold time plus warm times.
func runBenchmark(config BenchmarkConfig, dbPath, command string) (coldTime float64, warmTimes []float64) {
	args := []string{command, config.Owner,
		"--store-db-connect", dbPath,
		"--period", "90d",
		"--output", "json",
	}

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("qualens", args...)

		done := make(chan bool)
		var cmdErr error

		go func() {
			_, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/qualens_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"dataset", "command", "cold_time", "warm_time"}); err != nil {
		return err
	}

	for _, result := range results {
		row := []string{result.Dataset, result.Command, result.ColdTime, result.WarmTime}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary prints a table of all results to stdout.
func printSummary(results []BenchmarkResult) {
	fmt.Println("\nBenchmark Summary")
	fmt.Println(strings.Repeat("-", 64))
	fmt.Printf("%-10s %-18s %-12s %-12s\n", "DATASET", "COMMAND", "COLD", "WARM")
	for _, result := range results {
		fmt.Printf("%-10s %-18s %-12s %-12s\n",
			result.Dataset, result.Command, result.ColdTime, result.WarmTime)
	}
}
