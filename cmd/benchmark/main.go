package main

import (
	"flag"
	"fmt"
	"log"

	"sortbench/pkg/baseline"
	"sortbench/pkg/bench"
	"sortbench/pkg/common"
	"sortbench/pkg/config"
	"sortbench/pkg/data"
	"sortbench/pkg/search"
	"sortbench/pkg/storage"
	"sortbench/pkg/workload"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config")
	dataPath := flag.String("data", "", "Dataset file (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dataPath != "" {
		cfg.Data.Path = *dataPath
	}

	fmt.Printf("sortbench Correction Benchmark (lookups=%d, repeats=%d, seed=%d)\n",
		cfg.Benchmark.Lookups, cfg.Benchmark.Repeats, cfg.Benchmark.Seed)
	fmt.Println("---------------------------------------------------")

	if cfg.Benchmark.PinCore >= 0 {
		if err := bench.PinToCore(cfg.Benchmark.PinCore); err != nil {
			log.Printf("Warning: %v", err)
		}
	}

	if cfg.Data.Path == "" {
		label := fmt.Sprintf("synthetic-%s-%d", cfg.Data.Distribution, cfg.Data.Size)
		fmt.Printf(">> Generating %s keys (n=%d)...\n", cfg.Data.Distribution, cfg.Data.Size)
		keys, err := workload.Keys[uint64](
			workload.NewRand(cfg.Benchmark.Seed),
			workload.Distribution(cfg.Data.Distribution),
			cfg.Data.Size,
			cfg.Data.MaxGap,
		)
		if err != nil {
			log.Fatalf("Failed to generate keys: %v", err)
		}
		run(cfg, label, keys)
		return
	}

	dt, err := common.ResolveType(cfg.Data.Path)
	if err != nil {
		log.Fatalf("Failed to resolve dataset type: %v", err)
	}
	fmt.Printf(">> Loading %s dataset %s...\n", dt, cfg.Data.Path)

	switch dt {
	case common.Uint32:
		keys, err := data.LoadKeys[uint32](cfg.Data.Path)
		if err != nil {
			log.Fatalf("Failed to load dataset: %v", err)
		}
		run(cfg, cfg.Data.Path, keys)
	case common.Uint64:
		keys, err := data.LoadKeys[uint64](cfg.Data.Path)
		if err != nil {
			log.Fatalf("Failed to load dataset: %v", err)
		}
		run(cfg, cfg.Data.Path, keys)
	}
}

func run[K common.Key](cfg *config.Config, label string, keys []K) {
	data.SortKeys(keys)
	records := data.AddValues(keys)

	if data.IsUnique(records) {
		fmt.Printf("   %d records, duplicate free\n", len(records))
	} else {
		deduped := len(data.RemoveDuplicates(records))
		fmt.Printf("   %d records, %d distinct keys\n", len(records), deduped)
	}

	lookups, err := workload.Lookups(workload.NewRand(cfg.Benchmark.Seed), records, cfg.Benchmark.Lookups)
	if err != nil {
		log.Fatalf("Failed to build lookups: %v", err)
	}
	est := workload.NewNoisyOracle(records, workload.NewRand(cfg.Benchmark.Seed+1), cfg.Benchmark.MaxEstimateError)

	fmt.Printf(">> Running strategies (max estimate error: %d)...\n", cfg.Benchmark.MaxEstimateError)

	opts := bench.Options{Dataset: label, PinCore: -1}
	index := baseline.Build(records, 32)

	var all []bench.Measurement
	for rep := 0; rep < cfg.Benchmark.Repeats; rep++ {
		fmt.Printf("   Run %d/%d\n", rep+1, cfg.Benchmark.Repeats)

		for _, name := range cfg.Benchmark.Strategies {
			m, err := bench.Run(search.Strategy(name), records, lookups, est, opts)
			if err != nil {
				log.Fatalf("Strategy %s failed: %v", name, err)
			}
			printMeasurement(m)
			all = append(all, m)
		}

		m, err := bench.RunBaseline(index, lookups, opts)
		if err != nil {
			log.Fatalf("Baseline failed: %v", err)
		}
		printMeasurement(m)
		all = append(all, m)
	}

	if cfg.Benchmark.ResultsPath != "" {
		store, err := storage.OpenResultStore(cfg.Benchmark.ResultsPath)
		if err != nil {
			log.Fatalf("Failed to open result store: %v", err)
		}
		defer store.Close()

		if err := store.AppendBatch(all); err != nil {
			log.Fatalf("Failed to persist measurements: %v", err)
		}
		fmt.Printf(">> Persisted %d measurements to %s\n", len(all), cfg.Benchmark.ResultsPath)
	}
}

func printMeasurement(m bench.Measurement) {
	fmt.Printf("     %-12s %10.1f ns/lookup  (total %d ms, failures %d)\n",
		m.Strategy, m.AvgNs, m.TotalNs/1e6, m.Failures)
}
