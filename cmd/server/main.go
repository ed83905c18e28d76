package main

import (
	"flag"
	"fmt"
	"log"

	"sortbench/pkg/api"
	"sortbench/pkg/common"
	"sortbench/pkg/config"
	"sortbench/pkg/core"
	"sortbench/pkg/data"
	"sortbench/pkg/search"
	"sortbench/pkg/storage"
	"sortbench/pkg/workload"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config")
	dataPath := flag.String("data", "", "Dataset file (overrides config)")
	strategy := flag.String("strategy", "exponential", "Default lookup strategy")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dataPath != "" {
		cfg.Data.Path = *dataPath
	}

	fmt.Println("sortbench lookup server starting...")

	keys, err := loadOrGenerate(cfg)
	if err != nil {
		log.Fatalf("Failed to prepare dataset: %v", err)
	}
	data.SortKeys(keys)
	records := data.AddValues(keys)

	est := workload.NewNoisyOracle(records,
		workload.NewRand(cfg.Benchmark.Seed+1), cfg.Benchmark.MaxEstimateError)
	store, err := core.NewStore(records, search.Strategy(*strategy), est)
	if err != nil {
		log.Fatalf("Failed to build store: %v", err)
	}
	log.Printf("Store ready: %d records", store.Len())

	var results *storage.ResultStore
	if cfg.Benchmark.ResultsPath != "" {
		results, err = storage.OpenResultStore(cfg.Benchmark.ResultsPath)
		if err != nil {
			log.Fatalf("Failed to open result store: %v", err)
		}
		defer results.Close()
	}

	srv := api.NewServer(store, results)
	log.Fatal(srv.Start(cfg.Server.Addr))
}

// loadOrGenerate loads the configured dataset, widening uint32 keys, or
// generates a synthetic one when no path is set.
func loadOrGenerate(cfg *config.Config) ([]uint64, error) {
	if cfg.Data.Path == "" {
		return workload.Keys[uint64](
			workload.NewRand(cfg.Benchmark.Seed),
			workload.Distribution(cfg.Data.Distribution),
			cfg.Data.Size,
			cfg.Data.MaxGap,
		)
	}

	dt, err := common.ResolveType(cfg.Data.Path)
	if err != nil {
		return nil, err
	}
	if dt == common.Uint64 {
		return data.LoadKeys[uint64](cfg.Data.Path)
	}

	narrow, err := data.LoadKeys[uint32](cfg.Data.Path)
	if err != nil {
		return nil, err
	}
	keys := make([]uint64, len(narrow))
	for i, k := range narrow {
		keys[i] = uint64(k)
	}
	return keys, nil
}
