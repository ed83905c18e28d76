package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"sortbench/pkg/common"
	"sortbench/pkg/data"
	"sortbench/pkg/workload"
)

func main() {
	out := flag.String("out", "", "Output file; must end in _uint32 or _uint64")
	n := flag.Int("n", 1_000_000, "Number of keys")
	dist := flag.String("distribution", "uniform", "Key distribution: dense | uniform | zorder")
	maxGap := flag.Uint("max-gap", 16, "Maximum gap for the uniform distribution")
	seed := flag.Uint64("seed", workload.DefaultSeed, "Generator seed")
	dedup := flag.Bool("dedup", false, "Remove duplicate keys before writing")
	flag.Parse()

	if *out == "" {
		log.Fatal("Missing -out")
	}
	dt, err := common.ResolveType(*out)
	if err != nil {
		log.Fatalf("Invalid output name: %v", err)
	}
	distribution := workload.Distribution(strings.ToLower(*dist))
	if !distribution.Valid() {
		log.Fatalf("Unknown distribution %q", *dist)
	}

	switch dt {
	case common.Uint32:
		generate[uint32](*out, distribution, *n, uint32(*maxGap), *seed, *dedup)
	case common.Uint64:
		generate[uint64](*out, distribution, *n, uint32(*maxGap), *seed, *dedup)
	}
}

func generate[K common.Key](out string, dist workload.Distribution, n int, maxGap uint32, seed uint64, dedup bool) {
	start := time.Now()

	keys, err := workload.Keys[K](workload.NewRand(seed), dist, n, maxGap)
	if err != nil {
		log.Fatalf("Failed to generate keys: %v", err)
	}
	data.SortKeys(keys)
	if dedup {
		keys = data.RemoveDuplicateKeys(keys)
	}

	if err := data.WriteKeys(keys, out); err != nil {
		log.Fatalf("Failed to write dataset: %v", err)
	}

	elapsed := time.Since(start)
	fmt.Printf("wrote %d keys to %s in %d ms (%.1f M keys/s)\n",
		len(keys), out, elapsed.Milliseconds(),
		float64(len(keys))/1000/float64(elapsed.Milliseconds()+1))
}
