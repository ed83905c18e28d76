package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"sortbench/pkg/bench"
	"sortbench/pkg/core"
	"sortbench/pkg/search"
	"sortbench/pkg/storage"
	"sortbench/pkg/workload"
)

// Server exposes a loaded store over HTTP: interactive lookups, lookup
// stats, stored benchmark results and an in-process strategy comparison.
type Server struct {
	store   *core.Store[uint64]
	results *storage.ResultStore // may be nil
}

func NewServer(store *core.Store[uint64], results *storage.ResultStore) *Server {
	return &Server{store: store, results: results}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/lookup", s.handleLookup)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/results", s.handleResults)
	mux.HandleFunc("/api/bench", s.handleBench)
	return mux
}

func (s *Server) Start(addr string) error {
	log.Printf("[API] Server listening on %s...", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	keyStr := r.URL.Query().Get("key")
	key, err := strconv.ParseUint(keyStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid key", http.StatusBadRequest)
		return
	}

	strategy := s.store.Strategy()
	if v := r.URL.Query().Get("strategy"); v != "" {
		strategy = search.Strategy(v)
		if !strategy.Valid() {
			http.Error(w, "Unknown strategy", http.StatusBadRequest)
			return
		}
	}

	var res search.Result
	start := time.Now()
	if v := r.URL.Query().Get("estimate"); v != "" {
		estimate, convErr := strconv.Atoi(v)
		if convErr != nil {
			http.Error(w, "Invalid estimate", http.StatusBadRequest)
			return
		}
		res, err = s.store.LookupWith(strategy, key, estimate)
	} else {
		res, err = s.store.LookupWith(strategy, key, s.predict(key))
	}
	duration := time.Since(start)

	switch {
	case errors.Is(err, search.ErrNotFound):
		http.Error(w, "Key not found", http.StatusNotFound)
		return
	case errors.Is(err, search.ErrEstimateOutOfRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := map[string]interface{}{
		"key":        key,
		"sum":        res.Sum,
		"count":      res.Count,
		"strategy":   string(strategy),
		"latency_ns": duration.Nanoseconds(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.store.Stats())
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		http.Error(w, "No result store configured", http.StatusNotFound)
		return
	}

	ms, err := s.results.LoadAll()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ms)
}

func (s *Server) handleBench(w http.ResponseWriter, r *http.Request) {
	n := 10000
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid n", http.StatusBadRequest)
			return
		}
		n = parsed
	}

	seed := workload.DefaultSeed
	if v := r.URL.Query().Get("seed"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			http.Error(w, "Invalid seed", http.StatusBadRequest)
			return
		}
		seed = parsed
	}

	records := s.store.Records()
	lookups, err := workload.Lookups(workload.NewRand(seed), records, n)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	opts := bench.Options{Dataset: "server", PinCore: -1}
	var measurements []bench.Measurement
	for _, strategy := range search.Strategies {
		m, err := bench.Run(strategy, records, lookups, s.store.Estimator(), opts)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		measurements = append(measurements, m)
	}

	if s.results != nil {
		if err := s.results.AppendBatch(measurements); err != nil {
			log.Printf("[API] Failed to persist measurements: %v", err)
		}
	}

	winner := measurements[0]
	perStrategy := make(map[string]interface{}, len(measurements))
	for _, m := range measurements {
		perStrategy[m.Strategy] = map[string]interface{}{
			"avg_ns":   m.AvgNs,
			"failures": m.Failures,
		}
		if m.AvgNs < winner.AvgNs {
			winner = m
		}
	}

	result := map[string]interface{}{
		"lookups":    n,
		"strategies": perStrategy,
		"winner":     winner.Strategy,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (s *Server) predict(key uint64) int {
	if est := s.store.Estimator(); est != nil {
		return est.Predict(key)
	}
	return 0
}
