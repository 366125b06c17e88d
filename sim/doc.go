// Package sim provides the core replay engine for cache benchmarking.
//
// # Reading Guide
//
// Start with these three files to understand the replay kernel:
//   - event.go: the Event value type and operation kinds
//   - source.go: the EventSource pull interface shared by generators and trace readers
//   - simulator.go: the replay loop that drives a CacheModel and accumulates HitStats
//
// # Architecture
//
// The sim package defines interfaces and result types; implementations live in
// sub-packages:
//   - sim/workload/: synthetic workload generation (16 stochastic key processes)
//   - sim/measure/: scan-resistance and adaptation-speed measurements
//   - sim/formats/: trace file readers/writers (key-only, JSONL, CSV, ARC, LIRS, cachelib)
//   - sim/policy/: reference cache models (LRU, FIFO, Clock)
//   - sim/results/: versioned JSON benchmark artifacts
//
// # Key Interfaces
//
// The extension points are small interfaces:
//   - EventSource: pull the next cache access event from a trace or generator
//   - CacheModel: the minimal get/insert/delete surface a cache under test must expose
//
// Everything is single-threaded by design: one simulation owns its generator,
// its RNG, and its cache for the duration of a run, which is what makes
// seed-for-seed reproducibility possible.
package sim
