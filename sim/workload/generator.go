package workload

import (
	"fmt"
	"math/rand"

	"github.com/cachebench/cachebench/sim"
)

// Spec fully determines a generator's behavior: identical specs produce
// identical key sequences for any prefix length.
type Spec struct {
	// Universe is the key space size; keys are in [0, Universe). Clamped
	// to at least 1 at construction so generators are always well-defined.
	Universe uint64
	Workload Workload
	Seed     uint64
}

// Generator builds the workload generator for this spec.
func (s Spec) Generator() (*Generator, error) {
	return New(s.Universe, s.Workload, s.Seed)
}

// Generator is a stateful stochastic key process. It owns a single seeded
// RNG stream plus exactly the mutable state its variant needs, and must
// not be shared across concurrent callers.
//
// As a sim.EventSource it is unbounded and always emits Get events; wrap
// it in Bounded to obtain a finite trace.
type Generator struct {
	universe uint64
	rng      *rand.Rand
	proc     process
}

// New constructs a generator. Variant parameters are validated here, once;
// NextKey is infallible.
func New(universe uint64, w Workload, seed uint64) (*Generator, error) {
	if w == nil {
		return nil, fmt.Errorf("workload must not be nil")
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("%s workload: %w", w.Kind(), err)
	}
	if universe < 1 {
		universe = 1
	}
	rng := rand.New(rand.NewSource(int64(seed)))
	proc, err := w.newProcess(universe, rng)
	if err != nil {
		return nil, fmt.Errorf("%s workload: %w", w.Kind(), err)
	}
	return &Generator{universe: universe, rng: rng, proc: proc}, nil
}

// NextKey advances the process by one logical operation and returns a key
// in [0, universe).
func (g *Generator) NextKey() uint64 {
	return g.proc.nextKey()
}

// RecordInsert notifies the generator that a key was inserted. Only the
// Latest variant reacts; for all others this is a no-op.
func (g *Generator) RecordInsert() {
	if ins, ok := g.proc.(inserter); ok {
		ins.recordInsert()
	}
}

// Universe returns the clamped key space size.
func (g *Generator) Universe() uint64 {
	return g.universe
}

// NextEvent emits the next key as a Get event. The stream never ends.
func (g *Generator) NextEvent() (sim.Event, bool) {
	return sim.Get(g.NextKey()), true
}

// SizeHint reports unknown: the generator is unbounded.
func (g *Generator) SizeHint() (int, bool) { return 0, false }

// Bounded adapts an unbounded generator into a finite event source of
// exactly N events.
type Bounded struct {
	inner     *Generator
	remaining int
	total     int
}

// NewBounded wraps gen so that it emits at most count events.
func NewBounded(gen *Generator, count int) *Bounded {
	return &Bounded{inner: gen, remaining: count, total: count}
}

// Inner returns the wrapped generator.
func (b *Bounded) Inner() *Generator { return b.inner }

// Remaining returns the number of events left to emit.
func (b *Bounded) Remaining() int { return b.remaining }

// Total returns the number of events this source was built to emit.
func (b *Bounded) Total() int { return b.total }

// NextEvent emits the next Get event until the countdown is exhausted,
// then reports end-of-stream forever.
func (b *Bounded) NextEvent() (sim.Event, bool) {
	if b.remaining <= 0 {
		return sim.Event{}, false
	}
	b.remaining--
	return sim.Get(b.inner.NextKey()), true
}

// SizeHint reports the exact remaining count.
func (b *Bounded) SizeHint() (int, bool) {
	return b.remaining, true
}

// uniform draws a key uniformly from [0, n). n must be >= 1.
func uniform(rng *rand.Rand, n uint64) uint64 {
	return rng.Uint64() % n
}
