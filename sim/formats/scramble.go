package formats

import (
	"encoding/binary"

	"github.com/spaolacci/murmur3"

	"github.com/cachebench/cachebench/sim"
)

// Scrambled wraps an event source and remaps every key through a keyed
// murmur3 hash reduced into the given keyspace. The mapping is
// deterministic for a fixed seed, so rewritten traces stay comparable
// across runs while the original key identities are hidden.
type Scrambled struct {
	inner    sim.EventSource
	keyspace uint64
	seed     uint32
}

// NewScrambled wraps inner. A zero keyspace is treated as 1.
func NewScrambled(inner sim.EventSource, keyspace uint64, seed uint32) *Scrambled {
	if keyspace == 0 {
		keyspace = 1
	}
	return &Scrambled{inner: inner, keyspace: keyspace, seed: seed}
}

// NextEvent returns the next event with its key scrambled.
func (s *Scrambled) NextEvent() (sim.Event, bool) {
	event, ok := s.inner.NextEvent()
	if !ok {
		return sim.Event{}, false
	}
	event.Key = s.scramble(event.Key)
	return event, true
}

// SizeHint forwards the inner source's hint.
func (s *Scrambled) SizeHint() (int, bool) {
	return s.inner.SizeHint()
}

func (s *Scrambled) scramble(key uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], key)
	return murmur3.Sum64WithSeed(buf[:], s.seed) % s.keyspace
}
