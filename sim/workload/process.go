package workload

import (
	"math"
	"math/rand"
)

// Per-variant state machines. Each holds only the mutable fields its
// variant needs; the Workload value itself stays immutable so catalog
// entries can be reused across runs.

func (Uniform) newProcess(universe uint64, rng *rand.Rand) (process, error) {
	return &uniformProcess{universe: universe, rng: rng}, nil
}

type uniformProcess struct {
	universe uint64
	rng      *rand.Rand
}

func (p *uniformProcess) nextKey() uint64 {
	return uniform(p.rng, p.universe)
}

func (w HotSet) newProcess(universe uint64, rng *rand.Rand) (process, error) {
	hotSize := uint64(math.Round(float64(universe) * w.HotFraction))
	if hotSize < 1 {
		hotSize = 1
	}
	if hotSize > universe {
		hotSize = universe
	}
	return &hotSetProcess{universe: universe, rng: rng, hotSize: hotSize, hotProb: w.HotProb}, nil
}

type hotSetProcess struct {
	universe uint64
	rng      *rand.Rand
	hotSize  uint64
	hotProb  float64
}

func (p *hotSetProcess) nextKey() uint64 {
	if p.rng.Float64() < p.hotProb {
		return uniform(p.rng, p.hotSize)
	}
	if p.hotSize == p.universe {
		return uniform(p.rng, p.universe)
	}
	return p.hotSize + uniform(p.rng, p.universe-p.hotSize)
}

func (Scan) newProcess(universe uint64, _ *rand.Rand) (process, error) {
	return &scanProcess{universe: universe}, nil
}

type scanProcess struct {
	universe uint64
	pos      uint64
}

func (p *scanProcess) nextKey() uint64 {
	key := p.pos
	p.pos = (p.pos + 1) % p.universe
	return key
}

func (w Zipfian) newProcess(universe uint64, rng *rand.Rand) (process, error) {
	zipf, err := newZipfSampler(universe, w.Exponent)
	if err != nil {
		return nil, err
	}
	return &zipfianProcess{universe: universe, rng: rng, zipf: zipf}, nil
}

type zipfianProcess struct {
	universe uint64
	rng      *rand.Rand
	zipf     *zipfSampler
}

func (p *zipfianProcess) nextKey() uint64 {
	return zipfKey(p.zipf, p.rng, p.universe)
}

// zipfKey converts a 1-based rank sample to a 0-based key clamped into
// [0, universe).
func zipfKey(zipf *zipfSampler, rng *rand.Rand, universe uint64) uint64 {
	rank := zipf.Sample(rng)
	key := rank - 1
	if key > universe-1 {
		key = universe - 1
	}
	return key
}

func (w ScrambledZipfian) newProcess(universe uint64, rng *rand.Rand) (process, error) {
	zipf, err := newZipfSampler(universe, w.Exponent)
	if err != nil {
		return nil, err
	}
	return &scrambledZipfianProcess{universe: universe, rng: rng, zipf: zipf}, nil
}

type scrambledZipfianProcess struct {
	universe uint64
	rng      *rand.Rand
	zipf     *zipfSampler
}

func (p *scrambledZipfianProcess) nextKey() uint64 {
	key := zipfKey(p.zipf, p.rng, p.universe)
	return fnvHash64(key) % p.universe
}

func (w Latest) newProcess(universe uint64, rng *rand.Rand) (process, error) {
	zipf, err := newZipfSampler(universe, w.Exponent)
	if err != nil {
		return nil, err
	}
	return &latestProcess{universe: universe, rng: rng, zipf: zipf}, nil
}

type latestProcess struct {
	universe      uint64
	rng           *rand.Rand
	zipf          *zipfSampler
	insertCounter uint64
}

func (p *latestProcess) nextKey() uint64 {
	offset := zipfKey(p.zipf, p.rng, p.universe)
	// Access keys near the most recent insert, wrapping backward.
	return (p.insertCounter - offset) % p.universe
}

func (p *latestProcess) recordInsert() {
	p.insertCounter++
}

func (w ShiftingHotspot) newProcess(universe uint64, rng *rand.Rand) (process, error) {
	hotSize := uint64(math.Round(float64(universe) * w.HotFraction))
	if hotSize < 1 {
		hotSize = 1
	}
	if hotSize > universe {
		hotSize = universe
	}
	interval := w.ShiftInterval
	if interval < 1 {
		interval = 1
	}
	return &shiftingHotspotProcess{
		universe: universe,
		rng:      rng,
		hotSize:  hotSize,
		interval: interval,
	}, nil
}

type shiftingHotspotProcess struct {
	universe uint64
	rng      *rand.Rand
	hotSize  uint64
	interval uint64
	opCount  uint64
}

func (p *shiftingHotspotProcess) nextKey() uint64 {
	p.opCount++
	shiftCount := p.opCount / p.interval
	hotBase := (shiftCount * p.hotSize) % p.universe

	// 80% of accesses go to the current hotspot.
	if p.rng.Float64() < 0.8 {
		return (hotBase + uniform(p.rng, p.hotSize)) % p.universe
	}
	return uniform(p.rng, p.universe)
}

func (w Exponential) newProcess(universe uint64, rng *rand.Rand) (process, error) {
	exp, err := newExpSampler(w.Lambda)
	if err != nil {
		return nil, err
	}
	return &exponentialProcess{universe: universe, rng: rng, exp: exp}, nil
}

type exponentialProcess struct {
	universe uint64
	rng      *rand.Rand
	exp      *expSampler
}

func (p *exponentialProcess) nextKey() uint64 {
	// Map the sample into key space favoring lower keys.
	key := uint64(p.exp.Sample(p.rng) * (float64(p.universe) / 10))
	if key > p.universe-1 {
		key = p.universe - 1
	}
	return key
}

func (w Pareto) newProcess(universe uint64, rng *rand.Rand) (process, error) {
	pareto, err := newParetoSampler(w.Shape)
	if err != nil {
		return nil, err
	}
	return &paretoProcess{universe: universe, rng: rng, pareto: pareto}, nil
}

type paretoProcess struct {
	universe uint64
	rng      *rand.Rand
	pareto   *paretoSampler
}

func (p *paretoProcess) nextKey() uint64 {
	// Pareto samples start at the scale (1.0); shift before mapping.
	key := uint64((p.pareto.Sample(p.rng) - 1) * (float64(p.universe) / 10))
	if key > p.universe-1 {
		key = p.universe - 1
	}
	return key
}

func (w ScanResistance) newProcess(universe uint64, rng *rand.Rand) (process, error) {
	zipf, err := newZipfSampler(universe, w.PointExponent)
	if err != nil {
		return nil, err
	}
	return &scanResistanceProcess{
		universe:     universe,
		rng:          rng,
		zipf:         zipf,
		scanFraction: w.ScanFraction,
		scanLength:   w.ScanLength,
	}, nil
}

type scanResistanceProcess struct {
	universe     uint64
	rng          *rand.Rand
	zipf         *zipfSampler
	scanFraction float64
	scanLength   uint64

	inScan        bool
	scanRemaining uint64
	scanStart     uint64
}

func (p *scanResistanceProcess) nextKey() uint64 {
	if !p.inScan && p.rng.Float64() < p.scanFraction {
		p.inScan = true
		p.scanRemaining = p.scanLength
		p.scanStart = uniform(p.rng, p.universe)
	}

	if p.inScan {
		key := (p.scanStart + (p.scanLength - p.scanRemaining)) % p.universe
		p.scanRemaining--
		if p.scanRemaining == 0 {
			p.inScan = false
		}
		return key
	}
	return zipfKey(p.zipf, p.rng, p.universe)
}

func (w Correlated) newProcess(universe uint64, rng *rand.Rand) (process, error) {
	return &correlatedProcess{
		universe:  universe,
		rng:       rng,
		stride:    w.Stride,
		burstLen:  w.BurstLen,
		burstProb: w.BurstProb,
	}, nil
}

type correlatedProcess struct {
	universe  uint64
	rng       *rand.Rand
	stride    uint64
	burstLen  uint64
	burstProb float64

	burstRemaining uint64
	burstStart     uint64
}

func (p *correlatedProcess) nextKey() uint64 {
	if p.burstRemaining > 0 {
		key := (p.burstStart + (p.burstLen-p.burstRemaining)*p.stride) % p.universe
		p.burstRemaining--
		return key
	}
	if p.rng.Float64() < p.burstProb && p.burstLen > 0 {
		p.burstRemaining = p.burstLen - 1
		p.burstStart = uniform(p.rng, p.universe)
		return p.burstStart
	}
	return uniform(p.rng, p.universe)
}

func (w Loop) newProcess(universe uint64, _ *rand.Rand) (process, error) {
	size := w.WorkingSetSize
	if size < 1 {
		size = 1
	}
	// The loop period is otherwise independent of the universe, but keys
	// must still stay inside it.
	if size > universe {
		size = universe
	}
	return &loopProcess{size: size}, nil
}

type loopProcess struct {
	size uint64
	pos  uint64
}

func (p *loopProcess) nextKey() uint64 {
	key := p.pos % p.size
	p.pos++
	return key
}

func (w WorkingSetChurn) newProcess(universe uint64, rng *rand.Rand) (process, error) {
	size := w.WorkingSetSize
	if size < 1 {
		size = 1
	}
	if size > universe {
		size = universe
	}
	return &churnProcess{
		universe:  universe,
		rng:       rng,
		size:      size,
		churnRate: w.ChurnRate,
	}, nil
}

type churnProcess struct {
	universe  uint64
	rng       *rand.Rand
	size      uint64
	churnRate float64
	base      uint64
}

func (p *churnProcess) nextKey() uint64 {
	// Occasionally slide the window; the base stays low enough that the
	// whole window fits inside the universe.
	if p.rng.Float64() < p.churnRate {
		p.base = (p.base + 1) % (p.universe - p.size + 1)
	}
	return (p.base + uniform(p.rng, p.size)) % p.universe
}

func (w Bursty) newProcess(universe uint64, rng *rand.Rand) (process, error) {
	zipf, err := newZipfSampler(universe, w.BaseExponent)
	if err != nil {
		return nil, err
	}
	persistence := (w.Hurst - 0.5) * 2
	if persistence < 0 {
		persistence = 0
	}
	return &burstyProcess{
		universe:    universe,
		rng:         rng,
		zipf:        zipf,
		persistence: persistence,
	}, nil
}

type burstyProcess struct {
	universe    uint64
	rng         *rand.Rand
	zipf        *zipfSampler
	persistence float64
	burstActive bool
}

func (p *burstyProcess) nextKey() uint64 {
	// Higher Hurst = more likely to stay in the current state.
	if p.burstActive {
		if p.rng.Float64() > p.persistence {
			p.burstActive = false
		}
	} else if p.rng.Float64() < (1-p.persistence)*0.1 {
		p.burstActive = true
	}

	key := zipfKey(p.zipf, p.rng, p.universe)
	if p.burstActive {
		// Concentrate on a subset during bursts.
		subset := p.universe / 10
		if subset < 1 {
			subset = 1
		}
		return key % subset
	}
	return key
}

func (w FlashCrowd) newProcess(universe uint64, rng *rand.Rand) (process, error) {
	zipf, err := newZipfSampler(universe, w.BaseExponent)
	if err != nil {
		return nil, err
	}
	flashKeys := w.FlashKeys
	if flashKeys < 1 {
		flashKeys = 1
	}
	return &flashCrowdProcess{
		universe:  universe,
		rng:       rng,
		zipf:      zipf,
		flashProb: w.FlashProb,
		duration:  w.FlashDuration,
		flashKeys: flashKeys,
		hitProb:   w.FlashIntensity / (w.FlashIntensity + 1),
	}, nil
}

type flashCrowdProcess struct {
	universe  uint64
	rng       *rand.Rand
	zipf      *zipfSampler
	flashProb float64
	duration  uint64
	flashKeys uint64
	hitProb   float64

	flashActive    bool
	flashRemaining uint64
	flashBase      uint64
}

func (p *flashCrowdProcess) nextKey() uint64 {
	if !p.flashActive && p.duration > 0 && p.rng.Float64() < p.flashProb {
		p.flashActive = true
		p.flashRemaining = p.duration
		p.flashBase = uniform(p.rng, p.universe)
	}

	if p.flashActive {
		p.flashRemaining--
		if p.flashRemaining == 0 {
			p.flashActive = false
		}
		// During a flash, heavily favor the flash keys.
		if p.rng.Float64() < p.hitProb {
			return (p.flashBase + uniform(p.rng, p.flashKeys)) % p.universe
		}
	}
	return zipfKey(p.zipf, p.rng, p.universe)
}

func (Mixture) newProcess(universe uint64, rng *rand.Rand) (process, error) {
	return &mixtureProcess{universe: universe, rng: rng}, nil
}

type mixtureProcess struct {
	universe uint64
	rng      *rand.Rand
	scanPos  uint64
}

func (p *mixtureProcess) nextKey() uint64 {
	r := p.rng.Float64()
	switch {
	case r < 0.7:
		// Ad-hoc rank-based skew without a precomputed sampler.
		u := p.rng.Float64()
		if u < 0.001 {
			u = 0.001
		}
		rank := math.Min(1/u, float64(p.universe))
		key := uint64(rank) - 1
		if key > p.universe-1 {
			key = p.universe - 1
		}
		return key
	case r < 0.9:
		key := p.scanPos
		p.scanPos = (p.scanPos + 1) % p.universe
		return key
	default:
		return uniform(p.rng, p.universe)
	}
}
