package workload

import (
	"testing"
)

// allVariants returns one valid instance of every workload kind, for
// table-driven invariant tests.
func allVariants() []Workload {
	return []Workload{
		Uniform{},
		HotSet{HotFraction: 0.1, HotProb: 0.9},
		Scan{},
		Zipfian{Exponent: 1.0},
		Zipfian{Exponent: 0.8},
		ScrambledZipfian{Exponent: 1.0},
		Latest{Exponent: 1.0},
		ShiftingHotspot{ShiftInterval: 100, HotFraction: 0.1},
		Exponential{Lambda: 1.0},
		Pareto{Shape: 1.5},
		ScanResistance{ScanFraction: 0.2, ScanLength: 50, PointExponent: 1.0},
		Correlated{Stride: 8, BurstLen: 4, BurstProb: 0.3},
		Loop{WorkingSetSize: 512},
		WorkingSetChurn{WorkingSetSize: 256, ChurnRate: 0.01},
		Bursty{Hurst: 0.8, BaseExponent: 1.0},
		FlashCrowd{BaseExponent: 1.0, FlashProb: 0.01, FlashDuration: 50, FlashKeys: 10, FlashIntensity: 100},
		Mixture{},
	}
}

func TestGenerator_KeysStayInUniverse(t *testing.T) {
	const universe = 1000
	for _, w := range allVariants() {
		gen, err := New(universe, w, 42)
		if err != nil {
			t.Fatalf("%s: New: %v", w.Kind(), err)
		}
		for i := 0; i < 10000; i++ {
			key := gen.NextKey()
			if key >= universe {
				t.Fatalf("%s: key %d out of universe %d at op %d", w.Kind(), key, universe, i)
			}
			// Insert feedback must not push later keys out of range either.
			if i%7 == 0 {
				gen.RecordInsert()
			}
		}
	}
}

func TestGenerator_TinyUniverse(t *testing.T) {
	// universe=1 forces every clamp path; all variants must emit key 0.
	for _, w := range allVariants() {
		gen, err := New(1, w, 1)
		if err != nil {
			t.Fatalf("%s: New: %v", w.Kind(), err)
		}
		for i := 0; i < 100; i++ {
			if key := gen.NextKey(); key != 0 {
				t.Fatalf("%s: key %d in universe 1", w.Kind(), key)
			}
		}
	}
}

func TestGenerator_DeterministicAcrossInstances(t *testing.T) {
	const universe = 4096
	for _, w := range allVariants() {
		a, err := New(universe, w, 1234)
		if err != nil {
			t.Fatalf("%s: New: %v", w.Kind(), err)
		}
		b, err := New(universe, w, 1234)
		if err != nil {
			t.Fatalf("%s: New: %v", w.Kind(), err)
		}
		for i := 0; i < 2000; i++ {
			ka, kb := a.NextKey(), b.NextKey()
			if ka != kb {
				t.Fatalf("%s: sequences diverge at op %d: %d != %d", w.Kind(), i, ka, kb)
			}
		}
	}
}

func TestGenerator_SeedChangesSequence(t *testing.T) {
	a, _ := New(1<<20, Uniform{}, 1)
	b, _ := New(1<<20, Uniform{}, 2)
	same := true
	for i := 0; i < 100; i++ {
		if a.NextKey() != b.NextKey() {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical 100-key prefix")
	}
}

func TestScan_CyclesThroughUniverse(t *testing.T) {
	const universe = 5
	gen, err := New(universe, Scan{}, 7)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint64{0, 1, 2, 3, 4, 0, 1}
	for i, w := range want {
		if got := gen.NextKey(); got != w {
			t.Fatalf("op %d: key = %d, want %d", i, got, w)
		}
	}
}

func TestLoop_IgnoresUniverseBeyondWorkingSet(t *testing.T) {
	gen, err := New(1<<30, Loop{WorkingSetSize: 4}, 7)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		if got, want := gen.NextKey(), uint64(i%4); got != want {
			t.Fatalf("op %d: key = %d, want %d", i, got, want)
		}
	}
}

func TestLoop_ClampsWorkingSetToUniverse(t *testing.T) {
	// A working set larger than the universe must wrap at the universe,
	// not emit keys beyond it.
	gen, err := New(100, Loop{WorkingSetSize: 512}, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 300; i++ {
		if got, want := gen.NextKey(), uint64(i%100); got != want {
			t.Fatalf("op %d: key = %d, want %d", i, got, want)
		}
	}

	tiny, err := New(1, Loop{WorkingSetSize: 512}, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		if got := tiny.NextKey(); got != 0 {
			t.Fatalf("op %d: key = %d in universe 1", i, got)
		}
	}
}

func TestHotSet_FavorsHotRegion(t *testing.T) {
	const universe = 10000
	gen, err := New(universe, HotSet{HotFraction: 0.1, HotProb: 0.9}, 42)
	if err != nil {
		t.Fatal(err)
	}
	hot := 0
	const ops = 100000
	for i := 0; i < ops; i++ {
		if gen.NextKey() < universe/10 {
			hot++
		}
	}
	frac := float64(hot) / ops
	// The cold region is disjoint, so the hot fraction tracks HotProb.
	if frac < 0.88 || frac > 0.92 {
		t.Errorf("hot fraction = %.3f, want ~0.90", frac)
	}
}

func TestLatest_FollowsInsertFrontier(t *testing.T) {
	const universe = 1 << 16
	gen, err := New(universe, Latest{Exponent: 1.0}, 42)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5000; i++ {
		gen.RecordInsert()
	}
	// With 5000 inserts, draws concentrate near key 4999.
	near := 0
	const ops = 10000
	for i := 0; i < ops; i++ {
		key := gen.NextKey()
		if key >= universe {
			t.Fatalf("key %d out of universe", key)
		}
		if key >= 4900 && key < 5000 {
			near++
		}
	}
	if frac := float64(near) / ops; frac < 0.3 {
		t.Errorf("fraction near frontier = %.3f, want heavy skew toward latest keys", frac)
	}
}

func TestZipfian_SkewsTowardLowRanks(t *testing.T) {
	const universe = 10000
	gen, err := New(universe, Zipfian{Exponent: 1.0}, 42)
	if err != nil {
		t.Fatal(err)
	}
	top := 0
	const ops = 100000
	for i := 0; i < ops; i++ {
		if gen.NextKey() < 100 {
			top++
		}
	}
	// With s=1 and n=10000 the top 1% of ranks draws roughly half the mass.
	if frac := float64(top) / ops; frac < 0.35 {
		t.Errorf("top-100 fraction = %.3f, want > 0.35", frac)
	}
}

func TestScrambledZipfian_SpreadsHotKeys(t *testing.T) {
	const universe = 10000
	gen, err := New(universe, ScrambledZipfian{Exponent: 1.0}, 42)
	if err != nil {
		t.Fatal(err)
	}
	// The popularity skew survives scrambling but the popular keys must
	// not cluster at the low end of the key space.
	low := 0
	const ops = 100000
	for i := 0; i < ops; i++ {
		if gen.NextKey() < 100 {
			low++
		}
	}
	if frac := float64(low) / ops; frac > 0.2 {
		t.Errorf("low-key fraction = %.3f, scrambling should disperse hot keys", frac)
	}
}

func TestBounded_StopsAfterCount(t *testing.T) {
	gen, err := New(1024, Uniform{}, 42)
	if err != nil {
		t.Fatal(err)
	}
	bounded := NewBounded(gen, 10)

	if n, ok := bounded.SizeHint(); !ok || n != 10 {
		t.Fatalf("SizeHint = %d,%v, want 10,true", n, ok)
	}
	seen := 0
	for {
		_, ok := bounded.NextEvent()
		if !ok {
			break
		}
		seen++
	}
	if seen != 10 {
		t.Errorf("events = %d, want 10", seen)
	}
	if _, ok := bounded.NextEvent(); ok {
		t.Error("NextEvent returned an event after exhaustion")
	}
	if n, ok := bounded.SizeHint(); !ok || n != 0 {
		t.Errorf("SizeHint after exhaustion = %d,%v, want 0,true", n, ok)
	}
}

func TestNew_RejectsInvalidParams(t *testing.T) {
	bad := []Workload{
		HotSet{HotFraction: 1.5, HotProb: 0.9},
		HotSet{HotFraction: 0.1, HotProb: -0.1},
		Zipfian{Exponent: -1},
		Zipfian{Exponent: 0},
		Latest{Exponent: 0},
		Exponential{Lambda: 0},
		Pareto{Shape: -2},
		ScanResistance{ScanFraction: 0.2, ScanLength: 0, PointExponent: 1.0},
		Correlated{Stride: 1, BurstLen: 4, BurstProb: 2},
		WorkingSetChurn{WorkingSetSize: 16, ChurnRate: 1.5},
		Bursty{Hurst: 2, BaseExponent: 1},
		FlashCrowd{BaseExponent: 1, FlashProb: 0.01, FlashDuration: 10, FlashKeys: 5, FlashIntensity: -1},
	}
	for _, w := range bad {
		if _, err := New(1024, w, 42); err == nil {
			t.Errorf("%s: New accepted invalid params %+v", w.Kind(), w)
		}
	}
}

func TestSpec_Generator(t *testing.T) {
	spec := Spec{Universe: 2048, Workload: Uniform{}, Seed: 9}
	gen, err := spec.Generator()
	if err != nil {
		t.Fatal(err)
	}
	if gen.Universe() != 2048 {
		t.Errorf("Universe = %d, want 2048", gen.Universe())
	}
}

func TestGenerator_NextEventEmitsGets(t *testing.T) {
	gen, err := New(64, Uniform{}, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		event, ok := gen.NextEvent()
		if !ok {
			t.Fatal("generator source is unbounded, NextEvent must not end")
		}
		if event.Op.String() != "get" {
			t.Fatalf("op = %s, want get", event.Op)
		}
	}
}
