package workload

// Case is a named catalog entry: a workload variant with preset
// parameters, combined with runtime (universe, seed) to build a Spec.
type Case struct {
	// ID is the short identifier used in artifacts and flags
	// (e.g. "zipfian_1.0").
	ID string
	// DisplayName is the human-readable name (e.g. "Zipfian 1.0").
	DisplayName string
	Workload    Workload
}

// Spec combines the case with runtime parameters.
func (c Case) Spec(universe, seed uint64) Spec {
	return Spec{Universe: universe, Workload: c.Workload, Seed: seed}
}

// StandardSuite returns the focused benchmark set that differentiates
// cache policies. This is the primary suite for policy comparison.
func StandardSuite() []Case {
	return []Case{
		{ID: "uniform", DisplayName: "Uniform", Workload: Uniform{}},
		{ID: "hotset_90_10", DisplayName: "HotSet 90/10", Workload: HotSet{HotFraction: 0.1, HotProb: 0.9}},
		{ID: "scan", DisplayName: "Scan", Workload: Scan{}},
		{ID: "zipfian_1.0", DisplayName: "Zipfian 1.0", Workload: Zipfian{Exponent: 1.0}},
		{ID: "scrambled_zipf", DisplayName: "Scrambled Zipfian", Workload: ScrambledZipfian{Exponent: 1.0}},
		{ID: "latest", DisplayName: "Latest", Workload: Latest{Exponent: 0.8}},
		{ID: "scan_resistance", DisplayName: "Scan Resistance", Workload: ScanResistance{ScanFraction: 0.2, ScanLength: 1000, PointExponent: 1.0}},
		{ID: "flash_crowd", DisplayName: "Flash Crowd", Workload: FlashCrowd{BaseExponent: 1.0, FlashProb: 0.001, FlashDuration: 1000, FlashKeys: 10, FlashIntensity: 100}},
	}
}

// ExtendedSuite returns the comprehensive set covering every workload
// variant. Use it for exhaustive testing or specialized reports.
func ExtendedSuite() []Case {
	return []Case{
		{ID: "uniform", DisplayName: "Uniform", Workload: Uniform{}},
		{ID: "hotset_90_10", DisplayName: "HotSet 90/10", Workload: HotSet{HotFraction: 0.1, HotProb: 0.9}},
		{ID: "scan", DisplayName: "Scan", Workload: Scan{}},
		{ID: "zipfian_1.0", DisplayName: "Zipfian 1.0", Workload: Zipfian{Exponent: 1.0}},
		{ID: "zipfian_0.8", DisplayName: "Zipfian 0.8", Workload: Zipfian{Exponent: 0.8}},
		{ID: "scrambled_zipf", DisplayName: "Scrambled Zipfian", Workload: ScrambledZipfian{Exponent: 1.0}},
		{ID: "latest", DisplayName: "Latest", Workload: Latest{Exponent: 0.8}},
		{ID: "shifting_hotspot", DisplayName: "Shifting Hotspot", Workload: ShiftingHotspot{ShiftInterval: 10000, HotFraction: 0.1}},
		{ID: "exponential", DisplayName: "Exponential", Workload: Exponential{Lambda: 0.05}},
		{ID: "pareto", DisplayName: "Pareto", Workload: Pareto{Shape: 1.5}},
		{ID: "scan_resistance", DisplayName: "Scan Resistance", Workload: ScanResistance{ScanFraction: 0.2, ScanLength: 1000, PointExponent: 1.0}},
		{ID: "correlated", DisplayName: "Correlated", Workload: Correlated{Stride: 1, BurstLen: 8, BurstProb: 0.3}},
		{ID: "loop_small", DisplayName: "Loop (small)", Workload: Loop{WorkingSetSize: 512}},
		{ID: "working_set_churn", DisplayName: "Working Set Churn", Workload: WorkingSetChurn{WorkingSetSize: 2048, ChurnRate: 0.001}},
		{ID: "bursty", DisplayName: "Bursty", Workload: Bursty{Hurst: 0.8, BaseExponent: 1.0}},
		{ID: "flash_crowd", DisplayName: "Flash Crowd", Workload: FlashCrowd{BaseExponent: 1.0, FlashProb: 0.001, FlashDuration: 1000, FlashKeys: 10, FlashIntensity: 100}},
		{ID: "mixture", DisplayName: "Mixture", Workload: Mixture{}},
	}
}

// Suite looks up a named suite. Valid names: "standard", "extended".
func Suite(name string) ([]Case, bool) {
	switch name {
	case "standard":
		return StandardSuite(), true
	case "extended":
		return ExtendedSuite(), true
	default:
		return nil, false
	}
}

// FindCase looks up a case by ID in the extended suite.
func FindCase(id string) (Case, bool) {
	for _, c := range ExtendedSuite() {
		if c.ID == id {
			return c, true
		}
	}
	return Case{}, false
}
