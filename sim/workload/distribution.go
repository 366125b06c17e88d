package workload

import (
	"fmt"
	"math"
	"math/rand"
)

// zipfSampler draws 1-based ranks from a Zipf distribution over [1, n]
// with the given exponent, using rejection-inversion sampling (Hörmann &
// Derflinger). Unlike the stdlib rand.Zipf it supports any exponent > 0,
// which the workload catalogs need (they use 0.8 and 1.0).
//
// All precomputation happens at construction; Sample allocates nothing.
type zipfSampler struct {
	n        float64
	exponent float64

	hIntegralX1 float64
	hIntegralN  float64
	threshold   float64
}

func newZipfSampler(n uint64, exponent float64) (*zipfSampler, error) {
	if exponent <= 0 || math.IsNaN(exponent) || math.IsInf(exponent, 0) {
		return nil, fmt.Errorf("zipf exponent must be positive, got %f", exponent)
	}
	if n < 1 {
		n = 1
	}
	z := &zipfSampler{n: float64(n), exponent: exponent}
	z.hIntegralX1 = z.hIntegral(1.5) - 1
	z.hIntegralN = z.hIntegral(z.n + 0.5)
	z.threshold = 2 - z.hIntegralInverse(z.hIntegral(2.5)-z.h(2))
	return z, nil
}

// Sample returns a rank in [1, n]; rank 1 is the most popular.
func (z *zipfSampler) Sample(rng *rand.Rand) uint64 {
	for {
		u := z.hIntegralN + rng.Float64()*(z.hIntegralX1-z.hIntegralN)
		x := z.hIntegralInverse(u)

		k := math.Round(x)
		if k < 1 {
			k = 1
		} else if k > z.n {
			k = z.n
		}

		if k-x <= z.threshold || u >= z.hIntegral(k+0.5)-z.h(k) {
			return uint64(k)
		}
	}
}

// hIntegral is the antiderivative of h: (x^(1-s) - 1)/(1-s), or ln x for
// s == 1.
func (z *zipfSampler) hIntegral(x float64) float64 {
	logX := math.Log(x)
	if z.exponent == 1 {
		return logX
	}
	return math.Expm1((1-z.exponent)*logX) / (1 - z.exponent)
}

// h is the hat density x^-s.
func (z *zipfSampler) h(x float64) float64 {
	return math.Exp(-z.exponent * math.Log(x))
}

// hIntegralInverse inverts hIntegral.
func (z *zipfSampler) hIntegralInverse(x float64) float64 {
	if z.exponent == 1 {
		return math.Exp(x)
	}
	t := x * (1 - z.exponent)
	if t < -1 {
		// Rounding can push t slightly below the domain boundary.
		t = -1
	}
	return math.Exp(math.Log1p(t) / (1 - z.exponent))
}

// expSampler draws from an exponential distribution with rate lambda.
type expSampler struct {
	lambda float64
}

func newExpSampler(lambda float64) (*expSampler, error) {
	if lambda <= 0 || math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		return nil, fmt.Errorf("exponential lambda must be positive, got %f", lambda)
	}
	return &expSampler{lambda: lambda}, nil
}

func (s *expSampler) Sample(rng *rand.Rand) float64 {
	return rng.ExpFloat64() / s.lambda
}

// paretoSampler draws from a Pareto distribution with scale 1 and the
// given shape, via inverse CDF: X = 1 / U^(1/shape).
type paretoSampler struct {
	shape float64
}

func newParetoSampler(shape float64) (*paretoSampler, error) {
	if shape <= 0 || math.IsNaN(shape) || math.IsInf(shape, 0) {
		return nil, fmt.Errorf("pareto shape must be positive, got %f", shape)
	}
	return &paretoSampler{shape: shape}, nil
}

func (s *paretoSampler) Sample(rng *rand.Rand) float64 {
	u := rng.Float64()
	if u == 0 {
		u = math.SmallestNonzeroFloat64 // prevent division by zero → +Inf
	}
	return 1 / math.Pow(u, 1/s.shape)
}

// fnvHash64 scrambles a key with FNV-1a over its little-endian bytes.
func fnvHash64(key uint64) uint64 {
	const (
		fnvOffset = 0xcbf29ce484222325
		fnvPrime  = 0x100000001b3
	)
	hash := uint64(fnvOffset)
	for i := 0; i < 8; i++ {
		hash ^= (key >> (8 * i)) & 0xff
		hash *= fnvPrime
	}
	return hash
}
