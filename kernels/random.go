package kernels

import (
	"math"
	"math/rand"
)

// minstdSource implements math/rand.Source64 on top of the Park-Miller
// minimal-standard LCG (x' = 48271*x mod 2^31-1), the same generator the
// reference seeds per-cell for reproducible parallel draws.
type minstdSource struct {
	state uint64
}

const (
	minstdA = 48271
	minstdM = 2147483647 // 2^31 - 1
)

func newMinstdRand(seed uint32) *rand.Rand {
	return rand.New(&minstdSource{state: minstdSeedState(seed)})
}

func minstdSeedState(seed uint32) uint64 {
	s := uint64(seed) % minstdM
	if s == 0 {
		s = 1
	}
	return s
}

func (s *minstdSource) Seed(seed int64) { s.state = minstdSeedState(uint32(seed)) }

func (s *minstdSource) next() uint64 {
	s.state = (s.state * minstdA) % minstdM
	return s.state
}

// Uint64 concatenates three 31-bit LCG steps so that every bit of the
// 64-bit word math/rand reads is populated.
func (s *minstdSource) Uint64() uint64 {
	return s.next()<<33 | s.next()<<2 | s.next()>>29
}

func (s *minstdSource) Int63() int64 { return int64(s.Uint64() >> 1) }

func sampleNormal(r *rand.Rand, mean, std float64) float64 {
	return mean + std*r.NormFloat64()
}

// SeedFromWavenumber mixes a cell's wavenumber and the user seed into a
// single LCG seed, preserving the three large odd hash constants from the
// reference exactly so that identical (ki,kj,seed) always yields an
// identical draw regardless of thread count.
func SeedFromWavenumber(ki, kj float64, seed int) uint32 {
	const p1 = 73856093
	const p2 = 19349663
	const p3 = 83492791
	hi := uint32(int32(math.Round(ki * 10000)))
	hj := uint32(int32(math.Round(kj * 10000)))
	h := (hi * p1) ^ (hj * p2) ^ (uint32(seed) * p3)
	return h + uint32(seed)
}

// Random produces the per-cell amplitude and phase draws used by the
// initial-state builder. A fresh Random must be constructed (via Seed)
// for every cell: this is what makes the parallel spectral iterator
// deterministic without any synchronization.
type Random interface {
	Seed(ki, kj float64, seed int)
	Amp() float64
	Phase() float64
}

// normalBase implements the phase draw and LCG plumbing shared by both
// amplitude distributions.
type normalBase struct {
	rng *rand.Rand
}

func (b *normalBase) Seed(ki, kj float64, seed int) {
	b.rng = newMinstdRand(SeedFromWavenumber(ki, kj, seed))
}

func (b *normalBase) Phase() float64 {
	return b.rng.Float64() * 2 * math.Pi
}

// NormalRandom draws amplitudes from the standard normal distribution.
type NormalRandom struct{ normalBase }

func (n *NormalRandom) Amp() float64 { return n.rng.NormFloat64() }

// LogNormalRandom draws amplitudes from LogNormal(mu=1, sigma=1).
type LogNormalRandom struct{ normalBase }

func (n *LogNormalRandom) Amp() float64 {
	return math.Exp(1 + n.rng.NormFloat64())
}
