package simnet

import (
	"gonum.org/v1/gonum/stat/distuv"

	xrand "golang.org/x/exp/rand"
)

// minerRand is a single miner's private random stream: one PRNG seeded
// deterministically from the run seed and the miner's id, shared by both
// the block-size draw and the mining-delay draw so that, given a fixed
// seed and topology, the whole run is reproducible event-for-event.
type minerRand struct {
	src xrand.Source
	gen *xrand.Rand
}

func newMinerRand(seed int64, minerID int) *minerRand {
	// Mix the miner id into the seed so distinct miners don't share a
	// stream even when the run seed is the same.
	mixed := uint64(seed)*2654435761 + uint64(minerID+1)*40503
	src := xrand.NewSource(mixed)
	return &minerRand{src: src, gen: xrand.New(src)}
}

// blockSize draws a block size uniformly in (0, MaxBlockSize].
func (r *minerRand) blockSize(max float64) float64 {
	v := r.gen.Float64()
	if v == 0 {
		v = 1e-9
	}
	return v * max
}

// miningDelay draws Δ ~ Exponential(rate), the classic memoryless
// inter-arrival distribution for a Poisson mining process, via gonum's
// distuv.Exponential rather than a hand-rolled inverse-CDF transform.
func (r *minerRand) miningDelay(rate float64) float64 {
	d := distuv.Exponential{Rate: rate, Src: r.src}
	return d.Rand()
}
