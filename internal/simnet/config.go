package simnet

import (
	"github.com/larryruane/minesim/internal/idalloc"
	"github.com/larryruane/minesim/internal/telemetry"
	"github.com/larryruane/minesim/internal/topology"
)

// Strategy selects which variant the distinguished miner (or, when
// Honest, every miner) runs.
type Strategy int

const (
	Honest Strategy = iota
	Bad
	Selfish
)

func (s Strategy) String() string {
	switch s {
	case Honest:
		return "honest"
	case Bad:
		return "bad"
	case Selfish:
		return "selfish"
	default:
		return "unknown"
	}
}

// ParseStrategy maps a CLI/config string onto a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "honest", "":
		return Honest, nil
	case "bad":
		return Bad, nil
	case "selfish":
		return Selfish, nil
	default:
		return 0, ErrStrategy
	}
}

// Config parameterizes one call to Simulate.
type Config struct {
	NumMiners    int
	DurationDays float64
	Strategy     Strategy
	Seed         int64
	LinkDelay    float64 // 0 means DefaultLinkDelay
	VerifyRate   float64 // 0 means DefaultVerifyRate

	// Hashrates, if non-nil, must have length NumMiners and sum to 1; it
	// overrides the default of an equal split across all miners. Ignored
	// when Topology is set (the topology file carries its own hashrates).
	Hashrates []float64

	// Topology, if set, replaces the default fully-connected mesh with an
	// explicit network (see internal/topology).
	Topology *topology.Spec

	Telemetry telemetry.Sink
	IDAlloc   idalloc.Allocator
}

// withDefaults fills in zero-valued optional fields.
func (c Config) withDefaults() Config {
	if c.LinkDelay == 0 {
		c.LinkDelay = DefaultLinkDelay
	}
	if c.VerifyRate == 0 {
		c.VerifyRate = DefaultVerifyRate
	}
	if c.Telemetry == nil {
		c.Telemetry = telemetry.Noop{}
	}
	if c.IDAlloc == nil {
		c.IDAlloc = idalloc.NewCounter()
	}
	return c
}
