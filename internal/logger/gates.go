package logger

import "github.com/fsae-data/datalogger/internal/tick"

// tickGate enforces a minimum inter-sample gap for tick-gated classes. It is
// a minimum spacing, not a fixed-rate clock: emission may run slower than the
// threshold under load, never faster.
type tickGate struct {
	threshold uint32
	lastEmit  uint32
}

func (g *tickGate) ready(now uint32) bool {
	return tick.Elapsed(now, g.lastEmit) > g.threshold
}

func (g *tickGate) mark(now uint32) { g.lastEmit = now }

// edgeGate triggers on a change in the upstream driver's sample timestamp.
// Updates between loop iterations coalesce; only the latest state is seen.
type edgeGate struct {
	lastObserved uint32
}

func (g *edgeGate) ready(upstream uint32) bool {
	return upstream != g.lastObserved
}

func (g *edgeGate) mark(upstream uint32) { g.lastObserved = upstream }
