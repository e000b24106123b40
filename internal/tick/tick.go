// Package tick provides the 32-bit tick clock used to timestamp log frames.
//
// Frame timestamps are unsigned 32-bit tick counts measured from logger
// start. All interval comparisons use wraparound-safe unsigned arithmetic so
// a session that outlives the counter keeps correct gating behaviour.
package tick

import "time"

// DefaultTicksPerSecond gives sub-millisecond gating granularity.
const DefaultTicksPerSecond uint32 = 10000

// Source yields the current tick count.
type Source interface {
	Now() uint32
}

// Elapsed returns the number of ticks between since and now, correct across
// uint32 wraparound.
func Elapsed(now, since uint32) uint32 {
	return now - since
}

// WallSource derives ticks from the wall clock, counting from the moment the
// source was created.
type WallSource struct {
	start       time.Time
	nanosPerTick int64
	perSecond   uint32
}

// NewWallSource returns a WallSource running at perSecond ticks per second.
// A zero perSecond falls back to DefaultTicksPerSecond.
func NewWallSource(perSecond uint32) *WallSource {
	if perSecond == 0 {
		perSecond = DefaultTicksPerSecond
	}
	return &WallSource{
		start:        time.Now(),
		nanosPerTick: int64(time.Second) / int64(perSecond),
		perSecond:    perSecond,
	}
}

// Now returns the current tick count. The value wraps naturally at 2^32.
func (s *WallSource) Now() uint32 {
	return uint32(time.Since(s.start).Nanoseconds() / s.nanosPerTick)
}

// PerSecond returns the configured tick rate.
func (s *WallSource) PerSecond() uint32 {
	return s.perSecond
}

// TickPeriod returns the wall duration of one tick.
func (s *WallSource) TickPeriod() time.Duration {
	return time.Duration(s.nanosPerTick)
}

// Manual is a hand-advanced tick source for tests and offline generation.
type Manual struct {
	tick uint32
}

// NewManual returns a Manual source starting at the given tick.
func NewManual(start uint32) *Manual {
	return &Manual{tick: start}
}

// Now returns the current tick.
func (m *Manual) Now() uint32 { return m.tick }

// Advance moves the clock forward by n ticks.
func (m *Manual) Advance(n uint32) { m.tick += n }

// Set jumps the clock to an absolute tick value.
func (m *Manual) Set(t uint32) { m.tick = t }
