package sensors

import (
	"math"
	"math/rand"

	"github.com/fsae-data/datalogger/internal/tick"
)

// SimRangeArray is a deterministic simulated range-sensor array for dev mode
// and synthetic log generation.
type SimRangeArray struct {
	rng *rand.Rand
	out []uint16
}

// NewSimRangeArray returns a simulated array with the given channel count and
// seed.
func NewSimRangeArray(channels int, seed int64) *SimRangeArray {
	return &SimRangeArray{
		rng: rand.New(rand.NewSource(seed)),
		out: make([]uint16, channels),
	}
}

// ReadRaw returns simulated suspension travel around mid-range.
func (s *SimRangeArray) ReadRaw() []uint16 {
	for i := range s.out {
		s.out[i] = uint16(2000 + s.rng.Intn(400))
	}
	return s.out
}

// SimTriaxial simulates an IMU axis triple that acquires a new sample every
// updatePeriod ticks. Its sample timestamp only changes when a new sample is
// due, so edge-triggered scheduling behaves as it does against hardware.
type SimTriaxial struct {
	ticks        tick.Source
	updatePeriod uint32
	rng          *rand.Rand
	amplitude    int16

	seeded bool
	last   TriaxialSample
}

// NewSimTriaxial returns a simulated triaxial sensor sampling once every
// updatePeriod ticks of the given source.
func NewSimTriaxial(ticks tick.Source, updatePeriod uint32, amplitude int16, seed int64) *SimTriaxial {
	if updatePeriod == 0 {
		updatePeriod = 1
	}
	return &SimTriaxial{
		ticks:        ticks,
		updatePeriod: updatePeriod,
		rng:          rand.New(rand.NewSource(seed)),
		amplitude:    amplitude,
	}
}

// Sample returns the latest simulated reading. Intermediate updates between
// calls are coalesced, matching real driver behaviour.
func (s *SimTriaxial) Sample() TriaxialSample {
	now := s.ticks.Now() / s.updatePeriod * s.updatePeriod
	if !s.seeded || now != s.last.Timestamp {
		s.seeded = true
		a := int32(s.amplitude)
		s.last = TriaxialSample{
			X:         int16(s.rng.Int31n(2*a+1) - a),
			Y:         int16(s.rng.Int31n(2*a+1) - a),
			Z:         int16(s.rng.Int31n(2*a+1) - a),
			Timestamp: now,
		}
	}
	return s.last
}

// SimWheelSpeeds simulates four wheel transducers sweeping through an RPM
// band.
type SimWheelSpeeds struct {
	ticks tick.Source
	base  float32
}

// NewSimWheelSpeeds returns a simulated wheel-speed source centred on base
// RPM.
func NewSimWheelSpeeds(ticks tick.Source, base float32) *SimWheelSpeeds {
	return &SimWheelSpeeds{ticks: ticks, base: base}
}

// RPM returns the simulated wheel speeds.
func (s *SimWheelSpeeds) RPM() [4]float32 {
	phase := float64(s.ticks.Now()) / 5000
	var rpm [4]float32
	for i := range rpm {
		rpm[i] = s.base + 50*float32(math.Sin(phase+float64(i)/4))
	}
	return rpm
}
