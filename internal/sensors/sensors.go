// Package sensors defines the source drivers sampled by the logger and the
// simulated implementations used for dev mode and log generation.
//
// Hardware acquisition lives in the platform drivers; this package only
// defines the read-side contracts the sampling loop consumes. Triaxial
// sources expose the driver's own sample timestamp so the scheduler can
// edge-trigger on upstream updates.
package sensors

import "github.com/fsae-data/datalogger/internal/config"

// RangeArray yields one calibrated distance reading per channel. Read returns
// the latest state; it never blocks on acquisition.
type RangeArray interface {
	Read() []uint16
}

// TriaxialSample is one three-axis reading plus the driver's sample
// timestamp. Timestamp changes exactly when the driver acquires a new sample;
// the scheduler compares it against the last observed value.
type TriaxialSample struct {
	X, Y, Z   int16
	Timestamp uint32
}

// Triaxial reports the most recent accelerometer or gyroscope sample.
type Triaxial interface {
	Sample() TriaxialSample
}

// WheelSpeeds reports RPM for the four wheel transducers.
type WheelSpeeds interface {
	RPM() [4]float32
}

// RawRangeArray is an uncalibrated range-sensor array, as the hardware
// drivers expose it.
type RawRangeArray interface {
	ReadRaw() []uint16
}

// CalibratedRangeArray applies per-channel calibration on top of a raw array.
type CalibratedRangeArray struct {
	raw RawRangeArray
	cal []config.ChannelCalibration
	out []uint16
}

// NewCalibratedRangeArray wraps raw with the given per-channel calibration.
// Channels beyond the calibration table get the identity calibration.
func NewCalibratedRangeArray(raw RawRangeArray, cal []config.ChannelCalibration) *CalibratedRangeArray {
	return &CalibratedRangeArray{raw: raw, cal: cal}
}

// Read returns calibrated readings, clamped to the u16 range. The returned
// slice is reused between calls.
func (c *CalibratedRangeArray) Read() []uint16 {
	raw := c.raw.ReadRaw()
	if cap(c.out) < len(raw) {
		c.out = make([]uint16, len(raw))
	}
	c.out = c.out[:len(raw)]
	for i, v := range raw {
		cal := config.ChannelCalibration{Gain: 1}
		if i < len(c.cal) {
			cal = c.cal[i]
		}
		c.out[i] = clampU16(float64(v)*cal.Gain + cal.Offset)
	}
	return c.out
}

func clampU16(v float64) uint16 {
	if v < 0 {
		return 0
	}
	if v > 65535 {
		return 65535
	}
	return uint16(v)
}
