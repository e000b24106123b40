// Package frame implements the binary log frame format shared by every sink.
//
// A frame is laid out as:
//
//	[timestamp: u32][sensor_id: u8][data_length: u8][payload][0x0D][0x0A]
//
// with all multi-byte values little-endian. The wheel-speed class (0x04) is
// the exception: it carries no data_length byte and its payload is a fixed
// 16 bytes. That asymmetry is part of the on-disk format and must not be
// normalised without versioning the format.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Sensor class identifiers.
const (
	SensorRangeArray    byte = 0x01
	SensorAccelerometer byte = 0x02
	SensorGyroscope     byte = 0x03
	SensorWheelSpeed    byte = 0x04
)

const (
	// MaxPayload is the largest payload expressible in the 8-bit length
	// field.
	MaxPayload = 255

	// WheelPayloadLen is the fixed payload size of a wheel-speed frame:
	// four wheels, four bytes of float each.
	WheelPayloadLen = 16

	// MaxRangeChannels is the largest range-array channel count that keeps
	// the complete frame within the 8-bit length bound: 2*N + 8 <= 255.
	MaxRangeChannels = (MaxPayload - 8) / 2

	headerLen  = 6 // timestamp + sensor id + data_length
	trailerLen = 2
)

const (
	trailerCR byte = 0x0D
	trailerLF byte = 0x0A
)

// ErrTooManyChannels is returned when a range-array payload would overflow
// the 8-bit length field.
var ErrTooManyChannels = fmt.Errorf("range array exceeds %d channels", MaxRangeChannels)

// ErrBadTrailer is returned by the decoder when a frame does not end in
// 0x0D 0x0A.
var ErrBadTrailer = errors.New("frame trailer is not 0x0D 0x0A")

// SensorName returns a short human-readable name for a sensor id.
func SensorName(id byte) string {
	switch id {
	case SensorRangeArray:
		return "range"
	case SensorAccelerometer:
		return "accel"
	case SensorGyroscope:
		return "gyro"
	case SensorWheelSpeed:
		return "wheel"
	default:
		return fmt.Sprintf("unknown(0x%02x)", id)
	}
}

// Encoder serialises readings into its scratch buffer. The buffer holds at
// most one in-progress frame: each Encode call overwrites the previous frame,
// so the returned slice must be handed to the sinks before the encoder is
// used again. The encoder is not safe for concurrent use.
type Encoder struct {
	buf [headerLen + MaxPayload + trailerLen]byte
}

// header writes the timestamp and sensor id and returns the payload offset.
func (e *Encoder) header(ts uint32, id byte, dataLen int, withLen bool) int {
	binary.LittleEndian.PutUint32(e.buf[0:4], ts)
	e.buf[4] = id
	if !withLen {
		return 5
	}
	e.buf[5] = byte(dataLen)
	return 6
}

// close appends the trailer after a payload ending at off and returns the
// completed frame.
func (e *Encoder) close(off int) []byte {
	e.buf[off] = trailerCR
	e.buf[off+1] = trailerLF
	return e.buf[:off+2]
}

// RangeArray encodes a calibrated range-array frame (id 0x01) with one
// unsigned 16-bit reading per channel.
func (e *Encoder) RangeArray(ts uint32, readings []uint16) ([]byte, error) {
	if len(readings) > MaxRangeChannels {
		return nil, ErrTooManyChannels
	}
	off := e.header(ts, SensorRangeArray, 2*len(readings), true)
	for _, v := range readings {
		binary.LittleEndian.PutUint16(e.buf[off:], v)
		off += 2
	}
	return e.close(off), nil
}

// Triaxial encodes an accelerometer (0x02) or gyroscope (0x03) frame with
// raw signed 16-bit axis readings.
func (e *Encoder) Triaxial(ts uint32, id byte, x, y, z int16) []byte {
	off := e.header(ts, id, 6, true)
	for _, v := range [3]int16{x, y, z} {
		binary.LittleEndian.PutUint16(e.buf[off:], uint16(v))
		off += 2
	}
	return e.close(off)
}

// WheelSpeed encodes a wheel-speed frame (id 0x04): four 32-bit float RPM
// values and no data_length byte.
func (e *Encoder) WheelSpeed(ts uint32, rpm [4]float32) []byte {
	off := e.header(ts, SensorWheelSpeed, WheelPayloadLen, false)
	for _, v := range rpm {
		binary.LittleEndian.PutUint32(e.buf[off:], math.Float32bits(v))
		off += 4
	}
	return e.close(off)
}
