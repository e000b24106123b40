package frame

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Frame is one decoded log record.
type Frame struct {
	Timestamp uint32
	SensorID  byte
	Payload   []byte
}

// RangeReadings interprets the payload as little-endian u16 channel readings.
func (f *Frame) RangeReadings() ([]uint16, error) {
	if f.SensorID != SensorRangeArray {
		return nil, fmt.Errorf("sensor 0x%02x is not a range array", f.SensorID)
	}
	if len(f.Payload)%2 != 0 {
		return nil, fmt.Errorf("odd range payload length %d", len(f.Payload))
	}
	out := make([]uint16, len(f.Payload)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(f.Payload[2*i:])
	}
	return out, nil
}

// Triaxial interprets the payload as raw X, Y, Z axis readings.
func (f *Frame) Triaxial() (x, y, z int16, err error) {
	if f.SensorID != SensorAccelerometer && f.SensorID != SensorGyroscope {
		return 0, 0, 0, fmt.Errorf("sensor 0x%02x is not triaxial", f.SensorID)
	}
	if len(f.Payload) != 6 {
		return 0, 0, 0, fmt.Errorf("triaxial payload length %d, want 6", len(f.Payload))
	}
	x = int16(binary.LittleEndian.Uint16(f.Payload[0:]))
	y = int16(binary.LittleEndian.Uint16(f.Payload[2:]))
	z = int16(binary.LittleEndian.Uint16(f.Payload[4:]))
	return x, y, z, nil
}

// WheelRPM interprets the payload as four wheel RPM floats.
func (f *Frame) WheelRPM() ([4]float32, error) {
	var rpm [4]float32
	if f.SensorID != SensorWheelSpeed {
		return rpm, fmt.Errorf("sensor 0x%02x is not wheel speed", f.SensorID)
	}
	if len(f.Payload) != WheelPayloadLen {
		return rpm, fmt.Errorf("wheel payload length %d, want %d", len(f.Payload), WheelPayloadLen)
	}
	for i := range rpm {
		rpm[i] = math.Float32frombits(binary.LittleEndian.Uint32(f.Payload[4*i:]))
	}
	return rpm, nil
}

// Decoder reads frames back out of a log stream. It understands the
// wheel-speed class's missing length byte.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next decodes and returns the next frame. It returns io.EOF at a clean end
// of stream and io.ErrUnexpectedEOF if the stream ends mid-frame.
func (d *Decoder) Next() (*Frame, error) {
	var head [5]byte
	if _, err := io.ReadFull(d.r, head[:1]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, err
	}
	if _, err := io.ReadFull(d.r, head[1:]); err != nil {
		return nil, unexpected(err)
	}

	f := &Frame{
		Timestamp: binary.LittleEndian.Uint32(head[0:4]),
		SensorID:  head[4],
	}

	dataLen := WheelPayloadLen
	if f.SensorID != SensorWheelSpeed {
		b, err := d.r.ReadByte()
		if err != nil {
			return nil, unexpected(err)
		}
		dataLen = int(b)
	}

	f.Payload = make([]byte, dataLen)
	if _, err := io.ReadFull(d.r, f.Payload); err != nil {
		return nil, unexpected(err)
	}

	var tail [2]byte
	if _, err := io.ReadFull(d.r, tail[:]); err != nil {
		return nil, unexpected(err)
	}
	if tail[0] != trailerCR || tail[1] != trailerLF {
		return nil, fmt.Errorf("%w: got %02x %02x", ErrBadTrailer, tail[0], tail[1])
	}
	return f, nil
}

func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
