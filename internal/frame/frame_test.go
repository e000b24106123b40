package frame

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeArrayEncoding(t *testing.T) {
	var e Encoder

	// Two channels calibrated to 100 and 200.
	b, err := e.RangeArray(0, []uint16{100, 200})
	require.NoError(t, err)

	// Full frame after the 4-byte timestamp: id, len, payload, trailer.
	// 100 = 0x0064 and 200 = 0x00C8, little-endian on the wire.
	assert.Equal(t, []byte{0x01, 0x04, 0x64, 0x00, 0xC8, 0x00, 0x0D, 0x0A}, b[4:])
	assert.Len(t, b, 12)
}

func TestTriaxialEncoding(t *testing.T) {
	var e Encoder

	b := e.Triaxial(0, SensorAccelerometer, -1, 0, 32767)
	assert.Equal(t, []byte{0x02, 0x06, 0xFF, 0xFF, 0x00, 0x00, 0xFF, 0x7F, 0x0D, 0x0A}, b[4:])
	assert.Len(t, b, 14)

	g := e.Triaxial(0, SensorGyroscope, 1, -2, 3)
	assert.Equal(t, byte(0x03), g[4])
	assert.Equal(t, byte(0x06), g[5])
}

func TestWheelSpeedOmitsLengthByte(t *testing.T) {
	var e Encoder

	b := e.WheelSpeed(7, [4]float32{1, 2, 3, 4})
	// 4 timestamp + 1 id + 16 payload + 2 trailer; no length byte.
	require.Len(t, b, 23)
	assert.Equal(t, byte(SensorWheelSpeed), b[4])
	// 1.0 as little-endian float32 directly follows the id byte.
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3F}, b[5:9])
}

func TestTimestampEncoding(t *testing.T) {
	var e Encoder

	b, err := e.RangeArray(0x01020304, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, b[0:4])
}

func TestTrailerOnEveryClass(t *testing.T) {
	var e Encoder

	frames := [][]byte{}
	b, err := e.RangeArray(1, []uint16{9})
	require.NoError(t, err)
	frames = append(frames, append([]byte(nil), b...))
	frames = append(frames, append([]byte(nil), e.Triaxial(2, SensorAccelerometer, 1, 2, 3)...))
	frames = append(frames, append([]byte(nil), e.Triaxial(3, SensorGyroscope, 4, 5, 6)...))
	frames = append(frames, append([]byte(nil), e.WheelSpeed(4, [4]float32{})...))

	for _, f := range frames {
		assert.Equal(t, byte(0x0D), f[len(f)-2])
		assert.Equal(t, byte(0x0A), f[len(f)-1])
	}
}

func TestDataLengthMatchesPayload(t *testing.T) {
	var e Encoder

	for _, n := range []int{0, 1, 2, 8, MaxRangeChannels} {
		readings := make([]uint16, n)
		b, err := e.RangeArray(0, readings)
		require.NoError(t, err)
		assert.Equal(t, byte(2*n), b[5], "channel count %d", n)
		assert.Len(t, b, 6+2*n+2)
	}
}

func TestRangeArrayChannelBound(t *testing.T) {
	var e Encoder

	_, err := e.RangeArray(0, make([]uint16, MaxRangeChannels+1))
	assert.ErrorIs(t, err, ErrTooManyChannels)
}

func TestEncoderReusesScratchBuffer(t *testing.T) {
	var e Encoder

	a := e.Triaxial(1, SensorAccelerometer, 10, 20, 30)
	first := append([]byte(nil), a...)
	b := e.Triaxial(2, SensorAccelerometer, 40, 50, 60)

	// Same backing array: encoding the second frame clobbers the first.
	assert.Same(t, &a[0], &b[0])
	assert.NotEqual(t, first, a)
}

func TestDecoderRoundTrip(t *testing.T) {
	var e Encoder
	var stream bytes.Buffer

	b, err := e.RangeArray(100, []uint16{1000, 2000, 3000})
	require.NoError(t, err)
	stream.Write(b)
	stream.Write(e.Triaxial(101, SensorAccelerometer, -100, 200, -300))
	stream.Write(e.Triaxial(102, SensorGyroscope, 5, -6, 7))
	stream.Write(e.WheelSpeed(103, [4]float32{1200.5, 1199.25, 0, -3.5}))

	d := NewDecoder(&stream)

	f, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, uint32(100), f.Timestamp)
	readings, err := f.RangeReadings()
	require.NoError(t, err)
	assert.Equal(t, []uint16{1000, 2000, 3000}, readings)

	f, err = d.Next()
	require.NoError(t, err)
	x, y, z, err := f.Triaxial()
	require.NoError(t, err)
	assert.Equal(t, [3]int16{-100, 200, -300}, [3]int16{x, y, z})

	f, err = d.Next()
	require.NoError(t, err)
	assert.Equal(t, SensorGyroscope, f.SensorID)

	f, err = d.Next()
	require.NoError(t, err)
	rpm, err := f.WheelRPM()
	require.NoError(t, err)
	assert.Equal(t, [4]float32{1200.5, 1199.25, 0, -3.5}, rpm)

	_, err = d.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestDecoderBadTrailer(t *testing.T) {
	var e Encoder
	b := append([]byte(nil), e.Triaxial(1, SensorAccelerometer, 1, 2, 3)...)
	b[len(b)-1] = 0x00

	_, err := NewDecoder(bytes.NewReader(b)).Next()
	assert.ErrorIs(t, err, ErrBadTrailer)
}

func TestDecoderTruncated(t *testing.T) {
	var e Encoder
	b := e.WheelSpeed(1, [4]float32{1, 2, 3, 4})

	_, err := NewDecoder(bytes.NewReader(b[:10])).Next()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestSensorName(t *testing.T) {
	assert.Equal(t, "range", SensorName(SensorRangeArray))
	assert.Equal(t, "accel", SensorName(SensorAccelerometer))
	assert.Equal(t, "gyro", SensorName(SensorGyroscope))
	assert.Equal(t, "wheel", SensorName(SensorWheelSpeed))
	assert.Equal(t, "unknown(0x7f)", SensorName(0x7F))
}
