package sink

import (
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsae-data/datalogger/internal/frame"
	"github.com/fsae-data/datalogger/internal/fsutil"
	"github.com/fsae-data/datalogger/internal/monitoring"
	"github.com/fsae-data/datalogger/internal/serialport"
)

func encodeWheel(ts uint32) []byte {
	var e frame.Encoder
	return append([]byte(nil), e.WheelSpeed(ts, [4]float32{1, 2, 3, 4})...)
}

func TestFileSinkBuffersUntilFlush(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	f, err := fs.Create("fsae-0000.log")
	require.NoError(t, err)

	s := NewFileSink(f)
	require.NoError(t, s.Write(encodeWheel(1)))

	// Not yet on media.
	data, err := fs.ReadFile("fsae-0000.log")
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.Zero(t, fs.SyncCount("fsae-0000.log"))

	require.NoError(t, s.Flush())
	data, err = fs.ReadFile("fsae-0000.log")
	require.NoError(t, err)
	assert.Len(t, data, 23)
	assert.Equal(t, 1, fs.SyncCount("fsae-0000.log"))
}

func TestFileSinkClose(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	f, err := fs.Create("fsae-0000.log")
	require.NoError(t, err)

	s := NewFileSink(f)
	require.NoError(t, s.Write(encodeWheel(1)))
	require.NoError(t, s.Close())

	data, err := fs.ReadFile("fsae-0000.log")
	require.NoError(t, err)
	assert.Len(t, data, 23)
}

func TestSerialSinkWritesFrames(t *testing.T) {
	port := &serialport.MockPort{}
	s := NewSerialSink(port)

	b := encodeWheel(9)
	require.NoError(t, s.Write(b))
	require.NoError(t, s.Flush())
	assert.Equal(t, b, port.Bytes())
}

func TestMultiEmitFansOut(t *testing.T) {
	records, restore := monitoring.Capture()
	defer restore()

	fs := fsutil.NewMemoryFileSystem()
	f, _ := fs.Create("fsae-0000.log")
	file := NewFileSink(f)
	port := &serialport.MockPort{}
	serial := NewSerialSink(port)

	m := NewMulti(file, serial)
	b := encodeWheel(3)
	m.Emit(b)
	m.Flush()

	data, _ := fs.ReadFile("fsae-0000.log")
	assert.Equal(t, b, data)
	assert.Equal(t, b, port.Bytes())

	// Exactly one trace record per frame, carrying the sensor id byte.
	var traces []string
	for _, r := range *records {
		if strings.HasPrefix(r, "[logger] 0x") {
			traces = append(traces, r)
		}
	}
	require.Len(t, traces, 1)
	assert.Equal(t, "[logger] 0x04", traces[0])
}

func TestMultiCountsWriteFailures(t *testing.T) {
	_, restore := monitoring.Capture()
	defer restore()

	port := &serialport.MockPort{WriteErr: errors.New("link down")}
	m := NewMulti(NewSerialSink(port))

	before := testutil.ToFloat64(writeFailures.WithLabelValues("serial"))
	m.Emit(encodeWheel(1))
	m.Emit(encodeWheel(2))
	after := testutil.ToFloat64(writeFailures.WithLabelValues("serial"))

	assert.Equal(t, 2.0, after-before)
}

func TestMultiCountsFlushFailures(t *testing.T) {
	_, restore := monitoring.Capture()
	defer restore()

	m := NewMulti(&failingFlushSink{})

	before := testutil.ToFloat64(flushFailures.WithLabelValues("failing"))
	m.Flush()
	after := testutil.ToFloat64(flushFailures.WithLabelValues("failing"))

	assert.Equal(t, 1.0, after-before)
}

func TestMultiCountsFrames(t *testing.T) {
	_, restore := monitoring.Capture()
	defer restore()

	m := NewMulti()
	before := testutil.ToFloat64(framesTotal.WithLabelValues("wheel"))
	m.Emit(encodeWheel(1))
	after := testutil.ToFloat64(framesTotal.WithLabelValues("wheel"))

	assert.Equal(t, 1.0, after-before)
}

type failingFlushSink struct{}

func (failingFlushSink) Name() string             { return "failing" }
func (failingFlushSink) Write(frame []byte) error { return nil }
func (failingFlushSink) Flush() error             { return errors.New("media gone") }
