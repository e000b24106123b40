// Package sink routes encoded frames to the configured output destinations
// and owns the periodic storage flush.
//
// Per-frame write failures do not stop the sampling loop: they are counted,
// traced, and otherwise dropped, preserving the fire-and-forget delivery of
// the original firmware while making the loss observable.
package sink

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fsae-data/datalogger/internal/frame"
	"github.com/fsae-data/datalogger/internal/fsutil"
	"github.com/fsae-data/datalogger/internal/monitoring"
	"github.com/fsae-data/datalogger/internal/serialport"
)

// Sink receives completed frames. Write and Flush may block; a stalled sink
// backpressures the whole sampling loop.
type Sink interface {
	// Name identifies the sink in metrics and traces.
	Name() string
	// Write delivers one complete frame.
	Write(frame []byte) error
	// Flush forces delivered frames onto the underlying medium.
	Flush() error
}

// FileSink writes frames to a log file on the storage filesystem. Writes are
// buffered; Flush drains the buffer and syncs the media, bounding data loss
// on power removal to the flush interval.
type FileSink struct {
	file fsutil.File
	buf  *bufio.Writer
}

// NewFileSink returns a FileSink over an open log file.
func NewFileSink(f fsutil.File) *FileSink {
	return &FileSink{file: f, buf: bufio.NewWriter(f)}
}

// Name implements Sink.
func (s *FileSink) Name() string { return "file" }

// Write buffers one frame.
func (s *FileSink) Write(frame []byte) error {
	if _, err := s.buf.Write(frame); err != nil {
		return fmt.Errorf("file sink write: %w", err)
	}
	return nil
}

// Flush drains the buffer and syncs the file to media.
func (s *FileSink) Flush() error {
	if err := s.buf.Flush(); err != nil {
		return fmt.Errorf("file sink flush: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("file sink sync: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (s *FileSink) Close() error {
	if err := s.Flush(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// SerialSink mirrors frames to the host link. The link has no persistence to
// flush.
type SerialSink struct {
	port serialport.Port
}

// NewSerialSink returns a SerialSink over an open port.
func NewSerialSink(p serialport.Port) *SerialSink {
	return &SerialSink{port: p}
}

// Name implements Sink.
func (s *SerialSink) Name() string { return "serial" }

// Write sends one frame down the link.
func (s *SerialSink) Write(frame []byte) error {
	if _, err := s.port.Write(frame); err != nil {
		return fmt.Errorf("serial sink write: %w", err)
	}
	return nil
}

// Flush implements Sink; the serial link is unbuffered.
func (s *SerialSink) Flush() error { return nil }

// Close closes the port.
func (s *SerialSink) Close() error { return s.port.Close() }

// Multi fans one frame out to every configured sink and emits the per-frame
// diagnostic trace. The sink set is fixed at construction.
type Multi struct {
	sinks []Sink
}

// NewMulti returns a Multi over the given sinks.
func NewMulti(sinks ...Sink) *Multi {
	return &Multi{sinks: sinks}
}

// Emit delivers b, a complete encoded frame, to every sink. Failures are
// counted and traced but never propagated; the caller may reuse the frame
// buffer as soon as Emit returns.
func (m *Multi) Emit(b []byte) {
	id := b[4]
	framesTotal.WithLabelValues(frame.SensorName(id)).Inc()
	monitoring.Logf("[logger] 0x%02x", id)

	for _, s := range m.sinks {
		if err := s.Write(b); err != nil {
			writeFailures.WithLabelValues(s.Name()).Inc()
			monitoring.Logf("[logger] %s sink write failed: %v", s.Name(), err)
		}
	}
}

// Flush flushes every sink. Failures are counted and traced.
func (m *Multi) Flush() {
	for _, s := range m.sinks {
		if err := s.Flush(); err != nil {
			flushFailures.WithLabelValues(s.Name()).Inc()
			monitoring.Logf("[logger] %s sink flush failed: %v", s.Name(), err)
		}
	}
}

// Close closes every sink that is closeable, returning the first error.
func (m *Multi) Close() error {
	var firstErr error
	for _, s := range m.sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
