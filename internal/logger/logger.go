// Package logger runs the sampling loop: it decides when each sensor class
// is due, encodes due readings into frames, and hands them to the sinks.
//
// The loop is a single goroutine with no internal parallelism. The frame
// encoder's scratch buffer is reused across classes and iterations, which is
// safe because every encode-then-emit sequence completes before the next
// class is evaluated. A slow sink therefore delays sampling for all classes;
// that trade-off is deliberate, there is no queue or double buffering.
package logger

import (
	"context"
	"time"

	"github.com/fsae-data/datalogger/internal/frame"
	"github.com/fsae-data/datalogger/internal/monitoring"
	"github.com/fsae-data/datalogger/internal/sensors"
	"github.com/fsae-data/datalogger/internal/sink"
	"github.com/fsae-data/datalogger/internal/tick"
)

// Options configures a Logger. A nil sensor disables its class.
type Options struct {
	Ticks tick.Source
	Out   *sink.Multi

	Range  sensors.RangeArray
	Accel  sensors.Triaxial
	Gyro   sensors.Triaxial
	Wheels sensors.WheelSpeeds

	// Minimum inter-sample gaps for the tick-gated classes, in ticks.
	RangeGapTicks uint32
	WheelGapTicks uint32

	// FlushIntervalTicks is the storage flush cadence. The flush gate is
	// independent of sensor activity.
	FlushIntervalTicks uint32

	// IdleSleep is how long Run sleeps after an iteration that produced no
	// frames, to avoid spinning a host CPU. Zero busy-spins like the
	// original firmware loop.
	IdleSleep time.Duration
}

// Logger owns the sample gates and the shared frame encoder.
type Logger struct {
	opts Options
	enc  frame.Encoder

	rangeGate tickGate
	accelGate edgeGate
	gyroGate  edgeGate
	wheelGate tickGate
	flushGate tickGate
}

// New returns a Logger with all gates at their initial state.
func New(opts Options) *Logger {
	return &Logger{
		opts:      opts,
		rangeGate: tickGate{threshold: opts.RangeGapTicks},
		wheelGate: tickGate{threshold: opts.WheelGapTicks},
		flushGate: tickGate{threshold: opts.FlushIntervalTicks},
	}
}

// Run executes the sampling loop until ctx is cancelled. It flushes the
// sinks on the way out and returns the context's error.
func (l *Logger) Run(ctx context.Context) error {
	monitoring.Logf("[logger] sampling loop started")
	for {
		select {
		case <-ctx.Done():
			l.opts.Out.Flush()
			return ctx.Err()
		default:
		}

		if emitted := l.Step(l.opts.Ticks.Now()); !emitted && l.opts.IdleSleep > 0 {
			time.Sleep(l.opts.IdleSleep)
		}
	}
}

// Step runs one loop iteration at the given tick. Classes are evaluated in
// fixed priority order (range, accelerometer, gyroscope, wheel speed); each
// ready class completes its encode-and-emit before the next is evaluated, so
// one iteration produces at most four frames. Gates advance only after the
// frame has been handed to the sinks. It reports whether any frame was
// emitted.
func (l *Logger) Step(now uint32) bool {
	emitted := false

	if l.opts.Range != nil && l.rangeGate.ready(now) {
		b, err := l.enc.RangeArray(now, l.opts.Range.Read())
		if err != nil {
			monitoring.Logf("[logger] range encode failed: %v", err)
		} else {
			l.opts.Out.Emit(b)
			l.rangeGate.mark(now)
			emitted = true
		}
	}

	if l.opts.Accel != nil {
		if s := l.opts.Accel.Sample(); l.accelGate.ready(s.Timestamp) {
			l.opts.Out.Emit(l.enc.Triaxial(now, frame.SensorAccelerometer, s.X, s.Y, s.Z))
			l.accelGate.mark(s.Timestamp)
			emitted = true
		}
	}

	if l.opts.Gyro != nil {
		if s := l.opts.Gyro.Sample(); l.gyroGate.ready(s.Timestamp) {
			l.opts.Out.Emit(l.enc.Triaxial(now, frame.SensorGyroscope, s.X, s.Y, s.Z))
			l.gyroGate.mark(s.Timestamp)
			emitted = true
		}
	}

	if l.opts.Wheels != nil && l.wheelGate.ready(now) {
		l.opts.Out.Emit(l.enc.WheelSpeed(now, l.opts.Wheels.RPM()))
		l.wheelGate.mark(now)
		emitted = true
	}

	if l.flushGate.ready(now) {
		l.opts.Out.Flush()
		l.flushGate.mark(now)
	}

	return emitted
}
