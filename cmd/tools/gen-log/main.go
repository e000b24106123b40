// Command gen-log writes a synthetic logging session for testing the dump
// and import tooling without a car.
package main

import (
	"flag"
	"log"

	"github.com/fsae-data/datalogger/internal/config"
	"github.com/fsae-data/datalogger/internal/fsutil"
	"github.com/fsae-data/datalogger/internal/logger"
	"github.com/fsae-data/datalogger/internal/monitoring"
	"github.com/fsae-data/datalogger/internal/sensors"
	"github.com/fsae-data/datalogger/internal/sink"
	"github.com/fsae-data/datalogger/internal/tick"
)

func main() {
	dir := flag.String("dir", ".", "output directory")
	iterations := flag.Int("n", 10000, "loop iterations to simulate")
	stride := flag.Uint("stride", 5, "ticks between iterations")
	channels := flag.Int("channels", 4, "range-array channels")
	seed := flag.Int64("seed", 1, "simulation seed")
	verbose := flag.Bool("v", false, "trace every frame")
	flag.Parse()

	if !*verbose {
		monitoring.SetLogger(nil)
	}

	fsys := fsutil.OSFileSystem{}
	if err := fsys.MkdirAll(*dir, 0o755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	lf, err := logger.OpenNextLogFile(fsys, *dir)
	if err != nil {
		log.Fatalf("%v", err)
	}

	clock := tick.NewManual(0)
	out := sink.NewMulti(sink.NewFileSink(lf.File))

	cal := make([]config.ChannelCalibration, *channels)
	for i := range cal {
		cal[i] = config.ChannelCalibration{Gain: 1}
	}

	l := logger.New(logger.Options{
		Ticks:              clock,
		Out:                out,
		Range:              sensors.NewCalibratedRangeArray(sensors.NewSimRangeArray(*channels, *seed), cal),
		Accel:              sensors.NewSimTriaxial(clock, 10, 16000, *seed+1),
		Gyro:               sensors.NewSimTriaxial(clock, 10, 12000, *seed+2),
		Wheels:             sensors.NewSimWheelSpeeds(clock, 1200),
		RangeGapTicks:      10,
		WheelGapTicks:      10,
		FlushIntervalTicks: 10000,
	})

	for i := 0; i < *iterations; i++ {
		l.Step(clock.Now())
		clock.Advance(uint32(*stride))
		if (i+1)%(*iterations/10+1) == 0 {
			log.Printf("%d/%d iterations", i+1, *iterations)
		}
	}

	out.Flush()
	if err := out.Close(); err != nil {
		log.Fatalf("failed to close session: %v", err)
	}
	log.Printf("✓ Created: %s", lf.Path)
}
