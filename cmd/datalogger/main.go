// Command datalogger captures vehicle sensor readings into binary session
// logs on removable storage, optionally mirroring every frame to a host
// serial link.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fsae-data/datalogger/internal/config"
	"github.com/fsae-data/datalogger/internal/fsutil"
	"github.com/fsae-data/datalogger/internal/logger"
	"github.com/fsae-data/datalogger/internal/readiness"
	"github.com/fsae-data/datalogger/internal/sensors"
	"github.com/fsae-data/datalogger/internal/serialport"
	"github.com/fsae-data/datalogger/internal/sink"
	"github.com/fsae-data/datalogger/internal/tick"
	"github.com/fsae-data/datalogger/internal/version"
)

var (
	configPath  = flag.String("config", config.DefaultConfigPath, "Path to logger config JSON")
	logDir      = flag.String("dir", "", "Log directory (overrides config)")
	serialPath  = flag.String("serial", "", "Host-link serial port (overrides config)")
	debugListen = flag.String("debug-listen", "", "Metrics listen address (overrides config)")
	devMode     = flag.Bool("dev", true, "Use simulated sensor drivers")
	simSeed     = flag.Int64("sim-seed", 1, "Seed for the simulated drivers")
)

func main() {
	flag.Parse()

	log.Printf("datalogger %s (%s, built %s)", version.Version, version.GitSHA, version.BuildTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !*devMode {
		log.Fatal("hardware sensor drivers are supplied by the platform build; this build supports -dev only")
	}

	gate := readiness.NewGate()

	cfg, err := config.LoadLoggerConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	gate.Signal(readiness.ConfigLoaded)

	dir := cfg.GetLogDir()
	if *logDir != "" {
		dir = *logDir
	}
	fsys := fsutil.OSFileSystem{}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("%v: %v", logger.ErrStorageUnavailable, err)
	}
	gate.Signal(readiness.StorageMounted)

	// The barrier is consumed exactly once before the sampling loop starts.
	if err := gate.Wait(ctx, readiness.StorageMounted|readiness.ConfigLoaded); err != nil {
		log.Fatalf("interrupted before startup: %v", err)
	}

	lf, err := logger.OpenNextLogFile(fsys, dir)
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("logging session %04d to %s", lf.SequenceID, lf.Path)

	sinks := []sink.Sink{sink.NewFileSink(lf.File)}

	portPath := cfg.GetSerialPort()
	if *serialPath != "" {
		portPath = *serialPath
	}
	if portPath != "" {
		p, err := serialport.Open(portPath, serialport.DefaultMode(cfg.GetSerialBaud()))
		if err != nil {
			log.Fatalf("failed to open host link %s: %v", portPath, err)
		}
		log.Printf("mirroring frames to %s", portPath)
		sinks = append(sinks, sink.NewSerialSink(p))
	}

	out := sink.NewMulti(sinks...)
	defer out.Close()

	listen := cfg.GetDebugListen()
	if *debugListen != "" {
		listen = *debugListen
	}
	if listen != "" {
		go serveMetrics(listen)
	}

	ticks := tick.NewWallSource(cfg.GetTicksPerSecond())

	opts := logger.Options{
		Ticks:              ticks,
		Out:                out,
		RangeGapTicks:      cfg.GetRangeGapTicks(),
		WheelGapTicks:      cfg.GetWheelGapTicks(),
		FlushIntervalTicks: cfg.GetFlushIntervalTicks(),
		IdleSleep:          ticks.TickPeriod(),
	}
	attachSimSensors(cfg, ticks, &opts)

	if err := logger.New(opts).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("sampling loop: %v", err)
	}
	log.Printf("session %04d closed", lf.SequenceID)
}

// attachSimSensors wires a simulated driver for each enabled sensor class.
func attachSimSensors(cfg *config.LoggerConfig, ticks *tick.WallSource, opts *logger.Options) {
	if cfg.GetRangeEnabled() {
		raw := sensors.NewSimRangeArray(cfg.GetRangeChannels(), *simSeed)
		opts.Range = sensors.NewCalibratedRangeArray(raw, cfg.RangeCalibration)
	}
	if cfg.GetIMUEnabled() {
		// Simulated IMU acquires at roughly 1 kHz, like the hardware part.
		period := cfg.GetTicksPerSecond() / 1000
		opts.Accel = sensors.NewSimTriaxial(ticks, period, 16000, *simSeed+1)
		opts.Gyro = sensors.NewSimTriaxial(ticks, period, 12000, *simSeed+2)
	}
	if cfg.GetWheelEnabled() {
		opts.Wheels = sensors.NewSimWheelSpeeds(ticks, 1200)
	}
}

func serveMetrics(listen string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Printf("metrics listener on %s", listen)
	if err := http.ListenAndServe(listen, mux); err != nil {
		log.Printf("metrics listener: %v", err)
	}
}
