// Package config loads the datalogger configuration and range-array
// calibration from JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsae-data/datalogger/internal/frame"
	"github.com/fsae-data/datalogger/internal/tick"
)

// DefaultConfigPath is the path to the canonical defaults file. This is the
// single source of truth for all default logger values.
const DefaultConfigPath = "config/logger.defaults.json"

// ChannelCalibration holds the per-channel calibration applied to raw
// range-array readings: calibrated = raw*gain + offset, clamped to u16.
type ChannelCalibration struct {
	Gain   float64 `json:"gain"`
	Offset float64 `json:"offset"`
}

// LoggerConfig is the root configuration. Fields are pointers so a partial
// JSON file leaves the omitted values at their defaults; use the Get*
// accessors to read effective values.
type LoggerConfig struct {
	// Clock params
	TicksPerSecond *uint32 `json:"ticks_per_second,omitempty"`

	// Scheduler params, all in tick units
	RangeGapTicks      *uint32 `json:"range_gap_ticks,omitempty"`
	WheelGapTicks      *uint32 `json:"wheel_gap_ticks,omitempty"`
	FlushIntervalTicks *uint32 `json:"flush_interval_ticks,omitempty"`

	// Active sensor classes
	RangeEnabled *bool `json:"range_enabled,omitempty"`
	IMUEnabled   *bool `json:"imu_enabled,omitempty"`
	WheelEnabled *bool `json:"wheel_enabled,omitempty"`

	// Range array params
	RangeChannels    *int                 `json:"range_channels,omitempty"`
	RangeCalibration []ChannelCalibration `json:"range_calibration,omitempty"`

	// Sink params
	LogDir      *string `json:"log_dir,omitempty"`
	SerialPort  *string `json:"serial_port,omitempty"` // empty disables the host link
	SerialBaud  *int    `json:"serial_baud,omitempty"`
	DebugListen *string `json:"debug_listen,omitempty"` // empty disables the metrics listener
}

// EmptyLoggerConfig returns a LoggerConfig with all fields unset.
func EmptyLoggerConfig() *LoggerConfig {
	return &LoggerConfig{}
}

// LoadLoggerConfig loads a LoggerConfig from a JSON file. Fields omitted from
// the file retain their defaults, so partial configs are safe.
func LoadLoggerConfig(path string) (*LoggerConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyLoggerConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath.
// It searches the current directory and common parent directories. Panics if
// the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *LoggerConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/<pkg>/
		"../../../" + DefaultConfigPath, // from cmd/tools/<tool>/
	}
	for _, path := range candidates {
		if cfg, err := LoadLoggerConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are consistent.
func (c *LoggerConfig) Validate() error {
	if c.TicksPerSecond != nil && *c.TicksPerSecond < 1000 {
		return fmt.Errorf("ticks_per_second must be at least 1000 for sub-millisecond gating, got %d", *c.TicksPerSecond)
	}

	n := c.GetRangeChannels()
	if n < 1 || n > frame.MaxRangeChannels {
		return fmt.Errorf("range_channels must be in [1, %d], got %d", frame.MaxRangeChannels, n)
	}
	if len(c.RangeCalibration) != 0 && len(c.RangeCalibration) != n {
		return fmt.Errorf("range_calibration has %d entries for %d channels", len(c.RangeCalibration), n)
	}

	if c.SerialBaud != nil && *c.SerialBaud <= 0 {
		return fmt.Errorf("serial_baud must be positive, got %d", *c.SerialBaud)
	}
	return nil
}

// GetTicksPerSecond returns the tick rate or the default.
func (c *LoggerConfig) GetTicksPerSecond() uint32 {
	if c.TicksPerSecond == nil {
		return tick.DefaultTicksPerSecond
	}
	return *c.TicksPerSecond
}

// GetRangeGapTicks returns the minimum inter-sample gap for the range array.
// The default is one millisecond of ticks, matching the original firmware.
func (c *LoggerConfig) GetRangeGapTicks() uint32 {
	if c.RangeGapTicks == nil {
		return c.GetTicksPerSecond() / 1000
	}
	return *c.RangeGapTicks
}

// GetWheelGapTicks returns the minimum inter-sample gap for the wheel-speed
// transducers.
func (c *LoggerConfig) GetWheelGapTicks() uint32 {
	if c.WheelGapTicks == nil {
		return c.GetTicksPerSecond() / 1000
	}
	return *c.WheelGapTicks
}

// GetFlushIntervalTicks returns the storage flush interval, one tick-second
// by default. This bounds data loss on abrupt power removal.
func (c *LoggerConfig) GetFlushIntervalTicks() uint32 {
	if c.FlushIntervalTicks == nil {
		return c.GetTicksPerSecond()
	}
	return *c.FlushIntervalTicks
}

// GetRangeEnabled returns whether the range-array class is sampled.
func (c *LoggerConfig) GetRangeEnabled() bool {
	if c.RangeEnabled == nil {
		return true
	}
	return *c.RangeEnabled
}

// GetIMUEnabled returns whether the accelerometer/gyroscope pair is sampled.
func (c *LoggerConfig) GetIMUEnabled() bool {
	if c.IMUEnabled == nil {
		return true
	}
	return *c.IMUEnabled
}

// GetWheelEnabled returns whether the wheel-speed class is sampled.
func (c *LoggerConfig) GetWheelEnabled() bool {
	if c.WheelEnabled == nil {
		return true
	}
	return *c.WheelEnabled
}

// GetRangeChannels returns the number of range-array channels.
func (c *LoggerConfig) GetRangeChannels() int {
	if c.RangeChannels == nil {
		return 4
	}
	return *c.RangeChannels
}

// GetChannelCalibration returns the calibration for channel i, or the
// identity calibration when none is configured.
func (c *LoggerConfig) GetChannelCalibration(i int) ChannelCalibration {
	if i < 0 || i >= len(c.RangeCalibration) {
		return ChannelCalibration{Gain: 1}
	}
	return c.RangeCalibration[i]
}

// GetLogDir returns the log directory.
func (c *LoggerConfig) GetLogDir() string {
	if c.LogDir == nil || *c.LogDir == "" {
		return "."
	}
	return *c.LogDir
}

// GetSerialPort returns the host-link serial device path, or "" when the
// serial sink is disabled.
func (c *LoggerConfig) GetSerialPort() string {
	if c.SerialPort == nil {
		return ""
	}
	return *c.SerialPort
}

// GetSerialBaud returns the host-link baud rate.
func (c *LoggerConfig) GetSerialBaud() int {
	if c.SerialBaud == nil {
		return 115200
	}
	return *c.SerialBaud
}

// GetDebugListen returns the metrics listener address, or "" when disabled.
func (c *LoggerConfig) GetDebugListen() string {
	if c.DebugListen == nil {
		return ""
	}
	return *c.DebugListen
}
