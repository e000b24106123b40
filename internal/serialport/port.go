// Package serialport abstracts the host-link serial device so the transport
// sink can be exercised without real hardware.
package serialport

import (
	"io"

	"go.bug.st/serial"
)

// Port defines the minimal interface the sink needs from a serial device.
type Port interface {
	io.Writer
	io.Closer
}

// Mode defines serial port configuration parameters.
type Mode struct {
	BaudRate int
	DataBits int
	Parity   serial.Parity
	StopBits serial.StopBits
}

// DefaultMode returns the host-link default: 8N1 at the given baud rate.
func DefaultMode(baud int) *Mode {
	return &Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// Open opens a real serial port at the given path.
func Open(path string, mode *Mode) (Port, error) {
	return serial.Open(path, &serial.Mode{
		BaudRate: mode.BaudRate,
		DataBits: mode.DataBits,
		Parity:   mode.Parity,
		StopBits: mode.StopBits,
	})
}
