package serialport

import (
	"errors"
	"testing"
)

func TestMockPortRecordsWrites(t *testing.T) {
	m := &MockPort{}

	if _, err := m.Write([]byte{0x01, 0x02}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := m.Write([]byte{0x03}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got := m.Bytes()
	if len(got) != 3 || got[2] != 0x03 {
		t.Errorf("Bytes() = %v", got)
	}
}

func TestMockPortWriteErr(t *testing.T) {
	wantErr := errors.New("cable unplugged")
	m := &MockPort{WriteErr: wantErr}

	if _, err := m.Write([]byte{0x01}); !errors.Is(err, wantErr) {
		t.Errorf("Write() error = %v, want %v", err, wantErr)
	}
	if len(m.Bytes()) != 0 {
		t.Error("failed write should record nothing")
	}
}

func TestMockPortClose(t *testing.T) {
	m := &MockPort{}
	if m.Closed() {
		t.Fatal("Closed() = true before Close")
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !m.Closed() {
		t.Error("Closed() = false after Close")
	}
}

func TestDefaultMode(t *testing.T) {
	mode := DefaultMode(115200)
	if mode.BaudRate != 115200 || mode.DataBits != 8 {
		t.Errorf("DefaultMode() = %+v", mode)
	}
}
