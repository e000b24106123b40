package serialport

import (
	"bytes"
	"sync"
)

// MockPort is an in-memory Port recording everything written to it. Set
// WriteErr to make writes fail.
type MockPort struct {
	mu       sync.Mutex
	buf      bytes.Buffer
	closed   bool
	WriteErr error
}

// Write records p, or fails with WriteErr when set.
func (m *MockPort) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return 0, m.WriteErr
	}
	return m.buf.Write(p)
}

// Close marks the port closed.
func (m *MockPort) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (m *MockPort) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Bytes returns a copy of everything written so far.
func (m *MockPort) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, m.buf.Len())
	copy(out, m.buf.Bytes())
	return out
}
