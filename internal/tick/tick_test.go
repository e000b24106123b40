package tick

import (
	"testing"
	"time"
)

func TestElapsedWraparound(t *testing.T) {
	tests := []struct {
		name  string
		now   uint32
		since uint32
		want  uint32
	}{
		{"simple", 100, 40, 60},
		{"equal", 7, 7, 0},
		{"wrapped", 5, 0xFFFFFFF0, 21},
		{"full range", 0xFFFFFFFF, 0, 0xFFFFFFFF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Elapsed(tt.now, tt.since); got != tt.want {
				t.Errorf("Elapsed(%d, %d) = %d, want %d", tt.now, tt.since, got, tt.want)
			}
		})
	}
}

func TestManual(t *testing.T) {
	m := NewManual(10)
	if m.Now() != 10 {
		t.Fatalf("Now() = %d, want 10", m.Now())
	}
	m.Advance(5)
	if m.Now() != 15 {
		t.Errorf("after Advance(5): Now() = %d, want 15", m.Now())
	}
	m.Set(0xFFFFFFFE)
	m.Advance(3)
	if m.Now() != 1 {
		t.Errorf("wrapped Advance: Now() = %d, want 1", m.Now())
	}
}

func TestWallSourceDefaults(t *testing.T) {
	s := NewWallSource(0)
	if s.PerSecond() != DefaultTicksPerSecond {
		t.Errorf("PerSecond() = %d, want %d", s.PerSecond(), DefaultTicksPerSecond)
	}
	if s.TickPeriod() != time.Second/time.Duration(DefaultTicksPerSecond) {
		t.Errorf("TickPeriod() = %v", s.TickPeriod())
	}
}

func TestWallSourceMonotonic(t *testing.T) {
	s := NewWallSource(1000000)
	a := s.Now()
	time.Sleep(2 * time.Millisecond)
	b := s.Now()
	if Elapsed(b, a) == 0 {
		t.Errorf("clock did not advance: %d -> %d", a, b)
	}
}
