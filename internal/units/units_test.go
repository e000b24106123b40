package units

import (
	"math"
	"testing"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected bool
	}{
		{"valid mps", MPS, true},
		{"valid mph", MPH, true},
		{"valid kmph", KMPH, true},
		{"valid kph", KPH, true},
		{"invalid unit", "invalid", false},
		{"empty string", "", false},
		{"case sensitive", "MPH", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValid(tt.unit)
			if result != tt.expected {
				t.Errorf("IsValid(%s) = %v, want %v", tt.unit, result, tt.expected)
			}
		})
	}
}

func TestConvertSpeed(t *testing.T) {
	tests := []struct {
		name     string
		speedMPS float64
		unit     string
		expected float64
	}{
		{"10 m/s to mph", 10.0, MPH, 22.369362920544},
		{"10 m/s to kmph", 10.0, KMPH, 36.0},
		{"10 m/s to kph", 10.0, KPH, 36.0},
		{"10 m/s to mps", 10.0, MPS, 10.0},
		{"unknown units default to mps", 10.0, "unknown", 10.0},
		{"0 m/s to mph", 0.0, MPH, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertSpeed(tt.speedMPS, tt.unit)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("ConvertSpeed(%f, %s) = %f, want %f", tt.speedMPS, tt.unit, result, tt.expected)
			}
		})
	}
}

func TestWheelSpeedMPS(t *testing.T) {
	tests := []struct {
		name          string
		rpm           float64
		circumference float64
		expected      float64
	}{
		{"stationary", 0, 1.57, 0},
		{"60 rpm is one rev per second", 60, 1.57, 1.57},
		{"1200 rpm on an 18 inch slick", 1200, 1.437, 28.74},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WheelSpeedMPS(tt.rpm, tt.circumference)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("WheelSpeedMPS(%f, %f) = %f, want %f", tt.rpm, tt.circumference, result, tt.expected)
			}
		})
	}
}
