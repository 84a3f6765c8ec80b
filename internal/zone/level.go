package zone

import "fmt"

// Level is a self-reported stress level on the slider scale
type Level int

const (
	MinLevel     Level = 1
	MaxLevel     Level = 9
	DefaultLevel Level = 5
)

// NewLevel validates v against the slider bounds
func NewLevel(v int) (Level, error) {
	if v < int(MinLevel) || v > int(MaxLevel) {
		return 0, fmt.Errorf("stress level must be between %d and %d, got %d", MinLevel, MaxLevel, v)
	}
	return Level(v), nil
}

// Clamp pins v to the slider bounds
func Clamp(v int) Level {
	if v < int(MinLevel) {
		return MinLevel
	}
	if v > int(MaxLevel) {
		return MaxLevel
	}
	return Level(v)
}

// Zone is shorthand for Classify(l)
func (l Level) Zone() Zone {
	return Classify(l)
}
