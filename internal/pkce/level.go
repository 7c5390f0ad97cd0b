package pkce

// Level is a qualitative security label for a verifier length.
type Level int

const (
	LevelMinimum Level = iota
	LevelGood
	LevelVeryGood
	LevelExcellent
)

func (l Level) String() string {
	switch l {
	case LevelMinimum:
		return "Minimum"
	case LevelGood:
		return "Good"
	case LevelVeryGood:
		return "Very Good"
	case LevelExcellent:
		return "Excellent"
	default:
		return "unknown"
	}
}

// Classify maps a verifier length to its security level. Lengths below the
// minimum classify as LevelMinimum and above the maximum as LevelExcellent.
func Classify(length int) Level {
	switch {
	case length >= 100:
		return LevelExcellent
	case length >= 80:
		return LevelVeryGood
	case length >= 60:
		return LevelGood
	default:
		return LevelMinimum
	}
}
