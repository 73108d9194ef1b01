package domain

import "math"

// SpeechRate maps the caller's continuous speed multiplier onto the vendor's
// integer speech_rate scale. The bands are checked first-match-wins; only
// speeds >= 1.5 fall through to the linear formula, which is intentionally
// left unclamped because the vendor's accepted ceiling is not documented.
func SpeechRate(speed float64) int {
	switch {
	case speed <= 0.3:
		return 2
	case speed < 0.5:
		return 3
	case speed < 0.8:
		return 4
	case speed >= 0.8 && speed < 1.2:
		return 5
	case speed >= 1.2 && speed < 1.5:
		return 6
	}

	return int(math.Round((speed-1)/3*6)) + 5
}
