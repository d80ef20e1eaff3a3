package physics

import "math"

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

func sincos32(a float64) (float32, float32) {
	s, c := math.Sincos(a)
	return float32(s), float32(c)
}
