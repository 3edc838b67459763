package util

import (
	"math/rand"

	"github.com/fogleman/ease"
)

// RandomBetween returns a random number in [min, max).
func RandomBetween(rnd *rand.Rand, min float64, max float64) float64 {
	return rnd.Float64()*(max-min) + min
}

// GenerateLut builds a symmetric brightness profile of length entries that
// rises along curve to a peak in the middle and falls away again. Every entry
// is above zero. A nil curve means ease.InOutQuad.
func GenerateLut(length int, curve func(float64) float64) []float64 {
	if length <= 0 {
		return nil
	}
	if curve == nil {
		curve = ease.InOutQuad
	}

	half := length / 2
	lut := make([]float64, length)
	for i, j := 0, length-1; i < half; i, j = i+1, j-1 {
		value := curve(float64(i+1) / float64(half+1))
		lut[i] = value
		lut[j] = value
	}
	if length%2 == 1 {
		lut[half] = curve(1)
	}
	return lut
}
