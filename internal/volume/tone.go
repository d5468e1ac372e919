package volume

import "math"

const (
	toneRate = 44100
	toneHz   = 880.0
)

// sineBurst synthesizes the feedback tone: a sine at toneHz whose
// amplitude follows the level, with a linear fade-out so the burst
// ends without a click. A level of 0 yields silence of the same
// length.
func sineBurst(level int, frames int) []float32 {
	samples := make([]float32, frames)
	amp := float64(clampLevel(level)) / 100 * 0.3
	if amp == 0 {
		return samples
	}
	step := 2 * math.Pi * toneHz / toneRate
	for i := range samples {
		fade := 1 - float64(i)/float64(frames)
		samples[i] = float32(amp * fade * math.Sin(step*float64(i)))
	}
	return samples
}
