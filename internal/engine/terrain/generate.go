package terrain

import (
	"fmt"

	"github.com/aquilax/go-perlin"
)

// GenerateParams controls procedural heightmap generation.
type GenerateParams struct {
	Width     int
	Height    int
	Seed      int64
	Frequency float64 // Base noise frequency per sample
	Octaves   int
	Alpha     float64 // Weight falloff between octaves
	Beta      float64 // Frequency multiplier between octaves
}

// DefaultGenerateParams returns settings for a 2048x2048 island-like map.
func DefaultGenerateParams() GenerateParams {
	return GenerateParams{
		Width:     2048,
		Height:    2048,
		Seed:      56,
		Frequency: 0.004,
		Octaves:   4,
		Alpha:     2.0,
		Beta:      2.0,
	}
}

// Generate builds a heightmap from two layers of perlin noise: a detail
// layer scaled by a low-frequency zone layer. The result is normalized so
// the lowest sample is 0 and the highest is 1. The same params always give
// the same heightmap.
func Generate(p GenerateParams) (*Heightmap, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, p.Width, p.Height)
	}

	detail := perlin.NewPerlin(p.Alpha, p.Beta, p.Octaves, p.Seed)
	zones := perlin.NewPerlin(p.Alpha+0.5, p.Beta+1, p.Octaves, p.Seed+1)
	zoneFrequency := p.Frequency * 0.15

	samples := make([]float32, p.Width*p.Height)
	lo, hi := float32(1e30), float32(-1e30)

	for z := 0; z < p.Height; z++ {
		for x := 0; x < p.Width; x++ {
			fx, fz := float64(x), float64(z)

			h := detail.Noise2D(fx*p.Frequency, fz*p.Frequency)
			zone := zones.Noise2D(fx*zoneFrequency, fz*zoneFrequency)*2.0 + 0.6
			if zone > 1 {
				zone = 1
			}
			if zone < 0.1 {
				zone = 0.1
			}

			v := float32(h * zone)
			samples[z*p.Width+x] = v
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}

	span := hi - lo
	for i, v := range samples {
		if span > 0 {
			samples[i] = (v - lo) / span
		} else {
			samples[i] = 0
		}
	}

	return NewHeightmap(p.Width, p.Height, samples)
}
