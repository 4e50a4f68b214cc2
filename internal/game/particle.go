package game

import (
	"math"
	"math/rand"
)

// NewParticle creates a burst particle at (x, y) with a random direction.
// Player-hit particles are red and launch faster; impact particles pick
// from the white/pale-yellow palette.
func NewParticle(rng *rand.Rand, x, y float64, playerHit bool) Particle {
	angle := rng.Float64() * 2 * math.Pi

	base := 0.6
	if playerHit {
		base = 1.6
	}
	speed := base + rng.Float64()*4

	color := ParticleWhite
	if playerHit {
		color = ParticleRed
	} else if rng.Float64() < 0.5 {
		color = ParticlePaleYellow
	}

	return Particle{
		X:     x,
		Y:     y,
		VX:    math.Cos(angle) * speed,
		VY:    math.Sin(angle) * speed,
		Life:  20 + rng.Intn(31), // [20, 50] frames
		Size:  1 + rng.Float64()*2,
		Color: color,
	}
}
