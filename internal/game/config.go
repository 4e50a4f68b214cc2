package game

import "time"

// Game tuning constants.
// All tunable gameplay parameters are centralized here for easy adjustment.

// Playfield
const (
	WorldWidth  = 1200.0 // Logical playfield width
	WorldHeight = 680.0  // Logical playfield height
)

// Player
const (
	PlayerRadius = 14.0
	PlayerSpeed  = 5.0 // Units per frame, per axis
	PlayerHP     = 5
)

// Shooting
const (
	ShotInterval     = 120 * time.Millisecond // Minimum time between shots
	BulletSpeed      = 14.0                   // Units per frame
	BulletRadius     = 4.0
	BulletLife       = 80   // Frames before a bullet expires
	BulletCullMargin = 50.0 // Out-of-bounds margin before removal
)

// Enemy AI
const (
	PredictFastFactor = 0.7  // Lead factor for the fast variant
	PredictBaseFactor = 0.35 // Lead factor for everything else
	PredictFrames     = 6.0  // Displacement extrapolation multiplier
	DodgeChance       = 0.006
	DodgeMagnitude    = 6.0
)

// Scoring
const (
	HitScore      = 8 // Awarded per sub-lethal bullet hit
	WaveScoreStep = 200
)

// Particles
const (
	HitParticles    = 6
	HurtParticles   = 12
	ParticleDamping = 0.98 // Velocity decay per axis per frame
)

// Spawning and wave progression
const (
	SpawnIntervalStart  = 90 // Frames between spawn batches at wave 1
	SpawnIntervalFloor  = 40
	SpawnIntervalStep   = 8 // Decrease per wave
	SpawnEdgeOffset     = 40.0
	EnemySpeedBaseStart = 1.6
	EnemySpeedBaseStep  = 0.12
)
