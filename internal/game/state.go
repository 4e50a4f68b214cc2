// Package game implements the world state and the fixed-order per-frame
// simulation step: movement, shooting, enemy AI, collisions, particles,
// and wave progression.
package game

import "time"

// EnemyType is the closed set of enemy variants.
type EnemyType int

const (
	EnemyNormal EnemyType = iota
	EnemyFast
	EnemyBig

	enemyTypeCount
)

// EnemyStats holds the fixed per-variant tuning.
type EnemyStats struct {
	Radius    float64
	HP        int
	SpeedMult float64
	Score     int
	Glyph     rune // Display character for HUD/debug output
}

// enemyStats is the variant lookup table. Behavior differences between
// variants are driven entirely by this table plus the predict factor.
var enemyStats = [enemyTypeCount]EnemyStats{
	EnemyNormal: {Radius: 16, HP: 1, SpeedMult: 1.0, Score: 20, Glyph: 'o'},
	EnemyFast:   {Radius: 11, HP: 1, SpeedMult: 1.8, Score: 12, Glyph: '^'},
	EnemyBig:    {Radius: 26, HP: 3, SpeedMult: 0.65, Score: 40, Glyph: 'O'},
}

// Stats returns the fixed tuning for the variant.
func (t EnemyType) Stats() EnemyStats {
	if t < 0 || t >= enemyTypeCount {
		return enemyStats[EnemyNormal]
	}
	return enemyStats[t]
}

// String returns the variant name.
func (t EnemyType) String() string {
	switch t {
	case EnemyNormal:
		return "normal"
	case EnemyFast:
		return "fast"
	case EnemyBig:
		return "big"
	default:
		return "unknown"
	}
}

// Player is the player avatar.
type Player struct {
	X, Y  float64
	R     float64
	Speed float64
	HP    int
	Score int
}

// Bullet is a player projectile. Life counts remaining frames; a bullet is
// removed when life reaches zero or it leaves the playfield by more than
// the cull margin.
type Bullet struct {
	X, Y   float64
	VX, VY float64
	R      float64
	Life   int

	consumed bool // Hit an enemy this frame; compacted at end of the collision pass
}

// Enemy is an AI-controlled attacker.
type Enemy struct {
	X, Y   float64
	VX, VY float64
	R      float64
	HP     int
	Type   EnemyType

	dead bool // Killed this frame; compacted at end of the collision pass
}

// ParticleColor selects the particle palette entry for the renderer.
type ParticleColor int

const (
	ParticleWhite ParticleColor = iota
	ParticlePaleYellow
	ParticleRed
)

// Particle is a purely cosmetic effect fragment. It never affects gameplay.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   int
	Size   float64
	Color  ParticleColor
}

// World is the single mutable aggregate describing one run. It is owned
// exclusively by the Engine between frames and read-only for the renderer
// within a frame.
type World struct {
	Width  float64
	Height float64

	Player    Player
	Bullets   []Bullet
	Enemies   []Enemy
	Particles []Particle

	Wave           int
	SpawnTimer     int
	SpawnInterval  int
	EnemySpeedBase float64

	// Lifecycle flags. GameOver implies !Running; the pair is only ever
	// written together inside the Engine.
	Running  bool
	Paused   bool
	GameOver bool

	LastShot     time.Time
	ShotInterval time.Duration

	// Player position at the end of the previous enemy-AI pass, used for
	// predictive intercept extrapolation.
	PrevPlayerX float64
	PrevPlayerY float64
}

// NewWorld returns a fresh idle world (Running=false) with the player
// centered on a playfield of the given size.
func NewWorld(width, height float64) *World {
	return &World{
		Width:  width,
		Height: height,
		Player: Player{
			X:     width / 2,
			Y:     height / 2,
			R:     PlayerRadius,
			Speed: PlayerSpeed,
			HP:    PlayerHP,
		},
		Wave:           1,
		SpawnInterval:  SpawnIntervalStart,
		EnemySpeedBase: EnemySpeedBaseStart,
		ShotInterval:   ShotInterval,
		PrevPlayerX:    width / 2,
		PrevPlayerY:    height / 2,
	}
}
