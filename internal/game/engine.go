package game

import (
	"math/rand"
	"sort"
	"time"

	"github.com/ondrk/swarmfire/internal/intent"
	"github.com/ondrk/swarmfire/internal/physics"
)

// Sound identifies a sound effect requested by the simulation. The engine
// only emits these as values; playback is the frame driver's concern.
type Sound int

const (
	SoundShot Sound = iota
	SoundExplosion
	SoundHurt
)

// bulletGridCellSize is the cell size for the bullet broad-phase grid.
// Must be >= the largest bullet-enemy collision distance
// (bullet 4.0 + big enemy 26.0 = 30.0).
const bulletGridCellSize = 32.0

// Engine is the sole mutator of a World. The random source and clock are
// injected so N update steps replay identically given the same seed,
// intent sequence, and clock readings.
type Engine struct {
	rng *rand.Rand
	now func() time.Time

	events []Sound

	// Reusable broad-phase state for the bullet-enemy pass
	grid      *physics.SpatialGrid
	gridW     float64
	gridH     float64
	candidate []int
}

// NewEngine creates an engine with the given random source and clock.
// A nil clock defaults to time.Now.
func NewEngine(rng *rand.Rand, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{rng: rng, now: now}
}

// StartGame constructs a fresh running world, discarding any previous run.
func (e *Engine) StartGame(width, height float64) *World {
	w := NewWorld(width, height)
	w.Running = true
	e.events = e.events[:0]
	return w
}

// PauseToggle flips the pause flag. A no-op outside an active run.
func PauseToggle(w *World) {
	if w.Running && !w.GameOver {
		w.Paused = !w.Paused
	}
}

// EndGame forces the terminal game-over state.
func EndGame(w *World) {
	w.GameOver = true
	w.Running = false
}

// DrainSounds returns the sound effects requested since the last drain.
// The returned slice is only valid until the next Update call.
func (e *Engine) DrainSounds() []Sound {
	out := e.events
	e.events = e.events[:0]
	return out
}

func (e *Engine) emit(s Sound) {
	e.events = append(e.events, s)
}

// Update advances the world by one logical tick. The step order is fixed:
// movement, firing, bullet integration, enemy AI, bullet-enemy collisions,
// enemy-player collisions, particles, spawn/wave progression. A no-op
// unless the world is running, unpaused, and not over; once the player
// dies the remaining steps of that frame are skipped and every later call
// returns immediately.
func (e *Engine) Update(w *World, in intent.Intent) {
	if !w.Running || w.Paused || w.GameOver {
		return
	}

	e.movePlayer(w, in)
	e.fire(w, in)
	e.integrateBullets(w)
	e.steerEnemies(w)
	e.collideBulletsEnemies(w)
	if e.collideEnemiesPlayer(w) {
		return // Terminal: no particle or spawn logic on the death frame
	}
	e.integrateParticles(w)
	e.advanceSpawns(w)
}

// movePlayer applies the discrete axis intent and the joystick push, then
// clamps to the playfield. Axes are intentionally not speed-normalized:
// diagonal movement is faster than axis-aligned, a gameplay feel choice.
func (e *Engine) movePlayer(w *World, in intent.Intent) {
	p := &w.Player

	if in.Up {
		p.Y -= p.Speed
	}
	if in.Down {
		p.Y += p.Speed
	}
	if in.Left {
		p.X -= p.Speed
	}
	if in.Right {
		p.X += p.Speed
	}

	if nx, ny := in.JoystickPush(); nx != 0 || ny != 0 {
		p.X += nx * p.Speed
		p.Y += ny * p.Speed
	}

	p.X = physics.Clamp(p.X, p.R, w.Width-p.R)
	p.Y = physics.Clamp(p.Y, p.R, w.Height-p.R)
}

// fire spawns one bullet toward the aim target when the fire intent is set
// and the shot interval has elapsed. An unset aim defaults to the
// playfield center.
func (e *Engine) fire(w *World, in intent.Intent) {
	if !in.Fire && !in.TouchFire {
		return
	}

	now := e.now()
	if now.Sub(w.LastShot) < w.ShotInterval {
		return
	}

	aimX, aimY := in.AimX, in.AimY
	if !in.AimSet {
		aimX, aimY = w.Width/2, w.Height/2
	}

	p := &w.Player
	nx, ny, mag := physics.Normalize(aimX-p.X, aimY-p.Y)
	if mag == 0 {
		nx, ny = 0, -1 // Aim dead on the player: shoot straight up
	}

	w.Bullets = append(w.Bullets, Bullet{
		X:    p.X + nx*p.R,
		Y:    p.Y + ny*p.R,
		VX:   nx * BulletSpeed,
		VY:   ny * BulletSpeed,
		R:    BulletRadius,
		Life: BulletLife,
	})
	w.LastShot = now
	e.emit(SoundShot)
}

// integrateBullets advances bullets and removes expired or escaped ones.
func (e *Engine) integrateBullets(w *World) {
	for i := len(w.Bullets) - 1; i >= 0; i-- {
		b := &w.Bullets[i]
		b.X += b.VX
		b.Y += b.VY
		b.Life--

		if b.Life <= 0 ||
			b.X < -BulletCullMargin || b.X > w.Width+BulletCullMargin ||
			b.Y < -BulletCullMargin || b.Y > w.Height+BulletCullMargin {
			w.Bullets = append(w.Bullets[:i], w.Bullets[i+1:]...)
		}
	}
}

// steerEnemies retargets and advances every enemy using predictive
// intercept: the player's recent displacement is extrapolated and the
// enemy heads for the projected position. The previous player position is
// cached once, after all enemies have moved.
func (e *Engine) steerEnemies(w *World) {
	p := &w.Player
	dispX := p.X - w.PrevPlayerX
	dispY := p.Y - w.PrevPlayerY

	for i := range w.Enemies {
		en := &w.Enemies[i]

		predict := PredictBaseFactor
		if en.Type == EnemyFast {
			predict = PredictFastFactor
		}
		futureX := p.X + dispX*predict*PredictFrames
		futureY := p.Y + dispY*predict*PredictFrames

		if nx, ny, mag := physics.Normalize(futureX-en.X, futureY-en.Y); mag > 0 {
			speed := w.EnemySpeedBase * en.Type.Stats().SpeedMult
			en.VX = nx * speed
			en.VY = ny * speed
		}
		en.X += en.VX
		en.Y += en.VY

		// Occasional sidestep perpendicular to the heading. Flavor only;
		// not tied to any threat detection.
		if e.rng.Float64() < DodgeChance {
			if nx, ny, mag := physics.Normalize(en.VX, en.VY); mag > 0 {
				en.X += -ny * DodgeMagnitude
				en.Y += nx * DodgeMagnitude
			}
		}
	}

	w.PrevPlayerX = p.X
	w.PrevPlayerY = p.Y
}

// collideBulletsEnemies resolves bullet hits. Enemies are scanned in
// reverse index order, and each enemy checks candidate bullets in reverse
// index order, so resolution is deterministic. A lethal hit awards the
// variant score and stops further checks against that enemy; a sub-lethal
// hit awards the smaller hit score and keeps scanning.
func (e *Engine) collideBulletsEnemies(w *World) {
	if len(w.Bullets) == 0 || len(w.Enemies) == 0 {
		return
	}

	e.ensureGrid(w)
	e.grid.Clear()
	for i := range w.Bullets {
		e.grid.Insert(w.Bullets[i].X, w.Bullets[i].Y, i)
	}

	for i := len(w.Enemies) - 1; i >= 0; i-- {
		en := &w.Enemies[i]

		e.candidate = e.candidate[:0]
		e.grid.QueryAround(en.X, en.Y, func(idx int) bool {
			e.candidate = append(e.candidate, idx)
			return false
		})
		sort.Sort(sort.Reverse(sort.IntSlice(e.candidate)))

		for _, j := range e.candidate {
			b := &w.Bullets[j]
			if b.consumed {
				continue
			}
			if !physics.CirclesOverlap(b.X, b.Y, b.R, en.X, en.Y, en.R) {
				continue
			}

			b.consumed = true
			en.HP--
			e.spawnBurst(w, b.X, b.Y, HitParticles, false)

			if en.HP <= 0 {
				en.dead = true
				w.Player.Score += en.Type.Stats().Score
				e.emit(SoundExplosion)
				break
			}
			w.Player.Score += HitScore
		}
	}

	compactBullets(w)
	compactEnemies(w)
}

// collideEnemiesPlayer removes every enemy overlapping the player and
// applies damage. Returns true when the run ended this frame.
func (e *Engine) collideEnemiesPlayer(w *World) (over bool) {
	p := &w.Player
	for i := len(w.Enemies) - 1; i >= 0; i-- {
		en := w.Enemies[i]
		if !physics.CirclesOverlap(en.X, en.Y, en.R, p.X, p.Y, p.R) {
			continue
		}

		w.Enemies = append(w.Enemies[:i], w.Enemies[i+1:]...)
		p.HP--
		e.emit(SoundHurt)
		e.spawnBurst(w, p.X, p.Y, HurtParticles, true)

		if p.HP <= 0 {
			p.HP = 0
			w.GameOver = true
			w.Running = false
			return true
		}
	}
	return false
}

// integrateParticles advances and damps particles, removing expired ones.
func (e *Engine) integrateParticles(w *World) {
	for i := len(w.Particles) - 1; i >= 0; i-- {
		pt := &w.Particles[i]
		pt.X += pt.VX
		pt.Y += pt.VY
		pt.VX *= ParticleDamping
		pt.VY *= ParticleDamping
		pt.Life--
		if pt.Life <= 0 {
			w.Particles = append(w.Particles[:i], w.Particles[i+1:]...)
		}
	}
}

// advanceSpawns runs the spawn timer and the wave ramp. Each batch spawns
// 1+wave/2 enemies at random edges; crossing the wave score threshold
// tightens the spawn interval and raises the base enemy speed.
func (e *Engine) advanceSpawns(w *World) {
	w.SpawnTimer++
	if w.SpawnTimer >= w.SpawnInterval {
		w.SpawnTimer = 0
		count := 1 + w.Wave/2
		for k := 0; k < count; k++ {
			e.spawnEnemy(w)
		}
	}

	if w.Player.Score > w.Wave*WaveScoreStep {
		w.Wave++
		w.SpawnInterval -= SpawnIntervalStep
		if w.SpawnInterval < SpawnIntervalFloor {
			w.SpawnInterval = SpawnIntervalFloor
		}
		w.EnemySpeedBase += EnemySpeedBaseStep
	}
}

// spawnEnemy places a random-variant enemy just outside a random edge.
func (e *Engine) spawnEnemy(w *World) {
	var x, y float64
	switch e.rng.Intn(4) {
	case 0: // Top
		x = e.rng.Float64() * w.Width
		y = -SpawnEdgeOffset
	case 1: // Bottom
		x = e.rng.Float64() * w.Width
		y = w.Height + SpawnEdgeOffset
	case 2: // Left
		x = -SpawnEdgeOffset
		y = e.rng.Float64() * w.Height
	case 3: // Right
		x = w.Width + SpawnEdgeOffset
		y = e.rng.Float64() * w.Height
	}

	typ := EnemyType(e.rng.Intn(int(enemyTypeCount)))
	st := typ.Stats()
	w.Enemies = append(w.Enemies, Enemy{
		X:    x,
		Y:    y,
		R:    st.Radius,
		HP:   st.HP,
		Type: typ,
	})
}

func (e *Engine) spawnBurst(w *World, x, y float64, count int, playerHit bool) {
	for k := 0; k < count; k++ {
		w.Particles = append(w.Particles, NewParticle(e.rng, x, y, playerHit))
	}
}

// ensureGrid (re)builds the broad-phase grid when the playfield changes.
func (e *Engine) ensureGrid(w *World) {
	if e.grid == nil || e.gridW != w.Width || e.gridH != w.Height {
		e.grid = physics.NewSpatialGrid(w.Width, w.Height, bulletGridCellSize)
		e.gridW = w.Width
		e.gridH = w.Height
	}
}

func compactBullets(w *World) {
	kept := w.Bullets[:0]
	for _, b := range w.Bullets {
		if !b.consumed {
			kept = append(kept, b)
		}
	}
	w.Bullets = kept
}

func compactEnemies(w *World) {
	kept := w.Enemies[:0]
	for _, en := range w.Enemies {
		if !en.dead {
			kept = append(kept, en)
		}
	}
	w.Enemies = kept
}
