// Package intent normalizes keyboard, pointer, and multi-touch input into a
// single device-independent snapshot read once per frame by the simulation.
package intent

import "math"

// Key identifies a gameplay key handled by the aggregator. Meta keys
// (pause, quit) are routed to the frame driver's control surface instead.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyFire
)

// Joystick is the virtual joystick state driven by the left touch region.
// Coordinates are in playfield units.
type Joystick struct {
	Active   bool
	CenterX  float64
	CenterY  float64
	CurrentX float64
	CurrentY float64
}

// Displacement returns the joystick offset from its anchor point.
func (j Joystick) Displacement() (dx, dy float64) {
	return j.CurrentX - j.CenterX, j.CurrentY - j.CenterY
}

// Intent is the normalized per-frame input snapshot. AimX/AimY hold the
// last known aim target in playfield coordinates; AimSet is false until
// the first pointer or touch aim event arrives.
type Intent struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
	Fire  bool

	AimX   float64
	AimY   float64
	AimSet bool

	Joystick  Joystick
	TouchFire bool
}

// touchRole classifies a tracked touch by the region it started in.
type touchRole int

const (
	touchNone touchRole = iota
	touchJoystick
	touchAim
)

// joystickRegion is the fraction of the display width (from the left)
// that anchors the virtual joystick. Touches to the right aim and fire.
const joystickRegion = 0.45

// Aggregator maintains the Intent snapshot. All methods must be called from
// the frame goroutine; the aggregator itself holds no locks (the input
// model is cooperative and single-threaded).
type Aggregator struct {
	cur     Intent
	touches map[int]touchRole

	// Fire sources are tracked separately so re-asserting the keyboard
	// state each frame cannot clear a still-held pointer button. The
	// snapshot's Fire is the OR of the two.
	keyFire     bool
	pointerFire bool

	// Viewport-to-playfield transform. World coordinates are
	// (display - offset) * scale per axis.
	worldW, worldH   float64
	displayW         float64
	scaleX, scaleY   float64
	offsetX, offsetY float64
}

// NewAggregator creates an aggregator for a playfield of the given size.
// The viewport transform defaults to identity until SetViewport is called.
func NewAggregator(worldW, worldH float64) *Aggregator {
	return &Aggregator{
		touches:  make(map[int]touchRole),
		worldW:   worldW,
		worldH:   worldH,
		displayW: worldW,
		scaleX:   1,
		scaleY:   1,
	}
}

// SetViewport configures the transform from display coordinates to
// playfield coordinates. displayW/displayH are the displayed size of the
// render target; offsetX/offsetY are display-space margins before it.
func (a *Aggregator) SetViewport(displayW, displayH, offsetX, offsetY float64) {
	if displayW <= 0 || displayH <= 0 {
		return
	}
	a.displayW = displayW
	a.scaleX = a.worldW / displayW
	a.scaleY = a.worldH / displayH
	a.offsetX = offsetX
	a.offsetY = offsetY
}

// toWorld converts display coordinates to playfield coordinates.
func (a *Aggregator) toWorld(dx, dy float64) (x, y float64) {
	return (dx - a.offsetX) * a.scaleX, (dy - a.offsetY) * a.scaleY
}

// KeyDown records a gameplay key press. Unrecognized keys are ignored.
func (a *Aggregator) KeyDown(k Key) {
	a.setKey(k, true)
}

// KeyUp records a gameplay key release.
func (a *Aggregator) KeyUp(k Key) {
	a.setKey(k, false)
}

func (a *Aggregator) setKey(k Key, held bool) {
	switch k {
	case KeyUp:
		a.cur.Up = held
	case KeyDown:
		a.cur.Down = held
	case KeyLeft:
		a.cur.Left = held
	case KeyRight:
		a.cur.Right = held
	case KeyFire:
		a.keyFire = held
		a.cur.Fire = a.keyFire || a.pointerFire
	}
}

// PointerMove updates the aim target from pointer motion in display coordinates.
func (a *Aggregator) PointerMove(dx, dy float64) {
	a.cur.AimX, a.cur.AimY = a.toWorld(dx, dy)
	a.cur.AimSet = true
}

// PointerButton sets or clears the pointer fire source from a button
// transition. Fire stays set while either the button or the fire key is
// held.
func (a *Aggregator) PointerButton(pressed bool) {
	a.pointerFire = pressed
	a.cur.Fire = a.keyFire || a.pointerFire
}

// TouchStart classifies a new touch by its horizontal start position:
// the left region anchors the virtual joystick, the rest aims and fires.
// A second touch in an already occupied region is ignored. Touches are
// tracked by identifier so regions release independently.
func (a *Aggregator) TouchStart(id int, dx, dy float64) {
	if _, ok := a.touches[id]; ok {
		return
	}

	x, y := a.toWorld(dx, dy)
	if dx-a.offsetX < a.displayW*joystickRegion {
		if a.cur.Joystick.Active {
			a.touches[id] = touchNone
			return
		}
		a.touches[id] = touchJoystick
		a.cur.Joystick = Joystick{
			Active:   true,
			CenterX:  x,
			CenterY:  y,
			CurrentX: x,
			CurrentY: y,
		}
		return
	}

	if a.cur.TouchFire {
		a.touches[id] = touchNone
		return
	}
	a.touches[id] = touchAim
	a.cur.TouchFire = true
	a.cur.AimX, a.cur.AimY = x, y
	a.cur.AimSet = true
}

// TouchMove updates the joystick vector or the aim target depending on the
// touch's role. Moves for untracked identifiers are ignored.
func (a *Aggregator) TouchMove(id int, dx, dy float64) {
	role, ok := a.touches[id]
	if !ok {
		return
	}

	x, y := a.toWorld(dx, dy)
	switch role {
	case touchJoystick:
		a.cur.Joystick.CurrentX = x
		a.cur.Joystick.CurrentY = y
	case touchAim:
		a.cur.AimX, a.cur.AimY = x, y
		a.cur.AimSet = true
	}
}

// TouchEnd releases a touch. Releasing one region never affects the other.
func (a *Aggregator) TouchEnd(id int) {
	role, ok := a.touches[id]
	if !ok {
		return
	}
	delete(a.touches, id)

	switch role {
	case touchJoystick:
		a.cur.Joystick = Joystick{}
	case touchAim:
		a.cur.TouchFire = false
	}
}

// Snapshot returns the current intent value.
func (a *Aggregator) Snapshot() Intent {
	return a.cur
}

// Reset clears all held keys, touches, and the fire state. Called on
// screen transitions so stale input does not leak into a new run.
func (a *Aggregator) Reset() {
	aim := a.cur
	a.cur = Intent{AimX: aim.AimX, AimY: aim.AimY, AimSet: aim.AimSet}
	a.keyFire = false
	a.pointerFire = false
	clear(a.touches)
}

// DeadZone is the joystick displacement magnitude below which the
// simulation ignores the joystick vector.
const DeadZone = 6.0

// JoystickPush returns the unit push vector for the joystick, or zeros
// when the joystick is inactive or within the dead zone.
func (in Intent) JoystickPush() (nx, ny float64) {
	if !in.Joystick.Active {
		return 0, 0
	}
	dx, dy := in.Joystick.Displacement()
	mag := math.Sqrt(dx*dx + dy*dy)
	if mag <= DeadZone {
		return 0, 0
	}
	return dx / mag, dy / mag
}
