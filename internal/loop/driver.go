// Package loop owns the frame driver: the Input → Update → Render cycle,
// frame pacing, screen transitions, and session teardown.
package loop

import (
	"bufio"
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/ondrk/swarmfire/internal/audio"
	"github.com/ondrk/swarmfire/internal/draw"
	"github.com/ondrk/swarmfire/internal/game"
	"github.com/ondrk/swarmfire/internal/input"
	"github.com/ondrk/swarmfire/internal/intent"
	"github.com/ondrk/swarmfire/internal/leaderboard"
)

const targetFPS = 60
const targetFrameTime = time.Second / targetFPS

// Maximum render resolution. Larger terminals get a centered play area
// with a border.
const (
	maxRenderCols = 160
	maxRenderRows = 48
)

// Inactivity limits for remote sessions.
const (
	inactivityWarn       = 90 * time.Second
	inactivityDisconnect = 120 * time.Second
)

// Screen is the driver's presentation phase. Pause is a world flag, not a
// screen: the paused overlay renders on top of the playing screen.
type Screen int

const (
	ScreenTitle Screen = iota
	ScreenPlaying
	ScreenGameOver
)

// Options configures a driver session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc    // Defaults to the local terminal
	Username     string               // Pre-filled name; editable on the title screen
	Muted        bool                 // Disable sound synthesis
	Scores       *leaderboard.Store   // Shared leaderboard; nil creates a private one
	Seed         int64                // Simulation seed; 0 derives from the clock
	Audio        *audio.Player        // Override sound output; nil builds one from Muted
}

// Driver ties the input stream, simulation engine, renderer, and audio
// player together for one session. All methods run on the session's frame
// goroutine.
type Driver struct {
	engine *game.Engine
	world  *game.World
	agg    *intent.Aggregator
	stream *input.Stream
	canvas *draw.Canvas
	cw     *draw.ChunkWriter
	sounds *audio.Player
	scores *leaderboard.Store

	screen     Screen
	prevScreen Screen
	prevPaused bool
	name       []byte
	submitted  bool
	running    bool

	lastInput    time.Time
	wasInactive  bool
	termSizeFunc draw.TermSizeFunc
}

// New creates a driver reading input from r and writing frames to w.
func New(r *bufio.Reader, w io.Writer, opts Options) *Driver {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sounds := opts.Audio
	if sounds == nil {
		sounds = audio.NewPlayer(opts.Muted)
	}
	scores := opts.Scores
	if scores == nil {
		scores = leaderboard.NewStore()
	}

	termWidth, termHeight, _ := termSizeFunc()
	renderW, renderH, offCol, offRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderW, renderH, game.WorldWidth, game.WorldHeight)
	canvas.SetOffset(offCol, offRow)

	agg := intent.NewAggregator(game.WorldWidth, game.WorldHeight)
	agg.SetViewport(float64(renderW), float64(renderH), float64(offCol), float64(offRow))

	d := &Driver{
		engine:       game.NewEngine(rand.New(rand.NewSource(seed)), nil),
		world:        game.NewWorld(game.WorldWidth, game.WorldHeight),
		agg:          agg,
		stream:       input.StartStream(r),
		canvas:       canvas,
		cw:           draw.NewChunkWriter(w, offCol, offRow),
		sounds:       sounds,
		scores:       scores,
		name:         []byte(opts.Username),
		running:      true,
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
	}
	return d
}

// Run drives the session loop until the player quits, the context is
// cancelled, or the input stream ends. Teardown restores the terminal and
// releases the audio device.
func (d *Driver) Run(ctx context.Context) error {
	draw.HideCursor(d.cw)
	draw.EnableMouse(d.cw)
	draw.ClearScreen(d.cw)
	defer func() {
		draw.DisableMouse(d.cw)
		draw.ShowCursor(d.cw)
		draw.ClearScreen(d.cw)
		d.cw.Flush()
		d.sounds.Close()
	}()

	for d.running {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		frameStart := time.Now()

		d.Tick(frameStart)
		if err := d.cw.Flush(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < targetFrameTime {
			time.Sleep(targetFrameTime - elapsed)
		}
	}
	return nil
}

// Tick runs exactly one frame: poll input, advance the simulation one
// logical step, draw, and queue sound effects. Exported so tests and
// alternative schedulers can drive frames manually.
func (d *Driver) Tick(now time.Time) {
	d.updateScreenSize()

	fr := d.stream.Poll()
	d.trackActivity(fr, now)

	switch d.screen {
	case ScreenTitle:
		d.tickTitle(fr)
	case ScreenPlaying:
		d.tickPlaying(fr)
	case ScreenGameOver:
		d.tickGameOver(fr)
	}

	d.drawFrame()
}

// StartGame resets to a fresh run. Part of the control surface consumed by
// the screens and exposed for the presentation shell.
func (d *Driver) StartGame() {
	d.world = d.engine.StartGame(game.WorldWidth, game.WorldHeight)
	d.agg.Reset()
	d.stream.Reset()
	d.submitted = false
	d.screen = ScreenPlaying
}

// PauseToggle flips the pause flag of the current run.
func (d *Driver) PauseToggle() {
	game.PauseToggle(d.world)
}

// EndGame forces the current run into its terminal state.
func (d *Driver) EndGame() {
	game.EndGame(d.world)
	if d.world.GameOver {
		d.screen = ScreenGameOver
	}
}

// World exposes the current world for tests and overlays. Callers must
// treat it as read-only.
func (d *Driver) World() *game.World {
	return d.world
}

// Intent exposes the current input snapshot.
func (d *Driver) Intent() intent.Intent {
	return d.agg.Snapshot()
}

// CurrentScreen returns the active presentation phase.
func (d *Driver) CurrentScreen() Screen {
	return d.screen
}

// tickPlaying wires the frame input into the aggregator, advances the
// simulation, and forwards requested sounds.
func (d *Driver) tickPlaying(fr input.Frame) {
	if fr.Quit {
		d.running = false
		return
	}
	if fr.Pause {
		d.PauseToggle()
	}

	d.applyInput(fr)

	d.engine.Update(d.world, d.agg.Snapshot())

	for _, s := range d.engine.DrainSounds() {
		switch s {
		case game.SoundShot:
			d.sounds.PlayShot()
		case game.SoundExplosion:
			d.sounds.PlayExplosion()
		case game.SoundHurt:
			d.sounds.PlayHurt()
		}
	}

	if d.world.GameOver {
		d.screen = ScreenGameOver
	}
}

// applyInput translates the per-frame terminal state into aggregator
// events. Key hooks are idempotent, so held keys are re-asserted each
// frame instead of tracking edges here.
func (d *Driver) applyInput(fr input.Frame) {
	setKey := func(k intent.Key, held bool) {
		if held {
			d.agg.KeyDown(k)
		} else {
			d.agg.KeyUp(k)
		}
	}
	setKey(intent.KeyUp, fr.Up)
	setKey(intent.KeyDown, fr.Down)
	setKey(intent.KeyLeft, fr.Left)
	setKey(intent.KeyRight, fr.Right)
	setKey(intent.KeyFire, fr.Fire)

	for _, m := range fr.Mouse {
		col := float64(m.Col - 1)
		row := float64(m.Row - 1)
		switch m.Kind {
		case input.MouseMove:
			d.agg.PointerMove(col, row)
		case input.MousePress:
			d.agg.PointerMove(col, row)
			d.agg.PointerButton(true)
		case input.MouseRelease:
			d.agg.PointerButton(false)
		}
	}
}

// trackActivity records input activity and disconnects idle remote
// sessions.
func (d *Driver) trackActivity(fr input.Frame, now time.Time) {
	active := fr.Up || fr.Down || fr.Left || fr.Right || fr.Fire ||
		fr.Pause || fr.Quit || fr.Enter || fr.Escape || fr.Backspace ||
		len(fr.Chars) > 0 || len(fr.Mouse) > 0
	if active {
		d.lastInput = now
	}

	idle := now.Sub(d.lastInput)
	d.wasInactive = idle > inactivityWarn
	if idle > inactivityDisconnect {
		d.running = false
	}
}

// updateScreenSize adapts the canvas, writer offsets, and the aggregator's
// viewport transform to the current terminal size.
func (d *Driver) updateScreenSize() {
	termWidth, termHeight, err := d.termSizeFunc()
	if err != nil || termWidth <= 0 || termHeight <= 0 {
		return
	}

	renderW, renderH, offCol, offRow := clampTermSize(termWidth, termHeight)
	if renderW == d.canvas.TerminalWidth() && renderH == d.canvas.TerminalHeight() &&
		offCol == d.canvas.OffsetCol() && offRow == d.canvas.OffsetRow() {
		return
	}

	d.canvas.Resize(renderW, renderH)
	d.canvas.SetOffset(offCol, offRow)
	d.cw.SetOffset(offCol, offRow)
	d.agg.SetViewport(float64(renderW), float64(renderH), float64(offCol), float64(offRow))
	d.cw.WriteString("\033[H\033[2J")
}

// clampTermSize caps the render area at the maximum resolution and centers
// it, returning render dimensions and 0-based offsets.
func clampTermSize(termWidth, termHeight int) (renderW, renderH, offCol, offRow int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}

	renderW = termWidth
	renderH = termHeight
	if renderW > maxRenderCols {
		renderW = maxRenderCols
		offCol = (termWidth - renderW) / 2
	}
	if renderH > maxRenderRows {
		renderH = maxRenderRows
		offRow = (termHeight - renderH) / 2
	}
	return renderW, renderH, offCol, offRow
}
