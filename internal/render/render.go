// Package render draws the world state and HUD to the canvas. Rendering is
// a pure function of state: nothing here mutates the world.
package render

import (
	"fmt"
	"math"

	"github.com/ondrk/swarmfire/internal/draw"
	"github.com/ondrk/swarmfire/internal/game"
	"github.com/ondrk/swarmfire/internal/intent"
)

// fadeThreshold is the particle life below which particles blink out
// instead of rendering solid, approximating an alpha fade.
const fadeThreshold = 12

// Draw renders one frame of the world onto the canvas and appends the HUD
// overlay to the chunk writer. The canvas should be cleared by the caller
// before drawing.
func Draw(w *game.World, in intent.Intent, c *draw.Canvas, cw *draw.ChunkWriter) {
	drawEnemies(w, c)
	drawBullets(w, c)
	drawPlayer(w, in, c)
	drawParticles(w, c)
	if in.Joystick.Active {
		drawJoystick(in.Joystick, c)
	}
	drawHUD(w, c, cw)
}

func drawEnemies(w *game.World, c *draw.Canvas) {
	for i := range w.Enemies {
		en := &w.Enemies[i]
		switch en.Type {
		case game.EnemyBig:
			// Hollow ring; the inner ring shrinks as it takes damage
			c.DrawCircle(en.X, en.Y, en.R)
			c.DrawCircle(en.X, en.Y, en.R*float64(en.HP)/float64(en.Type.Stats().HP)*0.6)
		case game.EnemyFast:
			c.DrawCircle(en.X, en.Y, en.R)
		default:
			c.FillCircle(en.X, en.Y, en.R*0.8)
		}
	}
}

func drawBullets(w *game.World, c *draw.Canvas) {
	for i := range w.Bullets {
		b := &w.Bullets[i]
		c.FillCircle(b.X, b.Y, b.R)
	}
}

func drawPlayer(w *game.World, in intent.Intent, c *draw.Canvas) {
	p := &w.Player
	c.FillCircle(p.X, p.Y, p.R*0.75)
	c.DrawCircle(p.X, p.Y, p.R)

	// Turret toward the current aim point (playfield center until aimed)
	aimX, aimY := in.AimX, in.AimY
	if !in.AimSet {
		aimX, aimY = w.Width/2, w.Height/2
	}
	dx := aimX - p.X
	dy := aimY - p.Y
	if dx == 0 && dy == 0 {
		dy = -1
	}
	if mag := math.Sqrt(dx*dx + dy*dy); mag > 0 {
		dx /= mag
		dy /= mag
	}
	c.DrawLine(
		draw.Point{X: p.X + dx*p.R*0.5, Y: p.Y + dy*p.R*0.5},
		draw.Point{X: p.X + dx*p.R*1.8, Y: p.Y + dy*p.R*1.8},
	)
}

func drawParticles(w *game.World, c *draw.Canvas) {
	for i := range w.Particles {
		pt := &w.Particles[i]
		// Blink during the final frames to approximate an alpha fade
		if pt.Life < fadeThreshold && pt.Life%2 == 1 {
			continue
		}
		c.SetFloat(pt.X, pt.Y)
		if pt.Size > 2 {
			c.SetFloat(pt.X+1, pt.Y)
		}
	}
}

func drawJoystick(j intent.Joystick, c *draw.Canvas) {
	c.DrawCircle(j.CenterX, j.CenterY, 40)
	c.FillCircle(j.CurrentX, j.CurrentY, 10)
}

func drawHUD(w *game.World, c *draw.Canvas, cw *draw.ChunkWriter) {
	termWidth := c.TerminalWidth()
	termHeight := c.TerminalHeight()

	score := fmt.Sprintf("Score: %d", w.Player.Score)
	cw.WriteAt(2, 1, score)

	wave := fmt.Sprintf("Wave: %d", w.Wave)
	cw.WriteAt(termWidth/2-len(wave)/2, 1, wave)

	hp := fmt.Sprintf("HP: %d", w.Player.HP)
	cw.WriteAt(termWidth-len(hp)-1, 1, hp)

	counts := fmt.Sprintf("E:%d B:%d P:%d", len(w.Enemies), len(w.Bullets), len(w.Particles))
	cw.WriteAt(2, termHeight, counts)
}
