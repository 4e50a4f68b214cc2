package loop

import (
	"fmt"

	"github.com/ondrk/swarmfire/internal/input"
	"github.com/ondrk/swarmfire/internal/render"
)

// maxNameLength caps the leaderboard display name.
const maxNameLength = 16

// topScoresShown is how many leaderboard rows the game-over screen lists.
const topScoresShown = 10

// tickTitle handles name entry and game start. Escape quits; 'q' is a
// valid name character here, so it does not.
func (d *Driver) tickTitle(fr input.Frame) {
	if fr.Escape {
		d.running = false
		return
	}

	// Edit the name before acting on Enter: a fast typist's final
	// characters can arrive in the same poll as the Enter key.
	if fr.Backspace && len(d.name) > 0 {
		d.name = d.name[:len(d.name)-1]
	}
	for _, c := range fr.Chars {
		if c == ' ' && len(d.name) == 0 {
			continue
		}
		if len(d.name) < maxNameLength {
			d.name = append(d.name, c)
		}
	}

	if fr.Enter {
		d.StartGame()
	}
}

// tickGameOver submits the final score once, keeps the death particles
// animating, and waits for restart or quit.
func (d *Driver) tickGameOver(fr input.Frame) {
	if !d.submitted {
		d.scores.Submit(d.displayName(), d.world.Player.Score)
		d.submitted = true
	}

	if fr.Quit || fr.Escape {
		d.running = false
		return
	}
	if fr.Enter || fr.Fire {
		d.StartGame()
	}
}

func (d *Driver) displayName() string {
	if len(d.name) == 0 {
		return "anonymous"
	}
	return string(d.name)
}

// drawFrame renders the current screen. On screen or pause transitions the
// terminal is fully cleared so stale UI from the previous state does not
// persist.
func (d *Driver) drawFrame() {
	paused := d.world.Paused
	if d.screen != d.prevScreen || paused != d.prevPaused {
		d.cw.WriteString("\033[H\033[2J")
		d.canvas.ForceRedraw()
		d.prevScreen = d.screen
		d.prevPaused = paused
	}

	d.canvas.Clear()

	switch d.screen {
	case ScreenTitle:
		d.drawTitleScreen()
	case ScreenPlaying:
		render.Draw(d.world, d.agg.Snapshot(), d.canvas, d.cw)
		d.canvas.Render(d.cw)
		d.canvas.RenderBorder(d.cw)
		if paused {
			d.drawPausedOverlay()
		}
	case ScreenGameOver:
		render.Draw(d.world, d.agg.Snapshot(), d.canvas, d.cw)
		d.canvas.Render(d.cw)
		d.canvas.RenderBorder(d.cw)
		d.drawGameOverOverlay()
	}

	if d.wasInactive && d.screen == ScreenPlaying {
		d.drawInactivityWarning()
	}
}

func (d *Driver) centers() (centerX, centerY int) {
	return d.canvas.TerminalWidth() / 2, d.canvas.TerminalHeight() / 2
}

func (d *Driver) drawTitleScreen() {
	centerX, centerY := d.centers()

	title := "S W A R M F I R E"
	d.cw.WriteAt(centerX-len(title)/2, centerY-4, title)

	prompt := fmt.Sprintf("Name: %s_", d.displayName())
	d.cw.WriteAt(centerX-len(prompt)/2, centerY-1, prompt)

	start := "Press ENTER to start"
	d.cw.WriteAt(centerX-len(start)/2, centerY+2, start)

	controls := "WASD/Arrows move, mouse aims, SPACE/click fires, P pauses, Q quits"
	d.cw.WriteAt(centerX-len(controls)/2, centerY+5, controls)
}

func (d *Driver) drawPausedOverlay() {
	centerX, centerY := d.centers()

	msg := "P A U S E D"
	d.cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press P to resume"
	d.cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}

func (d *Driver) drawGameOverOverlay() {
	centerX, centerY := d.centers()
	top := d.scores.Top(topScoresShown)

	startRow := centerY - len(top)/2 - 4

	msg := "G A M E   O V E R"
	d.cw.WriteAt(centerX-len(msg)/2, startRow, msg)

	score := fmt.Sprintf("%s scored %d on wave %d", d.displayName(), d.world.Player.Score, d.world.Wave)
	d.cw.WriteAt(centerX-len(score)/2, startRow+2, score)

	for i, entry := range top {
		line := fmt.Sprintf("%2d. %-16s %6d", i+1, entry.Name, entry.Score)
		d.cw.WriteAt(centerX-len(line)/2, startRow+4+i, line)
	}

	hint := "ENTER to play again, Q to quit"
	d.cw.WriteAt(centerX-len(hint)/2, startRow+5+len(top), hint)
}

func (d *Driver) drawInactivityWarning() {
	centerX, _ := d.centers()
	msg := "Idle - disconnecting soon. Press any key."
	d.cw.WriteAt(centerX-len(msg)/2, 2, msg)
}
