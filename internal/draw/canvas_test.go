package draw

import (
	"strings"
	"testing"
)

func TestSetFloatScalesLogicalCoordinates(t *testing.T) {
	// 100 cols x 20 rows over a 1200x680 playfield: 40 sub-pixel rows
	c := NewScaledCanvas(100, 20, 1200, 680)

	c.SetFloat(0, 0)
	c.SetFloat(600, 340)

	if !c.Pixel(0, 0) {
		t.Error("logical origin not set")
	}
	if !c.Pixel(600, 340) {
		t.Error("logical center not set")
	}
	if c.Pixel(300, 170) {
		t.Error("unset pixel reads as set")
	}
}

func TestClearResetsPixels(t *testing.T) {
	c := NewScaledCanvas(100, 20, 1200, 680)
	c.SetFloat(600, 340)
	c.Clear()
	if c.Pixel(600, 340) {
		t.Error("pixel survived clear")
	}
}

func TestRenderEmitsHalfBlocks(t *testing.T) {
	// Identity-ish canvas: logical == sub-pixel space
	c := NewScaledCanvas(4, 2, 4, 4)

	c.SetFloat(0, 0) // Top half of the first cell
	c.SetFloat(1, 0)
	c.SetFloat(1, 1) // Both halves of the second cell

	var out strings.Builder
	c.Render(&out)
	s := out.String()

	if !strings.Contains(s, string(BlockUpperHalf)) {
		t.Error("upper half block missing")
	}
	if !strings.Contains(s, string(BlockFull)) {
		t.Error("full block missing")
	}
	if !strings.Contains(s, "\033[1;1H") {
		t.Error("cursor addressing missing")
	}
}

func TestRenderIsDifferential(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)

	c.SetFloat(3, 3)
	var first strings.Builder
	c.Render(&first)
	if first.Len() == 0 {
		t.Fatal("first render emitted nothing")
	}

	// Same content again: nothing changed, nothing emitted
	c.Clear()
	c.SetFloat(3, 3)
	var second strings.Builder
	c.Render(&second)
	if second.Len() != 0 {
		t.Errorf("unchanged frame emitted %d bytes", second.Len())
	}

	// Clearing the pixel must emit a space to erase it
	c.Clear()
	var third strings.Builder
	c.Render(&third)
	if !strings.Contains(third.String(), " ") {
		t.Error("cleared pixel not erased on screen")
	}
}

func TestForceRedrawEmitsEveryCell(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	var first strings.Builder
	c.Render(&first) // Initial full render of an empty canvas

	var quiet strings.Builder
	c.Render(&quiet)
	if quiet.Len() != 0 {
		t.Fatal("steady state still emitting")
	}

	c.ForceRedraw()
	var forced strings.Builder
	c.Render(&forced)
	if forced.Len() != first.Len() {
		t.Errorf("forced render emitted %d bytes, want full %d", forced.Len(), first.Len())
	}
}

func TestResizeForcesFullRedraw(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	var b strings.Builder
	c.Render(&b)

	c.Resize(20, 10)
	if c.TerminalWidth() != 20 || c.TerminalHeight() != 10 {
		t.Fatalf("size (%d, %d) after resize", c.TerminalWidth(), c.TerminalHeight())
	}

	var after strings.Builder
	c.Render(&after)
	if after.Len() == 0 {
		t.Error("no full redraw after resize")
	}

	// Same dimensions: a no-op that must not force anything
	c.Resize(20, 10)
	var again strings.Builder
	c.Render(&again)
	if again.Len() != 0 {
		t.Error("no-op resize forced a redraw")
	}
}

func TestDrawLineConnects(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.DrawLine(Point{X: 0, Y: 0}, Point{X: 9, Y: 0})

	for x := 0.0; x <= 9; x++ {
		if !c.Pixel(x, 0) {
			t.Errorf("horizontal line missing pixel at x=%.0f", x)
		}
	}
}

func TestFillCircleCoversCenterAndRespectsRadius(t *testing.T) {
	c := NewScaledCanvas(60, 30, 60, 60)
	c.FillCircle(30, 30, 10)

	if !c.Pixel(30, 30) {
		t.Error("circle center not filled")
	}
	if !c.Pixel(30, 21) || !c.Pixel(30, 39) {
		t.Error("vertical extent not filled")
	}
	if c.Pixel(30, 5) || c.Pixel(5, 30) {
		t.Error("fill leaked outside the radius")
	}
}

func TestDrawCircleOutlineOnly(t *testing.T) {
	c := NewScaledCanvas(60, 30, 60, 60)
	c.DrawCircle(30, 30, 10)

	if c.Pixel(30, 30) {
		t.Error("outline filled the center")
	}
	if !c.Pixel(40, 30) || !c.Pixel(20, 30) {
		t.Error("outline missing on the horizontal axis")
	}
}

func TestTerminalToLogicalInvertsOffsets(t *testing.T) {
	c := NewScaledCanvas(100, 20, 1200, 680)
	c.SetOffset(5, 2)

	x, y := c.TerminalToLogical(6, 3) // Top-left canvas cell
	if x != 0 || y != 0 {
		t.Errorf("canvas origin mapped to (%.1f, %.1f), want (0, 0)", x, y)
	}

	x, _ = c.TerminalToLogical(56, 3) // 50 columns in: half the width
	if x != 600 {
		t.Errorf("mid column mapped to x=%.1f, want 600", x)
	}
}

func TestChunkWriterAppliesOffsets(t *testing.T) {
	var out strings.Builder
	cw := NewChunkWriter(&out, 5, 2)

	cw.WriteAt(1, 1, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\033[3;6Hhi" {
		t.Errorf("output %q, want offset cursor move before text", got)
	}

	out.Reset()
	cw.SetOffset(0, 0)
	cw.WriteAt(10, 4, "x")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\033[4;10Hx" {
		t.Errorf("output %q after offset reset", got)
	}
}

func TestChunkWriterFlushResets(t *testing.T) {
	var out strings.Builder
	cw := NewChunkWriter(&out, 0, 0)

	cw.WriteString("abc")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "abc" {
		t.Errorf("second flush re-emitted: %q", out.String())
	}
}

func TestRenderBorderOnlyWithMargin(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)

	var none strings.Builder
	c.RenderBorder(&none)
	if none.Len() != 0 {
		t.Error("border drawn without any margin")
	}

	c.SetOffset(2, 1)
	var b strings.Builder
	c.RenderBorder(&b)
	s := b.String()
	if !strings.Contains(s, "┌") || !strings.Contains(s, "┘") || !strings.Contains(s, "│") {
		t.Errorf("border output %q missing box characters", s)
	}
}
