// Package input turns the raw terminal byte stream into per-frame key and
// mouse state. A reader goroutine delivers bytes over a channel; the frame
// loop drains and parses them once per tick, so all game-facing state
// changes happen on the frame goroutine.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last
// press. Terminals only report presses (plus autorepeat), so held state is
// synthesized from press timestamps.
const keyHoldDuration = 30 * time.Millisecond

// MouseKind classifies a decoded mouse event.
type MouseKind int

const (
	MouseMove MouseKind = iota
	MousePress
	MouseRelease
)

// MouseEvent is a decoded SGR mouse report. Col and Row are 1-based
// terminal cell coordinates.
type MouseEvent struct {
	Kind MouseKind
	Col  int
	Row  int
}

// Frame is the input state for one frame. Movement and fire are
// hold-synthesized; the remaining keys are edge-triggered (reported once
// per press).
type Frame struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
	Fire  bool

	Pause     bool
	Quit      bool
	Enter     bool
	Escape    bool
	Backspace bool

	Chars []byte // Printable bytes this frame, for text entry
	Mouse []MouseEvent
}

// keyState tracks the last press time of each hold-synthesized key.
type keyState struct {
	up    time.Time
	down  time.Time
	left  time.Time
	right time.Time
	fire  time.Time
}

// Stream delivers input bytes via a channel and assembles per-frame state.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Carry-over for escape sequences split across polls

	chars []byte
	mouse []MouseEvent
}

// StartStream spawns a goroutine that reads from r and sends bytes to the
// stream. The goroutine exits when the reader fails (e.g. on disconnect).
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 256),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Poll drains all available bytes (non-blocking), parses key presses,
// escape sequences, and SGR mouse reports, and returns the frame state.
func (s *Stream) Poll() Frame {
	now := time.Now()

	// Drain all available bytes into the pending buffer
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				break drain
			}
			s.pending = append(s.pending, b)
		default:
			break drain
		}
	}

	var fr Frame
	s.chars = s.chars[:0]
	s.mouse = s.mouse[:0]

	buf := s.pending
	i := 0
	for i < len(buf) {
		b := buf[i]

		if b == '\x1b' {
			consumed, complete := s.parseEscape(buf[i:], now, &fr)
			if !complete {
				break // Partial sequence; keep it for the next poll
			}
			i += consumed
			continue
		}

		s.applyByte(b, now, &fr)
		i++
	}
	// Retain only an incomplete trailing escape sequence. Anything longer
	// than a plausible sequence is noise; drop it.
	s.pending = append(s.pending[:0], buf[i:]...)
	if len(s.pending) > 32 {
		s.pending = s.pending[:0]
	}

	fr.Up = now.Sub(s.state.up) < keyHoldDuration
	fr.Down = now.Sub(s.state.down) < keyHoldDuration
	fr.Left = now.Sub(s.state.left) < keyHoldDuration
	fr.Right = now.Sub(s.state.right) < keyHoldDuration
	fr.Fire = now.Sub(s.state.fire) < keyHoldDuration
	fr.Chars = s.chars
	fr.Mouse = s.mouse

	return fr
}

// Reset clears held-key state so stale input does not leak across screen
// transitions.
func (s *Stream) Reset() {
	s.state = keyState{}
	s.pending = s.pending[:0]
}

// applyByte updates key state from a single non-escape byte.
func (s *Stream) applyByte(b byte, now time.Time, fr *Frame) {
	switch b {
	case 'w', 'W':
		s.state.up = now
	case 's', 'S':
		s.state.down = now
	case 'a', 'A':
		s.state.left = now
	case 'd', 'D':
		s.state.right = now
	case ' ':
		s.state.fire = now
	case 'p', 'P':
		fr.Pause = true
	case 'q', 'Q':
		fr.Quit = true
	case '\n', '\r':
		fr.Enter = true
	case '\b', '\x7f':
		fr.Backspace = true
	}

	if b >= 0x20 && b < 0x7f {
		s.chars = append(s.chars, b)
	}
}

// parseEscape parses one escape sequence at the start of buf. Returns the
// number of bytes consumed and whether the sequence was complete.
func (s *Stream) parseEscape(buf []byte, now time.Time, fr *Frame) (consumed int, complete bool) {
	if len(buf) < 2 {
		return 0, false
	}
	if buf[1] != '[' {
		// Bare ESC (or an unsupported sequence prefix)
		fr.Escape = true
		return 1, true
	}
	if len(buf) < 3 {
		return 0, false
	}

	switch buf[2] {
	case 'A':
		s.state.up = now
		return 3, true
	case 'B':
		s.state.down = now
		return 3, true
	case 'C':
		s.state.right = now
		return 3, true
	case 'D':
		s.state.left = now
		return 3, true
	case '<':
		return s.parseSGRMouse(buf, fr)
	default:
		// Unrecognized CSI; skip to its final byte (0x40-0x7e)
		for j := 2; j < len(buf); j++ {
			if buf[j] >= 0x40 && buf[j] <= 0x7e {
				return j + 1, true
			}
		}
		return 0, false
	}
}

// parseSGRMouse decodes "ESC [ < b ; col ; row (M|m)".
func (s *Stream) parseSGRMouse(buf []byte, fr *Frame) (consumed int, complete bool) {
	var params [3]int
	param := 0
	j := 3
	for ; j < len(buf); j++ {
		c := buf[j]
		switch {
		case c >= '0' && c <= '9':
			params[param] = params[param]*10 + int(c-'0')
		case c == ';':
			param++
			if param > 2 {
				return j + 1, true // Malformed; swallow
			}
		case c == 'M' || c == 'm':
			s.applyMouse(params[0], params[1], params[2], c == 'M', fr)
			return j + 1, true
		default:
			return j + 1, true // Malformed; swallow
		}
	}
	return 0, false
}

func (s *Stream) applyMouse(b, col, row int, press bool, fr *Frame) {
	if col <= 0 || row <= 0 {
		return
	}
	switch {
	case b >= 64:
		// Scroll wheel; ignored
	case b&32 != 0:
		s.mouse = append(s.mouse, MouseEvent{Kind: MouseMove, Col: col, Row: row})
	case press:
		s.mouse = append(s.mouse, MouseEvent{Kind: MousePress, Col: col, Row: row})
	default:
		s.mouse = append(s.mouse, MouseEvent{Kind: MouseRelease, Col: col, Row: row})
	}
}
