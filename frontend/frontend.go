// Package frontend presents a running CHIP-8 machine to the user: it
// renders video memory snapshots, forwards keyboard input to the keypad
// and sounds a tone while the sound timer runs.
package frontend

import (
	"strings"
	"time"

	"github.com/nf/c8/device"
	"github.com/nf/c8/emu"
)

// FrameRate is the rate at which front ends poll the machine.
const FrameRate = 60

// Machine is the view of a running machine available to a front end.
type Machine struct {
	Video interface {
		Size() (width, height int)
		Snapshot() device.Frame
	}
	Keys interface {
		KeyDown(key byte)
		KeyUp(key byte)
	}
	Sound interface {
		Get() byte
	}

	Toggle func()          // pause or resume execution
	Quit   func()          // stop the machine
	Done   <-chan struct{} // closed once the machine has stopped
}

// FromEmulator returns the front end view of e.
func FromEmulator(e *emu.Emulator) Machine {
	return Machine{
		Video:  e.Video,
		Keys:   e.Keys,
		Sound:  e.Sound,
		Toggle: e.Runner.Toggle,
		Quit:   e.Quit,
		Done:   e.Fuse.Done(),
	}
}

// The keypad is laid out on the left of a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
const keyLayout = "123c" + "456d" + "789e" + "a0bf"
const keyboard = "1234" + "qwer" + "asdf" + "zxcv"

// KeyForRune returns the keypad key bound to the keyboard key that
// produces r. It reports false for unbound keys.
func KeyForRune(r rune) (byte, bool) {
	i := strings.IndexRune(keyboard, toLower(r))
	if i < 0 {
		return 0, false
	}
	k := keyLayout[i]
	if k <= '9' {
		return k - '0', true
	}
	return k - 'a' + 0xa, true
}

func toLower(r rune) rune {
	if 'A' <= r && r <= 'Z' {
		return r + 'a' - 'A'
	}
	return r
}

// PauseRune is the keyboard key that pauses and resumes execution.
const PauseRune = 'm'

// press handles a key press from the keyboard key that produces r.
func (m Machine) press(r rune) {
	if toLower(r) == PauseRune {
		m.Toggle()
		return
	}
	if k, ok := KeyForRune(r); ok {
		m.Keys.KeyDown(k)
	}
}

// release handles a key release from the keyboard key that produces r.
func (m Machine) release(r rune) {
	if k, ok := KeyForRune(r); ok {
		m.Keys.KeyUp(k)
	}
}

// fillRGBA writes f into pix, an RGBA pixel buffer of the same dimensions,
// with lit pixels white and unlit pixels black.
func fillRGBA(pix []byte, f device.Frame) {
	for i, on := range f.Pix {
		var c byte
		if on {
			c = 0xff
		}
		p := pix[i*4 : i*4+4 : i*4+4]
		p[0], p[1], p[2], p[3] = c, c, c, 0xff
	}
}

// Wait blocks until the machine stops, for running without a display.
func Wait(m Machine) error {
	<-m.Done
	return nil
}

func newFrameTicker() *time.Ticker { return time.NewTicker(time.Second / FrameRate) }
