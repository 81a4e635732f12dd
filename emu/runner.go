// Package emu assembles a CHIP-8 machine from its interpreter and devices
// and drives it at a configured clock rate.
package emu

import (
	"log"
	"time"

	"github.com/nf/c8/chip8"
	"github.com/nf/c8/device"
)

// Runner drives a Machine, executing one cycle per clock tick.
// Ticks that arrive while a cycle is in progress are dropped.
//
// After each tick the Runner serves at most one pending control request,
// so controls take effect on tick boundaries.
type Runner struct {
	m    *chip8.Machine
	fuse *device.Fuse
	tick <-chan time.Time
	stop func()

	ctl  chan control
	done chan struct{}

	// Owned by Run.
	running   bool
	brk       int  // breakpoint address, or -1
	skipBreak bool // execute the next cycle even at the breakpoint
}

type controlKind int

const (
	pauseControl controlKind = iota
	resumeControl
	toggleControl
	stepControl
	loadControl
	breakControl
	stateControl
)

type control struct {
	kind  controlKind
	rom   []byte      // loadControl
	addr  int         // breakControl
	state chan Status // stateControl
}

// Status is a snapshot of a Runner and its Machine.
type Status struct {
	chip8.State
	Running bool
	Break   int // breakpoint address, or -1
}

// NewRunner returns a Runner that executes m every interval until fuse
// blows. If paused is true the Runner starts paused.
func NewRunner(m *chip8.Machine, fuse *device.Fuse, interval time.Duration, paused bool) *Runner {
	t := time.NewTicker(interval)
	return newRunner(m, fuse, t.C, t.Stop, paused)
}

func newRunner(m *chip8.Machine, fuse *device.Fuse, tick <-chan time.Time, stop func(), paused bool) *Runner {
	return &Runner{
		m:       m,
		fuse:    fuse,
		tick:    tick,
		stop:    stop,
		ctl:     make(chan control, 16),
		done:    make(chan struct{}),
		running: !paused,
		brk:     -1,
	}
}

// Run executes the machine until the fuse blows.
func (r *Runner) Run() {
	defer close(r.done)
	defer r.stop()
	for {
		select {
		case <-r.fuse.Done():
			return
		case <-r.tick:
		}
		if r.running {
			if !r.skipBreak && r.brk == int(r.m.PC) {
				r.running = false
				log.Printf("break at %.3x", r.brk)
			} else {
				r.m.Exec()
			}
			r.skipBreak = false
		}
		select {
		case c := <-r.ctl:
			r.control(c)
		default:
		}
	}
}

func (r *Runner) control(c control) {
	switch c.kind {
	case pauseControl:
		r.running = false
	case resumeControl:
		r.running, r.skipBreak = true, true
	case toggleControl:
		r.running = !r.running
		r.skipBreak = r.running
	case stepControl:
		if !r.running {
			r.m.Exec()
		}
	case loadControl:
		r.m.Load(c.rom)
		r.running = true
	case breakControl:
		r.brk = c.addr
	case stateControl:
		c.state <- Status{State: r.m.State(), Running: r.running, Break: r.brk}
	}
}

// Done returns a channel that is closed when Run returns.
func (r *Runner) Done() <-chan struct{} { return r.done }

func (r *Runner) send(c control) bool {
	select {
	case r.ctl <- c:
		return true
	case <-r.done:
		return false
	}
}

// Pause stops execution.
func (r *Runner) Pause() { r.send(control{kind: pauseControl}) }

// Resume restarts execution.
func (r *Runner) Resume() { r.send(control{kind: resumeControl}) }

// Toggle pauses a running machine and resumes a paused one.
func (r *Runner) Toggle() { r.send(control{kind: toggleControl}) }

// Step executes a single cycle of a paused machine.
func (r *Runner) Step() { r.send(control{kind: stepControl}) }

// Load replaces the running program with rom and resumes execution
// from the start of the program.
func (r *Runner) Load(rom []byte) { r.send(control{kind: loadControl, rom: rom}) }

// SetBreak pauses execution whenever the program counter reaches addr.
// A negative addr clears the breakpoint.
func (r *Runner) SetBreak(addr int) {
	if addr < 0 {
		addr = -1
	}
	r.send(control{kind: breakControl, addr: addr})
}

// State returns the state of the machine as of the next tick.
// It returns the zero Status once the Runner has stopped.
func (r *Runner) State() Status {
	reply := make(chan Status, 1)
	if !r.send(control{kind: stateControl, state: reply}) {
		return Status{}
	}
	select {
	case s := <-reply:
		return s
	case <-r.done:
		select {
		case s := <-reply:
			return s
		default:
			return Status{}
		}
	}
}
