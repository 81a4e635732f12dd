package emu

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/nf/c8/chip8"
	"github.com/nf/c8/device"
)

// Config describes how to assemble an Emulator.
type Config struct {
	Clock  string      // interpreter clock rate, see ParseClock
	Mode   device.Mode // display resolution
	Paused bool        // start with execution paused
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		Clock: DefaultClock,
		Mode:  device.Standard,
	}
}

// Emulator is a CHIP-8 machine and the devices attached to it.
// Front ends reach the machine only through the exported handles.
type Emulator struct {
	Fuse   *device.Fuse
	Delay  *device.Counter
	Sound  *device.Counter
	Keys   *device.Keypad
	Video  *device.VideoMemory
	Runner *Runner

	interval time.Duration
	done     chan struct{}
	closed   sync.Once
}

// New parses the configuration and starts the devices of an Emulator with
// rom loaded. The interpreter does not run until Run is called.
// The caller must call Run or Close to release the devices.
func New(cfg Config, rom []byte) (*Emulator, error) {
	interval, err := ParseClock(cfg.Clock)
	if err != nil {
		return nil, err
	}
	if cfg.Mode != device.Standard && cfg.Mode != device.Extended {
		return nil, fmt.Errorf("invalid display mode %d", cfg.Mode)
	}

	e := &Emulator{
		Fuse:     device.NewFuse(),
		Delay:    device.NewCounter(),
		Sound:    device.NewCounter(),
		Keys:     device.NewKeypad(),
		Video:    device.NewVideoMemory(cfg.Mode),
		interval: interval,
		done:     make(chan struct{}),
	}
	m := chip8.NewMachine(nil)
	m.Display = e.Video
	m.Keys = e.Keys
	m.Delay = e.Delay
	m.Sound = e.Sound
	m.Logf = log.Printf
	m.Load(rom)
	e.Runner = NewRunner(m, e.Fuse, interval, cfg.Paused)
	return e, nil
}

// Run executes the machine until the fuse blows and then shuts down the
// devices.
func (e *Emulator) Run() {
	e.Runner.Run()
	e.Close()
}

// Close blows the fuse and shuts down the devices. It need not be called
// after Run returns, and it is safe to call more than once.
func (e *Emulator) Close() {
	e.Fuse.Blow()
	e.closed.Do(func() {
		e.Runner.stop()
		e.Delay.Close()
		e.Sound.Close()
		e.Keys.Close()
		e.Video.Close()
		close(e.done)
	})
}

// Quit blows the fuse, stopping the machine.
func (e *Emulator) Quit() { e.Fuse.Blow() }

// Done returns a channel that is closed once every device has shut down.
func (e *Emulator) Done() <-chan struct{} { return e.done }

// Interval returns the time between interpreter cycles.
func (e *Emulator) Interval() time.Duration { return e.interval }
