package frontend

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

const (
	toneFreq   = 440
	sampleRate = 44100
	volume     = 0.25
)

// Tone is a sound that can be switched on and off.
type Tone interface {
	SetPlaying(on bool)
}

// Beep polls the sound timer of m once per frame and plays t while the
// timer is non-zero. It returns when the machine stops.
func Beep(m Machine, t Tone) {
	tick := newFrameTicker()
	defer tick.Stop()
	defer t.SetPlaying(false)
	for {
		select {
		case <-m.Done:
			return
		case <-tick.C:
			t.SetPlaying(m.Sound.Get() > 0)
		}
	}
}

// squareWave generates a mono float32 square wave that is silent
// unless playing.
type squareWave struct {
	playing atomic.Bool
	phase   int // samples into the current period, owned by Read
}

// SetPlaying switches the wave on or off.
func (w *squareWave) SetPlaying(on bool) { w.playing.Store(on) }

// Read fills p with little-endian float32 samples. It never returns an
// error and always fills p with whole samples.
func (w *squareWave) Read(p []byte) (int, error) {
	const period = sampleRate / toneFreq
	on := w.playing.Load()
	n := len(p) / 4
	for i := 0; i < n; i++ {
		var s float32
		if on {
			s = volume
			if w.phase >= period/2 {
				s = -volume
			}
		}
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
		w.phase = (w.phase + 1) % period
	}
	return n * 4, nil
}
