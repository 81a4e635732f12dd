//go:build !headless

package frontend

import (
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Beeper plays the machine tone through the system audio device.
type Beeper struct {
	squareWave

	ctx    *oto.Context
	mu     sync.Mutex
	player *oto.Player
}

// NewBeeper opens the audio device. It blocks until the device is ready.
func NewBeeper() (*Beeper, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	b := &Beeper{ctx: ctx}
	b.player = ctx.NewPlayer(&b.squareWave)
	b.player.Play()
	return b, nil
}

// Close stops playback.
func (b *Beeper) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.player == nil {
		return nil
	}
	err := b.player.Close()
	b.player = nil
	return err
}
