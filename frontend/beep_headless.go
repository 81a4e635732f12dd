//go:build headless

package frontend

// Beeper is a silent stand-in for builds without audio support.
type Beeper struct {
	squareWave
}

func NewBeeper() (*Beeper, error) { return &Beeper{}, nil }

func (b *Beeper) Close() error { return nil }
