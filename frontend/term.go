package frontend

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/nf/c8/device"
)

// keyHold is how long a terminal key stays pressed after its last key
// event. Terminals report presses and auto-repeats but not releases.
const keyHold = 250 * time.Millisecond

// RunTerm displays m in the terminal until the machine stops or the
// user presses Escape. Each character cell shows two vertically stacked
// pixels.
func RunTerm(m Machine) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()
	t := newFrameTicker()
	defer t.Stop()
	runTerm(s, m, t.C)
	m.Quit()
	return nil
}

func runTerm(s tcell.Screen, m Machine, tick <-chan time.Time) {
	events := make(chan tcell.Event)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	var (
		held  = map[rune]time.Time{} // bound key to time of last event
		seq   uint64
		dirty = true
	)
	for {
		select {
		case <-m.Done:
			return

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyEscape, tcell.KeyCtrlC:
					m.Quit()
					return
				case tcell.KeyRune:
					r := toLower(ev.Rune())
					if _, ok := KeyForRune(r); ok {
						if _, down := held[r]; !down {
							m.press(r)
						}
						held[r] = ev.When()
					} else if r == PauseRune {
						m.press(r)
					}
				}
			case *tcell.EventResize:
				s.Sync()
				dirty = true
			}

		case now := <-tick:
			for r, t := range held {
				if now.Sub(t) >= keyHold {
					m.release(r)
					delete(held, r)
				}
			}
			f := m.Video.Snapshot()
			if f.Pix == nil || (f.Seq == seq && !dirty) {
				continue
			}
			seq, dirty = f.Seq, false
			drawHalfBlocks(s, f)
			s.Show()
		}
	}
}

var termStyle = tcell.StyleDefault.
	Foreground(tcell.ColorWhite).
	Background(tcell.ColorBlack)

// drawHalfBlocks renders f onto s, two pixel rows per character row.
func drawHalfBlocks(s tcell.Screen, f device.Frame) {
	for y := 0; y < (f.Height+1)/2; y++ {
		for x := 0; x < f.Width; x++ {
			top, bottom := f.At(x, 2*y), f.At(x, 2*y+1)
			r := ' '
			switch {
			case top && bottom:
				r = '█'
			case top:
				r = '▀'
			case bottom:
				r = '▄'
			}
			s.SetContent(x, y, r, nil, termStyle)
		}
	}
}
