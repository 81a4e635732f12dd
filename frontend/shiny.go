package frontend

import (
	"image"
	"log"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/draw"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// Scale is the initial window size in screen pixels per machine pixel.
const Scale = 10

// RunShiny displays m in a window until the machine stops or the window
// is closed. It must be called from the main goroutine.
func RunShiny(m Machine) error {
	var err error
	driver.Main(func(s screen.Screen) {
		err = runShiny(s, m)
	})
	m.Quit()
	return err
}

type update struct{}

func runShiny(s screen.Screen, m Machine) error {
	fw, fh := m.Video.Size()
	w, err := s.NewWindow(&screen.NewWindowOptions{
		Title:  "c8",
		Width:  fw * Scale,
		Height: fh * Scale,
	})
	if err != nil {
		return err
	}
	defer w.Release()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		t := newFrameTicker()
		defer t.Stop()
		for {
			select {
			case <-t.C:
				w.Send(update{})
			case <-m.Done:
				w.Send(lifecycle.Event{To: lifecycle.StageDead})
				return
			case <-stop:
				return
			}
		}
	}()

	var (
		sz    size.Event
		frame = image.NewRGBA(image.Rect(0, 0, fw, fh))
		buf   screen.Buffer
		seq   uint64
		dirty = true
	)
	defer func() {
		if buf != nil {
			buf.Release()
		}
	}()
	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return nil
			}

		case size.Event:
			sz = e
			if sz.WidthPx == 0 || sz.HeightPx == 0 {
				continue
			}
			if buf != nil {
				buf.Release()
			}
			if buf, err = s.NewBuffer(sz.Size()); err != nil {
				return err
			}
			dirty = true

		case paint.Event:
			dirty = true

		case key.Event:
			if e.Code == key.CodeEscape {
				m.Quit()
				continue
			}
			switch e.Direction {
			case key.DirPress:
				m.press(e.Rune)
			case key.DirRelease:
				m.release(e.Rune)
			}

		case update:
			f := m.Video.Snapshot()
			if f.Pix == nil || buf == nil {
				continue
			}
			if f.Seq != seq || dirty {
				seq, dirty = f.Seq, false
				fillRGBA(frame.Pix, f)
				draw.NearestNeighbor.Scale(buf.RGBA(), buf.Bounds(), frame, frame.Bounds(), draw.Src, nil)
				w.Upload(image.Point{}, buf, buf.Bounds())
				w.Publish()
			}

		case error:
			log.Print(e)
		}
	}
}
