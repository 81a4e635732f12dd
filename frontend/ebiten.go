//go:build !headless

package frontend

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ebitenKeys maps the bound keyboard keys to the runes they produce.
var ebitenKeys = map[ebiten.Key]rune{
	ebiten.Key1: '1', ebiten.Key2: '2', ebiten.Key3: '3', ebiten.Key4: '4',
	ebiten.KeyQ: 'q', ebiten.KeyW: 'w', ebiten.KeyE: 'e', ebiten.KeyR: 'r',
	ebiten.KeyA: 'a', ebiten.KeyS: 's', ebiten.KeyD: 'd', ebiten.KeyF: 'f',
	ebiten.KeyZ: 'z', ebiten.KeyX: 'x', ebiten.KeyC: 'c', ebiten.KeyV: 'v',
	ebiten.KeyM: PauseRune,
}

// RunEbiten displays m in a window until the machine stops or the window
// is closed. It must be called from the main goroutine.
func RunEbiten(m Machine) error {
	g := newEbitenGame(m)
	ebiten.SetWindowSize(g.width*Scale, g.height*Scale)
	ebiten.SetWindowTitle("c8")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(FrameRate)
	err := ebiten.RunGame(g)
	m.Quit()
	return err
}

type ebitenGame struct {
	m             Machine
	width, height int
	img           *ebiten.Image
	pix           []byte
	seq           uint64
	drawn         bool
}

func newEbitenGame(m Machine) *ebitenGame {
	w, h := m.Video.Size()
	return &ebitenGame{
		m:      m,
		width:  w,
		height: h,
		pix:    make([]byte, w*h*4),
	}
}

func (g *ebitenGame) Update() error {
	select {
	case <-g.m.Done:
		return ebiten.Termination
	default:
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.m.Quit()
		return ebiten.Termination
	}
	for k, r := range ebitenKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.m.press(r)
		}
		if inpututil.IsKeyJustReleased(k) {
			g.m.release(r)
		}
	}
	return nil
}

func (g *ebitenGame) Draw(screen *ebiten.Image) {
	f := g.m.Video.Snapshot()
	if f.Pix == nil {
		return
	}
	if g.img == nil {
		g.img = ebiten.NewImage(g.width, g.height)
	}
	if !g.drawn || f.Seq != g.seq {
		fillRGBA(g.pix, f)
		g.img.WritePixels(g.pix)
		g.seq, g.drawn = f.Seq, true
	}
	screen.DrawImage(g.img, nil)
}

func (g *ebitenGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
