package device

import (
	"fmt"
	"log"
)

// Mode selects the resolution of a VideoMemory.
type Mode int

const (
	Standard Mode = iota // 64x32
	Extended             // 128x64
)

// Size returns the display dimensions of the mode.
func (m Mode) Size() (width, height int) {
	if m == Extended {
		return 128, 64
	}
	return 64, 32
}

func (m Mode) String() string {
	w, h := m.Size()
	return fmt.Sprintf("%dx%d", w, h)
}

// Frame is a copy of the display contents.
type Frame struct {
	Width, Height int
	Pix           []bool // row-major, true is lit

	// Seq counts the mutations applied to the display.
	// Frames with equal Seq have equal contents.
	Seq uint64
}

// At reports whether the pixel at (x, y) is lit.
func (f Frame) At(x, y int) bool {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return false
	}
	return f.Pix[y*f.Width+x]
}

// VideoMemory is a monochrome pixel grid.
// Reads outside the grid return false and writes outside it are dropped.
type VideoMemory struct {
	owner
	req           chan videoReq
	width, height int
}

type videoOp int

const (
	videoPixel videoOp = iota
	videoSet
	videoClear
	videoSnapshot
)

type videoReq struct {
	op    videoOp
	x, y  int
	on    bool
	pixel chan bool
	frame chan Frame
}

// NewVideoMemory returns a running VideoMemory with all pixels unlit.
func NewVideoMemory(mode Mode) *VideoMemory {
	w, h := mode.Size()
	v := &VideoMemory{
		owner:  newOwner(),
		req:    make(chan videoReq, requestBuffer),
		width:  w,
		height: h,
	}
	go v.loop()
	return v
}

func (v *VideoMemory) loop() {
	defer close(v.done)
	var (
		pix = make([]bool, v.width*v.height)
		seq uint64
	)
	inRange := func(r videoReq) bool {
		return r.x >= 0 && r.y >= 0 && r.x < v.width && r.y < v.height
	}
	for {
		var r videoReq
		select {
		case r = <-v.req:
		case <-v.quit:
			return
		}
		switch r.op {
		case videoPixel:
			if !inRange(r) {
				log.Printf("video: read of pixel (%d, %d) outside %dx%d", r.x, r.y, v.width, v.height)
				r.pixel <- false
				break
			}
			r.pixel <- pix[r.y*v.width+r.x]
		case videoSet:
			if !inRange(r) {
				log.Printf("video: write of pixel (%d, %d) outside %dx%d", r.x, r.y, v.width, v.height)
				break
			}
			if i := r.y*v.width + r.x; pix[i] != r.on {
				pix[i] = r.on
				seq++
			}
		case videoClear:
			clear(pix)
			seq++
		case videoSnapshot:
			r.frame <- Frame{
				Width:  v.width,
				Height: v.height,
				Pix:    append([]bool(nil), pix...),
				Seq:    seq,
			}
		}
	}
}

// Size returns the dimensions of the grid.
func (v *VideoMemory) Size() (width, height int) { return v.width, v.height }

// Pixel reports whether the pixel at (x, y) is lit.
func (v *VideoMemory) Pixel(x, y int) bool {
	reply := make(chan bool, 1)
	if !post(v.req, v.done, videoReq{op: videoPixel, x: x, y: y, pixel: reply}) {
		return false
	}
	return await(reply, v.done)
}

// SetPixel lights or clears the pixel at (x, y).
func (v *VideoMemory) SetPixel(x, y int, on bool) {
	post(v.req, v.done, videoReq{op: videoSet, x: x, y: y, on: on})
}

// Clear turns every pixel off.
func (v *VideoMemory) Clear() {
	post(v.req, v.done, videoReq{op: videoClear})
}

// Snapshot returns a copy of the grid.
// After shutdown it returns the zero Frame.
func (v *VideoMemory) Snapshot() Frame {
	reply := make(chan Frame, 1)
	if !post(v.req, v.done, videoReq{op: videoSnapshot, frame: reply}) {
		return Frame{}
	}
	return await(reply, v.done)
}
