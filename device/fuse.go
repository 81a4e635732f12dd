package device

// Fuse is a one-way shutdown signal shared by all parts of the emulator.
// It starts alive and, once blown, stays blown.
type Fuse struct {
	req  chan fuseReq
	done chan struct{}
}

type fuseReq struct {
	blow  bool
	reply chan bool // nil for blow
}

// NewFuse returns a live fuse.
func NewFuse() *Fuse {
	f := &Fuse{
		req:  make(chan fuseReq, requestBuffer),
		done: make(chan struct{}),
	}
	go f.loop()
	return f
}

func (f *Fuse) loop() {
	defer close(f.done)
	for r := range f.req {
		if r.blow {
			return
		}
		r.reply <- true
	}
}

// Alive reports whether the fuse has not yet been blown.
func (f *Fuse) Alive() bool {
	reply := make(chan bool, 1)
	if !post(f.req, f.done, fuseReq{reply: reply}) {
		return false
	}
	return await(reply, f.done)
}

// Blow blows the fuse. Blowing a blown fuse has no effect.
func (f *Fuse) Blow() {
	if post(f.req, f.done, fuseReq{blow: true}) {
		<-f.done
	}
}

// Done returns a channel that is closed when the fuse blows.
func (f *Fuse) Done() <-chan struct{} { return f.done }
