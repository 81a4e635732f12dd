package device

import "time"

// TickRate is the frequency at which a Counter decrements.
const TickRate = 60

// Counter is a byte register that counts down to zero at TickRate.
// It backs the delay and sound timers.
type Counter struct {
	owner
	req  chan counterReq
	tick <-chan time.Time
	stop func()
}

type counterReq struct {
	set   bool
	v     byte
	reply chan byte // nil for set
}

// NewCounter returns a running Counter with value zero.
// Ticks missed by a busy counter are dropped, not queued.
func NewCounter() *Counter {
	t := time.NewTicker(time.Second / TickRate)
	return newCounter(t.C, t.Stop)
}

// NewTickedCounter returns a running Counter that decrements on each value
// received from tick instead of from its own ticker.
func NewTickedCounter(tick <-chan time.Time) *Counter {
	return newCounter(tick, func() {})
}

func newCounter(tick <-chan time.Time, stop func()) *Counter {
	c := &Counter{
		owner: newOwner(),
		req:   make(chan counterReq, requestBuffer),
		tick:  tick,
		stop:  stop,
	}
	go c.loop()
	return c
}

func (c *Counter) loop() {
	defer close(c.done)
	defer c.stop()
	var v byte
	for {
		select {
		case <-c.tick:
			if v > 0 {
				v--
			}
		case r := <-c.req:
			if r.set {
				v = r.v
			} else {
				r.reply <- v
			}
		case <-c.quit:
			return
		}
	}
}

// Get returns the current value.
func (c *Counter) Get() byte {
	reply := make(chan byte, 1)
	if !post(c.req, c.done, counterReq{reply: reply}) {
		return 0
	}
	return await(reply, c.done)
}

// Set replaces the current value with v.
func (c *Counter) Set(v byte) {
	post(c.req, c.done, counterReq{set: true, v: v})
}
