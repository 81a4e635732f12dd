// Package device implements the peripherals of a CHIP-8 machine as
// single-owner actors.
//
// Each device runs a goroutine that exclusively owns its state. Other
// goroutines reach it through a handle whose methods post requests on a
// buffered channel and, where a value is needed, wait on a one-shot reply
// channel. Once a device has shut down, its handle methods return
// immediately with the zero value.
package device

import "sync"

// owner tracks the lifetime of a device goroutine.
type owner struct {
	quit chan struct{} // closed to ask the loop to exit
	done chan struct{} // closed by the loop when it exits
	once sync.Once
}

func newOwner() owner {
	return owner{
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Close stops the device loop and waits for it to exit.
// It is safe to call Close more than once.
func (o *owner) Close() {
	o.once.Do(func() { close(o.quit) })
	<-o.done
}

// Done returns a channel that is closed once the device loop has exited.
func (o *owner) Done() <-chan struct{} { return o.done }

// requestBuffer is the capacity of each device's request channel.
const requestBuffer = 16

// post delivers r on c unless the device has exited.
func post[R any](c chan<- R, done <-chan struct{}, r R) bool {
	select {
	case c <- r:
		return true
	case <-done:
		return false
	}
}

// await returns the reply to a posted request, or the zero value if the
// device exited without answering.
func await[T any](reply <-chan T, done <-chan struct{}) T {
	select {
	case v := <-reply:
		return v
	case <-done:
		// The loop may have answered just before exiting.
		select {
		case v := <-reply:
			return v
		default:
			var zero T
			return zero
		}
	}
}
