package device

// Keypad holds the pressed state of the 16 hexadecimal keys.
// Key values are masked to their low nibble.
type Keypad struct {
	owner
	req chan keypadReq
}

type keypadOp int

const (
	keyDown keypadOp = iota
	keyUp
	keyState
)

type keypadReq struct {
	op    keypadOp
	key   byte
	reply chan [16]bool
}

// NewKeypad returns a running Keypad with no keys pressed.
func NewKeypad() *Keypad {
	k := &Keypad{
		owner: newOwner(),
		req:   make(chan keypadReq, requestBuffer),
	}
	go k.loop()
	return k
}

func (k *Keypad) loop() {
	defer close(k.done)
	var keys [16]bool
	for {
		select {
		case r := <-k.req:
			switch r.op {
			case keyDown:
				keys[r.key] = true
			case keyUp:
				keys[r.key] = false
			case keyState:
				r.reply <- keys
			}
		case <-k.quit:
			return
		}
	}
}

// KeyDown marks key as pressed.
func (k *Keypad) KeyDown(key byte) {
	post(k.req, k.done, keypadReq{op: keyDown, key: key & 0xf})
}

// KeyUp marks key as released.
func (k *Keypad) KeyUp(key byte) {
	post(k.req, k.done, keypadReq{op: keyUp, key: key & 0xf})
}

// Pressed reports whether key is currently pressed.
func (k *Keypad) Pressed(key byte) bool {
	return k.State()[key&0xf]
}

// State returns the pressed state of every key.
func (k *Keypad) State() [16]bool {
	reply := make(chan [16]bool, 1)
	if !post(k.req, k.done, keypadReq{op: keyState, reply: reply}) {
		return [16]bool{}
	}
	return await(reply, k.done)
}
