// Package chip8 provides an implementation of a CHIP-8 interpreter, called
// Machine, that executes CHIP-8 programs against external devices.
package chip8

import "math/rand/v2"

const (
	// MemSize is the size of the addressable memory.
	MemSize = 0x1000

	// ProgramStart is the address at which programs are loaded and
	// begin execution.
	ProgramStart = 0x200
)

// Machine is an implementation of a CHIP-8 interpreter.
//
// The display, keypad and timers are owned elsewhere and reached only
// through the device interfaces; all four must be set before Exec is called.
type Machine struct {
	Mem   [MemSize]byte
	V     [16]byte
	I     uint16
	PC    uint16
	Stack Stack

	Display Display
	Keys    Keypad
	Delay   Timer
	Sound   Timer

	// Rand returns the random byte used by RND.
	Rand func() byte
	// Logf receives warnings about malformed programs.
	Logf func(format string, args ...any)

	wait *keyWait
}

// Display provides access to the monochrome pixel grid.
// Coordinates passed by Machine are always within Size.
type Display interface {
	Size() (width, height int)
	Pixel(x, y int) bool
	SetPixel(x, y int, on bool)
	Clear()
}

// Keypad provides access to the state of the 16 keys.
type Keypad interface {
	Pressed(key byte) bool
	State() [16]bool
}

// Timer provides access to a 60Hz countdown register.
type Timer interface {
	Get() byte
	Set(v byte)
}

// keyWait records a pending LD Vx, K.
type keyWait struct {
	reg  byte
	held [16]bool // keys already down when the wait began
}

// Nopf is a Logf function that discards its input.
func Nopf(string, ...any) {}

// NewMachine returns a CHIP-8 interpreter with the font loaded at FontBase
// and the given rom loaded at ProgramStart. A rom that does not fit in
// memory is truncated.
func NewMachine(rom []byte) *Machine {
	m := &Machine{
		PC:   ProgramStart,
		Rand: randByte,
		Logf: Nopf,
	}
	copy(m.Mem[FontBase:], font[:])
	copy(m.Mem[ProgramStart:], rom)
	return m
}

func randByte() byte { return byte(rand.Uint32()) }

// Load replaces the program region with rom and resets PC to ProgramStart.
// Registers and the call stack are left untouched.
func (m *Machine) Load(rom []byte) {
	clear(m.Mem[ProgramStart:])
	if n := copy(m.Mem[ProgramStart:], rom); n < len(rom) {
		m.Logf("rom truncated: loaded %d of %d bytes", n, len(rom))
	}
	m.PC = ProgramStart
	m.wait = nil
}

// Waiting reports whether the machine is blocked in LD Vx, K.
func (m *Machine) Waiting() bool { return m.wait != nil }

// Word returns the instruction word at m.PC.
func (m *Machine) Word() uint16 {
	return uint16(m.Mem[m.PC%MemSize])<<8 | uint16(m.Mem[(m.PC+1)%MemSize])
}

// Exec executes the instruction at m.PC. While the machine is waiting for
// a key press Exec only polls the keypad.
func (m *Machine) Exec() {
	if m.wait != nil {
		m.pollKey()
		return
	}
	m.checkPC()
	var (
		w  = m.Word()
		pc = m.PC
	)
	m.PC += 2

	switch Decode(w) {
	case OpCLS:
		m.Display.Clear()
	case OpRET:
		addr, ok := m.Stack.Pop()
		if !ok {
			m.Logf("stack underflow executing %s at %.3x", Disasm(w), pc)
			break
		}
		m.PC = addr
	case OpJP:
		m.PC = nnn(w)
	case OpCALL:
		if !m.Stack.Push(m.PC) {
			m.Logf("stack overflow executing %s at %.3x", Disasm(w), pc)
		}
		m.PC = nnn(w)
	case OpSEByte:
		m.skipIf(m.V[x(w)] == kk(w))
	case OpSNEByte:
		m.skipIf(m.V[x(w)] != kk(w))
	case OpSEReg:
		m.skipIf(m.V[x(w)] == m.V[y(w)])
	case OpLDByte:
		m.V[x(w)] = kk(w)
	case OpADDByte:
		m.V[x(w)] += kk(w)
	case OpLDReg:
		m.V[x(w)] = m.V[y(w)]
	case OpOR:
		m.V[x(w)] |= m.V[y(w)]
	case OpAND:
		m.V[x(w)] &= m.V[y(w)]
	case OpXOR:
		m.V[x(w)] ^= m.V[y(w)]
	case OpADDReg:
		sum := uint16(m.V[x(w)]) + uint16(m.V[y(w)])
		m.setWithFlag(x(w), byte(sum), sum > 0xff)
	case OpSUB:
		vx, vy := m.V[x(w)], m.V[y(w)]
		m.setWithFlag(x(w), vx-vy, vx > vy)
	case OpSHR:
		vy := m.V[y(w)]
		m.setWithFlag(x(w), vy>>1, vy&0x01 != 0)
	case OpSUBN:
		vx, vy := m.V[x(w)], m.V[y(w)]
		m.setWithFlag(x(w), vy-vx, vy >= vx)
	case OpSHL:
		vy := m.V[y(w)]
		m.setWithFlag(x(w), vy<<1, vy&0x80 != 0)
	case OpSNEReg:
		m.skipIf(m.V[x(w)] != m.V[y(w)])
	case OpLDI:
		m.I = nnn(w)
	case OpJPV0:
		m.PC = nnn(w) + uint16(m.V[0])
	case OpRND:
		m.V[x(w)] = m.Rand() & kk(w)
	case OpDRW:
		m.draw(m.V[x(w)], m.V[y(w)], n(w))
	case OpSKP:
		m.skipIf(m.Keys.Pressed(m.V[x(w)] & 0xf))
	case OpSKNP:
		m.skipIf(!m.Keys.Pressed(m.V[x(w)] & 0xf))
	case OpLDVxDT:
		m.V[x(w)] = m.Delay.Get()
	case OpLDVxK:
		m.wait = &keyWait{reg: x(w), held: m.Keys.State()}
	case OpLDDTVx:
		m.Delay.Set(m.V[x(w)])
	case OpLDSTVx:
		m.Sound.Set(m.V[x(w)])
	case OpADDI:
		m.I += uint16(m.V[x(w)])
	case OpLDF:
		m.I = FontBase + GlyphSize*uint16(m.V[x(w)]&0xf)
	case OpLDB:
		v := m.V[x(w)]
		m.store(m.I, v/100)
		m.store(m.I+1, v/10%10)
		m.store(m.I+2, v%10)
	case OpSTR:
		for i := uint16(0); i <= uint16(x(w)); i++ {
			m.store(m.I+i, m.V[i])
		}
	case OpLDR:
		for i := uint16(0); i <= uint16(x(w)); i++ {
			m.V[i] = m.load(m.I + i)
		}
		m.I += uint16(x(w)) + 1
	default:
		m.Logf("unknown opcode %.4x at %.3x", w, pc)
	}

	m.checkPC()
}

func (m *Machine) skipIf(cond bool) {
	if cond {
		m.PC += 2
	}
}

// setWithFlag sets V[reg] to v and then VF to the flag,
// so that the flag wins when reg is 0xf.
func (m *Machine) setWithFlag(reg, v byte, flag bool) {
	m.V[reg] = v
	m.V[0xf] = bit(flag)
}

func bit(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// checkPC wraps an out of range program counter to ProgramStart.
func (m *Machine) checkPC() {
	if m.PC >= MemSize {
		m.Logf("pc %.4x out of range, wrapping to %.3x", m.PC, ProgramStart)
		m.PC = ProgramStart
	}
}

func (m *Machine) addr(a uint16) uint16 {
	if a >= MemSize {
		m.Logf("address %.4x out of range, wrapping to %.3x", a, a%MemSize)
		a %= MemSize
	}
	return a
}

func (m *Machine) load(a uint16) byte { return m.Mem[m.addr(a)] }

func (m *Machine) store(a uint16, v byte) { m.Mem[m.addr(a)] = v }

// draw XORs the h byte sprite at I onto the display at (vx, vy),
// wrapping at the display edges, and sets VF to 1 if any lit pixel
// was turned off.
func (m *Machine) draw(vx, vy, h byte) {
	var (
		width, height = m.Display.Size()
		x0, y0        = int(vx) % width, int(vy) % height
		collision     bool
	)
	for row := 0; row < int(h); row++ {
		sprite := m.load(m.I + uint16(row))
		py := (y0 + row) % height
		for col := 0; col < 8; col++ {
			if sprite&(0x80>>col) == 0 {
				continue // XOR with zero leaves the pixel alone
			}
			px := (x0 + col) % width
			lit := m.Display.Pixel(px, py)
			m.Display.SetPixel(px, py, !lit)
			collision = collision || lit
		}
	}
	m.V[0xf] = bit(collision)
}

// pollKey completes a pending LD Vx, K once a key that was not held when
// the wait began is pressed. The lowest such key wins.
func (m *Machine) pollKey() {
	keys := m.Keys.State()
	for k, down := range keys {
		if down && !m.wait.held[k] {
			m.V[m.wait.reg] = byte(k)
			m.wait = nil
			return
		}
	}
	// A held key that has since been released may complete the wait
	// when it is pressed again.
	for k, down := range keys {
		if !down {
			m.wait.held[k] = false
		}
	}
}

// State is a snapshot of the interpreter registers.
type State struct {
	V       [16]byte
	I       uint16
	PC      uint16
	Word    uint16 // instruction at PC
	Stack   Stack
	Waiting bool
}

// State returns a snapshot of the interpreter registers.
func (m *Machine) State() State {
	return State{
		V:       m.V,
		I:       m.I,
		PC:      m.PC,
		Word:    m.Word(),
		Stack:   m.Stack,
		Waiting: m.Waiting(),
	}
}
