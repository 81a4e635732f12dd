package chip8

import (
	"fmt"
	"strings"
)

// StackDepth is the number of return addresses the call stack can hold.
const StackDepth = 16

// Stack implements the CHIP-8 call stack.
// Ptr is the number of live entries in Addrs.
type Stack struct {
	Addrs [StackDepth]uint16
	Ptr   byte
}

// Push stores addr on top of the stack.
// It reports false, leaving the stack unchanged, if the stack is full.
func (s *Stack) Push(addr uint16) bool {
	if int(s.Ptr) >= StackDepth {
		return false
	}
	s.Addrs[s.Ptr] = addr
	s.Ptr++
	return true
}

// Pop removes and returns the top of the stack, zeroing its slot.
// It reports false if the stack is empty.
func (s *Stack) Pop() (uint16, bool) {
	if s.Ptr == 0 {
		return 0, false
	}
	s.Ptr--
	addr := s.Addrs[s.Ptr]
	s.Addrs[s.Ptr] = 0
	return addr, true
}

func (s Stack) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for _, v := range s.Addrs[:s.Ptr] {
		b.WriteByte(' ')
		fmt.Fprintf(&b, "%.3x", v)
	}
	b.WriteByte(' ')
	b.WriteByte(')')
	return b.String()
}
