package main

import (
	"strings"
	"testing"

	"github.com/nf/c8/chip8"
	"github.com/nf/c8/emu"
)

func TestStateMsg(t *testing.T) {
	var st chip8.State
	st.PC = 0x204
	st.Word = 0xd015
	st.I = 0x050
	st.Stack.Push(0x202)

	for _, c := range []struct {
		s    emu.Status
		want string
	}{
		{emu.Status{State: st, Running: true, Break: -1},
			"204 d015         DRW V0, V1, $5\nI: 050 stack: ( 202 )"},
		{emu.Status{State: st, Break: -1},
			"204 d015 [pause] DRW V0, V1, $5\nI: 050 stack: ( 202 )"},
		{emu.Status{State: st, Break: 0x204},
			"204 d015 [break] DRW V0, V1, $5\nI: 050 stack: ( 202 )"},
	} {
		if got := stateMsg(c.s); got != c.want {
			t.Errorf("stateMsg = %q, want %q", got, c.want)
		}
	}
}

func TestRegsMsg(t *testing.T) {
	var st chip8.State
	st.V[0xa] = 0x5c
	lines := strings.Split(regsMsg(st), "\n")
	if len(lines) != 16 {
		t.Fatalf("got %d lines, want 16", len(lines))
	}
	if lines[0xa] != "VA 5c" || lines[0] != "V0 00" {
		t.Errorf("lines = %q", lines)
	}
}
