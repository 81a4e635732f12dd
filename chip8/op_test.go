package chip8

import "testing"

// Each opcode pattern as a mask and the value the masked word must have.
var opPatterns = []struct {
	op          Op
	mask, value uint16
}{
	{OpCLS, 0xffff, 0x00e0},
	{OpRET, 0xffff, 0x00ee},
	{OpJP, 0xf000, 0x1000},
	{OpCALL, 0xf000, 0x2000},
	{OpSEByte, 0xf000, 0x3000},
	{OpSNEByte, 0xf000, 0x4000},
	{OpSEReg, 0xf00f, 0x5000},
	{OpLDByte, 0xf000, 0x6000},
	{OpADDByte, 0xf000, 0x7000},
	{OpLDReg, 0xf00f, 0x8000},
	{OpOR, 0xf00f, 0x8001},
	{OpAND, 0xf00f, 0x8002},
	{OpXOR, 0xf00f, 0x8003},
	{OpADDReg, 0xf00f, 0x8004},
	{OpSUB, 0xf00f, 0x8005},
	{OpSHR, 0xf00f, 0x8006},
	{OpSUBN, 0xf00f, 0x8007},
	{OpSHL, 0xf00f, 0x800e},
	{OpSNEReg, 0xf00f, 0x9000},
	{OpLDI, 0xf000, 0xa000},
	{OpJPV0, 0xf000, 0xb000},
	{OpRND, 0xf000, 0xc000},
	{OpDRW, 0xf000, 0xd000},
	{OpSKP, 0xf0ff, 0xe09e},
	{OpSKNP, 0xf0ff, 0xe0a1},
	{OpLDVxDT, 0xf0ff, 0xf007},
	{OpLDVxK, 0xf0ff, 0xf00a},
	{OpLDDTVx, 0xf0ff, 0xf015},
	{OpLDSTVx, 0xf0ff, 0xf018},
	{OpADDI, 0xf0ff, 0xf01e},
	{OpLDF, 0xf0ff, 0xf029},
	{OpLDB, 0xf0ff, 0xf033},
	{OpSTR, 0xf0ff, 0xf055},
	{OpLDR, 0xf0ff, 0xf065},
}

// Check that every word matches at most one pattern
// and that Decode selects exactly that pattern's Op.
func TestDecode(t *testing.T) {
	if len(opPatterns) != int(numOps)-1 {
		t.Fatalf("%d patterns for %d ops", len(opPatterns), numOps-1)
	}
	for w := 0; w <= 0xffff; w++ {
		want := OpUnknown
		for _, p := range opPatterns {
			if uint16(w)&p.mask != p.value {
				continue
			}
			if want != OpUnknown {
				t.Fatalf("word %.4x matches both %v and %v", w, want, p.op)
			}
			want = p.op
		}
		if got := Decode(uint16(w)); got != want {
			t.Errorf("Decode(%.4x) = %v (%d), want %v (%d)", w, got, got, want, want)
		}
	}
}

func TestDisasm(t *testing.T) {
	for _, c := range []struct {
		w    uint16
		want string
	}{
		{0x00e0, "CLS"},
		{0x00ee, "RET"},
		{0x1228, "JP $228"},
		{0x2abc, "CALL $ABC"},
		{0x3a05, "SE VA, $05"},
		{0x5120, "SE V1, V2"},
		{0x6a05, "LD VA, $05"},
		{0x8014, "ADD V0, V1"},
		{0x801e, "SHL V0, V1"},
		{0xa2f0, "LD I, $2F0"},
		{0xb300, "JP V0, $300"},
		{0xd015, "DRW V0, V1, $5"},
		{0xe39e, "SKP V3"},
		{0xf30a, "LD V3, K"},
		{0xfa15, "LD DT, VA"},
		{0xf233, "LD B, V2"},
		{0xf555, "LD [I], V5"},
		{0xf565, "LD V5, [I]"},
		{0x0123, "??? 0123"},
	} {
		if got := Disasm(c.w); got != c.want {
			t.Errorf("Disasm(%.4x) = %q, want %q", c.w, got, c.want)
		}
	}
}

func TestStack(t *testing.T) {
	var s Stack
	if _, ok := s.Pop(); ok {
		t.Fatal("Pop from empty stack succeeded")
	}
	for i := 0; i < StackDepth; i++ {
		if !s.Push(uint16(i)) {
			t.Fatalf("Push %d failed", i)
		}
	}
	if s.Push(0xfff) {
		t.Fatal("Push onto full stack succeeded")
	}
	if int(s.Ptr) != StackDepth {
		t.Fatalf("Ptr = %d, want %d", s.Ptr, StackDepth)
	}
	for i := StackDepth - 1; i >= 0; i-- {
		if v, ok := s.Pop(); !ok || v != uint16(i) {
			t.Fatalf("Pop = %d, %v, want %d, true", v, ok, i)
		}
	}
}
