package chip8

import "fmt"

// Op identifies one instruction of the CHIP-8 base instruction set.
// Decode maps every 16-bit word to exactly one Op.
type Op byte

const (
	OpUnknown Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpJP         // 1nnn
	OpCALL       // 2nnn
	OpSEByte     // 3xkk
	OpSNEByte    // 4xkk
	OpSEReg      // 5xy0
	OpLDByte     // 6xkk
	OpADDByte    // 7xkk
	OpLDReg      // 8xy0
	OpOR         // 8xy1
	OpAND        // 8xy2
	OpXOR        // 8xy3
	OpADDReg     // 8xy4
	OpSUB        // 8xy5
	OpSHR        // 8xy6
	OpSUBN       // 8xy7
	OpSHL        // 8xyE
	OpSNEReg     // 9xy0
	OpLDI        // Annn
	OpJPV0       // Bnnn
	OpRND        // Cxkk
	OpDRW        // Dxyn
	OpSKP        // Ex9E
	OpSKNP       // ExA1
	OpLDVxDT     // Fx07
	OpLDVxK      // Fx0A
	OpLDDTVx     // Fx15
	OpLDSTVx     // Fx18
	OpADDI       // Fx1E
	OpLDF        // Fx29
	OpLDB        // Fx33
	OpSTR        // Fx55
	OpLDR        // Fx65

	numOps
)

// Decode returns the Op encoded by the instruction word w.
func Decode(w uint16) Op {
	switch w & 0xf000 {
	case 0x0000:
		switch w {
		case 0x00e0:
			return OpCLS
		case 0x00ee:
			return OpRET
		}
	case 0x1000:
		return OpJP
	case 0x2000:
		return OpCALL
	case 0x3000:
		return OpSEByte
	case 0x4000:
		return OpSNEByte
	case 0x5000:
		if w&0xf == 0 {
			return OpSEReg
		}
	case 0x6000:
		return OpLDByte
	case 0x7000:
		return OpADDByte
	case 0x8000:
		switch w & 0xf {
		case 0x0:
			return OpLDReg
		case 0x1:
			return OpOR
		case 0x2:
			return OpAND
		case 0x3:
			return OpXOR
		case 0x4:
			return OpADDReg
		case 0x5:
			return OpSUB
		case 0x6:
			return OpSHR
		case 0x7:
			return OpSUBN
		case 0xe:
			return OpSHL
		}
	case 0x9000:
		if w&0xf == 0 {
			return OpSNEReg
		}
	case 0xa000:
		return OpLDI
	case 0xb000:
		return OpJPV0
	case 0xc000:
		return OpRND
	case 0xd000:
		return OpDRW
	case 0xe000:
		switch w & 0xff {
		case 0x9e:
			return OpSKP
		case 0xa1:
			return OpSKNP
		}
	case 0xf000:
		switch w & 0xff {
		case 0x07:
			return OpLDVxDT
		case 0x0a:
			return OpLDVxK
		case 0x15:
			return OpLDDTVx
		case 0x18:
			return OpLDSTVx
		case 0x1e:
			return OpADDI
		case 0x29:
			return OpLDF
		case 0x33:
			return OpLDB
		case 0x55:
			return OpSTR
		case 0x65:
			return OpLDR
		}
	}
	return OpUnknown
}

// Instruction field accessors.
func x(w uint16) byte     { return byte(w>>8) & 0xf }
func y(w uint16) byte     { return byte(w>>4) & 0xf }
func n(w uint16) byte     { return byte(w) & 0xf }
func kk(w uint16) byte    { return byte(w) }
func nnn(w uint16) uint16 { return w & 0x0fff }

var opNames = [numOps]string{
	OpUnknown: "???",
	OpCLS:     "CLS",
	OpRET:     "RET",
	OpJP:      "JP",
	OpCALL:    "CALL",
	OpSEByte:  "SE",
	OpSNEByte: "SNE",
	OpSEReg:   "SE",
	OpLDByte:  "LD",
	OpADDByte: "ADD",
	OpLDReg:   "LD",
	OpOR:      "OR",
	OpAND:     "AND",
	OpXOR:     "XOR",
	OpADDReg:  "ADD",
	OpSUB:     "SUB",
	OpSHR:     "SHR",
	OpSUBN:    "SUBN",
	OpSHL:     "SHL",
	OpSNEReg:  "SNE",
	OpLDI:     "LD",
	OpJPV0:    "JP",
	OpRND:     "RND",
	OpDRW:     "DRW",
	OpSKP:     "SKP",
	OpSKNP:    "SKNP",
	OpLDVxDT:  "LD",
	OpLDVxK:   "LD",
	OpLDDTVx:  "LD",
	OpLDSTVx:  "LD",
	OpADDI:    "ADD",
	OpLDF:     "LD",
	OpLDB:     "LD",
	OpSTR:     "LD",
	OpLDR:     "LD",
}

func (o Op) String() string {
	if o >= numOps {
		return opNames[OpUnknown]
	}
	return opNames[o]
}

// Disasm renders the instruction word w in the conventional
// Cowgod mnemonic syntax, for example "LD V5, $0A" or "DRW V0, V1, $5".
func Disasm(w uint16) string {
	op := Decode(w)
	switch op {
	case OpCLS, OpRET:
		return op.String()
	case OpJP, OpCALL:
		return fmt.Sprintf("%s $%.3X", op, nnn(w))
	case OpJPV0:
		return fmt.Sprintf("%s V0, $%.3X", op, nnn(w))
	case OpSEByte, OpSNEByte, OpLDByte, OpADDByte, OpRND:
		return fmt.Sprintf("%s V%X, $%.2X", op, x(w), kk(w))
	case OpSEReg, OpSNEReg, OpLDReg, OpOR, OpAND, OpXOR, OpADDReg, OpSUB, OpSUBN, OpSHR, OpSHL:
		return fmt.Sprintf("%s V%X, V%X", op, x(w), y(w))
	case OpLDI:
		return fmt.Sprintf("%s I, $%.3X", op, nnn(w))
	case OpDRW:
		return fmt.Sprintf("%s V%X, V%X, $%X", op, x(w), y(w), n(w))
	case OpSKP, OpSKNP:
		return fmt.Sprintf("%s V%X", op, x(w))
	case OpLDVxDT:
		return fmt.Sprintf("%s V%X, DT", op, x(w))
	case OpLDVxK:
		return fmt.Sprintf("%s V%X, K", op, x(w))
	case OpLDDTVx:
		return fmt.Sprintf("%s DT, V%X", op, x(w))
	case OpLDSTVx:
		return fmt.Sprintf("%s ST, V%X", op, x(w))
	case OpADDI:
		return fmt.Sprintf("%s I, V%X", op, x(w))
	case OpLDF:
		return fmt.Sprintf("%s F, V%X", op, x(w))
	case OpLDB:
		return fmt.Sprintf("%s B, V%X", op, x(w))
	case OpSTR:
		return fmt.Sprintf("%s [I], V%X", op, x(w))
	case OpLDR:
		return fmt.Sprintf("%s V%X, [I]", op, x(w))
	}
	return fmt.Sprintf("%s %.4X", op, w)
}
