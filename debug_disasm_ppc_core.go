// debug_disasm_ppc.go - PowerPC disassembler for the machine monitor

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionPPC
License: GPLv3 or later
*/

package main

import "fmt"

// Operand shapes for the table-driven disassembler.
const (
	daNone = iota
	daDRa      // rD,rA
	daDRaRb    // rD,rA,rB
	daSRaRb    // rA,rS,rB (logical/shift)
	daSRaSh    // rA,rS,SH
	daDRaSIMM  // rD,rA,SIMM
	daSRaUIMM  // rA,rS,UIMM
	daLoadD    // rD,d(rA)
	daLoadX    // rD,rA,rB
	daFLoadD   // fD,d(rA)
	daFLoadX   // fD,rA,rB
	daRot      // rA,rS,SH,MB,ME
	daRotRb    // rA,rS,rB,MB,ME
	daCmp      // crfD,rA,rB
	daCmpI     // crfD,rA,SIMM
	daCmpU     // crfD,rA,UIMM
	daFABC     // fD,fA,fB / fD,fA,fC,fB
	daFB       // fD,fB
	daFCmp     // crfD,fA,fB
	daCrOp     // crbD,crbA,crbB
	daSPRD     // rD,spr
	daSPRS     // spr,rS
	daSRD      // rD,SR
	daSRS      // SR,rS
	daRbOnly   // rB
	daD        // rD
	daS        // rS (mtmsr)
	daTrap     // TO,rA,SIMM/rB
)

type disasmEntry struct {
	name string
	form int
}

var disasmPrimary = map[uint32]disasmEntry{
	3: {"twi", daTrap}, 7: {"mulli", daDRaSIMM}, 8: {"subfic", daDRaSIMM},
	10: {"cmpli", daCmpU}, 11: {"cmpi", daCmpI}, 12: {"addic", daDRaSIMM},
	13: {"addic.", daDRaSIMM}, 14: {"addi", daDRaSIMM}, 15: {"addis", daDRaSIMM},
	17: {"sc", daNone}, 20: {"rlwimi", daRot}, 21: {"rlwinm", daRot},
	22: {"rlmi", daRotRb}, 23: {"rlwnm", daRotRb},
	24: {"ori", daSRaUIMM}, 25: {"oris", daSRaUIMM}, 26: {"xori", daSRaUIMM},
	27: {"xoris", daSRaUIMM}, 28: {"andi.", daSRaUIMM}, 29: {"andis.", daSRaUIMM},
	32: {"lwz", daLoadD}, 33: {"lwzu", daLoadD}, 34: {"lbz", daLoadD},
	35: {"lbzu", daLoadD}, 36: {"stw", daLoadD}, 37: {"stwu", daLoadD},
	38: {"stb", daLoadD}, 39: {"stbu", daLoadD}, 40: {"lhz", daLoadD},
	41: {"lhzu", daLoadD}, 42: {"lha", daLoadD}, 43: {"lhau", daLoadD},
	44: {"sth", daLoadD}, 45: {"sthu", daLoadD}, 46: {"lmw", daLoadD},
	47: {"stmw", daLoadD}, 48: {"lfs", daFLoadD}, 49: {"lfsu", daFLoadD},
	50: {"lfd", daFLoadD}, 51: {"lfdu", daFLoadD}, 52: {"stfs", daFLoadD},
	53: {"stfsu", daFLoadD}, 54: {"stfd", daFLoadD}, 55: {"stfdu", daFLoadD},
	9: {"dozi", daDRaSIMM},
}

var disasmOp19 = map[uint32]disasmEntry{
	0: {"mcrf", daNone}, 16: {"bclr", daNone}, 33: {"crnor", daCrOp},
	50: {"rfi", daNone}, 129: {"crandc", daCrOp}, 150: {"isync", daNone},
	193: {"crxor", daCrOp}, 225: {"crnand", daCrOp}, 257: {"crand", daCrOp},
	289: {"creqv", daCrOp}, 417: {"crorc", daCrOp}, 449: {"cror", daCrOp},
	528: {"bcctr", daNone},
}

var disasmOp31 = map[uint32]disasmEntry{
	0: {"cmp", daCmp}, 4: {"tw", daTrap}, 8: {"subfc", daDRaRb},
	10: {"addc", daDRaRb}, 11: {"mulhwu", daDRaRb}, 19: {"mfcr", daD},
	20: {"lwarx", daLoadX}, 23: {"lwzx", daLoadX}, 24: {"slw", daSRaRb},
	26: {"cntlzw", daDRa}, 28: {"and", daSRaRb}, 32: {"cmpl", daCmp},
	40: {"subf", daDRaRb}, 54: {"dcbst", daRbOnly}, 55: {"lwzux", daLoadX},
	60: {"andc", daSRaRb}, 75: {"mulhw", daDRaRb}, 83: {"mfmsr", daD},
	86: {"dcbf", daRbOnly}, 87: {"lbzx", daLoadX}, 104: {"neg", daDRa},
	119: {"lbzux", daLoadX}, 124: {"nor", daSRaRb}, 136: {"subfe", daDRaRb},
	138: {"adde", daDRaRb}, 144: {"mtcrf", daS}, 146: {"mtmsr", daS},
	150: {"stwcx.", daLoadX}, 151: {"stwx", daLoadX}, 183: {"stwux", daLoadX},
	200: {"subfze", daDRa}, 202: {"addze", daDRa}, 210: {"mtsr", daSRS},
	215: {"stbx", daLoadX}, 232: {"subfme", daDRa}, 234: {"addme", daDRa},
	235: {"mullw", daDRaRb}, 242: {"mtsrin", daLoadX}, 246: {"dcbtst", daRbOnly},
	247: {"stbux", daLoadX}, 266: {"add", daDRaRb}, 278: {"dcbt", daRbOnly},
	279: {"lhzx", daLoadX}, 284: {"eqv", daSRaRb}, 306: {"tlbie", daRbOnly},
	311: {"lhzux", daLoadX}, 316: {"xor", daSRaRb}, 339: {"mfspr", daSPRD},
	343: {"lhax", daLoadX}, 370: {"tlbia", daNone}, 371: {"mftb", daSPRD},
	375: {"lhaux", daLoadX}, 407: {"sthx", daLoadX}, 412: {"orc", daSRaRb},
	439: {"sthux", daLoadX}, 444: {"or", daSRaRb}, 459: {"divwu", daDRaRb},
	467: {"mtspr", daSPRS}, 470: {"dcbi", daRbOnly}, 476: {"nand", daSRaRb},
	491: {"divw", daDRaRb}, 512: {"mcrxr", daNone}, 533: {"lswx", daLoadX},
	534: {"lwbrx", daLoadX}, 535: {"lfsx", daFLoadX}, 536: {"srw", daSRaRb},
	566: {"tlbsync", daNone}, 567: {"lfsux", daFLoadX}, 595: {"mfsr", daSRD},
	597: {"lswi", daLoadX}, 598: {"sync", daNone}, 599: {"lfdx", daFLoadX},
	631: {"lfdux", daFLoadX}, 659: {"mfsrin", daLoadX}, 661: {"stswx", daLoadX},
	662: {"stwbrx", daLoadX}, 663: {"stfsx", daFLoadX}, 695: {"stfsux", daFLoadX},
	725: {"stswi", daLoadX}, 727: {"stfdx", daFLoadX}, 759: {"stfdux", daFLoadX},
	790: {"lhbrx", daLoadX}, 792: {"sraw", daSRaRb}, 824: {"srawi", daSRaSh},
	854: {"eieio", daNone}, 918: {"sthbrx", daLoadX}, 922: {"extsh", daDRa},
	954: {"extsb", daDRa}, 982: {"icbi", daRbOnly}, 983: {"stfiwx", daFLoadX},
	1014: {"dcbz", daRbOnly},
	// POWER (601) set
	29: {"maskg", daSRaRb}, 107: {"mul", daDRaRb}, 152: {"slq", daSRaRb},
	153: {"sle", daSRaRb}, 184: {"sliq", daSRaSh}, 216: {"sllq", daSRaRb},
	217: {"sleq", daSRaRb}, 248: {"slliq", daSRaSh}, 264: {"doz", daDRaRb},
	277: {"lscbx", daLoadX}, 331: {"div", daDRaRb}, 360: {"abs", daDRa},
	363: {"divs", daDRaRb}, 488: {"nabs", daDRa}, 531: {"clcs", daDRa},
	537: {"rrib", daSRaRb}, 541: {"maskir", daSRaRb}, 664: {"srq", daSRaRb},
	665: {"sre", daSRaRb}, 696: {"sriq", daSRaSh}, 728: {"srlq", daSRaRb},
	729: {"sreq", daSRaRb}, 760: {"srliq", daSRaSh}, 920: {"sraq", daSRaRb},
	921: {"srea", daSRaRb}, 952: {"sraiq", daSRaSh},
}

var disasmOp59 = map[uint32]disasmEntry{
	18: {"fdivs", daFABC}, 20: {"fsubs", daFABC}, 21: {"fadds", daFABC},
	22: {"fsqrts", daFB}, 24: {"fres", daFB}, 25: {"fmuls", daFABC},
	28: {"fmsubs", daFABC}, 29: {"fmadds", daFABC}, 30: {"fnmsubs", daFABC},
	31: {"fnmadds", daFABC},
}

var disasmOp63X = map[uint32]disasmEntry{
	0: {"fcmpu", daFCmp}, 12: {"frsp", daFB}, 14: {"fctiw", daFB},
	15: {"fctiwz", daFB}, 32: {"fcmpo", daFCmp}, 38: {"mtfsb1", daNone},
	40: {"fneg", daFB}, 64: {"mcrfs", daNone}, 70: {"mtfsb0", daNone},
	72: {"fmr", daFB}, 134: {"mtfsfi", daNone}, 136: {"fnabs", daFB},
	264: {"fabs", daFB}, 583: {"mffs", daD}, 711: {"mtfsf", daNone},
}

var disasmOp63A = map[uint32]disasmEntry{
	18: {"fdiv", daFABC}, 20: {"fsub", daFABC}, 21: {"fadd", daFABC},
	22: {"fsqrt", daFB}, 23: {"fsel", daFABC}, 25: {"fmul", daFABC},
	26: {"frsqrte", daFB}, 28: {"fmsub", daFABC}, 29: {"fmadd", daFABC},
	30: {"fnmsub", daFABC}, 31: {"fnmadd", daFABC},
}

// disasmBranch renders the branch forms with their target addresses.
func disasmBranch(addr, instr uint32) string {
	switch instr >> 26 {
	case 18:
		disp := instr & 0x03FFFFFC
		if instr&0x02000000 != 0 {
			disp |= 0xFC000000
		}
		target := disp
		if !instrAA(instr) {
			target += addr
		}
		return fmt.Sprintf("b%s%s 0x%X", suffixLK(instr), suffixAA(instr), target)
	case 16:
		disp := uint32(int32(int16(instr & 0xFFFC)))
		target := disp
		if !instrAA(instr) {
			target += addr
		}
		return fmt.Sprintf("bc%s%s %d,%d,0x%X", suffixLK(instr), suffixAA(instr),
			instrRD(instr), instrRA(instr), target)
	}
	return "?"
}

func suffixLK(instr uint32) string {
	if instrLK(instr) {
		return "l"
	}
	return ""
}

func suffixAA(instr uint32) string {
	if instrAA(instr) {
		return "a"
	}
	return ""
}

func suffixRc(name string, instr uint32) string {
	if instrRc(instr) {
		return name + "."
	}
	return name
}

func suffixOERc(name string, instr uint32) string {
	if instrOE(instr) {
		name += "o"
	}
	return suffixRc(name, instr)
}

func formatOperands(addr, instr uint32, e disasmEntry) string {
	rd, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	switch e.form {
	case daDRa:
		return fmt.Sprintf(" r%d,r%d", rd, ra)
	case daDRaRb:
		return fmt.Sprintf(" r%d,r%d,r%d", rd, ra, rb)
	case daSRaRb:
		return fmt.Sprintf(" r%d,r%d,r%d", ra, rd, rb)
	case daSRaSh:
		return fmt.Sprintf(" r%d,r%d,%d", ra, rd, rb)
	case daDRaSIMM:
		return fmt.Sprintf(" r%d,r%d,%d", rd, ra, instrSIMM(instr))
	case daSRaUIMM:
		return fmt.Sprintf(" r%d,r%d,0x%X", ra, rd, instrUIMM(instr))
	case daLoadD:
		return fmt.Sprintf(" r%d,%d(r%d)", rd, instrSIMM(instr), ra)
	case daLoadX:
		return fmt.Sprintf(" r%d,r%d,r%d", rd, ra, rb)
	case daFLoadD:
		return fmt.Sprintf(" f%d,%d(r%d)", rd, instrSIMM(instr), ra)
	case daFLoadX:
		return fmt.Sprintf(" f%d,r%d,r%d", rd, ra, rb)
	case daRot:
		return fmt.Sprintf(" r%d,r%d,%d,%d,%d", ra, rd, rb, (instr>>6)&31, (instr>>1)&31)
	case daRotRb:
		return fmt.Sprintf(" r%d,r%d,r%d,%d,%d", ra, rd, rb, (instr>>6)&31, (instr>>1)&31)
	case daCmp:
		return fmt.Sprintf(" cr%d,r%d,r%d", instrCRFD(instr), ra, rb)
	case daCmpI:
		return fmt.Sprintf(" cr%d,r%d,%d", instrCRFD(instr), ra, instrSIMM(instr))
	case daCmpU:
		return fmt.Sprintf(" cr%d,r%d,0x%X", instrCRFD(instr), ra, instrUIMM(instr))
	case daFABC:
		return fmt.Sprintf(" f%d,f%d,f%d,f%d", rd, ra, instrFRC(instr), rb)
	case daFB:
		return fmt.Sprintf(" f%d,f%d", rd, rb)
	case daFCmp:
		return fmt.Sprintf(" cr%d,f%d,f%d", instrCRFD(instr), ra, rb)
	case daCrOp:
		return fmt.Sprintf(" %d,%d,%d", rd, ra, rb)
	case daSPRD:
		return fmt.Sprintf(" r%d,%d", rd, instrSPRNum(instr))
	case daSPRS:
		return fmt.Sprintf(" %d,r%d", instrSPRNum(instr), rd)
	case daSRD:
		return fmt.Sprintf(" r%d,%d", rd, (instr>>16)&0xF)
	case daSRS:
		return fmt.Sprintf(" %d,r%d", (instr>>16)&0xF, rd)
	case daRbOnly:
		return fmt.Sprintf(" r%d,r%d", ra, rb)
	case daD, daS:
		return fmt.Sprintf(" r%d", rd)
	case daTrap:
		if instr>>26 == 3 {
			return fmt.Sprintf(" %d,r%d,%d", rd, ra, instrSIMM(instr))
		}
		return fmt.Sprintf(" %d,r%d,r%d", rd, ra, rb)
	}
	return ""
}

// disasmInstr renders one instruction word.
func disasmInstr(addr, instr uint32) string {
	op := instr >> 26
	switch op {
	case 16, 18:
		return disasmBranch(addr, instr)
	case 19:
		if e, ok := disasmOp19[(instr>>1)&0x3FF]; ok {
			name := e.name
			if name == "bclr" || name == "bcctr" {
				return fmt.Sprintf("%s%s %d,%d", name, suffixLK(instr),
					instrRD(instr), instrRA(instr))
			}
			return name + formatOperands(addr, instr, e)
		}
	case 31:
		if e, ok := disasmOp31[(instr>>1)&0x3FF]; ok {
			return suffixOERc(e.name, instr&^0x400) + formatOperands(addr, instr, e)
		}
		// XO-form entries carry OE inside the table index.
		if e, ok := disasmOp31[(instr>>1)&0x1FF]; ok {
			return suffixOERc(e.name, instr) + formatOperands(addr, instr, e)
		}
	case 59:
		if e, ok := disasmOp59[(instr>>1)&0x1F]; ok {
			return suffixRc(e.name, instr) + formatOperands(addr, instr, e)
		}
	case 63:
		if e, ok := disasmOp63X[(instr>>1)&0x3FF]; ok {
			return suffixRc(e.name, instr) + formatOperands(addr, instr, e)
		}
		if e, ok := disasmOp63A[(instr>>1)&0x1F]; ok {
			return suffixRc(e.name, instr) + formatOperands(addr, instr, e)
		}
	default:
		if e, ok := disasmPrimary[op]; ok {
			return e.name + formatOperands(addr, instr, e)
		}
	}
	return fmt.Sprintf(".long 0x%08X", instr)
}

// DisassembleOne disassembles the instruction at addr through the debug
// read path, so it works on translated addresses without faulting the
// guest.
func (cpu *PPCCPU) DisassembleOne(addr uint32) DisassembledLine {
	word, err := cpu.MemReadDbg(addr, 4)
	if err != nil {
		return DisassembledLine{
			Address: uint64(addr), HexBytes: "????????",
			Mnemonic: "<unreadable>", Size: 4,
		}
	}
	instr := uint32(word)
	return DisassembledLine{
		Address:  uint64(addr),
		HexBytes: fmt.Sprintf("%08X", instr),
		Mnemonic: disasmInstr(addr, instr),
		Size:     4,
	}
}
