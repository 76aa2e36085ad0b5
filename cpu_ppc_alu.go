// cpu_ppc_alu.go - PowerPC fixed-point, logical, rotate/shift and POWER handlers

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

import "math/bits"

// ------------------------------------------------------------------------------
// Flag helpers
// ------------------------------------------------------------------------------

// updateCR0 sets CR0 {LT,GT,EQ,SO} from the signed 32-bit result, copying
// XER[SO] into CR0[SO].
func (cpu *PPCCPU) updateCR0(res uint32) {
	var crf uint32
	switch {
	case int32(res) < 0:
		crf = CR_LT >> 28
	case int32(res) > 0:
		crf = CR_GT >> 28
	default:
		crf = CR_EQ >> 28
	}
	if cpu.SPR[SPR_XER]&XER_SO != 0 {
		crf |= CR_SO >> 28
	}
	cpu.WriteCRField(0, crf)
}

func (cpu *PPCCPU) setCarry(ca bool) {
	if ca {
		cpu.SPR[SPR_XER] |= XER_CA
	} else {
		cpu.SPR[SPR_XER] &^= XER_CA
	}
}

// setOverflow updates XER[OV] and the sticky XER[SO].
func (cpu *PPCCPU) setOverflow(ov bool) {
	if ov {
		cpu.SPR[SPR_XER] |= XER_OV | XER_SO
	} else {
		cpu.SPR[SPR_XER] &^= XER_OV
	}
}

// rotMask builds the 32-bit mask selected by the MSB-first (MB,ME) pair.
// MB > ME produces the wrapped (split) mask.
func rotMask(mb, me uint32) uint32 {
	m1 := uint32(0xFFFFFFFF) >> mb
	m2 := uint32(0xFFFFFFFF) << (31 - me)
	if mb <= me {
		return m1 & m2
	}
	return m1 | m2
}

// addWithCarryOV is the common core of the add family: rd = a + b + cin,
// with carry-out-of-bit-31 and signed overflow.
func addWithCarryOV(a, b uint32, cin uint32) (res uint32, ca, ov bool) {
	sum := uint64(a) + uint64(b) + uint64(cin)
	res = uint32(sum)
	ca = sum > 0xFFFFFFFF
	sres := int64(int32(a)) + int64(int32(b)) + int64(cin)
	ov = sres != int64(int32(res))
	return
}

// ------------------------------------------------------------------------------
// Add/subtract family
// ------------------------------------------------------------------------------

func (cpu *PPCCPU) ppcAddi(instr uint32, shifted bool) {
	rd, ra := instrRD(instr), instrRA(instr)
	imm := uint32(instrSIMM(instr))
	if shifted {
		imm <<= 16
	}
	if ra == 0 {
		cpu.GPR[rd] = imm
	} else {
		cpu.GPR[rd] = cpu.GPR[ra] + imm
	}
}

func (cpu *PPCCPU) ppcAddic(instr uint32, rec bool) {
	rd, ra := instrRD(instr), instrRA(instr)
	res, ca, _ := addWithCarryOV(cpu.GPR[ra], uint32(instrSIMM(instr)), 0)
	cpu.GPR[rd] = res
	cpu.setCarry(ca)
	if rec {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcAdd(instr uint32) {
	rd, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	res, _, ov := addWithCarryOV(cpu.GPR[ra], cpu.GPR[rb], 0)
	cpu.GPR[rd] = res
	if instrOE(instr) {
		cpu.setOverflow(ov)
	}
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcAddc(instr uint32) {
	rd, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	res, ca, ov := addWithCarryOV(cpu.GPR[ra], cpu.GPR[rb], 0)
	cpu.GPR[rd] = res
	cpu.setCarry(ca)
	if instrOE(instr) {
		cpu.setOverflow(ov)
	}
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcAdde(instr uint32) {
	rd, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	cin := (cpu.SPR[SPR_XER] >> 29) & 1
	res, ca, ov := addWithCarryOV(cpu.GPR[ra], cpu.GPR[rb], cin)
	cpu.GPR[rd] = res
	cpu.setCarry(ca)
	if instrOE(instr) {
		cpu.setOverflow(ov)
	}
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcAddme(instr uint32) {
	rd, ra := instrRD(instr), instrRA(instr)
	cin := (cpu.SPR[SPR_XER] >> 29) & 1
	res, ca, ov := addWithCarryOV(cpu.GPR[ra], 0xFFFFFFFF, cin)
	cpu.GPR[rd] = res
	cpu.setCarry(ca)
	if instrOE(instr) {
		cpu.setOverflow(ov)
	}
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcAddze(instr uint32) {
	rd, ra := instrRD(instr), instrRA(instr)
	cin := (cpu.SPR[SPR_XER] >> 29) & 1
	res, ca, ov := addWithCarryOV(cpu.GPR[ra], 0, cin)
	cpu.GPR[rd] = res
	cpu.setCarry(ca)
	if instrOE(instr) {
		cpu.setOverflow(ov)
	}
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcSubfic(instr uint32) {
	rd, ra := instrRD(instr), instrRA(instr)
	res, ca, _ := addWithCarryOV(^cpu.GPR[ra], uint32(instrSIMM(instr)), 1)
	cpu.GPR[rd] = res
	cpu.setCarry(ca)
}

func (cpu *PPCCPU) ppcSubf(instr uint32) {
	rd, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	res, _, ov := addWithCarryOV(^cpu.GPR[ra], cpu.GPR[rb], 1)
	cpu.GPR[rd] = res
	if instrOE(instr) {
		cpu.setOverflow(ov)
	}
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcSubfc(instr uint32) {
	rd, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	res, ca, ov := addWithCarryOV(^cpu.GPR[ra], cpu.GPR[rb], 1)
	cpu.GPR[rd] = res
	cpu.setCarry(ca)
	if instrOE(instr) {
		cpu.setOverflow(ov)
	}
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcSubfe(instr uint32) {
	rd, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	cin := (cpu.SPR[SPR_XER] >> 29) & 1
	res, ca, ov := addWithCarryOV(^cpu.GPR[ra], cpu.GPR[rb], cin)
	cpu.GPR[rd] = res
	cpu.setCarry(ca)
	if instrOE(instr) {
		cpu.setOverflow(ov)
	}
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcSubfme(instr uint32) {
	rd, ra := instrRD(instr), instrRA(instr)
	cin := (cpu.SPR[SPR_XER] >> 29) & 1
	res, ca, ov := addWithCarryOV(^cpu.GPR[ra], 0xFFFFFFFF, cin)
	cpu.GPR[rd] = res
	cpu.setCarry(ca)
	if instrOE(instr) {
		cpu.setOverflow(ov)
	}
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcSubfze(instr uint32) {
	rd, ra := instrRD(instr), instrRA(instr)
	cin := (cpu.SPR[SPR_XER] >> 29) & 1
	res, ca, ov := addWithCarryOV(^cpu.GPR[ra], 0, cin)
	cpu.GPR[rd] = res
	cpu.setCarry(ca)
	if instrOE(instr) {
		cpu.setOverflow(ov)
	}
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcNeg(instr uint32) {
	rd, ra := instrRD(instr), instrRA(instr)
	val := cpu.GPR[ra]
	res := -val
	cpu.GPR[rd] = res
	if instrOE(instr) {
		cpu.setOverflow(val == 0x80000000)
	}
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

// ------------------------------------------------------------------------------
// Multiply and divide
// ------------------------------------------------------------------------------

func (cpu *PPCCPU) ppcMulli(instr uint32) {
	rd, ra := instrRD(instr), instrRA(instr)
	cpu.GPR[rd] = uint32(int64(int32(cpu.GPR[ra])) * int64(instrSIMM(instr)))
}

func (cpu *PPCCPU) ppcMullw(instr uint32) {
	rd, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	prod := int64(int32(cpu.GPR[ra])) * int64(int32(cpu.GPR[rb]))
	res := uint32(prod)
	cpu.GPR[rd] = res
	if instrOE(instr) {
		cpu.setOverflow(prod != int64(int32(res)))
	}
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcMulhw(instr uint32) {
	rd, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	prod := int64(int32(cpu.GPR[ra])) * int64(int32(cpu.GPR[rb]))
	res := uint32(uint64(prod) >> 32)
	cpu.GPR[rd] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcMulhwu(instr uint32) {
	rd, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	res := uint32(uint64(cpu.GPR[ra]) * uint64(cpu.GPR[rb]) >> 32)
	cpu.GPR[rd] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcDivw(instr uint32) {
	rd, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	dividend := int32(cpu.GPR[ra])
	divisor := int32(cpu.GPR[rb])
	if divisor == 0 || (dividend == -0x80000000 && divisor == -1) {
		cpu.GPR[rd] = 0 // architecturally undefined
		if instrOE(instr) {
			cpu.setOverflow(true)
		}
		if instrRc(instr) {
			cpu.updateCR0(cpu.GPR[rd])
		}
		return
	}
	res := uint32(dividend / divisor)
	cpu.GPR[rd] = res
	if instrOE(instr) {
		cpu.setOverflow(false)
	}
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcDivwu(instr uint32) {
	rd, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	divisor := cpu.GPR[rb]
	if divisor == 0 {
		cpu.GPR[rd] = 0 // architecturally undefined
		if instrOE(instr) {
			cpu.setOverflow(true)
		}
		if instrRc(instr) {
			cpu.updateCR0(cpu.GPR[rd])
		}
		return
	}
	res := cpu.GPR[ra] / divisor
	cpu.GPR[rd] = res
	if instrOE(instr) {
		cpu.setOverflow(false)
	}
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

// ------------------------------------------------------------------------------
// Compare
// ------------------------------------------------------------------------------

func (cpu *PPCCPU) cmpResult(lt, gt bool) uint32 {
	var crf uint32
	switch {
	case lt:
		crf = CR_LT >> 28
	case gt:
		crf = CR_GT >> 28
	default:
		crf = CR_EQ >> 28
	}
	if cpu.SPR[SPR_XER]&XER_SO != 0 {
		crf |= CR_SO >> 28
	}
	return crf
}

func (cpu *PPCCPU) ppcCmpi(instr uint32) {
	a := int32(cpu.GPR[instrRA(instr)])
	b := instrSIMM(instr)
	cpu.WriteCRField(instrCRFD(instr), cpu.cmpResult(a < b, a > b))
}

func (cpu *PPCCPU) ppcCmpli(instr uint32) {
	a := cpu.GPR[instrRA(instr)]
	b := instrUIMM(instr)
	cpu.WriteCRField(instrCRFD(instr), cpu.cmpResult(a < b, a > b))
}

func (cpu *PPCCPU) ppcCmp(instr uint32) {
	a := int32(cpu.GPR[instrRA(instr)])
	b := int32(cpu.GPR[instrRB(instr)])
	cpu.WriteCRField(instrCRFD(instr), cpu.cmpResult(a < b, a > b))
}

func (cpu *PPCCPU) ppcCmpl(instr uint32) {
	a := cpu.GPR[instrRA(instr)]
	b := cpu.GPR[instrRB(instr)]
	cpu.WriteCRField(instrCRFD(instr), cpu.cmpResult(a < b, a > b))
}

// ------------------------------------------------------------------------------
// Logical
// ------------------------------------------------------------------------------

// ppcLogical covers the eight X-form boolean ops; rS is in the rD slot.
func (cpu *PPCCPU) ppcLogical(instr uint32, op int) {
	rs, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	s, b := cpu.GPR[rs], cpu.GPR[rb]
	var res uint32
	switch op {
	case logAnd:
		res = s & b
	case logAndc:
		res = s &^ b
	case logOr:
		res = s | b
	case logOrc:
		res = s | ^b
	case logXor:
		res = s ^ b
	case logNand:
		res = ^(s & b)
	case logNor:
		res = ^(s | b)
	case logEqv:
		res = ^(s ^ b)
	}
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcOri(instr uint32, shifted bool) {
	rs, ra := instrRD(instr), instrRA(instr)
	imm := instrUIMM(instr)
	if shifted {
		imm <<= 16
	}
	cpu.GPR[ra] = cpu.GPR[rs] | imm
}

func (cpu *PPCCPU) ppcXori(instr uint32, shifted bool) {
	rs, ra := instrRD(instr), instrRA(instr)
	imm := instrUIMM(instr)
	if shifted {
		imm <<= 16
	}
	cpu.GPR[ra] = cpu.GPR[rs] ^ imm
}

func (cpu *PPCCPU) ppcAndiRc(instr uint32, shifted bool) {
	rs, ra := instrRD(instr), instrRA(instr)
	imm := instrUIMM(instr)
	if shifted {
		imm <<= 16
	}
	res := cpu.GPR[rs] & imm
	cpu.GPR[ra] = res
	cpu.updateCR0(res)
}

func (cpu *PPCCPU) ppcExtsb(instr uint32) {
	rs, ra := instrRD(instr), instrRA(instr)
	res := uint32(int32(int8(cpu.GPR[rs])))
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcExtsh(instr uint32) {
	rs, ra := instrRD(instr), instrRA(instr)
	res := uint32(int32(int16(cpu.GPR[rs])))
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcCntlzw(instr uint32) {
	rs, ra := instrRD(instr), instrRA(instr)
	res := uint32(bits.LeadingZeros32(cpu.GPR[rs]))
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

// ------------------------------------------------------------------------------
// Rotate and shift
// ------------------------------------------------------------------------------

func (cpu *PPCCPU) ppcRlwinm(instr uint32) {
	rs, ra := instrRD(instr), instrRA(instr)
	sh := uint32(instrRB(instr))
	mb := (instr >> 6) & 31
	me := (instr >> 1) & 31
	res := bits.RotateLeft32(cpu.GPR[rs], int(sh)) & rotMask(mb, me)
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcRlwimi(instr uint32) {
	rs, ra := instrRD(instr), instrRA(instr)
	sh := uint32(instrRB(instr))
	mb := (instr >> 6) & 31
	me := (instr >> 1) & 31
	m := rotMask(mb, me)
	res := (bits.RotateLeft32(cpu.GPR[rs], int(sh)) & m) | (cpu.GPR[ra] &^ m)
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcRlwnm(instr uint32) {
	rs, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	mb := (instr >> 6) & 31
	me := (instr >> 1) & 31
	res := bits.RotateLeft32(cpu.GPR[rs], int(cpu.GPR[rb]&31)) & rotMask(mb, me)
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcSlw(instr uint32) {
	rs, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	sh := cpu.GPR[rb] & 0x3F
	var res uint32
	if sh < 32 {
		res = cpu.GPR[rs] << sh
	}
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcSrw(instr uint32) {
	rs, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	sh := cpu.GPR[rb] & 0x3F
	var res uint32
	if sh < 32 {
		res = cpu.GPR[rs] >> sh
	}
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcSrawi(instr uint32) {
	rs, ra := instrRD(instr), instrRA(instr)
	sh := uint32(instrRB(instr))
	val := cpu.GPR[rs]
	res := uint32(int32(val) >> sh)
	cpu.GPR[ra] = res
	cpu.setCarry(int32(val) < 0 && val&(1<<sh-1) != 0)
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) ppcSraw(instr uint32) {
	rs, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	sh := cpu.GPR[rb] & 0x3F
	val := cpu.GPR[rs]
	var res uint32
	var ca bool
	if sh >= 32 {
		res = uint32(int32(val) >> 31)
		ca = int32(val) < 0
	} else {
		res = uint32(int32(val) >> sh)
		ca = int32(val) < 0 && val&(1<<sh-1) != 0
	}
	cpu.GPR[ra] = res
	cpu.setCarry(ca)
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

// ------------------------------------------------------------------------------
// Traps and XER transfers
// ------------------------------------------------------------------------------

func (cpu *PPCCPU) trapCondition(to int, a, b uint32) bool {
	return (to&0x10 != 0 && int32(a) < int32(b)) ||
		(to&0x08 != 0 && int32(a) > int32(b)) ||
		(to&0x04 != 0 && a == b) ||
		(to&0x02 != 0 && a < b) ||
		(to&0x01 != 0 && a > b)
}

func (cpu *PPCCPU) ppcTwi(instr uint32) {
	if cpu.trapCondition(instrRD(instr), cpu.GPR[instrRA(instr)], uint32(instrSIMM(instr))) {
		cpu.raiseException(ExcProgram, SRR1_TRAP)
	}
}

func (cpu *PPCCPU) ppcTw(instr uint32) {
	if cpu.trapCondition(instrRD(instr), cpu.GPR[instrRA(instr)], cpu.GPR[instrRB(instr)]) {
		cpu.raiseException(ExcProgram, SRR1_TRAP)
	}
}

// mcrxr copies XER[0..3] into a CR field and clears them.
func (cpu *PPCCPU) ppcMcrxr(instr uint32) {
	cpu.WriteCRField(instrCRFD(instr), cpu.SPR[SPR_XER]>>28)
	cpu.SPR[SPR_XER] &= 0x0FFFFFFF
}

// ------------------------------------------------------------------------------
// POWER (601 compatibility) opcodes
// ------------------------------------------------------------------------------

func (cpu *PPCCPU) powerAbs(instr uint32) {
	rd, ra := instrRD(instr), instrRA(instr)
	val := cpu.GPR[ra]
	res := val
	if int32(val) < 0 {
		res = -val
	}
	cpu.GPR[rd] = res
	if instrOE(instr) {
		cpu.setOverflow(val == 0x80000000)
	}
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) powerNabs(instr uint32) {
	rd, ra := instrRD(instr), instrRA(instr)
	val := cpu.GPR[ra]
	res := val
	if int32(val) > 0 {
		res = -val
	}
	cpu.GPR[rd] = res
	if instrOE(instr) {
		cpu.setOverflow(false)
	}
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) powerDoz(instr uint32) {
	rd, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	diff := int64(int32(cpu.GPR[rb])) - int64(int32(cpu.GPR[ra]))
	var res uint32
	if diff > 0 {
		res = uint32(diff)
	}
	cpu.GPR[rd] = res
	if instrOE(instr) {
		cpu.setOverflow(diff > 0x7FFFFFFF)
	}
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) powerDozi(instr uint32) {
	rd, ra := instrRD(instr), instrRA(instr)
	diff := int64(instrSIMM(instr)) - int64(int32(cpu.GPR[ra]))
	var res uint32
	if diff > 0 {
		res = uint32(diff)
	}
	cpu.GPR[rd] = res
}

// mul leaves the low half of the product in MQ and the high half in rD.
func (cpu *PPCCPU) powerMul(instr uint32) {
	rd, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	prod := int64(int32(cpu.GPR[ra])) * int64(int32(cpu.GPR[rb]))
	cpu.SPR[SPR_MQ] = uint32(prod)
	cpu.GPR[rd] = uint32(uint64(prod) >> 32)
	if instrOE(instr) {
		cpu.setOverflow(prod != int64(int32(prod)))
	}
	if instrRc(instr) {
		cpu.updateCR0(uint32(prod))
	}
}

// div divides the 64-bit [rA||MQ] by rB; quotient to rD, remainder to MQ.
func (cpu *PPCCPU) powerDiv(instr uint32) {
	rd, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	dividend := int64(cpu.GPR[ra])<<32 | int64(cpu.SPR[SPR_MQ])
	divisor := int64(int32(cpu.GPR[rb]))
	if divisor == 0 {
		cpu.GPR[rd] = 0
		if instrOE(instr) {
			cpu.setOverflow(true)
		}
		if instrRc(instr) {
			cpu.updateCR0(0)
		}
		return
	}
	quot := dividend / divisor
	cpu.GPR[rd] = uint32(quot)
	cpu.SPR[SPR_MQ] = uint32(dividend % divisor)
	if instrOE(instr) {
		cpu.setOverflow(quot != int64(int32(quot)))
	}
	if instrRc(instr) {
		cpu.updateCR0(uint32(quot))
	}
}

// divs is the short divide: rA / rB, remainder to MQ.
func (cpu *PPCCPU) powerDivs(instr uint32) {
	rd, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	dividend := int32(cpu.GPR[ra])
	divisor := int32(cpu.GPR[rb])
	if divisor == 0 || (dividend == -0x80000000 && divisor == -1) {
		cpu.GPR[rd] = 0
		if instrOE(instr) {
			cpu.setOverflow(true)
		}
		if instrRc(instr) {
			cpu.updateCR0(0)
		}
		return
	}
	cpu.GPR[rd] = uint32(dividend / divisor)
	cpu.SPR[SPR_MQ] = uint32(dividend % divisor)
	if instrOE(instr) {
		cpu.setOverflow(false)
	}
	if instrRc(instr) {
		cpu.updateCR0(cpu.GPR[rd])
	}
}

// clcs reports the cache line size for every class the 601 defines.
func (cpu *PPCCPU) powerClcs(instr uint32) {
	cpu.GPR[instrRD(instr)] = 64
}

func (cpu *PPCCPU) powerRlmi(instr uint32) {
	rs, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	mb := (instr >> 6) & 31
	me := (instr >> 1) & 31
	m := rotMask(mb, me)
	rot := bits.RotateLeft32(cpu.GPR[rs], int(cpu.GPR[rb]&31))
	res := (rot & m) | (cpu.GPR[ra] &^ m)
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) powerMaskg(instr uint32) {
	rs, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	res := rotMask(cpu.GPR[rs]&31, cpu.GPR[rb]&31)
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) powerMaskir(instr uint32) {
	rs, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	res := (cpu.GPR[rs] & cpu.GPR[rb]) | (cpu.GPR[ra] &^ cpu.GPR[rb])
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

// rrib rotates the sign bit of rS right by rB and inserts it into rA.
func (cpu *PPCCPU) powerRrib(instr uint32) {
	rs, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	sh := cpu.GPR[rb] & 31
	bit := uint32(0x80000000) >> sh
	res := (cpu.GPR[ra] &^ bit) | ((cpu.GPR[rs] & 0x80000000) >> sh)
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

// The POWER long-shift family threads MQ through the shifts.

func (cpu *PPCCPU) powerSle(instr uint32) {
	rs, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	sh := cpu.GPR[rb] & 31
	rot := bits.RotateLeft32(cpu.GPR[rs], int(sh))
	cpu.SPR[SPR_MQ] = rot
	res := cpu.GPR[rs] << sh
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) powerSleq(instr uint32) {
	rs, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	sh := cpu.GPR[rb] & 31
	rot := bits.RotateLeft32(cpu.GPR[rs], int(sh))
	m := uint32(0xFFFFFFFF) << sh
	res := (rot & m) | (cpu.SPR[SPR_MQ] &^ m)
	cpu.SPR[SPR_MQ] = rot
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) powerSliq(instr uint32) {
	rs, ra := instrRD(instr), instrRA(instr)
	sh := uint32(instrRB(instr))
	cpu.SPR[SPR_MQ] = bits.RotateLeft32(cpu.GPR[rs], int(sh))
	res := cpu.GPR[rs] << sh
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) powerSlliq(instr uint32) {
	rs, ra := instrRD(instr), instrRA(instr)
	sh := uint32(instrRB(instr))
	rot := bits.RotateLeft32(cpu.GPR[rs], int(sh))
	m := uint32(0xFFFFFFFF) << sh
	res := (rot & m) | (cpu.SPR[SPR_MQ] &^ m)
	cpu.SPR[SPR_MQ] = rot
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) powerSllq(instr uint32) {
	rs, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	n := cpu.GPR[rb] & 31
	rot := bits.RotateLeft32(cpu.GPR[rs], int(n))
	m := uint32(0xFFFFFFFF) << n
	var res uint32
	if cpu.GPR[rb]&0x20 == 0 {
		res = (rot & m) | (cpu.SPR[SPR_MQ] &^ m)
	} else {
		res = cpu.SPR[SPR_MQ] & m
	}
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) powerSlq(instr uint32) {
	rs, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	n := cpu.GPR[rb] & 31
	cpu.SPR[SPR_MQ] = bits.RotateLeft32(cpu.GPR[rs], int(n))
	var res uint32
	if cpu.GPR[rb]&0x20 == 0 {
		res = cpu.GPR[rs] << n
	}
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) powerSrq(instr uint32) {
	rs, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	n := cpu.GPR[rb] & 31
	cpu.SPR[SPR_MQ] = bits.RotateLeft32(cpu.GPR[rs], -int(n))
	var res uint32
	if cpu.GPR[rb]&0x20 == 0 {
		res = cpu.GPR[rs] >> n
	}
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) powerSre(instr uint32) {
	rs, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	n := cpu.GPR[rb] & 31
	cpu.SPR[SPR_MQ] = bits.RotateLeft32(cpu.GPR[rs], -int(n))
	res := cpu.GPR[rs] >> n
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) powerSrea(instr uint32) {
	rs, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	n := cpu.GPR[rb] & 31
	val := cpu.GPR[rs]
	cpu.SPR[SPR_MQ] = bits.RotateLeft32(val, -int(n))
	res := uint32(int32(val) >> n)
	cpu.GPR[ra] = res
	cpu.setCarry(int32(val) < 0 && n != 0 && val&(1<<n-1) != 0)
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) powerSreq(instr uint32) {
	rs, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	n := cpu.GPR[rb] & 31
	rot := bits.RotateLeft32(cpu.GPR[rs], -int(n))
	m := uint32(0xFFFFFFFF) >> n
	res := (rot & m) | (cpu.SPR[SPR_MQ] &^ m)
	cpu.SPR[SPR_MQ] = rot
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) powerSriq(instr uint32) {
	rs, ra := instrRD(instr), instrRA(instr)
	sh := uint32(instrRB(instr))
	cpu.SPR[SPR_MQ] = bits.RotateLeft32(cpu.GPR[rs], -int(sh))
	res := cpu.GPR[rs] >> sh
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) powerSrliq(instr uint32) {
	rs, ra := instrRD(instr), instrRA(instr)
	sh := uint32(instrRB(instr))
	rot := bits.RotateLeft32(cpu.GPR[rs], -int(sh))
	m := uint32(0xFFFFFFFF) >> sh
	res := (rot & m) | (cpu.SPR[SPR_MQ] &^ m)
	cpu.SPR[SPR_MQ] = rot
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) powerSrlq(instr uint32) {
	rs, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	n := cpu.GPR[rb] & 31
	rot := bits.RotateLeft32(cpu.GPR[rs], -int(n))
	m := uint32(0xFFFFFFFF) >> n
	var res uint32
	if cpu.GPR[rb]&0x20 == 0 {
		res = (rot & m) | (cpu.SPR[SPR_MQ] &^ m)
	} else {
		res = cpu.SPR[SPR_MQ] & m
	}
	cpu.GPR[ra] = res
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) powerSraq(instr uint32) {
	rs, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	n := cpu.GPR[rb] & 31
	val := cpu.GPR[rs]
	cpu.SPR[SPR_MQ] = bits.RotateLeft32(val, -int(n))
	var res uint32
	var ca bool
	if cpu.GPR[rb]&0x20 == 0 {
		res = uint32(int32(val) >> n)
		ca = int32(val) < 0 && n != 0 && val&(1<<n-1) != 0
	} else {
		res = uint32(int32(val) >> 31)
		ca = int32(val) < 0
	}
	cpu.GPR[ra] = res
	cpu.setCarry(ca)
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

func (cpu *PPCCPU) powerSraiq(instr uint32) {
	rs, ra := instrRD(instr), instrRA(instr)
	sh := uint32(instrRB(instr))
	val := cpu.GPR[rs]
	cpu.SPR[SPR_MQ] = bits.RotateLeft32(val, -int(sh))
	res := uint32(int32(val) >> sh)
	cpu.GPR[ra] = res
	cpu.setCarry(int32(val) < 0 && sh != 0 && val&(1<<sh-1) != 0)
	if instrRc(instr) {
		cpu.updateCR0(res)
	}
}

// lscbx loads XER[25..31] bytes, stopping early on the XER match byte.
func (cpu *PPCCPU) powerLscbx(instr uint32) {
	rd, ra, rb := instrRD(instr), instrRA(instr), instrRB(instr)
	ea := cpu.GPR[rb]
	if ra != 0 {
		ea += cpu.GPR[ra]
	}
	count := int(cpu.SPR[SPR_XER] & 0x7F)
	match := uint8(cpu.SPR[SPR_XER] >> 8)
	reg := rd
	loaded := 0
	matched := false
	for i := 0; i < count; i++ {
		b := cpu.ReadVMem8(ea)
		shift := uint(24 - (i%4)*8)
		if i%4 == 0 {
			cpu.GPR[reg] = 0
		}
		cpu.GPR[reg] |= uint32(b) << shift
		loaded++
		ea++
		if b == match {
			matched = true
			break
		}
		if i%4 == 3 {
			reg = (reg + 1) & 31
		}
	}
	cpu.SPR[SPR_XER] = (cpu.SPR[SPR_XER] &^ 0x7F) | uint32(loaded)
	if instrRc(instr) {
		crf := uint32(0)
		if matched {
			crf = CR_EQ >> 28
		}
		if cpu.SPR[SPR_XER]&XER_SO != 0 {
			crf |= CR_SO >> 28
		}
		cpu.WriteCRField(0, crf)
	}
}
