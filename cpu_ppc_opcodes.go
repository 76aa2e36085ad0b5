// cpu_ppc_opcodes.go - PowerPC instruction decode and dispatch tables

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

/*
cpu_ppc_opcodes.go - Decode and Dispatch

Primary opcode is bits 0..5 (MSB-first numbering, i.e. instr>>26). Four
primary slots fan out to extended tables: opcode 19 (branch/CR/system,
10-bit XO), opcode 31 (fixed-point X/XO forms, 10-bit XO), opcode 59
(single-precision FP, 5-bit A-form XO) and opcode 63 (double-precision FP,
10-bit XO with the A-form arithmetic replicated across the FRC positions).

XO-form arithmetic carries the OE bit inside the 10-bit XO field, so each
such handler is registered at xo and xo|0x200. Handlers read their own
Rc/OE/LK/AA bits from the instruction word; the only decode-time
parameterisation is the 601 toggle, which swaps POWER-era opcodes in and
out of the tables when the machine is built.
*/

package main

type ppcHandler func(cpu *PPCCPU, instr uint32)

type ppcOpcodeTables struct {
	primary [64]ppcHandler
	op19    [1024]ppcHandler
	op31    [1024]ppcHandler
	op59    [32]ppcHandler
	op63    [1024]ppcHandler
}

// Logical-op selectors for the shared ppcLogical handler.
const (
	logAnd = iota
	logAndc
	logOr
	logOrc
	logXor
	logNand
	logNor
	logEqv
)

// CR-bit-op selectors for the shared ppcCrOp handler.
const (
	crOpAnd = iota
	crOpAndc
	crOpOr
	crOpOrc
	crOpXor
	crOpNand
	crOpNor
	crOpEqv
)

// Instruction field helpers. PowerPC manuals number bits MSB-first; these
// work on the natural LSB-first view.
func instrRD(i uint32) int    { return int(i>>21) & 31 }
func instrRA(i uint32) int    { return int(i>>16) & 31 }
func instrRB(i uint32) int    { return int(i>>11) & 31 }
func instrFRC(i uint32) int    { return int(i>>6) & 31 } // A-form FRC
func instrSIMM(i uint32) int32 { return int32(int16(i)) }
func instrUIMM(i uint32) uint32 { return uint32(uint16(i)) }
func instrRc(i uint32) bool   { return i&1 != 0 }
func instrOE(i uint32) bool   { return i&0x400 != 0 }
func instrLK(i uint32) bool   { return i&1 != 0 }
func instrAA(i uint32) bool   { return i&2 != 0 }
func instrCRFD(i uint32) int  { return int(i>>23) & 7 }

func (cpu *PPCCPU) dispatch(instr uint32) {
	h := cpu.opTables.primary[instr>>26]
	if h == nil {
		cpu.ppcIllegalOp(instr)
		return
	}
	h(cpu, instr)
}

func dispatchOp19(cpu *PPCCPU, instr uint32) {
	h := cpu.opTables.op19[(instr>>1)&0x3FF]
	if h == nil {
		cpu.ppcIllegalOp(instr)
		return
	}
	h(cpu, instr)
}

func dispatchOp31(cpu *PPCCPU, instr uint32) {
	h := cpu.opTables.op31[(instr>>1)&0x3FF]
	if h == nil {
		cpu.ppcIllegalOp(instr)
		return
	}
	h(cpu, instr)
}

func dispatchOp59(cpu *PPCCPU, instr uint32) {
	h := cpu.opTables.op59[(instr>>1)&0x1F]
	if h == nil {
		cpu.ppcIllegalOp(instr)
		return
	}
	h(cpu, instr)
}

func dispatchOp63(cpu *PPCCPU, instr uint32) {
	h := cpu.opTables.op63[(instr>>1)&0x3FF]
	if h == nil {
		cpu.ppcIllegalOp(instr)
		return
	}
	h(cpu, instr)
}

// buildOpcodeTables constructs the dispatch tables for the selected
// processor personality.
func buildOpcodeTables(is601, isAltiVec bool) *ppcOpcodeTables {
	t := &ppcOpcodeTables{}

	p := func(op uint32, h ppcHandler) { t.primary[op] = h }
	x19 := func(xo uint32, h ppcHandler) { t.op19[xo] = h }
	x31 := func(xo uint32, h ppcHandler) { t.op31[xo] = h }
	// XO-form: OE lives in bit 10 of the extended opcode field.
	xo31 := func(xo uint32, h ppcHandler) { t.op31[xo] = h; t.op31[xo|0x200] = h }
	x59 := func(xo uint32, h ppcHandler) { t.op59[xo] = h }
	x63 := func(xo uint32, h ppcHandler) { t.op63[xo] = h }
	// A-form: bits 21..25 are FRC, so the 5-bit XO repeats through the table.
	a63 := func(axo uint32, h ppcHandler) {
		for frc := uint32(0); frc < 32; frc++ {
			t.op63[frc<<5|axo] = h
		}
	}

	// Primary table
	p(3, (*PPCCPU).ppcTwi)
	p(7, (*PPCCPU).ppcMulli)
	p(8, (*PPCCPU).ppcSubfic)
	p(10, (*PPCCPU).ppcCmpli)
	p(11, (*PPCCPU).ppcCmpi)
	p(12, func(c *PPCCPU, i uint32) { c.ppcAddic(i, false) })
	p(13, func(c *PPCCPU, i uint32) { c.ppcAddic(i, true) })
	p(14, func(c *PPCCPU, i uint32) { c.ppcAddi(i, false) })
	p(15, func(c *PPCCPU, i uint32) { c.ppcAddi(i, true) })
	p(16, (*PPCCPU).ppcBc)
	p(17, (*PPCCPU).ppcSc)
	p(18, (*PPCCPU).ppcB)
	p(19, dispatchOp19)
	p(20, (*PPCCPU).ppcRlwimi)
	p(21, (*PPCCPU).ppcRlwinm)
	p(23, (*PPCCPU).ppcRlwnm)
	p(24, func(c *PPCCPU, i uint32) { c.ppcOri(i, false) })
	p(25, func(c *PPCCPU, i uint32) { c.ppcOri(i, true) })
	p(26, func(c *PPCCPU, i uint32) { c.ppcXori(i, false) })
	p(27, func(c *PPCCPU, i uint32) { c.ppcXori(i, true) })
	p(28, func(c *PPCCPU, i uint32) { c.ppcAndiRc(i, false) })
	p(29, func(c *PPCCPU, i uint32) { c.ppcAndiRc(i, true) })
	p(31, dispatchOp31)
	p(32, (*PPCCPU).ppcLwz)
	p(33, (*PPCCPU).ppcLwzu)
	p(34, (*PPCCPU).ppcLbz)
	p(35, (*PPCCPU).ppcLbzu)
	p(36, (*PPCCPU).ppcStw)
	p(37, (*PPCCPU).ppcStwu)
	p(38, (*PPCCPU).ppcStb)
	p(39, (*PPCCPU).ppcStbu)
	p(40, (*PPCCPU).ppcLhz)
	p(41, (*PPCCPU).ppcLhzu)
	p(42, (*PPCCPU).ppcLha)
	p(43, (*PPCCPU).ppcLhau)
	p(44, (*PPCCPU).ppcSth)
	p(45, (*PPCCPU).ppcSthu)
	p(46, (*PPCCPU).ppcLmw)
	p(47, (*PPCCPU).ppcStmw)
	p(48, (*PPCCPU).ppcLfs)
	p(49, (*PPCCPU).ppcLfsu)
	p(50, (*PPCCPU).ppcLfd)
	p(51, (*PPCCPU).ppcLfdu)
	p(52, (*PPCCPU).ppcStfs)
	p(53, (*PPCCPU).ppcStfsu)
	p(54, (*PPCCPU).ppcStfd)
	p(55, (*PPCCPU).ppcStfdu)
	p(59, dispatchOp59)
	p(63, dispatchOp63)

	// Opcode 19: branch unit and CR logic
	x19(0, (*PPCCPU).ppcMcrf)
	x19(16, (*PPCCPU).ppcBclr)
	x19(33, func(c *PPCCPU, i uint32) { c.ppcCrOp(i, crOpNor) })
	x19(50, (*PPCCPU).ppcRfi)
	x19(129, func(c *PPCCPU, i uint32) { c.ppcCrOp(i, crOpAndc) })
	x19(150, (*PPCCPU).ppcIsync)
	x19(193, func(c *PPCCPU, i uint32) { c.ppcCrOp(i, crOpXor) })
	x19(225, func(c *PPCCPU, i uint32) { c.ppcCrOp(i, crOpNand) })
	x19(257, func(c *PPCCPU, i uint32) { c.ppcCrOp(i, crOpAnd) })
	x19(289, func(c *PPCCPU, i uint32) { c.ppcCrOp(i, crOpEqv) })
	x19(417, func(c *PPCCPU, i uint32) { c.ppcCrOp(i, crOpOrc) })
	x19(449, func(c *PPCCPU, i uint32) { c.ppcCrOp(i, crOpOr) })
	x19(528, (*PPCCPU).ppcBcctr)

	// Opcode 31: fixed point, load/store indexed, system
	x31(0, (*PPCCPU).ppcCmp)
	x31(4, (*PPCCPU).ppcTw)
	xo31(8, (*PPCCPU).ppcSubfc)
	xo31(10, (*PPCCPU).ppcAddc)
	x31(11, (*PPCCPU).ppcMulhwu)
	x31(19, (*PPCCPU).ppcMfcr)
	x31(20, (*PPCCPU).ppcLwarx)
	x31(23, (*PPCCPU).ppcLwzx)
	x31(24, (*PPCCPU).ppcSlw)
	x31(26, (*PPCCPU).ppcCntlzw)
	x31(28, func(c *PPCCPU, i uint32) { c.ppcLogical(i, logAnd) })
	x31(32, (*PPCCPU).ppcCmpl)
	xo31(40, (*PPCCPU).ppcSubf)
	x31(54, (*PPCCPU).ppcNop) // dcbst
	x31(55, (*PPCCPU).ppcLwzux)
	x31(60, func(c *PPCCPU, i uint32) { c.ppcLogical(i, logAndc) })
	x31(75, (*PPCCPU).ppcMulhw)
	x31(83, (*PPCCPU).ppcMfmsr)
	x31(86, (*PPCCPU).ppcNop) // dcbf
	x31(87, (*PPCCPU).ppcLbzx)
	xo31(104, (*PPCCPU).ppcNeg)
	x31(119, (*PPCCPU).ppcLbzux)
	x31(124, func(c *PPCCPU, i uint32) { c.ppcLogical(i, logNor) })
	xo31(136, (*PPCCPU).ppcSubfe)
	xo31(138, (*PPCCPU).ppcAdde)
	x31(144, (*PPCCPU).ppcMtcrf)
	x31(146, (*PPCCPU).ppcMtmsr)
	x31(150, (*PPCCPU).ppcStwcx)
	x31(151, (*PPCCPU).ppcStwx)
	x31(183, (*PPCCPU).ppcStwux)
	xo31(200, (*PPCCPU).ppcSubfze)
	xo31(202, (*PPCCPU).ppcAddze)
	x31(210, (*PPCCPU).ppcMtsr)
	x31(215, (*PPCCPU).ppcStbx)
	xo31(232, (*PPCCPU).ppcSubfme)
	xo31(234, (*PPCCPU).ppcAddme)
	xo31(235, (*PPCCPU).ppcMullw)
	x31(242, (*PPCCPU).ppcMtsrin)
	x31(246, (*PPCCPU).ppcNop) // dcbtst
	x31(247, (*PPCCPU).ppcStbux)
	xo31(266, (*PPCCPU).ppcAdd)
	x31(278, (*PPCCPU).ppcNop) // dcbt
	x31(279, (*PPCCPU).ppcLhzx)
	x31(284, func(c *PPCCPU, i uint32) { c.ppcLogical(i, logEqv) })
	x31(306, (*PPCCPU).ppcTlbie)
	x31(310, (*PPCCPU).ppcIllegalOp601) // eciwx: no EAR on this machine
	x31(311, (*PPCCPU).ppcLhzux)
	x31(316, func(c *PPCCPU, i uint32) { c.ppcLogical(i, logXor) })
	x31(339, (*PPCCPU).ppcMfspr)
	x31(343, (*PPCCPU).ppcLhax)
	x31(370, (*PPCCPU).ppcTlbia)
	x31(371, (*PPCCPU).ppcMftb)
	x31(375, (*PPCCPU).ppcLhaux)
	x31(407, (*PPCCPU).ppcSthx)
	x31(412, func(c *PPCCPU, i uint32) { c.ppcLogical(i, logOrc) })
	x31(438, (*PPCCPU).ppcIllegalOp601) // ecowx
	x31(439, (*PPCCPU).ppcSthux)
	x31(444, func(c *PPCCPU, i uint32) { c.ppcLogical(i, logOr) })
	xo31(459, (*PPCCPU).ppcDivwu)
	x31(467, (*PPCCPU).ppcMtspr)
	x31(470, (*PPCCPU).ppcNop) // dcbi
	x31(476, func(c *PPCCPU, i uint32) { c.ppcLogical(i, logNand) })
	xo31(491, (*PPCCPU).ppcDivw)
	x31(512, (*PPCCPU).ppcMcrxr)
	x31(533, (*PPCCPU).ppcLswx)
	x31(534, (*PPCCPU).ppcLwbrx)
	x31(535, (*PPCCPU).ppcLfsx)
	x31(536, (*PPCCPU).ppcSrw)
	x31(566, (*PPCCPU).ppcTlbsync)
	x31(567, (*PPCCPU).ppcLfsux)
	x31(595, (*PPCCPU).ppcMfsr)
	x31(597, (*PPCCPU).ppcLswi)
	x31(598, (*PPCCPU).ppcNop) // sync
	x31(599, (*PPCCPU).ppcLfdx)
	x31(631, (*PPCCPU).ppcLfdux)
	x31(659, (*PPCCPU).ppcMfsrin)
	x31(661, (*PPCCPU).ppcStswx)
	x31(662, (*PPCCPU).ppcStwbrx)
	x31(663, (*PPCCPU).ppcStfsx)
	x31(695, (*PPCCPU).ppcStfsux)
	x31(725, (*PPCCPU).ppcStswi)
	x31(727, (*PPCCPU).ppcStfdx)
	x31(759, (*PPCCPU).ppcStfdux)
	x31(790, (*PPCCPU).ppcLhbrx)
	x31(792, (*PPCCPU).ppcSraw)
	x31(824, (*PPCCPU).ppcSrawi)
	x31(854, (*PPCCPU).ppcNop) // eieio
	x31(918, (*PPCCPU).ppcSthbrx)
	x31(922, (*PPCCPU).ppcExtsh)
	x31(954, (*PPCCPU).ppcExtsb)
	x31(978, (*PPCCPU).ppcNop) // tlbld (603 sw reload assist)
	x31(982, (*PPCCPU).ppcNop) // icbi
	x31(983, (*PPCCPU).ppcStfiwx)
	x31(1010, (*PPCCPU).ppcNop) // tlbli
	x31(1014, (*PPCCPU).ppcDcbz)

	// Opcode 59: single-precision floating point (A-form, 5-bit XO)
	x59(18, (*PPCCPU).ppcFdivs)
	x59(20, (*PPCCPU).ppcFsubs)
	x59(21, (*PPCCPU).ppcFadds)
	x59(22, (*PPCCPU).ppcFsqrts)
	x59(24, (*PPCCPU).ppcFres)
	x59(25, (*PPCCPU).ppcFmuls)
	x59(28, (*PPCCPU).ppcFmsubs)
	x59(29, (*PPCCPU).ppcFmadds)
	x59(30, (*PPCCPU).ppcFnmsubs)
	x59(31, (*PPCCPU).ppcFnmadds)

	// Opcode 63: double-precision floating point
	x63(0, (*PPCCPU).ppcFcmpu)
	x63(12, (*PPCCPU).ppcFrsp)
	x63(14, (*PPCCPU).ppcFctiw)
	x63(15, (*PPCCPU).ppcFctiwz)
	x63(32, (*PPCCPU).ppcFcmpo)
	x63(38, (*PPCCPU).ppcMtfsb1)
	x63(40, (*PPCCPU).ppcFneg)
	x63(64, (*PPCCPU).ppcMcrfs)
	x63(70, (*PPCCPU).ppcMtfsb0)
	x63(72, (*PPCCPU).ppcFmr)
	x63(134, (*PPCCPU).ppcMtfsfi)
	x63(136, (*PPCCPU).ppcFnabs)
	x63(264, (*PPCCPU).ppcFabs)
	x63(583, (*PPCCPU).ppcMffs)
	x63(711, (*PPCCPU).ppcMtfsf)
	a63(18, (*PPCCPU).ppcFdiv)
	a63(20, (*PPCCPU).ppcFsub)
	a63(21, (*PPCCPU).ppcFadd)
	a63(22, (*PPCCPU).ppcFsqrt)
	a63(23, (*PPCCPU).ppcFsel)
	a63(25, (*PPCCPU).ppcFmul)
	a63(26, (*PPCCPU).ppcFrsqrte)
	a63(28, (*PPCCPU).ppcFmsub)
	a63(29, (*PPCCPU).ppcFmadd)
	a63(30, (*PPCCPU).ppcFnmsub)
	a63(31, (*PPCCPU).ppcFnmadd)

	if is601 {
		// POWER-era opcodes reallocated between POWER and PowerPC.
		p(9, (*PPCCPU).powerDozi)
		p(22, (*PPCCPU).powerRlmi)
		x31(29, (*PPCCPU).powerMaskg)
		xo31(107, (*PPCCPU).powerMul)
		x31(152, (*PPCCPU).powerSlq)
		x31(153, (*PPCCPU).powerSle)
		x31(184, (*PPCCPU).powerSliq)
		x31(216, (*PPCCPU).powerSllq)
		x31(217, (*PPCCPU).powerSleq)
		x31(248, (*PPCCPU).powerSlliq)
		xo31(264, (*PPCCPU).powerDoz)
		x31(277, (*PPCCPU).powerLscbx)
		xo31(331, (*PPCCPU).powerDiv)
		xo31(360, (*PPCCPU).powerAbs)
		xo31(363, (*PPCCPU).powerDivs)
		xo31(488, (*PPCCPU).powerNabs)
		x31(531, (*PPCCPU).powerClcs)
		x31(537, (*PPCCPU).powerRrib)
		x31(541, (*PPCCPU).powerMaskir)
		x31(664, (*PPCCPU).powerSrq)
		x31(665, (*PPCCPU).powerSre)
		x31(696, (*PPCCPU).powerSriq)
		x31(728, (*PPCCPU).powerSrlq)
		x31(729, (*PPCCPU).powerSreq)
		x31(760, (*PPCCPU).powerSrliq)
		x31(920, (*PPCCPU).powerSraq)
		x31(921, (*PPCCPU).powerSrea)
		x31(952, (*PPCCPU).powerSraiq)
	}

	_ = isAltiVec // no vector unit on this machine

	return t
}
