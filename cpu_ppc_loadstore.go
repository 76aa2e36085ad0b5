// cpu_ppc_loadstore.go - PowerPC load/store, string/multiple and reservation handlers

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

// Effective address helpers. D-form: EA = (rA|0) + SIMM; X-form:
// EA = (rA|0) + rB. Update forms return rA so the handler can write back.

func (cpu *PPCCPU) eaD(instr uint32) uint32 {
	ea := uint32(instrSIMM(instr))
	if ra := instrRA(instr); ra != 0 {
		ea += cpu.GPR[ra]
	}
	return ea
}

func (cpu *PPCCPU) eaDU(instr uint32) (uint32, int) {
	ra := instrRA(instr)
	return cpu.GPR[ra] + uint32(instrSIMM(instr)), ra
}

func (cpu *PPCCPU) eaX(instr uint32) uint32 {
	ea := cpu.GPR[instrRB(instr)]
	if ra := instrRA(instr); ra != 0 {
		ea += cpu.GPR[ra]
	}
	return ea
}

func (cpu *PPCCPU) eaXU(instr uint32) (uint32, int) {
	ra := instrRA(instr)
	return cpu.GPR[ra] + cpu.GPR[instrRB(instr)], ra
}

// ------------------------------------------------------------------------------
// Loads
// ------------------------------------------------------------------------------

func (cpu *PPCCPU) ppcLbz(instr uint32) {
	cpu.GPR[instrRD(instr)] = uint32(cpu.ReadVMem8(cpu.eaD(instr)))
}

func (cpu *PPCCPU) ppcLbzu(instr uint32) {
	ea, ra := cpu.eaDU(instr)
	cpu.GPR[instrRD(instr)] = uint32(cpu.ReadVMem8(ea))
	cpu.GPR[ra] = ea
}

func (cpu *PPCCPU) ppcLbzx(instr uint32) {
	cpu.GPR[instrRD(instr)] = uint32(cpu.ReadVMem8(cpu.eaX(instr)))
}

func (cpu *PPCCPU) ppcLbzux(instr uint32) {
	ea, ra := cpu.eaXU(instr)
	cpu.GPR[instrRD(instr)] = uint32(cpu.ReadVMem8(ea))
	cpu.GPR[ra] = ea
}

func (cpu *PPCCPU) ppcLhz(instr uint32) {
	cpu.GPR[instrRD(instr)] = uint32(cpu.ReadVMem16(cpu.eaD(instr)))
}

func (cpu *PPCCPU) ppcLhzu(instr uint32) {
	ea, ra := cpu.eaDU(instr)
	cpu.GPR[instrRD(instr)] = uint32(cpu.ReadVMem16(ea))
	cpu.GPR[ra] = ea
}

func (cpu *PPCCPU) ppcLhzx(instr uint32) {
	cpu.GPR[instrRD(instr)] = uint32(cpu.ReadVMem16(cpu.eaX(instr)))
}

func (cpu *PPCCPU) ppcLhzux(instr uint32) {
	ea, ra := cpu.eaXU(instr)
	cpu.GPR[instrRD(instr)] = uint32(cpu.ReadVMem16(ea))
	cpu.GPR[ra] = ea
}

func (cpu *PPCCPU) ppcLha(instr uint32) {
	cpu.GPR[instrRD(instr)] = uint32(int32(int16(cpu.ReadVMem16(cpu.eaD(instr)))))
}

func (cpu *PPCCPU) ppcLhau(instr uint32) {
	ea, ra := cpu.eaDU(instr)
	cpu.GPR[instrRD(instr)] = uint32(int32(int16(cpu.ReadVMem16(ea))))
	cpu.GPR[ra] = ea
}

func (cpu *PPCCPU) ppcLhax(instr uint32) {
	cpu.GPR[instrRD(instr)] = uint32(int32(int16(cpu.ReadVMem16(cpu.eaX(instr)))))
}

func (cpu *PPCCPU) ppcLhaux(instr uint32) {
	ea, ra := cpu.eaXU(instr)
	cpu.GPR[instrRD(instr)] = uint32(int32(int16(cpu.ReadVMem16(ea))))
	cpu.GPR[ra] = ea
}

func (cpu *PPCCPU) ppcLwz(instr uint32) {
	cpu.GPR[instrRD(instr)] = cpu.ReadVMem32(cpu.eaD(instr))
}

func (cpu *PPCCPU) ppcLwzu(instr uint32) {
	ea, ra := cpu.eaDU(instr)
	cpu.GPR[instrRD(instr)] = cpu.ReadVMem32(ea)
	cpu.GPR[ra] = ea
}

func (cpu *PPCCPU) ppcLwzx(instr uint32) {
	cpu.GPR[instrRD(instr)] = cpu.ReadVMem32(cpu.eaX(instr))
}

func (cpu *PPCCPU) ppcLwzux(instr uint32) {
	ea, ra := cpu.eaXU(instr)
	cpu.GPR[instrRD(instr)] = cpu.ReadVMem32(ea)
	cpu.GPR[ra] = ea
}

// Byte-reversed loads fetch big-endian and swap, which on this all-BE
// memory model means they yield little-endian values.

func (cpu *PPCCPU) ppcLhbrx(instr uint32) {
	cpu.GPR[instrRD(instr)] = uint32(bits.ReverseBytes16(cpu.ReadVMem16(cpu.eaX(instr))))
}

func (cpu *PPCCPU) ppcLwbrx(instr uint32) {
	cpu.GPR[instrRD(instr)] = bits.ReverseBytes32(cpu.ReadVMem32(cpu.eaX(instr)))
}

// ------------------------------------------------------------------------------
// Stores
// ------------------------------------------------------------------------------

func (cpu *PPCCPU) ppcStb(instr uint32) {
	cpu.WriteVMem8(cpu.eaD(instr), uint8(cpu.GPR[instrRD(instr)]))
}

func (cpu *PPCCPU) ppcStbu(instr uint32) {
	ea, ra := cpu.eaDU(instr)
	cpu.WriteVMem8(ea, uint8(cpu.GPR[instrRD(instr)]))
	cpu.GPR[ra] = ea
}

func (cpu *PPCCPU) ppcStbx(instr uint32) {
	cpu.WriteVMem8(cpu.eaX(instr), uint8(cpu.GPR[instrRD(instr)]))
}

func (cpu *PPCCPU) ppcStbux(instr uint32) {
	ea, ra := cpu.eaXU(instr)
	cpu.WriteVMem8(ea, uint8(cpu.GPR[instrRD(instr)]))
	cpu.GPR[ra] = ea
}

func (cpu *PPCCPU) ppcSth(instr uint32) {
	cpu.WriteVMem16(cpu.eaD(instr), uint16(cpu.GPR[instrRD(instr)]))
}

func (cpu *PPCCPU) ppcSthu(instr uint32) {
	ea, ra := cpu.eaDU(instr)
	cpu.WriteVMem16(ea, uint16(cpu.GPR[instrRD(instr)]))
	cpu.GPR[ra] = ea
}

func (cpu *PPCCPU) ppcSthx(instr uint32) {
	cpu.WriteVMem16(cpu.eaX(instr), uint16(cpu.GPR[instrRD(instr)]))
}

func (cpu *PPCCPU) ppcSthux(instr uint32) {
	ea, ra := cpu.eaXU(instr)
	cpu.WriteVMem16(ea, uint16(cpu.GPR[instrRD(instr)]))
	cpu.GPR[ra] = ea
}

func (cpu *PPCCPU) ppcStw(instr uint32) {
	cpu.WriteVMem32(cpu.eaD(instr), cpu.GPR[instrRD(instr)])
}

func (cpu *PPCCPU) ppcStwu(instr uint32) {
	ea, ra := cpu.eaDU(instr)
	cpu.WriteVMem32(ea, cpu.GPR[instrRD(instr)])
	cpu.GPR[ra] = ea
}

func (cpu *PPCCPU) ppcStwx(instr uint32) {
	cpu.WriteVMem32(cpu.eaX(instr), cpu.GPR[instrRD(instr)])
}

func (cpu *PPCCPU) ppcStwux(instr uint32) {
	ea, ra := cpu.eaXU(instr)
	cpu.WriteVMem32(ea, cpu.GPR[instrRD(instr)])
	cpu.GPR[ra] = ea
}

func (cpu *PPCCPU) ppcSthbrx(instr uint32) {
	cpu.WriteVMem16(cpu.eaX(instr), bits.ReverseBytes16(uint16(cpu.GPR[instrRD(instr)])))
}

func (cpu *PPCCPU) ppcStwbrx(instr uint32) {
	cpu.WriteVMem32(cpu.eaX(instr), bits.ReverseBytes32(cpu.GPR[instrRD(instr)]))
}

// ------------------------------------------------------------------------------
// Load/store multiple and string
// ------------------------------------------------------------------------------

// lmw loads ascending registers rD..r31 from consecutive words.
func (cpu *PPCCPU) ppcLmw(instr uint32) {
	ea := cpu.eaD(instr)
	for reg := instrRD(instr); reg < 32; reg++ {
		cpu.GPR[reg] = cpu.ReadVMem32(ea)
		ea += 4
	}
}

func (cpu *PPCCPU) ppcStmw(instr uint32) {
	ea := cpu.eaD(instr)
	for reg := instrRD(instr); reg < 32; reg++ {
		cpu.WriteVMem32(ea, cpu.GPR[reg])
		ea += 4
	}
}

// loadString packs count bytes big-endian into ascending registers
// starting at reg, wrapping r31 to r0, zero-filling the tail of the last
// partial register.
func (cpu *PPCCPU) loadString(ea uint32, reg, count int) {
	for i := 0; i < count; i++ {
		if i%4 == 0 {
			cpu.GPR[reg] = 0
		}
		cpu.GPR[reg] |= uint32(cpu.ReadVMem8(ea)) << uint(24-(i%4)*8)
		ea++
		if i%4 == 3 {
			reg = (reg + 1) & 31
		}
	}
}

func (cpu *PPCCPU) storeString(ea uint32, reg, count int) {
	for i := 0; i < count; i++ {
		cpu.WriteVMem8(ea, uint8(cpu.GPR[reg]>>uint(24-(i%4)*8)))
		ea++
		if i%4 == 3 {
			reg = (reg + 1) & 31
		}
	}
}

func (cpu *PPCCPU) ppcLswi(instr uint32) {
	var ea uint32
	if ra := instrRA(instr); ra != 0 {
		ea = cpu.GPR[ra]
	}
	count := instrRB(instr)
	if count == 0 {
		count = 32
	}
	cpu.loadString(ea, instrRD(instr), count)
}

func (cpu *PPCCPU) ppcLswx(instr uint32) {
	cpu.loadString(cpu.eaX(instr), instrRD(instr), int(cpu.SPR[SPR_XER]&0x7F))
}

func (cpu *PPCCPU) ppcStswi(instr uint32) {
	var ea uint32
	if ra := instrRA(instr); ra != 0 {
		ea = cpu.GPR[ra]
	}
	count := instrRB(instr)
	if count == 0 {
		count = 32
	}
	cpu.storeString(ea, instrRD(instr), count)
}

func (cpu *PPCCPU) ppcStswx(instr uint32) {
	cpu.storeString(cpu.eaX(instr), instrRD(instr), int(cpu.SPR[SPR_XER]&0x7F))
}

// ------------------------------------------------------------------------------
// Load-and-reserve / store-conditional
// ------------------------------------------------------------------------------

// lwarx loads the word and establishes the reservation on its 32-bit
// aligned physical address. Only one reservation is ever live.
func (cpu *PPCCPU) ppcLwarx(instr uint32) {
	ea := cpu.eaX(instr)
	cpu.Reserve = true
	cpu.ReserveAddr = cpu.translateDataAddr(ea, false) &^ 3
	cpu.GPR[instrRD(instr)] = cpu.ReadVMem32(ea)
}

// stwcx. commits iff the reservation is live and names the same physical
// word; CR0[EQ] reports the outcome and the reservation always dies.
func (cpu *PPCCPU) ppcStwcx(instr uint32) {
	ea := cpu.eaX(instr)
	crf := uint32(0)
	if cpu.SPR[SPR_XER]&XER_SO != 0 {
		crf |= CR_SO >> 28
	}
	if cpu.Reserve && cpu.translateDataAddr(ea, true)&^3 == cpu.ReserveAddr {
		cpu.WriteVMem32(ea, cpu.GPR[instrRD(instr)])
		crf |= CR_EQ >> 28
	}
	cpu.Reserve = false
	cpu.WriteCRField(0, crf)
}

// ------------------------------------------------------------------------------
// Cache management
// ------------------------------------------------------------------------------

// dcbz zeroes the cache block containing EA. The other cache ops are
// coherency hints with no architected effect on this machine and decode to
// ppcNop.
func (cpu *PPCCPU) ppcDcbz(instr uint32) {
	ea := cpu.eaX(instr) &^ (PPC_CACHE_LINE_SIZE - 1)
	for i := uint32(0); i < PPC_CACHE_LINE_SIZE; i += 4 {
		cpu.WriteVMem32(ea+i, 0)
	}
}

func (cpu *PPCCPU) ppcNop(instr uint32) {}
