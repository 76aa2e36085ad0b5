// mmu_ppc_test.go - BAT, page walk and software TLB tests

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

import "testing"

// armDBAT0 programs DBAT0 to map 128KiB at va->va (identity) with the
// given PP bits, valid in supervisor mode.
func armDBAT0(rig *ppcTestRig, base uint32, pp uint32) {
	rig.cpu.WriteSPR(SPR_DBAT0U, base|0x2) // BL=0 (128KiB), Vs=1
	rig.cpu.WriteSPR(SPR_DBAT0U+1, base|pp)
}

func TestBATIdentityTranslation(t *testing.T) {
	rig := newPPCTestRig()
	armDBAT0(rig, 0x40000000, 2) // read/write
	rig.cpu.MSR |= MSR_DR
	rig.cpu.mmuChangeMode()

	rig.cpu.GPR[3] = 0x0BADF00D
	rig.cpu.GPR[10] = 0x40000100
	rig.load(progBase,
		asmD(36, 3, 10, 0), // stw r3,0(r10)
		asmD(32, 4, 10, 0), // lwz r4,0(r10)
	)

	rig.step(2)

	requirePPCEqualU32(t, "R4", rig.cpu.GPR[4], 0x0BADF00D)
	requirePPCEqualU32(t, "phys", rig.read32(0x40000100), 0x0BADF00D)
}

func TestBATBlockFormula(t *testing.T) {
	rig := newPPCTestRig()
	// Map VA 0x50000000..0x5001FFFF onto phys 0x40000000 (128KiB block).
	rig.cpu.WriteSPR(SPR_DBAT0U, 0x50000000|0x2)
	rig.cpu.WriteSPR(SPR_DBAT0U+1, 0x40000000|2)
	rig.cpu.MSR |= MSR_DR
	rig.cpu.mmuChangeMode()

	rig.cpu.GPR[3] = 0x5A5A5A5A
	rig.cpu.GPR[10] = 0x50001234
	rig.load(progBase, asmD(36, 3, 10, 0)) // stw r3,0(r10)

	rig.step(1)

	requirePPCEqualU32(t, "phys_hi | (la & ~hi_mask)", rig.read32(0x40001234), 0x5A5A5A5A)
}

func TestBATProtectionDSIOnWrite(t *testing.T) {
	rig := newPPCTestRig()
	armDBAT0(rig, 0x40000000, 1) // PP=01: read-only
	rig.cpu.MSR |= MSR_DR
	rig.cpu.mmuChangeMode()

	rig.cpu.GPR[3] = 0x12345678
	rig.cpu.GPR[4] = 0x40000000
	rig.load(progBase, asmD(36, 3, 4, 0)) // stw r3,0(r4)

	rig.step(1)

	requirePPCEqualU32(t, "PC", rig.cpu.PC, VEC_DSI)
	requirePPCEqualU32(t, "DSISR", rig.cpu.SPR[SPR_DSISR], 0x0A000000)
	requirePPCEqualU32(t, "DAR", rig.cpu.SPR[SPR_DAR], 0x40000000)
	requirePPCEqualU32(t, "SRR0", rig.cpu.SPR[SPR_SRR0], progBase)
	requirePPCEqualU32(t, "mem unchanged", rig.read32(0x40000000), 0)
}

func TestBATReadOnlyAllowsLoads(t *testing.T) {
	rig := newPPCTestRig()
	rig.write32(0x40000010, 0x600DBEEF)
	armDBAT0(rig, 0x40000000, 1)
	rig.cpu.MSR |= MSR_DR
	rig.cpu.mmuChangeMode()

	rig.cpu.GPR[4] = 0x40000010
	rig.load(progBase, asmD(32, 3, 4, 0)) // lwz r3,0(r4)

	rig.step(1)

	requirePPCEqualU32(t, "R3", rig.cpu.GPR[3], 0x600DBEEF)
}

// buildPageTable installs a 64KiB page table at 0x70000 (SDR1 mask 0) and
// a single PTE mapping VA va to phys pa with the given PP bits under
// VSID 0.
func buildPageTable(rig *ppcTestRig, va, pa uint32, pp uint32) (pteAddr uint32) {
	rig.cpu.WriteSPR(SPR_SDR1, 0x00070000)
	for sr := 0; sr < 16; sr++ {
		rig.cpu.WriteSegReg(sr, 0) // VSID 0, no Ks/Kp
	}
	pageIndex := (va >> 12) & 0xFFFF
	hash := pageIndex // VSID 0
	pteAddr = 0x70000 | (hash&0x3FF)<<6
	rig.write32(pteAddr, 0x80000000|pageIndex>>10)
	rig.write32(pteAddr+4, pa&0xFFFFF000|pp)
	return pteAddr
}

func TestPageWalkTranslatesAndSetsRC(t *testing.T) {
	rig := newPPCTestRig()
	pteAddr := buildPageTable(rig, 0x6000, 0x9000, 2)
	rig.cpu.MSR |= MSR_DR
	rig.cpu.mmuChangeMode()

	rig.write32(0x9010, 0x0DDC0FFE)
	rig.cpu.GPR[10] = 0x6010
	rig.load(progBase, asmD(32, 3, 10, 0)) // lwz r3,0(r10)
	rig.step(1)

	requirePPCEqualU32(t, "R3", rig.cpu.GPR[3], 0x0DDC0FFE)
	requirePPCBitSet(t, "PTE R bit", rig.read32(pteAddr+4), 0x100)
	requirePPCBitClear(t, "PTE C bit", rig.read32(pteAddr+4), 0x80)

	rig.cpu.GPR[3] = 0xA5A5A5A5
	rig.load(progBase+0x100, asmD(36, 3, 10, 0)) // stw r3,0(r10)
	rig.step(1)

	requirePPCEqualU32(t, "phys store", rig.read32(0x9010), 0xA5A5A5A5)
	requirePPCBitSet(t, "PTE C bit", rig.read32(pteAddr+4), 0x80)
}

func TestPageFaultDSI(t *testing.T) {
	rig := newPPCTestRig()
	buildPageTable(rig, 0x6000, 0x9000, 2)
	rig.cpu.MSR |= MSR_DR
	rig.cpu.mmuChangeMode()

	// 0xA000 has no PTE in either PTEG.
	rig.cpu.GPR[10] = 0xA000
	rig.load(progBase, asmD(36, 3, 10, 0)) // stw r3,0(r10)
	rig.step(1)

	requirePPCEqualU32(t, "PC", rig.cpu.PC, VEC_DSI)
	requirePPCEqualU32(t, "DSISR", rig.cpu.SPR[SPR_DSISR], DSISR_PAGE_FAULT|DSISR_STORE)
	requirePPCEqualU32(t, "DAR", rig.cpu.SPR[SPR_DAR], 0xA000)
}

func TestPageProtectionUserKey(t *testing.T) {
	rig := newPPCTestRig()
	buildPageTable(rig, 0x6000, 0x9000, 1) // PP=01: user key write-protects
	rig.cpu.WriteSegReg(0, 0x20000000)     // Kp=1
	rig.cpu.MSR |= MSR_DR | MSR_PR
	rig.cpu.mmuChangeMode()

	rig.cpu.GPR[10] = 0x6000
	rig.load(progBase, asmD(36, 3, 10, 0)) // stw r3,0(r10)
	rig.step(1)

	requirePPCEqualU32(t, "PC", rig.cpu.PC, VEC_DSI)
	requirePPCEqualU32(t, "DSISR", rig.cpu.SPR[SPR_DSISR], DSISR_PROT_VIOL|DSISR_STORE)
}

func TestTlbieForcesRewalk(t *testing.T) {
	rig := newPPCTestRig()
	pteAddr := buildPageTable(rig, 0x6000, 0x9000, 2)
	rig.cpu.MSR |= MSR_DR
	rig.cpu.mmuChangeMode()

	rig.write32(0x9000, 0x11111111)
	rig.write32(0xB000, 0x22222222)

	rig.cpu.GPR[10] = 0x6000
	rig.load(progBase, asmD(32, 3, 10, 0)) // lwz r3,0(r10)
	rig.step(1)
	requirePPCEqualU32(t, "first walk", rig.cpu.GPR[3], 0x11111111)

	// Repoint the PTE at 0xB000. The cached translation must survive
	// until tlbie drops it.
	rig.write32(pteAddr+4, 0xB000|2)
	rig.load(progBase+0x10, asmD(32, 4, 10, 0))
	rig.step(1)
	requirePPCEqualU32(t, "cached translation", rig.cpu.GPR[4], 0x11111111)

	rig.cpu.GPR[11] = 0x6000
	rig.load(progBase+0x20,
		asmX(306, 0, 0, 11, false), // tlbie r11
		asmD(32, 5, 10, 0),         // lwz r5,0(r10)
	)
	rig.step(2)
	requirePPCEqualU32(t, "rewalked translation", rig.cpu.GPR[5], 0x22222222)
}

func TestSegmentRegisterWriteDropsTranslations(t *testing.T) {
	rig := newPPCTestRig()
	buildPageTable(rig, 0x6000, 0x9000, 2)
	rig.cpu.MSR |= MSR_DR
	rig.cpu.mmuChangeMode()

	rig.write32(0x9000, 0x33333333)
	rig.cpu.GPR[10] = 0x6000
	rig.load(progBase, asmD(32, 3, 10, 0))
	rig.step(1)
	requirePPCEqualU32(t, "first walk", rig.cpu.GPR[3], 0x33333333)

	// Switch segment 0 to VSID 5: the old PTE no longer matches, so the
	// next access must fault rather than serve the stale translation.
	rig.load(progBase+0x10,
		uint32(31)<<26|5<<21|0<<16|210<<1, // mtsr 0,r5 (r5=VSID)
		asmD(32, 4, 10, 0),
	)
	rig.cpu.GPR[5] = 5
	rig.step(2)

	requirePPCEqualU32(t, "PC", rig.cpu.PC, VEC_DSI)
	requirePPCEqualU32(t, "DSISR", rig.cpu.SPR[SPR_DSISR], DSISR_PAGE_FAULT)
}

func TestVMemRoundTripAllWidths(t *testing.T) {
	rig := newPPCTestRig()
	c := rig.cpu

	c.WriteVMem8(0x8000, 0xAB)
	if got := c.ReadVMem8(0x8000); got != 0xAB {
		t.Fatalf("u8 = %02X, want AB", got)
	}
	c.WriteVMem16(0x8010, 0x1234)
	if got := c.ReadVMem16(0x8010); got != 0x1234 {
		t.Fatalf("u16 = %04X, want 1234", got)
	}
	c.WriteVMem32(0x8020, 0xDEADBEEF)
	requirePPCEqualU32(t, "u32", c.ReadVMem32(0x8020), 0xDEADBEEF)
	c.WriteVMem64(0x8030, 0x0123456789ABCDEF)
	requirePPCEqualU64(t, "u64", c.ReadVMem64(0x8030), 0x0123456789ABCDEF)

	// Big-endian layout in guest memory.
	requirePPCEqualU32(t, "BE bytes", rig.read32(0x8030), 0x01234567)
}

func TestMemReadDbgRestoresFaultState(t *testing.T) {
	rig := newPPCTestRig()
	buildPageTable(rig, 0x6000, 0x9000, 2)
	rig.cpu.MSR |= MSR_DR
	rig.cpu.mmuChangeMode()
	rig.cpu.SPR[SPR_DSISR] = 0x11112222
	rig.cpu.SPR[SPR_DAR] = 0x33334444
	savedPC := rig.cpu.PC

	// 0xA000 is unmapped in the page table: the debug read must fail
	// without delivering a DSI or touching the fault registers.
	if _, err := rig.cpu.MemReadDbg(0xA000, 4); err == nil {
		t.Fatal("expected debug read fault")
	}
	requirePPCEqualU32(t, "DSISR", rig.cpu.SPR[SPR_DSISR], 0x11112222)
	requirePPCEqualU32(t, "DAR", rig.cpu.SPR[SPR_DAR], 0x33334444)
	requirePPCEqualU32(t, "PC", rig.cpu.PC, savedPC)

	// A mapped address reads fine.
	rig.write32(0x9000, 0x55667788)
	val, err := rig.cpu.MemReadDbg(0x6000, 4)
	if err != nil {
		t.Fatalf("debug read failed: %v", err)
	}
	requirePPCEqualU32(t, "value", uint32(val), 0x55667788)
}

func TestFetchFromNXSegmentRaisesISI(t *testing.T) {
	rig := newPPCTestRig()
	buildPageTable(rig, 0x6000, 0x9000, 2)
	rig.cpu.WriteSegReg(0, 0x10000000) // N bit: no-execute
	rig.cpu.MSR |= MSR_IR
	rig.cpu.mmuChangeMode()

	rig.cpu.PC = 0x6000
	rig.cpu.stepOne()

	requirePPCEqualU32(t, "PC", rig.cpu.PC, VEC_ISI)
	requirePPCBitSet(t, "SRR1", rig.cpu.SPR[SPR_SRR1], ISI_NOEXEC_SEG)
	requirePPCEqualU32(t, "SRR0", rig.cpu.SPR[SPR_SRR0], 0x6000)
}

func TestFetchPageFaultISI(t *testing.T) {
	rig := newPPCTestRig()
	buildPageTable(rig, 0x6000, 0x9000, 2)
	rig.cpu.MSR |= MSR_IR
	rig.cpu.mmuChangeMode()

	rig.cpu.PC = 0xA000
	rig.cpu.stepOne()

	requirePPCEqualU32(t, "PC", rig.cpu.PC, VEC_ISI)
	requirePPCBitSet(t, "SRR1", rig.cpu.SPR[SPR_SRR1], ISI_PAGE_FAULT)
}
