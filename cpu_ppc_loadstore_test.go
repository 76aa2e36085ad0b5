// cpu_ppc_loadstore_test.go - Load/store, string and reservation tests

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

func TestPPCStwLwzRoundTrip(t *testing.T) {
	rig := newPPCTestRig()
	rig.cpu.GPR[3] = 0xCAFEBABE
	rig.cpu.GPR[10] = 0x8000
	rig.load(progBase,
		asmD(36, 3, 10, 0), // stw r3,0(r10)
		asmD(32, 4, 10, 0), // lwz r4,0(r10)
	)

	rig.step(2)

	requirePPCEqualU32(t, "R4", rig.cpu.GPR[4], 0xCAFEBABE)
	requirePPCEqualU32(t, "mem", rig.read32(0x8000), 0xCAFEBABE)
}

func TestPPCByteHalfwordAccess(t *testing.T) {
	rig := newPPCTestRig()
	rig.cpu.GPR[3] = 0x1234ABCD
	rig.cpu.GPR[10] = 0x8000
	rig.load(progBase,
		asmD(38, 3, 10, 0), // stb r3,0(r10)
		asmD(44, 3, 10, 2), // sth r3,2(r10)
		asmD(34, 4, 10, 0), // lbz r4,0(r10)
		asmD(40, 5, 10, 2), // lhz r5,2(r10)
		asmD(42, 6, 10, 2), // lha r6,2(r10)
	)

	rig.step(5)

	requirePPCEqualU32(t, "R4", rig.cpu.GPR[4], 0xCD)
	requirePPCEqualU32(t, "R5", rig.cpu.GPR[5], 0xABCD)
	requirePPCEqualU32(t, "R6", rig.cpu.GPR[6], 0xFFFFABCD)
}

func TestPPCLoadUpdateForms(t *testing.T) {
	rig := newPPCTestRig()
	rig.write32(0x8004, 0x11223344)
	rig.cpu.GPR[10] = 0x8000
	rig.load(progBase, asmD(33, 3, 10, 4)) // lwzu r3,4(r10)

	rig.step(1)

	requirePPCEqualU32(t, "R3", rig.cpu.GPR[3], 0x11223344)
	requirePPCEqualU32(t, "R10", rig.cpu.GPR[10], 0x8004)
}

func TestPPCLwarxStwcxRoundTrip(t *testing.T) {
	rig := newPPCTestRig()
	rig.write32(0x9000, 0x11223344)
	rig.cpu.GPR[10] = 0x9000
	rig.cpu.GPR[4] = 0xDEADBEEF
	rig.load(progBase,
		asmX(20, 3, 0, 10, false), // lwarx r3,0,r10
		asmX(150, 4, 0, 10, true), // stwcx. r4,0,r10
	)

	rig.step(1)
	requirePPCEqualU32(t, "R3", rig.cpu.GPR[3], 0x11223344)
	if !rig.cpu.Reserve {
		t.Fatal("reservation not set after lwarx")
	}

	rig.step(1)
	requirePPCEqualU32(t, "mem", rig.read32(0x9000), 0xDEADBEEF)
	requirePPCEqualU32(t, "CR0", rig.cpu.ReadCRField(0), 0x2) // EQ
	if rig.cpu.Reserve {
		t.Fatal("reservation survived stwcx.")
	}
}

func TestPPCStwcxWithoutReservationFails(t *testing.T) {
	rig := newPPCTestRig()
	rig.write32(0x9000, 0x11223344)
	rig.cpu.GPR[10] = 0x9000
	rig.cpu.GPR[4] = 0xDEADBEEF
	rig.load(progBase, asmX(150, 4, 0, 10, true)) // stwcx. r4,0,r10

	rig.step(1)

	requirePPCEqualU32(t, "mem", rig.read32(0x9000), 0x11223344)
	requirePPCEqualU32(t, "CR0", rig.cpu.ReadCRField(0), 0)
}

func TestPPCUnalignedCrossPageLoad(t *testing.T) {
	rig := newPPCTestRig()
	rig.write8(0x1FFE, 0xAA)
	rig.write8(0x1FFF, 0xBB)
	rig.write8(0x2000, 0xCC)
	rig.write8(0x2001, 0xDD)
	rig.cpu.GPR[4] = 0x1FFE
	rig.load(0x3000, asmD(32, 3, 4, 0)) // lwz r3,0(r4)

	rig.step(1)

	requirePPCEqualU32(t, "R3", rig.cpu.GPR[3], 0xAABBCCDD)
}

func TestPPCUnalignedCrossPageStore(t *testing.T) {
	rig := newPPCTestRig()
	rig.cpu.GPR[3] = 0xAABBCCDD
	rig.cpu.GPR[4] = 0x1FFE
	rig.load(0x3000, asmD(36, 3, 4, 0)) // stw r3,0(r4)

	rig.step(1)

	requirePPCEqualU32(t, "page1 tail", rig.read32(0x1FFC), 0x0000AABB)
	requirePPCEqualU32(t, "page2 head", rig.read32(0x2000), 0xCCDD0000)
}

func TestPPCUnalignedSamePage(t *testing.T) {
	rig := newPPCTestRig()
	rig.cpu.GPR[3] = 0x01020304
	rig.cpu.GPR[4] = 0x8001
	rig.load(progBase,
		asmD(36, 3, 4, 0), // stw r3,0(r4)
		asmD(32, 5, 4, 0), // lwz r5,0(r4)
	)

	rig.step(2)

	requirePPCEqualU32(t, "R5", rig.cpu.GPR[5], 0x01020304)
}

func TestPPCLmwStmw(t *testing.T) {
	rig := newPPCTestRig()
	for i := 0; i < 4; i++ {
		rig.cpu.GPR[28+i] = uint32(0x10 + i)
	}
	rig.cpu.GPR[10] = 0x8000
	rig.load(progBase, asmD(47, 28, 10, 0)) // stmw r28,0(r10)
	rig.step(1)

	for i := 0; i < 4; i++ {
		requirePPCEqualU32(t, "stored word", rig.read32(0x8000+uint32(i)*4), uint32(0x10+i))
	}

	for i := 0; i < 4; i++ {
		rig.cpu.GPR[28+i] = 0
	}
	rig.load(progBase+0x100, asmD(46, 28, 10, 0)) // lmw r28,0(r10)
	rig.step(1)

	for i := 0; i < 4; i++ {
		requirePPCEqualU32(t, "loaded reg", rig.cpu.GPR[28+i], uint32(0x10+i))
	}
}

func TestPPCLswiPacksBigEndian(t *testing.T) {
	rig := newPPCTestRig()
	for i, b := range []uint8{0x11, 0x22, 0x33, 0x44, 0x55, 0x66} {
		rig.write8(0x8000+uint32(i), b)
	}
	rig.cpu.GPR[10] = 0x8000
	// lswi r3,r10,6
	rig.load(progBase, asmX(597, 3, 10, 6, false))

	rig.step(1)

	requirePPCEqualU32(t, "R3", rig.cpu.GPR[3], 0x11223344)
	requirePPCEqualU32(t, "R4", rig.cpu.GPR[4], 0x55660000)
}

func TestPPCByteReversedLoads(t *testing.T) {
	rig := newPPCTestRig()
	rig.write32(0x8000, 0x11223344)
	rig.cpu.GPR[10] = 0x8000
	rig.load(progBase,
		asmX(534, 3, 0, 10, false), // lwbrx r3,0,r10
		asmX(790, 4, 0, 10, false), // lhbrx r4,0,r10
	)

	rig.step(2)

	requirePPCEqualU32(t, "R3", rig.cpu.GPR[3], 0x44332211)
	requirePPCEqualU32(t, "R4", rig.cpu.GPR[4], 0x2211)
}

func TestPPCDcbzZeroesCacheBlock(t *testing.T) {
	rig := newPPCTestRig()
	for i := uint32(0); i < 64; i += 4 {
		rig.write32(0x8000+i, 0xFFFFFFFF)
	}
	rig.cpu.GPR[10] = 0x8010 // inside the first block
	rig.load(progBase, asmX(1014, 0, 0, 10, false)) // dcbz 0,r10

	rig.step(1)

	for i := uint32(0); i < 32; i += 4 {
		requirePPCEqualU32(t, "zeroed word", rig.read32(0x8000+i), 0)
	}
	requirePPCEqualU32(t, "next block untouched", rig.read32(0x8020), 0xFFFFFFFF)
}

func TestPPCMisalignedQuadwordRaisesAlignment(t *testing.T) {
	rig := newPPCTestRig()
	rig.cpu.MSR |= MSR_FP
	rig.cpu.GPR[10] = 0x8004
	rig.load(progBase, asmD(50, 1, 10, 1)) // lfd f1,1(r10) -> EA 0x8005

	rig.step(1)

	requirePPCEqualU32(t, "PC", rig.cpu.PC, VEC_ALIGNMENT)
	requirePPCEqualU32(t, "SRR0", rig.cpu.SPR[SPR_SRR0], progBase)
	requirePPCEqualU32(t, "DAR", rig.cpu.SPR[SPR_DAR], 0x8005)
}
