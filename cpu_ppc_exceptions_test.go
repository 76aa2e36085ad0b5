// cpu_ppc_exceptions_test.go - Exception delivery, decrementer and interrupt pin tests

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

import (
	"testing"
	"time"
)

func TestExternalInterruptPin(t *testing.T) {
	rig := newPPCTestRig()
	rig.cpu.MSR |= MSR_EE
	rig.load(progBase, asmNop, asmNop, asmNop, asmNop)

	rig.cpu.AssertINT()
	rig.step(1)

	requirePPCEqualU32(t, "PC", rig.cpu.PC, VEC_EXTERNAL)
	// SRR0 names the instruction that would have run next.
	requirePPCEqualU32(t, "SRR0", rig.cpu.SPR[SPR_SRR0], progBase+4)
	requirePPCBitSet(t, "SRR1 kept EE", rig.cpu.SPR[SPR_SRR1], MSR_EE)
	requirePPCBitClear(t, "MSR dropped EE", rig.cpu.MSR, MSR_EE)
	rig.cpu.ReleaseINT()
}

func TestExternalInterruptMaskedByEE(t *testing.T) {
	rig := newPPCTestRig()
	rig.load(progBase, asmNop, asmNop)

	rig.cpu.AssertINT()
	rig.step(2)

	requirePPCEqualU32(t, "PC", rig.cpu.PC, progBase+8)
}

func TestDecrementerFires(t *testing.T) {
	rig := newPPCTestRig()
	rig.cpu.MSR |= MSR_EE
	// Fill a page with nops and spin until the exception redirects us.
	nops := make([]uint32, 1024)
	for i := range nops {
		nops[i] = asmNop
	}
	rig.load(progBase, nops...)

	rig.cpu.WriteSPR(SPR_DEC, 1)
	deadline := time.Now().Add(2 * time.Second)
	for rig.cpu.PC != VEC_DECREMENTER {
		if time.Now().After(deadline) {
			t.Fatal("decrementer exception never fired")
		}
		rig.step(1)
		if rig.cpu.PC >= progBase+4000 {
			rig.cpu.PC = progBase
		}
	}

	requirePPCBitSet(t, "SRR1 kept EE", rig.cpu.SPR[SPR_SRR1], MSR_EE)
	requirePPCBitClear(t, "MSR dropped EE", rig.cpu.MSR, MSR_EE)
	// SRR0 points at the instruction that would have run next.
	if srr0 := rig.cpu.SPR[SPR_SRR0]; srr0 < progBase || srr0 > progBase+4096 {
		t.Fatalf("SRR0 = %08X, expected inside the nop sled", srr0)
	}
}

func TestDecrementerHeldWhileMasked(t *testing.T) {
	rig := newPPCTestRig()
	nops := make([]uint32, 64)
	for i := range nops {
		nops[i] = asmNop
	}
	rig.load(progBase, nops...)

	rig.cpu.WriteSPR(SPR_DEC, 1)
	time.Sleep(time.Millisecond) // let DEC cross
	rig.step(32)

	if rig.cpu.PC == VEC_DECREMENTER {
		t.Fatal("decrementer delivered with MSR[EE]=0")
	}
	if !rig.cpu.decPending.Load() {
		t.Fatal("decrementer crossing not latched while masked")
	}

	// Unmasking delivers it at the next boundary.
	rig.cpu.MSR |= MSR_EE
	rig.step(1)
	requirePPCEqualU32(t, "PC", rig.cpu.PC, VEC_DECREMENTER)
}

func TestInterruptClearsReservation(t *testing.T) {
	rig := newPPCTestRig()
	rig.cpu.MSR |= MSR_EE
	rig.write32(0x9000, 0x11223344)
	rig.cpu.GPR[10] = 0x9000
	rig.cpu.GPR[4] = 0xDEADBEEF
	rig.load(progBase,
		asmX(20, 3, 0, 10, false), // lwarx r3,0,r10
		asmNop,
		asmX(150, 4, 0, 10, true), // stwcx. r4,0,r10
	)

	rig.step(1)
	if !rig.cpu.Reserve {
		t.Fatal("reservation not set")
	}

	rig.cpu.AssertINT()
	rig.step(1) // nop executes, interrupt delivered at its boundary
	rig.cpu.ReleaseINT()
	requirePPCEqualU32(t, "PC", rig.cpu.PC, VEC_EXTERNAL)
	if rig.cpu.Reserve {
		t.Fatal("reservation survived interrupt delivery")
	}

	// Resume at the stwcx.: it must fail and leave memory alone.
	rig.cpu.PC = progBase + 8
	rig.step(1)
	requirePPCEqualU32(t, "mem", rig.read32(0x9000), 0x11223344)
	requirePPCEqualU32(t, "CR0", rig.cpu.ReadCRField(0), 0)
}

func TestTimebaseAdvances(t *testing.T) {
	rig := newPPCTestRig()
	tb1 := rig.cpu.timebase()
	time.Sleep(2 * time.Millisecond)
	tb2 := rig.cpu.timebase()
	if tb2 <= tb1 {
		t.Fatalf("timebase did not advance: %d -> %d", tb1, tb2)
	}
}

func TestTimebaseWriteReanchors(t *testing.T) {
	rig := newPPCTestRig()
	rig.cpu.WriteSPR(SPR_TBU_S, 0x1234)
	rig.cpu.WriteSPR(SPR_TBL_S, 0)
	tb := rig.cpu.timebase()
	if tb>>32 != 0x1234 {
		t.Fatalf("TBU = %X, want 1234", tb>>32)
	}
}

func TestDECReadsBackCountingDown(t *testing.T) {
	rig := newPPCTestRig()
	rig.cpu.WriteSPR(SPR_DEC, 0x10000000)
	time.Sleep(time.Millisecond)
	dec := rig.cpu.ReadSPR(SPR_DEC)
	if dec >= 0x10000000 {
		t.Fatalf("DEC = %08X, expected below the written value", dec)
	}
}

func TestCtxSyncActionRunsAtBoundary(t *testing.T) {
	rig := newPPCTestRig()
	rig.load(progBase, asmNop, asmNop)

	ran := false
	rig.cpu.PostCtxSyncAction(func() { ran = true })
	rig.step(1)

	if !ran {
		t.Fatal("context-sync action did not run at the instruction boundary")
	}
}

func TestProgramExceptionBeatsBoundaryEvents(t *testing.T) {
	rig := newPPCTestRig()
	rig.cpu.MSR |= MSR_EE
	rig.cpu.AssertINT()
	rig.load(progBase, uint32(1)<<26) // illegal opcode

	rig.cpu.stepOne() // instruction-caused exception delivers first

	requirePPCEqualU32(t, "PC", rig.cpu.PC, VEC_PROGRAM)
	rig.cpu.ReleaseINT()
}

func TestVectorPrefixFollowsMSRIP(t *testing.T) {
	mem := NewMemCtrl()
	_ = mem.AddRAMRegion(0, 64*1024)
	_ = mem.AddRAMRegion(0xFFF00000, 64*1024)
	mem.Seal()
	cpu := NewPPCCPU(mem, PPC_VER_MPC750, false, 0)
	cpu.PC = 0x1000

	cpu.deliverException(ExcProgram, SRR1_ILLEGAL_OP, cpu.PC)
	requirePPCEqualU32(t, "PC with IP", cpu.PC, 0xFFF00700)

	cpu.MSR &^= MSR_IP
	cpu.PC = 0x1000
	cpu.deliverException(ExcProgram, SRR1_ILLEGAL_OP, cpu.PC)
	requirePPCEqualU32(t, "PC without IP", cpu.PC, 0x00000700)
}
