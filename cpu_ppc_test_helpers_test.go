// cpu_ppc_test_helpers_test.go - Shared test rig for the PowerPC core

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
	"encoding/binary"
	"testing"
)

// ppcTestRig is a minimal machine for exercising the CPU core: 1MiB of RAM
// at zero, 128KiB at 0x40000000 for BAT tests, translation off, supervisor
// mode, PC parked at progBase.
type ppcTestRig struct {
	mem *MemCtrl
	cpu *PPCCPU
}

const progBase = 0x1000

func newPPCTestRig() *ppcTestRig {
	mem := NewMemCtrl()
	if err := mem.AddRAMRegion(0, 1024*1024); err != nil {
		panic(err)
	}
	if err := mem.AddRAMRegion(0x40000000, 128*1024); err != nil {
		panic(err)
	}
	mem.Seal()

	cpu := NewPPCCPU(mem, PPC_VER_MPC750, true, 16705000)
	cpu.MSR = 0
	cpu.mmuChangeMode()
	cpu.PC = progBase
	return &ppcTestRig{mem: mem, cpu: cpu}
}

// load places instruction words at addr and points PC there.
func (rig *ppcTestRig) load(addr uint32, instrs ...uint32) {
	for i, word := range instrs {
		rig.write32(addr+uint32(i)*4, word)
	}
	rig.cpu.PC = addr
}

// step executes n instructions including boundary event polling.
func (rig *ppcTestRig) step(n int) {
	for i := 0; i < n; i++ {
		rig.cpu.ExecSingle()
	}
}

// write32/read32 poke guest RAM directly, bypassing translation.
func (rig *ppcTestRig) write32(addr, val uint32) {
	rng := rig.mem.FindRange(addr)
	binary.BigEndian.PutUint32(rng.Mem[addr-rng.Start:], val)
}

func (rig *ppcTestRig) read32(addr uint32) uint32 {
	rng := rig.mem.FindRange(addr)
	return binary.BigEndian.Uint32(rng.Mem[addr-rng.Start:])
}

func (rig *ppcTestRig) write8(addr uint32, val uint8) {
	rng := rig.mem.FindRange(addr)
	rng.Mem[addr-rng.Start] = val
}

// ------------------------------------------------------------------------------
// Instruction builders
// ------------------------------------------------------------------------------

func asmD(primary, rd, ra int, imm uint16) uint32 {
	return uint32(primary)<<26 | uint32(rd)<<21 | uint32(ra)<<16 | uint32(imm)
}

func asmX(xo, rd, ra, rb int, rc bool) uint32 {
	w := uint32(31)<<26 | uint32(rd)<<21 | uint32(ra)<<16 | uint32(rb)<<11 | uint32(xo)<<1
	if rc {
		w |= 1
	}
	return w
}

func asmXO(xo, rd, ra, rb int, oe, rc bool) uint32 {
	w := asmX(xo, rd, ra, rb, rc)
	if oe {
		w |= 1 << 10
	}
	return w
}

func asmOp19(xo, bo, bi int, lk bool) uint32 {
	w := uint32(19)<<26 | uint32(bo)<<21 | uint32(bi)<<16 | uint32(xo)<<1
	if lk {
		w |= 1
	}
	return w
}

func asmFltA(primary, xo, fd, fa, fb, fc int, rc bool) uint32 {
	w := uint32(primary)<<26 | uint32(fd)<<21 | uint32(fa)<<16 | uint32(fb)<<11 |
		uint32(fc)<<6 | uint32(xo)<<1
	if rc {
		w |= 1
	}
	return w
}

func asmFltX(xo, fd, fa, fb int, rc bool) uint32 {
	w := uint32(63)<<26 | uint32(fd)<<21 | uint32(fa)<<16 | uint32(fb)<<11 | uint32(xo)<<1
	if rc {
		w |= 1
	}
	return w
}

const asmNop = uint32(24) << 26 // ori r0,r0,0

// ------------------------------------------------------------------------------
// Assertions
// ------------------------------------------------------------------------------

func requirePPCEqualU32(t *testing.T, name string, got, want uint32) {
	t.Helper()
	if got != want {
		t.Fatalf("%s = %08X, want %08X", name, got, want)
	}
}

func requirePPCEqualU64(t *testing.T, name string, got, want uint64) {
	t.Helper()
	if got != want {
		t.Fatalf("%s = %016X, want %016X", name, got, want)
	}
}

func requirePPCBitSet(t *testing.T, name string, val, mask uint32) {
	t.Helper()
	if val&mask != mask {
		t.Fatalf("%s = %08X, bit(s) %08X not set", name, val, mask)
	}
}

func requirePPCBitClear(t *testing.T, name string, val, mask uint32) {
	t.Helper()
	if val&mask != 0 {
		t.Fatalf("%s = %08X, bit(s) %08X unexpectedly set", name, val, mask)
	}
}
