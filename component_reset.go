// component_reset.go - Reset lifecycle for machine components

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

import "time"

// Resettable is implemented by every machine component that participates
// in the reset lifecycle. Order matters: memory before CPU, so the first
// post-reset fetch sees clean state.
type Resettable interface {
	ComponentName() string
	Reset()
}

func (m *PowerMac) resettables() []Resettable {
	return []Resettable{resettableMem{m.Mem}, m.CPU}
}

type resettableMem struct{ mc *MemCtrl }

func (r resettableMem) ComponentName() string { return "memctrl" }
func (r resettableMem) Reset()                { r.mc.Reset() }

func (cpu *PPCCPU) ComponentName() string { return "ppc-cpu" }

// Reset returns the CPU to its hard-reset state: registers cleared, PVR
// preserved, translation off, vectors high, timebase re-anchored.
func (cpu *PPCCPU) Reset() {
	pvr := cpu.SPR[SPR_PVR]
	cpu.GPR = [32]uint32{}
	cpu.FPR = [32]uint64{}
	cpu.CR = 0
	cpu.FPSCR = 0
	cpu.SPR = [1024]uint32{}
	cpu.SR = [16]uint32{}
	cpu.SPR[SPR_PVR] = pvr
	cpu.MSR = MSR_IP
	cpu.PC = 0xFFF00100
	cpu.Reserve = false
	cpu.mmu.ibat = [4]batEntry{}
	cpu.mmu.dbat = [4]batEntry{}
	cpu.mmu.mruRead = nil
	cpu.mmu.mruWrite = nil
	cpu.mmu.mruExec = nil
	cpu.mmu.mruPtab = nil
	cpu.mmu.mruDMA = nil
	cpu.mmuInvalidateAllTLBs()
	cpu.mmuChangeMode()
	cpu.startTime = time.Now()
	cpu.tbrWrValue = 0
	cpu.tbrWrTimestamp = 0
	cpu.decWrValue = 0
	cpu.decWrTimestamp = 0
	cpu.decOldSign = true
	cpu.intPin.Store(false)
	cpu.decPending.Store(false)
	cpu.InstructionCnt = 0
}
