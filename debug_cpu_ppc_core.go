// debug_cpu_ppc.go - Debugger adapter for the PowerPC core

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
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// DebugPPC adapts the PowerPC core to the monitor's DebuggableCPU
// contract and carries the textual register accessors.
type DebugPPC struct {
	cpu *PPCCPU

	bpMu        sync.RWMutex
	breakpoints map[uint64]bool

	trapRunning atomic.Bool
	trapStop    chan struct{}
}

func NewDebugPPC(cpu *PPCCPU) *DebugPPC {
	return &DebugPPC{
		cpu:         cpu,
		breakpoints: make(map[uint64]bool),
	}
}

func (d *DebugPPC) CPUName() string   { return "PowerPC" }
func (d *DebugPPC) AddressWidth() int { return 32 }

func (d *DebugPPC) GetRegisters() []RegisterInfo {
	c := d.cpu
	regs := make([]RegisterInfo, 0, 40)
	for i := 0; i < 32; i++ {
		regs = append(regs, RegisterInfo{
			Name: fmt.Sprintf("R%d", i), BitWidth: 32,
			Value: uint64(c.GPR[i]), Group: "general",
		})
	}
	regs = append(regs,
		RegisterInfo{Name: "PC", BitWidth: 32, Value: uint64(c.PC), Group: "general"},
		RegisterInfo{Name: "LR", BitWidth: 32, Value: uint64(c.SPR[SPR_LR]), Group: "general"},
		RegisterInfo{Name: "CTR", BitWidth: 32, Value: uint64(c.SPR[SPR_CTR]), Group: "general"},
		RegisterInfo{Name: "CR", BitWidth: 32, Value: uint64(c.CR), Group: "status"},
		RegisterInfo{Name: "XER", BitWidth: 32, Value: uint64(c.SPR[SPR_XER]), Group: "status"},
		RegisterInfo{Name: "MSR", BitWidth: 32, Value: uint64(c.MSR), Group: "system"},
		RegisterInfo{Name: "FPSCR", BitWidth: 32, Value: uint64(c.FPSCR), Group: "status"},
	)
	return regs
}

// GetRegister resolves a case-insensitive textual register name: pc, lr,
// ctr, cr, msr, xer, fpscr, rNN, fNN, srNN, sprNNN.
func (d *DebugPPC) GetRegister(name string) (uint64, bool) {
	c := d.cpu
	lower := strings.ToLower(name)
	switch lower {
	case "pc":
		return uint64(c.PC), true
	case "lr":
		return uint64(c.SPR[SPR_LR]), true
	case "ctr":
		return uint64(c.SPR[SPR_CTR]), true
	case "cr":
		return uint64(c.CR), true
	case "msr":
		return uint64(c.MSR), true
	case "xer":
		return uint64(c.SPR[SPR_XER]), true
	case "fpscr":
		return uint64(c.FPSCR), true
	}
	if n, kind := parseRegIndex(lower); kind != 0 {
		switch kind {
		case 'r':
			return uint64(c.GPR[n&31]), true
		case 'f':
			return c.FPR[n&31], true
		case 's':
			return uint64(c.SR[n&15]), true
		case 'p':
			return uint64(c.ReadSPR(n & 1023)), true
		}
	}
	return 0, false
}

func (d *DebugPPC) SetRegister(name string, value uint64) bool {
	c := d.cpu
	lower := strings.ToLower(name)
	switch lower {
	case "pc":
		c.PC = uint32(value)
		return true
	case "lr":
		c.SPR[SPR_LR] = uint32(value)
		return true
	case "ctr":
		c.SPR[SPR_CTR] = uint32(value)
		return true
	case "cr":
		c.CR = uint32(value)
		return true
	case "msr":
		c.MSR = uint32(value)
		c.mmuChangeMode()
		return true
	case "xer":
		c.SPR[SPR_XER] = uint32(value)
		return true
	case "fpscr":
		c.FPSCR = uint32(value)
		return true
	}
	if n, kind := parseRegIndex(lower); kind != 0 {
		switch kind {
		case 'r':
			c.GPR[n&31] = uint32(value)
		case 'f':
			c.FPR[n&31] = value
		case 's':
			c.WriteSegReg(n, uint32(value))
		case 'p':
			c.WriteSPR(n&1023, uint32(value))
		}
		return true
	}
	return false
}

// parseRegIndex decodes rNN, fNN, srNN and sprNNN forms; kind is 0 on
// failure, else 'r', 'f', 's' (segment) or 'p' (spr).
func parseRegIndex(lower string) (int, byte) {
	var kind byte
	var num string
	switch {
	case strings.HasPrefix(lower, "spr"):
		kind, num = 'p', lower[3:]
	case strings.HasPrefix(lower, "sr"):
		kind, num = 's', lower[2:]
	case strings.HasPrefix(lower, "r"):
		kind, num = 'r', lower[1:]
	case strings.HasPrefix(lower, "f"):
		kind, num = 'f', lower[1:]
	default:
		return 0, 0
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 0 {
		return 0, 0
	}
	return n, kind
}

func (d *DebugPPC) GetPC() uint64     { return uint64(d.cpu.PC) }
func (d *DebugPPC) SetPC(addr uint64) { d.cpu.PC = uint32(addr) }

func (d *DebugPPC) IsRunning() bool {
	return d.cpu.Running() || d.trapRunning.Load()
}

// Freeze stops execution, preserving architected state.
func (d *DebugPPC) Freeze() {
	if d.trapRunning.Load() {
		close(d.trapStop)
		for d.trapRunning.Load() {
		}
		return
	}
	if d.cpu.Running() {
		d.cpu.PowerOff(PoEnterDebugger)
	}
}

// Resume restarts execution. With breakpoints armed the adapter steps in a
// trap loop so it can stop on a hit; otherwise the native loop runs flat
// out.
func (d *DebugPPC) Resume() {
	d.bpMu.RLock()
	hasBP := len(d.breakpoints) > 0
	d.bpMu.RUnlock()
	if hasBP {
		d.trapStop = make(chan struct{})
		d.trapRunning.Store(true)
		go d.trapLoop()
		return
	}
	go d.cpu.ExecuteInstruction()
}

func (d *DebugPPC) trapLoop() {
	defer d.trapRunning.Store(false)
	d.cpu.running.Store(true)
	for {
		select {
		case <-d.trapStop:
			return
		default:
		}
		d.cpu.ExecSingle()
		if !d.cpu.running.Load() {
			return
		}
		if d.HasBreakpoint(uint64(d.cpu.PC)) {
			d.cpu.running.Store(false)
			fmt.Printf("PPC: breakpoint hit at %08X\n", d.cpu.PC)
			return
		}
	}
}

// RunToBreakpoint executes synchronously until a breakpoint is hit or the
// machine powers off. Used by the monitor's go command.
func (d *DebugPPC) RunToBreakpoint() {
	d.cpu.running.Store(true)
	for d.cpu.running.Load() {
		d.cpu.ExecSingle()
		if d.HasBreakpoint(uint64(d.cpu.PC)) {
			d.cpu.running.Store(false)
			fmt.Printf("PPC: breakpoint hit at %08X\n", d.cpu.PC)
		}
	}
}

// Step executes one instruction. Must only be called when frozen.
func (d *DebugPPC) Step() int {
	d.cpu.ExecSingle()
	return 1
}

// RunUntil resumes execution until PC reaches addr (run-to-cursor).
func (d *DebugPPC) RunUntil(addr uint32) {
	d.cpu.ExecUntil(addr)
}

func (d *DebugPPC) Disassemble(addr uint64, count int) []DisassembledLine {
	lines := make([]DisassembledLine, 0, count)
	for i := 0; i < count; i++ {
		a := uint32(addr) + uint32(i)*4
		line := d.cpu.DisassembleOne(a)
		line.IsPC = a == d.cpu.PC
		lines = append(lines, line)
	}
	return lines
}

func (d *DebugPPC) SetBreakpoint(addr uint64) bool {
	d.bpMu.Lock()
	defer d.bpMu.Unlock()
	d.breakpoints[addr] = true
	return true
}

func (d *DebugPPC) ClearBreakpoint(addr uint64) bool {
	d.bpMu.Lock()
	defer d.bpMu.Unlock()
	if !d.breakpoints[addr] {
		return false
	}
	delete(d.breakpoints, addr)
	return true
}

func (d *DebugPPC) ClearAllBreakpoints() {
	d.bpMu.Lock()
	defer d.bpMu.Unlock()
	d.breakpoints = make(map[uint64]bool)
}

func (d *DebugPPC) ListBreakpoints() []uint64 {
	d.bpMu.RLock()
	defer d.bpMu.RUnlock()
	list := make([]uint64, 0, len(d.breakpoints))
	for a := range d.breakpoints {
		list = append(list, a)
	}
	return list
}

func (d *DebugPPC) HasBreakpoint(addr uint64) bool {
	d.bpMu.RLock()
	defer d.bpMu.RUnlock()
	return d.breakpoints[addr]
}

// ReadMemory reads through the translating debug path; unreadable bytes
// come back as 0xFF, the way a pulled bus floats.
func (d *DebugPPC) ReadMemory(addr uint64, size int) []byte {
	buf := make([]byte, size)
	for i := range buf {
		v, err := d.cpu.MemReadDbg(uint32(addr)+uint32(i), 1)
		if err != nil {
			buf[i] = 0xFF
			continue
		}
		buf[i] = byte(v)
	}
	return buf
}

func (d *DebugPPC) WriteMemory(addr uint64, data []byte) {
	for i, b := range data {
		_ = d.cpu.MemWriteDbg(uint32(addr)+uint32(i), uint64(b), 1)
	}
}

// PrintFPRs dumps the floating-point register file.
func (d *DebugPPC) PrintFPRs() {
	for i := 0; i < 32; i++ {
		fmt.Printf("F%-2d %016X  %g\n", i, d.cpu.FPR[i], d.cpu.ReadFPRDouble(i))
	}
}
