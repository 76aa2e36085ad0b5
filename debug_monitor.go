// debug_monitor.go - Terminal machine monitor for Intuition PPC

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
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// MachineMonitor is the interactive debugger front end: a raw-mode
// terminal console driving a DebuggableCPU.
type MachineMonitor struct {
	dbg     *DebugPPC
	machine *PowerMac
}

func NewMachineMonitor(machine *PowerMac) *MachineMonitor {
	return &MachineMonitor{dbg: machine.Dbg, machine: machine}
}

// Run takes over the terminal until the user resumes or quits. The x/term
// Terminal gives us raw mode, line editing and history in one place.
func (m *MachineMonitor) Run() {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "monitor: cannot enter raw mode: %v\n", err)
		return
	}
	defer term.Restore(fd, oldState)

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, "ppc> ")

	fmt.Fprintln(t, "MACHINE MONITOR - type ? for help")
	m.showRegisters(t)

	for {
		line, err := t.ReadLine()
		if err != nil {
			return
		}
		if !m.execute(t, strings.TrimSpace(line)) {
			return
		}
	}
}

// execute runs one monitor command; returns false when the monitor should
// exit.
func (m *MachineMonitor) execute(t *term.Terminal, line string) bool {
	if line == "" {
		return true
	}
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "?", "help":
		m.showHelp(t)
	case "r", "regs":
		if len(args) == 2 {
			val, err := parseNum(args[1])
			if err != nil || !m.dbg.SetRegister(args[0], val) {
				fmt.Fprintf(t, "bad register or value: %s\n", line)
				return true
			}
			fmt.Fprintf(t, "%s = %08X\n", strings.ToUpper(args[0]), val)
			return true
		}
		if len(args) == 1 {
			if val, ok := m.dbg.GetRegister(args[0]); ok {
				fmt.Fprintf(t, "%s = %08X\n", strings.ToUpper(args[0]), val)
			} else {
				fmt.Fprintf(t, "unknown register %q\n", args[0])
			}
			return true
		}
		m.showRegisters(t)
	case "f", "fprs":
		for i := 0; i < 32; i++ {
			fmt.Fprintf(t, "F%-2d %016X  %g\n", i, m.dbg.cpu.FPR[i], m.dbg.cpu.ReadFPRDouble(i))
		}
	case "s", "step":
		n := 1
		if len(args) > 0 {
			if v, err := parseNum(args[0]); err == nil {
				n = int(v)
			}
		}
		for i := 0; i < n; i++ {
			m.dbg.Step()
		}
		m.showRegisters(t)
		m.showDisassembly(t, uint32(m.dbg.GetPC()), 4)
	case "until":
		if len(args) != 1 {
			fmt.Fprintln(t, "usage: until <addr>")
			return true
		}
		addr, err := parseNum(args[0])
		if err != nil {
			fmt.Fprintf(t, "bad address %q\n", args[0])
			return true
		}
		m.dbg.RunUntil(uint32(addr))
		m.showRegisters(t)
	case "g", "go":
		if len(m.dbg.ListBreakpoints()) > 0 {
			// Run inside the monitor so a breakpoint hit drops straight
			// back to the prompt.
			m.dbg.RunToBreakpoint()
			m.showRegisters(t)
			m.showDisassembly(t, uint32(m.dbg.GetPC()), 4)
			return true
		}
		return false
	case "b", "break":
		if len(args) == 1 {
			if addr, err := parseNum(args[0]); err == nil {
				m.dbg.SetBreakpoint(addr)
				fmt.Fprintf(t, "breakpoint at %08X\n", addr)
			}
		}
	case "bc":
		if len(args) == 1 {
			if addr, err := parseNum(args[0]); err == nil {
				m.dbg.ClearBreakpoint(addr)
			}
		}
	case "bl":
		for _, a := range m.dbg.ListBreakpoints() {
			fmt.Fprintf(t, "  %08X\n", a)
		}
	case "m", "mem":
		if len(args) < 1 {
			fmt.Fprintln(t, "usage: m <addr> [len]")
			return true
		}
		addr, err := parseNum(args[0])
		if err != nil {
			return true
		}
		length := uint64(64)
		if len(args) > 1 {
			if v, err := parseNum(args[1]); err == nil {
				length = v
			}
		}
		m.hexDump(t, uint32(addr), int(length))
	case "mw":
		if len(args) != 2 {
			fmt.Fprintln(t, "usage: mw <addr> <u32>")
			return true
		}
		addr, err1 := parseNum(args[0])
		val, err2 := parseNum(args[1])
		if err1 != nil || err2 != nil {
			return true
		}
		if err := m.dbg.cpu.MemWriteDbg(uint32(addr), val, 4); err != nil {
			fmt.Fprintf(t, "write failed: %v\n", err)
		}
	case "d", "disas":
		addr := uint32(m.dbg.GetPC())
		if len(args) > 0 {
			if v, err := parseNum(args[0]); err == nil {
				addr = uint32(v)
			}
		}
		m.showDisassembly(t, addr, 12)
	case "script":
		if len(args) != 1 {
			fmt.Fprintln(t, "usage: script <file.lua>")
			return true
		}
		if err := RunDebugScript(m.dbg, args[0], t); err != nil {
			fmt.Fprintf(t, "script error: %v\n", err)
		}
	case "reset":
		m.machine.Reset()
		m.showRegisters(t)
	case "q", "quit":
		m.machine.CPU.PowerOff(PoQuit)
		return false
	default:
		fmt.Fprintf(t, "unknown command %q - type ? for help\n", cmd)
	}
	return true
}

func (m *MachineMonitor) showHelp(t io.Writer) {
	fmt.Fprint(t, `  r [name [val]]   show/set registers
  f                show FPRs
  s [n]            step n instructions
  until <addr>     run to cursor
  g                resume execution
  b/bc/bl          set/clear/list breakpoints
  m <addr> [len]   dump memory (translated)
  mw <addr> <val>  write word
  d [addr]         disassemble
  script <file>    run Lua debug script
  reset            reset the machine
  q                power off and quit
`)
}

func (m *MachineMonitor) showRegisters(t io.Writer) {
	c := m.dbg.cpu
	for i := 0; i < 32; i += 8 {
		for j := i; j < i+8; j++ {
			fmt.Fprintf(t, "R%-2d %08X  ", j, c.GPR[j])
		}
		fmt.Fprintln(t)
	}
	fmt.Fprintf(t, "PC  %08X  LR  %08X  CTR %08X  CR  %08X\n",
		c.PC, c.SPR[SPR_LR], c.SPR[SPR_CTR], c.CR)
	fmt.Fprintf(t, "MSR %08X  XER %08X  DSISR %08X  DAR %08X\n",
		c.MSR, c.SPR[SPR_XER], c.SPR[SPR_DSISR], c.SPR[SPR_DAR])
}

func (m *MachineMonitor) showDisassembly(t io.Writer, addr uint32, count int) {
	for _, line := range m.dbg.Disassemble(uint64(addr), count) {
		marker := "  "
		if line.IsPC {
			marker = "=>"
		}
		fmt.Fprintf(t, "%s %08X: %s  %s\n", marker, uint32(line.Address), line.HexBytes, line.Mnemonic)
	}
}

func (m *MachineMonitor) hexDump(t io.Writer, addr uint32, length int) {
	data := m.dbg.ReadMemory(uint64(addr), length)
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		fmt.Fprintf(t, "%08X: ", addr+uint32(off))
		for i := off; i < end; i++ {
			fmt.Fprintf(t, "%02X ", data[i])
		}
		fmt.Fprint(t, " ")
		for i := off; i < end; i++ {
			b := data[i]
			if b < 0x20 || b > 0x7E {
				b = '.'
			}
			fmt.Fprintf(t, "%c", b)
		}
		fmt.Fprintln(t)
	}
}

// parseNum accepts decimal, 0x-prefixed and $-prefixed hex.
func parseNum(s string) (uint64, error) {
	if strings.HasPrefix(s, "$") {
		return strconv.ParseUint(s[1:], 16, 64)
	}
	return strconv.ParseUint(s, 0, 64)
}
