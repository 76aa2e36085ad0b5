// machine_ppc.go - Minimal Power Macintosh machine glue

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
machine_ppc.go - Machine Construction

The smallest Power Macintosh that can run code: system RAM at zero, the
boot ROM high, and a one-register serial-out device for console output.
Real machines hang a device tree off the PCI bridges here; those are
collaborators outside the CPU core and are deliberately absent.

Memory map:

    0x00000000 - RAM       (configurable size)
    0xF3013000 - SERIALOUT (one byte-wide transmit register)
    0xFFC00000 - ROM       (4MiB Old World image), or
    0xFFF00000 - ROM       (smaller images, covering the vectors)
*/

package main

import (
	"fmt"
	"io"
	"os"
)

const (
	SERIAL_OUT_BASE = 0xF3013000
	SERIAL_OUT_SIZE = 0x40
)

// MachineConfig carries the CLI-selected machine parameters.
type MachineConfig struct {
	RAMSize    uint32
	ROMImage   []byte
	CPUVersion uint32
	TBFreq     uint64
}

// PowerMac owns the machine: memory controller, CPU, debugger adapter and
// the console device.
type PowerMac struct {
	Mem    *MemCtrl
	CPU    *PPCCPU
	Dbg    *DebugPPC
	Serial *SerialOutDevice
}

// NewPowerMac wires the machine together and seals the address map.
func NewPowerMac(cfg MachineConfig) (*PowerMac, error) {
	if cfg.RAMSize == 0 {
		cfg.RAMSize = 64 * 1024 * 1024
	}
	if cfg.CPUVersion == 0 {
		cfg.CPUVersion = PPC_VER_MPC750
	}

	mem := NewMemCtrl()
	if err := mem.AddRAMRegion(0, cfg.RAMSize); err != nil {
		return nil, err
	}

	serial := &SerialOutDevice{out: os.Stdout}
	if err := mem.AddMMIORegion(SERIAL_OUT_BASE, SERIAL_OUT_SIZE, serial); err != nil {
		return nil, err
	}

	if len(cfg.ROMImage) > 0 {
		base := uint32(0xFFF00000)
		if len(cfg.ROMImage) >= 4*1024*1024 {
			base = 0xFFC00000
		}
		if err := mem.AddROMRegion(base, cfg.ROMImage); err != nil {
			return nil, err
		}
	}

	mem.Seal()

	cpu := NewPPCCPU(mem, cfg.CPUVersion, false, cfg.TBFreq)
	machine := &PowerMac{
		Mem:    mem,
		CPU:    cpu,
		Dbg:    NewDebugPPC(cpu),
		Serial: serial,
	}
	return machine, nil
}

// LoadImage copies a raw code image into RAM and points the CPU at it with
// translation off. Used for bare-metal test programs.
func (m *PowerMac) LoadImage(image []byte, loadAddr, entry uint32) error {
	rng := m.Mem.FindRange(loadAddr)
	if rng == nil || rng.Type != RT_RAM {
		return fmt.Errorf("load address 0x%08X is not RAM", loadAddr)
	}
	if int(loadAddr-rng.Start)+len(image) > len(rng.Mem) {
		return fmt.Errorf("image of %d bytes does not fit at 0x%08X", len(image), loadAddr)
	}
	copy(rng.Mem[loadAddr-rng.Start:], image)
	m.CPU.MSR &^= MSR_IP
	m.CPU.mmuChangeMode()
	m.CPU.PC = entry
	return nil
}

// Reset powers the machine back to its initial state, bus first so the
// CPU's first fetch sees clean memory.
func (m *PowerMac) Reset() {
	for _, c := range m.resettables() {
		c.Reset()
	}
}

// SerialOutDevice is the console transmit register: any store to offset 0
// emits its low byte. Reads report "transmitter always ready".
type SerialOutDevice struct {
	out io.Writer
}

func (s *SerialOutDevice) DeviceName() string { return "serial-out" }

func (s *SerialOutDevice) Read(rgnStart uint32, offset uint32, size int) uint64 {
	if offset == 4 {
		return 1 // TX ready
	}
	return 0
}

func (s *SerialOutDevice) Write(rgnStart uint32, offset uint32, value uint64, size int) {
	if offset == 0 {
		fmt.Fprintf(s.out, "%c", byte(value))
	}
}
