// memory_bus.go - Physical address map and memory controller for Intuition PPC

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionPPC
License: GPLv3 or later
*/

/*
memory_bus.go - Physical Address Map for the Intuition PPC machine

This module implements the memory controller side of the machine: a table of
disjoint physical address ranges, each backed either by host memory (RAM and
ROM) or by a memory-mapped device. The CPU core never touches guest memory
directly; it resolves a physical address to a range via FindRange and then
reads or writes through the range's backing store. All multi-byte accesses
through the backing store are big-endian, matching the PowerPC OEA/UISA
conventions regardless of host byte order.

Ranges are registered during machine construction and the map is sealed
before the interpreter starts. After sealing, the table is read-only, which
is what lets the MMU cache range lookups (and TLB payloads derived from
them) without further locking.
*/

package main

import (
	"fmt"
	"sort"
	"sync/atomic"
)

const (
	RT_RAM  = 1 << 0
	RT_ROM  = 1 << 1
	RT_MMIO = 1 << 2
)

// MMIODevice is the contract a memory-mapped device exposes to the CPU.
// Reads and writes run on the CPU thread; devices must not block.
type MMIODevice interface {
	DeviceName() string
	Read(rgnStart uint32, offset uint32, size int) uint64
	Write(rgnStart uint32, offset uint32, value uint64, size int)
}

// AddressMapEntry describes one physical address range. Mem is non-nil for
// RAM/ROM ranges, Dev for MMIO ranges. ID is the entry's stable slot index
// in the controller table; TLB payloads refer to MMIO ranges by this ID
// rather than by pointer.
type AddressMapEntry struct {
	Start uint32
	End   uint32 // inclusive
	Type  int
	Mem   []byte
	Dev   MMIODevice
	ID    int

	romWarned bool // one ROM-write warning per range per power-on
}

// MemCtrl is the machine's memory controller: the slot table of physical
// ranges plus registration helpers. It is not internally locked; all
// registration happens before Seal, all lookups after.
type MemCtrl struct {
	ranges []*AddressMapEntry
	sealed atomic.Bool
}

func NewMemCtrl() *MemCtrl {
	return &MemCtrl{}
}

func (mc *MemCtrl) addEntry(entry *AddressMapEntry) error {
	if mc.sealed.Load() {
		return fmt.Errorf("memory map is sealed, cannot add range at 0x%08X", entry.Start)
	}
	if entry.End < entry.Start {
		return fmt.Errorf("invalid range 0x%08X..0x%08X", entry.Start, entry.End)
	}
	for _, r := range mc.ranges {
		if entry.Start <= r.End && r.Start <= entry.End {
			return fmt.Errorf("range 0x%08X..0x%08X overlaps %s at 0x%08X",
				entry.Start, entry.End, r.describe(), r.Start)
		}
	}
	mc.ranges = append(mc.ranges, entry)
	sort.Slice(mc.ranges, func(i, j int) bool {
		return mc.ranges[i].Start < mc.ranges[j].Start
	})
	for i, r := range mc.ranges {
		r.ID = i
	}
	return nil
}

// AddRAMRegion registers a zero-filled RAM range of the given size.
func (mc *MemCtrl) AddRAMRegion(start, size uint32) error {
	return mc.addEntry(&AddressMapEntry{
		Start: start,
		End:   start + size - 1,
		Type:  RT_RAM,
		Mem:   make([]byte, size),
	})
}

// AddROMRegion registers a ROM range and copies the image into it.
func (mc *MemCtrl) AddROMRegion(start uint32, image []byte) error {
	mem := make([]byte, len(image))
	copy(mem, image)
	return mc.addEntry(&AddressMapEntry{
		Start: start,
		End:   start + uint32(len(image)) - 1,
		Type:  RT_ROM,
		Mem:   mem,
	})
}

// AddMMIORegion registers a device-backed range.
func (mc *MemCtrl) AddMMIORegion(start, size uint32, dev MMIODevice) error {
	return mc.addEntry(&AddressMapEntry{
		Start: start,
		End:   start + size - 1,
		Type:  RT_MMIO,
		Dev:   dev,
	})
}

// Seal freezes the address map. Called once by the machine before the
// interpreter starts; afterwards FindRange results may be cached freely.
func (mc *MemCtrl) Seal() {
	mc.sealed.Store(true)
}

// FindRange returns the range containing addr, or nil if addr is unmapped.
// Binary search over the sorted slot table.
func (mc *MemCtrl) FindRange(addr uint32) *AddressMapEntry {
	lo, hi := 0, len(mc.ranges)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		r := mc.ranges[mid]
		switch {
		case addr < r.Start:
			hi = mid - 1
		case addr > r.End:
			lo = mid + 1
		default:
			return r
		}
	}
	return nil
}

// RangeByID returns the range with the given stable slot index.
func (mc *MemCtrl) RangeByID(id int) *AddressMapEntry {
	if id < 0 || id >= len(mc.ranges) {
		return nil
	}
	return mc.ranges[id]
}

// Reset clears RAM contents and re-arms ROM write warnings. ROM and MMIO
// ranges keep their contents/devices.
func (mc *MemCtrl) Reset() {
	for _, r := range mc.ranges {
		if r.Type == RT_RAM {
			clear(r.Mem)
		}
		r.romWarned = false
	}
}

func (r *AddressMapEntry) describe() string {
	switch r.Type {
	case RT_RAM:
		return "RAM"
	case RT_ROM:
		return "ROM"
	case RT_MMIO:
		if r.Dev != nil {
			return "MMIO:" + r.Dev.DeviceName()
		}
		return "MMIO"
	}
	return "???"
}
