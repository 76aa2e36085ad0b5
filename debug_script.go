// debug_script.go - Lua scripting bindings for the machine monitor

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
debug_script.go - Lua bindings

The monitor's script command runs a Lua file with the debug surface bound
into the global environment:

    getreg(name)         -> value
    setreg(name, value)
    peek(addr [, size])  -> value (translated read, size 1/2/4/8)
    poke(addr, value [, size])
    step([n])
    pc()                 -> current PC
    disas(addr [, n])
    print(...)           -> monitor console

Faulting peeks return nil plus an error string, so scripts can probe
unmapped space without disturbing the guest.
*/

package main

import (
	"fmt"
	"io"

	lua "github.com/yuin/gopher-lua"
)

// RunDebugScript executes a Lua debug script against the CPU adapter,
// writing script output to out.
func RunDebugScript(d *DebugPPC, path string, out io.Writer) error {
	L := lua.NewState()
	defer L.Close()

	L.SetGlobal("getreg", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		val, ok := d.GetRegister(name)
		if !ok {
			L.Push(lua.LNil)
			L.Push(lua.LString("unknown register " + name))
			return 2
		}
		L.Push(lua.LNumber(val))
		return 1
	}))

	L.SetGlobal("setreg", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		val := uint64(L.CheckNumber(2))
		if !d.SetRegister(name, val) {
			L.RaiseError("unknown register %s", name)
		}
		return 0
	}))

	L.SetGlobal("peek", L.NewFunction(func(L *lua.LState) int {
		addr := uint32(L.CheckNumber(1))
		size := uint32(L.OptInt(2, 4))
		val, err := d.cpu.MemReadDbg(addr, size)
		if err != nil {
			L.Push(lua.LNil)
			L.Push(lua.LString(err.Error()))
			return 2
		}
		L.Push(lua.LNumber(val))
		return 1
	}))

	L.SetGlobal("poke", L.NewFunction(func(L *lua.LState) int {
		addr := uint32(L.CheckNumber(1))
		val := uint64(L.CheckNumber(2))
		size := uint32(L.OptInt(3, 4))
		if err := d.cpu.MemWriteDbg(addr, val, size); err != nil {
			L.RaiseError("poke failed: %s", err.Error())
		}
		return 0
	}))

	L.SetGlobal("step", L.NewFunction(func(L *lua.LState) int {
		n := L.OptInt(1, 1)
		for i := 0; i < n; i++ {
			d.Step()
		}
		return 0
	}))

	L.SetGlobal("pc", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(d.GetPC()))
		return 1
	}))

	L.SetGlobal("disas", L.NewFunction(func(L *lua.LState) int {
		addr := uint64(L.CheckNumber(1))
		n := L.OptInt(2, 1)
		for _, line := range d.Disassemble(addr, n) {
			fmt.Fprintf(out, "%08X: %s  %s\n", uint32(line.Address), line.HexBytes, line.Mnemonic)
		}
		return 0
	}))

	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		top := L.GetTop()
		for i := 1; i <= top; i++ {
			if i > 1 {
				fmt.Fprint(out, "\t")
			}
			fmt.Fprint(out, L.ToStringMeta(L.Get(i)).String())
		}
		fmt.Fprintln(out)
		return 0
	}))

	return L.DoFile(path)
}
