// main.go - Main entry point for the Intuition PPC emulator

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
	"flag"
	"fmt"
	"os"
)

func boilerPlate() {
	fmt.Println("Intuition PPC", Version, "- a PowerPC Power Macintosh emulator core")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionPPC")
	fmt.Println("License: GPLv3 or later")
}

func main() {
	var (
		romPath  string
		imgPath  string
		ramMB    uint
		cpuName  string
		tbFreq   uint64
		debug    bool
		execAddr uint64
	)

	flag.StringVar(&romPath, "rom", "", "boot ROM image")
	flag.StringVar(&imgPath, "img", "", "raw code image loaded into RAM")
	flag.UintVar(&ramMB, "ram", 64, "RAM size in MiB")
	flag.StringVar(&cpuName, "cpu", "750", "CPU model: 601, 603, 604, 750")
	flag.Uint64Var(&tbFreq, "tbfreq", 16705000, "timebase frequency in Hz")
	flag.BoolVar(&debug, "debug", false, "enter the machine monitor before running")
	flag.Uint64Var(&execAddr, "exec", 0x1000, "entry point for -img execution")
	flag.Parse()

	boilerPlate()

	version, ok := map[string]uint32{
		"601": PPC_VER_MPC601,
		"603": PPC_VER_MPC603,
		"604": PPC_VER_MPC604,
		"750": PPC_VER_MPC750,
	}[cpuName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown CPU model %q\n", cpuName)
		os.Exit(1)
	}

	cfg := MachineConfig{
		RAMSize:    uint32(ramMB) * 1024 * 1024,
		CPUVersion: version,
		TBFreq:     tbFreq,
	}

	if romPath != "" {
		image, err := os.ReadFile(romPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot read ROM: %v\n", err)
			os.Exit(1)
		}
		cfg.ROMImage = image
	}

	machine, err := NewPowerMac(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "machine construction failed: %v\n", err)
		os.Exit(1)
	}

	if imgPath != "" {
		image, err := os.ReadFile(imgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot read image: %v\n", err)
			os.Exit(1)
		}
		if err := machine.LoadImage(image, uint32(execAddr), uint32(execAddr)); err != nil {
			fmt.Fprintf(os.Stderr, "cannot load image: %v\n", err)
			os.Exit(1)
		}
	} else if romPath == "" {
		fmt.Fprintln(os.Stderr, "nothing to run: pass -rom or -img")
		os.Exit(1)
	}

	if debug {
		NewMachineMonitor(machine).Run()
		if !machine.CPU.Running() && machine.CPU.powerOffReason == PoQuit {
			return
		}
	}

	machine.CPU.ExecuteInstruction()

	if machine.CPU.powerOffReason == PoHostFatal {
		os.Exit(1)
	}
}
