// Command c8 executes CHIP-8 programs.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"github.com/nf/c8/device"
	"github.com/nf/c8/emu"
	"github.com/nf/c8/frontend"
)

func main() {
	log.SetPrefix("c8: ")
	log.SetFlags(0)

	var (
		clockFlag  = flag.String("clock", emu.DefaultClock, "interpreter clock `rate`, in Hz, MHz or GHz")
		hiresFlag  = flag.Bool("hires", false, "use the 128x64 extended display")
		uiFlag     = flag.String("ui", "shiny", "front end: shiny, ebiten, term or none")
		muteFlag   = flag.Bool("mute", false, "disable sound")
		pausedFlag = flag.Bool("paused", false, "start with execution paused")
		devFlag    = flag.Bool("dev", false, "enable developer mode (reload the program when the file changes)")
		debugFlag  = flag.Bool("debug", false, "enable debugger (implies -dev)")

		cpuProfileFlag = flag.String("cpu_profile", "", "write CPU profile to `file`")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <program.ch8>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}

	ui, ok := frontends[*uiFlag]
	if !ok {
		log.Fatalf("unknown front end %q", *uiFlag)
	}
	if *debugFlag && *uiFlag == "term" {
		log.Fatal("-debug cannot share the terminal with -ui term")
	}

	cfg := emu.DefaultConfig()
	cfg.Clock = *clockFlag
	cfg.Paused = *pausedFlag
	if *hiresFlag {
		cfg.Mode = device.Extended
	}
	romFile := flag.Arg(0)
	rom, err := os.ReadFile(romFile)
	if err != nil {
		log.Fatal(err)
	}
	e, err := emu.New(cfg, rom)
	if err != nil {
		log.Fatal(err)
	}

	var cpuProfile io.Closer
	if prof := *cpuProfileFlag; prof != "" {
		f, err := os.Create(prof)
		if err != nil {
			log.Fatalf("creating CPU profile file: %v", err)
		}
		pprof.StartCPUProfile(f)
		cpuProfile = f
	}

	if *devFlag || *debugFlag {
		err = devMode(e, ui, !*muteFlag, *debugFlag, romFile)
	} else {
		err = run(e, ui, !*muteFlag)
	}

	if f := cpuProfile; f != nil {
		pprof.StopCPUProfile()
		f.Close()
	}

	if err != nil {
		log.Fatal(err)
	}
}

var frontends = map[string]func(frontend.Machine) error{
	"shiny":  frontend.RunShiny,
	"ebiten": frontend.RunEbiten,
	"term":   frontend.RunTerm,
	"none":   frontend.Wait,
}

// run executes e, presenting it with ui, until the machine stops.
func run(e *emu.Emulator, ui func(frontend.Machine) error, sound bool) error {
	m := frontend.FromEmulator(e)
	if sound {
		b, err := frontend.NewBeeper()
		if err != nil {
			log.Printf("audio: %v", err)
		} else {
			defer b.Close()
			go frontend.Beep(m, b)
		}
	}
	go e.Run()
	err := ui(m)
	e.Quit()
	<-e.Done()
	return err
}
