package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/nf/c8/emu"
	"github.com/nf/c8/frontend"
)

// devMode runs e like run, and reloads romFile into the machine whenever
// the file changes. If debug is set it also runs the debugger.
func devMode(e *emu.Emulator, ui func(frontend.Machine) error, sound, debug bool, romFile string) error {
	romFile = filepath.Clean(romFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(romFile)); err != nil {
		return err
	}

	if debug {
		d := newDebugger(e.Runner)
		log.SetPrefix("")
		log.SetOutput(d.log)
		go func() {
			if err := d.Run(); err != nil {
				log.Fatalf("debug: %v", err)
			}
			log.SetOutput(os.Stderr)
			log.SetPrefix("c8: ")
			e.Quit()
		}()
		go d.poll(e.Fuse.Done())
	}

	go func() {
		var reload <-chan time.Time
		for {
			select {
			case <-reload:
				reload = nil
				rom, err := os.ReadFile(romFile)
				if err != nil {
					log.Printf("dev: %v", err)
					break
				}
				log.Printf("dev: reload %s (%d bytes)", filepath.Base(romFile), len(rom))
				e.Runner.Load(rom)
			case ev := <-watcher.Event:
				// Editors and build tools write in bursts;
				// reload once the file has settled.
				if filepath.Clean(ev.Name) == romFile && !ev.IsAttrib() {
					reload = time.After(100 * time.Millisecond)
				}
			case err := <-watcher.Error:
				log.Printf("dev: watcher: %v", err)
			case <-e.Fuse.Done():
				return
			}
		}
	}()

	return run(e, ui, sound)
}
