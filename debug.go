package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/nf/c8/chip8"
	"github.com/nf/c8/emu"
)

type debugger struct {
	run *emu.Runner

	log   *tview.TextView
	regs  *tview.TextView
	state *tview.TextView
	input *tview.InputField
	cols  *tview.Flex
	rows  *tview.Flex
	app   *tview.Application
}

var debugCommands = []string{"pause", "resume", "step", "break", "load", "exit"}

func newDebugger(r *emu.Runner) *debugger {
	d := &debugger{
		run: r,
		log: tview.NewTextView().
			SetMaxLines(1000),
		regs: tview.NewTextView().
			SetWrap(false).
			SetTextAlign(tview.AlignRight),
		state: tview.NewTextView().
			SetWrap(false),
		input: tview.NewInputField(),
		cols:  tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
	}
	d.log.SetChangedFunc(func() { d.app.Draw() })
	d.regs.SetBackgroundColor(tcell.ColorDarkBlue)
	d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	d.cols.
		AddItem(d.regs, 0, 1, false).
		AddItem(d.log, 0, 2, false)
	d.rows.
		AddItem(d.cols, 0, 1, false).
		AddItem(d.state, 2, 0, false).
		AddItem(d.input, 1, 0, true)
	d.app.SetRoot(d.rows, true)

	d.input.SetAutocompleteFunc(func(t string) (entries []string) {
		if t == "" || strings.Contains(t, " ") {
			return nil
		}
		for _, c := range debugCommands {
			if strings.HasPrefix(c, t) {
				entries = append(entries, c)
			}
		}
		return
	})
	d.input.SetAutocompletedFunc(func(t string, index, src int) bool {
		if src != tview.AutocompletedNavigate {
			d.input.SetText(t)
		}
		return src == tview.AutocompletedEnter || src == tview.AutocompletedClick
	})
	d.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		cmd := d.input.GetText()
		if cmd == "" {
			return
		}
		d.input.SetText("")
		d.command(cmd)
	})
	return d
}

func (d *debugger) command(cmd string) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(cmd), " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "exit", "quit":
		d.app.Stop()
	case "p", "pause":
		d.run.Pause()
	case "c", "resume":
		d.run.Resume()
	case "s", "step":
		d.run.Step()
	case "b", "break":
		if arg == "" {
			d.run.SetBreak(-1)
			log.Print("cleared break")
			return
		}
		addr, err := strconv.ParseUint(strings.TrimPrefix(arg, "$"), 16, 12)
		if err != nil {
			log.Printf("invalid addr %q", arg)
			return
		}
		d.run.SetBreak(int(addr))
		log.Printf("set break %.3x", addr)
	case "l", "load":
		rom, err := os.ReadFile(arg)
		if err != nil {
			log.Print(err)
			return
		}
		d.run.Load(rom)
		log.Printf("loaded %s (%d bytes)", arg, len(rom))
	default:
		log.Printf("unknown command %q (commands: %s)", cmd, strings.Join(debugCommands, ", "))
	}
}

func (d *debugger) Run() error { return d.app.Run() }

// poll refreshes the register and state panes until done is closed.
func (d *debugger) poll(done <-chan struct{}) {
	t := time.NewTicker(time.Second / 15)
	defer t.Stop()
	var last emu.Status
	for {
		select {
		case <-done:
			return
		case <-t.C:
		}
		s := d.run.State()
		if s == last {
			continue
		}
		last = s
		var (
			regs  = regsMsg(s.State)
			state = stateMsg(s)
		)
		d.app.QueueUpdateDraw(func() {
			switch {
			case !s.Running && s.Break == int(s.PC):
				d.state.SetTextColor(tcell.ColorYellow)
				d.state.SetBackgroundColor(tcell.ColorDarkBlue)
			case !s.Running:
				d.state.SetTextColor(tcell.ColorWhite)
				d.state.SetBackgroundColor(tcell.ColorDarkBlue)
			default:
				d.state.SetTextColor(tcell.ColorBlack)
				d.state.SetBackgroundColor(tcell.ColorDarkGrey)
			}
			d.regs.SetText(regs)
			d.state.SetText(state)
		})
	}
}

func stateMsg(s emu.Status) string {
	kind := "       "
	switch {
	case !s.Running && s.Break == int(s.PC):
		kind = "[break]"
	case !s.Running:
		kind = "[pause]"
	case s.Waiting:
		kind = "[key?] "
	}
	return fmt.Sprintf("%.3x %.4x %s %s\nI: %.3x stack: %v",
		s.PC, s.Word, kind, chip8.Disasm(s.Word), s.I, s.Stack)
}

func regsMsg(s chip8.State) string {
	var b strings.Builder
	for i, v := range s.V {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "V%X %.2x", i, v)
	}
	return b.String()
}
