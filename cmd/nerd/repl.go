package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/nerd-lang/nerd/internal/config"
	"github.com/nerd-lang/nerd/internal/vm"
)

// REPL commands start with a comma so they can never collide with
// source text.
const (
	cmdQuit    = ",q"
	cmdRestart = ",r"
	cmdHelp    = ",h"
)

func runREPL(cfg *vm.Config, settings config.Settings) {
	fmt.Printf("nerd %s\n", Version)
	fmt.Printf("Type %s to quit, %s to restart, %s for help.\n", cmdQuit, cmdRestart, cmdHelp)

	machine, err := vm.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer func() { machine.Close() }()

	history := newHistory(settings.HistoryFile, settings.HistorySize)
	defer history.save()

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(settings.Prompt)
		if !in.Scan() {
			fmt.Println()
			return
		}
		line := in.Text()

		switch strings.TrimSpace(line) {
		case "":
			continue
		case cmdQuit:
			return
		case cmdRestart:
			machine.Close()
			machine, err = vm.Open(cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				os.Exit(1)
			}
			fmt.Println("restarted")
			continue
		case cmdHelp:
			fmt.Printf("%s  quit\n%s  restart the interpreter\n%s  this help\n", cmdQuit, cmdRestart, cmdHelp)
			continue
		}

		history.add(line)

		result, err := machine.Run("<stdin>", []byte(line))
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			continue
		}
		fmt.Printf("==> %s\n", machine.ToString(result, vm.ModeREPL))
	}
}

// history keeps the most recent input lines, optionally persisted to a
// file between sessions.
type history struct {
	path  string
	limit int
	lines []string
}

func newHistory(path string, limit int) *history {
	h := &history{path: path, limit: limit}
	if path == "" {
		return h
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return h
	}
	for _, line := range strings.Split(string(data), "\n") {
		if line != "" {
			h.lines = append(h.lines, line)
		}
	}
	h.trim()
	return h
}

func (h *history) add(line string) {
	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		return
	}
	h.lines = append(h.lines, line)
	h.trim()
}

func (h *history) trim() {
	if h.limit > 0 && len(h.lines) > h.limit {
		h.lines = h.lines[len(h.lines)-h.limit:]
	}
}

func (h *history) save() {
	if h.path == "" || len(h.lines) == 0 {
		return
	}
	data := strings.Join(h.lines, "\n") + "\n"
	if err := os.WriteFile(h.path, []byte(data), 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save history: %s\n", err)
	}
}
