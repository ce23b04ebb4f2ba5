package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/nerd-lang/nerd/internal/atom"
	"github.com/nerd-lang/nerd/internal/config"
	"github.com/nerd-lang/nerd/internal/vm"
)

// Version can be overridden at build time using:
// -ldflags "-X main.Version=v1.2.3"
var Version = "dev"

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	configPath := flag.String("config", config.DefaultPath(), "path to the settings file")
	scratchSize := flag.Int64("scratch", 0, "initial scratch arena size in bytes (overrides config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("nerd %s\n", Version)
		return
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if *scratchSize > 0 {
		settings.ScratchSize = *scratchSize
	}

	cfg := vm.Config{
		Output:      func(m string) { fmt.Fprintln(os.Stderr, m) },
		ScratchSize: settings.ScratchSize,
	}

	if args := flag.Args(); len(args) > 0 {
		runFiles(&cfg, args)
		return
	}

	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		runREPL(&cfg, settings)
		return
	}

	runStdin(&cfg)
}

// runFiles executes each file in order inside one VM, printing the last
// file's result.
func runFiles(cfg *vm.Config, paths []string) {
	machine, err := vm.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer machine.Close()

	var result atom.Atom
	for _, path := range paths {
		source, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		result, err = machine.Run(path, source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			os.Exit(1)
		}
	}
	printResult(machine, result)
}

// runStdin reads the whole of standard input and executes it once.
func runStdin(cfg *vm.Config) {
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %s\n", err)
		os.Exit(1)
	}

	machine, err := vm.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer machine.Close()

	result, err := machine.Run("<stdin>", source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
	printResult(machine, result)
}

func printResult(machine *vm.VM, result atom.Atom) {
	if result.Kind == atom.KindNil {
		return
	}
	fmt.Println(machine.ToString(result, vm.ModeNormal))
}
