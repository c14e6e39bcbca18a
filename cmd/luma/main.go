// Command luma is the CLI entry point: no arguments starts the REPL, one
// argument runs that file, and --help/--version print usage info
// (grounded on the teacher's own main.go flag dispatch).
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/Anzlc/lua-like-script/host"
	"github.com/Anzlc/lua-like-script/repl"
)

const version = "luma 0.1.0"

func main() {
	args := os.Args[1:]

	if len(args) == 0 {
		runREPL()
		return
	}

	switch args[0] {
	case "--help", "-h":
		printHelp()
	case "--version", "-v":
		fmt.Println(version)
	default:
		runFile(args[0])
	}
}

func runREPL() {
	r, err := repl.New(os.Stdout)
	if err != nil {
		fatal(err)
	}
	if err := r.Run(); err != nil {
		fatal(err)
	}
}

func runFile(path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		fatal(err)
	}
	s := host.NewInterpreter()
	if err := s.Run(string(src)); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(version)
	fmt.Println("usage: luma [script.luma] | --help | --version")
	fmt.Println("  no arguments     start the interactive REPL")
	fmt.Println("  script.luma      run the given script and exit")
}

func fatal(err error) {
	color.New(color.FgRed).Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
