package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"multicalc.com/client/calculator"
	"multicalc.com/client/tui"
	"multicalc.com/server/icalc"
	"multicalc.com/server/render"
	"multicalc.com/server/shared"
)

// paramFlags collects repeated -param name=value flags.
type paramFlags map[string]string

func (p paramFlags) String() string { return fmt.Sprint(map[string]string(p)) }

func (p paramFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("want name=value, got %q", s)
	}
	p[strings.TrimSpace(name)] = value
	return nil
}

func main() {
	var server string
	var port int
	var local bool
	var mode, expression, logFile string
	params := paramFlags{}
	flag.StringVar(&server, "server", "127.0.0.1", "Server host")
	flag.IntVar(&port, "port", 3410, "Server RPC port")
	flag.BoolVar(&local, "local", false, "Evaluate in process instead of calling a server")
	flag.StringVar(&mode, "mode", "", "Evaluate once in this mode and print the result")
	flag.StringVar(&expression, "expr", "", "Expression for -mode")
	flag.Var(params, "param", "Mode parameter as name=value (repeatable)")
	flag.StringVar(&logFile, "log", "", "Log file for the interactive UI")
	flag.Parse()

	var calc calculator.Calculator
	if local {
		calc = calculator.NewLocal(icalc.NewCalcWithOptions(icalc.DefaultOptions()))
	} else {
		log.Printf("Connecting to server at %s:%d", server, port)
		remote, err := calculator.Dial(server, port)
		if err != nil {
			log.Fatalf("%s", err)
		}
		calc = remote
	}
	defer calc.Close()

	if mode != "" {
		code := once(calc, shared.EvaluateArgs{Mode: mode, Expression: expression, Params: params})
		calc.Close()
		os.Exit(code)
	}

	// The UI owns the terminal; logs go to a file or nowhere.
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "calc")
		if err != nil {
			log.Fatalf("unable to open log file: %s", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	modes, err := calc.Modes()
	if err != nil {
		log.Fatalf("%s", err)
	}
	if _, err := tea.NewProgram(tui.New(calc, modes), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// once evaluates a single request, prints it and returns the exit code.
// Fields left out on the command line take their defaults.
func once(calc calculator.Calculator, args shared.EvaluateArgs) int {
	if m, err := icalc.ParseMode(args.Mode); err == nil {
		def := icalc.Defaults(m)
		if args.Expression == "" {
			args.Expression = def.Expression
		}
		for k, v := range def.Params {
			if _, ok := args.Params[k]; !ok {
				args.Params[k] = v
			}
		}
	}
	reply, err := calc.Evaluate(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, render.WarningPrefix+err.Error())
		return 2
	}
	d := reply.Display
	fmt.Println(d.Title)
	if d.Failed() {
		fmt.Println(d.Error)
		return 1
	}
	for _, l := range d.Lines {
		fmt.Println(l)
	}
	if d.LaTeX != "" {
		fmt.Println(d.LaTeX)
	}
	if d.Plot != nil {
		fmt.Print(render.ASCIIPlot(d.Plot, 72, 20))
	}
	return 0
}
