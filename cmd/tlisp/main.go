package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/mekkamagnus/tlisp"
	"github.com/peterh/liner"
)

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}

func main() {
	expr := flag.String("e", "", "evaluate one expression and print its value")
	dumpAST := flag.Bool("ast", false, "dump the parsed tree before evaluating")
	flag.Parse()

	ip, err := tlisp.New()
	if err != nil {
		die("Error creating interpreter: %v\n", err)
	}

	if *expr != "" {
		if *dumpAST {
			dumpTree(*expr)
		}
		v, err := ip.LoadString(*expr)
		if err != nil {
			die("Error: %v\n", err)
		}
		fmt.Println(v.Repr())
		return
	}

	if args := flag.Args(); len(args) > 0 {
		for _, arg := range args {
			f, err := os.Open(arg)
			if err != nil {
				die("Error opening %s: %v\n", arg, err)
			}
			_, lerr := ip.Load(f)
			f.Close()
			if lerr != nil {
				die("Error while loading %s: %v\n", arg, lerr)
			}
		}
		return
	}

	if liner.TerminalSupported() && stdinIsTerminal() {
		repl(ip, *dumpAST)
		return
	}
	if _, err := ip.Load(os.Stdin); err != nil {
		die("Error while loading from stdin: %v\n", err)
	}
}

func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

func repl(ip *tlisp.Interp, dumpAST bool) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println("tlisp (Ctrl-D to exit)")
	for {
		input, err := line.Prompt("tlisp> ")
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			fmt.Println()
			return
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		source, ok := readRest(line, input)
		if !ok {
			return
		}
		if strings.TrimSpace(source) == "" {
			continue
		}
		line.AppendHistory(source)
		if dumpAST {
			dumpTree(source)
		}
		v, err := ip.LoadString(source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Println(v.Repr())
	}
}

// readRest keeps prompting while the input has more open parens than
// closed ones, so multi-line definitions work at the prompt.
func readRest(line *liner.State, input string) (string, bool) {
	source := input
	for {
		_, err := tlisp.Parse(source)
		var pe *tlisp.ParseError
		if !errors.As(err, &pe) || pe.Kind != tlisp.UnmatchedOpen {
			return source, true
		}
		more, err := line.Prompt("  ...> ")
		if err == liner.ErrPromptAborted {
			return "", true
		}
		if err != nil {
			fmt.Println()
			return "", false
		}
		source += "\n" + more
	}
}

func dumpTree(source string) {
	form, err := tlisp.Parse(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
		return
	}
	spew.Dump(form)
}
