// Package tlisp implements T-Lisp, the scripting runtime of the tmax text
// editor: a small lisp with lexical scoping, closures, macros with
// quasiquote, and trampolined tail calls, evaluated over explicit error
// values. Hosts embed it by creating an Interp, registering native
// functions, and feeding it source text.
package tlisp

import (
	_ "embed"
	"fmt"
	"io"
	"os"
)

//go:embed prelude.tl
var prelude string

// Interp is one self-contained interpreter: the host-owned global
// environment, the writer used by print and the test runner, and the test
// registry. Instances share nothing. The evaluator is single-threaded;
// hosts must serialize evaluations against the same Interp.
type Interp struct {
	global *Env
	out    io.Writer
	tests  *testRegistry
}

// New returns an interpreter with the built-in library installed and the
// prelude loaded.
func New() (*Interp, error) {
	ip := &Interp{
		global: NewEnv(nil),
		out:    os.Stdout,
		tests:  newTestRegistry(),
	}
	ip.installBuiltins()
	if _, err := ip.LoadString(prelude); err != nil {
		return nil, fmt.Errorf("prelude: %w", err)
	}
	return ip, nil
}

// Global returns the global environment.
func (ip *Interp) Global() *Env {
	return ip.global
}

// SetOutput redirects print, princ, and test-runner output. The default is
// standard output.
func (ip *Interp) SetOutput(w io.Writer) {
	ip.out = w
}

// Define registers a native function in the global environment. Every
// editor primitive reaches lisp code through this seam.
func (ip *Interp) Define(name string, fn NativeFunc) {
	ip.global.Define(name, Native(name, fn))
}

// DefineValue binds a plain value in the global environment.
func (ip *Interp) DefineValue(name string, v Value) {
	ip.global.Define(name, v)
}

// Execute parses ONE top-level form from source and evaluates it against
// the global environment; trailing input is ignored. Use Load or
// LoadString to run every form in a multi-form source.
func (ip *Interp) Execute(source string) (Value, error) {
	expr, err := Parse(source)
	if err != nil {
		return Value{}, err
	}
	return ip.Eval(expr, ip.global)
}

// Load evaluates every form from r in order and returns the last value, or
// nil for empty input. The first tokenize, parse, or eval error stops the
// load; the parenthesis pre-scan covers the whole input, so a half-open
// trailing form fails before anything runs.
func (ip *Interp) Load(r io.Reader) (Value, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return Value{}, fmt.Errorf("read failed: %w", err)
	}
	return ip.LoadString(string(source))
}

// LoadString is Load for a string already in memory.
func (ip *Interp) LoadString(source string) (Value, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return Value{}, err
	}
	if err := checkBalance(tokens); err != nil {
		return Value{}, err
	}
	p := &parser{tokens: tokens}
	result := Nil()
	for !p.atEOF() {
		form, err := p.expr()
		if err != nil {
			return Value{}, err
		}
		result, err = ip.Eval(form, ip.global)
		if err != nil {
			return Value{}, err
		}
	}
	return result, nil
}
