package tlisp

import "fmt"

// test registry
//
// Editor scripts define their own tests with deftest and group them into
// suites; fixtures are named expressions re-evaluated at each use. The
// registry belongs to one Interp: separate interpreter instances never
// share or clobber each other's tests.

type testRegistry struct {
	tests    map[string][]Value
	suites   map[string][]string
	fixtures map[string]Value
}

func newTestRegistry() *testRegistry {
	return &testRegistry{
		tests:    make(map[string][]Value),
		suites:   make(map[string][]string),
		fixtures: make(map[string]Value),
	}
}

func (ip *Interp) evalDeftest(args []Value) (outcome, error) {
	if len(args) < 2 {
		return outcome{}, syntaxErrorf("deftest expects at least 2 arguments (name and body), got %d", len(args))
	}
	if args[0].Kind != KindSymbol {
		return outcome{}, syntaxErrorf("deftest name must be a symbol, got %s", args[0].Repr())
	}
	ip.tests.tests[args[0].Str] = args[1:]
	return done(args[0]), nil
}

func (ip *Interp) evalDefsuite(args []Value) (outcome, error) {
	if len(args) < 1 {
		return outcome{}, syntaxErrorf("defsuite expects at least 1 argument (name), got %d", len(args))
	}
	if args[0].Kind != KindSymbol {
		return outcome{}, syntaxErrorf("defsuite name must be a symbol, got %s", args[0].Repr())
	}
	names := make([]string, len(args)-1)
	for i, a := range args[1:] {
		if a.Kind != KindSymbol {
			return outcome{}, syntaxErrorf("defsuite test name must be a symbol, got %s", a.Repr())
		}
		names[i] = a.Str
	}
	ip.tests.suites[args[0].Str] = names
	return done(args[0]), nil
}

func (ip *Interp) evalDeffixture(args []Value) (outcome, error) {
	if len(args) != 2 {
		return outcome{}, syntaxErrorf("deffixture expects 2 arguments (name and expression), got %d", len(args))
	}
	if args[0].Kind != KindSymbol {
		return outcome{}, syntaxErrorf("deffixture name must be a symbol, got %s", args[0].Repr())
	}
	ip.tests.fixtures[args[0].Str] = args[1]
	return done(args[0]), nil
}

// evalWithFixtures binds each named fixture to a fresh evaluation of its
// registered expression and runs the body in that scope. Fixture
// expressions evaluate in the global environment at each use.
func (ip *Interp) evalWithFixtures(args []Value, env *Env) (outcome, error) {
	if len(args) < 2 {
		return outcome{}, syntaxErrorf("with-fixtures expects at least 2 arguments (names and body), got %d", len(args))
	}
	if args[0].Kind != KindList {
		return outcome{}, syntaxErrorf("with-fixtures names must be a list, got %s", args[0].Repr())
	}
	child := NewEnv(env)
	for _, namev := range args[0].Cells {
		if namev.Kind != KindSymbol {
			return outcome{}, syntaxErrorf("with-fixtures name must be a symbol, got %s", namev.Repr())
		}
		expr, ok := ip.tests.fixtures[namev.Str]
		if !ok {
			return outcome{}, runtimeErrorf("no fixture named %s", namev.Str)
		}
		v, err := ip.Eval(expr, ip.global)
		if err != nil {
			return outcome{}, err
		}
		child.Define(namev.Str, v)
	}
	return ip.stepBody(args[1:], child)
}

// runTest evaluates a registered test body in a fresh child of the global
// environment and reports PASS or FAIL on the interpreter's writer.
func (ip *Interp) runTest(name string) (bool, error) {
	body, ok := ip.tests.tests[name]
	if !ok {
		return false, runtimeErrorf("no test named %s", name)
	}
	if _, err := ip.evalBody(body, NewEnv(ip.global)); err != nil {
		fmt.Fprintf(ip.out, "FAIL %s: %v\n", name, err)
		return false, nil
	}
	fmt.Fprintf(ip.out, "PASS %s\n", name)
	return true, nil
}

func builtinRunTest(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("run-test", args, 1); err != nil {
		return Value{}, err
	}
	name, err := asSymbol("run-test", args[0])
	if err != nil {
		return Value{}, err
	}
	ok, err := ip.runTest(name)
	if err != nil {
		return Value{}, err
	}
	if ok {
		return Bool(true), nil
	}
	return Nil(), nil
}

// builtinRunSuite runs every test in the suite and returns the number of
// failures; a missing test aborts the run.
func builtinRunSuite(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("run-suite", args, 1); err != nil {
		return Value{}, err
	}
	name, err := asSymbol("run-suite", args[0])
	if err != nil {
		return Value{}, err
	}
	tests, ok := ip.tests.suites[name]
	if !ok {
		return Value{}, runtimeErrorf("no suite named %s", name)
	}
	failures := 0
	for _, test := range tests {
		ok, err := ip.runTest(test)
		if err != nil {
			return Value{}, err
		}
		if !ok {
			failures++
		}
	}
	fmt.Fprintf(ip.out, "suite %s: %d/%d passed\n", name, len(tests)-failures, len(tests))
	return Number(float64(failures)), nil
}
