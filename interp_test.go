package tlisp

import (
	"errors"
	"strings"
	"testing"
)

func TestExecuteEvaluatesOneForm(t *testing.T) {
	ip := newInterp(t)
	got, err := ip.Execute("(+ 1 2) (+ 10 20)")
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(got, Number(3)) {
		t.Errorf("got %s, want the first form's value 3", got.Repr())
	}
}

func TestLoadStringRunsAllForms(t *testing.T) {
	ip := newInterp(t)
	got := mustEval(t, ip, "(defvar a 1) (defvar b 2) (+ a b)")
	if !Equal(got, Number(3)) {
		t.Errorf("got %s, want 3", got.Repr())
	}
}

func TestLoadStringEmptySource(t *testing.T) {
	ip := newInterp(t)
	for _, source := range []string{"", "   \n\t", "; nothing here"} {
		got, err := ip.LoadString(source)
		if err != nil {
			t.Errorf("LoadString(%q): %v", source, err)
			continue
		}
		if !Equal(got, Nil()) {
			t.Errorf("LoadString(%q): got %s, want nil", source, got.Repr())
		}
	}
}

func TestLoadStringStopsAtFirstError(t *testing.T) {
	ip := newInterp(t)
	_, err := ip.LoadString("(defvar early 1) (boom) (defvar late 2)")
	var ee *EvalError
	if !errors.As(err, &ee) || ee.Kind != UndefinedSymbol {
		t.Fatalf("got %v, want UndefinedSymbol", err)
	}
	if _, ok := ip.Global().Lookup("early"); !ok {
		t.Error("forms before the failure should have run")
	}
	if _, ok := ip.Global().Lookup("late"); ok {
		t.Error("forms after the failure should not have run")
	}
}

func TestLoadStringBalanceCheckPrecedesEvaluation(t *testing.T) {
	ip := newInterp(t)
	_, err := ip.LoadString("(defvar pre 9) (oops))")
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Kind != UnmatchedClose {
		t.Fatalf("got %v, want UnmatchedClose", err)
	}
	if _, ok := ip.Global().Lookup("pre"); ok {
		t.Error("nothing should evaluate when the source is unbalanced")
	}

	_, err = ip.LoadString("(defvar pre 9) (oops")
	if !errors.As(err, &pe) || pe.Kind != UnmatchedOpen {
		t.Fatalf("got %v, want UnmatchedOpen", err)
	}
}

func TestLoadFromReader(t *testing.T) {
	ip := newInterp(t)
	got, err := ip.Load(strings.NewReader("(defvar loaded 7) (* loaded 6)"))
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(got, Number(42)) {
		t.Errorf("got %s, want 42", got.Repr())
	}
}

func TestDefineNative(t *testing.T) {
	ip := newInterp(t)
	ip.Define("buffer-line-count", func(ip *Interp, args []Value) (Value, error) {
		if err := wantArgs("buffer-line-count", args, 0); err != nil {
			return Value{}, err
		}
		return Number(128), nil
	})
	ip.Define("repeat-string", func(ip *Interp, args []Value) (Value, error) {
		if err := wantArgs("repeat-string", args, 2); err != nil {
			return Value{}, err
		}
		s, err := asString("repeat-string", args[0])
		if err != nil {
			return Value{}, err
		}
		n, err := asNumber("repeat-string", args[1])
		if err != nil {
			return Value{}, err
		}
		return String(strings.Repeat(s, int(n))), nil
	})

	if got := mustEval(t, ip, "(buffer-line-count)"); !Equal(got, Number(128)) {
		t.Errorf("got %s, want 128", got.Repr())
	}
	if got := mustEval(t, ip, `(repeat-string "ab" 3)`); !Equal(got, String("ababab")) {
		t.Errorf("got %s, want ababab", got.Repr())
	}
	// host primitives compose with script code like any function value
	got := mustEval(t, ip, `(mapcar (lambda (s) (repeat-string s 2)) (list "x" "y"))`)
	if !Equal(got, List(String("xx"), String("yy"))) {
		t.Errorf("got %s", got.Repr())
	}
	wantEvalError(t, ip, "(buffer-line-count 1)", RuntimeError)
}

func TestDefineNativeErrorPropagates(t *testing.T) {
	ip := newInterp(t)
	ip.Define("fail-save", func(ip *Interp, args []Value) (Value, error) {
		return Value{}, &EvalError{Kind: RuntimeError, Message: "disk full"}
	})
	ee := wantEvalError(t, ip, "(progn (fail-save) 'unreached)", RuntimeError)
	if ee.Message != "disk full" {
		t.Errorf("got %q", ee.Message)
	}
}

func TestDefineValue(t *testing.T) {
	ip := newInterp(t)
	ip.DefineValue("tab-width", Number(4))
	if got := mustEval(t, ip, "(* tab-width 2)"); !Equal(got, Number(8)) {
		t.Errorf("got %s, want 8", got.Repr())
	}
}

func TestGlobalVisibleFromHost(t *testing.T) {
	ip := newInterp(t)
	mustEval(t, ip, "(defvar answer 42)")
	v, ok := ip.Global().Lookup("answer")
	if !ok || !Equal(v, Number(42)) {
		t.Errorf("got %v %v, want 42 true", v, ok)
	}
}

func TestInterpInstancesAreIndependent(t *testing.T) {
	a := newInterp(t)
	b := newInterp(t)
	mustEval(t, a, "(defvar only-here 1)")
	wantEvalError(t, b, "only-here", UndefinedSymbol)
}

func TestPreludeDefinitionsPresent(t *testing.T) {
	ip := newInterp(t)
	for _, name := range []string{"cadr", "second", "third", "zerop", "evenp", "oddp", "min", "max", "mapcar", "filter", "reduce"} {
		v, ok := ip.Global().Lookup(name)
		if !ok {
			t.Errorf("%s is not bound", name)
			continue
		}
		if v.Kind != KindFunction {
			t.Errorf("%s is a %s, want a function", name, v.Kind)
		}
	}
	for _, name := range []string{"when", "unless"} {
		v, ok := ip.Global().Lookup(name)
		if !ok || v.Kind != KindMacro {
			t.Errorf("%s should be a macro, got %v %v", name, v, ok)
		}
	}
}
