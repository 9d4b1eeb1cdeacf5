package tlisp

import (
	"bytes"
	"strings"
	"testing"
)

func TestDeftestAndRunTest(t *testing.T) {
	ip := newInterp(t)
	var buf bytes.Buffer
	ip.SetOutput(&buf)

	if got := mustEval(t, ip, "(deftest adds (assert (= (+ 1 2) 3)))"); !Equal(got, Symbol("adds")) {
		t.Errorf("deftest should return the test name, got %s", got.Repr())
	}
	if got := mustEval(t, ip, "(run-test 'adds)"); !Equal(got, Bool(true)) {
		t.Errorf("passing test: got %s, want t", got.Repr())
	}
	if !strings.Contains(buf.String(), "PASS adds") {
		t.Errorf("output %q lacks PASS line", buf.String())
	}

	buf.Reset()
	mustEval(t, ip, "(deftest breaks (assert (= 1 2)))")
	if got := mustEval(t, ip, "(run-test 'breaks)"); !Equal(got, Nil()) {
		t.Errorf("failing test: got %s, want nil", got.Repr())
	}
	if !strings.Contains(buf.String(), "FAIL breaks") {
		t.Errorf("output %q lacks FAIL line", buf.String())
	}
	if !strings.Contains(buf.String(), "1 != 2") {
		t.Errorf("output %q lacks the assertion detail", buf.String())
	}
}

func TestDeftestBodyIsNotEvaluatedAtDefinition(t *testing.T) {
	ip := newInterp(t)
	var buf bytes.Buffer
	ip.SetOutput(&buf)
	mustEval(t, ip, `(deftest noisy (princ "ran") (assert t))`)
	if buf.String() != "" {
		t.Fatalf("definition ran the body: output %q", buf.String())
	}
	mustEval(t, ip, "(run-test 'noisy)")
	if !strings.Contains(buf.String(), "ran") {
		t.Fatalf("run-test skipped the body: output %q", buf.String())
	}
}

func TestRunTestFreshScopePerRun(t *testing.T) {
	ip := newInterp(t)
	ip.SetOutput(&bytes.Buffer{})
	// a defvar inside a test body lands in the per-run frame, not in the
	// global scope
	mustEval(t, ip, "(deftest scoped (defvar local-only 1) (assert (= local-only 1)))")
	if got := mustEval(t, ip, "(run-test 'scoped)"); !Equal(got, Bool(true)) {
		t.Fatalf("got %s, want t", got.Repr())
	}
	wantEvalError(t, ip, "local-only", UndefinedSymbol)
}

func TestRunSuite(t *testing.T) {
	ip := newInterp(t)
	var buf bytes.Buffer
	ip.SetOutput(&buf)
	mustEval(t, ip, `
		(deftest one (assert (= 1 1)))
		(deftest two (assert (= 2 2)))
		(deftest sad (assert (= 1 2)))
		(defsuite arith one two sad)`)
	got := mustEval(t, ip, "(run-suite 'arith)")
	if !Equal(got, Number(1)) {
		t.Errorf("got %s failures, want 1", got.Repr())
	}
	out := buf.String()
	for _, want := range []string{"PASS one", "PASS two", "FAIL sad", "suite arith: 2/3 passed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q lacks %q", out, want)
		}
	}
}

func TestRunSuiteAllPassing(t *testing.T) {
	ip := newInterp(t)
	ip.SetOutput(&bytes.Buffer{})
	mustEval(t, ip, `
		(deftest a1 (assert t))
		(defsuite solo a1)`)
	if got := mustEval(t, ip, "(run-suite 'solo)"); !Equal(got, Number(0)) {
		t.Errorf("got %s, want 0 failures", got.Repr())
	}
}

func TestMissingTestSuiteAndFixture(t *testing.T) {
	ip := newInterp(t)
	ip.SetOutput(&bytes.Buffer{})
	ee := wantEvalError(t, ip, "(run-test 'ghost)", RuntimeError)
	if !strings.Contains(ee.Message, "no test named ghost") {
		t.Errorf("got message %q", ee.Message)
	}
	wantEvalError(t, ip, "(run-suite 'ghost)", RuntimeError)
	wantEvalError(t, ip, "(with-fixtures (ghost) 1)", RuntimeError)
	// a suite naming an unregistered test aborts instead of reporting
	mustEval(t, ip, "(defsuite broken ghost)")
	wantEvalError(t, ip, "(run-suite 'broken)", RuntimeError)
}

func TestWithFixtures(t *testing.T) {
	ip := newInterp(t)
	got := mustEval(t, ip, `
		(deffixture buffer-name "*scratch*")
		(deffixture line-count 42)
		(with-fixtures (buffer-name line-count)
		  (concat buffer-name " has " line-count " lines"))`)
	if !Equal(got, String("*scratch* has 42 lines")) {
		t.Fatalf("got %s", got.Repr())
	}
	// fixture names do not leak out of the body
	wantEvalError(t, ip, "buffer-name", UndefinedSymbol)
}

func TestFixturesEvaluateFreshPerUse(t *testing.T) {
	ip := newInterp(t)
	got := mustEval(t, ip, `
		(defvar uses 0)
		(deffixture stamp (set! uses (+ uses 1)))
		(with-fixtures (stamp) stamp)
		(with-fixtures (stamp) stamp)`)
	if !Equal(got, Number(2)) {
		t.Errorf("second use saw %s, want 2", got.Repr())
	}
	if got := mustEval(t, ip, "uses"); !Equal(got, Number(2)) {
		t.Errorf("fixture expression ran %s times, want 2", got.Repr())
	}
}

func TestTestRegistrySyntaxErrors(t *testing.T) {
	ip := newInterp(t)
	for _, source := range []string{
		"(deftest only-name)",
		`(deftest "str" 1)`,
		"(defsuite)",
		"(defsuite s \"str\")",
		"(deffixture f)",
		"(deffixture f 1 2)",
		"(with-fixtures (f))",
		"(with-fixtures f 1)",
		"(with-fixtures (1) 1)",
	} {
		wantEvalError(t, ip, source, SyntaxError)
	}
	wantEvalError(t, ip, `(run-test "adds")`, TypeError)
	wantEvalError(t, ip, "(run-suite 'a 'b)", RuntimeError)
}

func TestRegistriesAreIndependentPerInterp(t *testing.T) {
	a := newInterp(t)
	b := newInterp(t)
	a.SetOutput(&bytes.Buffer{})
	b.SetOutput(&bytes.Buffer{})
	mustEval(t, a, "(deftest shared (assert t))")
	if got := mustEval(t, a, "(run-test 'shared)"); !Equal(got, Bool(true)) {
		t.Fatalf("got %s, want t", got.Repr())
	}
	wantEvalError(t, b, "(run-test 'shared)", RuntimeError)
}
