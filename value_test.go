package tlisp

import "testing"

func TestTruthy(t *testing.T) {
	truthy := []Value{
		Bool(true),
		Number(0),
		Number(-1),
		String(""),
		Symbol("nil-ish"),
		List(),
		List(Number(1)),
		HashMap(),
		Native("id", func(ip *Interp, args []Value) (Value, error) { return args[0], nil }),
	}
	for _, v := range truthy {
		if !v.Truthy() {
			t.Errorf("%s should be truthy", v.Repr())
		}
	}
	falsy := []Value{Nil(), Bool(false), Value{}}
	for _, v := range falsy {
		if v.Truthy() {
			t.Errorf("%s should be falsy", v.Repr())
		}
	}
}

func TestIsNull(t *testing.T) {
	for _, v := range []Value{Nil(), List()} {
		if !v.IsNull() {
			t.Errorf("%s should be null", v.Repr())
		}
	}
	for _, v := range []Value{Bool(false), Number(0), String(""), List(Nil())} {
		if v.IsNull() {
			t.Errorf("%s should not be null", v.Repr())
		}
	}
}

func TestEqual(t *testing.T) {
	h1 := HashMap()
	h1.Map["a"] = Number(1)
	h2 := HashMap()
	h2.Map["a"] = Number(1)
	h3 := HashMap()
	h3.Map["a"] = Number(2)

	equal := []struct{ a, b Value }{
		{Nil(), Nil()},
		{Bool(true), Bool(true)},
		{Number(1.5), Number(1.5)},
		{String("x"), String("x")},
		{Symbol("x"), Symbol("x")},
		{List(), List()},
		{List(Number(1), List(Symbol("a"))), List(Number(1), List(Symbol("a")))},
		{h1, h2},
	}
	for _, tt := range equal {
		if !Equal(tt.a, tt.b) {
			t.Errorf("Equal(%s, %s) should hold", tt.a.Repr(), tt.b.Repr())
		}
	}

	unequal := []struct{ a, b Value }{
		{Nil(), List()},
		{Nil(), Bool(false)},
		{Bool(false), Number(0)},
		{Number(1), Number(2)},
		{String("x"), Symbol("x")},
		{List(Number(1)), List(Number(1), Number(2))},
		{List(Number(1)), List(Number(2))},
		{h1, h3},
	}
	for _, tt := range unequal {
		if Equal(tt.a, tt.b) {
			t.Errorf("Equal(%s, %s) should not hold", tt.a.Repr(), tt.b.Repr())
		}
	}
}

func TestEqualFunctionsByIdentity(t *testing.T) {
	id := func(ip *Interp, args []Value) (Value, error) { return args[0], nil }
	f := Native("f", id)
	g := Native("f", id)
	if !Equal(f, f) {
		t.Error("a function should equal itself")
	}
	if Equal(f, g) {
		t.Error("distinct function objects should not be equal")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNil, "nil"},
		{KindBool, "boolean"},
		{KindNumber, "number"},
		{KindString, "string"},
		{KindSymbol, "symbol"},
		{KindList, "list"},
		{KindFunction, "function"},
		{KindMacro, "macro"},
		{KindHashMap, "hash-map"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String(): got %q, want %q", tt.kind, got, tt.want)
		}
	}
}
