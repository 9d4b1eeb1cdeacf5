package tlisp

// value model

// Kind identifies the shape of a Value. The union is closed: every switch
// over Kind handles all variants, so adding one breaks every consumer that
// does not.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindSymbol
	KindList
	KindFunction
	KindMacro
	KindHashMap
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindList:
		return "list"
	case KindFunction:
		return "function"
	case KindMacro:
		return "macro"
	case KindHashMap:
		return "hash-map"
	}
	return "unknown"
}

// Value is one runtime datum: a tag plus the payload for that tag. The
// zero value is nil. Symbols carry their name in Str and compare by it;
// there is no interning table. Lists built by the parser are never mutated
// by the evaluator; hash-maps are the one mutable payload.
type Value struct {
	Kind  Kind
	Bool  bool
	Num   float64
	Str   string // string and symbol payloads
	Cells []Value
	Map   map[string]Value
	Fn    *Function
}

// Function is the shared payload of function and macro values. A native
// function carries only Name and Native; a closure carries the parameter
// names, the body forms, and the environment captured at definition time,
// which stays alive exactly as long as the closure does.
type Function struct {
	Name   string
	Params []string
	Body   []Value
	Env    *Env
	Native NativeFunc
}

// NativeFunc is the signature hosts register editor primitives with.
// Arguments arrive already evaluated.
type NativeFunc func(ip *Interp, args []Value) (Value, error)

func Nil() Value {
	return Value{}
}

func Bool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

func Number(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}

func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

func Symbol(name string) Value {
	return Value{Kind: KindSymbol, Str: name}
}

func List(items ...Value) Value {
	return Value{Kind: KindList, Cells: items}
}

func HashMap() Value {
	return Value{Kind: KindHashMap, Map: make(map[string]Value)}
}

func Func(fn *Function) Value {
	return Value{Kind: KindFunction, Fn: fn}
}

func Macro(fn *Function) Value {
	return Value{Kind: KindMacro, Fn: fn}
}

// Native wraps a host function as a function value.
func Native(name string, fn NativeFunc) Value {
	return Func(&Function{Name: name, Native: fn})
}

// Truthy reports the condition value of v: nil and boolean false are
// falsy, everything else, the empty list included, is truthy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNil:
		return false
	case KindBool:
		return v.Bool
	}
	return true
}

// IsNull reports whether v is nil or the empty list. The two are distinct
// tags but both count as "nothing" to lisp code.
func (v Value) IsNull() bool {
	return v.Kind == KindNil || (v.Kind == KindList && len(v.Cells) == 0)
}

// Equal is deep structural equality. Symbols compare by name, lists
// element-wise, hash-maps by keys and values; functions and macros are
// equal only when they are the same object.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNil:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindNumber:
		return a.Num == b.Num
	case KindString, KindSymbol:
		return a.Str == b.Str
	case KindList:
		if len(a.Cells) != len(b.Cells) {
			return false
		}
		for i := range a.Cells {
			if !Equal(a.Cells[i], b.Cells[i]) {
				return false
			}
		}
		return true
	case KindHashMap:
		if len(a.Map) != len(b.Map) {
			return false
		}
		for k, av := range a.Map {
			bv, ok := b.Map[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case KindFunction, KindMacro:
		return a.Fn == b.Fn
	}
	return false
}
