package tlisp

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// built-in library

func (ip *Interp) installBuiltins() {
	ip.Define("+", builtinAdd)
	ip.Define("-", builtinSub)
	ip.Define("*", builtinMul)
	ip.Define("/", builtinDiv)
	ip.Define("%", builtinMod)
	ip.Define("sqrt", builtinSqrt)
	ip.Define("abs", builtinAbs)
	ip.Define("floor", builtinFloor)

	ip.Define("=", builtinNumEq)
	ip.Define("<", builtinLess)
	ip.Define(">", builtinGreater)
	ip.Define("<=", builtinLessEq)
	ip.Define(">=", builtinGreaterEq)
	ip.Define("equal", builtinEqual)

	ip.Define("list", builtinList)
	ip.Define("cons", builtinCons)
	ip.Define("car", builtinCar)
	ip.Define("cdr", builtinCdr)
	ip.Define("length", builtinLength)
	ip.Define("append", builtinAppend)
	ip.Define("nth", builtinNth)
	ip.Define("reverse", builtinReverse)

	ip.Define("null", builtinNull)
	ip.Define("not", builtinNot)
	ip.Define("listp", builtinListp)
	ip.Define("numberp", builtinNumberp)
	ip.Define("stringp", builtinStringp)
	ip.Define("symbolp", builtinSymbolp)
	ip.Define("functionp", builtinFunctionp)

	ip.Define("concat", builtinConcat)
	ip.Define("string-length", builtinStringLength)
	ip.Define("substring", builtinSubstring)
	ip.Define("intern", builtinIntern)

	ip.Define("make-hash-table", builtinMakeHashTable)
	ip.Define("puthash", builtinPuthash)
	ip.Define("gethash", builtinGethash)
	ip.Define("remhash", builtinRemhash)
	ip.Define("hash-table-count", builtinHashTableCount)
	ip.Define("hash-table-keys", builtinHashTableKeys)

	ip.Define("type-of", builtinTypeOf)
	ip.Define("print", builtinPrint)
	ip.Define("princ", builtinPrinc)
	ip.Define("error", builtinError)
	ip.Define("eval", builtinEval)

	ip.Define("run-test", builtinRunTest)
	ip.Define("run-suite", builtinRunSuite)
}

// argument helpers

func wantArgs(name string, args []Value, n int) error {
	if len(args) != n {
		return runtimeErrorf("%s expects %d arguments, got %d", name, n, len(args))
	}
	return nil
}

func wantMinArgs(name string, args []Value, n int) error {
	if len(args) < n {
		return runtimeErrorf("%s expects at least %d arguments, got %d", name, n, len(args))
	}
	return nil
}

func asNumber(name string, v Value) (float64, error) {
	if v.Kind != KindNumber {
		return 0, typeErrorf("%s expects a number, got %s", name, v.Kind)
	}
	return v.Num, nil
}

func asString(name string, v Value) (string, error) {
	if v.Kind != KindString {
		return "", typeErrorf("%s expects a string, got %s", name, v.Kind)
	}
	return v.Str, nil
}

func asSymbol(name string, v Value) (string, error) {
	if v.Kind != KindSymbol {
		return "", typeErrorf("%s expects a symbol, got %s", name, v.Kind)
	}
	return v.Str, nil
}

func asHashMap(name string, v Value) (map[string]Value, error) {
	if v.Kind != KindHashMap {
		return nil, typeErrorf("%s expects a hash-map, got %s", name, v.Kind)
	}
	return v.Map, nil
}

func wantNumbers(name string, args []Value) ([]float64, error) {
	nums := make([]float64, len(args))
	for i, a := range args {
		n, err := asNumber(name, a)
		if err != nil {
			return nil, err
		}
		nums[i] = n
	}
	return nums, nil
}

// arithmetic

func builtinAdd(ip *Interp, args []Value) (Value, error) {
	if err := wantMinArgs("+", args, 1); err != nil {
		return Value{}, err
	}
	nums, err := wantNumbers("+", args)
	if err != nil {
		return Value{}, err
	}
	acc := nums[0]
	for _, n := range nums[1:] {
		acc += n
	}
	return Number(acc), nil
}

func builtinSub(ip *Interp, args []Value) (Value, error) {
	if err := wantMinArgs("-", args, 1); err != nil {
		return Value{}, err
	}
	nums, err := wantNumbers("-", args)
	if err != nil {
		return Value{}, err
	}
	if len(nums) == 1 {
		return Number(-nums[0]), nil
	}
	acc := nums[0]
	for _, n := range nums[1:] {
		acc -= n
	}
	return Number(acc), nil
}

func builtinMul(ip *Interp, args []Value) (Value, error) {
	if err := wantMinArgs("*", args, 1); err != nil {
		return Value{}, err
	}
	nums, err := wantNumbers("*", args)
	if err != nil {
		return Value{}, err
	}
	acc := nums[0]
	for _, n := range nums[1:] {
		acc *= n
	}
	return Number(acc), nil
}

func builtinDiv(ip *Interp, args []Value) (Value, error) {
	if err := wantMinArgs("/", args, 1); err != nil {
		return Value{}, err
	}
	nums, err := wantNumbers("/", args)
	if err != nil {
		return Value{}, err
	}
	if len(nums) == 1 {
		if nums[0] == 0 {
			return Value{}, arithmeticErrorf("division by zero")
		}
		return Number(1 / nums[0]), nil
	}
	acc := nums[0]
	for _, n := range nums[1:] {
		if n == 0 {
			return Value{}, arithmeticErrorf("division by zero")
		}
		acc /= n
	}
	return Number(acc), nil
}

func builtinMod(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("%", args, 2); err != nil {
		return Value{}, err
	}
	nums, err := wantNumbers("%", args)
	if err != nil {
		return Value{}, err
	}
	if nums[1] == 0 {
		return Value{}, arithmeticErrorf("modulo by zero")
	}
	return Number(math.Mod(nums[0], nums[1])), nil
}

func builtinSqrt(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("sqrt", args, 1); err != nil {
		return Value{}, err
	}
	n, err := asNumber("sqrt", args[0])
	if err != nil {
		return Value{}, err
	}
	if n < 0 {
		return Value{}, arithmeticErrorf("square root of negative number %s", formatNumber(n))
	}
	return Number(math.Sqrt(n)), nil
}

func builtinAbs(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("abs", args, 1); err != nil {
		return Value{}, err
	}
	n, err := asNumber("abs", args[0])
	if err != nil {
		return Value{}, err
	}
	return Number(math.Abs(n)), nil
}

func builtinFloor(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("floor", args, 1); err != nil {
		return Value{}, err
	}
	n, err := asNumber("floor", args[0])
	if err != nil {
		return Value{}, err
	}
	return Number(math.Floor(n)), nil
}

// comparison

func compareChain(name string, args []Value, ok func(a, b float64) bool) (Value, error) {
	if err := wantMinArgs(name, args, 2); err != nil {
		return Value{}, err
	}
	nums, err := wantNumbers(name, args)
	if err != nil {
		return Value{}, err
	}
	for i := 0; i+1 < len(nums); i++ {
		if !ok(nums[i], nums[i+1]) {
			return Nil(), nil
		}
	}
	return Bool(true), nil
}

func builtinNumEq(ip *Interp, args []Value) (Value, error) {
	return compareChain("=", args, func(a, b float64) bool { return a == b })
}

func builtinLess(ip *Interp, args []Value) (Value, error) {
	return compareChain("<", args, func(a, b float64) bool { return a < b })
}

func builtinGreater(ip *Interp, args []Value) (Value, error) {
	return compareChain(">", args, func(a, b float64) bool { return a > b })
}

func builtinLessEq(ip *Interp, args []Value) (Value, error) {
	return compareChain("<=", args, func(a, b float64) bool { return a <= b })
}

func builtinGreaterEq(ip *Interp, args []Value) (Value, error) {
	return compareChain(">=", args, func(a, b float64) bool { return a >= b })
}

func builtinEqual(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("equal", args, 2); err != nil {
		return Value{}, err
	}
	if Equal(args[0], args[1]) {
		return Bool(true), nil
	}
	return Nil(), nil
}

// lists

func builtinList(ip *Interp, args []Value) (Value, error) {
	return List(args...), nil
}

func builtinCons(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("cons", args, 2); err != nil {
		return Value{}, err
	}
	switch args[1].Kind {
	case KindNil:
		return List(args[0]), nil
	case KindList:
		out := make([]Value, 0, len(args[1].Cells)+1)
		out = append(out, args[0])
		out = append(out, args[1].Cells...)
		return List(out...), nil
	}
	return Value{}, typeErrorf("cons expects a list or nil, got %s", args[1].Kind)
}

func builtinCar(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("car", args, 1); err != nil {
		return Value{}, err
	}
	switch args[0].Kind {
	case KindNil:
		return Nil(), nil
	case KindList:
		if len(args[0].Cells) == 0 {
			return Nil(), nil
		}
		return args[0].Cells[0], nil
	}
	return Value{}, typeErrorf("car expects a list, got %s", args[0].Kind)
}

func builtinCdr(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("cdr", args, 1); err != nil {
		return Value{}, err
	}
	switch args[0].Kind {
	case KindNil:
		return Nil(), nil
	case KindList:
		if len(args[0].Cells) == 0 {
			return Nil(), nil
		}
		return List(args[0].Cells[1:]...), nil
	}
	return Value{}, typeErrorf("cdr expects a list, got %s", args[0].Kind)
}

func builtinLength(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("length", args, 1); err != nil {
		return Value{}, err
	}
	switch args[0].Kind {
	case KindNil:
		return Number(0), nil
	case KindList:
		return Number(float64(len(args[0].Cells))), nil
	case KindString:
		return Number(float64(utf8.RuneCountInString(args[0].Str))), nil
	}
	return Value{}, typeErrorf("length expects a list or string, got %s", args[0].Kind)
}

func builtinAppend(ip *Interp, args []Value) (Value, error) {
	var out []Value
	for _, a := range args {
		switch a.Kind {
		case KindNil:
		case KindList:
			out = append(out, a.Cells...)
		default:
			return Value{}, typeErrorf("append expects lists, got %s", a.Kind)
		}
	}
	return List(out...), nil
}

func builtinNth(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("nth", args, 2); err != nil {
		return Value{}, err
	}
	n, err := asNumber("nth", args[0])
	if err != nil {
		return Value{}, err
	}
	if args[1].Kind == KindNil {
		return Nil(), nil
	}
	if args[1].Kind != KindList {
		return Value{}, typeErrorf("nth expects a list, got %s", args[1].Kind)
	}
	i := int(n)
	if i < 0 || i >= len(args[1].Cells) {
		return Nil(), nil
	}
	return args[1].Cells[i], nil
}

func builtinReverse(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("reverse", args, 1); err != nil {
		return Value{}, err
	}
	switch args[0].Kind {
	case KindNil:
		return Nil(), nil
	case KindList:
		cells := args[0].Cells
		out := make([]Value, len(cells))
		for i, v := range cells {
			out[len(cells)-1-i] = v
		}
		return List(out...), nil
	}
	return Value{}, typeErrorf("reverse expects a list, got %s", args[0].Kind)
}

// predicates

func builtinNull(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("null", args, 1); err != nil {
		return Value{}, err
	}
	if args[0].IsNull() {
		return Bool(true), nil
	}
	return Nil(), nil
}

func builtinNot(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("not", args, 1); err != nil {
		return Value{}, err
	}
	if args[0].Truthy() {
		return Nil(), nil
	}
	return Bool(true), nil
}

func kindPredicate(name string, kind Kind) NativeFunc {
	return func(ip *Interp, args []Value) (Value, error) {
		if err := wantArgs(name, args, 1); err != nil {
			return Value{}, err
		}
		if args[0].Kind == kind {
			return Bool(true), nil
		}
		return Nil(), nil
	}
}

var (
	builtinListp     = kindPredicate("listp", KindList)
	builtinNumberp   = kindPredicate("numberp", KindNumber)
	builtinStringp   = kindPredicate("stringp", KindString)
	builtinSymbolp   = kindPredicate("symbolp", KindSymbol)
	builtinFunctionp = kindPredicate("functionp", KindFunction)
)

// strings

func builtinConcat(ip *Interp, args []Value) (Value, error) {
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(a.String())
	}
	return String(sb.String()), nil
}

func builtinStringLength(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("string-length", args, 1); err != nil {
		return Value{}, err
	}
	s, err := asString("string-length", args[0])
	if err != nil {
		return Value{}, err
	}
	return Number(float64(utf8.RuneCountInString(s))), nil
}

func builtinSubstring(ip *Interp, args []Value) (Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return Value{}, runtimeErrorf("substring expects 2 or 3 arguments, got %d", len(args))
	}
	s, err := asString("substring", args[0])
	if err != nil {
		return Value{}, err
	}
	fromN, err := asNumber("substring", args[1])
	if err != nil {
		return Value{}, err
	}
	runes := []rune(s)
	from, to := int(fromN), len(runes)
	if len(args) == 3 {
		toN, err := asNumber("substring", args[2])
		if err != nil {
			return Value{}, err
		}
		to = int(toN)
	}
	if from < 0 || to > len(runes) || from > to {
		return Value{}, runtimeErrorf("substring range %d to %d out of bounds for length %d", from, to, len(runes))
	}
	return String(string(runes[from:to])), nil
}

func builtinIntern(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("intern", args, 1); err != nil {
		return Value{}, err
	}
	s, err := asString("intern", args[0])
	if err != nil {
		return Value{}, err
	}
	return Symbol(s), nil
}

// hash-maps

func builtinMakeHashTable(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("make-hash-table", args, 0); err != nil {
		return Value{}, err
	}
	return HashMap(), nil
}

func builtinPuthash(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("puthash", args, 3); err != nil {
		return Value{}, err
	}
	key, err := asString("puthash", args[0])
	if err != nil {
		return Value{}, err
	}
	m, err := asHashMap("puthash", args[2])
	if err != nil {
		return Value{}, err
	}
	m[key] = args[1]
	return args[1], nil
}

func builtinGethash(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("gethash", args, 2); err != nil {
		return Value{}, err
	}
	key, err := asString("gethash", args[0])
	if err != nil {
		return Value{}, err
	}
	m, err := asHashMap("gethash", args[1])
	if err != nil {
		return Value{}, err
	}
	if v, ok := m[key]; ok {
		return v, nil
	}
	return Nil(), nil
}

func builtinRemhash(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("remhash", args, 2); err != nil {
		return Value{}, err
	}
	key, err := asString("remhash", args[0])
	if err != nil {
		return Value{}, err
	}
	m, err := asHashMap("remhash", args[1])
	if err != nil {
		return Value{}, err
	}
	delete(m, key)
	return Nil(), nil
}

func builtinHashTableCount(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("hash-table-count", args, 1); err != nil {
		return Value{}, err
	}
	m, err := asHashMap("hash-table-count", args[0])
	if err != nil {
		return Value{}, err
	}
	return Number(float64(len(m))), nil
}

func builtinHashTableKeys(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("hash-table-keys", args, 1); err != nil {
		return Value{}, err
	}
	m, err := asHashMap("hash-table-keys", args[0])
	if err != nil {
		return Value{}, err
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Value, len(keys))
	for i, k := range keys {
		out[i] = String(k)
	}
	return List(out...), nil
}

// introspection and io

func builtinTypeOf(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("type-of", args, 1); err != nil {
		return Value{}, err
	}
	return Symbol(args[0].Kind.String()), nil
}

func builtinPrint(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("print", args, 1); err != nil {
		return Value{}, err
	}
	fmt.Fprintln(ip.out, args[0].Repr())
	return args[0], nil
}

func builtinPrinc(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("princ", args, 1); err != nil {
		return Value{}, err
	}
	fmt.Fprint(ip.out, args[0].String())
	return args[0], nil
}

func builtinError(ip *Interp, args []Value) (Value, error) {
	if err := wantMinArgs("error", args, 1); err != nil {
		return Value{}, err
	}
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(a.String())
	}
	return Value{}, runtimeErrorf("%s", sb.String())
}

func builtinEval(ip *Interp, args []Value) (Value, error) {
	if err := wantArgs("eval", args, 1); err != nil {
		return Value{}, err
	}
	return ip.Eval(args[0], ip.global)
}
