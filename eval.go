package tlisp

// evaluator

// outcome is the result of one evaluation step. Exactly one case is live:
// a finished value, or a call deferred to the trampoline loop.
type outcome struct {
	done Value
	tail *tailCall
}

// tailCall defers an application reached in tail position. The loop in
// Eval evaluates callee and arguments itself, so lisp-level tail recursion
// never grows the native stack.
type tailCall struct {
	callee Value
	args   []Value
	env    *Env
}

func done(v Value) outcome {
	return outcome{done: v}
}

// Eval evaluates expr in env. It is a trampoline: evalStep either finishes
// with a value or hands back a deferred call, and this loop is the only
// place closure bodies are re-entered. Argument and binding evaluation
// recurse natively; tail calls iterate.
func (ip *Interp) Eval(expr Value, env *Env) (Value, error) {
	for {
		out, err := ip.evalStep(expr, env)
		if err != nil {
			return Value{}, err
		}
		if out.tail == nil {
			return out.done, nil
		}
		tc := out.tail
		callee, err := ip.Eval(tc.callee, tc.env)
		if err != nil {
			return Value{}, err
		}
		switch callee.Kind {
		case KindMacro:
			// the expander receives the argument expressions unevaluated;
			// its result is evaluated in the caller's environment and
			// inherits the caller's tail position
			expansion, err := ip.applyClosure(callee.Fn, tc.args)
			if err != nil {
				return Value{}, err
			}
			expr, env = expansion, tc.env
		case KindFunction:
			args := make([]Value, len(tc.args))
			for i, a := range tc.args {
				v, err := ip.Eval(a, tc.env)
				if err != nil {
					return Value{}, err
				}
				args[i] = v
			}
			fn := callee.Fn
			if fn.Native != nil {
				return fn.Native(ip, args)
			}
			child, err := bindParams(fn, args)
			if err != nil {
				return Value{}, err
			}
			for _, form := range fn.Body[:len(fn.Body)-1] {
				if _, err := ip.Eval(form, child); err != nil {
					return Value{}, err
				}
			}
			expr, env = fn.Body[len(fn.Body)-1], child
		default:
			return Value{}, typeErrorf("cannot call %s value %s", callee.Kind, callee.Repr())
		}
	}
}

// Apply calls a function value with already evaluated arguments. Hosts and
// native functions use it to invoke lisp callbacks. Macros cannot be
// applied this way; they exist only at call sites.
func (ip *Interp) Apply(fnv Value, args []Value) (Value, error) {
	if fnv.Kind != KindFunction {
		return Value{}, typeErrorf("cannot call %s value %s", fnv.Kind, fnv.Repr())
	}
	if fnv.Fn.Native != nil {
		return fnv.Fn.Native(ip, args)
	}
	return ip.applyClosure(fnv.Fn, args)
}

func (ip *Interp) applyClosure(fn *Function, args []Value) (Value, error) {
	child, err := bindParams(fn, args)
	if err != nil {
		return Value{}, err
	}
	return ip.evalBody(fn.Body, child)
}

func bindParams(fn *Function, args []Value) (*Env, error) {
	if len(args) != len(fn.Params) {
		name := fn.Name
		if name == "" {
			name = "lambda"
		}
		return nil, runtimeErrorf("%s expects %d arguments, got %d", name, len(fn.Params), len(args))
	}
	env := NewEnv(fn.Env)
	for i, p := range fn.Params {
		env.Define(p, args[i])
	}
	return env, nil
}

func (ip *Interp) evalBody(forms []Value, env *Env) (Value, error) {
	var result Value
	for _, f := range forms {
		v, err := ip.Eval(f, env)
		if err != nil {
			return Value{}, err
		}
		result = v
	}
	return result, nil
}

// stepBody evaluates forms in order; the last one lands in the caller's
// tail position.
func (ip *Interp) stepBody(forms []Value, env *Env) (outcome, error) {
	for _, f := range forms[:len(forms)-1] {
		if _, err := ip.Eval(f, env); err != nil {
			return outcome{}, err
		}
	}
	return ip.evalStep(forms[len(forms)-1], env)
}

func (ip *Interp) evalStep(expr Value, env *Env) (outcome, error) {
	switch expr.Kind {
	case KindNil, KindBool, KindNumber, KindString, KindFunction, KindMacro, KindHashMap:
		return done(expr), nil
	case KindSymbol:
		v, ok := env.Lookup(expr.Str)
		if !ok {
			return outcome{}, undefinedSymbolf("%s", expr.Str)
		}
		return done(v), nil
	case KindList:
		if len(expr.Cells) == 0 {
			return done(expr), nil
		}
		return ip.evalForm(expr, env)
	}
	return outcome{}, typeErrorf("cannot evaluate %s value", expr.Kind)
}

// evalForm dispatches a non-empty list: special forms by head symbol,
// anything else as application deferred to the trampoline.
func (ip *Interp) evalForm(form Value, env *Env) (outcome, error) {
	head := form.Cells[0]
	args := form.Cells[1:]
	if head.Kind == KindSymbol {
		switch head.Str {
		case "quote":
			if len(args) != 1 {
				return outcome{}, syntaxErrorf("quote expects 1 argument, got %d", len(args))
			}
			return done(args[0]), nil
		case "if":
			return ip.evalIf(args, env)
		case "let":
			return ip.evalLet(args, env)
		case "lambda":
			return ip.evalLambda(args, env)
		case "defun":
			return ip.evalDefun(args, env, false)
		case "defmacro":
			return ip.evalDefun(args, env, true)
		case "cond":
			return ip.evalCond(args, env)
		case "progn":
			return ip.evalProgn(args, env)
		case "and":
			return ip.evalAnd(args, env)
		case "or":
			return ip.evalOr(args, env)
		case "quasiquote":
			if len(args) != 1 {
				return outcome{}, syntaxErrorf("quasiquote expects 1 argument, got %d", len(args))
			}
			v, err := ip.expandQuasiquote(args[0], env, 1)
			if err != nil {
				return outcome{}, err
			}
			return done(v), nil
		case "unquote", "unquote-splicing":
			return outcome{}, runtimeErrorf("%s outside quasiquote", head.Str)
		case "defvar":
			return ip.evalDefvar(args, env)
		case "set!":
			return ip.evalSet(args, env)
		case "assert":
			return ip.evalAssert(args, env)
		case "assert-error":
			return ip.evalAssertError(args, env)
		case "deftest":
			return ip.evalDeftest(args)
		case "defsuite":
			return ip.evalDefsuite(args)
		case "deffixture":
			return ip.evalDeffixture(args)
		case "with-fixtures":
			return ip.evalWithFixtures(args, env)
		}
	}
	return outcome{tail: &tailCall{callee: head, args: args, env: env}}, nil
}

func (ip *Interp) evalIf(args []Value, env *Env) (outcome, error) {
	if len(args) != 2 && len(args) != 3 {
		return outcome{}, syntaxErrorf("if expects 2 or 3 arguments, got %d", len(args))
	}
	cond, err := ip.Eval(args[0], env)
	if err != nil {
		return outcome{}, err
	}
	if cond.Truthy() {
		return ip.evalStep(args[1], env)
	}
	if len(args) == 3 {
		return ip.evalStep(args[2], env)
	}
	return done(Nil()), nil
}

func (ip *Interp) evalLet(args []Value, env *Env) (outcome, error) {
	if len(args) < 2 {
		return outcome{}, syntaxErrorf("let expects at least 2 arguments (bindings and body), got %d", len(args))
	}
	bindings := args[0]
	if bindings.Kind != KindList {
		return outcome{}, syntaxErrorf("let bindings must be a list, got %s", bindings.Repr())
	}
	child := NewEnv(env)
	for _, b := range bindings.Cells {
		if b.Kind != KindList || len(b.Cells) != 2 || b.Cells[0].Kind != KindSymbol {
			return outcome{}, syntaxErrorf("malformed let binding %s, want (name value)", b.Repr())
		}
		// binding values see the outer environment, not each other
		v, err := ip.Eval(b.Cells[1], env)
		if err != nil {
			return outcome{}, err
		}
		child.Define(b.Cells[0].Str, v)
	}
	return ip.stepBody(args[1:], child)
}

func (ip *Interp) evalLambda(args []Value, env *Env) (outcome, error) {
	if len(args) < 2 {
		return outcome{}, syntaxErrorf("lambda expects at least 2 arguments (parameters and body), got %d", len(args))
	}
	params, err := paramNames("lambda", args[0])
	if err != nil {
		return outcome{}, err
	}
	return done(Func(&Function{Params: params, Body: args[1:], Env: env})), nil
}

func (ip *Interp) evalDefun(args []Value, env *Env, macro bool) (outcome, error) {
	form := "defun"
	if macro {
		form = "defmacro"
	}
	if len(args) < 3 {
		return outcome{}, syntaxErrorf("%s expects at least 3 arguments (name, parameters, body), got %d", form, len(args))
	}
	if args[0].Kind != KindSymbol {
		return outcome{}, syntaxErrorf("%s name must be a symbol, got %s", form, args[0].Repr())
	}
	params, err := paramNames(form, args[1])
	if err != nil {
		return outcome{}, err
	}
	fn := &Function{Name: args[0].Str, Params: params, Body: args[2:], Env: env}
	if macro {
		env.Define(args[0].Str, Macro(fn))
	} else {
		env.Define(args[0].Str, Func(fn))
	}
	return done(args[0]), nil
}

func paramNames(form string, list Value) ([]string, error) {
	if list.Kind != KindList {
		return nil, syntaxErrorf("%s parameter list must be a list, got %s", form, list.Repr())
	}
	names := make([]string, len(list.Cells))
	for i, p := range list.Cells {
		if p.Kind != KindSymbol {
			return nil, syntaxErrorf("%s parameter must be a symbol, got %s", form, p.Repr())
		}
		names[i] = p.Str
	}
	return names, nil
}

func (ip *Interp) evalCond(args []Value, env *Env) (outcome, error) {
	for _, clause := range args {
		if clause.Kind != KindList || len(clause.Cells) != 2 {
			return outcome{}, syntaxErrorf("malformed cond clause %s, want (condition expression)", clause.Repr())
		}
		c, err := ip.Eval(clause.Cells[0], env)
		if err != nil {
			return outcome{}, err
		}
		if c.Truthy() {
			return ip.evalStep(clause.Cells[1], env)
		}
	}
	return done(Nil()), nil
}

func (ip *Interp) evalProgn(args []Value, env *Env) (outcome, error) {
	if len(args) == 0 {
		return done(Nil()), nil
	}
	return ip.stepBody(args, env)
}

func (ip *Interp) evalAnd(args []Value, env *Env) (outcome, error) {
	if len(args) == 0 {
		return done(Bool(true)), nil
	}
	for _, a := range args[:len(args)-1] {
		v, err := ip.Eval(a, env)
		if err != nil {
			return outcome{}, err
		}
		if !v.Truthy() {
			return done(v), nil
		}
	}
	return ip.evalStep(args[len(args)-1], env)
}

func (ip *Interp) evalOr(args []Value, env *Env) (outcome, error) {
	if len(args) == 0 {
		return done(Nil()), nil
	}
	for _, a := range args[:len(args)-1] {
		v, err := ip.Eval(a, env)
		if err != nil {
			return outcome{}, err
		}
		if v.Truthy() {
			return done(v), nil
		}
	}
	return ip.evalStep(args[len(args)-1], env)
}

func (ip *Interp) evalDefvar(args []Value, env *Env) (outcome, error) {
	if len(args) != 2 {
		return outcome{}, syntaxErrorf("defvar expects 2 arguments (name and value), got %d", len(args))
	}
	if args[0].Kind != KindSymbol {
		return outcome{}, syntaxErrorf("defvar name must be a symbol, got %s", args[0].Repr())
	}
	v, err := ip.Eval(args[1], env)
	if err != nil {
		return outcome{}, err
	}
	env.Define(args[0].Str, v)
	return done(v), nil
}

func (ip *Interp) evalSet(args []Value, env *Env) (outcome, error) {
	if len(args) != 2 {
		return outcome{}, syntaxErrorf("set! expects 2 arguments (name and value), got %d", len(args))
	}
	if args[0].Kind != KindSymbol {
		return outcome{}, syntaxErrorf("set! name must be a symbol, got %s", args[0].Repr())
	}
	v, err := ip.Eval(args[1], env)
	if err != nil {
		return outcome{}, err
	}
	if err := env.Set(args[0].Str, v); err != nil {
		return outcome{}, err
	}
	return done(v), nil
}

func (ip *Interp) evalAssert(args []Value, env *Env) (outcome, error) {
	if len(args) != 1 {
		return outcome{}, syntaxErrorf("assert expects 1 argument, got %d", len(args))
	}
	v, err := ip.Eval(args[0], env)
	if err != nil {
		return outcome{}, err
	}
	if !v.Truthy() {
		// for (= a b) and (equal a b) show both sides
		if c := args[0]; c.Kind == KindList && len(c.Cells) == 3 && c.Cells[0].Kind == KindSymbol &&
			(c.Cells[0].Str == "=" || c.Cells[0].Str == "equal") {
			lhs, err := ip.Eval(c.Cells[1], env)
			if err != nil {
				return outcome{}, err
			}
			rhs, err := ip.Eval(c.Cells[2], env)
			if err != nil {
				return outcome{}, err
			}
			return outcome{}, runtimeErrorf("assertion failed: %s: %s != %s", c.Repr(), lhs.Repr(), rhs.Repr())
		}
		return outcome{}, runtimeErrorf("assertion failed: %s", args[0].Repr())
	}
	return done(Bool(true)), nil
}

func (ip *Interp) evalAssertError(args []Value, env *Env) (outcome, error) {
	if len(args) != 1 {
		return outcome{}, syntaxErrorf("assert-error expects 1 argument, got %d", len(args))
	}
	if _, err := ip.Eval(args[0], env); err == nil {
		return outcome{}, runtimeErrorf("expected an error from %s", args[0].Repr())
	}
	return done(Bool(true)), nil
}
