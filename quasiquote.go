package tlisp

// quasiquote

// quasiquoteHead reports whether v is a list headed by one of the template
// operators.
func quasiquoteHead(v Value) (string, bool) {
	if v.Kind == KindList && len(v.Cells) > 0 && v.Cells[0].Kind == KindSymbol {
		switch v.Cells[0].Str {
		case "quasiquote", "unquote", "unquote-splicing":
			return v.Cells[0].Str, true
		}
	}
	return "", false
}

// expandQuasiquote walks a template. depth counts enclosing quasiquotes;
// an unquote fires only when it reaches the level its template was written
// at, so nested templates survive one expansion with one layer of unquote
// intact.
func (ip *Interp) expandQuasiquote(expr Value, env *Env, depth int) (Value, error) {
	if expr.Kind != KindList || len(expr.Cells) == 0 {
		return expr, nil
	}
	if name, ok := quasiquoteHead(expr); ok {
		if len(expr.Cells) != 2 {
			return Value{}, syntaxErrorf("%s expects 1 argument, got %d", name, len(expr.Cells)-1)
		}
		arg := expr.Cells[1]
		switch name {
		case "quasiquote":
			inner, err := ip.expandQuasiquote(arg, env, depth+1)
			if err != nil {
				return Value{}, err
			}
			return List(Symbol("quasiquote"), inner), nil
		case "unquote":
			if depth == 1 {
				return ip.Eval(arg, env)
			}
			inner, err := ip.expandQuasiquote(arg, env, depth-1)
			if err != nil {
				return Value{}, err
			}
			return List(Symbol("unquote"), inner), nil
		case "unquote-splicing":
			// reached directly, not as a list element: nowhere to splice
			if depth == 1 {
				return Value{}, syntaxErrorf("unquote-splicing outside a list")
			}
			inner, err := ip.expandQuasiquote(arg, env, depth-1)
			if err != nil {
				return Value{}, err
			}
			return List(Symbol("unquote-splicing"), inner), nil
		}
	}
	out := make([]Value, 0, len(expr.Cells))
	for _, el := range expr.Cells {
		if name, ok := quasiquoteHead(el); ok && name == "unquote-splicing" && depth == 1 {
			if len(el.Cells) != 2 {
				return Value{}, syntaxErrorf("unquote-splicing expects 1 argument, got %d", len(el.Cells)-1)
			}
			v, err := ip.Eval(el.Cells[1], env)
			if err != nil {
				return Value{}, err
			}
			if v.Kind != KindList {
				return Value{}, typeErrorf("unquote-splicing expects a list, got %s", v.Kind)
			}
			out = append(out, v.Cells...)
			continue
		}
		ev, err := ip.expandQuasiquote(el, env, depth)
		if err != nil {
			return Value{}, err
		}
		out = append(out, ev)
	}
	return List(out...), nil
}
