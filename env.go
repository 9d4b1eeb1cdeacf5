package tlisp

// environment

// Env is one frame of the lexical environment chain. A frame is created
// per let body, per call, and once at startup for the global scope; the
// garbage collector reclaims it when no closure or pending evaluation
// references it.
type Env struct {
	vars   map[string]Value
	parent *Env
}

func NewEnv(parent *Env) *Env {
	return &Env{vars: make(map[string]Value), parent: parent}
}

// Lookup walks the chain innermost to outermost and returns the first
// binding found.
func (e *Env) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Define writes name in the current frame, shadowing any outer binding.
func (e *Env) Define(name string, v Value) {
	e.vars[name] = v
}

// Set mutates the nearest existing binding anywhere in the chain. There is
// no deletion operation.
func (e *Env) Set(name string, v Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			env.vars[name] = v
			return nil
		}
	}
	return undefinedSymbolf("cannot set! unbound symbol %s", name)
}
