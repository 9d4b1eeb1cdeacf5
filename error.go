package tlisp

import "fmt"

// Every fallible operation in the runtime returns an explicit error value;
// nothing panics across the package boundary. Each pipeline stage has its
// own error type carrying a kind, so hosts and tests can tell failures
// apart without parsing messages.

type TokenizeErrorKind int

const (
	UnterminatedString TokenizeErrorKind = iota
)

type TokenizeError struct {
	Kind    TokenizeErrorKind
	Message string
}

func (e *TokenizeError) Error() string {
	return e.Message
}

type ParseErrorKind int

const (
	UnmatchedOpen ParseErrorKind = iota
	UnmatchedClose
	ExpectedCloseParen
	UnexpectedEOF
	UnexpectedCloseParen
	MalformedLiteral
)

type ParseError struct {
	Kind    ParseErrorKind
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

type EvalErrorKind int

const (
	SyntaxError EvalErrorKind = iota
	TypeError
	UndefinedSymbol
	RuntimeError
	ArithmeticError
)

func (k EvalErrorKind) String() string {
	switch k {
	case SyntaxError:
		return "syntax error"
	case TypeError:
		return "type error"
	case UndefinedSymbol:
		return "undefined symbol"
	case RuntimeError:
		return "runtime error"
	case ArithmeticError:
		return "arithmetic error"
	}
	return "eval error"
}

// EvalError is the structured failure produced by evaluation. The first
// error anywhere aborts the enclosing evaluation and propagates unchanged
// to the caller; assert-error is the single construct that inverts this.
type EvalError struct {
	Kind    EvalErrorKind
	Message string
}

func (e *EvalError) Error() string {
	return e.Kind.String() + ": " + e.Message
}

func syntaxErrorf(format string, args ...any) *EvalError {
	return &EvalError{Kind: SyntaxError, Message: fmt.Sprintf(format, args...)}
}

func typeErrorf(format string, args ...any) *EvalError {
	return &EvalError{Kind: TypeError, Message: fmt.Sprintf(format, args...)}
}

func undefinedSymbolf(format string, args ...any) *EvalError {
	return &EvalError{Kind: UndefinedSymbol, Message: fmt.Sprintf(format, args...)}
}

func runtimeErrorf(format string, args ...any) *EvalError {
	return &EvalError{Kind: RuntimeError, Message: fmt.Sprintf(format, args...)}
}

func arithmeticErrorf(format string, args ...any) *EvalError {
	return &EvalError{Kind: ArithmeticError, Message: fmt.Sprintf(format, args...)}
}
