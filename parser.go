package tlisp

import (
	"fmt"
	"strconv"
)

// parser

// Parse reads ONE top-level form from source and ignores trailing input.
// Multi-form execution is the host's job: Interp.Load and Interp.LoadString
// loop until the input is exhausted.
func Parse(source string) (Value, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return Value{}, err
	}
	if err := checkBalance(tokens); err != nil {
		return Value{}, err
	}
	p := &parser{tokens: tokens}
	return p.expr()
}

// checkBalance pre-scans parenthesis nesting over the whole token
// sequence, so unbalanced input fails before anything is built.
func checkBalance(tokens []Token) error {
	depth := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenLeftParen:
			depth++
		case TokenRightParen:
			depth--
			if depth < 0 {
				return &ParseError{Kind: UnmatchedClose, Message: "unmatched ')'"}
			}
		}
	}
	if depth != 0 {
		return &ParseError{Kind: UnmatchedOpen, Message: "unmatched '('"}
	}
	return nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) atEOF() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) expr() (Value, error) {
	if p.atEOF() {
		return Value{}, &ParseError{Kind: UnexpectedEOF, Message: "unexpected end of input"}
	}
	tok := p.tokens[p.pos]
	p.pos++
	switch tok.Kind {
	case TokenLeftParen:
		var items []Value
		for {
			if p.atEOF() {
				return Value{}, &ParseError{Kind: ExpectedCloseParen, Message: "expected ')' before end of input"}
			}
			if p.tokens[p.pos].Kind == TokenRightParen {
				p.pos++
				return List(items...), nil
			}
			item, err := p.expr()
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
	case TokenRightParen:
		return Value{}, &ParseError{Kind: UnexpectedCloseParen, Message: "unexpected ')'"}
	case TokenQuote, TokenQuasiquote, TokenUnquote, TokenUnquoteSplicing:
		inner, err := p.expr()
		if err != nil {
			return Value{}, err
		}
		return List(Symbol(sugarName(tok.Kind)), inner), nil
	case TokenNumber:
		n, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return Value{}, &ParseError{Kind: MalformedLiteral, Message: fmt.Sprintf("malformed number %q", tok.Text)}
		}
		return Number(n), nil
	case TokenString:
		return String(tok.Text), nil
	case TokenSymbol:
		switch tok.Text {
		case "nil":
			return Nil(), nil
		case "t":
			return Bool(true), nil
		}
		return Symbol(tok.Text), nil
	}
	return Value{}, &ParseError{Kind: MalformedLiteral, Message: fmt.Sprintf("unexpected token %q", tok.Text)}
}

func sugarName(k TokenKind) string {
	switch k {
	case TokenQuote:
		return "quote"
	case TokenQuasiquote:
		return "quasiquote"
	case TokenUnquote:
		return "unquote"
	}
	return "unquote-splicing"
}
