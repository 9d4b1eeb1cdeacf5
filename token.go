package tlisp

import "strings"

// tokenizer

type TokenKind int

const (
	TokenLeftParen TokenKind = iota
	TokenRightParen
	TokenQuote
	TokenQuasiquote
	TokenUnquote
	TokenUnquoteSplicing
	TokenNumber
	TokenString
	TokenSymbol
)

// Token is one lexeme. String tokens carry their escape-decoded text,
// everything else the raw lexeme.
type Token struct {
	Kind TokenKind
	Text string
}

// Tokenize converts source text to a flat token sequence. Whitespace and
// ;-to-end-of-line comments are skipped, and so is any character that fits
// no token class; the only failure is an unterminated string literal.
func Tokenize(source string) ([]Token, error) {
	var tokens []Token
	n := len(source)
	i := 0
	for i < n {
		c := source[i]
		switch {
		case isWhitespace(c):
			i++
		case c == ';':
			for i < n && source[i] != '\n' {
				i++
			}
		case c == '(':
			tokens = append(tokens, Token{Kind: TokenLeftParen, Text: "("})
			i++
		case c == ')':
			tokens = append(tokens, Token{Kind: TokenRightParen, Text: ")"})
			i++
		case c == '\'':
			tokens = append(tokens, Token{Kind: TokenQuote, Text: "'"})
			i++
		case c == '`':
			tokens = append(tokens, Token{Kind: TokenQuasiquote, Text: "`"})
			i++
		case c == ',':
			if i+1 < n && source[i+1] == '@' {
				tokens = append(tokens, Token{Kind: TokenUnquoteSplicing, Text: ",@"})
				i += 2
			} else {
				tokens = append(tokens, Token{Kind: TokenUnquote, Text: ","})
				i++
			}
		case c == '"':
			text, next, err := scanString(source, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, Token{Kind: TokenString, Text: text})
			i = next
		case isDigit(c) || (c == '-' && i+1 < n && isDigit(source[i+1])):
			text, next := scanNumber(source, i)
			tokens = append(tokens, Token{Kind: TokenNumber, Text: text})
			i = next
		case isSymbolChar(c):
			j := i
			for j < n && isSymbolChar(source[j]) {
				j++
			}
			tokens = append(tokens, Token{Kind: TokenSymbol, Text: source[i:j]})
			i = j
		default:
			i++
		}
	}
	return tokens, nil
}

// scanString decodes a string literal starting at the opening quote.
// Escapes n, t, r, backslash, and double quote decode; any other escaped
// character passes through literally.
func scanString(source string, start int) (string, int, error) {
	var sb strings.Builder
	i := start + 1
	for i < len(source) {
		c := source[i]
		if c == '"' {
			return sb.String(), i + 1, nil
		}
		if c == '\\' && i+1 < len(source) {
			i++
			switch source[i] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				sb.WriteByte(source[i])
			}
			i++
			continue
		}
		sb.WriteByte(c)
		i++
	}
	return "", 0, &TokenizeError{Kind: UnterminatedString, Message: "unterminated string literal"}
}

// scanNumber consumes an optional leading minus, digits, and an optional
// fraction. A dot not followed by a digit is left for the main loop.
func scanNumber(source string, start int) (string, int) {
	n := len(source)
	i := start + 1
	for i < n && isDigit(source[i]) {
		i++
	}
	if i+1 < n && source[i] == '.' && isDigit(source[i+1]) {
		i++
		for i < n && isDigit(source[i]) {
			i++
		}
	}
	return source[start:i], i
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSymbolChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '_', '+', '-', '*', '/', '=', '<', '>', '!', '?':
		return true
	}
	return false
}
