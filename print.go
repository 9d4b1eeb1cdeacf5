package tlisp

import (
	"math"
	"strconv"
	"strings"
)

// printing

// String renders the display form: strings appear bare, suitable for
// status-line messages.
func (v Value) String() string {
	var sb strings.Builder
	writeValue(&sb, v, false)
	return sb.String()
}

// Repr renders the read form: strings are quoted and escaped so that for
// nil, t, numbers, strings, symbols, and lists of those, Parse(v.Repr())
// yields a value equal to v.
func (v Value) Repr() string {
	var sb strings.Builder
	writeValue(&sb, v, true)
	return sb.String()
}

func writeValue(sb *strings.Builder, v Value, readable bool) {
	switch v.Kind {
	case KindNil:
		sb.WriteString("nil")
	case KindBool:
		if v.Bool {
			sb.WriteString("t")
		} else {
			sb.WriteString("false")
		}
	case KindNumber:
		sb.WriteString(formatNumber(v.Num))
	case KindString:
		if readable {
			writeQuoted(sb, v.Str)
		} else {
			sb.WriteString(v.Str)
		}
	case KindSymbol:
		sb.WriteString(v.Str)
	case KindList:
		sb.WriteByte('(')
		for i, item := range v.Cells {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writeValue(sb, item, readable)
		}
		sb.WriteByte(')')
	case KindFunction:
		if v.Fn != nil && v.Fn.Name != "" {
			sb.WriteString("#<function " + v.Fn.Name + ">")
		} else {
			sb.WriteString("#<function>")
		}
	case KindMacro:
		if v.Fn != nil && v.Fn.Name != "" {
			sb.WriteString("#<macro " + v.Fn.Name + ">")
		} else {
			sb.WriteString("#<macro>")
		}
	case KindHashMap:
		sb.WriteString("#<hash-map " + strconv.Itoa(len(v.Map)) + ">")
	default:
		sb.WriteString("#<" + v.Kind.String() + ">")
	}
}

// formatNumber prints integral floats without a decimal point, so editor
// scripts see "3" rather than "3.0" for counts and positions.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func writeQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
}
