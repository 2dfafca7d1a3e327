package expression

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenType int

const (
	NUMBER_TOKEN TokenType = iota
	VARIABLE_TOKEN
	TRIG_TOKEN
	OPERATOR_TOKEN
	LEFT_PAREN_TOKEN
	RIGHT_PAREN_TOKEN
)

func (t TokenType) String() string {
	switch t {
	case NUMBER_TOKEN:
		return "number"
	case VARIABLE_TOKEN:
		return "variable"
	case TRIG_TOKEN:
		return "trig"
	case OPERATOR_TOKEN:
		return "operator"
	case LEFT_PAREN_TOKEN:
		return "("
	case RIGHT_PAREN_TOKEN:
		return ")"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// Token is one lexical unit. Number is only set for NUMBER_TOKEN.
type Token struct {
	Type   TokenType
	Value  string
	Number float64
}

func (t Token) String() string {
	return t.Value
}

const operatorChars = "+-*/%^"

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// Tokenize splits text into tokens in source order. Whitespace is skipped and
// any character outside the expression alphabet is rejected.
func Tokenize(text string) ([]Token, error) {
	var tokens []Token
	i := 0
	for i < len(text) {
		ch, width := utf8.DecodeRuneInString(text[i:])

		switch {
		case unicode.IsSpace(ch):
			i += width

		case isDigit(text[i]) || text[i] == '.':
			start := i
			// Find all consecutive digits and decimal points
			for i < len(text) && (isDigit(text[i]) || text[i] == '.') {
				i++
			}
			literal := text[start:i]
			value, err := parseNumber(literal)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, Token{Type: NUMBER_TOKEN, Value: literal, Number: value})

		case unicode.IsLetter(ch):
			if name, ok := matchTrigKeyword(text[i:]); ok {
				tokens = append(tokens, Token{Type: TRIG_TOKEN, Value: name})
				i += len(name)
				continue
			}
			// The free variable is always a single letter
			tokens = append(tokens, Token{Type: VARIABLE_TOKEN, Value: string(ch)})
			i += width

		case strings.ContainsRune(operatorChars, ch):
			tokens = append(tokens, Token{Type: OPERATOR_TOKEN, Value: string(ch)})
			i += width

		case ch == '(':
			tokens = append(tokens, Token{Type: LEFT_PAREN_TOKEN, Value: "("})
			i += width

		case ch == ')':
			tokens = append(tokens, Token{Type: RIGHT_PAREN_TOKEN, Value: ")"})
			i += width

		default:
			return nil, parseErrorf(InvalidExpression, "unexpected character %q at position %d", ch, i)
		}
	}
	return tokens, nil
}

// parseNumber accepts digits with at most one interior decimal point.
func parseNumber(literal string) (float64, error) {
	if !isDigit(literal[0]) || strings.HasSuffix(literal, ".") || strings.Count(literal, ".") > 1 {
		return 0, parseErrorf(InvalidNumber, "malformed number %q", literal)
	}
	value, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return 0, parseErrorf(InvalidNumber, "malformed number %q", literal)
	}
	return value, nil
}
