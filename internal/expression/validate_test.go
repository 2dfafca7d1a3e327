package expression

import (
	"errors"
	"testing"
)

func Test_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		tokens []Token
		err    error
	}{
		{
			name: "wrapped variable",
			tokens: []Token{
				{Type: LEFT_PAREN_TOKEN, Value: "("},
				{Type: VARIABLE_TOKEN, Value: "x"},
				{Type: RIGHT_PAREN_TOKEN, Value: ")"},
			},
		},
		{
			name: "reversed parentheses",
			tokens: []Token{
				{Type: RIGHT_PAREN_TOKEN, Value: ")"},
				{Type: OPERATOR_TOKEN, Value: "+"},
				{Type: LEFT_PAREN_TOKEN, Value: "("},
			},
			err: ErrInvalidParentheses,
		},
		{
			name: "stray closing",
			tokens: []Token{
				{Type: VARIABLE_TOKEN, Value: "x"},
				{Type: RIGHT_PAREN_TOKEN, Value: ")"},
			},
			err: ErrInvalidParentheses,
		},
		{
			name: "only parentheses",
			tokens: []Token{
				{Type: LEFT_PAREN_TOKEN, Value: "("},
				{Type: RIGHT_PAREN_TOKEN, Value: ")"},
			},
			err: ErrEmpty,
		},
		{
			name: "no tokens",
			err:  ErrEmpty,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate(tc.tokens)
			if tc.err == nil {
				if err != nil {
					t.Fatalf("unexpected error: %s", err)
				}
				return
			}
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected %s, got %v", tc.err, err)
			}
		})
	}
}

// The single flag counter lets some mismatched nesting through, it is up to
// the tree builder to reject it.
func Test_ValidateSingleFlagIsLoose(t *testing.T) {
	tokens, err := Tokenize("(x))+((1)")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := validate(tokens); err != nil {
		t.Fatalf("expected loose validation to pass, got %s", err)
	}

	_, err = Parse("(x))+((1)")
	if !errors.Is(err, ErrInvalidExpression) {
		t.Fatalf("expected %s from Parse, got %v", ErrInvalidExpression, err)
	}
}
