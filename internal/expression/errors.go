package expression

import "fmt"

type ErrorKind int

const (
	Empty ErrorKind = iota
	InvalidParentheses
	InvalidNumber
	InvalidExpression
	// TooDeep is returned when nesting exceeds MaxNestingDepth.
	TooDeep
)

func (k ErrorKind) String() string {
	switch k {
	case Empty:
		return "empty expression"
	case InvalidParentheses:
		return "invalid parentheses"
	case InvalidNumber:
		return "invalid number"
	case InvalidExpression:
		return "invalid expression"
	case TooDeep:
		return "expression nested too deeply"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError is returned by Tokenize and Parse. No partial tree is ever
// returned alongside it.
type ParseError struct {
	Kind   ErrorKind
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Detail
}

// Is matches any ParseError of the same kind, so callers can write
// errors.Is(err, expression.ErrEmpty).
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

var (
	ErrEmpty              = &ParseError{Kind: Empty}
	ErrInvalidParentheses = &ParseError{Kind: InvalidParentheses}
	ErrInvalidNumber      = &ParseError{Kind: InvalidNumber}
	ErrInvalidExpression  = &ParseError{Kind: InvalidExpression}
	ErrTooDeep            = &ParseError{Kind: TooDeep}
)

func parseErrorf(kind ErrorKind, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

type EvalErrorKind int

const (
	NoSubstitute EvalErrorKind = iota
	EvalInvalidParentheses
	EvalInvalidNumber
	EvalInvalidExpression
)

func (k EvalErrorKind) String() string {
	switch k {
	case NoSubstitute:
		return "no substitute"
	case EvalInvalidParentheses:
		return "invalid parentheses"
	case EvalInvalidNumber:
		return "invalid number"
	case EvalInvalidExpression:
		return "invalid expression"
	default:
		return fmt.Sprintf("EvalErrorKind(%d)", int(k))
	}
}

// EvalError can only come out of hand-built trees. A tree produced by Parse
// always evaluates.
type EvalError struct {
	Kind   EvalErrorKind
	Detail string
}

func (e *EvalError) Error() string {
	if e.Detail == "" {
		return "evaluating expression: " + e.Kind.String()
	}
	return "evaluating expression: " + e.Kind.String() + ": " + e.Detail
}

func (e *EvalError) Is(target error) bool {
	t, ok := target.(*EvalError)
	return ok && t.Kind == e.Kind
}

var ErrEvalInvalidExpression = &EvalError{Kind: EvalInvalidExpression}
