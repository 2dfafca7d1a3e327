package expression

import (
	"errors"
	"math"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

const (
	xValuesLowerBound            float64 = -1000
	xValuesUpperBound            float64 = 1000
	numberSamplesPerFunctionTest uint16  = 100
	maxTolerableError            float64 = 1e-9
)

type TestCase struct {
	Input    string
	Expected func(x float64) float64
}

// Grouping follows the rank table, not school arithmetic: subtraction binds
// loosest, then addition, division, multiplication, modulus and power.
var TestCases_FunctionParsing = []TestCase{
	{"x", func(x float64) float64 { return x }},
	{"x+1", func(x float64) float64 { return x + 1 }},
	{"x+1.02020201111", func(x float64) float64 { return x + 1.02020201111 }},
	{"x-3.1415", func(x float64) float64 { return x - 3.1415 }},
	{"x+1-0.5", func(x float64) float64 { return (x + 1) - 0.5 }},
	{"x-1+0.5", func(x float64) float64 { return x - (1 + 0.5) }},
	{"x-x-x", func(x float64) float64 { return x - (x - x) }},
	{"10-x+x", func(x float64) float64 { return 10 - (x + x) }},
	{"2*x/4", func(x float64) float64 { return (2 * x) / 4 }},
	{"x/2*4", func(x float64) float64 { return x / (2 * 4) }},
	{"x%3*2", func(x float64) float64 { return math.Mod(x, 3) * 2 }},
	{"x^2^2", func(x float64) float64 { return math.Pow(x, 4) }},
	{"x^2 + 3*x + 2", func(x float64) float64 { return x*x + 3*x + 2 }},
	{"(x+1)*(x+2)", func(x float64) float64 { return (x + 1) * (x + 2) }},
	{"((x+1))/(2)", func(x float64) float64 { return (x + 1) / 2 }},
	{"x+(x^2)", func(x float64) float64 { return x + x*x }},
	{"sin(x)*cos(x)", func(x float64) float64 { return math.Sin(x) * math.Cos(x) }},
	{"sin x", func(x float64) float64 { return math.Sin(x) }},
	{"sec(x)", func(x float64) float64 { return 1 / math.Cos(x) }},
	{"cosec(x)", func(x float64) float64 { return 1 / math.Sin(x) }},
	{"cot(x/2)", func(x float64) float64 { return 1 / math.Tan(x/2) }},
	{"tan(sin(x))+1", func(x float64) float64 { return math.Tan(math.Sin(x)) + 1 }},
	{"(2 / 7)*x^(4 * 3 / 4)", func(x float64) float64 { return (2.0 / 7.0) * math.Pow(x, 3) }},
}

func approxEqual(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) <= maxTolerableError*math.Max(1, math.Abs(b))
}

func assertFunctionsApproxEqual(parsed *Node, correct func(float64) float64, t *testing.T) {
	t.Helper()
	for range numberSamplesPerFunctionTest {
		// Sample in interval given
		x := xValuesLowerBound + rand.Float64()*(xValuesUpperBound-xValuesLowerBound)

		yCorrect := correct(x)
		yParsed, err := parsed.Evaluate("x", x)
		if err != nil {
			t.Fatalf("unexpected evaluation error at x: %f: %s", x, err)
		}

		if !approxEqual(yParsed, yCorrect) {
			t.Fatalf("functions did not produce same value, x: %f y: %f y_parsed: %f tree: %s",
				x, yCorrect, yParsed, parsed)
		}
	}
}

func Test_ParseAndEvaluate(t *testing.T) {
	for _, tc := range TestCases_FunctionParsing {
		t.Run(tc.Input, func(t *testing.T) {
			parsed, err := Parse(tc.Input)
			if err != nil {
				t.Fatalf("unexpected error parsing %q: %s", tc.Input, err)
			}
			assertFunctionsApproxEqual(parsed, tc.Expected, t)
		})
	}
}

func Test_EvaluateExactValues(t *testing.T) {
	testCases := []struct {
		input    string
		x        float64
		expected float64
	}{
		{"x", 0.5, 0.5},
		{"x+1", 0.5, 1.5},
		{"x-1", 1.5, 0.5},
		{"x*2", 1.5, 3.0},
		{"x^2", 1.5, 2.25},
		{"x%3", 8.0, 2.0},
		{"x+(x^2)", 1.5, 3.75},
		{"x^2 + x^3", 1.5, 5.625},
		{"((x))", 0.25, 0.25},
		{"sin(x/2)", 0, 0},
		{"sin(x/2)", math.Pi, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			parsed, err := Parse(tc.input)
			if err != nil {
				t.Fatalf("unexpected error parsing %q: %s", tc.input, err)
			}
			res, err := parsed.Evaluate("x", tc.x)
			if err != nil {
				t.Fatalf("unexpected evaluation error: %s", err)
			}
			if res != tc.expected {
				t.Errorf("%s at x=%f: expected %v got %v", tc.input, tc.x, tc.expected, res)
			}
		})
	}
}

func Test_ParseErrors(t *testing.T) {
	testCases := []struct {
		input string
		kind  *ParseError
	}{
		{"", ErrEmpty},
		{"   ", ErrEmpty},
		{"()", ErrEmpty},
		{"(())", ErrEmpty},
		{"(x", ErrInvalidParentheses},
		{"x)", ErrInvalidParentheses},
		{")x(", ErrInvalidParentheses},
		{"1.2.3+x", ErrInvalidNumber},
		{"3x", ErrInvalidExpression},
		{"x y", ErrInvalidExpression},
		{"x+sin", ErrInvalidExpression},
		{"x@2", ErrInvalidExpression},
		{"x+", ErrEmpty},
		{"-x", ErrEmpty},
		{"sin", ErrEmpty},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			node, err := Parse(tc.input)
			if err == nil {
				t.Fatalf("expected %s, parsed %s", tc.kind, node)
			}
			if node != nil {
				t.Errorf("expected no tree alongside error, got %s", node)
			}
			if !errors.Is(err, tc.kind) {
				t.Fatalf("expected %s, got %s", tc.kind, err)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) || parseErr.Kind != tc.kind.Kind {
				t.Fatalf("expected *ParseError of kind %s, got %#v", tc.kind.Kind, err)
			}
		})
	}
}

func Test_FindLowestOperator(t *testing.T) {
	testCases := []struct {
		input    string
		index    int
		operator Operator
	}{
		{"x+1", 1, Add},
		{"x+1+0.5", 1, Add},
		{"x-1+0.5", 1, Subtract},
		{"x+1-0.5", 3, Subtract},
		{"x+(1-0.5)", 1, Add},
		{"(x+5)+(x-0.5)", 5, Add},
		{"x^2%3*4/5", 7, Divide},
		{"sin(x-1)", -1, NoOperator},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			tokens, err := Tokenize(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			idx, op := findLowestOperator(tokens)
			if idx != tc.index || op != tc.operator {
				t.Fatalf("expected %q at %d, got %q at %d", tc.operator, tc.index, op, idx)
			}
		})
	}
}

func Test_TrimParentheses(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"((x))", "x"},
		{"((3x))", "3 x"},
		{"(x*3.125)", "x * 3.125"},
		{"((x*3.125))", "x * 3.125"},
		{"((3x)+(x^2))", "( 3 x ) + ( x ^ 2 )"},
		{"(x)+(1)", "( x ) + ( 1 )"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			tokens, err := Tokenize(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			stripped, err := trimParentheses(tokens, 0)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			trimmed := joinTokens(stripped)
			if trimmed != tc.expected {
				t.Fatalf("expected %q got %q", tc.expected, trimmed)
			}
		})
	}
}

func Test_ParseShape(t *testing.T) {
	node, err := Parse("x")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if v, ok := node.Left.(Variable); !ok || v.Name != "x" {
		t.Errorf("expected variable x on the left, got %#v", node.Left)
	}
	if node.Operator != NoOperator || node.Right != nil {
		t.Errorf("expected a leaf node, got %s", spew.Sdump(node))
	}

	node, err = Parse("x+1-0.5")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if node.Operator != Subtract {
		t.Fatalf("expected subtraction at the root, got %q", node.Operator)
	}
	if _, ok := node.Left.(Group); !ok {
		t.Errorf("expected x+1 grouped on the left, got %s", spew.Sdump(node.Left))
	}
	if c, ok := node.Right.(Constant); !ok || c.Value != 0.5 {
		t.Errorf("expected constant 0.5 on the right, got %s", spew.Sdump(node.Right))
	}
}

func Test_NestingDepthIsBounded(t *testing.T) {
	_, err := Parse(strings.Repeat("x+", MaxNestingDepth+10) + "x")
	if !errors.Is(err, ErrTooDeep) {
		t.Fatalf("expected %s, got %v", ErrTooDeep, err)
	}

	_, err = Parse(strings.Repeat("sin ", MaxNestingDepth+10) + "x")
	if !errors.Is(err, ErrTooDeep) {
		t.Fatalf("expected %s, got %v", ErrTooDeep, err)
	}

	_, err = Parse(strings.Repeat("(", 5000) + "x" + strings.Repeat(")", 5000))
	if !errors.Is(err, ErrTooDeep) {
		t.Fatalf("expected %s, got %v", ErrTooDeep, err)
	}

	_, err = Parse("x+" + strings.Repeat("(", 5000) + "1" + strings.Repeat(")", 5000))
	if !errors.Is(err, ErrTooDeep) {
		t.Fatalf("expected %s, got %v", ErrTooDeep, err)
	}

	node, err := Parse(strings.Repeat("(", 100) + "x" + strings.Repeat(")", 100))
	if err != nil || node.String() != "x" {
		t.Fatalf("expected x, got %v (%v)", node, err)
	}

	node, err = Parse(strings.Repeat("x+", 100) + "x")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	res, err := node.Evaluate("x", 2)
	if err != nil || res != 202 {
		t.Fatalf("expected 202, got %f (%v)", res, err)
	}
}

var TestCases_RoundTrip = []string{
	"x",
	"((x))",
	"x+1-0.5",
	"x-1+0.5",
	"x^2 + 3*x + 2",
	"sin(x/2)",
	"cosec(x)*sec(x)+cot(x)",
	"sin(x)+1",
	"(x+1)*2-((x+3)*4)",
	"((x*(2+1))*(x+0))+((10-5)*x)+((3-10)+((2*1)-1))",
	"(x-1)*((((x+2)*(x-3)+(4*x-(2-x)))*(x+1))+((3*(x-5)*(x+4))-(2*x*(1-x))))/(((x-1)^2+(x^(2)-2*x+1))+(((x+2)*(x-2))-((x*x)-4))+(3*x*x-2*x+1))",
	"tan sin x % 7",
	"0.000001*x+100000000000000000000000",
}

func Test_RoundTrip(t *testing.T) {
	samples := []float64{-1000, -3.5, -1, 0, 0.25, 1, math.Pi, 42, 1e6}

	for _, input := range TestCases_RoundTrip {
		t.Run(input, func(t *testing.T) {
			original, err := Parse(input)
			if err != nil {
				t.Fatalf("unexpected error parsing %q: %s", input, err)
			}
			printed := original.String()
			reparsed, err := Parse(printed)
			if err != nil {
				t.Fatalf("printed form %q did not parse: %s\n%s", printed, err, spew.Sdump(original))
			}
			if reparsed.String() != printed {
				t.Errorf("printing is not stable: %q then %q", printed, reparsed.String())
			}

			for _, x := range samples {
				want, _ := original.Evaluate("x", x)
				got, _ := reparsed.Evaluate("x", x)
				if want != got && !(math.IsNaN(want) && math.IsNaN(got)) {
					t.Fatalf("x=%f: original %v, reparsed %v\n%s", x, want, got, spew.Sdump(reparsed))
				}
			}
		})
	}
}

func Test_ConcurrentEvaluation(t *testing.T) {
	node, err := Parse("x^2 + sin(x)")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	var wg sync.WaitGroup
	results := make([]float64, 64)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = node.Evaluate("x", float64(i))
		}()
	}
	wg.Wait()

	for i, res := range results {
		x := float64(i)
		expected := math.Pow(x, 2) + math.Sin(x)
		if res != expected {
			t.Errorf("goroutine %d: expected %f got %f", i, expected, res)
		}
	}
}
