package expression

import (
	"fmt"
	"math"
)

// Evaluate computes the tree with value substituted for the free variable.
//
// Every variable in the tree receives value whatever its name; the variable
// argument is not compared against it. Undefined arithmetic such as division
// by zero is not an error, it shows up as an infinity or NaN in the result.
func (n *Node) Evaluate(variable string, value float64) (float64, error) {
	if n == nil || n.Left == nil {
		return math.NaN(), &EvalError{Kind: EvalInvalidExpression, Detail: "node has no left operand"}
	}

	left, err := n.Left.evaluate(variable, value)
	if err != nil {
		return math.NaN(), err
	}

	if n.Right == nil {
		if n.Operator != NoOperator {
			return math.NaN(), &EvalError{
				Kind:   EvalInvalidExpression,
				Detail: fmt.Sprintf("operator %q has no right operand", n.Operator),
			}
		}
		return left, nil
	}

	right, err := n.Right.evaluate(variable, value)
	if err != nil {
		return math.NaN(), err
	}

	// No operator between two operands means multiplication
	if n.Operator == NoOperator {
		return left * right, nil
	}

	result, ok := n.Operator.apply(left, right)
	if !ok {
		return math.NaN(), &EvalError{
			Kind:   EvalInvalidExpression,
			Detail: fmt.Sprintf("unknown operator %d", int(n.Operator)),
		}
	}
	return result, nil
}

func (c Constant) evaluate(string, float64) (float64, error) {
	return c.Value, nil
}

func (Variable) evaluate(_ string, value float64) (float64, error) {
	return value, nil
}

func (g Group) evaluate(variable string, value float64) (float64, error) {
	return g.Node.Evaluate(variable, value)
}

func (t TrigCall) evaluate(variable string, value float64) (float64, error) {
	if _, ok := trigNames[t.Function]; !ok {
		return math.NaN(), &EvalError{
			Kind:   EvalInvalidExpression,
			Detail: fmt.Sprintf("unknown trigonometric function %d", int(t.Function)),
		}
	}
	argument, err := t.Argument.Evaluate(variable, value)
	if err != nil {
		return math.NaN(), err
	}
	return t.Function.Apply(argument), nil
}
