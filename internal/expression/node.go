// Package expression parses and evaluates single-variable algebraic expressions.
package expression

// Node is one level of an expression tree.
//
// With Operator and Right set it is a binary operation. With only Right set
// the two sides are multiplied. With neither, the node is worth its Left
// operand. A Node is never modified after Parse returns it, so one tree may be
// evaluated from several goroutines at once.
type Node struct {
	Left     Operand
	Operator Operator
	Right    Operand
}

// Operand fills the left or right slot of a Node.
type Operand interface {
	evaluate(variable string, value float64) (float64, error)
	String() string
	isOperand()
}

type Constant struct {
	Value float64
}

// Variable is the free variable, a single letter.
type Variable struct {
	Name string
}

// Group is a parenthesized sub-tree.
type Group struct {
	Node *Node
}

type TrigCall struct {
	Function TrigFunction
	Argument *Node
}

func (Constant) isOperand() {}

func (Variable) isOperand() {}

func (Group) isOperand() {}

func (TrigCall) isOperand() {}

// FreeVariable returns the first variable letter found in the tree, left to
// right. Constant expressions report false.
func (n *Node) FreeVariable() (string, bool) {
	if n == nil {
		return "", false
	}
	for _, operand := range []Operand{n.Left, n.Right} {
		if name, ok := operandVariable(operand); ok {
			return name, true
		}
	}
	return "", false
}

func operandVariable(operand Operand) (string, bool) {
	switch o := operand.(type) {
	case Variable:
		return o.Name, true
	case Group:
		return o.Node.FreeVariable()
	case TrigCall:
		return o.Argument.FreeVariable()
	default:
		return "", false
	}
}
