package expression

import (
	"strconv"
	"strings"
)

// String renders the canonical text of the tree. Parsing the result gives a
// tree that evaluates the same for every substitution, though its shape and
// parenthesization may differ from the original input.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

// CanonicalText is String under the name front ends use.
func (n *Node) CanonicalText() string {
	return n.String()
}

func (n *Node) write(sb *strings.Builder) {
	if n == nil || n.Left == nil {
		return
	}
	sb.WriteString(n.Left.String())

	if n.Right == nil {
		return
	}

	if n.Operator == NoOperator {
		// Juxtaposed operands would not parse back, so spell the product out
		sb.WriteString(Multiply.String())
	} else {
		sb.WriteString(n.Operator.String())
	}
	sb.WriteString(n.Right.String())
}

func (c Constant) String() string {
	return strconv.FormatFloat(c.Value, 'f', -1, 64)
}

func (v Variable) String() string {
	return v.Name
}

func (g Group) String() string {
	return "(" + g.Node.String() + ")"
}

func (t TrigCall) String() string {
	return t.Function.String() + "(" + t.Argument.String() + ")"
}
