package expression

import "strings"

// MaxNestingDepth bounds how deep the tree builder recurses, through operator
// chains, parenthesized sides or trigonometric arguments.
const MaxNestingDepth = 256

// Parse turns text into an expression tree. The returned error is always a
// *ParseError.
func Parse(text string) (*Node, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return nil, err
	}

	if err := validate(tokens); err != nil {
		return nil, err
	}

	return buildNode(tokens, 0)
}

// isWrapped reports whether the first token opens a parenthesis that the last
// token closes.
func isWrapped(tokens []Token) bool {
	if len(tokens) < 2 || tokens[0].Type != LEFT_PAREN_TOKEN || tokens[len(tokens)-1].Type != RIGHT_PAREN_TOKEN {
		return false
	}

	depth := 0
	for i, token := range tokens {
		switch token.Type {
		case LEFT_PAREN_TOKEN:
			depth++
		case RIGHT_PAREN_TOKEN:
			depth--
			if depth == 0 && i != len(tokens)-1 {
				return false
			}
		}
	}
	return depth == 0
}

// Strips every full ( ... ) whose interior is valid on its own. Each strip
// counts as one level of nesting.
func trimParentheses(tokens []Token, depth int) ([]Token, error) {
	for isWrapped(tokens) {
		if depth >= MaxNestingDepth {
			return nil, parseErrorf(TooDeep, "more than %d levels", MaxNestingDepth)
		}
		interior := tokens[1 : len(tokens)-1]
		if validate(interior) != nil {
			break
		}
		tokens = interior
		depth++
	}
	return tokens, nil
}

// findLowestOperator returns the index of the top level operator with the
// lowest rank, or -1. Only a strictly lower rank replaces an earlier pick.
func findLowestOperator(tokens []Token) (int, Operator) {
	idx := -1
	lowest := NoOperator
	depth := 0
	for i, token := range tokens {
		// Track parentheses depth
		switch token.Type {
		case LEFT_PAREN_TOKEN:
			depth++
			continue
		case RIGHT_PAREN_TOKEN:
			depth--
			continue
		case OPERATOR_TOKEN:
		default:
			continue
		}

		// Skip parentheses content
		if depth != 0 {
			continue
		}

		op, ok := operatorFromSymbol(token.Value)
		if !ok {
			continue
		}
		if idx == -1 || op.Rank() < lowest.Rank() {
			idx = i
			lowest = op
		}
	}
	return idx, lowest
}

func buildNode(tokens []Token, depth int) (*Node, error) {
	if depth > MaxNestingDepth {
		return nil, parseErrorf(TooDeep, "more than %d levels", MaxNestingDepth)
	}

	current, err := trimParentheses(tokens, depth)
	if err != nil {
		return nil, err
	}

	if idx, op := findLowestOperator(current); idx != -1 {
		left, err := buildSide(current[:idx], depth)
		if err != nil {
			return nil, err
		}
		right, err := buildSide(current[idx+1:], depth)
		if err != nil {
			return nil, err
		}
		return &Node{Left: left, Operator: op, Right: right}, nil
	}

	// A function applies to everything after it
	if len(current) > 0 && current[0].Type == TRIG_TOKEN {
		fn, ok := trigFromName(current[0].Value)
		if !ok {
			return nil, parseErrorf(InvalidExpression, "unknown function %q", current[0].Value)
		}
		argument, err := buildNode(current[1:], depth+1)
		if err != nil {
			return nil, err
		}
		return &Node{Left: TrigCall{Function: fn, Argument: argument}}, nil
	}

	switch len(current) {
	case 0:
		return nil, parseErrorf(Empty, "missing operand")
	case 1:
		leaf, err := mapOperand(current[0])
		if err != nil {
			return nil, err
		}
		return &Node{Left: leaf}, nil
	default:
		return nil, parseErrorf(InvalidExpression, "no operator between %q", joinTokens(current))
	}
}

func buildSide(tokens []Token, depth int) (Operand, error) {
	side, err := trimParentheses(tokens, depth+1)
	if err != nil {
		return nil, err
	}
	return buildOperand(side, depth)
}

// A single token maps straight to a leaf, anything longer becomes a group.
func buildOperand(tokens []Token, depth int) (Operand, error) {
	if len(tokens) == 1 {
		return mapOperand(tokens[0])
	}

	node, err := buildNode(tokens, depth+1)
	if err != nil {
		return nil, err
	}
	return Group{Node: node}, nil
}

func mapOperand(token Token) (Operand, error) {
	switch token.Type {
	case NUMBER_TOKEN:
		return Constant{Value: token.Number}, nil
	case VARIABLE_TOKEN:
		return Variable{Name: token.Value}, nil
	default:
		return nil, parseErrorf(InvalidExpression, "unexpected %s token %q", token.Type, token.Value)
	}
}

func joinTokens(tokens []Token) string {
	values := make([]string, len(tokens))
	for i, token := range tokens {
		values[i] = token.Value
	}
	return strings.Join(values, " ")
}
