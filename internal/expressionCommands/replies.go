package expressionCommands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuqzii/uttrykk/internal/database"
	"github.com/yuqzii/uttrykk/internal/expression"
	"github.com/yuqzii/uttrykk/internal/graph"
	"github.com/yuqzii/uttrykk/internal/utils"
)

const prefix = "!expr "

var validName = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)

func usage(command string) string {
	return "Usage: `" + prefix + command + "`"
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// DescribeParseError turns a parse failure into a line for the user.
func DescribeParseError(err error) string {
	var parseErr *expression.ParseError
	if !errors.As(err, &parseErr) {
		return "Could not parse expression."
	}

	switch parseErr.Kind {
	case expression.Empty:
		return "The expression is empty or missing an operand."
	case expression.InvalidParentheses:
		return "The parentheses do not match."
	case expression.InvalidNumber:
		return "The expression contains a malformed number."
	case expression.InvalidExpression:
		return "The expression could not be understood: " + parseErr.Detail + "."
	case expression.TooDeep:
		return "The expression is nested too deeply."
	default:
		return "Could not parse expression: " + parseErr.Error()
	}
}

func variableOf(node *expression.Node) string {
	if name, ok := node.FreeVariable(); ok {
		return name
	}
	return "x"
}

func evaluateReply(node *expression.Node, valueText string) string {
	value, err := strconv.ParseFloat(valueText, 64)
	if err != nil {
		return fmt.Sprintf("`%s` is not a number.", valueText)
	}

	result, err := node.Evaluate(variableOf(node), value)
	if err != nil {
		return "Could not evaluate expression."
	}
	return fmt.Sprintf("Expression `%s`\nEvaluation Result `%s`", node.CanonicalText(), formatNumber(result))
}

func evalReply(valueText, definition string) string {
	node, err := expression.Parse(definition)
	if err != nil {
		return DescribeParseError(err)
	}
	return evaluateReply(node, valueText)
}

func printReply(definition string) string {
	node, err := expression.Parse(definition)
	if err != nil {
		return DescribeParseError(err)
	}
	return fmt.Sprintf("Expression `%s`", node.CanonicalText())
}

func astReply(definition string) string {
	node, err := expression.Parse(definition)
	if err != nil {
		return DescribeParseError(err)
	}

	tree, err := json.MarshalIndent(node, "", "  ")
	if err != nil {
		return "Could not encode the tree."
	}

	reply := utils.CodeBlock("json\n" + string(tree))
	if len(reply) > utils.MaxMessageLength {
		return "The tree is too large to show."
	}
	return reply
}

func plotReply(fromText, toText, definition string, width, height int) string {
	from, err := strconv.ParseFloat(fromText, 64)
	if err != nil {
		return fmt.Sprintf("`%s` is not a number.", fromText)
	}
	to, err := strconv.ParseFloat(toText, 64)
	if err != nil {
		return fmt.Sprintf("`%s` is not a number.", toText)
	}

	node, err := expression.Parse(definition)
	if err != nil {
		return DescribeParseError(err)
	}

	vp := graph.NewViewport(from, to)
	if err := vp.Validate(); err != nil {
		return "The plot range must go from a lower to a higher number."
	}

	points := graph.Sample(node, variableOf(node), vp, width)
	if len(points) == 0 {
		return fmt.Sprintf("`%s` has no finite values between %s and %s.",
			node.CanonicalText(), formatNumber(from), formatNumber(to))
	}

	plot, err := graph.Render(points, graph.FitY(points, vp), width, height)
	if err != nil {
		return "Could not draw the plot."
	}

	reply := fmt.Sprintf("`%s` on [%s, %s]\n%s", node.CanonicalText(), formatNumber(from), formatNumber(to), utils.CodeBlock("\n"+plot))
	if len(reply) > utils.MaxMessageLength {
		return "The plot is too large to show."
	}
	return reply
}

func (m *Manager) saveReply(ctx context.Context, name, definition, authorID string) (string, error) {
	if m.store == nil {
		return "Saving expressions is not available.", nil
	}
	if !validName.MatchString(name) {
		return "Names may only use letters, digits, `_` and `-`, at most 32 of them.", nil
	}

	node, err := expression.Parse(definition)
	if err != nil {
		return DescribeParseError(err), nil
	}

	tree, err := json.Marshal(node)
	if err != nil {
		return "Could not encode the tree.", fmt.Errorf("encoding %s: %w", name, err)
	}

	err = m.store.SaveExpression(ctx, database.SavedExpression{
		Name:       name,
		Definition: definition,
		Canonical:  node.CanonicalText(),
		Tree:       tree,
		CreatedBy:  authorID,
	})
	if err != nil {
		return "Could not save the expression.", err
	}
	return fmt.Sprintf("Saved `%s` as `%s`.", node.CanonicalText(), name), nil
}

func (m *Manager) loadReply(ctx context.Context, name, valueText string) (string, error) {
	if m.store == nil {
		return "Saving expressions is not available.", nil
	}

	saved, err := m.store.GetExpression(ctx, name)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Sprintf("No expression named `%s`.", name), nil
	}
	if err != nil {
		return "Could not load the expression.", err
	}

	var node expression.Node
	if err := json.Unmarshal(saved.Tree, &node); err != nil {
		return "The saved expression is corrupt.", fmt.Errorf("decoding %s: %w", name, err)
	}

	if valueText == "" {
		return fmt.Sprintf("`%s` = `%s`", saved.Name, node.CanonicalText()), nil
	}
	return evaluateReply(&node, valueText), nil
}

func (m *Manager) listReply(ctx context.Context) (string, error) {
	if m.store == nil {
		return "Saving expressions is not available.", nil
	}

	names, err := m.store.ListExpressions(ctx)
	if err != nil {
		return "Could not list expressions.", err
	}
	if len(names) == 0 {
		return "No saved expressions.", nil
	}
	return "Saved expressions: `" + strings.Join(names, "`, `") + "`", nil
}
