// Command expr parses an expression, prints it back and evaluates it.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/alecthomas/repr"
	"github.com/yuqzii/uttrykk/internal/expression"
	"github.com/yuqzii/uttrykk/internal/graph"
	"gopkg.in/alecthomas/kingpin.v2"
)

var errInvalidExpression = errors.New("expression did not parse")

type options struct {
	expression string
	value      string
	variable   string
	ast        bool
	json       bool
	plot       bool
	from       float64
	to         float64
	zoom       float64
	width      int
	height     int
}

func newApp(opts *options) *kingpin.Application {
	// Everything after the expression is positional, so a negative value is
	// not read as a short flag. Flags go first.
	app := kingpin.New("expr", "Parse and evaluate a single-variable expression.").Interspersed(false)
	app.Flag("variable", "Name of the variable to substitute. Defaults to the one in the expression.").
		Short('v').StringVar(&opts.variable)
	app.Flag("ast", "Print the Go structure of the tree.").BoolVar(&opts.ast)
	app.Flag("json", "Print the tree as JSON.").BoolVar(&opts.json)
	app.Flag("plot", "Draw the expression as text.").BoolVar(&opts.plot)
	app.Flag("from", "Start of the plotted range.").Default("-10").Float64Var(&opts.from)
	app.Flag("to", "End of the plotted range.").Default("10").Float64Var(&opts.to)
	app.Flag("zoom", "Zoom steps applied to the plotted range. Negative steps zoom in.").
		Default("0").Float64Var(&opts.zoom)
	app.Flag("width", "Plot width in characters.").Default("72").IntVar(&opts.width)
	app.Flag("height", "Plot height in characters.").Default("20").IntVar(&opts.height)
	app.Arg("expression", "Expression to parse.").Required().StringVar(&opts.expression)
	app.Arg("value", "Value substituted for the variable.").StringVar(&opts.value)
	return app
}

func describe(err error) string {
	var parseErr *expression.ParseError
	if !errors.As(err, &parseErr) {
		return err.Error()
	}

	switch parseErr.Kind {
	case expression.Empty:
		return "Empty expression"
	case expression.InvalidParentheses:
		return "Incorrect number of open/close parentheses"
	case expression.InvalidNumber:
		return "Failed to parse number(s) in expression"
	case expression.InvalidExpression:
		return "Expression is invalid"
	case expression.TooDeep:
		return "Expression is nested too deeply"
	default:
		return parseErr.Error()
	}
}

// plotViewport zooms the square viewport over [from, to] by steps of
// graph.ZoomStep.
func plotViewport(from, to, steps float64) graph.Viewport {
	return graph.NewViewport(from, to).Zoom(math.Pow(graph.ZoomStep, steps))
}

func run(args []string, stdout io.Writer) error {
	var opts options
	app := newApp(&opts)
	if _, err := app.Parse(args); err != nil {
		return err
	}

	node, err := expression.Parse(opts.expression)
	if err != nil {
		fmt.Fprintln(stdout, describe(err))
		return errInvalidExpression
	}
	fmt.Fprintf(stdout, "Expression %s\n", node)

	variable := opts.variable
	if variable == "" {
		variable = "x"
		if name, ok := node.FreeVariable(); ok {
			variable = name
		}
	}

	if opts.value != "" {
		value, err := strconv.ParseFloat(opts.value, 64)
		if err != nil {
			return fmt.Errorf("value %q: %w", opts.value, err)
		}
		result, err := node.Evaluate(variable, value)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Evaluation Result %s\n", strconv.FormatFloat(result, 'g', -1, 64))
	}

	if opts.ast {
		fmt.Fprintln(stdout, repr.String(node, repr.Indent("  ")))
	}

	if opts.json {
		data, err := json.MarshalIndent(node, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding tree: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
	}

	if opts.plot {
		vp := plotViewport(opts.from, opts.to, opts.zoom)
		points := graph.Sample(node, variable, vp, opts.width)
		plot, err := graph.Render(points, graph.FitY(points, vp), opts.width, opts.height)
		if err != nil {
			return fmt.Errorf("plotting: %w", err)
		}
		fmt.Fprint(stdout, plot)
	}

	return nil
}

func main() {
	err := run(os.Args[1:], os.Stdout)
	if errors.Is(err, errInvalidExpression) {
		os.Exit(1)
	}
	kingpin.FatalIfError(err, "")
}
