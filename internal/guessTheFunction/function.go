package guessTheFunction

import (
	"fmt"
	"log"
	"math"

	"github.com/yuqzii/uttrykk/internal/expression"
)

// Function is a parsed, evaluable function of one variable
type Function struct {
	Definition string
	tree       *expression.Node
	variable   string
}

// MakeNewFunction
// functionDefinition a string which defines the function, e.g. "x^2 + 3*x + 2"
// returns a Function type, call .Eval(x) to evaluate the function
func MakeNewFunction(functionDefinition string) (*Function, error) {
	tree, err := expression.Parse(functionDefinition)
	if err != nil {
		log.Println("error parsing function, ", functionDefinition, ", error,", err)
		return nil, fmt.Errorf("parsing function [%s]: %w", functionDefinition, err)
	}

	variable, ok := tree.FreeVariable()
	if !ok {
		variable = "x"
	}
	return &Function{Definition: functionDefinition, tree: tree, variable: variable}, nil
}

// Eval returns NaN where the function cannot be evaluated.
func (f *Function) Eval(x float64) float64 {
	y, err := f.tree.Evaluate(f.variable, x)
	if err != nil {
		return math.NaN()
	}
	return y
}

func (f *Function) String() string {
	return f.tree.CanonicalText()
}
