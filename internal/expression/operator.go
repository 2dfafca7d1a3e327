package expression

import "math"

type Operator int

const (
	NoOperator Operator = iota
	Subtract
	Add
	Divide
	Multiply
	Modulus
	Power
)

// Lower rank is split first, so it ends up outermost in the tree.
// Subtract and Add deliberately do not share a rank.
var operatorRanks = map[Operator]int{
	Subtract: 0,
	Add:      1,
	Divide:   2,
	Multiply: 3,
	Modulus:  4,
	Power:    5,
}

var operatorSymbols = map[Operator]string{
	Subtract: "-",
	Add:      "+",
	Divide:   "/",
	Multiply: "*",
	Modulus:  "%",
	Power:    "^",
}

func operatorFromSymbol(symbol string) (Operator, bool) {
	for op, s := range operatorSymbols {
		if s == symbol {
			return op, true
		}
	}
	return NoOperator, false
}

// Rank returns -1 for NoOperator and unknown values.
func (o Operator) Rank() int {
	rank, ok := operatorRanks[o]
	if !ok {
		return -1
	}
	return rank
}

func (o Operator) String() string {
	return operatorSymbols[o]
}

func (o Operator) apply(left, right float64) (float64, bool) {
	switch o {
	case Subtract:
		return left - right, true
	case Add:
		return left + right, true
	case Divide:
		return left / right, true
	case Multiply:
		return left * right, true
	case Modulus:
		return math.Mod(left, right), true
	case Power:
		return math.Pow(left, right), true
	default:
		return math.NaN(), false
	}
}
