package expression

import (
	"math"
	"strings"
)

type TrigFunction int

const (
	Sin TrigFunction = iota
	Cos
	Tan
	Sec
	Cosec
	Cot
)

var trigNames = map[TrigFunction]string{
	Sin:   "sin",
	Cos:   "cos",
	Tan:   "tan",
	Sec:   "sec",
	Cosec: "cosec",
	Cot:   "cot",
}

func trigFromName(name string) (TrigFunction, bool) {
	for fn, n := range trigNames {
		if n == name {
			return fn, true
		}
	}
	return 0, false
}

// matchTrigKeyword returns the longest keyword that prefixes input, so
// "cosec" is never read as "cos".
func matchTrigKeyword(input string) (string, bool) {
	best := ""
	for _, name := range trigNames {
		if len(name) > len(best) && strings.HasPrefix(input, name) {
			best = name
		}
	}
	return best, best != ""
}

func (f TrigFunction) String() string {
	return trigNames[f]
}

// Apply does not guard asymptotes, tan(pi/2) and friends come back huge or infinite.
func (f TrigFunction) Apply(value float64) float64 {
	switch f {
	case Sin:
		return math.Sin(value)
	case Cos:
		return math.Cos(value)
	case Tan:
		return math.Tan(value)
	case Sec:
		return 1 / math.Cos(value)
	case Cosec:
		return 1 / math.Sin(value)
	case Cot:
		return 1 / math.Tan(value)
	default:
		return math.NaN()
	}
}
