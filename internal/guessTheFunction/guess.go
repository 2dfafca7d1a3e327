package guessTheFunction

import (
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	maxErr  float64 = 1e-5
	samples uint16  = 100
)

func guess(def string, round *gtfRound) (bool, error) {
	fn, err := MakeNewFunction(def)
	if err != nil {
		return false, err
	}

	for range samples {
		x := round.lb + rand.Float64()*(round.ub-round.lb)

		if !sameValue(fn.Eval(x), round.fn.Eval(x)) {
			return false, nil
		}
	}

	return true, nil
}

// sameValue compares by relative difference. Undefined points only match
// other undefined points.
func sameValue(y, correctY float64) bool {
	if math.IsNaN(y) || math.IsNaN(correctY) {
		return math.IsNaN(y) && math.IsNaN(correctY)
	}
	if math.IsInf(y, 0) || math.IsInf(correctY, 0) {
		return y == correctY
	}

	absDiff := math.Abs(y - correctY)
	scale := math.Max(1, math.Max(math.Abs(y), math.Abs(correctY)))
	return absDiff/scale <= maxErr
}

func correctGuessMsg(round *gtfRound, guessedFunc string) string {
	return fmt.Sprintf("Congratulations! You guessed the function!\n"+
		"Submitted function: `%s`\nYour function: `%s`", round.fn, guessedFunc)
}

const wrongGuessMsg = "Your guess was incorrect :( (skill issue tbh)."
