package expression

// validate checks that parentheses pair up and that at least one token is not
// a parenthesis.
//
// The counter only tracks one level at a time: an opening parenthesis while
// one is already open is not counted, and neither is a closing parenthesis
// while none is open. The totals of each kind must still agree, which rejects
// a stray ")" the flag alone would ignore. Nested input is therefore checked
// more loosely than a full stack match; the tree builder catches the rest.
func validate(tokens []Token) error {
	count := 0
	open := false
	opened, closed := 0, 0
	operands := 0

	for _, token := range tokens {
		switch token.Type {
		case LEFT_PAREN_TOKEN:
			opened++
			if !open {
				count++
				open = true
			}
		case RIGHT_PAREN_TOKEN:
			closed++
			if open {
				count--
				open = false
			}
		default:
			operands++
		}
	}

	if count != 0 || opened != closed {
		return parseErrorf(InvalidParentheses, "%d opening and %d closing parentheses", opened, closed)
	}

	if operands == 0 {
		return ErrEmpty
	}

	return nil
}
