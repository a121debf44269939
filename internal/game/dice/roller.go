package dice

import "sort"

// Roll sums count independent draws, each uniform over [1, sides].
//
// Precondition: src non-nil; sides >= 1.
// Postcondition: count <= result <= count*sides when count > 0; 0 when count <= 0.
func Roll(src Source, count, sides int) int {
	total := 0
	for i := 0; i < count; i++ {
		total += src.Intn(sides) + 1
	}
	return total
}

// D20 rolls a single twenty-sided die.
func D20(src Source) int {
	return Roll(src, 1, 20)
}

// D20WithAdvantage rolls two independent d20s and keeps the higher.
func D20WithAdvantage(src Source) int {
	return max(D20(src), D20(src))
}

// D20WithDisadvantage rolls two independent d20s and keeps the lower.
func D20WithDisadvantage(src Source) int {
	return min(D20(src), D20(src))
}

// Attribute rolls 3d6 for a freshly generated ability score.
//
// Postcondition: 3 <= result <= 18.
func Attribute(src Source) int {
	return Roll(src, 3, 6)
}

// Evaluate rolls a parsed Expression using src.
//
// Precondition: expr must come from Parse; src must be non-nil.
// Postcondition: len(result.Dice) == expr.Count, or expr.KeepHighest when set;
// expr.Min() <= result.Total() <= expr.Max().
func Evaluate(expr Expression, src Source) RollResult {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}

	kept := rolled
	if expr.KeepHighest > 0 {
		sorted := make([]int, len(rolled))
		copy(sorted, rolled)
		sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
		kept = sorted[:expr.KeepHighest]
	}

	return RollResult{
		Expression: expr.Raw,
		Dice:       kept,
		Modifier:   expr.Modifier,
	}
}

// RollExpr parses expr and evaluates it using src in a single call.
//
// Postcondition: Returns a RollResult or a parse error.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Evaluate(e, src), nil
}
