package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger so that rolls leave a debug trail.
// A Roller is itself a Source and can be handed to any consumer of one.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Intn delegates to the wrapped source without logging.
func (r *Roller) Intn(n int) int {
	return r.src.Intn(n)
}

// Roll sums count draws over [1, sides] and logs the total.
func (r *Roller) Roll(count, sides int) int {
	total := Roll(r.src, count, sides)
	r.logger.Debug("dice roll",
		zap.Int("count", count),
		zap.Int("sides", sides),
		zap.Int("total", total),
	)
	return total
}

// D20 rolls and logs a single d20.
func (r *Roller) D20() int {
	return r.Roll(1, 20)
}

// Evaluate rolls expr and logs the result at debug level.
//
// Precondition: expr must come from Parse.
func (r *Roller) Evaluate(expr Expression) RollResult {
	result := Evaluate(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// RollExpr parses expr and rolls it, logging the result.
//
// Postcondition: Returns a RollResult or a parse error.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Evaluate(e), nil
}
