package dice

import (
	"errors"
	"strconv"

	"github.com/louisbranch/troller/internal/dice"
	apperrors "github.com/louisbranch/troller/internal/platform/errors"
)

// diceError maps engine failures onto platform error codes.
func (s *Service) diceError(text string, err error) error {
	label := ""
	var evalErr *dice.EvalError
	if errors.As(err, &evalErr) {
		label = evalErr.Label
	}

	var syntaxErr *dice.SyntaxError
	switch {
	case errors.As(err, &syntaxErr):
		err = apperrors.Wrap(apperrors.CodeDiceInvalidSyntax, err,
			"Input", text,
			"Offset", strconv.Itoa(syntaxErr.Offset),
			"Reason", syntaxErr.Reason,
		)
	case errors.Is(err, dice.ErrDivisionByZero):
		err = apperrors.Wrap(apperrors.CodeDiceDivisionByZero, err, "Label", label)
	case errors.Is(err, dice.ErrOverflow):
		err = apperrors.Wrap(apperrors.CodeDiceOverflow, err, "Label", label)
	case errors.Is(err, dice.ErrTooManyDice):
		limit := s.engine.MaxDice
		if limit == 0 {
			limit = dice.DefaultMaxDice
		}
		err = apperrors.Wrap(apperrors.CodeDiceTooMany, err, "Limit", strconv.FormatInt(limit, 10))
	}
	return apperrors.Status(err)
}
