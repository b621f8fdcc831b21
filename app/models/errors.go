package models

import "errors"

// Validation errors raised by model-level checks that the validator tag
// syntax cannot express.
var (
	ErrNegativeTaxRate    = errors.New("default tax rate must not be negative")
	ErrRatingOutOfRange   = errors.New("rating must be between 0 and 5")
	ErrInvalidPeriod      = errors.New("current period start must not be after current period end")
	ErrPercentageOutOf100 = errors.New("percentage discount must be between 0 and 100")
)
