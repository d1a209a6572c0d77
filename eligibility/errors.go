package eligibility

import "errors"

var (
	// ErrNoAgeConstraint is returned by ParseAgeRange when the text states no age limit.
	ErrNoAgeConstraint = errors.New("no age constraint found")

	// ErrUnknownIncome is returned by ParseIncomeLevel for text it cannot place in a bucket.
	ErrUnknownIncome = errors.New("income level not recognized")

	// ErrInvalidWeights is returned when check weights do not sum to 1.
	ErrInvalidWeights = errors.New("check weights must sum to 1")

	// ErrInvalidThreshold is returned for a threshold outside [0, 1].
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 1")
)
