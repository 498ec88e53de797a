package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidInput indicates a caller-supplied value outside its domain,
// such as a negative income or a non-positive maximum income.
var ErrInvalidInput = fmt.Errorf("%w: invalid input", ErrValidation)

// ErrInvalidRate indicates an exchange rate that cannot be used for conversion.
var ErrInvalidRate = fmt.Errorf("%w: invalid exchange rate", ErrValidation)

// ErrInvalidSchedule indicates malformed bracket data. It is a data integrity
// fault rather than a caller mistake, so it does not wrap ErrValidation.
var ErrInvalidSchedule = errors.New("invalid tax schedule")

// ErrUnavailable indicates that an upstream dependency could not serve the request.
var ErrUnavailable = errors.New("upstream service unavailable")
