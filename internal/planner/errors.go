package planner

import "errors"

// Validation failure kinds. Match with errors.Is.
var (
	ErrInvalidFitnessLevel = errors.New("invalid fitness level")
	ErrInvalidDayCount     = errors.New("invalid day count")
	ErrInvalidEquipment    = errors.New("invalid equipment")
)

// User-facing messages returned in place of a plan.
const (
	MsgInvalidFitnessLevel = "Invalid fitness level. Please choose beginner, intermediate, or advanced."
	MsgInvalidDayCount     = "Invalid number of days. Please choose between 1 and 7."
	MsgInvalidEquipment    = "Invalid equipment option. Please choose full gym, basic dumbbells, or no equipment."
)

// ValidationError is returned when a Request fails one of the input checks.
type ValidationError struct {
	Kind    error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// KindName returns a short machine-readable name for the failure.
func (e *ValidationError) KindName() string {
	switch e.Kind {
	case ErrInvalidFitnessLevel:
		return "invalid_fitness_level"
	case ErrInvalidDayCount:
		return "invalid_day_count"
	case ErrInvalidEquipment:
		return "invalid_equipment"
	default:
		return "invalid_request"
	}
}

// AsValidationError reports whether err carries a ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
