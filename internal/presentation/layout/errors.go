package layout

import "errors"

var (
	// ErrFormatOverflow is returned when a value cannot be rendered in its
	// field width with any configured unit and precision.
	ErrFormatOverflow = errors.New("value overflows field width")

	// ErrArityMismatch is returned when a row does not supply exactly one
	// value per field of the active column set.
	ErrArityMismatch = errors.New("row arity does not match column set")

	// ErrOverlappingFields marks a column set whose cells share a column.
	ErrOverlappingFields = errors.New("column set fields overlap")

	// ErrInvalidColumnSet marks any other column set geometry defect.
	ErrInvalidColumnSet = errors.New("invalid column set")

	// ErrInvalidTierTable marks a tier table that cannot be classified against.
	ErrInvalidTierTable = errors.New("invalid tier table")

	// ErrLayoutInvalid is returned by callers that turn diagnostics into a
	// failure, such as the --check mode.
	ErrLayoutInvalid = errors.New("rendered layout failed validation")
)
