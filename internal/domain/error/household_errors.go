package error

import "errors"

// Household domain errors.
var (
	// ErrHouseholdNotFound is returned when a household is not found in the system.
	ErrHouseholdNotFound = errors.New("household not found")

	// ErrHouseholdNameRequired is returned when a household is created without a name.
	ErrHouseholdNameRequired = errors.New("household name is required")

	// ErrHouseholdNameTooLong is returned when the household name exceeds the maximum length.
	ErrHouseholdNameTooLong = errors.New("household name too long")

	// ErrUnsupportedCurrency is returned when the base currency is not supported.
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrNotHouseholdMember is returned when the user has no membership in the household.
	ErrNotHouseholdMember = errors.New("no household access")

	// ErrInsufficientPermissions is returned when the member role does not allow writes.
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	// ErrOwnerRequired is returned when an operation is reserved to the household owner.
	ErrOwnerRequired = errors.New("owner role required")

	// ErrInvalidMemberRole is returned when a membership role is not owner, editor or viewer.
	ErrInvalidMemberRole = errors.New("invalid member role")

	// ErrMemberAlreadyExists is returned when the user already belongs to the household.
	ErrMemberAlreadyExists = errors.New("member already exists")
)

// HouseholdErrorCode defines error codes for household errors.
// Format: HH-XXYYYY where XX is category and YYYY is specific error.
type HouseholdErrorCode string

const (
	// Not found errors (01XXXX)
	ErrCodeHouseholdNotFound HouseholdErrorCode = "HH-010001"

	// Validation errors (02XXXX)
	ErrCodeHouseholdNameRequired  HouseholdErrorCode = "HH-020001"
	ErrCodeHouseholdNameTooLong   HouseholdErrorCode = "HH-020002"
	ErrCodeUnsupportedCurrency    HouseholdErrorCode = "HH-020003"
	ErrCodeMissingHouseholdFields HouseholdErrorCode = "HH-020004"
	ErrCodeInvalidHouseholdID     HouseholdErrorCode = "HH-020005"
	ErrCodeInvalidMemberRole      HouseholdErrorCode = "HH-020006"
	ErrCodeInvalidMemberUserID    HouseholdErrorCode = "HH-020007"

	// Permission errors (03XXXX)
	ErrCodeNotHouseholdMember      HouseholdErrorCode = "HH-030001"
	ErrCodeInsufficientPermissions HouseholdErrorCode = "HH-030002"
	ErrCodeOwnerRequired           HouseholdErrorCode = "HH-030003"

	// Conflict errors (04XXXX)
	ErrCodeMemberAlreadyExists HouseholdErrorCode = "HH-040001"
)

// HouseholdError represents a household error with code and message.
type HouseholdError struct {
	Code    HouseholdErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HouseholdError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *HouseholdError) Unwrap() error {
	return e.Err
}

// NewHouseholdError creates a new HouseholdError with the given code and message.
func NewHouseholdError(code HouseholdErrorCode, message string, err error) *HouseholdError {
	return &HouseholdError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
