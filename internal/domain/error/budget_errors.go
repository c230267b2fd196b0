package error

import "errors"

// Budget domain errors.
var (
	// ErrInvalidMonth is returned when a month value cannot be parsed.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrNegativeBudgetAmount is returned when a budget amount is below zero.
	ErrNegativeBudgetAmount = errors.New("budget amount must not be negative")

	// ErrInvalidRolloverRange is returned when the source month is not before the target month.
	ErrInvalidRolloverRange = errors.New("from_month must be before to_month")

	// ErrRolloverAlreadyApplied is returned when a rollover for the same month pair was already recorded.
	ErrRolloverAlreadyApplied = errors.New("rollover already applied for this month pair")

	// ErrBudgetCategoryNotInHousehold is returned when a budget references a category of another household.
	ErrBudgetCategoryNotInHousehold = errors.New("category does not belong to household")

	// ErrEmptyBudgetList is returned when an upsert request carries no budget rows.
	ErrEmptyBudgetList = errors.New("budgets list cannot be empty")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BGT-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidMonth             BudgetErrorCode = "BGT-010001"
	ErrCodeNegativeBudgetAmount     BudgetErrorCode = "BGT-010002"
	ErrCodeInvalidRolloverRange     BudgetErrorCode = "BGT-010003"
	ErrCodeMissingBudgetFields      BudgetErrorCode = "BGT-010004"
	ErrCodeBudgetCategoryNotInHouse BudgetErrorCode = "BGT-010005"
	ErrCodeEmptyBudgetList          BudgetErrorCode = "BGT-010006"

	// Conflict errors (02XXXX)
	ErrCodeRolloverAlreadyApplied BudgetErrorCode = "BGT-020001"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
