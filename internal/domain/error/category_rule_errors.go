package error

import "errors"

// CategoryRule domain errors.
var (
	// ErrCategoryRuleNotFound is returned when a categorization rule is not found.
	ErrCategoryRuleNotFound = errors.New("category rule not found")

	// ErrCategoryRuleExists is returned when the household already has a rule with the same match.
	ErrCategoryRuleExists = errors.New("category rule already exists")

	// ErrInvalidRuleMatchType is returned when the match type is unknown.
	ErrInvalidRuleMatchType = errors.New("invalid rule match type")

	// ErrRuleMatchValueRequired is returned when the match value is blank.
	ErrRuleMatchValueRequired = errors.New("rule match value is required")

	// ErrRuleMatchValueTooLong is returned when the match value exceeds the maximum length.
	ErrRuleMatchValueTooLong = errors.New("rule match value too long")

	// ErrInvalidRulePriority is returned when the priority is negative.
	ErrInvalidRulePriority = errors.New("invalid rule priority")

	// ErrTransactionWithoutMerchant is returned when a merchant rule is learned from a
	// transaction that has no merchant.
	ErrTransactionWithoutMerchant = errors.New("transaction has no merchant")
)

// CategoryRuleErrorCode defines error codes for category rule errors.
// Format: CRL-XXYYYY where XX is category and YYYY is specific error.
type CategoryRuleErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryRuleNotFound       CategoryRuleErrorCode = "CRL-010001"
	ErrCodeCategoryRuleExists         CategoryRuleErrorCode = "CRL-010002"
	ErrCodeInvalidRuleMatchType       CategoryRuleErrorCode = "CRL-010003"
	ErrCodeRuleMatchValueTooLong      CategoryRuleErrorCode = "CRL-010004"
	ErrCodeRuleMatchValueRequired     CategoryRuleErrorCode = "CRL-010005"
	ErrCodeMissingRuleFields          CategoryRuleErrorCode = "CRL-010006"
	ErrCodeInvalidRulePriority        CategoryRuleErrorCode = "CRL-010007"
	ErrCodeCategoryNotFoundForRule    CategoryRuleErrorCode = "CRL-010008"
	ErrCodeTransactionNotFoundForRule CategoryRuleErrorCode = "CRL-010009"
	ErrCodeTransactionWithoutMerchant CategoryRuleErrorCode = "CRL-010010"
)

// CategoryRuleError represents a category rule error with code and message.
type CategoryRuleError struct {
	Code    CategoryRuleErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryRuleError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryRuleError) Unwrap() error {
	return e.Err
}

// NewCategoryRuleError creates a new CategoryRuleError with the given code and message.
func NewCategoryRuleError(code CategoryRuleErrorCode, message string, err error) *CategoryRuleError {
	return &CategoryRuleError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
