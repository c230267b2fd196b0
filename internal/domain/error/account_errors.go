package error

import "errors"

// Account domain errors.
var (
	// ErrAccountNotFound is returned when an account is not found in the system.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidAccountName is returned when the account name is empty or too long.
	ErrInvalidAccountName = errors.New("invalid account name")

	// ErrInvalidAccountType is returned when the account type is not supported.
	ErrInvalidAccountType = errors.New("invalid account type")

	// ErrInvalidAccountCurrency is returned when the currency is not a 3-letter code.
	ErrInvalidAccountCurrency = errors.New("invalid account currency")
)

// AccountErrorCode defines error codes for account errors.
// Format: ACC-XXYYYY where XX is category and YYYY is specific error.
type AccountErrorCode string

const (
	ErrCodeAccountNotFound        AccountErrorCode = "ACC-010001"
	ErrCodeInvalidAccountName     AccountErrorCode = "ACC-010002"
	ErrCodeInvalidAccountType     AccountErrorCode = "ACC-010003"
	ErrCodeInvalidAccountCurrency AccountErrorCode = "ACC-010004"
	ErrCodeMissingAccountFields   AccountErrorCode = "ACC-010005"
)

// AccountError represents an account error with code and message.
type AccountError struct {
	Code    AccountErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AccountError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError creates a new AccountError with the given code and message.
func NewAccountError(code AccountErrorCode, message string, err error) *AccountError {
	return &AccountError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
