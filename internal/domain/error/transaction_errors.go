package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionDirection is returned when the direction is not inflow or outflow.
	ErrInvalidTransactionDirection = errors.New("invalid transaction direction")

	// ErrInvalidTransactionAmount is returned when the amount is zero or negative.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrDescriptionRequired is returned when the description is empty.
	ErrDescriptionRequired = errors.New("description is required")

	// ErrDescriptionTooLong is returned when the description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrInvalidCategoryWeights is returned when split weights are out of range or sum above one.
	ErrInvalidCategoryWeights = errors.New("invalid category weights")

	// ErrCategoryNotInHousehold is returned when a transaction references a category of another household.
	ErrCategoryNotInHousehold = errors.New("category does not belong to household")

	// ErrAccountNotInHousehold is returned when a transaction references an account of another household.
	ErrAccountNotInHousehold = errors.New("account does not belong to household")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionDirection TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionAmount    TransactionErrorCode = "TXN-010002"
	ErrCodeDescriptionRequired         TransactionErrorCode = "TXN-010003"
	ErrCodeDescriptionTooLong          TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidCategoryWeights      TransactionErrorCode = "TXN-010005"
	ErrCodeMissingTransactionFields    TransactionErrorCode = "TXN-010006"
	ErrCodeInvalidTransactionFilter    TransactionErrorCode = "TXN-010007"

	// Reference errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-020001"
	ErrCodeTxnCategoryNotFound TransactionErrorCode = "TXN-020002"
	ErrCodeTxnAccountNotFound  TransactionErrorCode = "TXN-020003"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
