package errors

// ErrorCode represents a standardized error code used throughout the ledger
type ErrorCode string

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound       ErrorCode = "ACCOUNT_001"
	AccountInvalidDeposit ErrorCode = "ACCOUNT_002"
	AccountInvalidKind    ErrorCode = "ACCOUNT_003"
	AccountInvalidHolder  ErrorCode = "ACCOUNT_004"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionInvalidAmount       ErrorCode = "TRANSACTION_001"
	TransactionBelowMinWithdrawal  ErrorCode = "TRANSACTION_002"
	TransactionBelowMinAdvance     ErrorCode = "TRANSACTION_003"
	TransactionBelowMinBalance     ErrorCode = "TRANSACTION_004"
	TransactionCreditLimitExceeded ErrorCode = "TRANSACTION_005"
	TransactionInvalidType         ErrorCode = "TRANSACTION_006"
)

// Transfer error codes (TRANSFER_*)
const (
	TransferSameAccount ErrorCode = "TRANSFER_001"
	TransferFailed      ErrorCode = "TRANSFER_002"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral ErrorCode = "VALIDATION_001"
)

// Storage error codes (STORAGE_*)
const (
	StoragePersistenceFailure ErrorCode = "STORAGE_001"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Account errors
	AccountNotFound:       "Account not found",
	AccountInvalidDeposit: "Initial deposit is below the minimum for this account type",
	AccountInvalidKind:    "Invalid account type",
	AccountInvalidHolder:  "Holder name cannot be empty",

	// Transaction errors
	TransactionInvalidAmount:       "Amount must be a positive value",
	TransactionBelowMinWithdrawal:  "Amount is below the minimum withdrawal",
	TransactionBelowMinAdvance:     "Amount is below the minimum cash advance",
	TransactionBelowMinBalance:     "Withdrawal would breach the minimum balance",
	TransactionCreditLimitExceeded: "Withdrawal would exceed the credit limit",
	TransactionInvalidType:         "Invalid transaction type",

	// Transfer errors
	TransferSameAccount: "Cannot transfer to the same account",
	TransferFailed:      "Transfer could not be completed",

	// Validation errors
	ValidationGeneral: "Validation failed",

	// Storage errors
	StoragePersistenceFailure: "Failed to persist ledger state; in-memory state remains authoritative",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
