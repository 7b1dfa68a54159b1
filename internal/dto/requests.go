package dto

// Request payloads consumed by the operation engine. Amounts travel as
// strings and are parsed into decimals after validation, so no binary
// floating point ever touches a balance.

// CreateAccountRequest is the payload for opening a new account
type CreateAccountRequest struct {
	Kind           string `validate:"required,account_kind"`
	HolderName     string `validate:"required,min=1,max=100"`
	InitialDeposit string `validate:"required,money_amount"`
}

// TransactionRequest is the payload for a deposit or withdrawal
type TransactionRequest struct {
	AccountNumber int    `validate:"required,gt=0"`
	Type          string `validate:"required,oneof=deposit withdraw"`
	Amount        string `validate:"required,money_amount"`
}

// TransferRequest is the payload for moving funds between two accounts
type TransferRequest struct {
	FromAccountNumber int    `validate:"required,gt=0"`
	ToAccountNumber   int    `validate:"required,gt=0"`
	Amount            string `validate:"required,money_amount"`
}

// Transaction type values accepted by TransactionRequest
const (
	TransactionTypeDeposit  = "deposit"
	TransactionTypeWithdraw = "withdraw"
)
