package ledger

import "errors"

var (
	// ErrInsufficientBalance indicates a transfer or burn larger than the
	// source balance.
	ErrInsufficientBalance = errors.New("ledger: insufficient balance")

	// ErrInsufficientAllowance indicates a TransferFrom larger than the
	// operator's approved allowance.
	ErrInsufficientAllowance = errors.New("ledger: insufficient allowance")

	// ErrZeroAmount indicates a zero-amount transfer, mint, or burn.
	ErrZeroAmount = errors.New("ledger: zero amount")
)
