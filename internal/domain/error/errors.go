package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation          = 4000
	CodeInsufficientBalance = 4001
	CodeInvalidAmount       = 4002
	CodeInvalidUserID       = 4003
	CodeDuplicateRecord     = 4004
	CodeBusinessRule        = 4220
	CodeNotFound            = 4040

	// 5xxx - Server errors
	CodeInternalServer = 5000
	CodeStorage        = 5030
)

// Error kinds. Every error returned by the core satisfies errors.Is for exactly one of these.
var (
	// ErrNotFound is returned when a user, saldo or ledger record is missing
	ErrNotFound = errors.New("resource not found")

	// ErrValidation is returned when input is rejected before reaching the store
	ErrValidation = errors.New("validation failed")

	// ErrBusinessRule is returned for insufficient funds, floor breaches and duplicates
	ErrBusinessRule = errors.New("business rule violation")

	// ErrStorage wraps failures of the underlying store driver
	ErrStorage = errors.New("storage error")

	// ErrInternal is the catch-all kind
	ErrInternal = errors.New("internal error")
)

// kindError is a sentinel that also matches its kind.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool { return target == e.kind }

func newKind(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// Not found errors
var (
	ErrUserNotFound     = newKind(ErrNotFound, "user not found")
	ErrSaldoNotFound    = newKind(ErrNotFound, "saldo not found")
	ErrTopupNotFound    = newKind(ErrNotFound, "topup not found")
	ErrTransferNotFound = newKind(ErrNotFound, "transfer not found")
	ErrWithdrawNotFound = newKind(ErrNotFound, "withdraw not found")
)

// Validation errors
var (
	// ErrInvalidAmount is returned when an amount is zero or negative
	ErrInvalidAmount = newKind(ErrValidation, "amount must be greater than zero")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = newKind(ErrValidation, "user ID must be positive")

	// ErrInvalidID is returned when a record ID is not a positive integer
	ErrInvalidID = newKind(ErrValidation, "ID must be positive")

	// ErrBelowFloor is returned when an initial balance is lower than the configured floor
	ErrBelowFloor = newKind(ErrValidation, "total balance is below the minimum balance")

	// ErrBelowMinimum is returned when a transfer or withdraw amount is under its configured minimum
	ErrBelowMinimum = newKind(ErrValidation, "amount is below the minimum")

	// ErrSelfTransfer is returned when sender and receiver are the same user
	ErrSelfTransfer = newKind(ErrValidation, "cannot transfer to the same user")

	// ErrFutureTime is returned when a withdraw time lies in the future
	ErrFutureTime = newKind(ErrValidation, "withdraw time cannot be in the future")

	// ErrWithdrawAnnotation is returned when only one of withdraw amount and time is given
	ErrWithdrawAnnotation = newKind(ErrValidation, "withdraw amount and withdraw time must be provided together")

	// ErrNegativeBalance is returned when an overwrite would store a negative total
	ErrNegativeBalance = newKind(ErrValidation, "balance cannot be negative")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = newKind(ErrValidation, "invalid request")
)

// Business rule errors
var (
	// ErrInsufficientBalance is returned when a debit would breach the floor or go negative
	ErrInsufficientBalance = newKind(ErrBusinessRule, "insufficient balance")

	// ErrDuplicateRecord is returned when a unique constraint is violated
	ErrDuplicateRecord = newKind(ErrBusinessRule, "record already exists")

	// ErrSaldoExists is returned when a user already owns a saldo
	ErrSaldoExists = newKind(ErrBusinessRule, "saldo already exists for user")

	// ErrCompensationFailed marks a saga whose undo step failed
	ErrCompensationFailed = newKind(ErrInternal, "compensation failed: manual reconciliation required")
)

// Storage and internal errors
var (
	// ErrDatabaseConnection is returned when there's a problem reaching the database
	ErrDatabaseConnection = newKind(ErrStorage, "database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = newKind(ErrInternal, "internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrDuplicateRecord):
		return CodeDuplicateRecord
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrBusinessRule):
		return CodeBusinessRule
	case errors.Is(err, ErrStorage):
		return CodeStorage
	default:
		return CodeInternalServer
	}
}

// Kind returns the kind sentinel the error belongs to
func Kind(err error) error {
	for _, k := range []error{ErrNotFound, ErrValidation, ErrBusinessRule, ErrStorage} {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrInternal
}

// InsufficientBalanceError provides detailed error information for a rejected debit
type InsufficientBalanceError struct {
	UserID  uint64
	Amount  int64
	Balance int64
	Minimum int64
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %d: debit %d from %d would fall below %d",
		e.UserID, e.Amount, e.Balance, e.Minimum)
}

// Is matches ErrInsufficientBalance and its kind
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance || target == ErrBusinessRule
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_balance",
		"user_id":    e.UserID,
		"amount":     e.Amount,
		"balance":    e.Balance,
		"minimum":    e.Minimum,
		"error_code": CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(userID uint64, amount, balance, minimum int64) error {
	return &InsufficientBalanceError{
		UserID:  userID,
		Amount:  amount,
		Balance: balance,
		Minimum: minimum,
	}
}

// StorageError wraps an error returned by the store driver
type StorageError struct {
	Op     string
	Entity string
	Err    error
}

// Error implements the error interface for StorageError
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s on %s: %v", e.Op, e.Entity, e.Err)
}

// Unwrap returns the driver error
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is matches the storage kind
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// LogFields returns a map of fields for structured logging
func (e *StorageError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "storage_error",
		"operation":  e.Op,
		"entity":     e.Entity,
		"error":      e.Err.Error(),
		"error_code": CodeStorage,
	}
}

// NewStorageError creates a storage error for the given operation
func NewStorageError(op, entity string, err error) error {
	return &StorageError{Op: op, Entity: entity, Err: err}
}

// CompensationError reports a saga that failed and could not fully undo its completed steps.
// It unwraps to the primary failure so callers classify by the original cause.
type CompensationError struct {
	Saga     string
	Step     string
	Cause    error
	Failures []error
}

// Error implements the error interface for CompensationError
func (e *CompensationError) Error() string {
	return fmt.Sprintf("%s failed at step %s: %v; %s: %v",
		e.Saga, e.Step, e.Cause, ErrCompensationFailed.Error(), errors.Join(e.Failures...))
}

// Unwrap returns the primary failure
func (e *CompensationError) Unwrap() error {
	return e.Cause
}

// Is matches ErrCompensationFailed
func (e *CompensationError) Is(target error) bool {
	return target == ErrCompensationFailed
}

// LogFields returns a map of fields for structured logging
func (e *CompensationError) LogFields() map[string]any {
	failures := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		failures = append(failures, f.Error())
	}
	return map[string]any{
		"error_type":              "compensation_failed",
		"saga":                    e.Saga,
		"step":                    e.Step,
		"error":                   e.Cause.Error(),
		"compensation_errors":     failures,
		"reconciliation_required": true,
	}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if the error was raised by input validation
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsBusinessRuleError checks if the error is a business rule violation
func IsBusinessRuleError(err error) bool {
	return errors.Is(err, ErrBusinessRule)
}

// IsStorageError checks if the error came from the store
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorage)
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsCompensationFailure checks if a saga left state that needs manual reconciliation
func IsCompensationFailure(err error) bool {
	return errors.Is(err, ErrCompensationFailed)
}
