package ledger

import "time"

// Policy holds the balance rules and cache TTL shared by every ledger service
type Policy struct {
	// Floor is the lowest total a spending debit may leave, in minor units
	Floor int64
	// TransferMinimum is the smallest accepted transfer amount
	TransferMinimum int64
	// WithdrawMinimum is the smallest accepted withdraw amount
	WithdrawMinimum int64
	// CacheTTL bounds how long read-through entries live
	CacheTTL time.Duration
}

// DefaultPolicy returns the production defaults
func DefaultPolicy() Policy {
	return Policy{
		Floor:           50000,
		TransferMinimum: 50000,
		WithdrawMinimum: 50001,
		CacheTTL:        5 * time.Minute,
	}
}
