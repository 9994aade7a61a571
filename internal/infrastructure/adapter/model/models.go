package model

// All returns the tables migrated at start-up. The users table belongs to the account service.
func All() []any {
	return []any{&Saldo{}, &Topup{}, &Transfer{}, &Withdraw{}}
}
