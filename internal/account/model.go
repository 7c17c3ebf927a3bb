package account

import "github.com/shopspring/decimal"

// Account represents one bank account held by the store.
//
// Username is derived from Owner at store construction and never re-derived.
// Movements are signed amounts in chronological insertion order; positive
// entries are deposits, negative entries withdrawals. History is append-only.
type Account struct {
	Owner        string
	Username     string
	PIN          int
	InterestRate decimal.Decimal
	Movements    []decimal.Decimal
}

// snapshot returns a value copy with its own movements slice so callers can
// never reach back into store-owned state.
func (a *Account) snapshot() Account {
	cp := *a
	cp.Movements = append([]decimal.Decimal(nil), a.Movements...)
	return cp
}
