package ledger

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount occurs when an operation is requested with a zero or
	// negative amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds occurs when the source account lacks balance to
	// cover a requested transfer.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrSelfTransfer indicates the transfer recipient equals the sender.
	ErrSelfTransfer = errors.New("cannot transfer to own account")

	// ErrLoanNotEligible indicates no prior movement qualifies the account
	// for the requested loan.
	ErrLoanNotEligible = errors.New("no qualifying deposit for loan")
)

// DefaultInterestMinimum is the smallest per-deposit accrual that counts
// toward earned interest. Fragments below one unit are discarded.
var DefaultInterestMinimum = decimal.NewFromInt(1)

// LoanDepositRatio is the fraction of a requested loan that some prior
// movement must reach for the loan to be approved.
var LoanDepositRatio = decimal.RequireFromString("0.1")

var oneHundred = decimal.NewFromInt(100)

// SortOrder selects one of the three renderable movement views.
type SortOrder string

const (
	SortOriginal   SortOrder = "original"
	SortAscending  SortOrder = "ascending"
	SortDescending SortOrder = "descending"
)

// ParseSortOrder maps a request parameter onto a SortOrder, defaulting to
// the original insertion order for unknown values.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortAscending, SortDescending:
		return SortOrder(s)
	default:
		return SortOriginal
	}
}

// Balance sums all movements. An empty sequence yields zero.
func Balance(movements []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m)
	}
	return total
}

// Income sums the deposits (positive movements).
func Income(movements []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if m.IsPositive() {
			total = total.Add(m)
		}
	}
	return total
}

// Expense sums the withdrawals (negative movements) and returns the magnitude.
func Expense(movements []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if m.IsNegative() {
			total = total.Add(m)
		}
	}
	return total.Abs()
}

// Interest computes earned interest: each deposit accrues amount*rate/100,
// and any single accrual below minimum is discarded before summing.
func Interest(movements []decimal.Decimal, rate, minimum decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if !m.IsPositive() {
			continue
		}
		accrual := m.Mul(rate).Div(oneHundred)
		if accrual.Cmp(minimum) < 0 {
			continue
		}
		total = total.Add(accrual)
	}
	return total
}

// Summary aggregates the derived figures for one account's movements.
type Summary struct {
	Balance  decimal.Decimal
	Income   decimal.Decimal
	Expense  decimal.Decimal
	Interest decimal.Decimal
}

// Summarize derives balance, income, expense and interest from a movement
// snapshot. It never mutates the input.
func Summarize(movements []decimal.Decimal, rate, minimum decimal.Decimal) Summary {
	return Summary{
		Balance:  Balance(movements),
		Income:   Income(movements),
		Expense:  Expense(movements),
		Interest: Interest(movements, rate, minimum),
	}
}

// SortedView returns a fresh slice holding the movements in the requested
// order. The input sequence is never reordered or modified.
func SortedView(movements []decimal.Decimal, order SortOrder) []decimal.Decimal {
	view := make([]decimal.Decimal, len(movements))
	copy(view, movements)
	switch order {
	case SortAscending:
		sort.Slice(view, func(i, j int) bool { return view[i].Cmp(view[j]) < 0 })
	case SortDescending:
		sort.Slice(view, func(i, j int) bool { return view[i].Cmp(view[j]) > 0 })
	}
	return view
}

// LoanEligible reports whether any movement reaches the qualifying fraction
// of the requested loan amount.
func LoanEligible(movements []decimal.Decimal, amount decimal.Decimal) bool {
	threshold := amount.Mul(LoanDepositRatio)
	for _, m := range movements {
		if m.Cmp(threshold) >= 0 {
			return true
		}
	}
	return false
}
