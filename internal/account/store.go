package account

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/bankist/bankist/internal/ledger"
)

var (
	// ErrNotFound indicates no account matches the requested username.
	ErrNotFound = errors.New("account not found")

	// ErrUnauthorized indicates a PIN or username confirmation mismatch.
	ErrUnauthorized = errors.New("invalid credentials")

	// ErrNoSession indicates an operation that requires an authenticated
	// session was attempted while logged out.
	ErrNoSession = errors.New("no active session")
)

// DeriveUsername lowercases the owner name, splits it on whitespace and
// concatenates the first character of every token.
func DeriveUsername(owner string) string {
	var b strings.Builder
	for _, token := range strings.Fields(strings.ToLower(owner)) {
		for _, r := range token {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}

// Store owns the full set of accounts plus the single active-session pointer.
// All mutation runs under one lock so cross-account operations (transfers)
// commit atomically and are never observed half-applied.
type Store struct {
	mu       sync.RWMutex
	accounts []*Account
	byUser   map[string]*Account
	session  *Account
}

// NewStore builds a store over the given accounts, deriving usernames from
// owner names. When two owners share initials, later accounts get a numeric
// suffix (js, js2, js3, ...) so lookups stay unambiguous.
func NewStore(accounts []*Account) *Store {
	s := &Store{byUser: make(map[string]*Account, len(accounts))}
	for _, a := range accounts {
		username := DeriveUsername(a.Owner)
		if _, taken := s.byUser[username]; taken {
			for n := 2; ; n++ {
				candidate := username + strconv.Itoa(n)
				if _, taken := s.byUser[candidate]; !taken {
					username = candidate
					break
				}
			}
		}
		a.Username = username
		s.accounts = append(s.accounts, a)
		s.byUser[username] = a
	}
	return s
}

// Len returns the number of accounts currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// Usernames lists all usernames in account insertion order.
func (s *Store) Usernames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a.Username)
	}
	return out
}

// FindByUsername returns a snapshot of the account with the given username.
func (s *Store) FindByUsername(username string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.byUser[username]
	if !ok {
		return Account{}, ErrNotFound
	}
	return a.snapshot(), nil
}

// Authenticate verifies the username and PIN pair and, on success, marks the
// account as the active session. Lookup is case-sensitive and the PIN is
// compared by exact numeric equality.
func (s *Store) Authenticate(username string, pin int) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byUser[username]
	if !ok {
		return Account{}, ErrNotFound
	}
	if a.PIN != pin {
		return Account{}, ErrUnauthorized
	}
	s.session = a
	return a.snapshot(), nil
}

// Current returns a snapshot of the session account.
func (s *Store) Current() (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return Account{}, ErrNoSession
	}
	return s.session.snapshot(), nil
}

// Logout clears the active session.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}

// Transfer moves amount from one account to another. All guards are checked
// against fresh state under the lock; on success both movement appends become
// visible together. Any rejection leaves both accounts untouched.
func (s *Store) Transfer(fromUsername, toUsername string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ledger.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.byUser[fromUsername]
	if !ok {
		return ErrNotFound
	}
	to, ok := s.byUser[toUsername]
	if !ok {
		return ErrNotFound
	}
	if from.Username == to.Username {
		return ledger.ErrSelfTransfer
	}
	if ledger.Balance(from.Movements).Cmp(amount) < 0 {
		return ledger.ErrInsufficientFunds
	}

	from.Movements = append(from.Movements, amount.Neg())
	to.Movements = append(to.Movements, amount)
	return nil
}

// RequestLoan credits the account with the requested amount when some prior
// movement reaches ten percent of it. The loan is a single unconditional
// credit; no repayment schedule is modeled.
func (s *Store) RequestLoan(username string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ledger.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byUser[username]
	if !ok {
		return ErrNotFound
	}
	if !ledger.LoanEligible(a.Movements, amount) {
		return ledger.ErrLoanNotEligible
	}

	a.Movements = append(a.Movements, amount)
	return nil
}

// Close removes the account after verifying the confirmation username and PIN
// match it exactly. If the closed account holds the active session, the
// session is cleared as well.
func (s *Store) Close(username, confirmUsername string, confirmPIN int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byUser[username]
	if !ok {
		return ErrNotFound
	}
	if confirmUsername != a.Username || confirmPIN != a.PIN {
		return ErrUnauthorized
	}

	delete(s.byUser, a.Username)
	for i, held := range s.accounts {
		if held == a {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			break
		}
	}
	if s.session == a {
		s.session = nil
	}
	return nil
}

// Summary recomputes the derived figures for the account. The balance is
// always derived from the movements, never served from a cache.
func (s *Store) Summary(username string, interestMinimum decimal.Decimal) (ledger.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.byUser[username]
	if !ok {
		return ledger.Summary{}, ErrNotFound
	}
	return ledger.Summarize(a.Movements, a.InterestRate, interestMinimum), nil
}

// Movements returns the account's movement history in the requested view
// order. The returned slice is a copy.
func (s *Store) Movements(username string, order ledger.SortOrder) ([]decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.byUser[username]
	if !ok {
		return nil, ErrNotFound
	}
	return ledger.SortedView(a.Movements, order), nil
}
