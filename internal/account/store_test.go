package account

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bankist/bankist/internal/ledger"
)

func amount(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func testStore() *Store {
	return NewStore([]*Account{
		{Owner: "Jonas Schmedtmann", PIN: 1111, InterestRate: decimal.RequireFromString("1.2"), Movements: movements(200, 450, -400, 3000, -650, -130, 70, 1300)},
		{Owner: "Jessica Davis", PIN: 2222, InterestRate: decimal.RequireFromString("1.5"), Movements: movements(5000, 3400, -150, -790, -3210, -1000, 8500, -30)},
		{Owner: "Steven Thomas Williams", PIN: 3333, InterestRate: decimal.RequireFromString("0.7"), Movements: movements(200, -200, 340, -300, -20, 50, 400, -460)},
	})
}

func TestDeriveUsername(t *testing.T) {
	cases := map[string]string{
		"Steven Thomas Williams": "stw",
		"Jonas Schmedtmann":      "js",
		"Sarah":                  "s",
		"  Sarah   Smith  ":      "ss",
		"":                       "",
	}
	for owner, want := range cases {
		if got := DeriveUsername(owner); got != want {
			t.Fatalf("DeriveUsername(%q) = %q, want %q", owner, got, want)
		}
	}
}

func TestNewStoreCollisionSuffix(t *testing.T) {
	s := NewStore([]*Account{
		{Owner: "John Smith", PIN: 1000},
		{Owner: "Jane Stevens", PIN: 2000},
		{Owner: "Jim Salt", PIN: 3000},
	})

	got := s.Usernames()
	want := []string{"js", "js2", "js3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected usernames %v, got %v", want, got)
		}
	}

	a, err := s.FindByUsername("js2")
	if err != nil {
		t.Fatalf("find js2: %v", err)
	}
	if a.Owner != "Jane Stevens" {
		t.Fatalf("expected js2 to resolve Jane Stevens, got %s", a.Owner)
	}
}

func TestAuthenticate(t *testing.T) {
	s := testStore()

	a, err := s.Authenticate("js", 1111)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if a.Owner != "Jonas Schmedtmann" {
		t.Fatalf("unexpected owner %s", a.Owner)
	}

	current, err := s.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.Username != "js" {
		t.Fatalf("expected session js, got %s", current.Username)
	}

	if _, err := s.Authenticate("js", 9999); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong PIN, got %v", err)
	}
	if _, err := s.Authenticate("nobody", 1111); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestCurrentWithoutSession(t *testing.T) {
	s := testStore()
	if _, err := s.Current(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	s := testStore()
	if _, err := s.Authenticate("js", 1111); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	s.Logout()
	if _, err := s.Current(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected cleared session, got %v", err)
	}
}

func TestTransferSuccess(t *testing.T) {
	s := testStore()

	if err := s.Transfer("js", "jd", amount(300)); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	from, _ := s.FindByUsername("js")
	to, _ := s.FindByUsername("jd")

	if !from.Movements[len(from.Movements)-1].Equal(amount(-300)) {
		t.Fatalf("expected -300 appended to sender, got %s", from.Movements[len(from.Movements)-1])
	}
	if !to.Movements[len(to.Movements)-1].Equal(amount(300)) {
		t.Fatalf("expected +300 appended to recipient, got %s", to.Movements[len(to.Movements)-1])
	}

	if !ledger.Balance(from.Movements).Equal(amount(3540)) {
		t.Fatalf("expected sender balance 3540, got %s", ledger.Balance(from.Movements))
	}
	if !ledger.Balance(to.Movements).Equal(amount(12020)) {
		t.Fatalf("expected recipient balance 12020, got %s", ledger.Balance(to.Movements))
	}
}

func TestTransferRejections(t *testing.T) {
	s := testStore()
	before, _ := s.FindByUsername("js")

	cases := []struct {
		name string
		from string
		to   string
		amt  decimal.Decimal
		want error
	}{
		{"zero amount", "js", "jd", amount(0), ledger.ErrInvalidAmount},
		{"negative amount", "js", "jd", amount(-10), ledger.ErrInvalidAmount},
		{"unknown recipient", "js", "ghost", amount(10), ErrNotFound},
		{"unknown sender", "ghost", "jd", amount(10), ErrNotFound},
		{"self transfer", "js", "js", amount(10), ledger.ErrSelfTransfer},
		{"insufficient balance", "js", "jd", amount(10_000), ledger.ErrInsufficientFunds},
	}
	for _, tc := range cases {
		if err := s.Transfer(tc.from, tc.to, tc.amt); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	// Rejections must leave the movement history untouched.
	after, _ := s.FindByUsername("js")
	if len(after.Movements) != len(before.Movements) {
		t.Fatalf("movement count changed after rejected transfers: %d -> %d", len(before.Movements), len(after.Movements))
	}
}

func TestRequestLoan(t *testing.T) {
	s := NewStore([]*Account{
		{Owner: "Test User", PIN: 1234, InterestRate: decimal.NewFromInt(1), Movements: movements(200, 450, -400)},
	})

	if err := s.RequestLoan("tu", amount(1000)); err != nil {
		t.Fatalf("loan 1000: %v", err)
	}
	a, _ := s.FindByUsername("tu")
	if !a.Movements[len(a.Movements)-1].Equal(amount(1000)) {
		t.Fatalf("expected +1000 appended, got %s", a.Movements[len(a.Movements)-1])
	}

	if err := s.RequestLoan("tu", amount(50_000)); !errors.Is(err, ledger.ErrLoanNotEligible) {
		t.Fatalf("expected ineligible loan, got %v", err)
	}
	if err := s.RequestLoan("tu", amount(0)); !errors.Is(err, ledger.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}

	a, _ = s.FindByUsername("tu")
	if len(a.Movements) != 4 {
		t.Fatalf("rejected loans must not append, have %d movements", len(a.Movements))
	}
}

func TestCloseRequiresExactConfirmation(t *testing.T) {
	s := testStore()
	if _, err := s.Authenticate("js", 1111); err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	if err := s.Close("js", "js", 9999); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong PIN, got %v", err)
	}
	if err := s.Close("js", "jd", 1111); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong username, got %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("rejected close must not remove accounts")
	}

	if err := s.Close("js", "js", 1111); err != nil {
		t.Fatalf("close: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 accounts after close, got %d", s.Len())
	}
	if _, err := s.FindByUsername("js"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("closed account still resolvable")
	}
	if _, err := s.Current(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("closing the active account must clear the session")
	}
}

func TestCloseOtherAccountKeepsSession(t *testing.T) {
	s := testStore()
	if _, err := s.Authenticate("js", 1111); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if err := s.Close("jd", "jd", 2222); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := s.Current(); err != nil {
		t.Fatalf("session should survive closing another account: %v", err)
	}
}

func TestSummaryRecomputesBalance(t *testing.T) {
	s := testStore()

	summary, err := s.Summary("js", ledger.DefaultInterestMinimum)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !summary.Balance.Equal(amount(3840)) {
		t.Fatalf("expected balance 3840, got %s", summary.Balance)
	}

	if err := s.Transfer("js", "jd", amount(40)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	summary, _ = s.Summary("js", ledger.DefaultInterestMinimum)
	if !summary.Balance.Equal(amount(3800)) {
		t.Fatalf("summary must reflect fresh movements, got %s", summary.Balance)
	}
}

func TestMovementsViewIsIsolatedCopy(t *testing.T) {
	s := testStore()
	view, err := s.Movements("stw", ledger.SortAscending)
	if err != nil {
		t.Fatalf("movements: %v", err)
	}
	view[0] = amount(1_000_000)

	fresh, _ := s.Movements("stw", ledger.SortOriginal)
	if !fresh[0].Equal(amount(200)) {
		t.Fatalf("view mutation leaked into the store")
	}
}
