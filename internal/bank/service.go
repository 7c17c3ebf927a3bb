package bank

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankist/bankist/internal/account"
	"github.com/bankist/bankist/internal/auth"
	"github.com/bankist/bankist/internal/ledger"
	"github.com/bankist/bankist/internal/notification"
)

// Service exposes the session-scoped banking operations: one authenticated
// account at a time, with every mutation and summary running against the
// shared account store.
type Service struct {
	store           *account.Store
	tokens          *auth.Service
	notifier        notification.Notifier
	interestMinimum decimal.Decimal
}

// NewService wires the account store, token service and notifier together.
func NewService(store *account.Store, tokens *auth.Service, notifier notification.Notifier, interestMinimum decimal.Decimal) *Service {
	return &Service{store: store, tokens: tokens, notifier: notifier, interestMinimum: interestMinimum}
}

// LoginResult carries the issued session token and account display data.
type LoginResult struct {
	Owner     string
	Username  string
	Token     string
	ExpiresIn int64
}

// Login authenticates the username/PIN pair, activates the session and
// issues a token bound to it.
func (s *Service) Login(_ context.Context, username string, pin int) (LoginResult, error) {
	a, err := s.store.Authenticate(username, pin)
	if err != nil {
		return LoginResult{}, err
	}
	token, err := s.tokens.Issue(a.Username)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Owner: a.Owner, Username: a.Username, Token: token.Value, ExpiresIn: token.ExpiresIn}, nil
}

// Logout clears the active session.
func (s *Service) Logout(_ context.Context) {
	s.store.Logout()
}

// Profile returns the session account's display data.
func (s *Service) Profile(_ context.Context) (account.Account, error) {
	return s.store.Current()
}

// Summary recomputes balance, income, expense and interest for the session
// account.
func (s *Service) Summary(_ context.Context) (ledger.Summary, error) {
	current, err := s.store.Current()
	if err != nil {
		return ledger.Summary{}, err
	}
	return s.store.Summary(current.Username, s.interestMinimum)
}

// MovementView is one renderable transaction row.
type MovementView struct {
	Amount decimal.Decimal
	Type   string
}

// Movements returns the session account's history in the requested order,
// each entry classified as deposit or withdrawal.
func (s *Service) Movements(_ context.Context, order ledger.SortOrder) ([]MovementView, error) {
	current, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	movements, err := s.store.Movements(current.Username, order)
	if err != nil {
		return nil, err
	}
	views := make([]MovementView, 0, len(movements))
	for _, m := range movements {
		kind := "withdrawal"
		if m.IsPositive() {
			kind = "deposit"
		}
		views = append(views, MovementView{Amount: m, Type: kind})
	}
	return views, nil
}

// TransferResult describes the outcome of a completed transfer.
type TransferResult struct {
	Balance     decimal.Decimal
	CompletedAt time.Time
}

// Transfer moves amount from the session account to the named recipient and
// returns the sender's fresh balance.
func (s *Service) Transfer(ctx context.Context, toUsername string, amount decimal.Decimal) (TransferResult, error) {
	current, err := s.store.Current()
	if err != nil {
		return TransferResult{}, err
	}
	if err := s.store.Transfer(current.Username, toUsername, amount); err != nil {
		return TransferResult{}, err
	}

	summary, err := s.store.Summary(current.Username, s.interestMinimum)
	if err != nil {
		return TransferResult{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindTransferReceived,
			Destination: toUsername,
			Body:        fmt.Sprintf("You received %s from %s", amount, current.Username),
		})
	}

	return TransferResult{Balance: summary.Balance, CompletedAt: time.Now().UTC()}, nil
}

// LoanResult describes the outcome of an approved loan.
type LoanResult struct {
	Balance     decimal.Decimal
	CompletedAt time.Time
}

// RequestLoan credits the session account when the eligibility rule holds.
func (s *Service) RequestLoan(ctx context.Context, amount decimal.Decimal) (LoanResult, error) {
	current, err := s.store.Current()
	if err != nil {
		return LoanResult{}, err
	}
	if err := s.store.RequestLoan(current.Username, amount); err != nil {
		return LoanResult{}, err
	}

	summary, err := s.store.Summary(current.Username, s.interestMinimum)
	if err != nil {
		return LoanResult{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindLoanApproved,
			Destination: current.Username,
			Body:        fmt.Sprintf("Your loan of %s was approved", amount),
		})
	}

	return LoanResult{Balance: summary.Balance, CompletedAt: time.Now().UTC()}, nil
}

// Close removes the session account after exact username and PIN
// confirmation, terminating the session.
func (s *Service) Close(ctx context.Context, confirmUsername string, confirmPIN int) error {
	current, err := s.store.Current()
	if err != nil {
		return err
	}
	if err := s.store.Close(current.Username, confirmUsername, confirmPIN); err != nil {
		return err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindAccountClosed,
			Destination: current.Username,
			Body:        fmt.Sprintf("Account %s was closed", current.Username),
		})
	}
	return nil
}
