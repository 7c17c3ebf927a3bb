package bank

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/bankist/bankist/internal/account"
	"github.com/bankist/bankist/internal/ledger"
)

// Handler exposes the banking endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a banking HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type loginRequest struct {
	Username string `json:"username"`
	PIN      int    `json:"pin"`
}

// Login authenticates and returns a session token. Unknown usernames and
// wrong PINs are reported identically so the response never reveals whether
// an account exists.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	res, err := h.service.Login(c.UserContext(), req.Username, req.PIN)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) || errors.Is(err, account.ErrUnauthorized) {
			return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"owner":        res.Owner,
		"username":     res.Username,
		"access_token": res.Token,
		"expires_in":   res.ExpiresIn,
	})
}

// Logout clears the active session.
func (h *Handler) Logout(c *fiber.Ctx) error {
	h.service.Logout(c.UserContext())
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "logged_out"})
}

// Me returns the session account's profile.
func (h *Handler) Me(c *fiber.Ctx) error {
	a, err := h.service.Profile(c.UserContext())
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"owner":         a.Owner,
		"username":      a.Username,
		"interest_rate": a.InterestRate,
	})
}

// Summary returns the derived figures for the session account.
func (h *Handler) Summary(c *fiber.Ctx) error {
	s, err := h.service.Summary(c.UserContext())
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"balance":  s.Balance,
		"in":       s.Income,
		"out":      s.Expense,
		"interest": s.Interest,
	})
}

// Movements returns the session account's history in the requested order.
func (h *Handler) Movements(c *fiber.Ctx) error {
	order := ledger.ParseSortOrder(c.Query("sort"))
	views, err := h.service.Movements(c.UserContext(), order)
	if err != nil {
		return mapError(err)
	}
	rows := make([]fiber.Map, 0, len(views))
	for _, v := range views {
		rows = append(rows, fiber.Map{"amount": v.Amount, "type": v.Type})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"sort": order, "movements": rows})
}

type transferRequest struct {
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// Transfer moves funds from the session account to the named recipient.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	res, err := h.service.Transfer(c.UserContext(), req.To, req.Amount)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"balance":      res.Balance,
		"completed_at": res.CompletedAt,
	})
}

type loanRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Loan requests a loan credit on the session account.
func (h *Handler) Loan(c *fiber.Ctx) error {
	var req loanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	res, err := h.service.RequestLoan(c.UserContext(), req.Amount)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"balance":      res.Balance,
		"completed_at": res.CompletedAt,
	})
}

type closeRequest struct {
	ConfirmUsername string `json:"confirm_username"`
	ConfirmPIN      int    `json:"confirm_pin"`
}

// Close removes the session account after confirmation.
func (h *Handler) Close(c *fiber.Ctx) error {
	var req closeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.service.Close(c.UserContext(), req.ConfirmUsername, req.ConfirmPIN); err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "closed"})
}

func mapError(err error) *fiber.Error {
	switch {
	case errors.Is(err, account.ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, account.ErrNoSession), errors.Is(err, account.ErrUnauthorized):
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ledger.ErrLoanNotEligible):
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrSelfTransfer), errors.Is(err, ledger.ErrInsufficientFunds):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
