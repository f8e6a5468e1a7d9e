package domain

import (
	"context"
	"errors"
)

type LineRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	// Amount goes through money normalization; numbers and formatted
	// strings are both accepted.
	Amount any `json:"amount"`
}

type PaymentRequest struct {
	Date   string `json:"date"`
	Amount any    `json:"amount"`
}

type CreateRequest struct {
	ClientID   string        `json:"clientId"`
	CaseID     string        `json:"caseId"`
	Date       string        `json:"date"`
	DueDate    string        `json:"dueDate"`
	Notes      string        `json:"notes"`
	Lines      []LineRequest `json:"lines"`
	ExpenseIDs []string      `json:"expenseIds"`
}

type UpdateRequest struct {
	ID      string  `json:"-"`
	Date    *string `json:"date"`
	DueDate *string `json:"dueDate"`
	Notes   *string `json:"notes"`
}

type Service interface {
	List(ctx context.Context) ([]View, error)
	GetByID(ctx context.Context, id string) (View, error)
	Create(ctx context.Context, req CreateRequest) (View, error)
	Update(ctx context.Context, req UpdateRequest) (View, error)
	Delete(ctx context.Context, id string) error
	AddLine(ctx context.Context, invoiceID string, req LineRequest) (View, error)
	RemoveLine(ctx context.Context, invoiceID, lineID string) (View, error)
	AddPayment(ctx context.Context, invoiceID string, req PaymentRequest) (View, error)
	RemovePayment(ctx context.Context, invoiceID, paymentID string) (View, error)
	AttachExpense(ctx context.Context, invoiceID, expenseID string) (View, error)
	Render(ctx context.Context, invoiceID string) (string, error)
	PreviewNumber(ctx context.Context) (string, error)
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidClient    = errors.New("invalid_client")
	ErrClientNotFound   = errors.New("client_not_found")
	ErrCaseNotFound     = errors.New("case_not_found")
	ErrClientMismatch   = errors.New("case_client_mismatch")
	ErrInvalidLineType  = errors.New("invalid_line_type")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidDate      = errors.New("invalid_date")
	ErrNotFound         = errors.New("invoice_not_found")
	ErrHasPayments      = errors.New("invoice_has_payments")
	ErrLineNotFound     = errors.New("line_not_found")
	ErrPaymentNotFound  = errors.New("payment_not_found")
	ErrAlreadyPaid      = errors.New("invoice_already_paid")
	ErrExpenseNotFound  = errors.New("expense_not_found")
	ErrExpenseBilled    = errors.New("expense_already_billed")
)
