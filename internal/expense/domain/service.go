package domain

import (
	"context"
	"errors"
)

type CreateRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	// Amount goes through money normalization, so both numbers and
	// formatted strings ("€ 10,00") are accepted.
	Amount   any    `json:"amount"`
	Date     string `json:"date"`
	ClientID string `json:"clientId"`
	CaseID   string `json:"caseId"`
}

type UpdateRequest struct {
	ID          string  `json:"-"`
	Description *string `json:"description"`
	Amount      any     `json:"amount"`
	Date        *string `json:"date"`
}

type Service interface {
	List(ctx context.Context) ([]Expense, error)
	GetByID(ctx context.Context, id string) (Expense, error)
	Create(ctx context.Context, req CreateRequest) (Expense, error)
	Update(ctx context.Context, req UpdateRequest) (Expense, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidType    = errors.New("invalid_type")
	ErrInvalidAmount  = errors.New("invalid_amount")
	ErrInvalidDate    = errors.New("invalid_date")
	ErrInvalidClient  = errors.New("invalid_client")
	ErrClientNotFound = errors.New("client_not_found")
	ErrCaseNotFound   = errors.New("case_not_found")
	ErrNotFound       = errors.New("expense_not_found")
	ErrAlreadyBilled  = errors.New("expense_already_billed")
)
