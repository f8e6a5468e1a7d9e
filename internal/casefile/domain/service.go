package domain

import (
	"context"
	"errors"
)

// CreateRequest opens a case. ManualNumber bypasses the automatic
// sequence when the office allows it; the counter is not advanced.
type CreateRequest struct {
	Type         string `json:"type"`
	ClientID     string `json:"clientId"`
	Subject      string `json:"subject"`
	Counterpart  string `json:"counterpart"`
	Court        string `json:"court"`
	ManualNumber string `json:"manualNumber"`
}

type UpdateRequest struct {
	ID          string  `json:"-"`
	Subject     *string `json:"subject"`
	Counterpart *string `json:"counterpart"`
	Court       *string `json:"court"`
	Status      *string `json:"status"`
}

type Service interface {
	List(ctx context.Context) ([]CaseFile, error)
	GetByID(ctx context.Context, id string) (CaseFile, error)
	Create(ctx context.Context, req CreateRequest) (CaseFile, error)
	Update(ctx context.Context, req UpdateRequest) (CaseFile, error)
	Delete(ctx context.Context, id string) error
	PreviewNumber(ctx context.Context, kind string) (string, error)
}

var (
	ErrInvalidID            = errors.New("invalid_id")
	ErrInvalidClient        = errors.New("invalid_client")
	ErrClientNotFound       = errors.New("client_not_found")
	ErrInvalidStatus        = errors.New("invalid_status")
	ErrNotFound             = errors.New("case_not_found")
	ErrCaseReferenced       = errors.New("case_referenced")
	ErrManualNumberDisabled = errors.New("manual_number_disabled")
	ErrDuplicateNumber      = errors.New("duplicate_number")
)
