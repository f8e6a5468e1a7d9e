package domain

import (
	"context"
	"errors"
)

type CreateRequest struct {
	Name       string `json:"name"`
	FiscalCode string `json:"fiscalCode"`
	VATNumber  string `json:"vatNumber"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Notes      string `json:"notes"`
}

type UpdateRequest struct {
	ID         string  `json:"-"`
	Name       *string `json:"name"`
	FiscalCode *string `json:"fiscalCode"`
	VATNumber  *string `json:"vatNumber"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Notes      *string `json:"notes"`
}

type Service interface {
	List(ctx context.Context) ([]Client, error)
	GetByID(ctx context.Context, id string) (Client, error)
	Create(ctx context.Context, req CreateRequest) (Client, error)
	Update(ctx context.Context, req UpdateRequest) (Client, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidName      = errors.New("invalid_name")
	ErrNotFound         = errors.New("client_not_found")
	ErrClientReferenced = errors.New("client_referenced")
)
