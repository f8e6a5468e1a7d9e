package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Client is a person or company the office works for.
type Client struct {
	ID         snowflake.ID `json:"id,string"`
	Name       string       `json:"name"`
	FiscalCode string       `json:"fiscalCode,omitempty"`
	VATNumber  string       `json:"vatNumber,omitempty"`
	Email      string       `json:"email,omitempty"`
	Phone      string       `json:"phone,omitempty"`
	Address    string       `json:"address,omitempty"`
	Notes      string       `json:"notes,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}
