package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ExpenseType mirrors the invoice line types an expense can become.
type ExpenseType string

const (
	ExpenseTypeSpesa    ExpenseType = "spesa"
	ExpenseTypeAnticipo ExpenseType = "anticipo"
	ExpenseTypeRimborso ExpenseType = "rimborso"
)

// Expense is a cost advanced for a client, optionally tied to a case.
// InvoiceID is the billing back-reference: while set, the expense
// cannot be attached to another invoice.
type Expense struct {
	ID          snowflake.ID `json:"id,string"`
	Type        ExpenseType  `json:"type"`
	Description string       `json:"description"`
	Amount      float64      `json:"amount"`
	Date        time.Time    `json:"date"`
	ClientID    snowflake.ID `json:"clientId,string"`
	CaseID      snowflake.ID `json:"caseId,string,omitempty"`
	InvoiceID   snowflake.ID `json:"invoiceId,string,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Billed reports whether the expense is already on an invoice.
func (e Expense) Billed() bool { return e.InvoiceID != 0 }
