package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// LineType classifies an invoice line. "onorario" is professional fee
// work; the others mirror the expense types they are billed from.
type LineType string

const (
	LineTypeOnorario LineType = "onorario"
	LineTypeSpesa    LineType = "spesa"
	LineTypeAnticipo LineType = "anticipo"
	LineTypeRimborso LineType = "rimborso"
)

// ValidLineType reports whether t is one of the four line types.
func ValidLineType(t LineType) bool {
	switch t {
	case LineTypeOnorario, LineTypeSpesa, LineTypeAnticipo, LineTypeRimborso:
		return true
	}
	return false
}

// Status is derived from payments against the total; it is never stored.
type Status string

const (
	StatusEmessa   Status = "emessa"
	StatusParziale Status = "parziale"
	StatusPagata   Status = "pagata"
)

// Line is one invoice position. ExpenseID links back to the expense
// record the line was billed from, when any.
type Line struct {
	ID          snowflake.ID `json:"id,string"`
	Type        LineType     `json:"type"`
	Description string       `json:"description"`
	Amount      float64      `json:"amount"`
	ExpenseID   snowflake.ID `json:"expenseId,string,omitempty"`
}

// Payment is a recorded incassation against the invoice total.
type Payment struct {
	ID     snowflake.ID `json:"id,string"`
	Date   time.Time    `json:"date"`
	Amount float64      `json:"amount"`
}

// Invoice is the persisted shape: lines and payments are truth, all
// monetary aggregates and the status are recomputed on every read.
type Invoice struct {
	ID        snowflake.ID `json:"id,string"`
	Number    string       `json:"number"`
	ClientID  snowflake.ID `json:"clientId,string"`
	CaseID    snowflake.ID `json:"caseId,string,omitempty"`
	Date      time.Time    `json:"date"`
	DueDate   *time.Time   `json:"dueDate,omitempty"`
	Notes     string       `json:"notes,omitempty"`
	Lines     []Line       `json:"lines"`
	Payments  []Payment    `json:"payments"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Clone returns a copy whose Lines and Payments do not share backing
// arrays with the stored invoice, so it can outlive the store lock.
func (i Invoice) Clone() Invoice {
	out := i
	out.Lines = append([]Line(nil), i.Lines...)
	out.Payments = append([]Payment(nil), i.Payments...)
	if i.DueDate != nil {
		due := *i.DueDate
		out.DueDate = &due
	}
	return out
}

// TaxConfig carries the office percentages applied at read time.
type TaxConfig struct {
	CassaPerc    float64
	IvaPerc      float64
	RitenutaPerc float64
	Bollo        float64
}

// Totals are the derived monetary fields of an invoice.
type Totals struct {
	Imponibile float64 `json:"imponibile"`
	Cassa      float64 `json:"cassa"`
	Iva        float64 `json:"iva"`
	Ritenuta   float64 `json:"ritenuta"`
	Bollo      float64 `json:"bollo"`
	Totale     float64 `json:"totale"`
}

// View is the serialized invoice: the stored record plus everything
// derived from it and the current tax configuration.
type View struct {
	Invoice
	Totals  Totals  `json:"totals"`
	Paid    float64 `json:"paid"`
	Residuo float64 `json:"residuo"`
	Status  Status  `json:"status"`
	Overdue bool    `json:"overdue"`
}
