package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// CaseType selects the numbering family a case draws from.
type CaseType string

const (
	CaseTypeCivile CaseType = "civile"
	CaseTypePenale CaseType = "penale"
)

// CaseStatus is the case lifecycle flag.
type CaseStatus string

const (
	CaseStatusAperta     CaseStatus = "aperta"
	CaseStatusArchiviata CaseStatus = "archiviata"
)

// CaseFile is a matter handled for a client. Number is unique across
// the whole collection, case-insensitively, whether drawn from the
// sequence or supplied manually.
type CaseFile struct {
	ID          snowflake.ID `json:"id,string"`
	Number      string       `json:"number"`
	Type        CaseType     `json:"type"`
	ClientID    snowflake.ID `json:"clientId,string"`
	Subject     string       `json:"subject"`
	Counterpart string       `json:"counterpart,omitempty"`
	Court       string       `json:"court,omitempty"`
	Status      CaseStatus   `json:"status"`
	OpenedAt    time.Time    `json:"openedAt"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
