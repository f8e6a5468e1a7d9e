package render

import (
	"github.com/studiolegale/lexora/internal/invoice/domain"
)

// Input is the deterministic input used for invoice rendering: the
// fully recomputed invoice plus the letterhead and client blocks.
type Input struct {
	Studio     StudioView
	Client     ClientView
	CaseNumber string
	Invoice    domain.View
}

type StudioView struct {
	Name       string
	Address    string
	VATNumber  string
	FiscalCode string
	Email      string
}

type ClientView struct {
	Name       string
	Address    string
	FiscalCode string
	VATNumber  string
}

type Renderer interface {
	RenderHTML(input Input) (string, error)
}
