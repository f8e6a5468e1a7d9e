package domain

import (
	"time"

	"github.com/studiolegale/lexora/internal/money"
)

// BolloThreshold is the statutory taxable-base floor above which stamp
// duty applies. It is a legal constant, not configuration.
const BolloThreshold = 77.47

// ComputeTotals derives all monetary fields from the lines and the
// current tax configuration. Each field is rounded exactly once, from
// un-rounded intermediate sums, to avoid cent-level drift.
//
// IVA is computed on imponibile plus cassa, not on the base alone:
// that is how the office's accountant has it set up, and changing it
// is a domain decision, not a code fix.
func ComputeTotals(lines []Line, cfg TaxConfig) Totals {
	var sum float64
	for _, line := range lines {
		sum += line.Amount
	}

	imponibile := money.Round2(sum)
	cassa := money.Round2(imponibile * cfg.CassaPerc / 100)
	iva := money.Round2((imponibile + cassa) * cfg.IvaPerc / 100)
	ritenuta := money.Round2(imponibile * cfg.RitenutaPerc / 100)

	var bollo float64
	if imponibile >= BolloThreshold {
		bollo = money.Round2(cfg.Bollo)
	}

	return Totals{
		Imponibile: imponibile,
		Cassa:      cassa,
		Iva:        iva,
		Ritenuta:   ritenuta,
		Bollo:      bollo,
		Totale:     money.Round2(imponibile + cassa + iva + bollo - ritenuta),
	}
}

// AggregatePayments sums payments against the total.
func AggregatePayments(totale float64, payments []Payment) (paid, residuo float64) {
	var sum float64
	for _, p := range payments {
		sum += p.Amount
	}
	paid = money.Round2(sum)
	residuo = money.Round2(totale - paid)
	return paid, residuo
}

// DeriveStatus maps the paid/residual pair onto the lifecycle flag.
func DeriveStatus(totale, paid, residuo float64) Status {
	switch {
	case residuo <= 0:
		return StatusPagata
	case paid > 0 && paid < totale:
		return StatusParziale
	default:
		return StatusEmessa
	}
}

// IsOverdue reports whether an unpaid balance is past its due date.
// The comparison is date-only; time of day never matters.
func IsOverdue(dueDate *time.Time, residuo float64, now time.Time) bool {
	if dueDate == nil || residuo <= 0 {
		return false
	}
	due := truncateToDay(*dueDate)
	today := truncateToDay(now)
	return due.Before(today)
}

// BuildView recomputes every derived field of an invoice. The embedded
// invoice is a detached clone: callers serialize views outside the
// store lock, so they must not alias the stored record.
func BuildView(inv Invoice, cfg TaxConfig, now time.Time) View {
	totals := ComputeTotals(inv.Lines, cfg)
	paid, residuo := AggregatePayments(totals.Totale, inv.Payments)
	return View{
		Invoice: inv.Clone(),
		Totals:  totals,
		Paid:    paid,
		Residuo: residuo,
		Status:  DeriveStatus(totals.Totale, paid, residuo),
		Overdue: IsOverdue(inv.DueDate, residuo, now),
	}
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
