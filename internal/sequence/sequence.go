// Package sequence produces human-readable, year-scoped document
// numbers from the per-key counters persisted in the store document.
// Callers run these helpers inside the same View/Mutate callback as the
// operation that needs the number, so draw and persist stay one write.
package sequence

import (
	"fmt"
	"strings"

	"github.com/studiolegale/lexora/internal/store"
	studiodomain "github.com/studiolegale/lexora/internal/studio/domain"
)

// Key is the counter namespace for a family in a given year, e.g.
// "invoice_2026" or "caseCivil_2026".
func Key(family studiodomain.NumberingFamily, year int) string {
	return fmt.Sprintf("%s_%d", family.CounterKey, year)
}

// Format renders "{PREFIX}{SEP}{YEAR}{SEP}{zero-padded n}".
func Format(family studiodomain.NumberingFamily, year int, n int64) string {
	pad := family.Pad
	if pad <= 0 {
		pad = 4
	}
	sep := family.Separator
	return fmt.Sprintf("%s%s%d%s%0*d", family.Prefix, sep, year, sep, pad, n)
}

// Next draws the next number for the kind, advancing and recording the
// counter. Unknown case kinds fall back to the civil family.
func Next(doc *store.Document, kind studiodomain.NumberingKind, year int) string {
	_, family := doc.Settings.FamilyFor(kind)
	key := Key(family, year)
	n := doc.Counters[key] + 1
	doc.Counters[key] = n
	return Format(family, year, n)
}

// Preview computes the number Next would return without advancing the
// counter, for "what number comes next" display.
func Preview(doc *store.Document, kind studiodomain.NumberingKind, year int) string {
	_, family := doc.Settings.FamilyFor(kind)
	return Format(family, year, doc.Counters[Key(family, year)]+1)
}

// ForceNext pins the next draw of the family to requested. A value that
// would take the stored counter below zero leaves the counter untouched;
// the change is dropped silently rather than rejected.
func ForceNext(doc *store.Document, kind studiodomain.NumberingKind, year int, requested int64) {
	_, family := doc.Settings.FamilyFor(kind)
	if requested-1 < 0 {
		return
	}
	doc.Counters[Key(family, year)] = requested - 1
}

// CaseNumberTaken reports whether number collides, case-insensitively,
// with an existing case number.
func CaseNumberTaken(doc *store.Document, number string) bool {
	for i := range doc.Cases {
		if strings.EqualFold(doc.Cases[i].Number, number) {
			return true
		}
	}
	return false
}
