package domain

// NumberingKind names a sequence family. Invoices share one family;
// case files get one family per case type.
type NumberingKind string

const (
	NumberingKindInvoice NumberingKind = "invoice"
	NumberingKindCivile  NumberingKind = "civile"
	NumberingKindPenale  NumberingKind = "penale"
)

// NumberingFamily is the per-family numbering configuration. CounterKey
// is the stable counter namespace; the year is appended at draw time so
// counters reset implicitly every January.
type NumberingFamily struct {
	Prefix     string `json:"prefix"`
	Separator  string `json:"separator"`
	Pad        int    `json:"pad"`
	CounterKey string `json:"counterKey"`
}

// Settings is the office-wide configuration: letterhead identity, tax
// percentages applied to every invoice read, and numbering families.
type Settings struct {
	Name       string `json:"name"`
	Address    string `json:"address,omitempty"`
	VATNumber  string `json:"vatNumber,omitempty"`
	FiscalCode string `json:"fiscalCode,omitempty"`
	Email      string `json:"email,omitempty"`

	CassaPerc    float64 `json:"cassaPerc"`
	IvaPerc      float64 `json:"ivaPerc"`
	RitenutaPerc float64 `json:"ritenutaPerc"`
	Bollo        float64 `json:"bollo"`

	ManualCaseNumbers bool                              `json:"manualCaseNumbers"`
	Numbering         map[NumberingKind]NumberingFamily `json:"numbering"`
}

// Clone returns a copy safe to hand out of the store lock. The
// numbering map is the only shared reference inside Settings.
func (s Settings) Clone() Settings {
	out := s
	if s.Numbering != nil {
		out.Numbering = make(map[NumberingKind]NumberingFamily, len(s.Numbering))
		for kind, family := range s.Numbering {
			out.Numbering[kind] = family
		}
	}
	return out
}

// DefaultSettings returns the seed configuration for a fresh data file:
// forfait lawyer defaults (cassa 4%, IVA 22%, ritenuta 20%, bollo 2.00).
func DefaultSettings() Settings {
	return Settings{
		Name:         "Studio Legale",
		CassaPerc:    4,
		IvaPerc:      22,
		RitenutaPerc: 20,
		Bollo:        2,
		Numbering: map[NumberingKind]NumberingFamily{
			NumberingKindInvoice: {Prefix: "FT", Separator: "-", Pad: 4, CounterKey: "invoice"},
			NumberingKindCivile:  {Prefix: "CIV", Separator: "-", Pad: 4, CounterKey: "caseCivil"},
			NumberingKindPenale:  {Prefix: "PEN", Separator: "-", Pad: 4, CounterKey: "casePenal"},
		},
	}
}

// FamilyFor resolves a numbering kind, falling back to the civil family
// for unknown case kinds rather than failing.
func (s Settings) FamilyFor(kind NumberingKind) (NumberingKind, NumberingFamily) {
	if family, ok := s.Numbering[kind]; ok {
		return kind, family
	}
	if family, ok := s.Numbering[NumberingKindCivile]; ok {
		return NumberingKindCivile, family
	}
	return NumberingKindCivile, NumberingFamily{Prefix: "CIV", Separator: "-", Pad: 4, CounterKey: "caseCivil"}
}
