package service

import (
	"context"
	"strings"

	"github.com/studiolegale/lexora/internal/clock"
	"github.com/studiolegale/lexora/internal/money"
	"github.com/studiolegale/lexora/internal/sequence"
	"github.com/studiolegale/lexora/internal/store"
	"github.com/studiolegale/lexora/internal/studio/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	store *store.Store
	log   *zap.Logger
	clk   clock.Clock
}

type Params struct {
	fx.In

	Store *store.Store
	Log   *zap.Logger
	Clock clock.Clock
}

func NewService(p Params) domain.Service {
	return &Service{
		store: p.Store,
		log:   p.Log.Named("studio.service"),
		clk:   p.Clock,
	}
}

func (s *Service) Get(ctx context.Context) (domain.Settings, error) {
	var out domain.Settings
	err := s.store.View(func(doc *store.Document) error {
		out = doc.Settings.Clone()
		return nil
	})
	return out, err
}

// Update changes office identity and tax percentages. Tax changes take
// effect on the next read of every invoice, historical ones included.
func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.Settings, error) {
	for _, perc := range []*float64{req.CassaPerc, req.IvaPerc, req.RitenutaPerc} {
		if perc != nil && (*perc < 0 || *perc > 100) {
			return domain.Settings{}, domain.ErrInvalidPercentage
		}
	}
	if req.Bollo != nil && *req.Bollo < 0 {
		return domain.Settings{}, domain.ErrInvalidBollo
	}

	var out domain.Settings
	err := s.store.Mutate(func(doc *store.Document) error {
		settings := &doc.Settings
		applyString(&settings.Name, req.Name)
		applyString(&settings.Address, req.Address)
		applyString(&settings.VATNumber, req.VATNumber)
		applyString(&settings.FiscalCode, req.FiscalCode)
		applyString(&settings.Email, req.Email)
		if req.CassaPerc != nil {
			settings.CassaPerc = *req.CassaPerc
		}
		if req.IvaPerc != nil {
			settings.IvaPerc = *req.IvaPerc
		}
		if req.RitenutaPerc != nil {
			settings.RitenutaPerc = *req.RitenutaPerc
		}
		if req.Bollo != nil {
			settings.Bollo = money.Round2(*req.Bollo)
		}
		if req.ManualCaseNumbers != nil {
			settings.ManualCaseNumbers = *req.ManualCaseNumbers
		}
		out = settings.Clone()
		return nil
	})
	if err != nil {
		return domain.Settings{}, err
	}
	return out, nil
}

// UpdateNumbering reconfigures one sequence family, leaving every other
// family and its counters untouched.
func (s *Service) UpdateNumbering(ctx context.Context, kind string, req domain.NumberingUpdateRequest) (domain.Settings, error) {
	numberingKind := domain.NumberingKind(strings.ToLower(strings.TrimSpace(kind)))
	if req.Pad != nil && (*req.Pad < 1 || *req.Pad > 10) {
		return domain.Settings{}, domain.ErrInvalidPad
	}
	if req.Prefix != nil && strings.TrimSpace(*req.Prefix) == "" {
		return domain.Settings{}, domain.ErrInvalidPrefix
	}

	var out domain.Settings
	err := s.store.Mutate(func(doc *store.Document) error {
		family, ok := doc.Settings.Numbering[numberingKind]
		if !ok {
			return domain.ErrUnknownNumberingKind
		}
		if req.Prefix != nil {
			family.Prefix = strings.TrimSpace(*req.Prefix)
		}
		if req.Separator != nil {
			family.Separator = *req.Separator
		}
		if req.Pad != nil {
			family.Pad = *req.Pad
		}
		doc.Settings.Numbering[numberingKind] = family
		if req.NextNumber != nil {
			sequence.ForceNext(doc, numberingKind, s.clk.Now().Year(), *req.NextNumber)
		}
		out = doc.Settings.Clone()
		return nil
	})
	if err != nil {
		return domain.Settings{}, err
	}
	return out, nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
