package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/studiolegale/lexora/internal/casefile/domain"
	"github.com/studiolegale/lexora/internal/clock"
	"github.com/studiolegale/lexora/internal/sequence"
	"github.com/studiolegale/lexora/internal/store"
	studiodomain "github.com/studiolegale/lexora/internal/studio/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	store *store.Store
	log   *zap.Logger
	genID *snowflake.Node
	clk   clock.Clock
}

type Params struct {
	fx.In

	Store *store.Store
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

func NewService(p Params) domain.Service {
	return &Service{
		store: p.Store,
		log:   p.Log.Named("casefile.service"),
		genID: p.GenID,
		clk:   p.Clock,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.CaseFile, error) {
	var out []domain.CaseFile
	err := s.store.View(func(doc *store.Document) error {
		out = append([]domain.CaseFile(nil), doc.Cases...)
		return nil
	})
	return out, err
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.CaseFile, error) {
	caseID, err := parseID(id)
	if err != nil {
		return domain.CaseFile{}, domain.ErrInvalidID
	}

	var out domain.CaseFile
	err = s.store.View(func(doc *store.Document) error {
		found := doc.FindCase(caseID)
		if found == nil {
			return domain.ErrNotFound
		}
		out = *found
		return nil
	})
	return out, err
}

// Create opens a case, drawing its number from the matching sequence
// family unless a manual number is supplied. A manual number never
// advances the automatic counter.
func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.CaseFile, error) {
	clientID, err := parseID(req.ClientID)
	if err != nil {
		return domain.CaseFile{}, domain.ErrInvalidClient
	}

	caseType := normalizeCaseType(req.Type)
	manual := strings.TrimSpace(req.ManualNumber)
	now := s.clk.Now()

	caseFile := domain.CaseFile{
		ID:          s.genID.Generate(),
		Type:        caseType,
		ClientID:    clientID,
		Subject:     strings.TrimSpace(req.Subject),
		Counterpart: strings.TrimSpace(req.Counterpart),
		Court:       strings.TrimSpace(req.Court),
		Status:      domain.CaseStatusAperta,
		OpenedAt:    now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.store.Mutate(func(doc *store.Document) error {
		if doc.FindClient(clientID) == nil {
			return domain.ErrClientNotFound
		}
		if manual != "" {
			if !doc.Settings.ManualCaseNumbers {
				return domain.ErrManualNumberDisabled
			}
			if sequence.CaseNumberTaken(doc, manual) {
				return domain.ErrDuplicateNumber
			}
			caseFile.Number = manual
		} else {
			caseFile.Number = sequence.Next(doc, studiodomain.NumberingKind(caseType), now.Year())
		}
		doc.Cases = append(doc.Cases, caseFile)
		return nil
	})
	if err != nil {
		return domain.CaseFile{}, err
	}
	return caseFile, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.CaseFile, error) {
	caseID, err := parseID(req.ID)
	if err != nil {
		return domain.CaseFile{}, domain.ErrInvalidID
	}

	var status *domain.CaseStatus
	if req.Status != nil {
		parsed := domain.CaseStatus(strings.TrimSpace(*req.Status))
		if parsed != domain.CaseStatusAperta && parsed != domain.CaseStatusArchiviata {
			return domain.CaseFile{}, domain.ErrInvalidStatus
		}
		status = &parsed
	}

	var out domain.CaseFile
	err = s.store.Mutate(func(doc *store.Document) error {
		caseFile := doc.FindCase(caseID)
		if caseFile == nil {
			return domain.ErrNotFound
		}
		if req.Subject != nil {
			caseFile.Subject = strings.TrimSpace(*req.Subject)
		}
		if req.Counterpart != nil {
			caseFile.Counterpart = strings.TrimSpace(*req.Counterpart)
		}
		if req.Court != nil {
			caseFile.Court = strings.TrimSpace(*req.Court)
		}
		if status != nil {
			caseFile.Status = *status
		}
		caseFile.UpdatedAt = s.clk.Now()
		out = *caseFile
		return nil
	})
	if err != nil {
		return domain.CaseFile{}, err
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	caseID, err := parseID(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	return s.store.Mutate(func(doc *store.Document) error {
		if doc.FindCase(caseID) == nil {
			return domain.ErrNotFound
		}
		for i := range doc.Invoices {
			if doc.Invoices[i].CaseID == caseID {
				return domain.ErrCaseReferenced
			}
		}
		kept := doc.Cases[:0]
		for _, c := range doc.Cases {
			if c.ID != caseID {
				kept = append(kept, c)
			}
		}
		doc.Cases = kept
		return nil
	})
}

// PreviewNumber shows the number the next automatic draw would assign
// for the kind, without advancing anything.
func (s *Service) PreviewNumber(ctx context.Context, kind string) (string, error) {
	caseType := normalizeCaseType(kind)
	var out string
	err := s.store.View(func(doc *store.Document) error {
		out = sequence.Preview(doc, studiodomain.NumberingKind(caseType), s.clk.Now().Year())
		return nil
	})
	return out, err
}

// normalizeCaseType keeps unknown kinds on the civil family rather
// than failing the request.
func normalizeCaseType(raw string) domain.CaseType {
	switch domain.CaseType(strings.ToLower(strings.TrimSpace(raw))) {
	case domain.CaseTypePenale:
		return domain.CaseTypePenale
	default:
		return domain.CaseTypeCivile
	}
}

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}
