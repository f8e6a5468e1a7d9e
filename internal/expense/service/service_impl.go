package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/studiolegale/lexora/internal/clock"
	"github.com/studiolegale/lexora/internal/expense/domain"
	"github.com/studiolegale/lexora/internal/money"
	"github.com/studiolegale/lexora/internal/store"
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
		log:   p.Log.Named("expense.service"),
		genID: p.GenID,
		clk:   p.Clock,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Expense, error) {
	var out []domain.Expense
	err := s.store.View(func(doc *store.Document) error {
		out = append([]domain.Expense(nil), doc.Expenses...)
		return nil
	})
	return out, err
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Expense, error) {
	expenseID, err := parseID(id)
	if err != nil {
		return domain.Expense{}, domain.ErrInvalidID
	}

	var out domain.Expense
	err = s.store.View(func(doc *store.Document) error {
		found := doc.FindExpense(expenseID)
		if found == nil {
			return domain.ErrNotFound
		}
		out = *found
		return nil
	})
	return out, err
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Expense, error) {
	expenseType := domain.ExpenseType(strings.TrimSpace(req.Type))
	switch expenseType {
	case domain.ExpenseTypeSpesa, domain.ExpenseTypeAnticipo, domain.ExpenseTypeRimborso:
	default:
		return domain.Expense{}, domain.ErrInvalidType
	}

	amount := money.Round2(money.ParseAmount(req.Amount))
	if amount < 0 {
		return domain.Expense{}, domain.ErrInvalidAmount
	}

	clientID, err := parseID(req.ClientID)
	if err != nil {
		return domain.Expense{}, domain.ErrInvalidClient
	}
	var caseID snowflake.ID
	if strings.TrimSpace(req.CaseID) != "" {
		caseID, err = parseID(req.CaseID)
		if err != nil {
			return domain.Expense{}, domain.ErrInvalidID
		}
	}

	now := s.clk.Now()
	date := now
	if strings.TrimSpace(req.Date) != "" {
		date, err = parseDate(req.Date)
		if err != nil {
			return domain.Expense{}, domain.ErrInvalidDate
		}
	}

	expense := domain.Expense{
		ID:          s.genID.Generate(),
		Type:        expenseType,
		Description: strings.TrimSpace(req.Description),
		Amount:      amount,
		Date:        date,
		ClientID:    clientID,
		CaseID:      caseID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.store.Mutate(func(doc *store.Document) error {
		if doc.FindClient(clientID) == nil {
			return domain.ErrClientNotFound
		}
		if caseID != 0 && doc.FindCase(caseID) == nil {
			return domain.ErrCaseNotFound
		}
		doc.Expenses = append(doc.Expenses, expense)
		return nil
	})
	if err != nil {
		return domain.Expense{}, err
	}
	return expense, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.Expense, error) {
	expenseID, err := parseID(req.ID)
	if err != nil {
		return domain.Expense{}, domain.ErrInvalidID
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			return domain.Expense{}, domain.ErrInvalidDate
		}
		date = &parsed
	}
	var amount *float64
	if req.Amount != nil {
		parsed := money.Round2(money.ParseAmount(req.Amount))
		if parsed < 0 {
			return domain.Expense{}, domain.ErrInvalidAmount
		}
		amount = &parsed
	}

	var out domain.Expense
	err = s.store.Mutate(func(doc *store.Document) error {
		expense := doc.FindExpense(expenseID)
		if expense == nil {
			return domain.ErrNotFound
		}
		if req.Description != nil {
			expense.Description = strings.TrimSpace(*req.Description)
		}
		if amount != nil {
			expense.Amount = *amount
		}
		if date != nil {
			expense.Date = *date
		}
		expense.UpdatedAt = s.clk.Now()
		out = *expense
		return nil
	})
	if err != nil {
		return domain.Expense{}, err
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	expenseID, err := parseID(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	return s.store.Mutate(func(doc *store.Document) error {
		expense := doc.FindExpense(expenseID)
		if expense == nil {
			return domain.ErrNotFound
		}
		if expense.Billed() {
			return domain.ErrAlreadyBilled
		}
		kept := doc.Expenses[:0]
		for _, e := range doc.Expenses {
			if e.ID != expenseID {
				kept = append(kept, e)
			}
		}
		doc.Expenses = kept
		return nil
	})
}

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
