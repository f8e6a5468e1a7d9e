package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/studiolegale/lexora/internal/clock"
	"github.com/studiolegale/lexora/internal/invoice/domain"
	"github.com/studiolegale/lexora/internal/invoice/render"
	"github.com/studiolegale/lexora/internal/money"
	"github.com/studiolegale/lexora/internal/sequence"
	"github.com/studiolegale/lexora/internal/store"
	studiodomain "github.com/studiolegale/lexora/internal/studio/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	store    *store.Store
	log      *zap.Logger
	genID    *snowflake.Node
	clk      clock.Clock
	renderer render.Renderer
}

type Params struct {
	fx.In

	Store    *store.Store
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Renderer render.Renderer
}

func NewService(p Params) domain.Service {
	return &Service{
		store:    p.Store,
		log:      p.Log.Named("invoice.service"),
		genID:    p.GenID,
		clk:      p.Clock,
		renderer: p.Renderer,
	}
}

// taxConfigOf snapshots the office percentages at read time. Totals of
// historical invoices follow later rate changes on purpose.
func taxConfigOf(doc *store.Document) domain.TaxConfig {
	return domain.TaxConfig{
		CassaPerc:    doc.Settings.CassaPerc,
		IvaPerc:      doc.Settings.IvaPerc,
		RitenutaPerc: doc.Settings.RitenutaPerc,
		Bollo:        doc.Settings.Bollo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.View, error) {
	now := s.clk.Now()
	var out []domain.View
	err := s.store.View(func(doc *store.Document) error {
		cfg := taxConfigOf(doc)
		out = make([]domain.View, 0, len(doc.Invoices))
		for _, inv := range doc.Invoices {
			out = append(out, domain.BuildView(inv, cfg, now))
		}
		return nil
	})
	return out, err
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.View, error) {
	invoiceID, err := parseID(id)
	if err != nil {
		return domain.View{}, domain.ErrInvalidID
	}

	var out domain.View
	err = s.store.View(func(doc *store.Document) error {
		inv := doc.FindInvoice(invoiceID)
		if inv == nil {
			return domain.ErrNotFound
		}
		out = domain.BuildView(*inv, taxConfigOf(doc), s.clk.Now())
		return nil
	})
	return out, err
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.View, error) {
	clientID, err := parseID(req.ClientID)
	if err != nil {
		return domain.View{}, domain.ErrInvalidClient
	}
	var caseID snowflake.ID
	if strings.TrimSpace(req.CaseID) != "" {
		caseID, err = parseID(req.CaseID)
		if err != nil {
			return domain.View{}, domain.ErrInvalidID
		}
	}

	now := s.clk.Now()
	date := now
	if strings.TrimSpace(req.Date) != "" {
		date, err = parseDate(req.Date)
		if err != nil {
			return domain.View{}, domain.ErrInvalidDate
		}
	}
	var dueDate *time.Time
	if strings.TrimSpace(req.DueDate) != "" {
		parsed, err := parseDate(req.DueDate)
		if err != nil {
			return domain.View{}, domain.ErrInvalidDate
		}
		dueDate = &parsed
	}

	lines := make([]domain.Line, 0, len(req.Lines))
	for _, lr := range req.Lines {
		line, err := s.buildLine(lr)
		if err != nil {
			return domain.View{}, err
		}
		lines = append(lines, line)
	}

	expenseIDs := make([]snowflake.ID, 0, len(req.ExpenseIDs))
	seen := make(map[snowflake.ID]struct{}, len(req.ExpenseIDs))
	for _, raw := range req.ExpenseIDs {
		expenseID, err := parseID(raw)
		if err != nil {
			return domain.View{}, domain.ErrInvalidID
		}
		// The same expense listed twice would become two lines.
		if _, dup := seen[expenseID]; dup {
			return domain.View{}, domain.ErrExpenseBilled
		}
		seen[expenseID] = struct{}{}
		expenseIDs = append(expenseIDs, expenseID)
	}

	inv := domain.Invoice{
		ID:        s.genID.Generate(),
		ClientID:  clientID,
		CaseID:    caseID,
		Date:      date,
		DueDate:   dueDate,
		Notes:     req.Notes,
		Lines:     lines,
		Payments:  []domain.Payment{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	var out domain.View
	err = s.store.Mutate(func(doc *store.Document) error {
		if doc.FindClient(clientID) == nil {
			return domain.ErrClientNotFound
		}
		if caseID != 0 {
			caseFile := doc.FindCase(caseID)
			if caseFile == nil {
				return domain.ErrCaseNotFound
			}
			if caseFile.ClientID != clientID {
				return domain.ErrClientMismatch
			}
		}
		for _, expenseID := range expenseIDs {
			expense := doc.FindExpense(expenseID)
			if expense == nil {
				return domain.ErrExpenseNotFound
			}
			if expense.Billed() {
				return domain.ErrExpenseBilled
			}
		}
		// Validation done; from here on the document is modified.
		for _, expenseID := range expenseIDs {
			expense := doc.FindExpense(expenseID)
			inv.Lines = append(inv.Lines, domain.Line{
				ID:          s.genID.Generate(),
				Type:        domain.LineType(expense.Type),
				Description: expense.Description,
				Amount:      money.Round2(money.ParseAmount(expense.Amount)),
				ExpenseID:   expense.ID,
			})
			expense.InvoiceID = inv.ID
			expense.UpdatedAt = now
		}
		inv.Number = sequence.Next(doc, studiodomain.NumberingKindInvoice, date.Year())
		doc.Invoices = append(doc.Invoices, inv)
		out = domain.BuildView(inv, taxConfigOf(doc), now)
		return nil
	})
	if err != nil {
		return domain.View{}, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("number", inv.Number),
	)
	return out, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.View, error) {
	invoiceID, err := parseID(req.ID)
	if err != nil {
		return domain.View{}, domain.ErrInvalidID
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			return domain.View{}, domain.ErrInvalidDate
		}
		date = &parsed
	}
	clearDue := false
	var dueDate *time.Time
	if req.DueDate != nil {
		if strings.TrimSpace(*req.DueDate) == "" {
			clearDue = true
		} else {
			parsed, err := parseDate(*req.DueDate)
			if err != nil {
				return domain.View{}, domain.ErrInvalidDate
			}
			dueDate = &parsed
		}
	}

	now := s.clk.Now()
	var out domain.View
	err = s.store.Mutate(func(doc *store.Document) error {
		inv := doc.FindInvoice(invoiceID)
		if inv == nil {
			return domain.ErrNotFound
		}
		if date != nil {
			inv.Date = *date
		}
		if clearDue {
			inv.DueDate = nil
		} else if dueDate != nil {
			inv.DueDate = dueDate
		}
		if req.Notes != nil {
			inv.Notes = *req.Notes
		}
		inv.UpdatedAt = now
		out = domain.BuildView(*inv, taxConfigOf(doc), now)
		return nil
	})
	if err != nil {
		return domain.View{}, err
	}
	return out, nil
}

// Delete removes an invoice and releases the billing reference of every
// expense attached to it. Sequence counters are never walked back, so
// the number is gone for good. Invoices with recorded payments cannot
// be deleted.
func (s *Service) Delete(ctx context.Context, id string) error {
	invoiceID, err := parseID(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	return s.store.Mutate(func(doc *store.Document) error {
		inv := doc.FindInvoice(invoiceID)
		if inv == nil {
			return domain.ErrNotFound
		}
		if len(inv.Payments) > 0 {
			return domain.ErrHasPayments
		}
		for i := range doc.Expenses {
			if doc.Expenses[i].InvoiceID == invoiceID {
				doc.Expenses[i].InvoiceID = 0
				doc.Expenses[i].UpdatedAt = s.clk.Now()
			}
		}
		kept := doc.Invoices[:0]
		for _, existing := range doc.Invoices {
			if existing.ID != invoiceID {
				kept = append(kept, existing)
			}
		}
		doc.Invoices = kept
		return nil
	})
}

func (s *Service) AddLine(ctx context.Context, invoiceID string, req domain.LineRequest) (domain.View, error) {
	id, err := parseID(invoiceID)
	if err != nil {
		return domain.View{}, domain.ErrInvalidID
	}
	line, err := s.buildLine(req)
	if err != nil {
		return domain.View{}, err
	}

	now := s.clk.Now()
	var out domain.View
	err = s.store.Mutate(func(doc *store.Document) error {
		inv := doc.FindInvoice(id)
		if inv == nil {
			return domain.ErrNotFound
		}
		inv.Lines = append(inv.Lines, line)
		inv.UpdatedAt = now
		out = domain.BuildView(*inv, taxConfigOf(doc), now)
		return nil
	})
	if err != nil {
		return domain.View{}, err
	}
	return out, nil
}

func (s *Service) RemoveLine(ctx context.Context, invoiceID, lineID string) (domain.View, error) {
	id, err := parseID(invoiceID)
	if err != nil {
		return domain.View{}, domain.ErrInvalidID
	}
	lid, err := parseID(lineID)
	if err != nil {
		return domain.View{}, domain.ErrInvalidID
	}

	now := s.clk.Now()
	var out domain.View
	err = s.store.Mutate(func(doc *store.Document) error {
		inv := doc.FindInvoice(id)
		if inv == nil {
			return domain.ErrNotFound
		}
		idx := -1
		for i := range inv.Lines {
			if inv.Lines[i].ID == lid {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.ErrLineNotFound
		}
		if expenseID := inv.Lines[idx].ExpenseID; expenseID != 0 {
			if expense := doc.FindExpense(expenseID); expense != nil {
				expense.InvoiceID = 0
				expense.UpdatedAt = now
			}
		}
		inv.Lines = append(inv.Lines[:idx], inv.Lines[idx+1:]...)
		inv.UpdatedAt = now
		out = domain.BuildView(*inv, taxConfigOf(doc), now)
		return nil
	})
	if err != nil {
		return domain.View{}, err
	}
	return out, nil
}

// AddPayment records an incassation. The requested amount is clamped to
// the open residual: an over-payment never pushes paid above totale,
// and the surplus is dropped without error. Worth an audit-log entry
// upstream, since the clamp can hide data-entry mistakes.
func (s *Service) AddPayment(ctx context.Context, invoiceID string, req domain.PaymentRequest) (domain.View, error) {
	id, err := parseID(invoiceID)
	if err != nil {
		return domain.View{}, domain.ErrInvalidID
	}

	amount := money.Round2(money.ParseAmount(req.Amount))
	if amount <= 0 {
		return domain.View{}, domain.ErrInvalidAmount
	}

	now := s.clk.Now()
	date := now
	if strings.TrimSpace(req.Date) != "" {
		date, err = parseDate(req.Date)
		if err != nil {
			return domain.View{}, domain.ErrInvalidDate
		}
	}

	var out domain.View
	err = s.store.Mutate(func(doc *store.Document) error {
		inv := doc.FindInvoice(id)
		if inv == nil {
			return domain.ErrNotFound
		}
		totals := domain.ComputeTotals(inv.Lines, taxConfigOf(doc))
		_, residuo := domain.AggregatePayments(totals.Totale, inv.Payments)
		if residuo <= 0 {
			return domain.ErrAlreadyPaid
		}
		if amount > residuo {
			amount = residuo
		}
		inv.Payments = append(inv.Payments, domain.Payment{
			ID:     s.genID.Generate(),
			Date:   date,
			Amount: amount,
		})
		inv.UpdatedAt = now
		out = domain.BuildView(*inv, taxConfigOf(doc), now)
		return nil
	})
	if err != nil {
		return domain.View{}, err
	}
	return out, nil
}

func (s *Service) RemovePayment(ctx context.Context, invoiceID, paymentID string) (domain.View, error) {
	id, err := parseID(invoiceID)
	if err != nil {
		return domain.View{}, domain.ErrInvalidID
	}
	pid, err := parseID(paymentID)
	if err != nil {
		return domain.View{}, domain.ErrInvalidID
	}

	now := s.clk.Now()
	var out domain.View
	err = s.store.Mutate(func(doc *store.Document) error {
		inv := doc.FindInvoice(id)
		if inv == nil {
			return domain.ErrNotFound
		}
		idx := -1
		for i := range inv.Payments {
			if inv.Payments[i].ID == pid {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.ErrPaymentNotFound
		}
		inv.Payments = append(inv.Payments[:idx], inv.Payments[idx+1:]...)
		inv.UpdatedAt = now
		out = domain.BuildView(*inv, taxConfigOf(doc), now)
		return nil
	})
	if err != nil {
		return domain.View{}, err
	}
	return out, nil
}

// AttachExpense bills an expense onto the invoice as one line, copying
// type, description and amount verbatim, and sets the expense's billing
// back-reference.
func (s *Service) AttachExpense(ctx context.Context, invoiceID, expenseID string) (domain.View, error) {
	id, err := parseID(invoiceID)
	if err != nil {
		return domain.View{}, domain.ErrInvalidID
	}
	eid, err := parseID(expenseID)
	if err != nil {
		return domain.View{}, domain.ErrInvalidID
	}

	now := s.clk.Now()
	var out domain.View
	err = s.store.Mutate(func(doc *store.Document) error {
		inv := doc.FindInvoice(id)
		if inv == nil {
			return domain.ErrNotFound
		}
		expense := doc.FindExpense(eid)
		if expense == nil {
			return domain.ErrExpenseNotFound
		}
		if expense.Billed() {
			return domain.ErrExpenseBilled
		}
		if expense.ClientID != inv.ClientID {
			return domain.ErrClientMismatch
		}
		inv.Lines = append(inv.Lines, domain.Line{
			ID:          s.genID.Generate(),
			Type:        domain.LineType(expense.Type),
			Description: expense.Description,
			Amount:      money.Round2(money.ParseAmount(expense.Amount)),
			ExpenseID:   expense.ID,
		})
		expense.InvoiceID = inv.ID
		expense.UpdatedAt = now
		inv.UpdatedAt = now
		out = domain.BuildView(*inv, taxConfigOf(doc), now)
		return nil
	})
	if err != nil {
		return domain.View{}, err
	}
	return out, nil
}

// Render produces the HTML document for a fully recomputed invoice.
func (s *Service) Render(ctx context.Context, invoiceID string) (string, error) {
	id, err := parseID(invoiceID)
	if err != nil {
		return "", domain.ErrInvalidID
	}

	var input render.Input
	err = s.store.View(func(doc *store.Document) error {
		inv := doc.FindInvoice(id)
		if inv == nil {
			return domain.ErrNotFound
		}
		view := domain.BuildView(*inv, taxConfigOf(doc), s.clk.Now())

		input = render.Input{
			Studio: render.StudioView{
				Name:       doc.Settings.Name,
				Address:    doc.Settings.Address,
				VATNumber:  doc.Settings.VATNumber,
				FiscalCode: doc.Settings.FiscalCode,
				Email:      doc.Settings.Email,
			},
			Invoice: view,
		}
		if client := doc.FindClient(inv.ClientID); client != nil {
			input.Client = render.ClientView{
				Name:       client.Name,
				Address:    client.Address,
				FiscalCode: client.FiscalCode,
				VATNumber:  client.VATNumber,
			}
		}
		if inv.CaseID != 0 {
			if caseFile := doc.FindCase(inv.CaseID); caseFile != nil {
				input.CaseNumber = caseFile.Number
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return s.renderer.RenderHTML(input)
}

func (s *Service) PreviewNumber(ctx context.Context) (string, error) {
	var out string
	err := s.store.View(func(doc *store.Document) error {
		out = sequence.Preview(doc, studiodomain.NumberingKindInvoice, s.clk.Now().Year())
		return nil
	})
	return out, err
}

func (s *Service) buildLine(req domain.LineRequest) (domain.Line, error) {
	lineType := domain.LineType(strings.TrimSpace(req.Type))
	if lineType == "" || lineType == "manual" {
		lineType = domain.LineTypeOnorario
	}
	if !domain.ValidLineType(lineType) {
		return domain.Line{}, domain.ErrInvalidLineType
	}
	amount := money.Round2(money.ParseAmount(req.Amount))
	if amount < 0 {
		return domain.Line{}, domain.ErrInvalidAmount
	}
	return domain.Line{
		ID:          s.genID.Generate(),
		Type:        lineType,
		Description: strings.TrimSpace(req.Description),
		Amount:      amount,
	}, nil
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
