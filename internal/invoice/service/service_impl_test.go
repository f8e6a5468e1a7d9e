package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	casedomain "github.com/studiolegale/lexora/internal/casefile/domain"
	clientdomain "github.com/studiolegale/lexora/internal/client/domain"
	"github.com/studiolegale/lexora/internal/clock"
	"github.com/studiolegale/lexora/internal/config"
	expensedomain "github.com/studiolegale/lexora/internal/expense/domain"
	"github.com/studiolegale/lexora/internal/invoice/domain"
	"github.com/studiolegale/lexora/internal/invoice/render"
	"github.com/studiolegale/lexora/internal/store"
	studiodomain "github.com/studiolegale/lexora/internal/studio/domain"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc     domain.Service
	store   *store.Store
	client  clientdomain.Client
	case1   casedomain.CaseFile
	expense expensedomain.Expense
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := zap.NewNop()
	st, err := store.New(config.Config{DataFile: filepath.Join(t.TempDir(), "data.json")}, log)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake.NewNode: %v", err)
	}

	f := &fixture{store: st}
	f.client = clientdomain.Client{ID: node.Generate(), Name: "Mario Rossi"}
	f.case1 = casedomain.CaseFile{
		ID:       node.Generate(),
		Number:   "CIV-2026-0001",
		Type:     casedomain.CaseTypeCivile,
		ClientID: f.client.ID,
		Status:   casedomain.CaseStatusAperta,
	}
	f.expense = expensedomain.Expense{
		ID:          node.Generate(),
		Type:        expensedomain.ExpenseTypeSpesa,
		Description: "Contributo unificato",
		Amount:      98,
		Date:        testNow,
		ClientID:    f.client.ID,
		CaseID:      f.case1.ID,
	}
	err = st.Mutate(func(doc *store.Document) error {
		doc.Settings = studiodomain.DefaultSettings()
		doc.Clients = append(doc.Clients, f.client)
		doc.Cases = append(doc.Cases, f.case1)
		doc.Expenses = append(doc.Expenses, f.expense)
		return nil
	})
	if err != nil {
		t.Fatalf("seed document: %v", err)
	}

	f.svc = NewService(Params{
		Store:    st,
		Log:      log,
		GenID:    node,
		Clock:    clock.Fixed{At: testNow},
		Renderer: render.NewRenderer(),
	})
	return f
}

func (f *fixture) create(t *testing.T, req domain.CreateRequest) domain.View {
	t.Helper()
	if req.ClientID == "" {
		req.ClientID = f.client.ID.String()
	}
	view, err := f.svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return view
}

func TestCreateAssignsSequentialNumbers(t *testing.T) {
	f := newFixture(t)

	first := f.create(t, domain.CreateRequest{
		Lines: []domain.LineRequest{{Type: "onorario", Description: "Assistenza", Amount: 100}},
	})
	if first.Number != "FT-2026-0001" {
		t.Fatalf("first number = %q, want FT-2026-0001", first.Number)
	}

	second := f.create(t, domain.CreateRequest{
		Lines: []domain.LineRequest{{Amount: "1.500,00"}},
	})
	if second.Number != "FT-2026-0002" {
		t.Fatalf("second number = %q, want FT-2026-0002", second.Number)
	}
	if second.Lines[0].Amount != 1500.00 {
		t.Fatalf("formatted amount = %v, want 1500.00", second.Lines[0].Amount)
	}
	if second.Lines[0].Type != domain.LineTypeOnorario {
		t.Fatalf("default line type = %v, want onorario", second.Lines[0].Type)
	}
}

func TestCreateNumberFollowsInvoiceDateYear(t *testing.T) {
	f := newFixture(t)

	view := f.create(t, domain.CreateRequest{
		Date:  "2025-12-31",
		Lines: []domain.LineRequest{{Amount: 100}},
	})
	if view.Number != "FT-2025-0001" {
		t.Fatalf("number = %q, want FT-2025-0001", view.Number)
	}
}

func TestCreateComputesTotals(t *testing.T) {
	f := newFixture(t)

	view := f.create(t, domain.CreateRequest{
		Lines: []domain.LineRequest{
			{Type: "onorario", Amount: 100},
			{Type: "spesa", Amount: 50},
		},
	})

	if view.Totals.Totale != 162.32 {
		t.Fatalf("totale = %v, want 162.32", view.Totals.Totale)
	}
	if view.Status != domain.StatusEmessa {
		t.Fatalf("status = %v, want emessa", view.Status)
	}
	if view.Residuo != 162.32 {
		t.Fatalf("residuo = %v, want 162.32", view.Residuo)
	}
}

func TestCreateRejectsCaseOfAnotherClient(t *testing.T) {
	f := newFixture(t)

	other := clientdomain.Client{ID: snowflake.ID(999999), Name: "Altro"}
	if err := f.store.Mutate(func(doc *store.Document) error {
		doc.Clients = append(doc.Clients, other)
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	_, err := f.svc.Create(context.Background(), domain.CreateRequest{
		ClientID: other.ID.String(),
		CaseID:   f.case1.ID.String(),
		Lines:    []domain.LineRequest{{Amount: 100}},
	})
	if !errors.Is(err, domain.ErrClientMismatch) {
		t.Fatalf("err = %v, want ErrClientMismatch", err)
	}
}

func TestCreateWithExpenseBillsIt(t *testing.T) {
	f := newFixture(t)

	view := f.create(t, domain.CreateRequest{
		ExpenseIDs: []string{f.expense.ID.String()},
	})

	if len(view.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(view.Lines))
	}
	line := view.Lines[0]
	if line.Type != domain.LineTypeSpesa || line.Amount != 98.00 || line.ExpenseID != f.expense.ID {
		t.Fatalf("billed line = %+v", line)
	}

	err := f.store.View(func(doc *store.Document) error {
		if !doc.FindExpense(f.expense.ID).Billed() {
			t.Fatal("expense should carry the invoice back-reference")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// A billed expense cannot be attached a second time.
	second := f.create(t, domain.CreateRequest{Lines: []domain.LineRequest{{Amount: 10}}})
	_, err = f.svc.AttachExpense(context.Background(), second.ID.String(), f.expense.ID.String())
	if !errors.Is(err, domain.ErrExpenseBilled) {
		t.Fatalf("err = %v, want ErrExpenseBilled", err)
	}
}

func TestCreateRejectsDuplicateExpenseIDs(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), domain.CreateRequest{
		ClientID:   f.client.ID.String(),
		ExpenseIDs: []string{f.expense.ID.String(), f.expense.ID.String()},
	})
	if !errors.Is(err, domain.ErrExpenseBilled) {
		t.Fatalf("err = %v, want ErrExpenseBilled", err)
	}

	err = f.store.View(func(doc *store.Document) error {
		if doc.FindExpense(f.expense.ID).Billed() {
			t.Fatal("rejected create must leave the expense unbilled")
		}
		if len(doc.Invoices) != 0 {
			t.Fatalf("invoices = %d, want 0", len(doc.Invoices))
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestViewsDetachFromStoredInvoice(t *testing.T) {
	f := newFixture(t)
	inv := f.create(t, domain.CreateRequest{
		Lines: []domain.LineRequest{{Amount: 100}, {Type: "spesa", Amount: 50}},
	})

	// Returned views are serialized outside the store lock; scribbling
	// on one must never reach the stored record.
	view, err := f.svc.GetByID(context.Background(), inv.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	view.Lines[0].Amount = 9999
	view.Lines = view.Lines[:1]

	again, err := f.svc.GetByID(context.Background(), inv.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if len(again.Lines) != 2 || again.Lines[0].Amount != 100.00 {
		t.Fatalf("stored invoice changed through a returned view: %+v", again.Lines)
	}

	// Element shifts inside the store must not show up in views handed
	// out earlier.
	before, err := f.svc.GetByID(context.Background(), inv.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.RemoveLine(context.Background(), inv.ID.String(), inv.Lines[0].ID.String()); err != nil {
		t.Fatal(err)
	}
	if len(before.Lines) != 2 || before.Lines[0].Amount != 100.00 {
		t.Fatalf("earlier view mutated by a later removal: %+v", before.Lines)
	}
}

func TestCreateFailedValidationDrawsNoNumber(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), domain.CreateRequest{
		ClientID:   f.client.ID.String(),
		ExpenseIDs: []string{"12345"},
	})
	if !errors.Is(err, domain.ErrExpenseNotFound) {
		t.Fatalf("err = %v, want ErrExpenseNotFound", err)
	}

	view := f.create(t, domain.CreateRequest{Lines: []domain.LineRequest{{Amount: 10}}})
	if view.Number != "FT-2026-0001" {
		t.Fatalf("number = %q, the failed create must not have consumed it", view.Number)
	}
}

func TestAddPaymentClampsToResidual(t *testing.T) {
	f := newFixture(t)
	inv := f.create(t, domain.CreateRequest{
		Lines: []domain.LineRequest{{Amount: 100}, {Type: "spesa", Amount: 50}},
	})

	view, err := f.svc.AddPayment(context.Background(), inv.ID.String(), domain.PaymentRequest{Amount: 200})
	if err != nil {
		t.Fatalf("AddPayment: %v", err)
	}
	if view.Paid != 162.32 {
		t.Fatalf("paid = %v, want clamped 162.32", view.Paid)
	}
	if view.Status != domain.StatusPagata {
		t.Fatalf("status = %v, want pagata", view.Status)
	}

	_, err = f.svc.AddPayment(context.Background(), inv.ID.String(), domain.PaymentRequest{Amount: 1})
	if !errors.Is(err, domain.ErrAlreadyPaid) {
		t.Fatalf("err = %v, want ErrAlreadyPaid", err)
	}
}

func TestAddPaymentPartial(t *testing.T) {
	f := newFixture(t)
	inv := f.create(t, domain.CreateRequest{
		Lines: []domain.LineRequest{{Amount: 100}, {Type: "spesa", Amount: 50}},
	})

	if _, err := f.svc.AddPayment(context.Background(), inv.ID.String(), domain.PaymentRequest{Amount: 50}); err != nil {
		t.Fatal(err)
	}
	view, err := f.svc.AddPayment(context.Background(), inv.ID.String(), domain.PaymentRequest{Amount: "60,00"})
	if err != nil {
		t.Fatal(err)
	}
	if view.Paid != 110.00 || view.Residuo != 52.32 {
		t.Fatalf("paid/residuo = %v/%v, want 110.00/52.32", view.Paid, view.Residuo)
	}
	if view.Status != domain.StatusParziale {
		t.Fatalf("status = %v, want parziale", view.Status)
	}
}

func TestAddPaymentRejectsNonPositive(t *testing.T) {
	f := newFixture(t)
	inv := f.create(t, domain.CreateRequest{Lines: []domain.LineRequest{{Amount: 100}}})

	for _, amount := range []any{0, -5, "abc"} {
		_, err := f.svc.AddPayment(context.Background(), inv.ID.String(), domain.PaymentRequest{Amount: amount})
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("amount %v: err = %v, want ErrInvalidAmount", amount, err)
		}
	}
}

func TestDeleteReleasesExpensesAndKeepsCounter(t *testing.T) {
	f := newFixture(t)
	inv := f.create(t, domain.CreateRequest{ExpenseIDs: []string{f.expense.ID.String()}})

	if err := f.svc.Delete(context.Background(), inv.ID.String()); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	err := f.store.View(func(doc *store.Document) error {
		if doc.FindExpense(f.expense.ID).Billed() {
			t.Fatal("deleting the invoice should release the expense")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// The counter never walks back; the next invoice skips the number.
	next := f.create(t, domain.CreateRequest{Lines: []domain.LineRequest{{Amount: 10}}})
	if next.Number != "FT-2026-0002" {
		t.Fatalf("number after delete = %q, want FT-2026-0002", next.Number)
	}
}

func TestDeleteRefusedWithPayments(t *testing.T) {
	f := newFixture(t)
	inv := f.create(t, domain.CreateRequest{Lines: []domain.LineRequest{{Amount: 100}}})
	if _, err := f.svc.AddPayment(context.Background(), inv.ID.String(), domain.PaymentRequest{Amount: 10}); err != nil {
		t.Fatal(err)
	}

	if err := f.svc.Delete(context.Background(), inv.ID.String()); !errors.Is(err, domain.ErrHasPayments) {
		t.Fatalf("err = %v, want ErrHasPayments", err)
	}
}

func TestRemoveLineReleasesExpense(t *testing.T) {
	f := newFixture(t)
	inv := f.create(t, domain.CreateRequest{ExpenseIDs: []string{f.expense.ID.String()}})

	view, err := f.svc.RemoveLine(context.Background(), inv.ID.String(), inv.Lines[0].ID.String())
	if err != nil {
		t.Fatalf("RemoveLine: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("lines = %d, want 0", len(view.Lines))
	}

	err = f.store.View(func(doc *store.Document) error {
		if doc.FindExpense(f.expense.ID).Billed() {
			t.Fatal("removing the line should release the expense")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestOverdueFollowsDueDate(t *testing.T) {
	f := newFixture(t)
	inv := f.create(t, domain.CreateRequest{
		DueDate: "2026-03-01",
		Lines:   []domain.LineRequest{{Amount: 100}},
	})

	view, err := f.svc.GetByID(context.Background(), inv.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if !view.Overdue {
		t.Fatal("unpaid invoice due 2026-03-01 should be overdue on 2026-03-15")
	}

	if _, err := f.svc.AddPayment(context.Background(), inv.ID.String(), domain.PaymentRequest{Amount: 1000}); err != nil {
		t.Fatal(err)
	}
	view, err = f.svc.GetByID(context.Background(), inv.ID.String())
	if err != nil {
		t.Fatal(err)
	}
	if view.Overdue {
		t.Fatal("settled invoice must not be overdue")
	}
}

func TestPreviewNumberHasNoSideEffect(t *testing.T) {
	f := newFixture(t)

	preview, err := f.svc.PreviewNumber(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if preview != "FT-2026-0001" {
		t.Fatalf("preview = %q, want FT-2026-0001", preview)
	}

	again, _ := f.svc.PreviewNumber(context.Background())
	if again != preview {
		t.Fatalf("second preview = %q, want %q", again, preview)
	}

	view := f.create(t, domain.CreateRequest{Lines: []domain.LineRequest{{Amount: 10}}})
	if view.Number != preview {
		t.Fatalf("created number = %q, want previewed %q", view.Number, preview)
	}
}

func TestRenderContainsTotalsAndParties(t *testing.T) {
	f := newFixture(t)
	inv := f.create(t, domain.CreateRequest{
		CaseID: f.case1.ID.String(),
		Lines:  []domain.LineRequest{{Description: "Assistenza giudiziale", Amount: 100}, {Type: "spesa", Amount: 50}},
	})

	html, err := f.svc.Render(context.Background(), inv.ID.String())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{
		"FT-2026-0001",
		"Mario Rossi",
		"CIV-2026-0001",
		"Assistenza giudiziale",
		"€ 162,32",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered HTML missing %q", want)
		}
	}
}

func TestUpdateClearsDueDate(t *testing.T) {
	f := newFixture(t)
	inv := f.create(t, domain.CreateRequest{
		DueDate: "2026-04-30",
		Lines:   []domain.LineRequest{{Amount: 100}},
	})

	empty := ""
	view, err := f.svc.Update(context.Background(), domain.UpdateRequest{ID: inv.ID.String(), DueDate: &empty})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if view.DueDate != nil {
		t.Fatalf("dueDate = %v, want cleared", view.DueDate)
	}
}
