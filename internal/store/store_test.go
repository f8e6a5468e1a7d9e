package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	clientdomain "github.com/studiolegale/lexora/internal/client/domain"
	"github.com/studiolegale/lexora/internal/config"
	invoicedomain "github.com/studiolegale/lexora/internal/invoice/domain"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := New(config.Config{DataFile: path}, zap.NewNop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestStoreStartsEmptyWithoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexora.json")
	s := newTestStore(t, path)

	err := s.View(func(doc *Document) error {
		if len(doc.Invoices) != 0 || len(doc.Clients) != 0 {
			t.Fatalf("expected empty document, got %d invoices %d clients", len(doc.Invoices), len(doc.Clients))
		}
		if doc.Counters == nil {
			t.Fatal("counters map must be initialized")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("store must not create the data file before the first mutation")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexora.json")
	s := newTestStore(t, path)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	err := s.Mutate(func(doc *Document) error {
		doc.Clients = append(doc.Clients, clientdomain.Client{
			ID: 1001, Name: "Rossi SRL", CreatedAt: now, UpdatedAt: now,
		})
		doc.Invoices = append(doc.Invoices, invoicedomain.Invoice{
			ID:       2001,
			Number:   "FT-2026-0001",
			ClientID: 1001,
			Date:     now,
			Lines: []invoicedomain.Line{
				{ID: 3001, Type: invoicedomain.LineTypeOnorario, Description: "Consulenza", Amount: 100},
			},
		})
		doc.Counters["invoice_2026"] = 1
		return nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}

	reopened := newTestStore(t, path)
	err = reopened.View(func(doc *Document) error {
		if len(doc.Clients) != 1 || doc.Clients[0].Name != "Rossi SRL" {
			t.Fatalf("client did not survive round trip: %+v", doc.Clients)
		}
		inv := doc.FindInvoice(2001)
		if inv == nil {
			t.Fatal("invoice did not survive round trip")
		}
		if inv.Number != "FT-2026-0001" || len(inv.Lines) != 1 || inv.Lines[0].Amount != 100 {
			t.Fatalf("invoice fields lost: %+v", inv)
		}
		if doc.Counters["invoice_2026"] != 1 {
			t.Fatalf("counter lost: %v", doc.Counters)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestMutateErrorDoesNotPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexora.json")
	s := newTestStore(t, path)

	wantErr := os.ErrInvalid
	if err := s.Mutate(func(doc *Document) error { return wantErr }); err != wantErr {
		t.Fatalf("expected callback error, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("failed mutation must not write the data file")
	}
}
