// Package store persists the whole office state as a single JSON
// document, rewritten in full after every mutation. That is the storage
// model this system is built around: there is no query engine and no
// transaction log, and the process-wide mutex below only serializes
// access within one process. Running several processes against the same
// data file is not supported.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bwmarrin/snowflake"
	casedomain "github.com/studiolegale/lexora/internal/casefile/domain"
	clientdomain "github.com/studiolegale/lexora/internal/client/domain"
	"github.com/studiolegale/lexora/internal/config"
	expensedomain "github.com/studiolegale/lexora/internal/expense/domain"
	invoicedomain "github.com/studiolegale/lexora/internal/invoice/domain"
	studiodomain "github.com/studiolegale/lexora/internal/studio/domain"
	"go.uber.org/zap"
)

// Document is the full persisted state.
type Document struct {
	Settings studiodomain.Settings   `json:"settings"`
	Clients  []clientdomain.Client   `json:"clients"`
	Cases    []casedomain.CaseFile   `json:"cases"`
	Expenses []expensedomain.Expense `json:"expenses"`
	Invoices []invoicedomain.Invoice `json:"invoices"`
	Counters map[string]int64        `json:"counters"`
}

func (d *Document) FindClient(id snowflake.ID) *clientdomain.Client {
	for i := range d.Clients {
		if d.Clients[i].ID == id {
			return &d.Clients[i]
		}
	}
	return nil
}

func (d *Document) FindCase(id snowflake.ID) *casedomain.CaseFile {
	for i := range d.Cases {
		if d.Cases[i].ID == id {
			return &d.Cases[i]
		}
	}
	return nil
}

func (d *Document) FindExpense(id snowflake.ID) *expensedomain.Expense {
	for i := range d.Expenses {
		if d.Expenses[i].ID == id {
			return &d.Expenses[i]
		}
	}
	return nil
}

func (d *Document) FindInvoice(id snowflake.ID) *invoicedomain.Invoice {
	for i := range d.Invoices {
		if d.Invoices[i].ID == id {
			return &d.Invoices[i]
		}
	}
	return nil
}

// Store owns the in-memory document and its file. All access goes
// through View or Mutate so reads and read-modify-write cycles stay
// serialized.
type Store struct {
	path string
	log  *zap.Logger

	mu  sync.Mutex
	doc *Document
}

// New loads the document from the configured data file, or starts from
// an empty one when the file does not exist yet.
func New(cfg config.Config, log *zap.Logger) (*Store, error) {
	s := &Store{
		path: cfg.DataFile,
		log:  log.Named("store"),
		doc: &Document{
			Counters: map[string]int64{},
		},
	}

	raw, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.log.Info("data file not found, starting empty", zap.String("path", s.path))
	case err != nil:
		return nil, fmt.Errorf("read data file: %w", err)
	default:
		if err := json.Unmarshal(raw, s.doc); err != nil {
			return nil, fmt.Errorf("parse data file %s: %w", s.path, err)
		}
		if s.doc.Counters == nil {
			s.doc.Counters = map[string]int64{}
		}
	}
	return s, nil
}

// View runs fn against the document under the lock. fn must not modify
// the document, and anything it hands out must be a detached copy:
// maps and slices that alias the document would be read outside the
// lock while a later Mutate writes them.
func (s *Store) View(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.doc)
}

// Mutate runs fn against the document under the lock and rewrites the
// data file when fn succeeds. fn must do all validation before touching
// the document: on error nothing is persisted, but in-memory changes
// made before the error are not rolled back.
func (s *Store) Mutate(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.doc); err != nil {
		return err
	}
	return s.persistLocked()
}

func (s *Store) persistLocked() error {
	raw, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".lexora-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}
