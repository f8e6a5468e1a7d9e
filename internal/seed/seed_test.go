package seed

import (
	"path/filepath"
	"testing"

	"github.com/studiolegale/lexora/internal/config"
	"github.com/studiolegale/lexora/internal/store"
	studiodomain "github.com/studiolegale/lexora/internal/studio/domain"
	"go.uber.org/zap"
)

func TestEnsureDefaultsOnFreshStore(t *testing.T) {
	log := zap.NewNop()
	st, err := store.New(config.Config{DataFile: filepath.Join(t.TempDir(), "data.json")}, log)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}

	if err := EnsureDefaults(st, log); err != nil {
		t.Fatalf("EnsureDefaults: %v", err)
	}

	err = st.View(func(doc *store.Document) error {
		if doc.Settings.IvaPerc != 22 || doc.Settings.CassaPerc != 4 {
			t.Fatalf("settings = %+v, want defaults", doc.Settings)
		}
		if len(doc.Settings.Numbering) != 3 {
			t.Fatalf("numbering families = %d, want 3", len(doc.Settings.Numbering))
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestEnsureDefaultsKeepsExistingValues(t *testing.T) {
	log := zap.NewNop()
	st, err := store.New(config.Config{DataFile: filepath.Join(t.TempDir(), "data.json")}, log)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	err = st.Mutate(func(doc *store.Document) error {
		doc.Settings = studiodomain.DefaultSettings()
		doc.Settings.Name = "Studio Legale Bianchi"
		doc.Settings.IvaPerc = 10
		delete(doc.Settings.Numbering, studiodomain.NumberingKindPenale)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := EnsureDefaults(st, log); err != nil {
		t.Fatalf("EnsureDefaults: %v", err)
	}

	err = st.View(func(doc *store.Document) error {
		if doc.Settings.Name != "Studio Legale Bianchi" {
			t.Fatalf("name = %q, existing value must survive", doc.Settings.Name)
		}
		if doc.Settings.IvaPerc != 10 {
			t.Fatalf("ivaPerc = %v, existing value must survive", doc.Settings.IvaPerc)
		}
		// The missing family is backfilled.
		if _, ok := doc.Settings.Numbering[studiodomain.NumberingKindPenale]; !ok {
			t.Fatal("penale family should be backfilled")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
