package seed

import (
	"errors"

	"github.com/studiolegale/lexora/internal/store"
	studiodomain "github.com/studiolegale/lexora/internal/studio/domain"
	"go.uber.org/zap"
)

// EnsureDefaults seeds a fresh data file with the default office
// settings. An existing file keeps whatever it has; only missing pieces
// are filled in, so upgrades that add numbering families work on old
// documents too.
func EnsureDefaults(st *store.Store, log *zap.Logger) error {
	if st == nil {
		return errors.New("seed store handle is required")
	}
	log = log.Named("seed")

	return st.Mutate(func(doc *store.Document) error {
		defaults := studiodomain.DefaultSettings()

		if doc.Settings.Name == "" {
			doc.Settings.Name = defaults.Name
		}
		if doc.Settings.Numbering == nil {
			doc.Settings.CassaPerc = defaults.CassaPerc
			doc.Settings.IvaPerc = defaults.IvaPerc
			doc.Settings.RitenutaPerc = defaults.RitenutaPerc
			doc.Settings.Bollo = defaults.Bollo
			doc.Settings.Numbering = map[studiodomain.NumberingKind]studiodomain.NumberingFamily{}
			log.Info("seeded default settings")
		}
		for kind, family := range defaults.Numbering {
			if _, ok := doc.Settings.Numbering[kind]; !ok {
				doc.Settings.Numbering[kind] = family
				log.Info("seeded numbering family", zap.String("kind", string(kind)))
			}
		}
		if doc.Counters == nil {
			doc.Counters = map[string]int64{}
		}
		return nil
	})
}
