package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/studiolegale/lexora/internal/clock"
	"github.com/studiolegale/lexora/internal/client/domain"
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
		log:   p.Log.Named("client.service"),
		genID: p.GenID,
		clk:   p.Clock,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Client, error) {
	var out []domain.Client
	err := s.store.View(func(doc *store.Document) error {
		out = append([]domain.Client(nil), doc.Clients...)
		return nil
	})
	return out, err
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Client, error) {
	clientID, err := parseID(id)
	if err != nil {
		return domain.Client{}, domain.ErrInvalidID
	}

	var out domain.Client
	err = s.store.View(func(doc *store.Document) error {
		found := doc.FindClient(clientID)
		if found == nil {
			return domain.ErrNotFound
		}
		out = *found
		return nil
	})
	return out, err
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (domain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Client{}, domain.ErrInvalidName
	}

	now := s.clk.Now()
	client := domain.Client{
		ID:         s.genID.Generate(),
		Name:       name,
		FiscalCode: strings.TrimSpace(req.FiscalCode),
		VATNumber:  strings.TrimSpace(req.VATNumber),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Address:    strings.TrimSpace(req.Address),
		Notes:      req.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.store.Mutate(func(doc *store.Document) error {
		doc.Clients = append(doc.Clients, client)
		return nil
	})
	if err != nil {
		return domain.Client{}, err
	}
	return client, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (domain.Client, error) {
	clientID, err := parseID(req.ID)
	if err != nil {
		return domain.Client{}, domain.ErrInvalidID
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return domain.Client{}, domain.ErrInvalidName
	}

	var out domain.Client
	err = s.store.Mutate(func(doc *store.Document) error {
		client := doc.FindClient(clientID)
		if client == nil {
			return domain.ErrNotFound
		}
		applyString(&client.Name, req.Name)
		applyString(&client.FiscalCode, req.FiscalCode)
		applyString(&client.VATNumber, req.VATNumber)
		applyString(&client.Email, req.Email)
		applyString(&client.Phone, req.Phone)
		applyString(&client.Address, req.Address)
		if req.Notes != nil {
			client.Notes = *req.Notes
		}
		client.UpdatedAt = s.clk.Now()
		out = *client
		return nil
	})
	if err != nil {
		return domain.Client{}, err
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	clientID, err := parseID(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	return s.store.Mutate(func(doc *store.Document) error {
		if doc.FindClient(clientID) == nil {
			return domain.ErrNotFound
		}
		for i := range doc.Invoices {
			if doc.Invoices[i].ClientID == clientID {
				return domain.ErrClientReferenced
			}
		}
		for i := range doc.Cases {
			if doc.Cases[i].ClientID == clientID {
				return domain.ErrClientReferenced
			}
		}
		kept := doc.Clients[:0]
		for _, c := range doc.Clients {
			if c.ID != clientID {
				kept = append(kept, c)
			}
		}
		doc.Clients = kept
		return nil
	})
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}
