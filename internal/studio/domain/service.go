package domain

import (
	"context"
	"errors"
)

type UpdateRequest struct {
	Name       *string `json:"name"`
	Address    *string `json:"address"`
	VATNumber  *string `json:"vatNumber"`
	FiscalCode *string `json:"fiscalCode"`
	Email      *string `json:"email"`

	CassaPerc    *float64 `json:"cassaPerc"`
	IvaPerc      *float64 `json:"ivaPerc"`
	RitenutaPerc *float64 `json:"ritenutaPerc"`
	Bollo        *float64 `json:"bollo"`

	ManualCaseNumbers *bool `json:"manualCaseNumbers"`
}

// NumberingUpdateRequest reconfigures one sequence family. NextNumber
// forces the next draw to yield the requested value; a request that
// would push the stored counter below zero is ignored, not rejected.
type NumberingUpdateRequest struct {
	Prefix     *string `json:"prefix"`
	Separator  *string `json:"separator"`
	Pad        *int    `json:"pad"`
	NextNumber *int64  `json:"nextNumber"`
}

type Service interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, req UpdateRequest) (Settings, error)
	UpdateNumbering(ctx context.Context, kind string, req NumberingUpdateRequest) (Settings, error)
}

var (
	ErrInvalidPercentage    = errors.New("invalid_percentage")
	ErrInvalidBollo         = errors.New("invalid_bollo")
	ErrInvalidPad           = errors.New("invalid_pad")
	ErrInvalidPrefix        = errors.New("invalid_prefix")
	ErrUnknownNumberingKind = errors.New("unknown_numbering_kind")
)
