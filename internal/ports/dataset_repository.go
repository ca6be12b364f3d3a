package ports

import (
	"context"
	"errors"
	"io"
	"medresilient-service/internal/domain"
)

// Reload failures callers can report back as bad input.
var (
	ErrUnknownDataset = errors.New("unknown dataset type")
	ErrInvalidCSV     = errors.New("invalid csv")
)

// Port: a boundary for reading the hospital/provider/order dataset.
// Current returns an immutable generation; callers must not mutate it.
type DatasetRepository interface {
	Current(ctx context.Context) (*domain.Dataset, error)
}

// Port: wholesale replacement of one entity collection from CSV.
// Replacement is all-or-nothing: on error the previous generation stays visible.
type DatasetReloader interface {
	Reload(ctx context.Context, kind domain.DatasetKind, r io.Reader) (int, error)
}
