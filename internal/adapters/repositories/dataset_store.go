package repositories

import (
	"context"
	"fmt"
	"io"
	"log"
	"medresilient-service/internal/domain"
	"medresilient-service/internal/ports"
	"os"
	"sync"
	"sync/atomic"
)

// DatasetStore serves the in-memory dataset as an atomically swapped immutable snapshot.
// Readers never block; reloads are serialized so concurrent uploads of different
// collections do not drop each other's changes.
type DatasetStore struct {
	current  atomic.Pointer[domain.Dataset]
	reloadMu sync.Mutex
}

func NewDatasetStore(initial *domain.Dataset) *DatasetStore {
	if initial == nil {
		initial = domain.NewDataset(0, nil, nil, nil)
	}
	s := &DatasetStore{}
	s.current.Store(initial)
	return s
}

func (s *DatasetStore) Current(ctx context.Context) (*domain.Dataset, error) {
	return s.current.Load(), nil
}

// Reload parses r completely and, only on success, publishes a new generation
// with the named collection replaced. It returns the number of records loaded.
func (s *DatasetStore) Reload(ctx context.Context, kind domain.DatasetKind, r io.Reader) (int, error) {
	var apply func(*domain.Dataset) *domain.Dataset
	var n int

	switch kind {
	case domain.DatasetHospitals:
		hospitals, err := ParseHospitals(r)
		if err != nil {
			return 0, err
		}
		n = len(hospitals)
		apply = func(d *domain.Dataset) *domain.Dataset { return d.WithHospitals(hospitals) }
	case domain.DatasetProviders:
		providers, err := ParseProviders(r)
		if err != nil {
			return 0, err
		}
		n = len(providers)
		apply = func(d *domain.Dataset) *domain.Dataset { return d.WithProviders(providers) }
	case domain.DatasetOrders:
		orders, err := ParseOrders(r)
		if err != nil {
			return 0, err
		}
		n = len(orders)
		apply = func(d *domain.Dataset) *domain.Dataset { return d.WithOrders(orders) }
	default:
		return 0, fmt.Errorf("reload %q: %w", kind, ports.ErrUnknownDataset)
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	next := apply(s.current.Load())
	s.current.Store(next)

	log.Printf("dataset reloaded kind=%s records=%d generation=%d", kind, n, next.Generation)
	return n, nil
}

type DatasetFiles struct {
	Hospitals string
	Providers string
	Orders    string
}

// LoadFromFiles builds the initial dataset generation from the three CSV files.
func LoadFromFiles(files DatasetFiles) (*domain.Dataset, error) {
	var hospitals []*domain.Hospital
	var providers []*domain.Provider
	var orders []*domain.Order

	if err := parseFile(files.Hospitals, func(r io.Reader) (err error) {
		hospitals, err = ParseHospitals(r)
		return err
	}); err != nil {
		return nil, err
	}
	if err := parseFile(files.Providers, func(r io.Reader) (err error) {
		providers, err = ParseProviders(r)
		return err
	}); err != nil {
		return nil, err
	}
	if err := parseFile(files.Orders, func(r io.Reader) (err error) {
		orders, err = ParseOrders(r)
		return err
	}); err != nil {
		return nil, err
	}

	log.Printf("dataset loaded hospitals=%d providers=%d orders=%d", len(hospitals), len(providers), len(orders))
	return domain.NewDataset(1, hospitals, providers, orders), nil
}

func parseFile(path string, parse func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load dataset: open %q: %w", path, err)
	}
	defer f.Close()

	if err := parse(f); err != nil {
		return fmt.Errorf("load dataset %q: %w", path, err)
	}
	return nil
}
