package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"customer_extract/internal/domain/customer"
	"customer_extract/internal/domain/dataset"
	"customer_extract/pkg/logger"
)

// RecordSource loads the nested customer records.
type RecordSource interface {
	FetchCustomers(ctx context.Context) ([]customer.Customer, error)
}

// VIPSource loads the VIP customer ids.
type VIPSource interface {
	FetchVIPIDs(ctx context.Context) (customer.VIPSet, error)
}

// Sink receives the finished dataset.
type Sink interface {
	Name() string
	WriteRows(ctx context.Context, ds *dataset.Dataset) error
}

type Service struct {
	records RecordSource
	vips    VIPSource
	sinks   []Sink
	log     logger.Logger
}

func NewService(records RecordSource, vips VIPSource, log logger.Logger, sinks ...Sink) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		records: records,
		vips:    vips,
		sinks:   sinks,
		log:     log,
	}
}

// Load reads both sources. Any failure here is fatal for the run.
func (s *Service) Load(ctx context.Context) ([]customer.Customer, customer.VIPSet, error) {
	if s.records == nil {
		return nil, nil, ErrNoRecordSource
	}
	if s.vips == nil {
		return nil, nil, ErrNoVIPSource
	}

	log := s.log.WithContext(ctx)

	customers, err := s.records.FetchCustomers(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load customers: %w", err)
	}

	vips, err := s.vips.FetchVIPIDs(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load vip ids: %w", err)
	}

	log.Info("sources loaded",
		logger.Int("customers", len(customers)),
		logger.Int("vip_ids", len(vips)),
	)
	return customers, vips, nil
}

// Transform flattens the records and post-processes the rows. Malformed
// fields never fail the transformation.
func (s *Service) Transform(ctx context.Context, customers []customer.Customer, vips customer.VIPSet) *dataset.Dataset {
	start := time.Now()
	log := s.log.WithContext(ctx)

	flat := Flatten(customers, vips)

	unparsed := 0
	for i, fr := range flat {
		if !fr.Unparsed() {
			continue
		}
		unparsed++
		log.Debug("item price or quantity not parsed",
			logger.Int("row", i),
			logger.Any("price", fr.RawPrice),
			logger.Any("quantity", fr.RawQuantity),
		)
	}

	ds := PostProcess(flat)

	log.Info("dataset built",
		logger.Int("rows", ds.Len()),
		logger.Int("missing_order_ids", countMissingOrderIDs(ds)),
		logger.Int("unparsed_items", unparsed),
		logger.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return ds
}

// Extract loads both sources and transforms them.
func (s *Service) Extract(ctx context.Context) (*dataset.Dataset, error) {
	ctx = logger.ContextWithFields(ctx, logger.String("run_id", uuid.NewString()))

	customers, vips, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.Transform(ctx, customers, vips), nil
}

// Export hands ds to every configured sink in order and stops at the first
// failure.
func (s *Service) Export(ctx context.Context, ds *dataset.Dataset) error {
	for _, sink := range s.sinks {
		if err := sink.WriteRows(ctx, ds); err != nil {
			return fmt.Errorf("write rows to %s: %w", sink.Name(), err)
		}
		s.log.WithContext(ctx).Info("rows written",
			logger.String("sink", sink.Name()),
			logger.Int("rows", ds.Len()),
		)
	}
	return nil
}

func countMissingOrderIDs(ds *dataset.Dataset) int {
	n := 0
	for _, r := range ds.Rows {
		if r.OrderID == nil {
			n++
		}
	}
	return n
}
