package kafka

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"customer_extract/internal/config"
	"customer_extract/internal/domain/dataset"
	"customer_extract/pkg/logger"
)

// RowEncoder turns one row into a message payload.
type RowEncoder interface {
	EncodeRow(row dataset.Row) ([]byte, error)
}

// RowProducer publishes every dataset row as one Kafka record.
type RowProducer struct {
	client  *kgo.Client
	topic   string
	encoder RowEncoder
	logger  logger.Logger
}

func NewRowProducer(cfg config.KafkaConfig, encoder RowEncoder, log logger.Logger) (*RowProducer, error) {
	if cfg.RowTopic == "" {
		return nil, ErrEmptyTopic
	}
	if log == nil {
		log = logger.NewNop()
	}

	log.Info("Creating Kafka producer",
		logger.Any("brokers", cfg.Brokers),
		logger.String("topic", cfg.RowTopic),
	)

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.RowTopic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return &RowProducer{
		client:  client,
		topic:   cfg.RowTopic,
		encoder: encoder,
		logger:  log,
	}, nil
}

func (p *RowProducer) Name() string {
	return "kafka"
}

// WriteRows encodes all rows first and then produces them in one
// synchronous batch. Rows are keyed by order id so an order's items land on
// one partition; rows without an order id get a random key.
func (p *RowProducer) WriteRows(ctx context.Context, ds *dataset.Dataset) error {
	if ds.Len() == 0 {
		return nil
	}

	now := time.Now().UTC()
	recs := make([]*kgo.Record, 0, ds.Len())
	for i, row := range ds.Rows {
		payload, err := p.encoder.EncodeRow(row)
		if err != nil {
			return fmt.Errorf("encode row #%d: %w", i, err)
		}
		if len(payload) == 0 {
			return fmt.Errorf("encode row #%d: payload is empty", i)
		}
		recs = append(recs, &kgo.Record{
			Topic:     p.topic,
			Key:       rowKey(row),
			Value:     payload,
			Timestamp: now,
		})
	}

	if p.client == nil {
		return ErrProducerClosed
	}

	if err := p.client.ProduceSync(ctx, recs...).FirstErr(); err != nil {
		p.logger.Error("Failed to publish rows",
			logger.String("topic", p.topic),
			logger.Int("rows", len(recs)),
			logger.Error(err),
		)
		return fmt.Errorf("publish to kafka topic %s: %w", p.topic, err)
	}

	p.logger.Debug("Published rows", logger.String("topic", p.topic), logger.Int("rows", len(recs)))
	return nil
}

func (p *RowProducer) Close(ctx context.Context) error {
	p.logger.Info("Closing Kafka producer", logger.String("topic", p.topic))
	if p.client != nil {
		if err := p.client.Flush(ctx); err != nil {
			return err
		}
		p.client.Close()
		p.client = nil
	}
	return nil
}

func rowKey(row dataset.Row) []byte {
	if row.OrderID != nil {
		return []byte(strconv.FormatInt(*row.OrderID, 10))
	}
	return []byte(uuid.NewString())
}
