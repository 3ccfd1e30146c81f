package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"customer_extract/internal/config"
	"customer_extract/internal/domain/customer"
	"customer_extract/pkg/logger"
)

// MessageReader is the subset of *kafkago.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafkago.Message, error)
	Close() error
}

// OffsetsFunc reports the first offset and the high watermark of the
// partition being read.
type OffsetsFunc func(ctx context.Context) (first, last int64, err error)

// CustomerConsumer reads one customer JSON object per message from partition
// 0 of the customer topic. A fetch stops at the high watermark seen when it
// starts, so the topic behaves like a bounded record file.
type CustomerConsumer struct {
	reader  MessageReader
	offsets OffsetsFunc
	timeout time.Duration
	logger  logger.Logger
}

func NewCustomerConsumer(cfg config.KafkaConfig, log logger.Logger) (*CustomerConsumer, error) {
	if cfg.CustomerTopic == "" {
		return nil, ErrEmptyTopic
	}
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   cfg.Brokers,
		Topic:     cfg.CustomerTopic,
		Partition: 0,
		MinBytes:  1e3,
		MaxBytes:  1e6,
	})

	offsets := func(ctx context.Context) (int64, int64, error) {
		conn, err := kafkago.DialLeader(ctx, "tcp", cfg.Brokers[0], cfg.CustomerTopic, 0)
		if err != nil {
			return 0, 0, err
		}
		defer conn.Close()
		return conn.ReadOffsets()
	}

	return newCustomerConsumer(reader, offsets, time.Duration(cfg.ReadTimeoutMS)*time.Millisecond, log), nil
}

func newCustomerConsumer(reader MessageReader, offsets OffsetsFunc, timeout time.Duration, log logger.Logger) *CustomerConsumer {
	if log == nil {
		log = logger.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CustomerConsumer{reader: reader, offsets: offsets, timeout: timeout, logger: log}
}

func (c *CustomerConsumer) FetchCustomers(ctx context.Context) ([]customer.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	first, last, err := c.offsets(ctx)
	if err != nil {
		return nil, fmt.Errorf("read offsets: %w", err)
	}

	customers := make([]customer.Customer, 0)
	for last > first {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return nil, fmt.Errorf("read message #%d: %w", len(customers), err)
		}

		var cust customer.Customer
		if err := json.Unmarshal(msg.Value, &cust); err != nil {
			return nil, fmt.Errorf("decode message at offset %d: %w", msg.Offset, err)
		}
		customers = append(customers, cust)

		if msg.Offset >= last-1 {
			break
		}
	}

	c.logger.Info("Customers consumed",
		logger.Int("customers", len(customers)),
		logger.Int64("high_watermark", last),
	)
	return customers, nil
}

func (c *CustomerConsumer) Close() {
	_ = c.reader.Close()
}
