package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"customer_extract/internal/application/extract"
	"customer_extract/internal/config"
	"customer_extract/internal/infrastructure/encoding/avro"
	csvexport "customer_extract/internal/infrastructure/export/csv"
	"customer_extract/internal/infrastructure/http/records"
	kafkainfra "customer_extract/internal/infrastructure/messaging/kafka"
	"customer_extract/internal/infrastructure/persistence/postgres"
	"customer_extract/internal/infrastructure/persistence/sqlite"
	"customer_extract/internal/infrastructure/source/file"
	"customer_extract/pkg/logger"
)

// extract loads the configured record source, flattens it and writes the
// dataset to every enabled sink.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	appLog, err := logger.NewZapLogger(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, appLog)
	stop()

	if err != nil {
		appLog.Fatal("extract failed", logger.Error(err))
	}
	_ = appLog.Sync()
}

// run owns every opened resource; all of them are released before it
// returns, whatever the outcome.
func run(ctx context.Context, cfg *config.Config, appLog logger.Logger) error {
	records, closeRecords, err := newRecordSource(cfg, appLog)
	if err != nil {
		return fmt.Errorf("init record source: %w", err)
	}
	defer closeRecords()

	sinks, closeSinks, err := newSinks(ctx, cfg, appLog)
	if err != nil {
		return fmt.Errorf("init sinks: %w", err)
	}
	defer closeSinks()

	svc := extract.NewService(records, file.NewVIPSource(cfg.Source.VIPPath), appLog, sinks...)

	ds, err := svc.Extract(ctx)
	if err != nil {
		return err
	}

	if err := svc.Export(ctx, ds); err != nil {
		return err
	}

	appLog.Info("extract finished",
		logger.String("source", cfg.Source.Kind),
		logger.Int("rows", ds.Len()),
		logger.Int("sinks", len(sinks)),
	)
	return nil
}

func newRecordSource(cfg *config.Config, log logger.Logger) (extract.RecordSource, func(), error) {
	noop := func() {}

	switch cfg.Source.Kind {
	case config.SourceFile:
		return file.NewRecordSource(cfg.Source.RecordsPath), noop, nil
	case config.SourceHTTP:
		return records.NewClient(cfg.Source.HTTP, log), noop, nil
	case config.SourceKafka:
		consumer, err := kafkainfra.NewCustomerConsumer(cfg.Kafka, log)
		if err != nil {
			return nil, noop, err
		}
		return consumer, consumer.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}

func newSinks(ctx context.Context, cfg *config.Config, log logger.Logger) ([]extract.Sink, func(), error) {
	var (
		sinks   []extract.Sink
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.Output.CSVPath != "" {
		sinks = append(sinks, csvexport.NewFileSink(cfg.Output.CSVPath))
	}

	if cfg.Output.SQLitePath != "" {
		repo, err := sqlite.Open(cfg.Output.SQLitePath)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		closers = append(closers, func() { _ = repo.Close() })
		sinks = append(sinks, extract.NewRepositorySink("sqlite", repo))
	}

	if cfg.Output.Postgres {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("postgres connection: %w", err)
		}
		closers = append(closers, pool.Close)

		repo, err := postgres.NewRowRepository(pool, cfg.DB.Table)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		sinks = append(sinks, extract.NewRepositorySink("postgres", repo))
	}

	if cfg.Output.Kafka {
		encoder, err := avro.NewRowEncoder()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		producer, err := kafkainfra.NewRowProducer(cfg.Kafka, encoder, log)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, func() {
			_ = producer.Close(context.Background())
		})
		sinks = append(sinks, producer)
	}

	return sinks, closeAll, nil
}
