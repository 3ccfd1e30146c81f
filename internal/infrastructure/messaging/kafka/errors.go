package kafka

import "errors"

var (
	ErrEmptyTopic     = errors.New("kafka topic is empty")
	ErrNoBrokers      = errors.New("kafka brokers is empty")
	ErrProducerClosed = errors.New("kafka producer is closed")
)
