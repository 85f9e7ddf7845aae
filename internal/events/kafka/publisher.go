package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/account-statement-ledger/internal/interfaces"
)

type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher writes JSON events to brokers. Messages carry their own topic,
// so a single publisher serves any number of topics.
func NewPublisher(brokers []string, lg *zap.Logger) *Publisher {
	sugar := lg.Named("kafka").Sugar()

	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			Logger:                 kafka.LoggerFunc(sugar.Debugf),
			ErrorLogger:            kafka.LoggerFunc(sugar.Errorf),
		},
	}
}

// Publish sends event to topic. Events with the same key land on the same
// partition, so one account's events stay ordered.
func (p *Publisher) Publish(ctx context.Context, topic string, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(
		ctx,
		kafka.Message{
			Topic: topic,
			Key:   []byte(key),
			Value: data,
		},
	)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
