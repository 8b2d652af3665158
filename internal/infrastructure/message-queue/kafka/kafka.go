package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
	"github.com/vparmar-art/MarketplaceApp/internal/dto"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func CreateKafkaWriter(brokerAddress, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokerAddress),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		MaxAttempts:            1,
		WriteTimeout:           5 * time.Second,
	}
}

// Publisher writes domain events to a single topic. Writes go through the
// circuit breaker so an unavailable broker fails fast.
type Publisher struct {
	writer MessageWriter
	cb     *gobreaker.CircuitBreaker[any]
}

func CreatePublisher(writer MessageWriter, cb *gobreaker.CircuitBreaker[any]) *Publisher {
	return &Publisher{
		writer: writer,
		cb:     cb,
	}
}

func (p *Publisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("component", "Publish").Msg("")
		return err
	}

	_, err = p.cb.Execute(func() (any, error) {
		return nil, p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(key),
			Value: payload,
		})
	})
	if err != nil {
		log.Error().Err(err).Str("component", "Publish").Str("event_type", msg.EventType).Msg("")
		return err
	}

	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
