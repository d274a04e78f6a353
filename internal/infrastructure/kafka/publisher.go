// Package kafka publica los eventos de dominio en un tópico Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/malikaashish/Inventory-Management-System/internal/application/ports"
	"github.com/malikaashish/Inventory-Management-System/pkg/logger"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher productor síncrono: Publish vuelve cuando el broker confirmó (acks=all).
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewPublisher conecta con los brokers y crea el productor.
func NewPublisher(brokers []string, topic string, log *logger.Logger) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("crear productor kafka: %w", err)
	}
	log.Info().Strs("brokers", brokers).Str("topic", topic).Msg("publicador kafka inicializado")
	return NewPublisherWithProducer(producer, topic, log), nil
}

// NewPublisherWithProducer usa un productor ya construido (tests con sarama/mocks).
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string, log *logger.Logger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{producer: producer, topic: topic, log: log}
}

// Publish serializa el evento a JSON. La clave de partición es Event.Key (o la empresa si está vacía)
// para conservar el orden por agregado.
func (p *Publisher) Publish(ctx context.Context, event ports.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	key := event.Key
	if key == "" {
		key = event.CompanyID
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
			{Key: []byte("event_id"), Value: []byte(event.ID)},
			{Key: []byte("company_id"), Value: []byte(event.CompanyID)},
		},
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("enviar evento %s: %w", event.Type, err)
	}
	p.log.Debug().
		Str("event_id", event.ID).
		Str("event_type", event.Type).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("evento publicado")
	return nil
}

// Close cierra el productor.
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
