package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malikaashish/Inventory-Management-System/internal/application/ports"
)

func TestPublisher_Publish_SendsJSONWithHeaders(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	var got *sarama.ProducerMessage
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		got = msg
		return nil
	})
	pub := NewPublisherWithProducer(producer, "inventory.events", nil)

	err := pub.Publish(context.Background(), ports.Event{
		ID:        "evt-1",
		Type:      ports.EventStockAdjusted,
		CompanyID: "company-1",
		Key:       "product-1",
		Payload:   map[string]int{"quantity_after": 5},
		Timestamp: time.Now(),
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "inventory.events", got.Topic)
	key, _ := got.Key.Encode()
	assert.Equal(t, "product-1", string(key))

	headers := map[string]string{}
	for _, h := range got.Headers {
		headers[string(h.Key)] = string(h.Value)
	}
	assert.Equal(t, ports.EventStockAdjusted, headers["event_type"])
	assert.Equal(t, "evt-1", headers["event_id"])

	body, _ := got.Value.Encode()
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "company-1", decoded["company_id"])
	assert.NotContains(t, decoded, "Key")
	require.NoError(t, pub.Close())
}

func TestPublisher_Publish_KeyDefaultsToCompany(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	var key []byte
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, _ = msg.Key.Encode()
		return nil
	})
	pub := NewPublisherWithProducer(producer, "t", nil)

	require.NoError(t, pub.Publish(context.Background(), ports.Event{ID: "e", Type: "x", CompanyID: "c-9"}))
	assert.Equal(t, "c-9", string(key))
	require.NoError(t, pub.Close())
}

func TestPublisher_Publish_BrokerError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(errors.New("broker caído"))
	pub := NewPublisherWithProducer(producer, "t", nil)

	err := pub.Publish(context.Background(), ports.Event{ID: "e", Type: ports.EventSalesOrderCreated, CompanyID: "c"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ports.EventSalesOrderCreated)
	require.NoError(t, pub.Close())
}
