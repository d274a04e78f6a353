package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malikaashish/Inventory-Management-System/internal/application/events"
	"github.com/malikaashish/Inventory-Management-System/internal/application/ports"
)

type fakePublisher struct {
	got []ports.Event
	err error
}

func (f *fakePublisher) Publish(_ context.Context, ev ports.Event) error {
	f.got = append(f.got, ev)
	return f.err
}

type countingMetrics struct {
	ports.NopMetrics
	failed int
}

func (m *countingMetrics) EventPublishFailed(string) { m.failed++ }

func TestDispatcher_Publica(t *testing.T) {
	pub := &fakePublisher{}
	d := events.NewDispatcher(pub, nil, nil)

	d.Publish(context.Background(), "c-1", "u-1", ports.EventStockAdjusted, "p-1", map[string]int{"after": 5})

	require.Len(t, pub.got, 1)
	ev := pub.got[0]
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, ports.EventStockAdjusted, ev.Type)
	assert.Equal(t, "c-1", ev.CompanyID)
	assert.Equal(t, "p-1", ev.Key)
	assert.False(t, ev.Timestamp.IsZero())
}

func TestDispatcher_ErrorNoSePropaga(t *testing.T) {
	m := &countingMetrics{}
	d := events.NewDispatcher(&fakePublisher{err: errors.New("broker caído")}, m, nil)

	assert.NotPanics(t, func() {
		d.Publish(context.Background(), "c-1", "", ports.EventSalesOrderCreated, "o-1", nil)
	})
	assert.Equal(t, 1, m.failed)
}

func TestDispatcher_SinPublisher(t *testing.T) {
	var d *events.Dispatcher
	assert.NotPanics(t, func() {
		d.Publish(context.Background(), "c-1", "", ports.EventSalesOrderCreated, "o-1", nil)
	})
	assert.NotPanics(t, func() {
		events.NewDispatcher(nil, nil, nil).Publish(context.Background(), "c-1", "", "x", "k", nil)
	})
}
