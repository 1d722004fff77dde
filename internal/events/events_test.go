package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"storefront/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func testOrder() domain.Order {
	return domain.Order{
		ID:             "0d7c7a55-3c5e-4bb1-a0d5-4fe6f9d0e3a1",
		Email:          "client@example.fr",
		Status:         domain.OrderStatusProcessing,
		ShippingMethod: "Standard",
		Subtotal:       decimal.NewFromInt(32),
		Tax:            decimal.RequireFromString("7.4"),
		Total:          decimal.NewFromInt(37),
		LineItems:      domain.Cart{{SizeID: "A", UnitPrice: decimal.NewFromInt(32), Amount: 1}},
	}
}

func TestOrderPlacedWritesKeyedMessage(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaPublisher(w, nil)

	require.NoError(t, p.OrderPlaced(context.Background(), testOrder()))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, testOrder().ID, string(msg.Key))
	assert.Equal(t, []kafka.Header{{Key: "event_type", Value: []byte(EventOrderPlaced)}}, msg.Headers)

	var payload OrderPlacedPayload
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, "7.40", payload.Tax)
	assert.Equal(t, "37.00", payload.Total)
	assert.Len(t, payload.Items, 1)
}

func TestOrderPlacedTripsBreaker(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker unreachable")}
	p := newKafkaPublisher(w, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := p.OrderPlaced(ctx, testOrder())
		require.Error(t, err)
		assert.NotErrorIs(t, err, gobreaker.ErrOpenState)
	}
	err := p.OrderPlaced(ctx, testOrder())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.OrderPlaced(context.Background(), testOrder()))
	assert.NoError(t, p.Close())
}
