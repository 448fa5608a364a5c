package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/event"
)

type observed struct {
	operation string
	success   bool
}

type fakeObserver struct {
	calls []observed
}

func (f *fakeObserver) ObserveDBOperation(_, operation string, success bool, _ time.Duration) {
	f.calls = append(f.calls, observed{operation: operation, success: success})
}

func TestDecimalRoundTrip(t *testing.T) {
	price := decimal.RequireFromString("24.99")

	stored, err := ToDecimal128(price)
	require.NoError(t, err)

	back, err := FromDecimal128(stored)
	require.NoError(t, err)
	assert.True(t, price.Equal(back), back.String())
}

func TestParseIDs_SkipsInvalid(t *testing.T) {
	valid := primitive.NewObjectID()

	ids := ParseIDs([]string{valid.Hex(), "not-an-id", ""})

	assert.Equal(t, []primitive.ObjectID{valid}, ids)
}

func TestCommandMonitor(t *testing.T) {
	obs := &fakeObserver{}
	mon := NewCommandMonitor(obs)

	mon.Succeeded(context.Background(), &event.CommandSucceededEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "find", Duration: time.Millisecond},
	})
	mon.Failed(context.Background(), &event.CommandFailedEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "insert", Duration: time.Millisecond},
	})

	assert.Equal(t, []observed{{"find", true}, {"insert", false}}, obs.calls)
}
