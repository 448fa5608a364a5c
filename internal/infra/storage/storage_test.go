package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/config"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Fatal(string, ...interface{}) {}

func TestOpen_Memory(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = config.DriverMemory

	stores, err := Open(context.Background(), cfg, nil, nopLogger{})
	require.NoError(t, err)
	assert.Equal(t, config.DriverMemory, stores.Driver)
	assert.NotNil(t, stores.Services)
	assert.NotNil(t, stores.Companies)
	assert.NotNil(t, stores.Bookings)
	assert.NotNil(t, stores.Orders)
	assert.NoError(t, stores.Close(context.Background()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = "redis"

	_, err := Open(context.Background(), cfg, nil, nopLogger{})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
