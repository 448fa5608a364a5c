package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(&buf, "warn")
	require.NoError(t, err)

	l.Info("booking created: id=%s", "abc")
	l.Warn("slow request: path=%s", "/api/services")
	l.Error("db failure: %v", "timeout")

	out := buf.String()
	assert.NotContains(t, out, "booking created")
	assert.Contains(t, out, "slow request: path=/api/services")
	assert.Contains(t, out, "db failure: timeout")
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "loud")
	require.Error(t, err)
}

func TestNew_EmptyLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(&buf, "")
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestClose_WithoutFile(t *testing.T) {
	assert.NoError(t, NewDiscard().Close())
}
