package fetch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalikoi/analytics-tui/internal/models"
)

func TestSlot_Lifecycle(t *testing.T) {
	var s Slot[string]
	assert.Equal(t, Idle, s.Status())
	assert.False(t, s.Issued())

	tok := s.Begin(models.Query{Period: "week"})
	assert.True(t, s.Blocking())
	assert.Equal(t, Loading, s.Status())

	require.True(t, s.Resolve(tok, "first"))
	data, ok := s.Data()
	assert.True(t, ok)
	assert.Equal(t, "first", data)
	assert.Equal(t, Ready, s.Status())
}

func TestSlot_StaleWhileRevalidate(t *testing.T) {
	var s Slot[string]
	tok := s.Begin(models.Query{Period: "week"})
	require.True(t, s.Resolve(tok, "week data"))

	s.Begin(models.Query{Period: "month"})
	assert.False(t, s.Blocking(), "reload with prior data must not block")
	assert.True(t, s.Refreshing())
	data, ok := s.Data()
	assert.True(t, ok)
	assert.Equal(t, "week data", data)
	assert.Equal(t, models.Query{Period: "month"}, s.Query())
	assert.Equal(t, models.Query{Period: "week"}, s.DataQuery(), "retained data keeps its own window")
}

func TestSlot_DropsStaleResults(t *testing.T) {
	var s Slot[string]
	older := s.Begin(models.Query{Period: "week"})
	newer := s.Begin(models.Query{Period: "month"})

	assert.False(t, s.Resolve(older, "week data"))
	assert.False(t, s.Fail(older, errors.New("boom")))
	_, ok := s.Data()
	assert.False(t, ok)
	assert.Equal(t, Loading, s.Status())

	assert.True(t, s.Resolve(newer, "month data"))
	assert.False(t, s.Resolve(newer, "duplicate"), "a token resolves once")
	data, _ := s.Data()
	assert.Equal(t, "month data", data)
}

func TestSlot_FailureKeepsData(t *testing.T) {
	var s Slot[int]
	tok := s.Begin(models.Query{Period: "week"})
	require.True(t, s.Resolve(tok, 7))

	q := models.Query{StartDate: "2025-01-01", EndDate: "2025-01-31"}
	tok = s.Begin(q)
	require.True(t, s.Fail(tok, errors.New("gateway timeout")))

	assert.Equal(t, Failed, s.Status())
	assert.True(t, s.ErrorVisible())
	assert.EqualError(t, s.Err(), "gateway timeout")
	data, ok := s.Data()
	assert.True(t, ok)
	assert.Equal(t, 7, data)
	assert.Equal(t, q, s.Query(), "retry re-issues the failed query")

	s.Dismiss()
	assert.False(t, s.ErrorVisible())
	assert.Equal(t, Failed, s.Status())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "unknown", Status(9).String())
}
