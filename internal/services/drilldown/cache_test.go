package drilldown

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jalikoi/analytics-tui/internal/models"
)

func roster(name string, ids ...models.ID) *models.SegmentRoster {
	r := &models.SegmentRoster{SegmentName: name}
	for _, id := range ids {
		r.Customers = append(r.Customers, models.CustomerSummary{MotorcyclistID: id})
	}
	return r
}

func TestCache_OpenAndLoad(t *testing.T) {
	var c Cache
	assert.False(t, c.IsOpen())

	tok := c.Open("VIP", models.Query{})
	assert.True(t, c.IsOpen())
	assert.True(t, c.Loading())
	assert.Equal(t, "VIP", c.Selected())

	assert.True(t, c.Apply("VIP", tok, roster("VIP", "1", "2")))
	assert.Equal(t, Loaded, c.State())
	assert.Len(t, c.Roster().Customers, 2)
}

func TestCache_SwitchBeforeResponseDropsStale(t *testing.T) {
	var c Cache
	tokA := c.Open("A", models.Query{})
	tokB := c.Open("B", models.Query{})

	assert.False(t, c.Apply("A", tokA, roster("A", "a1")), "late response for A must be dropped")
	assert.Nil(t, c.Roster())
	assert.True(t, c.Loading())
	assert.Equal(t, "B", c.Selected())

	assert.True(t, c.Apply("B", tokB, roster("B", "b1")))
	assert.Equal(t, "B", c.Roster().SegmentName)

	assert.False(t, c.Apply("A", tokA, roster("A", "a1")))
	assert.Equal(t, "B", c.Roster().SegmentName)
}

func TestCache_ReopenSameSegmentDropsOlderToken(t *testing.T) {
	var c Cache
	first := c.Open("A", models.Query{Period: "week"})
	second := c.Open("A", models.Query{Period: "month"})

	assert.False(t, c.Apply("A", first, roster("A", "old")))
	assert.True(t, c.Apply("A", second, roster("A", "new")))
	assert.Equal(t, models.ID("new"), c.Roster().Customers[0].MotorcyclistID)
}

func TestCache_OpeningReplacesRoster(t *testing.T) {
	var c Cache
	tok := c.Open("A", models.Query{})
	c.Apply("A", tok, roster("A", "a1"))

	c.Open("B", models.Query{})
	assert.Nil(t, c.Roster(), "only one roster is held at a time")
}

func TestCache_Fail(t *testing.T) {
	var c Cache
	tokA := c.Open("A", models.Query{})
	tokB := c.Open("B", models.Query{})

	assert.False(t, c.Fail("A", tokA, errors.New("stale")))
	assert.True(t, c.Fail("B", tokB, errors.New("boom")))
	assert.Equal(t, Failed, c.State())
	assert.EqualError(t, c.Err(), "boom")
	assert.True(t, c.IsOpen())
}

func TestCache_CloseDiscards(t *testing.T) {
	var c Cache
	tok := c.Open("A", models.Query{})
	c.Close()

	assert.False(t, c.IsOpen())
	assert.Empty(t, c.Selected())
	assert.False(t, c.Apply("A", tok, roster("A", "a1")), "responses after close are dropped")
	assert.Nil(t, c.Roster())
}
