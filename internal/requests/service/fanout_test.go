package service

import (
	"shareit/pkg/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanOut(t *testing.T) {
	requests := []*model.Request{
		{ID: "r3", Description: "newest"},
		{ID: "r1", Description: "oldest"},
		{ID: "r2", Description: "unanswered"},
	}
	items := []*model.Item{
		{ID: "i1", Name: "Drill", RequestID: "r1"},
		{ID: "i2", Name: "Ladder", RequestID: "r3"},
		{ID: "i3", Name: "Saw", RequestID: "r1"},
		{ID: "i4", Name: "Unrelated"},
	}

	views := FanOut(requests, items)

	require.Len(t, views, 3)
	assert.Equal(t, []string{"r3", "r1", "r2"}, []string{views[0].ID, views[1].ID, views[2].ID})

	assert.Len(t, views[0].Items, 1)
	assert.Equal(t, "i2", views[0].Items[0].ID)

	require.Len(t, views[1].Items, 2)
	assert.Equal(t, "i1", views[1].Items[0].ID)
	assert.Equal(t, "i3", views[1].Items[1].ID)
	assert.Equal(t, "r1", views[1].Items[1].RequestID)

	assert.NotNil(t, views[2].Items)
	assert.Empty(t, views[2].Items)
}

func TestFanOut_Empty(t *testing.T) {
	views := FanOut(nil, nil)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}
