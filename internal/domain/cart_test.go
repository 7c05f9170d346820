package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func haircut() *Service {
	return &Service{ID: 1, Name: "Стрижка", Price: 1200, DurationMinutes: 60, Active: true}
}

func coloring() *Service {
	return &Service{ID: 2, Name: "Окрашивание", Price: 3500, DurationMinutes: 120, Active: true}
}

func styling() *Service {
	return &Service{ID: 3, Name: "Укладка", Price: 800, DurationMinutes: 30, Active: true}
}

func TestCart_AddPreservesOrder(t *testing.T) {
	cart := NewCart().Add(haircut()).Add(coloring()).Add(styling())

	require.Len(t, cart.Items, 3)
	assert.Equal(t, int64(1), cart.Items[0].ServiceID)
	assert.Equal(t, int64(2), cart.Items[1].ServiceID)
	assert.Equal(t, int64(3), cart.Items[2].ServiceID)

	assert.Equal(t, 210, cart.TotalDurationMinutes())
	assert.Equal(t, 5500.0, cart.TotalPrice())
	assert.Equal(t, "Стрижка, Окрашивание, Укладка", cart.Summary())
}

func TestCart_DuplicateServiceCountsTwice(t *testing.T) {
	cart := NewCart().Add(styling()).Add(styling())

	require.Len(t, cart.Items, 2)
	assert.Equal(t, 60, cart.TotalDurationMinutes())
	assert.Equal(t, 1600.0, cart.TotalPrice())
}

func TestCart_Remove(t *testing.T) {
	cart := NewCart().Add(haircut()).Add(coloring()).Add(styling())

	smaller, ok := cart.Remove(1)
	require.True(t, ok)
	require.Len(t, smaller.Items, 2)
	assert.Equal(t, "Стрижка, Укладка", smaller.Summary())

	// Исходная корзина не изменилась
	assert.Len(t, cart.Items, 3)
}

func TestCart_RemoveInvalidIndex(t *testing.T) {
	cart := NewCart().Add(haircut())

	same, ok := cart.Remove(5)
	assert.False(t, ok)
	assert.Len(t, same.Items, 1)

	same, ok = cart.Remove(-1)
	assert.False(t, ok)
	assert.Len(t, same.Items, 1)
}

func TestCart_Empty(t *testing.T) {
	cart := NewCart()

	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.TotalDurationMinutes())
	assert.Zero(t, cart.TotalPrice())
	assert.Empty(t, cart.Summary())
}

func TestBuildCart(t *testing.T) {
	cart := BuildCart([]*Service{coloring(), haircut()})

	require.Len(t, cart.Items, 2)
	assert.Equal(t, "Окрашивание, Стрижка", cart.Summary())
}

func TestCart_TotalsDependOnlyOnContents(t *testing.T) {
	// Одна и та же итоговая корзина дает одни и те же суммы
	// независимо от истории добавлений и удалений
	incremental := NewCart().Add(haircut()).Add(coloring())
	incremental = incremental.Add(styling())
	withHistory, ok := NewCart().
		Add(styling()).
		Add(haircut()).
		Add(coloring()).
		Add(styling()).
		Remove(0)
	require.True(t, ok)
	onePass := BuildCart([]*Service{haircut(), coloring(), styling()})

	assert.Equal(t, onePass.TotalPrice(), incremental.TotalPrice())
	assert.Equal(t, onePass.TotalDurationMinutes(), incremental.TotalDurationMinutes())
	assert.Equal(t, onePass.TotalPrice(), withHistory.TotalPrice())
	assert.Equal(t, onePass.TotalDurationMinutes(), withHistory.TotalDurationMinutes())
}

func TestCart_AddDoesNotMutateOriginal(t *testing.T) {
	base := NewCart().Add(haircut())
	withColoring := base.Add(coloring())
	withStyling := base.Add(styling())

	require.Len(t, base.Items, 1)
	require.Len(t, withColoring.Items, 2)
	require.Len(t, withStyling.Items, 2)
	assert.Equal(t, "Стрижка, Окрашивание", withColoring.Summary())
	assert.Equal(t, "Стрижка, Укладка", withStyling.Summary())
}
