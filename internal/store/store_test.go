package store

import (
	"errors"
	"testing"

	"concert-ticketing-client/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stagedFixture() *models.StagedOrder {
	return &models.StagedOrder{
		ConcertID:    "c1",
		ConcertTitle: "Java Jazz Festival",
		Items: []models.TicketSelection{
			{TicketTypeID: "t1", Name: "VIP", Quantity: 2, Price: 500000},
		},
		TotalPrice: 1000000,
	}
}

func TestStaging_StagedOrderRoundTrip(t *testing.T) {
	staging := NewStaging(NewMemoryKV())

	require.NoError(t, staging.SaveStagedOrder(stagedFixture()))

	staged, err := staging.StagedOrder()
	require.NoError(t, err)
	assert.Equal(t, "c1", staged.ConcertID)
	assert.Equal(t, 1000000, staged.TotalPrice)
	assert.Len(t, staged.Items, 1)
}

func TestStaging_NothingStaged(t *testing.T) {
	staging := NewStaging(NewMemoryKV())

	_, err := staging.StagedOrder()
	assert.ErrorIs(t, err, models.ErrNothingStaged)
}

func TestStaging_MalformedStagedOrder(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(KeyPendingOrder, []byte("{not json")))

	staging := NewStaging(kv)
	_, err := staging.StagedOrder()
	assert.ErrorIs(t, err, models.ErrNothingStaged)
}

func TestStaging_EmptyStagedOrderTreatedAsMissing(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(KeyPendingOrder, []byte(`{"concertId":"c1","items":[],"totalPrice":0}`)))

	staging := NewStaging(kv)
	_, err := staging.StagedOrder()
	assert.ErrorIs(t, err, models.ErrNothingStaged)
}

func TestStaging_ClearStagedOrder(t *testing.T) {
	staging := NewStaging(NewMemoryKV())

	require.NoError(t, staging.SaveStagedOrder(stagedFixture()))
	require.NoError(t, staging.ClearStagedOrder())

	_, err := staging.StagedOrder()
	assert.ErrorIs(t, err, models.ErrNothingStaged)
}

func TestStaging_LastWriteWins(t *testing.T) {
	staging := NewStaging(NewMemoryKV())

	first := stagedFixture()
	require.NoError(t, staging.SaveStagedOrder(first))

	second := stagedFixture()
	second.ConcertID = "c2"
	second.ConcertTitle = "Rock In Solo"
	require.NoError(t, staging.SaveStagedOrder(second))

	staged, err := staging.StagedOrder()
	require.NoError(t, err)
	assert.Equal(t, "c2", staged.ConcertID)
}

func TestStaging_CompletedOrderRoundTrip(t *testing.T) {
	staging := NewStaging(NewMemoryKV())

	record := &models.CompletedOrderRecord{
		OrderID:         "o1",
		MidtransOrderID: "MT-001",
		ConcertTitle:    "Java Jazz Festival",
		TotalPrice:      1000000,
		IsPending:       true,
	}
	require.NoError(t, staging.SaveCompletedOrder(record))

	loaded, err := staging.CompletedOrder()
	require.NoError(t, err)
	assert.Equal(t, "o1", loaded.OrderID)
	assert.True(t, loaded.IsPending)
}

func TestStaging_CompletedOrderMissing(t *testing.T) {
	staging := NewStaging(NewMemoryKV())

	_, err := staging.CompletedOrder()
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
}

func TestMemoryKV_DeleteMissingKey(t *testing.T) {
	kv := NewMemoryKV()
	assert.NoError(t, kv.Delete("nope"))

	_, err := kv.Get("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}
