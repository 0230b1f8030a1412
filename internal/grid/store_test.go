package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-roomgrid/internal/models"
	appErrors "github.com/noah-isme/campus-roomgrid/pkg/errors"
)

func TestStorePlaceAndGet(t *testing.T) {
	store := NewStore()
	cell := models.Cell{Day: "MONDAY", Shift: "07:00-10:00", RoomID: "room-1"}

	_, ok := store.Get(cell)
	assert.False(t, ok)

	require.NoError(t, store.Place(cell, models.Assignment{ClassID: "class-1", ScheduleID: "55"}))

	got, ok := store.Get(cell)
	require.True(t, ok)
	assert.Equal(t, "class-1", got.ClassID)
	assert.Equal(t, "55", got.ScheduleID)
}

func TestStorePlaceOccupiedCellFails(t *testing.T) {
	store := NewStore()
	cell := models.Cell{Day: "MONDAY", Shift: "07:00-10:00", RoomID: "room-1"}
	require.NoError(t, store.Place(cell, models.Assignment{ClassID: "class-1"}))

	err := store.Place(cell, models.Assignment{ClassID: "class-2"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrCellOccupied.Code, appErrors.FromError(err).Code)

	// the incumbent is untouched
	got, ok := store.Get(cell)
	require.True(t, ok)
	assert.Equal(t, "class-1", got.ClassID)
	assert.Equal(t, 1, store.Len())
}

func TestStoreClearIsIdempotent(t *testing.T) {
	store := NewStore()
	cell := models.Cell{Day: "TUESDAY", Shift: "10:30-13:30", RoomID: "room-2"}
	require.NoError(t, store.Place(cell, models.Assignment{ClassID: "class-1"}))

	store.Clear(cell)
	_, ok := store.Get(cell)
	assert.False(t, ok)

	store.Clear(cell)
	assert.Equal(t, 0, store.Len())
}

func TestStoreFindClassScopedToDay(t *testing.T) {
	store := NewStore()
	monday := models.Cell{Day: "MONDAY", Shift: "07:00-10:00", RoomID: "room-1"}
	require.NoError(t, store.Place(monday, models.Assignment{ClassID: "class-1"}))

	found, ok := store.FindClass("MONDAY", "class-1")
	require.True(t, ok)
	assert.Equal(t, monday, found)

	_, ok = store.FindClass("TUESDAY", "class-1")
	assert.False(t, ok)
}

func TestStoreSnapshotRestoreRoundTrip(t *testing.T) {
	store := NewStore()
	cellA := models.Cell{Day: "MONDAY", Shift: "07:00-10:00", RoomID: "room-1"}
	cellB := models.Cell{Day: "MONDAY", Shift: "07:00-10:00", RoomID: "room-2"}
	require.NoError(t, store.Place(cellA, models.Assignment{ClassID: "class-1", ScheduleID: "1"}))

	snap := store.Snapshot()

	require.NoError(t, store.Place(cellB, models.Assignment{ClassID: "class-2", ScheduleID: "2"}))
	store.Clear(cellA)
	assert.False(t, store.Equal(snap))

	store.Restore(snap)
	assert.True(t, store.Equal(snap))

	got, ok := store.Get(cellA)
	require.True(t, ok)
	assert.Equal(t, "class-1", got.ClassID)
	_, ok = store.Get(cellB)
	assert.False(t, ok)
}

func TestStoreSnapshotIsIsolatedFromLaterMutations(t *testing.T) {
	store := NewStore()
	cell := models.Cell{Day: "MONDAY", Shift: "07:00-10:00", RoomID: "room-1"}
	require.NoError(t, store.Place(cell, models.Assignment{ClassID: "class-1"}))

	snap := store.Snapshot()
	store.Clear(cell)
	require.NoError(t, store.Place(cell, models.Assignment{ClassID: "class-9"}))

	store.Restore(snap)
	got, _ := store.Get(cell)
	assert.Equal(t, "class-1", got.ClassID)
}
