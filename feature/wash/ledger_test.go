package wash

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hashStore serves PhotoHashes only.
type hashStore struct {
	Store
	hashes []map[PhotoSlot]string
	err    error
}

func (s hashStore) PhotoHashes(ctx context.Context) ([]map[PhotoSlot]string, error) {
	return s.hashes, s.err
}

func TestLedger_AllKnownHashes(t *testing.T) {
	l := NewLedger(hashStore{hashes: []map[PhotoSlot]string{
		{SlotFront: "a", SlotBack: "b"},
		{SlotFront: "c", SlotCab: "a"},
		nil,
	}})

	known, err := l.AllKnownHashes(context.Background())
	require.NoError(t, err)
	assert.Len(t, known, 3)
	assert.Contains(t, known, "c")
}

func TestLedger_Reused(t *testing.T) {
	l := NewLedger(hashStore{hashes: []map[PhotoSlot]string{{SlotFront: "h1", SlotBack: "h2"}}})

	reused, err := l.Reused(context.Background(), map[PhotoSlot]string{
		SlotFront: "n1", SlotBack: "n2", SlotSide: "h2", SlotCab: "h1",
	})
	require.NoError(t, err)
	assert.Equal(t, []PhotoSlot{SlotSide, SlotCab}, reused)

	reused, err = l.Reused(context.Background(), map[PhotoSlot]string{SlotFront: "n1"})
	require.NoError(t, err)
	assert.Empty(t, reused)
}

func TestLedger_StoreError(t *testing.T) {
	l := NewLedger(hashStore{err: errors.New("db down")})
	_, err := l.Reused(context.Background(), map[PhotoSlot]string{SlotFront: "x"})
	assert.ErrorContains(t, err, "db down")
}

func TestHashPhoto(t *testing.T) {
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", HashPhoto([]byte("abc")))
	assert.NotEqual(t, HashPhoto([]byte("abc")), HashPhoto([]byte("abd")))
}

func TestDuplicateSlots(t *testing.T) {
	assert.Empty(t, DuplicateSlots(map[PhotoSlot]string{SlotFront: "a", SlotBack: "b", SlotSide: "c", SlotCab: "d"}))
	assert.Equal(t, []PhotoSlot{SlotFront, SlotCab}, DuplicateSlots(map[PhotoSlot]string{SlotFront: "a", SlotBack: "b", SlotSide: "c", SlotCab: "a"}))
}

func TestErrors(t *testing.T) {
	err := error(&DuplicatePhotoReusedError{Slots: []PhotoSlot{SlotFront, SlotSide}, UnitID: "A1", Week: "2025-W10", Depot: "cartago"})
	assert.ErrorIs(t, err, ErrDuplicatePhotoReused)
	assert.Contains(t, err.Error(), "front, side")
	assert.Contains(t, err.Error(), "unit A1")

	conflict := &StoreConflictError{Week: "2025-W10", Depot: "cartago", UnitID: "A1", Err: errors.New("1062")}
	assert.ErrorIs(t, conflict, ErrStoreConflict)
	assert.True(t, conflict.Retryable())
	assert.True(t, IsClientError(&ValidationError{Field: "unit"}))
	assert.False(t, IsClientError(conflict))
}

func TestPhotoKey(t *testing.T) {
	assert.Equal(t, "2025-W10/perez-zeledon/AB-12-3/20250305-103000_front.png",
		PhotoKey("2025-W10", "Perez Zeledon", "AB/12/3", SlotFront, "IMG.PNG", "20250305-103000"))
	assert.Equal(t, "2025-W10/cartago/A1/20250305-103000_cab.jpg",
		PhotoKey("2025-W10", "cartago", "A1", SlotCab, "", "20250305-103000"))
	assert.Equal(t, "2025-W10/cartago/--/20250305-103000_side.jpg",
		PhotoKey("2025-W10", "cartago", "..", SlotSide, "x.jpg", "20250305-103000"))
	assert.Equal(t, "2025-W10/cartago/..-..-etc/20250305-103000_back.jpg",
		PhotoKey("2025-W10", "cartago", `../..\etc`, SlotBack, "x.jpg", "20250305-103000"))
}
