package wash

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Ledger answers which photo hashes are already used. It is derived from the store on
// every call, so deleting a record releases its hashes.
type Ledger struct {
	store Store
}

// NewLedger creates a ledger over the record store.
func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// AllKnownHashes returns every hash of every stored record.
func (l *Ledger) AllKnownHashes(ctx context.Context) (map[string]struct{}, error) {
	maps, err := l.store.PhotoHashes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo hashes: %w", err)
	}
	known := make(map[string]struct{})
	for _, m := range maps {
		for _, h := range m {
			known[h] = struct{}{}
		}
	}
	return known, nil
}

// Reused returns the slots whose hash is already known, in slot order.
func (l *Ledger) Reused(ctx context.Context, hashes map[PhotoSlot]string) ([]PhotoSlot, error) {
	known, err := l.AllKnownHashes(ctx)
	if err != nil {
		return nil, err
	}
	var reused []PhotoSlot
	for _, slot := range Slots {
		if h, ok := hashes[slot]; ok {
			if _, dup := known[h]; dup {
				reused = append(reused, slot)
			}
		}
	}
	return reused, nil
}

// HashPhoto returns the lowercase hex SHA-256 of data.
func HashPhoto(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DuplicateSlots returns every slot whose hash is shared with another slot, in slot order.
func DuplicateSlots(hashes map[PhotoSlot]string) []PhotoSlot {
	count := make(map[string]int, len(hashes))
	for _, h := range hashes {
		count[h]++
	}
	var dups []PhotoSlot
	for _, slot := range Slots {
		if h, ok := hashes[slot]; ok && count[h] > 1 {
			dups = append(dups, slot)
		}
	}
	return dups
}
