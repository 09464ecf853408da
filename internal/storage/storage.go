// Package storage provides the random-access mission item reader adapter.
// Heimdall's validators pull items through this interface rather than
// buffering the whole mission, so a mission with a very large item count
// never forces the checker to hold it all in memory at once.
package storage

import (
	"context"
	"fmt"

	"github.com/PossumXI/Asgard/Heimdall/internal/mission"
)

// ErrReadFailed is wrapped by every ItemReader implementation's read error,
// so callers can recognize a storage failure without depending on a
// particular backend's error type.
var ErrReadFailed = fmt.Errorf("mission storage: read failed")

// ItemReader provides random-access retrieval of mission items by index for
// one storage_id. Index is 0-based; Count reports how many items exist.
type ItemReader interface {
	Count() int
	ReadItem(ctx context.Context, index int) (mission.Item, error)
}

// MemoryReader is an in-memory ItemReader, used by tests, the -replay CLI
// mode, and as the reference implementation PostgresReader is validated
// against.
type MemoryReader struct {
	Items []mission.Item

	// FailAt, if non-negative, makes ReadItem fail for that index, so
	// storage-failure handling can be exercised without a real backend.
	FailAt int
}

// NewMemoryReader builds a MemoryReader with no injected failure.
func NewMemoryReader(items []mission.Item) *MemoryReader {
	return &MemoryReader{Items: items, FailAt: -1}
}

func (m *MemoryReader) Count() int {
	return len(m.Items)
}

func (m *MemoryReader) ReadItem(_ context.Context, index int) (mission.Item, error) {
	if index == m.FailAt || index < 0 || index >= len(m.Items) {
		return mission.Item{}, fmt.Errorf("%w: index %d", ErrReadFailed, index)
	}
	return m.Items[index], nil
}
