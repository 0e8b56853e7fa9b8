package models

// PackingStatus tracks the preparation state of one packing-list group.
type PackingStatus string

const (
	PackingPending    PackingStatus = "pending"
	PackingPacked     PackingStatus = "packed"
	PackingDispatched PackingStatus = "dispatched"
)

// Valid reports whether the status is one of the three known values.
func (s PackingStatus) Valid() bool {
	switch s {
	case PackingPending, PackingPacked, PackingDispatched:
		return true
	}
	return false
}

// PackingItem is the session-scoped checklist state for one aggregation
// group id. Items are reconciled against the current group-id set whenever
// the dataset changes: ids not seen before start Pending, stale ids are
// dropped.
type PackingItem struct {
	ID     string        `json:"id"`
	Status PackingStatus `json:"status"`
}
