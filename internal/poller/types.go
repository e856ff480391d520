// internal/poller/types.go
package poller

import "time"

// Snapshot is the complete decoded result of one acquisition pass.
// It is built fresh per pass and never partially published: either every
// catalogued register is present under both keys, or no snapshot exists.
type Snapshot struct {
	At time.Time

	// ByAddress keys values by wire address, ByName by display name.
	// Both maps hold the same values.
	ByAddress map[uint16]any
	ByName    map[string]any
}

// Result is what interval mode emits per tick.
type Result struct {
	At       time.Time
	Snapshot *Snapshot // nil when Err is non-nil
	Err      error
}
