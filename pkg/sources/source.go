// Package sources defines the adapter contract for normalizing raw source
// records into typed event sets, plus the registry reconciliation runs use
// to look adapters up by source ID.
//
// Each source of game statistics ships its own adapter under
// internal/sources. Adapters are pure: they receive an in-memory record
// that collectors produced beforehand and return a normalized
// SourceEventSet, applying the semantic corrections their source needs.
// No adapter performs network or disk I/O.
package sources

import (
	"slices"
	"sync"

	"github.com/rinkstats/crosscheck/pkg/gamedata"
	"github.com/rinkstats/crosscheck/pkg/roster"
)

// ID represents the identifier of a statistics source.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Tag returns the ID as the source tag normalized events carry.
func (id ID) Tag() gamedata.SourceTag {
	return gamedata.SourceTag(id)
}

// Known source IDs.
const (
	// EventStreamID is the play-by-play event feed, the usual
	// authoritative source.
	EventStreamID ID = "eventstream"

	// BoxscoreID is the totals-only boxscore feed.
	BoxscoreID ID = "boxscore"

	// GameSummaryID is the detailed scoring report.
	GameSummaryID ID = "gamesummary"

	// ShiftChartID is the shift report whose goal markers denote on-ice
	// presence, never scoring.
	ShiftChartID ID = "shiftchart"
)

// IDs returns all known source IDs.
func IDs() []ID {
	return []ID{
		EventStreamID,
		BoxscoreID,
		GameSummaryID,
		ShiftChartID,
	}
}

// IsValid returns true if the ID is one of the defined constants.
// Uses IDs() to ensure consistency with the authoritative id list.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// RawRecord is one source's structural record for one game, produced
// upstream by collectors and already free of raw markup. Payload is the
// source's normalized JSON document.
type RawRecord struct {
	GameID  string `json:"game_id" yaml:"game_id"`
	Source  ID     `json:"source" yaml:"source"`
	Payload []byte `json:"payload" yaml:"payload"`
}

// Adapter normalizes one source's raw records into typed event sets.
type Adapter interface {
	// ID returns the source this adapter handles
	ID() ID

	// Normalize converts a raw record into a typed event set, resolving
	// player references against the roster table. Returns an
	// AdapterError when required structural fields are missing so the
	// caller can mark the source unavailable and continue.
	Normalize(raw RawRecord, ros *roster.Table) (*gamedata.SourceEventSet, error)
}

// Adapters is a thread-safe container for managing source adapters.
type Adapters struct {
	mu       sync.RWMutex
	adapters map[ID]Adapter
}

// NewAdapters creates a new Adapters instance.
func NewAdapters() *Adapters {
	return &Adapters{
		adapters: make(map[ID]Adapter),
	}
}

// Get returns an adapter by ID.
func (a *Adapters) Get(id ID) (Adapter, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	adapter, found := a.adapters[id]
	return adapter, found
}

// Set sets an adapter by ID.
func (a *Adapters) Set(id ID, adapter Adapter) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.adapters[id] = adapter
}

// Delete deletes an adapter by ID.
func (a *Adapters) Delete(id ID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.adapters, id)
}

// Len returns the number of registered adapters.
func (a *Adapters) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.adapters)
}

// List returns all registered adapters ordered by source ID.
func (a *Adapters) List() []Adapter {
	a.mu.RLock()
	defer a.mu.RUnlock()
	ids := make([]ID, 0, len(a.adapters))
	for id := range a.adapters {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	adapters := make([]Adapter, 0, len(ids))
	for _, id := range ids {
		adapters = append(adapters, a.adapters[id])
	}
	return adapters
}

// IDs returns the registered source IDs, sorted.
func (a *Adapters) IDs() []ID {
	a.mu.RLock()
	defer a.mu.RUnlock()
	ids := make([]ID, 0, len(a.adapters))
	for id := range a.adapters {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
