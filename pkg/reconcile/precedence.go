package reconcile

import (
	"slices"
	"strings"

	"github.com/rinkstats/crosscheck/pkg/errors"
	"github.com/rinkstats/crosscheck/pkg/sources"
)

// Precedence is the explicit source ordering for one reconciliation run.
// The first source is authoritative for every metric; the remainder are
// secondary sources compared against it in order. Precedence is threaded
// through the engine as configuration rather than read from a constant so
// it can be tested independently of matching and classification.
type Precedence struct {
	Order []sources.ID `json:"order" yaml:"order"`
}

// DefaultPrecedence returns the standard ordering: the play-by-play event
// stream is authoritative, then the detailed scoring report, the boxscore
// totals, and the shift chart.
func DefaultPrecedence() Precedence {
	return Precedence{
		Order: []sources.ID{
			sources.EventStreamID,
			sources.GameSummaryID,
			sources.BoxscoreID,
			sources.ShiftChartID,
		},
	}
}

// ParsePrecedence builds a Precedence from a comma-separated list of
// source IDs, as configuration files and flags provide it.
func ParsePrecedence(s string) (Precedence, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultPrecedence(), nil
	}
	var p Precedence
	for _, part := range strings.Split(s, ",") {
		id := sources.ID(strings.TrimSpace(part))
		if id == "" {
			continue
		}
		p.Order = append(p.Order, id)
	}
	if err := p.Validate(); err != nil {
		return Precedence{}, err
	}
	return p, nil
}

// Validate checks that the ordering names at least one source, every
// source is known, and no source appears twice.
func (p Precedence) Validate() error {
	if len(p.Order) == 0 {
		return errors.NewValidationError("precedence", nil, "precedence cannot be empty")
	}
	seen := make(map[sources.ID]struct{}, len(p.Order))
	for _, id := range p.Order {
		if !id.IsValid() {
			return errors.NewValidationError("precedence", string(id), "unknown source ID")
		}
		if _, dup := seen[id]; dup {
			return errors.NewValidationError("precedence", string(id), "source listed twice")
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Authoritative returns the source designated ground truth.
func (p Precedence) Authoritative() sources.ID {
	if len(p.Order) == 0 {
		return ""
	}
	return p.Order[0]
}

// Secondaries returns the non-authoritative sources in precedence order.
func (p Precedence) Secondaries() []sources.ID {
	if len(p.Order) <= 1 {
		return nil
	}
	return slices.Clone(p.Order[1:])
}

// Contains reports whether the ordering names the source.
func (p Precedence) Contains(id sources.ID) bool {
	return slices.Contains(p.Order, id)
}

// String formats the ordering as a comma-separated list.
func (p Precedence) String() string {
	parts := make([]string, len(p.Order))
	for i, id := range p.Order {
		parts[i] = string(id)
	}
	return strings.Join(parts, ",")
}
