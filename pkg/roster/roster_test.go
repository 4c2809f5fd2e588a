package roster

import (
	"errors"
	"testing"

	pkgerrors "github.com/rinkstats/crosscheck/pkg/errors"
	"github.com/rinkstats/crosscheck/pkg/gamedata"
)

func testContext() gamedata.RosterContext {
	return gamedata.RosterContext{
		GameID: "2023020204",
		Entries: []gamedata.RosterEntry{
			{CanonicalID: "8477933", Team: "BUF", JerseyNumber: 53, Name: "J. Skinner"},
			{CanonicalID: "8480839", Team: "BUF", JerseyNumber: 26, Name: "R. Dahlin"},
			{CanonicalID: "8481559", Team: "NJD", JerseyNumber: 13, Name: "N. Hischier"},
			{CanonicalID: "8476462", Team: "NJD", JerseyNumber: 86, Name: "J. Hughes"},
		},
	}
}

func TestNew(t *testing.T) {
	table, err := New(testContext())
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	if table.Len() != 4 {
		t.Errorf("Len() = %d, want 4", table.Len())
	}
	if table.GameID() != "2023020204" {
		t.Errorf("GameID() = %q, want %q", table.GameID(), "2023020204")
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*gamedata.RosterContext)
		wantErr error
	}{
		{
			name:    "empty roster",
			mutate:  func(c *gamedata.RosterContext) { c.Entries = nil },
			wantErr: pkgerrors.ErrEmptyRoster,
		},
		{
			name: "missing team",
			mutate: func(c *gamedata.RosterContext) {
				c.Entries[0].Team = ""
			},
			wantErr: pkgerrors.ErrInvalidInput,
		},
		{
			name: "missing canonical id",
			mutate: func(c *gamedata.RosterContext) {
				c.Entries[1].CanonicalID = ""
			},
			wantErr: pkgerrors.ErrInvalidInput,
		},
		{
			name: "zero jersey",
			mutate: func(c *gamedata.RosterContext) {
				c.Entries[2].JerseyNumber = 0
			},
			wantErr: pkgerrors.ErrInvalidInput,
		},
		{
			name: "duplicate jersey on team",
			mutate: func(c *gamedata.RosterContext) {
				c.Entries[1].JerseyNumber = 53
			},
			wantErr: pkgerrors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			tt.mutate(&ctx)
			_, err := New(ctx)
			if err == nil {
				t.Fatal("New() expected error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	table, err := New(testContext())
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	t.Run("known player", func(t *testing.T) {
		identity, err := table.Resolve("BUF", 53)
		if err != nil {
			t.Fatalf("Resolve(BUF, 53) unexpected error: %v", err)
		}
		if identity.CanonicalID != "8477933" {
			t.Errorf("Resolve(BUF, 53) = %q, want 8477933", identity.CanonicalID)
		}
	})

	t.Run("same jersey other team", func(t *testing.T) {
		identity, err := table.Resolve("NJD", 13)
		if err != nil {
			t.Fatalf("Resolve(NJD, 13) unexpected error: %v", err)
		}
		if identity.CanonicalID != "8481559" {
			t.Errorf("Resolve(NJD, 13) = %q, want 8481559", identity.CanonicalID)
		}
	})

	t.Run("unknown jersey", func(t *testing.T) {
		_, err := table.Resolve("BUF", 99)
		if !pkgerrors.IsUnknownPlayer(err) {
			t.Errorf("Resolve(BUF, 99) error = %v, want unknown player", err)
		}
	})

	t.Run("jersey on wrong team", func(t *testing.T) {
		_, err := table.Resolve("BUF", 86)
		if !pkgerrors.IsUnknownPlayer(err) {
			t.Errorf("Resolve(BUF, 86) error = %v, want unknown player", err)
		}
	})
}

func TestByIDAndName(t *testing.T) {
	table, err := New(testContext())
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	identity, ok := table.ByID("8476462")
	if !ok {
		t.Fatal("ByID(8476462) not found")
	}
	if identity.JerseyNumber != 86 || identity.TeamCode != "NJD" {
		t.Errorf("ByID(8476462) = %v, want NJD #86", identity)
	}

	if got := table.Name("8477933"); got != "J. Skinner" {
		t.Errorf("Name(8477933) = %q, want %q", got, "J. Skinner")
	}
	if got := table.Name("missing"); got != "" {
		t.Errorf("Name(missing) = %q, want empty", got)
	}
}

func TestDeterministicOrder(t *testing.T) {
	table, err := New(testContext())
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	players := table.Players()
	want := []string{"8480839", "8477933", "8481559", "8476462"}
	if len(players) != len(want) {
		t.Fatalf("Players() returned %d entries, want %d", len(players), len(want))
	}
	for i, p := range players {
		if p.CanonicalID != want[i] {
			t.Errorf("Players()[%d] = %s, want %s", i, p.CanonicalID, want[i])
		}
	}

	teams := table.Teams()
	if len(teams) != 2 || teams[0] != "BUF" || teams[1] != "NJD" {
		t.Errorf("Teams() = %v, want [BUF NJD]", teams)
	}
}
