package eventstream_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinkstats/crosscheck/internal/sources/eventstream"
	"github.com/rinkstats/crosscheck/pkg/errors"
	"github.com/rinkstats/crosscheck/pkg/gamedata"
	"github.com/rinkstats/crosscheck/pkg/roster"
	"github.com/rinkstats/crosscheck/pkg/sources"
)

func testTable(t *testing.T) *roster.Table {
	t.Helper()
	table, err := roster.New(gamedata.RosterContext{
		GameID: "2023020204",
		Entries: []gamedata.RosterEntry{
			{CanonicalID: "BUF-53", Team: "BUF", JerseyNumber: 53},
			{CanonicalID: "BUF-26", Team: "BUF", JerseyNumber: 26},
			{CanonicalID: "BUF-9", Team: "BUF", JerseyNumber: 9},
			{CanonicalID: "NJD-13", Team: "NJD", JerseyNumber: 13},
		},
	})
	require.NoError(t, err)
	return table
}

func record(payload string) sources.RawRecord {
	return sources.RawRecord{
		GameID:  "2023020204",
		Source:  sources.EventStreamID,
		Payload: []byte(payload),
	}
}

func TestNormalizeGoal(t *testing.T) {
	raw := record(`{
		"game_id": "2023020204",
		"plays": [
			{"type_code": 505, "period": 1, "period_type": "REG", "time_in_period": "12:34",
			 "situation_code": "1551", "team": "BUF", "scorer": 53, "assists": [26, 9]}
		]
	}`)

	set, err := eventstream.New().Normalize(raw, testTable(t))
	require.NoError(t, err)
	require.Len(t, set.Events, 1)

	event := set.Events[0]
	assert.Equal(t, gamedata.EventKindGoal, event.Kind)
	assert.Equal(t, gamedata.StrengthEven, event.Strength)
	assert.Equal(t, gamedata.TeamCode("BUF"), event.Team)
	require.NotNil(t, event.PrimaryPlayer)
	assert.Equal(t, "BUF-53", event.PrimaryPlayer.CanonicalID)
	require.Len(t, event.SecondaryPlayers, 2)
	assert.Equal(t, "BUF-26", event.SecondaryPlayers[0].CanonicalID)
	assert.Equal(t, "12:34", event.Clock.String())
	assert.Empty(t, set.Unresolved)
}

func TestNormalizePenalty(t *testing.T) {
	raw := record(`{
		"game_id": "2023020204",
		"plays": [
			{"type_code": 509, "period": 2, "period_type": "REG", "time_in_period": "04:00",
			 "situation_code": "1451", "team": "NJD", "committed_by": 13,
			 "penalty_kind": "tripping", "penalty_minutes": 2}
		]
	}`)

	set, err := eventstream.New().Normalize(raw, testTable(t))
	require.NoError(t, err)
	require.Len(t, set.Events, 1)

	event := set.Events[0]
	assert.Equal(t, gamedata.EventKindPenalty, event.Kind)
	assert.Equal(t, "tripping", event.PenaltyKind)
	assert.Equal(t, 2, event.PenaltyMinutes)
	require.NotNil(t, event.PrimaryPlayer)
	assert.Equal(t, "NJD-13", event.PrimaryPlayer.CanonicalID)
}

func TestNormalizeTeamInfraction(t *testing.T) {
	raw := record(`{
		"game_id": "2023020204",
		"plays": [
			{"type_code": 509, "period": 3, "period_type": "REG", "time_in_period": "10:00",
			 "team": "BUF", "committed_by": 0, "served_by": 9,
			 "penalty_kind": "too many men", "penalty_minutes": 2}
		]
	}`)

	set, err := eventstream.New().Normalize(raw, testTable(t))
	require.NoError(t, err)
	require.Len(t, set.Events, 1)

	event := set.Events[0]
	assert.Nil(t, event.PrimaryPlayer)
	require.NotNil(t, event.ServedBy)
	assert.Equal(t, "BUF-9", event.ServedBy.CanonicalID)
	assert.True(t, event.IsTeamInfraction())
}

func TestNormalizeSkipsNonScoringCodes(t *testing.T) {
	raw := record(`{
		"game_id": "2023020204",
		"plays": [
			{"type_code": 502, "period": 1, "time_in_period": "00:00", "team": "BUF"},
			{"type_code": 506, "period": 1, "time_in_period": "01:11", "team": "BUF"},
			{"type_code": 505, "period": 1, "period_type": "REG", "time_in_period": "12:34",
			 "situation_code": "1551", "team": "BUF", "scorer": 53},
			{"type_code": 521, "period": 1, "time_in_period": "20:00", "team": "BUF"},
			{"type_code": 777, "period": 1, "time_in_period": "05:00", "team": "BUF"}
		]
	}`)

	set, err := eventstream.New().Normalize(raw, testTable(t))
	require.NoError(t, err)
	assert.Len(t, set.Events, 1, "only the goal code produces an event")
}

func TestNormalizePeriodTypes(t *testing.T) {
	tests := []struct {
		name       string
		period     int
		periodType string
		want       gamedata.PeriodType
	}{
		{"regulation", 2, "REG", gamedata.PeriodTypeRegulation},
		{"overtime", 4, "OT", gamedata.PeriodTypeOvertime},
		{"shootout", 5, "SO", gamedata.PeriodTypeShootout},
		{"absent descriptor regulation", 3, "", gamedata.PeriodTypeRegulation},
		{"absent descriptor extra period", 4, "", gamedata.PeriodTypeOvertime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := record(fmt.Sprintf(`{
				"game_id": "2023020204",
				"plays": [
					{"type_code": 505, "period": %d, "period_type": %q,
					 "time_in_period": "01:00", "situation_code": "1551", "team": "BUF", "scorer": 53}
				]
			}`, tt.period, tt.periodType))
			set, err := eventstream.New().Normalize(raw, testTable(t))
			require.NoError(t, err)
			require.Len(t, set.Events, 1)
			assert.Equal(t, tt.want, set.Events[0].PeriodType)
		})
	}
}

func TestNormalizeRecordsUnresolvedReferences(t *testing.T) {
	raw := record(`{
		"game_id": "2023020204",
		"plays": [
			{"type_code": 505, "period": 1, "period_type": "REG", "time_in_period": "12:34",
			 "situation_code": "1551", "team": "BUF", "scorer": 99, "assists": [26]}
		]
	}`)

	set, err := eventstream.New().Normalize(raw, testTable(t))
	require.NoError(t, err, "unresolved references never fail normalization")
	require.Len(t, set.Unresolved, 1)
	assert.Equal(t, gamedata.TeamCode("BUF"), set.Unresolved[0].Team)
	assert.Equal(t, 99, set.Unresolved[0].Jersey)

	require.Len(t, set.Events, 1)
	assert.Nil(t, set.Events[0].PrimaryPlayer, "unresolved scorer stays unattributed")
	assert.Len(t, set.Events[0].SecondaryPlayers, 1, "resolved assist kept")
}

func TestNormalizeStructuralFailures(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"malformed json", `{"plays": [`},
		{"missing plays", `{"game_id": "2023020204"}`},
		{"missing team", `{"plays": [{"type_code": 505, "period": 1, "time_in_period": "01:00"}]}`},
		{"period out of range", `{"plays": [{"type_code": 505, "period": 10, "time_in_period": "01:00", "team": "BUF"}]}`},
		{"bad clock", `{"plays": [{"type_code": 505, "period": 1, "time_in_period": "12.34", "team": "BUF"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eventstream.New().Normalize(record(tt.payload), testTable(t))
			require.Error(t, err)
			var adapterErr *errors.AdapterError
			assert.ErrorAs(t, err, &adapterErr)
		})
	}
}

func TestNormalizeDeclaresKinds(t *testing.T) {
	set, err := eventstream.New().Normalize(record(`{"plays": []}`), testTable(t))
	require.NoError(t, err)
	assert.True(t, set.ReportsKind(gamedata.EventKindGoal))
	assert.True(t, set.ReportsKind(gamedata.EventKindPenalty))
	assert.False(t, set.ReportsKind(gamedata.EventKindOnIceDuringGoal))
}
