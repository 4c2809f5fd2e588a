package reconcile

import (
	"strings"
	"testing"

	"github.com/rinkstats/crosscheck/pkg/gamedata"
	"github.com/rinkstats/crosscheck/pkg/sources"
)

func TestDetectSimultaneousPenalties(t *testing.T) {
	set := eventSet(sources.EventStreamID, goalKinds(),
		penalty("BUF", 53, 2, "04:00", "roughing", 2, 0),
		penalty("NJD", 11, 2, "04:00", "roughing", 2, 1),
		penalty("NJD", 13, 1, "18:00", "tripping", 2, 2),
	)

	scenarios := DetectScenarios(set)
	simultaneous := scenariosOfKind(scenarios, ScenarioSimultaneousPenalty)
	if len(simultaneous) != 1 {
		t.Fatalf("simultaneous scenarios = %d, want 1", len(simultaneous))
	}
	sc := simultaneous[0]
	if len(sc.InvolvedEvents) != 2 {
		t.Errorf("involved events = %d, want 2", len(sc.InvolvedEvents))
	}
	if !strings.Contains(sc.ResolutionNote, "no power play") {
		t.Errorf("resolution note %q does not state the strength consequence", sc.ResolutionNote)
	}
}

func TestCoincidentSameTeamPenaltiesAreNotSimultaneous(t *testing.T) {
	set := eventSet(sources.EventStreamID, goalKinds(),
		penalty("BUF", 53, 2, "04:00", "roughing", 2, 0),
		penalty("BUF", 26, 2, "04:00", "slashing", 2, 1),
	)
	if got := scenariosOfKind(DetectScenarios(set), ScenarioSimultaneousPenalty); len(got) != 0 {
		t.Errorf("same-team coincident penalties flagged simultaneous: %+v", got)
	}
}

func TestDetectServedByPenalty(t *testing.T) {
	bench := penalty("BUF", 0, 3, "10:00", "too many men", 2, 0)
	bench.ServedBy = player("BUF", 9)
	set := eventSet(sources.EventStreamID, goalKinds(), bench)

	scenarios := scenariosOfKind(DetectScenarios(set), ScenarioServedByPenalty)
	if len(scenarios) != 1 {
		t.Fatalf("served-by scenarios = %d, want 1", len(scenarios))
	}
	note := scenarios[0].ResolutionNote
	if !strings.Contains(note, "attribute to BUF") {
		t.Errorf("resolution note %q does not name the charged team", note)
	}
}

func TestDetectNonAdvantagePenalty(t *testing.T) {
	tests := []struct {
		kind string
		want bool
	}{
		{"fighting", true},
		{"Fighting", true},
		{" game misconduct ", true},
		{"match", true},
		{"tripping", false},
		{"roughing", false},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			set := eventSet(sources.EventStreamID, goalKinds(),
				penalty("NJD", 44, 2, "15:00", tt.kind, 5, 0),
			)
			got := scenariosOfKind(DetectScenarios(set), ScenarioNonAdvantagePenalty)
			if (len(got) == 1) != tt.want {
				t.Errorf("kind %q: %d scenarios, want flagged=%v", tt.kind, len(got), tt.want)
			}
		})
	}
}

func TestDetectPenaltyShotGoal(t *testing.T) {
	ps := goal("BUF", 53, 3, "08:30", 0)
	ps.Strength = gamedata.StrengthPenaltyShot
	set := eventSet(sources.EventStreamID, goalKinds(),
		ps,
		goal("NJD", 86, 1, "05:00", 1),
	)

	scenarios := scenariosOfKind(DetectScenarios(set), ScenarioNonAdvantagePenalty)
	if len(scenarios) != 1 {
		t.Fatalf("penalty-shot annotations = %d, want 1", len(scenarios))
	}
	note := scenarios[0].ResolutionNote
	if !strings.Contains(note, "penalty-shot goal") || !strings.Contains(note, "no strength differential") {
		t.Errorf("resolution note %q does not describe the penalty shot", note)
	}
}

func TestDetectScenariosStableOrder(t *testing.T) {
	set := eventSet(sources.EventStreamID, goalKinds(),
		penalty("NJD", 44, 2, "15:00", "fighting", 5, 0),
		penalty("BUF", 53, 2, "04:00", "roughing", 2, 1),
		penalty("NJD", 11, 2, "04:00", "roughing", 2, 2),
		penalty("BUF", 0, 3, "10:00", "too many men", 2, 3),
	)

	first := DetectScenarios(set)
	for range 5 {
		again := DetectScenarios(set)
		if len(again) != len(first) {
			t.Fatalf("scenario count varies: %d vs %d", len(first), len(again))
		}
		for i := range first {
			if again[i].Kind != first[i].Kind || again[i].ResolutionNote != first[i].ResolutionNote {
				t.Errorf("scenario %d varies between runs", i)
			}
		}
	}
}

func TestDetectScenariosNilSet(t *testing.T) {
	if got := DetectScenarios(nil); got != nil {
		t.Errorf("DetectScenarios(nil) = %+v, want nil", got)
	}
}

func TestScenarioSetExplainsStrength(t *testing.T) {
	set := eventSet(sources.EventStreamID, goalKinds(),
		penalty("BUF", 53, 2, "04:00", "roughing", 2, 0),
		penalty("NJD", 11, 2, "04:00", "roughing", 2, 1),
	)
	index := NewScenarioSet(DetectScenarios(set))

	tests := []struct {
		name      string
		period    int
		clock     string
		tolerance int
		want      bool
	}{
		{"exact slot", 2, "04:00", 0, true},
		{"within tolerance", 2, "04:02", 2, true},
		{"outside tolerance", 2, "04:03", 2, false},
		{"wrong period", 1, "04:00", 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := index.ExplainsStrengthAt(tt.period, gamedata.MustClock(tt.clock), tt.tolerance)
			if got != tt.want {
				t.Errorf("ExplainsStrengthAt(%d, %s, %d) = %v, want %v",
					tt.period, tt.clock, tt.tolerance, got, tt.want)
			}
		})
	}

	var nilSet *ScenarioSet
	if nilSet.ExplainsStrengthAt(1, gamedata.MustClock("00:00"), 0) {
		t.Error("nil scenario set explains a strength mismatch")
	}
	if nilSet.Len() != 0 {
		t.Error("nil scenario set has nonzero length")
	}
}

func scenariosOfKind(scenarios []ComplexScenario, kind ScenarioKind) []ComplexScenario {
	var out []ComplexScenario
	for _, sc := range scenarios {
		if sc.Kind == kind {
			out = append(out, sc)
		}
	}
	return out
}
