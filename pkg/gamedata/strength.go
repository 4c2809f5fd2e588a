package gamedata

import "slices"

// StrengthContext is the man-advantage situation during an event.
type StrengthContext string

// String returns the string representation of a strength context.
func (s StrengthContext) String() string {
	return string(s)
}

// Strength contexts.
const (
	StrengthEven        StrengthContext = "even"
	StrengthPowerPlay   StrengthContext = "power_play"
	StrengthShortHanded StrengthContext = "short_handed"
	StrengthFourOnFour  StrengthContext = "four_on_four"
	StrengthThreeOnThree StrengthContext = "three_on_three"
	StrengthEmptyNet    StrengthContext = "empty_net"
	StrengthPenaltyShot StrengthContext = "penalty_shot"
	StrengthUnknown     StrengthContext = "unknown"
)

// StrengthContexts returns all defined strength contexts.
func StrengthContexts() []StrengthContext {
	return []StrengthContext{
		StrengthEven,
		StrengthPowerPlay,
		StrengthShortHanded,
		StrengthFourOnFour,
		StrengthThreeOnThree,
		StrengthEmptyNet,
		StrengthPenaltyShot,
		StrengthUnknown,
	}
}

// IsValid returns true if the strength context is one of the defined constants.
func (s StrengthContext) IsValid() bool {
	return slices.Contains(StrengthContexts(), s)
}

// situationCodes maps the event stream's four-digit situation code to a
// strength context, read from the scoring team's perspective. The outer
// digits are the goalie flags, the inner digits the skater counts.
var situationCodes = map[string]StrengthContext{
	"1551": StrengthEven,
	"1451": StrengthPowerPlay,
	"1541": StrengthPowerPlay,
	"1351": StrengthShortHanded,
	"1531": StrengthShortHanded,
	"1441": StrengthFourOnFour,
	"1331": StrengthThreeOnThree,
	"0101": StrengthPenaltyShot,
	"1010": StrengthPenaltyShot,
}

// ParseSituationCode decodes a four-digit situation code. A missing goalie
// digit on either side reads as an empty-net situation; codes outside the
// table read as unknown, never an error, because feeds occasionally carry
// transitional codes during delayed penalties.
func ParseSituationCode(code string) StrengthContext {
	if code == "" {
		return StrengthUnknown
	}
	if s, ok := situationCodes[code]; ok {
		return s
	}
	if len(code) == 4 && (code[0] == '0' || code[3] == '0') {
		return StrengthEmptyNet
	}
	return StrengthUnknown
}

// ParseStrengthLabel normalizes the short strength labels printed by
// report-style sources ("EV", "PP", "SH", "EN", "PS").
func ParseStrengthLabel(label string) StrengthContext {
	switch label {
	case "EV", "ev":
		return StrengthEven
	case "PP", "pp", "PPG":
		return StrengthPowerPlay
	case "SH", "sh", "SHG":
		return StrengthShortHanded
	case "EN", "en":
		return StrengthEmptyNet
	case "PS", "ps":
		return StrengthPenaltyShot
	case "":
		return StrengthUnknown
	default:
		return StrengthUnknown
	}
}
