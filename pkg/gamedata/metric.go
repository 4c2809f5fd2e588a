package gamedata

import "slices"

// Metric names a statistic compared across sources.
type Metric string

// String returns the string representation of a metric.
func (m Metric) String() string {
	return string(m)
}

// Metrics compared during reconciliation.
const (
	MetricGoals          Metric = "goals"
	MetricAssists        Metric = "assists"
	MetricPoints         Metric = "points"
	MetricPenaltyMinutes Metric = "pim"
	MetricScore          Metric = "score"
	MetricStrength       Metric = "strength"
)

// Metrics returns all defined metrics.
func Metrics() []Metric {
	return []Metric{
		MetricGoals,
		MetricAssists,
		MetricPoints,
		MetricPenaltyMinutes,
		MetricScore,
		MetricStrength,
	}
}

// IsValid returns true if the metric is one of the defined constants.
func (m Metric) IsValid() bool {
	return slices.Contains(Metrics(), m)
}
