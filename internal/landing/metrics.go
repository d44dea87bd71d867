package landing

import (
	"fmt"
	"strings"
)

// MetricName identifies one animated counter
type MetricName string

const (
	MetricDeals     MetricName = "deals"
	MetricInvestors MetricName = "investors"
	MetricFunds     MetricName = "funds"
)

// Counter caps. The counters hold at these values once reached.
const (
	DealsCap     = 150
	InvestorsCap = 200
	FundsCap     = 100
)

// Metric is a single counter and the cap it animates toward
type Metric struct {
	Name    MetricName `json:"name"`
	Current int        `json:"current"`
	Cap     int        `json:"cap"`
}

// Saturated reports whether the counter has reached its cap
func (m Metric) Saturated() bool {
	return m.Current >= m.Cap
}

// Metrics is the ordered set of counters shown in the statistics section.
// Order is deals, investors, funds.
type Metrics []Metric

// NewMetrics returns all counters at zero
func NewMetrics() Metrics {
	return Metrics{
		{Name: MetricDeals, Cap: DealsCap},
		{Name: MetricInvestors, Cap: InvestorsCap},
		{Name: MetricFunds, Cap: FundsCap},
	}
}

// Advance returns the state after one tick: every counter below its cap
// moves up by exactly one, counters at their cap are unchanged. The input is
// not modified.
func Advance(m Metrics) Metrics {
	next := make(Metrics, len(m))
	for i, metric := range m {
		if metric.Current < metric.Cap {
			metric.Current++
		}
		next[i] = metric
	}
	return next
}

// Saturated reports whether every counter equals its cap
func (m Metrics) Saturated() bool {
	for _, metric := range m {
		if !metric.Saturated() {
			return false
		}
	}
	return true
}

// Get returns the named counter
func (m Metrics) Get(name MetricName) (Metric, bool) {
	for _, metric := range m {
		if metric.Name == name {
			return metric, true
		}
	}
	return Metric{}, false
}

// Value returns the current value of the named counter, or 0 if unknown
func (m Metrics) Value(name MetricName) int {
	metric, _ := m.Get(name)
	return metric.Current
}

// Clone returns an independent copy
func (m Metrics) Clone() Metrics {
	out := make(Metrics, len(m))
	copy(out, m)
	return out
}

// String returns a compact representation, e.g. "deals=3 investors=3 funds=3"
func (m Metrics) String() string {
	parts := make([]string, 0, len(m))
	for _, metric := range m {
		parts = append(parts, fmt.Sprintf("%s=%d", metric.Name, metric.Current))
	}
	return strings.Join(parts, " ")
}
