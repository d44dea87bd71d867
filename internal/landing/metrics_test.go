package landing

import "testing"

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// TestAdvanceMatchesMinOfTicksAndCap checks every counter equals min(t, cap) after t ticks
func TestAdvanceMatchesMinOfTicksAndCap(t *testing.T) {
	m := NewMetrics()
	for tick := 0; tick <= 260; tick++ {
		if got, want := m.Value(MetricDeals), minInt(tick, DealsCap); got != want {
			t.Fatalf("tick %d: deals = %d, want %d", tick, got, want)
		}
		if got, want := m.Value(MetricInvestors), minInt(tick, InvestorsCap); got != want {
			t.Fatalf("tick %d: investors = %d, want %d", tick, got, want)
		}
		if got, want := m.Value(MetricFunds), minInt(tick, FundsCap); got != want {
			t.Fatalf("tick %d: funds = %d, want %d", tick, got, want)
		}
		m = Advance(m)
	}
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	m := NewMetrics()
	next := Advance(m)

	if m.Value(MetricDeals) != 0 {
		t.Errorf("input mutated: %s", m)
	}
	if next.Value(MetricDeals) != 1 {
		t.Errorf("next deals = %d, want 1", next.Value(MetricDeals))
	}
}

func TestSaturation(t *testing.T) {
	tests := []struct {
		name  string
		ticks int
		want  bool
	}{
		{"Mount", 0, false},
		{"Funds capped only", 100, false},
		{"Deals and funds capped", 150, false},
		{"One tick short", 199, false},
		{"Investors reach cap", 200, true},
		{"Well past saturation", 500, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMetrics()
			for i := 0; i < tt.ticks; i++ {
				m = Advance(m)
			}
			if got := m.Saturated(); got != tt.want {
				t.Errorf("Saturated() after %d ticks = %v, want %v (%s)", tt.ticks, got, tt.want, m)
			}
		})
	}
}

func TestAdvanceIdempotentAtSaturation(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < InvestorsCap; i++ {
		m = Advance(m)
	}
	saturated := m.String()

	for i := 0; i < 50; i++ {
		m = Advance(m)
		if m.String() != saturated {
			t.Fatalf("tick %d past saturation changed state: %s -> %s", i+1, saturated, m)
		}
	}
}

func TestMetricsOrderAndCaps(t *testing.T) {
	m := NewMetrics()
	want := []struct {
		name MetricName
		cap  int
	}{
		{MetricDeals, 150},
		{MetricInvestors, 200},
		{MetricFunds, 100},
	}
	if len(m) != len(want) {
		t.Fatalf("len = %d, want %d", len(m), len(want))
	}
	for i, w := range want {
		if m[i].Name != w.name || m[i].Cap != w.cap || m[i].Current != 0 {
			t.Errorf("metric %d = %+v, want %s cap %d at 0", i, m[i], w.name, w.cap)
		}
	}

	if _, ok := m.Get("revenue"); ok {
		t.Error("Get(revenue) found an unknown metric")
	}
	if m.Value("revenue") != 0 {
		t.Error("Value of unknown metric should be 0")
	}
}

func TestMetricsString(t *testing.T) {
	m := Advance(Advance(NewMetrics()))
	if got, want := m.String(), "deals=2 investors=2 funds=2"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
