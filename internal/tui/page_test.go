package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/grayman/dealflows/internal/landing"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m PageModel, msg tea.Msg) (PageModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	pm, ok := next.(PageModel)
	if !ok {
		t.Fatalf("Update returned %T, want PageModel", next)
	}
	return pm, cmd
}

func tickN(t *testing.T, m PageModel, n int) (PageModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		m, cmd = update(t, m, tickMsg{gen: m.gen})
	}
	return m, cmd
}

func TestNewPageModelInitialState(t *testing.T) {
	m := NewPageModel(PageOptions{})

	snap := m.Snapshot()
	if snap.MenuOpen || snap.HasStatus || snap.Ticks != 0 || !snap.Mounted {
		t.Errorf("unexpected initial snapshot %+v", snap)
	}
	if got := snap.Metrics.String(); got != "deals=0 investors=0 funds=0" {
		t.Errorf("metrics = %s", got)
	}
	if m.interval != landing.DefaultTickInterval {
		t.Errorf("interval = %v, want %v", m.interval, landing.DefaultTickInterval)
	}
	if m.Init() == nil {
		t.Error("Init() should schedule the first tick")
	}

	view := m.View()
	for _, want := range []string{"$0M+", "0+", "☰", "GrayMan Dealflows"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Connect With Us") {
		t.Error("nav links should be hidden while the menu is closed")
	}
}

func TestMenuToggle(t *testing.T) {
	m := NewPageModel(PageOptions{})

	for i := 1; i <= 4; i++ {
		m, _ = update(t, m, runes("m"))
		wantOpen := i%2 == 1
		if m.Snapshot().MenuOpen != wantOpen {
			t.Fatalf("after %d toggles open = %v, want %v", i, !wantOpen, wantOpen)
		}
		view := m.View()
		if wantOpen && (!strings.Contains(view, "✕") || !strings.Contains(view, "Connect With Us")) {
			t.Errorf("open menu view missing close mark or nav links")
		}
		if !wantOpen && !strings.Contains(view, "☰") {
			t.Errorf("closed menu view missing hamburger")
		}
	}
}

func TestTicksAdvanceCounters(t *testing.T) {
	m := NewPageModel(PageOptions{})

	m, cmd := tickN(t, m, 120)
	if cmd == nil {
		t.Error("next tick should be scheduled before saturation")
	}
	if got := m.Snapshot().Metrics.String(); got != "deals=120 investors=120 funds=100" {
		t.Errorf("metrics = %s", got)
	}
	if !strings.Contains(m.View(), "$120M+") {
		t.Error("view should show $120M+")
	}

	m, cmd = tickN(t, m, 80)
	if cmd != nil {
		t.Error("no tick should be scheduled after saturation")
	}
	snap := m.Snapshot()
	if !snap.Saturated || snap.Metrics.String() != "deals=150 investors=200 funds=100" {
		t.Errorf("snapshot after 200 ticks = %+v", snap)
	}

	m, cmd = update(t, m, tickMsg{gen: m.gen})
	if cmd != nil || m.Snapshot().Ticks != 200 {
		t.Error("tick after saturation should be ignored")
	}
}

func TestStaleTicksIgnored(t *testing.T) {
	m := NewPageModel(PageOptions{})
	m, _ = tickN(t, m, 5)
	oldGen := m.gen

	m, cmd := update(t, m, runes("r"))
	if cmd == nil {
		t.Fatal("reload should schedule a tick for the new mount")
	}
	if m.gen == oldGen {
		t.Fatal("reload should start a new generation")
	}
	if got := m.Snapshot().Metrics.Value(landing.MetricDeals); got != 0 {
		t.Fatalf("deals after reload = %d, want 0", got)
	}

	m, cmd = update(t, m, tickMsg{gen: oldGen})
	if cmd != nil {
		t.Error("stale tick scheduled another tick")
	}
	if got := m.Snapshot().Ticks; got != 0 {
		t.Errorf("stale tick applied, ticks = %d", got)
	}
}

func TestQuitUnmounts(t *testing.T) {
	m := NewPageModel(PageOptions{})

	m, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("quit should return tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if m.Snapshot().Mounted {
		t.Error("model still mounted after quit")
	}

	m, cmd = update(t, m, tickMsg{gen: m.gen})
	if cmd != nil || m.Snapshot().Ticks != 0 {
		t.Error("tick applied after quit")
	}
}

func TestFormFocusCycle(t *testing.T) {
	m := NewPageModel(PageOptions{})
	tab := tea.KeyMsg{Type: tea.KeyTab}

	want := []focus{focusName, focusEmail, focusInterest, focusMessage, focusSubmit, focusName}
	for i, f := range want {
		m, _ = update(t, m, tab)
		if m.focus != f {
			t.Fatalf("after %d tabs focus = %d, want %d", i+1, m.focus, f)
		}
	}

	// "m" is typed into the field instead of toggling the menu
	m, _ = update(t, m, runes("m"))
	if m.Snapshot().MenuOpen {
		t.Error("menu toggled while typing in a field")
	}
	if m.name.Value() != "m" {
		t.Errorf("name = %q, want m", m.name.Value())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.focus != focusPage {
		t.Errorf("esc should return to browsing, focus = %d", m.focus)
	}
}

func TestInterestCycle(t *testing.T) {
	m := NewPageModel(PageOptions{})
	m.setFocus(focusInterest)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := landing.Interests[m.interest]; got != landing.InterestMarketing {
		t.Errorf("interest = %q, want marketing", got)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if got := landing.Interests[m.interest]; got != landing.InterestOther {
		t.Errorf("interest = %q, want other (wraps around)", got)
	}
}

func fillForm(m PageModel, name, email string, interest int, message string) PageModel {
	m.name.SetValue(name)
	m.email.SetValue(email)
	m.interest = interest
	m.message.SetValue(message)
	return m
}

func TestSubmitValid(t *testing.T) {
	m := NewPageModel(PageOptions{})
	m.setFocus(focusName)
	m = fillForm(m, "Ada", "ada@example.com", 2, "Series A")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	snap := m.Snapshot()
	if !snap.HasStatus || snap.Status != landing.AcknowledgmentMessage {
		t.Errorf("status = %q (%v), want acknowledgment", snap.Status, snap.HasStatus)
	}
	if m.name.Value() != "" || m.email.Value() != "" || m.message.Value() != "" || m.interest != 0 {
		t.Error("fields should be cleared after a valid submission")
	}
	if m.formErr != nil {
		t.Errorf("formErr = %v, want nil", m.formErr)
	}
	if !strings.Contains(m.View(), landing.AcknowledgmentMessage) {
		t.Error("view should show the acknowledgment")
	}
}

func TestSubmitInvalid(t *testing.T) {
	m := NewPageModel(PageOptions{})
	m.setFocus(focusSubmit)
	m = fillForm(m, "Ada", "", 0, "hello")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Snapshot().HasStatus {
		t.Error("status set by an invalid submission")
	}
	if m.formErr == nil || !m.formErr.Has(landing.FieldEmail) {
		t.Fatalf("formErr = %v, want an email error", m.formErr)
	}
	if m.name.Value() != "Ada" || m.message.Value() != "hello" {
		t.Error("field values should be kept after a rejected submission")
	}
	if !strings.Contains(m.View(), "email is required") {
		t.Error("view should show the email error")
	}
}

func TestClampWidth(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{10, MinTerminalWidth},
		{80, 80},
		{500, MaxContentWidth},
	}
	for _, tt := range tests {
		if got := clampWidth(tt.in); got != tt.want {
			t.Errorf("clampWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
