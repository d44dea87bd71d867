package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/grayman/dealflows/internal/content"
	"github.com/grayman/dealflows/internal/landing"
	"github.com/grayman/dealflows/internal/logging"
)

// tickMsg advances the counters of the mount it was scheduled by
type tickMsg struct {
	gen int
}

// focus identifies the focused part of the page
type focus int

const (
	focusPage focus = iota // browsing; single-key shortcuts are active
	focusName
	focusEmail
	focusInterest
	focusMessage
	focusSubmit
)

// pageKeyMap defines key bindings for the page preview
type pageKeyMap struct {
	Menu    key.Binding
	Remount key.Binding
	Next    key.Binding
	Prev    key.Binding
	Left    key.Binding
	Right   key.Binding
	Enter   key.Binding
	Submit  key.Binding
	Leave   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k pageKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Menu, k.Next, k.Submit, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k pageKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Menu, k.Remount, k.Help, k.Quit},
		{k.Next, k.Prev, k.Left, k.Right},
		{k.Enter, k.Submit, k.Leave},
	}
}

func newPageKeyMap() pageKeyMap {
	return pageKeyMap{
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "menu"),
		),
		Remount: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous interest"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next interest"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next/submit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "submit"),
		),
		Leave: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave form"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// PageOptions configures a PageModel
type PageOptions struct {
	TickInterval time.Duration // 0 = landing.DefaultTickInterval
}

// PageModel renders the landing page in the terminal. It holds the same
// three state slices as landing.Page, driven by Bubble Tea messages instead
// of a goroutine.
type PageModel struct {
	menu    landing.MenuState
	metrics landing.Metrics
	ticks   int
	form    landing.ContactForm
	formErr *landing.ValidationError

	interval  time.Duration
	gen       int // mount generation; ticks from older mounts are dropped
	unmounted bool

	focus    focus
	name     textinput.Model
	email    textinput.Model
	interest int // index into landing.Interests
	message  textarea.Model

	help   help.Model
	keys   pageKeyMap
	width  int
	height int
}

// NewPageModel creates a mounted page model
func NewPageModel(opts PageOptions) PageModel {
	interval := opts.TickInterval
	if interval <= 0 {
		interval = landing.DefaultTickInterval
	}

	name := textinput.New()
	name.Placeholder = content.NamePlaceholder
	name.CharLimit = 100
	name.Width = 40

	email := textinput.New()
	email.Placeholder = content.EmailPlaceholder
	email.CharLimit = 254
	email.Width = 40

	message := textarea.New()
	message.Placeholder = content.MessagePlaceholder
	message.ShowLineNumbers = false
	message.SetWidth(50)
	message.SetHeight(3)

	m := PageModel{
		interval: interval,
		name:     name,
		email:    email,
		message:  message,
		help:     help.New(),
		keys:     newPageKeyMap(),
		width:    GetTerminalWidth(),
	}
	m.mount()
	return m
}

// mount resets every slice to its initial value and starts a new generation
func (m *PageModel) mount() {
	m.gen++
	m.unmounted = false
	m.menu = landing.MenuState{}
	m.metrics = landing.NewMetrics()
	m.ticks = 0
	m.form = landing.ContactForm{}
	m.formErr = nil
	m.loadDraft()
	m.setFocus(focusPage)
}

// Init starts the counter animation
func (m PageModel) Init() tea.Cmd {
	return m.tick()
}

func (m PageModel) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// Update handles messages and updates the model
func (m PageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = clampWidth(msg.Width)
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m.handleTick(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.unmount()
		}
		if m.focus == focusPage {
			return m.updatePage(msg)
		}
		return m.updateForm(msg)
	}

	// Cursor blink and similar
	return m.updateInput(msg)
}

func (m PageModel) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || m.unmounted || m.metrics.Saturated() {
		return m, nil
	}
	m.metrics = landing.Advance(m.metrics)
	m.ticks++
	if m.metrics.Saturated() {
		logging.Debug("Preview counters saturated", zap.Int("ticks", m.ticks))
		return m, nil
	}
	return m, m.tick()
}

func (m PageModel) unmount() (tea.Model, tea.Cmd) {
	m.unmounted = true
	m.setFocus(focusPage)
	return m, tea.Quit
}

func (m PageModel) updatePage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Leave):
		return m.unmount()

	case key.Matches(msg, m.keys.Menu):
		m.menu.Toggle()

	case key.Matches(msg, m.keys.Remount):
		m.mount()
		return m, m.tick()

	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus(focusName)

	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus(focusSubmit)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m PageModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Leave):
		return m, m.setFocus(focusPage)

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus(nextFocus(m.focus))

	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus(prevFocus(m.focus))
	}

	switch m.focus {
	case focusInterest:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.interest = (m.interest + len(landing.Interests) - 1) % len(landing.Interests)
		case key.Matches(msg, m.keys.Right):
			m.interest = (m.interest + 1) % len(landing.Interests)
		case key.Matches(msg, m.keys.Enter):
			return m, m.setFocus(focusMessage)
		}
		return m, nil

	case focusSubmit:
		if key.Matches(msg, m.keys.Enter) {
			return m.submit()
		}
		return m, nil

	case focusName, focusEmail:
		if key.Matches(msg, m.keys.Enter) {
			return m, m.setFocus(nextFocus(m.focus))
		}
	}

	return m.updateInput(msg)
}

// updateInput forwards msg to the focused text field
func (m PageModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
	case focusEmail:
		m.email, cmd = m.email.Update(msg)
	case focusMessage:
		m.message, cmd = m.message.Update(msg)
	}
	return m, cmd
}

// submit runs the contact form handler with the field values
func (m PageModel) submit() (tea.Model, tea.Cmd) {
	in := m.input()

	err := m.form.Submit(in)
	var vErr *landing.ValidationError
	if errors.As(err, &vErr) {
		m.formErr = vErr
		return m, nil
	}

	m.formErr = nil
	m.loadDraft()
	logging.LogSubmission("preview", string(in.Interest), len(strings.TrimSpace(in.Message)))
	return m, m.setFocus(focusPage)
}

func (m PageModel) input() landing.ContactInput {
	return landing.ContactInput{
		Name:     m.name.Value(),
		Email:    m.email.Value(),
		Interest: landing.Interests[m.interest],
		Message:  m.message.Value(),
	}
}

// loadDraft copies the form's draft into the fields
func (m *PageModel) loadDraft() {
	draft := m.form.Draft()
	m.name.SetValue(draft.Name)
	m.email.SetValue(draft.Email)
	m.message.SetValue(draft.Message)
	m.interest = 0
	for i, in := range landing.Interests {
		if in == draft.Interest {
			m.interest = i
		}
	}
}

func (m *PageModel) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.name.Blur()
	m.email.Blur()
	m.message.Blur()

	switch f {
	case focusName:
		return m.name.Focus()
	case focusEmail:
		return m.email.Focus()
	case focusMessage:
		return m.message.Focus()
	}
	return nil
}

func nextFocus(f focus) focus {
	if f >= focusSubmit {
		return focusName
	}
	return f + 1
}

func prevFocus(f focus) focus {
	if f <= focusName {
		return focusSubmit
	}
	return f - 1
}

// Snapshot returns the page state in the same shape the HTTP host renders
func (m PageModel) Snapshot() landing.Snapshot {
	status, hasStatus := m.form.Status()
	return landing.Snapshot{
		MenuOpen:  m.menu.IsOpen(),
		Metrics:   m.metrics.Clone(),
		Saturated: m.metrics.Saturated(),
		Ticks:     m.ticks,
		Status:    status,
		HasStatus: hasStatus,
		Draft:     m.form.Draft(),
		Mounted:   !m.unmounted,
	}
}

// View renders the page
func (m PageModel) View() string {
	if m.unmounted {
		return ""
	}

	width := m.width
	if width == 0 {
		width = MinTerminalWidth
	}
	wrap := lipgloss.NewStyle().Width(width - 2)

	sections := []string{
		m.renderHeader(width),
		m.renderHero(wrap),
		m.renderStats(),
		m.renderServices(wrap),
		m.renderContact(),
		m.renderFooter(wrap),
		HelpStyle.Render(m.help.View(m.keys)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m PageModel) renderHeader(width int) string {
	brand := BrandStyle.Render(content.Brand)
	icon := MenuIconStyle.Render(content.MenuIcon(m.menu.IsOpen()))
	gap := width - lipgloss.Width(brand) - lipgloss.Width(icon) - 2
	if gap < 1 {
		gap = 1
	}
	header := brand + strings.Repeat(" ", gap) + icon

	if !m.menu.IsOpen() {
		return header
	}

	lines := []string{header}
	for _, link := range content.NavLinks {
		if link.Primary {
			lines = append(lines, NavPrimaryStyle.Render(link.Label))
		} else {
			lines = append(lines, NavItemStyle.Render(link.Label))
		}
	}
	return strings.Join(lines, "\n")
}

func (m PageModel) renderHero(wrap lipgloss.Style) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, line := range content.HeroHeadline {
		b.WriteString(HeadlineStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString(wrap.Render(SubtitleStyle.Render(content.HeroText)))
	return b.String()
}

func (m PageModel) renderStats() string {
	boxes := make([]string, 0, len(content.Stats))
	for _, st := range content.Stats {
		value := st.Format(m.metrics.Value(st.Metric))
		boxes = append(boxes, StatBoxStyle.Render(
			StatValueStyle.Render(value)+"\n"+StatLabelStyle.Render(st.Label),
		))
	}
	return "\n" + lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m PageModel) renderServices(wrap lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(SectionTitleStyle.Render("Our Services"))
	for _, svc := range content.Services {
		b.WriteString("\n")
		b.WriteString(ServiceTitleStyle.Render("• " + svc.Title))
		b.WriteString("\n")
		b.WriteString(wrap.Render(SubtitleStyle.Render("  " + svc.Description)))
	}
	return b.String()
}

func (m PageModel) renderContact() string {
	var b strings.Builder
	b.WriteString(SectionTitleStyle.Render(content.ContactHeading))
	b.WriteString("\n")

	b.WriteString(m.renderField(focusName, "Name", m.name.View(), landing.FieldName))
	b.WriteString(m.renderField(focusEmail, "Email", m.email.View(), landing.FieldEmail))

	interest := content.InterestLabel(landing.Interests[m.interest])
	if m.focus == focusInterest {
		interest = "‹ " + interest + " ›"
	}
	b.WriteString(m.renderField(focusInterest, "Interest", interest, landing.FieldInterest))
	b.WriteString(m.renderField(focusMessage, "Message", m.message.View(), landing.FieldMessage))

	button := ButtonStyle.Render(content.SubmitLabel)
	if m.focus == focusSubmit {
		button = FocusedButtonStyle.Render(content.SubmitLabel)
	}
	b.WriteString(button)

	if status, ok := m.form.Status(); ok {
		b.WriteString("\n")
		b.WriteString(StatusStyle.Render(status))
	}
	return b.String()
}

func (m PageModel) renderField(f focus, label, value, field string) string {
	labelStyle := FieldLabelStyle
	if m.focus == f {
		labelStyle = FocusedLabelStyle
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value) + "\n"
	if m.formErr != nil {
		if msg, ok := m.formErr.Message(field); ok {
			line += FieldErrorStyle.Render(fmt.Sprintf("%10s %s", "", msg)) + "\n"
		}
	}
	return line
}

func (m PageModel) renderFooter(wrap lipgloss.Style) string {
	var cols []string
	for _, col := range content.FooterColumns {
		cols = append(cols, col.Title+": "+strings.Join(col.Items, ", "))
	}
	lines := []string{
		content.Brand + " · " + content.Tagline,
		strings.Join(cols, "   "),
		content.ContactAddress,
		content.Copyright,
	}
	return FooterStyle.Render(wrap.Render(strings.Join(lines, "\n")))
}
