package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grayman/dealflows/internal/discovery"
)

// Messages for async operations
type scanStartMsg struct{}
type scanCompleteMsg struct {
	instances []*discovery.Instance
	err       error
}

// ScanFunc looks for servers on the network
type ScanFunc func(ctx context.Context) ([]*discovery.Instance, error)

// discoveryKeyMap defines key bindings for the discovery screen
type discoveryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Rescan key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k discoveryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Rescan, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k discoveryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter},
		{k.Rescan, k.Quit},
	}
}

// instanceItem wraps an Instance for use with bubbles/list
type instanceItem struct {
	instance *discovery.Instance
}

func (i instanceItem) FilterValue() string {
	return i.instance.Name + " " + i.instance.IP + " " + i.instance.Hostname
}

func (i instanceItem) Title() string { return i.instance.Name }

func (i instanceItem) Description() string {
	return fmt.Sprintf("%s • version %s", i.instance.URL(), i.instance.Version())
}

// instanceDelegate renders one server per row
type instanceDelegate struct{}

func (d instanceDelegate) Height() int                             { return 2 }
func (d instanceDelegate) Spacing() int                            { return 1 }
func (d instanceDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d instanceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(instanceItem)
	if !ok {
		return
	}

	title := "  " + it.Title()
	if index == m.Index() {
		title = SelectedItemStyle.Render("→ " + it.Title())
	}
	fmt.Fprintf(w, "%s\n    %s", title, SubtitleStyle.Render(it.Description()))
}

// DiscoveryModel lists landing page servers advertised over mDNS
type DiscoveryModel struct {
	Scanning      bool
	InstanceList  list.Model
	Selected      *discovery.Instance
	Err           error
	ScanStartTime time.Time

	scan    ScanFunc
	ctx     context.Context
	Width   int
	Height  int
	Spinner spinner.Model
	Help    help.Model
	Keys    discoveryKeyMap
}

// NewDiscoveryModel creates a discovery screen that scans with scan
func NewDiscoveryModel(ctx context.Context, scan ScanFunc) DiscoveryModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	instances := list.New([]list.Item{}, instanceDelegate{}, MinTerminalWidth, 12)
	instances.Title = "Landing Page Servers"
	instances.SetShowStatusBar(false)
	instances.SetFilteringEnabled(false)
	instances.SetShowHelp(false)
	instances.Styles.Title = TitleStyle

	return DiscoveryModel{
		InstanceList: instances,
		scan:         scan,
		ctx:          ctx,
		Spinner:      s,
		Help:         help.New(),
		Keys: discoveryKeyMap{
			Up: key.NewBinding(
				key.WithKeys("up", "k"),
				key.WithHelp("↑/k", "move up"),
			),
			Down: key.NewBinding(
				key.WithKeys("down", "j"),
				key.WithHelp("↓/j", "move down"),
			),
			Enter: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "select"),
			),
			Rescan: key.NewBinding(
				key.WithKeys("r"),
				key.WithHelp("r", "rescan"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q", "esc", "ctrl+c"),
				key.WithHelp("q", "quit"),
			),
		},
	}
}

// Init starts scanning immediately
func (m DiscoveryModel) Init() tea.Cmd {
	return m.startScan()
}

func (m DiscoveryModel) startScan() tea.Cmd {
	scan, ctx := m.scan, m.ctx
	return tea.Batch(
		func() tea.Msg { return scanStartMsg{} },
		func() tea.Msg {
			instances, err := scan(ctx)
			return scanCompleteMsg{instances: instances, err: err}
		},
		m.Spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m DiscoveryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.Keys.Enter):
			if item, ok := m.InstanceList.SelectedItem().(instanceItem); ok && !m.Scanning {
				m.Selected = item.instance
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.Keys.Rescan):
			if m.Scanning {
				return m, nil
			}
			m.InstanceList.SetItems([]list.Item{})
			m.Err = nil
			return m, m.startScan()
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.InstanceList.SetWidth(msg.Width - 4)
		m.InstanceList.SetHeight(msg.Height - 8)
		return m, nil

	case scanStartMsg:
		m.Scanning = true
		m.ScanStartTime = time.Now()
		return m, nil

	case scanCompleteMsg:
		m.Scanning = false
		m.Err = msg.err
		items := make([]list.Item, len(msg.instances))
		for i, inst := range msg.instances {
			items[i] = instanceItem{instance: inst}
		}
		m.InstanceList.SetItems(items)
		return m, nil

	case spinner.TickMsg:
		if !m.Scanning {
			return m, nil
		}
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	if !m.Scanning {
		m.InstanceList, cmd = m.InstanceList.Update(msg)
	}
	return m, cmd
}

// View renders the discovery screen
func (m DiscoveryModel) View() string {
	width := m.Width
	if width == 0 {
		width = MinTerminalWidth
	}

	var body string
	switch {
	case m.Scanning:
		elapsed := time.Since(m.ScanStartTime).Round(time.Second)
		title := fmt.Sprintf("%s SEARCHING FOR SERVERS", m.Spinner.View())
		body = lipgloss.Place(width, 0, lipgloss.Center, lipgloss.Top, lipgloss.JoinVertical(lipgloss.Center,
			TitleStyle.Render(title),
			SubtitleStyle.Render("Browsing the local network over mDNS..."),
			SubtitleStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		))
	case m.Err != nil:
		body = "\n" + ErrorStyle.Render(fmt.Sprintf("  Scan failed: %v", m.Err)) + "\n"
	case len(m.InstanceList.Items()) == 0:
		var b strings.Builder
		b.WriteString("\n  ")
		b.WriteString(lipgloss.NewStyle().Foreground(WarningColor).Bold(true).Render("⚠ No servers found on your network"))
		b.WriteString("\n\n  Troubleshooting:\n")
		b.WriteString("    • Start one with: dealflows serve --advertise\n")
		b.WriteString("    • Check that multicast traffic is allowed on this network\n")
		b.WriteString("    • Press r to scan again\n")
		body = b.String()
	default:
		body = m.InstanceList.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		HelpStyle.Render(m.Help.View(m.Keys)),
	)
}
