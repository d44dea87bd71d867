package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/grayman/dealflows/internal/discovery"
)

// Run shows the landing page preview until the user quits or ctx is done
func Run(ctx context.Context, opts PageOptions) error {
	program := tea.NewProgram(NewPageModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("preview failed: %w", err)
	}
	return nil
}

// RunDiscovery shows the server browser and returns the chosen instance, or
// nil if the user quit without choosing
func RunDiscovery(ctx context.Context, scan ScanFunc) (*discovery.Instance, error) {
	program := tea.NewProgram(NewDiscoveryModel(ctx, scan), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil, nil
		}
		return nil, fmt.Errorf("discovery failed: %w", err)
	}

	m, ok := final.(DiscoveryModel)
	if !ok {
		return nil, nil
	}
	return m.Selected, m.Err
}
