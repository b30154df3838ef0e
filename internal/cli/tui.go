package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fpgakit/placer/pkg/search"
)

var (
	tuiBarFilled = lipgloss.NewStyle().Foreground(colorCyan)
	tuiBarEmpty  = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// SearchModel - Live search progress
// =============================================================================

// sampleMsg carries one per-step cost sample into the model.
type sampleMsg search.Sample

// searchDoneMsg signals that the sample stream has ended.
type searchDoneMsg struct{}

// SearchModel is the bubbletea model for live search progress. It consumes
// cost samples from a channel that the search driver feeds via its OnStep
// callback; closing the channel ends the program.
type SearchModel struct {
	Steps       int
	InitialCost int
	Current     search.Sample
	Quit        bool

	samples <-chan search.Sample
	width   int
	started bool
}

// NewSearchModel creates a progress model reading samples from the channel.
func NewSearchModel(steps, initialCost int, samples <-chan search.Sample) SearchModel {
	return SearchModel{
		Steps:       steps,
		InitialCost: initialCost,
		Current:     search.Sample{Cost: initialCost},
		samples:     samples,
		width:       60,
	}
}

func (m SearchModel) Init() tea.Cmd {
	return m.waitForSample()
}

// waitForSample blocks on the sample channel and converts the next sample
// into a message. A closed channel means the search finished.
func (m SearchModel) waitForSample() tea.Cmd {
	return func() tea.Msg {
		sample, ok := <-m.samples
		if !ok {
			return searchDoneMsg{}
		}
		return sampleMsg(sample)
	}
}

func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Quit = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width - 20
		if m.width < 20 {
			m.width = 20
		}
	case sampleMsg:
		if !m.started && m.InitialCost == 0 {
			// The first sample carries the pre-search cost.
			m.InitialCost = msg.Cost
		}
		m.started = true
		m.Current = search.Sample(msg)
		return m, m.waitForSample()
	case searchDoneMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m SearchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Placing"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q cancel"))
	b.WriteString("\n\n")

	b.WriteString("  " + m.bar())
	b.WriteString("\n\n")

	step := m.Current.Step
	if m.started {
		step++
	}
	b.WriteString(fmt.Sprintf("  %s %s\n",
		StyleDim.Render("step"),
		StyleValue.Render(fmt.Sprintf("%d/%d", step, m.Steps))))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		StyleDim.Render("cost"),
		StyleNumber.Render(fmt.Sprintf("%d", m.Current.Cost))))

	if m.InitialCost > 0 && m.Current.Cost < m.InitialCost {
		pct := 100 * float64(m.InitialCost-m.Current.Cost) / float64(m.InitialCost)
		b.WriteString(fmt.Sprintf("  %s %s\n",
			StyleDim.Render("gain"),
			StyleSuccess.Render(fmt.Sprintf("-%.1f%%", pct))))
	}

	return b.String()
}

// bar renders a progress bar sized to the terminal width.
func (m SearchModel) bar() string {
	barWidth := m.width
	if barWidth > 60 {
		barWidth = 60
	}

	filled := 0
	if m.Steps > 0 {
		filled = (m.Current.Step + 1) * barWidth / m.Steps
	}
	if !m.started {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}

	return tuiBarFilled.Render(strings.Repeat("█", filled)) +
		tuiBarEmpty.Render(strings.Repeat("░", barWidth-filled))
}
