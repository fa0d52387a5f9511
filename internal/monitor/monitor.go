package monitor

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/costview/costview-go/internal/aggregator"
	"github.com/costview/costview-go/internal/cache"
	"github.com/costview/costview-go/internal/output"
	"github.com/costview/costview-go/internal/types"
)

// Monitor shows the cost report in the terminal and refreshes it on a timer.
// Refreshes go through the snapshot cache, so a tick inside the TTL redraws
// without hitting the API.
type Monitor struct {
	options Options
	agg     *aggregator.Aggregator
}

type Options struct {
	Interval time.Duration
	NoColor  bool
}

type model struct {
	options    Options
	cache      *cache.Snapshot[*types.CostReport]
	report     *types.CostReport
	lastUpdate time.Time
	err        error
}

type tickMsg time.Time

type reportMsg struct {
	report *types.CostReport
	err    error
}

func New(agg *aggregator.Aggregator, opts Options) *Monitor {
	if opts.Interval == 0 {
		opts.Interval = 5 * time.Minute
	}
	return &Monitor{options: opts, agg: agg}
}

func (m *Monitor) Start(ctx context.Context) error {
	// Fall back to a one-shot print when stdout is not a terminal.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return m.runOnce(ctx)
	}

	snapshot := cache.New(m.options.Interval, m.agg.FetchReport)
	p := tea.NewProgram(
		model{options: m.options, cache: snapshot},
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}

func (m *Monitor) runOnce(ctx context.Context) error {
	report, err := m.agg.FetchReport(ctx)
	if err != nil {
		return err
	}
	formatter := output.NewTableWriterFormatter(true)
	fmt.Print(formatter.FormatReport(report))
	return nil
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.options.Interval),
		m.refresh(false),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			return m, m.refresh(true)
		}

	case tickMsg:
		return m, tea.Batch(
			tickCmd(m.options.Interval),
			m.refresh(false),
		)

	case reportMsg:
		if msg.err != nil {
			m.err = msg.err
			// Keep showing the previous report next to the error.
			return m, nil
		}
		m.err = nil
		m.report = msg.report
		m.lastUpdate = time.Now()
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	title := m.style(lipgloss.NewStyle().Bold(true), "205").Render("AWS Cost Monitor")

	body := "Fetching cost data...\n"
	if m.report != nil {
		body = m.summary(m.report)
	}

	footer := m.style(lipgloss.NewStyle(), "240").Render("q: quit  r: refresh")

	view := "\n" + title + "\n\n" + body
	if m.err != nil {
		errLine := m.style(lipgloss.NewStyle().Bold(true), "196").Render(fmt.Sprintf("Error: %v", m.err))
		view += "\n" + errLine + "\n"
		if hint := types.Hint(m.err); hint != "" {
			view += hint + "\n"
		}
	}
	if !m.lastUpdate.IsZero() {
		view += fmt.Sprintf("\nLast update: %s\n", m.lastUpdate.Format("15:04:05"))
	}
	return view + "\n" + footer + "\n"
}

func (m model) summary(report *types.CostReport) string {
	p := report.Projection

	var body string
	body += fmt.Sprintf("Last %d days:      $%.2f  ($%.2f/day)\n", len(report.Daily), report.WindowTotal, report.WindowAverage())
	body += fmt.Sprintf("%s:          $%.2f\n", report.Previous.Label(), report.Previous.Amount)
	body += fmt.Sprintf("%s to date:  $%.2f  (%d/%d days)\n", report.Current.Label(), report.Current.Amount, p.DaysElapsed, p.DaysInMonth)
	body += fmt.Sprintf("Estimated total:   $%.2f\n", p.Estimated)
	if p.HasPrevious {
		body += fmt.Sprintf("Change:            %+.1f%% vs last month\n", p.ChangePercent)
	}

	if len(report.Services) > 0 {
		body += "\nTop services:\n"
		top := report.Services
		if len(top) > 5 {
			top = top[:5]
		}
		for _, s := range top {
			body += fmt.Sprintf("  %-40s $%.2f (%.1f%%)\n", s.Service, s.Amount, s.Percent)
		}
	}
	return body
}

func (m model) refresh(force bool) tea.Cmd {
	return func() tea.Msg {
		report, err := m.cache.Refresh(context.Background(), force)
		return reportMsg{report: report, err: err}
	}
}

func (m model) style(base lipgloss.Style, color string) lipgloss.Style {
	if m.options.NoColor {
		return base
	}
	return base.Foreground(lipgloss.Color(color))
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
