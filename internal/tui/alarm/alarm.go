package alarm

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dosewatch/dosewatch/internal/reminder"
)

var (
	boxStyle = lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("196")).
			Align(lipgloss.Center)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(1, 0)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

type tickMsg time.Time

// Model is the ringing-alarm modal: it blocks until the user picks
// dismiss, snooze or taken.
type Model struct {
	reminder reminder.Reminder
	action   reminder.Action
	chosen   bool
	now      time.Time
	width    int
	height   int
}

func newModel(r reminder.Reminder) Model {
	return Model{reminder: r, action: reminder.ActionDismiss, now: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "t":
			m.action = reminder.ActionTaken
			m.chosen = true
			return m, tea.Quit
		case "s":
			m.action = reminder.ActionSnooze
			m.chosen = true
			return m, tea.Quit
		case "d", "esc", "q", "enter", "ctrl+c":
			m.action = reminder.ActionDismiss
			m.chosen = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	content := titleStyle.Render("🔔  "+m.reminder.Title) + "\n" +
		bodyStyle.Render(m.reminder.Body) + "\n" +
		helpStyle.Render(fmt.Sprintf("%s\n[t] taken  [s] snooze 5 min  [d] dismiss", m.now.Format("15:04:05")))

	box := boxStyle.Render(content)
	if m.width == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// Run presents the alarm modal and returns the chosen action. It
// satisfies reminder.PromptFunc. A UI failure falls back to dismiss at
// the caller, so the alarm sound never loops forever.
func Run(r reminder.Reminder) (reminder.Action, error) {
	p := tea.NewProgram(newModel(r), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return reminder.ActionDismiss, fmt.Errorf("alarm modal failed: %w", err)
	}

	m, ok := final.(Model)
	if !ok || !m.chosen {
		return reminder.ActionDismiss, nil
	}
	return m.action, nil
}
