package alarm

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dosewatch/dosewatch/internal/reminder"
)

func TestUpdateKeyActions(t *testing.T) {
	tests := []struct {
		key  string
		want reminder.Action
	}{
		{"t", reminder.ActionTaken},
		{"s", reminder.ActionSnooze},
		{"d", reminder.ActionDismiss},
		{"q", reminder.ActionDismiss},
		{"esc", reminder.ActionDismiss},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := newModel(reminder.Reminder{Title: "Time for Lisinopril"})

			var msg tea.Msg
			switch tt.key {
			case "esc":
				msg = tea.KeyMsg{Type: tea.KeyEsc}
			default:
				msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.key)}
			}

			updated, cmd := m.Update(msg)
			got := updated.(Model)
			if !got.chosen {
				t.Fatal("key should resolve the modal")
			}
			if got.action != tt.want {
				t.Errorf("action = %d, want %d", got.action, tt.want)
			}
			if cmd == nil {
				t.Error("resolving key should quit the program")
			}
		})
	}
}

func TestUpdateIgnoresOtherKeys(t *testing.T) {
	m := newModel(reminder.Reminder{})
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if updated.(Model).chosen {
		t.Error("unmapped key must not resolve the modal")
	}
}

func TestViewShowsReminder(t *testing.T) {
	m := newModel(reminder.Reminder{Title: "Time for Lisinopril", Body: "10mg at 08:00"})
	view := m.View()
	if view == "" {
		t.Fatal("view should render")
	}
}
