package session

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// timerTickMsg is sent every second while a quiz is running. Gen ties the
// tick to the engine timer that scheduled it.
type timerTickMsg struct {
	Gen uint64
	At  time.Time
}

// tickCmd returns a 1-second tick command for timer generation gen.
func tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{Gen: gen, At: t}
	})
}
