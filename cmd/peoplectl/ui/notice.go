package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// noticeTTL is how long a notice stays on screen before auto-dismissing.
const noticeTTL = 3500 * time.Millisecond

type noticeKind int

const (
	noticeError noticeKind = iota
	noticeSuccess
)

// noticeExpiredMsg dismisses the notice of the matching generation.
type noticeExpiredMsg struct {
	generation int
}

// NoticeModel shows one transient message at a time. A newer notice replaces
// the current one and restarts the dismiss timer; the generation counter
// keeps a superseded timer from dismissing the newer message early.
type NoticeModel struct {
	text       string
	kind       noticeKind
	generation int
	styles     Styles
}

func NewNoticeModel(styles Styles) NoticeModel {
	return NoticeModel{styles: styles}
}

// Show replaces the current notice and returns the command arming its
// auto-dismiss timer.
func (m *NoticeModel) Show(text string, kind noticeKind) tea.Cmd {
	m.text = text
	m.kind = kind
	m.generation++

	generation := m.generation
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{generation: generation}
	})
}

func (m *NoticeModel) Update(msg tea.Msg) {
	if expired, ok := msg.(noticeExpiredMsg); ok && expired.generation == m.generation {
		m.text = ""
	}
}

// View renders the active notice, or nothing when there is none.
func (m NoticeModel) View() string {
	if m.text == "" {
		return ""
	}
	if m.kind == noticeSuccess {
		return m.styles.Success.Render(m.text)
	}
	return m.styles.Error.Render(m.text)
}
