package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/voicepizza/pv/internal/adapters/transcript"
	"github.com/voicepizza/pv/internal/application"
	"github.com/voicepizza/pv/internal/domain"
)

const transcriptPollInterval = 250 * time.Millisecond

type turnDoneMsg struct {
	state domain.ConversationState
	err   error
}

type transcriptTickMsg struct{}

type dialogStyles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	message   lipgloss.Style
	pending   lipgloss.Style
	completed lipgloss.Style
	notice    lipgloss.Style
	failure   lipgloss.Style
	help      lipgloss.Style
}

func newDialogStyles() dialogStyles {
	return dialogStyles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		message:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		completed: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		notice:    lipgloss.NewStyle().Faint(true),
		failure:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		help:      lipgloss.NewStyle().Faint(true),
	}
}

// orderDialogModel is the interactive conversation view: it accumulates
// transcript text (typed, plus whatever a connected feed appends), submits
// turns, and shows the pending/completed partition after every response.
type orderDialogModel struct {
	ctx     context.Context
	session domain.OrderSession
	tracker *application.ConversationTracker
	buffer  *transcript.Buffer

	input   textinput.Model
	spinner spinner.Model
	styles  dialogStyles

	state   domain.ConversationState
	waiting bool
	notice  string
	failure string
}

func newOrderDialogModel(ctx context.Context, session domain.OrderSession, tracker *application.ConversationTracker, buffer *transcript.Buffer) orderDialogModel {
	input := textinput.New()
	input.Placeholder = "Speak (or type) your order..."
	input.Focus()

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return orderDialogModel{
		ctx:     ctx,
		session: session,
		tracker: tracker,
		buffer:  buffer,
		input:   input,
		spinner: s,
		styles:  newDialogStyles(),
		state:   tracker.State(),
	}
}

func (m orderDialogModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.pollTranscript())
}

func (m orderDialogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyCtrlR:
			m.buffer.Reset()
			m.input.SetValue("")
			m.notice = "Transcript cleared."
			return m, nil
		case tea.KeyEnter:
			return m.submit()
		}
	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case transcriptTickMsg:
		return m, m.pollTranscript()
	case turnDoneMsg:
		m.waiting = false
		if msg.err != nil {
			if errors.Is(msg.err, application.ErrTurnInFlight) {
				m.notice = "Previous turn is still being processed."
			} else {
				m.failure = msg.err.Error()
			}
			return m, nil
		}
		m.state = msg.state
		m.failure = ""
		m.notice = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m orderDialogModel) submit() (tea.Model, tea.Cmd) {
	if typed := strings.TrimSpace(m.input.Value()); typed != "" {
		m.buffer.Append(typed)
		m.input.SetValue("")
	}

	if m.waiting {
		m.notice = "Previous turn is still being processed."
		return m, nil
	}

	rawText := m.buffer.Text()
	if rawText == "" {
		m.notice = "Nothing heard yet."
		return m, nil
	}

	m.waiting = true
	m.notice = ""
	tracker := m.tracker
	ctx := m.ctx
	submit := func() tea.Msg {
		state, err := tracker.SubmitTurn(ctx, rawText)
		return turnDoneMsg{state: state, err: err}
	}

	return m, tea.Batch(m.spinner.Tick, submit)
}

func (m orderDialogModel) pollTranscript() tea.Cmd {
	return tea.Tick(transcriptPollInterval, func(time.Time) tea.Msg {
		return transcriptTickMsg{}
	})
}

func (m orderDialogModel) View() string {
	s := m.styles

	lines := []string{
		s.title.Render("Order conversation"),
		s.header.Render(fmt.Sprintf("order: %s  phone: %s  conversation: %s", m.session.ID, m.session.Phone, conversationLabel(m.state))),
		"",
	}

	if m.state.Message != "" {
		lines = append(lines, s.message.Render(m.state.Message), "")
	}

	pending, completed := domain.Partition(m.state.Items)
	if len(pending) > 0 {
		lines = append(lines, s.title.Render("Pending"))
		for _, item := range pending {
			lines = append(lines, s.pending.Render(fmt.Sprintf("  %s - missing: %s", pizzaLabel(item), strings.Join(item.MissingFields, ", "))))
		}
	}
	if len(completed) > 0 {
		lines = append(lines, s.title.Render("Completed"))
		for _, item := range completed {
			lines = append(lines, s.completed.Render(fmt.Sprintf("  %s - OK", pizzaLabel(item))))
		}
	}
	if len(pending) > 0 || len(completed) > 0 {
		lines = append(lines, "")
	}

	if heard := m.buffer.Text(); heard != "" {
		lines = append(lines, s.message.Render("Heard: "+heard))
	}
	lines = append(lines, m.input.View())

	if m.waiting {
		lines = append(lines, m.spinner.View()+" Sending turn...")
	}
	if m.notice != "" {
		lines = append(lines, s.notice.Render(m.notice))
	}
	if m.failure != "" {
		lines = append(lines, s.failure.Render("Turn failed: "+m.failure), s.notice.Render("Your transcript is kept; press enter to retry."))
	}

	lines = append(lines, "", s.help.Render("enter: send turn | ctrl+r: clear transcript | esc: finish order"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func conversationLabel(state domain.ConversationState) string {
	if state.Phase() == domain.PhaseNotStarted {
		return "not started"
	}
	return string(state.ID)
}

func pizzaLabel(item domain.LineItem) string {
	if item.Pizza == "" {
		return "(unrecognized pizza)"
	}
	return item.Pizza
}
