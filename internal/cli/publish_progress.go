package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/planpush/planpush/internal/cli/formatter"
	"github.com/planpush/planpush/internal/publisher"
	"github.com/planpush/planpush/internal/service"
)

// nodeCompleteMsg carries one finished node into the progress model.
type nodeCompleteMsg publisher.NodeEvent

// publishDoneMsg ends the progress display.
type publishDoneMsg struct {
	result *service.PublishResult
	err    error
}

// channelObserver forwards publisher events into the tea program.
type channelObserver struct {
	events chan publisher.NodeEvent
}

func (o channelObserver) OnNodeComplete(event publisher.NodeEvent) {
	o.events <- event
}

// progressModel renders a spinner plus one line per created node while a
// publish run is in flight.
type progressModel struct {
	spinner spinner.Model
	events  chan publisher.NodeEvent
	done    chan publishDoneMsg

	lines  []string
	result *service.PublishResult
	err    error
}

func newProgressModel(events chan publisher.NodeEvent, done chan publishDoneMsg) progressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(formatter.ColorPurple)
	return progressModel{spinner: sp, events: events, done: done}
}

func (m progressModel) waitForActivity() tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-m.events:
			return nodeCompleteMsg(ev)
		case d := <-m.done:
			return d
		}
	}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForActivity())
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case nodeCompleteMsg:
		ev := publisher.NodeEvent(msg)
		indent := strings.Repeat("  ", ev.Depth)
		m.lines = append(m.lines, fmt.Sprintf("%s%s %s %s",
			indent,
			formatter.StatusMark(ev.Status),
			ev.Title,
			formatter.Dim(fmt.Sprintf("#%d", ev.RemoteID)),
		))
		return m, m.waitForActivity()

	case publishDoneMsg:
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		// Publishing is not cancellable mid-flight from the UI; ignore keys.
		return m, nil

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m progressModel) View() string {
	var b strings.Builder
	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.result == nil && m.err == nil {
		b.WriteString(m.spinner.View())
		b.WriteString(formatter.Dim(" publishing..."))
		b.WriteString("\n")
	}
	return b.String()
}

// runPublishWithProgress drives a publish run behind a live progress
// display. The publish itself runs in a goroutine; events stream into the
// model until the run finishes.
func runPublishWithProgress(ctx context.Context, app *App, path string, opts service.PublishOptions) (*service.PublishResult, error) {
	events := make(chan publisher.NodeEvent)
	done := make(chan publishDoneMsg, 1)

	opts.Progress = channelObserver{events: events}

	go func() {
		result, err := app.Publish.PublishFile(ctx, path, opts)
		done <- publishDoneMsg{result: result, err: err}
	}()

	final, err := tea.NewProgram(newProgressModel(events, done)).Run()
	if err != nil {
		// The display failed; keep draining so the publish goroutine can
		// finish, then report its outcome.
		for {
			select {
			case <-events:
			case d := <-done:
				return d.result, d.err
			}
		}
	}

	m := final.(progressModel)
	return m.result, m.err
}
