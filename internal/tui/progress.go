package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/luckystreak96/pizzatopia-mirror/internal/manifest"
	"github.com/luckystreak96/pizzatopia-mirror/internal/notify"
	"github.com/luckystreak96/pizzatopia-mirror/internal/sheet"
)

// Animation display states.
const (
	StatusPending   = "PENDING"
	StatusRendering = "RENDERING"
	StatusDone      = "DONE"
	StatusSkipped   = "SKIPPED"
	StatusFailed    = "FAILED"
)

const (
	colName   = 20
	colStatus = 12
	colFrames = 9
)

// Messages

type eventMsg sheet.Event

type pipelineDoneMsg struct{}

type animRow struct {
	name   string
	total  int
	done   int
	status string
	path   string
	errMsg string
}

// Progress is the Bubble Tea model showing per-animation pipeline state.
// It drains the generator's event channel; a closed channel means the
// pipeline finished.
type Progress struct {
	rows   []animRow
	index  map[string]int
	events <-chan sheet.Event
	bar    *notify.Bar
	cancel context.CancelFunc
	width  int
	done   bool
}

// Option configures a Progress model.
type Option func(*Progress)

// WithCancel attaches the pipeline cancel function invoked on q/ctrl+c.
func WithCancel(cancel context.CancelFunc) Option {
	return func(p *Progress) { p.cancel = cancel }
}

// WithNotifyBar attaches a notification bar fed from pipeline events.
func WithNotifyBar(bar *notify.Bar) Option {
	return func(p *Progress) { p.bar = bar }
}

// NewProgress creates a progress model covering the manifest's animations.
func NewProgress(anims []manifest.Animation, events <-chan sheet.Event, opts ...Option) Progress {
	rows := make([]animRow, len(anims))
	index := make(map[string]int, len(anims))
	for i, a := range anims {
		rows[i] = animRow{name: a.Name, total: a.Length(), status: StatusPending}
		index[a.Name] = i
	}

	p := Progress{
		rows:   rows,
		index:  index,
		events: events,
		width:  80,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Init starts draining pipeline events.
func (p Progress) Init() tea.Cmd {
	return p.waitForEvent()
}

func (p Progress) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		e, ok := <-p.events
		if !ok {
			return pipelineDoneMsg{}
		}
		return eventMsg(e)
	}
}

// Update handles messages.
func (p Progress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if p.cancel != nil {
				p.cancel()
			}
			return p, tea.Quit
		}
		return p, nil

	case tea.WindowSizeMsg:
		p.width = msg.Width
		return p, nil

	case eventMsg:
		p.apply(sheet.Event(msg))
		return p, p.waitForEvent()

	case pipelineDoneMsg:
		p.done = true
		return p, tea.Quit
	}

	return p, nil
}

func (p *Progress) apply(e sheet.Event) {
	i, ok := p.index[e.Animation]
	if !ok {
		return
	}
	row := &p.rows[i]

	switch e.Type {
	case sheet.EventFrameRendered:
		row.status = StatusRendering
		row.done = e.Frame
		row.total = e.Total
	case sheet.EventSheetSaved:
		row.status = StatusDone
		row.done = e.Frame
		row.path = e.Path
		p.notice(e.Animation, "saved "+e.Path)
	case sheet.EventSkipped:
		row.status = StatusSkipped
		p.notice(e.Animation, "empty frame range, skipped")
	case sheet.EventFailed:
		row.status = StatusFailed
		if e.Err != nil {
			row.errMsg = e.Err.Error()
		}
		p.notice(e.Animation, "failed")
	}
}

func (p *Progress) notice(animation, message string) {
	if p.bar == nil {
		return
	}
	p.bar.Push(notify.Notification{
		Animation: animation,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// Done reports whether the pipeline has finished.
func (p Progress) Done() bool {
	return p.done
}

// View renders the progress table.
func (p Progress) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("sheetgen"))
	b.WriteString("\n")
	b.WriteString(subheaderStyle.Render(p.subheader()))
	b.WriteString("\n\n")

	b.WriteString(columnHeaderStyle.Render(
		padRight("ANIMATION", colName) + padRight("STATUS", colStatus) + padRight("FRAMES", colFrames) + "OUTPUT"))
	b.WriteString("\n")

	for _, row := range p.rows {
		name := padRight(truncate(row.name, colName-1), colName)
		status := statusStyle(row.status).Render(padRight(row.status, colStatus))

		frames := ""
		if row.total > 0 {
			frames = fmt.Sprintf("%d/%d", row.done, row.total)
		}
		framesCol := padRight(frames, colFrames)

		tail := row.path
		if row.errMsg != "" {
			tail = row.errMsg
		}
		tail = truncate(tail, max(0, p.width-colName-colStatus-colFrames))

		b.WriteString(name + status + framesCol + tail)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if p.bar != nil {
		b.WriteString(notificationBarStyle.Render(p.bar.Render(p.width, time.Now())))
		b.WriteString("\n")
	}
	b.WriteString(statusBarStyle.Render("  q:cancel"))

	return b.String()
}

func (p Progress) subheader() string {
	if p.done {
		return "Finished"
	}
	for _, row := range p.rows {
		if row.status == StatusRendering {
			return "Rendering " + row.name + "..."
		}
	}
	return "Waiting for renderer..."
}

// Helpers

func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return s[:maxLen]
	}
	return s[:maxLen-1] + "…"
}
