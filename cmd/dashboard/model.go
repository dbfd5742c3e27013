package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MarcusGasberg/somemellier/internal/dashboard"
	"github.com/MarcusGasberg/somemellier/internal/timeline"
)

const channelColumnWidth = 20

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	todayStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	channelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Width(channelColumnWidth)
	postStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	draftStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true)
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type loadedMsg struct{ err error }

type collectionsChangedMsg struct{}

type model struct {
	ctx   context.Context
	board *dashboard.Dashboard

	dates      []timeline.Date
	scroll     *timeline.ScrollSync
	changes    chan struct{}
	showDrafts bool
	width      int
	height     int
	loaded     bool
	loadErr    error
}

func newModel(board *dashboard.Dashboard, ctx context.Context) model {
	m := model{
		ctx:     ctx,
		board:   board,
		dates:   timeline.GenerateDates(timeline.DefaultDays),
		scroll:  timeline.NewScrollSync(0),
		changes: make(chan struct{}, 1),
	}

	notify := func() {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	}
	board.Posts.Subscribe(notify)
	board.UserChannels.Subscribe(notify)
	board.Campaigns.Subscribe(notify)

	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.load, m.waitForChange)
}

func (m model) load() tea.Msg {
	return loadedMsg{err: m.board.Load(m.ctx)}
}

func (m model) waitForChange() tea.Msg {
	<-m.changes
	return collectionsChangedMsg{}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll.SetMax(m.maxScroll())
		return m, nil

	case loadedMsg:
		m.loaded = true
		m.loadErr = msg.err
		if msg.err == nil {
			m.board.EnsureDefaultCampaign(m.ctx)
		}
		m.scroll.SetMax(m.maxScroll())
		return m, nil

	case collectionsChangedMsg:
		return m, m.waitForChange

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			_, body := m.scroll.Offsets()
			m.scroll.DriveBody(body - 1)
		case "right", "l":
			_, body := m.scroll.Offsets()
			m.scroll.DriveBody(body + 1)
		case "d":
			m.showDrafts = !m.showDrafts
			m.scroll.SetMax(m.maxScroll())
		case "r":
			m.loaded = false
			return m, m.load
		}
	}
	return m, nil
}

func (m model) View() string {
	if !m.loaded {
		return "\n  Loading timeline..."
	}

	var b strings.Builder

	campaign, ok := m.board.CurrentCampaign("")
	title := "somemellier"
	if ok {
		title += " — " + campaign.Name
	}
	b.WriteString(headerStyle.Render(title) + "\n")
	if m.loadErr != nil {
		b.WriteString(errStyle.Render("load failed: "+m.loadErr.Error()) + "\n")
	}
	b.WriteString("\n")

	channels := m.board.UserChannels.List()
	if len(channels) == 0 {
		b.WriteString(emptyStyle.Render("  No channels connected yet. Connect a channel to start scheduling.") + "\n")
		b.WriteString("\n" + m.help())
		return b.String()
	}

	columns := m.visibleColumns()
	grid := m.board.Grid("", m.dates, m.showDrafts, timeline.ColumnWidth(m.width), time.Now())

	// Header strip: the date labels, scrolled in step with the body.
	_, offset := m.scroll.Offsets()
	b.WriteString(strings.Repeat(" ", channelColumnWidth))
	if m.showDrafts && offset == 0 {
		b.WriteString(padCell(headerStyle.Render("Drafts")))
	}
	for i := offset; i < len(grid.Dates) && i < offset+columns; i++ {
		d := grid.Dates[i]
		label := fmt.Sprintf("%s %d %s", d.DayName, d.DayNum, d.Month)
		if timeline.SameDay(d.Full, time.Now()) {
			b.WriteString(padCell(todayStyle.Render(label)))
		} else {
			b.WriteString(padCell(headerStyle.Render(label)))
		}
	}
	b.WriteString("\n")

	for _, row := range grid.Rows {
		b.WriteString(channelStyle.Render(row.Channel.Name))
		if m.showDrafts && offset == 0 {
			b.WriteString(padCell(draftStyle.Render(summarize(len(row.Drafts), "draft"))))
		}
		for i := offset; i < len(row.Cells) && i < offset+columns; i++ {
			cell := row.Cells[i]
			if len(cell.Posts) == 0 {
				b.WriteString(padCell(emptyStyle.Render("·")))
				continue
			}
			b.WriteString(padCell(postStyle.Render(summarize(len(cell.Posts), "post"))))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + m.help())
	return b.String()
}

func (m model) help() string {
	return helpStyle.Render("  ←/→ scroll   d drafts   r reload   q quit")
}

// visibleColumns is how many date columns fit beside the channel column.
func (m model) visibleColumns() int {
	cellWidth := 14
	cols := (m.width - channelColumnWidth) / cellWidth
	if cols < 1 {
		cols = 1
	}
	return cols
}

func (m model) maxScroll() int {
	max := len(m.dates) - m.visibleColumns()
	if max < 0 {
		max = 0
	}
	return max
}

func padCell(s string) string {
	const cellWidth = 14
	w := lipgloss.Width(s)
	if w >= cellWidth {
		return s
	}
	return s + strings.Repeat(" ", cellWidth-w)
}

func summarize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
