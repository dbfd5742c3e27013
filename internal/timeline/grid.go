package timeline

import (
	"time"

	"github.com/MarcusGasberg/somemellier/internal/model"
)

// Column widths by viewport breakpoint.
const (
	MobileBreakpoint   = 768
	ColumnWidthDesktop = 200
	ColumnWidthMobile  = 120
)

// ColumnWidth picks the uniform column width for a viewport width.
func ColumnWidth(viewportWidth int) int {
	if viewportWidth < MobileBreakpoint {
		return ColumnWidthMobile
	}
	return ColumnWidthDesktop
}

// Cell is one (channel, day) bucket.
type Cell struct {
	Date    Date
	IsToday bool
	Posts   []model.Post
}

// Row is one channel swimlane: its optional drafts bucket plus one cell per
// visible day.
type Row struct {
	Channel model.ConnectedChannel
	Drafts  []model.Post
	Cells   []Cell
}

// Grid is the full display model for the timeline.
type Grid struct {
	Dates       []Date
	Rows        []Row
	ShowDrafts  bool
	ColumnWidth int
	// TotalWidth is the scrollable width: numColumns × ColumnWidth, drafts
	// column included when shown.
	TotalWidth int
}

// Assemble buckets posts by channel and calendar day. A draft post lands in
// the drafts bucket and never in a date cell; a scheduled post lands in
// exactly the cell matching its day. Published and failed posts keep their
// scheduledAt day as a historical record.
func Assemble(channels []model.ConnectedChannel, posts []model.Post, dates []Date, showDrafts bool, columnWidth int, today time.Time) Grid {
	grid := Grid{
		Dates:       dates,
		ShowDrafts:  showDrafts,
		ColumnWidth: columnWidth,
	}

	columns := len(dates)
	if showDrafts {
		columns++
	}
	grid.TotalWidth = columns * columnWidth

	for _, channel := range channels {
		row := Row{Channel: channel}

		var channelPosts []model.Post
		for _, p := range posts {
			if p.ChannelID == channel.ID {
				channelPosts = append(channelPosts, p)
			}
		}

		if showDrafts {
			for _, p := range channelPosts {
				if p.IsDraft() {
					row.Drafts = append(row.Drafts, p)
				}
			}
		}

		row.Cells = make([]Cell, len(dates))
		for i, date := range dates {
			cell := Cell{
				Date:    date,
				IsToday: SameDay(date.Full, today),
			}
			for _, p := range channelPosts {
				if p.ScheduledAt != nil && !p.IsDraft() && SameDay(date.Full, *p.ScheduledAt) {
					cell.Posts = append(cell.Posts, p)
				}
			}
			row.Cells[i] = cell
		}

		grid.Rows = append(grid.Rows, row)
	}

	return grid
}
