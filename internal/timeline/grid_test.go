package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MarcusGasberg/somemellier/internal/model"
)

func connected(id, name string) model.ConnectedChannel {
	return model.ConnectedChannel{ID: id, Name: name, Type: id, IconKey: id, UserChannelID: "uc-" + id}
}

func scheduledPost(id, channelID string, at time.Time) model.Post {
	return model.Post{ID: id, ChannelID: channelID, Content: "c", Status: model.PostStatusScheduled, ScheduledAt: &at}
}

func draftPost(id, channelID string) model.Post {
	return model.Post{ID: id, ChannelID: channelID, Content: "c", Status: model.PostStatusDraft}
}

func TestAssembleBucketsByDay(t *testing.T) {
	today := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	dates := GenerateDatesFrom(today, 21)
	tomorrow := today.AddDate(0, 0, 1)

	posts := []model.Post{
		scheduledPost("p1", "x", tomorrow),
		scheduledPost("p2", "x", today),
		draftPost("p3", "x"),
	}

	grid := Assemble([]model.ConnectedChannel{connected("x", "X")}, posts, dates, true, ColumnWidthDesktop, today)

	row := grid.Rows[0]
	assert.Len(t, row.Drafts, 1)
	assert.Equal(t, "p3", row.Drafts[0].ID)

	// A post scheduled for tomorrow appears in tomorrow's column only.
	assert.Len(t, row.Cells[0].Posts, 1)
	assert.Equal(t, "p2", row.Cells[0].Posts[0].ID)
	assert.Len(t, row.Cells[1].Posts, 1)
	assert.Equal(t, "p1", row.Cells[1].Posts[0].ID)
	for i := 2; i < len(row.Cells); i++ {
		assert.Empty(t, row.Cells[i].Posts)
	}
}

func TestAssembleDraftNeverInDateCell(t *testing.T) {
	today := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	dates := GenerateDatesFrom(today, 7)

	grid := Assemble(
		[]model.ConnectedChannel{connected("x", "X")},
		[]model.Post{draftPost("d1", "x")},
		dates, true, ColumnWidthDesktop, today,
	)

	row := grid.Rows[0]
	assert.Len(t, row.Drafts, 1)
	for _, cell := range row.Cells {
		assert.Empty(t, cell.Posts, "a draft must never land in a date bucket")
	}
}

func TestAssembleScheduledPostInExactlyOneBucket(t *testing.T) {
	today := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	dates := GenerateDatesFrom(today, 21)
	at := today.AddDate(0, 0, 5)

	grid := Assemble(
		[]model.ConnectedChannel{connected("x", "X")},
		[]model.Post{scheduledPost("p1", "x", at)},
		dates, true, ColumnWidthDesktop, today,
	)

	row := grid.Rows[0]
	assert.Empty(t, row.Drafts)
	buckets := 0
	for _, cell := range row.Cells {
		buckets += len(cell.Posts)
	}
	assert.Equal(t, 1, buckets)
	assert.Equal(t, "p1", row.Cells[5].Posts[0].ID)
}

func TestAssembleClearedScheduleMovesToDrafts(t *testing.T) {
	today := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	dates := GenerateDatesFrom(today, 7)
	channels := []model.ConnectedChannel{connected("x", "X")}

	post := scheduledPost("p1", "x", today.AddDate(0, 0, 2))
	grid := Assemble(channels, []model.Post{post}, dates, true, ColumnWidthDesktop, today)
	assert.Len(t, grid.Rows[0].Cells[2].Posts, 1)
	assert.Empty(t, grid.Rows[0].Drafts)

	// Editing the post and clearing its schedule moves it into drafts on the
	// next assembly.
	post.ScheduledAt = nil
	post.Status = model.PostStatusDraft
	grid = Assemble(channels, []model.Post{post}, dates, true, ColumnWidthDesktop, today)
	assert.Len(t, grid.Rows[0].Drafts, 1)
	assert.Empty(t, grid.Rows[0].Cells[2].Posts)
}

func TestAssemblePublishedKeepsHistoricalDay(t *testing.T) {
	today := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	dates := GenerateDatesFrom(today, 7)
	at := today.AddDate(0, 0, 1)

	published := model.Post{ID: "p1", ChannelID: "x", Content: "c", Status: model.PostStatusPublished, ScheduledAt: &at, PublishedAt: &at}
	grid := Assemble([]model.ConnectedChannel{connected("x", "X")}, []model.Post{published}, dates, true, ColumnWidthDesktop, today)

	assert.Empty(t, grid.Rows[0].Drafts)
	assert.Len(t, grid.Rows[0].Cells[1].Posts, 1)
}

func TestAssembleBucketsByChannel(t *testing.T) {
	today := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	dates := GenerateDatesFrom(today, 7)

	grid := Assemble(
		[]model.ConnectedChannel{connected("x", "X"), connected("linkedin", "LinkedIn")},
		[]model.Post{scheduledPost("p1", "x", today), scheduledPost("p2", "linkedin", today)},
		dates, false, ColumnWidthDesktop, today,
	)

	assert.Len(t, grid.Rows, 2)
	assert.Equal(t, "p1", grid.Rows[0].Cells[0].Posts[0].ID)
	assert.Equal(t, "p2", grid.Rows[1].Cells[0].Posts[0].ID)
}

func TestAssembleTodayUsesFullDateEquality(t *testing.T) {
	// Range spans a month boundary: Aug 30 ... Sep 30. Sep 30 shares the
	// day-of-month with nothing visible, but Aug 30 and a same-day-num date
	// next month must not both flag as today.
	today := time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local)
	dates := GenerateDatesFrom(today, 32)

	grid := Assemble([]model.ConnectedChannel{connected("x", "X")}, nil, dates, false, ColumnWidthDesktop, today)

	todayCount := 0
	for _, cell := range grid.Rows[0].Cells {
		if cell.IsToday {
			todayCount++
			assert.Equal(t, "2026-08-30", cell.Date.ISO)
		}
	}
	assert.Equal(t, 1, todayCount, "exactly one column flags as today even across a month boundary")
}

func TestAssembleWidths(t *testing.T) {
	today := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	dates := GenerateDatesFrom(today, 21)
	channels := []model.ConnectedChannel{connected("x", "X")}

	grid := Assemble(channels, nil, dates, false, ColumnWidthDesktop, today)
	assert.Equal(t, 21*200, grid.TotalWidth)

	grid = Assemble(channels, nil, dates, true, ColumnWidthDesktop, today)
	assert.Equal(t, 22*200, grid.TotalWidth, "drafts column widens the scrollable area")

	grid = Assemble(channels, nil, dates, true, ColumnWidthMobile, today)
	assert.Equal(t, 22*120, grid.TotalWidth)
}

func TestColumnWidthBreakpoints(t *testing.T) {
	assert.Equal(t, ColumnWidthMobile, ColumnWidth(767))
	assert.Equal(t, ColumnWidthDesktop, ColumnWidth(768))
	assert.Equal(t, ColumnWidthDesktop, ColumnWidth(1440))
}

func TestAssembleNoChannelsIsEmptyNotError(t *testing.T) {
	today := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	dates := GenerateDatesFrom(today, 7)

	grid := Assemble(nil, []model.Post{draftPost("p1", "x")}, dates, true, ColumnWidthDesktop, today)
	assert.Empty(t, grid.Rows)
	assert.Equal(t, 8*200, grid.TotalWidth)
}
