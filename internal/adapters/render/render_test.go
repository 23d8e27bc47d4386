package render_test

import (
	"bytes"
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/limchunyik/wca-psych-sheet-generator/internal/adapters/render"
	service "github.com/limchunyik/wca-psych-sheet-generator/internal/app"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/event"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/identifier"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/model"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/result"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/roster"
)

func row(pos int, id, name string, single, average result.Code) model.RankedRow {
	return model.RankedRow{
		Position: pos,
		CompetitorRecord: model.CompetitorRecord{
			ID:      identifier.ID(id),
			Name:    name,
			Single:  single,
			Average: average,
			Fetched: true,
		},
	}
}

func TestRows(t *testing.T) {
	Convey("Given a 3x3 leaderboard", t, func() {
		board := service.Leaderboard{
			Kind: event.Cube3x3,
			Rows: []model.RankedRow{
				row(1, "2015AAAA01", "Ann", result.Some(754), result.Some(6523)),
				row(2, "2015BBBB02", "Ben", result.Some(812), result.None()),
			},
		}

		Convey("Rows decodes results and dashes the empty ones", func() {
			rows := render.Rows(board)
			So(len(rows), ShouldEqual, 2)
			So(rows[0].Rank, ShouldEqual, 1)
			So(rows[0].Single, ShouldEqual, "7.54")
			So(rows[0].Average, ShouldEqual, "1:05.23")
			So(rows[1].Average, ShouldEqual, "-")
			So(rows[1].WCAID, ShouldEqual, "2015BBBB02")
		})

		Convey("Table includes the title, count and every competitor", func() {
			var buf bytes.Buffer
			So(render.Table(&buf, board), ShouldBeNil)
			out := buf.String()
			So(out, ShouldContainSubstring, "Results for 3x3")
			So(out, ShouldContainSubstring, "Comparing 2 competitors")
			So(out, ShouldContainSubstring, "Ann")
			So(out, ShouldContainSubstring, "1:05.23")
			So(out, ShouldContainSubstring, "2015BBBB02")
		})

		Convey("Table lists competitors that could not be loaded", func() {
			board.Failed = []identifier.ID{"2099ZZZZ99"}
			var buf bytes.Buffer
			So(render.Table(&buf, board), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "1 competitor could not be loaded: 2099ZZZZ99")
		})

		Convey("JSON emits display rows", func() {
			var buf bytes.Buffer
			So(render.JSON(&buf, board), ShouldBeNil)
			var doc struct {
				Event  string   `json:"event"`
				Failed []string `json:"failed"`
				Rows   []struct {
					Rank   int    `json:"rank"`
					Single string `json:"single"`
				} `json:"rows"`
			}
			So(json.Unmarshal(buf.Bytes(), &doc), ShouldBeNil)
			So(doc.Event, ShouldEqual, "333")
			So(doc.Failed, ShouldResemble, []string{})
			So(len(doc.Rows), ShouldEqual, 2)
			So(doc.Rows[1].Single, ShouldEqual, "8.12")
		})
	})

	Convey("An empty leaderboard shows the empty-state message", t, func() {
		var buf bytes.Buffer
		So(render.Table(&buf, service.Leaderboard{Kind: event.Megaminx}), ShouldBeNil)
		So(buf.String(), ShouldContainSubstring, "Comparing 0 competitors")
		So(buf.String(), ShouldContainSubstring, "No results found for this event. Try adding some WCA IDs first!")
	})

	Convey("Fewest moves averages are shown with two decimals", t, func() {
		rows := render.Rows(service.Leaderboard{
			Kind: event.FewestMove,
			Rows: []model.RankedRow{row(1, "2015AAAA01", "Ann", result.Some(24), result.Some(2733))},
		})
		So(rows[0].Single, ShouldEqual, "24")
		So(rows[0].Average, ShouldEqual, "27.33")
	})
}

func TestMessages(t *testing.T) {
	Convey("Bulk messages pluralize", t, func() {
		So(render.BulkMessage(roster.BulkResult{Added: []identifier.ID{"2015AAAA01"}, Skipped: 1}),
			ShouldEqual, "Extracted 1 new WCA ID. 1 duplicate skipped.")
		So(render.BulkMessage(roster.BulkResult{Skipped: 2}),
			ShouldEqual, "Extracted 0 new WCA IDs. 2 duplicates skipped.")
	})

	Convey("Add messages distinguish new and existing", t, func() {
		level, msg := render.AddedMessage(roster.AddResult{ID: "2015AAAA01"})
		So(level, ShouldEqual, render.LevelSuccess)
		So(msg, ShouldEqual, "Added 2015AAAA01 successfully!")

		level, msg = render.AddedMessage(roster.AddResult{ID: "2015AAAA01", AlreadyPresent: true})
		So(level, ShouldEqual, render.LevelInfo)
		So(msg, ShouldEqual, "2015AAAA01 already added!")
	})

	Convey("The error panel replaces the table", t, func() {
		var buf bytes.Buffer
		So(render.ErrorPanel(&buf), ShouldBeNil)
		So(buf.String(), ShouldContainSubstring, "Error loading rankings. Please try again.")
	})

	Convey("Progress lines count up", t, func() {
		var buf bytes.Buffer
		p := render.NewProgressWriter(&buf)
		p.Loaded(1, 2, model.CompetitorRecord{})
		p.Loaded(2, 2, model.CompetitorRecord{})
		So(buf.String(), ShouldEqual, "1 / 2 competitors loaded\n2 / 2 competitors loaded\n")
	})

	Convey("Events lists the catalog", t, func() {
		var buf bytes.Buffer
		So(render.Events(&buf), ShouldBeNil)
		So(buf.String(), ShouldContainSubstring, "333mbf")
		So(buf.String(), ShouldContainSubstring, "MBLD")
	})
}
