package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/grundrisse/grundrisse/source"
	. "github.com/smartystreets/goconvey/convey"
)

var foo = source.Source{ID: 1, Name: "Foo", Type: source.RSS, URL: "https://x/feed", IsActive: true}

func TestRows(t *testing.T) {
	Convey("NewRow", t, func() {
		Convey("Should upper-case the type and mark active sources", func() {
			So(NewRow(foo), ShouldResemble, Row{
				ID:     1,
				Name:   "Foo",
				Type:   "RSS",
				URL:    "https://x/feed",
				Status: "Active",
				Class:  "active",
			})
		})

		Convey("Should mark inactive sources", func() {
			row := NewRow(source.Source{Type: source.Podcast})
			So(row.Type, ShouldEqual, "PODCAST")
			So(row.Status, ShouldEqual, "Inactive")
			So(row.Class, ShouldEqual, "inactive")
		})
	})

	Convey("Rows keeps the order", t, func() {
		rows := Rows([]source.Source{{ID: 2}, {ID: 1}})
		So(rows[0].ID, ShouldEqual, 2)
		So(rows[1].ID, ShouldEqual, 1)
	})
}

func TestText(t *testing.T) {
	Convey("Text", t, func() {
		var buf bytes.Buffer

		Convey("Should show the loading line while loading", func() {
			So(Text(&buf, []source.Source{foo}, true), ShouldBeNil)
			So(buf.String(), ShouldEqual, "Loading sources...\n")
		})

		Convey("Should show the instructional message and no rows when empty", func() {
			So(Text(&buf, nil, false), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, `No sources added yet. Click "Add Source" to get started.`)
			So(buf.String(), ShouldNotContainSubstring, "Status")
		})

		Convey("Should render one row per source", func() {
			So(Text(&buf, []source.Source{foo}, false), ShouldBeNil)
			out := buf.String()
			So(out, ShouldContainSubstring, "Foo")
			So(out, ShouldContainSubstring, "RSS")
			So(out, ShouldContainSubstring, "https://x/feed")
			So(out, ShouldContainSubstring, "Active")
			So(strings.Contains(out, EmptyMessage), ShouldBeFalse)
		})
	})
}

func TestJSON(t *testing.T) {
	Convey("JSON", t, func() {
		var buf bytes.Buffer

		Convey("Should expose the class name", func() {
			So(JSON(&buf, []source.Source{foo}), ShouldBeNil)

			var rows []map[string]any
			So(json.Unmarshal(buf.Bytes(), &rows), ShouldBeNil)
			So(rows, ShouldHaveLength, 1)
			So(rows[0]["class"], ShouldEqual, "active")
			So(rows[0]["type"], ShouldEqual, "RSS")
		})

		Convey("Should write an empty array for no sources", func() {
			So(JSON(&buf, nil), ShouldBeNil)
			So(strings.TrimSpace(buf.String()), ShouldEqual, "[]")
		})
	})
}
