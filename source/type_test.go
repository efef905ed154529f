package source

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseType(t *testing.T) {
	Convey("ParseType", t, func() {
		Convey("Should accept every supported type", func() {
			for _, want := range Types() {
				got, err := ParseType(string(want))
				So(err, ShouldBeNil)
				So(got, ShouldEqual, want)
			}
		})

		Convey("Should ignore case and surrounding spaces", func() {
			got, err := ParseType("  RSS ")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, RSS)
		})

		Convey("Should reject anything else", func() {
			for _, raw := range []string{"", "vimeo", "you tube"} {
				_, err := ParseType(raw)
				So(errors.Is(err, ErrUnknownType), ShouldBeTrue)
			}
		})
	})
}

func TestTypes(t *testing.T) {
	Convey("Types", t, func() {
		So(TypeNames(), ShouldResemble, []string{"youtube", "rss", "podcast"})
		So(Podcast.Upper(), ShouldEqual, "PODCAST")
		So(Type("tv").Valid(), ShouldBeFalse)
	})
}
