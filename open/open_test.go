package open

import (
	"testing"

	"github.com/grundrisse/grundrisse/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Given a source URL", t, func() {
		url := "https://example.com/feed"

		Convey("Linux should use xdg-open", func() {
			cmd, ok := command(constant.Linux, url)
			So(ok, ShouldBeTrue)
			So(cmd.Args, ShouldResemble, []string{"xdg-open", url})
		})

		Convey("macOS should use open", func() {
			cmd, ok := command(constant.Darwin, url)
			So(ok, ShouldBeTrue)
			So(cmd.Args, ShouldResemble, []string{"open", url})
		})

		Convey("Windows should pass the URL to the protocol handler", func() {
			cmd, ok := command(constant.Windows, url)
			So(ok, ShouldBeTrue)
			So(cmd.Args[len(cmd.Args)-1], ShouldEqual, url)
		})

		Convey("Unknown systems should be rejected", func() {
			_, ok := command("plan9", url)
			So(ok, ShouldBeFalse)
		})
	})
}
