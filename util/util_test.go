package util

import (
	"path/filepath"
	"testing"

	"github.com/grundrisse/grundrisse/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("logs directory"), ShouldEqual, "Logs directory")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestDelete(t *testing.T) {
	Convey("Given a directory with a file", t, func() {
		dir := "/tmp/grundrisse"
		file := filepath.Join(dir, "a.log")
		lo.Must0(filesystem.API().MkdirAll(dir, 0o755))
		lo.Must0(filesystem.API().WriteFile(file, []byte("x"), 0o644))

		Convey("Deleting the file should leave the directory", func() {
			So(Delete(file), ShouldBeNil)
			So(lo.Must(filesystem.API().Exists(file)), ShouldBeFalse)
			So(lo.Must(filesystem.API().Exists(dir)), ShouldBeTrue)
		})

		Convey("Deleting the directory should remove its contents", func() {
			So(Delete(dir), ShouldBeNil)
			So(lo.Must(filesystem.API().Exists(dir)), ShouldBeFalse)
		})

		Convey("Deleting a missing path should fail", func() {
			So(Delete(filepath.Join(dir, "missing")), ShouldNotBeNil)
		})
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[int]
		s.Push(1)
		s.Push(2)
		So(s.Len(), ShouldEqual, 2)
		So(s.Peek(), ShouldEqual, 2)
		So(s.Pop(), ShouldEqual, 2)
		So(s.Pop(), ShouldEqual, 1)
		So(s.Pop(), ShouldEqual, 0)
		So(s.Len(), ShouldEqual, 0)
	})
}
