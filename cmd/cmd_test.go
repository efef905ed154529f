package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/grundrisse/grundrisse/config"
	"github.com/grundrisse/grundrisse/filesystem"
	"github.com/grundrisse/grundrisse/internal/registrytest"
	"github.com/grundrisse/grundrisse/key"
	"github.com/grundrisse/grundrisse/render"
	"github.com/grundrisse/grundrisse/source"
	"github.com/grundrisse/grundrisse/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestErrUnknownKey(t *testing.T) {
	Convey("Given a misspelled key", t, func() {
		err := errUnknownKey("api.base_ur")

		Convey("The closest registered key should be suggested", func() {
			So(err.Error(), ShouldContainSubstring, "unknown key")
			So(err.Error(), ShouldContainSubstring, "did you mean "+key.APIBaseURL)
			So(errors.Is(err, config.ErrUnknownKey), ShouldBeTrue)
		})
	})
}

func run(args ...string) {
	rootCmd.SetArgs(args)
	So(rootCmd.Execute(), ShouldBeNil)
}

func TestSourcesCommands(t *testing.T) {
	Convey("Given a backend with one source", t, func() {
		srv := registrytest.New(t)
		srv.Seed(source.Source{ID: 7, Name: "Foo", Type: source.RSS, URL: "https://x/feed", IsActive: true})

		var out bytes.Buffer
		sourcesListCmd.SetOut(&out)

		Convey("list --json should print presentation rows", func() {
			run("sources", "list", "--json", "--api", srv.URL, "--token", registrytest.Token)

			var rows []render.Row
			So(json.Unmarshal(out.Bytes(), &rows), ShouldBeNil)
			So(rows, ShouldHaveLength, 1)
			So(rows[0].Type, ShouldEqual, "RSS")
			So(rows[0].Status, ShouldEqual, "Active")
			So(srv.Header(registrytest.ListRoute).Get("Authorization"), ShouldEqual, "Bearer "+registrytest.Token)
		})

		Convey("list should print a table", func() {
			run("sources", "list", "--json=false", "--api", srv.URL, "--token", registrytest.Token)
			So(out.String(), ShouldContainSubstring, "Foo")
			So(out.String(), ShouldContainSubstring, "https://x/feed")
		})

		Convey("remove --yes should delete without asking", func() {
			run("sources", "remove", "--yes", strconv.Itoa(7), "--api", srv.URL, "--token", registrytest.Token)
			So(srv.Hits(registrytest.DeleteRoute), ShouldEqual, 1)
			So(srv.Sources(), ShouldBeEmpty)
		})

		Convey("remove should carry on when only the reload after a delete fails", func() {
			srv.Seed(
				source.Source{ID: 7, Name: "Foo", Type: source.RSS, URL: "https://x/feed"},
				source.Source{ID: 8, Name: "Bar", Type: source.Podcast, URL: "https://x/pod"},
			)
			srv.Fail(registrytest.ListRoute, http.StatusInternalServerError)

			run("sources", "remove", "--yes", "7", "8", "--api", srv.URL, "--token", registrytest.Token)
			So(srv.Hits(registrytest.DeleteRoute), ShouldEqual, 2)
			So(srv.Sources(), ShouldBeEmpty)
		})

		Convey("add with every field given should create the source", func() {
			run("sources", "add",
				"--name", "Tech Channel",
				"--type", "youtube",
				"--url", "https://www.youtube.com/channel/tech",
				"--api", srv.URL, "--token", registrytest.Token,
			)
			So(srv.Hits(registrytest.CreateRoute), ShouldEqual, 1)
			So(srv.Hits(registrytest.ListRoute), ShouldEqual, 1)
			So(srv.Sources(), ShouldHaveLength, 2)
		})
	})
}

func TestConfigCommands(t *testing.T) {
	Convey("Given settings backed by the in-memory filesystem", t, func() {
		So(config.Setup(), ShouldBeNil)

		var out bytes.Buffer
		configGetCmd.SetOut(&out)
		configInfoCmd.SetOut(&out)

		Convey("set should persist a checked value that get then reads back", func() {
			run("config", "set", key.APITimeout, "45")

			contents, err := filesystem.API().ReadFile(where.ConfigFile())
			So(err, ShouldBeNil)
			So(string(contents), ShouldContainSubstring, "timeout = 45")
			So(viper.GetInt(key.APITimeout), ShouldEqual, 45)

			run("config", "get", key.APITimeout)
			So(out.String(), ShouldEqual, "45\n")

			Convey("reset --section should restore the section defaults", func() {
				run("config", "set", key.APIBaseURL, "https://registry.example.com")
				run("config", "reset", "--section", "api")

				So(viper.GetInt(key.APITimeout), ShouldEqual, config.Default[key.APITimeout].Value)
				So(viper.GetString(key.APIBaseURL), ShouldEqual, config.Default[key.APIBaseURL].Value)
			})
		})

		Convey("info --section should only describe that section", func() {
			run("config", "info", "--section", "api")

			So(out.String(), ShouldContainSubstring, "[api]")
			So(out.String(), ShouldContainSubstring, key.APIBaseURL)
			So(out.String(), ShouldContainSubstring, key.APITimeout)
			So(out.String(), ShouldNotContainSubstring, "[logs]")
			So(out.String(), ShouldNotContainSubstring, key.LogsLevel)
		})
	})
}
