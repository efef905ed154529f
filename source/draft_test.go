package source

import (
	"errors"
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDraft(t *testing.T) {
	Convey("Given a new draft", t, func() {
		d := NewDraft()

		Convey("It defaults to youtube with empty fields", func() {
			So(d.Type, ShouldEqual, YouTube)
			So(d.Name, ShouldBeEmpty)
			So(d.URL, ShouldBeEmpty)
			So(d.Empty(), ShouldBeTrue)
		})

		Convey("When a field is set", func() {
			next, err := d.With(FieldName, "Tech")
			So(err, ShouldBeNil)

			Convey("Only that field changes", func() {
				So(next.Name, ShouldEqual, "Tech")
				So(next.Type, ShouldEqual, YouTube)
				So(next.Empty(), ShouldBeFalse)
				So(d.Name, ShouldBeEmpty)
			})
		})

		Convey("When the type is set to an unknown value", func() {
			next, err := d.With(FieldType, "vimeo")

			Convey("The previous type is kept", func() {
				So(errors.Is(err, ErrUnknownType), ShouldBeTrue)
				So(next.Type, ShouldEqual, YouTube)
			})
		})

		Convey("When an unknown field is set", func() {
			_, err := d.With(Field("id"), "1")
			So(errors.Is(err, ErrUnknownField), ShouldBeTrue)
		})

		Convey("It round-trips its fields through Get", func() {
			d.URL = "https://example.com/feed"
			So(d.Get(FieldURL), ShouldEqual, "https://example.com/feed")
			So(d.Get(FieldType), ShouldEqual, "youtube")
			So(d.Get(Field("id")), ShouldBeEmpty)
		})
	})
}

func TestDraftValidate(t *testing.T) {
	Convey("Validate", t, func() {
		Convey("Should accept a complete draft", func() {
			d := Draft{Name: "Tech", Type: YouTube, URL: "https://youtube.com/c/x"}
			So(d.Validate(), ShouldBeNil)
		})

		Convey("Should require a name and a url", func() {
			err := NewDraft().Validate()
			So(errors.Is(err, ErrNameRequired), ShouldBeTrue)
			So(errors.Is(err, ErrURLRequired), ShouldBeTrue)
		})

		Convey("Should reject relative addresses", func() {
			d := Draft{Name: "Tech", Type: RSS, URL: "example.com/feed"}
			So(errors.Is(d.Validate(), ErrInvalidURL), ShouldBeTrue)
		})

		Convey("Should accept a whitespace name like a required text input", func() {
			d := Draft{Name: "  ", Type: RSS, URL: "https://example.com/feed"}
			So(d.Validate(), ShouldBeNil)
		})

		Convey("Should accept absolute addresses without a host", func() {
			for _, u := range []string{"mailto:feeds@example.com", "urn:isbn:0451450523", " https://example.com/feed "} {
				d := Draft{Name: "Tech", Type: RSS, URL: u}
				So(d.Validate(), ShouldBeNil)
			}
		})

		Convey("Should reject an unknown type", func() {
			d := Draft{Name: "Tech", Type: "tv", URL: "https://example.com"}
			So(errors.Is(d.Validate(), ErrUnknownType), ShouldBeTrue)
		})
	})
}

func TestParseField(t *testing.T) {
	Convey("ParseField", t, func() {
		f, err := ParseField("url")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, FieldURL)

		_, err = ParseField("is_active")
		So(errors.Is(err, ErrUnknownField), ShouldBeTrue)
	})
}

func TestSourceJSON(t *testing.T) {
	Convey("Source decodes the backend representation", t, func() {
		var s Source
		err := json.Unmarshal([]byte(`{"id":1,"name":"A","type":"youtube","url":"u","is_active":true}`), &s)
		So(err, ShouldBeNil)
		So(s, ShouldResemble, Source{ID: 1, Name: "A", Type: YouTube, URL: "u", IsActive: true})
		So(s.Path(), ShouldEqual, "/sources/1")
	})

	Convey("Draft encodes exactly name, type and url", t, func() {
		body, err := json.Marshal(Draft{Name: "A", Type: RSS, URL: "u"})
		So(err, ShouldBeNil)
		So(string(body), ShouldEqual, `{"name":"A","type":"rss","url":"u"}`)
	})
}
