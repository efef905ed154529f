package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	. "github.com/smartystreets/goconvey/convey"
)

func sign(claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		panic(err)
	}
	return token
}

func TestPeekClaims(t *testing.T) {
	Convey("PeekClaims", t, func() {
		exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

		Convey("Should read subject and expiry without a key", func() {
			c, err := PeekClaims(sign(jwt.MapClaims{"sub": "admin", "exp": exp.Unix()}))
			So(err, ShouldBeNil)
			So(c.Subject.MustGet(), ShouldEqual, "admin")
			So(c.ExpiresAt.MustGet().Equal(exp), ShouldBeTrue)
			So(c.Expired(exp.Add(-time.Hour)), ShouldBeFalse)
			So(c.Expired(exp.Add(time.Hour)), ShouldBeTrue)
		})

		Convey("Should leave missing claims empty", func() {
			c, err := PeekClaims(sign(jwt.MapClaims{}))
			So(err, ShouldBeNil)
			So(c.Subject.IsAbsent(), ShouldBeTrue)
			So(c.ExpiresAt.IsAbsent(), ShouldBeTrue)
			So(c.Expired(time.Now()), ShouldBeFalse)
		})

		Convey("Should fail on an opaque token", func() {
			_, err := PeekClaims("opaque-token")
			So(err, ShouldNotBeNil)
		})
	})
}
