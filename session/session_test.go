package session

import (
	"errors"
	"testing"

	"github.com/grundrisse/grundrisse/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

type failing struct{ err error }

func (f failing) Token() (string, error) { return "", f.err }

func TestStatic(t *testing.T) {
	Convey("Static", t, func() {
		token, err := Static("abc").Token()
		So(err, ShouldBeNil)
		So(token, ShouldEqual, "abc")

		_, err = Static(" ").Token()
		So(errors.Is(err, ErrNoToken), ShouldBeTrue)
	})
}

func TestChain(t *testing.T) {
	Convey("Given a chain of providers", t, func() {
		Convey("It returns the first available token", func() {
			token, err := Chain{Static(""), Static("second")}.Token()
			So(err, ShouldBeNil)
			So(token, ShouldEqual, "second")
		})

		Convey("It reports ErrNoToken when none has a token", func() {
			_, err := Chain{Static(""), Static("")}.Token()
			So(errors.Is(err, ErrNoToken), ShouldBeTrue)
		})

		Convey("It stops at a hard failure", func() {
			boom := errors.New("keyring locked")
			_, err := Chain{failing{boom}, Static("x")}.Token()
			So(err, ShouldEqual, boom)
		})
	})
}

func TestConfigured(t *testing.T) {
	Convey("Configured reads the session.token key", t, func() {
		viper.Set(key.SessionToken, "from-config")
		defer viper.Set(key.SessionToken, "")

		token, err := Configured{}.Token()
		So(err, ShouldBeNil)
		So(token, ShouldEqual, "from-config")
	})
}

func TestKeyring(t *testing.T) {
	Convey("Given a mocked keyring", t, func() {
		keyring.MockInit()
		k := &Keyring{Service: "grundrisse-test", User: keyringUser}

		Convey("An empty keyring has no token", func() {
			_, err := k.Token()
			So(errors.Is(err, ErrNoToken), ShouldBeTrue)
		})

		Convey("A saved token is returned", func() {
			So(k.Save("secret"), ShouldBeNil)
			token, err := k.Token()
			So(err, ShouldBeNil)
			So(token, ShouldEqual, "secret")

			Convey("And forgotten after Delete", func() {
				So(k.Delete(), ShouldBeNil)
				_, err := k.Token()
				So(errors.Is(err, ErrNoToken), ShouldBeTrue)
			})
		})

		Convey("Deleting a missing token succeeds", func() {
			So(k.Delete(), ShouldBeNil)
		})

		Convey("Default falls back to the keyring", func() {
			viper.Set(key.SessionToken, "")
			viper.Set(key.SessionKeyringService, "grundrisse-test")
			So(k.Save("stored"), ShouldBeNil)

			token, err := Default().Token()
			So(err, ShouldBeNil)
			So(token, ShouldEqual, "stored")
		})
	})
}
