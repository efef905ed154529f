package tui

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grundrisse/grundrisse/form"
	"github.com/grundrisse/grundrisse/internal/registrytest"
	"github.com/grundrisse/grundrisse/internal/ui"
	"github.com/grundrisse/grundrisse/key"
	"github.com/grundrisse/grundrisse/registry"
	"github.com/grundrisse/grundrisse/session"
	"github.com/grundrisse/grundrisse/source"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

var foo = source.Source{ID: 1, Name: "Foo", Type: source.RSS, URL: "https://x/feed", IsActive: true}

func newTestBubble(t *testing.T, options *Options) (*statefulBubble, *registrytest.Server) {
	viper.Set(key.TUIShowURLs, true)

	srv := registrytest.New(t)
	options.Client = registry.New(srv.URL, options.Credentials, registry.WithHTTPClient(srv.Client()))

	b := newBubble(context.Background(), options)
	b.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	t.Cleanup(b.store.Close)
	return b, srv
}

// collect runs cmd and every command it batches, keeping the messages that
// arrive within wait. Timers such as notification expiry are dropped.
func collect(cmd tea.Cmd, wait time.Duration) []tea.Msg {
	if cmd == nil {
		return nil
	}

	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		batch, ok := msg.(tea.BatchMsg)
		if !ok {
			return []tea.Msg{msg}
		}

		var (
			mu  sync.Mutex
			wg  sync.WaitGroup
			out []tea.Msg
		)
		for _, c := range batch {
			wg.Add(1)
			go func(c tea.Cmd) {
				defer wg.Done()
				msgs := collect(c, wait)
				mu.Lock()
				out = append(out, msgs...)
				mu.Unlock()
			}(c)
		}
		wg.Wait()
		return out
	case <-time.After(wait):
		return nil
	}
}

// deliver feeds the dashboard's own messages back into it until it settles.
func deliver(b *statefulBubble, cmd tea.Cmd) (quit bool) {
	for _, msg := range collect(cmd, 500*time.Millisecond) {
		switch msg.(type) {
		case tea.QuitMsg:
			quit = true
		case sourcesFetchedMsg, sourceCreatedMsg, sourceRemovedMsg, welcomeMsg, ui.NotificationMsg:
			_, next := b.Update(msg)
			quit = deliver(b, next) || quit
		}
	}
	return quit
}

func press(b *statefulBubble, keys ...tea.KeyMsg) (quit bool) {
	for _, k := range keys {
		_, cmd := b.Update(k)
		quit = deliver(b, cmd) || quit
	}
	return quit
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEscape}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	right = tea.KeyMsg{Type: tea.KeyRight}
)

func TestDashboardLoading(t *testing.T) {
	Convey("Given a backend with one active rss source", t, func() {
		b, srv := newTestBubble(t, &Options{Credentials: session.Static(registrytest.Token)})
		srv.Seed(foo)

		Convey("The loading line is shown, then replaced by the row", func() {
			hold := srv.Hold(registrytest.ListRoute)
			done := make(chan error, 1)
			go func() { done <- b.store.Refresh(context.Background()) }()

			<-hold.Arrived()
			So(b.View(), ShouldContainSubstring, "Loading sources...")

			hold.Release()
			b.Update(sourcesFetchedMsg{err: <-done})

			view := b.View()
			So(view, ShouldNotContainSubstring, "Loading sources...")
			So(view, ShouldContainSubstring, "Foo")
			So(view, ShouldContainSubstring, "RSS")
			So(view, ShouldContainSubstring, "https://x/feed")
			So(view, ShouldContainSubstring, "Active")

			items := b.sourcesC.Items()
			So(items, ShouldHaveLength, 1)
			So(items[0].(*listItem).row().Class, ShouldEqual, "active")
		})
	})

	Convey("Given an empty backend", t, func() {
		b, _ := newTestBubble(t, &Options{Credentials: session.Static(registrytest.Token)})
		deliver(b, b.Init())

		Convey("The instructional message is shown instead of rows", func() {
			So(b.View(), ShouldContainSubstring, `No sources added yet. Click "Add Source" to get started.`)
			So(b.sourcesC.Items(), ShouldBeEmpty)
		})

		Convey("The operator's name comes from the profile endpoint", func() {
			So(b.username.OrEmpty(), ShouldEqual, registrytest.Username)
			So(b.View(), ShouldContainSubstring, "Welcome, admin")
		})
	})

	Convey("Given a failing backend", t, func() {
		b, srv := newTestBubble(t, &Options{Credentials: session.Static(registrytest.Token)})
		srv.Fail(registrytest.ListRoute, http.StatusInternalServerError)
		deliver(b, b.refresh())

		Convey("The dashboard stays up with the loading line cleared", func() {
			So(b.loading(), ShouldBeFalse)
			So(b.View(), ShouldNotContainSubstring, "Loading sources...")
			So(b.notifier.Notification(), ShouldContainSubstring, "failed to fetch sources")
		})
	})
}

func TestDashboardAddSource(t *testing.T) {
	Convey("Given a loaded dashboard", t, func() {
		b, srv := newTestBubble(t, &Options{Credentials: session.Static(registrytest.Token)})
		deliver(b, b.Init())

		Convey("Pressing a opens the form with the cancel label", func() {
			press(b, runes("a"))
			So(b.state, ShouldEqual, formState)
			So(b.form.ToggleLabel(), ShouldEqual, "Cancel")
			So(b.View(), ShouldContainSubstring, "e.g., Tech Channel")

			Convey("Escape hides it and keeps the draft", func() {
				press(b, runes("Tech"), esc)
				So(b.state, ShouldEqual, sourcesState)
				So(b.form.Visible(), ShouldBeFalse)
				So(b.form.Draft().Name, ShouldEqual, "Tech")
			})

			Convey("A complete draft is submitted, then the form resets and the list refreshes", func() {
				press(b, runes("Tech Channel"), tab, right, tab, runes("https://example.com/feed"), enter)

				So(srv.Sources(), ShouldHaveLength, 1)
				So(srv.Sources()[0].Type, ShouldEqual, source.RSS)
				So(b.state, ShouldEqual, sourcesState)
				So(b.form.State().Submission, ShouldEqual, form.Succeeded)
				So(b.form.Draft(), ShouldResemble, source.NewDraft())
				So(b.nameC.Value(), ShouldBeEmpty)
				So(b.sourcesC.Items(), ShouldHaveLength, 1)
			})

			Convey("A created answer without a body still resets the form", func() {
				srv.ReplyCreate(http.StatusCreated, "")
				press(b, runes("Tech Channel"), tab, tab, runes("https://example.com/feed"), enter)

				So(srv.Hits(registrytest.CreateRoute), ShouldEqual, 1)
				So(b.state, ShouldEqual, sourcesState)
				So(b.form.State().Submission, ShouldEqual, form.Succeeded)
				So(b.form.Draft(), ShouldResemble, source.NewDraft())
				So(b.sourcesC.Items(), ShouldHaveLength, 1)
			})

			Convey("A rejected draft keeps the form open with the error", func() {
				srv.Fail(registrytest.CreateRoute, http.StatusUnprocessableEntity)
				press(b, runes("Tech Channel"), tab, tab, runes("https://example.com/feed"), enter)

				So(b.state, ShouldEqual, formState)
				So(b.form.State().Submission, ShouldEqual, form.Failed)
				So(b.form.Draft().Name, ShouldEqual, "Tech Channel")
				So(b.View(), ShouldContainSubstring, "failed to create source")
			})

			Convey("An incomplete draft is not sent", func() {
				press(b, runes("Tech Channel"), enter)

				So(srv.Hits(registrytest.CreateRoute), ShouldEqual, 0)
				So(b.View(), ShouldContainSubstring, "url is required")
			})
		})
	})
}

func TestDashboardRemoveSource(t *testing.T) {
	Convey("Given a dashboard listing one source", t, func() {
		b, srv := newTestBubble(t, &Options{Credentials: session.Static(registrytest.Token)})
		srv.Seed(foo)
		deliver(b, b.Init())
		So(b.sourcesC.Items(), ShouldHaveLength, 1)

		press(b, runes("d"))
		So(b.state, ShouldEqual, confirmState)
		So(b.View(), ShouldContainSubstring, "Are you sure you want to delete this source?")

		Convey("Declining sends nothing and keeps the row", func() {
			press(b, runes("n"))
			So(b.state, ShouldEqual, sourcesState)
			So(srv.Hits(registrytest.DeleteRoute), ShouldEqual, 0)
			So(b.sourcesC.Items(), ShouldHaveLength, 1)
		})

		Convey("Accepting deletes and refreshes", func() {
			press(b, runes("y"))
			So(srv.Hits(registrytest.DeleteRoute), ShouldEqual, 1)
			So(b.sourcesC.Items(), ShouldBeEmpty)
		})

		Convey("Accepting starts the spinner for the follow-up refresh", func() {
			msgs := collect(b.remove(foo, true), 500*time.Millisecond)
			ticks := lo.CountBy(msgs, func(m tea.Msg) bool {
				_, ok := m.(spinner.TickMsg)
				return ok
			})
			So(ticks, ShouldEqual, 1)
		})

		Convey("Declining does not start the spinner", func() {
			msgs := collect(b.remove(foo, false), 500*time.Millisecond)
			So(msgs, ShouldHaveLength, 1)
			_, ok := msgs[0].(sourceRemovedMsg)
			So(ok, ShouldBeTrue)
		})

		Convey("A failed delete keeps the row", func() {
			srv.Fail(registrytest.DeleteRoute, http.StatusInternalServerError)
			press(b, runes("y"))
			So(b.sourcesC.Items(), ShouldHaveLength, 1)
			So(b.notifier.Notification(), ShouldContainSubstring, "failed to delete source")
		})
	})
}

func TestDashboardLogout(t *testing.T) {
	Convey("Given a dashboard with a keyring session", t, func() {
		keyring.MockInit()
		holder := &session.Keyring{Service: "grundrisse-test", User: "access-token"}
		So(holder.Save(registrytest.Token), ShouldBeNil)

		b, _ := newTestBubble(t, &Options{Credentials: holder, Session: holder})
		deliver(b, b.Init())

		Convey("Logging out forgets the token and quits", func() {
			So(press(b, runes("L")), ShouldBeTrue)
			_, err := holder.Token()
			So(err, ShouldEqual, session.ErrNoToken)
		})
	})
}
