// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/grundrisse/grundrisse/constant"
	"github.com/grundrisse/grundrisse/form"
	"github.com/grundrisse/grundrisse/internal/ui"
	"github.com/grundrisse/grundrisse/key"
	"github.com/grundrisse/grundrisse/registry"
	"github.com/grundrisse/grundrisse/session"
	"github.com/grundrisse/grundrisse/source"
	"github.com/grundrisse/grundrisse/store"
	"github.com/grundrisse/grundrisse/style"
	"github.com/grundrisse/grundrisse/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// statefulBubble encapsulates the dashboard state: the source list, the add form and the delete prompt.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]

	keymap *statefulKeymap

	// components
	spinnerC spinner.Model
	sourcesC list.Model
	nameC    textinput.Model
	urlC     textinput.Model
	helpC    help.Model

	focus source.Field

	ctx         context.Context
	client      *registry.Client
	credentials session.Provider
	session     session.Holder
	store       *store.Store
	form        *form.Controller

	username       mo.Option[string]
	pendingRemoval mo.Option[source.Source]

	width, height int
	notifier      *ui.Model
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState transitions to a target state, recording the previous one in the navigation history.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	b.statesHistory.Push(b.state)
	b.setState(s)
}

// previousState restores the application to its immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy - headerHeight

	b.sourcesC.SetSize(listWidth, max(listHeight, 0))
	b.sourcesC.Help.Width = listWidth

	b.nameC.Width = max(listWidth-len(b.nameC.Prompt)-1, 0)
	b.urlC.Width = max(listWidth-len(b.urlC.Prompt)-1, 0)

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

// loading reports whether the store is fetching.
func (b *statefulBubble) loading() bool {
	return b.store.Loading()
}

// syncList rebuilds the list items from the store.
func (b *statefulBubble) syncList() tea.Cmd {
	items := lo.Map(b.store.Sources(), func(s source.Source, _ int) list.Item {
		return &listItem{internal: s}
	})
	return b.sourcesC.SetItems(items)
}

// syncInputs copies the draft into the text inputs.
func (b *statefulBubble) syncInputs() {
	draft := b.form.Draft()
	b.nameC.SetValue(draft.Name)
	b.urlC.SetValue(draft.URL)
}

// focusField moves the cursor to a form field.
func (b *statefulBubble) focusField(field source.Field) tea.Cmd {
	b.focus = field
	b.nameC.Blur()
	b.urlC.Blur()

	switch field {
	case source.FieldName:
		return b.nameC.Focus()
	case source.FieldURL:
		return b.urlC.Focus()
	default:
		return nil
	}
}

// selected returns the highlighted source.
func (b *statefulBubble) selected() (source.Source, bool) {
	item, ok := b.sourcesC.SelectedItem().(*listItem)
	if !ok {
		return source.Source{}, false
	}
	return item.internal, true
}

// newBubble performs a complete initialization of the dashboard model.
func newBubble(ctx context.Context, options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	s := store.New(options.Client)

	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,

		ctx:         ctx,
		client:      options.Client,
		credentials: options.Credentials,
		session:     options.Session,
		store:       s,
		form:        form.New(s),

		notifier: &ui.Model{},
	}

	makeList := func(title string) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.ShowDescription = true
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1)
		listC.Styles.NoItems = paddingStyle
		listC.SetFilteringEnabled(false)
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)
		listC.SetStatusBarItemName("source", "sources")

		return listC
	}

	makeInput := func(prompt, placeholder string) textinput.Model {
		input := textinput.New()
		input.Prompt = prompt
		input.Placeholder = placeholder
		input.CharLimit = 2048
		return input
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.sourcesC = makeList(constant.SourcesTitle)
	bubble.nameC = makeInput("Name: ", constant.NamePlaceholder)
	bubble.urlC = makeInput("URL:  ", constant.URLPlaceholder)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.setState(sourcesState)
	return &bubble
}
