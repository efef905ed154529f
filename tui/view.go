// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/grundrisse/grundrisse/color"
	"github.com/grundrisse/grundrisse/constant"
	"github.com/grundrisse/grundrisse/form"
	"github.com/grundrisse/grundrisse/icon"
	"github.com/grundrisse/grundrisse/render"
	"github.com/grundrisse/grundrisse/source"
	"github.com/grundrisse/grundrisse/style"
	"github.com/muesli/reflow/wrap"
)

// headerHeight is the number of lines above the list.
const headerHeight = 5

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
	formStyle             = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(style.BorderColor).
				Padding(0, 1)
	errorStyle = lipgloss.NewStyle().Foreground(style.ErrorColor)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case sourcesState:
		output = b.viewSources()
	case formState:
		output = b.viewForm()
	case confirmState:
		output = b.viewConfirm()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewHeader() string {
	header := style.Title(constant.DashboardTitle)
	if username, ok := b.username.Get(); ok {
		welcome := fmt.Sprintf(constant.WelcomeFormat, username)
		if i := icon.Get(icon.User); i != "" {
			welcome = i + " " + welcome
		}
		header += "  " + style.Fg(color.Purple)(welcome)
	}

	toggle := b.keymap.add
	if b.form.Visible() {
		toggle = b.keymap.back
	}
	return header + "\n\n" + style.Faint(fmt.Sprintf("[%s] %s", toggle.Keys()[0], b.form.ToggleLabel()))
}

// viewContent renders the loading line, the empty-state message or the list.
func (b *statefulBubble) viewContent() string {
	switch {
	case b.loading():
		return paddingStyle.Render(b.spinnerC.View() + " " + render.LoadingMessage)
	case len(b.sourcesC.Items()) == 0:
		return paddingStyle.Render(
			style.Title(constant.SourcesTitle) + "\n\n" + style.Faint(render.EmptyMessage) + "\n\n" + b.helpC.View(b.keymap),
		)
	default:
		return listExtraPaddingStyle.Render(b.sourcesC.View())
	}
}

func (b *statefulBubble) viewSources() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		paddingStyle.Render(b.viewHeader()),
		b.viewContent(),
	)
}

func (b *statefulBubble) viewForm() string {
	fs := b.form.State()

	typeLabel := "Type: "
	types := make([]string, 0, len(source.Types()))
	for _, t := range source.Types() {
		name := string(t)
		if t == fs.Draft.Type {
			name = style.Tag(style.Base, style.AccentColor)(name)
		} else {
			name = style.Faint(name)
		}
		types = append(types, name)
	}
	if b.focus == source.FieldType {
		typeLabel = style.Fg(style.AccentColor)(typeLabel)
	}

	lines := []string{
		style.Title(constant.AddSourceLabel),
		"",
		b.nameC.View(),
		typeLabel + strings.Join(types, " "),
		b.urlC.View(),
	}

	if fs.Err != nil {
		lines = append(lines, "", errorStyle.Render(wrap.String(icon.Get(icon.Fail)+" "+fs.Err.Error(), b.width)))
	}

	if fs.Submission == form.Pending {
		lines = append(lines, "", b.spinnerC.View()+" Saving...")
	}

	lines = append(lines, "", b.helpC.View(b.keymap))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		paddingStyle.Render(b.viewHeader()),
		paddingStyle.Render(formStyle.Render(strings.Join(lines, "\n"))),
	)
}

func (b *statefulBubble) viewConfirm() string {
	var name string
	if src, ok := b.pendingRemoval.Get(); ok {
		name = src.Name
	}

	return b.renderLines(
		true,
		[]string{
			b.viewHeader(),
			"",
			icon.Get(icon.Question) + " " + constant.ConfirmDelete,
			"",
			style.Fg(color.Purple)(name),
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
