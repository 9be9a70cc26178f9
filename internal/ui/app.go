// Package ui provides the Bubble Tea TUI for marquee.
package ui

import (
	"time"

	"github.com/abelbrown/marquee/internal/catalog"
	"github.com/abelbrown/marquee/internal/logging"
	"github.com/abelbrown/marquee/internal/search"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Commands are the side effects App can start. Each returned Cmd must
// answer with the matching search event. A nil func disables that effect.
type Commands struct {
	FetchMovies      func(seq uint64, query string) tea.Cmd
	RecordOccurrence func(query string, movie catalog.Movie) tea.Cmd
	LoadTrending     func(limit int) tea.Cmd
}

// App is the root Bubble Tea model.
// IMPORTANT: App does NOT hold the catalog client or the trend store. All I/O
// goes through Commands and comes back as search events.
type App struct {
	cmds  Commands
	state search.State

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model

	width  int
	height int
	ready  bool
}

// NewApp creates an App around the initial search state.
func NewApp(state search.State, cmds Commands) App {
	ti := textinput.New()
	ti.Placeholder = "Search through thousands of movies"
	ti.Prompt = "🔍 "
	ti.CharLimit = 200
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SpinnerStyle

	return App{
		cmds:     cmds,
		state:    state,
		input:    ti,
		spinner:  sp,
		viewport: viewport.New(0, 0),
		help:     help.New(),
	}
}

// Init kicks off the first discover fetch and the trending strip.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		a.spinner.Tick,
		func() tea.Msg { return search.Started{} },
	)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.help.Width = msg.Width
		a.input.Width = max(msg.Width-10, 10)
		a.layout()
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case search.Event:
		return a.dispatch(msg)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// handleKeyMsg processes keyboard input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, keys.Clear):
		a.input.Reset()
		return a.inputChanged(nil)

	case key.Matches(msg, keys.PageUp, keys.PageDown, keys.HalfUp, keys.HalfDown):
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a.inputChanged(cmd)
}

// inputChanged feeds the search box value to the reducer if it moved.
func (a App) inputChanged(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if a.input.Value() == a.state.Query {
		return a, cmd
	}
	next, effectCmd := a.dispatch(search.InputChanged{Query: a.input.Value()})
	return next, tea.Batch(cmd, effectCmd)
}

// dispatch runs ev through the reducer and starts the resulting effects.
func (a App) dispatch(ev search.Event) (App, tea.Cmd) {
	prev := a.state
	var effects []search.Effect
	a.state, effects = search.Reduce(a.state, ev)

	if !sameMovies(prev.Movies, a.state.Movies) {
		a.viewport.GotoTop()
	}
	a.layout()

	var cmds []tea.Cmd
	for _, eff := range effects {
		if cmd := a.run(eff); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return a, tea.Batch(cmds...)
}

// run turns one effect into a command.
func (a App) run(eff search.Effect) tea.Cmd {
	switch eff := eff.(type) {
	case search.ScheduleDebounce:
		seq := eff.Seq
		return tea.Tick(eff.Delay, func(time.Time) tea.Msg {
			return search.DebounceElapsed{Seq: seq}
		})

	case search.FetchMovies:
		if a.cmds.FetchMovies == nil {
			return nil
		}
		return a.cmds.FetchMovies(eff.Seq, eff.Query)

	case search.RecordOccurrence:
		if a.cmds.RecordOccurrence == nil {
			return nil
		}
		return a.cmds.RecordOccurrence(eff.Query, eff.Movie)

	case search.LoadTrending:
		if a.cmds.LoadTrending == nil {
			return nil
		}
		return a.cmds.LoadTrending(eff.Limit)

	case search.LogFailure:
		logging.Warn("search side effect failed", "op", eff.Op, "query", eff.Query, "error", eff.Err)
	}
	return nil
}

// layout sizes the results viewport to whatever the header and footer leave.
func (a *App) layout() {
	if !a.ready {
		return
	}
	top := lipgloss.Height(a.renderTop())
	bottom := lipgloss.Height(a.renderStatusBar())
	a.viewport.Width = a.width
	a.viewport.Height = max(a.height-top-bottom, 1)
	a.viewport.SetContent(RenderCards(a.state.Movies, a.width))
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderTop(),
		a.renderBody(),
		a.renderStatusBar(),
	)
}

func (a App) renderTop() string {
	header := Title.Render("marquee") + Tagline.Render("Find movies you'll enjoy without the hassle")
	box := SearchBox.Width(max(a.width-2, 10)).Render(a.input.View())

	parts := []string{header, box}
	if strip := RenderTrending(a.state.Trending, a.width); strip != "" {
		parts = append(parts, SectionHeader.Render("Trending Movies"), strip)
	}
	parts = append(parts, SectionHeader.Render("All Movies"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderBody shows exactly one of spinner, error or results.
func (a App) renderBody() string {
	body := lipgloss.NewStyle().Height(a.viewport.Height)
	switch {
	case a.state.ShowSpinner():
		return body.Render(" " + a.spinner.View() + " Loading movies...")
	case a.state.ShowError():
		return body.Render(ErrorStyle.Render(a.state.Err))
	case a.state.ShowResults():
		return a.viewport.View()
	default:
		return body.Render(HelpStyle.Render("Start typing to search."))
	}
}

func (a App) renderStatusBar() string {
	return RenderStatusBar(a.help.View(keys), a.state, a.width)
}

// State returns the current search state (for testing).
func (a App) State() search.State {
	return a.state
}

// Query returns the search box contents (for testing).
func (a App) Query() string {
	return a.input.Value()
}

func sameMovies(a, b []catalog.Movie) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

// keyMap implements help.KeyMap.
type keyMap struct {
	Quit     key.Binding
	Clear    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Clear, k.PageUp, k.PageDown, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Clear, k.Quit}, {k.PageUp, k.PageDown, k.HalfUp, k.HalfDown}}
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Clear:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
	PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	HalfUp:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "½ up")),
	HalfDown: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "½ down")),
}
