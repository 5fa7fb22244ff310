package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/derickschaefer/reel/internal/catalog"
	"github.com/derickschaefer/reel/internal/model"
	"github.com/derickschaefer/reel/internal/render"
	"github.com/derickschaefer/reel/internal/util"
)

// chromeLines is the number of rows around the results viewport:
// title, input, status, page bar and help.
const chromeLines = 6

// Options configures the explorer.
type Options struct {
	Fetcher  catalog.Fetcher
	Language string
	Debounce time.Duration
	// Clock drives the debounce timer; nil means the system clock.
	Clock catalog.Clock
	// Timeout bounds a single request. Zero means no extra deadline.
	Timeout time.Duration
}

// sender forwards timer callbacks into the running program.
type sender struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (s *sender) post(msg tea.Msg) {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

// App is the root model for the explorer.
type App struct {
	ctrl    *catalog.Controller
	fetcher catalog.Fetcher
	timeout time.Duration
	out     *sender

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model

	width  int
	height int
	ready  bool
}

// NewApp creates the explorer in its initial browse state.
func NewApp(opts Options) App {
	out := &sender{}
	clock := opts.Clock
	if clock == nil {
		clock = catalog.SystemClock{}
	}
	ctrl := catalog.NewController(catalog.Options{
		Language: opts.Language,
		Clock:    clock,
		Debounce: opts.Debounce,
		Notify:   func(seq uint64) { out.post(DebounceFired{Seq: seq}) },
	})

	ti := textinput.New()
	ti.Placeholder = "Search movies…"
	ti.Prompt = "› "
	ti.CharLimit = 200
	ti.Width = 40
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorHighlight)

	vp := viewport.New(80, 20)
	vp.KeyMap = viewport.KeyMap{Up: keys.Up, Down: keys.Down}

	return App{
		ctrl:     ctrl,
		fetcher:  opts.Fetcher,
		timeout:  opts.Timeout,
		out:      out,
		input:    ti,
		spinner:  s,
		viewport: vp,
		help:     help.New(),
	}
}

// Attach routes debounce notifications into p. Call it before p.Run.
func (a App) Attach(p *tea.Program) {
	a.out.mu.Lock()
	a.out.send = p.Send
	a.out.mu.Unlock()
}

// Controller exposes the underlying state machine for inspection.
func (a App) Controller() *catalog.Controller { return a.ctrl }

// Init starts the initial browse load.
func (a App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.spinner.Tick, a.run(a.ctrl.Start()))
}

// run returns a command that performs t and reports back with FetchDone.
func (a App) run(t catalog.Ticket) tea.Cmd {
	f, timeout := a.fetcher, a.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return FetchDone{Response: catalog.Run(ctx, f, t)}
	}
}

// follow turns an optional ticket into a command.
func (a App) follow(t catalog.Ticket, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	return a.run(t)
}

// Update handles incoming messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.viewport.Width = msg.Width
		a.viewport.Height = max(msg.Height-chromeLines, 1)
		a.input.Width = max(msg.Width/2, 20)
		a.refresh()
		return a, nil

	case DebounceFired:
		cmd := a.follow(a.ctrl.DebounceFired(msg.Seq))
		a.refresh()
		return a, cmd

	case FetchDone:
		cmd := a.follow(a.ctrl.Complete(msg.Response))
		a.refresh()
		a.viewport.GotoTop()
		return a, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, keys.Submit):
		cmd = a.follow(a.ctrl.Submit(a.input.Value()))

	case key.Matches(msg, keys.NextSort):
		next := a.ctrl.State().SortKey.Next()
		cmd = a.follow(a.ctrl.Apply(catalog.SelectSort{Key: next}))

	case key.Matches(msg, keys.PrevSort):
		prev := a.ctrl.State().SortKey.Prev()
		cmd = a.follow(a.ctrl.Apply(catalog.SelectSort{Key: prev}))

	case key.Matches(msg, keys.NextPage):
		cmd = a.follow(a.ctrl.Apply(catalog.NextPage{}))

	case key.Matches(msg, keys.PrevPage):
		cmd = a.follow(a.ctrl.Apply(catalog.PrevPage{}))

	case key.Matches(msg, keys.Up, keys.Down):
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd

	default:
		before := a.input.Value()
		a.input, cmd = a.input.Update(msg)
		if a.input.Value() != before {
			a.ctrl.Keystroke(a.input.Value())
		}
		return a, cmd
	}

	a.refresh()
	return a, cmd
}

// refresh rebuilds the viewport content from the controller.
func (a *App) refresh() {
	a.viewport.SetContent(renderResults(a.ctrl.Outcome()))
}

// renderResults lists the movies of out. Loading and failed requests keep
// showing the previous list.
func renderResults(out model.FetchOutcome) string {
	if out.Empty() {
		return Notice.Render("No results.")
	}
	var b strings.Builder
	for i, m := range out.Results {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderMovie(m))
	}
	return b.String()
}

func renderMovie(m model.Movie) string {
	mark := "  "
	if m.PosterPath != "" {
		mark = PosterMark.Render("▣ ")
	}
	meta := fmt.Sprintf("Release: %s   Rating: %s",
		util.DisplayDate(m), Rating.Render(util.DisplayRating(m)))
	return mark + MovieTitle.Render(util.DisplayTitle(m)) + "\n" + MovieMeta.Render(meta)
}

// View renders the explorer.
func (a App) View() string {
	state := a.ctrl.State()

	var b strings.Builder
	b.WriteString(Title.Render("Movie Explorer"))
	b.WriteString("\n")
	b.WriteString(a.input.View())
	b.WriteString(SortLabel.Render("Sort By: " + state.SortKey.Label()))
	b.WriteString("\n")

	switch out := a.ctrl.Outcome(); out.Kind {
	case model.OutcomeLoading:
		b.WriteString(a.spinner.View() + Notice.Render(" Loading…"))
	case model.OutcomeFailure:
		b.WriteString(ErrorText.Render(out.Message))
	}
	b.WriteString("\n")

	b.WriteString(a.viewport.View())
	b.WriteString("\n")
	b.WriteString(a.pageBar(state))
	b.WriteString("\n")
	b.WriteString(a.help.View(keys))
	return b.String()
}

func (a App) pageBar(state catalog.SearchState) string {
	prev, next := PagerDisabled, PagerDisabled
	if a.ctrl.CanPrev() {
		prev = PagerActive
	}
	if a.ctrl.CanNext() {
		next = PagerActive
	}
	return StatusBar.Render(render.PageLine(state.Page, state.TotalPages)) +
		" " + prev.Render("‹ Prev") + " " + next.Render("Next ›")
}
