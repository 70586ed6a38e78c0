package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/speaktech/transqiita/internal/adapters/driving/tui/components/list"
	"github.com/speaktech/transqiita/internal/adapters/driving/tui/components/status"
	"github.com/speaktech/transqiita/internal/adapters/driving/tui/keymap"
	"github.com/speaktech/transqiita/internal/adapters/driving/tui/messages"
	"github.com/speaktech/transqiita/internal/adapters/driving/tui/styles"
	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/i18n"
)

// App is the worklist picker following the Elm architecture.
//
// Flow: load worklist, pick one article (enter) or all (a), confirm with y,
// then publish sequentially while progress lines accumulate.
type App struct {
	ports   *Ports
	ctx     context.Context
	styles  *styles.Styles
	keys    *keymap.KeyMap
	list    *list.Worklist
	bar     *status.Bar
	spinner spinner.Model

	state    status.State
	preset   bool
	chosen   domain.Worklist
	offset   int
	progress []string
	events   chan tea.Msg
	results  []domain.PublishResult
	err      error
	held     bool // ctrl+c pressed mid-batch

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a picker with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = s.Title

	return &App{
		ports:   ports,
		ctx:     context.Background(),
		styles:  s,
		keys:    km,
		list:    list.NewWorklist(s),
		bar:     status.NewBar(s, km),
		spinner: sp,
		state:   status.StateLoading,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithWorklist skips loading and offers wl directly.
func (a *App) WithWorklist(wl domain.Worklist) *App {
	a.preset = true
	a.setWorklist(wl)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("transqiita"), a.spinner.Tick}
	if !a.preset {
		cmds = append(cmds, a.loadWorklist())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.list.SetWidth(msg.Width)
		a.bar.SetWidth(msg.Width)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case messages.WorklistLoaded:
		if msg.Err != nil {
			a.fail(msg.Err)
			return a, nil
		}
		a.setWorklist(msg.Worklist)
		return a, nil

	case messages.ItemPublished:
		a.progress = append(a.progress, a.progressLine(msg))
		return a, a.waitForEvent()

	case messages.PublishFinished:
		a.results = msg.Results
		if msg.Err != nil {
			a.fail(msg.Err)
		} else {
			a.setState(status.StateDone)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if k == "ctrl+c" {
		if a.state == status.StatePublishing {
			a.held = true
			return a, nil
		}
		return a, tea.Quit
	}

	switch a.state {
	case status.StatePicking:
		switch {
		case keymap.Matches(k, a.keys.Quit):
			return a, tea.Quit
		case keymap.Matches(k, a.keys.Up):
			a.list.MoveUp()
		case keymap.Matches(k, a.keys.Down):
			a.list.MoveDown()
		case keymap.Matches(k, a.keys.NextPage):
			a.list.NextPage()
		case keymap.Matches(k, a.keys.PrevPage):
			a.list.PrevPage()
		case keymap.Matches(k, a.keys.Pick):
			if item, ok := a.list.Selected(); ok {
				a.chosen = domain.Worklist{item}
				a.offset = a.list.Cursor()
				a.setState(status.StateConfirm)
			}
		case keymap.Matches(k, a.keys.All):
			if a.list.Count() > 0 {
				a.chosen = a.list.Items()
				a.offset = 0
				a.setState(status.StateConfirm)
			}
		}
		return a, nil

	case status.StateConfirm:
		switch {
		case keymap.Matches(k, a.keys.Yes):
			a.setState(status.StatePublishing)
			return a, a.startPublish()
		case keymap.Matches(k, a.keys.No):
			a.chosen = nil
			a.setState(status.StatePicking)
		}
		return a, nil

	case status.StateLoading, status.StateDone, status.StateError:
		if keymap.Matches(k, a.keys.Quit) || k == "enter" || k == "esc" {
			return a, tea.Quit
		}
	case status.StatePublishing:
		// Quitting mid-batch would leave the current article half done.
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("transqiita"))
	b.WriteString("\n\n")

	switch a.state {
	case status.StateLoading:
		b.WriteString(a.spinner.View() + " " + i18n.T("Building worklist..."))
	case status.StatePicking:
		b.WriteString(a.list.View())
	case status.StateConfirm:
		b.WriteString(a.confirmView())
	case status.StatePublishing, status.StateDone, status.StateError:
		b.WriteString(a.progressView())
	}

	b.WriteString("\n\n")
	b.WriteString(a.bar.View())
	return b.String()
}

// Results returns what was published, for the caller after the program exits.
func (a *App) Results() []domain.PublishResult {
	return a.results
}

// Err returns the error that ended the session, ErrCancelled if the user
// quit before publishing, or nil.
func (a *App) Err() error {
	if a.err != nil {
		return a.err
	}
	if a.state != status.StateDone {
		return ErrCancelled
	}
	return nil
}

// State returns the current phase.
func (a *App) State() status.State {
	return a.state
}

// Chosen returns the items picked for publishing.
func (a *App) Chosen() domain.Worklist {
	return a.chosen
}

func (a *App) setWorklist(wl domain.Worklist) {
	a.list.SetItems(wl)
	a.bar.SetCounts(wl.Counts())
	a.setState(status.StatePicking)
}

func (a *App) setState(s status.State) {
	a.state = s
	a.bar.SetState(s)
}

func (a *App) fail(err error) {
	a.err = err
	a.bar.SetMessage(err.Error())
	a.setState(status.StateError)
}

func (a *App) loadWorklist() tea.Cmd {
	ctx := a.ctx
	svc := a.ports.Worklist
	return func() tea.Msg {
		wl, err := svc.Build(ctx)
		return messages.WorklistLoaded{Worklist: wl, Err: err}
	}
}

// startPublish runs the batch in the background and streams progress
// through a.events.
func (a *App) startPublish() tea.Cmd {
	events := make(chan tea.Msg, len(a.chosen)+1)
	a.events = events

	ctx := a.ctx
	svc := a.ports.Publish
	items := a.chosen
	req := a.ports.Request

	go func() {
		defer close(events)
		results, err := svc.PublishAll(ctx, items, req,
			func(index, total int, result *domain.PublishResult, err error) {
				events <- messages.ItemPublished{Index: index, Total: total, Result: result, Err: err}
			})
		events <- messages.PublishFinished{Results: results, Err: err}
	}()

	return a.waitForEvent()
}

func (a *App) waitForEvent() tea.Cmd {
	events := a.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

func (a *App) confirmView() string {
	lines := make([]string, 0, len(a.chosen)+2)
	for i, item := range a.chosen {
		lines = append(lines, list.Line(a.offset+i, item))
	}
	lines = append(lines, "", a.styles.Title.Render(
		i18n.N("Translate %d article? [y/n]", "Translate %d articles? [y/n]", len(a.chosen), len(a.chosen))))
	return strings.Join(lines, "\n")
}

func (a *App) progressLine(msg messages.ItemPublished) string {
	if msg.Err != nil || msg.Result == nil {
		title := ""
		if msg.Index < len(a.chosen) {
			title = a.chosen[msg.Index].Article.Title
		}
		return a.styles.Error.Render(fmt.Sprintf("[%d/%d] (FAILED) %s: %v", msg.Index+1, msg.Total, title, msg.Err))
	}
	return a.styles.Success.Render(domain.ProgressLine(msg.Index, msg.Total, *msg.Result))
}

func (a *App) progressView() string {
	lines := append([]string(nil), a.progress...)
	switch a.state {
	case status.StatePublishing:
		lines = append(lines, a.spinner.View()+" "+i18n.T("Translating..."))
		if a.held {
			lines = append(lines, a.styles.Error.Render(i18n.T("Publishing in progress, quit once it finishes.")))
		}
	case status.StateDone:
		lines = append(lines, "", a.styles.Success.Render(
			i18n.N("%d article published.", "%d articles published.", len(a.results), len(a.results))))
	case status.StateError:
		lines = append(lines, "", a.styles.Error.Render(a.err.Error()))
	}
	return strings.Join(lines, "\n")
}
