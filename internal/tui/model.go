// Package tui is the interactive Bubble Tea front end: an input line for new
// items above the list, with save and autosave status.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/state"
	"github.com/Makepad-fr/tada/internal/ui"
)

// ToastDuration is how long the "Saved" notice stays up after a manual save.
const ToastDuration = 2 * time.Second

// Session is what the UI needs from a running session.
type Session interface {
	Save(ctx context.Context) error
	StartAutosave(ctx context.Context, onSave func(error))
}

// AutosavedMsg is delivered after each background save.
type AutosavedMsg struct{ Err error }

type toastExpiredMsg struct{ id int }

type focus int

const (
	focusInput focus = iota
	focusList
)

type Model struct {
	ctx   context.Context
	store *state.Store
	sess  Session
	theme ui.Theme
	keys  keyMap

	list  list.Model
	input textinput.Model
	focus focus

	toast   string
	toastID int
	status  string

	width, height int
}

// New builds the UI model over st. Nothing is persisted until the user saves
// or the session's autosave fires.
func New(ctx context.Context, st *state.Store, sess Session, theme ui.Theme) Model {
	keys := defaultKeys()

	l := list.New(toListItems(st.Items()), itemDelegate{theme: theme}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetShowHelp(true)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.Styles.HelpStyle = theme.Muted
	l.Styles.PaginationStyle = theme.Muted
	l.Styles.NoItems = theme.Muted
	l.SetStatusBarItemName("item", "items")
	extra := func() []key.Binding { return []key.Binding{keys.Switch, keys.Done, keys.Delete, keys.Save} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Enter some text..."
	ti.CharLimit = 200
	ti.SetValue(st.Input())
	ti.Focus()

	m := Model{
		ctx:   ctx,
		store: st,
		sess:  sess,
		theme: theme,
		keys:  keys,
		list:  l,
		input: ti,
		focus: focusInput,
	}
	m.resize(80, 24)
	return m
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	// header(2) + input box(3) + status(1) + outer border(2)
	listHeight := h - 8
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.SetSize(w-4, listHeight)
	m.input.Width = w - 10
}

// refresh re-reads the store into the list widget.
func (m *Model) refresh() {
	idx := m.list.Index()
	m.list.SetItems(toListItems(m.store.Items()))
	if n := len(m.list.Items()); idx >= n && n > 0 {
		m.list.Select(n - 1)
	}
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	m.list.SetDelegate(itemDelegate{theme: m.theme, focused: f == focusList})
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) selected() (listItem, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it, ok
}

// save writes the list if it has unsaved changes; otherwise the action is
// disabled and does nothing.
func (m *Model) save() tea.Cmd {
	if !m.store.Dirty() {
		return nil
	}
	if err := m.sess.Save(m.ctx); err != nil {
		m.status = "save failed: " + err.Error()
		return nil
	}
	m.status = ""
	m.toastID++
	m.toast = "Saved"
	id := m.toastID
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case AutosavedMsg:
		if msg.Err != nil {
			m.status = "autosave failed: " + msg.Err.Error()
		} else if strings.HasPrefix(m.status, "autosave failed") {
			m.status = ""
		}
		return m, nil

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Save):
			cmd := m.save()
			return m, cmd
		case key.Matches(msg, m.keys.Switch):
			if m.focus == focusInput {
				m.setFocus(focusList)
			} else {
				m.setFocus(focusInput)
			}
			return m, nil
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Add) {
		if m.store.Submit() {
			m.input.SetValue("")
			m.refresh()
			m.list.Select(len(m.list.Items()) - 1)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.store.SetInput(m.input.Value())
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.QuitQ):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Done):
		if it, ok := m.selected(); ok && m.store.MarkDone(it.Value) {
			m.refresh()
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if it, ok := m.selected(); ok && m.store.Remove(it.Value) {
			m.refresh()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	t := m.theme
	done, pending := m.store.Stats()

	header := t.Header(done, pending)
	if m.store.Dirty() {
		header += "  " + t.Pending.Render("● unsaved")
	}
	header += "\n" + t.ProgressBar(done, done+pending, 20)

	inputBox := t.Panel(m.input.View())

	var status string
	switch {
	case m.status != "":
		status = t.Error.Render(m.status)
	case m.toast != "":
		status = t.Success.Render(t.SymDone + " " + m.toast)
	case !m.store.Dirty():
		status = t.Muted.Render("all changes saved")
	default:
		status = t.Muted.Render("ctrl+s to save")
	}

	return t.Panel(header, inputBox, m.list.View(), status)
}

// Run starts the program and the session's autosave, and blocks until the
// user quits or ctx is cancelled.
func Run(ctx context.Context, st *state.Store, sess Session, theme ui.Theme) error {
	p := tea.NewProgram(New(ctx, st, sess, theme), tea.WithAltScreen(), tea.WithContext(ctx))
	sess.StartAutosave(ctx, func(err error) { p.Send(AutosavedMsg{Err: err}) })

	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
