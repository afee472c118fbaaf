// Package tui renders the interactive console over the navigation engine.
// All network work runs through a single in-flight command; key input is
// ignored while a call is pending.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gwork/gwork-cli/internal/actions"
	"github.com/gwork/gwork-cli/internal/apierr"
	"github.com/gwork/gwork-cli/internal/nav"
	"github.com/gwork/gwork-cli/internal/session"
)

// resultMsg carries the outcome of one dispatched call back into Update,
// along with the navigation state the command mutated. The shared state is
// only ever replaced on the UI goroutine, inside Update.
type resultMsg struct {
	status string
	err    error
	st     *nav.State
}

type Model struct {
	mgr  *session.Manager
	disp *actions.Dispatcher
	st   *nav.State

	width  int
	height int

	loading bool
	status  string
	isErr   bool

	// accounts is the switcher overlay's snapshot, taken when the overlay
	// opens, so the highlighted row and the row resolved on enter come
	// from the same list.
	accounts []string

	input  textinput.Model
	area   textarea.Model
	detail viewport.Model
	spin   spinner.Model
}

func Run(mgr *session.Manager) error {
	p := tea.NewProgram(NewModel(mgr), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func NewModel(mgr *session.Manager) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ta := textarea.New()
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	vp := viewport.New(0, 0)

	return Model{
		mgr:    mgr,
		disp:   actions.New(mgr),
		st:     nav.New(actions.Services()),
		input:  ti,
		area:   ta,
		detail: vp,
		spin:   sp,
		status: "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return m.spin.Tick
}

// dispatch wraps one dispatcher call as the single in-flight command. The
// command runs against a clone of the navigation state; Update swaps the
// clone in on success and discards it on error, which both keeps the
// rendering goroutine off shared mutable state and guarantees the screen
// does not change when a call fails.
func (m *Model) dispatch(f func(ctx context.Context, st *nav.State) (string, error)) tea.Cmd {
	m.loading = true
	st := m.st.Clone()
	return func() tea.Msg {
		status, err := f(context.Background(), st)
		return resultMsg{status: status, err: err, st: st}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail.Width = msg.Width - 4
		m.detail.Height = msg.Height - 6
		m.input.Width = msg.Width - 8
		m.area.SetWidth(msg.Width - 8)
		m.area.SetHeight(6)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case resultMsg:
		m.loading = false
		if msg.err != nil {
			// The screen stays put on error; the user can retry in place.
			m.status = describeErr(msg.err)
			m.isErr = true
			return m, nil
		}
		m.isErr = false
		if msg.st != nil {
			m.st = msg.st
		}
		if msg.status != "" {
			m.status = msg.status
		}
		if m.st.Screen == nav.ScreenInput {
			m.syncFieldWidget()
			return m, textinput.Blink
		}
		if m.st.Detail != "" {
			m.detail.SetContent(m.st.Detail)
			m.detail.GotoTop()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.loading {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.st.SwitcherVisible {
		return m.handleSwitcherKey(msg)
	}
	switch m.st.Screen {
	case nav.ScreenInput:
		return m.handleInputKey(msg)
	case nav.ScreenConfirm:
		return m.handleConfirmKey(msg)
	}

	switch msg.String() {
	case "ctrl+a":
		m.accounts = m.mgr.AccountNames()
		m.st.ToggleSwitcher(len(m.accounts))
		return m, nil

	case "up", "k":
		if m.st.Screen == nav.ScreenView && m.st.Detail != "" {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		m.st.MoveUp()
		return m, nil

	case "down", "j":
		if m.st.Screen == nav.ScreenView && m.st.Detail != "" {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		m.st.MoveDown()
		return m, nil

	case "enter":
		switch m.st.Screen {
		case nav.ScreenServices:
			m.st.EnterService(actions.ActionNames(m.st.ServiceCursor))
			return m, nil
		case nav.ScreenActions:
			svc, act := m.st.ServiceCursor, m.st.ActionCursor
			cmd := m.dispatch(func(ctx context.Context, st *nav.State) (string, error) {
				return m.disp.Execute(ctx, st, svc, act)
			})
			return m, tea.Batch(cmd, m.spin.Tick)
		case nav.ScreenView:
			if m.st.Detail != "" || m.st.SelectedItem() == nil {
				return m, nil
			}
			cmd := m.dispatch(func(ctx context.Context, st *nav.State) (string, error) {
				return m.disp.OpenDetail(ctx, st)
			})
			return m, tea.Batch(cmd, m.spin.Tick)
		}

	case "d":
		if m.st.Screen == nav.ScreenView && m.st.Detail == "" {
			it := m.st.SelectedItem()
			if it == nil {
				return m, nil
			}
			if !m.disp.CanDelete() {
				m.status = "delete not supported here"
				m.isErr = false
				return m, nil
			}
			m.st.RequestConfirm(fmt.Sprintf("Delete %q? [y/n]", it.Title))
			return m, nil
		}

	case "n":
		if m.st.Screen == nav.ScreenView && m.st.NextPageToken != "" {
			cmd := m.dispatch(func(ctx context.Context, st *nav.State) (string, error) {
				return m.disp.LoadMore(ctx, st)
			})
			return m, tea.Batch(cmd, m.spin.Tick)
		}

	case "esc", "backspace", "q":
		if msg.String() == "q" && m.st.Screen != nav.ScreenServices {
			return m, nil
		}
		m.st.Back()
		if m.st.Quitting {
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleSwitcherKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.st.MoveUp()
	case "down", "j":
		m.st.MoveDown()
	case "enter":
		if m.st.SwitcherCursor < len(m.accounts) {
			name := m.accounts[m.st.SwitcherCursor]
			m.st.ToggleSwitcher(0)
			cmd := m.dispatch(func(context.Context, *nav.State) (string, error) {
				if err := m.mgr.SwitchAccount(name); err != nil {
					return "", err
				}
				return "switched to " + name, nil
			})
			return m, tea.Batch(cmd, m.spin.Tick)
		}
	case "esc", "ctrl+a":
		m.st.ToggleSwitcher(0)
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		cmd := m.dispatch(func(ctx context.Context, st *nav.State) (string, error) {
			return m.disp.PerformDelete(ctx, st)
		})
		return m, tea.Batch(cmd, m.spin.Tick)
	case "n", "esc":
		m.st.CancelConfirm()
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cur := m.currentField()
	switch msg.String() {
	case "esc":
		m.st.Back()
		return m, nil

	case "up", "shift+tab":
		m.commitFieldWidget()
		m.st.MoveUp()
		m.syncFieldWidget()
		return m, nil

	case "down", "tab":
		m.commitFieldWidget()
		m.st.MoveDown()
		m.syncFieldWidget()
		return m, nil

	case "ctrl+s":
		return m.submitInput()

	case "enter":
		if cur != nil && cur.Multiline {
			break // newline in the textarea
		}
		// Enter advances; on the last field it submits.
		m.commitFieldWidget()
		if m.st.FieldCursor == len(m.st.Fields)-1 {
			return m.submitInput()
		}
		m.st.MoveDown()
		m.syncFieldWidget()
		return m, nil
	}

	var cmd tea.Cmd
	if cur != nil && cur.Multiline {
		m.area, cmd = m.area.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	m.commitFieldWidget()
	cmd := m.dispatch(func(ctx context.Context, st *nav.State) (string, error) {
		return m.disp.Submit(ctx, st)
	})
	return m, tea.Batch(cmd, m.spin.Tick)
}

func (m *Model) currentField() *nav.Field {
	if m.st.FieldCursor >= len(m.st.Fields) {
		return nil
	}
	return &m.st.Fields[m.st.FieldCursor]
}

// commitFieldWidget stores the active widget's text into the focused field.
func (m *Model) commitFieldWidget() {
	cur := m.currentField()
	if cur == nil {
		return
	}
	if cur.Multiline {
		cur.Value = m.area.Value()
	} else {
		cur.Value = m.input.Value()
	}
}

// syncFieldWidget loads the focused field into the matching widget.
func (m *Model) syncFieldWidget() {
	cur := m.currentField()
	if cur == nil {
		return
	}
	if cur.Multiline {
		m.area.SetValue(cur.Value)
		m.area.Placeholder = cur.Placeholder
		m.area.Focus()
		m.input.Blur()
	} else {
		m.input.SetValue(cur.Value)
		m.input.Placeholder = cur.Placeholder
		m.input.Focus()
		m.area.Blur()
	}
}

// describeErr reduces a typed failure to one status line.
func describeErr(err error) string {
	var rate *apierr.RateLimitedError
	if errors.As(err, &rate) {
		return fmt.Sprintf("rate limited, retry after %ds", rate.RetryAfterSeconds)
	}
	var api *apierr.APIError
	if errors.As(err, &api) {
		return fmt.Sprintf("API error %d: %s", api.Status, truncateLine(api.Body, 80))
	}
	return truncateLine(err.Error(), 120)
}

func truncateLine(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}
