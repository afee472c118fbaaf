package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gwork/gwork-cli/internal/nav"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n\n")

	if m.st.SwitcherVisible {
		b.WriteString(m.switcherView())
	} else {
		switch m.st.Screen {
		case nav.ScreenServices:
			b.WriteString(m.listView("Services", m.st.Services, m.st.ServiceCursor))
		case nav.ScreenActions:
			title := "Actions"
			if m.st.ServiceCursor < len(m.st.Services) {
				title = m.st.Services[m.st.ServiceCursor]
			}
			b.WriteString(m.listView(title, m.st.Actions, m.st.ActionCursor))
		case nav.ScreenView:
			b.WriteString(m.itemsView())
		case nav.ScreenInput:
			b.WriteString(m.inputView())
		case nav.ScreenConfirm:
			b.WriteString(m.confirmView())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

func (m Model) headerView() string {
	left := titleStyle.Render("gwork")
	right := accountStyle.Render(m.mgr.ActiveAccountLabel())
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) listView(title string, entries []string, cursor int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	for i, e := range entries {
		if i == cursor {
			b.WriteString(cursorStyle.Render("› ") + selectedStyle.Render(e))
		} else {
			b.WriteString("  " + e)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) itemsView() string {
	if m.st.Detail != "" {
		return m.detail.View()
	}
	if len(m.st.Items) == 0 {
		return mutedStyle.Render("no results")
	}
	var b strings.Builder
	for i, it := range m.st.Items {
		line := it.Title
		if it.Subtitle != "" {
			line += "  " + mutedStyle.Render(it.Subtitle)
		}
		if i == m.st.ItemCursor {
			b.WriteString(cursorStyle.Render("› ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	if m.st.NextPageToken != "" {
		b.WriteString("\n" + mutedStyle.Render("n: load more"))
	}
	return b.String()
}

func (m Model) inputView() string {
	var b strings.Builder
	for i, f := range m.st.Fields {
		label := f.Label
		if f.Required {
			label += fieldRequiredStyle.Render(" *")
		}
		if i == m.st.FieldCursor {
			b.WriteString(fieldFocusedStyle.Render(label))
			b.WriteString("\n")
			if f.Multiline {
				b.WriteString(m.area.View())
			} else {
				b.WriteString(m.input.View())
			}
		} else {
			b.WriteString(fieldLabelStyle.Render(label))
			b.WriteString("\n")
			val := f.Value
			if val == "" {
				val = mutedStyle.Render(f.Placeholder)
			}
			b.WriteString("  " + val)
		}
		b.WriteString("\n\n")
	}
	b.WriteString(mutedStyle.Render("tab: next field · ctrl+s: submit · esc: cancel"))
	return b.String()
}

func (m Model) confirmView() string {
	return errorStyle.Render(m.st.ConfirmPrompt)
}

func (m Model) switcherView() string {
	names := m.accounts
	var b strings.Builder
	b.WriteString(titleStyle.Render("Accounts"))
	b.WriteString("\n\n")
	active := m.mgr.ActiveAccountName()
	for i, n := range names {
		mark := "  "
		if n == active {
			mark = "* "
		}
		if i == m.st.SwitcherCursor {
			b.WriteString(cursorStyle.Render("› ") + mark + selectedStyle.Render(n))
		} else {
			b.WriteString("  " + mark + n)
		}
		b.WriteString("\n")
	}
	return overlayStyle.Render(b.String())
}

func (m Model) footerView() string {
	if m.loading {
		return statusStyle.Render(fmt.Sprintf("%s working...", m.spin.View()))
	}
	line := m.status
	if m.isErr {
		return errorStyle.Render(line)
	}
	return statusStyle.Render(line)
}
