package tui

import (
	"strings"

	"github.com/ledgerworks/outlay/internal/cli"
)

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(cli.TitleStyle.Render("Expense Tracker"))
	sb.WriteString("\n\n")

	switch m.state {
	case StateMenu:
		sb.WriteString(m.viewMenu())
	case StateForm:
		sb.WriteString(m.viewForm())
	case StateResult:
		sb.WriteString(m.viewResult())
	}

	return sb.String()
}

func (m Model) viewMenu() string {
	var sb strings.Builder
	for i, item := range m.items {
		cursor := "  "
		line := item.title
		if i == m.cursor {
			cursor = cli.InfoStyle.Render("→ ")
			line = cli.InfoStyle.Render(item.title)
		}
		sb.WriteString(cursor)
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(cli.SubtleStyle.Render("↑/↓ move · enter select · 1-9 jump · q quit"))
	return sb.String()
}

func (m Model) viewForm() string {
	var sb strings.Builder

	sb.WriteString(cli.InfoStyle.Render(m.items[m.cursor].title))
	sb.WriteString("\n\n")

	if m.formHint != "" {
		sb.WriteString(m.formHint)
		sb.WriteString("\n")
	}

	for i := range m.inputs {
		sb.WriteString(m.labels[i])
		sb.WriteString("\n")
		sb.WriteString(m.inputs[i].View())
		sb.WriteString("\n")
	}

	if m.formError != "" {
		sb.WriteString("\n")
		sb.WriteString(cli.ErrorStyle.Render(m.formError))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(cli.SubtleStyle.Render("tab next field · enter submit · esc back"))
	return sb.String()
}

func (m Model) viewResult() string {
	var sb strings.Builder
	sb.WriteString(m.result)
	sb.WriteString("\n\n")
	sb.WriteString(cli.SubtleStyle.Render("enter/esc back · q quit"))
	return sb.String()
}

func renderNotice(msg noticeMsg) string {
	if msg.ok {
		return cli.SuccessStyle.Render("✔ " + msg.text)
	}
	return cli.WarningStyle.Render(msg.text)
}
