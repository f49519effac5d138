package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/erdcanvas/erdcanvas/pkg/model"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TableListModel - Interactive table selection
// =============================================================================

// TableListModel is the bubbletea model for choosing a subset of tables.
// Every table starts selected; space toggles, enter confirms.
type TableListModel struct {
	Tables  []model.Table
	Checked map[string]bool
	Cursor  int
	Height  int
	Offset  int
	Aborted bool
}

// NewTableListModel creates a table picker with all tables pre-selected.
func NewTableListModel(tables []model.Table) TableListModel {
	checked := make(map[string]bool, len(tables))
	for _, t := range tables {
		checked[t.ID] = true
	}
	return TableListModel{
		Tables:  tables,
		Checked: checked,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

// SelectedIDs returns the IDs of the tables still checked.
func (m TableListModel) SelectedIDs() map[string]bool {
	out := make(map[string]bool, len(m.Checked))
	for id, on := range m.Checked {
		if on {
			out[id] = true
		}
	}
	return out
}

func (m TableListModel) Init() tea.Cmd {
	return nil
}

func (m TableListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Tables)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ":
			if len(m.Tables) > 0 {
				id := m.Tables[m.Cursor].ID
				m.Checked[id] = !m.Checked[id]
			}
		case "a":
			for _, t := range m.Tables {
				m.Checked[t.ID] = true
			}
		case "n":
			for _, t := range m.Tables {
				m.Checked[t.ID] = false
			}
		case "enter":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m TableListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Tables"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  n none  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Tables) {
		end = len(m.Tables)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		t := m.Tables[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		mark := "[ ]"
		if m.Checked[t.ID] {
			mark = "[x]"
		}

		kind := "table"
		if t.IsView {
			kind = "view"
		}

		rows = append(rows, []string{cursor, mark, qualifiedName(t), kind, fmt.Sprintf("%d", len(t.Fields))})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Table", "Kind", "Fields").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Tables) {
				return lipgloss.NewStyle()
			}
			checked := m.Checked[m.Tables[actualIdx].ID]
			isCurrent := actualIdx == m.Cursor

			if isCurrent {
				if checked {
					return listSelectedStyle
				}
				return lipgloss.NewStyle().Bold(true).Foreground(colorDim)
			}
			if checked {
				return listNormalStyle
			}
			return listDimStyle
		})

	b.WriteString(tbl.Render())
	b.WriteString("\n\n")

	selected := 0
	for _, on := range m.Checked {
		if on {
			selected++
		}
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %d selected", m.Cursor+1, len(m.Tables), selected)))

	return b.String()
}

// qualifiedName renders a table name with its schema prefix when present.
func qualifiedName(t model.Table) string {
	if t.Schema != "" && t.Schema != "public" {
		return t.Schema + "." + t.Name
	}
	return t.Name
}
