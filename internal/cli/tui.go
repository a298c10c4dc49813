package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/puzzlesheet/pkg/position"
	"github.com/matzehuels/puzzlesheet/pkg/sheet"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the "browse" command.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse and rearrange sheets interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.workspace(cmd.Context())
			if err != nil {
				return err
			}
			if ws.sheets.Len() == 0 {
				printInfo("No sheets yet")
				printNextStep("Create one", "psg new <name>")
				return nil
			}
			rows := make([]SheetRow, 0, ws.sheets.Len())
			for _, e := range ws.sheets.All() {
				row := SheetRow{ID: e.ID, Sheet: e.Item}
				if info, err := os.Stat(ws.dir.SheetFile(e.ID)); err == nil {
					row.Saved = info.ModTime()
				}
				rows = append(rows, row)
			}

			p := tea.NewProgram(NewSheetListModel(rows), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return err
			}
			m := final.(SheetListModel)
			for _, id := range m.Changed() {
				if err := ws.touch(id); err != nil {
					return err
				}
				printSuccess("Updated %s", id)
			}
			return nil
		},
	}
}

// =============================================================================
// SheetListModel - Interactive sheet browser
// =============================================================================

// SheetRow is one sheet in the browser.
type SheetRow struct {
	ID    string
	Sheet *sheet.Sheet
	Saved time.Time // zero when never written
}

// SheetListModel is the bubbletea model for browsing sheets. Enter opens
// a sheet; inside, elements can be moved with J/K and removed with x.
type SheetListModel struct {
	Rows   []SheetRow
	Cursor int
	Height int
	Offset int

	// Open is the index of the sheet being edited, -1 in the list.
	Open    int
	Element int

	changed map[string]bool
}

// NewSheetListModel creates a new sheet list model.
func NewSheetListModel(rows []SheetRow) SheetListModel {
	return SheetListModel{
		Rows:    rows,
		Height:  15,
		Open:    -1,
		changed: make(map[string]bool),
	}
}

// Changed returns the ids of the sheets edited in the browser, in list
// order.
func (m SheetListModel) Changed() []string {
	var ids []string
	for _, r := range m.Rows {
		if m.changed[r.ID] {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

func (m SheetListModel) Init() tea.Cmd {
	return nil
}

func (m SheetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Open >= 0 {
			return m.updateSheet(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Rows) > 0 {
				m.Open, m.Element = m.Cursor, 0
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m SheetListModel) updateSheet(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	row := m.Rows[m.Open]
	s := row.Sheet
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc", "backspace":
		m.Open = -1
	case "up", "k":
		if m.Element > 0 {
			m.Element--
		}
	case "down", "j":
		if m.Element < s.Len()-1 {
			m.Element++
		}
	case "K":
		if m.Element > 0 && s.Swap(m.Element, m.Element-1) == nil {
			m.Element--
			m.changed[row.ID] = true
		}
	case "J":
		if m.Element < s.Len()-1 && s.Swap(m.Element, m.Element+1) == nil {
			m.Element++
			m.changed[row.ID] = true
		}
	case "x", "delete":
		if s.Len() > 0 {
			if _, err := s.Remove(m.Element); err == nil {
				m.changed[row.ID] = true
				if m.Element >= s.Len() && m.Element > 0 {
					m.Element--
				}
			}
		}
	}
	return m, nil
}

func (m SheetListModel) View() string {
	if m.Open >= 0 {
		return m.sheetView()
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Sheets"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		saved := "unsaved"
		if !r.Saved.IsZero() {
			saved = formatRelativeTime(r.Saved)
		}
		if m.changed[r.ID] {
			saved = "edited"
		}
		rows = append(rows, []string{
			cursor, r.ID, r.Sheet.Name,
			fmt.Sprintf("%d/%d", r.Sheet.Len(), sheet.MaxElements), saved,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Sheet", "Elements", "Saved").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 4 {
				base = base.Foreground(colorDim)
			}
			if idx == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			if m.Rows[idx].Sheet.Len() == 0 {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	return b.String()
}

func (m SheetListModel) sheetView() string {
	r := m.Rows[m.Open]
	s := r.Sheet

	var b strings.Builder
	b.WriteString(StyleTitle.Render(r.ID + " " + s.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  J/K move  x remove  esc back"))
	b.WriteString("\n\n")

	if s.Len() == 0 {
		b.WriteString(listDimStyle.Render("  no elements"))
		b.WriteString("\n")
	}
	for i, e := range s.Elements {
		cursor := "  "
		if i == m.Element {
			cursor = "> "
		}
		black, _ := position.SecondToMove(e.FEN)
		line := fmt.Sprintf("%s%2s %s %s", cursor, strconv.Itoa(i), sideIcon(black), e.Label())
		if i == m.Element {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("-", 40)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s white to move   %s black to move\n", iconWhite, iconBlack)
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
